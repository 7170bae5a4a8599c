package flood

import (
	"net/netip"
	"testing"
	"time"

	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/wire"
)

func TestRetransmitsUntilAcked(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)

	resent := 0
	q := New(sched, 5*time.Second, func(addr netip.AddrPort, key wire.Key) { resent++ })

	addr := netip.MustParseAddrPort("10.0.0.2:0")
	key := wire.Key{Type: wire.LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1}
	q.Add(addr, key)

	sched.Advance(12 * time.Second)
	if resent != 2 {
		t.Errorf("got %d retransmits, want 2 (at 5s and 10s)", resent)
	}

	q.Ack(addr, key)
	sched.Advance(20 * time.Second)
	if resent != 2 {
		t.Errorf("got %d retransmits after ack, want still 2", resent)
	}
}

func TestDropNeighborCancelsAllRetransmits(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)

	resent := 0
	q := New(sched, 5*time.Second, func(addr netip.AddrPort, key wire.Key) { resent++ })

	addr := netip.MustParseAddrPort("10.0.0.2:0")
	q.Add(addr, wire.Key{Type: wire.LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1})
	q.Add(addr, wire.Key{Type: wire.LSATypeRouter, LinkStateID: 2, AdvertisingRouter: 2})

	q.DropNeighbor(addr)
	sched.Advance(30 * time.Second)

	if resent != 0 {
		t.Errorf("got %d retransmits after DropNeighbor, want 0", resent)
	}
	if q.PendingCount(addr) != 0 {
		t.Errorf("got %d pending, want 0", q.PendingCount(addr))
	}
}

func TestFloodSkipsSourceNeighbor(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	q := New(sched, 5*time.Second, func(addr netip.AddrPort, key wire.Key) {})

	sentTo := map[netip.AddrPort]bool{}
	sendNow := func(addr netip.AddrPort, key wire.Key) { sentTo[addr] = true }

	n1 := netip.MustParseAddrPort("10.0.0.2:0")
	n2 := netip.MustParseAddrPort("10.0.0.3:0")
	key := wire.Key{Type: wire.LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1}

	q.Flood(sendNow, []netip.AddrPort{n1, n2}, n1, key)

	if sentTo[n1] {
		t.Error("expected flood to skip the source neighbor")
	}
	if !sentTo[n2] {
		t.Error("expected flood to reach the other neighbor")
	}
	if !q.Pending(n2, key) {
		t.Error("expected n2's flood to be outstanding")
	}
	if q.Pending(n1, key) {
		t.Error("did not expect n1 to have an outstanding entry")
	}
}

func TestArrivalGuardRejectsTooSoon(t *testing.T) {
	g := NewArrivalGuard(time.Second)
	key := wire.Key{Type: wire.LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1}
	now := time.Unix(0, 0)

	if !g.Allow(key, now) {
		t.Fatal("expected first arrival to be allowed")
	}
	if g.Allow(key, now.Add(500*time.Millisecond)) {
		t.Error("expected arrival within MinLSArrival to be rejected")
	}
	if !g.Allow(key, now.Add(2*time.Second)) {
		t.Error("expected arrival after MinLSArrival to be allowed")
	}
}
