package iface

import (
	"net/netip"
	"testing"
	"time"

	"github.com/lstate/ospfd/config"
	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/wire"
)

func newTestInterface(t *testing.T, fc *clock.FakeClock, hooks Hooks) (*Interface, *clock.Scheduler) {
	t.Helper()
	sched := clock.NewScheduler(fc)
	cfg := config.Default()
	local := netip.MustParseAddrPort("10.0.0.1:0")
	sent := 0
	send := func(pkt wire.Packet, addr netip.AddrPort) { sent++ }
	i := New(1, 100, local, 0xFFFFFF00, 1, cfg, sched, send, hooks)
	return i, sched
}

func TestReceiveHelloCreatesNeighborInInit(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	i, _ := newTestInterface(t, fc, Hooks{})

	from := netip.MustParseAddrPort("10.0.0.2:0")
	i.ReceiveHello(2, from, wire.HelloPayload{}, fc.Now())

	n, ok := i.Neighbor(2)
	if !ok {
		t.Fatal("expected neighbor 2 to exist")
	}
	if n.State != Init {
		t.Errorf("got state %v, want Init", n.State)
	}
}

func TestReceiveHelloReachesTwoWayWhenHeardBack(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	var upFired uint32
	i, _ := newTestInterface(t, fc, Hooks{
		OnNeighborUp: func(n *Neighbor) { upFired = n.RouterID },
	})

	from := netip.MustParseAddrPort("10.0.0.2:0")
	i.ReceiveHello(2, from, wire.HelloPayload{Neighbors: []uint32{9}}, fc.Now())
	n, _ := i.Neighbor(2)
	if n.State != Init {
		t.Fatalf("got state %v, want Init before being heard", n.State)
	}

	i.ReceiveHello(2, from, wire.HelloPayload{Neighbors: []uint32{1}}, fc.Now())
	n, _ = i.Neighbor(2)
	if n.State != TwoWay {
		t.Fatalf("got state %v, want TwoWay", n.State)
	}
	if upFired != 2 {
		t.Error("expected OnNeighborUp to fire for router 2")
	}
}

func TestSetFullTransitionsFromTwoWay(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	var fullFired uint32
	i, _ := newTestInterface(t, fc, Hooks{
		OnNeighborFull: func(n *Neighbor) { fullFired = n.RouterID },
	})

	from := netip.MustParseAddrPort("10.0.0.2:0")
	i.ReceiveHello(2, from, wire.HelloPayload{Neighbors: []uint32{1}}, fc.Now())
	i.SetFull(2)

	n, _ := i.Neighbor(2)
	if n.State != Full {
		t.Fatalf("got state %v, want Full", n.State)
	}
	if fullFired != 2 {
		t.Error("expected OnNeighborFull to fire")
	}
}

func TestDeadTimerRemovesNeighbor(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	var downFired uint32
	i, sched := newTestInterface(t, fc, Hooks{
		OnNeighborDown: func(routerID uint32) { downFired = routerID },
	})

	from := netip.MustParseAddrPort("10.0.0.2:0")
	i.ReceiveHello(2, from, wire.HelloPayload{}, fc.Now())

	sched.Advance(i.cfg.RouterDeadInterval + time.Second)

	if _, ok := i.Neighbor(2); ok {
		t.Error("expected neighbor to be removed after dead interval")
	}
	if downFired != 2 {
		t.Error("expected OnNeighborDown to fire for router 2")
	}
}

func TestFullNeighborsOnlyListsFullOnes(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	i, _ := newTestInterface(t, fc, Hooks{})

	i.ReceiveHello(2, netip.MustParseAddrPort("10.0.0.2:0"), wire.HelloPayload{Neighbors: []uint32{1}}, fc.Now())
	i.ReceiveHello(3, netip.MustParseAddrPort("10.0.0.3:0"), wire.HelloPayload{}, fc.Now())
	i.SetFull(2)

	full := i.FullNeighbors()
	if len(full) != 1 || full[0] != 2 {
		t.Errorf("got %v, want [2]", full)
	}
}
