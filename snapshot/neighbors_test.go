package snapshot

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lstate/ospfd/config"
	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/wire"
)

func newTestIface(t *testing.T, fc *clock.FakeClock) *iface.Interface {
	t.Helper()
	sched := clock.NewScheduler(fc)
	cfg := config.Default()
	local := netip.MustParseAddrPort("10.0.0.1:0")
	i := iface.New(1, 100, local, 0xFFFFFF00, 1, cfg, sched, func(wire.Packet, netip.AddrPort) {}, iface.Hooks{})
	i.Start()
	return i
}

func TestNeighborsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fc := clock.NewFakeClock(time.Unix(0, 0))

	src := newTestIface(t, fc)
	src.ReceiveHello(2, netip.MustParseAddrPort("10.0.0.2:0"), wire.HelloPayload{Neighbors: []uint32{1}}, fc.Now())
	src.SetFull(2)

	byIndex := map[uint32]*iface.Interface{0: src}
	if err := ExportNeighbors(dir, "node.neighbors", byIndex); err != nil {
		t.Fatalf("ExportNeighbors: %v", err)
	}

	dst := newTestIface(t, fc)
	if err := ImportNeighbors(dir, "node.neighbors", map[uint32]*iface.Interface{0: dst}); err != nil {
		t.Fatalf("ImportNeighbors: %v", err)
	}

	n, ok := dst.Neighbor(2)
	if !ok {
		t.Fatal("expected neighbor 2 restored")
	}
	if n.State != iface.Full {
		t.Errorf("got state %v, want Full", n.State)
	}
}

func TestImportNeighborsMismatchedInterfaceDoesNotCrash(t *testing.T) {
	dir := t.TempDir()
	// nInterfaces = 0
	if err := os.WriteFile(filepath.Join(dir, "bad.neighbors"), []byte{0, 0, 0, 0}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := ImportNeighbors(dir, "bad.neighbors", map[uint32]*iface.Interface{}); err != nil {
		t.Fatalf("ImportNeighbors: %v", err)
	}
}

func TestImportNeighborsSkipsUnknownInterfaceIndex(t *testing.T) {
	dir := t.TempDir()
	fc := clock.NewFakeClock(time.Unix(0, 0))

	src := newTestIface(t, fc)
	src.ReceiveHello(2, netip.MustParseAddrPort("10.0.0.2:0"), wire.HelloPayload{}, fc.Now())

	if err := ExportNeighbors(dir, "node.neighbors", map[uint32]*iface.Interface{7: src}); err != nil {
		t.Fatalf("ExportNeighbors: %v", err)
	}

	// No interface registered at index 7: should be skipped, not panic.
	if err := ImportNeighbors(dir, "node.neighbors", map[uint32]*iface.Interface{}); err != nil {
		t.Fatalf("ImportNeighbors: %v", err)
	}
}
