package fib

import (
	"net/netip"
	"testing"
)

func TestBartTableLookupPicksLongestMatch(t *testing.T) {
	tbl := NewBartTable()

	broad := netip.MustParsePrefix("10.0.0.0/8")
	narrow := netip.MustParsePrefix("10.0.5.0/24")
	broadHop := netip.MustParseAddr("192.168.1.1")
	narrowHop := netip.MustParseAddr("192.168.1.2")

	if err := tbl.AddHostRoute(broad, broadHop, 1, 10); err != nil {
		t.Fatalf("AddHostRoute(broad): %v", err)
	}
	if err := tbl.AddHostRoute(narrow, narrowHop, 2, 5); err != nil {
		t.Fatalf("AddHostRoute(narrow): %v", err)
	}

	hop, idx, ok := tbl.Lookup(netip.MustParseAddr("10.0.5.42"))
	if !ok {
		t.Fatal("expected a match for 10.0.5.42")
	}
	if hop != narrowHop || idx != 2 {
		t.Errorf("got nextHop=%v iface=%d, want the /24's narrower route", hop, idx)
	}

	hop, _, ok = tbl.Lookup(netip.MustParseAddr("10.1.1.1"))
	if !ok || hop != broadHop {
		t.Errorf("got (%v, %v), want the /8's route to still match", hop, ok)
	}

	if _, _, ok := tbl.Lookup(netip.MustParseAddr("172.16.0.1")); ok {
		t.Error("expected no match outside either prefix")
	}
}

func TestBartTableRemoveHostRoute(t *testing.T) {
	tbl := NewBartTable()
	prefix := netip.MustParsePrefix("10.0.0.0/24")
	tbl.AddHostRoute(prefix, netip.MustParseAddr("10.0.0.1"), 1, 1)

	if tbl.Size() != 1 {
		t.Fatalf("got size %d, want 1", tbl.Size())
	}
	if err := tbl.RemoveHostRoute(prefix); err != nil {
		t.Fatalf("RemoveHostRoute: %v", err)
	}
	if tbl.Size() != 0 {
		t.Errorf("got size %d, want 0 after remove", tbl.Size())
	}
	if _, _, ok := tbl.Lookup(netip.MustParseAddr("10.0.0.5")); ok {
		t.Error("expected no match after removal")
	}
}

func TestBartTableRejectsInvalidPrefix(t *testing.T) {
	tbl := NewBartTable()
	if err := tbl.AddHostRoute(netip.Prefix{}, netip.Addr{}, 0, 0); err == nil {
		t.Error("expected an error installing an invalid prefix")
	}
}
