package fib

import (
	"fmt"
	"net/netip"
	"sync"

	"github.com/gaissmai/bart"
)

// route is the per-prefix payload stored in a BartTable.
type route struct {
	nextHop  netip.Addr
	ifaceIdx uint32
	metric   uint32
}

// BartTable is a Table backed by github.com/gaissmai/bart, a longest-prefix-
// match trie. It holds the routes ospfd computes in memory and is meant for
// drivers that want a working, dependency-free-of-the-kernel Table without
// writing their own prefix lookup structure; a real deployment would
// instead implement Table against the host's actual forwarding plane.
type BartTable struct {
	mu    sync.RWMutex
	table bart.Table[route]
	mcast []multicastRoute
}

type multicastRoute struct {
	source       netip.Addr
	group        netip.Addr
	inputIface   uint32
	outputIfaces []uint32
}

// NewBartTable returns an empty BartTable.
func NewBartTable() *BartTable {
	return &BartTable{}
}

func (b *BartTable) AddHostRoute(prefix netip.Prefix, nextHop netip.Addr, ifaceIndex uint32, metric uint32) error {
	if !prefix.IsValid() {
		return fmt.Errorf("fib: invalid prefix %v", prefix)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.table.Insert(prefix, route{nextHop: nextHop, ifaceIdx: ifaceIndex, metric: metric})
	return nil
}

func (b *BartTable) RemoveHostRoute(prefix netip.Prefix) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.table.Delete(prefix)
	return nil
}

func (b *BartTable) AddMulticastRoute(source, group netip.Addr, inputIface uint32, outputIfaces []uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mcast = append(b.mcast, multicastRoute{
		source:       source,
		group:        group,
		inputIface:   inputIface,
		outputIfaces: append([]uint32(nil), outputIfaces...),
	})
	return nil
}

// Lookup returns the longest-prefix-matching route for dst, if any. This is
// the read side a driver uses once BartTable is wired in as the actual
// forwarding decision point, e.g. for a simulated network or a userspace
// router that doesn't push routes into the kernel.
func (b *BartTable) Lookup(dst netip.Addr) (nextHop netip.Addr, ifaceIdx uint32, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rt, ok := b.table.Lookup(dst)
	if !ok {
		return netip.Addr{}, 0, false
	}
	return rt.nextHop, rt.ifaceIdx, true
}

// Size returns the number of host routes currently installed.
func (b *BartTable) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Size()
}
