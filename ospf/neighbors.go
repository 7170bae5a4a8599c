package ospf

import (
	"net/netip"
	"time"

	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/spf"
	"github.com/lstate/ospfd/wire"
)

// areaReachableMembers returns the router IDs of every router currently
// reachable from source in the area's L1 graph: the set of non-MaxAge
// Router-LSA advertisers (and their advertised links) that SPF can
// actually find a path to, not just this router's direct Full neighbors.
// This is what leader election must be fed, since two non-adjacent
// routers in a line topology can each see a disjoint neighbor set and
// each conclude they hold the minimum router ID unless both instead
// reason over the whole area's SPF-reachable set.
func areaReachableMembers(a *areaState, source uint32, now time.Time) map[uint32]struct{} {
	graph := spf.BuildL1Graph(a.db, now)
	paths := spf.ShortestPaths(graph, source)
	members := make(map[uint32]struct{}, len(paths))
	for id := range paths {
		members[id] = struct{}{}
	}
	return members
}

// onNeighborUp returns the iface.Hooks.OnNeighborUp callback for
// (ifaceIndex, areaID): record the neighbor's address for retransmission
// lookups, send it this router's full local LSDB, then mark it Full.
// Point-to-point adjacencies here skip DBD/LSR negotiation and reach Full
// directly once that flood completes.
func (r *Router) onNeighborUp(ifaceIndex, areaID uint32) func(n *iface.Neighbor) {
	return func(n *iface.Neighbor) {
		routerID := n.RouterID
		addr := n.Address
		now := r.sched.Now()

		r.mu.Lock()
		if r.neighborIface == nil {
			r.neighborIface = make(map[netip.AddrPort]uint32)
		}
		r.neighborIface[addr] = ifaceIndex
		a, ok := r.areas[areaID]
		var i *iface.Interface
		if ok {
			i = a.ifaces[ifaceIndex]
		}
		r.mu.Unlock()
		if !ok || i == nil {
			return
		}

		var areaLSAs []wire.LSA
		areaLSAs = append(areaLSAs, a.db.All(wire.LSATypeRouter, now)...)
		areaLSAs = append(areaLSAs, a.db.All(wire.LSATypeL1Summary, now)...)
		r.sendLSU(ifaceIndex, addr, areaLSAs, areaID)

		var backboneLSAs []wire.LSA
		backboneLSAs = append(backboneLSAs, r.backboneDB.All(wire.LSATypeArea, now)...)
		backboneLSAs = append(backboneLSAs, r.backboneDB.All(wire.LSATypeL2Summary, now)...)
		r.sendLSU(ifaceIndex, addr, backboneLSAs, backboneAreaID)

		i.SetFull(routerID)
	}
}

// onNeighborFull returns the OnNeighborFull callback: a changed adjacency
// set means this area's Router-LSA is stale and its leader election needs
// re-evaluating against the area's current SPF-reachable router set.
func (r *Router) onNeighborFull(ifaceIndex, areaID uint32) func(n *iface.Neighbor) {
	return func(n *iface.Neighbor) {
		r.mu.Lock()
		a, ok := r.areas[areaID]
		r.mu.Unlock()
		if !ok {
			return
		}
		a.gen.TriggerRouterLSA()
		a.lead.Update(areaReachableMembers(a, r.routerID, r.sched.Now()))
	}
}

// onNeighborDown returns the OnNeighborDown callback fired when a
// neighbor's dead timer expires. The neighbor's outstanding flood state is
// not dropped: its retransmissions keep firing every LSURetransmitInterval
// with no attempt limit. iface.Hooks only reports the router ID, not the
// address the flood queue keyed retransmissions on, so an explicit
// DropNeighbor here isn't possible without a second routerID->address
// index.
func (r *Router) onNeighborDown(ifaceIndex, areaID uint32) func(routerID uint32) {
	return func(routerID uint32) {
		r.mu.Lock()
		a, ok := r.areas[areaID]
		r.mu.Unlock()
		if !ok {
			return
		}
		a.gen.TriggerRouterLSA()
		a.lead.Update(areaReachableMembers(a, r.routerID, r.sched.Now()))
	}
}
