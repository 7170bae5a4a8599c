package ospf

import (
	"net/netip"

	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/spf"
	"github.com/lstate/ospfd/wire"
)

// runL1 returns the SPF-scheduler callback for areaID: recompute the
// area's intra-area route set and fold it into the forwarding table.
func (r *Router) runL1(areaID uint32) func() {
	return func() {
		r.mu.Lock()
		a, ok := r.areas[areaID]
		r.mu.Unlock()
		if !ok {
			return
		}

		routes := spf.RunL1(a.db, r.routerID, r.sched.Now())

		r.mu.Lock()
		a.routes = routes
		r.mu.Unlock()

		r.rebuildFib()
	}
}

// runL2 is the backbone SPF-scheduler callback: recompute inter-area
// routes from the primary area's vantage point and fold them in alongside
// every area's L1 routes.
func (r *Router) runL2() {
	r.mu.Lock()
	primary := r.primaryArea
	r.mu.Unlock()
	if primary == nil {
		r.mu.Lock()
		r.l2Routes = nil
		r.mu.Unlock()
		r.rebuildFib()
		return
	}

	r.mu.Lock()
	a, ok := r.areas[*primary]
	r.mu.Unlock()
	if !ok {
		return
	}

	now := r.sched.Now()
	l1Paths := spf.ShortestPaths(spf.BuildL1Graph(a.db, now), r.routerID)

	borderRouterArea := make(map[uint32]uint32)
	for _, lsa := range r.backboneDB.All(wire.LSATypeArea, now) {
		if lsa.Header.Age >= wire.MaxAge || lsa.Area == nil {
			continue
		}
		borderRouterArea[lsa.Header.AdvertisingRouter] = lsa.Header.LinkStateID
	}

	routes := spf.RunL2(r.backboneDB, *primary, borderRouterArea, l1Paths, now)

	r.mu.Lock()
	r.l2Routes = routes
	r.mu.Unlock()

	r.rebuildFib()
}

// resolveNextHopLocked finds the local interface and neighbor address
// reaching nextHopRouter within areaID. Must be called with r.mu held.
func (r *Router) resolveNextHopLocked(areaID, nextHopRouter uint32) (ifaceIdx uint32, addr netip.Addr, ok bool) {
	a, exists := r.areas[areaID]
	if !exists {
		return 0, netip.Addr{}, false
	}
	for idx, i := range a.ifaces {
		for _, n := range i.Neighbors() {
			if n.RouterID == nextHopRouter {
				return idx, n.Address.Addr(), true
			}
		}
	}
	return 0, netip.Addr{}, false
}

// rebuildFib recomputes the full desired forwarding set from every area's
// last L1 route set plus the last L2 route set, resolving each route's
// router-ID next hop to a local interface and neighbor address, and diffs
// it against what's currently installed. Overlapping prefixes keep
// whichever source computed the lower metric.
func (r *Router) rebuildFib() {
	type routeSource struct {
		resolveArea uint32
		routes      []spf.Route
	}

	r.mu.Lock()
	var sources []routeSource
	for id, a := range r.areas {
		sources = append(sources, routeSource{resolveArea: id, routes: a.routes})
	}
	if r.primaryArea != nil {
		sources = append(sources, routeSource{resolveArea: *r.primaryArea, routes: r.l2Routes})
	}

	desired := make(map[netip.Prefix]fibEntry)
	for _, s := range sources {
		for _, rt := range s.routes {
			ifaceIdx, nextHop, ok := r.resolveNextHopLocked(s.resolveArea, rt.NextHopRouter)
			if !ok {
				continue
			}
			entry := fibEntry{nextHop: nextHop, ifaceIdx: ifaceIdx, metric: rt.Metric}
			if existing, has := desired[rt.Prefix]; !has || entry.metric < existing.metric {
				desired[rt.Prefix] = entry
			}
		}
	}
	installed := r.installed
	r.mu.Unlock()

	for prefix := range installed {
		if _, keep := desired[prefix]; !keep {
			if err := r.fib.RemoveHostRoute(prefix); err != nil {
				logger.Warnf("ospf: failed to remove route %v: %v", prefix, err)
			}
		}
	}
	for prefix, entry := range desired {
		if old, has := installed[prefix]; has && old == entry {
			continue
		}
		if err := r.fib.AddHostRoute(prefix, entry.nextHop, entry.ifaceIdx, entry.metric); err != nil {
			logger.Warnf("ospf: failed to install route %v: %v", prefix, err)
			continue
		}
	}

	r.mu.Lock()
	r.installed = desired
	r.mu.Unlock()
}
