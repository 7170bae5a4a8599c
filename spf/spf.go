package spf

import (
	"net/netip"
	"time"

	"github.com/lstate/ospfd/lsdb"
	"github.com/lstate/ospfd/wire"
)

// Route is one computed forwarding entry: a destination prefix reached via
// NextHopRouter (an L1 next hop) at cumulative Metric. A Route does not
// record which area an inter-area route transited.
type Route struct {
	Prefix        netip.Prefix
	NextHopRouter uint32
	Metric        uint32
}

func prefixFrom(addr, mask uint32) (netip.Prefix, bool) {
	bits := maskBits(mask)
	a := netip.AddrFrom4([4]byte{byte(addr >> 24), byte(addr >> 16), byte(addr >> 8), byte(addr)})
	p, err := a.Prefix(bits)
	return p, err == nil
}

func maskBits(mask uint32) int {
	bits := 0
	for i := 31; i >= 0; i-- {
		if mask&(1<<uint(i)) == 0 {
			break
		}
		bits++
	}
	return bits
}

// BuildL1Graph constructs the intra-area router graph from every
// non-expired Router-LSA in db.
func BuildL1Graph(db *lsdb.Database, now time.Time) Graph {
	lsas := db.All(wire.LSATypeRouter, now)
	g := make(Graph, len(lsas))
	for _, lsa := range lsas {
		if lsa.Header.Age >= wire.MaxAge || lsa.Router == nil {
			continue
		}
		edges := make([]Edge, 0, len(lsa.Router.Links))
		for _, l := range lsa.Router.Links {
			edges = append(edges, Edge{To: l.LinkID, Metric: uint32(l.Metric)})
		}
		g[lsa.Header.AdvertisingRouter] = edges
	}
	return g
}

// RunL1 computes intra-area routes: for every advertising router reachable
// in the L1 graph, install a /32 host route to that router's address plus
// one route per prefix in its L1-Summary-LSA (if any), all via the L1
// first hop.
func RunL1(db *lsdb.Database, source uint32, now time.Time) []Route {
	graph := BuildL1Graph(db, now)
	paths := ShortestPaths(graph, source)

	var routes []Route
	for routerID, path := range paths {
		if hostPrefix, ok := prefixFrom(routerID, 0xFFFFFFFF); ok {
			routes = append(routes, Route{Prefix: hostPrefix, NextHopRouter: path.NextHop, Metric: path.Metric})
		}

		key := wire.Key{Type: wire.LSATypeL1Summary, LinkStateID: routerID, AdvertisingRouter: routerID}
		summary, ok := db.Get(key, now)
		if !ok || summary.L1Summary == nil {
			continue
		}
		for _, p := range summary.L1Summary.Prefixes {
			prefix, ok := prefixFrom(p.Address, p.Mask)
			if !ok {
				continue
			}
			routes = append(routes, Route{
				Prefix:        prefix,
				NextHopRouter: path.NextHop,
				Metric:        path.Metric + uint32(p.Metric),
			})
		}
	}
	return routes
}

// RunL2 computes inter-area routes: the L2 graph has one vertex per area
// (borderRouterArea maps each Area-LSA's advertising router to the area it
// speaks for), edges from Area-LSAs. For each reachable area, its
// L2-Summary prefixes are installed at the L2 metric plus the L1 metric to
// reach that area's border router (resolved via l1Paths).
func RunL2(db *lsdb.Database, localArea uint32, borderRouterArea map[uint32]uint32, l1Paths map[uint32]Path, now time.Time) []Route {
	areaOf := func(routerID uint32) (uint32, bool) {
		a, ok := borderRouterArea[routerID]
		return a, ok
	}

	graph := make(Graph)
	leaderByArea := make(map[uint32]uint32)
	for _, lsa := range db.All(wire.LSATypeArea, now) {
		if lsa.Header.Age >= wire.MaxAge || lsa.Area == nil {
			continue
		}
		area, ok := areaOf(lsa.Header.AdvertisingRouter)
		if !ok {
			continue
		}
		leaderByArea[area] = lsa.Header.AdvertisingRouter
		edges := make([]Edge, 0, len(lsa.Area.Links))
		for _, l := range lsa.Area.Links {
			edges = append(edges, Edge{To: l.PeerAreaID, Metric: uint32(l.Metric)})
		}
		graph[area] = edges
	}

	areaPaths := ShortestPaths(graph, localArea)

	var routes []Route
	for area, path := range areaPaths {
		leaderRouterID, ok := leaderByArea[area]
		if !ok {
			continue
		}
		l1Path, ok := l1Paths[leaderRouterID]
		if !ok {
			continue
		}

		key := wire.Key{Type: wire.LSATypeL2Summary, LinkStateID: leaderRouterID, AdvertisingRouter: leaderRouterID}
		summary, ok := db.Get(key, now)
		if !ok || summary.L2Summary == nil {
			continue
		}
		for _, p := range summary.L2Summary.Prefixes {
			prefix, ok := prefixFrom(p.Address, p.Mask)
			if !ok {
				continue
			}
			routes = append(routes, Route{
				Prefix:        prefix,
				NextHopRouter: l1Path.NextHop,
				Metric:        path.Metric + l1Path.Metric + uint32(p.Metric),
			})
		}
	}
	return routes
}
