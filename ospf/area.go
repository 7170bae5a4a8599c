package ospf

import (
	"encoding/binary"
	"net/netip"

	"github.com/lstate/ospfd/wire"
)

func addrToUint32(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

// buildRouterLinks returns a closure computing the given area's current
// Router-LSA link set: one link per Full neighbor on each interface
// assigned to that area, at the originating interface's configured
// metric.
func (r *Router) buildRouterLinks(areaID uint32) func() []wire.RouterLink {
	return func() []wire.RouterLink {
		r.mu.Lock()
		defer r.mu.Unlock()

		a, ok := r.areas[areaID]
		if !ok {
			return nil
		}
		var links []wire.RouterLink
		for _, i := range a.ifaces {
			for _, n := range i.FullNeighbors() {
				links = append(links, wire.RouterLink{LinkID: n, LinkType: 1, Metric: i.Metric})
			}
		}
		return links
	}
}

// buildL1Prefixes returns a closure computing the given area's current
// L1-Summary-LSA prefix set: each interface's local subnet, plus a default
// route if this router is configured as that area's gateway.
func (r *Router) buildL1Prefixes(areaID uint32) func() []wire.Prefix {
	return func() []wire.Prefix {
		r.mu.Lock()
		defer r.mu.Unlock()

		a, ok := r.areas[areaID]
		if !ok {
			return nil
		}
		var prefixes []wire.Prefix
		for _, i := range a.ifaces {
			prefixes = append(prefixes, wire.Prefix{
				Address: addrToUint32(i.LocalAddr.Addr()) & i.NetworkMask,
				Mask:    i.NetworkMask,
				Metric:  i.Metric,
			})
		}
		if r.hasGateway && r.gatewayArea == areaID {
			prefixes = append(prefixes, wire.Prefix{Address: 0, Mask: 0, Metric: r.cfg.DefaultMetric})
		}
		return prefixes
	}
}

// buildAreaLinks computes this router's Area-LSA, describing every other
// area it directly borders (i.e. owns at least one interface in), at the
// cheapest interface metric connecting to that area. Only meaningful while
// this router is the leader of its primary area.
func (r *Router) buildAreaLinks() []wire.AreaLink {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.primaryArea == nil {
		return nil
	}
	primary := *r.primaryArea

	var links []wire.AreaLink
	for areaID, a := range r.areas {
		if areaID == primary || len(a.ifaces) == 0 {
			continue
		}
		best := uint16(0)
		for _, i := range a.ifaces {
			if best == 0 || i.Metric < best {
				best = i.Metric
			}
		}
		links = append(links, wire.AreaLink{PeerAreaID: areaID, Metric: best})
	}
	return links
}

// buildL2Prefixes computes this router's L2-Summary-LSA: the union of
// every L1-Summary-LSA prefix currently known within its primary area,
// re-advertised into the inter-area graph. A prefix advertised more than
// once appears once, with the lowest metric seen.
func (r *Router) buildL2Prefixes() []wire.Prefix {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.primaryArea == nil {
		return nil
	}
	a, ok := r.areas[*r.primaryArea]
	if !ok {
		return nil
	}

	var prefixes []wire.Prefix
	at := make(map[[2]uint32]int)
	for _, lsa := range a.db.All(wire.LSATypeL1Summary, r.sched.Now()) {
		if lsa.L1Summary == nil {
			continue
		}
		for _, p := range lsa.L1Summary.Prefixes {
			k := [2]uint32{p.Address, p.Mask}
			if j, seen := at[k]; seen {
				prefixes[j].Metric = min(prefixes[j].Metric, p.Metric)
				continue
			}
			at[k] = len(prefixes)
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

// recomputePrimaryArea picks the lowest area ID this router owns at least
// one interface in, called whenever interface-to-area assignment changes.
// Must be called with r.mu held.
func (r *Router) recomputePrimaryArea() {
	var best *uint32
	for id, a := range r.areas {
		if len(a.ifaces) == 0 {
			continue
		}
		id := id
		if best == nil || id < *best {
			best = &id
		}
	}
	r.primaryArea = best
	if best != nil {
		r.backboneGen.SetAreaID(*best)
	}
}
