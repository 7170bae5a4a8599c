package ospf

import (
	"net/netip"

	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/wire"
)

// backboneAreaID is the sentinel area ID carried by a packet header when it
// transports Area-LSAs or L2-Summary-LSAs: those belong to no single area,
// so they are tagged distinctly from every real area ID a router can be
// configured with.
const backboneAreaID uint32 = 0xFFFFFFFF

// sendLSU marshals lsas into one Link-State-Update and sends it out
// ifaceIdx to dest, tagged with areaID (backboneAreaID for Area/L2-Summary
// traffic).
func (r *Router) sendLSU(ifaceIdx uint32, dest netip.AddrPort, lsas []wire.LSA, areaID uint32) {
	if len(lsas) == 0 {
		return
	}
	pkt := wire.Packet{
		Header:   wire.Header{Type: wire.PacketTypeLinkStateUpdate, RouterID: r.routerID, AreaID: areaID},
		LSUpdate: &wire.LSUpdatePayload{LSAs: lsas},
	}
	r.sendPacket(ifaceIdx, pkt, dest)
}

// sendPacket marshals pkt and hands it to the transport, logging and
// dropping on failure: the flood
// and retransmission machinery is what recovers from a lost send, not this
// call site.
func (r *Router) sendPacket(ifaceIdx uint32, pkt wire.Packet, dest netip.AddrPort) {
	b, err := wire.MarshalPacket(pkt)
	if err != nil {
		logger.Errorf("ospf: failed to marshal %v packet: %v", pkt.Header.Type, err)
		return
	}
	if err := r.transport.Send(ifaceIdx, b, dest); err != nil {
		logger.Warnf("ospf: send on interface %d to %v failed: %v", ifaceIdx, dest, err)
	}
}

// fullNeighborTargets collects, under r.mu, the address and owning
// interface index of every Full neighbor across the given interface set.
func fullNeighborTargets(ifaces map[uint32]*iface.Interface) ([]netip.AddrPort, map[netip.AddrPort]uint32) {
	var targets []netip.AddrPort
	ifaceOf := make(map[netip.AddrPort]uint32)
	for idx, i := range ifaces {
		for _, n := range i.Neighbors() {
			if n.State != iface.Full {
				continue
			}
			targets = append(targets, n.Address)
			ifaceOf[n.Address] = idx
		}
	}
	return targets, ifaceOf
}

// floodArea reliably floods lsa to every Full neighbor in area id, except
// skip (normally the neighbor the update was just received from).
func (r *Router) floodArea(id uint32, lsa wire.LSA, skip netip.AddrPort) {
	r.mu.Lock()
	a, ok := r.areas[id]
	var targets []netip.AddrPort
	var ifaceOf map[netip.AddrPort]uint32
	if ok {
		targets, ifaceOf = fullNeighborTargets(a.ifaces)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	sendNow := func(addr netip.AddrPort, key wire.Key) {
		r.sendLSU(ifaceOf[addr], addr, []wire.LSA{lsa}, id)
	}
	a.flood.Flood(sendNow, targets, skip, lsa.Header.Key())
}

// floodBackbone reliably floods lsa to every Full neighbor across every
// area this router participates in: Area-LSAs and L2-Summary-LSAs are not
// scoped to one area.
func (r *Router) floodBackbone(lsa wire.LSA, skip netip.AddrPort) {
	r.mu.Lock()
	ifaces := make(map[uint32]*iface.Interface)
	for _, a := range r.areas {
		for idx, i := range a.ifaces {
			ifaces[idx] = i
		}
	}
	targets, ifaceOf := fullNeighborTargets(ifaces)
	r.mu.Unlock()

	sendNow := func(addr netip.AddrPort, key wire.Key) {
		r.sendLSU(ifaceOf[addr], addr, []wire.LSA{lsa}, backboneAreaID)
	}
	r.backboneFlood.Flood(sendNow, targets, skip, lsa.Header.Key())
}

// resendArea returns the retransmission callback for area id's flood
// queue: re-fetch the current instance from the area's own database (it
// may have moved on since the original send) and resend it.
func (r *Router) resendArea(id uint32) func(addr netip.AddrPort, key wire.Key) {
	return func(addr netip.AddrPort, key wire.Key) {
		r.mu.Lock()
		a, ok := r.areas[id]
		ifaceIdx, hasIface := r.neighborIface[addr]
		r.mu.Unlock()
		if !ok || !hasIface {
			return
		}
		lsa, found := a.db.Get(key, r.sched.Now())
		if !found {
			return
		}
		r.sendLSU(ifaceIdx, addr, []wire.LSA{lsa}, id)
	}
}

// resendBackbone is the retransmission callback for the backbone flood
// queue.
func (r *Router) resendBackbone(addr netip.AddrPort, key wire.Key) {
	r.mu.Lock()
	ifaceIdx, hasIface := r.neighborIface[addr]
	r.mu.Unlock()
	if !hasIface {
		return
	}
	lsa, found := r.backboneDB.Get(key, r.sched.Now())
	if !found {
		return
	}
	r.sendLSU(ifaceIdx, addr, []wire.LSA{lsa}, backboneAreaID)
}

// onOriginateArea returns the callback lsagen.Generator invokes for area id
// whenever it originates a fresh Router-LSA or L1-Summary-LSA instance:
// flood it to every Full neighbor in that area.
func (r *Router) onOriginateArea(id uint32) func(lsa wire.LSA) {
	return func(lsa wire.LSA) {
		r.floodArea(id, lsa, netip.AddrPort{})
	}
}

// onOriginateBackbone is the callback for freshly originated Area-LSAs and
// L2-Summary-LSAs: flood to every Full neighbor regardless of area.
func (r *Router) onOriginateBackbone(lsa wire.LSA) {
	r.floodBackbone(lsa, netip.AddrPort{})
}

// onBecomeAreaLeader returns the callback fired when this router becomes
// leader of area id. Only the primary area's leadership drives backbone
// origination; see the Router.primaryArea field doc for why.
func (r *Router) onBecomeAreaLeader(id uint32) func() {
	return func() {
		r.mu.Lock()
		isPrimary := r.cfg.EnableAreaProxy && r.primaryArea != nil && *r.primaryArea == id
		r.mu.Unlock()
		if !isPrimary {
			return
		}
		r.backboneGen.TriggerArea()
		r.backboneGen.TriggerL2Summary()
	}
}

// onLoseAreaLeader returns the callback fired when this router steps down
// from leadership of area id. Backbone LSAs already originated are simply
// left to age out via the refresh timer lapsing; there is no distinct
// withdrawal LSA in this model.
func (r *Router) onLoseAreaLeader(id uint32) func() {
	return func() {}
}
