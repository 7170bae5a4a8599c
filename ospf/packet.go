package ospf

import (
	"net/netip"

	"github.com/lstate/ospfd/flood"
	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/lsdb"
	"github.com/lstate/ospfd/spf"
	"github.com/lstate/ospfd/transport"
	"github.com/lstate/ospfd/wire"
)

// lsScope bundles the per-scope collaborators a received LSA is processed
// against: either one area's own database, or the backbone's, selected by
// the packet header's area ID (backboneAreaID for Area/L2-Summary
// traffic). area is nil for the backbone scope: leader election is an
// area-local concept, not a backbone one.
type lsScope struct {
	db      *lsdb.Database
	guard   *flood.ArrivalGuard
	queue   *flood.Queue
	spf     *spf.Scheduler
	wireArea uint32
	floodFn func(lsa wire.LSA, skip netip.AddrPort)
	area    *areaState
}

func (r *Router) scopeFor(headerAreaID uint32) (*lsScope, bool) {
	if headerAreaID == backboneAreaID {
		return &lsScope{
			db: r.backboneDB, guard: r.backboneGuard, queue: r.backboneFlood, spf: r.backboneSPF,
			wireArea: backboneAreaID, floodFn: r.floodBackbone,
		}, true
	}

	r.mu.Lock()
	a, ok := r.areas[headerAreaID]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	return &lsScope{
		db: a.db, guard: a.guard, queue: a.flood, spf: a.spf, wireArea: headerAreaID,
		floodFn: func(lsa wire.LSA, skip netip.AddrPort) { r.floodArea(headerAreaID, lsa, skip) },
		area:    a,
	}, true
}

// HandlePacket processes one packet received from the transport. It never
// returns an error: every rejection path logs and drops the packet (no
// counter is kept), since a single malformed or stale packet must never
// stall the control loop.
func (r *Router) HandlePacket(p transport.Packet) {
	pkt, err := wire.ParsePacket(p.Payload)
	if err != nil {
		logDropped("parse", err)
		return
	}

	switch pkt.Header.Type {
	case wire.PacketTypeHello:
		r.handleHello(p, pkt)
	case wire.PacketTypeLinkStateUpdate:
		r.handleLSUpdate(p, pkt)
	case wire.PacketTypeLinkStateAcknowledge:
		r.handleLSAck(p, pkt)
	}
}

func (r *Router) handleHello(p transport.Packet, pkt wire.Packet) {
	if pkt.Hello == nil {
		return
	}
	r.mu.Lock()
	areaID, ok := r.ifaceArea[p.Interface]
	var i *iface.Interface
	if ok {
		if a, exists := r.areas[areaID]; exists {
			i = a.ifaces[p.Interface]
		}
	}
	r.mu.Unlock()
	if i == nil {
		return
	}
	i.ReceiveHello(pkt.Header.RouterID, p.Source, *pkt.Hello, r.sched.Now())
}

func (r *Router) handleLSUpdate(p transport.Packet, pkt wire.Packet) {
	if pkt.LSUpdate == nil {
		return
	}
	scope, ok := r.scopeFor(pkt.Header.AreaID)
	if !ok {
		logDropped("lsupdate: unrecognized area", nil)
		return
	}

	now := r.sched.Now()
	var acks []wire.LSAHeader
	for _, lsa := range pkt.LSUpdate.LSAs {
		key := lsa.Header.Key()

		current, hasCurrent := scope.db.Get(key, now)
		cmp := 1
		if hasCurrent {
			cmp = lsdb.Compare(lsa.Header, current.Header)
		}

		switch {
		case cmp > 0:
			// MinLSArrival only throttles how fast successive installs of
			// the same key are accepted; a duplicate or stale instance
			// below is handled regardless of how recently one arrived.
			if !scope.guard.Allow(key, now) {
				continue
			}
			scope.db.Install(lsa, now)
			scope.floodFn(lsa, p.Source)
			scope.spf.Trigger()
			if lsa.Header.Type == wire.LSATypeRouter && scope.area != nil {
				scope.area.lead.Update(areaReachableMembers(scope.area, r.routerID, now))
			}
			acks = append(acks, lsa.Header)
		case cmp == 0:
			scope.queue.Ack(p.Source, key)
		default:
			if hasCurrent {
				r.sendLSU(p.Interface, p.Source, []wire.LSA{current}, scope.wireArea)
			}
		}
	}

	if len(acks) > 0 {
		r.sendLSAck(p.Interface, p.Source, acks, scope.wireArea)
	}
}

func (r *Router) handleLSAck(p transport.Packet, pkt wire.Packet) {
	if pkt.LSAck == nil {
		return
	}
	scope, ok := r.scopeFor(pkt.Header.AreaID)
	if !ok {
		return
	}
	for _, h := range pkt.LSAck.Headers {
		scope.queue.Ack(p.Source, h.Key())
	}
}

func (r *Router) sendLSAck(ifaceIdx uint32, dest netip.AddrPort, headers []wire.LSAHeader, areaID uint32) {
	pkt := wire.Packet{
		Header: wire.Header{Type: wire.PacketTypeLinkStateAcknowledge, RouterID: r.routerID, AreaID: areaID},
		LSAck:  &wire.LSAckPayload{Headers: headers},
	}
	r.sendPacket(ifaceIdx, pkt, dest)
}
