package ospf

import (
	"fmt"
	"net/netip"

	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/transport"
	"github.com/lstate/ospfd/wire"
)

// AddInterface registers a new interface at ifaceIndex with local
// address/mask, binding it on the transport and assigning it to area 0
// until SetArea says otherwise. It is a no-op error to call this twice for
// the same index.
func (r *Router) AddInterface(ifaceIndex uint32, local netip.AddrPort, mask uint32) error {
	if err := r.transport.Bind(ifaceIndex, local, mask); err != nil {
		return fmt.Errorf("ospf: bind interface %d: %w", ifaceIndex, err)
	}

	r.mu.Lock()
	a := r.area(0)
	hooks := iface.Hooks{
		OnNeighborUp:   r.onNeighborUp(ifaceIndex, 0),
		OnNeighborDown: r.onNeighborDown(ifaceIndex, 0),
		OnNeighborFull: r.onNeighborFull(ifaceIndex, 0),
	}
	i := iface.New(r.routerID, 0, local, mask, r.cfg.DefaultMetric, r.cfg, r.sched, r.makeSendFunc(ifaceIndex), hooks)
	a.ifaces[ifaceIndex] = i
	r.ifaceArea[ifaceIndex] = 0
	r.recomputePrimaryArea()
	enabled := r.enabled
	r.mu.Unlock()

	if enabled {
		up := r.interfaceUp(ifaceIndex)
		r.mu.Lock()
		r.ifaceUp[ifaceIndex] = up
		r.mu.Unlock()
		if up {
			i.Start()
		}
	}
	return nil
}

// makeSendFunc returns the iface.SendFunc for ifaceIndex: a zero addr means
// the link's Hello multicast group, resolved to transport.AllRouters.
func (r *Router) makeSendFunc(ifaceIndex uint32) iface.SendFunc {
	return func(pkt wire.Packet, addr netip.AddrPort) {
		dest := addr
		if dest == (netip.AddrPort{}) {
			dest = transport.AllRouters
		}
		r.sendPacket(ifaceIndex, pkt, dest)
	}
}

// SetArea moves an already-registered interface into areaID, rebuilding
// its Hooks to reference the new area's hooks closures and triggering
// re-origination of both the old and new area's Router-LSA/L1-Summary-LSA.
func (r *Router) SetArea(ifaceIndex, areaID uint32) error {
	r.mu.Lock()
	oldAreaID, exists := r.ifaceArea[ifaceIndex]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("ospf: SetArea: unknown interface %d", ifaceIndex)
	}
	if oldAreaID == areaID {
		r.mu.Unlock()
		return nil
	}

	oldArea := r.areas[oldAreaID]
	i := oldArea.ifaces[ifaceIndex]
	delete(oldArea.ifaces, ifaceIndex)

	i.AreaID = areaID
	newArea := r.area(areaID)
	newArea.ifaces[ifaceIndex] = i
	r.ifaceArea[ifaceIndex] = areaID
	r.recomputePrimaryArea()
	i.SetHooks(iface.Hooks{
		OnNeighborUp:   r.onNeighborUp(ifaceIndex, areaID),
		OnNeighborDown: r.onNeighborDown(ifaceIndex, areaID),
		OnNeighborFull: r.onNeighborFull(ifaceIndex, areaID),
	})
	r.mu.Unlock()

	oldArea.gen.TriggerRouterLSA()
	oldArea.gen.TriggerL1Summary()
	newArea.gen.TriggerRouterLSA()
	newArea.gen.TriggerL1Summary()
	return nil
}

// SetMetric updates an interface's advertised metric, triggering
// re-origination of its area's Router-LSA and L1-Summary-LSA.
func (r *Router) SetMetric(ifaceIndex uint32, metric uint16) error {
	r.mu.Lock()
	areaID, exists := r.ifaceArea[ifaceIndex]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("ospf: SetMetric: unknown interface %d", ifaceIndex)
	}
	a := r.areas[areaID]
	a.ifaces[ifaceIndex].Metric = metric
	r.mu.Unlock()

	a.gen.TriggerRouterLSA()
	a.gen.TriggerL1Summary()
	return nil
}

// AddAllReachableAddresses re-triggers L1-Summary-LSA origination for
// areaID from its interfaces' current local subnets, e.g. after a driver
// adds addresses out of band.
func (r *Router) AddAllReachableAddresses(areaID uint32) {
	r.mu.Lock()
	a, ok := r.areas[areaID]
	r.mu.Unlock()
	if !ok {
		return
	}
	a.gen.TriggerL1Summary()
}

// InstallGateway configures this router as areaID's default-route gateway:
// buildL1Prefixes will inject a 0.0.0.0/0 prefix at cfg.DefaultMetric for
// that area. upstreamNextHop is recorded for introspection; route
// installation itself still flows through the normal SPF/fib pipeline
// since the default route is just another L1-Summary prefix once
// originated.
func (r *Router) InstallGateway(ifaceIndices []uint32, upstreamNextHop netip.Addr) error {
	if len(ifaceIndices) == 0 {
		return fmt.Errorf("ospf: InstallGateway: no interfaces given")
	}

	r.mu.Lock()
	areaID, exists := r.ifaceArea[ifaceIndices[0]]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("ospf: InstallGateway: unknown interface %d", ifaceIndices[0])
	}
	r.hasGateway = true
	r.gatewayIfaces = append([]uint32(nil), ifaceIndices...)
	r.gatewayNextHop = upstreamNextHop
	r.gatewayArea = areaID
	a := r.area(areaID)
	r.mu.Unlock()

	a.gen.TriggerL1Summary()
	return nil
}

// Enable starts Hello origination on every registered interface whose link
// is currently up, and begins the refresh sweep for self-originated LSAs
// plus (when cfg.AutoSyncInterfaces is set) the interface link-state poll.
// An interface the transport reports as down is left stopped, so Enable
// itself never creates an adjacency or route through a dead link. Calling
// Enable twice without an intervening Disable is a no-op.
func (r *Router) Enable() {
	r.mu.Lock()
	if r.enabled {
		r.mu.Unlock()
		return
	}
	r.enabled = true
	type bound struct {
		idx uint32
		i   *iface.Interface
	}
	var toStart []bound
	for idx, areaID := range r.ifaceArea {
		toStart = append(toStart, bound{idx: idx, i: r.areas[areaID].ifaces[idx]})
	}
	r.mu.Unlock()

	for _, b := range toStart {
		up := r.interfaceUp(b.idx)
		r.mu.Lock()
		r.ifaceUp[b.idx] = up
		r.mu.Unlock()
		if up {
			b.i.Start()
		}
	}
	r.scheduleRefresh()
	r.scheduleInterfaceSync()
	logger.Infof("ospf: router %d enabled", r.routerID)
}

// Disable stops Hello origination and dead-timer tracking on every
// interface. Already-installed LSDB/routing state is left untouched for
// inspection; only the running protocol machinery stops.
func (r *Router) Disable() {
	r.mu.Lock()
	if !r.enabled {
		r.mu.Unlock()
		return
	}
	r.enabled = false
	var toStop []*iface.Interface
	for _, a := range r.areas {
		for _, i := range a.ifaces {
			toStop = append(toStop, i)
		}
	}
	r.mu.Unlock()

	for _, i := range toStop {
		i.Stop()
	}
	logger.Infof("ospf: router %d disabled", r.routerID)
}

// SetAreaLeader overrides area-leader election for this router's primary
// area, for tests that need a deterministic leader without waiting out the
// debounce. Production code should never call this.
func (r *Router) SetAreaLeader(isLeader bool) {
	r.mu.Lock()
	primary := r.primaryArea
	var a *areaState
	if primary != nil {
		a = r.areas[*primary]
	}
	r.mu.Unlock()
	if a == nil {
		return
	}
	a.lead.Force(isLeader)
}
