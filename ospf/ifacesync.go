package ospf

import (
	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/internal/logger"
)

// interfaceUp polls the transport once for ifaceIndex's current link
// state, treating a transport error as "still up" so a transient polling
// failure never tears down an otherwise healthy adjacency.
func (r *Router) interfaceUp(ifaceIndex uint32) bool {
	up, err := r.transport.InterfaceUp(ifaceIndex)
	if err != nil {
		logger.Warnf("ospf: interface %d up-check failed: %v", ifaceIndex, err)
		return true
	}
	return up
}

// scheduleInterfaceSync arms the recurring link-state poll described by
// cfg.AutoSyncInterfaces/InterfaceSyncInterval: every InterfaceSyncInterval,
// check each bound interface's InterfaceUp status and react to a down
// transition by halting its Hello traffic, dropping its neighbors, and
// reconverging the forwarding table around the loss. It is a no-op when
// AutoSyncInterfaces is disabled.
func (r *Router) scheduleInterfaceSync() {
	r.mu.Lock()
	auto := r.cfg.AutoSyncInterfaces
	interval := r.cfg.InterfaceSyncInterval
	r.mu.Unlock()
	if !auto {
		return
	}

	var tick func()
	tick = func() {
		r.mu.Lock()
		enabled := r.enabled
		type bound struct {
			idx    uint32
			areaID uint32
			i      *iface.Interface
		}
		var ifaces []bound
		for idx, areaID := range r.ifaceArea {
			ifaces = append(ifaces, bound{idx: idx, areaID: areaID, i: r.areas[areaID].ifaces[idx]})
		}
		r.mu.Unlock()

		if !enabled {
			return
		}
		for _, b := range ifaces {
			nowUp := r.interfaceUp(b.idx)

			r.mu.Lock()
			wasUp, known := r.ifaceUp[b.idx]
			r.ifaceUp[b.idx] = nowUp
			r.mu.Unlock()

			if known && wasUp && !nowUp {
				r.handleInterfaceDown(b.areaID, b.i)
			}
		}
		r.sched.After(interval, tick)
	}
	r.sched.After(interval, tick)
}

// handleInterfaceDown reacts to i's link going down: neighbors on
// it are dropped immediately rather than waiting out their dead timers,
// the area's Router-LSA is re-triggered to reflect the lost adjacencies,
// leader election is re-evaluated against the area's new SPF-reachable
// set, and the forwarding table is rebuilt so routes that resolved
// through this interface are withdrawn right away rather than waiting for
// the next SPF run to catch up.
func (r *Router) handleInterfaceDown(areaID uint32, i *iface.Interface) {
	dropped := i.Down()
	if len(dropped) == 0 {
		r.rebuildFib()
		return
	}

	r.mu.Lock()
	a, ok := r.areas[areaID]
	r.mu.Unlock()
	if !ok {
		return
	}

	logger.Infof("ospf: interface down, %d neighbor(s) dropped in area %d", len(dropped), areaID)
	a.gen.TriggerRouterLSA()
	a.lead.Update(areaReachableMembers(a, r.routerID, r.sched.Now()))
	a.spf.Trigger()
	r.rebuildFib()
}
