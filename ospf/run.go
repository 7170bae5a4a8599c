package ospf

import "time"

// Run is the single control-plane loop: it merges the scheduler's pending
// timers with the transport's receive channel, processing exactly one
// event to completion before looking at the next so the Router stays a
// single-owner actor. It blocks until stop is closed or the transport's
// receive channel closes.
func (r *Router) Run(stop <-chan struct{}) {
	receive := r.transport.Receive()

	for {
		deadline, hasDeadline := r.sched.NextDeadline()
		if !hasDeadline {
			select {
			case <-stop:
				return
			case p, ok := <-receive:
				if !ok {
					return
				}
				r.HandlePacket(p)
			}
			continue
		}

		wait := deadline.Sub(r.sched.Now())
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)

		select {
		case <-stop:
			timer.Stop()
			return
		case p, ok := <-receive:
			timer.Stop()
			if !ok {
				return
			}
			r.HandlePacket(p)
		case <-timer.C:
			r.sched.Tick()
		}
	}
}

// scheduleRefresh arms the recurring proactive re-origination sweep: every
// LSRefreshTime, re-trigger this router's own LSAs with a fresh sequence
// number even with no topology change, so they never reach MaxAge on a
// quiet network.
func (r *Router) scheduleRefresh() {
	var tick func()
	tick = func() {
		r.mu.Lock()
		enabled := r.enabled
		areas := make([]*areaState, 0, len(r.areas))
		for _, a := range r.areas {
			areas = append(areas, a)
		}
		primary := r.primaryArea
		var primaryState *areaState
		if primary != nil {
			primaryState = r.areas[*primary]
		}
		interval := r.cfg.LSRefreshTime
		r.mu.Unlock()

		if !enabled {
			return
		}
		for _, a := range areas {
			a.gen.TriggerRouterLSA()
			a.gen.TriggerL1Summary()
		}
		if primaryState != nil && primaryState.lead.IsLeader() {
			r.backboneGen.TriggerArea()
			r.backboneGen.TriggerL2Summary()
		}
		r.sched.After(interval, tick)
	}
	r.sched.After(r.cfg.LSRefreshTime, tick)
}
