// Package lsagen originates and re-originates this router's own LSAs:
// Router-LSA and L1-Summary-LSA always, Area-LSA and L2-Summary-LSA only
// while area-leader. Generation is throttled so a flapping
// link cannot make the router re-flood on every single change.
//
// Grounded on a rebuild-local-LSA-from-adjacency-state-and-bump-sequence
// idiom, generalized to four LSA kinds and given an explicit
// doubling-backoff throttle.
package lsagen

import (
	"sync"
	"time"

	"github.com/lstate/ospfd/internal/clock"
)

// Throttler coalesces rapid successive regeneration triggers into at most
// one origination per throttle window, doubling the window on each
// back-to-back trigger up to max and resetting to initial once the
// generator has been quiet for a full window.
type Throttler struct {
	mu      sync.Mutex
	sched   *clock.Scheduler
	initial time.Duration
	max     time.Duration
	fire    func()

	current   time.Duration
	lastFire  time.Time
	fired     bool
	scheduled *clock.Handle
}

// NewThrottler builds a Throttler that calls fire at most once per
// current throttle window, starting at initial and doubling up to max.
func NewThrottler(sched *clock.Scheduler, initial, max time.Duration, fire func()) *Throttler {
	return &Throttler{sched: sched, initial: initial, max: max, fire: fire, current: initial}
}

// Trigger requests a regeneration. If the throttle window has elapsed
// since the last origination, fire runs immediately. Otherwise a single
// deferred firing is scheduled for the end of the current window,
// coalescing any further Trigger calls that arrive before then.
func (t *Throttler) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.sched.Now()
	if !t.fired || now.Sub(t.lastFire) >= t.current {
		t.doFire(now, false)
		return
	}

	if t.scheduled != nil {
		return
	}

	wait := t.current - now.Sub(t.lastFire)
	t.scheduled = t.sched.After(wait, t.onScheduledFire)
}

func (t *Throttler) onScheduledFire() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scheduled = nil
	t.doFire(t.sched.Now(), true)
}

// doFire must be called with t.mu held. backToBack is true for a deferred
// firing (a trigger arrived inside the window), which doubles the window;
// an immediate firing means a full window passed quietly, so the window
// resets to initial.
func (t *Throttler) doFire(now time.Time, backToBack bool) {
	if backToBack {
		t.current = min(t.current*2, t.max)
	} else {
		t.current = t.initial
	}
	t.fired = true
	t.lastFire = now
	t.mu.Unlock()
	t.fire()
	t.mu.Lock()
}
