// Package leader elects the area-leader for one area: the member with the
// numerically smallest router ID, debounced so a router doesn't flap in
// and out of leadership while the area's membership is still settling.
//
// Grounded on the ns-3 area-proxy design referenced from original_source/,
// expressed with the same debounced-state-machine idiom internal/clock
// already establishes for interface dead timers.
package leader

import (
	"sync"
	"time"

	"github.com/lstate/ospfd/internal/clock"
)

// Leader tracks whether this router is the current leader of its area.
type Leader struct {
	mu       sync.Mutex
	routerID uint32
	sched    *clock.Scheduler
	debounce time.Duration

	isLeader bool
	pending  *clock.Handle

	onBecomeLeader func()
	onLoseLeader   func()
}

// New constructs a Leader for routerID. onBecomeLeader fires once this
// router has held minimum-router-id status in its area continuously for
// debounce; onLoseLeader fires immediately (no debounce) the moment a
// smaller router ID appears, so the area is never without exactly the
// lower-ID leader for longer than one membership update.
func New(routerID uint32, sched *clock.Scheduler, debounce time.Duration, onBecomeLeader, onLoseLeader func()) *Leader {
	return &Leader{
		routerID:       routerID,
		sched:          sched,
		debounce:       debounce,
		onBecomeLeader: onBecomeLeader,
		onLoseLeader:   onLoseLeader,
	}
}

// Update supplies the current set of other router IDs known to be in this
// router's area (e.g. advertising routers with a Router-LSA installed in
// the area's LSDB). It re-evaluates whether this router is the minimum.
func (l *Leader) Update(members map[uint32]struct{}) {
	l.mu.Lock()

	isMinimum := true
	for id := range members {
		if id < l.routerID {
			isMinimum = false
			break
		}
	}

	if !isMinimum {
		if l.pending != nil {
			l.pending.Cancel()
			l.pending = nil
		}
		wasLeader := l.isLeader
		l.isLeader = false
		l.mu.Unlock()
		if wasLeader && l.onLoseLeader != nil {
			l.onLoseLeader()
		}
		return
	}

	if l.isLeader || l.pending != nil {
		l.mu.Unlock()
		return
	}

	l.pending = l.sched.After(l.debounce, l.confirm)
	l.mu.Unlock()
}

func (l *Leader) confirm() {
	l.mu.Lock()
	l.pending = nil
	l.isLeader = true
	l.mu.Unlock()

	if l.onBecomeLeader != nil {
		l.onBecomeLeader()
	}
}

// IsLeader reports whether this router currently believes it is the area
// leader.
func (l *Leader) IsLeader() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isLeader
}

// Force overrides the election outcome directly, cancelling any pending
// debounce and firing the relevant callback if the outcome actually
// changes. This is a testing/demo hook — normal operation should always
// go through Update.
func (l *Leader) Force(isLeader bool) {
	l.mu.Lock()
	if l.pending != nil {
		l.pending.Cancel()
		l.pending = nil
	}
	was := l.isLeader
	l.isLeader = isLeader
	l.mu.Unlock()

	if isLeader && !was && l.onBecomeLeader != nil {
		l.onBecomeLeader()
	}
	if !isLeader && was && l.onLoseLeader != nil {
		l.onLoseLeader()
	}
}
