package spf

import (
	"sync"
	"time"

	"github.com/lstate/ospfd/internal/clock"
)

// Scheduler debounces SPF runs: any LSDB change calls Trigger, which
// schedules a run at now+SpfDelay; further Trigger calls within that
// window coalesce into the same run. After a run completes, HoldDown
// prevents the next run from starting until it elapses.
type Scheduler struct {
	mu       sync.Mutex
	sched    *clock.Scheduler
	delay    time.Duration
	holdDown time.Duration
	run      func()

	scheduled *clock.Handle
	lastRun   time.Time
	ranOnce   bool
}

// NewScheduler builds a debounced SPF scheduler that calls run for each
// coalesced batch of triggers.
func NewScheduler(sched *clock.Scheduler, delay, holdDown time.Duration, run func()) *Scheduler {
	return &Scheduler{sched: sched, delay: delay, holdDown: holdDown, run: run}
}

// Trigger requests an SPF run. If one is already scheduled or the
// hold-down window from the last run hasn't elapsed, this just notes that
// another run is needed once the window allows it.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduled != nil {
		return
	}

	now := s.sched.Now()
	wait := s.delay
	if s.ranOnce {
		sinceLast := now.Sub(s.lastRun)
		holdRemaining := s.holdDown - sinceLast
		if holdRemaining > wait {
			wait = holdRemaining
		}
	}

	s.scheduled = s.sched.After(wait, s.fire)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	s.scheduled = nil
	s.mu.Unlock()

	s.run()

	s.mu.Lock()
	s.ranOnce = true
	s.lastRun = s.sched.Now()
	s.mu.Unlock()
}
