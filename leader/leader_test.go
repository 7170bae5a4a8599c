package leader

import (
	"testing"
	"time"

	"github.com/lstate/ospfd/internal/clock"
)

func TestBecomesLeaderAfterDebounceWhenMinimum(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)

	became, lost := 0, 0
	l := New(1, sched, 10*time.Second, func() { became++ }, func() { lost++ })

	l.Update(map[uint32]struct{}{2: {}, 3: {}})
	if l.IsLeader() {
		t.Fatal("expected not leader before debounce elapses")
	}

	sched.Advance(11 * time.Second)
	if !l.IsLeader() {
		t.Fatal("expected leader after debounce elapses")
	}
	if became != 1 {
		t.Errorf("got %d onBecomeLeader calls, want 1", became)
	}
	if lost != 0 {
		t.Errorf("got %d onLoseLeader calls, want 0", lost)
	}
}

func TestNeverLeaderWhenSmallerIDExists(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	l := New(5, sched, 1*time.Second, nil, nil)

	l.Update(map[uint32]struct{}{1: {}, 3: {}})
	sched.Advance(5 * time.Second)

	if l.IsLeader() {
		t.Fatal("expected not leader when a smaller router id exists")
	}
}

func TestLosesLeadershipImmediatelyWhenSmallerIDAppears(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	lost := 0
	l := New(5, sched, 1*time.Second, nil, func() { lost++ })

	l.Update(map[uint32]struct{}{10: {}})
	sched.Advance(2 * time.Second)
	if !l.IsLeader() {
		t.Fatal("expected leader to be established first")
	}

	l.Update(map[uint32]struct{}{1: {}, 10: {}})
	if l.IsLeader() {
		t.Fatal("expected leadership to be lost immediately")
	}
	if lost != 1 {
		t.Errorf("got %d onLoseLeader calls, want 1", lost)
	}
}

func TestRepeatedUpdatesWhileMinimumDoNotResetDebounce(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	became := 0
	l := New(1, sched, 10*time.Second, func() { became++ }, nil)

	l.Update(map[uint32]struct{}{2: {}})
	sched.Advance(5 * time.Second)
	l.Update(map[uint32]struct{}{2: {}, 3: {}}) // still minimum, should not restart the debounce timer

	sched.Advance(6 * time.Second) // total 11s since first Update
	if !l.IsLeader() {
		t.Fatal("expected leadership at original debounce deadline, not restarted")
	}
	if became != 1 {
		t.Errorf("got %d onBecomeLeader calls, want 1", became)
	}
}
