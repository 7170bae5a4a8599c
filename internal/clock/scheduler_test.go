package clock

import (
	"testing"
	"time"
)

func TestAdvanceFiresInOrder(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))
	s := NewScheduler(fc)

	var order []int
	s.After(3*time.Second, func() { order = append(order, 3) })
	s.After(1*time.Second, func() { order = append(order, 1) })
	s.After(2*time.Second, func() { order = append(order, 2) })

	s.Advance(5 * time.Second)

	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))
	s := NewScheduler(fc)

	fired := false
	h := s.After(time.Second, func() { fired = true })
	h.Cancel()

	s.Advance(2 * time.Second)

	if fired {
		t.Fatal("cancelled event fired")
	}
}

func TestRescheduleFromWithinCallback(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))
	s := NewScheduler(fc)

	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			s.After(time.Second, tick)
		}
	}
	s.After(time.Second, tick)

	s.Advance(10 * time.Second)

	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestAdvancePanicsOnRealClock(t *testing.T) {
	s := NewScheduler(RealClock{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic advancing a real-clock scheduler")
		}
	}()
	s.Advance(time.Second)
}
