package lsagen

import (
	"testing"
	"time"

	"github.com/lstate/ospfd/config"
	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/lsdb"
	"github.com/lstate/ospfd/wire"
)

func TestTriggerRouterLSAOriginatesAndInstalls(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	db := lsdb.New()
	cfg := config.Default()

	var originated []wire.LSA
	g := New(1, db, sched, cfg, func(lsa wire.LSA) { originated = append(originated, lsa) })
	g.SetLinkSources(
		func() []wire.RouterLink { return []wire.RouterLink{{LinkID: 2, Metric: 1}} },
		func() []wire.Prefix { return nil },
		func() []wire.AreaLink { return nil },
		func() []wire.Prefix { return nil },
	)

	g.TriggerRouterLSA()

	if len(originated) != 1 {
		t.Fatalf("got %d originations, want 1", len(originated))
	}
	if originated[0].Header.SeqNum != 1 {
		t.Errorf("got seq %d, want 1", originated[0].Header.SeqNum)
	}

	lsa, ok := db.Get(wire.Key{Type: wire.LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1}, fc.Now())
	if !ok {
		t.Fatal("expected Router-LSA to be installed")
	}
	if len(lsa.Router.Links) != 1 {
		t.Errorf("got %d links, want 1", len(lsa.Router.Links))
	}
}

func TestRapidTriggersCoalesceWithinThrottleWindow(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	db := lsdb.New()
	cfg := config.Default()
	cfg.ThrottleInitialInterval = 2 * time.Second
	cfg.ThrottleMaxInterval = 8 * time.Second

	count := 0
	g := New(1, db, sched, cfg, func(lsa wire.LSA) { count++ })
	g.SetLinkSources(
		func() []wire.RouterLink { return nil },
		func() []wire.Prefix { return nil },
		func() []wire.AreaLink { return nil },
		func() []wire.Prefix { return nil },
	)

	g.TriggerRouterLSA() // fires immediately
	g.TriggerRouterLSA() // within window, coalesced
	g.TriggerRouterLSA() // still within window, already scheduled

	if count != 1 {
		t.Fatalf("got %d originations before window elapses, want 1", count)
	}

	sched.Advance(3 * time.Second)
	if count != 2 {
		t.Fatalf("got %d originations after window elapses, want 2 (immediate + one coalesced)", count)
	}
}

func TestThrottleDoublesOnBackToBackFiring(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	db := lsdb.New()
	cfg := config.Default()
	cfg.ThrottleInitialInterval = 1 * time.Second
	cfg.ThrottleMaxInterval = 4 * time.Second

	count := 0
	g := New(1, db, sched, cfg, func(lsa wire.LSA) { count++ })
	g.SetLinkSources(
		func() []wire.RouterLink { return nil },
		func() []wire.Prefix { return nil },
		func() []wire.AreaLink { return nil },
		func() []wire.Prefix { return nil },
	)

	g.TriggerRouterLSA() // immediate, window becomes 1s -> next window will double to 2s
	sched.Advance(500 * time.Millisecond)
	g.TriggerRouterLSA() // still within 1s window, scheduled for remainder

	sched.Advance(1 * time.Second) // fires the scheduled one at t=1s, window doubles to 2s
	if count != 2 {
		t.Fatalf("got %d originations, want 2", count)
	}

	g.TriggerRouterLSA() // immediately within the new 2s window -> scheduled
	sched.Advance(100 * time.Millisecond)
	g.TriggerRouterLSA() // coalesced

	sched.Advance(3 * time.Second)
	if count != 3 {
		t.Fatalf("got %d originations, want 3", count)
	}
}

func TestAreaAndL2SummaryUseIndependentThrottles(t *testing.T) {
	fc := clock.NewFakeClock(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	db := lsdb.New()
	cfg := config.Default()

	var kinds []wire.LSAType
	g := New(1, db, sched, cfg, func(lsa wire.LSA) { kinds = append(kinds, lsa.Header.Type) })
	g.SetLinkSources(
		func() []wire.RouterLink { return nil },
		func() []wire.Prefix { return nil },
		func() []wire.AreaLink { return []wire.AreaLink{{PeerAreaID: 2, Metric: 5}} },
		func() []wire.Prefix { return []wire.Prefix{{Address: 1, Mask: 2, Metric: 3}} },
	)

	g.TriggerArea()
	g.TriggerL2Summary()

	if len(kinds) != 2 {
		t.Fatalf("got %d originations, want 2", len(kinds))
	}
	if kinds[0] != wire.LSATypeArea || kinds[1] != wire.LSATypeL2Summary {
		t.Errorf("got kinds %v, want [Area L2Summary]", kinds)
	}
}
