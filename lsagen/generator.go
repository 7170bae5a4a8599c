package lsagen

import (
	"sync"
	"time"

	"github.com/lstate/ospfd/config"
	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/lsdb"
	"github.com/lstate/ospfd/wire"
)

// Generator originates and re-originates one router's LSAs into an
// lsdb.Database, throttling each of the four kinds independently so a
// burst of topology changes collapses into one re-origination per kind
// per throttle window.
type Generator struct {
	mu       sync.Mutex
	routerID uint32
	areaID   uint32
	db       *lsdb.Database
	sched    *clock.Scheduler
	seq      map[wire.LSAType]uint32

	onOriginate func(lsa wire.LSA)

	routerThrottle    *Throttler
	l1SummaryThrottle *Throttler
	areaThrottle      *Throttler
	l2SummaryThrottle *Throttler

	buildRouterLinks    func() []wire.RouterLink
	buildL1Prefixes     func() []wire.Prefix
	buildAreaLinks      func() []wire.AreaLink
	buildL2Prefixes     func() []wire.Prefix
}

// New constructs a Generator for routerID, storing originated LSAs into db
// and invoking onOriginate (typically wiring into flood) with each freshly
// originated instance.
func New(routerID uint32, db *lsdb.Database, sched *clock.Scheduler, cfg config.Config, onOriginate func(lsa wire.LSA)) *Generator {
	g := &Generator{
		routerID:    routerID,
		db:          db,
		sched:       sched,
		seq:         make(map[wire.LSAType]uint32),
		onOriginate: onOriginate,
	}
	g.routerThrottle = NewThrottler(sched, cfg.ThrottleInitialInterval, cfg.ThrottleMaxInterval, g.originateRouter)
	g.l1SummaryThrottle = NewThrottler(sched, cfg.ThrottleInitialInterval, cfg.ThrottleMaxInterval, g.originateL1Summary)
	g.areaThrottle = NewThrottler(sched, cfg.ThrottleInitialInterval, cfg.ThrottleMaxInterval, g.originateArea)
	g.l2SummaryThrottle = NewThrottler(sched, cfg.ThrottleInitialInterval, cfg.ThrottleMaxInterval, g.originateL2Summary)
	return g
}

// SetLinkSources wires the callbacks used to compute each LSA kind's body
// at origination time. Must be called once before the first Trigger*.
func (g *Generator) SetLinkSources(routerLinks func() []wire.RouterLink, l1Prefixes func() []wire.Prefix, areaLinks func() []wire.AreaLink, l2Prefixes func() []wire.Prefix) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buildRouterLinks = routerLinks
	g.buildL1Prefixes = l1Prefixes
	g.buildAreaLinks = areaLinks
	g.buildL2Prefixes = l2Prefixes
}

// SetAreaID records which area this Generator's Area-LSA represents, used
// as that LSA's LinkStateID so a receiver can tell which area a given
// Area-LSA speaks for (spf.RunL2's borderRouterArea). Only meaningful for a
// Generator that calls TriggerArea.
func (g *Generator) SetAreaID(areaID uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.areaID = areaID
}

// TriggerRouterLSA requests re-origination of this router's Router-LSA.
func (g *Generator) TriggerRouterLSA() { g.routerThrottle.Trigger() }

// TriggerL1Summary requests re-origination of this router's L1-Summary-LSA.
func (g *Generator) TriggerL1Summary() { g.l1SummaryThrottle.Trigger() }

// TriggerArea requests re-origination of this router's Area-LSA. Callers
// must only invoke this while area-leader.
func (g *Generator) TriggerArea() { g.areaThrottle.Trigger() }

// TriggerL2Summary requests re-origination of this router's L2-Summary-LSA.
// Callers must only invoke this while area-leader.
func (g *Generator) TriggerL2Summary() { g.l2SummaryThrottle.Trigger() }

func (g *Generator) nextSeq(t wire.LSAType) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq[t]++
	return g.seq[t]
}

func (g *Generator) originateRouter() {
	links := g.buildRouterLinks()
	lsa := wire.LSA{
		Header: wire.LSAHeader{
			Type:              wire.LSATypeRouter,
			LinkStateID:       g.routerID,
			AdvertisingRouter: g.routerID,
			SeqNum:            g.nextSeq(wire.LSATypeRouter),
		},
		Router: &wire.RouterLSABody{Links: links},
	}
	g.install(lsa)
}

func (g *Generator) originateL1Summary() {
	prefixes := g.buildL1Prefixes()
	lsa := wire.LSA{
		Header: wire.LSAHeader{
			Type:              wire.LSATypeL1Summary,
			LinkStateID:       g.routerID,
			AdvertisingRouter: g.routerID,
			SeqNum:            g.nextSeq(wire.LSATypeL1Summary),
		},
		L1Summary: &wire.SummaryLSABody{Prefixes: prefixes},
	}
	g.install(lsa)
}

func (g *Generator) originateArea() {
	links := g.buildAreaLinks()
	g.mu.Lock()
	areaID := g.areaID
	g.mu.Unlock()
	lsa := wire.LSA{
		Header: wire.LSAHeader{
			Type:              wire.LSATypeArea,
			LinkStateID:       areaID,
			AdvertisingRouter: g.routerID,
			SeqNum:            g.nextSeq(wire.LSATypeArea),
		},
		Area: &wire.AreaLSABody{Links: links},
	}
	g.install(lsa)
}

func (g *Generator) originateL2Summary() {
	prefixes := g.buildL2Prefixes()
	lsa := wire.LSA{
		Header: wire.LSAHeader{
			Type:              wire.LSATypeL2Summary,
			LinkStateID:       g.routerID,
			AdvertisingRouter: g.routerID,
			SeqNum:            g.nextSeq(wire.LSATypeL2Summary),
		},
		L2Summary: &wire.SummaryLSABody{Prefixes: prefixes},
	}
	g.install(lsa)
}

func (g *Generator) install(lsa wire.LSA) {
	g.db.Install(lsa, g.sched.Now())
	if g.onOriginate != nil {
		g.onOriginate(lsa)
	}
}

// RefreshInterval reports the interval at which self-originated LSAs
// should be proactively re-originated with a fresh sequence number, even
// with no topology change, to keep them from reaching MaxAge.
func RefreshInterval(cfg config.Config) time.Duration {
	return cfg.LSRefreshTime
}
