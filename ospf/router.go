// Package ospf is the control plane: the Router type that owns every
// interface, per-area link-state database, flood queue, area-leader
// election and SPF scheduler for one routing instance, and wires them
// together. Grounded on a mutex-guarded owner of all maps with
// AddNeighbor/RemoveNeighbor/UpdateLSA entry points, generalized from one
// flat neighbor table into the full
// interface/area/LSDB/flood/leader/SPF pipeline.
package ospf

import (
	"net/netip"
	"sync"

	"github.com/lstate/ospfd/config"
	"github.com/lstate/ospfd/fib"
	"github.com/lstate/ospfd/flood"
	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/internal/assert"
	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/leader"
	"github.com/lstate/ospfd/lsagen"
	"github.com/lstate/ospfd/lsdb"
	"github.com/lstate/ospfd/spf"
	"github.com/lstate/ospfd/transport"
	"github.com/lstate/ospfd/wire"
)

// areaState is the per-area slice of a Router's state: the area's own
// Router-LSA/L1-Summary-LSA database, flood queue, generator, leader
// election and L1 SPF scheduler. A Router participates in as many areas
// as it has interfaces assigned to (set via SetArea).
type areaState struct {
	id uint32

	db    *lsdb.Database
	flood *flood.Queue
	guard *flood.ArrivalGuard
	gen   *lsagen.Generator
	lead  *leader.Leader
	spf   *spf.Scheduler

	ifaces map[uint32]*iface.Interface // interface index -> Interface, for this area
	routes []spf.Route                 // last L1 route set computed for this area
}

// Router is one ospfd instance: single-threaded control plane, driven by
// Run, with every mutable field behind mu so operations invoked from a
// driver goroutine (Configure, per-node ops, introspection) are safe to
// call concurrently with the Run loop.
type Router struct {
	mu sync.Mutex

	routerID  uint32
	cfg       config.Config
	sched     *clock.Scheduler
	transport transport.Transport
	fib       fib.Table

	areas     map[uint32]*areaState
	ifaceArea map[uint32]uint32 // interface index -> area id

	// neighborIface maps a neighbor's address back to the local interface
	// index it was heard on, so flood retransmission (keyed by address)
	// knows which interface to resend out.
	neighborIface map[netip.AddrPort]uint32

	// backbone holds Area-LSAs and L2-Summary-LSAs, flooded across every
	// interface regardless of area: the inter-area virtual-node graph has
	// no area of its own, so there is exactly one of these per Router,
	// not one per area. See DESIGN.md for why this departs from a literal
	// per-area LSDB.
	backboneDB    *lsdb.Database
	backboneFlood *flood.Queue
	backboneGuard *flood.ArrivalGuard
	backboneGen   *lsagen.Generator
	backboneSPF   *spf.Scheduler

	// primaryArea is the area whose leader election also governs Area-LSA
	// and L2-Summary-LSA origination: a router that borders several areas
	// only ever represents one of them as a virtual node on the L2 graph
	// (the lowest area ID it owns an interface in). Full multi-area ABR
	// leadership is out of scope; see DESIGN.md.
	primaryArea    *uint32
	gatewayIfaces  []uint32
	gatewayNextHop netip.Addr
	gatewayArea    uint32
	hasGateway     bool

	l2Routes  []spf.Route
	installed map[netip.Prefix]fibEntry

	// ifaceUp tracks the last InterfaceUp result observed for each bound
	// interface, so the sync sweep can tell a down transition (true->false)
	// apart from an interface that was already down.
	ifaceUp map[uint32]bool

	enabled bool
}

type fibEntry struct {
	nextHop  netip.Addr
	ifaceIdx uint32
	metric   uint32
}

// New constructs a Router for routerID, using clk as its time source
// (clock.RealClock{} in production, a *clock.FakeClock in tests) and t/f as
// the packet substrate and forwarding table collaborators.
func New(routerID uint32, clk clock.Clock, t transport.Transport, f fib.Table) *Router {
	sched := clock.NewScheduler(clk)
	r := &Router{
		routerID:  routerID,
		cfg:       config.Default(),
		sched:     sched,
		transport: t,
		fib:       f,
		areas:         make(map[uint32]*areaState),
		ifaceArea:     make(map[uint32]uint32),
		neighborIface: make(map[netip.AddrPort]uint32),
		installed:     make(map[netip.Prefix]fibEntry),
		ifaceUp:       make(map[uint32]bool),
	}
	r.backboneDB = lsdb.New()
	r.backboneGuard = flood.NewArrivalGuard(r.cfg.MinLSArrival)
	r.backboneFlood = flood.New(sched, r.cfg.LSURetransmitInterval, r.resendBackbone)
	r.backboneGen = lsagen.New(routerID, r.backboneDB, sched, r.cfg, r.onOriginateBackbone)
	r.backboneGen.SetLinkSources(nil, nil, r.buildAreaLinks, r.buildL2Prefixes)
	r.backboneSPF = spf.NewScheduler(sched, r.cfg.SpfDelay, r.cfg.SpfHoldDown, r.runL2)
	return r
}

// Configure applies cfg (defaults filled in for any zero-valued field).
// Must be called before Enable; per-instance timers already constructed
// (e.g. the backbone flood queue's retransmit interval) are not
// retroactively updated by a later Configure call.
func (r *Router) Configure(cfg config.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Assert(!r.enabled, "ospf: Configure called after Enable")
	r.cfg = cfg.WithDefaults()
}

func (r *Router) area(id uint32) *areaState {
	a, exists := r.areas[id]
	if exists {
		return a
	}
	a = &areaState{id: id, ifaces: make(map[uint32]*iface.Interface)}
	a.db = lsdb.New()
	a.guard = flood.NewArrivalGuard(r.cfg.MinLSArrival)
	a.flood = flood.New(r.sched, r.cfg.LSURetransmitInterval, r.resendArea(id))
	a.gen = lsagen.New(r.routerID, a.db, r.sched, r.cfg, r.onOriginateArea(id))
	a.gen.SetLinkSources(r.buildRouterLinks(id), r.buildL1Prefixes(id), nil, nil)
	a.lead = leader.New(r.routerID, r.sched, r.cfg.LeaderDebounce, r.onBecomeAreaLeader(id), r.onLoseAreaLeader(id))
	a.spf = spf.NewScheduler(r.sched, r.cfg.SpfDelay, r.cfg.SpfHoldDown, r.runL1(id))
	r.areas[id] = a
	return a
}

// RouterID returns this instance's router ID.
func (r *Router) RouterID() uint32 { return r.routerID }

// logDropped logs a packet-level rejection as a warning, never surfacing
// it as an error to the driver. No drop counter is kept.
func logDropped(reason string, err error) {
	logger.Warnf("ospf: dropped packet: %s: %v", reason, err)
}
