package iface

import (
	"net/netip"
	"slices"
	"sync"
	"time"

	"github.com/lstate/ospfd/config"
	"github.com/lstate/ospfd/internal/assert"
	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/wire"
)

// Neighbor is one router heard over this interface.
type Neighbor struct {
	RouterID   uint32
	Address    netip.AddrPort
	State      State
	Priority   uint8
	lastHello  time.Time
	deadHandle *clock.Handle
}

// SendFunc transmits an encoded OSPF packet to addr. A zero addr means
// "send to this link's Hello multicast group" rather than a specific
// neighbor. Supplied by the caller (ospf.Router) so iface stays agnostic
// of the transport.
type SendFunc func(pkt wire.Packet, addr netip.AddrPort)

// Hooks lets callers react to adjacency transitions without iface needing
// to know about lsagen, flood or spf.
type Hooks struct {
	// OnNeighborUp fires the first time a neighbor reaches TwoWay.
	OnNeighborUp func(n *Neighbor)
	// OnNeighborDown fires when a neighbor's dead timer expires. It does
	// not fire for neighbors removed by Down, which returns their router
	// IDs instead. It never fires for a neighbor that never reached Init.
	OnNeighborDown func(routerID uint32)
	// OnNeighborFull fires the first time a neighbor reaches Full.
	OnNeighborFull func(n *Neighbor)
}

// Interface represents one point-to-point or broadcast link this router
// participates in.
type Interface struct {
	mu sync.Mutex

	RouterID    uint32
	AreaID      uint32
	LocalAddr   netip.AddrPort
	NetworkMask uint32
	Metric      uint16

	cfg   config.Config
	sched *clock.Scheduler
	send  SendFunc
	hooks Hooks

	neighbors   map[uint32]*Neighbor
	helloHandle *clock.Handle
	running     bool
}

// New constructs an Interface. Start must be called to begin sending
// Hellos.
func New(routerID, areaID uint32, local netip.AddrPort, mask uint32, metric uint16, cfg config.Config, sched *clock.Scheduler, send SendFunc, hooks Hooks) *Interface {
	return &Interface{
		RouterID:    routerID,
		AreaID:      areaID,
		LocalAddr:   local,
		NetworkMask: mask,
		Metric:      metric,
		cfg:         cfg,
		sched:       sched,
		send:        send,
		hooks:       hooks,
		neighbors:   make(map[uint32]*Neighbor),
	}
}

// Start begins periodic Hello origination on this interface.
func (i *Interface) Start() {
	i.mu.Lock()
	defer i.mu.Unlock()

	assert.Assert(!i.running, "interface of router %d already started", i.RouterID)
	i.running = true

	delay := i.cfg.InitialHelloDelay
	i.helloHandle = i.sched.After(delay, i.fireHello)
}

// SetHooks replaces the adjacency-transition callbacks, for when an
// interface is reassigned to a different area after construction and its
// existing hooks closures capture the old area ID.
func (i *Interface) SetHooks(hooks Hooks) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.hooks = hooks
}

// Stop halts Hello origination and dead-timer tracking. Neighbor state is
// left as-is for inspection.
func (i *Interface) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.running = false
	if i.helloHandle != nil {
		i.helloHandle.Cancel()
		i.helloHandle = nil
	}
	for _, n := range i.neighbors {
		if n.deadHandle != nil {
			n.deadHandle.Cancel()
		}
	}
}

// Down halts Hello origination and immediately removes every neighbor on
// this interface, without waiting for their dead timers to expire. It
// returns the router IDs that were dropped so the caller can react once
// per adjacency lost. Used when the underlying link itself goes down,
// where waiting out RouterDeadInterval would leave stale routes installed
// far longer than the link has actually been gone.
func (i *Interface) Down() []uint32 {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.running = false
	if i.helloHandle != nil {
		i.helloHandle.Cancel()
		i.helloHandle = nil
	}

	ids := make([]uint32, 0, len(i.neighbors))
	for id, n := range i.neighbors {
		if n.deadHandle != nil {
			n.deadHandle.Cancel()
		}
		ids = append(ids, id)
	}
	i.neighbors = make(map[uint32]*Neighbor)
	return ids
}

func (i *Interface) fireHello() {
	i.mu.Lock()
	if !i.running {
		i.mu.Unlock()
		return
	}

	knownNeighbors := make([]uint32, 0, len(i.neighbors))
	for id := range i.neighbors {
		knownNeighbors = append(knownNeighbors, id)
	}
	slices.Sort(knownNeighbors)

	hello := wire.HelloPayload{
		NetworkMask:        i.NetworkMask,
		HelloInterval:      uint16(i.cfg.HelloInterval.Seconds()),
		RouterDeadInterval: uint32(i.cfg.RouterDeadInterval.Seconds()),
		Neighbors:          knownNeighbors,
	}
	pkt := wire.Packet{
		Header: wire.Header{Type: wire.PacketTypeHello, RouterID: i.RouterID, AreaID: i.AreaID},
		Hello:  &hello,
	}

	i.helloHandle = i.sched.After(i.cfg.HelloInterval, i.fireHello)
	i.mu.Unlock()

	i.send(pkt, netip.AddrPort{})
}

// ReceiveHello processes a Hello received from from, advancing the
// neighbor's state machine.
func (i *Interface) ReceiveHello(routerID uint32, from netip.AddrPort, hello wire.HelloPayload, now time.Time) {
	i.mu.Lock()

	n, exists := i.neighbors[routerID]
	if !exists {
		n = &Neighbor{RouterID: routerID, Address: from, State: Init}
		i.neighbors[routerID] = n
		logger.Infof("iface: neighbor %d discovered by router %d", routerID, i.RouterID)
	}
	n.Address = from
	n.lastHello = now

	heardBack := slices.Contains(hello.Neighbors, i.RouterID)

	prevState := n.State
	if heardBack && n.State == Init {
		n.State = TwoWay
	}

	i.rearmDeadTimer(n)

	var firedUp *Neighbor
	if prevState != TwoWay && n.State == TwoWay && i.hooks.OnNeighborUp != nil {
		firedUp = n
	}
	i.mu.Unlock()

	if firedUp != nil {
		i.hooks.OnNeighborUp(firedUp)
	}
}

// rearmDeadTimer must be called with i.mu held.
func (i *Interface) rearmDeadTimer(n *Neighbor) {
	if n.deadHandle != nil {
		n.deadHandle.Cancel()
	}
	routerID := n.RouterID
	n.deadHandle = i.sched.After(i.cfg.RouterDeadInterval, func() {
		i.neighborDead(routerID)
	})
}

func (i *Interface) neighborDead(routerID uint32) {
	i.mu.Lock()
	_, exists := i.neighbors[routerID]
	if exists {
		delete(i.neighbors, routerID)
	}
	i.mu.Unlock()

	if exists {
		logger.Infof("iface: neighbor %d of router %d declared dead", routerID, i.RouterID)
		if i.hooks.OnNeighborDown != nil {
			i.hooks.OnNeighborDown(routerID)
		}
	}
}

// SetFull marks a neighbor Full once flood has finished an initial
// full-LSDB exchange with it. It is a no-op if the neighbor is not in
// TwoWay or is already Full.
func (i *Interface) SetFull(routerID uint32) {
	i.mu.Lock()
	n, exists := i.neighbors[routerID]
	if !exists || n.State != TwoWay {
		i.mu.Unlock()
		return
	}
	n.State = Full
	i.mu.Unlock()

	if i.hooks.OnNeighborFull != nil {
		i.hooks.OnNeighborFull(n)
	}
}

// RestoreNeighbor reinserts a neighbor from a snapshot, bypassing the
// Hello-driven state machine. The dead timer is armed fresh from now: a
// restored router has no way to know how much of the original dead
// interval had already elapsed.
func (i *Interface) RestoreNeighbor(routerID uint32, addr netip.AddrPort, state State, priority uint8) {
	i.mu.Lock()
	defer i.mu.Unlock()

	n := &Neighbor{RouterID: routerID, Address: addr, State: state, Priority: priority, lastHello: i.sched.Now()}
	i.neighbors[routerID] = n
	if i.running {
		i.rearmDeadTimer(n)
	}
}

// Neighbor returns a copy of the neighbor record for routerID, if known.
func (i *Interface) Neighbor(routerID uint32) (Neighbor, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	n, exists := i.neighbors[routerID]
	if !exists {
		return Neighbor{}, false
	}
	return *n, true
}

// Neighbors returns a snapshot of every neighbor currently known on this
// interface.
func (i *Interface) Neighbors() []Neighbor {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]Neighbor, 0, len(i.neighbors))
	for _, n := range i.neighbors {
		out = append(out, *n)
	}
	return out
}

// FullNeighbors returns the router IDs of every neighbor currently Full.
func (i *Interface) FullNeighbors() []uint32 {
	i.mu.Lock()
	defer i.mu.Unlock()

	var out []uint32
	for id, n := range i.neighbors {
		if n.State == Full {
			out = append(out, id)
		}
	}
	return out
}
