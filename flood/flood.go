// Package flood implements reliable flooding of LSAs to neighbors: a
// per-neighbor retransmission queue keyed by LSA key, retried on a fixed
// interval until acknowledged, with duplicate suppression on receipt.
//
// Grounded on a per-destination map of outstanding acknowledgments, each
// with its own retry timer, generalized from per-packet sequence numbers
// to per-LSA-key entries, and simplified by dropping the TCP-style
// congestion window: flooding retries on a fixed LSURetransmitInterval
// rather than an adaptive backoff.
package flood

import (
	"net/netip"
	"sync"
	"time"

	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/wire"
)

// ResendFunc retransmits the LSA identified by key to addr.
type ResendFunc func(addr netip.AddrPort, key wire.Key)

// pending is one outstanding (neighbor, LSA) acknowledgment.
type pending struct {
	handle *clock.Handle
}

// Queue tracks, per neighbor address, the set of LSAs flooded to it that
// have not yet been acknowledged.
type Queue struct {
	mu       sync.Mutex
	sched    *clock.Scheduler
	interval time.Duration
	resend   ResendFunc

	outstanding map[netip.AddrPort]map[wire.Key]*pending
}

// New constructs a Queue that retries unacknowledged LSAs every interval
// via resend, using sched for timing.
func New(sched *clock.Scheduler, interval time.Duration, resend ResendFunc) *Queue {
	return &Queue{
		sched:       sched,
		interval:    interval,
		resend:      resend,
		outstanding: make(map[netip.AddrPort]map[wire.Key]*pending),
	}
}

// Add registers key as flooded to addr and awaiting acknowledgment. If an
// entry for (addr, key) already exists, its retransmission timer is reset
// rather than duplicated — this models re-flooding a newer instance of an
// LSA that was already outstanding.
func (q *Queue) Add(addr netip.AddrPort, key wire.Key) {
	q.mu.Lock()
	defer q.mu.Unlock()

	neighborQueue, exists := q.outstanding[addr]
	if !exists {
		neighborQueue = make(map[wire.Key]*pending)
		q.outstanding[addr] = neighborQueue
	}

	if p, exists := neighborQueue[key]; exists {
		p.handle.Cancel()
	}

	p := &pending{}
	p.handle = q.sched.After(q.interval, func() { q.retransmit(addr, key) })
	neighborQueue[key] = p
}

func (q *Queue) retransmit(addr netip.AddrPort, key wire.Key) {
	q.mu.Lock()
	neighborQueue, exists := q.outstanding[addr]
	if !exists {
		q.mu.Unlock()
		return
	}
	p, exists := neighborQueue[key]
	if !exists {
		q.mu.Unlock()
		return
	}
	p.handle = q.sched.After(q.interval, func() { q.retransmit(addr, key) })
	q.mu.Unlock()

	logger.Debugf("flood: retransmitting %v to %v", key, addr)
	q.resend(addr, key)
}

// Flood sends key to every neighbor in neighbors except skip (normally the
// neighbor the update arrived from, since re-flooding back to its source
// is redundant), via sendNow, then registers each as outstanding so it
// gets retried until acknowledged.
func (q *Queue) Flood(sendNow ResendFunc, neighbors []netip.AddrPort, skip netip.AddrPort, key wire.Key) {
	for _, addr := range neighbors {
		if addr == skip {
			continue
		}
		sendNow(addr, key)
		q.Add(addr, key)
	}
}

// Ack clears the outstanding entry for (addr, key), if any. Called when a
// LS-Ack is received covering that key.
func (q *Queue) Ack(addr netip.AddrPort, key wire.Key) {
	q.mu.Lock()
	defer q.mu.Unlock()

	neighborQueue, exists := q.outstanding[addr]
	if !exists {
		return
	}
	p, exists := neighborQueue[key]
	if !exists {
		return
	}
	p.handle.Cancel()
	delete(neighborQueue, key)
	if len(neighborQueue) == 0 {
		delete(q.outstanding, addr)
	}
}

// DropNeighbor cancels every outstanding entry for addr, e.g. because the
// neighbor went Down.
func (q *Queue) DropNeighbor(addr netip.AddrPort) {
	q.mu.Lock()
	defer q.mu.Unlock()

	neighborQueue, exists := q.outstanding[addr]
	if !exists {
		return
	}
	for _, p := range neighborQueue {
		p.handle.Cancel()
	}
	delete(q.outstanding, addr)
}

// Pending reports whether (addr, key) is currently outstanding.
func (q *Queue) Pending(addr netip.AddrPort, key wire.Key) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	neighborQueue, exists := q.outstanding[addr]
	if !exists {
		return false
	}
	_, exists = neighborQueue[key]
	return exists
}

// PendingCount returns the number of outstanding entries for addr.
func (q *Queue) PendingCount(addr netip.AddrPort) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.outstanding[addr])
}
