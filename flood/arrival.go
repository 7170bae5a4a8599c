package flood

import (
	"sync"
	"time"

	"github.com/lstate/ospfd/wire"
)

// ArrivalGuard enforces MinLSArrival: it rejects a new instance of the same
// LSA key if one was already accepted too recently, preventing a
// misbehaving or flapping originator from saturating the flood with
// instance after instance of the same LSA.
type ArrivalGuard struct {
	mu       sync.Mutex
	minGap   time.Duration
	lastSeen map[wire.Key]time.Time
}

// NewArrivalGuard builds a guard enforcing minGap between accepted
// instances of the same key.
func NewArrivalGuard(minGap time.Duration) *ArrivalGuard {
	return &ArrivalGuard{minGap: minGap, lastSeen: make(map[wire.Key]time.Time)}
}

// Allow reports whether an instance of key arriving at now should be
// accepted, and if so records now as its arrival time.
func (g *ArrivalGuard) Allow(key wire.Key, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, exists := g.lastSeen[key]
	if exists && now.Sub(last) < g.minGap {
		return false
	}
	g.lastSeen[key] = now
	return true
}

// Forget removes key's arrival record, e.g. after the LSA is removed from
// the database.
func (g *ArrivalGuard) Forget(key wire.Key) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.lastSeen, key)
}
