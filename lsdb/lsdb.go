// Package lsdb holds the four keyed link-state databases (Router,
// L1-Summary, Area, L2-Summary LSAs) and the sequence/age arbitration rule
// that decides whether an incoming LSA instance replaces the one currently
// installed. Grounded on a map-of-entries storage with replace-in-place
// semantics, generalized from a single map to four maps keyed by
// wire.Key instead of netip.Addr.
package lsdb

import (
	"sync"
	"time"

	"github.com/lstate/ospfd/internal/assert"
	"github.com/lstate/ospfd/wire"
)

// Entry is one installed LSA instance plus the bookkeeping needed to
// compute its current age without a per-LSA timer.
type Entry struct {
	LSA         wire.LSA
	InstalledAt time.Time
}

// CurrentAge returns the LSA's age as of now, capped at wire.MaxAge.
func (e Entry) CurrentAge(now time.Time) uint16 {
	elapsed := now.Sub(e.InstalledAt).Seconds()
	age := uint32(e.LSA.Header.Age) + uint32(elapsed)
	if age > uint32(wire.MaxAge) {
		return wire.MaxAge
	}
	return uint16(age)
}

// Database is the set of four type-keyed LSA stores for one area's worth
// of link-state. An ospfd instance keeps one Database per area it
// participates in.
type Database struct {
	mu sync.Mutex

	router    map[wire.Key]*Entry
	l1Summary map[wire.Key]*Entry
	area      map[wire.Key]*Entry
	l2Summary map[wire.Key]*Entry
}

// New returns an empty Database.
func New() *Database {
	return &Database{
		router:    make(map[wire.Key]*Entry),
		l1Summary: make(map[wire.Key]*Entry),
		area:      make(map[wire.Key]*Entry),
		l2Summary: make(map[wire.Key]*Entry),
	}
}

func (d *Database) storeFor(t wire.LSAType) map[wire.Key]*Entry {
	switch t {
	case wire.LSATypeRouter:
		return d.router
	case wire.LSATypeL1Summary:
		return d.l1Summary
	case wire.LSATypeArea:
		return d.area
	case wire.LSATypeL2Summary:
		return d.l2Summary
	default:
		assert.Never("lsdb: unknown LSA type %v", t)
		return nil
	}
}

// Compare reports whether incoming is newer than current: positive if
// incoming should replace current, negative if current should be kept,
// zero if they are the same instance. Arbitration order is sequence
// number, then MaxAge (a MaxAge instance always wins so that premature
// aging can force a flush even before checksum is consulted), then
// checksum (covers the rare case where two originators raced to the same
// sequence number), matching standard link-state flooding semantics.
func Compare(incoming, current wire.LSAHeader) int {
	if incoming.SeqNum != current.SeqNum {
		if incoming.SeqNum > current.SeqNum {
			return 1
		}
		return -1
	}

	incomingMaxAge := incoming.Age >= wire.MaxAge
	currentMaxAge := current.Age >= wire.MaxAge
	if incomingMaxAge && !currentMaxAge {
		return 1
	}
	if !incomingMaxAge && currentMaxAge {
		return -1
	}

	if incoming.Checksum != current.Checksum {
		if incoming.Checksum > current.Checksum {
			return 1
		}
		return -1
	}
	return 0
}

// Get returns the entry for key, with Header.Age refreshed to its current
// value as of now.
func (d *Database) Get(key wire.Key, now time.Time) (wire.LSA, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	store := d.storeFor(key.Type)
	entry, ok := store[key]
	if !ok {
		return wire.LSA{}, false
	}
	lsa := entry.LSA
	lsa.Header.Age = entry.CurrentAge(now)
	return lsa, true
}

// InstallResult reports what Install did with an incoming LSA.
type InstallResult int

const (
	// Rejected means the incoming instance was not newer than what is
	// already installed; the database is unchanged.
	Rejected InstallResult = iota
	// Installed means the incoming instance replaced (or created) the
	// entry.
	Installed
)

// Install applies the arbitration rule in Compare and, if the incoming
// instance wins, stores it. now is the wall-clock instant the LSA is being
// installed, used as the age-tracking epoch.
func (d *Database) Install(lsa wire.LSA, now time.Time) InstallResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	store := d.storeFor(lsa.Header.Type)
	key := lsa.Header.Key()

	current, exists := store[key]
	if exists && Compare(lsa.Header, current.LSA.Header) <= 0 {
		return Rejected
	}

	store[key] = &Entry{LSA: lsa, InstalledAt: now}
	return Installed
}

// Remove deletes the entry for key, if any.
func (d *Database) Remove(key wire.Key) {
	d.mu.Lock()
	defer d.mu.Unlock()

	store := d.storeFor(key.Type)
	delete(store, key)
}

// All returns every entry of the given type, with ages refreshed to now.
// The order is unspecified.
func (d *Database) All(t wire.LSAType, now time.Time) []wire.LSA {
	d.mu.Lock()
	defer d.mu.Unlock()

	store := d.storeFor(t)
	out := make([]wire.LSA, 0, len(store))
	for _, entry := range store {
		lsa := entry.LSA
		lsa.Header.Age = entry.CurrentAge(now)
		out = append(out, lsa)
	}
	return out
}

// Expired returns the keys of every entry of type t that has reached
// wire.MaxAge as of now. It does not remove them, and ospf.Router does not
// call it: MaxAge entries stay in the database until a newer instance or
// Remove replaces them.
func (d *Database) Expired(t wire.LSAType, now time.Time) []wire.Key {
	d.mu.Lock()
	defer d.mu.Unlock()

	store := d.storeFor(t)
	var out []wire.Key
	for key, entry := range store {
		if entry.CurrentAge(now) >= wire.MaxAge {
			out = append(out, key)
		}
	}
	return out
}

// Count returns the number of installed entries of type t.
func (d *Database) Count(t wire.LSAType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.storeFor(t))
}
