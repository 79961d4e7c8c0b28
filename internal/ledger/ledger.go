// Package ledger holds the per-slot capacity ledger. It is the only shared
// mutable state in the scheduler: one mutex serializes every
// check-and-increment so a slot can never be over-allocated, no matter how
// many request handlers commit concurrently.
package ledger

import (
	"sync"
	"time"
)

type slotKey struct {
	date string
	slot string
}

// Ledger maps (operating date, slot time) to capacity units consumed.
// Entries only ever grow; there is no cancellation path. Construct once at
// startup and inject into both the query and commit paths.
type Ledger struct {
	capacity int

	mu   sync.Mutex
	used map[slotKey]int
}

// New returns an empty ledger with the given per-slot capacity ceiling.
func New(capacity int) *Ledger {
	return &Ledger{
		capacity: capacity,
		used:     make(map[slotKey]int),
	}
}

func key(date time.Time, slot string) slotKey {
	return slotKey{date: date.Format("2006-01-02"), slot: slot}
}

// UnitsUsed returns a snapshot of the units consumed for a slot. The value
// may be stale by the time the caller acts on it; TryReserve re-checks.
func (l *Ledger) UnitsUsed(date time.Time, slot string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used[key(date, slot)]
}

// TryReserve atomically consumes units from a slot. It succeeds and
// increments the ledger iff the slot stays within capacity; otherwise the
// ledger is unchanged and false is returned. The lock covers the whole
// read-check-write, and nothing else.
func (l *Ledger) TryReserve(date time.Time, slot string, units int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(date, slot)
	if l.used[k]+units > l.capacity {
		return false
	}
	l.used[k] += units
	return true
}

// Seed records pre-existing consumption, e.g. bookings loaded from the
// record store at startup. Seeding is additive and clamps at capacity so a
// corrupt source cannot break the ledger invariant.
func (l *Ledger) Seed(date time.Time, slot string, units int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(date, slot)
	total := l.used[k] + units
	if total > l.capacity {
		total = l.capacity
	}
	if total < 0 {
		total = 0
	}
	l.used[k] = total
}
