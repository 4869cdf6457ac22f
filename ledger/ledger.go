// Package ledger tracks which edges a scan has already classified. The
// ledger is shared by every search within one scan and is the only mutable
// state they have in common.
package ledger

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Ledger is a concurrency-safe set of classified edge identifiers. Within a
// scan it only grows; Reset exists for reusing the allocation between scans.
//
// Membership checks take a read lock and batch inserts take the write lock
// once per search, so contention stays proportional to the number of
// searches, not the number of edges.
type Ledger struct {
	mu      sync.RWMutex
	flagged *roaring64.Bitmap
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{flagged: roaring64.New()}
}

// IsFlagged reports whether the edge has already been classified.
func (l *Ledger) IsFlagged(id int64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.flagged.Contains(key(id))
}

// MarkFlagged records a single classified edge.
func (l *Ledger) MarkFlagged(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flagged.Add(key(id))
}

// MarkAll records a batch of classified edges under one lock acquisition.
func (l *Ledger) MarkAll(ids []int64) {
	if len(ids) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		l.flagged.Add(key(id))
	}
}

// Cardinality returns the number of classified edges.
func (l *Ledger) Cardinality() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.flagged.GetCardinality()
}

// ToSlice returns every classified edge identifier.
func (l *Ledger) ToSlice() []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]int64, 0, l.flagged.GetCardinality())
	it := l.flagged.Iterator()
	for it.HasNext() {
		out = append(out, unkey(it.Next()))
	}
	return out
}

// Reset empties the ledger.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flagged.Clear()
}

// Edge identifiers are signed (reverse edges are negative); the bitmap wants
// uint64. The shift keeps the mapping order-preserving, not that order
// matters here.
func key(id int64) uint64 {
	return uint64(id) + (1 << 63)
}

func unkey(k uint64) int64 {
	return int64(k - (1 << 63))
}
