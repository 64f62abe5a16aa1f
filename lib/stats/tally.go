// Package stats tracks per-algorithm hash counts and crack outcomes.
//
// A Tally is owned by a single worker and needs no locking. The Aggregator wraps one Tally
// behind a mutex and is shared by every worker of a run.
package stats

import (
	"sync"

	"github.com/unclesp1d3r/threadhash/lib/hashid"
)

// Snapshot is a read-only copy of a tally at a point in time.
type Snapshot struct {
	Counts     [hashid.NumAlgorithms]int64 // Counts holds the number of rows classified as each Algorithm.
	Processed  int64                       // Processed is the number of rows whose dictionary scan finished.
	Failed     int64                       // Failed is the number of rows no candidate matched.
	HashErrors int64                       // HashErrors is the number of candidate hashes the crypter rejected.
}

// Count returns the number of rows classified as a.
func (s Snapshot) Count(a hashid.Algorithm) int64 {
	if !a.Valid() {
		return 0
	}

	return s.Counts[a]
}

// Total returns the number of rows classified, across all algorithms.
func (s Snapshot) Total() int64 {
	var total int64
	for _, n := range s.Counts {
		total += n
	}

	return total
}

// Cracked returns the number of processed rows that were not failures.
func (s Snapshot) Cracked() int64 {
	return s.Processed - s.Failed
}

// Merge returns the element-wise sum of s and other.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	merged := s
	for i := range merged.Counts {
		merged.Counts[i] += other.Counts[i]
	}

	merged.Processed += other.Processed
	merged.Failed += other.Failed
	merged.HashErrors += other.HashErrors

	return merged
}

// ByAlgorithm returns the algorithm counts keyed by display name.
func (s Snapshot) ByAlgorithm() map[string]int64 {
	out := make(map[string]int64, len(s.Counts))
	for _, a := range hashid.All() {
		out[a.String()] = s.Counts[a]
	}

	return out
}

// Tally is an unsynchronized tally owned by exactly one goroutine.
type Tally struct {
	snap Snapshot
}

// Observe counts one row classified as a. Invalid values are counted as Unknown.
func (t *Tally) Observe(a hashid.Algorithm) {
	if !a.Valid() {
		a = hashid.Unknown
	}

	t.snap.Counts[a]++
}

// Complete records the outcome of one row.
func (t *Tally) Complete(cracked bool) {
	t.snap.Processed++
	if !cracked {
		t.snap.Failed++
	}
}

// HashError records one candidate the crypter could not hash.
func (t *Tally) HashError() {
	t.snap.HashErrors++
}

// Snapshot returns a copy of the current counts.
func (t *Tally) Snapshot() Snapshot {
	return t.snap
}

// Aggregator is the run-wide tally shared by all workers.
// Each method holds the lock only for the counter update.
type Aggregator struct {
	mu    sync.Mutex
	tally Tally
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Observe counts one row classified as a.
func (g *Aggregator) Observe(a hashid.Algorithm) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tally.Observe(a)
}

// Complete records the outcome of one row.
func (g *Aggregator) Complete(cracked bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tally.Complete(cracked)
}

// HashError records one candidate the crypter could not hash.
func (g *Aggregator) HashError() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tally.HashError()
}

// Snapshot returns a consistent copy of the run-wide counts.
func (g *Aggregator) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.tally.Snapshot()
}
