package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unclesp1d3r/threadhash/lib/hashid"
)

// TestTally tests the Observe, Complete and HashError methods of Tally.
func TestTally(t *testing.T) {
	var tally Tally

	tally.Observe(hashid.MD5)
	tally.Observe(hashid.MD5)
	tally.Observe(hashid.DES)
	tally.Observe(hashid.Algorithm(99))
	tally.Complete(true)
	tally.Complete(false)
	tally.Complete(true)
	tally.Complete(false)
	tally.HashError()

	snap := tally.Snapshot()
	assert.Equal(t, int64(2), snap.Count(hashid.MD5))
	assert.Equal(t, int64(1), snap.Count(hashid.DES))
	assert.Equal(t, int64(1), snap.Count(hashid.Unknown), "invalid tags count as unknown")
	assert.Equal(t, int64(0), snap.Count(hashid.Algorithm(99)))
	assert.Equal(t, int64(4), snap.Total())
	assert.Equal(t, int64(4), snap.Processed)
	assert.Equal(t, int64(2), snap.Failed)
	assert.Equal(t, int64(2), snap.Cracked())
	assert.Equal(t, int64(1), snap.HashErrors)
}

// TestSnapshotMerge tests the Merge method of Snapshot.
func TestSnapshotMerge(t *testing.T) {
	var a, b Tally

	a.Observe(hashid.SHA512)
	a.Complete(false)
	b.Observe(hashid.SHA512)
	b.Observe(hashid.Bcrypt)
	b.Complete(true)
	b.Complete(true)
	b.HashError()

	merged := a.Snapshot().Merge(b.Snapshot())

	assert.Equal(t, int64(2), merged.Count(hashid.SHA512))
	assert.Equal(t, int64(1), merged.Count(hashid.Bcrypt))
	assert.Equal(t, int64(3), merged.Processed)
	assert.Equal(t, int64(1), merged.Failed)
	assert.Equal(t, int64(1), merged.HashErrors)
	assert.Equal(t, int64(1), a.Snapshot().Processed, "merge does not mutate its receiver")
}

// TestSnapshotByAlgorithm tests the ByAlgorithm method of Snapshot.
func TestSnapshotByAlgorithm(t *testing.T) {
	var tally Tally
	tally.Observe(hashid.Yescrypt)
	tally.Observe(hashid.GostYescrypt)

	byName := tally.Snapshot().ByAlgorithm()

	assert.Len(t, byName, int(hashid.NumAlgorithms))
	assert.Equal(t, int64(1), byName["YESCRYPT"])
	assert.Equal(t, int64(1), byName["GOST_YESCRYPT"])
	assert.Equal(t, int64(0), byName["UNKNOWN"])
}

// TestAggregator_Concurrent verifies that concurrent updates are not lost.
func TestAggregator_Concurrent(t *testing.T) {
	const (
		workers = 16
		rows    = 500
	)

	agg := NewAggregator()

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				agg.Observe(hashid.All()[(w+i)%int(hashid.NumAlgorithms)])
				agg.Complete(i%2 == 0)
				if i%10 == 0 {
					agg.HashError()
				}
			}
		}()
	}
	wg.Wait()

	snap := agg.Snapshot()
	assert.Equal(t, int64(workers*rows), snap.Total())
	assert.Equal(t, int64(workers*rows), snap.Processed)
	assert.Equal(t, int64(workers*rows/2), snap.Failed)
	assert.Equal(t, snap.Processed, snap.Failed+snap.Cracked())
	assert.Equal(t, int64(workers*rows/10), snap.HashErrors)
}
