package partition

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCursorNext_Sequential tests the Next method from a single goroutine.
func TestCursorNext_Sequential(t *testing.T) {
	c := NewCursor(3)

	for want := range 3 {
		got, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := c.Next()
	assert.False(t, ok)
	_, ok = c.Next()
	assert.False(t, ok, "exhausted cursor stays exhausted")
	assert.Equal(t, 3, c.Claimed())
}

// TestCursorNext_Empty tests cursors with no rows.
func TestCursorNext_Empty(t *testing.T) {
	tests := []struct {
		name  string
		total int
	}{
		{name: "zero rows", total: 0},
		{name: "negative rows", total: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.total)
			_, ok := c.Next()
			assert.False(t, ok)
			assert.Equal(t, 0, c.Len())
			assert.Equal(t, 0, c.Claimed())
		})
	}
}

// TestCursorNext_Concurrent verifies that concurrent callers receive every index exactly once.
func TestCursorNext_Concurrent(t *testing.T) {
	const (
		total   = 10000
		workers = 24
	)

	c := NewCursor(total)
	claimed := make([][]int, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx, ok := c.Next()
				if !ok {
					return
				}
				claimed[w] = append(claimed[w], idx)
			}
		}()
	}
	wg.Wait()

	seen := make([]int, total)
	count := 0
	for _, indices := range claimed {
		for i, idx := range indices {
			if i > 0 {
				assert.Greater(t, idx, indices[i-1], "a worker sees increasing indices")
			}
			seen[idx]++
			count++
		}
	}

	assert.Equal(t, total, count)
	for idx, n := range seen {
		assert.Equal(t, 1, n, "index %d", idx)
	}
	assert.Equal(t, total, c.Claimed())
}
