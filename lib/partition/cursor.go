// Package partition hands out password row indices to crack workers.
package partition

import "sync/atomic"

// Cursor is the shared "next unclaimed row" counter.
// Every index in [0, Len) is returned by Next exactly once across all callers.
type Cursor struct {
	next  atomic.Int64
	total int64
}

// NewCursor creates a Cursor over rows [0, total). A negative total is treated as zero.
func NewCursor(total int) *Cursor {
	if total < 0 {
		total = 0
	}

	return &Cursor{total: int64(total)}
}

// Next claims the next row index. It returns false once all rows have been claimed.
// Safe for concurrent use; the only critical section is a single atomic add.
func (c *Cursor) Next() (int, bool) {
	idx := c.next.Add(1) - 1
	if idx >= c.total {
		return 0, false
	}

	return int(idx), true
}

// Len returns the number of rows the cursor partitions.
func (c *Cursor) Len() int {
	return int(c.total)
}

// Claimed returns how many rows have been handed out so far.
func (c *Cursor) Claimed() int {
	claimed := c.next.Load()
	if claimed > c.total {
		return int(c.total)
	}

	return int(claimed)
}
