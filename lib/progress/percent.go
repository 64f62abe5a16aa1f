// Package progress reports how far a crack run or an input download has come.
package progress

import (
	"fmt"
)

const percentageMultiplier = 100

// Percentage formats done as a share of total with two decimals.
// A zero or negative total reports "0.00%" rather than dividing by zero.
func Percentage(done, total int64) string {
	if total <= 0 {
		return "0.00%"
	}

	return fmt.Sprintf("%.2f%%", float64(done)/float64(total)*percentageMultiplier)
}
