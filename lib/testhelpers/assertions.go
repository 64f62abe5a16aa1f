package testhelpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unclesp1d3r/threadhash/lib/sink"
	"github.com/unclesp1d3r/threadhash/lib/stats"
)

// AssertSnapshotConsistent checks the counters of a finished run over rows rows.
func AssertSnapshotConsistent(t *testing.T, snap stats.Snapshot, rows int) {
	t.Helper()
	assert.Equal(t, int64(rows), snap.Total(), "classified rows mismatch")
	assert.Equal(t, int64(rows), snap.Processed, "processed rows mismatch")
	assert.Equal(t, snap.Processed, snap.Failed+snap.Cracked(), "failed + cracked != processed")
}

// ParseOutput parses every line of out as a result line.
func ParseOutput(t *testing.T, out string) []sink.Result {
	t.Helper()
	trimmed := strings.TrimSuffix(out, "\n")
	if trimmed == "" {
		return nil
	}

	lines := strings.Split(trimmed, "\n")
	results := make([]sink.Result, 0, len(lines))
	for _, line := range lines {
		r, err := sink.ParseLine(line)
		require.NoError(t, err, "unparseable output line %q", line)
		results = append(results, r)
	}

	return results
}

// ResultsByHash indexes results by the stored hash they refer to. For cracked lines the
// digest equals the stored hash.
func ResultsByHash(results []sink.Result) map[string]sink.Result {
	out := make(map[string]sink.Result, len(results))
	for _, r := range results {
		if r.Outcome == sink.OutcomeCracked {
			out[r.Digest] = r
		} else {
			out[r.Settings] = r
		}
	}

	return out
}
