package progress

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPercentage tests the Percentage function.
func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		done     int64
		total    int64
		expected string
	}{
		{name: "half", done: 50, total: 100, expected: "50.00%"},
		{name: "none", done: 0, total: 100, expected: "0.00%"},
		{name: "all", done: 7, total: 7, expected: "100.00%"},
		{name: "thirds", done: 1, total: 3, expected: "33.33%"},
		{name: "zero total", done: 5, total: 0, expected: "0.00%"},
		{name: "negative total", done: 5, total: -1, expected: "0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Percentage(tt.done, tt.total))
		})
	}
}

// TestTracker tests the Tracker type.
func TestTracker(t *testing.T) {
	tracker := NewTracker(10, "rows", io.Discard)
	for range 4 {
		tracker.Increment()
	}

	assert.Equal(t, int64(4), tracker.Current())
	tracker.Finish()
	tracker.Finish()
}

// TestTracker_Nil verifies a nil Tracker is a no-op.
func TestTracker_Nil(t *testing.T) {
	var tracker *Tracker

	assert.NotPanics(t, func() {
		tracker.Increment()
		tracker.Finish()
	})
	assert.Zero(t, tracker.Current())
}

// TestDownloadTracker verifies the wrapped stream is passed through unchanged.
func TestDownloadTracker(t *testing.T) {
	const body = "line one\nline two\n"

	rc := NewDownloadTracker(io.Discard).TrackProgress("https://example.com/words.txt", 0, int64(len(body)), io.NopCloser(strings.NewReader(body)))

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, body, string(got))
}
