package arch

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultThreads tests the DefaultThreads function.
func TestDefaultThreads(t *testing.T) {
	tests := []struct {
		name  string
		limit int
	}{
		{name: "one", limit: 1},
		{name: "typical cap", limit: 24},
		{name: "huge cap", limit: 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultThreads(tt.limit)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, tt.limit)
		})
	}
}

// TestDescribe tests the Describe function.
func TestDescribe(t *testing.T) {
	info := Describe()
	assert.Equal(t, GetPlatform(), info.Platform)
	assert.NotEmpty(t, info.OS)
}

// TestRenice verifies that renicing never raises the priority of the process.
func TestRenice(t *testing.T) {
	before, err := CurrentNice()
	if err != nil {
		t.Skipf("niceness not readable on %s: %v", runtime.GOOS, err)
	}

	unchanged, err := Renice(0)
	require.NoError(t, err)
	assert.Equal(t, before, unchanged)

	after, err := Renice(1)
	if errors.Is(err, ErrReniceUnsupported) {
		t.Skip("renice unsupported")
	}
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before)
}
