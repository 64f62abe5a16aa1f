package runstate

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

// TestSetVerbose tests the SetVerbose function.
func TestSetVerbose(t *testing.T) {
	originalLevel := Logger.GetLevel()
	defer func() {
		Logger.SetLevel(originalLevel)
		Logger.SetReportCaller(false)
	}()

	tests := []struct {
		name     string
		verbose  bool
		expected log.Level
	}{
		{name: "verbose enables debug", verbose: true, expected: log.DebugLevel},
		{name: "quiet restores info", verbose: false, expected: log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVerbose(tt.verbose)
			assert.Equal(t, tt.expected, Logger.GetLevel())
			assert.Equal(t, tt.expected, ErrorLogger.GetLevel())
		})
	}
}
