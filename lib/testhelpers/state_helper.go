package testhelpers

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/unclesp1d3r/threadhash/runstate"
)

// SetupTestState resets the global viper configuration and log level for a test and
// points cache_path at a temporary directory. Everything is reset again on cleanup.
// Returns the cache directory.
func SetupTestState(t *testing.T) string {
	t.Helper()
	ResetTestState()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	viper.Set("cache_path", cacheDir)

	t.Cleanup(ResetTestState)

	return cacheDir
}

// ResetTestState clears viper and restores the default log level.
func ResetTestState() {
	viper.Reset()
	runstate.SetVerbose(false)
}
