// Package runstate provides the process-wide loggers shared by every threadhash package.
//
// Run configuration is not stored here; it travels as an explicit *config.Config.
package runstate

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is a shared logging instance configured to output logs at InfoLevel with timestamps to os.Stderr.
// Standard output is reserved for result lines.
var Logger = log.NewWithOptions(os.Stderr, log.Options{ //nolint:gochecknoglobals // Global logger instance
	Level:           log.InfoLevel,
	ReportTimestamp: true,
	Prefix:          "threadhash",
})

// ErrorLogger is a logger instance for logging critical errors with detailed error information.
var ErrorLogger = Logger.With() //nolint:gochecknoglobals // Global error logger instance

func init() {
	ErrorLogger.SetReportCaller(true)
}

// SetVerbose switches both loggers between debug and info level.
// Debug level also reports the caller.
func SetVerbose(verbose bool) {
	if verbose {
		Logger.SetLevel(log.DebugLevel)
		Logger.SetReportCaller(true)
		ErrorLogger.SetLevel(log.DebugLevel)

		return
	}

	Logger.SetLevel(log.InfoLevel)
	Logger.SetReportCaller(false)
	ErrorLogger.SetLevel(log.InfoLevel)
}
