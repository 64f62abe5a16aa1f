// Package display provides the log messages and the statistics report of a threadhash run.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/unclesp1d3r/threadhash/lib/arch"
	"github.com/unclesp1d3r/threadhash/lib/cracker"
	"github.com/unclesp1d3r/threadhash/lib/hashid"
	"github.com/unclesp1d3r/threadhash/lib/progress"
	"github.com/unclesp1d3r/threadhash/lib/stats"
	"github.com/unclesp1d3r/threadhash/runstate"
)

// Startup logs the start of a run.
func Startup(runID string, threads, rows, words int) {
	runstate.Logger.Info("Starting threadhash",
		"run_id", runID,
		"threads", threads,
		"hashes", humanize.Comma(int64(rows)),
		"words", humanize.Comma(int64(words)),
	)
}

// VerboseEnabled announces verbose mode.
func VerboseEnabled() {
	runstate.Logger.Info("Verbose mode: enabled")
}

// Host logs the machine the run executes on and the thread count it could use.
func Host(info arch.HostInfo, suggestedThreads int) {
	runstate.Logger.Debug("Host",
		"suggested_threads", suggestedThreads,
		"platform", info.Platform,
		"os", info.OS,
		"kernel", info.KernelVersion,
		"logical_cpus", info.LogicalCPUs,
		"physical_cpus", info.PhysicalCPUs,
	)
}

// Reniced logs the niceness the process now runs at.
func Reniced(nice int) {
	runstate.Logger.Info("Lowered scheduling priority", "nice", nice)
}

// InputLoaded logs a loaded input list.
func InputLoaded(kind, path string, lines int) {
	runstate.Logger.Debug("Loaded input", "kind", kind, "path", path, "lines", humanize.Comma(int64(lines)))
}

// Summary logs a one line human readable summary of a finished run.
func Summary(report *cracker.Report) {
	g := report.Global

	rate := 0.0
	if secs := report.Elapsed.Seconds(); secs > 0 {
		rate = float64(g.Processed) / secs
	}

	runstate.Logger.Info("Run complete",
		"run_id", report.RunID,
		"processed", humanize.Comma(g.Processed),
		"cracked", humanize.Comma(g.Cracked()),
		"failed", humanize.Comma(g.Failed),
		"cracked_pct", progress.Percentage(g.Cracked(), g.Processed),
		"rate", humanize.SIWithDigits(rate, 2, "hashes/s"),
		"elapsed", report.Elapsed.Round(time.Millisecond),
	)

	if g.HashErrors > 0 {
		runstate.Logger.Warn("Some candidates could not be hashed", "hash_errors", humanize.Comma(g.HashErrors))
	}

	if report.WriteFailures > 0 {
		runstate.ErrorLogger.Error("Some result lines could not be written", "write_failures", report.WriteFailures)
	}

	if report.Canceled {
		runstate.Logger.Warn("Run was interrupted before every hash was processed",
			"remaining", humanize.Comma(int64(report.Rows)-g.Processed))
	}
}

// WriteReport writes one statistics line per worker followed by the run total, in worker order.
func WriteReport(w io.Writer, report *cracker.Report) error {
	for _, wr := range report.Workers {
		if _, err := io.WriteString(w, WorkerLine(wr)); err != nil {
			return fmt.Errorf("write worker stats: %w", err)
		}
	}

	if _, err := io.WriteString(w, TotalLine(report)); err != nil {
		return fmt.Errorf("write total stats: %w", err)
	}

	return nil
}

// WorkerLine formats the statistics line of one worker.
func WorkerLine(wr cracker.WorkerReport) string {
	return fmt.Sprintf("thread: %2d %8.2f sec", wr.ID, wr.Elapsed.Seconds()) + statsColumns(wr.Tally)
}

// TotalLine formats the statistics line of the whole run.
func TotalLine(report *cracker.Report) string {
	return fmt.Sprintf("total: %3d %8.2f sec", report.Threads, report.Elapsed.Seconds()) + statsColumns(report.Global)
}

func statsColumns(s stats.Snapshot) string {
	var sb strings.Builder
	for _, a := range hashid.All() {
		fmt.Fprintf(&sb, "%17s: %5d", a, s.Count(a))
	}

	fmt.Fprintf(&sb, "  total: %8d  failed: %8d\n", s.Processed, s.Failed)

	return sb.String()
}
