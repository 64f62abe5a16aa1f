// Package cracker runs a dictionary attack over a list of stored crypt(3) hashes with a pool of workers.
//
// Workers pull row indices from a shared cursor, so each stored hash is cracked by exactly one
// worker and emits exactly one result line. Counts are kept twice: once in a run-wide
// aggregator and once per worker.
package cracker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/unclesp1d3r/threadhash/lib/crypter"
	"github.com/unclesp1d3r/threadhash/lib/partition"
	"github.com/unclesp1d3r/threadhash/lib/sink"
	"github.com/unclesp1d3r/threadhash/lib/stats"
	"github.com/unclesp1d3r/threadhash/runstate"
)

// MaxThreads is the largest supported worker count.
const MaxThreads = 24

// ProgressTracker receives one Increment per finished row.
type ProgressTracker interface {
	Increment()
}

// Options configures an Engine.
type Options struct {
	Threads  int             // Threads is the number of workers, 1..MaxThreads.
	Crypter  crypter.Crypter // Crypter hashes candidates. Required.
	Sink     *sink.Sink      // Sink receives one result line per row. Required.
	Progress ProgressTracker // Progress is optional.
	RunID    string          // RunID labels logs and status output. Generated when empty.
}

// Report summarizes a finished run.
type Report struct {
	RunID         string
	Threads       int
	Rows          int
	Words         int
	Elapsed       time.Duration
	Global        stats.Snapshot
	Workers       []WorkerReport
	WriteFailures int64
	Canceled      bool // Canceled is true when the run stopped before every row was processed.
}

// Status is a live view of a running engine.
type Status struct {
	RunID   string
	Threads int
	Rows    int
	Claimed int
	Running bool
	Elapsed time.Duration
	Global  stats.Snapshot
}

// Engine owns the shared state of one run.
type Engine struct {
	passwords []string
	words     []string
	runID     string
	threads   int

	crypter  crypter.Crypter
	sink     *sink.Sink
	progress ProgressTracker

	cursor *partition.Cursor
	global *stats.Aggregator

	started  atomic.Bool
	running  atomic.Bool
	startNS  atomic.Int64
	finishNS atomic.Int64
}

// NewEngine validates opts and prepares a run over passwords using words as the dictionary.
// The slices are borrowed, not copied, and must not be modified until Run returns.
// An empty dictionary is allowed; every row then fails.
func NewEngine(passwords, words []string, opts Options) (*Engine, error) {
	if opts.Threads < 1 || opts.Threads > MaxThreads {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidThreads, opts.Threads, MaxThreads)
	}

	if len(passwords) == 0 {
		return nil, ErrNoPasswords
	}

	if opts.Crypter == nil {
		return nil, ErrNoCrypter
	}

	if opts.Sink == nil {
		return nil, ErrNoSink
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	return &Engine{
		passwords: passwords,
		words:     words,
		runID:     runID,
		threads:   opts.Threads,
		crypter:   opts.Crypter,
		sink:      opts.Sink,
		progress:  opts.Progress,
		cursor:    partition.NewCursor(len(passwords)),
		global:    stats.NewAggregator(),
	}, nil
}

// RunID returns the identifier of this run.
func (e *Engine) RunID() string {
	return e.runID
}

// Run starts the workers and blocks until every row is processed or ctx is done.
// On cancellation, rows already claimed are finished and the partial report is returned
// with Canceled set; the error is nil in that case. Run may be called only once.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	if !e.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}

	start := time.Now()
	e.startNS.Store(start.UnixNano())
	e.running.Store(true)

	runstate.Logger.Debug("Starting crack run",
		"run_id", e.runID,
		"threads", e.threads,
		"rows", len(e.passwords),
		"words", len(e.words),
	)

	reports := make([]WorkerReport, e.threads)
	g, gctx := errgroup.WithContext(ctx)

	for id := range e.threads {
		w := newWorker(id, e)
		g.Go(func() error {
			report, err := w.run(gctx)
			reports[id] = report

			return err
		})
	}

	err := g.Wait()

	elapsed := time.Since(start)
	e.finishNS.Store(time.Now().UnixNano())
	e.running.Store(false)

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("crack run %s: %w", e.runID, err)
	}

	global := e.global.Snapshot()
	report := &Report{
		RunID:         e.runID,
		Threads:       e.threads,
		Rows:          len(e.passwords),
		Words:         len(e.words),
		Elapsed:       elapsed,
		Global:        global,
		Workers:       reports,
		WriteFailures: e.sink.WriteFailures(),
		Canceled:      global.Processed < int64(len(e.passwords)),
	}

	if report.Canceled {
		runstate.Logger.Warn("Crack run canceled",
			"run_id", e.runID,
			"processed", global.Processed,
			"rows", report.Rows,
		)
	}

	return report, nil
}

// Snapshot returns the live state of the run. It is safe to call from any goroutine.
func (e *Engine) Snapshot() Status {
	var elapsed time.Duration

	if startNS := e.startNS.Load(); startNS != 0 {
		end := time.Now().UnixNano()
		if finishNS := e.finishNS.Load(); finishNS != 0 {
			end = finishNS
		}

		elapsed = time.Duration(end - startNS)
	}

	return Status{
		RunID:   e.runID,
		Threads: e.threads,
		Rows:    e.cursor.Len(),
		Claimed: e.cursor.Claimed(),
		Running: e.running.Load(),
		Elapsed: elapsed,
		Global:  e.global.Snapshot(),
	}
}
