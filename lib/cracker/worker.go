package cracker

import (
	"context"
	"time"

	"github.com/unclesp1d3r/threadhash/lib/hashid"
	"github.com/unclesp1d3r/threadhash/lib/sink"
	"github.com/unclesp1d3r/threadhash/lib/stats"
	"github.com/unclesp1d3r/threadhash/runstate"
)

// WorkerReport is what one worker accomplished during a run.
type WorkerReport struct {
	ID      int            // ID is the zero based worker index.
	Tally   stats.Snapshot // Tally holds the worker's own counts.
	Elapsed time.Duration  // Elapsed is the time the worker spent from start to exit.
}

// worker claims rows from the engine's cursor until it is exhausted or the context is done.
// Its tally is touched only from its own goroutine.
type worker struct {
	id     int
	engine *Engine
	tally  stats.Tally
}

func newWorker(id int, e *Engine) *worker {
	return &worker{id: id, engine: e}
}

// run processes rows and returns the worker's report. The error is the context's error
// when the worker stopped early because of cancellation.
func (w *worker) run(ctx context.Context) (WorkerReport, error) {
	start := time.Now()
	runstate.Logger.Debug("Worker started", "worker", w.id, "run_id", w.engine.runID)

	var err error
	for {
		if err = ctx.Err(); err != nil {
			break
		}

		row, ok := w.engine.cursor.Next()
		if !ok {
			break
		}

		w.crackRow(row)
	}

	report := WorkerReport{ID: w.id, Tally: w.tally.Snapshot(), Elapsed: time.Since(start)}
	runstate.Logger.Debug("Worker finished",
		"worker", w.id,
		"rows", report.Tally.Processed,
		"failed", report.Tally.Failed,
		"elapsed", report.Elapsed,
	)

	return report, err
}

// crackRow classifies, scans and reports exactly one row.
func (w *worker) crackRow(row int) {
	e := w.engine
	settings := e.passwords[row]

	algo := hashid.Classify(settings)
	e.global.Observe(algo)
	w.tally.Observe(algo)

	result := w.scan(row, settings)
	cracked := result.Outcome == sink.OutcomeCracked

	// A failed write is counted by the sink; the row still counts as processed.
	if err := e.sink.Emit(result); err != nil {
		runstate.Logger.Debug("Result line not written", "worker", w.id, "row", row, "error", err)
	}

	e.global.Complete(cracked)
	w.tally.Complete(cracked)

	if e.progress != nil {
		e.progress.Increment()
	}
}

// scan tries every dictionary word in order against settings and stops at the first match.
func (w *worker) scan(row int, settings string) sink.Result {
	e := w.engine
	logged := false

	for _, word := range e.words {
		digest, err := e.crypter.Crypt(word, settings)
		if err != nil {
			e.global.HashError()
			w.tally.HashError()

			if !logged {
				runstate.Logger.Debug("Hash computation failed", "worker", w.id, "row", row, "error", err)
				logged = true
			}

			continue
		}

		if digest == settings {
			return sink.Cracked(word, digest)
		}
	}

	return sink.Failed(settings)
}
