package sink

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/unclesp1d3r/threadhash/runstate"
)

// Sink serializes result lines from many workers onto one writer.
// Each Emit performs exactly one Write of a complete line while holding the lock,
// so lines from concurrent workers never interleave.
type Sink struct {
	mu            sync.Mutex
	w             io.Writer
	emitted       atomic.Int64
	writeFailures atomic.Int64
}

// New creates a Sink writing to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Emit writes the line for r. A failed or short write is counted, logged and returned;
// callers treat it as best-effort and keep going.
func (s *Sink) Emit(r Result) error {
	line := []byte(r.String())

	s.mu.Lock()
	n, err := s.w.Write(line)
	s.mu.Unlock()

	if err == nil && n != len(line) {
		err = io.ErrShortWrite
	}

	if err != nil {
		s.writeFailures.Add(1)
		runstate.ErrorLogger.Error("Error writing result line", "error", err, "bytes_written", n)

		return fmt.Errorf("emit result: %w", err)
	}

	s.emitted.Add(1)

	return nil
}

// Emitted returns the number of lines written successfully.
func (s *Sink) Emitted() int64 {
	return s.emitted.Load()
}

// WriteFailures returns the number of lines that could not be written.
func (s *Sink) WriteFailures() int64 {
	return s.writeFailures.Load()
}
