package progress

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/cheggaaa/pb/v3"
)

const rowTemplate pb.ProgressBarTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{speed . "%s rows/s"}} {{rtime . "ETA %s"}}`

// Tracker is a row progress bar. A nil *Tracker is valid and does nothing,
// so callers can pass one around without checking whether progress output is enabled.
type Tracker struct {
	bar  *pb.ProgressBar
	once sync.Once
}

// NewTracker starts a bar over total rows, rendered to w.
func NewTracker(total int, label string, w io.Writer) *Tracker {
	bar := rowTemplate.New(total)
	bar.SetWriter(w)
	bar.Set("prefix", label)
	bar.Start()

	return &Tracker{bar: bar}
}

// Increment advances the bar by one row.
func (t *Tracker) Increment() {
	if t == nil {
		return
	}

	t.bar.Increment()
}

// Current returns the number of rows counted so far.
func (t *Tracker) Current() int64 {
	if t == nil {
		return 0
	}

	return t.bar.Current()
}

// Finish stops rendering. It is safe to call more than once.
func (t *Tracker) Finish() {
	if t == nil {
		return
	}

	t.once.Do(func() { t.bar.Finish() })
}

// DownloadTracker renders one byte progress bar per download. It satisfies
// go-getter's ProgressTracker interface.
type DownloadTracker struct {
	w io.Writer
}

// NewDownloadTracker returns a DownloadTracker writing to w.
func NewDownloadTracker(w io.Writer) *DownloadTracker {
	return &DownloadTracker{w: w}
}

// TrackProgress wraps stream so reads advance a bar labeled with the base name of src.
// totalSize can be 0 when the size is unknown.
func (d *DownloadTracker) TrackProgress(src string, currentSize, totalSize int64, stream io.ReadCloser) io.ReadCloser {
	bar := pb.New64(totalSize)
	bar.SetTemplate(pb.Full)
	bar.SetWriter(d.w)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", filepath.Base(src))
	bar.SetCurrent(currentSize)
	bar.Start()

	return &readCloser{
		Reader: bar.NewProxyReader(stream),
		close: func() error {
			bar.Finish()

			return stream.Close()
		},
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (c *readCloser) Close() error { return c.close() }
