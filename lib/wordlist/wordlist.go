// Package wordlist loads the password and dictionary lists a run works on.
//
// A list is one entry per line. Line terminators ("\n" or "\r\n") are stripped and empty
// lines are dropped; every other line is kept byte for byte, surrounding spaces included.
package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/duke-git/lancet/v2/strutil"
	"github.com/duke-git/lancet/v2/validator"

	"github.com/unclesp1d3r/threadhash/runstate"
)

// maxLineLen bounds a single entry. Longer lines fail the load instead of being split.
const maxLineLen = 1 << 20

var (
	// ErrNoSource is returned when no path or URL was given.
	ErrNoSource = errors.New("no input source given")
	// ErrNotFound is returned when a local input does not exist.
	ErrNotFound = errors.New("input file not found")
)

// Fetcher resolves a remote source to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, fileURL, checksum string) (string, error)
}

// Loader reads lists from local paths or, through Fetcher, from URLs.
type Loader struct {
	// Fetcher downloads remote sources. Nil rejects URLs.
	Fetcher Fetcher
}

// IsRemote reports whether source names a URL rather than a local path.
// Only sources with an explicit scheme count; a bare "words.txt" is always a file.
func IsRemote(source string) bool {
	return strings.Contains(source, "://") && validator.IsUrl(source)
}

// Load reads the list named by source.
func (l *Loader) Load(ctx context.Context, source string) ([]string, error) {
	if strutil.IsBlank(source) {
		return nil, ErrNoSource
	}

	localPath := source
	if IsRemote(source) {
		if l.Fetcher == nil {
			return nil, fmt.Errorf("remote input %q: downloads are not configured", source)
		}

		fetched, err := l.Fetcher.Fetch(ctx, source, "")
		if err != nil {
			return nil, fmt.Errorf("fetch %q: %w", source, err)
		}

		localPath = fetched
	}

	lines, err := ReadFile(localPath)
	if err != nil {
		return nil, err
	}

	runstate.Logger.Debug("Read input", "source", source, "path", localPath, "lines", len(lines))

	return lines, nil
}

// ReadFile reads the list stored at path.
func ReadFile(path string) ([]string, error) {
	if !fileutil.IsExist(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			runstate.Logger.Debug("Error closing input", "path", path, "error", err)
		}
	}()

	lines, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return lines, nil
}

// Read splits r into entries.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLen)

	var lines []string
	for scanner.Scan() {
		// ScanLines already drops a trailing '\r'.
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return slice.Compact(lines), nil
}
