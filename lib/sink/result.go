// Package sink formats crack results and writes them to a shared output stream.
package sink

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome identifies which variant a Result holds.
type Outcome int

const (
	// OutcomeCracked means a dictionary word reproduced the stored hash.
	OutcomeCracked Outcome = iota
	// OutcomeFailed means no dictionary word matched.
	OutcomeFailed
)

const (
	crackedPrefix = "cracked  "
	failedPrefix  = "*** failed to crack  "
	fieldSep      = "  "
)

// ErrMalformedLine is returned by ParseLine for text that is not a result line.
var ErrMalformedLine = errors.New("malformed result line")

// Result is one output record: either Cracked{Candidate, Digest} or Failed{Settings}.
type Result struct {
	Outcome   Outcome
	Candidate string // Candidate is the matching dictionary word (cracked only).
	Digest    string // Digest is the computed hash that matched (cracked only).
	Settings  string // Settings is the stored hash that could not be cracked (failed only).
}

// Cracked builds a cracked Result.
func Cracked(candidate, digest string) Result {
	return Result{Outcome: OutcomeCracked, Candidate: candidate, Digest: digest}
}

// Failed builds a failed Result.
func Failed(settings string) Result {
	return Result{Outcome: OutcomeFailed, Settings: settings}
}

// String renders the newline-terminated output line for r.
// It is the only place result lines are formatted.
func (r Result) String() string {
	if r.Outcome == OutcomeCracked {
		return crackedPrefix + r.Candidate + fieldSep + r.Digest + "\n"
	}

	return failedPrefix + r.Settings + "\n"
}

// ParseLine parses one result line, with or without its trailing newline.
// Candidates containing the two-space separator are ambiguous; the digest is taken
// from the last separator since crypt digests never contain spaces.
func ParseLine(line string) (Result, error) {
	line = strings.TrimRight(line, "\r\n")

	switch {
	case strings.HasPrefix(line, failedPrefix):
		return Failed(strings.TrimPrefix(line, failedPrefix)), nil
	case strings.HasPrefix(line, crackedPrefix):
		body := strings.TrimPrefix(line, crackedPrefix)

		idx := strings.LastIndex(body, fieldSep)
		if idx < 0 {
			return Result{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}

		return Cracked(body[:idx], body[idx+len(fieldSep):]), nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
}
