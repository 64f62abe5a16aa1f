// Package testhelpers provides reusable test utilities and helpers for testing threadhash.
package testhelpers

import (
	"errors"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/unclesp1d3r/threadhash/lib/hashid"
)

// ErrFakeCrypt is returned by FakeCrypter for its configured failing candidate.
var ErrFakeCrypt = errors.New("fake crypt failure")

// FakeCrypter is a cheap deterministic stand-in for a real crypt backend.
// The digest of a candidate is the settings' prefix up to and including the last '$'
// followed by the candidate itself, or the two character salt for DES style settings.
// Build stored hashes for it with FakeHash.
type FakeCrypter struct {
	// FailOn is a candidate that always produces ErrFakeCrypt. Empty disables failures.
	FailOn string

	calls atomic.Int64
}

// Crypt implements crypter.Crypter.
func (f *FakeCrypter) Crypt(candidate, settings string) (string, error) {
	f.calls.Add(1)

	if f.FailOn != "" && candidate == f.FailOn {
		return "", ErrFakeCrypt
	}

	return FakeHash(settings, candidate), nil
}

// Calls returns the number of Crypt invocations so far.
func (f *FakeCrypter) Calls() int64 {
	return f.calls.Load()
}

// FakeHash returns the digest FakeCrypter computes for candidate under settings.
func FakeHash(settings, candidate string) string {
	if idx := strings.LastIndexByte(settings, '$'); idx >= 0 {
		return settings[:idx+1] + candidate
	}

	if len(settings) >= 2 {
		return settings[:2] + candidate
	}

	return settings + candidate
}

// TestRow is one stored hash of the standard fixture set.
type TestRow struct {
	Stored    string           // Stored is the hash as it appears in the password file.
	Plain     string           // Plain is the dictionary word that cracks it, or empty when none does.
	Algorithm hashid.Algorithm // Algorithm is the family Stored classifies as.
}

// NewTestRows returns a fixture set for FakeCrypter covering every family, including an
// unclassifiable prefix, plus rows that no word in NewTestWords cracks.
func NewTestRows() []TestRow {
	return []TestRow{
		{Stored: FakeHash("ab", "dragon"), Plain: "dragon", Algorithm: hashid.DES},
		{Stored: FakeHash("$3$$", "monkey"), Plain: "monkey", Algorithm: hashid.NT},
		{Stored: FakeHash("$1$salty$", "letmein"), Plain: "letmein", Algorithm: hashid.MD5},
		{Stored: FakeHash("$5$rounds=1000$s$", "qwerty"), Plain: "qwerty", Algorithm: hashid.SHA256},
		{Stored: FakeHash("$6$pepper$", "hunter2"), Plain: "hunter2", Algorithm: hashid.SHA512},
		{Stored: FakeHash("$y$j9T$salt$", "trustno1"), Plain: "trustno1", Algorithm: hashid.Yescrypt},
		{Stored: FakeHash("$gy$j9T$salt$", "shadow"), Plain: "shadow", Algorithm: hashid.GostYescrypt},
		{Stored: FakeHash("$2b$05$abcdefghij$", "iloveyou"), Plain: "iloveyou", Algorithm: hashid.Bcrypt},
		{Stored: FakeHash("$7$weird$", "password"), Plain: "password", Algorithm: hashid.Unknown},
		{Stored: FakeHash("$6$pepper$", "not-in-dictionary"), Algorithm: hashid.SHA512},
		{Stored: FakeHash("$1$other$", "zzz"), Algorithm: hashid.MD5},
	}
}

// Passwords extracts the stored hashes of rows, in order.
func Passwords(rows []TestRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Stored
	}

	return out
}

// NewTestWords returns a dictionary that cracks every row NewTestRows gives a plaintext.
func NewTestWords() []string {
	return []string{"123456", "password", "dragon", "monkey", "letmein", "qwerty", "hunter2", "trustno1", "shadow", "iloveyou"}
}

// NewBulkPasswords returns n stored hashes where every third row is uncrackable by NewTestWords.
func NewBulkPasswords(n int) []string {
	words := NewTestWords()
	prefixes := []string{"$1$bulk$", "$5$bulk$", "$6$bulk$", "xy"}

	out := make([]string, n)
	for i := range out {
		word := words[i%len(words)]
		if i%3 == 2 {
			word = "missing-" + strconv.Itoa(i)
		}

		out[i] = FakeHash(prefixes[i%len(prefixes)], word)
	}

	return out
}
