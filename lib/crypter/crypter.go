// Package crypter computes crypt(3) style hashes of candidate passwords.
//
// Every backend takes a candidate and the stored hash (the "settings"), recomputes the hash
// of the candidate with the settings' parameters and salt, and returns the result. A candidate
// matches when the returned string equals the stored hash byte for byte.
package crypter

import (
	"errors"
	"fmt"

	"github.com/unclesp1d3r/threadhash/lib/hashid"
)

var (
	// ErrUnsupported is returned when no backend can hash the given settings.
	ErrUnsupported = errors.New("unsupported hash format")
	// ErrMalformedSettings is returned when the settings are too short or badly formed for their family.
	ErrMalformedSettings = errors.New("malformed hash settings")
)

// Crypter hashes a candidate with the parameters encoded in settings.
// Implementations must be safe for concurrent use.
type Crypter interface {
	Crypt(candidate, settings string) (string, error)
}

// Func adapts an ordinary function to the Crypter interface.
type Func func(candidate, settings string) (string, error)

// Crypt calls f(candidate, settings).
func (f Func) Crypt(candidate, settings string) (string, error) {
	return f(candidate, settings)
}

// Registry dispatches to a backend by the algorithm of the settings.
type Registry struct {
	backends map[hashid.Algorithm]Crypter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[hashid.Algorithm]Crypter)}
}

// Default returns a Registry with every backend this build supports.
// The pure Go backends cover DES, NT, MD5, SHA256, SHA512 and bcrypt. Builds with the
// libxcrypt tag route every family through the system library instead, which adds
// yescrypt and gost-yescrypt.
func Default() *Registry {
	r := NewRegistry()
	r.Register(hashid.DES, DES{})
	r.Register(hashid.NT, NT{})
	r.Register(hashid.MD5, NewMD5())
	r.Register(hashid.SHA256, NewSHA256())
	r.Register(hashid.SHA512, NewSHA512())
	r.Register(hashid.Bcrypt, Bcrypt{})

	if native, ok := System(); ok {
		for _, a := range hashid.All() {
			if a != hashid.Unknown {
				r.Register(a, native)
			}
		}
	}

	return r
}

// Register sets the backend for a. Registering Unknown is ignored.
// Register must not be called concurrently with Crypt.
func (r *Registry) Register(a hashid.Algorithm, c Crypter) {
	if a == hashid.Unknown || !a.Valid() {
		return
	}

	r.backends[a] = c
}

// Supports reports whether a backend is registered for a.
func (r *Registry) Supports(a hashid.Algorithm) bool {
	_, ok := r.backends[a]

	return ok
}

// Crypt classifies settings and hashes candidate with the matching backend.
func (r *Registry) Crypt(candidate, settings string) (string, error) {
	algo := hashid.Classify(settings)

	c, ok := r.backends[algo]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, algo)
	}

	return c.Crypt(candidate, settings)
}
