package crypter

import (
	"fmt"
	"strings"

	"github.com/GehirnInc/crypt"
	"github.com/GehirnInc/crypt/md5_crypt"
	"github.com/GehirnInc/crypt/sha256_crypt"
	"github.com/GehirnInc/crypt/sha512_crypt"
)

const roundsPrefix = "rounds="

// Modular wraps one of the modular crypt formats ($1$, $5$, $6$).
type Modular struct {
	impl crypt.Crypter
}

// NewMD5 returns the md5crypt ($1$) backend.
func NewMD5() Modular { return Modular{impl: md5_crypt.New()} }

// NewSHA256 returns the sha256crypt ($5$) backend.
func NewSHA256() Modular { return Modular{impl: sha256_crypt.New()} }

// NewSHA512 returns the sha512crypt ($6$) backend.
func NewSHA512() Modular { return Modular{impl: sha512_crypt.New()} }

// Crypt implements Crypter. Only the "$id$[rounds=N$]salt" part of settings reaches the
// library; a digest left in place would be read as part of a rounds= salt.
func (m Modular) Crypt(candidate, settings string) (string, error) {
	digest, err := m.impl.Generate([]byte(candidate), []byte(saltSettings(settings)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedSettings, err)
	}

	return digest, nil
}

// saltSettings strips the digest field, and any trailing '$', from a modular crypt string.
// "$6$rounds=1000$abc$Z1qG..." becomes "$6$rounds=1000$abc" and "$1$salt$" becomes "$1$salt".
// Text that is not of the form "$id$..." is returned unchanged.
func saltSettings(settings string) string {
	if len(settings) < 2 || settings[0] != '$' {
		return settings
	}

	idEnd := strings.IndexByte(settings[1:], '$')
	if idEnd < 0 {
		return settings
	}

	magic := settings[:idEnd+2]
	fields := strings.Split(settings[len(magic):], "$")

	keep := 1
	if strings.HasPrefix(fields[0], roundsPrefix) && len(fields) > 1 {
		keep = 2
	}

	return magic + strings.Join(fields[:keep], "$")
}
