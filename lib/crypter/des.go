package crypter

import (
	"fmt"

	"github.com/digitive/crypt"
)

// desSaltLen is the length of a traditional DES salt.
const desSaltLen = 2

// DES is the traditional 13 character crypt(3) backend. Only the first two
// characters of the settings are used as salt.
type DES struct{}

// Crypt implements Crypter.
func (DES) Crypt(candidate, settings string) (string, error) {
	if len(settings) < desSaltLen {
		return "", fmt.Errorf("%w: DES salt needs %d characters", ErrMalformedSettings, desSaltLen)
	}

	digest, err := crypt.Crypt(candidate, settings[:desSaltLen])
	if err != nil {
		return "", fmt.Errorf("DES crypt: %w", err)
	}

	return digest, nil
}
