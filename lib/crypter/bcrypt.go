package crypter

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt is the $2b$ backend.
//
// x/crypto/bcrypt only exposes comparison, so Crypt returns the settings themselves when the
// candidate matches and an empty digest otherwise. Either way the caller's equality test
// gives the right answer.
type Bcrypt struct{}

// Crypt implements Crypter.
func (Bcrypt) Crypt(candidate, settings string) (string, error) {
	err := bcrypt.CompareHashAndPassword([]byte(settings), []byte(candidate))

	switch {
	case err == nil:
		return settings, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return "", nil
	default:
		return "", fmt.Errorf("%w: %w", ErrMalformedSettings, err)
	}
}
