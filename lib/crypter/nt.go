package crypter

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/md4"
	"golang.org/x/text/encoding/unicode"
)

// ntPrefix is what libxcrypt emits in front of an NTHASH digest. The format carries no salt.
const ntPrefix = "$3$$"

// NT is the $3$ backend: MD4 over the UTF-16LE encoding of the candidate.
type NT struct{}

// Crypt implements Crypter. The settings are ignored.
func (NT) Crypt(candidate, _ string) (string, error) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(candidate)
	if err != nil {
		return "", fmt.Errorf("encode NT candidate: %w", err)
	}

	h := md4.New()
	h.Write([]byte(encoded))

	return ntPrefix + hex.EncodeToString(h.Sum(nil)), nil
}
