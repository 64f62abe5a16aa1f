//go:build !(libxcrypt && cgo && linux)

package crypter

// System reports that this build has no system crypt backend.
func System() (Crypter, bool) {
	return nil, false
}
