//go:build libxcrypt && cgo && linux

package crypter

/*
#cgo LDFLAGS: -lcrypt
#include <crypt.h>
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

var errCryptFailed = errors.New("crypt_r failed")

// libxcrypt hashes through the system crypt_r, which supports every family libxcrypt was built with.
type libxcrypt struct{}

// System returns the libxcrypt backend.
func System() (Crypter, bool) {
	return libxcrypt{}, true
}

// Crypt implements Crypter. Each call gets its own crypt_data so concurrent calls share no state.
func (libxcrypt) Crypt(candidate, settings string) (string, error) {
	cCand := C.CString(candidate)
	cSettings := C.CString(settings)
	defer C.free(unsafe.Pointer(cCand))
	defer C.free(unsafe.Pointer(cSettings))

	data := (*C.struct_crypt_data)(C.calloc(1, C.sizeof_struct_crypt_data))
	if data == nil {
		return "", errCryptFailed
	}
	defer C.free(unsafe.Pointer(data))

	out := C.crypt_r(cCand, cSettings, data)
	if out == nil {
		return "", errCryptFailed
	}

	digest := C.GoString(out)
	// libxcrypt signals failure with a "*0"/"*1" failure token rather than NULL.
	if len(digest) > 0 && digest[0] == '*' {
		return "", errCryptFailed
	}

	return digest, nil
}
