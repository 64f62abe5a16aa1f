//go:build !linux && !darwin && !windows

package arch

import "runtime"

// GetPlatform returns the platform name.
func GetPlatform() string {
	return runtime.GOOS
}

func renice(_ int) error {
	return ErrReniceUnsupported
}
