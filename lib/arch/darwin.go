//go:build darwin

package arch

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// GetPlatform returns the platform name.
func GetPlatform() string {
	return "darwin"
}

func renice(delta int) error {
	current, err := unix.Getpriority(unix.PRIO_PROCESS, 0)
	if err != nil {
		return fmt.Errorf("read priority: %w", err)
	}

	return unix.Setpriority(unix.PRIO_PROCESS, 0, min(current+delta, 20))
}
