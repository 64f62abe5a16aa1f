//go:build windows

package arch

import (
	"golang.org/x/sys/windows"
)

// GetPlatform returns the platform name.
func GetPlatform() string {
	return "windows"
}

// renice moves the process to the below-normal priority class. Windows has no
// niceness scale, so delta only selects between idle and below normal.
func renice(delta int) error {
	class := uint32(windows.BELOW_NORMAL_PRIORITY_CLASS)
	if delta >= 15 {
		class = windows.IDLE_PRIORITY_CLASS
	}

	return windows.SetPriorityClass(windows.CurrentProcess(), class)
}
