// Package arch wraps the operating system specific parts of threadhash: lowering the
// scheduling priority of the process and describing the host it runs on.
package arch

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/unclesp1d3r/threadhash/runstate"
)

// ErrReniceUnsupported is returned on platforms where the priority cannot be lowered.
var ErrReniceUnsupported = errors.New("renice not supported on this platform")

// HostInfo describes the machine a run executes on.
type HostInfo struct {
	Platform      string
	OS            string
	KernelVersion string
	LogicalCPUs   int
	PhysicalCPUs  int
}

// Renice lowers the scheduling priority of the running process by delta, the way nice(1) does,
// and returns the resulting niceness as reported by the operating system.
func Renice(delta int) (int, error) {
	if delta <= 0 {
		return CurrentNice()
	}

	if err := renice(delta); err != nil {
		runstate.ErrorLogger.Error("Error lowering process priority", "delta", delta, "error", err)

		return 0, err
	}

	nice, err := CurrentNice()
	if err != nil {
		return 0, err
	}

	runstate.Logger.Debug("Lowered process priority", "delta", delta, "nice", nice)

	return nice, nil
}

// CurrentNice returns the niceness of the running process.
func CurrentNice() (int, error) {
	p, err := self()
	if err != nil {
		return 0, err
	}

	nice, err := p.Nice()
	if err != nil {
		return 0, fmt.Errorf("read niceness: %w", err)
	}

	return int(nice), nil
}

// DefaultThreads suggests a worker count for this host: the number of logical CPUs,
// capped at limit.
func DefaultThreads(limit int) int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}

	return min(max(n, 1), limit)
}

// Describe gathers HostInfo. Fields that cannot be read are left empty.
func Describe() HostInfo {
	info := HostInfo{Platform: GetPlatform(), OS: runtime.GOOS}

	if hi, err := host.Info(); err == nil {
		info.OS = hi.Platform + " " + hi.PlatformVersion
		info.KernelVersion = hi.KernelVersion
	} else {
		runstate.Logger.Debug("Error reading host info", "error", err)
	}

	if n, err := cpu.Counts(true); err == nil {
		info.LogicalCPUs = n
	}

	if n, err := cpu.Counts(false); err == nil {
		info.PhysicalCPUs = n
	}

	return info
}

func self() (*process.Process, error) {
	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // PIDs fit in int32
	if err != nil {
		return nil, fmt.Errorf("inspect own process: %w", err)
	}

	return p, nil
}
