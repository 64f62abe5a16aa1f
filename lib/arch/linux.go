//go:build linux

package arch

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// GetPlatform returns the platform name.
func GetPlatform() string {
	return "linux"
}

// renice applies the new niceness to every thread of the process. Linux treats the
// priority as a per-thread attribute, so setting it on the process id alone would only
// move the calling thread.
func renice(delta int) error {
	p, err := self()
	if err != nil {
		return err
	}

	current, err := p.Nice()
	if err != nil {
		return fmt.Errorf("read niceness: %w", err)
	}

	target := min(int(current)+delta, 19)

	threads, err := p.Threads()
	if err != nil || len(threads) == 0 {
		return unix.Setpriority(unix.PRIO_PROCESS, 0, target)
	}

	var errs []error
	for tid := range threads {
		if err := unix.Setpriority(unix.PRIO_PROCESS, int(tid), target); err != nil {
			errs = append(errs, fmt.Errorf("thread %d: %w", tid, err))
		}
	}

	return errors.Join(errs...)
}
