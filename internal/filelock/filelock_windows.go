//go:build windows

package filelock

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// pollInterval is how long to wait before asking for a held lock again.
// LockFileEx is called with LOCKFILE_FAIL_IMMEDIATELY so it never parks
// the OS thread the Go scheduler is running on.
const pollInterval = 2 * time.Millisecond

// lockRange locks or unlocks the first byte of f.
func lockRange(f *os.File, lock bool) error {
	h := windows.Handle(f.Fd())
	ol := new(windows.Overlapped)
	if !lock {
		return windows.UnlockFileEx(h, 0, 1, 0, ol)
	}
	return windows.LockFileEx(h, windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY, 0, 1, 0, ol)
}

func lockFile(f *os.File) error {
	for {
		err := lockRange(f, true)
		if !errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return err
		}
		time.Sleep(pollInterval)
	}
}

func unlockFile(f *os.File) error {
	return lockRange(f, false)
}
