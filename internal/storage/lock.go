package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// lockSuffix is appended to the target path to form the marker file.
	lockSuffix = ".lock"

	// lockPollInterval is how long a waiter sleeps between acquisition attempts.
	lockPollInterval = 100 * time.Millisecond
)

// FileLock is sidecar-marker mutual exclusion for a single target file.
// A marker file at <target>.lock signals "held"; its modification time
// drives staleness detection. This is advisory, single-host locking:
// every writer must go through AcquireLock for the convention to hold.
type FileLock struct {
	target   string
	lockPath string
	released bool
}

// AcquireLock acquires the lock for path, waiting at most timeout.
//
// A marker whose mtime is older than twice the timeout is treated as
// abandoned by a crashed holder, removed, and the attempt retried.
// Fresh markers are polled until the timeout elapses, at which point
// the call fails with ErrLockTimeout.
func AcquireLock(path string, timeout time.Duration) (*FileLock, error) {
	lockPath := path + lockSuffix
	deadline := time.Now().Add(timeout)

	for {
		if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create lock directory: %w", err)
		}

		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_ = f.Close()
			return &FileLock{target: path, lockPath: lockPath}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock marker for %s: %w", path, err)
		}

		// Marker exists. Reclaim it if the previous holder looks dead.
		// A failed removal falls through to the deadline check so an
		// unremovable marker cannot turn the wait into a busy spin.
		if info, statErr := os.Stat(lockPath); statErr == nil &&
			time.Since(info.ModTime()) > 2*timeout {
			if os.Remove(lockPath) == nil {
				continue
			}
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("could not acquire lock on %s after %s: %w",
				path, timeout, ErrLockTimeout)
		}
		time.Sleep(lockPollInterval)
	}
}

// Release removes the lock marker. It is idempotent and best-effort:
// removal failures are swallowed, staleness reclamation covers them.
func (l *FileLock) Release() {
	if l == nil || l.released {
		return
	}
	l.released = true
	_ = os.Remove(l.lockPath)
}
