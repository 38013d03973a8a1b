package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	target := filepath.Join(t.TempDir(), "record.yaml")

	lock, err := AcquireLock(target, time.Second)
	require.NoError(t, err)

	_, err = os.Stat(target + lockSuffix)
	require.NoError(t, err, "lock marker should exist while held")

	lock.Release()

	_, err = os.Stat(target + lockSuffix)
	assert.True(t, os.IsNotExist(err), "lock marker should be gone after release")
}

func TestReleaseIdempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "record.yaml")

	lock, err := AcquireLock(target, time.Second)
	require.NoError(t, err)

	lock.Release()
	lock.Release() // second release must be a no-op
}

func TestConcurrentAcquireTimesOut(t *testing.T) {
	target := filepath.Join(t.TempDir(), "record.yaml")
	timeout := 300 * time.Millisecond

	lock, err := AcquireLock(target, timeout)
	require.NoError(t, err)
	defer lock.Release()

	start := time.Now()
	_, err = AcquireLock(target, timeout)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrLockTimeout)
	assert.GreaterOrEqual(t, elapsed, timeout)
	// Bounded wait: timeout plus scheduling slack, not much more.
	assert.Less(t, elapsed, 5*timeout)
}

func TestStaleLockReclaimed(t *testing.T) {
	target := filepath.Join(t.TempDir(), "record.yaml")
	timeout := 500 * time.Millisecond

	// Simulate a crashed holder: a marker older than 2x the timeout.
	markerPath := target + lockSuffix
	require.NoError(t, os.WriteFile(markerPath, nil, 0o644))
	stale := time.Now().Add(-3 * timeout)
	require.NoError(t, os.Chtimes(markerPath, stale, stale))

	start := time.Now()
	lock, err := AcquireLock(target, timeout)
	require.NoError(t, err, "stale marker should be reclaimed")
	defer lock.Release()

	assert.Less(t, time.Since(start), timeout, "reclamation should not wait out the timeout")
}

func TestUnremovableStaleMarkerStillTimesOut(t *testing.T) {
	target := filepath.Join(t.TempDir(), "record.yaml")
	timeout := 300 * time.Millisecond

	// A stale marker that cannot be reclaimed: a non-empty directory at
	// the marker path makes os.Remove fail on every attempt. The wait
	// must stay bounded instead of spinning on the failed removal.
	markerPath := target + lockSuffix
	require.NoError(t, os.MkdirAll(markerPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(markerPath, "pin"), nil, 0o644))
	stale := time.Now().Add(-3 * timeout)
	require.NoError(t, os.Chtimes(markerPath, stale, stale))

	start := time.Now()
	_, err := AcquireLock(target, timeout)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrLockTimeout)
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, 5*timeout)
}

func TestSequentialAcquireAfterRelease(t *testing.T) {
	target := filepath.Join(t.TempDir(), "record.yaml")

	first, err := AcquireLock(target, time.Second)
	require.NoError(t, err)
	first.Release()

	second, err := AcquireLock(target, time.Second)
	require.NoError(t, err)
	second.Release()
}
