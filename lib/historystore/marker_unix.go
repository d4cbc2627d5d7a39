// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package historystore

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockMarker acquires a non-blocking exclusive whole-file lock on f,
// failing immediately (rather than waiting) if another process already
// holds it. Unlike bank locks, a marker lock is never waited on: reap
// needs an instant answer to "is the owner alive", not eventual access.
func lockMarker(f *os.File) error {
	flock := unix.Flock_t{Type: unix.F_WRLCK, Whence: int16(os.SEEK_SET), Start: 0, Len: 0}
	if err := unix.FcntlFlock(f.Fd(), unix.F_SETLK, &flock); err != nil {
		return fmt.Errorf("fcntl F_SETLK: %w", err)
	}
	return nil
}

// markerIsOrphaned reports whether the marker at path signals a dead
// owner (spec §4.8 step 3): either the file is already gone, or it
// exists but its exclusive lock is uncontended.
func markerIsOrphaned(path string) (bool, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0o600)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("historystore: open aliveness marker %s: %w", path, err)
	}
	defer file.Close()

	flock := unix.Flock_t{Type: unix.F_WRLCK, Whence: int16(os.SEEK_SET), Start: 0, Len: 0}
	err = unix.FcntlFlock(file.Fd(), unix.F_SETLK, &flock)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EACCES) {
			return false, nil
		}
		return false, fmt.Errorf("historystore: probe aliveness marker %s: %w", path, err)
	}

	// The lock was free: release it immediately. Deciding whether to
	// unlink the marker file itself belongs to the reap caller.
	flock.Type = unix.F_UNLCK
	_ = unix.FcntlFlock(file.Fd(), unix.F_SETLK, &flock)
	return true, nil
}
