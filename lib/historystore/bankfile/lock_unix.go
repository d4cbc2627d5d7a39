// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package bankfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockFile acquires a whole-file fcntl byte-range lock on f, blocking
// until granted. Len 0 in a flock_t means "to the end of the file" and
// grows with it, so truncation/append never require re-locking.
func lockFile(f *os.File, mode Mode) error {
	lockType := int16(unix.F_RDLCK)
	if mode == Exclusive {
		lockType = unix.F_WRLCK
	}
	flock := unix.Flock_t{
		Type:   lockType,
		Whence: int16(os.SEEK_SET),
		Start:  0,
		Len:    0,
	}
	if err := unix.FcntlFlock(f.Fd(), unix.F_SETLKW, &flock); err != nil {
		return fmt.Errorf("bankfile: lock %s: %w", f.Name(), err)
	}
	return nil
}

func unlockFile(f *os.File) error {
	flock := unix.Flock_t{
		Type:   unix.F_UNLCK,
		Whence: int16(os.SEEK_SET),
		Start:  0,
		Len:    0,
	}
	if err := unix.FcntlFlock(f.Fd(), unix.F_SETLK, &flock); err != nil {
		return fmt.Errorf("bankfile: unlock %s: %w", f.Name(), err)
	}
	return nil
}
