// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package bankfile

// Mode selects whether a Lock is acquired for shared (read) or
// exclusive (write) access.
type Mode int

const (
	// Shared permits any number of concurrent readers, none of which
	// may hold an exclusive lock at the same time.
	Shared Mode = iota
	// Exclusive permits exactly one holder, excluding all readers and
	// writers.
	Exclusive
)

// Lock is a scoped byte-range lock covering an entire bank file.
// Acquire blocks until the lock is granted. Release is idempotent and
// safe to call more than once; callers typically defer it immediately
// after a successful Acquire.
//
// A Lock taken on a nil Handle is permitted and reports Held() ==
// false, matching spec §4.1: "a lock holding a null handle is
// permitted and evaluates as 'not acquired' so callers can uniformly
// test."
type Lock struct {
	handle   *Handle
	mode     Mode
	acquired bool
}

// Acquire locks the entire byte range of h's file in the given mode,
// blocking until granted. If h is nil, Acquire returns a Lock that is
// not held, rather than an error.
func Acquire(h *Handle, mode Mode) (*Lock, error) {
	l := &Lock{handle: h, mode: mode}
	if h == nil {
		return l, nil
	}
	if err := lockFile(h.file, mode); err != nil {
		return nil, err
	}
	l.acquired = true
	return l, nil
}

// Held reports whether the lock is actually held on an open file.
func (l *Lock) Held() bool {
	return l != nil && l.acquired
}

// Mode returns the lock's acquisition mode.
func (l *Lock) Mode() Mode {
	if l == nil {
		return Shared
	}
	return l.mode
}

// Release unlocks the byte range. Safe to call on a nil Lock, on a
// Lock that was never held, or more than once.
func (l *Lock) Release() {
	if l == nil || !l.acquired {
		return
	}
	// Best-effort: unlocking cannot meaningfully fail for a lock this
	// process holds, and there is no useful recovery if it does.
	_ = unlockFile(l.handle.file)
	l.acquired = false
}
