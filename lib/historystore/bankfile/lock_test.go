// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package bankfile

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLockOnNilHandleIsNotHeld(t *testing.T) {
	l, err := Acquire(nil, Shared)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if l.Held() {
		t.Errorf("Held() = true, want false for a lock on a nil handle")
	}
	l.Release() // must not panic
}

func TestExclusiveLockExcludesExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank")
	h, err := Open(path)
	if err != nil || h == nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	first, err := Acquire(h, Exclusive)
	if err != nil {
		t.Fatalf("Acquire first: %v", err)
	}
	if !first.Held() {
		t.Fatalf("first lock not held")
	}

	// A second process would block; within one process the same file
	// descriptor's fcntl locks are process-scoped, so acquiring again
	// on the same *os.File is expected to succeed (fcntl locks are not
	// reentrant-deadlocking within a single fd owner in POSIX
	// semantics -- they coalesce). Use a second, independently-opened
	// Handle to exercise real inter-process style contention instead.
	second, err := Open(path)
	if err != nil || second == nil {
		t.Fatalf("Open second handle: %v", err)
	}
	defer second.Close()

	acquired := make(chan *Lock, 1)
	go func() {
		l, err := Acquire(second, Exclusive)
		if err != nil {
			t.Errorf("Acquire second: %v", err)
			acquired <- nil
			return
		}
		acquired <- l
	}()

	select {
	case <-acquired:
		t.Fatalf("second exclusive Acquire granted while first lock is held")
	case <-time.After(100 * time.Millisecond):
		// Expected: still blocked.
	}

	first.Release()

	select {
	case l := <-acquired:
		if l == nil || !l.Held() {
			t.Fatalf("second Acquire did not succeed after release")
		}
		l.Release()
	case <-time.After(2 * time.Second):
		t.Fatalf("second Acquire never unblocked after release")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank")
	h, err := Open(path)
	if err != nil || h == nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	l, err := Acquire(h, Shared)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	l.Release()
	l.Release() // must not panic or double-unlock
	if l.Held() {
		t.Errorf("Held() = true after Release")
	}
}
