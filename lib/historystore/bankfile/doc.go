// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

// Package bankfile provides the lowest layer of the history store: an
// open file handle shared by concurrent processes, and a scoped
// whole-file byte-range lock acquired on that handle.
//
// [Handle] opens a bank file for read+write, creating it if absent,
// shared for both reading and writing by sibling processes (plain
// os.OpenFile on Unix already permits this; there is no share-mode
// flag to set, unlike the Win32 CreateFile API this package's
// semantics are modeled on).
//
// [Lock] acquires a byte-range lock covering the entire file via
// fcntl(2) F_SETLKW, in shared or exclusive mode. Acquiring blocks
// until the lock is granted; Release always unlocks, and a Lock taken
// on a nil Handle is permitted and reports itself as not held, so
// callers can test uniformly without a nil check at every call site.
package bankfile
