// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package bankfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// MaxSize is the documented ceiling on a bank file's size: 512 MiB
// (2^29 bytes), the span of the 29-bit offset field packed into a
// LineId. Nothing in this package enforces it; appends do not check it.
const MaxSize = 512 << 20

// Handle is an open bank file, shared read+write with any sibling
// process on the same machine. Open creates the file if it does not
// already exist.
type Handle struct {
	file *os.File
	path string
}

// Open opens path for read+write, creating it (and any missing parent
// directory) if absent. Returns (nil, nil) — not an error — when the
// file cannot be opened at all (e.g., a read-only filesystem); the
// store's fatal-open policy (spec §7) treats a nil Handle as "this
// bank does not exist" rather than crashing the caller.
func Open(path string) (*Handle, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil //nolint:nilerr // soft failure: absent/unopenable bank is a valid store state.
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, nil //nolint:nilerr // soft failure: absent/unopenable bank is a valid store state.
	}
	return &Handle{file: file, path: path}, nil
}

// Close closes the underlying file. Safe to call on a nil Handle.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	return h.file.Close()
}

// File returns the underlying *os.File. Used by [Lock] to operate the
// fcntl byte-range lock and by readers/writers to seek and transfer
// bytes while holding the lock.
func (h *Handle) File() *os.File {
	if h == nil {
		return nil
	}
	return h.file
}

// Path returns the filesystem path the handle was opened from.
func (h *Handle) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

// Size returns the current size of the bank file in bytes.
func (h *Handle) Size() (int64, error) {
	if h == nil {
		return 0, nil
	}
	info, err := h.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("bankfile: stat %s: %w", h.path, err)
	}
	return info.Size(), nil
}
