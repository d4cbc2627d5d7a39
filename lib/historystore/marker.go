// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"fmt"
	"os"
)

// marker is this process's aliveness signal: a sibling file held open
// under an exclusive byte-range lock for the store's lifetime (spec
// §3, §4.7: "created at construction and auto-deleted on process
// exit"). POSIX has no direct equivalent of Windows'
// FILE_FLAG_DELETE_ON_CLOSE — a bare unlink of an open file always
// succeeds on POSIX and so can't by itself signal liveness — so here
// the lock, not the unlink, is the liveness signal; see DESIGN.md.
type marker struct {
	file *os.File
	path string
}

// markerPath returns the aliveness-marker path for a session bank path.
func markerPath(sessionBankPath string) string {
	return sessionBankPath + "~"
}

// createMarker opens (creating if absent) the marker at path and
// acquires a non-blocking exclusive lock on it for the life of the
// returned marker. A nil, nil return means the marker file could not be
// opened (e.g., read-only filesystem); reap then has nothing to ever
// find at that path, which is a safe degradation.
func createMarker(path string) (*marker, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, nil //nolint:nilerr // soft failure, matches bankfile.Open.
	}
	if err := lockMarker(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("historystore: lock aliveness marker %s: %w", path, err)
	}
	return &marker{file: file, path: path}, nil
}

// Close releases the marker's lock, closes its handle, and unlinks the
// file. Safe to call on a nil marker.
func (m *marker) Close() error {
	if m == nil || m.file == nil {
		return nil
	}
	_ = m.file.Close()
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("historystore: remove aliveness marker %s: %w", m.path, err)
	}
	return nil
}
