// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"fmt"
	"io"
	"os"

	"github.com/clio-history/clio/lib/historystore/bankfile"
)

// CompactResult summarizes one compaction pass (spec §9 Design Notes:
// "An implementer may add an opportunistic compaction at reap... the
// source does not do this"). SPEC_FULL's clio makes this explicit and
// operator-invoked rather than inline with add/find.
type CompactResult struct {
	// OriginalBytes is the master bank's full pre-compaction content,
	// returned so the caller can archive it before it is gone.
	OriginalBytes []byte
	// KeptRecords is the number of non-tombstoned records carried over.
	KeptRecords int
	// DroppedRecords is the number of tombstoned records discarded.
	DroppedRecords int
}

// Compact rewrites the master bank, discarding tombstoned records, via
// a temporary file and atomic rename, under master's exclusive lock.
// It never compacts a session bank: per spec §4.6 only the master bank
// is the long-lived, multi-session-shared file worth reclaiming space
// in.
//
// A master bank that isn't open degrades to a no-op, returning a zero
// CompactResult, matching the store's soft-failure policy (§7).
func (s *Store) Compact() (*CompactResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	masterHandle := s.bank.handle(bankMaster)
	v, err := lockView(masterHandle, bankfile.Exclusive, bufferSize)
	if err != nil {
		return nil, err
	}
	defer v.Close()
	if !v.ok() {
		return &CompactResult{}, nil
	}

	if _, err := masterHandle.File().Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("historystore: seek master for compaction: %w", err)
	}
	original, err := io.ReadAll(masterHandle.File())
	if err != nil {
		return nil, fmt.Errorf("historystore: read master for compaction: %w", err)
	}

	total := countAllRecords(original)

	tempPath := masterHandle.Path() + ".compact-tmp"
	tempFile, err := os.OpenFile(tempPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("historystore: create compaction temp file: %w", err)
	}

	kept, err := writeSurvivingRecords(tempFile, masterHandle.File())
	if err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return nil, err
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return nil, fmt.Errorf("historystore: sync compaction temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return nil, fmt.Errorf("historystore: close compaction temp file: %w", err)
	}
	if err := os.Rename(tempPath, masterHandle.Path()); err != nil {
		os.Remove(tempPath)
		return nil, fmt.Errorf("historystore: rename compacted master into place: %w", err)
	}

	// The rename retargets the path's directory entry, but this
	// process's existing *os.File still refers to the old (now
	// unlinked) inode. Reopen to pick up the replacement.
	newHandle, err := bankfile.Open(masterHandle.Path())
	if err != nil {
		return nil, err
	}
	if newHandle == nil {
		return nil, fmt.Errorf("historystore: reopening compacted master %s failed unexpectedly", masterHandle.Path())
	}
	s.bank.handles[bankMaster] = newHandle
	masterHandle.Close()

	return &CompactResult{OriginalBytes: original, KeptRecords: kept, DroppedRecords: total - kept}, nil
}

// writeSurvivingRecords streams src's non-tombstoned records, each
// followed by a single '\n', into dst and returns how many it wrote.
func writeSurvivingRecords(dst *os.File, src *os.File) (int, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("historystore: seek master for compaction scan: %w", err)
	}

	fileIter, err := newFileIterator(src, make([]byte, bufferSize))
	if err != nil {
		return 0, err
	}
	lineIter := newLineIterator(fileIter)

	kept := 0
	for {
		id, record, err := lineIter.next()
		if err != nil {
			return kept, err
		}
		if id.IsNull() {
			return kept, nil
		}
		if _, err := dst.Write(record); err != nil {
			return kept, fmt.Errorf("historystore: write compacted record: %w", err)
		}
		if _, err := dst.Write([]byte{'\n'}); err != nil {
			return kept, fmt.Errorf("historystore: write compacted separator: %w", err)
		}
		kept++
	}
}

// countAllRecords counts every record in data, tombstoned or not,
// using the same separator framing as [lineIterator] but without its
// tombstone-skip, so callers can report how many records a compaction
// pass dropped.
func countAllRecords(data []byte) int {
	total := 0
	start := 0
	for start < len(data) {
		for start < len(data) && data[start] <= maxControlByte {
			start++
		}
		end := start
		for end < len(data) && data[end] > maxControlByte {
			end++
		}
		if end == start {
			break
		}
		total++
		start = end
	}
	return total
}
