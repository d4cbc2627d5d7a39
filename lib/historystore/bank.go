// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"bytes"
	"fmt"
	"io"

	"github.com/clio-history/clio/lib/historystore/bankfile"
)

// view is a locked bank: a [bankfile.Handle] held under a
// [bankfile.Lock] for the duration of one operation. Acquired with a
// shared lock it implements spec §4.4 (Read view); acquired with an
// exclusive lock it additionally supports the §4.5 (Write view)
// mutators. There is one Go type for both, matching the spec's own
// framing ("a write view is a read view acquired with an exclusive
// lock").
type view struct {
	handle *bankfile.Handle
	lock   *bankfile.Lock
	buffer []byte
}

// lockView acquires handle under the given lock mode and returns a
// view ready to scan or mutate it. If handle is nil, the returned view
// has lock.Held() == false and every operation on it is a no-op,
// matching the soft-failure policy of spec §7.
func lockView(handle *bankfile.Handle, mode bankfile.Mode, bufferSize int) (*view, error) {
	lock, err := bankfile.Acquire(handle, mode)
	if err != nil {
		return nil, err
	}
	return &view{handle: handle, lock: lock, buffer: make([]byte, bufferSize)}, nil
}

func (v *view) Close() {
	v.lock.Release()
}

func (v *view) ok() bool {
	return v != nil && v.lock.Held()
}

// find scans every non-tombstoned record and invokes callback for
// each one whose bytes exactly match line. callback returns true to
// keep searching, false to stop. During callback the file's read
// position is saved and restored, so callback may itself perform I/O
// against the bank (e.g., tombstoning the match it was just given).
func (v *view) find(line []byte, callback func(LineId) bool) error {
	if !v.ok() {
		return nil
	}
	fileIter, err := newFileIterator(v.handle.File(), v.buffer)
	if err != nil {
		return err
	}
	lineIter := newLineIterator(fileIter)

	for {
		id, record, err := lineIter.next()
		if err != nil {
			return err
		}
		if id.IsNull() {
			return nil
		}
		if !bytes.Equal(record, line) {
			continue
		}

		pos, err := v.handle.File().Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("historystore: save read position: %w", err)
		}
		keepGoing := callback(id)
		if _, err := v.handle.File().Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("historystore: restore read position: %w", err)
		}
		if !keepGoing {
			return nil
		}
	}
}

// findFirst returns the first matching LineId, or NullLineId if none
// match.
func (v *view) findFirst(line []byte) (LineId, error) {
	var found LineId
	err := v.find(line, func(id LineId) bool {
		found = id
		return false
	})
	return found, err
}

// each invokes callback for every non-tombstoned record in order.
// callback returning false stops iteration early.
func (v *view) each(callback func(LineId, []byte) bool) error {
	if !v.ok() {
		return nil
	}
	fileIter, err := newFileIterator(v.handle.File(), v.buffer)
	if err != nil {
		return err
	}
	lineIter := newLineIterator(fileIter)

	for {
		id, record, err := lineIter.next()
		if err != nil {
			return err
		}
		if id.IsNull() {
			return nil
		}
		if !callback(id, record) {
			return nil
		}
	}
}

// clear truncates the bank to zero length.
func (v *view) clear() error {
	if !v.ok() {
		return nil
	}
	if _, err := v.handle.File().Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("historystore: seek for clear: %w", err)
	}
	if err := v.handle.File().Truncate(0); err != nil {
		return fmt.Errorf("historystore: truncate: %w", err)
	}
	return nil
}

// append writes line followed by a single '\n' terminator at the end
// of the bank. line must not be empty and must not contain any byte
// <= 0x1F; the façade is responsible for rejecting such lines before
// they reach append.
func (v *view) append(line []byte) error {
	if !v.ok() {
		return nil
	}
	if _, err := v.handle.File().Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("historystore: seek for append: %w", err)
	}
	if _, err := v.handle.File().Write(line); err != nil {
		return fmt.Errorf("historystore: append record: %w", err)
	}
	if _, err := v.handle.File().Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("historystore: append terminator: %w", err)
	}
	return nil
}

// tombstone overwrites the first byte of the record at id's offset
// with '|'. The record's length is unchanged, so no other offset is
// invalidated.
func (v *view) tombstone(id LineId) error {
	if !v.ok() {
		return nil
	}
	if _, err := v.handle.File().Seek(int64(id.Offset()), io.SeekStart); err != nil {
		return fmt.Errorf("historystore: seek for tombstone: %w", err)
	}
	if _, err := v.handle.File().Write([]byte{tombstoneByte}); err != nil {
		return fmt.Errorf("historystore: write tombstone: %w", err)
	}
	return nil
}

// splice copies every byte of src, including tombstones and
// separators, onto the end of v as-is.
func (v *view) splice(src *view) error {
	if !v.ok() || !src.ok() {
		return nil
	}
	if _, err := v.handle.File().Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("historystore: seek for splice: %w", err)
	}
	if _, err := src.handle.File().Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("historystore: seek splice source: %w", err)
	}
	if _, err := io.Copy(v.handle.File(), src.handle.File()); err != nil {
		return fmt.Errorf("historystore: splice: %w", err)
	}
	return nil
}
