// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"fmt"
	"io"
	"os"
)

// fileIterator is a fixed-size sliding-window byte reader over a bank
// file the caller already holds a lock on (spec §4.2). It tracks how
// many bytes remain unread on disk, how much of the buffer is
// currently filled, and the absolute file offset the buffer's first
// byte corresponds to.
//
// fileIterator resets the file's read position to 0 on construction,
// matching "before the first call, the file pointer is reset to 0."
type fileIterator struct {
	file   *os.File
	buffer []byte

	fill         int   // valid bytes currently in buffer[:fill]
	bufferOffset int64 // absolute file offset of buffer[0]
	remaining    int64 // bytes not yet read from disk
}

func newFileIterator(file *os.File, buffer []byte) (*fileIterator, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("historystore: stat bank: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("historystore: seek bank to start: %w", err)
	}
	return &fileIterator{
		file: file,
		buffer: buffer,
		// fill starts at capacity, not 0: next's bufferOffset update
		// (fill - rollback) must yield len(buffer) on the first call so
		// it cancels the -len(buffer) starting offset below, landing at
		// 0 for the buffer's true first position.
		fill:         len(buffer),
		bufferOffset: -int64(len(buffer)),
		remaining:    info.Size(),
	}, nil
}

// next is the sole advance operation. It copies the trailing
// `rollback` bytes of the current buffer to the front, then reads up
// to len(buffer)-rollback further bytes after them. It returns the new
// fill size, or 0 at EOF.
func (it *fileIterator) next(rollback int) (int, error) {
	if it.remaining == 0 {
		it.fill = 0
		return 0, nil
	}

	if rollback > len(it.buffer) {
		rollback = len(it.buffer)
	}
	if rollback > it.fill {
		rollback = it.fill
	}
	if rollback > 0 {
		copy(it.buffer[:rollback], it.buffer[it.fill-rollback:it.fill])
	}

	it.bufferOffset += int64(it.fill - rollback)

	needed := len(it.buffer) - rollback
	if int64(needed) > it.remaining {
		needed = int(it.remaining)
	}

	n, err := io.ReadFull(it.file, it.buffer[rollback:rollback+needed])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, fmt.Errorf("historystore: read bank: %w", err)
	}

	it.remaining -= int64(n)
	it.fill = n + rollback
	return it.fill, nil
}

// Buffer returns the full underlying buffer. Bytes beyond index
// Fill() are stale leftovers from a previous window and must not be
// interpreted as data.
func (it *fileIterator) Buffer() []byte { return it.buffer }

// Fill returns the number of valid bytes currently in Buffer().
func (it *fileIterator) Fill() int { return it.fill }

// BufferOffset returns the absolute file offset of Buffer()[0].
func (it *fileIterator) BufferOffset() int64 { return it.bufferOffset }
