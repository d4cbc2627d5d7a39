// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

// maxControlByte is the highest byte value treated as a record
// separator (spec §3: "one or more bytes whose value is <= 0x1F").
const maxControlByte = 0x1F

// tombstoneByte marks a record as deleted when it is the record's
// first byte.
const tombstoneByte = '|'

// lineIterator converts a bank's byte stream into (offset, bytes)
// records using the on-disk framing, skipping tombstoned records and
// leading/trailing control bytes (spec §4.3).
type lineIterator struct {
	file      *fileIterator
	remaining int // bytes left to scan within file.Buffer()[:file.Fill()]
}

func newLineIterator(file *fileIterator) *lineIterator {
	return &lineIterator{file: file}
}

// refill requests a new buffer window with the given rollback and
// updates remaining to the new fill size. Returns false at EOF.
func (it *lineIterator) refill(rollback int) (bool, error) {
	n, err := it.file.next(rollback)
	if err != nil {
		return false, err
	}
	it.remaining = n
	return n != 0, nil
}

// next yields the next non-tombstoned record as a bank-relative
// LineId (bank index always 0; callers stamp in the real bank index)
// and a byte slice valid only until the next call to next. Returns the
// null id at EOF.
//
// A record whose length exceeds the buffer is truncated to the buffer
// size and returned rather than re-fetched (spec §4.3's documented
// truncation policy); callers size the buffer to exceed the maximum
// supported line length to avoid this in practice.
func (it *lineIterator) next() (LineId, []byte, error) {
	for {
		if it.remaining == 0 {
			ok, err := it.refill(0)
			if err != nil {
				return NullLineId, nil, err
			}
			if !ok {
				return NullLineId, nil, nil
			}
		}

		buffer := it.file.Buffer()
		fill := it.file.Fill()
		start := fill - it.remaining

		for start != fill && buffer[start] <= maxControlByte {
			start++
			it.remaining--
		}

		end := start
		for end != fill && buffer[end] > maxControlByte {
			end++
		}

		if end == fill && start != 0 {
			ok, err := it.refill(fill - start)
			if err != nil {
				return NullLineId, nil, err
			}
			if !ok {
				return NullLineId, nil, nil
			}
			continue
		}

		length := end - start
		it.remaining -= length

		if buffer[start] == tombstoneByte {
			continue
		}

		offset := it.file.BufferOffset() + int64(start)
		record := append([]byte(nil), buffer[start:end]...)
		return newLineID(uint32(offset), 0), record, nil
	}
}
