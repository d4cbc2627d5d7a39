// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/clio-history/clio/lib/clock"
	"github.com/clio-history/clio/lib/historystore/bankfile"
)

// Store is a persistent, multi-process command-history database (spec
// §1). The zero value is not usable; construct one with [Open].
type Store struct {
	cfg    Config
	logger *slog.Logger
	clock  clock.Clock

	mu     sync.Mutex
	bank   *bankSet
	marker *marker
}

// Open opens (creating if absent) the master bank named by
// cfg.Context.HistoryPath, and — unless cfg.Shared is set — this
// process's per-session bank, reaps any orphaned session banks left
// behind by a crashed process into master, then replays every
// surviving record into cfg.Editor in bank order (spec §4.7's
// "initialise" operation, folded into Go's usual constructor idiom:
// there is no separate public initialise call). Reaping before the
// editor replay matters: a caller that never reloads the editor after
// Open would otherwise miss records folded in from a crashed sibling
// session until its next restart.
//
// Open never fails on a bank that could not be created or opened; per
// spec §7 it instead returns a Store whose every subsequent operation
// is a documented no-op. It fails when cfg.Context is nil, since that
// collaborator is mandatory, and on errors from locking this session's
// aliveness marker, from the initial reap, or from the editor replay.
func Open(cfg Config) (*Store, error) {
	if cfg.Context == nil {
		return nil, fmt.Errorf("historystore: Config.Context is required")
	}
	if cfg.Glob == nil {
		cfg.Glob = filepath.Glob
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	bank, err := openBankSet(cfg.Context.HistoryPath(), cfg.Context.SessionID(), cfg.Shared)
	if err != nil {
		return nil, err
	}

	var m *marker
	if !cfg.Shared {
		sessPath := sessionPath(cfg.Context.HistoryPath(), cfg.Context.SessionID())
		m, err = createMarker(markerPath(sessPath))
		if err != nil {
			return nil, err
		}
	}

	s := &Store{cfg: cfg, logger: cfg.Logger, clock: cfg.Clock, bank: bank, marker: m}

	if err := s.Reap(); err != nil {
		return nil, err
	}
	if err := s.LoadIntoEditor(); err != nil {
		return nil, err
	}

	return s, nil
}

// Close runs a final reap pass after releasing every bank but master
// (spec §4.8: "runs... at destruction after closing every bank except
// master"), so the last session standing folds in whatever orphans
// remain, then closes master and releases this process's aliveness
// marker.
func (s *Store) Close() error {
	s.mu.Lock()
	if err := s.bank.closeAllButMaster(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if err := s.Reap(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bank.closeMaster(); err != nil {
		return err
	}
	return s.marker.Close()
}

// Add appends line to the current write bank (spec §4.6, §4.7).
//
// It returns false without writing when line is empty, or when
// cfg.IgnoreSpace is set and line's first byte is a space or tab. When
// cfg.DupeMode is DupeIgnore and line already exists in any bank, it
// returns true without writing. Under DupeErasePrev, every existing occurrence across every bank is
// tombstoned before the new record is appended.
func (s *Store) Add(line string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(line) == 0 {
		return false, nil
	}
	if s.cfg.IgnoreSpace && (line[0] == ' ' || line[0] == '\t') {
		return false, nil
	}

	switch s.cfg.DupeMode {
	case DupeIgnore:
		found, err := s.findLocked(line)
		if err != nil {
			return false, err
		}
		if !found.IsNull() {
			return true, nil
		}
	case DupeErasePrev:
		if _, err := s.removeAllLocked(line); err != nil {
			return false, err
		}
	}

	index := s.bank.writeIndex()
	v, err := lockView(s.bank.handle(index), bankfile.Exclusive, bufferSize)
	if err != nil {
		return false, err
	}
	defer v.Close()

	if err := v.append([]byte(line)); err != nil {
		return false, err
	}
	return true, nil
}

// Find returns the LineId of the first occurrence of line, searching
// bank 0 then bank 1 (spec §4.6). It returns [NullLineId] when line is
// not present in any bank.
func (s *Store) Find(line string) (LineId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(line)
}

func (s *Store) findLocked(line string) (LineId, error) {
	for index := 0; index < bankSlots; index++ {
		v, err := lockView(s.bank.handle(index), bankfile.Shared, bufferSize)
		if err != nil {
			return NullLineId, err
		}
		id, err := v.findFirst([]byte(line))
		v.Close()
		if err != nil {
			return NullLineId, err
		}
		if !id.IsNull() {
			return id.withBankIndex(index), nil
		}
	}
	return NullLineId, nil
}

// Remove tombstones every occurrence of line across every bank and
// returns the number of records it tombstoned. Per spec §9's Design
// Notes, this corrects the original implementation's bug of never
// incrementing its count and so always reporting 0; here the returned
// count is always the true number of matches removed.
func (s *Store) Remove(line string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAllLocked(line)
}

func (s *Store) removeAllLocked(line string) (int, error) {
	removed := 0
	for index := 0; index < bankSlots; index++ {
		v, err := lockView(s.bank.handle(index), bankfile.Exclusive, bufferSize)
		if err != nil {
			return removed, err
		}
		err = v.find([]byte(line), func(id LineId) bool {
			if tombErr := v.tombstone(id); tombErr != nil {
				err = tombErr
				return false
			}
			removed++
			return true
		})
		v.Close()
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// RemoveID tombstones the single record id identifies. It reports
// whether a record was actually tombstoned: false when id is the null
// id or names a bank slot this store has no handle for.
func (s *Store) RemoveID(id LineId) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id.IsNull() {
		return false, nil
	}
	handle := s.bank.handle(id.BankIndex())
	if handle == nil {
		return false, nil
	}

	v, err := lockView(handle, bankfile.Exclusive, bufferSize)
	if err != nil {
		return false, err
	}
	defer v.Close()

	if err := v.tombstone(id); err != nil {
		return false, err
	}
	return true, nil
}

// Clear truncates every bank this store has a handle for (spec §4.7).
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for index := 0; index < bankSlots; index++ {
		v, err := lockView(s.bank.handle(index), bankfile.Exclusive, bufferSize)
		if err != nil {
			return err
		}
		err = v.clear()
		v.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// Expand reports whether the "!" at byte offset markerPos in line is
// eligible for history expansion under cfg.ExpandMode, and if so,
// applies cfg.Editor's expansion to line (spec §1, §4.7, §6). ok is
// false either because the marker is inhibited by quoting or because
// the editor found nothing to expand; expanded is only meaningful when
// ok is true. A nil cfg.Editor makes this a permanent no-op.
func (s *Store) Expand(line string, markerPos int) (expanded string, ok bool, err error) {
	if s.cfg.Editor == nil {
		return "", false, nil
	}
	if !ExpansionEligible(s.cfg.ExpandMode, line, markerPos) {
		return "", false, nil
	}
	return s.cfg.Editor.Expand(line)
}

// LoadIntoEditor clears cfg.Editor's recall list, then replays every
// surviving (non-tombstoned) record from bank 0 then bank 1 into it in
// file order (spec §4.7). A nil cfg.Editor makes this a no-op.
func (s *Store) LoadIntoEditor() error {
	if s.cfg.Editor == nil {
		return nil
	}

	s.cfg.Editor.ClearHistory()

	for index := 0; index < bankSlots; index++ {
		v, err := lockView(s.bank.handle(index), bankfile.Shared, bufferSize)
		if err != nil {
			return err
		}
		err = v.each(func(_ LineId, record []byte) bool {
			s.cfg.Editor.AddHistory(string(record))
			return true
		})
		v.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// LineScanner streams (LineId, text) pairs across every bank in order,
// for callers that want to enumerate the full unified history view
// without loading it into an [Editor] (spec §4.7's ReadLines). It holds
// at most one bank's shared lock and one bufferSize window at a time,
// matching the sliding-window design of the file and line iterators
// it's built on (spec §4.2, §4.3) rather than materializing a bank's
// records in memory.
type LineScanner struct {
	store     *Store
	nextIndex int // next bank index to try opening

	view      *view
	bankIndex int
	lineIter  *lineIterator

	err error
}

// ReadLines returns a [LineScanner] over every surviving record, bank 0
// then bank 1. Callers must call Close when done, even after Next
// returns ok == false.
func (s *Store) ReadLines() *LineScanner {
	return &LineScanner{store: s}
}

// Next advances the scanner and reports its next record. text is valid
// only until the next call to Next or Close. ok is false at the end of
// the unified view or after an error; call Err to distinguish the two.
func (sc *LineScanner) Next() (id LineId, text []byte, ok bool) {
	for {
		if sc.err != nil {
			return NullLineId, nil, false
		}
		if sc.lineIter == nil && !sc.openNextBank() {
			return NullLineId, nil, false
		}

		recordID, record, err := sc.lineIter.next()
		if err != nil {
			sc.err = err
			sc.closeCurrent()
			return NullLineId, nil, false
		}
		if recordID.IsNull() {
			sc.closeCurrent()
			continue
		}
		return recordID.withBankIndex(sc.bankIndex), record, true
	}
}

// openNextBank locks and opens an iterator over the next bank this
// store has a handle for, skipping absent slots. Returns false once
// every bank index has been tried.
func (sc *LineScanner) openNextBank() bool {
	for sc.nextIndex < bankSlots {
		index := sc.nextIndex
		sc.nextIndex++

		v, err := lockView(sc.store.bank.handle(index), bankfile.Shared, bufferSize)
		if err != nil {
			sc.err = err
			return false
		}
		if !v.ok() {
			continue
		}

		fileIter, err := newFileIterator(v.handle.File(), v.buffer)
		if err != nil {
			sc.err = err
			v.Close()
			return false
		}

		sc.view = v
		sc.bankIndex = index
		sc.lineIter = newLineIterator(fileIter)
		return true
	}
	return false
}

// closeCurrent releases the bank lock the scanner currently holds, if
// any, so Next can move on to the following bank.
func (sc *LineScanner) closeCurrent() {
	if sc.view != nil {
		sc.view.Close()
		sc.view = nil
	}
	sc.lineIter = nil
}

// Err returns the first error Next encountered, if any.
func (sc *LineScanner) Err() error {
	return sc.err
}

// Close releases any bank lock the scanner currently holds. It is safe
// to call multiple times and after the scanner is exhausted.
func (sc *LineScanner) Close() {
	sc.closeCurrent()
}
