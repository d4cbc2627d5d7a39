// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/clio-history/clio/lib/historystore/bankfile"
)

// Reap runs the reap protocol (spec §4.8): glob for sibling session
// banks, treat any whose aliveness marker shows a dead owner as
// orphaned, splice each orphan's full contents (including tombstones)
// onto master, then unlink the orphan and its marker. Open calls this
// once after the session bank and marker are created, and [Store.Close]
// calls it again after closing every bank but master, so the last
// session standing picks up whatever orphans remain.
//
// Reap is a no-op in shared mode, since there is no per-session bank to
// ever produce an orphan, and when the master bank is not open, so no
// orphan is unlinked without first being spliced.
func (s *Store) Reap() error {
	if s.cfg.Shared {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bank.handle(bankMaster) == nil {
		return nil
	}

	pattern := s.cfg.Context.HistoryPath() + "_*"
	candidates, err := s.cfg.Glob(pattern)
	if err != nil {
		return fmt.Errorf("historystore: glob %s: %w", pattern, err)
	}

	ownPath := sessionPath(s.cfg.Context.HistoryPath(), s.cfg.Context.SessionID())
	logger := s.logger.With("reap_pass", uuid.New().String(), "history_path", s.cfg.Context.HistoryPath())

	for _, candidate := range candidates {
		if candidate == ownPath || isMarkerPath(candidate) {
			continue
		}
		if err := s.reapOne(logger, candidate); err != nil {
			return err
		}
	}
	return nil
}

// isMarkerPath reports whether path is itself an aliveness marker
// rather than a session bank. The glob pattern "<history_path>_*"
// matches both, since a marker path is just its session bank's path
// with "~" appended; markers must never be treated as splice sources.
func isMarkerPath(path string) bool {
	return len(path) > 0 && path[len(path)-1] == '~'
}

// reapOne reaps a single candidate session bank path if its aliveness
// marker shows a dead owner (spec §4.8 steps 2-4).
func (s *Store) reapOne(logger *slog.Logger, path string) error {
	marker := markerPath(path)

	orphaned, err := markerIsOrphaned(marker)
	if err != nil {
		return err
	}
	if !orphaned {
		logger.Debug("reap: peer session still alive, skipping", "path", path)
		return nil
	}

	peer, err := bankfile.Open(path)
	if err != nil {
		return err
	}
	if peer == nil {
		return nil
	}

	peerView, err := lockView(peer, bankfile.Shared, bufferSize)
	if err != nil {
		return err
	}
	defer peerView.Close()

	masterView, err := lockView(s.bank.handle(bankMaster), bankfile.Exclusive, bufferSize)
	if err != nil {
		return err
	}
	defer masterView.Close()

	if err := masterView.splice(peerView); err != nil {
		return err
	}
	masterView.Close()
	peerView.Close()

	if err := peer.Close(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("historystore: unlink reaped session %s: %w", path, err)
	}
	if err := os.Remove(marker); err != nil && !os.IsNotExist(err) {
		logger.Warn("reap: could not remove stale marker", "path", marker, "error", err)
	}

	logger.Info("reap: spliced orphaned session into master", "path", path, "reaped_at", s.clock.Now())
	return nil
}
