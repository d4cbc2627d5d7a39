// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

// Package historystore is a persistent, multi-process command-history
// database. It stores lines entered across concurrent shell sessions,
// survives crashes, supports three deduplication policies, and exposes
// history to a line editor for recall and "!"-style expansion.
//
// # Banks
//
// History is kept in "banks": append-only, line-oriented files guarded
// by OS byte-range locks (see [lib/historystore/bankfile]). There are
// at most two: a master bank shared by every session on the machine,
// and (unless [Config.Shared] is set) a per-session bank that holds
// lines added by this process until a sibling session reaps it into
// master. A record is tombstoned in place — its first byte rewritten
// to '|' — rather than deleted, which keeps every previously issued
// [LineId] valid and keeps removal O(1) at the cost of accumulating
// dead space, reclaimed only by explicit compaction (see
// [Store.Compact]).
//
// # Usage
//
//	store, err := historystore.Open(historystore.Config{
//		Context:     ctx,
//		Shared:      false,
//		IgnoreSpace: true,
//		DupeMode:    historystore.DupeErasePrev,
//		ExpandMode:  historystore.ExpandNotQuoted,
//		Editor:      editor,
//	})
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	store.Add("git status")
//	id, _ := store.Find("git status")
//	store.RemoveID(id)
//
// Every public operation degrades gracefully rather than panicking or
// returning a hard error for conditions spec-mandated as soft failures
// (§7): a store whose master bank could not be opened (e.g., a
// read-only filesystem) still constructs successfully and every
// subsequent call becomes a documented no-op.
package historystore
