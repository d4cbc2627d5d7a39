// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"fmt"
	"strconv"

	"github.com/clio-history/clio/lib/historystore/bankfile"
)

// Bank indices, matching spec §3/§4.6 exactly.
const (
	bankMaster  = 0
	bankSession = 1
	bankSlots   = 2
)

// bankSet holds up to two bank handles: master (always present once
// opened) and session (present only when Config.Shared is false).
// Iteration, search, and for-each-bank traversals walk indices 0, 1 in
// order, matching spec §4.6.
type bankSet struct {
	handles [bankSlots]*bankfile.Handle
}

// openBankSet opens the master bank, and — unless shared is true — the
// per-session bank too. A master bank that fails to open is tolerated
// (count() reports 0 and every façade call degrades to a no-op), per
// spec §7's fatal-open policy.
func openBankSet(historyPath string, sessionID int, shared bool) (*bankSet, error) {
	var set bankSet

	master, err := bankfile.Open(historyPath)
	if err != nil {
		return nil, err
	}
	set.handles[bankMaster] = master

	if shared {
		return &set, nil
	}

	session, err := bankfile.Open(sessionPath(historyPath, sessionID))
	if err != nil {
		return nil, err
	}
	set.handles[bankSession] = session

	return &set, nil
}

// sessionPath builds "<historyPath>_<decimal session id>", matching
// spec §6's on-disk layout exactly: a plain decimal id, no zero
// padding (see DESIGN.md).
func sessionPath(historyPath string, sessionID int) string {
	return historyPath + "_" + strconv.Itoa(sessionID)
}

// count returns the number of present bank slots.
func (b *bankSet) count() int {
	n := 0
	for _, h := range b.handles {
		if h != nil {
			n++
		}
	}
	return n
}

// handle returns the bank handle at index, or nil if index is out of
// range or that slot is absent.
func (b *bankSet) handle(index int) *bankfile.Handle {
	if index < 0 || index >= bankSlots {
		return nil
	}
	return b.handles[index]
}

// writeIndex returns the rightmost present bank: session when present,
// master otherwise. This is the "current write bank" of spec §4.6.
func (b *bankSet) writeIndex() int {
	if b.handles[bankSession] != nil {
		return bankSession
	}
	return bankMaster
}

// closeAllButMaster closes every non-master bank, in preparation for a
// final reap pass (spec §4.8: "the destruction pass... after closing
// every bank except master").
func (b *bankSet) closeAllButMaster() error {
	for i, h := range b.handles {
		if i == bankMaster || h == nil {
			continue
		}
		if err := h.Close(); err != nil {
			return fmt.Errorf("historystore: closing bank %d: %w", i, err)
		}
		b.handles[i] = nil
	}
	return nil
}

// closeMaster closes the master bank. Call only after closeAllButMaster
// and a final reap, matching spec §4.8's ordering requirement.
func (b *bankSet) closeMaster() error {
	h := b.handles[bankMaster]
	b.handles[bankMaster] = nil
	if err := h.Close(); err != nil {
		return fmt.Errorf("historystore: closing master bank: %w", err)
	}
	return nil
}
