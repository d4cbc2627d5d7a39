// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"log/slog"

	"github.com/clio-history/clio/lib/clock"
)

// DupeMode controls how Add handles a line that already exists
// somewhere in the unified history view (spec §4.7, §6).
type DupeMode int

const (
	// DupeAdd always appends, even if the line already exists.
	DupeAdd DupeMode = iota
	// DupeIgnore skips the append (but still reports success) if the
	// line is already present in any bank.
	DupeIgnore
	// DupeErasePrev tombstones every existing occurrence of the line
	// across all banks before appending the new one.
	DupeErasePrev
)

// String returns the lowercase setting name, matching the vocabulary
// callers configure with (spec §6).
func (m DupeMode) String() string {
	switch m {
	case DupeAdd:
		return "add"
	case DupeIgnore:
		return "ignore"
	case DupeErasePrev:
		return "erase_prev"
	default:
		return "unknown"
	}
}

// ExpandMode selects when a "!" at a given offset is eligible for
// history expansion (spec §6). Quote state is computed by a
// left-to-right scan toggling on matching quote characters; there is
// no escape processing.
type ExpandMode int

const (
	// ExpandOff never allows expansion.
	ExpandOff ExpandMode = iota
	// ExpandOn always allows expansion.
	ExpandOn
	// ExpandNotSingleQuoted inhibits expansion when the marker lies
	// inside a single-quoted region.
	ExpandNotSingleQuoted
	// ExpandNotDoubleQuoted inhibits expansion when the marker lies
	// inside a double-quoted region.
	ExpandNotDoubleQuoted
	// ExpandNotQuoted inhibits expansion when the marker lies inside
	// either a single- or double-quoted region.
	ExpandNotQuoted
)

func (m ExpandMode) String() string {
	switch m {
	case ExpandOff:
		return "off"
	case ExpandOn:
		return "on"
	case ExpandNotSingleQuoted:
		return "not_squoted"
	case ExpandNotDoubleQuoted:
		return "not_dquoted"
	case ExpandNotQuoted:
		return "not_quoted"
	default:
		return "unknown"
	}
}

// Config holds the four read-only behavior knobs described in spec
// §1/§6. It is consumed at operation time; the store never mutates it
// and never reloads it — callers that want live reconfiguration must
// construct a new value and pass it to the relevant call.
type Config struct {
	// Shared, when true, makes every session on the machine write
	// directly to the master bank: no per-session bank is opened and
	// reap never runs for this process.
	Shared bool

	// IgnoreSpace, when true, makes Add reject any line whose first
	// byte is a space or tab.
	IgnoreSpace bool

	// DupeMode selects how Add treats a line that duplicates an
	// existing record.
	DupeMode DupeMode

	// ExpandMode selects which quoting contexts inhibit "!" expansion.
	ExpandMode ExpandMode

	// Context supplies the master bank path and this process's session
	// id. Required.
	Context AppContext

	// Glob enumerates filesystem paths matching a shell glob pattern,
	// used only by Reap to discover sibling session banks. Defaults to
	// filepath.Glob.
	Glob Globber

	// Editor is the line editor this store populates on open and
	// expands "!" lines against. Optional: a nil Editor makes
	// LoadIntoEditor and Expand no-ops.
	Editor Editor

	// Clock provides time operations, used to time-stamp reap
	// diagnostics. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// MaxLineLength is the largest record this implementation guarantees
// round-trips without truncation (spec §6: "max_line_length is fixed
// (>= 8 KiB)"). Lines up to bufferSize bytes still round-trip; a
// longer line comes back truncated to bufferSize bytes on read, per
// spec §4.3's documented policy.
const MaxLineLength = 8192

// bufferSize is the scanning window size used by every bank's file
// iterator. It must exceed MaxLineLength so a maximum-length record
// can never span more than two buffer windows worth of rollback.
const bufferSize = MaxLineLength + 1024
