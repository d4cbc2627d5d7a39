// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

// AppContext supplies the base history path and the session id used
// to derive this process's session bank path. It is out of scope per
// spec §1 ("paths, process id source... treated as an external
// 'context' collaborator") — the store only ever reads from it.
type AppContext interface {
	// HistoryPath returns the absolute path of the master bank file.
	HistoryPath() string
	// SessionID returns this process's session id, used to build the
	// per-session bank path as "<history path>_<decimal session id>".
	SessionID() int
}

// Globber returns every filesystem path matching a shell glob
// pattern, used by the reap protocol to discover sibling session
// files (spec §4.8, §6).
type Globber func(pattern string) ([]string, error)

// Editor is the external line-editor collaborator the store populates
// and expands against (spec §1, §4.7, §6). A real line editor is out
// of scope; callers provide an adapter over whatever recall/expansion
// machinery they use.
type Editor interface {
	// ClearHistory discards whatever lines the editor currently holds.
	ClearHistory()
	// AddHistory appends one line to the editor's in-memory recall
	// list, called once per record while replaying banks at startup.
	AddHistory(line string)
	// Expand applies "!"-style history expansion to line and returns
	// the expanded result. ok is false when line contained no
	// expansion the editor recognized; expanded is only meaningful
	// when ok is true.
	Expand(line string) (expanded string, ok bool, err error)
}
