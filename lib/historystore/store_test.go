// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"path/filepath"
	"testing"
)

// fakeContext is a minimal [AppContext] for tests: a fixed history path
// and session id.
type fakeContext struct {
	historyPath string
	sessionID   int
}

func (c fakeContext) HistoryPath() string { return c.historyPath }
func (c fakeContext) SessionID() int      { return c.sessionID }

// fakeEditor records every call it receives, standing in for a real
// line editor in tests.
type fakeEditor struct {
	lines      []string
	cleared    int
	expandFunc func(line string) (string, bool, error)
}

func (e *fakeEditor) ClearHistory() {
	e.cleared++
	e.lines = nil
}

func (e *fakeEditor) AddHistory(line string) {
	e.lines = append(e.lines, line)
}

func (e *fakeEditor) Expand(line string) (string, bool, error) {
	if e.expandFunc != nil {
		return e.expandFunc(line)
	}
	return line, false, nil
}

func testConfig(t *testing.T, sessionID int) (Config, *fakeEditor) {
	t.Helper()
	historyPath := filepath.Join(t.TempDir(), "history")
	editor := &fakeEditor{}
	return Config{
		Context: fakeContext{historyPath: historyPath, sessionID: sessionID},
		Editor:  editor,
	}, editor
}

func TestOpenRequiresContext(t *testing.T) {
	_, err := Open(Config{})
	if err == nil {
		t.Fatal("Open with nil Context: want error, got nil")
	}
}

func TestAddFindRemove(t *testing.T) {
	cfg, _ := testConfig(t, 1)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	added, err := store.Add("git status")
	if err != nil || !added {
		t.Fatalf("Add = (%v, %v), want (true, nil)", added, err)
	}

	id, err := store.Find("git status")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if id.IsNull() {
		t.Fatal("Find: want a non-null id for a line just added")
	}
	// The session bank is the current write bank for a non-shared store.
	if id.BankIndex() != bankSession {
		t.Errorf("BankIndex = %d, want %d (session)", id.BankIndex(), bankSession)
	}

	ok, err := store.RemoveID(id)
	if err != nil || !ok {
		t.Fatalf("RemoveID = (%v, %v), want (true, nil)", ok, err)
	}

	id, err = store.Find("git status")
	if err != nil {
		t.Fatalf("Find after remove: %v", err)
	}
	if !id.IsNull() {
		t.Errorf("Find after remove = %v, want NullLineId", id)
	}
}

func TestAddRejectsEmptyLine(t *testing.T) {
	cfg, _ := testConfig(t, 1)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	added, err := store.Add("")
	if err != nil || added {
		t.Fatalf("Add(\"\") = (%v, %v), want (false, nil)", added, err)
	}
}

func TestAddIgnoreSpace(t *testing.T) {
	cfg, _ := testConfig(t, 1)
	cfg.IgnoreSpace = true
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for _, line := range []string{" leading space", "\tleading tab"} {
		added, err := store.Add(line)
		if err != nil {
			t.Fatalf("Add(%q): %v", line, err)
		}
		if added {
			t.Errorf("Add(%q) = true, want false under IgnoreSpace", line)
		}
	}
}

func TestAddDupeIgnore(t *testing.T) {
	cfg, _ := testConfig(t, 1)
	cfg.DupeMode = DupeIgnore
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.Add("ls"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	added, err := store.Add("ls")
	if err != nil {
		t.Fatalf("Add (dupe): %v", err)
	}
	if !added {
		t.Error("Add duplicate under DupeIgnore = false, want true (reported without writing)")
	}

	count := 0
	for scanner := store.ReadLines(); ; {
		_, _, ok := scanner.Next()
		if !ok {
			scanner.Close()
			break
		}
		count++
	}
	if count != 1 {
		t.Errorf("record count = %d, want 1 (no duplicate written)", count)
	}
}

func TestAddDupeErasePrev(t *testing.T) {
	cfg, _ := testConfig(t, 1)
	cfg.DupeMode = DupeErasePrev
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.Add("ls"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add("pwd"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add("ls"); err != nil {
		t.Fatalf("Add (dupe): %v", err)
	}

	var lines []string
	for scanner := store.ReadLines(); ; {
		_, text, ok := scanner.Next()
		if !ok {
			scanner.Close()
			break
		}
		lines = append(lines, string(text))
	}
	if len(lines) != 2 {
		t.Fatalf("surviving lines = %v, want 2 entries (pwd, ls)", lines)
	}
	if lines[0] != "pwd" || lines[1] != "ls" {
		t.Errorf("surviving lines = %v, want [pwd ls]", lines)
	}
}

func TestRemoveCountsAllOccurrences(t *testing.T) {
	cfg, _ := testConfig(t, 1)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for i := 0; i < 3; i++ {
		if _, err := store.Add("dup"); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if _, err := store.Add("unique"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	removed, err := store.Remove("dup")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed != 3 {
		t.Errorf("Remove count = %d, want 3", removed)
	}

	id, err := store.Find("dup")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !id.IsNull() {
		t.Error("Find after Remove: want NullLineId")
	}
}

func TestClear(t *testing.T) {
	cfg, _ := testConfig(t, 1)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.Add("ls"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	id, err := store.Find("ls")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !id.IsNull() {
		t.Error("Find after Clear: want NullLineId")
	}
}

func TestLoadIntoEditorReplaysSurvivingRecords(t *testing.T) {
	cfg, editor := testConfig(t, 1)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.Add("one"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add("two"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	id, err := store.Find("one")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if _, err := store.RemoveID(id); err != nil {
		t.Fatalf("RemoveID: %v", err)
	}

	if err := store.LoadIntoEditor(); err != nil {
		t.Fatalf("LoadIntoEditor: %v", err)
	}
	if editor.cleared == 0 {
		t.Error("editor was never cleared")
	}
	if len(editor.lines) != 1 || editor.lines[0] != "two" {
		t.Errorf("editor.lines = %v, want [two]", editor.lines)
	}
}

func TestExpandRespectsMode(t *testing.T) {
	cfg, editor := testConfig(t, 1)
	cfg.ExpandMode = ExpandNotSingleQuoted
	editor.expandFunc = func(line string) (string, bool, error) {
		return "expanded:" + line, true, nil
	}
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	line := `echo 'hi !x'`
	markerPos := 9 // the '!' inside the single-quoted region

	expanded, ok, err := store.Expand(line, markerPos)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if ok {
		t.Errorf("Expand inside single quotes under not_squoted = (%q, true), want ok=false", expanded)
	}
}

func TestSharedModeHasNoSessionBank(t *testing.T) {
	cfg, _ := testConfig(t, 1)
	cfg.Shared = true
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if store.bank.handle(bankSession) != nil {
		t.Error("shared-mode store has a session bank handle, want none")
	}

	added, err := store.Add("ls")
	if err != nil || !added {
		t.Fatalf("Add = (%v, %v), want (true, nil)", added, err)
	}
	id, err := store.Find("ls")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if id.BankIndex() != bankMaster {
		t.Errorf("BankIndex = %d, want %d (master) in shared mode", id.BankIndex(), bankMaster)
	}
}
