// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReapSplicesCrashedPeerSession(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history")

	storeA, err := Open(Config{Context: fakeContext{historyPath: historyPath, sessionID: 1}})
	if err != nil {
		t.Fatalf("Open storeA: %v", err)
	}
	if _, err := storeA.Add("from-a"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Simulate storeA crashing: its marker's lock is released (the OS
	// drops it when the process dies) but, as spec §9 notes can happen,
	// the marker file itself survives. Unlike a clean Close, nothing
	// splices storeA's session bank into master or removes its files.
	storeA.marker.file.Close()

	storeB, err := Open(Config{Context: fakeContext{historyPath: historyPath, sessionID: 2}})
	if err != nil {
		t.Fatalf("Open storeB: %v", err)
	}
	defer storeB.Close()

	id, err := storeB.Find("from-a")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if id.IsNull() {
		t.Fatal("Find(\"from-a\"): want a match after reap spliced the crashed peer into master")
	}
	if id.BankIndex() != bankMaster {
		t.Errorf("BankIndex = %d, want %d (master, post-splice)", id.BankIndex(), bankMaster)
	}

	if _, err := os.Stat(sessionPath(historyPath, 1)); err == nil {
		t.Error("storeA's session bank still exists after reap, want it unlinked")
	}
}

func TestReapSkipsLivePeerSession(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history")

	storeA, err := Open(Config{Context: fakeContext{historyPath: historyPath, sessionID: 1}})
	if err != nil {
		t.Fatalf("Open storeA: %v", err)
	}
	defer storeA.Close()

	if _, err := storeA.Add("from-a"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	storeB, err := Open(Config{Context: fakeContext{historyPath: historyPath, sessionID: 2}})
	if err != nil {
		t.Fatalf("Open storeB: %v", err)
	}
	defer storeB.Close()

	// storeA is still alive (its marker lock is held), so storeB's reap
	// at construction must not have touched it.
	id, err := storeB.Find("from-a")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !id.IsNull() {
		t.Error("Find(\"from-a\") on storeB found a live peer's record, want no splice yet")
	}
}

func TestReapIsNoOpInSharedMode(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history")
	store, err := Open(Config{Context: fakeContext{historyPath: historyPath, sessionID: 1}, Shared: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Reap(); err != nil {
		t.Errorf("Reap in shared mode: %v", err)
	}
}

func TestIsMarkerPath(t *testing.T) {
	if !isMarkerPath("/tmp/history_3~") {
		t.Error("isMarkerPath(\"/tmp/history_3~\") = false, want true")
	}
	if isMarkerPath("/tmp/history_3") {
		t.Error("isMarkerPath(\"/tmp/history_3\") = true, want false")
	}
}
