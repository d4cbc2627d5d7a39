// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestReplEditorBangBang(t *testing.T) {
	e := &replEditor{}
	e.AddHistory("echo one")
	e.AddHistory("echo two")

	got, ok, err := e.Expand("!!")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !ok || got != "echo two" {
		t.Errorf("Expand(!!) = (%q, %v), want (echo two, true)", got, ok)
	}
}

func TestReplEditorBangNumber(t *testing.T) {
	e := &replEditor{}
	e.AddHistory("echo one")
	e.AddHistory("echo two")

	got, ok, err := e.Expand("!1")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !ok || got != "echo one" {
		t.Errorf("Expand(!1) = (%q, %v), want (echo one, true)", got, ok)
	}
}

func TestReplEditorBangPrefix(t *testing.T) {
	e := &replEditor{}
	e.AddHistory("git status")
	e.AddHistory("git commit")
	e.AddHistory("ls -la")

	got, ok, err := e.Expand("!git")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !ok || got != "git commit" {
		t.Errorf("Expand(!git) = (%q, %v), want (git commit, true)", got, ok)
	}
}

func TestReplEditorBangNumberOutOfRange(t *testing.T) {
	e := &replEditor{}
	e.AddHistory("echo one")

	if _, _, err := e.Expand("!5"); err == nil {
		t.Fatal("Expand(!5) with only one history entry: want error, got nil")
	}
}

func TestReplEditorClearHistory(t *testing.T) {
	e := &replEditor{}
	e.AddHistory("echo one")
	e.ClearHistory()

	if _, ok, _ := e.Expand("!!"); ok {
		t.Error("Expand(!!) after ClearHistory: want ok == false")
	}
}

func TestReplEditorNonBangLine(t *testing.T) {
	e := &replEditor{}
	e.AddHistory("echo one")

	if _, ok, _ := e.Expand("echo two"); ok {
		t.Error("Expand on a non-bang line: want ok == false")
	}
}
