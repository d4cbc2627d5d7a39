// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

// clio-shell is a demo REPL wiring a minimal line-editor stand-in
// against lib/historystore's façade: interactive lines go through
// add_history (and, when they start with "!", through history_expand
// first), arrow keys recall prior
// lines, and Ctrl-R opens a fuzzy-search picker over the full unified
// history view.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/clio-history/clio/lib/historyconfig"
	"github.com/clio-history/clio/lib/historystore"
	"github.com/clio-history/clio/lib/process"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

type shellContext struct {
	historyPath string
	sessionID   int
}

func (c shellContext) HistoryPath() string { return c.historyPath }
func (c shellContext) SessionID() int      { return c.sessionID }

func run(args []string) error {
	flagSet := pflag.NewFlagSet("clio-shell", pflag.ContinueOnError)
	var configPath string
	flagSet.StringVar(&configPath, "config", "", "path to clio.yaml (default: $CLIO_CONFIG, else built-in defaults)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	var cfg *historyconfig.Config
	var err error
	switch {
	case configPath != "":
		cfg, err = historyconfig.LoadFile(configPath)
	case os.Getenv("CLIO_CONFIG") != "":
		cfg, err = historyconfig.Load()
	default:
		cfg = historyconfig.Default()
	}
	if err != nil {
		return err
	}

	storeCfg, err := cfg.StoreConfig()
	if err != nil {
		return err
	}
	editor := &replEditor{}
	storeCfg.Editor = editor
	storeCfg.Context = shellContext{historyPath: cfg.HistoryPath, sessionID: os.Getpid()}

	store, err := historystore.Open(storeCfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return repl(store, editor)
}

// repl runs the interactive loop. When stdin is a real terminal it
// reads raw keystrokes so arrow-key recall and Ctrl-R work; otherwise
// (piped input, tests, CI) it falls back to plain line-buffered
// reading, matching the teacher's term.IsTerminal-gated degradation.
func repl(store *historystore.Store, editor *replEditor) error {
	stdinFD := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFD) {
		return replPlain(store, editor)
	}
	return replInteractive(store, editor, stdinFD)
}

func replPlain(store *historystore.Store, editor *replEditor) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := handleLine(store, editor, scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// handleLine runs one submitted line through expansion and, unless it
// is one of the built-in commands "history" or "clear-history", records
// the (possibly expanded) line.
func handleLine(store *historystore.Store, editor *replEditor, line string) error {
	if line == "" {
		return nil
	}

	if len(line) > 0 && line[0] == '!' {
		expanded, ok, err := store.Expand(line, 0)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("%s\n", expanded)
			line = expanded
		}
	}

	switch line {
	case "history":
		printHistory(editor)
		return nil
	case "clear-history":
		return store.Clear()
	}

	added, err := store.Add(line)
	if err != nil {
		return err
	}
	if !added {
		return nil
	}
	editor.AddHistory(line)
	return nil
}

func printHistory(editor *replEditor) {
	for i, line := range editor.lines {
		fmt.Printf("%5d  %s\n", i+1, line)
	}
}

