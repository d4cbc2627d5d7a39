// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"
	"strings"
)

// replEditor is the minimal line-editor stand-in [historystore.Editor]
// expects: an in-memory recall list the store populates at startup via
// LoadIntoEditor, plus "!"-style expansion over that list (spec §1,
// §4.7, §6). A real line editor (readline, libedit) is out of scope;
// this exists only so every façade operation has a calling consumer.
type replEditor struct {
	lines []string // oldest first, matches LoadIntoEditor's replay order
}

func (e *replEditor) ClearHistory() {
	e.lines = e.lines[:0]
}

func (e *replEditor) AddHistory(line string) {
	e.lines = append(e.lines, line)
}

// Expand implements the three expansion forms the shell history
// vocabulary (spec GLOSSARY) names: "!!" (the last line), "!n" (the
// nth line, 1-indexed), and "!prefix" (the most recent line starting
// with prefix). It reports ok == false when line isn't one of these
// forms or names nothing in history.
func (e *replEditor) Expand(line string) (string, bool, error) {
	if !strings.HasPrefix(line, "!") || len(e.lines) == 0 {
		return "", false, nil
	}
	rest := line[1:]

	switch {
	case rest == "!":
		return e.lines[len(e.lines)-1], true, nil
	case rest != "" && isAllDigits(rest):
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > len(e.lines) {
			return "", false, fmt.Errorf("clio-shell: history event %q not found", line)
		}
		return e.lines[n-1], true, nil
	case rest != "":
		for i := len(e.lines) - 1; i >= 0; i-- {
			if strings.HasPrefix(e.lines[i], rest) {
				return e.lines[i], true, nil
			}
		}
		return "", false, fmt.Errorf("clio-shell: no history event matches prefix %q", rest)
	default:
		return "", false, nil
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
