// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/clio-history/clio/lib/historystore"
)

const (
	keyCtrlC      = 0x03
	keyCtrlD      = 0x04
	keyCtrlR      = 0x12
	keyBackspace  = 0x7f
	keyBackspace8 = 0x08
	keyEnterCR    = '\r'
	keyEnterLF    = '\n'
	keyEscape     = 0x1b
)

// replInteractive runs the raw-mode REPL loop: it reads one byte at a
// time so it can intercept arrow keys (Up/Down recall through the
// editor's history list) and Ctrl-R (the fuzzy picker) before they
// ever reach line-buffered input.
func replInteractive(store *historystore.Store, editor *replEditor, fd int) error {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("clio-shell: entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	reader := os.Stdin
	var buffer []rune
	historyCursor := len(editor.lines) // one past the newest; recall moves backward into it
	savedLine := ""

	redraw := func() {
		fmt.Fprint(os.Stdout, "\r\x1b[K$ "+string(buffer))
	}
	redraw()

	readByte := func() (byte, error) {
		b := make([]byte, 1)
		if _, err := reader.Read(b); err != nil {
			return 0, err
		}
		return b[0], nil
	}

	for {
		b, err := readByte()
		if err != nil {
			fmt.Fprint(os.Stdout, "\r\n")
			return err
		}

		switch {
		case b == keyCtrlC:
			buffer = buffer[:0]
			historyCursor = len(editor.lines)
			fmt.Fprint(os.Stdout, "\r\n")
			redraw()
		case b == keyCtrlD && len(buffer) == 0:
			fmt.Fprint(os.Stdout, "\r\n")
			return nil
		case b == keyEnterCR || b == keyEnterLF:
			fmt.Fprint(os.Stdout, "\r\n")
			line := string(buffer)
			buffer = buffer[:0]
			historyCursor = len(editor.lines)

			term.Restore(fd, oldState)
			err := handleLine(store, editor, line)
			term.MakeRaw(fd)
			historyCursor = len(editor.lines)
			savedLine = ""
			if err != nil {
				fmt.Fprintf(os.Stdout, "error: %v\r\n", err)
			}
			redraw()
		case b == keyBackspace || b == keyBackspace8:
			if len(buffer) > 0 {
				buffer = buffer[:len(buffer)-1]
			}
			redraw()
		case b == keyCtrlR:
			term.Restore(fd, oldState)
			selected, ok, err := runPicker(reverseStrings(editor.lines))
			term.MakeRaw(fd)
			if err != nil {
				fmt.Fprintf(os.Stdout, "error: %v\r\n", err)
			} else if ok {
				buffer = []rune(selected)
			}
			redraw()
		case b == keyEscape:
			seq := make([]byte, 2)
			if _, err := reader.Read(seq); err != nil {
				continue
			}
			if seq[0] != '[' {
				continue
			}
			switch seq[1] {
			case 'A': // Up
				if historyCursor == len(editor.lines) {
					savedLine = string(buffer)
				}
				if historyCursor > 0 {
					historyCursor--
					buffer = []rune(editor.lines[historyCursor])
				}
			case 'B': // Down
				if historyCursor < len(editor.lines) {
					historyCursor++
				}
				if historyCursor == len(editor.lines) {
					buffer = []rune(savedLine)
				} else {
					buffer = []rune(editor.lines[historyCursor])
				}
			}
			redraw()
		default:
			buffer = append(buffer, rune(b))
			redraw()
		}
	}
}

// reverseStrings returns a copy of lines in reverse order (newest
// first), the order the picker displays candidates in.
func reverseStrings(lines []string) []string {
	reversed := make([]string, len(lines))
	for i, line := range lines {
		reversed[len(lines)-1-i] = line
	}
	return reversed
}
