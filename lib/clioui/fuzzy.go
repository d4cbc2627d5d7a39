// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

// Package clioui provides the fuzzy-ranking primitive cmd/clio-shell's
// Ctrl-R history picker is built on.
package clioui

import (
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is a match's score and the byte positions within text
// that the match covers, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch scores text against pattern using fzf's V2 fuzzy
// algorithm, case-insensitively. A zero-value result (Score == 0,
// empty Positions) means pattern did not match or was empty.
//
// slab is fzf's scratch-space allocator; pass the same *util.Slab
// across repeated calls (e.g. once per picker keystroke) to avoid
// reallocating it per candidate line.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, pattern, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	var pos []int
	if positions != nil {
		pos = *positions
	}
	return FuzzyResult{Score: result.Score, Positions: pos}
}
