// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historystore

import "testing"

func TestExpansionEligible(t *testing.T) {
	const line = `echo 'hi !x'`
	const markerPos = 9 // offset of the '!'

	tests := []struct {
		name string
		mode ExpandMode
		want bool
	}{
		{"off", ExpandOff, false},
		{"on", ExpandOn, true},
		{"not_squoted", ExpandNotSingleQuoted, false},
		{"not_dquoted", ExpandNotDoubleQuoted, true},
		{"not_quoted", ExpandNotQuoted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpansionEligible(tt.mode, line, markerPos)
			if got != tt.want {
				t.Errorf("ExpansionEligible(%s, %q, %d) = %v, want %v", tt.mode, line, markerPos, got, tt.want)
			}
		})
	}
}

func TestExpansionEligibleDoubleQuoted(t *testing.T) {
	const line = `echo "hi !x"`
	const markerPos = 9

	tests := []struct {
		name string
		mode ExpandMode
		want bool
	}{
		{"not_squoted", ExpandNotSingleQuoted, true},
		{"not_dquoted", ExpandNotDoubleQuoted, false},
		{"not_quoted", ExpandNotQuoted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpansionEligible(tt.mode, line, markerPos)
			if got != tt.want {
				t.Errorf("ExpansionEligible(%s, %q, %d) = %v, want %v", tt.mode, line, markerPos, got, tt.want)
			}
		})
	}
}

func TestExpansionEligibleUnquoted(t *testing.T) {
	const line = `echo !x`
	const markerPos = 5

	for _, mode := range []ExpandMode{ExpandNotSingleQuoted, ExpandNotDoubleQuoted, ExpandNotQuoted} {
		if !ExpansionEligible(mode, line, markerPos) {
			t.Errorf("ExpansionEligible(%s, %q, %d) = false, want true outside any quotes", mode, line, markerPos)
		}
	}
}

func TestDupeModeString(t *testing.T) {
	tests := map[DupeMode]string{
		DupeAdd:       "add",
		DupeIgnore:    "ignore",
		DupeErasePrev: "erase_prev",
		DupeMode(99):  "unknown",
	}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("DupeMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}

func TestExpandModeString(t *testing.T) {
	tests := map[ExpandMode]string{
		ExpandOff:             "off",
		ExpandOn:              "on",
		ExpandNotSingleQuoted: "not_squoted",
		ExpandNotDoubleQuoted: "not_dquoted",
		ExpandNotQuoted:       "not_quoted",
		ExpandMode(99):        "unknown",
	}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("ExpandMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
