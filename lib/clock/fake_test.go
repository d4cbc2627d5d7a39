// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeNowReportsInitial(t *testing.T) {
	initial := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Fake(initial)
	if got := c.Now(); !got.Equal(initial) {
		t.Errorf("Now() = %v, want %v", got, initial)
	}
}

func TestFakeSet(t *testing.T) {
	c := Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	want := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	c.Set(want)
	if got := c.Now(); !got.Equal(want) {
		t.Errorf("Now() after Set = %v, want %v", got, want)
	}
}

func TestFakeAdvance(t *testing.T) {
	initial := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Fake(initial)
	c.Advance(90 * time.Minute)
	want := initial.Add(90 * time.Minute)
	if got := c.Now(); !got.Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestRealNowIsCurrent(t *testing.T) {
	before := time.Now()
	got := Real().Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("Real().Now() = %v, want between %v and %v", got, before, after)
	}
}
