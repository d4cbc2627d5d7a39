// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"reflect"
	"testing"
)

func TestReverseStrings(t *testing.T) {
	got := reverseStrings([]string{"one", "two", "three"})
	want := []string{"three", "two", "one"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reverseStrings = %v, want %v", got, want)
	}
}

func TestReverseStringsEmpty(t *testing.T) {
	got := reverseStrings(nil)
	if len(got) != 0 {
		t.Errorf("reverseStrings(nil) = %v, want empty", got)
	}
}

