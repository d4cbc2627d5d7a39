// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock interface parameter instead of calling
// time.Now directly. In production, Real() provides the standard library
// behavior. In tests, Fake() provides a clock whose time is pinned until
// Set or Advance moves it, so timestamp-producing code (reap diagnostics,
// archive manifests) can be asserted on deterministically.
//
// # Wiring Pattern
//
// Add a Clock field to structs that use time:
//
//	type Store struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	s := &Store{clock: clock.Real()}
//
// In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	s := &Store{clock: c}
//	c.Advance(5 * time.Second)
package clock
