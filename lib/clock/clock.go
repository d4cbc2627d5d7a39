// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts time operations for testability. Production code
// injects Real(); tests inject Fake() with a settable time.
//
// Every production function that needs the current time should accept
// a Clock parameter (or be a method on a struct with a Clock field)
// instead of calling time.Now directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
