// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock interface parameter instead of calling
// time.Now, time.After, time.AfterFunc, or time.NewTicker directly. In
// production, Real() provides the standard library behavior. In tests,
// Fake() provides a deterministic clock that advances only when Advance
// is called.
//
// # Wiring Pattern
//
// Add a Clock field to structs that use time:
//
//	type Collection struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	c := bubble.NewCollection(bubble.Options{Clock: clock.Real()})
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c := bubble.NewCollection(bubble.Options{Clock: fake})
//	fake.Advance(time.Minute) // recency ordering is now deterministic
//
// # FakeClock Synchronization
//
// When a goroutine calls After, NewTicker, or AfterFunc on a FakeClock,
// it registers a pending timer. Use WaitForTimers to block until a
// specific number of timers are registered before calling Advance. This
// eliminates the race between timer registration and time advancement
// that plagues tests using time.Sleep for synchronization.
package clock
