// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts time operations for testability. Production code
// injects Real(); tests inject Fake() with deterministic time control.
//
// The bubble collection stamps every mutation with Now for its
// recency ordering, and the journal writer flushes on a NewTicker
// interval. Neither may call the time package directly — they take a
// Clock so tests can drive ordering and flushing without sleeping.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time after
	// duration d elapses. Equivalent to time.After. If d <= 0, the
	// channel receives immediately.
	After(d time.Duration) <-chan time.Time

	// AfterFunc waits for duration d, then calls f. Returns a Timer
	// that can cancel the pending call with Stop. The Timer's C field
	// is nil (matching time.AfterFunc). If d <= 0, f is called
	// immediately in a new goroutine (real) or synchronously (fake).
	AfterFunc(d time.Duration, f func()) *Timer

	// NewTicker returns a Ticker that delivers ticks on its C channel
	// at the specified interval. Panics if d <= 0. Equivalent to
	// time.NewTicker.
	NewTicker(d time.Duration) *Ticker
}

// Ticker wraps a periodic timer. Read ticks from C. Call Stop when the
// Ticker is no longer needed to release resources.
//
// The C channel has capacity 1, matching time.Ticker. If the consumer
// falls behind, ticks are dropped rather than queued.
type Ticker struct {
	// C delivers ticks. Buffered with capacity 1.
	C <-chan time.Time

	stopFunc  func()
	resetFunc func(time.Duration)
}

// Stop turns off the ticker. No more ticks will be delivered. Stop
// does not close C.
func (t *Ticker) Stop() { t.stopFunc() }

// Reset changes the ticker's interval and restarts it.
func (t *Ticker) Reset(d time.Duration) { t.resetFunc(d) }

// Timer represents a single pending AfterFunc call. Stop cancels the
// call if it has not yet fired.
type Timer struct {
	// C is always nil for AfterFunc timers, matching time.AfterFunc.
	C <-chan time.Time

	stopFunc  func() bool
	resetFunc func(time.Duration) bool
}

// Stop prevents the Timer from firing. Returns true if the call was
// stopped, false if it already fired or was stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Reset reschedules the timer to fire after duration d. Returns true
// if the timer was active, false if it had fired or been stopped.
func (t *Timer) Reset(d time.Duration) bool { return t.resetFunc(d) }
