// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package controller orchestrates the bubble pipeline. A single
// control goroutine owns the bubble collection and drains one inbound
// signal channel; every external event — notification posts, ranking
// updates, user gestures, task and display events — arrives as a
// Signal variant through Submit and is handled in order. Synchronous
// decisions (removal interception, shade suppression queries) carry a
// reply channel inside the signal.
//
// The controller translates signals into collection mutations,
// forwards the resulting diffs to the presenter, and reconciles the
// notification shade after each diff: finalizing removals for hidden
// bubbles, reporting bubble-state changes downstream, and cleaning up
// suppressed group summaries whose last bubble child is gone.
package controller
