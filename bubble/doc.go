// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package bubble implements the reconciliation engine at the center of
// the bubble pipeline: the authoritative, ordered collection of active
// bubbles, the selection and expansion state, and the group-summary
// suppression bookkeeping.
//
// The package is organized around the mutation data flow:
//
//   - bubble.go: the Bubble entity wrapping one notification's
//     bubble-visible state
//   - reasons.go: dismiss reason codes carried on every removal
//   - collection.go: the Collection and its mutation operations, each
//     returning a single Update diff
//   - suppression.go: group-summary suppression bookkeeping
//   - update.go: the Update diff contract and its mandated
//     application order
//
// Every mutation is a single state transition producing zero or one
// Update. The Collection is not safe for concurrent use: the
// controller serializes all mutations on one goroutine, and the diff
// contract assumes no mutation interleaves between diff production
// and diff application.
package bubble
