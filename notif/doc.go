// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package notif defines the notification-side vocabulary of the bubble
// pipeline: the read-mostly Entry snapshot that signal producers hand
// to the controller, the ranking map that gates which notifications may
// bubble, the shade removal reasons, and the collaborator contracts
// (shade, logical group tracker, intent resolver, downstream bubble
// reporter) that the controller talks to.
//
// An Entry is a snapshot, not a live object. Producers send a fresh
// Entry on every update signal; nothing in the bubble pipeline mutates
// one after it is received. Bubble-specific visible state (show in
// shade, dot, display association) lives on bubble.Bubble, owned
// exclusively by the collection.
package notif
