// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the daemon's two unix-socket protocols.
//
// The signal socket speaks a CBOR request-response protocol: each
// connection carries exactly one request (a SignalRequest routed by
// its action field) and one response. Producers use it to inject
// notification and gesture signals; synchronous decisions (removal
// interception, suppression queries) come back in the response data.
//
// The stream socket pushes framed binary messages to subscribers: a
// hello frame carrying the current collection snapshot, then one
// update frame per collection diff. Frames are a 5-byte header (1 byte
// type + 4 bytes big-endian payload length) followed by a CBOR
// payload.
//
// UpdatePayload.Apply is the one implementation of the mandatory
// diff-application ordering; every subscriber view goes through it.
package wire
