// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec centralizes CBOR encoding configuration for Buoy.
//
// All CBOR in Buoy — wire frames between the daemon and its signal
// producers and viewers, and journal records — goes through this
// package so encoding options are set in exactly one place.
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2);
// decoding ignores unknown fields for forward compatibility.
package codec
