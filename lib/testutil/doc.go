// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// The Require* helpers wrap channel operations with timeouts so that
// tests exercising the controller's signal loop or the wire
// subscription stream fail with a clear message instead of hanging
// when an expected send or receive never happens.
package testutil
