// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package notif

// Ranking is the ranking pipeline's verdict for one notification key.
type Ranking struct {
	// CanBubble reports whether the notification is still allowed to
	// be presented as a bubble. A false value forces active bubbles
	// for the key out of the collection.
	CanBubble bool `cbor:"can_bubble"`
}

// RankingMap carries the ranking verdicts from one ranking-updated
// signal. Keys absent from the map have no verdict; the collection
// leaves their bubbles alone.
type RankingMap map[string]Ranking

// Blocked reports whether the map carries an explicit "may not
// bubble" verdict for key.
func (m RankingMap) Blocked(key string) bool {
	ranking, ok := m[key]
	return ok && !ranking.CanBubble
}
