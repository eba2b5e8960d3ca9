// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package notif

// Shade is the notification-shade collaborator: the authority over
// which notification rows exist and how they are displayed outside
// the bubble stack. All methods are called from the control goroutine
// and must be fast and local.
//
// The shade never rolls the bubble pipeline back: if a shade call
// fails, the collection's state stands and the error is logged.
type Shade interface {
	// ActiveEntries returns the current notifications for the given
	// user, unordered.
	ActiveEntries(userID int) []*Entry

	// Entry returns the notification for key regardless of filtering,
	// or nil if none exists.
	Entry(key string) *Entry

	// RowDismissed reports whether the user has dismissed the shade
	// row for key. A dismissed row can outlive its notification when
	// a bubble keeps the data alive.
	RowDismissed(key string) bool

	// PerformRemove finalizes the removal of a notification from the
	// shade. Called when a bubble is gone and its notification is no
	// longer shown anywhere.
	PerformRemove(entry *Entry) error

	// RequestRefresh asks the shade to re-evaluate notification
	// visibility. context names the triggering code path for logs.
	RequestRefresh(context string)

	// CollapsePanel closes the shade panel if it is open. Used when a
	// user promotes a notification to a bubble.
	CollapsePanel()
}

// GroupTracker is the logical-group collaborator: it mirrors the
// shade's view of which notifications form groups, independent of the
// bubble pipeline's own suppression bookkeeping.
type GroupTracker interface {
	// Summary returns the group's summary entry, or nil.
	Summary(groupKey string) *Entry

	// Children returns the group's non-summary entries that are still
	// logically present in the shade.
	Children(groupKey string) []*Entry

	// EntryRemoved records that an entry is no longer shown in the
	// shade. As far as grouping is concerned a hidden bubble child is
	// removed, even though its notification data stays alive.
	EntryRemoved(entry *Entry)

	// UpdateSuppression re-evaluates group suppression for the
	// entry's group after a selection change.
	UpdateSuppression(entry *Entry)
}

// BubbleReporter tells downstream consumers that a notification's
// bubble state changed, so queries against the notification service
// return the right answer. Delivery is best-effort: errors are logged
// and never retried, and the collection's state is authoritative
// regardless.
type BubbleReporter interface {
	BubbleChanged(key string, isBubble bool) error
}
