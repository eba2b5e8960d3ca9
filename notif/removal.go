// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package notif

// RemovalReason classifies a notification-shade removal request. The
// controller's interception policy branches on whether the removal
// was a user action or an app-initiated cancel.
type RemovalReason int

const (
	// RemovalUnknown is an unclassified removal, used when the bubble
	// pipeline finalizes a shade removal itself.
	RemovalUnknown RemovalReason = iota

	// RemovalCancel is a user dismissing one notification row.
	RemovalCancel

	// RemovalClick is a user clicking (and thereby clearing) a
	// notification.
	RemovalClick

	// RemovalCancelAll is the user's clear-all gesture.
	RemovalCancelAll

	// RemovalGroupSummaryCancelled is a child removal cascading from
	// its group summary being cancelled.
	RemovalGroupSummaryCancelled

	// RemovalAppCancel is the posting app cancelling one
	// notification.
	RemovalAppCancel

	// RemovalAppCancelAll is the posting app cancelling all of its
	// notifications.
	RemovalAppCancelAll
)

var removalReasonNames = map[RemovalReason]string{
	RemovalUnknown:               "unknown",
	RemovalCancel:                "cancel",
	RemovalClick:                 "click",
	RemovalCancelAll:             "cancel-all",
	RemovalGroupSummaryCancelled: "group-summary-cancelled",
	RemovalAppCancel:             "app-cancel",
	RemovalAppCancelAll:          "app-cancel-all",
}

func (r RemovalReason) String() string {
	if name, ok := removalReasonNames[r]; ok {
		return name
	}
	return "invalid"
}

// AppCancel reports whether the removal originated from the posting
// app rather than a user action.
func (r RemovalReason) AppCancel() bool {
	return r == RemovalAppCancel || r == RemovalAppCancelAll
}

// ExplicitUserRemoval reports whether the reason code alone proves a
// user action: a row dismiss, a click, clear-all, or a summary
// cancel cascade. Row-dismissed state from the shade can additionally
// mark a removal as user-initiated even under other reason codes —
// the controller folds that in separately.
func (r RemovalReason) ExplicitUserRemoval() bool {
	switch r {
	case RemovalCancel, RemovalClick, RemovalCancelAll, RemovalGroupSummaryCancelled:
		return true
	}
	return false
}
