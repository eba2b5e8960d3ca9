// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package bubble

// DismissReason records why a bubble left the collection. Every
// removal in an Update carries one.
type DismissReason int

const (
	// DismissUserGesture is the user flinging or dismissing a bubble
	// from the stack.
	DismissUserGesture DismissReason = iota + 1

	// DismissAged is eviction of the oldest bubble when the
	// collection exceeds its capacity.
	DismissAged

	// DismissTaskFinished is the bubble's content task finishing.
	DismissTaskFinished

	// DismissBlocked is the user demoting the bubble back to a
	// notification.
	DismissBlocked

	// DismissNotifCancel is the posting app cancelling the
	// notification behind the bubble.
	DismissNotifCancel

	// DismissAccessibilityAction is a dismissal performed through an
	// accessibility service.
	DismissAccessibilityAction

	// DismissNoLongerBubble is the ranking pipeline or an update
	// signal deciding the notification no longer qualifies.
	DismissNoLongerBubble

	// DismissUserChanged is a foreground user switch. Removals with
	// this reason leave the shade notification untouched.
	DismissUserChanged

	// DismissGroupCancelled is the bubble's group summary being
	// cancelled by the app.
	DismissGroupCancelled

	// DismissInvalidIntent is the bubble's content intent failing to
	// launch.
	DismissInvalidIntent
)

var dismissReasonNames = map[DismissReason]string{
	DismissUserGesture:         "user-gesture",
	DismissAged:                "aged",
	DismissTaskFinished:        "task-finished",
	DismissBlocked:             "blocked",
	DismissNotifCancel:         "notif-cancel",
	DismissAccessibilityAction: "accessibility-action",
	DismissNoLongerBubble:      "no-longer-bubble",
	DismissUserChanged:         "user-changed",
	DismissGroupCancelled:      "group-cancelled",
	DismissInvalidIntent:       "invalid-intent",
}

func (r DismissReason) String() string {
	if name, ok := dismissReasonNames[r]; ok {
		return name
	}
	return "invalid"
}
