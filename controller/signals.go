// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package controller

import "github.com/buoy-foundation/buoy/notif"

// Signal is one inbound event for the control goroutine. Producers on
// other goroutines construct a variant and hand it to Submit; the
// controller handles signals strictly in arrival order.
type Signal interface {
	signal()
}

// EntryAdded announces a newly posted notification.
type EntryAdded struct {
	Entry *notif.Entry
}

// EntryUpdated announces a content update for an existing
// notification. Eligibility is recomputed: a bubble whose notification
// no longer qualifies is removed.
type EntryUpdated struct {
	Entry *notif.Entry
}

// RankingUpdated carries a fresh ranking map. Bubbles whose keys the
// map forbids from bubbling are removed.
type RankingUpdated struct {
	Ranking notif.RankingMap
}

// RemoveRequested asks whether the shade's pending removal of a
// notification should be intercepted. Reply receives true when the
// bubble pipeline keeps the notification data alive (the shade must
// not remove the row's backing entry).
type RemoveRequested struct {
	Key    string
	Reason notif.RemovalReason
	Reply  chan<- bool
}

// SuppressedQuery asks whether the bubble pipeline is hiding the key
// from the shade: either a bubble row hidden by interception or a
// suppressed group summary.
type SuppressedQuery struct {
	Key   string
	Reply chan<- bool
}

// PromoteRequested is the user gesture promoting a notification to a
// bubble from its shade row.
type PromoteRequested struct {
	Key string
}

// DemoteRequested is the user gesture demoting a bubble back to a
// plain notification.
type DemoteRequested struct {
	Key string
}

// UserSwitched announces a foreground user change. Current bubbles are
// saved under the outgoing user and dismissed; the incoming user's
// saved bubbles are restored against the currently active
// notifications.
type UserSwitched struct {
	UserID int
}

// TaskMovedToFront reports that another task took over the primary
// display. Collapses the stack unless a collapse animation is already
// running.
type TaskMovedToFront struct {
	DisplayID int
}

// BackPressed reports a back press on a bubble task's root. Collapses
// the stack.
type BackPressed struct{}

// SecondaryDisplayRerouted reports that an activity launch was
// rerouted off a bubble's display. Collapses the stack.
type SecondaryDisplayRerouted struct{}

// IMEVisibilityChanged reports the input method showing or hiding.
// Forwarded to the presenter only while bubbles exist.
type IMEVisibilityChanged struct {
	Visible bool
}

// DisplayDrawn reports that a bubble content display finished its
// first draw.
type DisplayDrawn struct {
	DisplayID int
}

// DisplayEmptied reports that a bubble content display lost its last
// surface. Collapses the stack if the selected bubble lived there.
type DisplayEmptied struct {
	DisplayID int
}

// GroupSuppressionChanged reports that the notification pipeline
// changed a group summary's suppression outside the bubble path.
type GroupSuppressionChanged struct {
	GroupKey   string
	Suppressed bool
}

// PolicyChanged reports a notification-policy change (for example a
// do-not-disturb transition). Every bubble's dot is recomputed from
// its shade visibility.
type PolicyChanged struct{}

// SelectRequested is the viewer gesture selecting a bubble.
type SelectRequested struct {
	Key string
}

// ExpandRequested is the viewer gesture expanding the stack.
type ExpandRequested struct{}

// CollapseRequested is the viewer gesture collapsing the stack.
type CollapseRequested struct{}

// DismissBubbleRequested is the viewer gesture dismissing one bubble.
type DismissBubbleRequested struct {
	Key string
}

// DismissAllRequested is the viewer gesture dismissing the whole
// stack.
type DismissAllRequested struct{}

// TaskFinished reports that a bubble's content task finished on its
// own. The bubble is removed.
type TaskFinished struct {
	Key string
}

// ContentLaunchFailed reports that a bubble's content intent failed to
// launch. The bubble is removed.
type ContentLaunchFailed struct {
	Key string
}

func (EntryAdded) signal()               {}
func (EntryUpdated) signal()             {}
func (RankingUpdated) signal()           {}
func (RemoveRequested) signal()          {}
func (SuppressedQuery) signal()          {}
func (PromoteRequested) signal()         {}
func (DemoteRequested) signal()          {}
func (UserSwitched) signal()             {}
func (TaskMovedToFront) signal()         {}
func (BackPressed) signal()              {}
func (SecondaryDisplayRerouted) signal() {}
func (IMEVisibilityChanged) signal()     {}
func (DisplayDrawn) signal()             {}
func (DisplayEmptied) signal()           {}
func (GroupSuppressionChanged) signal()  {}
func (PolicyChanged) signal()            {}
func (SelectRequested) signal()          {}
func (ExpandRequested) signal()          {}
func (CollapseRequested) signal()        {}
func (DismissBubbleRequested) signal()   {}
func (DismissAllRequested) signal()      {}
func (TaskFinished) signal()             {}
func (ContentLaunchFailed) signal()      {}
