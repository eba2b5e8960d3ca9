// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package controller

// removalAction is the interception policy's verdict on a pending
// shade removal.
type removalAction int

const (
	// actionProceed lets the removal run: the key is neither a bubble
	// nor a summary of bubbles.
	actionProceed removalAction = iota

	// actionHideFromShade intercepts a bubble's removal, hiding its
	// shade row and dot while the bubble stays active.
	actionHideFromShade

	// actionRemoveBubble removes an app-cancelled bubble and lets the
	// shade removal proceed.
	actionRemoveBubble

	// actionSpareBubble lets an app cancel of a user-created bubble
	// proceed while the bubble itself stays: the user asked for the
	// bubble, so the app cannot take it back, but the notification
	// removal is not intercepted either.
	actionSpareBubble

	// actionSuppressSummary hides every child bubble from the shade,
	// registers the summary as suppressed, and intercepts its removal.
	actionSuppressSummary

	// actionHideChildren hides every child bubble from the shade but
	// lets the removal proceed: a synthesized summary has no
	// independent existence to protect.
	actionHideChildren

	// actionProtectSummary intercepts an app cancel of a summary whose
	// group holds a user-created bubble.
	actionProtectSummary

	// actionCancelGroup removes every child bubble as group-cancelled,
	// clears suppression bookkeeping, and lets the summary's removal
	// proceed.
	actionCancelGroup
)

var removalActionNames = map[removalAction]string{
	actionProceed:         "proceed",
	actionHideFromShade:   "hide-from-shade",
	actionRemoveBubble:    "remove-bubble",
	actionSpareBubble:     "spare-bubble",
	actionSuppressSummary: "suppress-summary",
	actionHideChildren:    "hide-children",
	actionProtectSummary:  "protect-summary",
	actionCancelGroup:     "cancel-group",
}

func (a removalAction) String() string {
	if name, ok := removalActionNames[a]; ok {
		return name
	}
	return "invalid"
}

// intercepted reports whether the action keeps the notification data
// alive, meaning the shade must not finalize the removal.
func (a removalAction) intercepted() bool {
	switch a {
	case actionHideFromShade, actionSuppressSummary, actionProtectSummary:
		return true
	}
	return false
}

// removalFacts is the classification of one pending removal. The
// controller gathers these from collection and shade state; the
// decision itself is pure.
type removalFacts struct {
	// isBubble: the key has an active bubble.
	isBubble bool

	// isSummaryOfBubbles: the key is a group summary whose group still
	// has bubble children, or is already the suppressed summary of its
	// group.
	isSummaryOfBubbles bool

	// userRemoved: the removal is a user action (dismiss, click,
	// clear-all, summary-cancel cascade, or a row the user already
	// dismissed) rather than an app cancel.
	userRemoved bool

	// userCreated: for a bubble, the user explicitly promoted it. For
	// a summary, any child bubble was user-created.
	userCreated bool

	// autoSummary: the summary was synthesized by the notification
	// pipeline rather than posted by the app.
	autoSummary bool
}

// decideRemoval maps a removal classification to its action. The
// branches are ordered: summary handling wins over plain-bubble
// handling when a summary notification also has a bubble of its own.
func decideRemoval(facts removalFacts) removalAction {
	if facts.isSummaryOfBubbles {
		if facts.userRemoved {
			if facts.autoSummary {
				return actionHideChildren
			}
			return actionSuppressSummary
		}
		if facts.userCreated {
			return actionProtectSummary
		}
		return actionCancelGroup
	}
	if facts.isBubble {
		if facts.userRemoved {
			return actionHideFromShade
		}
		if facts.userCreated {
			return actionSpareBubble
		}
		return actionRemoveBubble
	}
	return actionProceed
}
