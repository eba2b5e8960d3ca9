// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"github.com/buoy-foundation/buoy/bubble"
	"github.com/buoy-foundation/buoy/notif"
)

// interceptRemoval decides and executes the interception policy for a
// pending shade removal, returning whether the removal was
// intercepted (the notification data stays alive, hidden).
func (c *Controller) interceptRemoval(key string, reason notif.RemovalReason) bool {
	entry := c.shade.Entry(key)
	if entry == nil {
		if b := c.collection.Get(key); b != nil {
			// The shade already dropped its row; the bubble's snapshot
			// is still authoritative for classification.
			entry = b.Entry()
		} else {
			return false
		}
	}

	facts := c.classifyRemoval(entry, reason)
	action := decideRemoval(facts)
	c.logger.Debug("removal interception decided",
		"key", key, "reason", reason.String(), "action", action.String())

	switch action {
	case actionProceed:
	case actionHideFromShade:
		c.hideBubbleRow(key)
		c.shade.RequestRefresh("removal-intercepted")
	case actionRemoveBubble:
		c.apply(c.collection.EntryRemoved(entry, bubble.DismissNotifCancel))
	case actionSpareBubble:
		// The user promoted this bubble; the app's cancel removes the
		// notification but leaves the bubble and its row state alone.
	case actionSuppressSummary:
		c.hideGroupChildren(entry)
		c.collection.AddSummaryToSuppress(entry.GroupKey, entry.Key)
		c.shade.RequestRefresh("summary-suppressed")
	case actionHideChildren:
		c.hideGroupChildren(entry)
		c.shade.RequestRefresh("summary-cancelled")
	case actionProtectSummary:
		// A user-created bubble in the group outlives the app's cancel.
	case actionCancelGroup:
		c.collection.RemoveSuppressedSummary(entry.GroupKey)
		for _, child := range c.collection.BubblesInGroup(entry.GroupKey) {
			c.apply(c.collection.EntryRemoved(child.Entry(), bubble.DismissGroupCancelled))
		}
	}
	return action.intercepted()
}

// classifyRemoval gathers the facts the decision table branches on.
func (c *Controller) classifyRemoval(entry *notif.Entry, reason notif.RemovalReason) removalFacts {
	// A row the user dismissed earlier counts as a user removal, but
	// not when the app itself is cancelling now: the stale dismissal
	// must not shield the notification from its own app's cancel.
	rowDismissed := c.shade.RowDismissed(entry.Key) && !reason.AppCancel()
	facts := removalFacts{
		isBubble:    c.collection.Has(entry.Key),
		userRemoved: reason.ExplicitUserRemoval() || rowDismissed,
		autoSummary: entry.AutoGroupSummary,
	}
	if c.isSummaryOfBubbles(entry) {
		facts.isSummaryOfBubbles = true
		for _, child := range c.collection.BubblesInGroup(entry.GroupKey) {
			if c.userCreated[child.Key()] {
				facts.userCreated = true
				break
			}
		}
	} else {
		facts.userCreated = c.userCreated[entry.Key]
	}
	return facts
}

// isSummaryOfBubbles reports whether the entry is the summary of a
// group that still has bubble children, or is already its group's
// suppressed summary.
func (c *Controller) isSummaryOfBubbles(entry *notif.Entry) bool {
	if !entry.GroupSummary && !entry.AutoGroupSummary {
		return false
	}
	if entry.GroupKey == "" {
		return false
	}
	if c.collection.SummaryKey(entry.GroupKey) == entry.Key {
		return true
	}
	return len(c.collection.BubblesInGroup(entry.GroupKey)) > 0
}

func (c *Controller) hideBubbleRow(key string) {
	b := c.collection.Get(key)
	if b == nil {
		return
	}
	b.SetShowInShade(false)
	b.SetShowDot(false)
}

// hideGroupChildren hides every child bubble's shade row and tells
// the group tracker the summary left the shade.
func (c *Controller) hideGroupChildren(summary *notif.Entry) {
	for _, child := range c.collection.BubblesInGroup(summary.GroupKey) {
		child.SetShowInShade(false)
		child.SetShowDot(false)
	}
	c.groups.EntryRemoved(summary)
}
