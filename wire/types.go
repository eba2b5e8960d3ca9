// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"time"

	"github.com/buoy-foundation/buoy/bubble"
	"github.com/buoy-foundation/buoy/notif"
)

// SignalRequest is the envelope for every signal-socket request. The
// server routes on Action; the remaining fields are populated per
// action and ignored otherwise.
type SignalRequest struct {
	Action string `cbor:"action"`

	// Entry accompanies entry-added and entry-updated.
	Entry *EntryPayload `cbor:"entry,omitempty"`

	// Ranking accompanies ranking-updated: notification key to
	// can-bubble verdict.
	Ranking map[string]bool `cbor:"ranking,omitempty"`

	// Key names the notification for key-addressed actions.
	Key string `cbor:"key,omitempty"`

	// Reason is the notif.RemovalReason code for remove-requested.
	Reason int `cbor:"reason,omitempty"`

	// UserID accompanies user-switched.
	UserID int `cbor:"user_id,omitempty"`

	// DisplayID accompanies the task and display actions.
	DisplayID int `cbor:"display_id,omitempty"`

	// GroupKey and Suppressed accompany group-suppression-changed.
	GroupKey   string `cbor:"group_key,omitempty"`
	Suppressed bool   `cbor:"suppressed,omitempty"`

	// Visible accompanies ime-visibility.
	Visible bool `cbor:"visible,omitempty"`
}

// BoolReply carries the answer to a synchronous query action.
type BoolReply struct {
	Value bool `cbor:"value"`
}

// EntryPayload is one notification on the wire.
type EntryPayload struct {
	Key              string `cbor:"key"`
	GroupKey         string `cbor:"group_key,omitempty"`
	Package          string `cbor:"package"`
	UserID           int    `cbor:"user_id"`
	Importance       int    `cbor:"importance"`
	Title            string `cbor:"title"`
	Text             string `cbor:"text"`
	Posted           int64  `cbor:"posted"`
	FlagBubble       bool   `cbor:"flag_bubble,omitempty"`
	GroupSummary     bool   `cbor:"group_summary,omitempty"`
	AutoGroupSummary bool   `cbor:"auto_group_summary,omitempty"`
	IntentTarget     string `cbor:"intent_target,omitempty"`
}

// EntryFromNotif converts a notification to its wire form.
func EntryFromNotif(e *notif.Entry) EntryPayload {
	p := EntryPayload{
		Key:              e.Key,
		GroupKey:         e.GroupKey,
		Package:          e.Package,
		UserID:           e.UserID,
		Importance:       int(e.Importance),
		Title:            e.Title,
		Text:             e.Text,
		Posted:           e.Posted.Unix(),
		FlagBubble:       e.FlagBubble,
		GroupSummary:     e.GroupSummary,
		AutoGroupSummary: e.AutoGroupSummary,
	}
	if e.Intent != nil {
		p.IntentTarget = e.Intent.Target
	}
	return p
}

// Entry converts the wire form back to a notification.
func (p *EntryPayload) Entry() *notif.Entry {
	e := &notif.Entry{
		Key:              p.Key,
		GroupKey:         p.GroupKey,
		Package:          p.Package,
		UserID:           p.UserID,
		Importance:       notif.Importance(p.Importance),
		Title:            p.Title,
		Text:             p.Text,
		Posted:           time.Unix(p.Posted, 0).UTC(),
		FlagBubble:       p.FlagBubble,
		GroupSummary:     p.GroupSummary,
		AutoGroupSummary: p.AutoGroupSummary,
	}
	if p.IntentTarget != "" {
		e.Intent = &notif.Intent{Target: p.IntentTarget}
	}
	return e
}

// BubblePayload is one bubble's render state on the wire.
type BubblePayload struct {
	Key            string       `cbor:"key"`
	Entry          EntryPayload `cbor:"entry"`
	ShowInShade    bool         `cbor:"show_in_shade"`
	ShowDot        bool         `cbor:"show_dot"`
	SuppressFlyout bool         `cbor:"suppress_flyout,omitempty"`
	Interruption   bool         `cbor:"interruption,omitempty"`
}

// BubbleFromState converts a tracked bubble to its wire form.
func BubbleFromState(b *bubble.Bubble) BubblePayload {
	return BubblePayload{
		Key:            b.Key(),
		Entry:          EntryFromNotif(b.Entry()),
		ShowInShade:    b.ShowInShade(),
		ShowDot:        b.ShowDot(),
		SuppressFlyout: b.SuppressFlyout(),
		Interruption:   b.Interruption(),
	}
}

// RemovalPayload is one removal with its dismiss reason.
type RemovalPayload struct {
	Key    string `cbor:"key"`
	Reason string `cbor:"reason"`
}

// UpdatePayload is one collection diff on the wire.
type UpdatePayload struct {
	Added            *BubblePayload   `cbor:"added,omitempty"`
	Removed          []RemovalPayload `cbor:"removed,omitempty"`
	Updated          *BubblePayload   `cbor:"updated,omitempty"`
	OrderChanged     bool             `cbor:"order_changed,omitempty"`
	Order            []string         `cbor:"order"`
	SelectionChanged bool             `cbor:"selection_changed,omitempty"`
	Selected         string           `cbor:"selected,omitempty"`
	ExpandedChanged  bool             `cbor:"expanded_changed,omitempty"`
	Expanded         bool             `cbor:"expanded,omitempty"`
}

// UpdateFromDiff converts a collection diff to its wire form.
func UpdateFromDiff(u *bubble.Update) UpdatePayload {
	p := UpdatePayload{
		OrderChanged:     u.OrderChanged,
		SelectionChanged: u.SelectionChanged,
		ExpandedChanged:  u.ExpandedChanged,
		Expanded:         u.Expanded,
	}
	if u.Added != nil {
		added := BubbleFromState(u.Added)
		p.Added = &added
	}
	for _, removal := range u.Removed {
		p.Removed = append(p.Removed, RemovalPayload{
			Key:    removal.Bubble.Key(),
			Reason: removal.Reason.String(),
		})
	}
	if u.Updated != nil {
		updated := BubbleFromState(u.Updated)
		p.Updated = &updated
	}
	p.Order = make([]string, len(u.Bubbles))
	for i, b := range u.Bubbles {
		p.Order[i] = b.Key()
	}
	if u.Selected != nil {
		p.Selected = u.Selected.Key()
	}
	return p
}

// StackView is a subscriber's rendering of the stack. Apply drives it
// through one diff; implementations only need to honor each call, the
// ordering is Apply's responsibility.
type StackView interface {
	// AddBubble inserts a new bubble at the front of the stack.
	AddBubble(b BubblePayload)

	// Collapse closes the expanded view.
	Collapse()

	// RemoveBubble drops the bubble, with the dismiss reason for
	// presentation (flyout text, logging).
	RemoveBubble(key, reason string)

	// UpdateBubble replaces the bubble's render state in place.
	UpdateBubble(b BubblePayload)

	// SetOrder rearranges the stack to the given key order.
	SetOrder(keys []string)

	// SetSelection moves the selection marker. Empty means none.
	SetSelection(key string)

	// Expand opens the expanded view for the selected bubble.
	Expand()
}

// Apply drives a view through the diff in the mandatory order: added
// bubble, collapse, removals, updated bubble, order, selection,
// expand. Collapsing before removals and expanding last keeps the
// view from animating against bubbles that are about to disappear.
func (p *UpdatePayload) Apply(view StackView) {
	if p.Added != nil {
		view.AddBubble(*p.Added)
	}
	if p.ExpandedChanged && !p.Expanded {
		view.Collapse()
	}
	for _, removal := range p.Removed {
		view.RemoveBubble(removal.Key, removal.Reason)
	}
	if p.Updated != nil {
		view.UpdateBubble(*p.Updated)
	}
	if p.OrderChanged {
		view.SetOrder(p.Order)
	}
	if p.SelectionChanged {
		view.SetSelection(p.Selected)
	}
	if p.ExpandedChanged && p.Expanded {
		view.Expand()
	}
}

// SnapshotPayload is the hello frame: the full collection state a new
// subscriber needs before applying live diffs.
type SnapshotPayload struct {
	// Bubbles is the stack in order, front first.
	Bubbles []BubblePayload `cbor:"bubbles"`

	// Selected is the selected bubble's key, empty when none.
	Selected string `cbor:"selected,omitempty"`

	// Expanded is the collection-wide expansion flag.
	Expanded bool `cbor:"expanded,omitempty"`
}

// SnapshotFromCollection captures the collection's current state.
func SnapshotFromCollection(c *bubble.Collection) SnapshotPayload {
	snapshot := SnapshotPayload{Expanded: c.Expanded()}
	for _, b := range c.Bubbles() {
		snapshot.Bubbles = append(snapshot.Bubbles, BubbleFromState(b))
	}
	if selected := c.Selected(); selected != nil {
		snapshot.Selected = selected.Key()
	}
	return snapshot
}

// IMEPayload is the IME-visibility frame body.
type IMEPayload struct {
	Visible bool `cbor:"visible"`
}
