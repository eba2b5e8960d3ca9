// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package bubble

import (
	"time"

	"github.com/buoy-foundation/buoy/notif"
)

// InvalidDisplay marks a bubble whose expanded content has not been
// placed on any display.
const InvalidDisplay = -1

// Bubble is one notification's bubble-visible state. A Bubble always
// references exactly one notification entry and cannot exist without
// one; its key is the notification's key and is unique within the
// Collection.
//
// All mutation happens on the control goroutine, through the
// Collection or the controller. The referenced entry is a snapshot
// that is replaced wholesale on update signals, never edited.
type Bubble struct {
	key   string
	entry *notif.Entry

	showInShade    bool
	showDot        bool
	suppressFlyout bool
	interruption   bool
	ready          bool

	displayID      int
	contentVisible bool

	lastActivity time.Time
}

func newBubble(entry *notif.Entry) *Bubble {
	return &Bubble{
		key:       entry.Key,
		entry:     entry,
		displayID: InvalidDisplay,
	}
}

// Key returns the bubble's notification key.
func (b *Bubble) Key() string { return b.key }

// Entry returns the current notification snapshot behind the bubble.
func (b *Bubble) Entry() *notif.Entry { return b.entry }

// GroupKey returns the notification's group key, empty for ungrouped
// notifications.
func (b *Bubble) GroupKey() string { return b.entry.GroupKey }

// ShowInShade reports whether the notification still appears as a
// row in the shade.
func (b *Bubble) ShowInShade() bool { return b.showInShade }

// SetShowInShade hides or shows the notification row while the bubble
// stays active. Called on the control goroutine only.
func (b *Bubble) SetShowInShade(show bool) { b.showInShade = show }

// ShowDot reports whether the bubble's unseen-content dot is visible.
func (b *Bubble) ShowDot() bool { return b.showDot }

// SetShowDot sets the unseen-content dot. Called on the control
// goroutine only.
func (b *Bubble) SetShowDot(show bool) { b.showDot = show }

// SuppressFlyout reports whether the flyout animation for the latest
// update was suppressed.
func (b *Bubble) SuppressFlyout() bool { return b.suppressFlyout }

// Interruption reports whether any update behind this bubble was
// posted at high importance.
func (b *Bubble) Interruption() bool { return b.interruption }

// MarkInterruption records that the bubble's notification interrupted
// the user. The flag is sticky for the bubble's lifetime.
func (b *Bubble) MarkInterruption() { b.interruption = true }

// Ready reports whether the bubble's content has been prepared and
// asserted visible by an update call. A bubble created by
// GetOrCreate is not ready until the first EntryUpdated.
func (b *Bubble) Ready() bool { return b.ready }

// DisplayID returns the display hosting the bubble's expanded
// content, or InvalidDisplay.
func (b *Bubble) DisplayID() int { return b.displayID }

// SetDisplayID records the display hosting the bubble's expanded
// content.
func (b *Bubble) SetDisplayID(id int) { b.displayID = id }

// ContentVisible reports whether the expanded content surface has
// been drawn.
func (b *Bubble) ContentVisible() bool { return b.contentVisible }

// SetContentVisible records whether the expanded content surface is
// drawn.
func (b *Bubble) SetContentVisible(visible bool) { b.contentVisible = visible }

// LastActivity returns the time of the bubble's most recent update,
// which drives the collection's recency ordering.
func (b *Bubble) LastActivity() time.Time { return b.lastActivity }
