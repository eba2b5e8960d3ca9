// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package bubble

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/buoy-foundation/buoy/lib/clock"
	"github.com/buoy-foundation/buoy/notif"
)

// DefaultMaxBubbles is the stack capacity used when Options leaves
// MaxBubbles zero. Inserting beyond capacity evicts the oldest bubble
// with DismissAged.
const DefaultMaxBubbles = 5

// Options configures a Collection.
type Options struct {
	// Clock stamps bubble activity for recency ordering. Nil means
	// clock.Real().
	Clock clock.Clock

	// Logger receives inconsistent-state warnings. Nil means
	// slog.Default().
	Logger *slog.Logger

	// MaxBubbles caps the stack size. Zero means DefaultMaxBubbles.
	MaxBubbles int
}

// Collection is the authoritative bubble state: the ordered stack,
// the selection, the collection-wide expansion flag, and the
// suppressed-summary bookkeeping.
//
// Each mutation method is a single state transition returning one
// Update diff, or nil when nothing changed. The Collection is not
// safe for concurrent use — the controller serializes every mutation
// on the control goroutine.
type Collection struct {
	clock      clock.Clock
	logger     *slog.Logger
	maxBubbles int

	// bubbles is the stack order, front (index 0) most recent.
	bubbles []*Bubble
	byKey   map[string]*Bubble

	selected *Bubble
	expanded bool

	// suppressedSummaries maps group key to the suppressed summary's
	// notification key. An entry lives only while the group still has
	// bubble children hidden from the shade.
	suppressedSummaries map[string]string
}

// NewCollection returns an empty Collection.
func NewCollection(opts Options) *Collection {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxBubbles <= 0 {
		opts.MaxBubbles = DefaultMaxBubbles
	}
	return &Collection{
		clock:               opts.Clock,
		logger:              opts.Logger,
		maxBubbles:          opts.MaxBubbles,
		byKey:               make(map[string]*Bubble),
		suppressedSummaries: make(map[string]string),
	}
}

// GetOrCreate returns the active bubble for the entry's key,
// refreshing its entry snapshot, or constructs a new one. A new
// bubble is not yet a member of the collection — it joins the stack,
// and becomes visible to consumers, on the first EntryUpdated call.
func (c *Collection) GetOrCreate(entry *notif.Entry) *Bubble {
	if existing, ok := c.byKey[entry.Key]; ok {
		existing.entry = entry
		return existing
	}
	return newBubble(entry)
}

// EntryUpdated marks the bubble's content ready and asserts its
// visibility. A not-yet-ready bubble is inserted at the front of the
// stack (evicting the oldest bubble when over capacity); an existing
// bubble is promoted to the front. Selection moves to a newly added
// bubble when nothing is selected.
func (c *Collection) EntryUpdated(b *Bubble, suppressFlyout, showInShade bool) *Update {
	b.suppressFlyout = suppressFlyout
	b.showInShade = showInShade
	b.showDot = showInShade && !suppressFlyout
	b.lastActivity = c.clock.Now()

	u := &Update{}
	if !b.ready {
		b.ready = true
		c.bubbles = append([]*Bubble{b}, c.bubbles...)
		c.byKey[b.key] = b
		u.Added = b

		if len(c.bubbles) > c.maxBubbles {
			oldest := c.bubbles[len(c.bubbles)-1]
			c.removeBubble(u, oldest.key, DismissAged)
		}
		if c.selected == nil {
			c.selected = b
			u.SelectionChanged = true
			u.Selected = b
		}
	} else {
		u.Updated = b
		if c.moveToFront(b) {
			u.OrderChanged = true
		}
	}
	return c.finalize(u)
}

// EntryRemoved removes the bubble for the entry's key, if one is
// tracked. Removing an untracked key is a logged no-op.
func (c *Collection) EntryRemoved(entry *notif.Entry, reason DismissReason) *Update {
	u := &Update{}
	c.removeBubble(u, entry.Key, reason)
	return c.finalize(u)
}

// RankingUpdated removes every bubble whose key the ranking map now
// forbids from bubbling, all in one diff.
func (c *Collection) RankingUpdated(ranking notif.RankingMap) *Update {
	u := &Update{}
	for _, b := range c.snapshot() {
		if ranking.Blocked(b.key) {
			c.removeBubble(u, b.key, DismissNoLongerBubble)
		}
	}
	return c.finalize(u)
}

// DismissAll removes every bubble with the given reason, in stack
// order, as a single diff.
func (c *Collection) DismissAll(reason DismissReason) *Update {
	u := &Update{}
	for _, b := range c.snapshot() {
		c.removeBubble(u, b.key, reason)
	}
	return c.finalize(u)
}

// SetExpanded sets the collection-wide expansion flag. Idempotent:
// setting the current value produces no diff. An empty collection
// refuses to expand.
func (c *Collection) SetExpanded(expanded bool) *Update {
	if expanded == c.expanded {
		return nil
	}
	if expanded && len(c.bubbles) == 0 {
		c.logger.Warn("refusing to expand empty bubble collection")
		return nil
	}
	c.expanded = expanded
	if expanded && c.selected != nil {
		// Expanding shows the selected bubble's content, clearing its
		// unseen dot.
		c.selected.showDot = false
	}
	u := &Update{ExpandedChanged: true, Expanded: expanded}
	return c.finalize(u)
}

// SetSelected moves the selection. Idempotent; selecting a bubble
// that is not a member is a logged no-op. A nil bubble clears the
// selection.
func (c *Collection) SetSelected(b *Bubble) *Update {
	if b == c.selected {
		return nil
	}
	if b != nil {
		if member, ok := c.byKey[b.key]; !ok || member != b {
			c.logger.Warn("ignoring selection of non-member bubble", "key", b.key)
			return nil
		}
	}
	c.selected = b
	if b != nil && c.expanded {
		b.showDot = false
	}
	u := &Update{SelectionChanged: true, Selected: b}
	return c.finalize(u)
}

// DisplayEmptied clears content visibility for bubbles whose
// expanded content lived on the given display.
func (c *Collection) DisplayEmptied(displayID int) {
	for _, b := range c.bubbles {
		if b.displayID == displayID {
			b.contentVisible = false
		}
	}
}

// RefreshDots recomputes every bubble's dot from its shade
// visibility, after a notification-policy change. Each changed bubble
// yields its own Update so consumers repaint it.
func (c *Collection) RefreshDots() []*Update {
	var updates []*Update
	for _, b := range c.bubbles {
		want := b.showInShade
		if b.showDot == want {
			continue
		}
		b.showDot = want
		updates = append(updates, c.finalize(&Update{Updated: b}))
	}
	return updates
}

// Get returns the active bubble for key, or nil.
func (c *Collection) Get(key string) *Bubble { return c.byKey[key] }

// Has reports whether an active bubble exists for key.
func (c *Collection) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// Bubbles returns a copy of the stack order, front first.
func (c *Collection) Bubbles() []*Bubble { return c.snapshot() }

// BubblesInGroup returns the active bubbles belonging to the group,
// in stack order. An empty group key matches nothing.
func (c *Collection) BubblesInGroup(groupKey string) []*Bubble {
	if groupKey == "" {
		return nil
	}
	var members []*Bubble
	for _, b := range c.bubbles {
		if b.entry.GroupKey == groupKey {
			members = append(members, b)
		}
	}
	return members
}

// Selected returns the selected bubble, or nil.
func (c *Collection) Selected() *Bubble { return c.selected }

// Expanded reports the collection-wide expansion flag.
func (c *Collection) Expanded() bool { return c.expanded }

// HasBubbles reports whether any bubble is active.
func (c *Collection) HasBubbles() bool { return len(c.bubbles) > 0 }

// Count returns the number of active bubbles.
func (c *Collection) Count() int { return len(c.bubbles) }

// Dump writes a human-readable description of the collection state,
// for debug output.
func (c *Collection) Dump(w io.Writer) {
	fmt.Fprintf(w, "collection: %d bubbles, expanded=%v\n", len(c.bubbles), c.expanded)
	for i, b := range c.bubbles {
		marker := " "
		if b == c.selected {
			marker = "*"
		}
		fmt.Fprintf(w, " %s [%d] %s shade=%v dot=%v display=%d\n",
			marker, i, b.key, b.showInShade, b.showDot, b.displayID)
	}
	for groupKey, summaryKey := range c.suppressedSummaries {
		fmt.Fprintf(w, "  suppressed summary: group=%s key=%s\n", groupKey, summaryKey)
	}
}

// removeBubble removes one bubble into the pending update, moving the
// selection to the next bubble in order and forcing the collection
// collapsed when it empties. Untracked keys are a logged no-op.
func (c *Collection) removeBubble(u *Update, key string, reason DismissReason) {
	index := -1
	for i, b := range c.bubbles {
		if b.key == key {
			index = i
			break
		}
	}
	if index < 0 {
		c.logger.Debug("removal requested for untracked bubble", "key", key, "reason", reason.String())
		return
	}

	removed := c.bubbles[index]
	c.bubbles = append(c.bubbles[:index], c.bubbles[index+1:]...)
	delete(c.byKey, key)
	removed.ready = false
	u.Removed = append(u.Removed, Removal{Bubble: removed, Reason: reason})

	if c.selected == removed {
		var next *Bubble
		if len(c.bubbles) > 0 {
			if index < len(c.bubbles) {
				next = c.bubbles[index]
			} else {
				next = c.bubbles[len(c.bubbles)-1]
			}
		}
		c.selected = next
		u.SelectionChanged = true
		u.Selected = next
	}

	if len(c.bubbles) == 0 && c.expanded {
		c.expanded = false
		u.ExpandedChanged = true
		u.Expanded = false
	}
}

// moveToFront promotes b to index 0, reporting whether the order
// actually changed.
func (c *Collection) moveToFront(b *Bubble) bool {
	for i, member := range c.bubbles {
		if member != b {
			continue
		}
		if i == 0 {
			return false
		}
		c.bubbles = append(c.bubbles[:i], c.bubbles[i+1:]...)
		c.bubbles = append([]*Bubble{b}, c.bubbles...)
		return true
	}
	return false
}

// finalize attaches the order snapshot and collapses empty diffs to
// nil.
func (c *Collection) finalize(u *Update) *Update {
	if u.empty() {
		return nil
	}
	u.Bubbles = c.snapshot()
	return u
}

func (c *Collection) snapshot() []*Bubble {
	out := make([]*Bubble, len(c.bubbles))
	copy(out, c.bubbles)
	return out
}
