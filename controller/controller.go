// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buoy-foundation/buoy/bubble"
	"github.com/buoy-foundation/buoy/notif"
)

// Presenter is the presentation collaborator: it receives every
// collection diff and the ambient events the stack rendering needs.
// ApplyUpdate is called on the control goroutine; implementations
// must not call back into the controller synchronously.
type Presenter interface {
	// ApplyUpdate applies one collection diff. Fields must be applied
	// in the order bubble.Update documents.
	ApplyUpdate(u *bubble.Update)

	// ExpansionAnimating reports whether a stack collapse or expand
	// animation is still in flight. Task-focus collapse signals are
	// dropped while it is.
	ExpansionAnimating() bool

	// IMEVisibilityChanged reports the input method showing or hiding
	// while bubbles exist.
	IMEVisibilityChanged(visible bool)
}

// Options configures a Controller.
type Options struct {
	Collection *bubble.Collection
	Shade      notif.Shade
	Groups     notif.GroupTracker
	Reporter   notif.BubbleReporter
	Resolver   notif.Resolver
	Presenter  Presenter

	// Logger receives pipeline decisions and best-effort failure
	// reports. Nil means slog.Default().
	Logger *slog.Logger

	// CurrentUser is the foreground user at startup.
	CurrentUser int

	// AutoBubblePackages lists packages whose notifications are
	// promoted to bubbles without carrying the bubble flag.
	AutoBubblePackages []string

	// QueueSize bounds the inbound signal channel. Zero means
	// DefaultQueueSize.
	QueueSize int
}

// DefaultQueueSize is the signal channel capacity used when Options
// leaves QueueSize zero.
const DefaultQueueSize = 64

// Controller owns the bubble collection. All state below is touched
// only by the control goroutine running Run; producers reach it
// through Submit.
type Controller struct {
	logger     *slog.Logger
	collection *bubble.Collection
	shade      notif.Shade
	groups     notif.GroupTracker
	reporter   notif.BubbleReporter
	resolver   notif.Resolver
	presenter  Presenter

	signals chan Signal

	autoBubble  map[string]bool
	currentUser int

	// savedKeys holds each user's bubble keys across user switches.
	// An entry is written on switch-away and consumed exactly once on
	// switch-back. Process-memory only; lost on restart.
	savedKeys map[int]map[string]bool

	// userCreated and userBlocked track explicit user promotion and
	// demotion for the process lifetime. Not persisted.
	userCreated map[string]bool
	userBlocked map[string]bool
}

// New validates the collaborators and returns a Controller. Run must
// be started before Submit is useful.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Collection == nil:
		return nil, fmt.Errorf("controller: Collection is required")
	case opts.Shade == nil:
		return nil, fmt.Errorf("controller: Shade is required")
	case opts.Groups == nil:
		return nil, fmt.Errorf("controller: Groups is required")
	case opts.Reporter == nil:
		return nil, fmt.Errorf("controller: Reporter is required")
	case opts.Resolver == nil:
		return nil, fmt.Errorf("controller: Resolver is required")
	case opts.Presenter == nil:
		return nil, fmt.Errorf("controller: Presenter is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	autoBubble := make(map[string]bool, len(opts.AutoBubblePackages))
	for _, pkg := range opts.AutoBubblePackages {
		autoBubble[pkg] = true
	}
	return &Controller{
		logger:      opts.Logger,
		collection:  opts.Collection,
		shade:       opts.Shade,
		groups:      opts.Groups,
		reporter:    opts.Reporter,
		resolver:    opts.Resolver,
		presenter:   opts.Presenter,
		signals:     make(chan Signal, opts.QueueSize),
		autoBubble:  autoBubble,
		currentUser: opts.CurrentUser,
		savedKeys:   make(map[int]map[string]bool),
		userCreated: make(map[string]bool),
		userBlocked: make(map[string]bool),
	}, nil
}

// Submit hands a signal to the control goroutine, blocking until the
// queue accepts it or ctx is done. Safe for concurrent use.
func (c *Controller) Submit(ctx context.Context, sig Signal) error {
	select {
	case c.signals <- sig:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("submitting %T: %w", sig, ctx.Err())
	}
}

// Run drains the signal queue until ctx is done. It must be the only
// goroutine touching the collection.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-c.signals:
			c.handle(sig)
		}
	}
}

// handle dispatches one signal. Exported for tests via the Run loop
// only; every branch runs on the control goroutine.
func (c *Controller) handle(sig Signal) {
	switch s := sig.(type) {
	case EntryAdded:
		c.onEntryAdded(s.Entry)
	case EntryUpdated:
		c.onEntryUpdated(s.Entry)
	case RankingUpdated:
		c.apply(c.collection.RankingUpdated(s.Ranking))
	case RemoveRequested:
		intercepted := c.interceptRemoval(s.Key, s.Reason)
		s.Reply <- intercepted
	case SuppressedQuery:
		s.Reply <- c.suppressedFromShade(s.Key)
	case PromoteRequested:
		c.onPromote(s.Key)
	case DemoteRequested:
		c.onDemote(s.Key)
	case UserSwitched:
		c.onUserSwitched(s.UserID)
	case TaskMovedToFront, BackPressed, SecondaryDisplayRerouted:
		c.collapseForFocusChange(sig)
	case IMEVisibilityChanged:
		if c.collection.HasBubbles() {
			c.presenter.IMEVisibilityChanged(s.Visible)
		}
	case DisplayDrawn:
		c.onDisplayDrawn(s.DisplayID)
	case DisplayEmptied:
		c.onDisplayEmptied(s.DisplayID)
	case GroupSuppressionChanged:
		c.onGroupSuppressionChanged(s.GroupKey, s.Suppressed)
	case PolicyChanged:
		for _, u := range c.collection.RefreshDots() {
			c.apply(u)
		}
	case SelectRequested:
		if b := c.collection.Get(s.Key); b != nil {
			c.apply(c.collection.SetSelected(b))
		}
	case ExpandRequested:
		c.apply(c.collection.SetExpanded(true))
	case CollapseRequested:
		c.apply(c.collection.SetExpanded(false))
	case DismissBubbleRequested:
		c.removeByKey(s.Key, bubble.DismissUserGesture)
	case DismissAllRequested:
		c.apply(c.collection.DismissAll(bubble.DismissUserGesture))
	case TaskFinished:
		c.removeByKey(s.Key, bubble.DismissTaskFinished)
	case ContentLaunchFailed:
		c.removeByKey(s.Key, bubble.DismissInvalidIntent)
	default:
		c.logger.Warn("unhandled signal", "type", fmt.Sprintf("%T", sig))
	}
}

func (c *Controller) onEntryAdded(entry *notif.Entry) {
	eligible, adjusted := c.eligibility(entry)
	if !eligible {
		return
	}
	if adjusted && !c.userCreated[entry.Key] {
		// Allowlist promotion counts as user intent for interception.
		c.userCreated[entry.Key] = true
	}
	c.updateBubble(entry, adjusted, !c.shade.RowDismissed(entry.Key))
}

func (c *Controller) onEntryUpdated(entry *notif.Entry) {
	eligible, adjusted := c.eligibility(entry)
	active := c.collection.Get(entry.Key)
	if !eligible {
		if active != nil {
			c.apply(c.collection.EntryRemoved(entry, bubble.DismissNoLongerBubble))
		}
		return
	}
	if active != nil && active.Entry().ContentHash() == entry.ContentHash() {
		c.logger.Debug("skipping unchanged notification update", "key", entry.Key)
		return
	}
	c.updateBubble(entry, adjusted, !c.shade.RowDismissed(entry.Key))
}

// updateBubble runs the create-or-refresh path shared by add, update,
// promote, and restore.
func (c *Controller) updateBubble(entry *notif.Entry, suppressFlyout, showInShade bool) {
	b := c.collection.GetOrCreate(entry)
	if entry.Importance >= notif.ImportanceHigh {
		b.MarkInterruption()
	}
	c.apply(c.collection.EntryUpdated(b, suppressFlyout, showInShade))
}

// onPromote handles the user gesture turning a shade row into a
// bubble. The new bubble starts hidden from the shade with its flyout
// suppressed.
func (c *Controller) onPromote(key string) {
	entry := c.shade.Entry(key)
	if entry == nil {
		c.logger.Warn("promotion requested for unknown notification", "key", key)
		return
	}
	if !c.canLaunch(entry) {
		return
	}
	c.shade.CollapsePanel()
	delete(c.userBlocked, key)
	c.userCreated[key] = true
	c.updateBubble(entry, true, false)
	c.shade.RequestRefresh("promote")
}

// onDemote handles the user gesture turning a bubble back into a
// plain notification. Packages on the auto-bubble allowlist remember
// the key as blocked so it is not silently re-promoted.
func (c *Controller) onDemote(key string) {
	b := c.collection.Get(key)
	if b == nil {
		c.logger.Debug("demotion requested for untracked bubble", "key", key)
		return
	}
	entry := b.Entry()
	delete(c.userCreated, key)
	if c.autoBubble[entry.Package] {
		c.userBlocked[key] = true
	}
	c.apply(c.collection.EntryRemoved(entry, bubble.DismissBlocked))
	c.shade.RequestRefresh("demote")
}

// onUserSwitched saves the outgoing user's bubble keys, dismisses the
// stack without touching shade rows, and restores the incoming user's
// saved bubbles against the currently active notifications. The saved
// entry for the incoming user is consumed whether or not anything
// restores.
func (c *Controller) onUserSwitched(userID int) {
	if userID == c.currentUser {
		return
	}
	saved := make(map[string]bool, c.collection.Count())
	for _, b := range c.collection.Bubbles() {
		saved[b.Key()] = true
	}
	c.savedKeys[c.currentUser] = saved
	c.apply(c.collection.DismissAll(bubble.DismissUserChanged))

	c.currentUser = userID
	restore := c.savedKeys[userID]
	delete(c.savedKeys, userID)
	if len(restore) == 0 {
		return
	}
	for _, entry := range c.shade.ActiveEntries(userID) {
		if !restore[entry.Key] {
			continue
		}
		if eligible, _ := c.eligibility(entry); eligible {
			c.updateBubble(entry, true, !c.shade.RowDismissed(entry.Key))
		}
	}
}

// collapseForFocusChange collapses the stack when focus leaves it,
// unless a collapse animation is already running.
func (c *Controller) collapseForFocusChange(sig Signal) {
	if !c.collection.Expanded() {
		return
	}
	if c.presenter.ExpansionAnimating() {
		c.logger.Debug("ignoring focus change during expansion animation",
			"signal", fmt.Sprintf("%T", sig))
		return
	}
	c.apply(c.collection.SetExpanded(false))
}

func (c *Controller) onDisplayDrawn(displayID int) {
	selected := c.collection.Selected()
	if c.collection.Expanded() && selected != nil && selected.DisplayID() == displayID {
		selected.SetContentVisible(true)
	}
}

func (c *Controller) onDisplayEmptied(displayID int) {
	selected := c.collection.Selected()
	c.collection.DisplayEmptied(displayID)
	if c.collection.Expanded() && selected != nil && selected.DisplayID() == displayID {
		c.apply(c.collection.SetExpanded(false))
	}
}

// onGroupSuppressionChanged clears suppression bookkeeping when the
// notification pipeline un-suppresses a summary outside the bubble
// path.
func (c *Controller) onGroupSuppressionChanged(groupKey string, suppressed bool) {
	if suppressed || !c.collection.SummarySuppressed(groupKey) {
		return
	}
	key, _ := c.collection.RemoveSuppressedSummary(groupKey)
	c.logger.Debug("summary suppression cleared externally", "group", groupKey, "key", key)
	c.shade.RequestRefresh("group-suppression-changed")
}

// suppressedFromShade reports whether the bubble pipeline hides the
// key from the shade.
func (c *Controller) suppressedFromShade(key string) bool {
	if b := c.collection.Get(key); b != nil && !b.ShowInShade() {
		return true
	}
	return c.collection.KeySuppressed(key)
}

func (c *Controller) removeByKey(key string, reason bubble.DismissReason) {
	b := c.collection.Get(key)
	if b == nil {
		c.logger.Debug("removal requested for untracked bubble",
			"key", key, "reason", reason.String())
		return
	}
	c.apply(c.collection.EntryRemoved(b.Entry(), reason))
}

// apply forwards one diff to the presenter and reconciles the shade
// afterwards. Removal side effects are best-effort: failures are
// logged and the collection's state stands.
func (c *Controller) apply(u *bubble.Update) {
	if u == nil {
		return
	}
	c.presenter.ApplyUpdate(u)

	for _, removal := range u.Removed {
		if removal.Reason == bubble.DismissUserChanged {
			// The incoming user's shade still holds these rows.
			continue
		}
		b := removal.Bubble
		entry := b.Entry()
		if !b.ShowInShade() {
			if err := c.shade.PerformRemove(entry); err != nil {
				c.logger.Warn("finalizing shade removal failed",
					"key", entry.Key, "error", err)
			}
		} else if err := c.reporter.BubbleChanged(entry.Key, false); err != nil {
			c.logger.Warn("reporting bubble-state change failed",
				"key", entry.Key, "error", err)
		}
		c.reapEmptyGroup(entry.GroupKey)
	}

	if u.SelectionChanged && u.Selected != nil {
		c.groups.UpdateSuppression(u.Selected.Entry())
	}
	c.shade.RequestRefresh("bubble-update")
}

// reapEmptyGroup runs after a bubble removal: when the group lost its
// last bubble, a suppressed summary no longer has anything to stand
// behind, and a summary with no shade children left is finalized too.
func (c *Controller) reapEmptyGroup(groupKey string) {
	if groupKey == "" || len(c.collection.BubblesInGroup(groupKey)) > 0 {
		return
	}
	if summaryKey, ok := c.collection.RemoveSuppressedSummary(groupKey); ok {
		if entry := c.shade.Entry(summaryKey); entry != nil {
			if err := c.shade.PerformRemove(entry); err != nil {
				c.logger.Warn("finalizing suppressed summary removal failed",
					"key", summaryKey, "error", err)
			}
		}
	}
	if summary := c.groups.Summary(groupKey); summary != nil && len(c.groups.Children(groupKey)) == 0 {
		if err := c.shade.PerformRemove(summary); err != nil {
			c.logger.Warn("removing childless group summary failed",
				"key", summary.Key, "error", err)
		}
	}
}
