// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"sync"

	"github.com/buoy-foundation/buoy/notif"
)

// entryStore mirrors the notification source's live entries inside the
// daemon. Signal handlers feed it before forwarding to the controller,
// and the controller reads it back through the notif.Shade and
// notif.GroupTracker interfaces.
//
// Handlers run on connection goroutines while the controller runs on
// its own loop, so every method takes the mutex.
type entryStore struct {
	logger *slog.Logger

	mu            sync.Mutex
	entries       map[string]*notif.Entry
	dismissedRows map[string]bool
	// ungrouped holds keys whose entries still exist but no longer
	// count toward their logical group (intercepted user removals).
	ungrouped map[string]bool
	// bubbleRows tracks which rows the notification source has been
	// told are backing a bubble.
	bubbleRows map[string]bool
}

func newEntryStore(logger *slog.Logger) *entryStore {
	return &entryStore{
		logger:        logger,
		entries:       make(map[string]*notif.Entry),
		dismissedRows: make(map[string]bool),
		ungrouped:     make(map[string]bool),
		bubbleRows:    make(map[string]bool),
	}
}

// Upsert records a posted or updated entry.
func (s *entryStore) Upsert(entry *notif.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, known := s.entries[entry.Key]; !known {
		delete(s.dismissedRows, entry.Key)
		delete(s.ungrouped, entry.Key)
	}
	s.entries[entry.Key] = entry
}

// MarkRowDismissed records that the user dismissed the entry's row.
// The entry itself stays until removal goes through uninterrupted.
func (s *entryStore) MarkRowDismissed(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissedRows[key] = true
}

// Forget drops an entry after its removal was not intercepted.
func (s *entryStore) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	delete(s.dismissedRows, key)
	delete(s.ungrouped, key)
	delete(s.bubbleRows, key)
}

// Count reports how many entries are mirrored.
func (s *entryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// ActiveEntries implements notif.Shade.
func (s *entryStore) ActiveEntries(userID int) []*notif.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []*notif.Entry
	for _, entry := range s.entries {
		if entry.UserID == userID {
			active = append(active, entry)
		}
	}
	return active
}

// Entry implements notif.Shade.
func (s *entryStore) Entry(key string) *notif.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[key]
}

// RowDismissed implements notif.Shade.
func (s *entryStore) RowDismissed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dismissedRows[key]
}

// PerformRemove implements notif.Shade: a final, uninterceptable
// removal initiated by the engine itself.
func (s *entryStore) PerformRemove(entry *notif.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, known := s.entries[entry.Key]; !known {
		return nil
	}
	delete(s.entries, entry.Key)
	delete(s.dismissedRows, entry.Key)
	delete(s.ungrouped, entry.Key)
	delete(s.bubbleRows, entry.Key)
	s.logger.Debug("entry removed", "key", entry.Key)
	return nil
}

// RequestRefresh implements notif.Shade. Presentation state flows to
// viewers through the update stream, so a refresh request is only a
// trace point here.
func (s *entryStore) RequestRefresh(context string) {
	s.logger.Debug("shade refresh requested", "context", context)
}

// CollapsePanel implements notif.Shade.
func (s *entryStore) CollapsePanel() {
	s.logger.Debug("shade panel collapse requested")
}

// Summary implements notif.GroupTracker.
func (s *entryStore) Summary(groupKey string) *notif.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.GroupKey == groupKey && (entry.GroupSummary || entry.AutoGroupSummary) {
			return entry
		}
	}
	return nil
}

// Children implements notif.GroupTracker.
func (s *entryStore) Children(groupKey string) []*notif.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var children []*notif.Entry
	for _, entry := range s.entries {
		if entry.GroupKey != groupKey || entry.GroupSummary || entry.AutoGroupSummary {
			continue
		}
		if s.ungrouped[entry.Key] {
			continue
		}
		children = append(children, entry)
	}
	return children
}

// EntryRemoved implements notif.GroupTracker: the entry leaves its
// logical group even though its data lingers for a hidden bubble.
func (s *entryStore) EntryRemoved(entry *notif.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ungrouped[entry.Key] = true
}

// UpdateSuppression implements notif.GroupTracker. Grouped alert
// suppression lives in the notification source; the daemon only
// records that the selection moved onto the entry's group.
func (s *entryStore) UpdateSuppression(entry *notif.Entry) {
	s.logger.Debug("group suppression update", "key", entry.Key, "group", entry.GroupKey)
}

// BubbleChanged implements notif.BubbleReporter.
func (s *entryStore) BubbleChanged(key string, isBubble bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, known := s.entries[key]; !known {
		return nil
	}
	s.bubbleRows[key] = isBubble
	return nil
}

// RowIsBubble reports the last bubble state announced for a row.
func (s *entryStore) RowIsBubble(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bubbleRows[key]
}
