// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/buoy-foundation/buoy/notif"
)

func storeEntry(key, groupKey string, summary bool) *notif.Entry {
	return &notif.Entry{
		Key:          key,
		GroupKey:     groupKey,
		Package:      "com.example.chat",
		Importance:   notif.ImportanceDefault,
		Posted:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		GroupSummary: summary,
		Intent:       &notif.Intent{Target: "com.example.chat/Conversation"},
	}
}

func TestStoreActiveEntriesFiltersByUser(t *testing.T) {
	store := newEntryStore(slog.Default())
	first := storeEntry("n1", "", false)
	second := storeEntry("n2", "", false)
	second.UserID = 7
	store.Upsert(first)
	store.Upsert(second)

	active := store.ActiveEntries(0)
	if len(active) != 1 || active[0].Key != "n1" {
		t.Errorf("ActiveEntries(0) = %v", active)
	}
	active = store.ActiveEntries(7)
	if len(active) != 1 || active[0].Key != "n2" {
		t.Errorf("ActiveEntries(7) = %v", active)
	}
}

func TestStoreRowDismissalLifecycle(t *testing.T) {
	store := newEntryStore(slog.Default())
	store.Upsert(storeEntry("n1", "", false))

	store.MarkRowDismissed("n1")
	if !store.RowDismissed("n1") {
		t.Fatal("RowDismissed = false after MarkRowDismissed")
	}

	// A fresh post of the same key starts with a clean row.
	store.Forget("n1")
	store.Upsert(storeEntry("n1", "", false))
	if store.RowDismissed("n1") {
		t.Error("dismissal survived Forget and repost")
	}
}

func TestStoreGroupTracking(t *testing.T) {
	store := newEntryStore(slog.Default())
	summary := storeEntry("s1", "g1", true)
	childA := storeEntry("c1", "g1", false)
	childB := storeEntry("c2", "g1", false)
	store.Upsert(summary)
	store.Upsert(childA)
	store.Upsert(childB)

	if got := store.Summary("g1"); got == nil || got.Key != "s1" {
		t.Fatalf("Summary = %v", got)
	}
	if got := store.Children("g1"); len(got) != 2 {
		t.Fatalf("Children = %d entries, want 2", len(got))
	}

	// A logically removed child leaves the group but keeps its data.
	store.EntryRemoved(childA)
	if got := store.Children("g1"); len(got) != 1 || got[0].Key != "c2" {
		t.Errorf("Children after EntryRemoved = %v", got)
	}
	if store.Entry("c1") == nil {
		t.Error("EntryRemoved dropped the entry data")
	}
}

func TestStorePerformRemove(t *testing.T) {
	store := newEntryStore(slog.Default())
	entry := storeEntry("n1", "", false)
	store.Upsert(entry)
	store.MarkRowDismissed("n1")

	if err := store.PerformRemove(entry); err != nil {
		t.Fatalf("PerformRemove: %v", err)
	}
	if store.Entry("n1") != nil {
		t.Error("entry survived PerformRemove")
	}
	if store.RowDismissed("n1") {
		t.Error("dismissal bookkeeping survived PerformRemove")
	}
	if err := store.PerformRemove(entry); err != nil {
		t.Errorf("second PerformRemove: %v", err)
	}
}

func TestStoreBubbleReporting(t *testing.T) {
	store := newEntryStore(slog.Default())
	store.Upsert(storeEntry("n1", "", false))

	if err := store.BubbleChanged("n1", true); err != nil {
		t.Fatalf("BubbleChanged: %v", err)
	}
	if !store.RowIsBubble("n1") {
		t.Error("RowIsBubble = false after BubbleChanged(true)")
	}
	if err := store.BubbleChanged("n1", false); err != nil {
		t.Fatalf("BubbleChanged: %v", err)
	}
	if store.RowIsBubble("n1") {
		t.Error("RowIsBubble = true after BubbleChanged(false)")
	}

	// Reporting for an unknown key is tolerated.
	if err := store.BubbleChanged("ghost", true); err != nil {
		t.Errorf("BubbleChanged for unknown key: %v", err)
	}
	if store.RowIsBubble("ghost") {
		t.Error("unknown key recorded as bubble row")
	}
}
