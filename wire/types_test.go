// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/buoy-foundation/buoy/bubble"
	"github.com/buoy-foundation/buoy/lib/clock"
	"github.com/buoy-foundation/buoy/notif"
)

// recordingView logs every StackView call so tests can assert the
// application order.
type recordingView struct {
	calls []string
}

func (v *recordingView) AddBubble(b BubblePayload)      { v.calls = append(v.calls, "add:"+b.Key) }
func (v *recordingView) Collapse()                      { v.calls = append(v.calls, "collapse") }
func (v *recordingView) RemoveBubble(key, reason string) {
	v.calls = append(v.calls, fmt.Sprintf("remove:%s:%s", key, reason))
}
func (v *recordingView) UpdateBubble(b BubblePayload) { v.calls = append(v.calls, "update:"+b.Key) }
func (v *recordingView) SetOrder(keys []string) {
	v.calls = append(v.calls, fmt.Sprintf("order:%v", keys))
}
func (v *recordingView) SetSelection(key string) { v.calls = append(v.calls, "select:"+key) }
func (v *recordingView) Expand()                 { v.calls = append(v.calls, "expand") }

func payloadBubble(key string) *BubblePayload {
	return &BubblePayload{Key: key, Entry: EntryPayload{Key: key}}
}

func TestApplyOrdering(t *testing.T) {
	// A maximal diff: every field populated. Apply must visit the view
	// in the fixed order regardless of field order in the struct.
	diff := &UpdatePayload{
		Added:            payloadBubble("new"),
		Removed:          []RemovalPayload{{Key: "old1", Reason: "aged"}, {Key: "old2", Reason: "user-gesture"}},
		Updated:          payloadBubble("existing"),
		OrderChanged:     true,
		Order:            []string{"new", "existing"},
		SelectionChanged: true,
		Selected:         "new",
		ExpandedChanged:  true,
		Expanded:         false,
	}
	view := &recordingView{}
	diff.Apply(view)

	want := []string{
		"add:new",
		"collapse",
		"remove:old1:aged",
		"remove:old2:user-gesture",
		"update:existing",
		"order:[new existing]",
		"select:new",
	}
	if !reflect.DeepEqual(view.calls, want) {
		t.Errorf("call order = %v, want %v", view.calls, want)
	}
}

func TestApplyExpandIsLast(t *testing.T) {
	diff := &UpdatePayload{
		Added:            payloadBubble("new"),
		SelectionChanged: true,
		Selected:         "new",
		ExpandedChanged:  true,
		Expanded:         true,
	}
	view := &recordingView{}
	diff.Apply(view)

	want := []string{"add:new", "select:new", "expand"}
	if !reflect.DeepEqual(view.calls, want) {
		t.Errorf("call order = %v, want %v", view.calls, want)
	}
}

func TestApplySkipsUnchangedFields(t *testing.T) {
	diff := &UpdatePayload{Updated: payloadBubble("b"), Order: []string{"b"}}
	view := &recordingView{}
	diff.Apply(view)
	if want := []string{"update:b"}; !reflect.DeepEqual(view.calls, want) {
		t.Errorf("call order = %v, want %v", view.calls, want)
	}
}

func TestEntryConversionRoundTrip(t *testing.T) {
	entry := &notif.Entry{
		Key:        "n1",
		GroupKey:   "g1",
		Package:    "com.example.chat",
		UserID:     10,
		Importance: notif.ImportanceHigh,
		Title:      "title",
		Text:       "text",
		Posted:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		FlagBubble: true,
		Intent:     &notif.Intent{Target: "com.example.chat/Conversation"},
	}
	payload := EntryFromNotif(entry)
	if got := payload.Entry(); !reflect.DeepEqual(got, entry) {
		t.Errorf("round trip = %+v, want %+v", got, entry)
	}

	// A nil intent stays nil.
	entry.Intent = nil
	payload = EntryFromNotif(entry)
	if got := payload.Entry(); got.Intent != nil {
		t.Errorf("Intent = %+v after round trip of nil intent", got.Intent)
	}
}

func TestUpdateFromDiff(t *testing.T) {
	collection := bubble.NewCollection(bubble.Options{
		Clock: clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	})
	entry := &notif.Entry{
		Key:        "n1",
		Package:    "com.example.chat",
		FlagBubble: true,
		Intent:     &notif.Intent{Target: "com.example.chat/Conversation"},
	}
	u := collection.EntryUpdated(collection.GetOrCreate(entry), false, true)

	p := UpdateFromDiff(u)
	if p.Added == nil || p.Added.Key != "n1" {
		t.Fatalf("Added = %+v, want n1", p.Added)
	}
	if !p.SelectionChanged || p.Selected != "n1" {
		t.Errorf("Selected = %q (changed=%v), want n1", p.Selected, p.SelectionChanged)
	}
	if len(p.Order) != 1 || p.Order[0] != "n1" {
		t.Errorf("Order = %v, want [n1]", p.Order)
	}
	if !p.Added.ShowInShade || !p.Added.ShowDot {
		t.Errorf("render flags = shade %v dot %v, want both true", p.Added.ShowInShade, p.Added.ShowDot)
	}

	removal := collection.EntryRemoved(entry, bubble.DismissUserGesture)
	p = UpdateFromDiff(removal)
	if len(p.Removed) != 1 || p.Removed[0] != (RemovalPayload{Key: "n1", Reason: "user-gesture"}) {
		t.Errorf("Removed = %+v, want [(n1, user-gesture)]", p.Removed)
	}
	if p.Selected != "" || !p.SelectionChanged {
		t.Errorf("Selected = %q, want empty", p.Selected)
	}
}

func TestSnapshotFromCollection(t *testing.T) {
	collection := bubble.NewCollection(bubble.Options{
		Clock: clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	})
	for _, key := range []string{"a", "b"} {
		entry := &notif.Entry{Key: key, Package: "com.example.chat", FlagBubble: true}
		collection.EntryUpdated(collection.GetOrCreate(entry), false, true)
	}
	collection.SetExpanded(true)

	snapshot := SnapshotFromCollection(collection)
	if len(snapshot.Bubbles) != 2 || snapshot.Bubbles[0].Key != "b" || snapshot.Bubbles[1].Key != "a" {
		t.Errorf("snapshot bubbles = %+v, want [b a]", snapshot.Bubbles)
	}
	if snapshot.Selected != "a" {
		t.Errorf("Selected = %q, want a (first added)", snapshot.Selected)
	}
	if !snapshot.Expanded {
		t.Error("Expanded = false, want true")
	}
}
