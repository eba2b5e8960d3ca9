// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buoy-foundation/buoy/lib/codec"
	"github.com/buoy-foundation/buoy/wire"
)

func viewerBubble(key, title string) wire.BubblePayload {
	return wire.BubblePayload{
		Key: key,
		Entry: wire.EntryPayload{
			Key:     key,
			Package: "com.example.chat",
			Title:   title,
		},
		ShowInShade: true,
	}
}

func testModel() Model {
	frames := make(chan wire.Frame)
	model := NewModel(wire.NewClient("/nonexistent/signal.sock"), frames)
	model.width = 80
	model.height = 24
	model.ready = true
	return model
}

func deliverFrame(t *testing.T, model Model, frameType byte, payload any) Model {
	t.Helper()
	data, err := codec.Marshal(payload)
	if err != nil {
		t.Fatalf("encoding payload: %v", err)
	}
	updated, _ := model.Update(frameMsg{frame: wire.Frame{Type: frameType, Payload: data}})
	return updated.(Model)
}

func TestHelloFrameSeedsStack(t *testing.T) {
	model := testModel()
	model = deliverFrame(t, model, wire.FrameTypeHello, wire.SnapshotPayload{
		Bubbles:  []wire.BubblePayload{viewerBubble("n2", "Second"), viewerBubble("n1", "First")},
		Selected: "n2",
		Expanded: true,
	})

	if model.stack.len() != 2 {
		t.Fatalf("stack has %d bubbles, want 2", model.stack.len())
	}
	if model.stack.selected != "n2" {
		t.Errorf("selected = %q, want n2", model.stack.selected)
	}
	if !model.stack.expanded {
		t.Error("expanded flag lost from snapshot")
	}
}

func TestUpdateFrameAppliesDiff(t *testing.T) {
	model := testModel()
	model = deliverFrame(t, model, wire.FrameTypeHello, wire.SnapshotPayload{
		Bubbles:  []wire.BubblePayload{viewerBubble("n1", "First")},
		Selected: "n1",
	})

	added := viewerBubble("n2", "Second")
	model = deliverFrame(t, model, wire.FrameTypeUpdate, wire.UpdatePayload{
		Added:            &added,
		Order:            []string{"n2", "n1"},
		SelectionChanged: true,
		Selected:         "n2",
	})

	if model.stack.len() != 2 || model.stack.bubbles[0].Key != "n2" {
		t.Fatalf("front of stack = %v", model.stack.bubbles)
	}
	if model.stack.selected != "n2" {
		t.Errorf("selected = %q, want n2", model.stack.selected)
	}
}

func TestRemovalShowsNotice(t *testing.T) {
	model := testModel()
	model = deliverFrame(t, model, wire.FrameTypeHello, wire.SnapshotPayload{
		Bubbles: []wire.BubblePayload{viewerBubble("n1", "First"), viewerBubble("n0", "Old")},
	})
	model.cursor = 1

	model = deliverFrame(t, model, wire.FrameTypeUpdate, wire.UpdatePayload{
		Removed: []wire.RemovalPayload{{Key: "n0", Reason: "aged"}},
		Order:   []string{"n1"},
	})

	if model.stack.len() != 1 {
		t.Fatalf("stack has %d bubbles, want 1", model.stack.len())
	}
	if !strings.Contains(model.notice, "n0") || !strings.Contains(model.notice, "aged") {
		t.Errorf("notice = %q, want removal flyout", model.notice)
	}
	if model.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", model.cursor)
	}
}

func TestOrderFrameReordersStack(t *testing.T) {
	state := &stackState{}
	state.applySnapshot(wire.SnapshotPayload{
		Bubbles: []wire.BubblePayload{
			viewerBubble("n3", "C"), viewerBubble("n2", "B"), viewerBubble("n1", "A"),
		},
	})
	state.SetOrder([]string{"n1", "n3", "n2"})

	got := make([]string, 0, 3)
	for _, b := range state.bubbles {
		got = append(got, b.Key)
	}
	want := []string{"n1", "n3", "n2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Unknown keys in the order are skipped, not fabricated.
	state.SetOrder([]string{"ghost", "n1"})
	if state.len() != 1 || state.bubbles[0].Key != "n1" {
		t.Errorf("order with unknown key = %v", state.bubbles)
	}
}

func TestIMEFrameTogglesIndicator(t *testing.T) {
	model := testModel()
	model = deliverFrame(t, model, wire.FrameTypeIME, wire.IMEPayload{Visible: true})
	if !model.imeVisible {
		t.Error("imeVisible = false after visible IME frame")
	}
	if !strings.Contains(model.View(), "[ime]") {
		t.Error("View does not show the IME indicator")
	}
}

func TestCursorNavigation(t *testing.T) {
	model := testModel()
	model = deliverFrame(t, model, wire.FrameTypeHello, wire.SnapshotPayload{
		Bubbles: []wire.BubblePayload{viewerBubble("n2", "B"), viewerBubble("n1", "A")},
	})

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	updated, _ := model.Update(down)
	model = updated.(Model)
	if model.cursor != 1 {
		t.Fatalf("cursor = %d after down, want 1", model.cursor)
	}
	updated, _ = model.Update(down)
	model = updated.(Model)
	if model.cursor != 1 {
		t.Errorf("cursor moved past the last bubble")
	}
	updated, _ = model.Update(up)
	model = updated.(Model)
	if model.cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", model.cursor)
	}
}

func TestGestureKeysEmitSignals(t *testing.T) {
	model := testModel()
	model = deliverFrame(t, model, wire.FrameTypeHello, wire.SnapshotPayload{
		Bubbles: []wire.BubblePayload{viewerBubble("n1", "A")},
	})

	cases := []struct {
		name string
		key  rune
	}{
		{"select", '\n'},
		{"expand", 'e'},
		{"collapse", 'c'},
		{"dismiss", 'x'},
		{"dismiss-all", 'X'},
		{"demote", 'u'},
	}
	for _, tc := range cases {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tc.key}}
		if tc.key == '\n' {
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		}
		_, cmd := model.Update(msg)
		if cmd == nil {
			t.Errorf("%s key produced no signal command", tc.name)
		}
	}
}

func TestGestureKeysIgnoredOnEmptyStack(t *testing.T) {
	model := testModel()
	for _, r := range []rune{'e', 'x', 'X', 'u'} {
		_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if cmd != nil {
			t.Errorf("key %q produced a command with no bubbles", r)
		}
	}
}

func TestViewRendersStack(t *testing.T) {
	model := testModel()
	model = deliverFrame(t, model, wire.FrameTypeHello, wire.SnapshotPayload{
		Bubbles:  []wire.BubblePayload{viewerBubble("n2", "Standup"), viewerBubble("n1", "Lunch")},
		Selected: "n2",
		Expanded: true,
	})

	view := model.View()
	if !strings.Contains(view, "Standup") || !strings.Contains(view, "Lunch") {
		t.Errorf("View missing bubble titles:\n%s", view)
	}
	if !strings.Contains(view, "2 bubble(s)") {
		t.Errorf("View missing header count:\n%s", view)
	}
}

func TestStreamCloseQuits(t *testing.T) {
	model := testModel()
	_, cmd := model.Update(streamClosedMsg{})
	if cmd == nil {
		t.Fatal("stream close produced no quit command")
	}
}
