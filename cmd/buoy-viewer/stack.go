// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/buoy-foundation/buoy/wire"

// stackState is the viewer's rendering of the stack. It implements
// wire.StackView, so update payloads drive it through Apply in the
// engine's mandatory order; the viewer never reorders or re-decides
// anything the engine already decided.
type stackState struct {
	bubbles  []wire.BubblePayload // Front (most recent) first.
	selected string
	expanded bool

	// lastRemoved holds the most recent removal for the notice line.
	lastRemoved wire.RemovalPayload
}

// applySnapshot resets the state from a hello frame.
func (s *stackState) applySnapshot(snapshot wire.SnapshotPayload) {
	s.bubbles = append([]wire.BubblePayload(nil), snapshot.Bubbles...)
	s.selected = snapshot.Selected
	s.expanded = snapshot.Expanded
	s.lastRemoved = wire.RemovalPayload{}
}

// AddBubble implements wire.StackView.
func (s *stackState) AddBubble(b wire.BubblePayload) {
	s.bubbles = append([]wire.BubblePayload{b}, s.bubbles...)
}

// Collapse implements wire.StackView.
func (s *stackState) Collapse() {
	s.expanded = false
}

// RemoveBubble implements wire.StackView.
func (s *stackState) RemoveBubble(key, reason string) {
	for i, b := range s.bubbles {
		if b.Key == key {
			s.bubbles = append(s.bubbles[:i], s.bubbles[i+1:]...)
			s.lastRemoved = wire.RemovalPayload{Key: key, Reason: reason}
			return
		}
	}
}

// UpdateBubble implements wire.StackView.
func (s *stackState) UpdateBubble(b wire.BubblePayload) {
	for i := range s.bubbles {
		if s.bubbles[i].Key == b.Key {
			s.bubbles[i] = b
			return
		}
	}
}

// SetOrder implements wire.StackView.
func (s *stackState) SetOrder(keys []string) {
	byKey := make(map[string]wire.BubblePayload, len(s.bubbles))
	for _, b := range s.bubbles {
		byKey[b.Key] = b
	}
	reordered := make([]wire.BubblePayload, 0, len(keys))
	for _, key := range keys {
		if b, ok := byKey[key]; ok {
			reordered = append(reordered, b)
		}
	}
	s.bubbles = reordered
}

// SetSelection implements wire.StackView.
func (s *stackState) SetSelection(key string) {
	s.selected = key
}

// Expand implements wire.StackView.
func (s *stackState) Expand() {
	s.expanded = true
}

func (s *stackState) len() int { return len(s.bubbles) }

func (s *stackState) selectedBubble() *wire.BubblePayload {
	for i := range s.bubbles {
		if s.bubbles[i].Key == s.selected {
			return &s.bubbles[i]
		}
	}
	return nil
}

func (s *stackState) indexOf(key string) int {
	for i := range s.bubbles {
		if s.bubbles[i].Key == key {
			return i
		}
	}
	return -1
}
