// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the stack viewer.
type KeyMap struct {
	// Navigation moves the cursor through the stack.
	Up   key.Binding
	Down key.Binding

	// Select makes the bubble under the cursor the engine's selected
	// bubble.
	Select key.Binding

	// Expand and Collapse drive the collection-wide expansion flag.
	Expand   key.Binding
	Collapse key.Binding

	// Dismiss removes the bubble under the cursor; DismissAll clears
	// the stack.
	Dismiss    key.Binding
	DismissAll key.Binding

	// Demote turns the bubble under the cursor back into a plain
	// notification.
	Demote key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Expand: key.NewBinding(
		key.WithKeys("e", "l"),
		key.WithHelp("e", "expand"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("c", "esc", "h"),
		key.WithHelp("c/esc", "collapse"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss"),
	),
	DismissAll: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "dismiss all"),
	),
	Demote: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "unbubble"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
