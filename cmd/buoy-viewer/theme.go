// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the stack viewer. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Bubble markers.
	DotColor          lipgloss.Color // Unseen-content dot.
	InterruptionColor lipgloss.Color // High-importance marker.

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Transient notices: dismiss flyouts and signal errors.
	NoticeText lipgloss.Color
	ErrorText  lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("255"),
	DotColor:           lipgloss.Color("39"),
	InterruptionColor:  lipgloss.Color("203"),
	HeaderForeground:   lipgloss.Color("81"),
	BorderColor:        lipgloss.Color("238"),
	HelpText:           lipgloss.Color("243"),
	NoticeText:         lipgloss.Color("114"),
	ErrorText:          lipgloss.Color("203"),
}
