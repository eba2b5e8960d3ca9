// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/buoy-foundation/buoy/lib/codec"
	"github.com/buoy-foundation/buoy/wire"
)

// frameMsg wraps a stream frame for delivery through the bubbletea
// message loop.
type frameMsg struct {
	frame wire.Frame
}

// streamClosedMsg reports that the stream socket closed.
type streamClosedMsg struct {
	err error
}

// signalResultMsg is sent when an asynchronous signal call completes.
// On error the message is displayed in the status bar.
type signalResultMsg struct {
	action string
	err    error
}

// noticeFadeMsg clears the transient notice line.
type noticeFadeMsg struct{}

// noticeFadeDelay is how long dismiss flyouts and errors stay visible.
const noticeFadeDelay = 3 * time.Second

// signalTimeout bounds one signal-socket round trip.
const signalTimeout = 5 * time.Second

// Model is the viewer's bubbletea model. The engine owns all stack
// semantics; the model only renders the replicated state and turns
// keystrokes into signals.
type Model struct {
	keys   KeyMap
	theme  Theme
	client *wire.Client
	frames <-chan wire.Frame

	stack  *stackState
	cursor int

	width  int
	height int
	ready  bool

	imeVisible bool
	notice     string
	noticeErr  bool
	quitting   bool
}

// NewModel creates a model reading frames from frames and sending
// gestures through client.
func NewModel(client *wire.Client, frames <-chan wire.Frame) Model {
	return Model{
		keys:   DefaultKeyMap,
		theme:  DefaultTheme,
		client: client,
		frames: frames,
		stack:  &stackState{},
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return listenForFrame(model.frames)
}

// listenForFrame returns a tea.Cmd that blocks until a frame arrives
// on the stream channel, then delivers it as a frameMsg.
func listenForFrame(frames <-chan wire.Frame) tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-frames
		if !ok {
			return streamClosedMsg{}
		}
		return frameMsg{frame: frame}
	}
}

// sendSignal returns a tea.Cmd performing one signal call off the
// event loop.
func (model Model) sendSignal(request wire.SignalRequest) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), signalTimeout)
		defer cancel()
		err := client.Call(ctx, request, nil)
		return signalResultMsg{action: request.Action, err: err}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case frameMsg:
		return model.handleFrame(message.frame)

	case streamClosedMsg:
		model.quitting = true
		return model, tea.Quit

	case signalResultMsg:
		if message.err != nil {
			model.notice = fmt.Sprintf("%s failed: %v", message.action, message.err)
			model.noticeErr = true
			return model, fadeNotice()
		}

	case noticeFadeMsg:
		model.notice = ""
		model.noticeErr = false
	}
	return model, nil
}

func fadeNotice() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

func (model Model) handleFrame(frame wire.Frame) (tea.Model, tea.Cmd) {
	listen := listenForFrame(model.frames)
	switch frame.Type {
	case wire.FrameTypeHello:
		var snapshot wire.SnapshotPayload
		if err := codec.Unmarshal(frame.Payload, &snapshot); err != nil {
			model.notice = fmt.Sprintf("bad hello frame: %v", err)
			model.noticeErr = true
			return model, tea.Batch(listen, fadeNotice())
		}
		model.stack.applySnapshot(snapshot)
		model.cursor = 0

	case wire.FrameTypeUpdate:
		var payload wire.UpdatePayload
		if err := codec.Unmarshal(frame.Payload, &payload); err != nil {
			model.notice = fmt.Sprintf("bad update frame: %v", err)
			model.noticeErr = true
			return model, tea.Batch(listen, fadeNotice())
		}
		payload.Apply(model.stack)
		model.clampCursor()
		if removed := model.stack.lastRemoved; removed.Key != "" {
			model.stack.lastRemoved = wire.RemovalPayload{}
			model.notice = fmt.Sprintf("dismissed %s (%s)", removed.Key, removed.Reason)
			model.noticeErr = false
			return model, tea.Batch(listen, fadeNotice())
		}

	case wire.FrameTypeIME:
		var payload wire.IMEPayload
		if err := codec.Unmarshal(frame.Payload, &payload); err == nil {
			model.imeVisible = payload.Visible
		}
	}
	return model, listen
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		model.quitting = true
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < model.stack.len()-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.Select):
		if b := model.cursorBubble(); b != nil {
			return model, model.sendSignal(wire.SignalRequest{Action: "select", Key: b.Key})
		}

	case key.Matches(message, model.keys.Expand):
		if model.stack.len() > 0 {
			return model, model.sendSignal(wire.SignalRequest{Action: "expand"})
		}

	case key.Matches(message, model.keys.Collapse):
		return model, model.sendSignal(wire.SignalRequest{Action: "collapse"})

	case key.Matches(message, model.keys.Dismiss):
		if b := model.cursorBubble(); b != nil {
			return model, model.sendSignal(wire.SignalRequest{Action: "dismiss", Key: b.Key})
		}

	case key.Matches(message, model.keys.DismissAll):
		if model.stack.len() > 0 {
			return model, model.sendSignal(wire.SignalRequest{Action: "dismiss-all"})
		}

	case key.Matches(message, model.keys.Demote):
		if b := model.cursorBubble(); b != nil {
			return model, model.sendSignal(wire.SignalRequest{Action: "demote", Key: b.Key})
		}
	}
	return model, nil
}

func (model *Model) clampCursor() {
	if model.cursor >= model.stack.len() {
		model.cursor = model.stack.len() - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

func (model Model) cursorBubble() *wire.BubblePayload {
	if model.cursor < 0 || model.cursor >= model.stack.len() {
		return nil
	}
	return &model.stack.bubbles[model.cursor]
}

// View implements tea.Model.
func (model Model) View() string {
	if model.quitting {
		return ""
	}
	if !model.ready {
		return "connecting…"
	}

	var view strings.Builder
	view.WriteString(model.renderHeader())
	view.WriteByte('\n')
	view.WriteString(model.renderStack())
	if model.stack.expanded {
		view.WriteString(model.renderDetail())
	}
	view.WriteString(model.renderFooter())
	return view.String()
}

func (model Model) renderHeader() string {
	header := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	title := fmt.Sprintf("buoy — %d bubble(s)", model.stack.len())
	if model.imeVisible {
		title += "  [ime]"
	}
	return header.Render(ansi.Truncate(title, max(model.width, 1), "…"))
}

func (model Model) renderStack() string {
	if model.stack.len() == 0 {
		faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		return faint.Render("no bubbles") + "\n"
	}

	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	selectedRow := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)
	dot := lipgloss.NewStyle().Foreground(model.theme.DotColor)
	interruption := lipgloss.NewStyle().Foreground(model.theme.InterruptionColor)

	var rows strings.Builder
	for i, b := range model.stack.bubbles {
		marker := "  "
		if i == model.cursor {
			marker = "> "
		}
		badge := " "
		if b.ShowDot {
			badge = dot.Render("●")
		}
		alert := " "
		if b.Interruption {
			alert = interruption.Render("!")
		}
		label := b.Entry.Title
		if label == "" {
			label = b.Key
		}
		if !b.ShowInShade {
			// The row is hidden from the shade; only this bubble
			// keeps the notification alive.
			label += " ⌀"
		}
		line := fmt.Sprintf("%s%s%s %s", marker, badge, alert,
			ansi.Truncate(label, max(model.width-6, 8), "…"))
		if b.Key == model.stack.selected {
			rows.WriteString(selectedRow.Render(line))
		} else {
			rows.WriteString(normal.Render(line))
		}
		rows.WriteByte('\n')
	}
	return rows.String()
}

func (model Model) renderDetail() string {
	selected := model.stack.selectedBubble()
	if selected == nil {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Width(max(model.width-2, 20))
	body := selected.Entry.Title
	if selected.Entry.Text != "" {
		body += "\n" + selected.Entry.Text
	}
	return box.Render(body) + "\n"
}

func (model Model) renderFooter() string {
	var footer strings.Builder
	if model.notice != "" {
		color := model.theme.NoticeText
		if model.noticeErr {
			color = model.theme.ErrorText
		}
		footer.WriteString(lipgloss.NewStyle().Foreground(color).Render(model.notice))
		footer.WriteByte('\n')
	}
	help := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	footer.WriteString(help.Render(
		"j/k move · enter select · e expand · c collapse · x dismiss · X dismiss all · u unbubble · q quit"))
	return footer.String()
}
