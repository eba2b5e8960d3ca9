// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/buoy-foundation/buoy/bubble"
	"github.com/buoy-foundation/buoy/lib/clock"
	"github.com/buoy-foundation/buoy/lib/codec"
	"github.com/buoy-foundation/buoy/lib/journal"
	"github.com/buoy-foundation/buoy/wire"
)

// subscriberQueueSize bounds the per-subscriber frame queue. A viewer
// that falls this far behind is disconnected rather than allowed to
// stall the stack.
const subscriberQueueSize = 32

// expansionGrace is how long after an expansion change the presenter
// reports the transition as still animating. Viewers animate the
// expand and collapse locally; during the grace window the engine
// leaves the expanded state alone instead of collapsing on focus
// changes mid-transition.
const expansionGrace = 300 * time.Millisecond

// journalRecord is one journaled stream event.
type journalRecord struct {
	Time   int64               `cbor:"time"`
	Update *wire.UpdatePayload `cbor:"update,omitempty"`
	IME    *wire.IMEPayload    `cbor:"ime,omitempty"`
}

// broadcaster fans applied updates out to stream subscribers and
// implements controller.Presenter. ApplyUpdate and
// IMEVisibilityChanged run on the controller loop; subscriptions
// arrive on accept goroutines, so shared state sits behind a mutex.
type broadcaster struct {
	logger  *slog.Logger
	clock   clock.Clock
	journal *journal.Writer

	mu            sync.Mutex
	snapshot      wire.SnapshotPayload
	subscribers   map[int]*subscriber
	nextID        int
	lastExpansion time.Time
}

type subscriber struct {
	conn   net.Conn
	frames chan wire.Frame
}

func newBroadcaster(logger *slog.Logger, clk clock.Clock, jw *journal.Writer) *broadcaster {
	return &broadcaster{
		logger:      logger,
		clock:       clk,
		journal:     jw,
		subscribers: make(map[int]*subscriber),
	}
}

// ApplyUpdate implements controller.Presenter: encode the diff once,
// refresh the cached snapshot for late subscribers, and fan the frame
// out.
func (b *broadcaster) ApplyUpdate(u *bubble.Update) {
	payload := wire.UpdateFromDiff(u)
	data, err := codec.Marshal(payload)
	if err != nil {
		b.logger.Error("encoding update frame failed", "error", err)
		return
	}

	b.mu.Lock()
	b.applySnapshotLocked(u)
	if u.ExpandedChanged {
		b.lastExpansion = b.clock.Now()
	}
	b.fanOutLocked(wire.Frame{Type: wire.FrameTypeUpdate, Payload: data})
	b.mu.Unlock()

	if b.journal != nil {
		record := journalRecord{Time: b.clock.Now().UnixMilli(), Update: &payload}
		if err := b.journal.Append(record); err != nil {
			b.logger.Warn("journaling update failed", "error", err)
		}
	}
}

// ExpansionAnimating implements controller.Presenter.
func (b *broadcaster) ExpansionAnimating() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastExpansion.IsZero() {
		return false
	}
	return b.clock.Now().Sub(b.lastExpansion) < expansionGrace
}

// IMEVisibilityChanged implements controller.Presenter.
func (b *broadcaster) IMEVisibilityChanged(visible bool) {
	data, err := codec.Marshal(wire.IMEPayload{Visible: visible})
	if err != nil {
		b.logger.Error("encoding IME frame failed", "error", err)
		return
	}

	b.mu.Lock()
	b.fanOutLocked(wire.Frame{Type: wire.FrameTypeIME, Payload: data})
	b.mu.Unlock()

	if b.journal != nil {
		record := journalRecord{Time: b.clock.Now().UnixMilli(), IME: &wire.IMEPayload{Visible: visible}}
		if err := b.journal.Append(record); err != nil {
			b.logger.Warn("journaling IME change failed", "error", err)
		}
	}
}

// applySnapshotLocked folds the update into the cached snapshot. The
// cache is what a new subscriber receives in its hello frame. Selected
// and Expanded only appear on an update when they changed, so the
// previous values carry forward otherwise.
func (b *broadcaster) applySnapshotLocked(u *bubble.Update) {
	snapshot := wire.SnapshotPayload{
		Selected: b.snapshot.Selected,
		Expanded: b.snapshot.Expanded,
	}
	for _, state := range u.Bubbles {
		snapshot.Bubbles = append(snapshot.Bubbles, wire.BubbleFromState(state))
	}
	if u.SelectionChanged {
		snapshot.Selected = ""
		if u.Selected != nil {
			snapshot.Selected = u.Selected.Key()
		}
	}
	if u.ExpandedChanged {
		snapshot.Expanded = u.Expanded
	}
	b.snapshot = snapshot
}

func (b *broadcaster) fanOutLocked(frame wire.Frame) {
	for id, sub := range b.subscribers {
		select {
		case sub.frames <- frame:
		default:
			b.logger.Warn("dropping stalled stream subscriber", "subscriber", id)
			delete(b.subscribers, id)
			close(sub.frames)
		}
	}
}

// Serve listens on the stream socket and feeds each subscriber a hello
// snapshot followed by live frames. Blocks until ctx is cancelled.
func (b *broadcaster) Serve(ctx context.Context, socketPath string) error {
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale stream socket: %w", err)
	}
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listening on stream socket: %w", err)
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	b.logger.Info("stream socket listening", "path", socketPath)
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accepting stream connection: %w", err)
		}
		go b.serveSubscriber(conn)
	}
}

func (b *broadcaster) serveSubscriber(conn net.Conn) {
	defer conn.Close()

	b.mu.Lock()
	hello, err := codec.Marshal(b.snapshot)
	if err != nil {
		b.mu.Unlock()
		b.logger.Error("encoding hello snapshot failed", "error", err)
		return
	}
	id := b.nextID
	b.nextID++
	sub := &subscriber{conn: conn, frames: make(chan wire.Frame, subscriberQueueSize)}
	b.subscribers[id] = sub
	b.mu.Unlock()

	b.logger.Info("stream subscriber connected", "subscriber", id)
	defer func() {
		b.mu.Lock()
		if _, live := b.subscribers[id]; live {
			delete(b.subscribers, id)
			close(sub.frames)
		}
		b.mu.Unlock()
		b.logger.Info("stream subscriber disconnected", "subscriber", id)
	}()

	// Subscribers never send; a read unblocking means the peer hung up.
	go func() {
		io.Copy(io.Discard, conn)
		conn.Close()
	}()

	if err := wire.WriteFrame(conn, wire.Frame{Type: wire.FrameTypeHello, Payload: hello}); err != nil {
		b.logger.Debug("hello frame write failed", "subscriber", id, "error", err)
		return
	}
	for frame := range sub.frames {
		if err := wire.WriteFrame(conn, frame); err != nil {
			b.logger.Debug("frame write failed", "subscriber", id, "error", err)
			return
		}
	}
}
