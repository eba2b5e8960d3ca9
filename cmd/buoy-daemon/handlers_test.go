// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/buoy-foundation/buoy/bubble"
	"github.com/buoy-foundation/buoy/controller"
	"github.com/buoy-foundation/buoy/lib/clock"
	"github.com/buoy-foundation/buoy/lib/codec"
	"github.com/buoy-foundation/buoy/lib/config"
	"github.com/buoy-foundation/buoy/lib/testutil"
	"github.com/buoy-foundation/buoy/notif"
	"github.com/buoy-foundation/buoy/wire"
)

// daemonFixture is a full daemon minus main: controller loop, signal
// socket, store, and broadcaster, torn down with the test.
type daemonFixture struct {
	client *wire.Client
	store  *entryStore
	frames chan wire.Frame
}

func startDaemon(t *testing.T) *daemonFixture {
	t.Helper()
	logger := slog.Default()
	fake := clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	registry, err := config.ParseActivities([]byte(`{"activities": [
		{"target": "com.example.chat/Conversation", "resizable": true}
	]}`))
	if err != nil {
		t.Fatalf("ParseActivities: %v", err)
	}

	store := newEntryStore(logger)
	caster := newBroadcaster(logger, fake, nil)
	collection := bubble.NewCollection(bubble.Options{Clock: fake, Logger: logger})
	ctrl, err := controller.New(controller.Options{
		Collection: collection,
		Shade:      store,
		Groups:     store,
		Reporter:   store,
		Resolver:   registry,
		Presenter:  caster,
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("controller.New: %v", err)
	}

	socketPath := filepath.Join(t.TempDir(), "signal.sock")
	server := wire.NewServer(socketPath, logger)
	registerHandlers(server, ctrl, store)

	// Observe applied updates the way a stream viewer would, without
	// the socket in between.
	frames := make(chan wire.Frame, subscriberQueueSize)
	caster.mu.Lock()
	caster.subscribers[0] = &subscriber{frames: frames}
	caster.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go ctrl.Run(ctx)
	go server.Serve(ctx)
	waitForSocket(t, socketPath)

	return &daemonFixture{
		client: wire.NewClient(socketPath),
		store:  store,
		frames: frames,
	}
}

func waitForSocket(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(path); err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("socket %s never appeared", path)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (f *daemonFixture) call(t *testing.T, req wire.SignalRequest, result any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.client.Call(ctx, req, result); err != nil {
		t.Fatalf("call %s: %v", req.Action, err)
	}
}

func (f *daemonFixture) postEntry(t *testing.T, key string) {
	t.Helper()
	payload := wire.EntryFromNotif(&notif.Entry{
		Key:        key,
		Package:    "com.example.chat",
		Importance: notif.ImportanceDefault,
		Posted:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		FlagBubble: true,
		Intent:     &notif.Intent{Target: "com.example.chat/Conversation"},
	})
	f.call(t, wire.SignalRequest{Action: "entry-added", Entry: &payload}, nil)
}

// waitForBubble reads stream frames until an update adds the key.
// Entry signals are fire-and-forget, so the frame is the commit point.
func (f *daemonFixture) waitForBubble(t *testing.T, key string) {
	t.Helper()
	for {
		frame := testutil.RequireReceive(t, f.frames, 5*time.Second, "update adding %s", key)
		if frame.Type != wire.FrameTypeUpdate {
			continue
		}
		var payload wire.UpdatePayload
		if err := codec.Unmarshal(frame.Payload, &payload); err != nil {
			t.Fatalf("decoding update: %v", err)
		}
		if payload.Added != nil && payload.Added.Key == key {
			return
		}
	}
}

func TestDaemonEntryLifecycle(t *testing.T) {
	f := startDaemon(t)

	f.postEntry(t, "n1")
	f.waitForBubble(t, "n1")

	if f.store.Entry("n1") == nil {
		t.Fatal("store lost the entry")
	}

	// A user dismissal of a bubbled row is intercepted: the entry
	// data stays so the bubble can keep rendering.
	var reply wire.BoolReply
	f.call(t, wire.SignalRequest{
		Action: "remove-requested",
		Key:    "n1",
		Reason: int(notif.RemovalCancel),
	}, &reply)
	if !reply.Value {
		t.Fatal("user removal of a bubbled notification was not intercepted")
	}
	if f.store.Entry("n1") == nil {
		t.Error("intercepted removal dropped the entry")
	}

	// The hidden row now reads as suppressed.
	f.call(t, wire.SignalRequest{Action: "suppressed-query", Key: "n1"}, &reply)
	if !reply.Value {
		t.Error("hidden bubble row not reported suppressed")
	}
}

func TestDaemonUninterceptedRemovalForgetsEntry(t *testing.T) {
	f := startDaemon(t)

	f.postEntry(t, "n1")
	f.waitForBubble(t, "n1")

	// Dismiss the bubble first; the later notification removal then
	// proceeds and the mirror forgets the entry.
	f.call(t, wire.SignalRequest{Action: "dismiss", Key: "n1"}, nil)

	var reply wire.BoolReply
	deadline := time.Now().Add(5 * time.Second)
	for {
		f.call(t, wire.SignalRequest{
			Action: "remove-requested",
			Key:    "n1",
			Reason: int(notif.RemovalAppCancel),
		}, &reply)
		if !reply.Value {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("removal still intercepted after bubble dismissal")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if f.store.Entry("n1") != nil {
		t.Error("unintercepted removal left the entry mirrored")
	}
}

func TestDaemonUnknownActionRejected(t *testing.T) {
	f := startDaemon(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := f.client.Call(ctx, wire.SignalRequest{Action: "reticulate"}, nil)
	if err == nil {
		t.Fatal("unknown action accepted")
	}
}

func TestDaemonValidatesRequiredFields(t *testing.T) {
	f := startDaemon(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.client.Call(ctx, wire.SignalRequest{Action: "entry-added"}, nil); err == nil {
		t.Error("entry-added without entry accepted")
	}
	if err := f.client.Call(ctx, wire.SignalRequest{Action: "remove-requested"}, nil); err == nil {
		t.Error("remove-requested without key accepted")
	}
}
