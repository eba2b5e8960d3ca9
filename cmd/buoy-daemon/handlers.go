// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/buoy-foundation/buoy/controller"
	"github.com/buoy-foundation/buoy/notif"
	"github.com/buoy-foundation/buoy/wire"
)

// registerHandlers binds every signal-socket action to the controller
// queue. Fire-and-forget actions return an empty result as soon as the
// signal is queued; the two query actions block on a reply channel the
// controller answers from its loop.
func registerHandlers(server *wire.Server, ctrl *controller.Controller, store *entryStore) {
	submit := func(ctx context.Context, sig controller.Signal) (any, error) {
		if err := ctrl.Submit(ctx, sig); err != nil {
			return nil, err
		}
		return struct{}{}, nil
	}

	server.Handle("entry-added", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		if req.Entry == nil {
			return nil, errors.New("entry-added requires an entry")
		}
		entry := req.Entry.Entry()
		store.Upsert(entry)
		return submit(ctx, controller.EntryAdded{Entry: entry})
	})

	server.Handle("entry-updated", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		if req.Entry == nil {
			return nil, errors.New("entry-updated requires an entry")
		}
		entry := req.Entry.Entry()
		store.Upsert(entry)
		return submit(ctx, controller.EntryUpdated{Entry: entry})
	})

	server.Handle("ranking-updated", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		ranking := make(notif.RankingMap, len(req.Ranking))
		for key, canBubble := range req.Ranking {
			ranking[key] = notif.Ranking{CanBubble: canBubble}
		}
		return submit(ctx, controller.RankingUpdated{Ranking: ranking})
	})

	server.Handle("remove-requested", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		if req.Key == "" {
			return nil, errors.New("remove-requested requires a key")
		}
		reason := notif.RemovalReason(req.Reason)
		if reason.ExplicitUserRemoval() {
			store.MarkRowDismissed(req.Key)
		}
		reply := make(chan bool, 1)
		if err := ctrl.Submit(ctx, controller.RemoveRequested{Key: req.Key, Reason: reason, Reply: reply}); err != nil {
			return nil, err
		}
		select {
		case intercepted := <-reply:
			if !intercepted {
				store.Forget(req.Key)
			}
			return wire.BoolReply{Value: intercepted}, nil
		case <-ctx.Done():
			return nil, fmt.Errorf("awaiting removal verdict for %s: %w", req.Key, ctx.Err())
		}
	})

	server.Handle("suppressed-query", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		if req.Key == "" {
			return nil, errors.New("suppressed-query requires a key")
		}
		reply := make(chan bool, 1)
		if err := ctrl.Submit(ctx, controller.SuppressedQuery{Key: req.Key, Reply: reply}); err != nil {
			return nil, err
		}
		select {
		case suppressed := <-reply:
			return wire.BoolReply{Value: suppressed}, nil
		case <-ctx.Done():
			return nil, fmt.Errorf("awaiting suppression verdict for %s: %w", req.Key, ctx.Err())
		}
	})

	server.Handle("promote", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.PromoteRequested{Key: req.Key})
	})
	server.Handle("demote", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.DemoteRequested{Key: req.Key})
	})
	server.Handle("user-switched", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.UserSwitched{UserID: req.UserID})
	})
	server.Handle("task-front", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.TaskMovedToFront{DisplayID: req.DisplayID})
	})
	server.Handle("back-pressed", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.BackPressed{})
	})
	server.Handle("display-rerouted", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.SecondaryDisplayRerouted{})
	})
	server.Handle("ime-visibility", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.IMEVisibilityChanged{Visible: req.Visible})
	})
	server.Handle("display-drawn", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.DisplayDrawn{DisplayID: req.DisplayID})
	})
	server.Handle("display-emptied", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.DisplayEmptied{DisplayID: req.DisplayID})
	})
	server.Handle("group-suppression-changed", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.GroupSuppressionChanged{GroupKey: req.GroupKey, Suppressed: req.Suppressed})
	})
	server.Handle("policy-changed", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.PolicyChanged{})
	})
	server.Handle("select", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.SelectRequested{Key: req.Key})
	})
	server.Handle("expand", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.ExpandRequested{})
	})
	server.Handle("collapse", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.CollapseRequested{})
	})
	server.Handle("dismiss", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.DismissBubbleRequested{Key: req.Key})
	})
	server.Handle("dismiss-all", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.DismissAllRequested{})
	})
	server.Handle("task-finished", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.TaskFinished{Key: req.Key})
	})
	server.Handle("launch-failed", func(ctx context.Context, req wire.SignalRequest) (any, error) {
		return submit(ctx, controller.ContentLaunchFailed{Key: req.Key})
	})
}
