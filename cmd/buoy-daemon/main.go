// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Buoy-daemon is the bubble engine process. It owns the bubble
// collection and runs the reconciliation loop that decides which
// notifications surface as bubbles, which stay hidden from the shade,
// and what the stack looks like after every event.
//
// Two unix sockets face the outside:
//
//   - the signal socket takes one CBOR request per connection from
//     notification producers and viewers (entry lifecycle, ranking,
//     removal interception queries, user gestures);
//   - the stream socket pushes framed stack updates to subscribed
//     viewers, starting with a hello snapshot.
//
// Intent resolution comes from a static JSONC activity registry named
// in the config file. When journaling is enabled, every applied update
// is also appended to a zstd-compressed CBOR journal for replay.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"

	"github.com/buoy-foundation/buoy/bubble"
	"github.com/buoy-foundation/buoy/controller"
	"github.com/buoy-foundation/buoy/lib/clock"
	"github.com/buoy-foundation/buoy/lib/config"
	"github.com/buoy-foundation/buoy/lib/journal"
	"github.com/buoy-foundation/buoy/lib/version"
	"github.com/buoy-foundation/buoy/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("buoy-daemon", pflag.ContinueOnError)
	configPath := flags.String("config", "", "config file (default: $BUOY_CONFIG)")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("buoy-daemon %s\n", version.Info())
		return nil
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	registry, err := config.ReadActivities(cfg.Bubbles.ActivitiesFile)
	if err != nil {
		return err
	}
	logger.Info("activity registry loaded",
		"path", cfg.Bubbles.ActivitiesFile,
		"activities", len(registry.Activities))

	var journalWriter *journal.Writer
	if cfg.Journal.Enabled {
		interval, err := cfg.Journal.ParseFlushInterval()
		if err != nil {
			return err
		}
		journalWriter, err = journal.Open(cfg.Journal.Path, journal.Options{
			FlushInterval: interval,
			Logger:        logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := journalWriter.Close(); err != nil {
				logger.Warn("closing journal failed", "error", err)
			}
		}()
		logger.Info("journaling updates", "path", cfg.Journal.Path, "flush_interval", interval)
	}

	store := newEntryStore(logger)
	caster := newBroadcaster(logger, clock.Real(), journalWriter)
	collection := bubble.NewCollection(bubble.Options{
		Logger:     logger,
		MaxBubbles: cfg.Bubbles.MaxBubbles,
	})
	ctrl, err := controller.New(controller.Options{
		Collection:         collection,
		Shade:              store,
		Groups:             store,
		Reporter:           store,
		Resolver:           registry,
		Presenter:          caster,
		Logger:             logger,
		CurrentUser:        cfg.Bubbles.CurrentUser,
		AutoBubblePackages: cfg.Bubbles.AutoBubblePackages,
	})
	if err != nil {
		return err
	}

	server := wire.NewServer(cfg.Sockets.Signal, logger)
	registerHandlers(server, ctrl, store)

	logger.Info("buoy-daemon starting",
		"version", version.Short(),
		"environment", cfg.Environment,
		"max_bubbles", cfg.Bubbles.MaxBubbles,
		"user", cfg.Bubbles.CurrentUser)

	errs := make(chan error, 3)
	go func() { errs <- ctrl.Run(ctx) }()
	go func() { errs <- server.Serve(ctx) }()
	go func() { errs <- caster.Serve(ctx, cfg.Sockets.Stream) }()

	err = <-errs
	stop()
	if err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("buoy-daemon shutting down")
	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
