// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// buoy-viewer is a terminal UI for the buoy daemon's bubble stack. It
// subscribes to the daemon's stream socket, replays the hello snapshot
// plus live update frames into a local stack replica, and turns
// keystrokes into signal-socket gestures (select, expand, collapse,
// dismiss, demote). The engine decides everything; the viewer only
// renders and requests.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/buoy-foundation/buoy/lib/config"
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
	var streamSocket string
	var signalSocket string
	var configPath string

	flagSet := pflag.NewFlagSet("buoy-viewer", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "config file for socket defaults (default: $BUOY_CONFIG)")
	flagSet.StringVar(&streamSocket, "stream-socket", "", "daemon stream socket (overrides config)")
	flagSet.StringVar(&signalSocket, "signal-socket", "", "daemon signal socket (overrides config)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other buoy binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("buoy-viewer %s\n", version.Info())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}
	if termenv.NewOutput(os.Stdout).Profile == termenv.Ascii {
		fmt.Fprintln(os.Stderr, "warning: terminal reports no color support")
	}

	if streamSocket == "" || signalSocket == "" {
		var cfg *config.Config
		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if streamSocket == "" {
			streamSocket = cfg.Sockets.Stream
		}
		if signalSocket == "" {
			signalSocket = cfg.Sockets.Signal
		}
	}

	stream, err := wire.DialStream(streamSocket)
	if err != nil {
		return fmt.Errorf("connecting to stream socket: %w (is buoy-daemon running?)", err)
	}
	defer stream.Close()

	frames := make(chan wire.Frame)
	go func() {
		defer close(frames)
		for {
			frame, err := stream.Next()
			if err != nil {
				return
			}
			frames <- frame
		}
	}()

	model := NewModel(wire.NewClient(signalSocket), frames)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Buoy stack viewer — interactive terminal UI for the bubble stack.

Connects to a running buoy-daemon: the stream socket supplies a hello
snapshot and live stack updates, and keystrokes are sent back as
signals on the signal socket. Socket paths come from the config file
(--config or $BUOY_CONFIG) unless overridden by flags.

Usage:
  buoy-viewer [flags]

Examples:
  # Connect using the default config
  buoy-viewer

  # Connect to a development daemon
  buoy-viewer --stream-socket /tmp/buoy-dev/stream.sock --signal-socket /tmp/buoy-dev/signal.sock

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
