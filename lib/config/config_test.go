// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buoy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	cfg.Bubbles.ActivitiesFile = "/etc/buoy/activities.jsonc"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate on defaults: %v", err)
	}
	if cfg.Bubbles.MaxBubbles != 5 {
		t.Errorf("MaxBubbles = %d, want 5", cfg.Bubbles.MaxBubbles)
	}
}

func TestLoadFileMergesOntoDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: development
sockets:
  signal: /tmp/buoy-test/signal.sock
bubbles:
  max_bubbles: 3
  auto_bubble_packages: [com.example.auto]
  activities_file: /tmp/buoy-test/activities.jsonc
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Sockets.Signal != "/tmp/buoy-test/signal.sock" {
		t.Errorf("Signal = %q", cfg.Sockets.Signal)
	}
	if cfg.Sockets.Stream == "" {
		t.Error("Stream default lost in merge")
	}
	if cfg.Bubbles.MaxBubbles != 3 {
		t.Errorf("MaxBubbles = %d, want 3", cfg.Bubbles.MaxBubbles)
	}
	if len(cfg.Bubbles.AutoBubblePackages) != 1 || cfg.Bubbles.AutoBubblePackages[0] != "com.example.auto" {
		t.Errorf("AutoBubblePackages = %v", cfg.Bubbles.AutoBubblePackages)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: production
bubbles:
  activities_file: /etc/buoy/activities.jsonc
log:
  level: info
production:
  log:
    level: warn
    format: json
  journal:
    enabled: true
    path: /var/lib/buoy/updates.journal
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("log = %s/%s, want warn/json", cfg.Log.Level, cfg.Log.Format)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Path != "/var/lib/buoy/updates.journal" {
		t.Errorf("journal = %+v, want production override", cfg.Journal)
	}

	// A development section is ignored under production.
	path = writeConfig(t, `
environment: production
bubbles:
  activities_file: /etc/buoy/activities.jsonc
development:
  log:
    level: debug
`)
	cfg, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Log.Level)
	}
}

func TestVariableExpansion(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	path := writeConfig(t, `
sockets:
  signal: ${HOME}/.cache/buoy/signal.sock
  stream: ${BUOY_MISSING:-/tmp/stream.sock}
bubbles:
  activities_file: ${HOME}/activities.jsonc
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Sockets.Signal != "/home/tester/.cache/buoy/signal.sock" {
		t.Errorf("Signal = %q", cfg.Sockets.Signal)
	}
	if cfg.Sockets.Stream != "/tmp/stream.sock" {
		t.Errorf("Stream = %q, want default expansion", cfg.Sockets.Stream)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad environment", func(c *Config) { c.Environment = "staging" }, "invalid environment"},
		{"missing activities", func(c *Config) { c.Bubbles.ActivitiesFile = "" }, "activities_file"},
		{"zero max bubbles", func(c *Config) { c.Bubbles.MaxBubbles = 0 }, "max_bubbles"},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad flush interval", func(c *Config) {
			c.Journal.Enabled = true
			c.Journal.FlushInterval = "fast"
		}, "flush_interval"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Bubbles.ActivitiesFile = "/etc/buoy/activities.jsonc"
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted invalid config")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestParseFlushInterval(t *testing.T) {
	journal := JournalConfig{FlushInterval: "250ms"}
	d, err := journal.ParseFlushInterval()
	if err != nil {
		t.Fatalf("ParseFlushInterval: %v", err)
	}
	if d != 250*time.Millisecond {
		t.Errorf("interval = %v, want 250ms", d)
	}
}
