// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for buoy components.
//
// Configuration is loaded from a single file specified by:
//   - BUOY_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. The config file is
// the single source of truth; environment variables do not override
// values. The only expansion performed is ${HOME} and similar path
// variables for portability.
//
// The config file may contain environment-specific sections
// (development, production) that override base values when the
// environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for buoy.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Sockets configures the daemon's unix sockets.
	Sockets SocketsConfig `yaml:"sockets"`

	// Bubbles configures the bubble pipeline.
	Bubbles BubblesConfig `yaml:"bubbles"`

	// Journal configures the update journal.
	Journal JournalConfig `yaml:"journal"`

	// Log configures logging output.
	Log LogConfig `yaml:"log"`

	// Per-environment overrides, applied after the base config loads.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per
// environment.
type ConfigOverrides struct {
	Sockets *SocketsConfig `yaml:"sockets,omitempty"`
	Journal *JournalConfig `yaml:"journal,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
}

// SocketsConfig configures the daemon's unix sockets.
type SocketsConfig struct {
	// Signal is the request-response socket producers and viewers
	// send signals on. Default: ${HOME}/.cache/buoy/signal.sock
	Signal string `yaml:"signal"`

	// Stream is the subscriber socket the daemon pushes update frames
	// on. Default: ${HOME}/.cache/buoy/stream.sock
	Stream string `yaml:"stream"`
}

// BubblesConfig configures the bubble pipeline.
type BubblesConfig struct {
	// MaxBubbles caps the stack size; the oldest bubble is evicted
	// beyond it. Default: 5
	MaxBubbles int `yaml:"max_bubbles"`

	// AutoBubblePackages lists packages whose notifications are
	// promoted to bubbles without the bubble flag.
	AutoBubblePackages []string `yaml:"auto_bubble_packages"`

	// ActivitiesFile is the JSONC activity registry backing intent
	// resolution. Required.
	ActivitiesFile string `yaml:"activities_file"`

	// CurrentUser is the foreground user at startup. Default: 0
	CurrentUser int `yaml:"current_user"`
}

// JournalConfig configures the update journal.
type JournalConfig struct {
	// Enabled turns journal writing on.
	Enabled bool `yaml:"enabled"`

	// Path is the journal file. Default: ${HOME}/.cache/buoy/updates.journal
	Path string `yaml:"path"`

	// FlushInterval is how often buffered records are flushed to
	// disk, as a Go duration string. Default: 5s
	FlushInterval string `yaml:"flush_interval"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is "text" or "json". Default: text
	Format string `yaml:"format"`
}

// Default returns the default configuration. These defaults are the
// base the config file merges onto, not a substitute for it.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "buoy")

	return &Config{
		Environment: Development,
		Sockets: SocketsConfig{
			Signal: filepath.Join(defaultRoot, "signal.sock"),
			Stream: filepath.Join(defaultRoot, "stream.sock"),
		},
		Bubbles: BubblesConfig{
			MaxBubbles:  5,
			CurrentUser: 0,
		},
		Journal: JournalConfig{
			Enabled:       false,
			Path:          filepath.Join(defaultRoot, "updates.journal"),
			FlushInterval: "5s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the BUOY_CONFIG environment variable.
// There is no fallback: if BUOY_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("BUOY_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("BUOY_CONFIG environment variable not set; " +
			"set it to the path of your buoy.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// matching environment overrides, and expands path variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

// applyEnvironmentOverrides applies the environment-specific section.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.Sockets != nil {
		if overrides.Sockets.Signal != "" {
			c.Sockets.Signal = overrides.Sockets.Signal
		}
		if overrides.Sockets.Stream != "" {
			c.Sockets.Stream = overrides.Sockets.Stream
		}
	}
	if overrides.Journal != nil {
		// Enabled is a bool, so it always applies from overrides.
		c.Journal.Enabled = overrides.Journal.Enabled
		if overrides.Journal.Path != "" {
			c.Journal.Path = overrides.Journal.Path
		}
		if overrides.Journal.FlushInterval != "" {
			c.Journal.FlushInterval = overrides.Journal.FlushInterval
		}
	}
	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Format != "" {
			c.Log.Format = overrides.Log.Format
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Sockets.Signal = expandVars(c.Sockets.Signal, vars)
	c.Sockets.Stream = expandVars(c.Sockets.Stream, vars)
	c.Journal.Path = expandVars(c.Journal.Path, vars)
	c.Bubbles.ActivitiesFile = expandVars(c.Bubbles.ActivitiesFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// ParseFlushInterval parses the journal flush interval.
func (c *JournalConfig) ParseFlushInterval() (time.Duration, error) {
	return time.ParseDuration(c.FlushInterval)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if c.Sockets.Signal == "" {
		errs = append(errs, fmt.Errorf("sockets.signal is required"))
	}
	if c.Sockets.Stream == "" {
		errs = append(errs, fmt.Errorf("sockets.stream is required"))
	}
	if c.Bubbles.MaxBubbles <= 0 {
		errs = append(errs, fmt.Errorf("bubbles.max_bubbles must be positive"))
	}
	if c.Bubbles.ActivitiesFile == "" {
		errs = append(errs, fmt.Errorf("bubbles.activities_file is required"))
	}
	if c.Journal.Enabled {
		if c.Journal.Path == "" {
			errs = append(errs, fmt.Errorf("journal.path is required when journal is enabled"))
		}
		if _, err := time.ParseDuration(c.Journal.FlushInterval); err != nil {
			errs = append(errs, fmt.Errorf("journal.flush_interval: %w", err))
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error"))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates the directories behind the configured socket
// and journal paths.
func (c *Config) EnsurePaths() error {
	dirs := map[string]bool{
		filepath.Dir(c.Sockets.Signal): true,
		filepath.Dir(c.Sockets.Stream): true,
	}
	if c.Journal.Enabled {
		dirs[filepath.Dir(c.Journal.Path)] = true
	}
	for dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
