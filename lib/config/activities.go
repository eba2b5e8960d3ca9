// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/buoy-foundation/buoy/notif"
)

// ActivityRegistry is the static activity table backing intent
// resolution. It is authored on disk as a JSONC file (JSON extended
// with // line comments, /* block comments */, and trailing commas)
// so deployments can annotate why an activity is or is not resizable.
type ActivityRegistry struct {
	Activities []ActivityDef `json:"activities"`

	byTarget map[string]*ActivityDef
}

// ActivityDef declares one resolvable activity.
type ActivityDef struct {
	// Target is the activity name in "package/Activity" form.
	Target string `json:"target"`

	// Resizable reports whether the activity can back a bubble's
	// expanded content.
	Resizable bool `json:"resizable"`
}

// ParseActivities strips JSONC comments and trailing commas from
// data, then unmarshals and indexes the registry.
func ParseActivities(data []byte) (*ActivityRegistry, error) {
	stripped := jsonc.ToJSON(data)

	var registry ActivityRegistry
	if err := json.Unmarshal(stripped, &registry); err != nil {
		return nil, fmt.Errorf("parsing activity registry: %w", err)
	}

	registry.byTarget = make(map[string]*ActivityDef, len(registry.Activities))
	for i := range registry.Activities {
		def := &registry.Activities[i]
		if def.Target == "" {
			return nil, fmt.Errorf("activity %d: target is required", i)
		}
		if _, exists := registry.byTarget[def.Target]; exists {
			return nil, fmt.Errorf("duplicate activity target %q", def.Target)
		}
		registry.byTarget[def.Target] = def
	}
	return &registry, nil
}

// ReadActivities reads a JSONC activity registry from disk.
func ReadActivities(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	registry, err := ParseActivities(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return registry, nil
}

// Resolve implements notif.Resolver against the static table.
func (r *ActivityRegistry) Resolve(intent *notif.Intent) (*notif.ActivityInfo, error) {
	def, ok := r.byTarget[intent.Target]
	if !ok {
		return nil, fmt.Errorf("no activity registered for %q", intent.Target)
	}
	return &notif.ActivityInfo{Target: def.Target, Resizable: def.Resizable}, nil
}
