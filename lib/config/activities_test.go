// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"testing"

	"github.com/buoy-foundation/buoy/notif"
)

const activitiesJSONC = `{
	// Conversation surfaces ship resizable by default.
	"activities": [
		{"target": "com.example.chat/Conversation", "resizable": true},
		{"target": "com.example.media/Player", "resizable": false}, // fixed aspect
	],
}`

func TestParseActivitiesJSONC(t *testing.T) {
	registry, err := ParseActivities([]byte(activitiesJSONC))
	if err != nil {
		t.Fatalf("ParseActivities: %v", err)
	}
	if len(registry.Activities) != 2 {
		t.Fatalf("parsed %d activities, want 2", len(registry.Activities))
	}

	info, err := registry.Resolve(&notif.Intent{Target: "com.example.chat/Conversation"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !info.Resizable {
		t.Error("Resizable = false, want true")
	}

	info, err = registry.Resolve(&notif.Intent{Target: "com.example.media/Player"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if info.Resizable {
		t.Error("Resizable = true for fixed-aspect activity")
	}

	if _, err := registry.Resolve(&notif.Intent{Target: "ghost/Activity"}); err == nil {
		t.Error("Resolve accepted an unregistered target")
	}
}

func TestParseActivitiesRejectsDuplicates(t *testing.T) {
	_, err := ParseActivities([]byte(`{"activities": [
		{"target": "a/B", "resizable": true},
		{"target": "a/B", "resizable": false}
	]}`))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error = %v, want duplicate rejection", err)
	}
}

func TestParseActivitiesRequiresTarget(t *testing.T) {
	_, err := ParseActivities([]byte(`{"activities": [{"resizable": true}]}`))
	if err == nil || !strings.Contains(err.Error(), "target is required") {
		t.Errorf("error = %v, want missing-target rejection", err)
	}
}
