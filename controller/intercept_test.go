// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"fmt"
	"testing"
)

// TestDecideRemovalMatrix walks the full classification space. The
// summary branch shadows the bubble branch, so the table enumerates
// every combination and states each verdict explicitly.
func TestDecideRemovalMatrix(t *testing.T) {
	boolValues := []bool{false, true}

	expect := func(f removalFacts) removalAction {
		switch {
		case f.isSummaryOfBubbles && f.userRemoved && f.autoSummary:
			return actionHideChildren
		case f.isSummaryOfBubbles && f.userRemoved:
			return actionSuppressSummary
		case f.isSummaryOfBubbles && f.userCreated:
			return actionProtectSummary
		case f.isSummaryOfBubbles:
			return actionCancelGroup
		case f.isBubble && f.userRemoved:
			return actionHideFromShade
		case f.isBubble && f.userCreated:
			return actionSpareBubble
		case f.isBubble:
			return actionRemoveBubble
		default:
			return actionProceed
		}
	}

	for _, isBubble := range boolValues {
		for _, isSummary := range boolValues {
			for _, userRemoved := range boolValues {
				for _, userCreated := range boolValues {
					for _, autoSummary := range boolValues {
						facts := removalFacts{
							isBubble:           isBubble,
							isSummaryOfBubbles: isSummary,
							userRemoved:        userRemoved,
							userCreated:        userCreated,
							autoSummary:        autoSummary,
						}
						name := fmt.Sprintf("bubble=%v_summary=%v_user=%v_created=%v_auto=%v",
							isBubble, isSummary, userRemoved, userCreated, autoSummary)
						t.Run(name, func(t *testing.T) {
							got := decideRemoval(facts)
							if want := expect(facts); got != want {
								t.Errorf("decideRemoval(%+v) = %v, want %v", facts, got, want)
							}
						})
					}
				}
			}
		}
	}
}

func TestRemovalActionIntercepted(t *testing.T) {
	intercepting := map[removalAction]bool{
		actionProceed:         false,
		actionHideFromShade:   true,
		actionRemoveBubble:    false,
		actionSpareBubble:     false,
		actionSuppressSummary: true,
		actionHideChildren:    false,
		actionProtectSummary:  true,
		actionCancelGroup:     false,
	}
	for action, want := range intercepting {
		if got := action.intercepted(); got != want {
			t.Errorf("%v.intercepted() = %v, want %v", action, got, want)
		}
	}
}

func TestRemovalActionString(t *testing.T) {
	if got := actionSuppressSummary.String(); got != "suppress-summary" {
		t.Errorf("String() = %q, want suppress-summary", got)
	}
	if got := removalAction(99).String(); got != "invalid" {
		t.Errorf("String() for unknown action = %q, want invalid", got)
	}
}
