// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package notif

import (
	"encoding/binary"
	"time"

	"github.com/zeebo/blake3"
)

// Importance is the notification's interruption level, as reported by
// the ranking pipeline. Higher values interrupt harder.
type Importance int

const (
	// ImportanceNone suppresses the notification everywhere.
	ImportanceNone Importance = 0
	// ImportanceMin shows the notification silently, collapsed.
	ImportanceMin Importance = 1
	// ImportanceLow shows the notification without sound.
	ImportanceLow Importance = 2
	// ImportanceDefault shows the notification with sound.
	ImportanceDefault Importance = 3
	// ImportanceHigh peeks the notification onto the screen. Bubbles
	// created at this level or above are marked as interruptions.
	ImportanceHigh Importance = 4
)

// Intent describes the content surface a bubble opens when expanded.
// Target names an activity in "package/Activity" form; the resolver
// decides whether that activity exists and is resizable.
type Intent struct {
	Target string `cbor:"target"`
}

// ActivityInfo is the resolver's description of an intent target.
type ActivityInfo struct {
	// Target echoes the resolved activity name.
	Target string

	// Resizable reports whether the activity declares itself
	// resizable. Non-resizable activities cannot back a bubble.
	Resizable bool
}

// Resolver resolves a bubble intent to its target activity. The
// bubble pipeline treats resolution as fast and local — it runs on
// the control goroutine.
type Resolver interface {
	// Resolve returns the activity info for the intent, or an error
	// if the target does not resolve. Resolution failure is a normal
	// eligibility rejection, never escalated.
	Resolve(intent *Intent) (*ActivityInfo, error)
}

// Entry is one notification as seen by the bubble pipeline: the
// fields the controller needs to decide eligibility, group
// membership, and what the viewer renders. It is a read-mostly
// snapshot — producers send a new Entry on every update.
type Entry struct {
	// Key uniquely identifies the notification. A bubble shares its
	// notification's key.
	Key string

	// GroupKey identifies the notification group this entry belongs
	// to. Empty for ungrouped notifications.
	GroupKey string

	// Package is the posting application's package name.
	Package string

	// UserID is the posting user.
	UserID int

	// Importance is the ranking pipeline's interruption level.
	Importance Importance

	// Title and Text are the rendered content for the stack flyout
	// and the expanded view.
	Title string
	Text  string

	// Posted is when the notification was posted.
	Posted time.Time

	// FlagBubble reports that the ranking pipeline decided this
	// notification should be presented as a bubble.
	FlagBubble bool

	// GroupSummary marks the entry as its group's summary
	// notification.
	GroupSummary bool

	// AutoGroupSummary marks a summary that was synthesized by the
	// notification pipeline rather than posted by the app. Synthetic
	// summaries have no independent existence to protect, so they are
	// never suppression-intercepted.
	AutoGroupSummary bool

	// Intent is the bubble content intent, nil when the notification
	// carries none. A nil intent fails eligibility.
	Intent *Intent
}

// ContentHash returns a BLAKE3 hash of the entry fields that affect
// bubble presentation. The controller compares hashes across update
// signals to skip diff production for notifications that did not
// actually change.
func (e *Entry) ContentHash() [32]byte {
	hasher := blake3.New()
	writeString := func(s string) {
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(s)))
		hasher.Write(length[:])
		hasher.Write([]byte(s))
	}
	writeString(e.Key)
	writeString(e.GroupKey)
	writeString(e.Package)
	writeString(e.Title)
	writeString(e.Text)

	var fixed [8]byte
	binary.BigEndian.PutUint32(fixed[0:4], uint32(e.UserID))
	fixed[4] = byte(e.Importance)
	fixed[5] = boolByte(e.FlagBubble)
	fixed[6] = boolByte(e.GroupSummary)
	fixed[7] = boolByte(e.AutoGroupSummary)
	hasher.Write(fixed[:])

	if e.Intent != nil {
		writeString(e.Intent.Target)
	}

	var sum [32]byte
	hasher.Digest().Read(sum[:])
	return sum
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
