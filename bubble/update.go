// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package bubble

// Removal pairs a removed bubble with the reason it left the
// collection.
type Removal struct {
	Bubble *Bubble
	Reason DismissReason
}

// Update is the diff produced by one Collection mutation. A single
// mutation may populate several fields (for example, adding a bubble
// can also evict an aged one and change the selection), but one
// mutation never produces more than one Update.
//
// Consumers must apply the fields in this fixed order:
//
//  1. added bubble
//  2. collapse, if expansion turned off
//  3. removals, in slice order
//  4. updated bubble
//  5. order change
//  6. selection change
//  7. expand, if expansion turned on
//
// Collapsing before removals and expanding last keeps the
// presentation from animating against bubbles that are about to
// disappear. The wire package's payload type carries this ordering to
// remote viewers.
type Update struct {
	// Added is a bubble newly asserted visible, nil otherwise.
	Added *Bubble

	// Removed lists bubbles that left the collection, in removal
	// order, each with its dismiss reason.
	Removed []Removal

	// Updated is an existing bubble whose content changed, nil
	// otherwise.
	Updated *Bubble

	// OrderChanged reports that the stack order changed. Bubbles
	// always carries the post-mutation order regardless.
	OrderChanged bool

	// Bubbles is a snapshot of the collection's order after the
	// mutation, front (most recent) first.
	Bubbles []*Bubble

	// SelectionChanged reports that Selected differs from the
	// pre-mutation selection. Selected may be nil when the collection
	// emptied.
	SelectionChanged bool
	Selected         *Bubble

	// ExpandedChanged reports that Expanded differs from the
	// pre-mutation expansion state.
	ExpandedChanged bool
	Expanded        bool
}

// empty reports whether the mutation changed nothing worth
// announcing. Mutations return nil instead of an empty Update, so
// this is an internal guard.
func (u *Update) empty() bool {
	return u.Added == nil &&
		len(u.Removed) == 0 &&
		u.Updated == nil &&
		!u.OrderChanged &&
		!u.SelectionChanged &&
		!u.ExpandedChanged
}
