// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package bubble

// AddSummaryToSuppress records that the group's summary notification
// is hidden from the shade while its bubble children remain active.
// An empty group key is a logged no-op.
func (c *Collection) AddSummaryToSuppress(groupKey, notifKey string) {
	if groupKey == "" {
		c.logger.Warn("refusing to suppress summary with empty group key", "key", notifKey)
		return
	}
	c.suppressedSummaries[groupKey] = notifKey
}

// RemoveSuppressedSummary clears the suppression entry for the group,
// returning the suppressed summary's notification key and whether an
// entry existed.
func (c *Collection) RemoveSuppressedSummary(groupKey string) (string, bool) {
	notifKey, ok := c.suppressedSummaries[groupKey]
	if ok {
		delete(c.suppressedSummaries, groupKey)
	}
	return notifKey, ok
}

// SummarySuppressed reports whether the group's summary is currently
// suppressed from the shade.
func (c *Collection) SummarySuppressed(groupKey string) bool {
	if groupKey == "" {
		return false
	}
	_, ok := c.suppressedSummaries[groupKey]
	return ok
}

// SummaryKey returns the suppressed summary's notification key for
// the group, empty when none is suppressed.
func (c *Collection) SummaryKey(groupKey string) string {
	return c.suppressedSummaries[groupKey]
}

// KeySuppressed reports whether notifKey is the notification key of
// any currently suppressed summary.
func (c *Collection) KeySuppressed(notifKey string) bool {
	for _, key := range c.suppressedSummaries {
		if key == notifKey {
			return true
		}
	}
	return false
}
