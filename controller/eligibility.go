// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package controller

import "github.com/buoy-foundation/buoy/notif"

// eligibility decides whether a notification may become or remain a
// bubble. adjusted reports that the verdict came from the auto-bubble
// package allowlist rather than the notification's own bubble flag.
//
// Every positive verdict still requires a launchable, resizable
// content intent. Failures are rejections, never errors.
func (c *Controller) eligibility(entry *notif.Entry) (eligible, adjusted bool) {
	if c.userBlocked[entry.Key] {
		c.logger.Debug("notification user-blocked from bubbling", "key", entry.Key)
		return false, false
	}
	adjusted = c.autoBubble[entry.Package] && !entry.GroupSummary
	if !adjusted && !entry.FlagBubble && !c.userCreated[entry.Key] {
		return false, false
	}
	return c.canLaunch(entry), adjusted
}

// canLaunch checks that the entry's content intent resolves to a
// resizable activity.
func (c *Controller) canLaunch(entry *notif.Entry) bool {
	if entry.Intent == nil {
		c.logger.Debug("notification has no bubble intent", "key", entry.Key)
		return false
	}
	info, err := c.resolver.Resolve(entry.Intent)
	if err != nil {
		c.logger.Warn("bubble intent did not resolve",
			"key", entry.Key, "target", entry.Intent.Target, "error", err)
		return false
	}
	if !info.Resizable {
		c.logger.Warn("bubble intent target is not resizable",
			"key", entry.Key, "target", info.Target)
		return false
	}
	return true
}
