// Package notify decides when a refresh result deserves a user-facing
// alert.
package notify

// ShouldNotify reports whether the arrival of newCount links on a feed
// should surface an alert. Alerts exist to call attention to feeds the
// user is not looking at: the currently viewed feed never notifies, and
// neither does a manual refresh, since the user asked for it and is
// watching.
func ShouldNotify(newCount int, viewed, auto bool) bool {
	return newCount > 0 && !viewed && auto
}
