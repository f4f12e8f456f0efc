package tui

import "newsdeck/internal/refresh"

type refreshEventMsg refresh.Event

// statusExpiredMsg clears the transient status line; id guards against a
// stale timer wiping a newer message.
type statusExpiredMsg struct {
	id int
}

type browserErrMsg struct {
	err error
}
