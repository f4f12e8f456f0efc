package session

import "errors"

var (
	// ErrDuplicateFeed is returned when a feed label is already registered.
	// Labels are compared case-sensitively.
	ErrDuplicateFeed = errors.New("feed already exists")

	// ErrFeedNotFound is returned for operations on an unregistered label.
	ErrFeedNotFound = errors.New("feed not found")

	// ErrMalformedState is wrapped by Restore when parts of a saved
	// snapshot could not be applied. The registry keeps whatever was valid.
	ErrMalformedState = errors.New("malformed saved state")
)
