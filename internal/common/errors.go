package common

import "errors"

// Pipeline error taxonomy. Repositories map storage-level failures onto
// these so handlers can translate them with errors.Is.
var (
	// ErrUserNotFound: the referenced actor or recipient does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrForumNotFound: the resource an event targets cannot be resolved
	// to an owner. No notification is created in that case.
	ErrForumNotFound = errors.New("forum not found")

	// ErrNotificationNotFound: a lookup by id missed, including records
	// whose visibility delay has not elapsed yet.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidEvent: malformed event input (missing required fields).
	ErrInvalidEvent = errors.New("invalid notification event")

	// ErrStoreUnavailable: the persistence layer failed. The caller must
	// not assume the notification was recorded or will be delivered.
	ErrStoreUnavailable = errors.New("notification store unavailable")
)
