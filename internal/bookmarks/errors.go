package bookmarks

import "errors"

// Lifecycle policy errors. These are distinct from storage.ErrNotFound:
// the record exists but the requested transition is not allowed from its
// current state.
var (
	// ErrAlreadyDeleted rejects soft-deleting a bookmark twice.
	ErrAlreadyDeleted = errors.New("bookmark is already deleted")

	// ErrNotDeleted rejects restoring a bookmark that is not deleted.
	ErrNotDeleted = errors.New("bookmark is not deleted")

	// ErrPurgeNotAllowed guards permanent removal: a bookmark must be
	// soft-deleted first, so irreversible loss always takes two steps.
	ErrPurgeNotAllowed = errors.New("bookmark must be soft-deleted before permanent removal")
)
