package storage

import "errors"

// Sentinel errors for the storage engine. Callers match them with errors.Is.
var (
	// ErrNotFound reports that no bookmark with the requested ID exists
	// in the addressed root(s).
	ErrNotFound = errors.New("bookmark not found")

	// ErrRootNotFound reports that the named storage root is not configured.
	ErrRootNotFound = errors.New("storage root not found")

	// ErrLockTimeout reports that the file lock could not be acquired
	// within the configured timeout.
	ErrLockTimeout = errors.New("file lock timeout")

	// ErrMalformed reports that a byte stream is not a valid bookmark
	// encoding at all.
	ErrMalformed = errors.New("malformed bookmark record")

	// ErrMissingField reports a well-formed encoding that lacks one of the
	// required fields (id, url, title, storage_root).
	ErrMissingField = errors.New("missing required field")
)
