package domain

import "regexp"

// rootNameRe restricts root names to charset that is safe in file paths,
// env vars and URLs alike.
var rootNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// StorageRoot describes one independently configured storage location.
// Roots are defined by configuration; the engine only consumes them.
type StorageRoot struct {
	// Name is the display identifier, e.g. "work" or "personal".
	Name string

	// Path is the filesystem location of the root directory.
	Path string

	// IsCurrent marks the root new bookmarks default to.
	IsCurrent bool

	// IsDefault marks the root selected when configuration is reset.
	IsDefault bool
}

// Validate checks the descriptor fields. Path accessibility is checked
// separately by the storage manager at initialization time.
func (r StorageRoot) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if !rootNameRe.MatchString(r.Name) {
		return &ValidationError{
			Field:  "name",
			Reason: "must contain only letters, numbers, dashes, and underscores",
		}
	}
	if r.Path == "" {
		return &ValidationError{Field: "path", Reason: "cannot be empty"}
	}
	return nil
}
