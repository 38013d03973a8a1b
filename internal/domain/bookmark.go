package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// MaxKeywords bounds the keywords list. Keywords are ordered by priority,
// so a small cap keeps the first entries meaningful.
const MaxKeywords = 4

// Bookmark is a single stored record. One bookmark maps to one YAML file
// inside the bookmarks/ directory of its storage root.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier (UUID).
	// Assigned once at creation, never reassigned.
	ID string `yaml:"id" json:"id"`

	// URL is the bookmarked address.
	URL string `yaml:"url" json:"url"`

	// StorageRoot names the root that owns this bookmark.
	// Set at creation, changed only by an explicit move.
	StorageRoot string `yaml:"storage_root" json:"storage_root"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// Title is the human-readable name. Never empty after normalization.
	Title string `yaml:"title" json:"title"`

	// Keywords is an ordered priority list used for recall, max MaxKeywords.
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`

	// Description holds free-form user notes.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Tags are user-defined labels.
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`

	// FolderPath is a virtual hierarchy path like "development/go".
	// Must never escape the storage root.
	FolderPath string `yaml:"folder_path,omitempty" json:"folder_path,omitempty"`

	CreatedAt    time.Time  `yaml:"created_at" json:"created_at"`
	LastModified *time.Time `yaml:"last_modified,omitempty" json:"last_modified,omitempty"`
	LastAccessed *time.Time `yaml:"last_accessed,omitempty" json:"last_accessed,omitempty"`

	// ─────────────────────────────
	// Soft delete
	// ─────────────────────────────

	// Deleted marks a bookmark as soft-deleted. DeletedAt is set iff Deleted.
	Deleted   bool       `yaml:"deleted" json:"deleted"`
	DeletedAt *time.Time `yaml:"deleted_at,omitempty" json:"deleted_at,omitempty"`

	// ─────────────────────────────
	// Asset references (opaque to the engine)
	// ─────────────────────────────

	FaviconPath    string `yaml:"favicon_path,omitempty" json:"favicon_path,omitempty"`
	ScreenshotPath string `yaml:"screenshot_path,omitempty" json:"screenshot_path,omitempty"`
}

// Normalize trims the title and drops empty entries from keywords and tags.
// Call before Validate.
func (b *Bookmark) Normalize() {
	b.Title = strings.TrimSpace(b.Title)
	b.Keywords = filterEmpty(b.Keywords)
	b.Tags = filterEmpty(b.Tags)
	b.FolderPath = strings.TrimSpace(b.FolderPath)
}

// Validate checks the bookmark against the model invariants.
// It returns a *ValidationError describing the first violation found.
func (b *Bookmark) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return &ValidationError{Field: "title", Reason: "cannot be empty or whitespace"}
	}
	if err := validateURL(b.URL); err != nil {
		return err
	}
	if len(b.Keywords) > MaxKeywords {
		return &ValidationError{
			Field:  "keywords",
			Reason: fmt.Sprintf("maximum %d keywords allowed, got %d", MaxKeywords, len(b.Keywords)),
		}
	}
	if err := validateFolderPath(b.FolderPath); err != nil {
		return err
	}
	if b.Deleted && b.DeletedAt == nil {
		return &ValidationError{Field: "deleted_at", Reason: "must be set when deleted is true"}
	}
	if !b.Deleted && b.DeletedAt != nil {
		return &ValidationError{Field: "deleted_at", Reason: "must be unset when deleted is false"}
	}
	return nil
}

// Clone returns a deep copy. The storage engine hands out clones only,
// so callers can never mutate indexed state through a returned bookmark.
func (b *Bookmark) Clone() *Bookmark {
	if b == nil {
		return nil
	}
	out := *b
	if b.Keywords != nil {
		out.Keywords = append([]string(nil), b.Keywords...)
	}
	if b.Tags != nil {
		out.Tags = append([]string(nil), b.Tags...)
	}
	out.LastModified = cloneTime(b.LastModified)
	out.LastAccessed = cloneTime(b.LastAccessed)
	out.DeletedAt = cloneTime(b.DeletedAt)
	return &out
}

func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{Field: "url", Reason: "cannot be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: "url", Reason: "not a valid URL"}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "url", Reason: "must be an absolute http(s) URL"}
	}
	return nil
}

// validateFolderPath rejects anything that could escape the storage root.
func validateFolderPath(p string) error {
	if p == "" {
		return nil
	}
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "\\") {
		return &ValidationError{Field: "folder_path", Reason: "cannot start with a path separator"}
	}
	if strings.Contains(p, "..") {
		return &ValidationError{Field: "folder_path", Reason: "cannot contain '..'"}
	}
	return nil
}

func filterEmpty(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
