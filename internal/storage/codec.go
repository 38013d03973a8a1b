package storage

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hoardapp/hoard/internal/domain"
)

// Encode serializes a bookmark to its canonical YAML form.
// URLs and lists are plain scalars and sequences, which keeps record
// files stable and human-diffable.
func Encode(b *domain.Bookmark) ([]byte, error) {
	data, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bookmark %s: %w", b.ID, err)
	}
	return data, nil
}

// Decode parses a bookmark from its YAML form.
//
// Failures are reported as one of two kinds so callers can tell corrupt
// from incomplete: ErrMalformed when the bytes are not a valid encoding,
// ErrMissingField when the document parses but lacks a required field.
func Decode(data []byte) (*domain.Bookmark, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var b domain.Bookmark
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if missing := missingRequiredFields(&b); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	return &b, nil
}

func missingRequiredFields(b *domain.Bookmark) []string {
	var missing []string
	if b.ID == "" {
		missing = append(missing, "id")
	}
	if b.URL == "" {
		missing = append(missing, "url")
	}
	if b.Title == "" {
		missing = append(missing, "title")
	}
	if b.StorageRoot == "" {
		missing = append(missing, "storage_root")
	}
	return missing
}
