package bookmarks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hoardapp/hoard/internal/domain"
	"github.com/hoardapp/hoard/internal/logger"
	"github.com/hoardapp/hoard/internal/storage"
)

// Service implements the bookmark lifecycle on top of the storage manager:
// Active -> Delete -> SoftDeleted -> Restore -> Active, with Purge as the
// only exit and only from the soft-deleted state.
//
// Every mutation fetches the current record first, so each transition is
// a function of the prior state plus inputs.
type Service struct {
	storage *storage.Manager
	log     logger.Logger
	now     func() time.Time // injectable clock for tests
}

// NewService creates a lifecycle service over the given storage manager.
func NewService(st *storage.Manager, log logger.Logger) *Service {
	return &Service{
		storage: st,
		log:     log,
		now:     time.Now,
	}
}

// CreateInput carries the caller-supplied fields for a new bookmark.
type CreateInput struct {
	URL         string
	Title       string
	Description string
	Keywords    []string
	Tags        []string
	FolderPath  string

	// Storage names the target root. Empty means the current root.
	Storage string
}

// UpdateInput carries partial overrides for an existing bookmark.
// Nil pointers and nil slices leave the corresponding field untouched.
type UpdateInput struct {
	URL         *string
	Title       *string
	Description *string
	FolderPath  *string
	Keywords    []string
	Tags        []string
}

// Create validates and persists a new bookmark with a fresh ID.
// Validation happens before any disk access.
func (s *Service) Create(in CreateInput) (*domain.Bookmark, error) {
	rootName := in.Storage
	if rootName == "" {
		rootName = s.storage.CurrentRootName()
	}
	if rootName == "" {
		return nil, fmt.Errorf("no storage configured: %w", storage.ErrRootNotFound)
	}

	b := &domain.Bookmark{
		ID:          uuid.NewString(),
		URL:         in.URL,
		Title:       in.Title,
		Description: in.Description,
		Keywords:    in.Keywords,
		Tags:        in.Tags,
		FolderPath:  in.FolderPath,
		CreatedAt:   s.now().UTC(),
		StorageRoot: rootName,
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.Save(b, rootName); err != nil {
		return nil, err
	}

	s.log.Info("created bookmark",
		logger.String("id", b.ID),
		logger.String("storage", rootName))
	return b, nil
}

// Get returns a bookmark by ID, searching all roots when rootName is empty.
func (s *Service) Get(id, rootName string) (*domain.Bookmark, error) {
	return s.storage.Get(id, rootName)
}

// List returns bookmarks matching the filter from one or all roots.
func (s *Service) List(rootName string, filter storage.ListFilter) ([]*domain.Bookmark, error) {
	return s.storage.List(rootName, filter)
}

// Update applies field overrides to an existing bookmark and stamps
// last_modified. ID and owning root never change.
func (s *Service) Update(id, rootName string, in UpdateInput) (*domain.Bookmark, error) {
	b, err := s.storage.Get(id, rootName)
	if err != nil {
		return nil, err
	}

	if in.URL != nil {
		b.URL = *in.URL
	}
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.FolderPath != nil {
		b.FolderPath = *in.FolderPath
	}
	if in.Keywords != nil {
		b.Keywords = in.Keywords
	}
	if in.Tags != nil {
		b.Tags = in.Tags
	}

	now := s.now().UTC()
	b.LastModified = &now

	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.Save(b, b.StorageRoot); err != nil {
		return nil, err
	}

	s.log.Info("updated bookmark", logger.String("id", id))
	return b, nil
}

// Delete soft-deletes a bookmark. The record stays on disk as a tombstone.
func (s *Service) Delete(id, rootName string) (*domain.Bookmark, error) {
	b, err := s.storage.Get(id, rootName)
	if err != nil {
		return nil, err
	}
	if b.Deleted {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyDeleted, id)
	}

	now := s.now().UTC()
	b.Deleted = true
	b.DeletedAt = &now

	if err := s.storage.Save(b, b.StorageRoot); err != nil {
		return nil, err
	}

	s.log.Info("soft deleted bookmark", logger.String("id", id))
	return b, nil
}

// Restore brings a soft-deleted bookmark back to the active state.
func (s *Service) Restore(id, rootName string) (*domain.Bookmark, error) {
	b, err := s.storage.Get(id, rootName)
	if err != nil {
		return nil, err
	}
	if !b.Deleted {
		return nil, fmt.Errorf("%w: %s", ErrNotDeleted, id)
	}

	b.Deleted = false
	b.DeletedAt = nil

	if err := s.storage.Save(b, b.StorageRoot); err != nil {
		return nil, err
	}

	s.log.Info("restored bookmark", logger.String("id", id))
	return b, nil
}

// Purge permanently removes a bookmark. Only soft-deleted bookmarks can
// be purged; afterwards the ID is no longer resolvable.
func (s *Service) Purge(id, rootName string) error {
	b, err := s.storage.Get(id, rootName)
	if err != nil {
		return err
	}
	if !b.Deleted {
		return fmt.Errorf("%w: %s", ErrPurgeNotAllowed, id)
	}

	if err := s.storage.HardDelete(id, b.StorageRoot); err != nil {
		return err
	}

	s.log.Warn("hard deleted bookmark permanently", logger.String("id", id))
	return nil
}

// TrackAccess stamps last_accessed. It deliberately does not touch
// last_modified: reading a bookmark is not an edit.
func (s *Service) TrackAccess(id, rootName string) (*domain.Bookmark, error) {
	b, err := s.storage.Get(id, rootName)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	b.LastAccessed = &now

	if err := s.storage.Save(b, b.StorageRoot); err != nil {
		return nil, err
	}

	s.log.Debug("tracked bookmark access", logger.String("id", id))
	return b, nil
}
