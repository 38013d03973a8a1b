package storage

import (
	"sync"

	"github.com/hoardapp/hoard/internal/domain"
)

// Stats summarizes one root's index and its load diagnostics.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Deleted   int `json:"deleted"`
	Errors    int `json:"errors"`
	Conflicts int `json:"conflicts"`
}

// ListFilter narrows List results.
type ListFilter struct {
	// IncludeDeleted keeps soft-deleted bookmarks in the result.
	IncludeDeleted bool

	// Folder, when non-nil, keeps only bookmarks whose folder path
	// matches exactly.
	Folder *string
}

// rootIndex is the in-memory index for one storage root.
//
// It is ephemeral and derived entirely from disk contents: rebuilt on
// every process start, never persisted. The manager owns it exclusively;
// everything that leaves is a clone, never a handle into the map.
type rootIndex struct {
	mu sync.RWMutex

	records map[string]*domain.Bookmark // ID -> record
	sources map[string]string           // ID -> source filename

	loadErrors []string // per-file load failures, accumulated during load
	conflicts  []string // duplicate-ID resolutions, accumulated during load
}

func newRootIndex() *rootIndex {
	return &rootIndex{
		records: make(map[string]*domain.Bookmark),
		sources: make(map[string]string),
	}
}

func (idx *rootIndex) get(id string) (*domain.Bookmark, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	b, ok := idx.records[id]
	return b.Clone(), ok
}

// put inserts or replaces a record and remembers its source filename.
func (idx *rootIndex) put(b *domain.Bookmark, source string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.records[b.ID] = b.Clone()
	idx.sources[b.ID] = source
}

func (idx *rootIndex) remove(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.records, id)
	delete(idx.sources, id)
}

func (idx *rootIndex) source(id string) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	s, ok := idx.sources[id]
	return s, ok
}

func (idx *rootIndex) list(filter ListFilter) []*domain.Bookmark {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.Bookmark, 0, len(idx.records))
	for _, b := range idx.records {
		if b.Deleted && !filter.IncludeDeleted {
			continue
		}
		if filter.Folder != nil && b.FolderPath != *filter.Folder {
			continue
		}
		out = append(out, b.Clone())
	}
	return out
}

func (idx *rootIndex) stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	s := Stats{
		Total:     len(idx.records),
		Errors:    len(idx.loadErrors),
		Conflicts: len(idx.conflicts),
	}
	for _, b := range idx.records {
		if b.Deleted {
			s.Deleted++
		}
	}
	s.Active = s.Total - s.Deleted
	return s
}

func (idx *rootIndex) appendLoadError(msg string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.loadErrors = append(idx.loadErrors, msg)
}

func (idx *rootIndex) appendConflict(msg string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.conflicts = append(idx.conflicts, msg)
}

func (idx *rootIndex) conflictLog() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]string(nil), idx.conflicts...)
}

func (idx *rootIndex) loadErrorLog() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]string(nil), idx.loadErrors...)
}
