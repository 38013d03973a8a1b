package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hoardapp/hoard/internal/domain"
	"github.com/hoardapp/hoard/internal/logger"
)

const (
	// recordExt is the extension of one-record-per-file bookmark files.
	recordExt = ".yaml"

	// bookmarksDir holds record files inside a storage root.
	bookmarksDir = "bookmarks"

	// probeName is the temporary marker used to verify a root is writable.
	probeName = ".hoard_probe"

	// DefaultLockTimeout bounds how long a writer waits for a record's
	// file lock before failing.
	DefaultLockTimeout = 5 * time.Second

	// DefaultConflictLimit caps RecentConflicts when the caller passes
	// a non-positive limit.
	DefaultConflictLimit = 20
)

// assetDirs are created alongside bookmarksDir. The engine never parses
// their contents; bookmarks only carry relative references into them.
var assetDirs = []string{"favicons", "screenshots"}

// Manager owns one in-memory index per configured storage root and
// orchestrates validation, loading, querying, saving, and deleting.
//
// The filesystem is the durable source of truth; every index is a
// disposable cache rebuilt by Initialize or Reload.
type Manager struct {
	log         logger.Logger
	lockTimeout time.Duration

	// reloadMu serializes index rebuilds against writers: a rebuild
	// scans the directory and publishes a fresh index, and a write that
	// lands between the scan and the publish would vanish from the
	// index until the next rescan. Writers share the read side.
	reloadMu sync.RWMutex

	mu      sync.RWMutex
	roots   map[string]domain.StorageRoot
	order   []string // configured order, drives current-root fallback
	indices map[string]*rootIndex
	current string // cached current root name, "" when unresolved
}

// NewManager creates an empty manager. Call Initialize before use.
func NewManager(log logger.Logger, lockTimeout time.Duration) *Manager {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Manager{
		log:         log,
		lockTimeout: lockTimeout,
		roots:       make(map[string]domain.StorageRoot),
		indices:     make(map[string]*rootIndex),
	}
}

// Initialize validates and loads every configured root, in order.
//
// Root validation is strict: the first inaccessible root aborts the whole
// initialization, since serving with an unusable root would hide data.
// Per-file load failures inside a root are tolerated and logged instead.
func (m *Manager) Initialize(roots []domain.StorageRoot) error {
	for _, root := range roots {
		if err := root.Validate(); err != nil {
			return fmt.Errorf("storage %q: %w", root.Name, err)
		}
		if err := validateRootPath(root.Path); err != nil {
			m.log.Error("failed to initialize storage",
				logger.String("storage", root.Name),
				logger.Error(err))
			return fmt.Errorf("storage %q: %w", root.Name, err)
		}

		m.mu.Lock()
		if _, exists := m.roots[root.Name]; !exists {
			m.order = append(m.order, root.Name)
		}
		m.roots[root.Name] = root
		m.mu.Unlock()

		if err := m.loadRoot(root); err != nil {
			m.log.Error("failed to load storage",
				logger.String("storage", root.Name),
				logger.Error(err))
			return fmt.Errorf("storage %q: %w", root.Name, err)
		}
	}

	m.mu.Lock()
	m.current = m.selectCurrentLocked()
	m.mu.Unlock()
	return nil
}

// Reload rebuilds the index of one root from disk.
func (m *Manager) Reload(rootName string) error {
	m.mu.RLock()
	root, ok := m.roots[rootName]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRootNotFound, rootName)
	}
	return m.loadRoot(root)
}

// ReloadAll rebuilds every root's index from disk, in configured order.
func (m *Manager) ReloadAll() error {
	for _, name := range m.RootNames() {
		if err := m.Reload(name); err != nil {
			return err
		}
	}
	return nil
}

// loadRoot ensures the on-disk layout, enumerates record files, and
// absorbs them into a fresh index. A corrupt file never aborts the load:
// it lands in the error log and the scan continues. Duplicate IDs are
// resolved by best-available timestamp, logged as conflicts.
func (m *Manager) loadRoot(root domain.StorageRoot) error {
	// Held across scan and publish so no completed write can fall
	// between the directory enumeration and the index swap.
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	if err := ensureLayout(root.Path); err != nil {
		return err
	}

	idx := newRootIndex()
	dir := filepath.Join(root.Path, bookmarksDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read bookmarks directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != recordExt {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			idx.appendLoadError(fmt.Sprintf("failed to read %s: %v", entry.Name(), err))
			continue
		}

		b, err := Decode(data)
		if err != nil {
			idx.appendLoadError(fmt.Sprintf("failed to decode %s: %v", entry.Name(), err))
			m.log.Warn("skipping unreadable bookmark file",
				logger.String("storage", root.Name),
				logger.String("file", entry.Name()),
				logger.Error(err))
			continue
		}

		existing, ok := idx.records[b.ID]
		if !ok {
			idx.put(b, entry.Name())
			continue
		}

		existingSource := idx.sources[b.ID]
		msg := fmt.Sprintf("duplicate bookmark ID %s: %s vs %s", b.ID, existingSource, entry.Name())
		idx.appendConflict(msg)
		m.log.Warn("bookmark ID conflict",
			logger.String("storage", root.Name),
			logger.String("id", b.ID))

		if candidateWins(existing, filepath.Join(dir, existingSource), b, path) {
			idx.put(b, entry.Name())
		}
	}

	m.mu.Lock()
	m.indices[root.Name] = idx
	m.mu.Unlock()

	stats := idx.stats()
	m.log.Info("loaded storage",
		logger.String("storage", root.Name),
		logger.Int("bookmarks", stats.Total),
		logger.Int("errors", stats.Errors),
		logger.Int("conflicts", stats.Conflicts))
	return nil
}

// Save persists a bookmark to its record file and then updates the index.
//
// The file lock serializes writers targeting the same record. The index
// entry changes only after the write succeeded, so no failure mode leaves
// a partial mutation visible to readers, and a caller observing a
// completed Save always sees its own write in the index.
func (m *Manager) Save(b *domain.Bookmark, rootName string) error {
	m.reloadMu.RLock()
	defer m.reloadMu.RUnlock()

	root, idx, err := m.lookupRoot(rootName)
	if err != nil {
		return err
	}

	path := recordPath(root, b.ID)
	lock, err := AcquireLock(path, m.lockTimeout)
	if err != nil {
		return fmt.Errorf("could not lock bookmark %s: %w", b.ID, err)
	}
	defer lock.Release()

	data, err := Encode(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bookmark %s: %w", b.ID, err)
	}

	idx.put(b, filepath.Base(path))
	return nil
}

// Get returns the bookmark with the given ID. With rootName empty, all
// roots are scanned in configured order and the first match wins:
// IDs are unique within a root, not across roots.
func (m *Manager) Get(id, rootName string) (*domain.Bookmark, error) {
	if rootName != "" {
		_, idx, err := m.lookupRoot(rootName)
		if err != nil {
			return nil, err
		}
		if b, ok := idx.get(id); ok {
			return b, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	for _, name := range m.RootNames() {
		m.mu.RLock()
		idx := m.indices[name]
		m.mu.RUnlock()
		if idx == nil {
			continue
		}
		if b, ok := idx.get(id); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns filtered bookmarks from one root, or from all roots when
// rootName is empty.
func (m *Manager) List(rootName string, filter ListFilter) ([]*domain.Bookmark, error) {
	if rootName != "" {
		_, idx, err := m.lookupRoot(rootName)
		if err != nil {
			return nil, err
		}
		return idx.list(filter), nil
	}

	var out []*domain.Bookmark
	for _, name := range m.RootNames() {
		m.mu.RLock()
		idx := m.indices[name]
		m.mu.RUnlock()
		if idx == nil {
			continue
		}
		out = append(out, idx.list(filter)...)
	}
	return out, nil
}

// HardDelete removes the record file and the index entry for an ID.
// A missing file is not an error, so the operation is idempotent. The
// record's file lock is held across both steps so a concurrent Save on
// the same ID cannot rewrite the file mid-removal and leave an orphan.
func (m *Manager) HardDelete(id, rootName string) error {
	m.reloadMu.RLock()
	defer m.reloadMu.RUnlock()

	root, idx, err := m.lookupRoot(rootName)
	if err != nil {
		return err
	}

	path := recordPath(root, id)
	lock, err := AcquireLock(path, m.lockTimeout)
	if err != nil {
		return fmt.Errorf("could not lock bookmark %s: %w", id, err)
	}
	defer lock.Release()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete bookmark file %s: %w", id, err)
	}

	idx.remove(id)
	return nil
}

// Stats reports index and diagnostic counters for one root.
func (m *Manager) Stats(rootName string) (Stats, error) {
	_, idx, err := m.lookupRoot(rootName)
	if err != nil {
		return Stats{}, err
	}
	return idx.stats(), nil
}

// LoadErrors returns the per-file load error log for one root.
func (m *Manager) LoadErrors(rootName string) ([]string, error) {
	_, idx, err := m.lookupRoot(rootName)
	if err != nil {
		return nil, err
	}
	return idx.loadErrorLog(), nil
}

// RootNames returns the configured root names in configuration order.
func (m *Manager) RootNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}

// Roots returns the configured root descriptors in configuration order.
func (m *Manager) Roots() []domain.StorageRoot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.StorageRoot, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.roots[name])
	}
	return out
}

// CurrentRootName resolves the root new bookmarks default to: the root
// flagged current, else the first configured, else "". The resolution is
// cached and recomputed only when the cached name stops being valid.
func (m *Manager) CurrentRootName() string {
	m.mu.RLock()
	current := m.current
	_, valid := m.roots[current]
	m.mu.RUnlock()

	if current != "" && valid {
		return current
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.selectCurrentLocked()
	return m.current
}

// RecentConflicts merges the newest conflict log entries across roots.
func (m *Manager) RecentConflicts(limit int) []string {
	if limit <= 0 {
		limit = DefaultConflictLimit
	}

	var merged []string
	for _, name := range m.RootNames() {
		m.mu.RLock()
		idx := m.indices[name]
		m.mu.RUnlock()
		if idx == nil {
			continue
		}
		for _, msg := range idx.conflictLog() {
			merged = append(merged, fmt.Sprintf("[%s] %s", name, msg))
		}
	}

	if len(merged) > limit {
		merged = merged[len(merged)-limit:]
	}
	return merged
}

func (m *Manager) lookupRoot(rootName string) (domain.StorageRoot, *rootIndex, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	root, ok := m.roots[rootName]
	if !ok {
		return domain.StorageRoot{}, nil, fmt.Errorf("%w: %s", ErrRootNotFound, rootName)
	}
	idx, ok := m.indices[rootName]
	if !ok {
		return domain.StorageRoot{}, nil, fmt.Errorf("%w: %s not loaded", ErrRootNotFound, rootName)
	}
	return root, idx, nil
}

func (m *Manager) selectCurrentLocked() string {
	for _, name := range m.order {
		if m.roots[name].IsCurrent {
			return name
		}
	}
	if len(m.order) > 0 {
		return m.order[0]
	}
	return ""
}

// validateRootPath checks that a root exists, is a directory, and is
// writable. Writability is probed explicitly by creating and removing a
// marker file rather than trusting permission bits.
func validateRootPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", path)
		}
		return fmt.Errorf("cannot access storage path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage path is not a directory: %s", path)
	}

	probe := filepath.Join(path, probeName)
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("storage path is not writable: %s: %w", path, err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("cannot clean up probe file in %s: %w", path, err)
	}
	return nil
}

// ensureLayout creates the records and asset subdirectories. Idempotent.
func ensureLayout(rootPath string) error {
	dirs := append([]string{bookmarksDir}, assetDirs...)
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(rootPath, dir), 0o755); err != nil {
			return fmt.Errorf("failed to create storage structure: %w", err)
		}
	}
	return nil
}

func recordPath(root domain.StorageRoot, id string) string {
	return filepath.Join(root.Path, bookmarksDir, id+recordExt)
}

// candidateWins decides a duplicate-ID conflict by comparing best-available
// timestamps. The later record wins; an exact tie goes to the
// lexicographically smaller source filename so the outcome never depends
// on enumeration order.
func candidateWins(existing *domain.Bookmark, existingPath string, candidate *domain.Bookmark, candidatePath string) bool {
	et := bestTimestamp(existing, existingPath)
	ct := bestTimestamp(candidate, candidatePath)

	switch {
	case ct.After(et):
		return true
	case et.After(ct):
		return false
	default:
		return filepath.Base(candidatePath) < filepath.Base(existingPath)
	}
}

// bestTimestamp picks the most trustworthy timestamp available for a
// record: last_modified, else created_at, else the source file's mtime,
// else the zero time (treated as oldest).
func bestTimestamp(b *domain.Bookmark, sourcePath string) time.Time {
	if b.LastModified != nil {
		return b.LastModified.UTC()
	}
	if !b.CreatedAt.IsZero() {
		return b.CreatedAt.UTC()
	}
	if info, err := os.Stat(sourcePath); err == nil {
		return info.ModTime().UTC()
	}
	return time.Time{}
}
