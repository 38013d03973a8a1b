package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPutGet(t *testing.T) {
	idx := newRootIndex()
	b := testBookmark()

	idx.put(b, "a.yaml")

	got, ok := idx.get(b.ID)
	require.True(t, ok)
	requireSameBookmark(t, b, got)

	source, ok := idx.source(b.ID)
	require.True(t, ok)
	assert.Equal(t, "a.yaml", source)

	_, ok = idx.get("missing")
	assert.False(t, ok)
}

func TestIndexHandsOutCopies(t *testing.T) {
	idx := newRootIndex()
	b := testBookmark()
	idx.put(b, "a.yaml")

	// Mutating the stored-from value must not affect the index.
	b.Title = "mutated after put"

	got, _ := idx.get(b.ID)
	assert.Equal(t, "Go Repository", got.Title)

	// Mutating a returned record must not affect the index either.
	got.Title = "mutated after get"
	again, _ := idx.get(b.ID)
	assert.Equal(t, "Go Repository", again.Title)
}

func TestIndexRemove(t *testing.T) {
	idx := newRootIndex()
	b := testBookmark()
	idx.put(b, "a.yaml")

	idx.remove(b.ID)

	_, ok := idx.get(b.ID)
	assert.False(t, ok)
	_, ok = idx.source(b.ID)
	assert.False(t, ok)
}

func TestIndexListFilters(t *testing.T) {
	idx := newRootIndex()

	active := testBookmark()
	active.ID = "active"
	active.FolderPath = "development/go"
	idx.put(active, "active.yaml")

	other := testBookmark()
	other.ID = "other"
	other.FolderPath = "reading"
	idx.put(other, "other.yaml")

	deletedAt := time.Now().UTC()
	deleted := testBookmark()
	deleted.ID = "deleted"
	deleted.Deleted = true
	deleted.DeletedAt = &deletedAt
	idx.put(deleted, "deleted.yaml")

	assert.Len(t, idx.list(ListFilter{}), 2)
	assert.Len(t, idx.list(ListFilter{IncludeDeleted: true}), 3)

	folder := "development/go"
	got := idx.list(ListFilter{Folder: &folder})
	require.Len(t, got, 1)
	assert.Equal(t, "active", got[0].ID)

	empty := "nonexistent"
	assert.Empty(t, idx.list(ListFilter{Folder: &empty}))
}

func TestIndexStats(t *testing.T) {
	idx := newRootIndex()

	active := testBookmark()
	active.ID = "active"
	idx.put(active, "a.yaml")

	deletedAt := time.Now().UTC()
	deleted := testBookmark()
	deleted.ID = "deleted"
	deleted.Deleted = true
	deleted.DeletedAt = &deletedAt
	idx.put(deleted, "b.yaml")

	idx.appendLoadError("corrupt file")
	idx.appendConflict("duplicate id")

	stats := idx.stats()
	assert.Equal(t, Stats{Total: 2, Active: 1, Deleted: 1, Errors: 1, Conflicts: 1}, stats)
}

func TestIndexLogsAreCopies(t *testing.T) {
	idx := newRootIndex()
	idx.appendConflict("first")

	log := idx.conflictLog()
	log[0] = "mutated"

	assert.Equal(t, []string{"first"}, idx.conflictLog())
}
