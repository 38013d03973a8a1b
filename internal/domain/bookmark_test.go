package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookmark() *Bookmark {
	return &Bookmark{
		ID:          "550e8400-e29b-41d4-a716-446655440000",
		URL:         "https://go.dev/blog",
		Title:       "The Go Blog",
		Keywords:    []string{"go", "blog"},
		Tags:        []string{"programming"},
		CreatedAt:   time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC),
		StorageRoot: "work",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b *Bookmark)
		wantField string
	}{
		{
			name:   "valid bookmark",
			mutate: func(b *Bookmark) {},
		},
		{
			name:      "empty title",
			mutate:    func(b *Bookmark) { b.Title = "" },
			wantField: "title",
		},
		{
			name:      "whitespace only title",
			mutate:    func(b *Bookmark) { b.Title = "   \t  " },
			wantField: "title",
		},
		{
			name:      "empty url",
			mutate:    func(b *Bookmark) { b.URL = "" },
			wantField: "url",
		},
		{
			name:      "url without scheme",
			mutate:    func(b *Bookmark) { b.URL = "go.dev/blog" },
			wantField: "url",
		},
		{
			name:      "non-http scheme",
			mutate:    func(b *Bookmark) { b.URL = "ftp://example.com/file" },
			wantField: "url",
		},
		{
			name:      "too many keywords",
			mutate:    func(b *Bookmark) { b.Keywords = []string{"a", "b", "c", "d", "e"} },
			wantField: "keywords",
		},
		{
			name:      "folder path with traversal",
			mutate:    func(b *Bookmark) { b.FolderPath = "work/../../etc" },
			wantField: "folder_path",
		},
		{
			name:      "folder path starting with slash",
			mutate:    func(b *Bookmark) { b.FolderPath = "/etc/passwd" },
			wantField: "folder_path",
		},
		{
			name:      "folder path starting with backslash",
			mutate:    func(b *Bookmark) { b.FolderPath = `\windows` },
			wantField: "folder_path",
		},
		{
			name:   "valid nested folder path",
			mutate: func(b *Bookmark) { b.FolderPath = "development/go/stdlib" },
		},
		{
			name:      "deleted without deleted_at",
			mutate:    func(b *Bookmark) { b.Deleted = true },
			wantField: "deleted_at",
		},
		{
			name: "deleted_at without deleted",
			mutate: func(b *Bookmark) {
				now := time.Now()
				b.DeletedAt = &now
			},
			wantField: "deleted_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBookmark()
			tt.mutate(b)

			err := b.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestNormalize(t *testing.T) {
	b := validBookmark()
	b.Title = "  The Go Blog  "
	b.Keywords = []string{" go ", "", "  ", "blog"}
	b.Tags = []string{"", "programming ", " "}

	b.Normalize()

	assert.Equal(t, "The Go Blog", b.Title)
	assert.Equal(t, []string{"go", "blog"}, b.Keywords)
	assert.Equal(t, []string{"programming"}, b.Tags)
}

func TestNormalizeAllEmptyEntries(t *testing.T) {
	b := validBookmark()
	b.Keywords = []string{"", "  "}

	b.Normalize()

	assert.Nil(t, b.Keywords)
	require.NoError(t, b.Validate())
}

func TestClone(t *testing.T) {
	now := time.Now().UTC()
	b := validBookmark()
	b.LastModified = &now
	b.Deleted = true
	b.DeletedAt = &now

	c := b.Clone()

	require.Equal(t, b, c)

	// Mutating the clone must not touch the original.
	c.Keywords[0] = "changed"
	*c.LastModified = now.Add(time.Hour)
	assert.Equal(t, "go", b.Keywords[0])
	assert.True(t, b.LastModified.Equal(now))
}

func TestStorageRootValidate(t *testing.T) {
	tests := []struct {
		name    string
		root    StorageRoot
		wantErr bool
	}{
		{name: "valid", root: StorageRoot{Name: "work-2026", Path: "/data/work"}},
		{name: "empty name", root: StorageRoot{Name: "", Path: "/data"}, wantErr: true},
		{name: "bad charset", root: StorageRoot{Name: "my storage!", Path: "/data"}, wantErr: true},
		{name: "empty path", root: StorageRoot{Name: "work"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.root.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
