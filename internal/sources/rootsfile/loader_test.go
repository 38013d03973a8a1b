package rootsfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStoragesFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidFile(t *testing.T) {
	path := writeStoragesFile(t, `
storages:
  - name: personal
    path: /data/bookmarks/personal
    current: true
    default: true
  - name: work
    path: /data/bookmarks/work
`)

	f, err := NewLoader(path).Load()
	require.NoError(t, err)
	require.Len(t, f.Storages, 2)

	assert.Equal(t, "personal", f.Storages[0].Name)
	assert.True(t, f.Storages[0].Current)
	assert.True(t, f.Storages[0].Default)
	assert.Equal(t, "/data/bookmarks/work", f.Storages[1].Path)
	assert.False(t, f.Storages[1].Current)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read storages file")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeStoragesFile(t, "storages: [unclosed")

	_, err := NewLoader(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse storages yaml")
}

func TestMapRoots(t *testing.T) {
	f := File{Storages: []Entry{
		{Name: "work", Path: "/data/work"},
		{Name: "personal", Path: "/data/personal", Current: true},
	}}

	roots, err := NewMapper().MapRoots(f)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	assert.Equal(t, "work", roots[0].Name)
	assert.False(t, roots[0].IsCurrent)
	assert.True(t, roots[1].IsCurrent)
}

func TestMapRootsErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		wantMsg string
	}{
		{
			name:    "empty file",
			file:    File{},
			wantMsg: "no storages defined",
		},
		{
			name: "duplicate name",
			file: File{Storages: []Entry{
				{Name: "work", Path: "/a"},
				{Name: "work", Path: "/b"},
			}},
			wantMsg: "duplicate storage name",
		},
		{
			name: "bad name charset",
			file: File{Storages: []Entry{
				{Name: "my storage!", Path: "/a"},
			}},
			wantMsg: "storage",
		},
		{
			name: "missing path",
			file: File{Storages: []Entry{
				{Name: "work"},
			}},
			wantMsg: "storage",
		},
		{
			name: "two current roots",
			file: File{Storages: []Entry{
				{Name: "a", Path: "/a", Current: true},
				{Name: "b", Path: "/b", Current: true},
			}},
			wantMsg: "only one storage may be flagged current",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapper().MapRoots(tt.file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
