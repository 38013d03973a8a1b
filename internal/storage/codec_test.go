package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoardapp/hoard/internal/domain"
)

func testBookmark() *domain.Bookmark {
	modified := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Bookmark{
		ID:          "550e8400-e29b-41d4-a716-446655440000",
		URL:         "https://github.com/golang/go",
		Title:       "Go Repository",
		Keywords:    []string{"go", "compiler", "github"},
		Description: "The Go programming language source",
		Tags:        []string{"programming", "open-source"},
		FolderPath:  "development/go",
		CreatedAt:   time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC),
		LastModified: &modified,
		FaviconPath: "favicons/github.com.ico",
		StorageRoot: "work",
	}
}

// requireSameBookmark compares two bookmarks field by field, using
// time.Equal for timestamps so encoding-imposed representations
// cannot produce false negatives.
func requireSameBookmark(t *testing.T, want, got *domain.Bookmark) {
	t.Helper()

	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.URL, got.URL)
	require.Equal(t, want.Title, got.Title)
	require.Equal(t, want.Keywords, got.Keywords)
	require.Equal(t, want.Description, got.Description)
	require.Equal(t, want.Tags, got.Tags)
	require.Equal(t, want.FolderPath, got.FolderPath)
	require.Equal(t, want.Deleted, got.Deleted)
	require.Equal(t, want.FaviconPath, got.FaviconPath)
	require.Equal(t, want.ScreenshotPath, got.ScreenshotPath)
	require.Equal(t, want.StorageRoot, got.StorageRoot)

	require.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at mismatch")
	requireSameTimePtr(t, want.LastModified, got.LastModified)
	requireSameTimePtr(t, want.LastAccessed, got.LastAccessed)
	requireSameTimePtr(t, want.DeletedAt, got.DeletedAt)
}

func requireSameTimePtr(t *testing.T, want, got *time.Time) {
	t.Helper()

	if want == nil {
		require.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	require.True(t, want.Equal(*got))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := testBookmark()

	data, err := Encode(b)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	requireSameBookmark(t, b, got)
}

func TestRoundTripSoftDeleted(t *testing.T) {
	deletedAt := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	b := testBookmark()
	b.Deleted = true
	b.DeletedAt = &deletedAt

	data, err := Encode(b)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	require.True(t, got.Deleted)
	requireSameTimePtr(t, &deletedAt, got.DeletedAt)
}

func TestRoundTripMinimalRecord(t *testing.T) {
	b := &domain.Bookmark{
		ID:          "minimal-id",
		URL:         "https://example.com",
		Title:       "Example",
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		StorageRoot: "personal",
	}

	data, err := Encode(b)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	requireSameBookmark(t, b, got)
}

func TestEncodeIsHumanDiffable(t *testing.T) {
	data, err := Encode(testBookmark())
	require.NoError(t, err)

	// URL must be a plain scalar, lists plain sequences.
	assert.Contains(t, string(data), "url: https://github.com/golang/go")
	assert.Contains(t, string(data), "- compiler")
	assert.Contains(t, string(data), "storage_root: work")
}

func TestDecodeEmptyDocument(t *testing.T) {
	for _, input := range []string{"", "   \n\t\n"} {
		_, err := Decode([]byte(input))
		require.ErrorIs(t, err, ErrMalformed)
	}
}

func TestDecodeInvalidYAML(t *testing.T) {
	_, err := Decode([]byte("id: [unclosed"))
	require.ErrorIs(t, err, ErrMalformed)
	require.NotErrorIs(t, err, ErrMissingField)
}

func TestDecodeNotAMapping(t *testing.T) {
	_, err := Decode([]byte("- just\n- a\n- list\n"))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeMissingRequiredFields(t *testing.T) {
	_, err := Decode([]byte("title: Incomplete\nurl: https://example.com\n"))
	require.ErrorIs(t, err, ErrMissingField)
	require.NotErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "id")
	assert.Contains(t, err.Error(), "storage_root")
}
