package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRejectsTraversalBeforeFilesystemAccess(t *testing.T) {
	// A gateway rooted at a directory that does not exist: any filesystem
	// access would fail with a non-traversal error, so getting ErrInvalidName
	// proves the guard ran first.
	g := NewGateway(filepath.Join(t.TempDir(), "missing"))

	testCases := []string{
		"../../etc/passwd",
		"a/b.png",
		`a\b.png`,
		"..",
		"",
	}

	for _, name := range testCases {
		t.Run(name, func(t *testing.T) {
			_, _, err := g.Fetch(name)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestFetchNotFound(t *testing.T) {
	g := NewGateway(t.TempDir())

	_, _, err := g.Fetch("nonexistent.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidName)
}

func TestSaveAndFetchRoundTrip(t *testing.T) {
	g := NewGateway(filepath.Join(t.TempDir(), "images"))

	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	stored, err := g.Save("photo.png", payload)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, "_photo.png"))

	data, contentType, err := g.Fetch(stored)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", contentType)
}

func TestSaveSanitizesOriginalName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	g := NewGateway(dir)

	stored, err := g.Save("my school/front view.png", []byte("x"))
	require.NoError(t, err)
	assert.NotContains(t, stored, "/")
	assert.NotContains(t, stored, " ")

	// The stored file actually exists under the root, not elsewhere.
	_, err = os.Stat(filepath.Join(dir, stored))
	assert.NoError(t, err)
}

func TestFetchOtherIOFailureIsNotNotFound(t *testing.T) {
	dir := t.TempDir()
	g := NewGateway(dir)

	// A directory entry with the requested name: reading it fails with an
	// error that is neither a traversal rejection nor a missing file.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "photo.png"), 0o755))

	_, _, err := g.Fetch("photo.png")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidName))
}

func TestContentType(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"a.png", "image/png"},
		{"a.PNG", "image/png"},
		{"a.webp", "image/webp"},
		{"a.gif", "image/gif"},
		{"a.jpg", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.bmp", "image/jpeg"},
		{"noext", "image/jpeg"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ContentType(tc.name), tc.name)
	}
}
