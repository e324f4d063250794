package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"school-hub-backend/internal/parse"
)

// Closed error kinds for asset lookups.
var (
	// ErrInvalidName reports a file name that failed the traversal guard.
	ErrInvalidName = errors.New("invalid file name")
	// ErrNotFound reports a missing file, distinct from other I/O failures.
	ErrNotFound = errors.New("image not found")
)

// Gateway stores and serves image files under a flat local directory.
type Gateway struct {
	dir string
}

// NewGateway creates a gateway rooted at dir. The directory is created on
// first write, not here.
func NewGateway(dir string) *Gateway {
	return &Gateway{dir: dir}
}

// Save persists uploaded bytes under a collision-resistant name derived from
// the upload time and the sanitized original name, and returns that name.
func (g *Gateway) Save(originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset directory: %w", err)
	}

	stored := parse.StoredName(originalName, time.Now())
	if err := os.WriteFile(filepath.Join(g.dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write asset %s: %w", stored, err)
	}
	return stored, nil
}

// Fetch reads a previously stored image and infers its content type from the
// file extension. The traversal guard runs before any filesystem call.
func (g *Gateway) Fetch(name string) ([]byte, string, error) {
	if err := parse.ValidateStoredName(name); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}

	data, err := os.ReadFile(filepath.Join(g.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, "", fmt.Errorf("failed to read asset %s: %w", name, err)
	}

	return data, ContentType(name), nil
}

// ContentType maps a file extension to its MIME type. Unrecognized
// extensions fall back to JPEG, matching how stored files are produced.
func ContentType(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
