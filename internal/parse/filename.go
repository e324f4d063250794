package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var unsafeRe = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)

// SanitizeFilename reduces a client-supplied file name to a safe form:
// every character outside [a-zA-Z0-9.-] becomes an underscore.
func SanitizeFilename(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "upload"
	}
	return unsafeRe.ReplaceAllString(s, "_")
}

// StoredName derives the on-disk name for an uploaded file by prefixing the
// sanitized original name with the upload timestamp. The timestamp prefix
// makes names collision-resistant and stable for a given stored file.
func StoredName(original string, now time.Time) string {
	return fmt.Sprintf("%d_%s", now.UnixMilli(), SanitizeFilename(original))
}

// ValidateStoredName reports whether a requested file name is safe to look up
// on disk. Names containing parent-directory segments or path separators are
// rejected without touching the filesystem.
func ValidateStoredName(name string) error {
	if name == "" {
		return fmt.Errorf("empty file name")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("unsafe file name: %q", name)
	}
	return nil
}
