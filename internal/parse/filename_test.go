package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain name kept", "photo.png", "photo.png"},
		{"spaces replaced", "my school photo.jpg", "my_school_photo.jpg"},
		{"path characters replaced", "../etc/passwd", ".._etc_passwd"},
		{"unicode replaced", "école_été.png", "_cole__t_.png"},
		{"dashes and dots kept", "front-view.2024.jpeg", "front-view.2024.jpeg"},
		{"empty becomes placeholder", "   ", "upload"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.raw))
		})
	}
}

func TestStoredName(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "1700000000000_photo.png", StoredName("photo.png", now))
	assert.Equal(t, "1700000000000_a_b.png", StoredName("a b.png", now))
}

func TestValidateStoredName(t *testing.T) {
	assert.NoError(t, ValidateStoredName("1700000000000_photo.png"))

	for _, bad := range []string{"", "../../etc/passwd", "a/b.png", `a\b.png`, ".."} {
		assert.Error(t, ValidateStoredName(bad), "expected rejection for %q", bad)
	}
}
