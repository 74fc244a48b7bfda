package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// GenerateShortUUID generates a short UUID (8 characters) for file names
func GenerateShortUUID() string {
	fullUUID := uuid.New().String()
	// Take first 8 characters for a short but still unique identifier
	return strings.ReplaceAll(fullUUID[:8], "-", "")
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename turns an arbitrary title into a safe file name stem.
// Runs of unsafe characters collapse to a single dash; an empty result
// falls back to "untitled".
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "untitled"
	}
	return name
}
