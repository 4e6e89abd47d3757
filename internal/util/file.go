package util

import (
	"os"
	"regexp"
	"strings"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// SanitizeFilename converts a string into a safe lowercase filename fragment.
func SanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")
	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
