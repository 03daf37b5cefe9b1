package export

import (
	"regexp"
	"strings"
)

const (
	// FilenamePrefix is prepended to every exported image filename.
	FilenamePrefix = "bbc-"

	// MaxFilenameLength caps the sanitized portion of the filename.
	MaxFilenameLength = 50
)

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// SanitizeText reduces arbitrary barcode text to a filesystem-safe stem:
// invalid characters and C0 controls become underscores, whitespace runs
// collapse to a single underscore, the result is truncated and trimmed of
// leading/trailing underscores. Idempotent. Returns "barcode" when nothing
// survives.
func SanitizeText(text string) string {
	s := invalidChars.ReplaceAllString(text, "_")
	s = whitespace.ReplaceAllString(s, "_")
	if runes := []rune(s); len(runes) > MaxFilenameLength {
		s = string(runes[:MaxFilenameLength])
	}
	s = strings.Trim(s, "_")
	if s == "" {
		return "barcode"
	}
	return s
}

// Filename derives the exported PNG filename for a barcode text. Distinct
// inputs can collide after sanitization; collisions are not deduplicated.
func Filename(text string) string {
	return FilenamePrefix + SanitizeText(text) + ".png"
}
