package utils

import (
	"path/filepath"
	"strings"

	"audio-workflow/internal/ui"
)

// Stem returns the base name of a path with its extension removed.
// A name that is nothing but an extension (".wav") is returned as-is.
func Stem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// DeriveTitle builds a page title from an audio file path: the file's stem
// with underscores replaced by spaces. "team_standup.wav" becomes
// "team standup".
func DeriveTitle(path string) string {
	return strings.ReplaceAll(Stem(path), "_", " ")
}

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}
