// Package fileutil contains small filesystem helpers shared by the download
// pipeline and the tool operations.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeFileName strips characters that are unsafe in file names across
// platforms and trims surrounding whitespace and dots. Unprintable runes are
// dropped entirely.
func SanitizeFileName(name string) string {
	name = strings.Trim(strings.ToValidUTF8(name, ""), " \t\n\r.")
	if name == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if !unicode.IsPrint(r) {
			continue
		}
		switch r {
		case '/', '\\', ':', '*', '|':
			b.WriteRune('-')
		case '?', '"', '<', '>':
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// MoveFile renames src into dstDir, preserving the base name. The staging
// layout guarantees src and dstDir share a filesystem, so a plain rename is
// used rather than copy-then-delete.
func MoveFile(src, dstDir string) (string, error) {
	dst := filepath.Join(dstDir, filepath.Base(src))
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", filepath.Base(src), err)
	}
	return dst, nil
}

// HasAnyExtension reports whether path ends in one of the given extensions.
// Extensions are matched case-insensitively and include the leading dot.
func HasAnyExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range exts {
		if ext == candidate {
			return true
		}
	}
	return false
}
