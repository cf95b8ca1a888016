package subtitles

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"ytbridge/internal/services"
)

// NormalizeLanguage canonicalizes a caller-provided language code ("EN-us"
// becomes "en-US"). yt-dlp matches subtitle tracks by BCP 47 tag, so sloppy
// casing from callers would otherwise silently miss tracks.
func NormalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", services.Wrap(services.ErrInvalidInput, "subtitles", "language", "language code is required", nil)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, "subtitles", "language",
			fmt.Sprintf("unrecognized language code %q", code), err)
	}
	return tag.String(), nil
}
