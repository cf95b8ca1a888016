package subtitles

import (
	"regexp"
	"strings"
)

var (
	cueTagPattern    = regexp.MustCompile(`<[^>]*>`)
	timestampPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[.,]\d{3}\s+-->`)
	cueIndexPattern  = regexp.MustCompile(`^\d+$`)
)

// Clean converts a WebVTT or SRT caption document into plain text. Headers,
// cue indices, timestamp lines, and inline cue tags are dropped, and
// consecutive duplicate lines (common in auto-generated rolling captions)
// are collapsed.
func Clean(document string) string {
	var (
		lines    []string
		previous string
	)
	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isCaptionMetadata(line) {
			continue
		}
		line = strings.TrimSpace(cueTagPattern.ReplaceAllString(line, ""))
		if line == "" || line == previous {
			continue
		}
		lines = append(lines, line)
		previous = line
	}
	return strings.Join(lines, "\n")
}

func isCaptionMetadata(line string) bool {
	if line == "WEBVTT" || strings.HasPrefix(line, "WEBVTT ") {
		return true
	}
	if strings.HasPrefix(line, "Kind:") || strings.HasPrefix(line, "Language:") ||
		strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE") {
		return true
	}
	if timestampPattern.MatchString(line) {
		return true
	}
	return cueIndexPattern.MatchString(line)
}
