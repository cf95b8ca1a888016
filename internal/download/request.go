package download

import (
	"net/url"
	"strings"

	"github.com/dannav/hhmmss"

	"ytbridge/internal/services"
)

// ChapterAll requests extraction of every chapter in the video metadata.
const ChapterAll = "all"

// Request describes one video download invocation. Only URL is required.
type Request struct {
	URL        string
	Resolution string
	// StartTime and EndTime are HH:MM:SS timecodes bounding a section.
	StartTime string
	EndTime   string
	// Chapter is an exact chapter title, or ChapterAll for every chapter.
	Chapter string
}

func (r *Request) normalize(defaultResolution string) {
	r.URL = strings.TrimSpace(r.URL)
	r.Resolution = strings.ToLower(strings.TrimSpace(r.Resolution))
	if r.Resolution == "" {
		r.Resolution = defaultResolution
	}
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.Chapter = strings.TrimSpace(r.Chapter)
}

// Validate checks the request before any filesystem or process side effect.
func (r Request) Validate() error {
	if err := validateURL(r.URL); err != nil {
		return err
	}
	if r.StartTime != "" {
		if _, err := hhmmss.Parse(r.StartTime); err != nil {
			return services.Wrap(services.ErrInvalidInput, "download", "validate", "start time must be a HH:MM:SS timecode", err)
		}
	}
	if r.EndTime != "" {
		if _, err := hhmmss.Parse(r.EndTime); err != nil {
			return services.Wrap(services.ErrInvalidInput, "download", "validate", "end time must be a HH:MM:SS timecode", err)
		}
	}
	return nil
}

// hasSection reports whether a time-bounded section was requested.
func (r Request) hasSection() bool {
	return r.StartTime != "" || r.EndTime != ""
}

func validateURL(raw string) error {
	if raw == "" {
		return services.Wrap(services.ErrInvalidInput, "download", "validate", "url is required", nil)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return services.Wrap(services.ErrInvalidInput, "download", "validate", "url is not well formed", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return services.Wrap(services.ErrInvalidInput, "download", "validate", "url must be absolute", nil)
	}
	return nil
}
