package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks caller mistakes detected before any side effect.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDownloadFailed marks a non-zero exit from the downloader process.
	ErrDownloadFailed = errors.New("download failed")
	// ErrMetadataUnavailable marks a failed metadata fetch for chapter splitting.
	ErrMetadataUnavailable = errors.New("metadata unavailable")
	// ErrNoOutput marks a run that produced no files despite a clean exit.
	ErrNoOutput = errors.New("no output produced")
	// ErrExternalTool marks failures of helper tools other than the downloader.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Message returns the human-readable portion of a wrapped error, suitable for
// surfacing to tool callers.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
