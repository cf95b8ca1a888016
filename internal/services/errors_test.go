package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrDownloadFailed, "ytdlp", "download", "exit status 1", errors.New("stderr text"))
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("expected error to match ErrDownloadFailed, got %v", err)
	}
	if got := err.Error(); got == "" {
		t.Fatal("expected non-empty message")
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "ffmpeg", "trim", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected fallback to ErrExternalTool, got %v", err)
	}
}

func TestWrapDetailParts(t *testing.T) {
	err := Wrap(ErrInvalidInput, "download", "validate", "url must be absolute", nil)
	want := "invalid input: download: validate: url must be absolute"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q, want %q", err.Error(), want)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrNoOutput, "", "", "", nil)
	want := "no output produced: service failure"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q, want %q", err.Error(), want)
	}
}
