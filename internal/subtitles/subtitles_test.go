package subtitles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytbridge/internal/config"
	"ytbridge/internal/logging"
	"ytbridge/internal/services"
	"ytbridge/internal/services/ytdlp"
)

type fakeClient struct {
	listing     string
	listErr     error
	lastOpts    ytdlp.SubtitleOptions
	downloadErr error
	stageFiles  map[string]string
}

func (f *fakeClient) Download(context.Context, ytdlp.DownloadOptions) (ytdlp.Result, error) {
	return ytdlp.Result{}, errors.New("not implemented")
}

func (f *fakeClient) FetchInfo(context.Context, string) (ytdlp.VideoInfo, error) {
	return ytdlp.VideoInfo{}, errors.New("not implemented")
}

func (f *fakeClient) ListSubtitles(_ context.Context, _ string) (string, error) {
	return f.listing, f.listErr
}

func (f *fakeClient) DownloadSubtitles(_ context.Context, opts ytdlp.SubtitleOptions) (ytdlp.Result, error) {
	f.lastOpts = opts
	if f.downloadErr != nil {
		return ytdlp.Result{Stderr: "boom"}, f.downloadErr
	}
	for name, content := range f.stageFiles {
		if err := os.WriteFile(filepath.Join(opts.WorkDir, name), []byte(content), 0o644); err != nil {
			return ytdlp.Result{}, err
		}
	}
	return ytdlp.Result{}, nil
}

func newTestService(t *testing.T, client *fakeClient) (*Service, string) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DownloadsDir = t.TempDir()
	cfg.Subtitles.DefaultLanguage = "en"
	return NewService(&cfg, client, logging.NewNop()), cfg.Paths.DownloadsDir
}

func TestListReturnsRawOutput(t *testing.T) {
	client := &fakeClient{listing: "Language  Formats\nen        vtt"}
	svc, _ := newTestService(t, client)

	got, err := svc.List(context.Background(), "https://www.youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got != client.listing {
		t.Fatalf("List = %q, want raw listing", got)
	}
}

func TestListRejectsMalformedURL(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{})
	if _, err := svc.List(context.Background(), "not-a-url"); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDownloadMovesFilesAndReturnsContent(t *testing.T) {
	client := &fakeClient{stageFiles: map[string]string{
		"video.en.vtt": "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nhi\n",
	}}
	svc, downloadsDir := newTestService(t, client)

	out, err := svc.Download(context.Background(), "https://www.youtube.com/watch?v=abc", "EN-us")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if client.lastOpts.Language != "en-US" {
		t.Fatalf("expected normalized language, got %q", client.lastOpts.Language)
	}
	if client.lastOpts.AutoOnly {
		t.Fatal("subtitle download must include manual tracks")
	}
	if len(out.Paths) != 1 || filepath.Base(out.Paths[0]) != "video.en.vtt" {
		t.Fatalf("unexpected saved paths: %v", out.Paths)
	}
	if !strings.Contains(out.Content, "hi") {
		t.Fatalf("unexpected content: %q", out.Content)
	}

	entries, err := os.ReadDir(downloadsDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			t.Fatalf("staging directory left behind: %s", entry.Name())
		}
	}
}

func TestDownloadDefaultsLanguage(t *testing.T) {
	client := &fakeClient{stageFiles: map[string]string{"video.en.vtt": "WEBVTT\n"}}
	svc, _ := newTestService(t, client)

	if _, err := svc.Download(context.Background(), "https://www.youtube.com/watch?v=abc", ""); err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if client.lastOpts.Language != "en" {
		t.Fatalf("expected configured default language, got %q", client.lastOpts.Language)
	}
}

func TestDownloadNoTracks(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{})
	_, err := svc.Download(context.Background(), "https://www.youtube.com/watch?v=abc", "en")
	if !errors.Is(err, services.ErrNoOutput) {
		t.Fatalf("expected ErrNoOutput, got %v", err)
	}
}

func TestDownloadToolFailureCleansStaging(t *testing.T) {
	client := &fakeClient{downloadErr: errors.New("exit status 1")}
	svc, downloadsDir := newTestService(t, client)

	_, err := svc.Download(context.Background(), "https://www.youtube.com/watch?v=abc", "en")
	if !errors.Is(err, services.ErrDownloadFailed) {
		t.Fatalf("expected ErrDownloadFailed, got %v", err)
	}
	entries, _ := os.ReadDir(downloadsDir)
	if len(entries) != 0 {
		t.Fatalf("expected empty downloads dir after failure, found %d entries", len(entries))
	}
}

func TestTranscriptRequestsAutoCaptionsOnly(t *testing.T) {
	client := &fakeClient{stageFiles: map[string]string{
		"video.en.vtt": sampleVTT,
	}}
	svc, downloadsDir := newTestService(t, client)

	got, err := svc.Transcript(context.Background(), "https://www.youtube.com/watch?v=abc", "en")
	if err != nil {
		t.Fatalf("Transcript returned error: %v", err)
	}
	if !client.lastOpts.AutoOnly {
		t.Fatal("transcript must request auto-generated captions only")
	}
	if got != "hello and welcome\nto the show\nlet's begin" {
		t.Fatalf("unexpected transcript: %q", got)
	}

	// Transcript derivation persists nothing.
	entries, _ := os.ReadDir(downloadsDir)
	if len(entries) != 0 {
		t.Fatalf("expected nothing persisted, found %d entries", len(entries))
	}
}

func TestTranscriptEmptyCaptions(t *testing.T) {
	client := &fakeClient{stageFiles: map[string]string{"video.en.vtt": "WEBVTT\n"}}
	svc, _ := newTestService(t, client)

	_, err := svc.Transcript(context.Background(), "https://www.youtube.com/watch?v=abc", "en")
	if !errors.Is(err, services.ErrNoOutput) {
		t.Fatalf("expected ErrNoOutput, got %v", err)
	}
}
