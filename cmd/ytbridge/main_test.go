package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytbridge/internal/config"
	"ytbridge/internal/history"
	"ytbridge/internal/services"
)

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
downloads_dir = %q
log_dir = %q

[history]
enabled = true
`, filepath.Join(base, "downloads"), filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "-p", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("generated sample did not load: exists=%v err=%v", exists, err)
	}

	// A second init must refuse to overwrite.
	if _, _, err := runCLI(t, "", "config", "init", "-p", target); err == nil {
		t.Fatal("expected error when target already exists")
	}
}

func TestConfigShow(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	out, _, err := runCLI(t, configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "[paths]") || !strings.Contains(out, "downloads_dir") {
		t.Fatalf("unexpected config show output: %q", out)
	}
}

func TestStatusCommand(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	out, _, err := runCLI(t, configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Downloads directory:") {
		t.Fatalf("missing config summary: %q", out)
	}
	if !strings.Contains(out, "yt-dlp") || !strings.Contains(out, "ffmpeg") {
		t.Fatalf("missing dependency rows: %q", out)
	}
}

func TestHistoryCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, _, err := runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No history recorded yet") {
		t.Fatalf("expected empty history message, got %q", out)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	if _, err := store.Add(context.Background(), history.Record{
		Kind:    history.KindVideo,
		URL:     "https://www.youtube.com/watch?v=abc",
		Outcome: history.OutcomeSuccess,
		Message: "saved",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	store.Close()

	out, _, err = runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "watch?v=abc") || !strings.Contains(out, "success") {
		t.Fatalf("missing record in output: %q", out)
	}

	out, _, err = runCLI(t, configPath, "history", "clear")
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	if !strings.Contains(out, "Removed 1 record(s)") {
		t.Fatalf("unexpected clear output: %q", out)
	}
}

func TestDownloadCommandRejectsMalformedURL(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	_, _, err := runCLI(t, configPath, "download", "not-a-url")
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
