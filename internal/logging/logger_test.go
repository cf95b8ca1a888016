package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"ytbridge/internal/services"
)

func TestConsoleHandlerFormatsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	NewComponentLogger(logger, "downloader").Info("staged file", String("path", "/tmp/x.mp4"))

	line := buf.String()
	if !strings.Contains(line, "INFO downloader: staged file") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "path=/tmp/x.mp4") {
		t.Fatalf("expected path attribute in line: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("msg", String("title", "two words"))
	if !strings.Contains(buf.String(), `title="two words"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestJSONHandlerEmitsLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("careful")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected level=warn, got %v", payload["level"])
	}
	if payload["msg"] != "careful" {
		t.Fatalf("expected msg=careful, got %v", payload["msg"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "error", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be filtered, got %q", buf.String())
	}
	logger.Error("loud")
	if buf.Len() == 0 {
		t.Fatal("expected error record to pass the filter")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsToolFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithTool(context.Background(), "download_video")
	ctx = services.WithRequestID(ctx, "req-1")
	WithContext(ctx, logger).Info("started")

	line := buf.String()
	if !strings.Contains(line, "tool=download_video") {
		t.Fatalf("expected tool field, got %q", line)
	}
	if !strings.Contains(line, "request_id=req-1") {
		t.Fatalf("expected request_id field, got %q", line)
	}
}
