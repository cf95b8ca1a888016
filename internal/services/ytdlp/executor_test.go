package ytdlp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestCommandExecutorSuccess(t *testing.T) {
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("YTDLP_HELPER_MODE", "success")

	var lines []string
	result, err := commandExecutor{}.Run(context.Background(), Command{
		Binary: os.Args[0],
		Args:   []string{"-test.run=TestHelperProcess"},
		OnLine: func(line string) { lines = append(lines, line) },
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(result.Stdout, "[download] 100%") {
		t.Fatalf("expected progress output in stdout, got %q", result.Stdout)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 stdout lines forwarded, got %d", len(lines))
	}
	if result.Stderr != "WARNING: something minor" {
		t.Fatalf("unexpected stderr: %q", result.Stderr)
	}
}

func TestCommandExecutorFailure(t *testing.T) {
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("YTDLP_HELPER_MODE", "failure")

	result, err := commandExecutor{}.Run(context.Background(), Command{
		Binary: os.Args[0],
		Args:   []string{"-test.run=TestHelperProcess"},
	})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(result.Stderr, "ERROR: boom") {
		t.Fatalf("expected stderr to be captured, got %q", result.Stderr)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("YTDLP_HELPER_MODE") {
	case "success":
		fmt.Println("[download]  50% of 10MiB")
		fmt.Println("[download] 100% of 10MiB")
		fmt.Fprintln(os.Stderr, "WARNING: something minor")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "ERROR: boom")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
