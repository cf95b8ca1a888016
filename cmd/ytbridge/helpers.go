package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ytbridge/internal/config"
	"ytbridge/internal/history"
	"ytbridge/internal/services"
	"ytbridge/internal/services/ffmpeg"
	"ytbridge/internal/services/ytdlp"
)

func newToolClients(cfg *config.Config, logger *slog.Logger) (ytdlp.Client, ffmpeg.Trimmer) {
	client := ytdlp.NewCLI(
		ytdlp.WithBinary(cfg.Tools.YtdlpBinary),
		ytdlp.WithLogger(logger),
		ytdlp.WithTimeouts(cfg.DownloadTimeout(), cfg.MetadataTimeout()),
	)
	trimmer := ffmpeg.NewCLI(
		ffmpeg.WithBinary(cfg.Tools.FFmpegBinary),
		ffmpeg.WithLogger(logger),
	)
	return client, trimmer
}

// recordHistory persists a CLI invocation outcome. Best effort: a broken
// history database never fails the command itself.
func recordHistory(cfg *config.Config, kind history.Kind, url, message string, toolErr error) {
	if cfg == nil || !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		return
	}
	defer store.Close()

	record := history.Record{
		Kind:        kind,
		URL:         url,
		Destination: cfg.Paths.DownloadsDir,
		Outcome:     history.OutcomeSuccess,
		Message:     message,
	}
	if toolErr != nil {
		record.Outcome = history.OutcomeFailure
		record.Message = services.Message(toolErr)
	}
	_, _ = store.Add(context.Background(), record)
}

// outputWriter returns a color-capable writer when stdout is a terminal.
func outputWriter(cmd *cobra.Command) io.Writer {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return colorable.NewColorable(f)
	}
	return out
}
