package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"ytbridge/internal/logging"
)

// Client defines the yt-dlp behaviour consumed by tool operations.
type Client interface {
	Download(ctx context.Context, opts DownloadOptions) (Result, error)
	FetchInfo(ctx context.Context, url string) (VideoInfo, error)
	ListSubtitles(ctx context.Context, url string) (string, error)
	DownloadSubtitles(ctx context.Context, opts SubtitleOptions) (Result, error)
}

// DownloadOptions describes one media download invocation.
type DownloadOptions struct {
	URL string
	// Format is the -f selection expression; empty omits the flag entirely.
	Format string
	// SectionStart/SectionEnd are passed through to the trimming
	// post-processor as -ss/-to when set.
	SectionStart string
	SectionEnd   string
	// AudioOnly extracts an mp3 instead of downloading video streams.
	AudioOnly bool
	// WorkDir becomes the child process working directory, so all produced
	// artifacts land there.
	WorkDir  string
	Progress func(line string)
}

// SubtitleOptions describes a subtitle-only invocation.
type SubtitleOptions struct {
	URL      string
	Language string
	// AutoOnly restricts the request to auto-generated captions.
	AutoOnly bool
	WorkDir  string
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *CLI) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger attaches a logger for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "ytdlp")
		}
	}
}

// WithTimeouts sets per-operation deadlines. Zero disables a deadline.
func WithTimeouts(download, metadata time.Duration) Option {
	return func(c *CLI) {
		c.downloadTimeout = download
		c.metadataTimeout = metadata
	}
}

// CLI wraps the yt-dlp command-line tool.
type CLI struct {
	binary          string
	exec            Executor
	logger          *slog.Logger
	downloadTimeout time.Duration
	metadataTimeout time.Duration
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary: "yt-dlp",
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Download runs yt-dlp against opts.WorkDir. The returned Result carries
// captured stderr even when the process exits non-zero.
func (c *CLI) Download(ctx context.Context, opts DownloadOptions) (Result, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return Result{}, errors.New("url required")
	}
	if strings.TrimSpace(opts.WorkDir) == "" {
		return Result{}, errors.New("working directory required")
	}

	args := []string{"--progress", "--newline", "--no-mtime"}
	if opts.AudioOnly {
		args = append(args, "-f", "bestaudio/best", "-x", "--audio-format", "mp3")
	} else if opts.Format != "" {
		args = append(args, "-f", opts.Format)
	}
	args = append(args, opts.URL)
	if section := sectionArgs(opts.SectionStart, opts.SectionEnd); section != "" {
		args = append(args, "--postprocessor-args", section)
	}

	ctx, cancel := c.withDeadline(ctx, c.downloadTimeout)
	defer cancel()

	c.trace("download", args)
	return c.exec.Run(ctx, Command{
		Binary:  c.binary,
		Args:    args,
		WorkDir: opts.WorkDir,
		OnLine:  opts.Progress,
	})
}

// FetchInfo obtains the structured metadata dump for a URL.
func (c *CLI) FetchInfo(ctx context.Context, url string) (VideoInfo, error) {
	if strings.TrimSpace(url) == "" {
		return VideoInfo{}, errors.New("url required")
	}

	ctx, cancel := c.withDeadline(ctx, c.metadataTimeout)
	defer cancel()

	args := []string{"--dump-json", "--no-warnings", url}
	c.trace("fetch info", args)
	result, err := c.exec.Run(ctx, Command{Binary: c.binary, Args: args})
	if err != nil {
		return VideoInfo{}, fmt.Errorf("yt-dlp metadata dump: %w: %s", err, result.Stderr)
	}

	var info VideoInfo
	if err := json.Unmarshal([]byte(result.Stdout), &info); err != nil {
		return VideoInfo{}, fmt.Errorf("parse metadata dump: %w", err)
	}
	return info, nil
}

// ListSubtitles returns the raw subtitle track listing for a URL.
func (c *CLI) ListSubtitles(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.New("url required")
	}

	ctx, cancel := c.withDeadline(ctx, c.metadataTimeout)
	defer cancel()

	args := []string{"--list-subs", "--skip-download", url}
	c.trace("list subtitles", args)
	result, err := c.exec.Run(ctx, Command{Binary: c.binary, Args: args})
	if err != nil {
		return "", fmt.Errorf("yt-dlp list subtitles: %w: %s", err, result.Stderr)
	}
	return result.Stdout, nil
}

// DownloadSubtitles writes subtitle files for a URL into opts.WorkDir.
func (c *CLI) DownloadSubtitles(ctx context.Context, opts SubtitleOptions) (Result, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return Result{}, errors.New("url required")
	}
	if strings.TrimSpace(opts.WorkDir) == "" {
		return Result{}, errors.New("working directory required")
	}

	args := []string{"--skip-download"}
	if !opts.AutoOnly {
		args = append(args, "--write-subs")
	}
	args = append(args, "--write-auto-subs")
	if lang := strings.TrimSpace(opts.Language); lang != "" {
		args = append(args, "--sub-langs", lang)
	}
	args = append(args, opts.URL)

	ctx, cancel := c.withDeadline(ctx, c.downloadTimeout)
	defer cancel()

	c.trace("download subtitles", args)
	return c.exec.Run(ctx, Command{
		Binary:  c.binary,
		Args:    args,
		WorkDir: opts.WorkDir,
	})
}

func (c *CLI) withDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (c *CLI) trace(operation string, args []string) {
	c.logger.Debug("invoking yt-dlp",
		logging.String("operation", operation),
		logging.String("command", shellescape.QuoteCommand(append([]string{c.binary}, args...))),
	)
}

// sectionArgs builds the post-processor passthrough for time-bounded
// sections. Mixing -f with section extraction is unreliable in yt-dlp, so
// callers leave Format empty whenever a section is requested.
func sectionArgs(start, end string) string {
	parts := make([]string, 0, 4)
	if start = strings.TrimSpace(start); start != "" {
		parts = append(parts, "-ss", start)
	}
	if end = strings.TrimSpace(end); end != "" {
		parts = append(parts, "-to", end)
	}
	if len(parts) == 0 {
		return ""
	}
	return "ffmpeg:" + strings.Join(parts, " ")
}

var _ Client = (*CLI)(nil)
