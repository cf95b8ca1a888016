// Package ffmpeg wraps the ffmpeg command-line tool for stream-copy trims.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"

	"ytbridge/internal/logging"
)

var commandContext = exec.CommandContext

// Trimmer defines the behaviour required by the chapter splitter.
type Trimmer interface {
	Trim(ctx context.Context, inputPath string, startSec, endSec float64, outputPath string) error
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

// WithLogger attaches a logger for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "ffmpeg")
		}
	}
}

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary string
	logger *slog.Logger
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Trim extracts [startSec, endSec] from inputPath into outputPath without
// re-encoding.
func (c *CLI) Trim(ctx context.Context, inputPath string, startSec, endSec float64, outputPath string) error {
	if strings.TrimSpace(inputPath) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}
	if endSec <= startSec {
		return fmt.Errorf("invalid trim range [%s, %s]", formatSeconds(startSec), formatSeconds(endSec))
	}

	args := []string{
		"-nostdin", "-y",
		"-i", inputPath,
		"-ss", formatSeconds(startSec),
		"-to", formatSeconds(endSec),
		"-c", "copy",
		outputPath,
	}

	c.logger.Debug("invoking ffmpeg",
		logging.String("command", shellescape.QuoteCommand(append([]string{c.binary}, args...))),
	)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg trim: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

var _ Trimmer = (*CLI)(nil)
