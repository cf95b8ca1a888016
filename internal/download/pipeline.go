package download

import (
	"context"
	"fmt"
	"log/slog"

	"ytbridge/internal/config"
	"ytbridge/internal/logging"
	"ytbridge/internal/services"
	"ytbridge/internal/services/ffmpeg"
	"ytbridge/internal/services/ytdlp"
)

// Service runs the download workflow against one downloads directory.
// It holds no per-request state; every Run owns its own staging directory.
type Service struct {
	downloadsDir      string
	defaultResolution string
	downloader        ytdlp.Client
	trimmer           ffmpeg.Trimmer
	logger            *slog.Logger
}

// NewService constructs the workflow service from configuration and clients.
func NewService(cfg *config.Config, downloader ytdlp.Client, trimmer ffmpeg.Trimmer, logger *slog.Logger) *Service {
	return &Service{
		downloadsDir:      cfg.Paths.DownloadsDir,
		defaultResolution: cfg.Download.DefaultResolution,
		downloader:        downloader,
		trimmer:           trimmer,
		logger:            logging.NewComponentLogger(logger, "download"),
	}
}

// Run executes the five workflow stages in order: validate, select format,
// download into staging, optionally split chapters, and finalize. The
// staging directory is removed on every exit path.
func (s *Service) Run(ctx context.Context, req Request) (string, error) {
	req.normalize(s.defaultResolution)
	if err := req.Validate(); err != nil {
		return "", err
	}

	logger := logging.WithContext(ctx, s.logger)

	staging, err := acquireStaging(s.downloadsDir)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "download", "staging", "prepare staging directory", err)
	}
	defer staging.Release(logger)

	// Format selection and section extraction interact badly inside yt-dlp,
	// so any section or chapter request falls back to its default streams.
	format := ""
	if !req.hasSection() && req.Chapter == "" {
		format = SelectFormat(RecognizedPlatform(req.URL), req.Resolution)
	}

	logger.Info("starting download",
		logging.String("url", req.URL),
		logging.String("format", format),
		logging.String("staging", staging.Path()),
	)

	result, err := s.downloader.Download(ctx, ytdlp.DownloadOptions{
		URL:          req.URL,
		Format:       format,
		SectionStart: req.StartTime,
		SectionEnd:   req.EndTime,
		WorkDir:      staging.Path(),
		Progress: func(line string) {
			logger.Debug("yt-dlp progress", logging.String("line", line))
		},
	})
	if err != nil {
		return "", services.Wrap(services.ErrDownloadFailed, "download", "yt-dlp", result.Stderr, err)
	}
	if result.Stderr != "" {
		logger.Debug("yt-dlp diagnostics on successful run", logging.String("stderr", result.Stderr))
	}

	var splitErr error
	if req.Chapter != "" {
		splitErr = s.splitChapters(ctx, logger, req, staging)
	}

	// The full video is finalized even when chapter metadata was
	// unavailable; only then does the split failure propagate.
	moved, finalizeErr := finalize(staging, s.downloadsDir)
	if splitErr != nil {
		return "", splitErr
	}
	if finalizeErr != nil {
		return "", finalizeErr
	}

	logger.Info("download complete",
		logging.Int("files", len(moved)),
		logging.String("destination", s.downloadsDir),
	)
	return fmt.Sprintf("Download complete: %d file(s) saved to %s", len(moved), s.downloadsDir), nil
}

// RunAudio downloads the best available audio stream as mp3, using the same
// staging and finalize discipline as the video workflow.
func (s *Service) RunAudio(ctx context.Context, rawURL string) (string, error) {
	req := Request{URL: rawURL}
	req.normalize(s.defaultResolution)
	if err := validateURL(req.URL); err != nil {
		return "", err
	}

	logger := logging.WithContext(ctx, s.logger)

	staging, err := acquireStaging(s.downloadsDir)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "download", "staging", "prepare staging directory", err)
	}
	defer staging.Release(logger)

	logger.Info("starting audio download", logging.String("url", req.URL))

	result, err := s.downloader.Download(ctx, ytdlp.DownloadOptions{
		URL:       req.URL,
		AudioOnly: true,
		WorkDir:   staging.Path(),
		Progress: func(line string) {
			logger.Debug("yt-dlp progress", logging.String("line", line))
		},
	})
	if err != nil {
		return "", services.Wrap(services.ErrDownloadFailed, "download", "yt-dlp", result.Stderr, err)
	}

	moved, err := finalize(staging, s.downloadsDir)
	if err != nil {
		return "", err
	}

	logger.Info("audio download complete", logging.Int("files", len(moved)))
	return fmt.Sprintf("Audio download complete: %d file(s) saved to %s", len(moved), s.downloadsDir), nil
}
