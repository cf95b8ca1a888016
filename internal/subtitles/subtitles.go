// Package subtitles implements subtitle listing, retrieval, and transcript
// derivation on top of the yt-dlp client.
package subtitles

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ytbridge/internal/config"
	"ytbridge/internal/fileutil"
	"ytbridge/internal/logging"
	"ytbridge/internal/services"
	"ytbridge/internal/services/ytdlp"
)

// subtitleExtensions are the file extensions yt-dlp produces for subtitle
// tracks.
var subtitleExtensions = []string{".vtt", ".srt", ".ass", ".lrc"}

// Service exposes the subtitle operations.
type Service struct {
	downloadsDir    string
	defaultLanguage string
	client          ytdlp.Client
	logger          *slog.Logger
}

// NewService constructs the subtitle service from configuration.
func NewService(cfg *config.Config, client ytdlp.Client, logger *slog.Logger) *Service {
	return &Service{
		downloadsDir:    cfg.Paths.DownloadsDir,
		defaultLanguage: cfg.Subtitles.DefaultLanguage,
		client:          client,
		logger:          logging.NewComponentLogger(logger, "subtitles"),
	}
}

// List returns the raw subtitle track listing exactly as yt-dlp prints it.
func (s *Service) List(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := validateURL(rawURL); err != nil {
		return "", err
	}

	listing, err := s.client.ListSubtitles(ctx, rawURL)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "subtitles", "list", "list subtitle tracks", err)
	}
	return listing, nil
}

// Download holds the outcome of a subtitle retrieval: the files moved into
// the downloads directory and the contents of the first track.
type Download struct {
	Paths   []string
	Content string
}

// Download fetches manual and auto-generated subtitles for a URL and moves
// them into the downloads directory.
func (s *Service) Download(ctx context.Context, rawURL, language string) (Download, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := validateURL(rawURL); err != nil {
		return Download{}, err
	}
	lang, err := s.resolveLanguage(language)
	if err != nil {
		return Download{}, err
	}

	logger := logging.WithContext(ctx, s.logger)

	staging, cleanup, err := s.acquireStaging()
	if err != nil {
		return Download{}, err
	}
	defer cleanup(logger)

	logger.Info("downloading subtitles",
		logging.String("url", rawURL),
		logging.String("language", lang),
	)

	result, err := s.client.DownloadSubtitles(ctx, ytdlp.SubtitleOptions{
		URL:      rawURL,
		Language: lang,
		WorkDir:  staging,
	})
	if err != nil {
		return Download{}, services.Wrap(services.ErrDownloadFailed, "subtitles", "yt-dlp", result.Stderr, err)
	}

	files, err := subtitleFiles(staging)
	if err != nil {
		return Download{}, services.Wrap(services.ErrExternalTool, "subtitles", "staging", "list staged files", err)
	}
	if len(files) == 0 {
		return Download{}, services.Wrap(services.ErrNoOutput, "subtitles", "download",
			fmt.Sprintf("no subtitle tracks available for language %q", lang), nil)
	}

	content, err := os.ReadFile(files[0])
	if err != nil {
		return Download{}, services.Wrap(services.ErrExternalTool, "subtitles", "read", "read subtitle file", err)
	}

	out := Download{Content: string(content)}
	for _, file := range files {
		dest, err := fileutil.MoveFile(file, s.downloadsDir)
		if err != nil {
			return Download{}, services.Wrap(services.ErrExternalTool, "subtitles", "finalize", "move subtitle file", err)
		}
		out.Paths = append(out.Paths, dest)
	}

	logger.Info("subtitles saved", logging.Int("files", len(out.Paths)))
	return out, nil
}

// Transcript derives a plain-text transcript from the auto-generated captions
// for a URL. Nothing is persisted; the staged subtitle files are discarded
// after cleaning.
func (s *Service) Transcript(ctx context.Context, rawURL, language string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := validateURL(rawURL); err != nil {
		return "", err
	}
	lang, err := s.resolveLanguage(language)
	if err != nil {
		return "", err
	}

	logger := logging.WithContext(ctx, s.logger)

	staging, cleanup, err := s.acquireStaging()
	if err != nil {
		return "", err
	}
	defer cleanup(logger)

	result, err := s.client.DownloadSubtitles(ctx, ytdlp.SubtitleOptions{
		URL:      rawURL,
		Language: lang,
		AutoOnly: true,
		WorkDir:  staging,
	})
	if err != nil {
		return "", services.Wrap(services.ErrDownloadFailed, "subtitles", "yt-dlp", result.Stderr, err)
	}

	files, err := subtitleFiles(staging)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "subtitles", "staging", "list staged files", err)
	}
	if len(files) == 0 {
		return "", services.Wrap(services.ErrNoOutput, "subtitles", "transcript",
			fmt.Sprintf("no captions available for language %q", lang), nil)
	}

	content, err := os.ReadFile(files[0])
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "subtitles", "read", "read caption file", err)
	}

	transcript := Clean(string(content))
	if transcript == "" {
		return "", services.Wrap(services.ErrNoOutput, "subtitles", "transcript", "captions contained no text", nil)
	}
	return transcript, nil
}

func (s *Service) resolveLanguage(language string) (string, error) {
	if strings.TrimSpace(language) == "" {
		language = s.defaultLanguage
	}
	return NormalizeLanguage(language)
}

// acquireStaging creates a scratch directory under the downloads directory.
// The shared hidden prefix means stale-staging cleanup covers leftovers from
// interrupted runs.
func (s *Service) acquireStaging() (string, func(*slog.Logger), error) {
	path, err := os.MkdirTemp(s.downloadsDir, ".ytbridge-subs-")
	if err != nil {
		return "", nil, services.Wrap(services.ErrConfiguration, "subtitles", "staging", "prepare staging directory", err)
	}
	cleanup := func(logger *slog.Logger) {
		if err := os.RemoveAll(path); err != nil && logger != nil {
			logger.Warn("failed to remove subtitle staging directory",
				logging.String("path", path),
				logging.Error(err),
			)
		}
	}
	return path, cleanup, nil
}

func subtitleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if fileutil.HasAnyExtension(entry.Name(), subtitleExtensions) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func validateURL(raw string) error {
	if raw == "" {
		return services.Wrap(services.ErrInvalidInput, "subtitles", "validate", "url is required", nil)
	}
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return services.Wrap(services.ErrInvalidInput, "subtitles", "validate",
			fmt.Sprintf("malformed url %q", raw), err)
	}
	return nil
}
