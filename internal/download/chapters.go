package download

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"ytbridge/internal/fileutil"
	"ytbridge/internal/logging"
	"ytbridge/internal/services"
)

// splitChapters extracts the requested chapters from the staged full video.
// Per-chapter trim failures are logged and skipped; partial extraction is an
// accepted degraded outcome. Only a failed metadata fetch propagates.
func (s *Service) splitChapters(ctx context.Context, logger *slog.Logger, req Request, staging *Staging) error {
	info, err := s.downloader.FetchInfo(ctx, req.URL)
	if err != nil {
		return services.Wrap(services.ErrMetadataUnavailable, "download", "chapters", "fetch video metadata", err)
	}
	if !info.HasChapters() {
		logger.Warn("video metadata defines no chapters; skipping split",
			logging.String("url", req.URL),
		)
		return nil
	}

	source, ok := staging.FirstVideoFile()
	if !ok {
		logger.Warn("no staged video file found for chapter split")
		return nil
	}
	ext := filepath.Ext(source)

	videoTitle := fileutil.SanitizeFileName(info.Title)
	if videoTitle == "" {
		videoTitle = "video"
	}

	extracted := 0
	for _, chapter := range info.Chapters {
		// Title matching is exact: case-sensitive and whitespace-sensitive.
		if req.Chapter != ChapterAll && chapter.Title != req.Chapter {
			continue
		}
		name := fmt.Sprintf("%s - %s%s", videoTitle, fileutil.SanitizeFileName(chapter.Title), ext)
		output := filepath.Join(staging.Path(), name)
		if err := s.trimmer.Trim(ctx, source, chapter.StartTime, chapter.EndTime, output); err != nil {
			logger.Warn("chapter extraction failed; continuing with remaining chapters",
				logging.String("chapter", chapter.Title),
				logging.Error(err),
			)
			continue
		}
		extracted++
		logger.Info("chapter extracted",
			logging.String("chapter", chapter.Title),
			logging.Float64("start", chapter.StartTime),
			logging.Float64("end", chapter.EndTime),
		)
	}

	if extracted == 0 {
		logger.Warn("no chapters matched the requested filter",
			logging.String("filter", req.Chapter),
		)
	}
	return nil
}
