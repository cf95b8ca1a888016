package download

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytbridge/internal/fileutil"
	"ytbridge/internal/logging"
)

// stagingPrefix names staging directories under the downloads directory.
// The leading dot keeps them out of casual directory listings.
const stagingPrefix = ".ytbridge-"

// videoExtensions are the container extensions the chapter splitter accepts
// as the staged full video.
var videoExtensions = []string{".mp4", ".mkv", ".webm", ".mov", ".avi", ".flv"}

// Staging is an ephemeral directory exclusively owned by one in-flight
// request. The per-request UUID suffix means concurrent requests against the
// same downloads directory never collide.
type Staging struct {
	path string
}

func acquireStaging(downloadsDir string) (*Staging, error) {
	path := filepath.Join(downloadsDir, stagingPrefix+uuid.NewString())
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	return &Staging{path: path}, nil
}

// Path returns the staging directory location.
func (s *Staging) Path() string {
	return s.path
}

// Files returns the staged regular files in name order.
func (s *Staging) Files() ([]string, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("list staging directory: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(s.path, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// FirstVideoFile returns the first staged file with a known video container
// extension.
func (s *Staging) FirstVideoFile() (string, bool) {
	files, err := s.Files()
	if err != nil {
		return "", false
	}
	for _, file := range files {
		if fileutil.HasAnyExtension(file, videoExtensions) {
			return file, true
		}
	}
	return "", false
}

// Release removes the staging directory recursively. Best effort; failures
// are logged, never propagated, so it is safe on every exit path.
func (s *Staging) Release(logger *slog.Logger) {
	if s == nil || s.path == "" {
		return
	}
	if err := os.RemoveAll(s.path); err != nil && logger != nil {
		logger.Warn("failed to remove staging directory",
			logging.String("path", s.path),
			logging.Error(err),
		)
	}
	s.path = ""
}

// CleanResult contains the outcome of a stale staging cleanup pass.
type CleanResult struct {
	Removed []string
	Errors  []error
}

// CleanStale removes staging directories older than maxAge. Leftovers only
// exist when a previous process was torn down before its cleanup ran.
func CleanStale(downloadsDir string, maxAge time.Duration, logger *slog.Logger) CleanResult {
	result := CleanResult{}

	entries, err := os.ReadDir(downloadsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, err)
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), stagingPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(downloadsDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			result.Errors = append(result.Errors, err)
			if logger != nil {
				logger.Warn("failed to remove stale staging directory",
					logging.String("path", path),
					logging.Error(err),
				)
			}
			continue
		}
		result.Removed = append(result.Removed, path)
		if logger != nil {
			logger.Info("removed stale staging directory",
				logging.String("path", path),
				logging.Duration("age", time.Since(info.ModTime())),
			)
		}
	}
	return result
}
