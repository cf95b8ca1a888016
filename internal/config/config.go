package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DownloadsDir string `toml:"downloads_dir"`
	LogDir       string `toml:"log_dir"`
	APIBind      string `toml:"api_bind"`
	APIToken     string `toml:"api_token"`
}

// Tools contains the external binaries ytbridge shells out to.
type Tools struct {
	YtdlpBinary     string `toml:"ytdlp_binary"`
	FFmpegBinary    string `toml:"ffmpeg_binary"`
	DownloadTimeout int    `toml:"download_timeout"`
	MetadataTimeout int    `toml:"metadata_timeout"`
}

// Download contains defaults for the video download workflow.
type Download struct {
	DefaultResolution string `toml:"default_resolution"`
	StagingMaxAge     string `toml:"staging_max_age"`
	MinFreeSpaceGiB   int    `toml:"min_free_space_gib"`

	stagingMaxAge time.Duration
}

// Subtitles contains defaults for subtitle and transcript operations.
type Subtitles struct {
	DefaultLanguage string `toml:"default_language"`
}

// History contains configuration for the download history store.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ytbridge.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Tools     Tools     `toml:"tools"`
	Download  Download  `toml:"download"`
	Subtitles Subtitles `toml:"subtitles"`
	History   History   `toml:"history"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default config location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/ytbridge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When no file exists at
// the resolved location the defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to path, creating
// parent directories as needed. It refuses to overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// StagingMaxAge returns the parsed staging directory retention age.
func (c *Config) StagingMaxAge() time.Duration {
	return c.Download.stagingMaxAge
}

// HistoryDBPath returns the location of the download history database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// LockFilePath returns the path of the serve single-instance lock file.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.Paths.LogDir, "ytbridge.lock")
}

// DownloadTimeout returns the downloader timeout as a duration.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Tools.DownloadTimeout) * time.Second
}

// MetadataTimeout returns the metadata fetch timeout as a duration.
func (c *Config) MetadataTimeout() time.Duration {
	return time.Duration(c.Tools.MetadataTimeout) * time.Second
}
