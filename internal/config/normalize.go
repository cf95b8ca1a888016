package config

import (
	"fmt"
	"os"
	"strings"

	str2duration "github.com/xhit/go-str2duration/v2"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	if err := c.normalizeDownload(); err != nil {
		return err
	}
	c.normalizeSubtitles()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DownloadsDir) == "" {
		c.Paths.DownloadsDir = defaultDownloadsDir
	}
	if c.Paths.DownloadsDir, err = ExpandPath(c.Paths.DownloadsDir); err != nil {
		return fmt.Errorf("paths.downloads_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	if c.Paths.APIToken == "" {
		if value, ok := os.LookupEnv("YTBRIDGE_API_TOKEN"); ok {
			c.Paths.APIToken = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.YtdlpBinary = strings.TrimSpace(c.Tools.YtdlpBinary)
	if c.Tools.YtdlpBinary == "" {
		c.Tools.YtdlpBinary = defaultYtdlpBinary
	}
	c.Tools.FFmpegBinary = strings.TrimSpace(c.Tools.FFmpegBinary)
	if c.Tools.FFmpegBinary == "" {
		c.Tools.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Tools.DownloadTimeout <= 0 {
		c.Tools.DownloadTimeout = defaultDownloadTimeout
	}
	if c.Tools.MetadataTimeout <= 0 {
		c.Tools.MetadataTimeout = defaultMetadataTimeout
	}
}

func (c *Config) normalizeDownload() error {
	c.Download.DefaultResolution = strings.ToLower(strings.TrimSpace(c.Download.DefaultResolution))
	if c.Download.DefaultResolution == "" {
		c.Download.DefaultResolution = defaultResolution
	}
	c.Download.StagingMaxAge = strings.TrimSpace(c.Download.StagingMaxAge)
	if c.Download.StagingMaxAge == "" {
		c.Download.StagingMaxAge = defaultStagingMaxAge
	}
	age, err := str2duration.ParseDuration(c.Download.StagingMaxAge)
	if err != nil {
		return fmt.Errorf("download.staging_max_age: %w", err)
	}
	c.Download.stagingMaxAge = age
	if c.Download.MinFreeSpaceGiB < 0 {
		c.Download.MinFreeSpaceGiB = 0
	}
	return nil
}

func (c *Config) normalizeSubtitles() {
	c.Subtitles.DefaultLanguage = strings.ToLower(strings.TrimSpace(c.Subtitles.DefaultLanguage))
	if c.Subtitles.DefaultLanguage == "" {
		c.Subtitles.DefaultLanguage = defaultSubtitleLanguage
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
