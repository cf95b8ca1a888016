package config

import (
	"fmt"
	"strings"
)

var validResolutions = map[string]struct{}{
	"480p":  {},
	"720p":  {},
	"1080p": {},
	"best":  {},
}

// Validate checks configuration values that cannot be repaired by normalize.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.DownloadsDir) == "" {
		return fmt.Errorf("paths.downloads_dir is required")
	}
	if _, ok := validResolutions[c.Download.DefaultResolution]; !ok {
		return fmt.Errorf("download.default_resolution: unsupported value %q (use 480p, 720p, 1080p, or best)", c.Download.DefaultResolution)
	}
	if c.Download.stagingMaxAge <= 0 {
		return fmt.Errorf("download.staging_max_age must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
