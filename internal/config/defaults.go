package config

const (
	defaultDownloadsDir     = "~/Downloads"
	defaultLogDir           = "~/.local/share/ytbridge/logs"
	defaultAPIBind          = "127.0.0.1:8573"
	defaultYtdlpBinary      = "yt-dlp"
	defaultFFmpegBinary     = "ffmpeg"
	defaultDownloadTimeout  = 3600
	defaultMetadataTimeout  = 120
	defaultResolution       = "720p"
	defaultStagingMaxAge    = "36h"
	defaultMinFreeSpaceGiB  = 1
	defaultSubtitleLanguage = "en"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultHistoryEnabled   = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadsDir: defaultDownloadsDir,
			LogDir:       defaultLogDir,
			APIBind:      defaultAPIBind,
		},
		Tools: Tools{
			YtdlpBinary:     defaultYtdlpBinary,
			FFmpegBinary:    defaultFFmpegBinary,
			DownloadTimeout: defaultDownloadTimeout,
			MetadataTimeout: defaultMetadataTimeout,
		},
		Download: Download{
			DefaultResolution: defaultResolution,
			StagingMaxAge:     defaultStagingMaxAge,
			MinFreeSpaceGiB:   defaultMinFreeSpaceGiB,
		},
		Subtitles: Subtitles{
			DefaultLanguage: defaultSubtitleLanguage,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
