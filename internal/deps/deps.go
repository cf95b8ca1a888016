// Package deps reports availability of the external tools and resources
// ytbridge depends on at runtime.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"ytbridge/internal/config"
)

// Requirement defines an external dependency ytbridge relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries the configured tools resolve to.
func Requirements(cfg *config.Config) []Requirement {
	ytdlp := "yt-dlp"
	ffmpeg := "ffmpeg"
	if cfg != nil {
		ytdlp = cfg.Tools.YtdlpBinary
		ffmpeg = cfg.Tools.FFmpegBinary
	}
	return []Requirement{
		{Name: "yt-dlp", Command: ytdlp, Description: "Downloads media and metadata"},
		{Name: "ffmpeg", Command: ffmpeg, Description: "Stream-copy chapter trimming"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
