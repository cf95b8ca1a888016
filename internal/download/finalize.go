package download

import (
	"ytbridge/internal/fileutil"
	"ytbridge/internal/services"
)

// finalize moves every staged file into the downloads directory. An empty
// staging directory is a pipeline failure even when the downloader exited
// zero: a run must produce at least one file.
func finalize(staging *Staging, downloadsDir string) ([]string, error) {
	files, err := staging.Files()
	if err != nil {
		return nil, services.Wrap(services.ErrNoOutput, "download", "finalize", "inspect staging directory", err)
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrNoOutput, "download", "finalize", "downloader produced no files", nil)
	}

	moved := make([]string, 0, len(files))
	for _, file := range files {
		dst, err := fileutil.MoveFile(file, downloadsDir)
		if err != nil {
			return moved, services.Wrap(services.ErrExternalTool, "download", "finalize", "move staged file", err)
		}
		moved = append(moved, dst)
	}
	return moved, nil
}
