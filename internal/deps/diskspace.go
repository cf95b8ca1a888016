//go:build unix

package deps

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FreeSpace returns the number of bytes available to unprivileged users on
// the filesystem containing path.
func FreeSpace(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// CheckDiskSpace reports whether path has at least minFreeGiB available.
func CheckDiskSpace(path string, minFreeGiB int) Status {
	status := Status{
		Name:        "disk space",
		Command:     path,
		Description: fmt.Sprintf("At least %d GiB free in the downloads directory", minFreeGiB),
		Optional:    true,
	}
	free, err := FreeSpace(path)
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	required := uint64(minFreeGiB) * 1 << 30
	if free < required {
		status.Detail = fmt.Sprintf("only %d MiB free", free>>20)
		return status
	}
	status.Available = true
	return status
}
