package util

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// SystemInfo contains information about the host system.
type SystemInfo struct {
	Hostname string
	NumCPU   int
	OS       string
	Arch     string
}

// GetSystemInfo collects system information.
func GetSystemInfo() SystemInfo {
	hostname, _ := os.Hostname()
	return SystemInfo{
		Hostname: hostname,
		NumCPU:   runtime.NumCPU(),
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
	}
}

// CheckDiskSpace fails when the filesystem holding path has less than
// need bytes free. Unknown free space passes.
func CheckDiskSpace(path string, need uint64) error {
	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	free, ok := AvailableDiskBytes(dir)
	if !ok || free >= need {
		return nil
	}
	return fmt.Errorf("not enough free space in %s: need %s, have %s", dir, FormatBytes(need), FormatBytes(free))
}
