package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// VideoExtensions is the list of supported video file extensions.
var VideoExtensions = map[string]bool{
	".mkv":  true,
	".wmv":  true,
	".ts":   true,
	".avi":  true,
	".mp4":  true,
	".m4v":  true,
	".mpg":  true,
	".mpeg": true,
	".mov":  true,
	".webm": true,
	".flv":  true,
	".m2ts": true,
	".ogv":  true,
}

// IsVideoFile checks if the given path is an existing file with a video extension.
func IsVideoFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return VideoExtensions[strings.ToLower(filepath.Ext(path))]
}

// BasePath returns path without its extension, keeping the directory.
func BasePath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// DerivedPath returns <base><suffix><ext>. An empty ext keeps the input extension.
func DerivedPath(input, suffix, ext string) string {
	if ext == "" {
		ext = filepath.Ext(input)
	}
	return BasePath(input) + suffix + ext
}

// PartPath returns the path of split part n (1-based).
func PartPath(input string, n int) string {
	return DerivedPath(input, fmt.Sprintf("_part%d", n), "")
}

// FileExists checks if a regular file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirectoryExists checks if a directory exists.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
