// Package discovery resolves command line inputs into video files.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/util"
)

// DiscoveryLogger defines the interface for discovery logging.
type DiscoveryLogger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// FindVideoFiles returns the video files directly inside dir, sorted
// case-insensitively by name. Hidden files and subdirectories are skipped.
func FindVideoFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewPathError(fmt.Sprintf("directory does not exist: %s", dir))
	}
	if !info.IsDir() {
		return nil, errors.NewPathError(fmt.Sprintf("%s is not a directory", dir))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("cannot read directory %s", dir), err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fullPath := filepath.Join(dir, entry.Name())
		if util.IsVideoFile(fullPath) {
			files = append(files, fullPath)
		}
	}

	if len(files) == 0 {
		return nil, errors.NewNoFilesFoundError(dir)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files, nil
}

// ResolveInputs expands args into input files. A single directory argument
// is replaced by the videos it contains; otherwise every argument must be an
// existing file and order is preserved.
func ResolveInputs(args []string, logger DiscoveryLogger) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.NewPathError("at least one input is required")
	}

	if len(args) == 1 && util.DirectoryExists(args[0]) {
		files, err := FindVideoFiles(args[0])
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logDiscoveredFiles(files, logger)
		}
		return files, nil
	}

	for _, arg := range args {
		if !util.FileExists(arg) {
			return nil, errors.NewPathError(fmt.Sprintf("input file not found: %s", arg))
		}
	}
	return args, nil
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(files []string, logger DiscoveryLogger) {
	logger.Info("Found %d video file(s)", len(files))

	for _, f := range files[:min(5, len(files))] {
		logger.Debug("  %s", filepath.Base(f))
	}
	if len(files) > 5 {
		logger.Debug("  ... and %d more", len(files)-5)
	}
}
