package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vedit/internal/errors"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

type captureLogger struct {
	lines []string
}

func (c *captureLogger) Info(format string, args ...any)  { c.lines = append(c.lines, fmt.Sprintf(format, args...)) }
func (c *captureLogger) Debug(format string, args ...any) { c.lines = append(c.lines, fmt.Sprintf(format, args...)) }

func TestFindVideoFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b_clip.mp4", "A_clip.MOV", ".hidden.mp4", "notes.txt", "c.webm")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755))

	files, err := FindVideoFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"A_clip.MOV", "b_clip.mp4", "c.webm"}, names)
}

func TestFindVideoFilesErrors(t *testing.T) {
	empty := t.TempDir()
	touch(t, empty, "readme.md")

	_, err := FindVideoFiles(empty)
	assert.True(t, errors.IsKind(err, errors.KindNoFilesFound))

	_, err = FindVideoFiles(filepath.Join(empty, "missing"))
	assert.True(t, errors.IsKind(err, errors.KindPath))

	_, err = FindVideoFiles(filepath.Join(empty, "readme.md"))
	assert.True(t, errors.IsKind(err, errors.KindPath))
}

func TestResolveInputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2.mp4", "1.mp4", "3.mp4", "4.mp4", "5.mp4", "6.mp4")

	t.Run("directory is expanded and logged", func(t *testing.T) {
		logger := &captureLogger{}
		files, err := ResolveInputs([]string{dir}, logger)
		require.NoError(t, err)
		assert.Len(t, files, 6)
		assert.Equal(t, "1.mp4", filepath.Base(files[0]))
		assert.Contains(t, logger.lines, "Found 6 video file(s)")
		assert.Contains(t, logger.lines, "  ... and 1 more")
	})

	t.Run("files keep argument order", func(t *testing.T) {
		args := []string{filepath.Join(dir, "3.mp4"), filepath.Join(dir, "1.mp4")}
		files, err := ResolveInputs(args, nil)
		require.NoError(t, err)
		assert.Equal(t, args, files)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ResolveInputs([]string{filepath.Join(dir, "1.mp4"), filepath.Join(dir, "nope.mp4")}, nil)
		assert.True(t, errors.IsKind(err, errors.KindPath))
	})

	t.Run("no inputs", func(t *testing.T) {
		_, err := ResolveInputs(nil, nil)
		assert.Error(t, err)
	})
}
