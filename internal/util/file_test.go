package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedPaths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"converted keeps ext", DerivedPath("/videos/clip.mov", "_converted", ""), "/videos/clip_converted.mov"},
		{"audio forces mp3", DerivedPath("/videos/clip.mov", "_audio", ".mp3"), "/videos/clip_audio.mp3"},
		{"thumbnail jpg", DerivedPath("clip.mp4", "_thumbnail", ".jpg"), "clip_thumbnail.jpg"},
		{"replaced audio", DerivedPath("a/b.c/clip.mkv", "_with_replaced_audio", ""), "a/b.c/clip_with_replaced_audio.mkv"},
		{"first part", PartPath("/videos/clip.mp4", 1), "/videos/clip_part1.mp4"},
		{"twelfth part", PartPath("clip.webm", 12), "clip_part12.webm"},
		{"no extension", DerivedPath("clip", "_converted", ""), "clip_converted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestIsVideoFile(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.MP4")
	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(video, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(text, []byte("x"), 0644))

	assert.True(t, IsVideoFile(video))
	assert.False(t, IsVideoFile(text))
	assert.False(t, IsVideoFile(dir))
	assert.False(t, IsVideoFile(filepath.Join(dir, "missing.mp4")))
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "a", "b", "out.mp4")

	require.NoError(t, EnsureParentDir(out))
	assert.True(t, DirectoryExists(filepath.Dir(out)))
	assert.False(t, FileExists(out))

	require.NoError(t, os.WriteFile(out, []byte("12345"), 0644))
	assert.True(t, FileExists(out))
	size, err := GetFileSize(out)
	require.NoError(t, err)
	assert.EqualValues(t, 5, size)

	require.NoError(t, EnsureParentDir("relative.mp4"))
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, CheckDiskSpace(filepath.Join(dir, "out.mp4"), 1))

	if _, ok := AvailableDiskBytes(dir); ok {
		assert.Error(t, CheckDiskSpace(filepath.Join(dir, "out.mp4"), 1<<62))
	}
}

func TestGetSystemInfo(t *testing.T) {
	info := GetSystemInfo()
	assert.Positive(t, info.NumCPU)
	assert.NotEmpty(t, info.OS)
}
