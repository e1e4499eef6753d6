//go:build unix

package ffmpeg

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vedit/internal/errors"
)

// fakeFFmpeg writes a shell script standing in for the ffmpeg binary.
func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestRunReportsProgress(t *testing.T) {
	bin := fakeFFmpeg(t, `printf 'frame=  5 fps=5 time=00:00:01.00 speed=1x\r' >&2
printf 'frame= 10 fps=5 time=00:00:02.00 speed=1x\r' >&2
exit 0`)

	var got []Progress
	err := NewExecutor(bin, nil).Run(context.Background(), Job{Args: []string{"-i", "in.mp4", "out.mp4"}, Duration: 2}, func(p Progress) {
		got = append(got, p)
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 100.0, got[1].Percent, 0.001)
}

func TestRunPipesStdinToStdout(t *testing.T) {
	bin := fakeFFmpeg(t, `cat`)

	var out bytes.Buffer
	err := NewExecutor(bin, nil).Run(context.Background(), Job{Stdin: strings.NewReader("rgbrgb"), Stdout: &out}, nil)
	require.NoError(t, err)
	assert.Equal(t, "rgbrgb", out.String())
}

func TestRunFailure(t *testing.T) {
	bin := fakeFFmpeg(t, `echo "clip.mp4: Invalid data found when processing input" >&2
exit 1`)

	err := NewExecutor(bin, nil).Run(context.Background(), Job{}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindCommand))
	assert.Contains(t, err.Error(), "Invalid data found")
}

func TestRunNoStreams(t *testing.T) {
	bin := fakeFFmpeg(t, `echo "Output file #0 does not contain any stream" >&2
exit 1`)

	err := NewExecutor(bin, nil).Run(context.Background(), Job{}, nil)
	assert.True(t, errors.IsKind(err, errors.KindFFmpeg))
}

func TestRunCancelled(t *testing.T) {
	bin := fakeFFmpeg(t, `exec sleep 10`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := NewExecutor(bin, nil).Run(ctx, Job{}, nil)
	assert.True(t, errors.IsCancelled(err))
}
