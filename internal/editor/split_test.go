package editor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vedit/internal/errors"
)

func TestPlanParts(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		chunk    int
		want     []Part
	}{
		{"exact multiple", 20, 10, []Part{{1, 0, 10}, {2, 10, 10}}},
		{"remainder", 25, 10, []Part{{1, 0, 10}, {2, 10, 10}, {3, 20, 5}}},
		{"shorter than chunk", 3, 5, []Part{{1, 0, 3}}},
		{"empty", 0, 10, nil},
		{"invalid chunk", 10, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanParts(tt.duration, tt.chunk))
		})
	}
}

func TestSplit(t *testing.T) {
	h := newHarness(t.TempDir())
	input := h.touch("clip.mp4", hdClip(25))
	for i, d := range []float64{10, 10, 5} {
		info := hdClip(d)
		h.expect(fmt.Sprintf("clip_part%d.mp4", i+1), info)
	}

	outputs, err := h.editor().Split(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{h.path("clip_part1.mp4"), h.path("clip_part2.mp4"), h.path("clip_part3.mp4")}, outputs)
	require.Len(t, h.runner.jobs, 3)

	last := h.runner.jobs[2]
	assert.Equal(t, "20", argValue(last.Args, "-ss"))
	assert.Equal(t, "5", argValue(last.Args, "-t"))
	assert.Equal(t, "libx264", argValue(last.Args, "-c:v"))
	assert.Equal(t, "aac", argValue(last.Args, "-c:a"))
	assert.Equal(t, 5.0, last.Duration)

	assert.Len(t, h.rep.parts, 3)
	assert.Equal(t, 3, h.rep.parts[2].Total)
	assert.Len(t, h.rep.validations, 3)
	for _, v := range h.rep.validations {
		assert.True(t, v.Passed, v.File)
	}
	assert.Empty(t, h.rep.warnings)
	require.Len(t, h.rep.completed, 1)
	assert.Equal(t, outputs, h.rep.completed[0].Outputs)
}

func TestSplitFiveSecondChunksWithoutAudio(t *testing.T) {
	h := newHarness(t.TempDir())
	h.cfg.ChunkSeconds = 5

	info := hdClip(7)
	info.HasAudio = false
	info.AudioCodec = ""
	input := h.touch("silent.mov", info)
	h.expect("silent_part1.mov", hdClip(5))
	h.expect("silent_part2.mov", hdClip(2))

	outputs, err := h.editor().Split(context.Background(), input)
	require.NoError(t, err)
	assert.Len(t, outputs, 2)

	args := h.runner.jobs[0].Args
	assert.Contains(t, args, "-an")
	assert.NotContains(t, args, "-c:a")

	// The fake outputs report audio, which split did not expect.
	assert.False(t, h.rep.validations[0].Passed)
	assert.NotEmpty(t, h.rep.warnings)
}

func TestSplitRejectsChunkSize(t *testing.T) {
	h := newHarness(t.TempDir())
	h.cfg.ChunkSeconds = 7
	input := h.touch("clip.mp4", hdClip(25))

	_, err := h.editor().Split(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
	assert.Empty(t, h.runner.jobs)
}

func TestSplitFallsBackForUnknownCodec(t *testing.T) {
	h := newHarness(t.TempDir())
	info := hdClip(4)
	info.VideoCodec = "cinepak"
	input := h.touch("old.avi", info)
	h.expect("old_part1.avi", hdClip(4))

	_, err := h.editor().Split(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "libx264", argValue(h.runner.jobs[0].Args, "-c:v"))
	require.Len(t, h.rep.codecs, 1)
	assert.True(t, h.rep.codecs[0].VideoFallback)
	require.NotEmpty(t, h.rep.warnings)
	assert.Contains(t, h.rep.warnings[0], "cinepak")
}

func TestSplitStopsOnRunnerError(t *testing.T) {
	h := newHarness(t.TempDir())
	h.runner.err = errors.NewCommandFailedError("ffmpeg", 1, "Invalid data found")
	input := h.touch("clip.mp4", hdClip(25))

	outputs, err := h.editor().Split(context.Background(), input)
	require.Error(t, err)
	assert.Empty(t, outputs)
	assert.Len(t, h.runner.jobs, 1)
	assert.Len(t, h.rep.errors, 1)
}

func TestSplitCancelled(t *testing.T) {
	h := newHarness(t.TempDir())
	input := h.touch("clip.mp4", hdClip(25))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.editor().Split(ctx, input)
	assert.True(t, errors.IsCancelled(err))
	assert.Empty(t, h.runner.jobs)
}
