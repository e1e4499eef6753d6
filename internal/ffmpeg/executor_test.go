package ffmpeg

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgressLine(t *testing.T) {
	line := "frame=  240 fps= 48.0 q=28.0 size=    1024kB time=00:00:08.00 bitrate=1048.6kbits/s speed=1.60x"

	p := parseProgressLine(line, 16)
	assert.EqualValues(t, 240, p.Frame)
	assert.InDelta(t, 48.0, p.FPS, 0.001)
	assert.InDelta(t, 8.0, p.ElapsedSecs, 0.001)
	assert.InDelta(t, 1.6, p.Speed, 0.001)
	assert.InDelta(t, 50.0, p.Percent, 0.001)
	assert.InDelta(t, 5.0, p.ETA.Seconds(), 0.01)
}

func TestParseProgressLineClampsAndUnknownDuration(t *testing.T) {
	line := "frame=1000 fps=25 time=00:01:00.00 speed=2x"

	p := parseProgressLine(line, 30)
	assert.InDelta(t, 100.0, p.Percent, 0.001)
	assert.Zero(t, p.ETA)

	p = parseProgressLine(line, 0)
	assert.Zero(t, p.Percent)
	assert.Zero(t, p.ETA)
	assert.InDelta(t, 2.0, p.Speed, 0.001)
}

func TestParseProgress(t *testing.T) {
	stderr := strings.NewReader("Input #0, mov\n" +
		"frame=   10 fps=0.0 time=00:00:01.00 speed=1x\r" +
		"frame=   20 fps=20 time=00:00:02.00 speed=1x\r" +
		"video:1kB audio:0kB\n")

	var buf bytes.Buffer
	var got []Progress
	parseProgress(stderr, &buf, 4, func(p Progress) { got = append(got, p) })

	if assert.Len(t, got, 2) {
		assert.EqualValues(t, 10, got[0].Frame)
		assert.InDelta(t, 50.0, got[1].Percent, 0.001)
	}
	assert.Contains(t, buf.String(), "video:1kB")
}

func TestParseProgressNilCallback(t *testing.T) {
	var buf bytes.Buffer
	parseProgress(strings.NewReader("frame=1 time=00:00:01.00\r"), &buf, 1, nil)
	assert.Equal(t, "frame=1 time=00:00:01.00\r", buf.String())
}

func TestScanCRLF(t *testing.T) {
	adv, tok, err := scanCRLF([]byte("abc\rdef"), false)
	assert.NoError(t, err)
	assert.Equal(t, 4, adv)
	assert.Equal(t, "abc", string(tok))

	adv, tok, _ = scanCRLF([]byte("tail"), true)
	assert.Equal(t, 4, adv)
	assert.Equal(t, "tail", string(tok))

	adv, tok, _ = scanCRLF([]byte("partial"), false)
	assert.Zero(t, adv)
	assert.Nil(t, tok)
}

func TestNewExecutorDefaultsPath(t *testing.T) {
	assert.Equal(t, "ffmpeg", NewExecutor("", nil).path)
	assert.Equal(t, "/usr/local/bin/ffmpeg", NewExecutor("/usr/local/bin/ffmpeg", nil).path)
}

func TestRunMissingBinary(t *testing.T) {
	err := NewExecutor("/nonexistent/ffmpeg", nil).Run(context.Background(), Job{Args: []string{"-version"}}, nil)
	assert.Error(t, err)
}
