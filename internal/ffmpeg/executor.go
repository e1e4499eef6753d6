package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/logging"
	"github.com/five82/vedit/internal/util"
)

// Progress is one parsed ffmpeg status line.
type Progress struct {
	Frame       uint64
	FPS         float32
	Speed       float32
	ElapsedSecs float64
	Percent     float32
	ETA         time.Duration
}

// ProgressCallback is called with progress updates while ffmpeg runs.
type ProgressCallback func(Progress)

// Job is a single ffmpeg invocation.
type Job struct {
	Args []string
	// Duration of the output in seconds, used to compute Percent. Zero
	// leaves Percent unset.
	Duration float64
	Stdin    io.Reader
	Stdout   io.Writer
}

// Executor runs ffmpeg as a child process.
type Executor struct {
	path   string
	logger *logging.Logger
}

// NewExecutor creates an executor for the given ffmpeg binary.
func NewExecutor(path string, logger *logging.Logger) *Executor {
	if path == "" {
		path = "ffmpeg"
	}
	return &Executor{path: path, logger: logger}
}

// Run executes the job and blocks until ffmpeg exits. The process is killed
// when ctx is cancelled.
func (e *Executor) Run(ctx context.Context, job Job, callback ProgressCallback) error {
	args := append([]string{"-hide_banner"}, job.Args...)
	e.logger.Debug("exec: %s %s", e.path, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.path, args...)
	cmd.Stdin = job.Stdin
	cmd.Stdout = job.Stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.NewCommandStartError(e.path, err)
	}

	if err := cmd.Start(); err != nil {
		return errors.NewCommandStartError(e.path, err)
	}

	var stderrBuf bytes.Buffer
	parseProgress(stderr, &stderrBuf, job.Duration, callback)

	err = cmd.Wait()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return errors.NewCancelledError()
	}

	output := stderrBuf.String()
	e.logger.Error("ffmpeg failed: %v\n%s", err, output)
	if strings.Contains(output, "No streams found") || strings.Contains(output, "does not contain any stream") {
		return errors.NewFFmpegError("no streams found in input")
	}
	return errors.WrapExecError(e.path, err, output)
}

// parseProgress copies stderr into buf and reports status lines, which ffmpeg
// terminates with \r rather than \n.
func parseProgress(stderr io.Reader, buf *bytes.Buffer, duration float64, callback ProgressCallback) {
	scanner := bufio.NewScanner(io.TeeReader(stderr, buf))
	scanner.Split(scanCRLF)

	for scanner.Scan() {
		line := scanner.Text()
		if callback == nil || !strings.Contains(line, "frame=") {
			continue
		}
		callback(parseProgressLine(line, duration))
	}
	// Drain on scanner error so the child never blocks on a full pipe.
	_, _ = io.Copy(io.Discard, io.TeeReader(stderr, buf))
}

var (
	frameRe = regexp.MustCompile(`frame=\s*(\d+)`)
	fpsRe   = regexp.MustCompile(`fps=\s*([\d.]+)`)
	timeRe  = regexp.MustCompile(`time=\s*(\d+:\d{2}:\d{2}(?:\.\d+)?)`)
	speedRe = regexp.MustCompile(`speed=\s*([\d.]+)x`)
)

// parseProgressLine extracts progress information from an ffmpeg status line.
func parseProgressLine(line string, duration float64) Progress {
	var p Progress

	if m := frameRe.FindStringSubmatch(line); m != nil {
		p.Frame, _ = strconv.ParseUint(m[1], 10, 64)
	}
	if m := fpsRe.FindStringSubmatch(line); m != nil {
		if f, err := strconv.ParseFloat(m[1], 32); err == nil {
			p.FPS = float32(f)
		}
	}
	if m := timeRe.FindStringSubmatch(line); m != nil {
		p.ElapsedSecs, _ = util.ParseFFmpegTime(m[1])
	}
	if m := speedRe.FindStringSubmatch(line); m != nil {
		if s, err := strconv.ParseFloat(m[1], 32); err == nil {
			p.Speed = float32(s)
		}
	}

	if duration > 0 {
		p.Percent = float32(min(p.ElapsedSecs/duration*100, 100))
		if p.Speed > 0 {
			remaining := max(duration-p.ElapsedSecs, 0)
			p.ETA = time.Duration(remaining / float64(p.Speed) * float64(time.Second))
		}
	}

	return p
}

// scanCRLF splits on either \r or \n.
func scanCRLF(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
