// Package editor implements the vedit editing operations on top of ffmpeg.
package editor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/five82/vedit/internal/config"
	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/ffprobe"
	"github.com/five82/vedit/internal/logging"
	"github.com/five82/vedit/internal/reporter"
	"github.com/five82/vedit/internal/util"
	"github.com/five82/vedit/internal/validation"
)

// Runner executes ffmpeg jobs. *ffmpeg.Executor satisfies it.
type Runner interface {
	Run(ctx context.Context, job ffmpeg.Job, callback ffmpeg.ProgressCallback) error
}

// Prober reads media information. *ffprobe.Prober satisfies it.
type Prober interface {
	Probe(ctx context.Context, path string) (*ffprobe.MediaInfo, error)
}

// Editor runs editing operations.
type Editor struct {
	cfg    *config.Config
	runner Runner
	prober Prober
	rep    reporter.Reporter
	logger *logging.Logger
}

// New creates an Editor. A nil reporter is replaced with reporter.NullReporter.
func New(cfg *config.Config, runner Runner, prober Prober, rep reporter.Reporter, logger *logging.Logger) *Editor {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return &Editor{cfg: cfg, runner: runner, prober: prober, rep: rep, logger: logger}
}

// probe reads path and reports its media summary.
func (e *Editor) probe(ctx context.Context, path string) (*ffprobe.MediaInfo, error) {
	info, err := e.prober.Probe(ctx, path)
	if err != nil {
		e.rep.Error(reporter.ReporterError{
			Title:      "Analysis Error",
			Message:    fmt.Sprintf("Could not analyze %s: %v", filepath.Base(path), err),
			Context:    fmt.Sprintf("File: %s", path),
			Suggestion: "Check if the file is a valid media file",
		})
		return nil, err
	}

	e.rep.MediaInfo(reporter.MediaSummary{
		File:       filepath.Base(path),
		Duration:   util.FormatDuration(info.Duration),
		Resolution: resolution(info),
		FrameRate:  fmt.Sprintf("%.3g", info.FrameRate),
		VideoCodec: info.VideoCodec,
		AudioCodec: info.AudioCodec,
		HasAudio:   info.HasAudio,
	})
	return info, nil
}

func resolution(info *ffprobe.MediaInfo) string {
	if !info.HasVideo {
		return ""
	}
	return info.Dimensions().String()
}

// run executes one ffmpeg job and forwards its progress.
func (e *Editor) run(ctx context.Context, label string, job ffmpeg.Job) error {
	e.rep.EncodingStarted(label)
	err := e.runner.Run(ctx, job, func(p ffmpeg.Progress) {
		e.rep.EncodingProgress(reporter.ProgressSnapshot{
			Frame:   p.Frame,
			Percent: p.Percent,
			Speed:   p.Speed,
			FPS:     p.FPS,
			ETA:     p.ETA,
		})
	})
	if err != nil && !errors.IsCancelled(err) {
		e.rep.Error(reporter.ReporterError{
			Title:      "FFmpeg Error",
			Message:    err.Error(),
			Context:    label,
			Suggestion: "Run with --verbose and check the log file for the full ffmpeg output",
		})
	}
	return err
}

// videoEncoder picks the encoder for a probed video codec, warning on fallback.
func (e *Editor) videoEncoder(codec string) (string, bool) {
	enc, ok := ffmpeg.VideoEncoder(codec)
	if !ok {
		e.rep.Warning(fmt.Sprintf("No encoder known for video codec %q, using %s", codec, enc))
	}
	return enc, !ok
}

// audioEncoder picks the encoder for a probed audio codec, warning on fallback.
func (e *Editor) audioEncoder(codec string) (string, bool) {
	enc, ok := ffmpeg.AudioEncoder(codec)
	if !ok {
		e.rep.Warning(fmt.Sprintf("No encoder known for audio codec %q, using %s", codec, enc))
	}
	return enc, !ok
}

// preflight ensures the output directory exists and has room for roughly
// need bytes.
func (e *Editor) preflight(output string, need uint64) error {
	if err := util.EnsureParentDir(output); err != nil {
		return errors.NewIOError(fmt.Sprintf("cannot create directory for %s", output), err)
	}
	if err := util.CheckDiskSpace(output, need); err != nil {
		return errors.NewIOError("insufficient disk space", err)
	}
	return nil
}

// finish validates a written output and reports it.
func (e *Editor) finish(ctx context.Context, output string, exp validation.Expectations) error {
	result, err := validation.Validate(ctx, e.prober, output, exp)
	if err != nil {
		return errors.NewCancelledError()
	}

	e.rep.ValidationComplete(result.Report())
	if !result.IsValid() {
		e.rep.Warning(fmt.Sprintf("Validation failed for %s: %s", filepath.Base(output), result.Summary()))
	}

	size, _ := util.GetFileSize(output)
	summary := reporter.OutputSummary{Path: output, Size: size}
	if exp.Duration != nil {
		summary.Duration = util.FormatDuration(*exp.Duration)
	}
	e.rep.OutputWritten(summary)
	return nil
}

// complete reports the end of a command.
func (e *Editor) complete(command string, start time.Time, outputs ...string) {
	e.rep.OperationComplete(reporter.OperationOutcome{
		Command: command,
		Outputs: outputs,
		Elapsed: time.Since(start),
	})
}

// orDefault returns output, or the derived default when output is empty.
func orDefault(output, input, suffix, ext string) string {
	if output != "" {
		return output
	}
	return util.DerivedPath(input, suffix, ext)
}

func ptr[T any](v T) *T { return &v }
