package segment

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/five82/vedit/internal/config"
	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/ffprobe"
	"github.com/five82/vedit/internal/fitcrop"
	"github.com/five82/vedit/internal/logging"
	"github.com/five82/vedit/internal/reporter"
	"github.com/five82/vedit/internal/util"
	"github.com/five82/vedit/internal/validation"
)

// Runner executes ffmpeg jobs.
type Runner interface {
	Run(ctx context.Context, job ffmpeg.Job, callback ffmpeg.ProgressCallback) error
}

// Prober reads media information.
type Prober interface {
	Probe(ctx context.Context, path string) (*ffprobe.MediaInfo, error)
}

// Pipeline decodes a video to raw frames, masks each frame and encodes the
// result.
type Pipeline struct {
	cfg       *config.Config
	runner    Runner
	prober    Prober
	detector  Detector
	segmenter Segmenter
	rep       reporter.Reporter
	logger    *logging.Logger
}

// NewPipeline creates a segmentation pipeline.
func NewPipeline(cfg *config.Config, runner Runner, prober Prober, detector Detector, segmenter Segmenter, rep reporter.Reporter, logger *logging.Logger) *Pipeline {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return &Pipeline{
		cfg:       cfg,
		runner:    runner,
		prober:    prober,
		detector:  detector,
		segmenter: segmenter,
		rep:       rep,
		logger:    logger,
	}
}

// Stats summarizes a finished run.
type Stats struct {
	Frames      int
	EmptyFrames int
}

// Run segments input into output.
func (p *Pipeline) Run(ctx context.Context, input, output string) (Stats, error) {
	start := time.Now()
	var stats Stats

	p.rep.OperationStarted(reporter.OperationInfo{Command: "segment", Inputs: []string{input}, Output: output})

	info, err := p.prober.Probe(ctx, input)
	if err != nil {
		return stats, err
	}
	if !info.HasVideo || !info.Dimensions().Valid() {
		return stats, errors.NewVideoInfoError(fmt.Sprintf("%s has no video stream", input))
	}
	if info.FrameRate <= 0 {
		return stats, errors.NewVideoInfoError(fmt.Sprintf("%s has no usable frame rate", input))
	}

	size := info.Dimensions()
	p.rep.MediaInfo(reporter.MediaSummary{
		File:       filepath.Base(input),
		Duration:   util.FormatDuration(info.Duration),
		Resolution: size.String(),
		FrameRate:  fmt.Sprintf("%.3g", info.FrameRate),
		VideoCodec: info.VideoCodec,
		AudioCodec: info.AudioCodec,
		HasAudio:   info.HasAudio,
	})
	p.rep.CodecSelection(reporter.CodecSummary{VideoEncoder: p.cfg.SegmentCodec})
	if info.HasAudio {
		p.rep.Warning("Segmented output is written without audio")
	}

	if err := util.EnsureParentDir(output); err != nil {
		return stats, errors.NewIOError(fmt.Sprintf("cannot create directory for %s", output), err)
	}

	stats, err = p.transcode(ctx, input, info, output)
	if err != nil {
		return stats, err
	}
	p.logger.Info("segment %s: %d frame(s), %d without detections", input, stats.Frames, stats.EmptyFrames)

	result, err := validation.Validate(ctx, p.prober, output, validation.Expectations{
		Dimensions: &size,
		Duration:   &info.Duration,
		Audio:      new(bool),
	})
	if err != nil {
		return stats, errors.NewCancelledError()
	}
	p.rep.ValidationComplete(result.Report())
	if !result.IsValid() {
		p.rep.Warning(fmt.Sprintf("Validation failed for %s: %s", filepath.Base(output), result.Summary()))
	}

	outSize, _ := util.GetFileSize(output)
	p.rep.OutputWritten(reporter.OutputSummary{Path: output, Size: outSize, Duration: util.FormatDuration(info.Duration)})
	p.rep.OperationComplete(reporter.OperationOutcome{Command: "segment", Outputs: []string{output}, Elapsed: time.Since(start)})
	return stats, nil
}

// transcode runs the decoder and encoder concurrently with the frame loop
// between them.
func (p *Pipeline) transcode(ctx context.Context, input string, info *ffprobe.MediaInfo, output string) (Stats, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	size := info.Dimensions()
	decR, decW := io.Pipe()
	encR, encW := io.Pipe()

	decDone := make(chan error, 1)
	go func() {
		err := p.runner.Run(runCtx, ffmpeg.Job{Args: ffmpeg.DecodeRawArgs(input), Stdout: decW}, nil)
		decW.CloseWithError(err)
		decDone <- err
	}()

	p.rep.EncodingStarted("segment")
	encDone := make(chan error, 1)
	go func() {
		job := ffmpeg.Job{
			Args:     ffmpeg.EncodeRawArgs(output, size, info.FrameRate, p.cfg.SegmentCodec),
			Stdin:    encR,
			Duration: info.Duration,
		}
		err := p.runner.Run(runCtx, job, p.progress)
		encR.CloseWithError(err)
		encDone <- err
	}()

	var stats Stats
	loopErr := p.frameLoop(ctx, decR, encW, size, &stats)
	if loopErr != nil {
		cancel()
		decR.CloseWithError(loopErr)
		encW.CloseWithError(loopErr)
	} else {
		_ = encW.Close()
	}

	decErr := <-decDone
	encErr := <-encDone

	switch {
	case ctx.Err() != nil:
		return stats, errors.NewCancelledError()
	case loopErr != nil:
		return stats, loopErr
	case decErr != nil:
		return stats, decErr
	case encErr != nil:
		return stats, encErr
	case stats.Frames == 0:
		return stats, errors.NewFFmpegError(fmt.Sprintf("no frames decoded from %s", input))
	}
	return stats, nil
}

// frameLoop reads RGB24 frames from src, masks them and writes them to dst
// until src reports EOF.
func (p *Pipeline) frameLoop(ctx context.Context, src io.Reader, dst io.Writer, size fitcrop.Dimensions, stats *Stats) error {
	frame := make([]byte, size.Width*size.Height*3)
	for {
		if _, err := io.ReadFull(src, frame); err != nil {
			switch err {
			case io.EOF:
				return nil
			case io.ErrUnexpectedEOF:
				return errors.NewFFmpegError(fmt.Sprintf("truncated frame %d", stats.Frames+1))
			default:
				return err
			}
		}

		empty, err := p.processFrame(ctx, frame, size)
		if err != nil {
			return err
		}
		stats.Frames++
		if empty {
			stats.EmptyFrames++
		}

		if _, err := dst.Write(frame); err != nil {
			if err == io.ErrClosedPipe {
				return errors.NewFFmpegError("encoder exited before all frames were written")
			}
			return err
		}
	}
}

// processFrame masks frame in place. It reports true when no object of the
// target class was found, in which case the whole frame is background.
func (p *Pipeline) processFrame(ctx context.Context, frame []byte, size fitcrop.Dimensions) (bool, error) {
	img := FrameImage(frame, size.Width, size.Height)

	boxes, err := p.detector.Detect(ctx, img)
	if err != nil {
		return false, err
	}
	boxes = FilterClass(boxes, p.cfg.TargetClass)

	var masks []*Mask
	if len(boxes) > 0 {
		masks, err = p.segmenter.Segment(ctx, img, boxes)
		if err != nil {
			return false, err
		}
	}

	mask := Union(size.Width, size.Height, masks)
	ApplyMask(frame, mask, p.cfg.Background)
	p.logger.Debug("frame: %d box(es), %d foreground pixel(s)", len(boxes), mask.Count())
	return len(boxes) == 0, nil
}

func (p *Pipeline) progress(prog ffmpeg.Progress) {
	p.rep.EncodingProgress(reporter.ProgressSnapshot{
		Frame:   prog.Frame,
		Percent: prog.Percent,
		Speed:   prog.Speed,
		FPS:     prog.FPS,
		ETA:     prog.ETA,
	})
}
