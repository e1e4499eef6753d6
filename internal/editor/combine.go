package editor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/five82/vedit/internal/discovery"
	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/fitcrop"
	"github.com/five82/vedit/internal/reporter"
	"github.com/five82/vedit/internal/validation"
)

// Combine joins inputs end to end into output. A single directory argument
// is expanded to the videos inside it. Every input is fitted onto the first
// input's frame size. An empty codec reuses the first input's codec.
func (e *Editor) Combine(ctx context.Context, output string, inputs []string, codec string) (string, error) {
	start := time.Now()

	files, err := discovery.ResolveInputs(inputs, e.logger)
	if err != nil {
		return "", err
	}
	if output == "" {
		return "", errors.NewPathError("an output path is required")
	}

	e.rep.OperationStarted(reporter.OperationInfo{Command: "combine", Inputs: files, Output: output})

	concat := ffmpeg.ConcatParams{Output: output, WithAudio: true}
	var (
		first      fitcrop.Dimensions
		firstAudio string
		videoCodec string
		duration   float64
		totalSize  uint64
	)

	for i, path := range files {
		info, err := e.probe(ctx, path)
		if err != nil {
			return "", err
		}
		if !info.HasVideo {
			return "", errors.NewVideoInfoError(fmt.Sprintf("%s has no video stream", path))
		}

		if i == 0 {
			first = info.Dimensions()
			concat.Target = first
			videoCodec = info.VideoCodec
			firstAudio = info.AudioCodec
		}

		fit, err := fitcrop.ComputeFit(info.Dimensions(), first)
		if err != nil {
			return "", errors.NewInvalidDimensionsError(fmt.Sprintf("cannot fit %s onto %s", filepath.Base(path), first), err)
		}
		if fitcrop.NeedsResize(info.Dimensions(), first) {
			e.reportFit(info.Dimensions(), first, fit)
		}

		if !info.HasAudio && concat.WithAudio {
			concat.WithAudio = false
			e.rep.Warning(fmt.Sprintf("%s has no audio stream, combining video only", filepath.Base(path)))
		}

		concat.Inputs = append(concat.Inputs, ffmpeg.ConcatInput{Path: path, Fit: fit})
		duration += info.Duration
		totalSize += info.Size
	}

	codecs := reporter.CodecSummary{VideoEncoder: codec}
	if codec == "" {
		codecs.VideoEncoder, codecs.VideoFallback = e.videoEncoder(videoCodec)
	}
	if concat.WithAudio {
		codecs.AudioEncoder, codecs.AudioFallback = e.audioEncoder(firstAudio)
	}
	concat.VideoEncoder = codecs.VideoEncoder
	concat.AudioEncoder = codecs.AudioEncoder
	e.rep.CodecSelection(codecs)

	if err := e.preflight(output, totalSize); err != nil {
		return "", err
	}

	job := ffmpeg.Job{Args: ffmpeg.ConcatArgs(concat), Duration: duration}
	if err := e.run(ctx, fmt.Sprintf("combine %d files", len(files)), job); err != nil {
		return "", err
	}

	err = e.finish(ctx, output, validation.Expectations{
		Dimensions: &first,
		Duration:   &duration,
		Audio:      ptr(concat.WithAudio),
	})
	if err != nil {
		return "", err
	}

	e.complete("combine", start, output)
	return output, nil
}

func (e *Editor) reportFit(source, target fitcrop.Dimensions, fit fitcrop.Result) {
	e.rep.FitResult(reporter.FitSummary{
		Source: source.String(),
		Target: target.String(),
		Scaled: fit.Scaled().String(),
		CropX:  fit.CropX,
		CropY:  fit.CropY,
	})
}
