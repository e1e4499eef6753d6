package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/fitcrop"
	"github.com/five82/vedit/internal/reporter"
	"github.com/five82/vedit/internal/validation"
)

// Convert transcodes input with cfg.VideoCodec and cfg.AudioCodec. When both
// crop dimensions are set the frame is cover-scaled and center-cropped to
// CropWidth x CropHeight.
func (e *Editor) Convert(ctx context.Context, input, output string) (string, error) {
	start := time.Now()
	output = orDefault(output, input, "_converted", "")

	if e.cfg.CropWidth < 0 || e.cfg.CropHeight < 0 {
		return "", errors.NewInvalidDimensionsError(
			fmt.Sprintf("crop size %dx%d must not be negative", e.cfg.CropWidth, e.cfg.CropHeight),
			fitcrop.ErrInvalidDimensions)
	}
	if err := e.cfg.Validate(); err != nil {
		return "", errors.NewConfigError("invalid convert settings", err)
	}

	e.rep.OperationStarted(reporter.OperationInfo{Command: "convert", Inputs: []string{input}, Output: output})

	info, err := e.probe(ctx, input)
	if err != nil {
		return "", err
	}
	if !info.HasVideo {
		return "", errors.NewVideoInfoError(fmt.Sprintf("%s has no video stream", input))
	}

	source := info.Dimensions()
	expected := source
	chain := ffmpeg.NewVideoFilterChain()

	if e.cfg.CropEnabled() {
		target := fitcrop.Dimensions{Width: e.cfg.CropWidth, Height: e.cfg.CropHeight}
		fit, err := fitcrop.ComputeFit(source, target)
		if err != nil {
			return "", errors.NewInvalidDimensionsError(fmt.Sprintf("cannot fit %s onto %s", source, target), err)
		}
		e.reportFit(source, target, fit)
		if fitcrop.NeedsResize(source, target) {
			chain.AddFit(fit, target)
		}
		expected = target
	} else {
		e.rep.FitResult(reporter.FitSummary{Source: source.String(), Disabled: true})
	}

	audioEnc := ""
	if info.HasAudio {
		audioEnc = e.cfg.AudioCodec
	}
	e.rep.CodecSelection(reporter.CodecSummary{VideoEncoder: e.cfg.VideoCodec, AudioEncoder: audioEnc})

	if err := e.preflight(output, info.Size); err != nil {
		return "", err
	}

	args := ffmpeg.ConvertArgs(ffmpeg.ConvertParams{
		Input:        input,
		Output:       output,
		VideoEncoder: e.cfg.VideoCodec,
		AudioEncoder: audioEnc,
		Filters:      chain,
	})
	if err := e.run(ctx, "convert", ffmpeg.Job{Args: args, Duration: info.Duration}); err != nil {
		return "", err
	}

	err = e.finish(ctx, output, validation.Expectations{
		Dimensions: &expected,
		Duration:   &info.Duration,
		Audio:      ptr(info.HasAudio),
	})
	if err != nil {
		return "", err
	}

	e.complete("convert", start, output)
	return output, nil
}
