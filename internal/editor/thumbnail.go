package editor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"

	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/fitcrop"
	"github.com/five82/vedit/internal/reporter"
	"github.com/five82/vedit/internal/util"
)

// ThumbnailOptions controls frame selection and sizing.
type ThumbnailOptions struct {
	// At is the frame time in seconds.
	At float64
	// Width and Height, when both zero, keep the frame size.
	Width  int
	Height int
}

// Thumbnail saves the frame at opts.At as an image. The format follows the
// output extension.
func (e *Editor) Thumbnail(ctx context.Context, input, output string, opts ThumbnailOptions) (string, error) {
	start := time.Now()
	output = orDefault(output, input, "_thumbnail", ".jpg")

	if _, err := imaging.FormatFromFilename(output); err != nil {
		return "", errors.NewPathError(fmt.Sprintf("unsupported image format for %s", output))
	}

	e.rep.OperationStarted(reporter.OperationInfo{Command: "thumbnail", Inputs: []string{input}, Output: output})

	info, err := e.probe(ctx, input)
	if err != nil {
		return "", err
	}
	if !info.HasVideo {
		return "", errors.NewVideoInfoError(fmt.Sprintf("%s has no video stream", input))
	}
	if opts.At < 0 || (info.Duration > 0 && opts.At > info.Duration) {
		return "", errors.NewConfigError(
			fmt.Sprintf("frame time %ss is outside 0-%ss", util.FormatSeconds(opts.At), util.FormatSeconds(info.Duration)), nil)
	}

	var png bytes.Buffer
	job := ffmpeg.Job{Args: ffmpeg.FrameArgs(input, opts.At), Stdout: &png}
	if err := e.run(ctx, "grab frame", job); err != nil {
		return "", err
	}

	frame, err := imaging.Decode(&png)
	if err != nil {
		return "", errors.NewFFmpegError(fmt.Sprintf("could not decode frame at %ss: %v", util.FormatSeconds(opts.At), err))
	}

	if opts.Width != 0 || opts.Height != 0 {
		target := fitcrop.Dimensions{Width: opts.Width, Height: opts.Height}
		frame, err = e.fitImage(frame, target)
		if err != nil {
			return "", err
		}
	}

	if err := util.EnsureParentDir(output); err != nil {
		return "", errors.NewIOError(fmt.Sprintf("cannot create directory for %s", output), err)
	}
	if err := imaging.Save(frame, output); err != nil {
		return "", errors.NewIOError(fmt.Sprintf("cannot save %s", output), err)
	}

	size, _ := util.GetFileSize(output)
	e.rep.OutputWritten(reporter.OutputSummary{Path: output, Size: size})
	e.complete("thumbnail", start, output)
	return output, nil
}

// fitImage cover-scales img and center-crops it to target.
func (e *Editor) fitImage(img image.Image, target fitcrop.Dimensions) (image.Image, error) {
	b := img.Bounds()
	source := fitcrop.Dimensions{Width: b.Dx(), Height: b.Dy()}

	fit, err := fitcrop.ComputeFit(source, target)
	if err != nil {
		return nil, errors.NewInvalidDimensionsError(fmt.Sprintf("cannot fit %s onto %s", source, target), err)
	}
	e.reportFit(source, target, fit)

	scaled := imaging.Resize(img, fit.ScaledWidth, fit.ScaledHeight, imaging.Lanczos)
	return imaging.Crop(scaled, fitcrop.Rect(fit, target)), nil
}
