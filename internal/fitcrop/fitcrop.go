// Package fitcrop computes cover-scale and center-crop geometry.
//
// Given a source frame size and a target box, ComputeFit returns the size the
// source must be scaled to so that it fully covers the box (no letterbox
// bars), plus the offsets of a centered target-sized crop window inside the
// scaled frame.
package fitcrop

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidDimensions is returned when any input dimension is not positive
// or exceeds MaxSide.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// MaxSide is the largest accepted width or height. It keeps every
// intermediate product of ComputeFit well inside int64.
const MaxSide = 1 << 16

// Dimensions describes a frame or target box in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Valid reports whether both sides are positive and at most MaxSide.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0 && d.Width <= MaxSide && d.Height <= MaxSide
}

// AspectRatio returns width divided by height.
func (d Dimensions) AspectRatio() float64 {
	return float64(d.Width) / float64(d.Height)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Result is the scale size and crop offsets for a single fit operation.
type Result struct {
	ScaledWidth  int
	ScaledHeight int
	CropX        int
	CropY        int
}

// Scaled returns the scaled frame size.
func (r Result) Scaled() Dimensions {
	return Dimensions{Width: r.ScaledWidth, Height: r.ScaledHeight}
}

// ComputeFit scales source to cover target and centers a target-sized crop.
//
// Aspect ratios are compared with integer cross multiplication and scaled
// sides use integer ceiling division, so equal aspect ratios always map
// exactly onto the target.
func ComputeFit(source, target Dimensions) (Result, error) {
	if !source.Valid() {
		return Result{}, fmt.Errorf("%w: source %s", ErrInvalidDimensions, source)
	}
	if !target.Valid() {
		return Result{}, fmt.Errorf("%w: target %s", ErrInvalidDimensions, target)
	}

	sw, sh := int64(source.Width), int64(source.Height)
	tw, th := int64(target.Width), int64(target.Height)

	var scaledW, scaledH int64
	if sw*th > tw*sh {
		// Source is wider: match heights, width overflows.
		scaledH = th
		scaledW = ceilDiv(scaledH*sw, sh)
	} else {
		scaledW = tw
		scaledH = ceilDiv(scaledW*sh, sw)
	}

	return Result{
		ScaledWidth:  int(scaledW),
		ScaledHeight: int(scaledH),
		CropX:        int(max(0, (scaledW-tw)/2)),
		CropY:        int(max(0, (scaledH-th)/2)),
	}, nil
}

// Rect returns the crop window inside the scaled frame.
func Rect(fit Result, target Dimensions) image.Rectangle {
	return image.Rect(fit.CropX, fit.CropY, fit.CropX+target.Width, fit.CropY+target.Height)
}

// ScaleFilter returns the ffmpeg scale filter for the scaled size.
func ScaleFilter(fit Result) string {
	return fmt.Sprintf("scale=%d:%d", fit.ScaledWidth, fit.ScaledHeight)
}

// CropFilter returns the ffmpeg crop filter for the target window.
func CropFilter(fit Result, target Dimensions) string {
	return fmt.Sprintf("crop=%d:%d:%d:%d", target.Width, target.Height, fit.CropX, fit.CropY)
}

// NeedsResize reports whether applying the fit changes the source frame.
func NeedsResize(source, target Dimensions) bool {
	return source != target
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
