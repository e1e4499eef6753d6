package editor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/reporter"
	"github.com/five82/vedit/internal/util"
	"github.com/five82/vedit/internal/validation"
)

// Part is one [Start, Start+Length) window of a split.
type Part struct {
	Index  int
	Start  float64
	Length float64
}

// PlanParts divides duration into consecutive windows of chunk seconds. The
// last window holds the remainder.
func PlanParts(duration float64, chunk int) []Part {
	if duration <= 0 || chunk <= 0 {
		return nil
	}

	step := float64(chunk)
	count := int(math.Ceil(duration / step))
	parts := make([]Part, 0, count)
	for i := 0; i < count; i++ {
		start := float64(i) * step
		parts = append(parts, Part{
			Index:  i + 1,
			Start:  start,
			Length: min(step, duration-start),
		})
	}
	return parts
}

// Split cuts input into parts of cfg.ChunkSeconds and returns the written
// paths in order.
func (e *Editor) Split(ctx context.Context, input string) ([]string, error) {
	start := time.Now()

	if err := e.cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid split settings", err)
	}

	e.rep.OperationStarted(reporter.OperationInfo{
		Command: "split",
		Inputs:  []string{input},
		Output:  util.DerivedPath(input, "_part<N>", ""),
	})

	info, err := e.probe(ctx, input)
	if err != nil {
		return nil, err
	}
	if !info.HasVideo || info.Duration <= 0 {
		return nil, errors.NewVideoInfoError(fmt.Sprintf("%s has no video duration to split", input))
	}

	videoEnc, videoFallback := e.videoEncoder(info.VideoCodec)
	audioEnc, audioFallback := "", false
	if info.HasAudio {
		audioEnc, audioFallback = e.audioEncoder(info.AudioCodec)
	}
	e.rep.CodecSelection(reporter.CodecSummary{
		VideoEncoder:  videoEnc,
		AudioEncoder:  audioEnc,
		VideoFallback: videoFallback,
		AudioFallback: audioFallback,
	})

	parts := PlanParts(info.Duration, e.cfg.ChunkSeconds)
	e.logger.Info("split %s: %s into %d part(s) of %ds", input, util.FormatDuration(info.Duration), len(parts), e.cfg.ChunkSeconds)

	if err := e.preflight(util.PartPath(input, 1), info.Size); err != nil {
		return nil, err
	}

	var outputs []string
	for _, part := range parts {
		if ctx.Err() != nil {
			return outputs, errors.NewCancelledError()
		}

		e.rep.PartProgress(reporter.PartContext{Label: "Part", Current: part.Index, Total: len(parts)})

		output := util.PartPath(input, part.Index)
		args := ffmpeg.SplitArgs(ffmpeg.SplitParams{
			Input:        input,
			Output:       output,
			Start:        part.Start,
			Length:       part.Length,
			VideoEncoder: videoEnc,
			AudioEncoder: audioEnc,
		})
		label := fmt.Sprintf("part %d/%d", part.Index, len(parts))
		if err := e.run(ctx, label, ffmpeg.Job{Args: args, Duration: part.Length}); err != nil {
			return outputs, err
		}

		err := e.finish(ctx, output, validation.Expectations{
			Dimensions: ptr(info.Dimensions()),
			Duration:   ptr(part.Length),
			Audio:      ptr(info.HasAudio),
		})
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, output)
	}

	e.complete("split", start, outputs...)
	return outputs, nil
}
