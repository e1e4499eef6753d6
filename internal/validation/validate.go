package validation

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/five82/vedit/internal/config"
	"github.com/five82/vedit/internal/ffprobe"
	"github.com/five82/vedit/internal/fitcrop"
	"github.com/five82/vedit/internal/util"
)

// MediaAnalyzer probes written files. *ffprobe.Prober satisfies it.
type MediaAnalyzer interface {
	Probe(ctx context.Context, path string) (*ffprobe.MediaInfo, error)
}

// Expectations lists what an output should look like. Nil fields are not checked.
type Expectations struct {
	Dimensions *fitcrop.Dimensions
	Duration   *float64
	Audio      *bool
}

// Validate checks path against exp. Missing or unreadable outputs produce a
// failed Result, not an error; only cancellation is returned as an error.
func Validate(ctx context.Context, analyzer MediaAnalyzer, path string, exp Expectations) (*Result, error) {
	result := &Result{Path: path}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		result.add("Output file", false, "not found")
		return result, nil
	}
	if info.Size() == 0 {
		result.add("Output file", false, "file is empty")
		return result, nil
	}
	result.add("Output file", true, util.FormatBytes(uint64(info.Size())))

	media, err := analyzer.Probe(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		result.add("Probe", false, err.Error())
		return result, nil
	}

	if exp.Dimensions != nil {
		result.add(validateDimensions(media.Dimensions(), *exp.Dimensions))
	}
	if exp.Duration != nil {
		result.add(validateDuration(media.Duration, *exp.Duration))
	}
	if exp.Audio != nil {
		result.add(validateAudio(media, *exp.Audio))
	}

	return result, nil
}

// validateDimensions checks that dimensions match expected values.
func validateDimensions(actual, expected fitcrop.Dimensions) (string, bool, string) {
	if actual == expected {
		return "Dimensions", true, fmt.Sprintf("%s as expected", actual)
	}
	return "Dimensions", false, fmt.Sprintf("got %s, expected %s", actual, expected)
}

// validateDuration checks that duration is within tolerance.
func validateDuration(actual, expected float64) (string, bool, string) {
	diff := math.Abs(actual - expected)
	if diff <= config.DurationTolerance {
		return "Duration", true, fmt.Sprintf("%.1fs", actual)
	}
	return "Duration", false, fmt.Sprintf("got %.1fs, expected %.1fs (diff: %.1fs)", actual, expected, diff)
}

func validateAudio(media *ffprobe.MediaInfo, want bool) (string, bool, string) {
	switch {
	case want && media.HasAudio:
		return "Audio", true, media.AudioCodec
	case want:
		return "Audio", false, "expected an audio stream, found none"
	case media.HasAudio:
		return "Audio", false, fmt.Sprintf("expected no audio, found %s", media.AudioCodec)
	default:
		return "Audio", true, "no audio as expected"
	}
}
