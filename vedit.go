// Package vedit provides basic video editing operations built on ffmpeg.
//
// Every operation probes its inputs, runs ffmpeg, and validates what it
// wrote. Frame size changes use cover scaling followed by a center crop, so
// outputs never carry letterbox bars.
//
// Basic usage:
//
//	ed, err := vedit.New(
//	    vedit.WithCropSize(1280, 768),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := ed.Convert(ctx, "input.mp4", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", out)
package vedit

import (
	"context"
	stderrors "errors"
	"image/color"
	"time"

	"github.com/five82/vedit/internal/config"
	"github.com/five82/vedit/internal/discovery"
	"github.com/five82/vedit/internal/editor"
	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/ffprobe"
	"github.com/five82/vedit/internal/fitcrop"
	"github.com/five82/vedit/internal/logging"
	"github.com/five82/vedit/internal/reporter"
	"github.com/five82/vedit/internal/segment"
)

// Re-export fit types
type (
	Dimensions = fitcrop.Dimensions
	FitResult  = fitcrop.Result
)

// ErrInvalidDimensions is returned by ComputeFit for non-positive sizes.
var ErrInvalidDimensions = fitcrop.ErrInvalidDimensions

// ComputeFit returns the cover scale and center crop that map source onto
// target without letterboxing.
func ComputeFit(source, target Dimensions) (FitResult, error) {
	return fitcrop.ComputeFit(source, target)
}

// Reporter receives progress and result events.
type Reporter = reporter.Reporter

// ThumbnailOptions controls frame selection and sizing for Thumbnail.
type ThumbnailOptions = editor.ThumbnailOptions

// SegmentStats summarizes a Segment run.
type SegmentStats = segment.Stats

// Editor is the main entry point for editing operations.
type Editor struct {
	config *config.Config
	rep    reporter.Reporter
	logger *logging.Logger
	optErr error
}

// Option configures the editor.
type Option func(*Editor)

// New creates an Editor with the given options.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{config: config.NewConfig(logging.DefaultLogDir())}

	for _, opt := range opts {
		opt(e)
	}
	if e.optErr != nil {
		return nil, errors.NewConfigError("invalid option", e.optErr)
	}

	if err := e.config.Validate(); err != nil {
		if stderrors.Is(err, config.ErrInvalidCropSize) {
			return nil, errors.NewInvalidDimensionsError("invalid crop size", err)
		}
		return nil, errors.NewConfigError("invalid configuration", err)
	}

	return e, nil
}

// WithEnvironment applies the VEDIT_* environment variables. Options after
// it take precedence.
func WithEnvironment() Option {
	return func(e *Editor) {
		if err := e.config.ApplyEnv(); err != nil && e.optErr == nil {
			e.optErr = err
		}
	}
}

// WithFFmpegPath sets the ffmpeg binary.
func WithFFmpegPath(path string) Option {
	return func(e *Editor) {
		e.config.FFmpegPath = path
	}
}

// WithChunkSeconds sets the split part length (5 or 10).
func WithChunkSeconds(n int) Option {
	return func(e *Editor) {
		e.config.ChunkSeconds = n
	}
}

// WithCodecs sets the convert encoders.
func WithCodecs(video, audio string) Option {
	return func(e *Editor) {
		e.config.VideoCodec = video
		e.config.AudioCodec = audio
	}
}

// WithCropSize sets the convert target size. A zero dimension disables
// resizing.
func WithCropSize(width, height int) Option {
	return func(e *Editor) {
		e.config.CropWidth = width
		e.config.CropHeight = height
	}
}

// WithModelURL sets the detection and segmentation service.
func WithModelURL(url string) Option {
	return func(e *Editor) {
		e.config.ModelURL = url
	}
}

// WithModelTimeout bounds each model request.
func WithModelTimeout(d time.Duration) Option {
	return func(e *Editor) {
		e.config.ModelTimeout = d
	}
}

// WithTargetClass sets the detection class kept by Segment.
func WithTargetClass(class int) Option {
	return func(e *Editor) {
		e.config.TargetClass = class
	}
}

// WithBackground sets the Segment background colour.
func WithBackground(c color.RGBA) Option {
	return func(e *Editor) {
		e.config.Background = c
	}
}

// WithSegmentCodec sets the encoder for segmented output.
func WithSegmentCodec(codec string) Option {
	return func(e *Editor) {
		e.config.SegmentCodec = codec
	}
}

// WithReporter sets the event reporter.
func WithReporter(rep Reporter) Option {
	return func(e *Editor) {
		e.rep = rep
	}
}

// WithLogger sets the run logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		e.logger = l
	}
}

func (e *Editor) editor() *editor.Editor {
	cfg := *e.config
	return editor.New(&cfg, ffmpeg.NewExecutor(cfg.FFmpegPath, e.logger), ffprobe.NewProber(), e.rep, e.logger)
}

// Split cuts input into consecutive parts and returns their paths.
func (e *Editor) Split(ctx context.Context, input string) ([]string, error) {
	return e.editor().Split(ctx, input)
}

// Combine joins inputs into output. codec may be empty.
func (e *Editor) Combine(ctx context.Context, output string, inputs []string, codec string) (string, error) {
	return e.editor().Combine(ctx, output, inputs, codec)
}

// ReplaceAudio replaces the audio of video with audio. output may be empty.
func (e *Editor) ReplaceAudio(ctx context.Context, video, audio, output string) (string, error) {
	return e.editor().ReplaceAudio(ctx, video, audio, output)
}

// Thumbnail saves one frame of input as an image. output may be empty.
func (e *Editor) Thumbnail(ctx context.Context, input, output string, opts ThumbnailOptions) (string, error) {
	return e.editor().Thumbnail(ctx, input, output, opts)
}

// Convert transcodes input. output may be empty.
func (e *Editor) Convert(ctx context.Context, input, output string) (string, error) {
	return e.editor().Convert(ctx, input, output)
}

// ExtractAudio writes the audio of input to output. output may be empty.
func (e *Editor) ExtractAudio(ctx context.Context, input, output string) (string, error) {
	return e.editor().ExtractAudio(ctx, input, output)
}

// Segment paints everything outside the detected objects with the
// background colour. It needs a model service URL.
func (e *Editor) Segment(ctx context.Context, input, output string) (SegmentStats, error) {
	if err := e.config.ValidateSegment(); err != nil {
		return SegmentStats{}, errors.NewConfigError("invalid segment settings", err)
	}

	cfg := *e.config
	client := segment.NewModelClient(cfg.ModelURL, cfg.ModelTimeout)
	p := segment.NewPipeline(&cfg, ffmpeg.NewExecutor(cfg.FFmpegPath, e.logger), ffprobe.NewProber(), client, client, e.rep, e.logger)
	return p.Run(ctx, input, output)
}

// FindVideos finds video files in a directory.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir)
}
