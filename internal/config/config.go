// Package config provides configuration types and defaults for vedit.
package config

import (
	"fmt"
	"image/color"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Default constants
const (
	// DefaultChunkSeconds is the split part length.
	DefaultChunkSeconds = 10

	// DefaultVideoCodec is the convert video encoder and the fallback for unknown codecs.
	DefaultVideoCodec = "libx264"

	// DefaultAudioCodec is the convert audio encoder and the fallback for unknown codecs.
	DefaultAudioCodec = "aac"

	// DefaultCropWidth is the convert target width.
	DefaultCropWidth = 1280

	// DefaultCropHeight is the convert target height.
	DefaultCropHeight = 768

	// DefaultSegmentCodec is the encoder used for segmented output.
	DefaultSegmentCodec = "mpeg4"

	// DefaultTargetClass is the detection class kept by segment (0 = person).
	DefaultTargetClass = 0

	// DefaultModelTimeout bounds a single detection or segmentation request.
	DefaultModelTimeout = 60 * time.Second

	// DefaultFFmpegPath is the ffmpeg binary looked up on PATH.
	DefaultFFmpegPath = "ffmpeg"

	// DurationTolerance is the allowed output duration drift in validation.
	DurationTolerance = 1.0
)

// Environment variables read by ApplyEnv.
const (
	EnvFFmpeg       = "VEDIT_FFMPEG"
	EnvModelURL     = "VEDIT_MODEL_URL"
	EnvModelTimeout = "VEDIT_MODEL_TIMEOUT"
)

// AllowedChunkSeconds lists the accepted split part lengths.
var AllowedChunkSeconds = []int{5, 10}

// DefaultBackground is the segment background colour (green screen).
var DefaultBackground = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// Config holds all configuration for a vedit run.
type Config struct {
	LogDir     string
	FFmpegPath string

	// split
	ChunkSeconds int

	// convert
	VideoCodec string
	AudioCodec string
	CropWidth  int
	CropHeight int

	// segment
	ModelURL     string
	ModelTimeout time.Duration
	TargetClass  int
	Background   color.RGBA
	SegmentCodec string
}

// NewConfig creates a new Config with default values.
func NewConfig(logDir string) *Config {
	return &Config{
		LogDir:       logDir,
		FFmpegPath:   DefaultFFmpegPath,
		ChunkSeconds: DefaultChunkSeconds,
		VideoCodec:   DefaultVideoCodec,
		AudioCodec:   DefaultAudioCodec,
		CropWidth:    DefaultCropWidth,
		CropHeight:   DefaultCropHeight,
		ModelTimeout: DefaultModelTimeout,
		TargetClass:  DefaultTargetClass,
		Background:   DefaultBackground,
		SegmentCodec: DefaultSegmentCodec,
	}
}

// ApplyEnv overrides settings from the process environment.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFFmpeg); ok && v != "" {
		c.FFmpegPath = v
	}
	if v, ok := lookup(EnvModelURL); ok && v != "" {
		c.ModelURL = v
	}
	if v, ok := lookup(EnvModelTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidModelTimeout, EnvModelTimeout, v, err)
		}
		c.ModelTimeout = d
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !slices.Contains(AllowedChunkSeconds, c.ChunkSeconds) {
		return fmt.Errorf("%w: must be one of %v, got %d", ErrInvalidChunkSize, AllowedChunkSeconds, c.ChunkSeconds)
	}

	if c.CropWidth < 0 || c.CropHeight < 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidCropSize, c.CropWidth, c.CropHeight)
	}

	if c.ModelTimeout <= 0 {
		return fmt.Errorf("%w: must be positive, got %s", ErrInvalidModelTimeout, c.ModelTimeout)
	}

	if c.TargetClass < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTargetClass, c.TargetClass)
	}

	return nil
}

// ValidateSegment checks the settings only the segment command needs.
func (c *Config) ValidateSegment() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.ModelURL) == "" {
		return fmt.Errorf("%w: pass --model-url or set %s", ErrMissingModelURL, EnvModelURL)
	}
	return nil
}

// CropEnabled reports whether convert should resize and crop.
// Either dimension set to zero disables it.
func (c *Config) CropEnabled() bool {
	return c.CropWidth > 0 && c.CropHeight > 0
}

// ParseBackground parses an "R,G,B" colour with components 0-255.
func ParseBackground(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: %q, expected R,G,B", ErrInvalidBackground, s)
	}

	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("%w: %q, components must be 0-255", ErrInvalidBackground, s)
		}
		rgb[i] = uint8(v)
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}
