package config

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vedit/internal/fitcrop"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/logs")

	assert.Equal(t, "/logs", cfg.LogDir)
	assert.Equal(t, DefaultChunkSeconds, cfg.ChunkSeconds)
	assert.Equal(t, "libx264", cfg.VideoCodec)
	assert.Equal(t, "aac", cfg.AudioCodec)
	assert.Equal(t, 1280, cfg.CropWidth)
	assert.Equal(t, 768, cfg.CropHeight)
	assert.Equal(t, "mpeg4", cfg.SegmentCodec)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, cfg.Background)
	assert.True(t, cfg.CropEnabled())
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(*Config)
		wantSentinel error
	}{
		{name: "default config is valid", modify: func(c *Config) {}},
		{name: "chunk 5 is valid", modify: func(c *Config) { c.ChunkSeconds = 5 }},
		{
			name:         "chunk 7 is invalid",
			modify:       func(c *Config) { c.ChunkSeconds = 7 },
			wantSentinel: ErrInvalidChunkSize,
		},
		{
			name:         "chunk 0 is invalid",
			modify:       func(c *Config) { c.ChunkSeconds = 0 },
			wantSentinel: ErrInvalidChunkSize,
		},
		{name: "zero crop disables crop", modify: func(c *Config) { c.CropWidth = 0 }},
		{
			name:         "negative crop width",
			modify:       func(c *Config) { c.CropWidth = -1 },
			wantSentinel: ErrInvalidCropSize,
		},
		{
			name:         "negative crop height",
			modify:       func(c *Config) { c.CropHeight = -768 },
			wantSentinel: ErrInvalidCropSize,
		},
		{
			name:         "zero model timeout",
			modify:       func(c *Config) { c.ModelTimeout = 0 },
			wantSentinel: ErrInvalidModelTimeout,
		},
		{
			name:         "negative class",
			modify:       func(c *Config) { c.TargetClass = -1 },
			wantSentinel: ErrInvalidTargetClass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("")
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantSentinel == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantSentinel)
		})
	}
}

func TestValidateSegment(t *testing.T) {
	cfg := NewConfig("")
	assert.ErrorIs(t, cfg.ValidateSegment(), ErrMissingModelURL)

	cfg.ModelURL = "http://localhost:8000"
	assert.NoError(t, cfg.ValidateSegment())

	cfg.ChunkSeconds = 3
	assert.ErrorIs(t, cfg.ValidateSegment(), ErrInvalidChunkSize)
}

func TestCropEnabled(t *testing.T) {
	cfg := NewConfig("")
	cfg.CropHeight = 0
	assert.False(t, cfg.CropEnabled())
	cfg.CropHeight = 720
	cfg.CropWidth = 0
	assert.False(t, cfg.CropEnabled())
}

func TestNegativeCropIsInvalidDimensions(t *testing.T) {
	cfg := NewConfig("")
	cfg.CropHeight = -768

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidCropSize)
	assert.ErrorIs(t, err, fitcrop.ErrInvalidDimensions)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvFFmpeg:       "/opt/ffmpeg/bin/ffmpeg",
		EnvModelURL:     "http://models:8000",
		EnvModelTimeout: "90s",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := NewConfig("")
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "http://models:8000", cfg.ModelURL)
	assert.Equal(t, 90*time.Second, cfg.ModelTimeout)

	env[EnvModelTimeout] = "soon"
	assert.ErrorIs(t, NewConfig("").applyEnv(lookup), ErrInvalidModelTimeout)
}

func TestApplyEnvKeepsDefaults(t *testing.T) {
	cfg := NewConfig("")
	require.NoError(t, cfg.applyEnv(func(string) (string, bool) { return "", false }))
	assert.Equal(t, DefaultFFmpegPath, cfg.FFmpegPath)
	assert.Empty(t, cfg.ModelURL)
	assert.Equal(t, DefaultModelTimeout, cfg.ModelTimeout)
}

func TestParseBackground(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "0,255,0", want: color.RGBA{G: 255, A: 255}},
		{in: " 12, 34 ,56 ", want: color.RGBA{R: 12, G: 34, B: 56, A: 255}},
		{in: "255,255,255", want: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "0,256,0", wantErr: true},
		{in: "-1,0,0", wantErr: true},
		{in: "0,255", wantErr: true},
		{in: "green", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackground(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBackground)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
