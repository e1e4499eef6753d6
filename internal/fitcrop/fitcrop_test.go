package fitcrop

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFit(t *testing.T) {
	tests := []struct {
		name   string
		source Dimensions
		target Dimensions
		want   Result
	}{
		{
			name:   "wider source crops horizontally",
			source: Dimensions{1920, 1080},
			target: Dimensions{1280, 768},
			want:   Result{ScaledWidth: 1366, ScaledHeight: 768, CropX: 43, CropY: 0},
		},
		{
			name:   "taller source crops vertically",
			source: Dimensions{720, 1280},
			target: Dimensions{1280, 768},
			want:   Result{ScaledWidth: 1280, ScaledHeight: 2276, CropX: 0, CropY: 754},
		},
		{
			name:   "equal aspect maps exactly",
			source: Dimensions{1920, 1080},
			target: Dimensions{1280, 720},
			want:   Result{ScaledWidth: 1280, ScaledHeight: 720},
		},
		{
			name:   "equal aspect upscale",
			source: Dimensions{640, 360},
			target: Dimensions{3840, 2160},
			want:   Result{ScaledWidth: 3840, ScaledHeight: 2160},
		},
		{
			name:   "identical sizes",
			source: Dimensions{1280, 768},
			target: Dimensions{1280, 768},
			want:   Result{ScaledWidth: 1280, ScaledHeight: 768},
		},
		{
			name:   "square source into portrait box",
			source: Dimensions{1000, 1000},
			target: Dimensions{1080, 1920},
			want:   Result{ScaledWidth: 1920, ScaledHeight: 1920, CropX: 420, CropY: 0},
		},
		{
			name:   "odd excess floors the offset",
			source: Dimensions{1001, 500},
			target: Dimensions{100, 50},
			want:   Result{ScaledWidth: 101, ScaledHeight: 50, CropX: 0, CropY: 0},
		},
		{
			name:   "ceiling avoids a short side",
			source: Dimensions{1000, 333},
			target: Dimensions{300, 100},
			want:   Result{ScaledWidth: 301, ScaledHeight: 100, CropX: 0, CropY: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFit(tt.source, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeFitInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		source Dimensions
		target Dimensions
	}{
		{"zero source width", Dimensions{0, 1080}, Dimensions{1280, 768}},
		{"zero source height", Dimensions{1920, 0}, Dimensions{1280, 768}},
		{"zero target width", Dimensions{1920, 1080}, Dimensions{0, 768}},
		{"zero target height", Dimensions{1920, 1080}, Dimensions{1280, 0}},
		{"negative source", Dimensions{-1920, 1080}, Dimensions{1280, 768}},
		{"negative target", Dimensions{1920, 1080}, Dimensions{1280, -768}},
		{"oversized source", Dimensions{2 * MaxSide, 1080}, Dimensions{1280, 768}},
		{"oversized target", Dimensions{1920, 1080}, Dimensions{1280, MaxSide + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFit(tt.source, tt.target)
			require.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Equal(t, Result{}, got)
		})
	}
}

func TestComputeFitLargestSides(t *testing.T) {
	tests := []struct {
		name   string
		source Dimensions
		target Dimensions
		want   Result
	}{
		{
			name:   "thin source onto wide target",
			source: Dimensions{1, MaxSide},
			target: Dimensions{MaxSide, 1},
			want:   Result{ScaledWidth: MaxSide, ScaledHeight: MaxSide * MaxSide, CropX: 0, CropY: (MaxSide*MaxSide - 1) / 2},
		},
		{
			name:   "wide source onto thin target",
			source: Dimensions{MaxSide, 1},
			target: Dimensions{1, MaxSide},
			want:   Result{ScaledWidth: MaxSide * MaxSide, ScaledHeight: MaxSide, CropX: (MaxSide*MaxSide - 1) / 2, CropY: 0},
		},
		{
			name:   "equal aspect at the limit",
			source: Dimensions{MaxSide, MaxSide},
			target: Dimensions{MaxSide, MaxSide},
			want:   Result{ScaledWidth: MaxSide, ScaledHeight: MaxSide},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFit(tt.source, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeFitProperties(t *testing.T) {
	sizes := []int{1, 2, 3, 7, 16, 99, 240, 333, 480, 720, 1001, 1080, 1280, 1920, 2160, 4096}

	for _, sw := range sizes {
		for _, sh := range sizes {
			for _, tw := range sizes {
				for _, th := range sizes {
					source := Dimensions{sw, sh}
					target := Dimensions{tw, th}

					fit, err := ComputeFit(source, target)
					require.NoError(t, err)

					if fit.ScaledWidth < tw || fit.ScaledHeight < th {
						t.Fatalf("%s -> %s: scaled %s does not cover target", source, target, fit.Scaled())
					}
					if fit.CropX < 0 || fit.CropY < 0 {
						t.Fatalf("%s -> %s: negative crop (%d,%d)", source, target, fit.CropX, fit.CropY)
					}
					if fit.ScaledWidth != tw && fit.ScaledHeight != th {
						t.Fatalf("%s -> %s: neither side matches target, got %s", source, target, fit.Scaled())
					}

					again, err := ComputeFit(target, target)
					require.NoError(t, err)
					if again.Scaled() != target || again.CropX != 0 || again.CropY != 0 {
						t.Fatalf("%s: refit of cropped output not stable: %+v", target, again)
					}
				}
			}
		}
	}
}

func TestComputeFitEqualAspect(t *testing.T) {
	for _, k := range []int{1, 2, 3, 5, 7, 11} {
		source := Dimensions{16 * k, 9 * k}
		target := Dimensions{16 * 40, 9 * 40}

		fit, err := ComputeFit(source, target)
		require.NoError(t, err)
		assert.Equal(t, target, fit.Scaled())
		assert.Zero(t, fit.CropX)
		assert.Zero(t, fit.CropY)
	}
}

func TestFilters(t *testing.T) {
	target := Dimensions{1280, 768}
	fit, err := ComputeFit(Dimensions{1920, 1080}, target)
	require.NoError(t, err)

	assert.Equal(t, "scale=1366:768", ScaleFilter(fit))
	assert.Equal(t, "crop=1280:768:43:0", CropFilter(fit, target))
	assert.Equal(t, image.Rect(43, 0, 1323, 768), Rect(fit, target))
}

func TestDimensions(t *testing.T) {
	d := Dimensions{1920, 1080}
	assert.True(t, d.Valid())
	assert.InDelta(t, 1.7778, d.AspectRatio(), 0.0001)
	assert.Equal(t, "1920x1080", d.String())
	assert.False(t, Dimensions{0, 1}.Valid())
	assert.True(t, NeedsResize(d, Dimensions{1280, 720}))
	assert.False(t, NeedsResize(d, d))
}
