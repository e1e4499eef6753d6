// Package segment replaces everything but a detected object class with a
// solid background colour, frame by frame.
package segment

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Box is a detection in frame pixel coordinates.
type Box struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Class int     `json:"class"`
	Score float64 `json:"score"`
}

// FilterClass returns the boxes of the given class, in order.
func FilterClass(boxes []Box, class int) []Box {
	var kept []Box
	for _, b := range boxes {
		if b.Class == class {
			kept = append(kept, b)
		}
	}
	return kept
}

// Mask marks the pixels that belong to the foreground.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask returns an empty mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, bits: make([]bool, width*height)}
}

// Set marks (x, y) as foreground.
func (m *Mask) Set(x, y int) {
	if x >= 0 && y >= 0 && x < m.Width && y < m.Height {
		m.bits[y*m.Width+x] = true
	}
}

// At reports whether (x, y) is foreground.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// MaskFromImage thresholds img at mid grey. An image of a different size is
// first resized to width x height.
func MaskFromImage(img image.Image, width, height int) *Mask {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		img = imaging.Resize(img, width, height, imaging.NearestNeighbor)
		b = img.Bounds()
	}

	m := NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if g.Y > 127 {
				m.bits[y*width+x] = true
			}
		}
	}
	return m
}

// Union combines masks into one width x height mask. Masks of another size
// are ignored. No masks gives an empty mask.
func Union(width, height int, masks []*Mask) *Mask {
	out := NewMask(width, height)
	for _, m := range masks {
		if m == nil || m.Width != width || m.Height != height {
			continue
		}
		for i, b := range m.bits {
			if b {
				out.bits[i] = true
			}
		}
	}
	return out
}

// ApplyMask paints every pixel of an RGB24 frame that is outside mask with bg.
func ApplyMask(frame []byte, mask *Mask, bg color.RGBA) {
	for i, fg := range mask.bits {
		if fg {
			continue
		}
		o := i * 3
		if o+2 >= len(frame) {
			return
		}
		frame[o], frame[o+1], frame[o+2] = bg.R, bg.G, bg.B
	}
}

// FrameImage wraps an RGB24 frame as an image for the models.
func FrameImage(frame []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4] = frame[i*3]
		img.Pix[i*4+1] = frame[i*3+1]
		img.Pix[i*4+2] = frame[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}
