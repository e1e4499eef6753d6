package ffmpeg

import (
	"strings"

	"github.com/five82/vedit/internal/fitcrop"
)

// VideoFilterChain builds comma separated video filter chains.
type VideoFilterChain struct {
	filters []string
}

// NewVideoFilterChain creates a new empty filter chain.
func NewVideoFilterChain() *VideoFilterChain {
	return &VideoFilterChain{}
}

// AddFit appends the cover scale and center crop that map a frame onto target.
func (c *VideoFilterChain) AddFit(fit fitcrop.Result, target fitcrop.Dimensions) *VideoFilterChain {
	c.filters = append(c.filters, fitcrop.ScaleFilter(fit), fitcrop.CropFilter(fit, target))
	return c
}

// AddFilter adds a custom filter to the chain. Empty filters are ignored.
func (c *VideoFilterChain) AddFilter(filter string) *VideoFilterChain {
	if filter != "" {
		c.filters = append(c.filters, filter)
	}
	return c
}

// Build joins the chain. Returns empty string if no filters are present.
func (c *VideoFilterChain) Build() string {
	return strings.Join(c.filters, ",")
}

// IsEmpty returns true if no filters are present.
func (c *VideoFilterChain) IsEmpty() bool {
	return len(c.filters) == 0
}
