package config

import (
	"errors"
	"fmt"

	"github.com/five82/vedit/internal/fitcrop"
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidChunkSize indicates a split length other than 5 or 10 seconds.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidCropSize indicates a negative crop width or height. It
	// matches fitcrop.ErrInvalidDimensions.
	ErrInvalidCropSize = fmt.Errorf("invalid crop size: %w", fitcrop.ErrInvalidDimensions)

	// ErrInvalidBackground indicates an unparseable segment background colour.
	ErrInvalidBackground = errors.New("invalid background colour")

	// ErrMissingModelURL indicates segment was run without a model service.
	ErrMissingModelURL = errors.New("model URL not configured")

	// ErrInvalidModelTimeout indicates a non-positive or unparseable model timeout.
	ErrInvalidModelTimeout = errors.New("invalid model timeout")

	// ErrInvalidTargetClass indicates a negative detection class.
	ErrInvalidTargetClass = errors.New("invalid target class")
)
