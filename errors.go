package inpaint

import "errors"

// Errors returned by inpaint.
var (
	// ErrInvalidDimensions is returned when a width or height is non-positive.
	ErrInvalidDimensions = errors.New("inpaint: invalid dimensions")

	// ErrBufferSize is returned when a raw buffer's length does not match
	// the dimensions given with it.
	ErrBufferSize = errors.New("inpaint: buffer size does not match dimensions")

	// ErrNilInput is returned when the image or mask is nil.
	ErrNilInput = errors.New("inpaint: nil image or mask")
)
