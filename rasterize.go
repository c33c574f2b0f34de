package inpaint

import (
	"fmt"
	stdimage "image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/inpaint/internal/image"
)

// Interpolation selects the resampling filter used by RasterizeWith.
type Interpolation = image.InterpolationMode

// Interpolation modes.
const (
	InterpNearest  = image.InterpNearest
	InterpBilinear = image.InterpBilinear
	InterpBicubic  = image.InterpBicubic
)

// ParseInterpolation parses "nearest", "bilinear" or "bicubic"/"catmullrom".
func ParseInterpolation(s string) (Interpolation, error) {
	return image.ParseInterpolation(s)
}

// Rasterize resamples the mask to width×height with bilinear interpolation.
// See RasterizeWith.
func (m *Mask) Rasterize(width, height int) (*Mask, error) {
	return m.RasterizeWith(width, height, InterpBilinear)
}

// RasterizeWith resamples the mask to width×height using mode.
//
// A mask that already has the requested size is returned as a clone.
// Returns ErrInvalidDimensions if the mask or the target size is empty.
func (m *Mask) RasterizeWith(width, height int, mode Interpolation) (*Mask, error) {
	if m.width <= 0 || m.height <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rasterize %dx%d mask to %dx%d: %w",
			m.width, m.height, width, height, ErrInvalidDimensions)
	}
	if m.width == width && m.height == height {
		return m.Clone(), nil
	}

	src := &stdimage.Gray{
		Pix:    m.data,
		Stride: m.width,
		Rect:   stdimage.Rect(0, 0, m.width, m.height),
	}
	dst := stdimage.NewGray(stdimage.Rect(0, 0, width, height))
	mode.Scaler().Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)

	Logger().Debug("inpaint: mask rasterized",
		"from", fmt.Sprintf("%dx%d", m.width, m.height),
		"to", fmt.Sprintf("%dx%d", width, height),
		"interpolation", mode.String())

	return &Mask{
		width:  width,
		height: height,
		data:   dst.Pix,
	}, nil
}
