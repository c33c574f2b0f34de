// Package image provides image file I/O and resampling helpers for inpaint.
package image

import (
	"fmt"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// InterpolationMode defines how a mask is resampled to the image grid.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest source pixel (no interpolation).
	// Keeps a binary mask binary but produces stair-stepped edges.
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between neighbouring pixels.
	// Matches the smoothing a browser canvas applies when scaling.
	InterpBilinear

	// InterpBicubic performs Catmull-Rom cubic interpolation.
	// Sharpest edges, slowest.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// ParseInterpolation parses a mode name, case-insensitively.
// "catmullrom" is accepted as an alias for bicubic.
func ParseInterpolation(s string) (InterpolationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest":
		return InterpNearest, nil
	case "", "bilinear":
		return InterpBilinear, nil
	case "bicubic", "catmullrom":
		return InterpBicubic, nil
	default:
		return 0, fmt.Errorf("image: unknown interpolation %q", s)
	}
}

// Scaler returns the x/image/draw scaler implementing the mode.
// Unknown modes fall back to bilinear.
func (m InterpolationMode) Scaler() xdraw.Scaler {
	switch m {
	case InterpNearest:
		return xdraw.NearestNeighbor
	case InterpBicubic:
		return xdraw.CatmullRom
	default:
		return xdraw.BiLinear
	}
}
