package inpaint

import "github.com/gogpu/inpaint/internal/fill"

// Option configures a Remove call.
//
// Example:
//
//	res, err := inpaint.Remove(ctx, img, mask,
//	    inpaint.WithDilate(3),
//	    inpaint.WithWorkers(runtime.NumCPU()),
//	)
type Option func(*options)

// options holds the configuration for one Remove call.
type options struct {
	threshold     uint8
	maxIterations int
	radius        int
	blend         bool
	interp        Interpolation
	dilate        int
	workers       int
	progress      func(Progress)
}

// defaultOptions returns the default Remove options.
func defaultOptions() options {
	return options{
		threshold:     Threshold,
		maxIterations: 0, // max(width, height)
		radius:        fill.DefaultRadius,
		blend:         true,
		interp:        InterpBilinear,
		workers:       1,
	}
}

// Progress is reported after every fill round.
type Progress struct {
	// Round is the 1-based number of the round just completed.
	Round int

	// Filled is the number of pixels filled so far.
	Filled int

	// Remaining is the number of masked pixels not yet filled.
	Remaining int
}

// WithThreshold sets the mask cut-off: values strictly above t are masked.
// The default is Threshold (128).
func WithThreshold(t uint8) Option {
	return func(o *options) {
		o.threshold = t
	}
}

// WithMaxIterations bounds the number of fill rounds.
// n <= 0 restores the default of max(width, height), which drains any convex
// region but not necessarily long thin or spiral shapes.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithRadius sets the radius of the square window averaged for each filled
// pixel. The default of 3 samples a 7×7 window. Values below 1 are ignored.
func WithRadius(r int) Option {
	return func(o *options) {
		if r >= 1 {
			o.radius = r
		}
	}
}

// WithBlend enables or disables seam blending after the fill.
// Blending is on by default.
func WithBlend(enabled bool) Option {
	return func(o *options) {
		o.blend = enabled
	}
}

// WithInterpolation selects how a mask of a different size is resampled to
// the image. The default is bilinear.
func WithInterpolation(mode Interpolation) Option {
	return func(o *options) {
		o.interp = mode
	}
}

// WithDilate grows the mask by n pixels before filling. Segmentation masks
// often stop just short of an object's outline; a small dilation removes the
// leftover halo. The default is 0.
func WithDilate(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.dilate = n
		}
	}
}

// WithWorkers spreads each fill round and the blend pass across n goroutines.
// n <= 0 uses GOMAXPROCS. The default of 1 runs on the calling goroutine.
// The output is identical for any worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithProgress registers a callback invoked after every fill round on the
// goroutine running Remove.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
	}
}
