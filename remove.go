package inpaint

import (
	"context"
	"fmt"

	"github.com/gogpu/inpaint/internal/fill"
	"github.com/gogpu/inpaint/internal/filter"
	"github.com/gogpu/inpaint/internal/parallel"
)

// Result is the outcome of Remove.
type Result struct {
	// Image is the output. It never aliases the input pixmap.
	Image *Pixmap

	// FullyFilled is false when masked pixels were left unfilled because the
	// round bound was reached or no known pixel was reachable.
	FullyFilled bool

	// Masked is the number of pixels in the rasterized (and dilated) mask.
	Masked int

	// Boundary is the number of masked pixels that touched an unmasked pixel
	// (8-connected) before the fill started.
	Boundary int

	// Filled is the number of pixels reconstructed.
	Filled int

	// Remaining is the number of masked pixels left with their original colour.
	Remaining int

	// Rounds is the number of fill rounds run.
	Rounds int
}

// Remove reconstructs the masked region of img and returns the result.
//
// The mask is rasterized to the image size if the sizes differ, optionally
// dilated, then thresholded. Masked pixels are filled from the region's edge
// inward; finally the filled pixels are smoothed with a 3×3 binomial kernel.
// img is not modified.
//
// An incomplete fill is not an error: Result.FullyFilled reports it and the
// unfilled pixels keep their original colour. Errors are returned for nil or
// empty inputs and when ctx is done before the fill finishes.
func Remove(ctx context.Context, img *Pixmap, mask *Mask, opts ...Option) (*Result, error) {
	if img == nil || mask == nil {
		return nil, ErrNilInput
	}
	if img.width <= 0 || img.height <= 0 {
		return nil, fmt.Errorf("inpaint: image %dx%d: %w", img.width, img.height, ErrInvalidDimensions)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := Logger()
	w, h := img.width, img.height

	m, err := mask.RasterizeWith(w, h, o.interp)
	if err != nil {
		return nil, fmt.Errorf("inpaint: rasterize mask: %w", err)
	}

	binarize(m, o.threshold)
	m.Dilate(o.dilate)

	set := fill.NewSet(w, h)
	for i, v := range m.data {
		if v > Threshold {
			set.Add(i)
		}
	}
	original := set.Clone()

	out := img.Clone()
	res := &Result{
		Image:       out,
		FullyFilled: true,
		Masked:      set.Len(),
	}
	if set.Len() == 0 {
		log.Debug("inpaint: empty mask, nothing to remove", "width", w, "height", h)
		return res, nil
	}

	res.Boundary = len(fill.Boundary(set))
	log.Debug("inpaint: fill starting",
		"width", w, "height", h,
		"masked", res.Masked, "boundary", res.Boundary,
		"radius", o.radius, "workers", o.workers)

	var pool *parallel.WorkerPool
	if o.workers != 1 {
		pool = parallel.NewWorkerPool(o.workers)
		defer pool.Close()
	}

	stats, err := fill.Wavefront(ctx, out.data, set, fill.Config{
		MaxIterations: o.maxIterations,
		Radius:        o.radius,
		Pool:          pool,
		Progress: func(s fill.Stats) {
			log.Debug("inpaint: fill round", "round", s.Rounds, "filled", s.Filled, "remaining", s.Remaining)
			if o.progress != nil {
				o.progress(Progress{Round: s.Rounds, Filled: s.Filled, Remaining: s.Remaining})
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("inpaint: fill: %w", err)
	}

	res.Rounds = stats.Rounds
	res.Filled = stats.Filled
	res.Remaining = stats.Remaining
	res.FullyFilled = stats.Complete()

	if o.blend && stats.Filled > 0 {
		// Blend pixels that were masked and have been filled; pixels left
		// unfilled keep their original colour.
		filled := func(i int) bool {
			return original.Contains(i) && !set.Contains(i)
		}
		out.data = filter.BlendMasked(out.data, w, h, filter.Seam, filled, pool)
	}

	if !res.FullyFilled {
		log.Warn("inpaint: fill incomplete, unfilled pixels keep their original colour",
			"remaining", res.Remaining, "rounds", res.Rounds)
	}
	log.Info("inpaint: object removed",
		"width", w, "height", h,
		"masked", res.Masked, "filled", res.Filled,
		"rounds", res.Rounds, "complete", res.FullyFilled)

	return res, nil
}

// RemoveRGBA is Remove for raw RGBA8 buffers.
//
// pix is the width×height image; maskPix is a maskWidth×maskHeight RGBA8
// buffer whose red channel holds the mask intensity. Neither buffer is
// modified.
func RemoveRGBA(ctx context.Context, pix []byte, width, height int, maskPix []byte, maskWidth, maskHeight int, opts ...Option) (*Result, error) {
	img, err := NewPixmapFromRGBA(pix, width, height)
	if err != nil {
		return nil, fmt.Errorf("inpaint: image: %w", err)
	}
	mask, err := NewMaskFromRGBA(maskPix, maskWidth, maskHeight, ChannelRed)
	if err != nil {
		return nil, fmt.Errorf("inpaint: mask: %w", err)
	}
	return Remove(ctx, img, mask, opts...)
}

// binarize maps values above t to 255 and everything else to 0.
func binarize(m *Mask, t uint8) {
	for i, v := range m.data {
		if v > t {
			m.data[i] = 255
		} else {
			m.data[i] = 0
		}
	}
}
