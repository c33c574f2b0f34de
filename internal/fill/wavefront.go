package fill

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/inpaint/internal/parallel"
)

// DefaultRadius is the sample window radius used when Config.Radius is not
// positive. A radius of 3 averages over a 7×7 window.
const DefaultRadius = 3

// ErrBufferSize is returned when the pixel buffer does not hold exactly
// width*height RGBA8 pixels for the set's grid.
var ErrBufferSize = errors.New("fill: pixel buffer does not match set dimensions")

// Config controls a Wavefront run. The zero value is usable.
type Config struct {
	// MaxIterations bounds the number of rounds.
	// Zero or negative means max(width, height).
	MaxIterations int

	// Radius is the half-size of the square sample window.
	// Zero or negative means DefaultRadius.
	Radius int

	// Pool spreads the per-round averaging across workers.
	// Nil runs everything on the calling goroutine.
	Pool *parallel.WorkerPool

	// Progress, if set, is called after every round.
	Progress func(Stats)
}

// Stats describes the outcome of a Wavefront run.
type Stats struct {
	// Rounds is the number of rounds that resolved or attempted candidates.
	Rounds int

	// Filled is the number of pixels resolved so far.
	Filled int

	// Remaining is the number of pixels still in the set.
	Remaining int
}

// Complete reports whether every masked pixel was resolved.
func (s Stats) Complete() bool {
	return s.Remaining == 0
}

// update is the computed colour for one candidate pixel.
type update struct {
	idx     int
	r, g, b uint8
	ok      bool
}

// Wavefront fills the pixels of s in pix from the outside in.
//
// pix is an RGBA8 row-major buffer of s.Width()×s.Height() pixels. Each round
// selects the pixels of s that have a 4-connected neighbour outside s, sets
// each one's RGB to the rounded mean of the pixels outside s inside its
// (2*Radius+1)² window, forces alpha to 255 and removes it from s.
//
// Every value in a round is computed from the state before that round, so
// the result does not depend on visiting order or on the worker count.
// Candidates with no known pixel in their window are left for a later round.
//
// The run stops when s is empty, the round bound is reached or a round
// resolves nothing. Pixels left in s keep their original colour; the
// returned Stats report how many remain. The context is checked between
// rounds.
func Wavefront(ctx context.Context, pix []byte, s *Set, cfg Config) (Stats, error) {
	w, h := s.width, s.height
	if len(pix) != w*h*4 {
		return Stats{Remaining: s.Len()}, fmt.Errorf("%w: have %d bytes, want %d", ErrBufferSize, len(pix), w*h*4)
	}

	maxRounds := cfg.MaxIterations
	if maxRounds <= 0 {
		maxRounds = max(w, h)
	}
	radius := cfg.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}

	stats := Stats{Remaining: s.Len()}

	for stats.Rounds < maxRounds && s.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		candidates := frontier(s)
		if len(candidates) == 0 {
			break
		}

		updates := make([]update, len(candidates))
		cfg.Pool.Range(len(candidates), func(lo, hi int) {
			for k := lo; k < hi; k++ {
				updates[k] = average(pix, s, candidates[k], radius)
			}
		})

		applied := 0
		for _, u := range updates {
			if !u.ok {
				continue
			}
			o := u.idx * 4
			pix[o] = u.r
			pix[o+1] = u.g
			pix[o+2] = u.b
			pix[o+3] = 255
			s.Remove(u.idx)
			applied++
		}

		stats.Rounds++
		stats.Filled += applied
		stats.Remaining = s.Len()

		if cfg.Progress != nil {
			cfg.Progress(stats)
		}
		if applied == 0 {
			break
		}
	}

	return stats, nil
}

// average computes the mean RGB of the pixels outside s within radius of
// pixel i. It only reads pix and s.
func average(pix []byte, s *Set, i, radius int) update {
	w, h := s.width, s.height
	cx, cy := i%w, i/w

	x0, x1 := max(cx-radius, 0), min(cx+radius, w-1)
	y0, y1 := max(cy-radius, 0), min(cy+radius, h-1)

	var sr, sg, sb, n int
	for y := y0; y <= y1; y++ {
		row := y * w
		for x := x0; x <= x1; x++ {
			j := row + x
			if s.Contains(j) {
				continue
			}
			o := j * 4
			sr += int(pix[o])
			sg += int(pix[o+1])
			sb += int(pix[o+2])
			n++
		}
	}

	if n == 0 {
		return update{idx: i}
	}

	// #nosec G115 -- a mean of bytes is always in [0, 255]
	half := n / 2
	return update{
		idx: i,
		r:   uint8((sr + half) / n),
		g:   uint8((sg + half) / n),
		b:   uint8((sb + half) / n),
		ok:  true,
	}
}
