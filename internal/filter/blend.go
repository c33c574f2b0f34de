package filter

import "github.com/gogpu/inpaint/internal/parallel"

// BlendMasked convolves the pixels of an RGBA8 row-major buffer for which
// inside returns true and returns the result as a new buffer.
//
// All four channels are convolved with k and rounded to the nearest integer.
// Pixels closer than k.Radius to the image border are copied unchanged, as
// are pixels for which inside is false. Every read comes from src, so the
// output does not depend on processing order; rows are split across pool
// (nil means sequential).
//
// src must hold width*height*4 bytes. inside receives linear pixel indices
// (y*width + x) and may be called concurrently.
func BlendMasked(src []byte, width, height int, k Kernel, inside func(i int) bool, pool *parallel.WorkerPool) []byte {
	dst := make([]byte, len(src))
	copy(dst, src)

	r := k.Radius
	if r <= 0 || k.Divisor <= 0 || width <= 2*r || height <= 2*r || len(src) < width*height*4 {
		return dst
	}

	size := k.Size()
	half := k.Divisor / 2

	pool.Range(height-2*r, func(lo, hi int) {
		for y := lo + r; y < hi+r; y++ {
			for x := r; x < width-r; x++ {
				i := y*width + x
				if !inside(i) {
					continue
				}

				var sum [4]int
				for ky := 0; ky < size; ky++ {
					row := (y + ky - r) * width
					for kx := 0; kx < size; kx++ {
						wt := k.Weights[ky*size+kx]
						o := (row + x + kx - r) * 4
						sum[0] += int(src[o]) * wt
						sum[1] += int(src[o+1]) * wt
						sum[2] += int(src[o+2]) * wt
						sum[3] += int(src[o+3]) * wt
					}
				}

				o := i * 4
				for c := range 4 {
					// #nosec G115 -- weighted mean of bytes with positive weights stays in [0, 255]
					dst[o+c] = uint8((sum[c] + half) / k.Divisor)
				}
			}
		}
	})

	return dst
}
