// Package filter provides the convolution used to soften the seam between
// filled and original pixels.
//
// Kernels are small integer binomial kernels (discrete Gaussian
// approximations) so that results are exact and reproducible:
//   - radius 1: 1 2 1 / 2 4 2 / 1 2 1, divided by 16
//   - radius 2: rows of 1 4 6 4 1, divided by 256
//
// Convolution is restricted to a caller-supplied pixel predicate and never
// reads pixels outside the image, so pixels within the kernel radius of the
// border are left untouched.
package filter
