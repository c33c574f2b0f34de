// Package fill implements the boundary-driven content-aware fill used for
// object removal.
//
// The region to remove is tracked as a Set of linear pixel indices
// (y*width + x). Wavefront shrinks that set from its edges inward, one ring
// of pixels per round, replacing each resolved pixel with the mean colour of
// the known pixels around it.
package fill

import "math/bits"

// Set is a bitmap over the pixels of a width×height grid.
//
// Thread safety: Contains and Len may be called concurrently as long as no
// goroutine mutates the set at the same time.
type Set struct {
	width  int
	height int
	words  []uint64
	n      int
}

// NewSet creates an empty set for a width×height grid.
func NewSet(width, height int) *Set {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Set{
		width:  width,
		height: height,
		words:  make([]uint64, (width*height+63)/64),
	}
}

// Width returns the grid width.
func (s *Set) Width() int { return s.width }

// Height returns the grid height.
func (s *Set) Height() int { return s.height }

// Len returns the number of pixels in the set.
func (s *Set) Len() int { return s.n }

// Contains reports whether pixel i is in the set.
// Indices outside the grid are never contained.
func (s *Set) Contains(i int) bool {
	if i < 0 || i >= s.width*s.height {
		return false
	}
	return s.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Add inserts pixel i. Indices outside the grid are ignored.
func (s *Set) Add(i int) {
	if i < 0 || i >= s.width*s.height {
		return
	}
	w, b := i>>6, uint64(1)<<(uint(i)&63)
	if s.words[w]&b == 0 {
		s.words[w] |= b
		s.n++
	}
}

// Remove deletes pixel i. Indices outside the grid are ignored.
func (s *Set) Remove(i int) {
	if i < 0 || i >= s.width*s.height {
		return
	}
	w, b := i>>6, uint64(1)<<(uint(i)&63)
	if s.words[w]&b != 0 {
		s.words[w] &^= b
		s.n--
	}
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return &Set{
		width:  s.width,
		height: s.height,
		words:  words,
		n:      s.n,
	}
}

// ForEach calls fn for every pixel in the set in ascending index order.
// fn must not mutate the set.
func (s *Set) ForEach(fn func(i int)) {
	for w, word := range s.words {
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			fn(w<<6 + tz)
			word &= word - 1
		}
	}
}

// Indices returns the pixels in the set in ascending order.
func (s *Set) Indices() []int {
	out := make([]int, 0, s.n)
	s.ForEach(func(i int) {
		out = append(out, i)
	})
	return out
}
