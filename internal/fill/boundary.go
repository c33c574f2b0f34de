package fill

// neighbors8 lists the offsets of the 8-connected neighbourhood.
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// neighbors4 lists the offsets of the 4-connected neighbourhood (N, W, E, S).
var neighbors4 = [4][2]int{
	{0, -1}, {-1, 0}, {1, 0}, {0, 1},
}

// Boundary returns the pixels of s that touch at least one in-bounds pixel
// outside s in their 8-neighbourhood, in ascending index order.
//
// Neighbours that fall outside the grid are skipped; the image border alone
// never makes a pixel a boundary pixel.
func Boundary(s *Set) []int {
	w, h := s.width, s.height
	var out []int

	s.ForEach(func(i int) {
		x, y := i%w, i/w
		for _, d := range neighbors8 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if !s.Contains(ny*w + nx) {
				out = append(out, i)
				return
			}
		}
	})

	return out
}

// frontier returns the pixels of s with at least one 4-connected in-bounds
// neighbour outside s. These are the pixels a fill round may resolve.
func frontier(s *Set) []int {
	w, h := s.width, s.height
	var out []int

	s.ForEach(func(i int) {
		x, y := i%w, i/w
		for _, d := range neighbors4 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if !s.Contains(ny*w + nx) {
				out = append(out, i)
				return
			}
		}
	})

	return out
}
