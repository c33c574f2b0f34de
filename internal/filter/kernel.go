package filter

// BinomialRow returns row 2*radius of Pascal's triangle, the 1D binomial
// kernel of the given radius. The values sum to 1<<(2*radius).
//
// For radius <= 0, returns [1] (identity).
func BinomialRow(radius int) []int {
	if radius <= 0 {
		return []int{1}
	}

	n := 2 * radius
	row := make([]int, n+1)
	row[0] = 1
	for k := 1; k <= n; k++ {
		row[k] = row[k-1] * (n - k + 1) / k
	}
	return row
}

// Kernel is a square integer convolution kernel normalised by Divisor.
type Kernel struct {
	// Radius is the half-size; the kernel is (2*Radius+1)².
	Radius int

	// Weights holds the row-major kernel values.
	Weights []int

	// Divisor is the sum of Weights.
	Divisor int
}

// NewBinomialKernel builds the 2D binomial kernel of the given radius as the
// outer product of BinomialRow with itself.
func NewBinomialKernel(radius int) Kernel {
	if radius < 0 {
		radius = 0
	}

	row := BinomialRow(radius)
	size := len(row)
	weights := make([]int, size*size)
	sum := 0
	for y, wy := range row {
		for x, wx := range row {
			weights[y*size+x] = wy * wx
			sum += wy * wx
		}
	}

	return Kernel{
		Radius:  radius,
		Weights: weights,
		Divisor: sum,
	}
}

// Size returns the kernel width (and height).
func (k Kernel) Size() int {
	return 2*k.Radius + 1
}

// Seam is the 3×3 kernel used to blend filled regions into their
// surroundings: 1 2 1 / 2 4 2 / 1 2 1, divided by 16.
var Seam = NewBinomialKernel(1)
