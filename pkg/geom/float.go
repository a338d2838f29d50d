package geom

import "math"

// Epsilon is the tolerance used to treat near-zero values as zero.
const Epsilon = 1e-9

// ApproxEqual reports whether a and b differ by less than Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// ApproxZero reports whether |v| < Epsilon.
func ApproxZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
