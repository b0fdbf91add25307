package utils

import "math"

// Epsilon is the absolute tolerance used when comparing floating point components.
const Epsilon = 0.00001

// Float64AlmostEqual reports whether a and b differ by strictly less than Epsilon.
// NaN is never almost equal to anything, including itself.
func Float64AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Float32AlmostEqual is Float64AlmostEqual for single precision values. Both
// arguments are widened before comparing.
func Float32AlmostEqual(a, b float32) bool {
	return Float64AlmostEqual(float64(a), float64(b))
}

// Square returns n*n without going through math.Pow.
func Square(n float64) float64 {
	return n * n
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
