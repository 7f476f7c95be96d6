// Package units holds the conversion factors applied at export boundaries.
// All computation inside the design engine is SI.
package units

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// MM converts meters to millimeters.
	MM = 1000.0
	// BAR converts pascals to bar.
	BAR = 1e-5
	// DEG converts radians to degrees.
	DEG = 180.0 / math.Pi
)

func Degrees(rad float64) float64 { return rad * DEG }

func Radians(deg float64) float64 { return deg / DEG }

// Scale returns a new slice with every element multiplied by k.
func Scale(xs []float64, k float64) []float64 {
	return floats.ScaleTo(make([]float64, len(xs)), k, xs)
}

// Linspace returns n evenly spaced points from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := floats.Span(make([]float64, n), start, stop)
	out[n-1] = stop
	return out
}
