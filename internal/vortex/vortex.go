// Package vortex provides radial equilibrium laws that distribute swirl from
// hub to tip around a meanline design point.
package vortex

import "math"

// Params is the meanline design point a law is anchored to.
type Params struct {
	Um       float64 // mean blade speed (m/s)
	Vm       float64 // meridional velocity (m/s)
	Reaction float64 // mean reaction
	Psi      float64 // mean loading coefficient
	Radius   float64 // mean radius (m)
}

// Law gives tangential velocity and flow angle as a function of radius in
// either the rotating (rotor inlet) or stationary (rotor exit) frame.
type Law interface {
	Ctheta(r float64, rotating bool) float64
	Alpha(r float64, rotating bool) float64
	Mean() Params
}

// Free is the free-vortex law: constant meridional velocity and
// tangential velocity inversely proportional to radius.
type Free struct {
	p Params
}

func NewFree(p Params) *Free {
	return &Free{p: p}
}

func (f *Free) Mean() Params { return f.p }

func (f *Free) Ctheta(r float64, rotating bool) float64 {
	mu := r / f.p.Radius
	swirl := f.p.Um * (1 - f.p.Reaction) / mu
	work := f.p.Psi * f.p.Um / 2 / mu
	if rotating {
		return swirl - work
	}
	return swirl + work
}

func (f *Free) Alpha(r float64, rotating bool) float64 {
	return math.Atan(f.Ctheta(r, rotating) / f.p.Vm)
}

// Alphas evaluates law at every radius.
func Alphas(law Law, radii []float64, rotating bool) []float64 {
	out := make([]float64, len(radii))
	for i, r := range radii {
		out[i] = law.Alpha(r, rotating)
	}
	return out
}
