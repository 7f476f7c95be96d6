// Package blade derives blade-row geometry and metal angles along each
// radial stream of a stage.
package blade

import (
	"fmt"
	"math"

	"github.com/san-kum/turbodesigner/internal/deviation"
	"github.com/san-kum/turbodesigner/internal/flow"
	"github.com/san-kum/turbodesigner/internal/units"
	"github.com/san-kum/turbodesigner/internal/vortex"
)

const (
	// StatorParity: stator blade counts are rounded down to a multiple of
	// this so the row splits into two identical halves.
	StatorParity = 2

	// MaxMach is the highest inlet Mach number (relative for rotors) the
	// subsonic profiles cover.
	MaxMach = 1.2

	DiskHeightFactor = 1.25

	// SupportedFamily is the only airfoil family with profile generation.
	SupportedFamily = deviation.DCA

	// ClosureReaction is the reaction at which a stator without a following
	// row can take its exit angle from the vortex law.
	ClosureReaction = 0.5
)

type Params struct {
	StageNumber int
	Station     flow.Station // annulus station at the row inlet
	Vortex      vortex.Law
	AR          float64 // aspect ratio
	SC          float64 // spacing to chord
	Tbc         float64 // max thickness to chord
	Rotating    bool
	NStream     int
	Method      deviation.Method
	Family      deviation.Family
	Iterations  int
}

// Row is one rotor or stator row. It is built in two steps: New fixes the
// geometry and inlet streams, Resolve links the following row and computes
// exit angles and metal angles.
type Row struct {
	p Params

	hub, tip, mean float64
	z              int
	radii          []float64
	streams        []flow.Station

	resolved bool
	exit     []flow.Station
	beta2    []float64
	metal    []deviation.MetalAngles
}

func New(p Params) (*Row, error) {
	if p.NStream < 1 || p.NStream%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrEvenStreamCount, p.NStream)
	}
	if p.Family != SupportedFamily {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAirfoil, p.Family)
	}
	if p.Iterations <= 0 {
		p.Iterations = deviation.DefaultIterations
	}

	r := &Row{p: p}
	var err error
	if r.mean, err = p.Station.MeanRadius(); err != nil {
		return nil, fmt.Errorf("row radius: %w", err)
	}
	if r.hub, err = p.Station.InnerRadius(); err != nil {
		return nil, fmt.Errorf("row hub radius: %w", err)
	}
	if r.tip, err = p.Station.OuterRadius(); err != nil {
		return nil, fmt.Errorf("row tip radius: %w", err)
	}

	z := int(math.Ceil(2 * math.Pi * r.mean / (p.SC * r.Chord())))
	if !p.Rotating && z%StatorParity != 0 {
		z--
	}
	r.z = z

	r.radii = units.Linspace(r.hub, r.tip, p.NStream)
	r.streams = make([]flow.Station, len(r.radii))
	alphas := vortex.Alphas(p.Vortex, r.radii, p.Rotating)
	for i, radius := range r.radii {
		r.streams[i] = p.Station.CopyStream(
			flow.WithAlpha(alphas[i]),
			flow.WithRadius(radius),
		)
		if mach := r.inletMach(r.streams[i]); mach > MaxMach {
			return nil, fmt.Errorf("%w: %.3f at r=%.4f m", ErrUnsupportedMach, mach, radius)
		}
	}
	return r, nil
}

func (r *Row) inletMach(s flow.Station) float64 {
	if r.p.Rotating {
		return s.MNRel()
	}
	return s.MN()
}

// Resolve closes the row's exit velocity triangle against next, the
// following row. A rotor without a following row uses the vortex law in the
// stationary frame; a stator without one needs a 0.5 reaction stage.
func (r *Row) Resolve(next *Row) error {
	if next != nil && len(next.streams) != len(r.streams) {
		return fmt.Errorf("%w: %d != %d", ErrStreamMismatch, len(next.streams), len(r.streams))
	}

	switch {
	case next != nil:
		r.exit = next.streams
	case r.p.Rotating:
		r.exit = r.closureStreams(false)
	default:
		if reaction := r.p.Vortex.Mean().Reaction; reaction != ClosureReaction {
			return fmt.Errorf("%w: stage %d reaction %.3f", ErrMissingNextRow, r.p.StageNumber, reaction)
		}
		r.exit = r.closureStreams(true)
	}

	beta1 := r.Beta1()
	r.beta2 = make([]float64, len(r.exit))
	r.metal = make([]deviation.MetalAngles, len(r.exit))
	for i, s := range r.exit {
		if r.p.Rotating {
			r.beta2[i] = s.Beta()
		} else {
			r.beta2[i] = s.Alpha.Value()
		}
		jb := deviation.JohnsenBullock{
			Beta1:  beta1[i],
			Beta2:  r.beta2[i],
			Sigma:  r.Sigma(),
			Tbc:    r.p.Tbc,
			Family: r.p.Family,
		}
		ma, err := r.p.Method.Solve(jb, r.p.Iterations)
		if err != nil {
			return fmt.Errorf("stream %d: %w", i, err)
		}
		r.metal[i] = ma
	}
	r.resolved = true
	return nil
}

func (r *Row) closureStreams(rotating bool) []flow.Station {
	out := make([]flow.Station, len(r.radii))
	alphas := vortex.Alphas(r.p.Vortex, r.radii, rotating)
	for i, radius := range r.radii {
		out[i] = r.p.Station.CopyStream(
			flow.WithAlpha(alphas[i]),
			flow.WithRadius(radius),
		)
	}
	return out
}

func (r *Row) StageNumber() int { return r.p.StageNumber }

func (r *Row) Rotating() bool { return r.p.Rotating }

func (r *Row) Station() flow.Station { return r.p.Station }

func (r *Row) Family() deviation.Family { return r.p.Family }

func (r *Row) Resolved() bool { return r.resolved }

// Hub, Tip and Mean are the annulus radii (m).
func (r *Row) Hub() float64 { return r.hub }

func (r *Row) Tip() float64 { return r.tip }

func (r *Row) Mean() float64 { return r.mean }

// Height is the blade span (m).
func (r *Row) Height() float64 { return r.tip - r.hub }

func (r *Row) Chord() float64 { return r.Height() / r.p.AR }

// Tb is the blade max thickness (m).
func (r *Row) Tb() float64 { return r.p.Tbc * r.Chord() }

// Z is the blade count.
func (r *Row) Z() int { return r.z }

// Spacing is the blade pitch at the hub (m).
func (r *Row) Spacing() float64 { return 2 * math.Pi * r.hub / float64(r.z) }

// SH is spacing to height.
func (r *Row) SH() float64 { return r.Spacing() / r.Height() }

// Sigma is the solidity.
func (r *Row) Sigma() float64 { return 1 / r.p.SC }

// Re is the chord Reynolds number at the row's annulus station.
func (r *Row) Re() float64 {
	s := r.p.Station
	return s.Rho() * s.Vm * r.Chord() / s.Mu()
}

// Radii returns the stream radii from hub to tip.
func (r *Row) Radii() []float64 { return r.radii }

// Streams returns the per-stream inlet stations.
func (r *Row) Streams() []flow.Station { return r.streams }

// Beta1 is the inlet flow angle per stream: relative for rotors, absolute
// for stators (rad).
func (r *Row) Beta1() []float64 {
	out := make([]float64, len(r.streams))
	for i, s := range r.streams {
		if r.p.Rotating {
			out[i] = s.Beta()
		} else {
			out[i] = s.Alpha.Value()
		}
	}
	return out
}

// Beta2 is the exit flow angle per stream (rad). Nil before Resolve.
func (r *Row) Beta2() []float64 { return r.beta2 }

// MetalAngles per stream. Nil before Resolve.
func (r *Row) MetalAngles() []deviation.MetalAngles { return r.metal }

// DF is the Lieblein diffusion factor per stream. Nil before Resolve.
func (r *Row) DF() []float64 {
	if !r.resolved {
		return nil
	}
	beta1 := r.Beta1()
	out := make([]float64, len(beta1))
	for i, b1 := range beta1 {
		b2 := r.beta2[i]
		out[i] = 1 - math.Cos(b1)/math.Cos(b2) +
			math.Abs(math.Tan(b1)-math.Tan(b2))*math.Cos(b1)/(2*r.Sigma())
	}
	return out
}

// DeHaller is the exit to inlet velocity ratio in the row frame: W2/W1 for
// rotors, V2/V1 for stators. Nil before Resolve.
func (r *Row) DeHaller() []float64 {
	if !r.resolved {
		return nil
	}
	out := make([]float64, len(r.streams))
	for i, in := range r.streams {
		if r.p.Rotating {
			out[i] = r.exit[i].W() / in.W()
		} else {
			out[i] = r.exit[i].V() / in.V()
		}
	}
	return out
}

// DiskHeight is the axial disk length (m), sized from hub stagger on rotors
// and tip stagger on stators. NaN before Resolve.
func (r *Row) DiskHeight() float64 {
	if !r.resolved {
		return math.NaN()
	}
	xi := r.metal[len(r.metal)-1].Xi()
	if r.p.Rotating {
		xi = r.metal[0].Xi()
	}
	return math.Abs(r.Chord() * math.Cos(xi) * DiskHeightFactor)
}

// TwistAngle is tip stagger minus hub stagger (rad). NaN before Resolve.
func (r *Row) TwistAngle() float64 {
	if !r.resolved {
		return math.NaN()
	}
	return r.metal[len(r.metal)-1].Xi() - r.metal[0].Xi()
}
