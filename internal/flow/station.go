package flow

import (
	"fmt"
	"math"
)

// Sutherland's law reference constants for air.
const (
	MuRef      = 1.73e-5
	TRef       = 288.15
	Sutherland = 110.4
)

// Station is the ideal-gas state at one axial plane. Annulus stations carry
// mass flow and a mean radius; stream stations describe a single streamline
// at Radius and carry no mass flow.
type Station struct {
	Gamma float64 // ratio of specific heats
	Rs    float64 // specific gas constant (J/(kg*K))
	Tt    float64 // total temperature (K)
	Pt    float64 // total pressure (Pa)
	Vm    float64 // meridional velocity (m/s)
	Mdot  Optional
	B     float64 // blockage factor
	Alpha Optional
	N     float64 // rotational speed (rpm)

	Radius   Optional
	IsStream bool
}

// Option overrides one field when copying a station.
type Option func(*Station)

func WithTt(tt float64) Option { return func(s *Station) { s.Tt = tt } }

func WithPt(pt float64) Option { return func(s *Station) { s.Pt = pt } }

func WithVm(vm float64) Option { return func(s *Station) { s.Vm = vm } }

func WithMdot(mdot float64) Option { return func(s *Station) { s.Mdot = Some(mdot) } }

func WithAlpha(alpha float64) Option { return func(s *Station) { s.Alpha = Some(alpha) } }

func WithRadius(radius float64) Option { return func(s *Station) { s.Radius = Some(radius) } }

// CopyFlow returns an annulus station that shares the gas properties of s
// with the given fields overridden.
func (s Station) CopyFlow(opts ...Option) Station {
	c := s
	c.IsStream = false
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// CopyStream returns a stream station sharing the total state and velocity of s.
// Mass flow is dropped since it has no per-stream meaning.
func (s Station) CopyStream(opts ...Option) Station {
	c := s
	c.Mdot = None()
	c.IsStream = true
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SetRadius fixes the annulus from the physical flow area and a hub-to-tip
// ratio, and sets the mean radius to the midpoint of hub and tip.
func (s *Station) SetRadius(hubToTip float64) error {
	if s.IsStream {
		return ErrStreamProperty
	}
	if s.Radius.IsSet() {
		return ErrRadiusSet
	}
	aPhys, err := s.APhys()
	if err != nil {
		return fmt.Errorf("set radius: %w", err)
	}
	hub, tip := CalcHubTip(aPhys, hubToTip)
	s.Radius = Some((hub + tip) / 2)
	return nil
}

func (s Station) Cp() float64 { return s.Rs * s.Gamma / (s.Gamma - 1) }

// H0 is the stagnation enthalpy.
func (s Station) H0() float64 { return s.Tt * s.Cp() }

// V is the absolute velocity. Without a flow angle it is the meridional velocity.
func (s Station) V() float64 {
	alpha, ok := s.Alpha.Get()
	if !ok {
		return s.Vm
	}
	return s.Vm / math.Cos(alpha)
}

// H is the static enthalpy.
func (s Station) H() float64 {
	v := s.V()
	return s.H0() - v*v/2
}

func (s Station) T() float64 { return s.H() / s.Cp() }

func (s Station) P() float64 {
	return s.Pt * math.Pow(s.T()/s.Tt, s.Gamma/(s.Gamma-1))
}

func (s Station) Rho() float64 { return s.P() / (s.T() * s.Rs) }

// Q is the meridional dynamic pressure.
func (s Station) Q() float64 { return 0.5 * s.Rho() * s.Vm * s.Vm }

// A is the static speed of sound.
func (s Station) A() float64 { return math.Sqrt(s.Gamma * s.Rs * s.T()) }

func (s Station) MN() float64 { return s.V() / s.A() }

// MNRel is the Mach number in the rotating frame.
func (s Station) MNRel() float64 { return s.W() / s.A() }

// Mu is the dynamic viscosity from Sutherland's law.
func (s Station) Mu() float64 {
	t := s.T()
	return MuRef * math.Pow(t/TRef, 1.5) * (TRef + Sutherland) / (t + Sutherland)
}

// U is the blade speed at the station radius.
func (s Station) U() float64 { return CalcU(s.N, s.Radius.Value()) }

func (s Station) Vtheta() float64 {
	alpha, ok := s.Alpha.Get()
	if !ok {
		return 0
	}
	return s.Vm * math.Tan(alpha)
}

func (s Station) Wtheta() float64 { return s.Vtheta() - s.U() }

// Beta is the relative flow angle (rad).
func (s Station) Beta() float64 { return math.Atan(s.Wtheta() / s.Vm) }

func (s Station) W() float64 { return s.Vm / math.Cos(s.Beta()) }

// Vcr is the critical velocity at the station's total temperature.
func (s Station) Vcr() float64 {
	return math.Sqrt(2 * s.Gamma / (s.Gamma + 1) * s.Rs * s.Tt)
}

// Ttr is the relative total temperature.
func (s Station) Ttr() float64 {
	w, v := s.W(), s.V()
	return s.Tt + (w*w-v*v)/(2*s.Cp())
}

// Ptr is the relative total pressure.
func (s Station) Ptr() float64 {
	return s.Pt * math.Pow(s.Ttr()/s.Tt, s.Gamma/(s.Gamma-1))
}

// AFlow is the flow area required to pass the station's mass flow.
func (s Station) AFlow() (float64, error) {
	if s.IsStream {
		return 0, ErrStreamProperty
	}
	mdot, ok := s.Mdot.Get()
	if !ok {
		return 0, ErrMassFlowUnset
	}
	return mdot / (s.Rho() * s.Vm), nil
}

// APhys is the flow area grown by the blockage factor.
func (s Station) APhys() (float64, error) {
	a, err := s.AFlow()
	if err != nil {
		return 0, err
	}
	return a * (1 + s.B), nil
}

// MeanRadius returns the annulus mean radius.
func (s Station) MeanRadius() (float64, error) {
	if s.IsStream {
		return 0, ErrStreamProperty
	}
	r, ok := s.Radius.Get()
	if !ok {
		return 0, ErrRadiusUnset
	}
	return r, nil
}

func (s Station) OuterRadius() (float64, error) {
	r, err := s.MeanRadius()
	if err != nil {
		return 0, err
	}
	aPhys, err := s.APhys()
	if err != nil {
		return 0, err
	}
	return aPhys/(4*math.Pi*r) + r, nil
}

func (s Station) InnerRadius() (float64, error) {
	r, err := s.MeanRadius()
	if err != nil {
		return 0, err
	}
	outer, err := s.OuterRadius()
	if err != nil {
		return 0, err
	}
	return 2*r - outer, nil
}

// CalcU returns the blade speed (m/s) for a speed in rpm at radius r.
func CalcU(n, r float64) float64 { return 2 * math.Pi * n * r / 60 }

// CalcHubTip returns the hub and tip radius of an annulus with area aPhys
// and the given hub-to-tip ratio.
func CalcHubTip(aPhys, hubToTip float64) (hub, tip float64) {
	tip = math.Sqrt(aPhys / (math.Pi * (1 - hubToTip*hubToTip)))
	return hubToTip * tip, tip
}
