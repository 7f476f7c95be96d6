// Package stage splits a stage's temperature rise into rotor inlet and
// stator inlet flow stations and owns the stage's two blade rows.
package stage

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/turbodesigner/internal/blade"
	"github.com/san-kum/turbodesigner/internal/deviation"
	"github.com/san-kum/turbodesigner/internal/flow"
	"github.com/san-kum/turbodesigner/internal/units"
	"github.com/san-kum/turbodesigner/internal/vortex"
)

var (
	ErrRadiusUnset  = errors.New("stage: previous flow station has no mean radius")
	ErrRowsNotBuilt = errors.New("stage: blade rows not built")
	ErrNilVortexLaw = errors.New("stage: vortex law constructor returned nil")
)

// BladeProperty is a per-row hyperparameter pair.
type BladeProperty struct {
	Rotor  float64 `yaml:"rotor" json:"rotor"`
	Stator float64 `yaml:"stator" json:"stator"`
}

type Params struct {
	Number   int
	DeltaTt  float64 // stagnation temperature rise (K)
	Reaction float64
	Previous flow.Station
	EtaPoly  float64
	NStream  int

	AR  BladeProperty
	SC  BladeProperty
	Tbc BladeProperty
	RGC float64 // row gap to rotor chord
	SGC float64 // stage gap to rotor chord

	Method     deviation.Method
	Family     deviation.Family
	Iterations int

	// NewVortex builds the radial equilibrium law. Nil means free vortex.
	NewVortex func(vortex.Params) vortex.Law
}

type Stage struct {
	p Params

	rm float64
	n  float64

	inlet flow.Station
	mid   flow.Station
	law   vortex.Law

	rotor  *blade.Row
	stator *blade.Row
}

// New evaluates the stage thermodynamics. Blade rows are built separately
// with BuildRows once every stage boundary exists.
func New(p Params) (*Stage, error) {
	rm, ok := p.Previous.Radius.Get()
	if !ok {
		return nil, fmt.Errorf("stage %d: %w", p.Number, ErrRadiusUnset)
	}
	s := &Stage{p: p, rm: rm, n: p.Previous.N}

	phi, psi := s.Phi(), s.Psi()
	s.inlet = p.Previous.CopyFlow(flow.WithAlpha(math.Atan((1 - p.Reaction - psi/2) / phi)))
	s.mid = s.inlet.CopyFlow(
		flow.WithTt(s.Tt2()),
		flow.WithPt(s.inlet.Pt*s.PR()),
		flow.WithAlpha(math.Atan((1-p.Reaction+psi/2)/phi)),
	)

	newLaw := p.NewVortex
	if newLaw == nil {
		newLaw = func(vp vortex.Params) vortex.Law { return vortex.NewFree(vp) }
	}
	s.law = newLaw(vortex.Params{
		Um:       s.U(),
		Vm:       p.Previous.Vm,
		Reaction: p.Reaction,
		Psi:      psi,
		Radius:   rm,
	})
	if s.law == nil {
		return nil, fmt.Errorf("stage %d: %w", p.Number, ErrNilVortexLaw)
	}
	return s, nil
}

// BuildRows constructs the rotor on the stage inlet station and the stator
// on the mid station.
func (s *Stage) BuildRows() error {
	rotor, err := blade.New(s.rowParams(s.inlet, true))
	if err != nil {
		return fmt.Errorf("rotor: %w", err)
	}
	stator, err := blade.New(s.rowParams(s.mid, false))
	if err != nil {
		return fmt.Errorf("stator: %w", err)
	}
	s.rotor, s.stator = rotor, stator
	return nil
}

func (s *Stage) rowParams(station flow.Station, rotating bool) blade.Params {
	pick := func(bp BladeProperty) float64 {
		if rotating {
			return bp.Rotor
		}
		return bp.Stator
	}
	return blade.Params{
		StageNumber: s.p.Number,
		Station:     station,
		Vortex:      s.law,
		AR:          pick(s.p.AR),
		SC:          pick(s.p.SC),
		Tbc:         pick(s.p.Tbc),
		Rotating:    rotating,
		NStream:     s.p.NStream,
		Method:      s.p.Method,
		Family:      s.p.Family,
		Iterations:  s.p.Iterations,
	}
}

// Resolve links the rotor to this stage's stator and the stator to the
// rotor of next, which is nil for the last stage.
func (s *Stage) Resolve(next *Stage) error {
	if s.rotor == nil || s.stator == nil {
		return fmt.Errorf("stage %d: %w", s.p.Number, ErrRowsNotBuilt)
	}
	if err := s.rotor.Resolve(s.stator); err != nil {
		return fmt.Errorf("rotor: %w", err)
	}
	var nextRotor *blade.Row
	if next != nil {
		if next.rotor == nil {
			return fmt.Errorf("stage %d: %w", next.p.Number, ErrRowsNotBuilt)
		}
		nextRotor = next.rotor
	}
	if err := s.stator.Resolve(nextRotor); err != nil {
		return fmt.Errorf("stator: %w", err)
	}
	return nil
}

func (s *Stage) Number() int { return s.p.Number }

func (s *Stage) DeltaTt() float64 { return s.p.DeltaTt }

func (s *Stage) Reaction() float64 { return s.p.Reaction }

func (s *Stage) EtaPoly() float64 { return s.p.EtaPoly }

func (s *Stage) MeanRadius() float64 { return s.rm }

// DeltaHt is the stagnation enthalpy rise, using the upstream station's Cp.
func (s *Stage) DeltaHt() float64 { return s.p.DeltaTt * s.p.Previous.Cp() }

// U is the mean blade speed.
func (s *Stage) U() float64 { return flow.CalcU(s.n, s.rm) }

// Phi is the flow coefficient.
func (s *Stage) Phi() float64 { return s.p.Previous.Vm / s.U() }

// Psi is the loading coefficient.
func (s *Stage) Psi() float64 {
	u := s.U()
	return s.DeltaHt() / (u * u)
}

func (s *Stage) Tt2() float64 { return s.p.Previous.Tt + s.p.DeltaTt }

// TR is the stagnation temperature ratio across the stage.
func (s *Stage) TR() float64 { return s.Tt2() / s.p.Previous.Tt }

// PR is the stagnation pressure ratio from the polytropic relation.
func (s *Stage) PR() float64 {
	g := s.p.Previous.Gamma
	return math.Pow(s.TR(), s.p.EtaPoly*g/(g-1))
}

// Tau is the shaft torque absorbed by the stage (N*m).
func (s *Stage) Tau() float64 {
	return s.inlet.Mdot.Value() * s.rm * (s.mid.Vtheta() - s.inlet.Vtheta())
}

// Inlet is the rotor inlet station.
func (s *Stage) Inlet() flow.Station { return s.inlet }

// Mid is the rotor exit and stator inlet station.
func (s *Stage) Mid() flow.Station { return s.mid }

func (s *Stage) Vortex() vortex.Law { return s.law }

func (s *Stage) Rotor() *blade.Row { return s.rotor }

func (s *Stage) Stator() *blade.Row { return s.stator }

// RowGap is the axial gap between rotor and stator (m).
func (s *Stage) RowGap() float64 { return s.p.RGC * s.rotorChord() }

// StageGap is the axial gap to the next stage (m).
func (s *Stage) StageGap() float64 { return s.p.SGC * s.rotorChord() }

func (s *Stage) rotorChord() float64 {
	if s.rotor == nil {
		return math.NaN()
	}
	return s.rotor.Chord()
}

// Export is the manufacturing view of a stage, in mm.
type Export struct {
	StageNumber int          `json:"stage_number"`
	Rotor       blade.Export `json:"rotor"`
	Stator      blade.Export `json:"stator"`
	StageHeight float64      `json:"stage_height"`
	RowGap      float64      `json:"row_gap"`
	StageGap    float64      `json:"stage_gap"`
}

func (s *Stage) Export() (Export, error) {
	if s.rotor == nil || s.stator == nil {
		return Export{}, ErrRowsNotBuilt
	}
	rotor, err := s.rotor.Export()
	if err != nil {
		return Export{}, fmt.Errorf("rotor: %w", err)
	}
	stator, err := s.stator.Export()
	if err != nil {
		return Export{}, fmt.Errorf("stator: %w", err)
	}
	return Export{
		StageNumber: s.p.Number,
		Rotor:       rotor,
		Stator:      stator,
		StageHeight: rotor.DiskHeight + stator.DiskHeight,
		RowGap:      s.RowGap() * units.MM,
		StageGap:    s.StageGap() * units.MM,
	}, nil
}
