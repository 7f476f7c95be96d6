// Package turbo assembles a multi-stage turbomachine from a design record.
//
// Assembly runs in two passes. The first pass chains the stage
// thermodynamics, each stage starting from the previous stage's mid station.
// The second pass builds every blade row and then resolves each row against
// the row that follows it, so a stator can look ahead into the next rotor
// without the stages referring to each other.
package turbo

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/san-kum/turbodesigner/internal/blade"
	"github.com/san-kum/turbodesigner/internal/config"
	"github.com/san-kum/turbodesigner/internal/flow"
	"github.com/san-kum/turbodesigner/internal/registry"
	"github.com/san-kum/turbodesigner/internal/stage"
)

// LastStageReaction is the only reaction the last stage may have: its stator
// closes on the vortex law since no row follows it.
const LastStageReaction = blade.ClosureReaction

type Machine struct {
	design  *config.Design
	etaPoly float64
	inlet   flow.Station
	outlet  flow.Station
	stages  []*stage.Stage
}

type options struct {
	registry *registry.Registry
}

type Option func(*options)

// WithRegistry resolves vortex laws, methods and families from r.
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) { o.registry = r }
}

// New validates d and assembles the machine. Precondition failures are
// reported before any stage is evaluated.
func New(d *config.Design, opts ...Option) (*Machine, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = registry.NewRegistry()
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	if err := checkPreconditions(d); err != nil {
		return nil, err
	}
	newVortex, err := o.registry.GetVortex(d.Vortex)
	if err != nil {
		return nil, err
	}
	method, err := o.registry.GetMethod(d.MetalAngleMethod)
	if err != nil {
		return nil, err
	}
	family, err := o.registry.GetFamily(d.Airfoil)
	if err != nil {
		return nil, err
	}

	m := &Machine{design: d.Clone()}
	m.etaPoly = PolytropicEfficiency(d.Gamma, d.PR, d.EtaIsen)

	m.inlet = flow.Station{
		Gamma: d.Gamma,
		Rs:    d.Rs,
		Tt:    d.Tt1,
		Pt:    d.Pt1,
		Vm:    d.Cx,
		Mdot:  flow.Some(d.Mdot),
		B:     d.BIn.First(),
		N:     d.N,
	}
	if err := m.inlet.SetRadius(d.Ht); err != nil {
		return nil, fmt.Errorf("inlet: %w", err)
	}
	m.outlet = flow.Station{
		Gamma:  d.Gamma,
		Rs:     d.Rs,
		Tt:     d.Tt1 * math.Pow(d.PR, (d.Gamma-1)/(m.etaPoly*d.Gamma)),
		Pt:     d.Pt1 * d.PR,
		Vm:     d.Cx,
		Mdot:   flow.Some(d.Mdot),
		B:      d.BOut.Last(),
		N:      d.N,
		Radius: m.inlet.Radius,
	}

	rises := m.stageRises()
	previous := m.inlet
	m.stages = make([]*stage.Stage, d.NStg)
	for i := range m.stages {
		st, err := stage.New(stage.Params{
			Number:     i + 1,
			DeltaTt:    rises[i],
			Reaction:   d.RStg.At(i),
			Previous:   previous,
			EtaPoly:    m.etaPoly,
			NStream:    d.NStream,
			AR:         d.AR.At(i),
			SC:         d.SC.At(i),
			Tbc:        d.Tbc.At(i),
			RGC:        d.RGC.At(i),
			SGC:        d.SGC.At(i),
			Method:     method,
			Family:     family,
			Iterations: d.DeviationIterations,
			NewVortex:  newVortex,
		})
		if err != nil {
			return nil, &StageError{Stage: i + 1, Op: "split", Wrapped: err}
		}
		log.WithFields(log.Fields{
			"stage":    st.Number(),
			"delta_tt": st.DeltaTt(),
			"reaction": st.Reaction(),
			"pr":       st.PR(),
		}).Debug("stage evaluated")
		m.stages[i] = st
		previous = st.Mid()
	}

	for _, st := range m.stages {
		if err := st.BuildRows(); err != nil {
			return nil, &StageError{Stage: st.Number(), Op: "build rows", Wrapped: err}
		}
	}
	for i, st := range m.stages {
		var next *stage.Stage
		if i+1 < len(m.stages) {
			next = m.stages[i+1]
		}
		if err := st.Resolve(next); err != nil {
			return nil, &StageError{Stage: st.Number(), Op: "resolve rows", Wrapped: err}
		}
		for _, row := range []*blade.Row{st.Rotor(), st.Stator()} {
			log.WithFields(log.Fields{
				"stage": st.Number(),
				"row":   rowName(row),
				"z":     row.Z(),
				"chord": row.Chord(),
				"df":    row.DF(),
			}).Debug("blade row resolved")
		}
	}
	return m, nil
}

func rowName(row *blade.Row) string {
	if row.Rotating() {
		return "rotor"
	}
	return "stator"
}

func checkPreconditions(d *config.Design) error {
	if d.NStg < 1 {
		return fmt.Errorf("%w: N_stg=%d", ErrStageCount, d.NStg)
	}
	lists := []struct {
		name string
		n    int
		list bool
	}{
		{"R_stg", d.RStg.Len(), d.RStg.IsList()},
		{"rgc", d.RGC.Len(), d.RGC.IsList()},
		{"sgc", d.SGC.Len(), d.SGC.IsList()},
		{"AR", d.AR.Len(), d.AR.IsList()},
		{"sc", d.SC.Len(), d.SC.IsList()},
		{"tbc", d.Tbc.Len(), d.Tbc.IsList()},
	}
	for _, l := range lists {
		if l.n == 0 || (l.list && l.n != d.NStg) {
			return fmt.Errorf("%w: %s has %d values for %d stages", ErrStageCount, l.name, l.n, d.NStg)
		}
	}
	if d.BIn.Len() == 0 || d.BOut.Len() == 0 {
		return fmt.Errorf("%w: blockage factor missing", ErrStageCount)
	}

	if !d.DeltaTtStg.Equal {
		if len(d.DeltaTtStg.Values) != d.NStg {
			return fmt.Errorf("%w: Delta_Tt_stg has %d values for %d stages", ErrStageCount, len(d.DeltaTtStg.Values), d.NStg)
		}
		for i, dt := range d.DeltaTtStg.Values {
			if math.IsNaN(dt) || math.IsInf(dt, 0) {
				return fmt.Errorf("%w: stage %d rise %.3f K", ErrTemperatureRise, i+1, dt)
			}
		}
	}

	if last := d.RStg.At(d.NStg - 1); last != LastStageReaction {
		return fmt.Errorf("%w: got %.3f", ErrLastStageReaction, last)
	}
	return nil
}

func (m *Machine) stageRises() []float64 {
	d := m.design
	if !d.DeltaTtStg.Equal {
		return d.DeltaTtStg.Values
	}
	rises := make([]float64, d.NStg)
	for i := range rises {
		rises[i] = m.DeltaTt() / float64(d.NStg)
	}
	return rises
}

// PolytropicEfficiency converts an overall isentropic efficiency to the
// polytropic efficiency at pressure ratio pr.
func PolytropicEfficiency(gamma, pr, etaIsen float64) float64 {
	k := (gamma - 1) / gamma
	return k * math.Log(pr) / math.Log((etaIsen+math.Pow(pr, k)-1)/etaIsen)
}

func (m *Machine) Design() *config.Design { return m.design }

func (m *Machine) EtaPoly() float64 { return m.etaPoly }

// Inlet is the machine inlet station with its annulus fixed by the hub to
// tip ratio.
func (m *Machine) Inlet() flow.Station { return m.inlet }

// Outlet is the machine exit station at the inlet mean radius.
func (m *Machine) Outlet() flow.Station { return m.outlet }

// DeltaTt is the overall stagnation temperature rise (K).
func (m *Machine) DeltaTt() float64 { return m.outlet.Tt - m.inlet.Tt }

// TR is the overall stagnation temperature ratio.
func (m *Machine) TR() float64 { return m.outlet.Tt / m.inlet.Tt }

func (m *Machine) Stages() []*stage.Stage { return m.stages }

// Rows returns every blade row in flow order.
func (m *Machine) Rows() []*blade.Row {
	rows := make([]*blade.Row, 0, 2*len(m.stages))
	for _, st := range m.stages {
		rows = append(rows, st.Rotor(), st.Stator())
	}
	return rows
}

// Export is the manufacturing view of the whole machine.
type Export struct {
	Stages []stage.Export `json:"stages"`
}

func (m *Machine) Export() (Export, error) {
	out := Export{Stages: make([]stage.Export, 0, len(m.stages))}
	for _, st := range m.stages {
		ex, err := st.Export()
		if err != nil {
			return Export{}, &StageError{Stage: st.Number(), Op: "export", Wrapped: err}
		}
		out.Stages = append(out.Stages, ex)
	}
	return out, nil
}
