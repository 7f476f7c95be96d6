package stage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/turbodesigner/internal/blade"
	"github.com/san-kum/turbodesigner/internal/deviation"
	"github.com/san-kum/turbodesigner/internal/flow"
	"github.com/san-kum/turbodesigner/internal/vortex"
)

const etaPoly = 0.900000000717639

func inlet(t *testing.T) flow.Station {
	t.Helper()
	s := flow.Station{Gamma: 1.4, Rs: 287, Tt: 288, Pt: 101000, Vm: 150, Mdot: flow.Some(20), N: 15000}
	require.NoError(t, s.SetRadius(0.5))
	return s
}

func stageParams(number int, deltaTt, reaction float64, previous flow.Station) Params {
	return Params{
		Number:   number,
		DeltaTt:  deltaTt,
		Reaction: reaction,
		Previous: previous,
		EtaPoly:  etaPoly,
		NStream:  3,
		AR:       BladeProperty{Rotor: 2, Stator: 2},
		SC:       BladeProperty{Rotor: 1, Stator: 1},
		Tbc:      BladeProperty{Rotor: 0.1, Stator: 0.1},
		RGC:      0.25,
		SGC:      0.5,
		Method:   deviation.MethodJohnsenBullock,
		Family:   deviation.DCA,
	}
}

func firstTwo(t *testing.T) (*Stage, *Stage) {
	t.Helper()
	s1, err := New(stageParams(1, 20, 0.7, inlet(t)))
	require.NoError(t, err)
	s2, err := New(stageParams(2, 25, 0.7, s1.Mid()))
	require.NoError(t, err)
	return s1, s2
}

func TestFirstStageCoefficients(t *testing.T) {
	s1, _ := firstTwo(t)

	assert.InDelta(t, 1.235516132845047, s1.PR(), 1e-12)
	assert.InDelta(t, 0.5630378505389472, s1.Phi(), 1e-12)
	assert.InDelta(t, 0.28305615416412955, s1.Psi(), 1e-12)
	assert.InDelta(t, 1.0694444444444444, s1.TR(), 1e-12)
	assert.InDelta(t, 20090.0, s1.DeltaHt(), 1e-9)
	assert.InDelta(t, 255.79382453729426, s1.Tau(), 1e-8)
	assert.InDelta(t, 0.16960310175191612, s1.MeanRadius(), 1e-12)
}

func TestSecondStageStations(t *testing.T) {
	_, s2 := firstTwo(t)

	in := s2.Inlet()
	assert.Equal(t, 308.0, in.Tt)
	assert.InDelta(t, 124787.12941734974, in.Pt, 1e-6)
	assert.InDelta(t, 296.2651289988613, in.T(), 1e-9)
	assert.InDelta(t, 108924.14676912918, in.P(), 1e-6)
	assert.InDelta(t, 1.2810371746326374, in.Rho(), 1e-9)
	inner, err := in.InnerRadius()
	require.NoError(t, err)
	outer, err := in.OuterRadius()
	require.NoError(t, err)
	assert.InDelta(t, 0.12076785917674698, inner, 1e-9)
	assert.InDelta(t, 0.21843834432708525, outer, 1e-9)
	assert.InDelta(t, 0.1696031, s2.MeanRadius(), 1e-7)

	mid := s2.Mid()
	assert.Equal(t, 333.0, mid.Tt)
	assert.InDelta(t, 159563.80095257366, mid.Pt, 1e-6)
	assert.InDelta(t, 313.7651289988613, mid.T(), 1e-9)
	assert.InDelta(t, 129567.45265866727, mid.P(), 1e-6)
	assert.InDelta(t, 1.4388295484614293, mid.Rho(), 1e-9)
	inner, err = mid.InnerRadius()
	require.NoError(t, err)
	outer, err = mid.OuterRadius()
	require.NoError(t, err)
	assert.InDelta(t, 0.12612348233633586, inner, 1e-9)
	assert.InDelta(t, 0.21308272116749638, outer, 1e-9)
}

func TestTemperatureRiseIsLossless(t *testing.T) {
	s1, s2 := firstTwo(t)
	for _, s := range []*Stage{s1, s2} {
		assert.Equal(t, s.Inlet().Tt+s.DeltaTt(), s.Mid().Tt)
		assert.Equal(t, s.DeltaTt()*s.p.Previous.Cp(), s.DeltaHt())
	}
}

func TestVelocityTriangleClosure(t *testing.T) {
	s1, _ := firstTwo(t)
	law := s1.Vortex()
	rm := s1.MeanRadius()

	assert.InDelta(t, s1.Inlet().Alpha.Value(), law.Alpha(rm, true), 1e-12)
	assert.InDelta(t, s1.Mid().Alpha.Value(), law.Alpha(rm, false), 1e-12)

	mean := law.Mean()
	assert.Equal(t, 0.7, mean.Reaction)
	assert.Equal(t, s1.U(), mean.Um)
}

func TestRowsAndExport(t *testing.T) {
	s1, s2 := firstTwo(t)

	assert.ErrorIs(t, s1.Resolve(s2), ErrRowsNotBuilt)
	_, err := s1.Export()
	assert.ErrorIs(t, err, ErrRowsNotBuilt)

	require.NoError(t, s1.BuildRows())
	assert.ErrorIs(t, s1.Resolve(s2), ErrRowsNotBuilt)
	require.NoError(t, s2.BuildRows())
	require.NoError(t, s1.Resolve(s2))

	assert.Equal(t, 19, s1.Rotor().Z())
	assert.Equal(t, 20, s1.Stator().Z())
	assert.Equal(t, 22, s2.Rotor().Z())
	assert.Equal(t, 24, s2.Stator().Z())

	ex, err := s1.Export()
	require.NoError(t, err)
	assert.Equal(t, 1, ex.StageNumber)
	assert.InDelta(t, 130.1214258605644, ex.StageHeight, 1e-6)
	assert.InDelta(t, 0.25*56.989941153307966, ex.RowGap, 1e-9)
	assert.InDelta(t, 0.5*56.989941153307966, ex.StageGap, 1e-9)

	// R=0.7 cannot close the last stator without a following rotor.
	assert.ErrorIs(t, s2.Resolve(nil), blade.ErrMissingNextRow)
}

func TestSingleStageClosure(t *testing.T) {
	s, err := New(stageParams(1, 30, 0.5, inlet(t)))
	require.NoError(t, err)
	require.NoError(t, s.BuildRows())
	require.NoError(t, s.Resolve(nil))

	ex, err := s.Export()
	require.NoError(t, err)
	assert.Zero(t, ex.Stator.NumberOfBlades%2)
	assert.False(t, math.IsNaN(ex.StageHeight))
}

func TestRequiresRadius(t *testing.T) {
	prev := flow.Station{Gamma: 1.4, Rs: 287, Tt: 288, Pt: 101000, Vm: 150, Mdot: flow.Some(20), N: 15000}
	_, err := New(stageParams(1, 20, 0.5, prev))
	assert.ErrorIs(t, err, ErrRadiusUnset)
}

func TestCustomVortexLaw(t *testing.T) {
	p := stageParams(1, 20, 0.5, inlet(t))
	var got vortex.Params
	p.NewVortex = func(vp vortex.Params) vortex.Law {
		got = vp
		return vortex.NewFree(vp)
	}
	s, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, s.U(), got.Um)
	assert.Equal(t, s.Psi(), got.Psi)

	p.NewVortex = func(vortex.Params) vortex.Law { return nil }
	_, err = New(p)
	assert.ErrorIs(t, err, ErrNilVortexLaw)
}
