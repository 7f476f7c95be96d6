package config

import (
	"sort"

	"github.com/san-kum/turbodesigner/internal/stage"
)

// Presets are reference designs selectable by name.
var Presets = map[string]*Design{
	// Seven-stage 4.15 pressure ratio compressor.
	"base": {
		Gamma: 1.4, Cx: 150, N: 15000, Rs: 287, Mdot: 20, PR: 4.15,
		Pt1: 101000, Tt1: 288, EtaIsen: 0.87848151, NStg: 7, Ht: 0.5, NStream: 3,
		BIn:                 Scalar(0.0),
		BOut:                Scalar(0.0),
		DeltaTtStg:          Rises(20, 25, 25, 25, 25, 25, 19.4787964394765),
		RStg:                List(0.7, 0.7, 0.5, 0.5, 0.5, 0.5, 0.5),
		RGC:                 Scalar(0.25),
		SGC:                 Scalar(0.5),
		AR:                  Scalar(stage.BladeProperty{Rotor: 2, Stator: 2}),
		SC:                  Scalar(stage.BladeProperty{Rotor: 1, Stator: 1}),
		Tbc:                 Scalar(stage.BladeProperty{Rotor: 0.1, Stator: 0.1}),
		Vortex:              DefaultVortex,
		MetalAngleMethod:    DefaultMethod,
		Airfoil:             DefaultAirfoil,
		DeviationIterations: DefaultIterations,
	},
	// Single 0.5 reaction fan stage.
	"single": {
		Gamma: 1.4, Cx: 150, N: 18000, Rs: 287, Mdot: 10, PR: 1.25,
		Pt1: 101325, Tt1: 288.15, EtaIsen: 0.88, NStg: 1, Ht: 0.55, NStream: 5,
		BIn:                 Scalar(0.0),
		BOut:                Scalar(0.0),
		DeltaTtStg:          EqualRise(),
		RStg:                Scalar(0.5),
		RGC:                 Scalar(0.25),
		SGC:                 Scalar(0.5),
		AR:                  Scalar(stage.BladeProperty{Rotor: 2.5, Stator: 2.5}),
		SC:                  Scalar(stage.BladeProperty{Rotor: 0.9, Stator: 0.9}),
		Tbc:                 Scalar(stage.BladeProperty{Rotor: 0.08, Stator: 0.1}),
		Vortex:              DefaultVortex,
		MetalAngleMethod:    DefaultMethod,
		Airfoil:             DefaultAirfoil,
		DeviationIterations: DefaultIterations,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Design {
	d, ok := Presets[name]
	if !ok {
		return nil
	}
	return d.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
