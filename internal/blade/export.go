package blade

import (
	"github.com/san-kum/turbodesigner/internal/airfoil"
	"github.com/san-kum/turbodesigner/internal/deviation"
	"github.com/san-kum/turbodesigner/internal/units"
)

// Export is the manufacturing view of a row. Lengths are in mm and angles
// in degrees.
type Export struct {
	StageNumber    int               `json:"stage_number"`
	DiskHeight     float64           `json:"disk_height"`
	HubRadius      float64           `json:"hub_radius"`
	TipRadius      float64           `json:"tip_radius"`
	Chord          float64           `json:"chord"`
	Radii          []float64         `json:"radii"`
	Stagger        []float64         `json:"stagger"`
	Camber         []float64         `json:"camber"`
	Kappa1         []float64         `json:"kappa1"`
	Kappa2         []float64         `json:"kappa2"`
	Tbc            float64           `json:"tbc"`
	Airfoil        deviation.Family  `json:"airfoil"`
	NumberOfBlades int               `json:"number_of_blades"`
	TwistAngle     float64           `json:"twist_angle"`
	IsRotating     bool              `json:"is_rotating"`
	Sections       [][]airfoil.Point `json:"sections"`
}

func (r *Row) Export() (Export, error) {
	if !r.resolved {
		return Export{}, ErrNotResolved
	}
	sections, err := r.Sections()
	if err != nil {
		return Export{}, err
	}
	n := len(r.metal)
	stagger := make([]float64, n)
	camber := make([]float64, n)
	kappa1 := make([]float64, n)
	kappa2 := make([]float64, n)
	for i, ma := range r.metal {
		stagger[i] = units.Degrees(ma.Xi())
		camber[i] = units.Degrees(ma.Theta())
		kappa1[i] = units.Degrees(ma.Kappa1)
		kappa2[i] = units.Degrees(ma.Kappa2)
	}
	return Export{
		StageNumber:    r.p.StageNumber,
		DiskHeight:     r.DiskHeight() * units.MM,
		HubRadius:      r.hub * units.MM,
		TipRadius:      r.tip * units.MM,
		Chord:          r.Chord() * units.MM,
		Radii:          units.Scale(r.radii, units.MM),
		Stagger:        stagger,
		Camber:         camber,
		Kappa1:         kappa1,
		Kappa2:         kappa2,
		Tbc:            r.p.Tbc,
		Airfoil:        r.p.Family,
		NumberOfBlades: r.z,
		TwistAngle:     units.Degrees(r.TwistAngle()),
		IsRotating:     r.p.Rotating,
		Sections:       sections,
	}, nil
}
