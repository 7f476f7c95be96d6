package blade

import (
	"github.com/san-kum/turbodesigner/internal/airfoil"
	"github.com/san-kum/turbodesigner/internal/units"
)

// Sections returns one closed DCA outline per radial station, in mm, with
// the camber midpoint at the origin.
func (r *Row) Sections() ([][]airfoil.Point, error) {
	if !r.resolved {
		return nil, ErrNotResolved
	}
	out := make([][]airfoil.Point, len(r.metal))
	for i, ma := range r.metal {
		a := airfoil.NewDCA(r.Chord(), ma.Theta(), r.Tb(), ma.Xi())
		pts := a.Coords(airfoil.DefaultArcPoints, airfoil.DefaultCirclePoints)
		out[i] = airfoil.Scale(pts, units.MM)
	}
	return out, nil
}
