// Package airfoil generates blade section coordinates.
package airfoil

import (
	"math"

	"github.com/san-kum/turbodesigner/internal/units"
)

const (
	// NoseRadiusRatio is the leading/trailing edge radius as a fraction of
	// the max thickness.
	NoseRadiusRatio = 0.15

	// DefaultArcWeight is the share of the chord covered by the arc points.
	DefaultArcWeight = 0.8

	DefaultArcPoints    = 20
	DefaultCirclePoints = 10

	// minCamber replaces a zero camber, where the arc radius is unbounded.
	minCamber = 1e-5
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DCA is a double circular arc section: two arcs joined by nose circles of
// radius R0 at each end, centred on the camber line midpoint and rotated by
// the stagger angle Xi. Lengths share one unit; angles are in radians.
type DCA struct {
	C         float64 // chord
	Theta     float64 // camber angle
	R0        float64 // nose radius
	Tb        float64 // max thickness
	Xi        float64 // stagger angle
	ArcWeight float64
}

func NewDCA(c, theta, tb, xi float64) DCA {
	if theta == 0 {
		theta = minCamber
	}
	return DCA{C: c, Theta: theta, R0: NoseRadiusRatio * tb, Tb: tb, Xi: xi, ArcWeight: DefaultArcWeight}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Stagger rotates points about the origin by xi.
func Stagger(pts []Point, xi float64) []Point {
	sin, cos := math.Sincos(xi)
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
	}
	return out
}

func (a DCA) camberRadius() (rc, yc0 float64) {
	rc = (a.C / 2) / math.Sin(a.Theta/2)
	return rc, -rc * math.Cos(a.Theta/2)
}

func (a DCA) camberY(x float64) float64 {
	rc, yc0 := a.camberRadius()
	return yc0 + math.Sqrt(rc*rc-x*x)*sign(a.Theta)
}

// CamberLine samples n points of the staggered camber line, shifted so its
// midpoint is at the origin.
func (a DCA) CamberLine(n int) []Point {
	mid := a.camberY(0)
	pts := make([]Point, 0, n)
	for _, x := range units.Linspace(-a.C/2, a.C/2, n) {
		pts = append(pts, Point{x, a.camberY(x) - mid})
	}
	return Stagger(pts, a.Xi)
}

// circle is the nose circle at one end, swept over half a turn.
func (a DCA) circle(left bool, n int) []Point {
	xSign := 1.0
	if left {
		xSign = -1
	}
	half := math.Abs(a.Theta) / 2
	xc := xSign * (a.C/2 - a.R0*math.Cos(half))
	yc := a.R0 * math.Sin(half)
	cosOff := math.Max(-1, math.Min(1, (xSign*a.C/2-xc)/a.R0))
	offset := math.Pi - math.Acos(cosOff) + math.Pi/2

	pts := make([]Point, 0, n)
	for _, t := range units.Linspace(0, math.Pi, n) {
		pts = append(pts, Point{
			X: a.R0*math.Cos(t+offset) + xc,
			Y: (a.R0*math.Sin(t+offset) + yc) * sign(a.Theta),
		})
	}
	return pts
}

// arc is the suction (upper) or pressure (lower) surface arc.
func (a DCA) arc(lower bool, n int) []Point {
	s := 1.0
	if lower {
		s = -1
	}
	r0, tb := s*a.R0, s*a.Tb
	mag := math.Abs(a.Theta)

	ym := (a.C / 2) * math.Tan(mag/4)
	d := ym + tb/2 - r0*math.Sin(mag/2)
	e := a.C/2 - r0*math.Cos(mag/2)
	r := (d*d - r0*r0 + e*e) / (2 * (d - r0))
	y0 := ym + tb/2 - r

	xs := units.Linspace(-a.C*a.ArcWeight/2, a.C*a.ArcWeight/2, n)
	pts := make([]Point, len(xs))
	for i, x := range xs {
		pts[i] = Point{x, sign(a.Theta) * (y0 + math.Sqrt(r*r-x*x))}
	}
	// A thin, highly cambered section can put the pressure arc outside the
	// nose circles; flatten it onto the nose radius.
	if lower && len(pts) > 0 && math.Abs(pts[0].Y) > 2*a.Tb {
		for i := range pts {
			pts[i].Y = -sign(a.Theta) * a.R0
		}
	}
	return pts
}

func between(pts []Point, lo, hi float64) []Point {
	var out []Point
	for _, p := range pts {
		if p.X > lo && p.X < hi {
			out = append(out, p)
		}
	}
	return out
}

// Coords is the closed section outline: leading nose, pressure arc,
// trailing nose, suction arc back to the start point. The camber line
// midpoint sits at the origin before staggering.
func (a DCA) Coords(arcPoints, circlePoints int) []Point {
	left := a.circle(true, circlePoints)
	right := a.circle(false, circlePoints)
	upper := between(a.arc(false, arcPoints), left[0].X, right[len(right)-1].X)
	lower := between(a.arc(true, arcPoints), left[len(left)-1].X, right[0].X)

	pts := make([]Point, 0, 2*circlePoints+len(upper)+len(lower)+1)
	pts = append(pts, left...)
	pts = append(pts, lower...)
	pts = append(pts, right...)
	for i := len(upper) - 1; i >= 0; i-- {
		pts = append(pts, upper[i])
	}
	pts = append(pts, left[0])

	mid := a.camberY(0)
	for i := range pts {
		pts[i].Y -= mid
	}
	return Stagger(pts, a.Xi)
}

// Scale multiplies every coordinate by k.
func Scale(pts []Point, k float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{p.X * k, p.Y * k}
	}
	return out
}
