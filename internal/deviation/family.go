package deviation

import (
	"fmt"
	"math"
	"strings"
)

type Family int

const (
	NACA65 Family = iota
	DCA
	C4
)

var familyNames = map[Family]string{
	NACA65: "NACA65",
	DCA:    "DCA",
	C4:     "C4",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily accepts a family name in any case.
func ParseFamily(s string) (Family, error) {
	for f, name := range familyNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

func Families() []Family { return []Family{NACA65, DCA, C4} }

func (f Family) MarshalText() ([]byte, error) {
	if _, ok := familyNames[f]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Family) UnmarshalText(text []byte) error {
	parsed, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Correlation holds the family-specific parts of the Johnsen-Bullock fits.
// Angles are in degrees and taken as magnitudes.
type Correlation interface {
	ShapeFactor() float64
	SlopeFactor(beta1, sigma float64) float64
	ZeroCamberIncidence(beta1, sigma float64) float64
	ZeroCamberDeviation(beta1, sigma float64) float64
}

// Correlation returns the empirical constants for f.
func (f Family) Correlation() (Correlation, error) {
	switch f {
	case NACA65:
		return naca65{}, nil
	case DCA:
		return circularArc{ksh: 0.7}, nil
	case C4:
		return circularArc{ksh: 1.1}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
}

type naca65 struct{}

func (naca65) ShapeFactor() float64 { return 1.0 }

func (naca65) SlopeFactor(beta1, sigma float64) float64 {
	x := beta1 / 100
	return slope(0.333*x*x-0.0333*x+0.17, x, sigma)
}

func (naca65) ZeroCamberIncidence(beta1, sigma float64) float64 {
	return zeroCamberIncidence(beta1, sigma)
}

func (naca65) ZeroCamberDeviation(beta1, sigma float64) float64 {
	return zeroCamberDeviation(beta1, sigma)
}

// circularArc covers the DCA and C4 families, which share the cubic slope fit.
type circularArc struct {
	ksh float64
}

func (c circularArc) ShapeFactor() float64 { return c.ksh }

func (circularArc) SlopeFactor(beta1, sigma float64) float64 {
	x := beta1 / 100
	return slope(0.316*x*x*x-0.132*x*x+0.074*x+0.249, x, sigma)
}

func (circularArc) ZeroCamberIncidence(beta1, sigma float64) float64 {
	return zeroCamberIncidence(beta1, sigma)
}

func (circularArc) ZeroCamberDeviation(beta1, sigma float64) float64 {
	return zeroCamberDeviation(beta1, sigma)
}

// slope scales the unit-solidity slope m1 to solidity sigma.
func slope(m1, x, sigma float64) float64 {
	b := -0.85*x*x*x - 0.17*x + 0.9625
	return math.Pow(sigma, -b) * m1
}

// zeroCamberIncidence is i*_0,10: incidence of a zero-camber blade at 10% thickness.
func zeroCamberIncidence(beta1, sigma float64) float64 {
	p := sigma*sigma*sigma/160 + 0.914
	return math.Pow(beta1, p)/(5+46*math.Exp(-2.3*sigma)) -
		0.1*sigma*sigma*sigma*math.Exp((beta1-70)/4)
}

// zeroCamberDeviation is delta*_0,10.
func zeroCamberDeviation(beta1, sigma float64) float64 {
	return 0.01*beta1*sigma +
		(0.74*math.Pow(sigma, 1.9)+3*sigma)*math.Pow(beta1/90, 1.09*sigma+1.67)
}
