package deviation

import "math"

// DefaultIterations is the fixed-point iteration count used by blade rows.
const DefaultIterations = 20

// JohnsenBullock is the incidence/deviation correlation for one stream.
// Beta1 and Beta2 are flow angles in radians.
type JohnsenBullock struct {
	Beta1  float64
	Beta2  float64
	Sigma  float64 // solidity
	Tbc    float64 // max thickness to chord
	Family Family
}

// MetalAngles runs a fixed number of fixed-point iterations. There is no
// convergence test.
func (jb JohnsenBullock) MetalAngles(iterations int) (MetalAngles, error) {
	corr, err := jb.Family.Correlation()
	if err != nil {
		return MetalAngles{}, err
	}

	beta1 := math.Abs(jb.Beta1 * 180 / math.Pi)
	beta2 := math.Abs(jb.Beta2 * 180 / math.Pi)
	sigma, tbc := jb.Sigma, jb.Tbc

	n := 0.025*sigma - math.Pow(beta1/90, 1.2*sigma+1)/(0.43*sigma+1.5) - 0.06
	kti := math.Pow(10*tbc, 0.28/(math.Pow(tbc, 0.3)+0.1))
	ktd := 37.5*tbc*tbc + 6.25*tbc
	ksh := corr.ShapeFactor()
	m := corr.SlopeFactor(beta1, sigma)
	i010 := corr.ZeroCamberIncidence(beta1, sigma)
	d010 := corr.ZeroCamberDeviation(beta1, sigma)

	var i, delta float64
	for k := 0; k < iterations; k++ {
		theta := math.Abs((beta1 - i) - (beta2 - delta))
		i = theta*n + kti*i010*ksh
		delta = ksh*ktd*d010 + theta*m
	}

	iRad := i * math.Pi / 180 * sign(jb.Beta1)
	deltaRad := delta * math.Pi / 180 * sign(jb.Beta2)
	return NewMetalAngles(jb.Beta1-iRad, jb.Beta2-deltaRad, iRad, deltaRad), nil
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
