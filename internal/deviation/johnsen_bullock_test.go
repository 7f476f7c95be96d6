package deviation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deg(rad float64) float64 { return rad * 180 / math.Pi }

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func TestJohnsenBullockReference(t *testing.T) {
	jb := JohnsenBullock{Beta1: rad(70), Beta2: rad(20), Sigma: 2.0, Tbc: 0.1, Family: NACA65}
	ma, err := jb.MetalAngles(100)
	require.NoError(t, err)

	assert.InDelta(t, 73.9657, deg(ma.Kappa1), 1e-4)
	assert.InDelta(t, -0.4597, deg(ma.Kappa2), 1e-4)
	assert.InDelta(t, -3.96574501755, deg(ma.Incidence), 1e-8)
	assert.InDelta(t, 20.4597316019, deg(ma.Deviation), 1e-8)
	assert.InDelta(t, 74.4254766195, deg(ma.Theta()), 1e-8)
	assert.InDelta(t, 36.7530067078, deg(ma.Xi()), 1e-8)
}

func TestZeroCamberSingleIteration(t *testing.T) {
	tests := []struct {
		name      string
		sigma     float64
		incidence float64
		deviation float64
	}{
		{"sigma 2", 2.0, 10.197456375940648, 4.729553677160637},
		{"sigma 1", 1.0, 5.089696012612591, 2.5691014163692745},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jb := JohnsenBullock{Beta1: rad(70), Beta2: rad(70), Sigma: tt.sigma, Tbc: 0.1, Family: NACA65}
			ma, err := jb.MetalAngles(1)
			require.NoError(t, err)
			assert.InDelta(t, tt.incidence, deg(ma.Incidence), 1e-9)
			assert.InDelta(t, tt.deviation, deg(ma.Deviation), 1e-9)
		})
	}
}

func TestFamilies(t *testing.T) {
	tests := []struct {
		family Family
		kappa1 float64
		kappa2 float64
	}{
		{DCA, 49.94042621734421, 0.13580432695748726},
		{C4, 48.302770551351905, 0.226419174762271},
	}
	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			jb := JohnsenBullock{Beta1: rad(45), Beta2: rad(15), Sigma: 1.0, Tbc: 0.1, Family: tt.family}
			ma, err := jb.MetalAngles(DefaultIterations)
			require.NoError(t, err)
			assert.InDelta(t, tt.kappa1, deg(ma.Kappa1), 1e-8)
			assert.InDelta(t, tt.kappa2, deg(ma.Kappa2), 1e-8)
		})
	}
}

// Flow angles enter the fits as magnitudes; incidence follows sign(beta1)
// and deviation follows sign(beta2).
func TestSignConvention(t *testing.T) {
	t.Run("mirrored", func(t *testing.T) {
		jb := JohnsenBullock{Beta1: rad(-70), Beta2: rad(-20), Sigma: 2.0, Tbc: 0.1, Family: NACA65}
		ma, err := jb.MetalAngles(100)
		require.NoError(t, err)
		assert.InDelta(t, -73.96574501755009, deg(ma.Kappa1), 1e-8)
		assert.InDelta(t, 0.4597316019466475, deg(ma.Kappa2), 1e-8)
		assert.InDelta(t, -74.42547661949673, deg(ma.Theta()), 1e-8)
	})

	t.Run("mixed signs", func(t *testing.T) {
		jb := JohnsenBullock{Beta1: rad(60), Beta2: rad(-10), Sigma: 1.5, Tbc: 0.08, Family: DCA}
		ma, err := jb.MetalAngles(DefaultIterations)
		require.NoError(t, err)
		assert.InDelta(t, -9.256540885684013, deg(ma.Incidence), 1e-8)
		assert.InDelta(t, -20.282318606568463, deg(ma.Deviation), 1e-8)
		assert.InDelta(t, 69.25654088568402, deg(ma.Kappa1), 1e-8)
		assert.InDelta(t, 10.282318606568463, deg(ma.Kappa2), 1e-8)
	})

	t.Run("zero outlet angle", func(t *testing.T) {
		jb := JohnsenBullock{Beta1: rad(45), Beta2: 0, Sigma: 1.0, Tbc: 0.1, Family: C4}
		ma, err := jb.MetalAngles(DefaultIterations)
		require.NoError(t, err)
		assert.Equal(t, 0.0, ma.Deviation)
		assert.Equal(t, 0.0, ma.Kappa2)
		assert.InDelta(t, 52.20593236776728, deg(ma.Kappa1), 1e-8)
	})
}

func TestUnknownFamily(t *testing.T) {
	jb := JohnsenBullock{Beta1: rad(45), Beta2: rad(15), Sigma: 1, Tbc: 0.1, Family: Family(9)}
	_, err := jb.MetalAngles(DefaultIterations)
	assert.ErrorIs(t, err, ErrUnknownFamily)
}

func TestMethodSolve(t *testing.T) {
	jb := JohnsenBullock{Beta1: rad(45), Beta2: rad(15), Sigma: 1.0, Tbc: 0.1, Family: DCA}

	ma, err := MethodEqualsFlowAngles.Solve(jb, DefaultIterations)
	require.NoError(t, err)
	assert.Equal(t, NewMetalAngles(rad(45), rad(15), 0, 0), ma)

	ma, err = MethodJohnsenBullock.Solve(jb, DefaultIterations)
	require.NoError(t, err)
	assert.InDelta(t, 25.03811527215085, deg(ma.Xi()), 1e-8)

	_, err = Method(7).Solve(jb, DefaultIterations)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestParse(t *testing.T) {
	f, err := ParseFamily("naca65")
	require.NoError(t, err)
	assert.Equal(t, NACA65, f)

	_, err = ParseFamily("NACA0012")
	assert.ErrorIs(t, err, ErrUnknownFamily)

	m, err := ParseMethod("equals_flow_angles")
	require.NoError(t, err)
	assert.Equal(t, MethodEqualsFlowAngles, m)

	var fam Family
	require.NoError(t, fam.UnmarshalText([]byte("C4")))
	assert.Equal(t, C4, fam)
	text, err := DCA.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "DCA", string(text))
}

func TestShapeFactors(t *testing.T) {
	want := map[Family]float64{NACA65: 1.0, DCA: 0.7, C4: 1.1}
	for _, f := range Families() {
		corr, err := f.Correlation()
		require.NoError(t, err)
		assert.Equal(t, want[f], corr.ShapeFactor(), f.String())
	}
}

func BenchmarkJohnsenBullock(b *testing.B) {
	jb := JohnsenBullock{Beta1: rad(70), Beta2: rad(20), Sigma: 2.0, Tbc: 0.1, Family: NACA65}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = jb.MetalAngles(DefaultIterations)
	}
}
