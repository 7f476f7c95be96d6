package metrics

import (
	"math"

	"github.com/san-kum/turbodesigner/internal/blade"
)

type MaxDiffusion struct {
	name    string
	max     float64
	samples int
}

func NewMaxDiffusion() *MaxDiffusion {
	return &MaxDiffusion{name: "max_df"}
}

func (m *MaxDiffusion) Name() string { return m.name }

func (m *MaxDiffusion) Observe(row *blade.Row) {
	for _, df := range row.DF() {
		if m.samples == 0 || df > m.max {
			m.max = df
		}
		m.samples++
	}
}

func (m *MaxDiffusion) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.max
}

func (m *MaxDiffusion) Reset() {
	m.max = 0
	m.samples = 0
}

type MinDeHaller struct {
	name    string
	min     float64
	samples int
}

func NewMinDeHaller() *MinDeHaller {
	return &MinDeHaller{name: "min_de_haller"}
}

func (m *MinDeHaller) Name() string { return m.name }

func (m *MinDeHaller) Observe(row *blade.Row) {
	for _, dh := range row.DeHaller() {
		if m.samples == 0 || dh < m.min {
			m.min = dh
		}
		m.samples++
	}
}

func (m *MinDeHaller) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.min
}

func (m *MinDeHaller) Reset() {
	m.min = 0
	m.samples = 0
}

type MaxMach struct {
	name string
	max  float64
}

func NewMaxMach() *MaxMach {
	return &MaxMach{name: "max_mach"}
}

func (m *MaxMach) Name() string { return m.name }

func (m *MaxMach) Observe(row *blade.Row) {
	for _, mach := range InletMach(row) {
		m.max = math.Max(m.max, mach)
	}
}

func (m *MaxMach) Value() float64 { return m.max }

func (m *MaxMach) Reset() { m.max = 0 }

// BladeCount is the total number of blades over all observed rows.
type BladeCount struct {
	name  string
	total int
}

func NewBladeCount() *BladeCount {
	return &BladeCount{name: "blade_count"}
}

func (b *BladeCount) Name() string { return b.name }

func (b *BladeCount) Observe(row *blade.Row) { b.total += row.Z() }

func (b *BladeCount) Value() float64 { return float64(b.total) }

func (b *BladeCount) Reset() { b.total = 0 }
