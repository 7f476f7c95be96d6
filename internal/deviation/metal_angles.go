package deviation

// MetalAngles are the blade surface angles of one stream (rad).
type MetalAngles struct {
	Kappa1    float64 `json:"kappa1"`
	Kappa2    float64 `json:"kappa2"`
	Incidence float64 `json:"incidence"`
	Deviation float64 `json:"deviation"`
}

func NewMetalAngles(kappa1, kappa2, incidence, deviation float64) MetalAngles {
	return MetalAngles{Kappa1: kappa1, Kappa2: kappa2, Incidence: incidence, Deviation: deviation}
}

// Theta is the camber angle.
func (m MetalAngles) Theta() float64 { return m.Kappa1 - m.Kappa2 }

// Xi is the stagger angle.
func (m MetalAngles) Xi() float64 { return (m.Kappa1 + m.Kappa2) / 2 }
