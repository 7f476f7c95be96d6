package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/turbodesigner/internal/stage"
)

const (
	DefaultGamma      = 1.4
	DefaultRs         = 287.0
	DefaultPt1        = 101325.0
	DefaultTt1        = 288.15
	DefaultNStream    = 3
	DefaultVortex     = "free"
	DefaultMethod     = "johnsen_bullock"
	DefaultAirfoil    = "DCA"
	DefaultIterations = 20
)

// Design is the construction record of a turbomachine: global cycle targets
// plus per-stage hyperparameters.
type Design struct {
	Gamma   float64 `yaml:"gamma" json:"gamma" validate:"gt=1"`
	Cx      float64 `yaml:"cx" json:"cx" validate:"gt=0"`
	N       float64 `yaml:"N" json:"N" validate:"gt=0"`
	Rs      float64 `yaml:"Rs" json:"Rs" validate:"gt=0"`
	Mdot    float64 `yaml:"mdot" json:"mdot" validate:"gt=0"`
	PR      float64 `yaml:"PR" json:"PR" validate:"gt=0"`
	Pt1     float64 `yaml:"Pt1" json:"Pt1" validate:"gt=0"`
	Tt1     float64 `yaml:"Tt1" json:"Tt1" validate:"gt=0"`
	EtaIsen float64 `yaml:"eta_isen" json:"eta_isen" validate:"gt=0,lte=1"`
	NStg    int     `yaml:"N_stg" json:"N_stg" validate:"gte=1"`
	Ht      float64 `yaml:"ht" json:"ht" validate:"gt=0,lt=1"`
	NStream int     `yaml:"N_stream" json:"N_stream" validate:"gte=1,odd"`

	BIn        PerStage[float64]             `yaml:"B_in" json:"B_in"`
	BOut       PerStage[float64]             `yaml:"B_out" json:"B_out"`
	DeltaTtStg TemperatureRise               `yaml:"Delta_Tt_stg" json:"Delta_Tt_stg"`
	RStg       PerStage[float64]             `yaml:"R_stg" json:"R_stg"`
	RGC        PerStage[float64]             `yaml:"rgc" json:"rgc"`
	SGC        PerStage[float64]             `yaml:"sgc" json:"sgc"`
	AR         PerStage[stage.BladeProperty] `yaml:"AR" json:"AR"`
	SC         PerStage[stage.BladeProperty] `yaml:"sc" json:"sc"`
	Tbc        PerStage[stage.BladeProperty] `yaml:"tbc" json:"tbc"`

	Vortex              string `yaml:"vortex" json:"vortex" validate:"required"`
	MetalAngleMethod    string `yaml:"metal_angle_method" json:"metal_angle_method" validate:"required"`
	Airfoil             string `yaml:"airfoil" json:"airfoil" validate:"required"`
	DeviationIterations int    `yaml:"deviation_iterations" json:"deviation_iterations" validate:"gte=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("odd", validateOdd); err != nil {
		panic(err)
	}
	validate.RegisterStructValidation(validatePerStage, Design{})
}

func validateOdd(fl validator.FieldLevel) bool {
	return fl.Field().Int()%2 != 0
}

// validatePerStage rejects missing per-stage fields, which would otherwise
// decode to an empty value.
func validatePerStage(sl validator.StructLevel) {
	var d Design
	switch v := sl.Current().Interface().(type) {
	case Design:
		d = v
	case *Design:
		d = *v
	default:
		return
	}
	fields := []struct {
		name  string
		field string
		value any
		n     int
	}{
		{"B_in", "BIn", d.BIn, d.BIn.Len()},
		{"B_out", "BOut", d.BOut, d.BOut.Len()},
		{"R_stg", "RStg", d.RStg, d.RStg.Len()},
		{"rgc", "RGC", d.RGC, d.RGC.Len()},
		{"sgc", "SGC", d.SGC, d.SGC.Len()},
		{"AR", "AR", d.AR, d.AR.Len()},
		{"sc", "SC", d.SC, d.SC.Len()},
		{"tbc", "Tbc", d.Tbc, d.Tbc.Len()},
	}
	for _, f := range fields {
		if f.n == 0 {
			sl.ReportError(f.value, f.name, f.field, "required", "")
		}
	}
	if !d.DeltaTtStg.Equal && len(d.DeltaTtStg.Values) == 0 {
		sl.ReportError(d.DeltaTtStg, "Delta_Tt_stg", "DeltaTtStg", "required", "")
	}
}

// Validate checks field ranges. Cross-field rules that depend on the stage
// count are checked when the machine is assembled.
func (d *Design) Validate() error {
	return validate.Struct(d)
}

// DefaultDesign returns the defaults applied before a design document is decoded.
func DefaultDesign() *Design {
	return &Design{
		Gamma:               DefaultGamma,
		Rs:                  DefaultRs,
		Pt1:                 DefaultPt1,
		Tt1:                 DefaultTt1,
		NStream:             DefaultNStream,
		BIn:                 Scalar(0.0),
		BOut:                Scalar(0.0),
		RGC:                 Scalar(0.25),
		SGC:                 Scalar(0.5),
		Vortex:              DefaultVortex,
		MetalAngleMethod:    DefaultMethod,
		Airfoil:             DefaultAirfoil,
		DeviationIterations: DefaultIterations,
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// decode rejects keys that do not name a Design field, so a misspelt key
// cannot silently leave a default in place.
func decode(data []byte, asJSON bool, d *Design) error {
	if asJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(d)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(d); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Load reads a design document, JSON for .json files and YAML otherwise,
// on top of DefaultDesign and validates it.
func Load(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := DefaultDesign()
	if err := decode(data, isJSON(path), d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return d, nil
}

// Save writes d as YAML, or JSON when path ends in .json.
func Save(path string, d *Design) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(d, "", "  ")
	} else {
		data, err = yaml.Marshal(d)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy of d.
func (d *Design) Clone() *Design {
	c := *d
	c.BIn = cloneStage(d.BIn)
	c.BOut = cloneStage(d.BOut)
	c.RStg = cloneStage(d.RStg)
	c.RGC = cloneStage(d.RGC)
	c.SGC = cloneStage(d.SGC)
	c.AR = cloneStage(d.AR)
	c.SC = cloneStage(d.SC)
	c.Tbc = cloneStage(d.Tbc)
	c.DeltaTtStg.Values = append([]float64(nil), d.DeltaTtStg.Values...)
	return &c
}

func cloneStage[T any](p PerStage[T]) PerStage[T] {
	return PerStage[T]{values: append([]T(nil), p.values...), list: p.list}
}

// Params returns the scalar knobs a search can vary.
func (d *Design) Params() map[string]float64 {
	return map[string]float64{
		"cx":         d.Cx,
		"N":          d.N,
		"ht":         d.Ht,
		"AR_rotor":   d.AR.First().Rotor,
		"AR_stator":  d.AR.First().Stator,
		"sc_rotor":   d.SC.First().Rotor,
		"sc_stator":  d.SC.First().Stator,
		"tbc_rotor":  d.Tbc.First().Rotor,
		"tbc_stator": d.Tbc.First().Stator,
	}
}

// ParamNames lists the knobs accepted by SetParam.
func ParamNames() []string {
	names := make([]string, 0, len(knobs))
	for name := range knobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var knobs = map[string]func(d *Design, v float64){
	"cx": func(d *Design, v float64) { d.Cx = v },
	"N":  func(d *Design, v float64) { d.N = v },
	"ht": func(d *Design, v float64) { d.Ht = v },
	"AR_rotor": func(d *Design, v float64) {
		d.AR = mapBlade(d.AR, func(bp *stage.BladeProperty) { bp.Rotor = v })
	},
	"AR_stator": func(d *Design, v float64) {
		d.AR = mapBlade(d.AR, func(bp *stage.BladeProperty) { bp.Stator = v })
	},
	"sc_rotor": func(d *Design, v float64) {
		d.SC = mapBlade(d.SC, func(bp *stage.BladeProperty) { bp.Rotor = v })
	},
	"sc_stator": func(d *Design, v float64) {
		d.SC = mapBlade(d.SC, func(bp *stage.BladeProperty) { bp.Stator = v })
	},
	"tbc_rotor": func(d *Design, v float64) {
		d.Tbc = mapBlade(d.Tbc, func(bp *stage.BladeProperty) { bp.Rotor = v })
	},
	"tbc_stator": func(d *Design, v float64) {
		d.Tbc = mapBlade(d.Tbc, func(bp *stage.BladeProperty) { bp.Stator = v })
	},
}

// SetParam sets a knob on every stage.
func (d *Design) SetParam(name string, value float64) error {
	set, ok := knobs[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	set(d, value)
	return nil
}

func mapBlade(p PerStage[stage.BladeProperty], fn func(*stage.BladeProperty)) PerStage[stage.BladeProperty] {
	out := cloneStage(p)
	for i := range out.values {
		fn(&out.values[i])
	}
	return out
}
