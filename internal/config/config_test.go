package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/turbodesigner/internal/stage"
)

func TestDefaultDesign(t *testing.T) {
	d := DefaultDesign()

	assert.Equal(t, 1.4, d.Gamma)
	assert.Equal(t, DefaultVortex, d.Vortex)
	assert.Equal(t, DefaultIterations, d.DeviationIterations)
	assert.Equal(t, 0.25, d.RGC.At(3))
}

func TestGetPreset(t *testing.T) {
	d := GetPreset("base")
	require.NotNil(t, d)
	require.NoError(t, d.Validate())

	assert.Equal(t, 7, d.NStg)
	assert.Equal(t, 0.5, d.RStg.Last())
	assert.Equal(t, 0.7, d.RStg.At(1))
	assert.Equal(t, 2.0, d.AR.At(6).Rotor)

	d.RStg = Scalar(0.9)
	assert.Equal(t, 0.7, Presets["base"].RStg.At(0), "preset must not be mutated through a copy")
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"base", "single"}, ListPresets())
	for _, name := range ListPresets() {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}

const yamlDesign = `
cx: 150
N: 15000
mdot: 20
PR: 4.15
Pt1: 101000
Tt1: 288
eta_isen: 0.87848151
N_stg: 2
ht: 0.5
N_stream: 5
B_in: 0.01
B_out: [0.0, 0.02]
Delta_Tt_stg: equal
R_stg: [0.7, 0.5]
AR: {rotor: 2, stator: 2.2}
sc:
  - {rotor: 1, stator: 1}
  - {rotor: 0.9, stator: 0.95}
tbc: {rotor: 0.1, stator: 0.1}
`

const jsonDesign = `{
  "cx": 150, "N": 15000, "mdot": 20, "PR": 4.15, "Pt1": 101000, "Tt1": 288,
  "eta_isen": 0.87848151, "N_stg": 2, "ht": 0.5, "N_stream": 5,
  "B_in": 0.01, "B_out": [0.0, 0.02],
  "Delta_Tt_stg": [70, 94.4787964394765],
  "R_stg": [0.7, 0.5],
  "AR": {"rotor": 2, "stator": 2.2},
  "sc": [{"rotor": 1, "stator": 1}, {"rotor": 0.9, "stator": 0.95}],
  "tbc": {"rotor": 0.1, "stator": 0.1},
  "metal_angle_method": "equals_flow_angles"
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	d, err := Load(writeFile(t, "design.yaml", yamlDesign))
	require.NoError(t, err)

	assert.Equal(t, 1.4, d.Gamma, "default applied")
	assert.Equal(t, 287.0, d.Rs, "default applied")
	assert.True(t, d.DeltaTtStg.Equal)
	assert.False(t, d.BIn.IsList())
	assert.Equal(t, 0.01, d.BIn.At(1))
	assert.True(t, d.BOut.IsList())
	assert.Equal(t, 0.02, d.BOut.Last())
	assert.Equal(t, stage.BladeProperty{Rotor: 2, Stator: 2.2}, d.AR.At(1))
	assert.Equal(t, 0.95, d.SC.At(1).Stator)
	assert.Equal(t, DefaultMethod, d.MetalAngleMethod)
}

func TestLoadJSON(t *testing.T) {
	d, err := Load(writeFile(t, "design.json", jsonDesign))
	require.NoError(t, err)

	assert.False(t, d.DeltaTtStg.Equal)
	assert.Equal(t, []float64{70, 94.4787964394765}, d.DeltaTtStg.Values)
	assert.Equal(t, 2, d.SC.Len())
	assert.Equal(t, "equals_flow_angles", d.MetalAngleMethod)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"design.yaml", "design.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := GetPreset("base")
			require.NoError(t, Save(path, want))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Design)
		field  string
	}{
		{"even streams", func(d *Design) { d.NStream = 4 }, "NStream"},
		{"hub to tip", func(d *Design) { d.Ht = 1.2 }, "Ht"},
		{"efficiency", func(d *Design) { d.EtaIsen = 1.5 }, "EtaIsen"},
		{"pressure ratio", func(d *Design) { d.PR = 0 }, "PR"},
		{"missing reaction", func(d *Design) { d.RStg = PerStage[float64]{} }, "RStg"},
		{"missing temperature rise", func(d *Design) { d.DeltaTtStg = TemperatureRise{} }, "DeltaTtStg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := GetPreset("base")
			tt.modify(d)
			err := d.Validate()
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.StructField())
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "Delta_Tt_stg: unequal\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "temperature rise")

	invalid := writeFile(t, "invalid.yaml", yamlDesign+"N_stream: 4\n")
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestLoadUnknownKeys(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"yaml", "design.yaml", yamlDesign + "P01: 101000\n"},
		{"json", "design.json", strings.Replace(jsonDesign, `"Pt1"`, `"P01"`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			assert.ErrorContains(t, err, "P01")
		})
	}
}

func TestExpansionDesignValidates(t *testing.T) {
	d := GetPreset("single")
	d.PR = 0.8
	assert.NoError(t, d.Validate())
}

func TestSetParam(t *testing.T) {
	d := GetPreset("base")
	d.SC = List(
		stage.BladeProperty{Rotor: 1, Stator: 1},
		stage.BladeProperty{Rotor: 1.1, Stator: 1.1},
	)

	require.NoError(t, d.SetParam("sc_stator", 0.8))
	assert.Equal(t, 0.8, d.SC.At(0).Stator)
	assert.Equal(t, 0.8, d.SC.At(1).Stator)
	assert.Equal(t, 1.1, d.SC.At(1).Rotor)

	require.NoError(t, d.SetParam("ht", 0.6))
	assert.Equal(t, 0.6, d.Params()["ht"])

	assert.Error(t, d.SetParam("nonexistent", 1))
	assert.Contains(t, ParamNames(), "AR_rotor")
}
