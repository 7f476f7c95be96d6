package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/turbodesigner/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	configFile, preset, overrides = "", "base", nil
	t.Cleanup(func() { configFile, preset, overrides = "", "base", nil })
}

func TestParseGrid(t *testing.T) {
	name, values, err := parseGrid("sc_rotor=0.8, 1.0,1.2")
	require.NoError(t, err)
	assert.Equal(t, "sc_rotor", name)
	assert.Equal(t, []float64{0.8, 1.0, 1.2}, values)

	for _, bad := range []string{"sc_rotor", "=1,2", "N=1,x"} {
		_, _, err := parseGrid(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadDesign(t *testing.T) {
	resetFlags(t)

	d, name, err := loadDesign()
	require.NoError(t, err)
	assert.Equal(t, "base", name)
	assert.Equal(t, 7, d.NStg)

	overrides = []string{"N=14000", "ht=0.55"}
	d, _, err = loadDesign()
	require.NoError(t, err)
	assert.Equal(t, 14000.0, d.N)
	assert.Equal(t, 0.55, d.Ht)

	overrides = []string{"N"}
	_, _, err = loadDesign()
	assert.ErrorContains(t, err, "want name=value")

	overrides = []string{"bogus=1"}
	_, _, err = loadDesign()
	assert.ErrorContains(t, err, "unknown parameter")

	overrides, preset = nil, "missing"
	_, _, err = loadDesign()
	assert.ErrorContains(t, err, "unknown preset")
}

func TestLoadDesignFromFile(t *testing.T) {
	resetFlags(t)

	path := filepath.Join(t.TempDir(), "single.yaml")
	require.NoError(t, config.Save(path, config.GetPreset("single")))

	configFile = path
	d, name, err := loadDesign()
	require.NoError(t, err)
	assert.Equal(t, path, name)
	assert.Equal(t, 1, d.NStg)
}

func TestRunDesignSavesRun(t *testing.T) {
	resetFlags(t)
	dataDir = t.TempDir()
	saveRun = true
	t.Cleanup(func() { saveRun = false })

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, runDesign(cmd, nil))
	assert.Contains(t, buf.String(), "run id: ")
	assert.Contains(t, buf.String(), "blade_count")

	buf.Reset()
	require.NoError(t, listRuns(cmd, nil))
	assert.Contains(t, buf.String(), "base")
}

func TestRunDeviation(t *testing.T) {
	beta1Deg, beta2Deg, sigma, tbc, family, iterations = 40, 10, 1, 0.1, "DCA", 20

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, runDeviation(cmd, nil))
	assert.Contains(t, buf.String(), "stagger")

	family = "nope"
	assert.Error(t, runDeviation(cmd, nil))
}

func TestRunSections(t *testing.T) {
	resetFlags(t)
	secStage, secStator, outFile = 2, true, filepath.Join(t.TempDir(), "s2.svg")
	t.Cleanup(func() { secStage, secStator, outFile = 1, false, "" })

	require.NoError(t, runSections(&cobra.Command{}, nil))
	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stage 2 stator sections")

	secStage = 99
	assert.ErrorContains(t, runSections(&cobra.Command{}, nil), "out of range")
}
