package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/turbodesigner/internal/config"
	"github.com/san-kum/turbodesigner/internal/metrics"
)

func TestGridSearchMinimizesDiffusion(t *testing.T) {
	g, err := NewGridSearch(
		[]string{"sc_rotor", "sc_stator"},
		[][]float64{{1.2, 0.8}, {1.2, 0.8}},
	)
	require.NoError(t, err)

	res, err := g.Search(context.Background(), config.GetPreset("base"), metrics.NewMaxDiffusion(), false)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"sc_rotor": 0.8, "sc_stator": 0.8}, res.Params)
	assert.Equal(t, 4, res.Evaluated)
	assert.Zero(t, res.Failed)
	assert.Equal(t, 4, g.CacheLen())
}

func TestGridSearchMaximize(t *testing.T) {
	g, err := NewGridSearch([]string{"sc_stator"}, [][]float64{{1.2, 1.0, 0.8}})
	require.NoError(t, err)

	base := config.GetPreset("base")
	res, err := g.Search(context.Background(), base, metrics.NewBladeCount(), true)
	require.NoError(t, err)
	assert.Equal(t, 0.8, res.Params["sc_stator"])
	assert.Greater(t, res.Value, 449.0)

	again, err := g.Search(context.Background(), base, metrics.NewBladeCount(), true)
	require.NoError(t, err)
	assert.Equal(t, res, again)
	assert.Equal(t, 3, g.CacheLen())
}

func TestGridSearchBaseEditedInPlace(t *testing.T) {
	g, err := NewGridSearch([]string{"sc_stator"}, [][]float64{{1.0}})
	require.NoError(t, err)

	base := config.GetPreset("base")
	first, err := g.Search(context.Background(), base, metrics.NewBladeCount(), true)
	require.NoError(t, err)
	assert.Equal(t, 449.0, first.Value)

	require.NoError(t, base.SetParam("sc_rotor", 0.8))
	second, err := g.Search(context.Background(), base, metrics.NewBladeCount(), true)
	require.NoError(t, err)
	assert.Greater(t, second.Value, first.Value)
	assert.Equal(t, 1, g.CacheLen())

	same, err := g.Search(context.Background(), config.GetPreset("base"), metrics.NewBladeCount(), true)
	require.NoError(t, err)
	assert.Equal(t, first.Value, same.Value)
}

func TestGridSearchSkipsInfeasible(t *testing.T) {
	g, err := NewGridSearch([]string{"N"}, [][]float64{{15000, 60000}})
	require.NoError(t, err)

	res, err := g.Search(context.Background(), config.GetPreset("base"), metrics.NewMaxMach(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Evaluated)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 15000.0, res.Params["N"])
}

func TestGridSearchNoFeasiblePoint(t *testing.T) {
	g, err := NewGridSearch([]string{"N"}, [][]float64{{60000}})
	require.NoError(t, err)
	_, err = g.Search(context.Background(), config.GetPreset("base"), metrics.NewMaxMach(), false)
	assert.ErrorContains(t, err, "no feasible design")
}

func TestGridSearchCanceled(t *testing.T) {
	g, err := NewGridSearch([]string{"ht"}, [][]float64{{0.5, 0.6}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Search(ctx, config.GetPreset("base"), metrics.NewMaxDiffusion(), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGridSearchUnknownParam(t *testing.T) {
	g, err := NewGridSearch([]string{"bogus"}, [][]float64{{1}})
	require.NoError(t, err)
	_, err = g.Search(context.Background(), config.GetPreset("base"), metrics.NewMaxDiffusion(), false)
	assert.ErrorContains(t, err, "unknown parameter")

	_, err = NewGridSearch([]string{"a", "b"}, [][]float64{{1}})
	assert.Error(t, err)
}
