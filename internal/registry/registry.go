// Package registry maps design-document names to radial equilibrium laws,
// metal angle methods, airfoil families and row diagnostics.
package registry

import (
	"fmt"
	"sort"

	"github.com/san-kum/turbodesigner/internal/deviation"
	"github.com/san-kum/turbodesigner/internal/metrics"
	"github.com/san-kum/turbodesigner/internal/vortex"
)

// VortexFactory builds a radial equilibrium law for a stage design point.
type VortexFactory func(vortex.Params) vortex.Law

type Registry struct {
	vortices map[string]VortexFactory
	methods  map[string]deviation.Method
	families map[string]deviation.Family
	metrics  map[string]func() metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		vortices: make(map[string]VortexFactory),
		methods:  make(map[string]deviation.Method),
		families: make(map[string]deviation.Family),
		metrics:  make(map[string]func() metrics.Metric),
	}

	r.vortices["free"] = func(p vortex.Params) vortex.Law { return vortex.NewFree(p) }

	for _, m := range deviation.Methods() {
		r.methods[m.String()] = m
	}
	for _, f := range deviation.Families() {
		r.families[f.String()] = f
	}

	r.metrics["max_df"] = func() metrics.Metric { return metrics.NewMaxDiffusion() }
	r.metrics["min_de_haller"] = func() metrics.Metric { return metrics.NewMinDeHaller() }
	r.metrics["max_mach"] = func() metrics.Metric { return metrics.NewMaxMach() }
	r.metrics["blade_count"] = func() metrics.Metric { return metrics.NewBladeCount() }

	return r
}

// RegisterVortex adds or replaces a radial equilibrium law.
func (r *Registry) RegisterVortex(name string, fn VortexFactory) {
	r.vortices[name] = fn
}

func (r *Registry) GetVortex(name string) (VortexFactory, error) {
	fn, ok := r.vortices[name]
	if !ok {
		return nil, fmt.Errorf("unknown vortex law: %s", name)
	}
	return fn, nil
}

func (r *Registry) GetMethod(name string) (deviation.Method, error) {
	m, ok := r.methods[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", deviation.ErrUnknownMethod, name)
	}
	return m, nil
}

func (r *Registry) GetFamily(name string) (deviation.Family, error) {
	f, ok := r.families[name]
	if !ok {
		return deviation.ParseFamily(name)
	}
	return f, nil
}

func (r *Registry) GetMetric(name string) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListVortices() []string { return sortedKeys(r.vortices) }

func (r *Registry) ListMethods() []string { return sortedKeys(r.methods) }

func (r *Registry) ListFamilies() []string { return sortedKeys(r.families) }

func (r *Registry) ListMetrics() []string { return sortedKeys(r.metrics) }

// DefaultMetrics returns fresh instances of every row diagnostic.
func (r *Registry) DefaultMetrics() []metrics.Metric {
	out := make([]metrics.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name]())
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
