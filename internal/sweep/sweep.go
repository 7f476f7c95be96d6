// Package sweep assembles a family of designs that differ in one knob and
// evaluates them concurrently.
package sweep

import (
	"context"
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/turbodesigner/internal/config"
	"github.com/san-kum/turbodesigner/internal/metrics"
	"github.com/san-kum/turbodesigner/internal/registry"
	"github.com/san-kum/turbodesigner/internal/turbo"
	"github.com/san-kum/turbodesigner/internal/units"
)

// Point is one evaluated design. Err is set when the design could not be
// assembled; Machine and Metrics are nil in that case.
type Point struct {
	Index   int
	Value   float64
	Machine *turbo.Machine
	Metrics map[string]float64
	Err     error
}

type Sweep struct {
	param    string
	values   []float64
	metrics  []string
	workers  int
	registry *registry.Registry
}

type Option func(*Sweep)

// WithWorkers caps the number of designs assembled at once.
func WithWorkers(n int) Option {
	return func(s *Sweep) { s.workers = n }
}

// WithMetrics selects the diagnostics evaluated per point by registry name.
func WithMetrics(names ...string) Option {
	return func(s *Sweep) { s.metrics = names }
}

func WithRegistry(r *registry.Registry) Option {
	return func(s *Sweep) { s.registry = r }
}

func New(param string, values []float64, opts ...Option) *Sweep {
	s := &Sweep{
		param:    param,
		values:   values,
		workers:  runtime.GOMAXPROCS(0),
		registry: registry.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.metrics) == 0 {
		s.metrics = s.registry.ListMetrics()
	}
	return s
}

// Range sweeps n evenly spaced values of param from lo to hi inclusive.
func Range(param string, lo, hi float64, n int, opts ...Option) *Sweep {
	return New(param, units.Linspace(lo, hi, n), opts...)
}

// Run evaluates every value on top of base. Infeasible designs are recorded
// on their point and do not stop the sweep; cancellation of ctx does.
func (s *Sweep) Run(ctx context.Context, base *config.Design) ([]Point, error) {
	if err := base.Clone().SetParam(s.param, 0); err != nil {
		return nil, err
	}
	for _, name := range s.metrics {
		if _, err := s.registry.GetMetric(name); err != nil {
			return nil, err
		}
	}

	points := make([]Point, len(s.values))
	g, gctx := errgroup.WithContext(ctx)
	if s.workers > 0 {
		g.SetLimit(s.workers)
	}

	for i, v := range s.values {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			points[i] = s.evaluate(i, v, base)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *Sweep) evaluate(i int, v float64, base *config.Design) Point {
	p := Point{Index: i, Value: v}

	d := base.Clone()
	_ = d.SetParam(s.param, v)

	m, err := turbo.New(d, turbo.WithRegistry(s.registry))
	if err != nil {
		log.WithFields(log.Fields{s.param: v, "error": err}).Warn("sweep point infeasible")
		p.Err = fmt.Errorf("%s=%g: %w", s.param, v, err)
		return p
	}

	p.Machine = m
	ms := make([]metrics.Metric, 0, len(s.metrics))
	for _, name := range s.metrics {
		metric, _ := s.registry.GetMetric(name)
		ms = append(ms, metric)
	}
	p.Metrics = metrics.Evaluate(m.Rows(), ms...)
	log.WithFields(log.Fields{s.param: v, "metrics": p.Metrics}).Debug("sweep point evaluated")
	return p
}

// Feasible filters out the points that failed to assemble.
func Feasible(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Series extracts one metric across the feasible points, in sweep order.
func Series(points []Point, metric string) (xs, ys []float64) {
	for _, p := range Feasible(points) {
		xs = append(xs, p.Value)
		ys = append(ys, p.Metrics[metric])
	}
	return xs, ys
}
