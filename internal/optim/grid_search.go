// Package optim searches design hyperparameters for the best value of a
// row diagnostic.
package optim

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"

	"github.com/san-kum/turbodesigner/internal/config"
	"github.com/san-kum/turbodesigner/internal/metrics"
	"github.com/san-kum/turbodesigner/internal/turbo"
)

// DefaultCacheSize bounds the number of memoized grid points.
const DefaultCacheSize = 4096

// evaluation is a memoized grid point; ok is false for infeasible designs.
type evaluation struct {
	value float64
	ok    bool
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	cache      *lru.Cache[string, evaluation]
	baseSum    uint64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	cache, err := lru.New[string, evaluation](DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &GridSearch{paramNames: params, ranges: ranges, cache: cache}, nil
}

// Result is the best grid point found.
type Result struct {
	Params    map[string]float64
	Value     float64
	Evaluated int
	Failed    int
}

// Search evaluates every grid point on top of base and returns the point
// that minimizes the metric, or maximizes it when maximize is set. Designs
// that fail to assemble are skipped. Points are memoized until Search is
// called with a base whose contents differ, including the same base edited
// in place.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Design,
	metric metrics.Metric,
	maximize bool,
) (Result, error) {
	sum, err := checksum(base)
	if err != nil {
		return Result{}, err
	}
	if sum != g.baseSum {
		g.cache.Purge()
		g.baseSum = sum
	}

	best := Result{Value: math.Inf(1)}
	if maximize {
		best.Value = math.Inf(-1)
	}

	err = g.searchRecursive(ctx, 0, make(map[string]float64), base, metric, maximize, &best)
	if err != nil {
		return Result{}, err
	}
	if best.Params == nil {
		return best, fmt.Errorf("optim: no feasible design in %d points", best.Evaluated)
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Design,
	metric metrics.Metric,
	maximize bool,
	best *Result,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		ev, err := g.evaluate(current, base, metric)
		if err != nil {
			return err
		}
		best.Evaluated++
		if !ev.ok {
			best.Failed++
			return nil
		}
		if (maximize && ev.value > best.Value) || (!maximize && ev.value < best.Value) {
			best.Value = ev.value
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metric, maximize, best); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(params map[string]float64, base *config.Design, metric metrics.Metric) (evaluation, error) {
	key := g.key(metric.Name(), params)
	if ev, ok := g.cache.Get(key); ok {
		return ev, nil
	}

	d := base.Clone()
	for name, v := range params {
		if err := d.SetParam(name, v); err != nil {
			return evaluation{}, err
		}
	}

	var ev evaluation
	m, err := turbo.New(d)
	if err != nil {
		log.WithFields(log.Fields{"params": params, "error": err}).Debug("infeasible design")
	} else {
		value := metrics.Evaluate(m.Rows(), metric)[metric.Name()]
		ev = evaluation{value: value, ok: !math.IsNaN(value)}
		log.WithFields(log.Fields{"params": params, metric.Name(): value}).Debug("design evaluated")
	}
	g.cache.Add(key, ev)
	return ev, nil
}

func (g *GridSearch) key(metric string, params map[string]float64) string {
	var b strings.Builder
	b.WriteString(metric)
	for _, name := range g.paramNames {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(params[name], 'g', -1, 64))
	}
	return b.String()
}

// checksum fingerprints the design document as encoded on disk.
func checksum(d *config.Design) (uint64, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("optim: fingerprint base design: %w", err)
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64(), nil
}

// CacheLen reports how many grid points are memoized.
func (g *GridSearch) CacheLen() int { return g.cache.Len() }
