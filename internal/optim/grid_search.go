package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/pdesim/internal/config"
	"github.com/san-kum/pdesim/internal/experiment"
)

// GridSearch evaluates every combination of parameter values on a base
// config and ranks them by one metric, smallest first.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("got %d parameters but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Point is one evaluated combination.
type Point struct {
	Params map[string]float64
	Value  float64
}

// Size is the number of combinations Search will run.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs every combination and returns them all plus the best one.
// NaN metric values never win.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	registry *experiment.Registry,
	metricName string,
) ([]Point, Point, error) {
	points := make([]Point, 0, g.Size())
	best := Point{Value: math.Inf(1)}

	idx := make([]int, len(g.ranges))
	for {
		if err := ctx.Err(); err != nil {
			return points, best, err
		}

		cfg := base.Clone()
		params := make(map[string]float64, len(g.paramNames))
		for d, name := range g.paramNames {
			v := g.ranges[d][idx[d]]
			if err := cfg.Set(name, v); err != nil {
				return nil, Point{}, err
			}
			params[name] = v
		}

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return nil, Point{}, fmt.Errorf("%v: %w", params, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return points, best, err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return nil, Point{}, fmt.Errorf("unknown metric: %s", metricName)
		}
		p := Point{Params: params, Value: val}
		points = append(points, p)
		if val < best.Value || best.Params == nil && !math.IsNaN(val) {
			best = p
		}

		if !next(idx, g.ranges) {
			break
		}
	}
	return points, best, nil
}

// next advances idx like an odometer, last parameter fastest.
func next(idx []int, ranges [][]float64) bool {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < len(ranges[d]) {
			return true
		}
		idx[d] = 0
	}
	return false
}
