// Package normalize rescales a population of metric vectors onto comparable
// scales. Every run is tagged with a fresh run id; vectors from different
// runs must never be compared, and downstream packages reject mismatches.
package normalize

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Method selects the normalization transform.
type Method string

const (
	ZScore     Method = "zscore"
	MinMax     Method = "minmax"
	Percentile Method = "percentile"
)

// ParseMethod validates a method name from config or a CLI flag.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case ZScore, MinMax, Percentile:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: unknown normalization method %q", ErrBadConfig, s)
	}
}

// MetricStats holds the population statistics one metric was scaled by.
// Count is the number of defined inputs for the metric.
type MetricStats struct {
	Count int
	Mean  float64
	Std   float64 // population formula; 0 marks a zero-variance metric
	Min   float64
	Max   float64
}

// PopulationStats describes one normalization run.
type PopulationStats struct {
	RunID     uuid.UUID
	Method    Method
	Players   int
	PerMetric map[string]MetricStats
}

// Vector is a metric vector after normalization, tagged with the run that
// produced it. Two Vectors are comparable only when their RunIDs match.
type Vector struct {
	PlayerID string
	RunID    uuid.UUID
	Method   Method
	Values   map[string]model.Value
}

// Get returns the named dimension, undefined when absent.
func (v Vector) Get(name string) model.Value { return v.Values[name] }

// Options tunes a normalization run.
type Options struct {
	// ImputeZero substitutes 0 for undefined inputs before scaling. It is an
	// explicit opt-in; the default propagates undefined through to the output.
	ImputeZero bool
}

// Run normalizes a population of metric vectors with the given method and
// returns one Vector per input plus the population statistics used. Undefined
// inputs propagate as undefined unless opts.ImputeZero is set.
//
// Policy for degenerate populations: a metric whose population standard
// deviation is zero normalizes to 0 for every player under zscore, as does a
// metric with max == min under minmax.
func Run(pop []model.MetricVector, method Method, opts Options) ([]Vector, PopulationStats, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, PopulationStats{}, err
	}
	if len(pop) == 0 {
		return nil, PopulationStats{}, fmt.Errorf("%w: empty population", ErrInsufficientData)
	}

	// Dimension set is the union of metric names across the population,
	// sorted for deterministic iteration.
	nameSet := make(map[string]struct{})
	for _, mv := range pop {
		for name := range mv.Values {
			nameSet[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	input := func(mv model.MetricVector, name string) model.Value {
		v := mv.Get(name)
		if !v.Defined() && opts.ImputeZero {
			return model.Def(0)
		}
		return v
	}

	stats := PopulationStats{
		RunID:     uuid.New(),
		Method:    method,
		Players:   len(pop),
		PerMetric: make(map[string]MetricStats, len(names)),
	}

	for _, name := range names {
		var vals []float64
		for _, mv := range pop {
			if x, ok := input(mv, name).Get(); ok {
				vals = append(vals, x)
			}
		}
		stats.PerMetric[name] = summarize(vals)
	}

	out := make([]Vector, 0, len(pop))
	for _, mv := range pop {
		nv := Vector{
			PlayerID: mv.PlayerID,
			RunID:    stats.RunID,
			Method:   method,
			Values:   make(map[string]model.Value, len(names)),
		}
		for _, name := range names {
			x, ok := input(mv, name).Get()
			if !ok {
				nv.Values[name] = model.Undef()
				continue
			}
			ms := stats.PerMetric[name]
			switch method {
			case ZScore:
				if ms.Std == 0 {
					nv.Values[name] = model.Def(0)
				} else {
					nv.Values[name] = model.Def((x - ms.Mean) / ms.Std)
				}
			case MinMax:
				if ms.Max == ms.Min {
					nv.Values[name] = model.Def(0)
				} else {
					nv.Values[name] = model.Def((x - ms.Min) / (ms.Max - ms.Min))
				}
			case Percentile:
				nv.Values[name] = model.Def(midRank(pop, name, x, opts))
			}
		}
		out = append(out, nv)
	}
	return out, stats, nil
}

// summarize computes population mean/std and min/max over defined values.
func summarize(vals []float64) MetricStats {
	ms := MetricStats{Count: len(vals)}
	if len(vals) == 0 {
		return ms
	}
	ms.Min, ms.Max = vals[0], vals[0]
	var sum float64
	for _, v := range vals {
		sum += v
		if v < ms.Min {
			ms.Min = v
		}
		if v > ms.Max {
			ms.Max = v
		}
	}
	ms.Mean = sum / float64(len(vals))
	var ss float64
	for _, v := range vals {
		d := v - ms.Mean
		ss += d * d
	}
	ms.Std = math.Sqrt(ss / float64(len(vals)))
	return ms
}

// midRank returns the rank-based position of x in [0,1] among the defined
// population values for the metric, averaging tied ranks.
func midRank(pop []model.MetricVector, name string, x float64, opts Options) float64 {
	below, equal, total := 0, 0, 0
	for _, mv := range pop {
		v := mv.Get(name)
		if !v.Defined() && opts.ImputeZero {
			v = model.Def(0)
		}
		y, ok := v.Get()
		if !ok {
			continue
		}
		total++
		switch {
		case y < x:
			below++
		case y == x:
			equal++
		}
	}
	if total == 0 {
		return 0
	}
	// Mid-rank: mean of the strict and weak rank positions, ties averaged.
	return (float64(below) + float64(equal)/2) / float64(total)
}
