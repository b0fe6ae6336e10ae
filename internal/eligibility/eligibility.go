// Package eligibility gates a population of player aggregates before any
// cross-player comparison. The gate is deterministic and side-effect-free:
// given the same population and threshold it always returns the same subset.
package eligibility

import (
	"sort"

	"github.com/pable/go-hoops-metrics/internal/metrics"
	"github.com/pable/go-hoops-metrics/internal/model"
)

// DefaultMinMinutes is the default total-minutes threshold for inclusion.
const DefaultMinMinutes = 100.0

// Validity records, per included player, which metrics are defined for them.
// A player excluded on one metric stays usable for analyses keyed on others.
type Validity map[string]map[string]bool // playerID -> metric name -> defined

// Valid reports whether the metric is defined for the player.
func (v Validity) Valid(playerID, metric string) bool {
	return v[playerID][metric]
}

// Filter returns the aggregates with at least minMinutes total minutes, along
// with a per-metric validity map over metricNames. Output order is sorted by
// player id so downstream runs are reproducible.
func Filter(pop []*model.PlayerSeasonAggregate, minMinutes float64, metricNames []string) ([]*model.PlayerSeasonAggregate, Validity, error) {
	eligible := make([]*model.PlayerSeasonAggregate, 0, len(pop))
	validity := make(Validity)

	for _, a := range pop {
		if a.MinutesTotal < minMinutes {
			continue
		}
		mv, err := metrics.Compute(a, metricNames)
		if err != nil {
			return nil, nil, err
		}
		flags := make(map[string]bool, len(metricNames))
		for _, name := range metricNames {
			flags[name] = mv.Defined(name)
		}
		eligible = append(eligible, a)
		validity[a.PlayerID] = flags
	}

	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].PlayerID < eligible[j].PlayerID
	})
	return eligible, validity, nil
}

// Vectors computes the metric vectors for an already-filtered population,
// in the population's order.
func Vectors(pop []*model.PlayerSeasonAggregate, metricNames []string) ([]model.MetricVector, error) {
	out := make([]model.MetricVector, 0, len(pop))
	for _, a := range pop {
		mv, err := metrics.Compute(a, metricNames)
		if err != nil {
			return nil, err
		}
		out = append(out, mv)
	}
	return out, nil
}
