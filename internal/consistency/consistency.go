// Package consistency measures how stable a player's per-game production is
// and whether it is trending. All computations run over the per-game value
// series of one metric, in game order, with undefined games dropped.
//
// Standard deviation uses the sample formula (n-1 denominator) throughout,
// matching how the variability numbers are read: as estimates from a sample
// of games, not a closed population.
package consistency

import (
	"math"
	"sort"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Defaults for the variability report.
const (
	DefaultCVThreshold = 50.0 // percent
	DefaultMinGames    = 5
)

// Options tunes a consistency computation.
type Options struct {
	CVThreshold float64 // high-variance cutoff on CV, percent
	MinGames    int     // below this the report is undefined
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{CVThreshold: DefaultCVThreshold, MinGames: DefaultMinGames}
}

// Report is the variability summary for one player and metric.
type Report struct {
	Games int // defined games in the series
	Mean  model.Value
	Std   model.Value
	CV    model.Value // std/|mean|*100, undefined when mean is 0
	IQR   model.Value

	// HighVariance is set only when the series has at least MinGames defined
	// games and CV exceeds the threshold. With fewer games the whole report
	// is undefined rather than falsely confident.
	HighVariance bool
	Defined      bool
}

// Compute summarizes the variability of a per-game series.
func Compute(series []model.Value, opts Options) Report {
	vals := definedValues(series)
	rep := Report{Games: len(vals)}
	if len(vals) < opts.MinGames {
		return rep
	}
	rep.Defined = true

	mean := meanOf(vals)
	std := sampleStd(vals, mean)
	rep.Mean = model.Def(mean)
	rep.Std = model.Def(std)
	if mean != 0 {
		cv := std / math.Abs(mean) * 100
		rep.CV = model.Def(cv)
		rep.HighVariance = cv > opts.CVThreshold
	}
	rep.IQR = model.Def(iqr(vals))
	return rep
}

func definedValues(series []model.Value) []float64 {
	var out []float64
	for _, v := range series {
		if x, ok := v.Get(); ok {
			out = append(out, x)
		}
	}
	return out
}

func meanOf(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleStd is the Bessel-corrected standard deviation.
func sampleStd(vals []float64, mean float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

// iqr computes Q3-Q1 with linear interpolation between order statistics.
func iqr(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return quantile(sorted, 0.75) - quantile(sorted, 0.25)
}

// quantile returns the q-quantile of a sorted slice using the standard
// linear-interpolation method (R-7).
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
