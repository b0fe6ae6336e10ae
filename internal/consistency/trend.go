package consistency

import (
	"math"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Defaults for trend detection.
const (
	DefaultWindow        = 5
	DefaultTrendMinGames = 10
)

// Label classifies the direction of a player's trend.
type Label string

const (
	Improving Label = "improving"
	Declining Label = "declining"
	Stable    Label = "stable"
	Undefined Label = "undefined" // too few games
)

// TrendOptions tunes trend detection.
type TrendOptions struct {
	Window   int // rolling window, games
	MinGames int // below this the trend is undefined
}

// DefaultTrendOptions returns the standard windows.
func DefaultTrendOptions() TrendOptions {
	return TrendOptions{Window: DefaultWindow, MinGames: DefaultTrendMinGames}
}

// Trend describes a player's direction over an ordered game series.
type Trend struct {
	Games      int
	SeasonAvg  model.Value // over all defined games
	RollingAvg model.Value // over the last Window defined games
	Delta      model.Value // rolling - season
	DeltaPct   model.Value // delta relative to season average, percent

	Slope   model.Value // regression slope of value against game index
	SlopeLo model.Value // 95% interval bounds on the slope
	SlopeHi model.Value
	Label   Label
}

// ComputeTrend compares recent form against the season baseline and fits a
// least-squares line through (game index, value). The label is driven by the
// slope's 95% interval: improving or declining only when the interval
// excludes zero, stable otherwise. Series must be in chronological order;
// undefined games are dropped but indices keep their original spacing.
func ComputeTrend(series []model.Value, opts TrendOptions) Trend {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}

	var xs, ys []float64
	for i, v := range series {
		if y, ok := v.Get(); ok {
			xs = append(xs, float64(i))
			ys = append(ys, y)
		}
	}

	tr := Trend{Games: len(ys), Label: Undefined}
	if len(ys) < opts.MinGames {
		return tr
	}

	season := meanOf(ys)
	recent := ys
	if len(ys) > opts.Window {
		recent = ys[len(ys)-opts.Window:]
	}
	rolling := meanOf(recent)
	tr.SeasonAvg = model.Def(season)
	tr.RollingAvg = model.Def(rolling)
	tr.Delta = model.Def(rolling - season)
	if season != 0 {
		tr.DeltaPct = model.Def((rolling - season) / math.Abs(season) * 100)
	}

	slope, lo, hi, ok := slopeWithInterval(xs, ys)
	if !ok {
		tr.Label = Stable
		return tr
	}
	tr.Slope = model.Def(slope)
	tr.SlopeLo = model.Def(lo)
	tr.SlopeHi = model.Def(hi)
	switch {
	case lo > 0:
		tr.Label = Improving
	case hi < 0:
		tr.Label = Declining
	default:
		tr.Label = Stable
	}
	return tr
}

// slopeWithInterval fits y = a + b*x by least squares and returns b with its
// normal-approximation 95% interval (z = 1.96). ok is false when the x spread
// or residual structure leaves the slope undetermined.
func slopeWithInterval(xs, ys []float64) (slope, lo, hi float64, ok bool) {
	n := float64(len(xs))
	if n < 3 {
		return 0, 0, 0, false
	}
	meanX := meanOf(xs)
	meanY := meanOf(ys)

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return 0, 0, 0, false
	}
	slope = sxy / sxx
	intercept := meanY - slope*meanX

	var sse float64
	for i := range xs {
		r := ys[i] - (intercept + slope*xs[i])
		sse += r * r
	}
	mse := sse / (n - 2)
	se := math.Sqrt(mse / sxx)

	const z = 1.96
	return slope, slope - z*se, slope + z*se, true
}
