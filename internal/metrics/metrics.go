// Package metrics is the library of derived efficiency metrics. Every metric
// is a named pure function over a GameRecord or PlayerSeasonAggregate that
// returns a model.Value; a zero denominator always yields undefined, never
// NaN or a fault.
//
// Season-level values use true aggregation (sum numerator and denominator
// components across games, then divide). Per-game ratio series exist only for
// the consistency and trend computations, which need the distribution.
package metrics

import (
	"fmt"
	"sort"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Core metric names. The registry accepts these plus the extended set below.
const (
	EFG = "efg_pct" // (FGM + 0.5*3PM) / FGA
	TS  = "ts_pct"  // PTS / (2*(FGA + 0.44*FTA))
	USG = "usg_pct" // (FGA + 0.44*FTA + TOV) / (minutes * team possessions)
	AST = "ast_pct" // AST / (FGA + 0.44*FTA + AST + TOV)
	TOV = "tov_pct" // TOV / (FGA + 0.44*FTA + TOV)
	PER = "per"     // simplified: (PTS+REB+AST+STL+BLK-TOV-missFG-missFT) / minutes
)

// Extended registry names.
const (
	FGPct       = "fg_pct"
	FG3Pct      = "fg3_pct"
	FTPct       = "ft_pct"
	ThreeRate   = "three_rate" // 3PA / FGA
	PtsPerMin   = "pts_per_min"
	AstPerMin   = "ast_per_min"
	RebPerMin   = "reb_per_min"
	StlPerMin   = "stl_per_min"
	BlkPerMin   = "blk_per_min"
	AstToTov    = "ast_to_tov"
	PMPerMinAdj = "pm_per_min_adj"
	PtsPerGame  = "pts_per_game"
	AstPerGame  = "ast_per_game"
	RebPerGame  = "reb_per_game"
)

// ftaWeight is the standard free-throw possession weight.
const ftaWeight = 0.44

// Metric is one registered metric: a per-game form and a season form. The
// season form applies true aggregation over the player's totals.
type Metric struct {
	Name        string
	Description string
	Game        func(r *model.GameRecord) model.Value
	Season      func(a *model.PlayerSeasonAggregate) model.Value
}

var registry = map[string]Metric{}

func register(m Metric) {
	registry[m.Name] = m
}

// Lookup returns the metric registered under name.
func Lookup(name string) (Metric, bool) {
	m, ok := registry[name]
	return m, ok
}

// Names returns all registered metric names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CoreNames is the default comparison set used by similarity and clustering.
func CoreNames() []string {
	return []string{EFG, TS, AST, TOV, PER, PtsPerGame, AstPerGame, RebPerGame}
}

// Compute evaluates the requested metrics over a season aggregate and returns
// the resulting vector. Unknown metric names are an error; individual metrics
// with unmet preconditions come back undefined, not as errors.
func Compute(a *model.PlayerSeasonAggregate, names []string) (model.MetricVector, error) {
	mv := model.MetricVector{PlayerID: a.PlayerID, Values: make(map[string]model.Value, len(names))}
	for _, name := range names {
		m, ok := registry[name]
		if !ok {
			return model.MetricVector{}, fmt.Errorf("unknown metric %q", name)
		}
		mv.Values[name] = m.Season(a)
	}
	return mv, nil
}

// ComputeGame evaluates the requested metrics over a single game record.
func ComputeGame(r *model.GameRecord, names []string) (model.MetricVector, error) {
	mv := model.MetricVector{PlayerID: r.PlayerID, Values: make(map[string]model.Value, len(names))}
	for _, name := range names {
		m, ok := registry[name]
		if !ok {
			return model.MetricVector{}, fmt.Errorf("unknown metric %q", name)
		}
		mv.Values[name] = m.Game(r)
	}
	return mv, nil
}

// GameSeries evaluates one metric per game over an ordered log, preserving
// order. Undefined games stay in the slice as undefined entries so callers
// can line values up with game indices.
func GameSeries(log []model.GameRecord, name string) ([]model.Value, error) {
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", name)
	}
	out := make([]model.Value, len(log))
	for i := range log {
		out[i] = m.Game(&log[i])
	}
	return out, nil
}

func init() {
	register(Metric{
		Name:        EFG,
		Description: "effective field goal %",
		Game: func(r *model.GameRecord) model.Value {
			return model.Ratio(float64(r.FieldGoalsMade)+0.5*float64(r.ThreePointersMade),
				float64(r.FieldGoalsAttempted))
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			return model.Ratio(float64(a.FieldGoalsMade)+0.5*float64(a.ThreePointersMade),
				float64(a.FieldGoalsAttempted))
		},
	})
	register(Metric{
		Name:        TS,
		Description: "true shooting %",
		Game: func(r *model.GameRecord) model.Value {
			return model.Ratio(float64(r.Points),
				2*(float64(r.FieldGoalsAttempted)+ftaWeight*float64(r.FreeThrowsAttempted)))
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			return model.Ratio(float64(a.Points),
				2*(float64(a.FieldGoalsAttempted)+ftaWeight*float64(a.FreeThrowsAttempted)))
		},
	})
	register(Metric{
		Name:        USG,
		Description: "usage rate (needs team possessions)",
		Game: func(r *model.GameRecord) model.Value {
			poss, ok := r.TeamPossessions.Get()
			if !ok {
				return model.Undef()
			}
			return model.Ratio(
				float64(r.FieldGoalsAttempted)+ftaWeight*float64(r.FreeThrowsAttempted)+float64(r.Turnovers),
				r.MinutesPlayed*poss)
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			// Possessions must be present for the whole log; a partial sum
			// would silently understate the denominator.
			if a.PossessionGames == 0 || a.PossessionGames != a.Games {
				return model.Undef()
			}
			// True aggregate: the denominator is the sum of per-game
			// minutes*possessions, not a product of season sums.
			return model.Ratio(
				float64(a.FieldGoalsAttempted)+ftaWeight*float64(a.FreeThrowsAttempted)+float64(a.Turnovers),
				a.UsageDenomTotal)
		},
	})
	register(Metric{
		Name:        AST,
		Description: "assist rate",
		Game: func(r *model.GameRecord) model.Value {
			den := float64(r.FieldGoalsAttempted) + ftaWeight*float64(r.FreeThrowsAttempted) +
				float64(r.Assists) + float64(r.Turnovers)
			return model.Ratio(float64(r.Assists), den)
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			den := float64(a.FieldGoalsAttempted) + ftaWeight*float64(a.FreeThrowsAttempted) +
				float64(a.Assists) + float64(a.Turnovers)
			return model.Ratio(float64(a.Assists), den)
		},
	})
	register(Metric{
		Name:        TOV,
		Description: "turnover rate",
		Game: func(r *model.GameRecord) model.Value {
			den := float64(r.FieldGoalsAttempted) + ftaWeight*float64(r.FreeThrowsAttempted) + float64(r.Turnovers)
			return model.Ratio(float64(r.Turnovers), den)
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			den := float64(a.FieldGoalsAttempted) + ftaWeight*float64(a.FreeThrowsAttempted) + float64(a.Turnovers)
			return model.Ratio(float64(a.Turnovers), den)
		},
	})
	register(Metric{
		Name:        PER,
		Description: "simplified production per minute",
		Game: func(r *model.GameRecord) model.Value {
			num := float64(r.Points + r.TotalRebounds + r.Assists + r.Steals + r.Blocks -
				r.Turnovers - r.MissedFieldGoals() - r.MissedFreeThrows())
			return model.Ratio(num, r.MinutesPlayed)
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			num := float64(a.Points + a.TotalRebounds + a.Assists + a.Steals + a.Blocks -
				a.Turnovers - a.MissedFieldGoals() - a.MissedFreeThrows())
			return model.Ratio(num, a.MinutesTotal)
		},
	})

	// Plain shooting splits.
	register(ratioMetric(FGPct, "field goal %",
		func(r *model.GameRecord) (float64, float64) {
			return float64(r.FieldGoalsMade), float64(r.FieldGoalsAttempted)
		},
		func(a *model.PlayerSeasonAggregate) (float64, float64) {
			return float64(a.FieldGoalsMade), float64(a.FieldGoalsAttempted)
		}))
	register(ratioMetric(FG3Pct, "three point %",
		func(r *model.GameRecord) (float64, float64) {
			return float64(r.ThreePointersMade), float64(r.ThreePointersAttempted)
		},
		func(a *model.PlayerSeasonAggregate) (float64, float64) {
			return float64(a.ThreePointersMade), float64(a.ThreePointersAttempted)
		}))
	register(ratioMetric(FTPct, "free throw %",
		func(r *model.GameRecord) (float64, float64) {
			return float64(r.FreeThrowsMade), float64(r.FreeThrowsAttempted)
		},
		func(a *model.PlayerSeasonAggregate) (float64, float64) {
			return float64(a.FreeThrowsMade), float64(a.FreeThrowsAttempted)
		}))
	register(ratioMetric(ThreeRate, "share of attempts from three",
		func(r *model.GameRecord) (float64, float64) {
			return float64(r.ThreePointersAttempted), float64(r.FieldGoalsAttempted)
		},
		func(a *model.PlayerSeasonAggregate) (float64, float64) {
			return float64(a.ThreePointersAttempted), float64(a.FieldGoalsAttempted)
		}))

	// Per-minute production.
	register(perMinMetric(PtsPerMin, "points per minute",
		func(r *model.GameRecord) float64 { return float64(r.Points) },
		func(a *model.PlayerSeasonAggregate) float64 { return float64(a.Points) }))
	register(perMinMetric(AstPerMin, "assists per minute",
		func(r *model.GameRecord) float64 { return float64(r.Assists) },
		func(a *model.PlayerSeasonAggregate) float64 { return float64(a.Assists) }))
	register(perMinMetric(RebPerMin, "rebounds per minute",
		func(r *model.GameRecord) float64 { return float64(r.TotalRebounds) },
		func(a *model.PlayerSeasonAggregate) float64 { return float64(a.TotalRebounds) }))
	register(perMinMetric(StlPerMin, "steals per minute",
		func(r *model.GameRecord) float64 { return float64(r.Steals) },
		func(a *model.PlayerSeasonAggregate) float64 { return float64(a.Steals) }))
	register(perMinMetric(BlkPerMin, "blocks per minute",
		func(r *model.GameRecord) float64 { return float64(r.Blocks) },
		func(a *model.PlayerSeasonAggregate) float64 { return float64(a.Blocks) }))

	register(ratioMetric(AstToTov, "assist to turnover ratio",
		func(r *model.GameRecord) (float64, float64) {
			return float64(r.Assists), float64(r.Turnovers)
		},
		func(a *model.PlayerSeasonAggregate) (float64, float64) {
			return float64(a.Assists), float64(a.Turnovers)
		}))

	register(Metric{
		Name:        PMPerMinAdj,
		Description: "pace adjusted plus/minus per minute",
		Game: func(r *model.GameRecord) model.Value {
			return r.PlusMinusPerMinAdj
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			// A per-game tracked stat; the season value is the mean of the
			// games where the scorer recorded it.
			var sum float64
			var n int
			for i := range a.Log {
				if v, ok := a.Log[i].PlusMinusPerMinAdj.Get(); ok {
					sum += v
					n++
				}
			}
			return model.Ratio(sum, float64(n))
		},
	})

	// Per-game counting averages, used as archetype axes.
	register(perGameMetric(PtsPerGame, "points per game",
		func(r *model.GameRecord) float64 { return float64(r.Points) },
		func(a *model.PlayerSeasonAggregate) float64 { return float64(a.Points) }))
	register(perGameMetric(AstPerGame, "assists per game",
		func(r *model.GameRecord) float64 { return float64(r.Assists) },
		func(a *model.PlayerSeasonAggregate) float64 { return float64(a.Assists) }))
	register(perGameMetric(RebPerGame, "rebounds per game",
		func(r *model.GameRecord) float64 { return float64(r.TotalRebounds) },
		func(a *model.PlayerSeasonAggregate) float64 { return float64(a.TotalRebounds) }))
}

func ratioMetric(name, desc string,
	game func(*model.GameRecord) (num, den float64),
	season func(*model.PlayerSeasonAggregate) (num, den float64)) Metric {
	return Metric{
		Name:        name,
		Description: desc,
		Game: func(r *model.GameRecord) model.Value {
			num, den := game(r)
			return model.Ratio(num, den)
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			num, den := season(a)
			return model.Ratio(num, den)
		},
	}
}

func perMinMetric(name, desc string,
	game func(*model.GameRecord) float64,
	season func(*model.PlayerSeasonAggregate) float64) Metric {
	return Metric{
		Name:        name,
		Description: desc,
		Game: func(r *model.GameRecord) model.Value {
			return model.Ratio(game(r), r.MinutesPlayed)
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			return model.Ratio(season(a), a.MinutesTotal)
		},
	}
}

func perGameMetric(name, desc string,
	game func(*model.GameRecord) float64,
	season func(*model.PlayerSeasonAggregate) float64) Metric {
	return Metric{
		Name:        name,
		Description: desc,
		Game: func(r *model.GameRecord) model.Value {
			// A single game is its own per-game value.
			return model.Def(game(r))
		},
		Season: func(a *model.PlayerSeasonAggregate) model.Value {
			return model.Ratio(season(a), float64(a.Games))
		},
	}
}
