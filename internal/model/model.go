package model

import "fmt"

// GameRecord holds one player's box-score line for one game.
// Counting stats are plain ints; fields that may be genuinely absent in the
// source data (as opposed to zero) are Values.
type GameRecord struct {
	PlayerID   string
	TeamID     string
	OpponentID string
	GameDate   string // YYYY-MM-DD, used only for chronological ordering
	GameIndex  int    // position in the player's ordered game log
	IsHome     bool

	MinutesPlayed float64

	Points        int
	Assists       int
	OffRebounds   int
	DefRebounds   int
	TotalRebounds int
	Steals        int
	Blocks        int
	Turnovers     int
	PersonalFouls int
	FoulsDrawn    int

	FieldGoalsMade         int // 2PT + 3PT combined
	FieldGoalsAttempted    int
	ThreePointersMade      int
	ThreePointersAttempted int
	FreeThrowsMade         int
	FreeThrowsAttempted    int

	// PointDiff is the final team point differential ("gap") for the game.
	PointDiff Value
	// PlusMinus is the raw on-court plus/minus, when the scorer tracked it.
	PlusMinus Value
	// PlusMinusPerMin is plus/minus per minute played. Values with
	// |pm/min| > 10 are scorekeeping glitches and arrive already unset.
	PlusMinusPerMin Value
	// PlusMinusPerMinAdj is PlusMinusPerMin minus the team's gap per minute,
	// isolating the player's contribution from the blowout factor.
	PlusMinusPerMinAdj Value
	// TeamPossessions is the team's estimated possessions for the game, when
	// the source data carries them. Required only by USG%.
	TeamPossessions Value
}

// Validate checks the structural invariants of a record.
func (r *GameRecord) Validate() error {
	if r.PlayerID == "" {
		return fmt.Errorf("game record missing player id")
	}
	if r.MinutesPlayed < 0 {
		return fmt.Errorf("player %s: negative minutes %.2f", r.PlayerID, r.MinutesPlayed)
	}
	type shot struct {
		name     string
		made, at int
	}
	for _, s := range []shot{
		{"FG", r.FieldGoalsMade, r.FieldGoalsAttempted},
		{"3PT", r.ThreePointersMade, r.ThreePointersAttempted},
		{"FT", r.FreeThrowsMade, r.FreeThrowsAttempted},
	} {
		if s.made > s.at {
			return fmt.Errorf("player %s: %s made %d > attempted %d", r.PlayerID, s.name, s.made, s.at)
		}
		if s.made < 0 || s.at < 0 {
			return fmt.Errorf("player %s: negative %s counts", r.PlayerID, s.name)
		}
	}
	if r.OffRebounds > 0 || r.DefRebounds > 0 {
		if r.TotalRebounds != r.OffRebounds+r.DefRebounds {
			return fmt.Errorf("player %s: total rebounds %d != off %d + def %d",
				r.PlayerID, r.TotalRebounds, r.OffRebounds, r.DefRebounds)
		}
	}
	return nil
}

// MissedFieldGoals is FGA - FGM.
func (r *GameRecord) MissedFieldGoals() int { return r.FieldGoalsAttempted - r.FieldGoalsMade }

// MissedFreeThrows is FTA - FTM.
func (r *GameRecord) MissedFreeThrows() int { return r.FreeThrowsAttempted - r.FreeThrowsMade }

// PlayerSeasonAggregate holds a player's totals over an ordered game log.
// It is rebuilt on demand from GameRecords and never stored.
type PlayerSeasonAggregate struct {
	PlayerID string
	TeamID   string

	Games        int
	MinutesTotal float64

	Points        int
	Assists       int
	TotalRebounds int
	OffRebounds   int
	DefRebounds   int
	Steals        int
	Blocks        int
	Turnovers     int
	PersonalFouls int
	FoulsDrawn    int

	FieldGoalsMade         int
	FieldGoalsAttempted    int
	ThreePointersMade      int
	ThreePointersAttempted int
	FreeThrowsMade         int
	FreeThrowsAttempted    int

	// TeamPossessionsTotal sums only games where the source data supplied
	// possessions; PossessionGames counts them. USG% stays undefined unless
	// every played game carried possessions.
	TeamPossessionsTotal float64
	PossessionGames      int

	// UsageDenomTotal is the sum of per-game minutes*possessions, the season
	// USG% denominator. Summing the per-game components keeps the season
	// value a true aggregate instead of scaling with game count.
	UsageDenomTotal float64

	// Log is the ordered source game log (read-only view) backing the
	// consistency and trend computations.
	Log []GameRecord
}

// NewSeasonAggregate folds an ordered game log into totals. Records must all
// belong to the same player; ordering is preserved as given.
func NewSeasonAggregate(playerID string, log []GameRecord) (*PlayerSeasonAggregate, error) {
	a := &PlayerSeasonAggregate{PlayerID: playerID}
	for i := range log {
		r := &log[i]
		if r.PlayerID != playerID {
			return nil, fmt.Errorf("game log for %s contains record for %s", playerID, r.PlayerID)
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		a.TeamID = r.TeamID
		a.Games++
		a.MinutesTotal += r.MinutesPlayed
		a.Points += r.Points
		a.Assists += r.Assists
		a.TotalRebounds += r.TotalRebounds
		a.OffRebounds += r.OffRebounds
		a.DefRebounds += r.DefRebounds
		a.Steals += r.Steals
		a.Blocks += r.Blocks
		a.Turnovers += r.Turnovers
		a.PersonalFouls += r.PersonalFouls
		a.FoulsDrawn += r.FoulsDrawn
		a.FieldGoalsMade += r.FieldGoalsMade
		a.FieldGoalsAttempted += r.FieldGoalsAttempted
		a.ThreePointersMade += r.ThreePointersMade
		a.ThreePointersAttempted += r.ThreePointersAttempted
		a.FreeThrowsMade += r.FreeThrowsMade
		a.FreeThrowsAttempted += r.FreeThrowsAttempted
		if p, ok := r.TeamPossessions.Get(); ok {
			a.TeamPossessionsTotal += p
			a.PossessionGames++
			a.UsageDenomTotal += r.MinutesPlayed * p
		}
	}
	a.Log = log
	return a, nil
}

// PerGame returns total/games, or 0 for an empty log.
func (a *PlayerSeasonAggregate) PerGame(total int) float64 {
	if a.Games == 0 {
		return 0
	}
	return float64(total) / float64(a.Games)
}

// MissedFieldGoals is season FGA - FGM.
func (a *PlayerSeasonAggregate) MissedFieldGoals() int {
	return a.FieldGoalsAttempted - a.FieldGoalsMade
}

// MissedFreeThrows is season FTA - FTM.
func (a *PlayerSeasonAggregate) MissedFreeThrows() int {
	return a.FreeThrowsAttempted - a.FreeThrowsMade
}
