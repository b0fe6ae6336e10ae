package model

import (
	"strings"
	"testing"
)

// makeGame builds a valid record with a modest stat line.
func makeGame(playerID string, idx int) GameRecord {
	return GameRecord{
		PlayerID:               playerID,
		TeamID:                 "BOS",
		OpponentID:             "NYK",
		GameDate:               "2025-11-01",
		GameIndex:              idx,
		MinutesPlayed:          30,
		Points:                 14,
		Assists:                4,
		OffRebounds:            1,
		DefRebounds:            5,
		TotalRebounds:          6,
		Turnovers:              2,
		FieldGoalsMade:         5,
		FieldGoalsAttempted:    10,
		ThreePointersMade:      2,
		ThreePointersAttempted: 5,
		FreeThrowsMade:         2,
		FreeThrowsAttempted:    2,
	}
}

func TestValidateRejectsMadeOverAttempted(t *testing.T) {
	r := makeGame("p1", 0)
	r.FieldGoalsMade = 11
	err := r.Validate()
	if err == nil {
		t.Fatal("expected error for FGM > FGA")
	}
	if !strings.Contains(err.Error(), "FG") {
		t.Errorf("error should name the shot type: %v", err)
	}
}

func TestValidateRejectsReboundMismatch(t *testing.T) {
	r := makeGame("p1", 0)
	r.TotalRebounds = 9
	if r.Validate() == nil {
		t.Fatal("expected error when total != off + def rebounds")
	}
}

func TestValidateRejectsNegativeMinutes(t *testing.T) {
	r := makeGame("p1", 0)
	r.MinutesPlayed = -1
	if r.Validate() == nil {
		t.Fatal("expected error for negative minutes")
	}
}

func TestNewSeasonAggregateFoldsTotals(t *testing.T) {
	log := []GameRecord{makeGame("p1", 0), makeGame("p1", 1), makeGame("p1", 2)}
	a, err := NewSeasonAggregate("p1", log)
	if err != nil {
		t.Fatalf("NewSeasonAggregate: %v", err)
	}
	if a.Games != 3 {
		t.Errorf("Games = %d, want 3", a.Games)
	}
	if a.Points != 42 {
		t.Errorf("Points = %d, want 42", a.Points)
	}
	if a.MinutesTotal != 90 {
		t.Errorf("MinutesTotal = %v, want 90", a.MinutesTotal)
	}
	if a.TeamID != "BOS" {
		t.Errorf("TeamID = %q", a.TeamID)
	}
	if len(a.Log) != 3 {
		t.Errorf("Log kept %d games, want 3", len(a.Log))
	}
}

func TestNewSeasonAggregateRejectsForeignRecord(t *testing.T) {
	log := []GameRecord{makeGame("p1", 0), makeGame("p2", 0)}
	if _, err := NewSeasonAggregate("p1", log); err == nil {
		t.Fatal("expected error for a record from another player")
	}
}

func TestPossessionGamesCountsOnlySupplied(t *testing.T) {
	g1 := makeGame("p1", 0)
	g1.TeamPossessions = Def(72)
	g2 := makeGame("p1", 1) // possessions absent

	a, err := NewSeasonAggregate("p1", []GameRecord{g1, g2})
	if err != nil {
		t.Fatalf("NewSeasonAggregate: %v", err)
	}
	if a.PossessionGames != 1 {
		t.Errorf("PossessionGames = %d, want 1", a.PossessionGames)
	}
	if a.TeamPossessionsTotal != 72 {
		t.Errorf("TeamPossessionsTotal = %v, want 72", a.TeamPossessionsTotal)
	}
	// 30 minutes * 72 possessions from the one supplied game.
	if a.UsageDenomTotal != 2160 {
		t.Errorf("UsageDenomTotal = %v, want 2160", a.UsageDenomTotal)
	}
}

func TestPerGameEmptyLog(t *testing.T) {
	a := &PlayerSeasonAggregate{PlayerID: "p1"}
	if got := a.PerGame(10); got != 0 {
		t.Errorf("PerGame on empty log = %v, want 0", got)
	}
}
