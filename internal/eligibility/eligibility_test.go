package eligibility

import (
	"testing"

	"github.com/pable/go-hoops-metrics/internal/metrics"
	"github.com/pable/go-hoops-metrics/internal/model"
)

// makeAgg builds an aggregate with the given total minutes spread over games
// of a fixed stat line.
func makeAgg(t *testing.T, playerID string, games int, minutesPerGame float64) *model.PlayerSeasonAggregate {
	t.Helper()
	log := make([]model.GameRecord, games)
	for i := range log {
		log[i] = model.GameRecord{
			PlayerID:            playerID,
			MinutesPlayed:       minutesPerGame,
			Points:              12,
			Assists:             3,
			TotalRebounds:       5,
			Turnovers:           2,
			FieldGoalsMade:      5,
			FieldGoalsAttempted: 11,
		}
	}
	a, err := model.NewSeasonAggregate(playerID, log)
	if err != nil {
		t.Fatalf("NewSeasonAggregate: %v", err)
	}
	return a
}

func TestFilterMinMinutes(t *testing.T) {
	pop := []*model.PlayerSeasonAggregate{
		makeAgg(t, "starter", 10, 30), // 300 minutes
		makeAgg(t, "bench", 10, 5),    // 50 minutes
		makeAgg(t, "edge", 10, 10),    // exactly 100
	}
	eligible, _, err := Filter(pop, DefaultMinMinutes, metrics.CoreNames())
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(eligible) != 2 {
		t.Fatalf("eligible = %d players, want 2", len(eligible))
	}
	// Sorted by player id, and the threshold is inclusive.
	if eligible[0].PlayerID != "edge" || eligible[1].PlayerID != "starter" {
		t.Errorf("eligible order = [%s %s], want [edge starter]",
			eligible[0].PlayerID, eligible[1].PlayerID)
	}
}

func TestValidityTracksUndefinedMetrics(t *testing.T) {
	// A player over the minutes bar but with zero free throw attempts: ft_pct
	// is undefined for them while efg_pct stays defined.
	pop := []*model.PlayerSeasonAggregate{makeAgg(t, "p1", 10, 30)}
	names := []string{metrics.EFG, metrics.FTPct}
	_, validity, err := Filter(pop, DefaultMinMinutes, names)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !validity.Valid("p1", metrics.EFG) {
		t.Error("efg_pct should be valid")
	}
	if validity.Valid("p1", metrics.FTPct) {
		t.Error("ft_pct should be invalid with zero attempts")
	}
	if validity.Valid("ghost", metrics.EFG) {
		t.Error("unknown player should read as invalid")
	}
}

func TestVectorsFollowPopulationOrder(t *testing.T) {
	pop := []*model.PlayerSeasonAggregate{
		makeAgg(t, "b", 10, 30),
		makeAgg(t, "a", 10, 30),
	}
	vecs, err := Vectors(pop, []string{metrics.EFG})
	if err != nil {
		t.Fatalf("Vectors: %v", err)
	}
	if vecs[0].PlayerID != "b" || vecs[1].PlayerID != "a" {
		t.Errorf("vector order = [%s %s], want population order [b a]",
			vecs[0].PlayerID, vecs[1].PlayerID)
	}
}
