package similarity

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/normalize"
)

var testRun = uuid.New()

// vec builds a normalized vector on the shared test run. NaN marks an
// undefined dimension.
func vec(playerID string, dims map[string]float64) normalize.Vector {
	v := normalize.Vector{
		PlayerID: playerID,
		RunID:    testRun,
		Method:   normalize.ZScore,
		Values:   make(map[string]model.Value, len(dims)),
	}
	for name, x := range dims {
		if math.IsNaN(x) {
			v.Values[name] = model.Undef()
		} else {
			v.Values[name] = model.Def(x)
		}
	}
	return v
}

func TestScoreSymmetric(t *testing.T) {
	a := vec("a", map[string]float64{"m1": 1, "m2": 2, "m3": 3})
	b := vec("b", map[string]float64{"m1": 4, "m2": 6, "m3": 3})
	for _, kind := range []Kind{Euclidean, Cosine} {
		ab, _, err := Score(a, b, kind, 3)
		if err != nil {
			t.Fatalf("Score(a,b,%s): %v", kind, err)
		}
		ba, _, err := Score(b, a, kind, 3)
		if err != nil {
			t.Fatalf("Score(b,a,%s): %v", kind, err)
		}
		if ab != ba {
			t.Errorf("%s not symmetric: %v vs %v", kind, ab, ba)
		}
	}
}

func TestEuclideanWorkedExample(t *testing.T) {
	a := vec("a", map[string]float64{"m1": 0, "m2": 0, "m3": 0})
	b := vec("b", map[string]float64{"m1": 3, "m2": 4, "m3": 0})
	got, shared, err := Score(a, b, Euclidean, 3)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 5 {
		t.Errorf("distance = %v, want 5", got)
	}
	if shared != 3 {
		t.Errorf("shared = %d, want 3", shared)
	}
}

func TestCosineParallelAndOpposed(t *testing.T) {
	a := vec("a", map[string]float64{"m1": 1, "m2": 2, "m3": 3})
	b := vec("b", map[string]float64{"m1": 2, "m2": 4, "m3": 6})
	got, _, err := Score(a, b, Cosine, 3)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("parallel cosine = %v, want 1", got)
	}

	c := vec("c", map[string]float64{"m1": -1, "m2": -2, "m3": -3})
	got, _, err = Score(a, c, Cosine, 3)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(got+1) > 1e-9 {
		t.Errorf("opposed cosine = %v, want -1", got)
	}
}

func TestScoreSkipsUndefinedDims(t *testing.T) {
	a := vec("a", map[string]float64{"m1": 1, "m2": math.NaN(), "m3": 2, "m4": 3})
	b := vec("b", map[string]float64{"m1": 1, "m2": 5, "m3": math.NaN(), "m4": 3})
	// Only m1 and m4 are defined in both.
	_, shared, err := Score(a, b, Euclidean, 2)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if shared != 2 {
		t.Errorf("shared = %d, want 2", shared)
	}
	if _, _, err := Score(a, b, Euclidean, 3); !errors.Is(err, normalize.ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData below the shared-dim floor", err)
	}
}

func TestScoreRejectsRunMismatch(t *testing.T) {
	a := vec("a", map[string]float64{"m1": 1, "m2": 2, "m3": 3})
	b := vec("b", map[string]float64{"m1": 1, "m2": 2, "m3": 3})
	b.RunID = uuid.New()
	if _, _, err := Score(a, b, Euclidean, 3); !errors.Is(err, normalize.ErrRunMismatch) {
		t.Fatalf("err = %v, want ErrRunMismatch", err)
	}
}

func TestCosineZeroMagnitude(t *testing.T) {
	a := vec("a", map[string]float64{"m1": 0, "m2": 0, "m3": 0})
	b := vec("b", map[string]float64{"m1": 1, "m2": 1, "m3": 1})
	if _, _, err := Score(a, b, Cosine, 3); !errors.Is(err, normalize.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData for zero-magnitude vector", err)
	}
}

func TestNearestNeighborsRankingAndTies(t *testing.T) {
	query := vec("q", map[string]float64{"m1": 0, "m2": 0, "m3": 0})
	pop := []normalize.Vector{
		query,
		vec("far", map[string]float64{"m1": 10, "m2": 0, "m3": 0}),
		vec("near", map[string]float64{"m1": 1, "m2": 0, "m3": 0}),
		// Two candidates at equal distance 2; tie breaks by id.
		vec("tie-b", map[string]float64{"m1": 2, "m2": 0, "m3": 0}),
		vec("tie-a", map[string]float64{"m1": 0, "m2": 2, "m3": 0}),
	}
	res, err := NearestNeighbors(query, pop, Euclidean, 3, 3)
	if err != nil {
		t.Fatalf("NearestNeighbors: %v", err)
	}
	want := []string{"near", "tie-a", "tie-b"}
	if len(res.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(res.Entries), len(want))
	}
	for i, w := range want {
		if res.Entries[i].PlayerID != w {
			t.Errorf("entry[%d] = %s, want %s", i, res.Entries[i].PlayerID, w)
		}
	}
}

func TestNearestNeighborsExcludesSelfAndIncomparable(t *testing.T) {
	query := vec("q", map[string]float64{"m1": 0, "m2": 0, "m3": 0})
	pop := []normalize.Vector{
		query,
		vec("ok", map[string]float64{"m1": 1, "m2": 1, "m3": 1}),
		vec("sparse", map[string]float64{"m1": 1, "m2": math.NaN(), "m3": math.NaN()}),
	}
	res, err := NearestNeighbors(query, pop, Euclidean, 10, 3)
	if err != nil {
		t.Fatalf("NearestNeighbors: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].PlayerID != "ok" {
		t.Errorf("entries = %+v, want only 'ok'", res.Entries)
	}
}

func TestNearestNeighborsNoComparableCandidates(t *testing.T) {
	query := vec("q", map[string]float64{"m1": 0, "m2": 0, "m3": 0})
	pop := []normalize.Vector{
		query,
		vec("sparse", map[string]float64{"m1": 1, "m2": math.NaN(), "m3": math.NaN()}),
	}
	_, err := NearestNeighbors(query, pop, Euclidean, 5, 3)
	if !errors.Is(err, normalize.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestNearestNeighborsBadN(t *testing.T) {
	query := vec("q", map[string]float64{"m1": 0, "m2": 0, "m3": 0})
	if _, err := NearestNeighbors(query, nil, Euclidean, 0, 3); !errors.Is(err, normalize.ErrBadConfig) {
		t.Fatalf("err = %v, want ErrBadConfig", err)
	}
}
