package cluster

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/normalize"
)

var testRun = uuid.New()

func vec(playerID string, dims map[string]float64) normalize.Vector {
	v := normalize.Vector{
		PlayerID: playerID,
		RunID:    testRun,
		Method:   normalize.ZScore,
		Values:   make(map[string]model.Value, len(dims)),
	}
	for name, x := range dims {
		v.Values[name] = model.Def(x)
	}
	return v
}

// twoBlobs is a population with an obvious two-cluster structure: four
// players near the origin and four near (10, 10).
func twoBlobs() []normalize.Vector {
	return []normalize.Vector{
		vec("a1", map[string]float64{"x": 0.0, "y": 0.1}),
		vec("a2", map[string]float64{"x": 0.2, "y": 0.0}),
		vec("a3", map[string]float64{"x": 0.1, "y": 0.2}),
		vec("a4", map[string]float64{"x": 0.0, "y": 0.0}),
		vec("b1", map[string]float64{"x": 10.0, "y": 10.1}),
		vec("b2", map[string]float64{"x": 10.2, "y": 10.0}),
		vec("b3", map[string]float64{"x": 10.1, "y": 10.2}),
		vec("b4", map[string]float64{"x": 10.0, "y": 10.0}),
	}
}

func TestRunSeparatesObviousClusters(t *testing.T) {
	asg, err := Run(twoBlobs(), 2, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !asg.Converged {
		t.Error("expected convergence on a trivially separable population")
	}
	aLabel := asg.Labels["a1"]
	bLabel := asg.Labels["b1"]
	if aLabel == bLabel {
		t.Fatal("the two blobs ended up in one cluster")
	}
	for _, id := range []string{"a2", "a3", "a4"} {
		if asg.Labels[id] != aLabel {
			t.Errorf("%s labeled %d, want %d", id, asg.Labels[id], aLabel)
		}
	}
	for _, id := range []string{"b2", "b3", "b4"} {
		if asg.Labels[id] != bLabel {
			t.Errorf("%s labeled %d, want %d", id, asg.Labels[id], bLabel)
		}
	}
	for _, c := range asg.Centroids {
		if c.Size != 4 {
			t.Errorf("centroid %d size = %d, want 4", c.Label, c.Size)
		}
	}
}

func TestRunKValidation(t *testing.T) {
	pop := twoBlobs()
	for _, k := range []int{0, -1, len(pop) + 1} {
		if _, err := Run(pop, k, Options{}); !errors.Is(err, normalize.ErrBadConfig) {
			t.Errorf("k=%d: err = %v, want ErrBadConfig", k, err)
		}
	}
}

func TestRunKEqualsPopulation(t *testing.T) {
	pop := twoBlobs()
	asg, err := Run(pop, len(pop), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	seen := make(map[int]bool)
	for id, label := range asg.Labels {
		if seen[label] {
			t.Errorf("label %d assigned twice (player %s); want singletons", label, id)
		}
		seen[label] = true
	}
	for _, c := range asg.Centroids {
		if c.Size != 1 {
			t.Errorf("centroid %d size = %d, want 1", c.Label, c.Size)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	first, err := Run(twoBlobs(), 3, Options{Policy: SeedShuffle, Seed: 42})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(twoBlobs(), 3, Options{Policy: SeedShuffle, Seed: 42})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(first.Labels, second.Labels) {
		t.Errorf("same seed gave different labels:\n%v\n%v", first.Labels, second.Labels)
	}
}

func TestRunInputOrderIrrelevant(t *testing.T) {
	pop := twoBlobs()
	reversed := make([]normalize.Vector, len(pop))
	for i := range pop {
		reversed[len(pop)-1-i] = pop[i]
	}
	a, err := Run(pop, 2, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(reversed, 2, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(a.Labels, b.Labels) {
		t.Errorf("input order changed the assignment:\n%v\n%v", a.Labels, b.Labels)
	}
}

func TestRunRejectsMixedRuns(t *testing.T) {
	pop := twoBlobs()
	pop[3].RunID = uuid.New()
	if _, err := Run(pop, 2, Options{}); !errors.Is(err, normalize.ErrRunMismatch) {
		t.Fatalf("err = %v, want ErrRunMismatch", err)
	}
}

// With SeedFirstK and duplicate points at the front, two centroids start
// identical and one cluster goes empty on the first assignment; the reseed
// must repopulate it rather than return a K-1 partition.
func TestEmptyClusterReseed(t *testing.T) {
	pop := []normalize.Vector{
		vec("a1", map[string]float64{"x": 0, "y": 0}),
		vec("a2", map[string]float64{"x": 0, "y": 0}),
		vec("b1", map[string]float64{"x": 10, "y": 10}),
		vec("c1", map[string]float64{"x": 20, "y": 20}),
	}
	asg, err := Run(pop, 2, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, c := range asg.Centroids {
		if c.Size == 0 {
			t.Errorf("centroid %d left empty after reseed", c.Label)
		}
	}
}
