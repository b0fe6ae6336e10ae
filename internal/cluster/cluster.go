// Package cluster partitions a normalized population into K archetypes with
// centroid-based iterative clustering. Initialization is deterministic,
// either the first K players by sorted id or a caller-seeded shuffle, so
// identical inputs produce identical assignments.
package cluster

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/normalize"
)

// DefaultMaxIterations bounds the assign/update loop.
const DefaultMaxIterations = 100

// SeedPolicy picks the initial centroids.
type SeedPolicy int

const (
	// SeedFirstK takes the first K players by sorted player id.
	SeedFirstK SeedPolicy = iota
	// SeedShuffle takes K players from a shuffle driven by Options.Seed.
	SeedShuffle
)

// Options tunes a clustering run.
type Options struct {
	MaxIterations int // 0 means DefaultMaxIterations
	Policy        SeedPolicy
	Seed          int64 // used only by SeedShuffle
}

// Centroid is a cluster center: a per-dimension mean over the members that
// define the dimension.
type Centroid struct {
	Label  int
	Values map[string]model.Value
	Size   int
}

// Assignment maps every player to a cluster label for one run. Assignments
// are rebuilt per run and never persisted.
type Assignment struct {
	RunID      string // normalization run the input vectors came from
	K          int
	Iterations int
	Converged  bool
	Labels     map[string]int // player id -> cluster label
	Centroids  []Centroid
}

// Run clusters the population into k archetypes. K must satisfy
// 1 <= k <= len(pop); anything else is a configuration error, not a crash.
// All vectors must come from the same normalization run.
func Run(pop []normalize.Vector, k int, opts Options) (Assignment, error) {
	if k < 1 || k > len(pop) {
		return Assignment{}, fmt.Errorf("%w: k=%d with population %d", normalize.ErrBadConfig, k, len(pop))
	}
	maxIter := opts.MaxIterations
	if maxIter == 0 {
		maxIter = DefaultMaxIterations
	}
	if maxIter < 0 {
		return Assignment{}, fmt.Errorf("%w: max iterations %d", normalize.ErrBadConfig, maxIter)
	}
	for i := 1; i < len(pop); i++ {
		if pop[i].RunID != pop[0].RunID {
			return Assignment{}, fmt.Errorf("%w: population mixes runs", normalize.ErrRunMismatch)
		}
	}

	// Work on a copy sorted by player id; every later step iterates this
	// order, which pins down all tie-breaks.
	players := make([]normalize.Vector, len(pop))
	copy(players, pop)
	sort.Slice(players, func(i, j int) bool { return players[i].PlayerID < players[j].PlayerID })

	dims := dimensions(players)

	centroids := initialCentroids(players, k, opts)

	labels := make([]int, len(players))
	for i := range labels {
		labels[i] = -1
	}

	iterations := 0
	converged := false
	for iterations < maxIter {
		iterations++
		changed := false

		// ASSIGN: nearest centroid by Euclidean distance over shared dims.
		for i := range players {
			best, bestDist := -1, math.Inf(1)
			for c := range centroids {
				d, ok := dist(players[i].Values, centroids[c], dims)
				if !ok {
					continue
				}
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if best < 0 {
				// No centroid shares a defined dimension with this player.
				return Assignment{}, fmt.Errorf("%w: player %s shares no dimensions with any centroid",
					normalize.ErrInsufficientData, players[i].PlayerID)
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		// Reseed empty clusters to the member farthest from its nearest
		// centroid, ties broken by player id (the slice is id-sorted).
		for c := 0; c < k; c++ {
			if countLabel(labels, c) > 0 {
				continue
			}
			far, farDist := -1, -1.0
			for i := range players {
				d, ok := nearestDist(players[i].Values, centroids, dims)
				if !ok {
					continue
				}
				if d > farDist {
					far, farDist = i, d
				}
			}
			if far >= 0 {
				centroids[c] = vectorValues(players[far])
				labels[far] = c
				changed = true
			}
		}

		// UPDATE: centroid = per-dimension mean of members, skipping
		// undefined contributions.
		for c := 0; c < k; c++ {
			centroids[c] = meanOf(players, labels, c, dims)
		}

		if !changed {
			converged = true
			break
		}
	}

	asg := Assignment{
		RunID:      players[0].RunID.String(),
		K:          k,
		Iterations: iterations,
		Converged:  converged,
		Labels:     make(map[string]int, len(players)),
	}
	for i := range players {
		asg.Labels[players[i].PlayerID] = labels[i]
	}
	for c := 0; c < k; c++ {
		asg.Centroids = append(asg.Centroids, Centroid{
			Label:  c,
			Values: centroids[c],
			Size:   countLabel(labels, c),
		})
	}
	return asg, nil
}

// dimensions returns the sorted union of dimension names.
func dimensions(players []normalize.Vector) []string {
	set := make(map[string]struct{})
	for _, p := range players {
		for name := range p.Values {
			set[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func initialCentroids(players []normalize.Vector, k int, opts Options) []map[string]model.Value {
	idx := make([]int, len(players))
	for i := range idx {
		idx[i] = i
	}
	if opts.Policy == SeedShuffle {
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	}
	centroids := make([]map[string]model.Value, k)
	for c := 0; c < k; c++ {
		centroids[c] = vectorValues(players[idx[c]])
	}
	return centroids
}

func vectorValues(v normalize.Vector) map[string]model.Value {
	out := make(map[string]model.Value, len(v.Values))
	for name, val := range v.Values {
		out[name] = val
	}
	return out
}

// dist is Euclidean distance over the dimensions defined in both the point
// and the centroid. Returns ok=false when none are shared.
func dist(point map[string]model.Value, centroid map[string]model.Value, dims []string) (float64, bool) {
	var ss float64
	shared := 0
	for _, name := range dims {
		x, ok := point[name].Get()
		if !ok {
			continue
		}
		y, ok := centroid[name].Get()
		if !ok {
			continue
		}
		d := x - y
		ss += d * d
		shared++
	}
	if shared == 0 {
		return 0, false
	}
	return math.Sqrt(ss), true
}

func nearestDist(point map[string]model.Value, centroids []map[string]model.Value, dims []string) (float64, bool) {
	best, found := math.Inf(1), false
	for c := range centroids {
		if d, ok := dist(point, centroids[c], dims); ok && d < best {
			best, found = d, true
		}
	}
	return best, found
}

func countLabel(labels []int, c int) int {
	n := 0
	for _, l := range labels {
		if l == c {
			n++
		}
	}
	return n
}

// meanOf recomputes a centroid as the per-dimension mean of its members.
// Dimensions no member defines stay undefined in the centroid.
func meanOf(players []normalize.Vector, labels []int, c int, dims []string) map[string]model.Value {
	out := make(map[string]model.Value, len(dims))
	for _, name := range dims {
		var sum float64
		n := 0
		for i := range players {
			if labels[i] != c {
				continue
			}
			if x, ok := players[i].Values[name].Get(); ok {
				sum += x
				n++
			}
		}
		if n == 0 {
			out[name] = model.Undef()
		} else {
			out[name] = model.Def(sum / float64(n))
		}
	}
	return out
}
