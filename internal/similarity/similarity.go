// Package similarity scores pairs of normalized vectors and answers
// nearest-neighbor queries over an eligible population.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pable/go-hoops-metrics/internal/normalize"
)

// Kind selects the distance contract.
type Kind string

const (
	Euclidean Kind = "euclidean" // ranked ascending by distance
	Cosine    Kind = "cosine"    // ranked descending by similarity
)

// ParseKind validates a distance kind from config or a CLI flag.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Euclidean, Cosine:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown distance kind %q", normalize.ErrBadConfig, s)
	}
}

// DefaultMinSharedDims is the minimum number of dimensions defined in both
// vectors for the pair to be comparable at all.
const DefaultMinSharedDims = 3

// Entry is one scored neighbor.
type Entry struct {
	PlayerID string
	Score    float64 // distance for Euclidean, similarity for Cosine
	Shared   int     // dimensions the score was computed over
}

// Result is the ranked neighbor list for one query player.
type Result struct {
	QueryID string
	Kind    Kind
	Entries []Entry
}

// Score computes the pairwise score between two vectors from the same
// normalization run, over the dimensions defined in both. The score is
// symmetric: Score(a, b) == Score(b, a). Pairs sharing fewer than
// minShared dimensions are incomparable and return ErrInsufficientData
// rather than a misleading partial value.
func Score(a, b normalize.Vector, kind Kind, minShared int) (float64, int, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return 0, 0, err
	}
	if minShared < 1 {
		return 0, 0, fmt.Errorf("%w: min shared dimensions must be >= 1, got %d", normalize.ErrBadConfig, minShared)
	}
	if a.RunID != b.RunID {
		return 0, 0, fmt.Errorf("%w: %s vs %s", normalize.ErrRunMismatch, a.RunID, b.RunID)
	}

	// Accumulate in sorted dimension order so float summation is identical
	// across runs and across query directions.
	names := make([]string, 0, len(a.Values))
	for name := range a.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	var xs, ys []float64
	for _, name := range names {
		x, ok := a.Values[name].Get()
		if !ok {
			continue
		}
		y, ok := b.Values[name].Get()
		if !ok {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < minShared {
		return 0, len(xs), fmt.Errorf("%w: %d shared dimensions, need %d",
			normalize.ErrInsufficientData, len(xs), minShared)
	}

	switch kind {
	case Euclidean:
		var ss float64
		for i := range xs {
			d := xs[i] - ys[i]
			ss += d * d
		}
		return math.Sqrt(ss), len(xs), nil
	default: // Cosine
		var dot, nx, ny float64
		for i := range xs {
			dot += xs[i] * ys[i]
			nx += xs[i] * xs[i]
			ny += ys[i] * ys[i]
		}
		if nx == 0 || ny == 0 {
			return 0, len(xs), fmt.Errorf("%w: zero-magnitude vector", normalize.ErrInsufficientData)
		}
		return dot / (math.Sqrt(nx) * math.Sqrt(ny)), len(xs), nil
	}
}

// NearestNeighbors ranks the n players closest to the query over the full
// population. The query player itself and pairs below the shared-dimension
// minimum are excluded. Ties break by player id so runs are reproducible.
// The scan always covers the whole population; no pruning may change the
// top-n set. ErrInsufficientData is returned only when no candidate at all
// was comparable.
func NearestNeighbors(query normalize.Vector, pop []normalize.Vector, kind Kind, n, minShared int) (Result, error) {
	if n < 1 {
		return Result{}, fmt.Errorf("%w: neighbor count must be >= 1, got %d", normalize.ErrBadConfig, n)
	}

	res := Result{QueryID: query.PlayerID, Kind: kind}
	comparable := 0
	for _, cand := range pop {
		if cand.PlayerID == query.PlayerID {
			continue
		}
		score, shared, err := Score(query, cand, kind, minShared)
		if err != nil {
			if isDataErr(err) {
				continue // incomparable pair, skip silently
			}
			return Result{}, err
		}
		comparable++
		res.Entries = append(res.Entries, Entry{PlayerID: cand.PlayerID, Score: score, Shared: shared})
	}
	if comparable == 0 {
		return Result{}, fmt.Errorf("%w: no comparable candidates for %s",
			normalize.ErrInsufficientData, query.PlayerID)
	}

	sort.Slice(res.Entries, func(i, j int) bool {
		a, b := res.Entries[i], res.Entries[j]
		if a.Score != b.Score {
			if kind == Euclidean {
				return a.Score < b.Score
			}
			return a.Score > b.Score
		}
		return a.PlayerID < b.PlayerID
	})
	if len(res.Entries) > n {
		res.Entries = res.Entries[:n]
	}
	return res, nil
}

func isDataErr(err error) bool {
	return errors.Is(err, normalize.ErrInsufficientData)
}
