package consistency

import (
	"math"
	"testing"

	"github.com/pable/go-hoops-metrics/internal/model"
)

const eps = 1e-9

func series(vals ...float64) []model.Value {
	out := make([]model.Value, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			out[i] = model.Undef()
		} else {
			out[i] = model.Def(v)
		}
	}
	return out
}

func mustValue(t *testing.T, v model.Value) float64 {
	t.Helper()
	x, ok := v.Get()
	if !ok {
		t.Fatal("value unexpectedly undefined")
	}
	return x
}

func TestComputeWorkedExample(t *testing.T) {
	rep := Compute(series(10, 12, 8, 11, 9), DefaultOptions())
	if !rep.Defined {
		t.Fatal("report should be defined with 5 games")
	}
	if got := mustValue(t, rep.Mean); got != 10 {
		t.Errorf("mean = %v, want 10", got)
	}
	// Sample std of {10,12,8,11,9}: sqrt(10/4) ≈ 1.5811.
	if got := mustValue(t, rep.Std); math.Abs(got-math.Sqrt(2.5)) > eps {
		t.Errorf("std = %v, want %v", got, math.Sqrt(2.5))
	}
	if got := mustValue(t, rep.CV); math.Abs(got-math.Sqrt(2.5)*10) > eps {
		t.Errorf("CV = %v, want %v", got, math.Sqrt(2.5)*10)
	}
	if rep.HighVariance {
		t.Error("CV near 16 should not flag high variance at the default threshold")
	}
}

func TestComputeBelowMinGames(t *testing.T) {
	rep := Compute(series(10, 12, 8, 11), DefaultOptions())
	if rep.Defined {
		t.Error("report should be undefined below the minimum games")
	}
	if rep.Mean.Defined() || rep.CV.Defined() {
		t.Error("no statistics should be reported on an undefined report")
	}
	if rep.Games != 4 {
		t.Errorf("Games = %d, want 4", rep.Games)
	}
}

func TestComputeDropsUndefinedGames(t *testing.T) {
	s := series(10, math.NaN(), 12, 8, math.NaN(), 11, 9)
	rep := Compute(s, DefaultOptions())
	if !rep.Defined {
		t.Fatal("5 defined games should clear the default minimum")
	}
	if rep.Games != 5 {
		t.Errorf("Games = %d, want 5 (undefined dropped)", rep.Games)
	}
	if got := mustValue(t, rep.Mean); got != 10 {
		t.Errorf("mean = %v, want 10", got)
	}
}

func TestComputeZeroMeanCV(t *testing.T) {
	rep := Compute(series(-2, -1, 0, 1, 2), DefaultOptions())
	if !rep.Defined {
		t.Fatal("report should be defined")
	}
	if rep.CV.Defined() {
		t.Error("CV should be undefined when the mean is zero")
	}
	if rep.HighVariance {
		t.Error("no CV, no high-variance flag")
	}
}

func TestComputeNegativeMeanCV(t *testing.T) {
	// CV divides by the magnitude of the mean, so a negative-mean series
	// (pace-adjusted plus/minus) still reports positive spread.
	rep := Compute(series(-10, -12, -8, -11, -9), DefaultOptions())
	if !rep.Defined {
		t.Fatal("report should be defined")
	}
	got := mustValue(t, rep.CV)
	if got <= 0 {
		t.Errorf("CV = %v, want positive for a negative-mean series", got)
	}
	if math.Abs(got-math.Sqrt(2.5)*10) > eps {
		t.Errorf("CV = %v, want %v (same spread as the positive mirror)", got, math.Sqrt(2.5)*10)
	}
}

func TestComputeHighVarianceFlag(t *testing.T) {
	rep := Compute(series(1, 20, 2, 25, 3), Options{CVThreshold: 50, MinGames: 5})
	if !rep.Defined {
		t.Fatal("report should be defined")
	}
	if !rep.HighVariance {
		cv := mustValue(t, rep.CV)
		t.Errorf("CV %v should flag high variance over 50", cv)
	}
}

func TestIQRWorkedExample(t *testing.T) {
	// Sorted {1,2,3,4}: Q1 = 1.75, Q3 = 3.25 under R-7, IQR = 1.5.
	rep := Compute(series(3, 1, 4, 2), Options{CVThreshold: 50, MinGames: 4})
	if got := mustValue(t, rep.IQR); math.Abs(got-1.5) > eps {
		t.Errorf("IQR = %v, want 1.5", got)
	}
}
