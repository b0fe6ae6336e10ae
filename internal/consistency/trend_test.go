package consistency

import (
	"math"
	"testing"
)

func TestTrendBelowMinGames(t *testing.T) {
	tr := ComputeTrend(series(10, 11, 12), DefaultTrendOptions())
	if tr.Label != Undefined {
		t.Errorf("label = %s, want undefined with 3 games", tr.Label)
	}
	if tr.SeasonAvg.Defined() || tr.Slope.Defined() {
		t.Error("no statistics should be reported below the minimum games")
	}
}

func TestTrendImproving(t *testing.T) {
	// A clean upward line: slope 1 with zero residuals, interval collapses
	// around 1 and excludes zero.
	tr := ComputeTrend(series(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), DefaultTrendOptions())
	if tr.Label != Improving {
		t.Fatalf("label = %s, want improving", tr.Label)
	}
	if got := mustValue(t, tr.Slope); math.Abs(got-1) > eps {
		t.Errorf("slope = %v, want 1", got)
	}
	// Last 5 games average 8, season average 5.5.
	if got := mustValue(t, tr.RollingAvg); got != 8 {
		t.Errorf("rolling avg = %v, want 8", got)
	}
	if got := mustValue(t, tr.SeasonAvg); got != 5.5 {
		t.Errorf("season avg = %v, want 5.5", got)
	}
	if got := mustValue(t, tr.Delta); math.Abs(got-2.5) > eps {
		t.Errorf("delta = %v, want 2.5", got)
	}
}

func TestTrendDeclining(t *testing.T) {
	tr := ComputeTrend(series(10, 9, 8, 7, 6, 5, 4, 3, 2, 1), DefaultTrendOptions())
	if tr.Label != Declining {
		t.Errorf("label = %s, want declining", tr.Label)
	}
}

func TestTrendStableOnNoise(t *testing.T) {
	// Values oscillate around 10 with no direction; the slope interval must
	// cover zero.
	tr := ComputeTrend(series(10, 12, 9, 11, 10, 12, 9, 11, 10, 11), DefaultTrendOptions())
	if tr.Label != Stable {
		t.Errorf("label = %s, want stable", tr.Label)
	}
	lo := mustValue(t, tr.SlopeLo)
	hi := mustValue(t, tr.SlopeHi)
	if lo > 0 || hi < 0 {
		t.Errorf("interval [%v, %v] should cover zero", lo, hi)
	}
}

func TestTrendKeepsIndexSpacingAcrossGaps(t *testing.T) {
	// Ten defined games with two undefined gaps in the middle; the fit runs
	// over the original indices, so the slope of an exact line is unchanged.
	s := series(1, 2, math.NaN(), 4, 5, 6, math.NaN(), 8, 9, 10, 11, 12)
	tr := ComputeTrend(s, DefaultTrendOptions())
	if tr.Games != 10 {
		t.Fatalf("Games = %d, want 10", tr.Games)
	}
	if got := mustValue(t, tr.Slope); math.Abs(got-1) > eps {
		t.Errorf("slope = %v, want 1 over original index spacing", got)
	}
	if tr.Label != Improving {
		t.Errorf("label = %s, want improving", tr.Label)
	}
}

func TestTrendDeltaPctZeroSeasonMean(t *testing.T) {
	tr := ComputeTrend(series(-5, 5, -5, 5, -5, 5, -5, 5, -5, 5), DefaultTrendOptions())
	if tr.Label == Undefined {
		t.Fatal("10 games should clear the minimum")
	}
	if tr.DeltaPct.Defined() {
		t.Error("delta percent should be undefined when the season mean is zero")
	}
}
