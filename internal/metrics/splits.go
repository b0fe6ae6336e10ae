package metrics

import "github.com/pable/go-hoops-metrics/internal/model"

// DefaultSplitMinGames is the minimum games on each side before a home/away
// split is worth showing.
const DefaultSplitMinGames = 3

// SideAverages holds per-game counting averages for one venue side.
type SideAverages struct {
	Games    int
	Points   float64
	Assists  float64
	Rebounds float64
	Minutes  float64
}

// HomeAwaySplit is a player's home vs away per-game comparison. Defined is
// false when either side has fewer than the minimum games.
type HomeAwaySplit struct {
	PlayerID string
	Home     SideAverages
	Away     SideAverages
	Defined  bool
}

// PointsDiff is home minus away points per game.
func (s HomeAwaySplit) PointsDiff() float64 { return s.Home.Points - s.Away.Points }

// Split computes the home/away split over an ordered game log.
func Split(playerID string, log []model.GameRecord, minGames int) HomeAwaySplit {
	if minGames <= 0 {
		minGames = DefaultSplitMinGames
	}
	split := HomeAwaySplit{PlayerID: playerID}
	var home, away SideAverages
	for i := range log {
		r := &log[i]
		side := &away
		if r.IsHome {
			side = &home
		}
		side.Games++
		side.Points += float64(r.Points)
		side.Assists += float64(r.Assists)
		side.Rebounds += float64(r.TotalRebounds)
		side.Minutes += r.MinutesPlayed
	}
	for _, side := range []*SideAverages{&home, &away} {
		if side.Games == 0 {
			continue
		}
		n := float64(side.Games)
		side.Points /= n
		side.Assists /= n
		side.Rebounds /= n
		side.Minutes /= n
	}
	split.Home, split.Away = home, away
	split.Defined = home.Games >= minGames && away.Games >= minGames
	return split
}
