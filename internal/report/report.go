package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-hoops-metrics/internal/cluster"
	"github.com/pable/go-hoops-metrics/internal/consistency"
	"github.com/pable/go-hoops-metrics/internal/metrics"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/similarity"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// fmtValue renders a Value with the given precision, "—" when undefined.
func fmtValue(v model.Value, prec int) string {
	x, ok := v.Get()
	if !ok {
		return "—"
	}
	return strconv.FormatFloat(x, 'f', prec, 64)
}

// fmtPct renders a ratio Value as a percentage.
func fmtPct(v model.Value) string {
	x, ok := v.Get()
	if !ok {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", x*100)
}

// PrintPlayerList prints the stored-player roster.
func PrintPlayerList(w io.Writer, players []storage.PlayerListing) {
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "GAMES", "MINUTES")
	for _, p := range players {
		table.Append(p.PlayerID, p.TeamID, strconv.Itoa(p.Games), fmt.Sprintf("%.0f", p.MinutesTotal))
	}
	table.Render()
}

// PrintPlayerCard prints a player's season totals, derived metrics, and
// home/away split.
func PrintPlayerCard(w io.Writer, agg *model.PlayerSeasonAggregate, mv model.MetricVector, split metrics.HomeAwaySplit) {
	fmt.Fprintf(w, "\nPlayer: %s  |  Team: %s  |  Games: %d  |  Minutes: %.0f\n\n",
		agg.PlayerID, agg.TeamID, agg.Games, agg.MinutesTotal)

	totals := newTable(w)
	totals.Header("PTS", "AST", "REB", "STL", "BLK", "TOV", "FG", "3PT", "FT")
	totals.Append(
		strconv.Itoa(agg.Points),
		strconv.Itoa(agg.Assists),
		strconv.Itoa(agg.TotalRebounds),
		strconv.Itoa(agg.Steals),
		strconv.Itoa(agg.Blocks),
		strconv.Itoa(agg.Turnovers),
		fmt.Sprintf("%d/%d", agg.FieldGoalsMade, agg.FieldGoalsAttempted),
		fmt.Sprintf("%d/%d", agg.ThreePointersMade, agg.ThreePointersAttempted),
		fmt.Sprintf("%d/%d", agg.FreeThrowsMade, agg.FreeThrowsAttempted),
	)
	totals.Render()

	fmt.Fprintf(w, "\n--- Derived metrics ---\n\n")
	names := make([]string, 0, len(mv.Values))
	for name := range mv.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	mt := newTable(w)
	mt.Header("METRIC", "VALUE")
	for _, name := range names {
		mt.Append(name, fmtMetric(name, mv.Values[name]))
	}
	mt.Render()

	if split.Defined {
		fmt.Fprintf(w, "\n--- Home / Away ---\n\n")
		st := newTable(w)
		st.Header("SIDE", "GAMES", "PTS", "AST", "REB", "MIN")
		for _, row := range []struct {
			label string
			side  metrics.SideAverages
		}{{"HOME", split.Home}, {"AWAY", split.Away}} {
			st.Append(
				row.label,
				strconv.Itoa(row.side.Games),
				fmt.Sprintf("%.1f", row.side.Points),
				fmt.Sprintf("%.1f", row.side.Assists),
				fmt.Sprintf("%.1f", row.side.Rebounds),
				fmt.Sprintf("%.1f", row.side.Minutes),
			)
		}
		st.Render()
	}
}

// fmtMetric picks a sensible rendering per metric family: percentages for
// the shooting/usage rates, plain decimals for the rest.
func fmtMetric(name string, v model.Value) string {
	switch name {
	case metrics.EFG, metrics.TS, metrics.USG, metrics.AST, metrics.TOV,
		metrics.FGPct, metrics.FG3Pct, metrics.FTPct, metrics.ThreeRate:
		return fmtPct(v)
	default:
		return fmtValue(v, 2)
	}
}

// LeaderRow is one row of a league-leaders table.
type LeaderRow struct {
	PlayerID string
	TeamID   string
	Games    int
	Minutes  float64
	Value    model.Value
}

// PrintLeaders prints the top players for one metric.
func PrintLeaders(w io.Writer, metric string, rows []LeaderRow) {
	fmt.Fprintf(w, "\nLeague leaders — %s\n\n", metric)
	table := newTable(w)
	table.Header("#", "PLAYER", "TEAM", "GAMES", "MIN", "VALUE")
	for i, r := range rows {
		table.Append(
			strconv.Itoa(i+1),
			r.PlayerID,
			r.TeamID,
			strconv.Itoa(r.Games),
			fmt.Sprintf("%.0f", r.Minutes),
			fmtMetric(metric, r.Value),
		)
	}
	table.Render()
}

// PrintSimilarity prints a ranked neighbor list.
func PrintSimilarity(w io.Writer, res similarity.Result) {
	scoreHeader := "DISTANCE"
	if res.Kind == similarity.Cosine {
		scoreHeader = "SIMILARITY"
	}
	fmt.Fprintf(w, "\nPlayers most similar to %s (%s)\n\n", res.QueryID, res.Kind)
	table := newTable(w)
	table.Header("#", "PLAYER", scoreHeader, "SHARED_DIMS")
	for i, e := range res.Entries {
		table.Append(
			strconv.Itoa(i+1),
			e.PlayerID,
			fmt.Sprintf("%.4f", e.Score),
			strconv.Itoa(e.Shared),
		)
	}
	table.Render()
}

// PrintClusters prints each archetype with its members and centroid profile.
func PrintClusters(w io.Writer, asg cluster.Assignment, dims []string) {
	state := "converged"
	if !asg.Converged {
		state = "iteration limit reached"
	}
	fmt.Fprintf(w, "\nArchetypes: k=%d  |  %d iterations (%s)\n\n", asg.K, asg.Iterations, state)

	members := make(map[int][]string)
	for id, label := range asg.Labels {
		members[label] = append(members[label], id)
	}
	for label := range members {
		sort.Strings(members[label])
	}

	header := []any{"CLUSTER", "SIZE"}
	for _, d := range dims {
		header = append(header, d)
	}
	header = append(header, "MEMBERS")

	table := newTable(w)
	table.Header(header...)
	for _, c := range asg.Centroids {
		row := []any{strconv.Itoa(c.Label), strconv.Itoa(c.Size)}
		for _, d := range dims {
			row = append(row, fmtValue(c.Values[d], 2))
		}
		row = append(row, memberSummary(members[c.Label]))
		table.Append(row...)
	}
	table.Render()
}

// memberSummary keeps rows readable for big clusters.
func memberSummary(ids []string) string {
	const maxShown = 6
	if len(ids) <= maxShown {
		return joinComma(ids)
	}
	return fmt.Sprintf("%s, +%d more", joinComma(ids[:maxShown]), len(ids)-maxShown)
}

func joinComma(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	return out
}

// ConsistencyRow pairs a player with their variability report.
type ConsistencyRow struct {
	PlayerID string
	Report   consistency.Report
}

// PrintConsistency prints the variability table for one metric.
func PrintConsistency(w io.Writer, metric string, rows []ConsistencyRow) {
	fmt.Fprintf(w, "\nConsistency — %s\n\n", metric)
	table := newTable(w)
	table.Header("PLAYER", "GAMES", "MEAN", "STD", "CV%", "IQR", "FLAG")
	for _, r := range rows {
		flag := " "
		if r.Report.Defined && r.Report.HighVariance {
			flag = "HIGH_VAR"
		}
		table.Append(
			r.PlayerID,
			strconv.Itoa(r.Report.Games),
			fmtValue(r.Report.Mean, 2),
			fmtValue(r.Report.Std, 2),
			fmtValue(r.Report.CV, 1),
			fmtValue(r.Report.IQR, 2),
			flag,
		)
	}
	table.Render()
}

// PrintTrend prints the form and regression verdict for one player/metric.
func PrintTrend(w io.Writer, playerID, metric string, tr consistency.Trend) {
	fmt.Fprintf(w, "\nTrend — %s / %s\n\n", playerID, metric)
	table := newTable(w)
	table.Header("GAMES", "SEASON_AVG", "ROLLING_AVG", "DELTA", "DELTA%", "SLOPE", "95% CI", "VERDICT")

	ci := "—"
	if lo, ok := tr.SlopeLo.Get(); ok {
		hi, _ := tr.SlopeHi.Get()
		ci = fmt.Sprintf("%.3f…%.3f", lo, hi)
	}
	table.Append(
		strconv.Itoa(tr.Games),
		fmtValue(tr.SeasonAvg, 2),
		fmtValue(tr.RollingAvg, 2),
		fmtValue(tr.Delta, 2),
		fmtValue(tr.DeltaPct, 1),
		fmtValue(tr.Slope, 3),
		ci,
		string(tr.Label),
	)
	table.Render()
}

// PrintOverview prints the database summary block.
func PrintOverview(w io.Writer, ov storage.Overview) {
	fmt.Fprintf(w, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(w, "  Players     : %d\n", ov.Players)
	fmt.Fprintf(w, "  Teams       : %d\n", ov.Teams)
	fmt.Fprintf(w, "  Game lines  : %d\n", ov.GameLines)
	fmt.Fprintf(w, "  Date range  : %s → %s\n", ov.EarliestDate, ov.LatestDate)
}
