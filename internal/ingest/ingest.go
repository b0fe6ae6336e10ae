// Package ingest parses league box-score CSV exports into GameRecords.
//
// The expected layout is one row per player per game:
//
//	player,team,opponent,date,home,min,pts,ast,oreb,dreb,stl,blk,tov,pf,fd,fg2,fg3,ft,gap,plus_minus,possessions
//
// fg2, fg3 and ft carry "made/attempted" pairs (e.g. "5/10"). gap, plus_minus
// and possessions are optional; possessions is the team possession count that
// enables USG%. Empty cells are missing values, which stay distinct from zero
// all the way through the pipeline. Column order is free; the header row
// decides.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// pmPerMinCap flags scorekeeping glitches: a legitimate per-minute
// plus/minus never exceeds this magnitude, so larger readings are dropped to
// missing rather than poisoning the adjusted series.
const pmPerMinCap = 10.0

var required = []string{
	"player", "team", "opponent", "date", "home", "min",
	"pts", "ast", "oreb", "dreb", "stl", "blk", "tov", "pf", "fd",
	"fg2", "fg3", "ft",
}

// ReadRecords parses a box-score CSV stream. Rows are returned in file
// order; GameIndex is assigned per player in that order.
func ReadRecords(r io.Reader) ([]model.GameRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var records []model.GameRecord
	gameIdx := make(map[string]int)
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.GameIndex = gameIdx[rec.PlayerID]
		gameIdx[rec.PlayerID]++
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, col map[string]int) (model.GameRecord, error) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := model.GameRecord{
		PlayerID:   get("player"),
		TeamID:     get("team"),
		OpponentID: get("opponent"),
		GameDate:   get("date"),
	}
	switch strings.ToLower(get("home")) {
	case "1", "true", "h", "home", "yes":
		rec.IsHome = true
	}

	var err error
	if rec.MinutesPlayed, err = parseMinutes(get("min")); err != nil {
		return rec, err
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"pts", &rec.Points}, {"ast", &rec.Assists},
		{"oreb", &rec.OffRebounds}, {"dreb", &rec.DefRebounds},
		{"stl", &rec.Steals}, {"blk", &rec.Blocks},
		{"tov", &rec.Turnovers}, {"pf", &rec.PersonalFouls}, {"fd", &rec.FoulsDrawn},
	}
	for _, f := range ints {
		if *f.dst, err = parseCount(get(f.name)); err != nil {
			return rec, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	rec.TotalRebounds = rec.OffRebounds + rec.DefRebounds

	fg2m, fg2a, err := parseShot(get("fg2"))
	if err != nil {
		return rec, fmt.Errorf("fg2: %w", err)
	}
	fg3m, fg3a, err := parseShot(get("fg3"))
	if err != nil {
		return rec, fmt.Errorf("fg3: %w", err)
	}
	ftm, fta, err := parseShot(get("ft"))
	if err != nil {
		return rec, fmt.Errorf("ft: %w", err)
	}
	rec.FieldGoalsMade = fg2m + fg3m
	rec.FieldGoalsAttempted = fg2a + fg3a
	rec.ThreePointersMade = fg3m
	rec.ThreePointersAttempted = fg3a
	rec.FreeThrowsMade = ftm
	rec.FreeThrowsAttempted = fta

	rec.PointDiff = parseOptional(get("gap"))
	rec.PlusMinus = parseOptional(get("plus_minus"))
	derivePlusMinus(&rec)

	rec.TeamPossessions = parseOptional(get("possessions"))
	return rec, nil
}

// derivePlusMinus fills the per-minute plus/minus columns, dropping readings
// beyond pmPerMinCap and pace-adjusting against the game gap.
func derivePlusMinus(rec *model.GameRecord) {
	pm, ok := rec.PlusMinus.Get()
	if !ok || rec.MinutesPlayed == 0 {
		return
	}
	perMin := pm / rec.MinutesPlayed
	if math.Abs(perMin) > pmPerMinCap {
		return
	}
	rec.PlusMinusPerMin = model.Def(perMin)

	gap, ok := rec.PointDiff.Get()
	if !ok {
		return
	}
	// Gap per minute uses regulation length; overtime games drift slightly
	// but the adjustment stays comparable across the league.
	const gameMinutes = 40.0
	rec.PlusMinusPerMinAdj = model.Def(perMin - gap/gameMinutes)
}

// parseMinutes accepts decimal minutes ("31.5") or MM:SS ("31:30").
func parseMinutes(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("minutes column empty")
	}
	if mm, ss, ok := strings.Cut(s, ":"); ok {
		m, err := strconv.Atoi(mm)
		if err != nil {
			return 0, fmt.Errorf("bad minutes %q", s)
		}
		sec, err := strconv.Atoi(ss)
		if err != nil || sec < 0 || sec >= 60 {
			return 0, fmt.Errorf("bad minutes %q", s)
		}
		return float64(m) + float64(sec)/60, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad minutes %q", s)
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad count %q", s)
	}
	return v, nil
}

// parseShot splits a "made/attempted" cell.
func parseShot(s string) (made, attempted int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	m, a, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("expected made/attempted, got %q", s)
	}
	if made, err = strconv.Atoi(strings.TrimSpace(m)); err != nil {
		return 0, 0, fmt.Errorf("bad made count %q", s)
	}
	if attempted, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, fmt.Errorf("bad attempt count %q", s)
	}
	if made > attempted {
		return 0, 0, fmt.Errorf("made %d > attempted %d", made, attempted)
	}
	return made, attempted, nil
}

// parseOptional reads a float cell that may legitimately be empty.
func parseOptional(s string) model.Value {
	if s == "" {
		return model.Undef()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Undef()
	}
	return model.Def(v)
}
