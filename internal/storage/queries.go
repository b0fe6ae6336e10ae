package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// InsertGameRecords bulk-inserts records in a transaction. Re-importing the
// same file is idempotent (INSERT OR REPLACE on the natural key).
func (db *DB) InsertGameRecords(records []model.GameRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games(
			player_id, team_id, opponent_id, game_date, game_index, is_home, minutes,
			points, assists, off_rebounds, def_rebounds, total_rebounds,
			steals, blocks, turnovers, personal_fouls, fouls_drawn,
			fg_made, fg_attempted, fg3_made, fg3_attempted, ft_made, ft_attempted,
			point_diff, plus_minus, pm_per_min, pm_per_min_adj, team_possessions
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		_, err = stmt.Exec(
			r.PlayerID, r.TeamID, r.OpponentID, r.GameDate, r.GameIndex, boolInt(r.IsHome), r.MinutesPlayed,
			r.Points, r.Assists, r.OffRebounds, r.DefRebounds, r.TotalRebounds,
			r.Steals, r.Blocks, r.Turnovers, r.PersonalFouls, r.FoulsDrawn,
			r.FieldGoalsMade, r.FieldGoalsAttempted,
			r.ThreePointersMade, r.ThreePointersAttempted,
			r.FreeThrowsMade, r.FreeThrowsAttempted,
			nullFloat(r.PointDiff), nullFloat(r.PlusMinus),
			nullFloat(r.PlusMinusPerMin), nullFloat(r.PlusMinusPerMinAdj),
			nullFloat(r.TeamPossessions),
		)
		if err != nil {
			return fmt.Errorf("insert game for %s on %s: %w", r.PlayerID, r.GameDate, err)
		}
	}
	return tx.Commit()
}

const gameColumns = `
	player_id, team_id, opponent_id, game_date, game_index, is_home, minutes,
	points, assists, off_rebounds, def_rebounds, total_rebounds,
	steals, blocks, turnovers, personal_fouls, fouls_drawn,
	fg_made, fg_attempted, fg3_made, fg3_attempted, ft_made, ft_attempted,
	point_diff, plus_minus, pm_per_min, pm_per_min_adj, team_possessions`

// GetPlayerLog returns one player's game records in chronological order.
func (db *DB) GetPlayerLog(playerID string) ([]model.GameRecord, error) {
	rows, err := db.conn.Query(
		`SELECT `+gameColumns+` FROM games WHERE player_id = ? ORDER BY game_date, game_index`,
		playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// GetAllLogs returns every stored player's ordered game log.
func (db *DB) GetAllLogs() (map[string][]model.GameRecord, error) {
	rows, err := db.conn.Query(
		`SELECT ` + gameColumns + ` FROM games ORDER BY player_id, game_date, game_index`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	logs := make(map[string][]model.GameRecord)
	for _, r := range records {
		logs[r.PlayerID] = append(logs[r.PlayerID], r)
	}
	return logs, nil
}

// ListPlayers returns stored player ids with team and games played, ordered
// by player id.
type PlayerListing struct {
	PlayerID     string
	TeamID       string
	Games        int
	MinutesTotal float64
}

func (db *DB) ListPlayers() ([]PlayerListing, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, MAX(team_id), COUNT(1), SUM(minutes)
		FROM games GROUP BY player_id ORDER BY player_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlayerListing
	for rows.Next() {
		var p PlayerListing
		if err := rows.Scan(&p.PlayerID, &p.TeamID, &p.Games, &p.MinutesTotal); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Overview is a lightweight summary for the summary command.
type Overview struct {
	Players      int
	Teams        int
	GameLines    int
	EarliestDate string
	LatestDate   string
}

func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(DISTINCT player_id), COUNT(DISTINCT team_id), COUNT(1),
		       COALESCE(MIN(game_date), ''), COALESCE(MAX(game_date), '')
		FROM games`).Scan(&ov.Players, &ov.Teams, &ov.GameLines, &ov.EarliestDate, &ov.LatestDate)
	if err != nil {
		return Overview{}, err
	}
	return ov, nil
}

// DeleteAll removes every stored game line.
func (db *DB) DeleteAll() (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM games`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanRecords(rows *sql.Rows) ([]model.GameRecord, error) {
	var out []model.GameRecord
	for rows.Next() {
		var r model.GameRecord
		var isHome int
		var gap, pm, pmPerMin, pmAdj, poss sql.NullFloat64
		err := rows.Scan(
			&r.PlayerID, &r.TeamID, &r.OpponentID, &r.GameDate, &r.GameIndex, &isHome, &r.MinutesPlayed,
			&r.Points, &r.Assists, &r.OffRebounds, &r.DefRebounds, &r.TotalRebounds,
			&r.Steals, &r.Blocks, &r.Turnovers, &r.PersonalFouls, &r.FoulsDrawn,
			&r.FieldGoalsMade, &r.FieldGoalsAttempted,
			&r.ThreePointersMade, &r.ThreePointersAttempted,
			&r.FreeThrowsMade, &r.FreeThrowsAttempted,
			&gap, &pm, &pmPerMin, &pmAdj, &poss,
		)
		if err != nil {
			return nil, err
		}
		r.IsHome = isHome != 0
		r.PointDiff = fromNull(gap)
		r.PlusMinus = fromNull(pm)
		r.PlusMinusPerMin = fromNull(pmPerMin)
		r.PlusMinusPerMinAdj = fromNull(pmAdj)
		r.TeamPossessions = fromNull(poss)
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullFloat(v model.Value) sql.NullFloat64 {
	if x, ok := v.Get(); ok {
		return sql.NullFloat64{Float64: x, Valid: true}
	}
	return sql.NullFloat64{}
}

func fromNull(n sql.NullFloat64) model.Value {
	if !n.Valid {
		return model.Undef()
	}
	return model.Def(n.Float64)
}
