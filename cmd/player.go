package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/metrics"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/report"
)

var playerCmd = &cobra.Command{
	Use:   "player <player-id>",
	Short: "Show a player's season card: totals, derived metrics, home/away split",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	playerID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	log, err := db.GetPlayerLog(playerID)
	if err != nil {
		return fmt.Errorf("query game log: %w", err)
	}
	if len(log) == 0 {
		return fmt.Errorf("no games stored for player %q", playerID)
	}

	agg, err := model.NewSeasonAggregate(playerID, log)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", playerID, err)
	}
	mv, err := metrics.Compute(agg, metrics.Names())
	if err != nil {
		return err
	}
	split := metrics.Split(playerID, log, cfg.SplitMinGames)

	report.PrintPlayerCard(os.Stdout, agg, mv, split)
	return nil
}
