package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/consistency"
	"github.com/pable/go-hoops-metrics/internal/metrics"
	"github.com/pable/go-hoops-metrics/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <player-id> <metric>",
	Short: "Show whether a player's recent form beats their season baseline",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	playerID, metric := args[0], args[1]
	if _, ok := metrics.Lookup(metric); !ok {
		return fmt.Errorf("unknown metric %q (see: %v)", metric, metrics.Names())
	}

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

	series, err := metrics.GameSeries(log, metric)
	if err != nil {
		return err
	}
	tr := consistency.ComputeTrend(series, consistency.TrendOptions{
		Window:   cfg.TrendWindow,
		MinGames: cfg.TrendMinGames,
	})

	report.PrintTrend(os.Stdout, playerID, metric, tr)
	return nil
}
