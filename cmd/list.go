package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored players",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	players, err := db.ListPlayers()
	if err != nil {
		return fmt.Errorf("query players: %w", err)
	}
	if len(players) == 0 {
		fmt.Println("no players stored yet; run 'hoopsmetrics import <boxscores.csv>' first")
		return nil
	}
	report.PrintPlayerList(os.Stdout, players)
	return nil
}
