package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/consistency"
	"github.com/pable/go-hoops-metrics/internal/metrics"
	"github.com/pable/go-hoops-metrics/internal/report"
)

var consistencyCmd = &cobra.Command{
	Use:   "consistency <metric>",
	Short: "Rank players by game-to-game variability of one metric",
	Args:  cobra.ExactArgs(1),
	RunE:  runConsistency,
}

func runConsistency(cmd *cobra.Command, args []string) error {
	metric := args[0]
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

	logs, err := db.GetAllLogs()
	if err != nil {
		return fmt.Errorf("query game logs: %w", err)
	}
	opts := consistency.Options{
		CVThreshold: cfg.CVThreshold,
		MinGames:    cfg.ConsistencyMinGames,
	}

	var rows []report.ConsistencyRow
	for playerID, log := range logs {
		series, err := metrics.GameSeries(log, metric)
		if err != nil {
			return err
		}
		rep := consistency.Compute(series, opts)
		if !rep.Defined {
			continue
		}
		rows = append(rows, report.ConsistencyRow{PlayerID: playerID, Report: rep})
	}
	if len(rows) == 0 {
		fmt.Printf("no player has %d defined games of %s yet\n", opts.MinGames, metric)
		return nil
	}

	// Most volatile first; undefined CV (zero-mean series) sorts last.
	sort.Slice(rows, func(i, j int) bool {
		ci, iok := rows[i].Report.CV.Get()
		cj, jok := rows[j].Report.CV.Get()
		if iok != jok {
			return iok
		}
		if ci != cj {
			return ci > cj
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})

	report.PrintConsistency(os.Stdout, metric, rows)
	return nil
}
