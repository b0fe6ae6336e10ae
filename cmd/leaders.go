package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/eligibility"
	"github.com/pable/go-hoops-metrics/internal/metrics"
	"github.com/pable/go-hoops-metrics/internal/report"
)

var leadersTop int

var leadersCmd = &cobra.Command{
	Use:   "leaders <metric>",
	Short: "Rank eligible players by one season metric",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeaders,
}

func init() {
	leadersCmd.Flags().IntVar(&leadersTop, "top", 10, "number of players to show")
}

func runLeaders(cmd *cobra.Command, args []string) error {
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

	aggs, err := loadAggregates(db)
	if err != nil {
		return err
	}
	eligible, validity, err := eligibility.Filter(aggs, cfg.MinMinutes, []string{metric})
	if err != nil {
		return err
	}

	rows := make([]report.LeaderRow, 0, len(eligible))
	for _, a := range eligible {
		if !validity.Valid(a.PlayerID, metric) {
			continue
		}
		mv, err := metrics.Compute(a, []string{metric})
		if err != nil {
			return err
		}
		v := mv.Get(metric)
		if !v.Defined() {
			continue
		}
		rows = append(rows, report.LeaderRow{
			PlayerID: a.PlayerID,
			TeamID:   a.TeamID,
			Games:    a.Games,
			Minutes:  a.MinutesTotal,
			Value:    v,
		})
	}
	if len(rows) == 0 {
		fmt.Printf("no eligible players for %s (min minutes %.0f)\n", metric, cfg.MinMinutes)
		return nil
	}

	sort.Slice(rows, func(i, j int) bool {
		vi, _ := rows[i].Value.Get()
		vj, _ := rows[j].Value.Get()
		if vi != vj {
			return vi > vj
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	if leadersTop > 0 && len(rows) > leadersTop {
		rows = rows[:leadersTop]
	}

	report.PrintLeaders(os.Stdout, metric, rows)
	return nil
}
