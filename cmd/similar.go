package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/metrics"
	"github.com/pable/go-hoops-metrics/internal/normalize"
	"github.com/pable/go-hoops-metrics/internal/report"
	"github.com/pable/go-hoops-metrics/internal/similarity"
)

var (
	similarMetrics  string
	similarDistance string
	similarNorm     string
	similarN        int
)

var similarCmd = &cobra.Command{
	Use:   "similar <player-id>",
	Short: "Find the players with the closest statistical profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().StringVar(&similarMetrics, "metrics", "", "comma-separated metric set (default: core set)")
	similarCmd.Flags().StringVar(&similarDistance, "distance", "euclidean", "distance kind: euclidean or cosine")
	similarCmd.Flags().StringVar(&similarNorm, "norm", "zscore", "normalization method: zscore, minmax or percentile")
	similarCmd.Flags().IntVar(&similarN, "n", 0, "neighbors to return (default from config)")
}

// metricSet resolves a comma-separated metric list, defaulting to the core set.
func metricSet(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return metrics.CoreNames(), nil
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := metrics.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown metric %q (see: %v)", name, metrics.Names())
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("empty metric set")
	}
	return names, nil
}

func runSimilar(cmd *cobra.Command, args []string) error {
	queryID := args[0]

	names, err := metricSet(similarMetrics)
	if err != nil {
		return err
	}
	kind, err := similarity.ParseKind(similarDistance)
	if err != nil {
		return err
	}
	method, err := normalize.ParseMethod(similarNorm)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	n := similarN
	if n <= 0 {
		n = cfg.Neighbors
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	pop, _, err := eligiblePopulation(db, cfg.MinMinutes, names, method)
	if err != nil {
		return err
	}

	var query *normalize.Vector
	for i := range pop {
		if pop[i].PlayerID == queryID {
			query = &pop[i]
			break
		}
	}
	if query == nil {
		return fmt.Errorf("player %q is not in the eligible population (min minutes %.0f)", queryID, cfg.MinMinutes)
	}

	res, err := similarity.NearestNeighbors(*query, pop, kind, n, cfg.MinSharedDims)
	if err != nil {
		return err
	}
	report.PrintSimilarity(os.Stdout, res)
	return nil
}
