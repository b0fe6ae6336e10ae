package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/cluster"
	"github.com/pable/go-hoops-metrics/internal/normalize"
	"github.com/pable/go-hoops-metrics/internal/report"
)

var (
	clusterK       int
	clusterMetrics string
	clusterNorm    string
	clusterPolicy  string
	clusterSeed    int64
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Group eligible players into statistical archetypes with k-means",
	Args:  cobra.NoArgs,
	RunE:  runCluster,
}

func init() {
	clusterCmd.Flags().IntVar(&clusterK, "k", 5, "number of clusters")
	clusterCmd.Flags().StringVar(&clusterMetrics, "metrics", "", "comma-separated metric set (default: core set)")
	clusterCmd.Flags().StringVar(&clusterNorm, "norm", "zscore", "normalization method: zscore, minmax or percentile")
	clusterCmd.Flags().StringVar(&clusterPolicy, "seed-policy", "firstk", "centroid seeding: firstk or shuffle")
	clusterCmd.Flags().Int64Var(&clusterSeed, "seed", 1, "shuffle seed (seed-policy=shuffle only)")
}

func runCluster(cmd *cobra.Command, args []string) error {
	names, err := metricSet(clusterMetrics)
	if err != nil {
		return err
	}
	method, err := normalize.ParseMethod(clusterNorm)
	if err != nil {
		return err
	}

	var policy cluster.SeedPolicy
	switch clusterPolicy {
	case "firstk":
		policy = cluster.SeedFirstK
	case "shuffle":
		policy = cluster.SeedShuffle
	default:
		return fmt.Errorf("unknown seed policy %q (firstk or shuffle)", clusterPolicy)
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

	pop, _, err := eligiblePopulation(db, cfg.MinMinutes, names, method)
	if err != nil {
		return err
	}

	asg, err := cluster.Run(pop, clusterK, cluster.Options{
		MaxIterations: cfg.MaxIterations,
		Policy:        policy,
		Seed:          clusterSeed,
	})
	if err != nil {
		return err
	}
	report.PrintClusters(os.Stdout, asg, names)
	return nil
}
