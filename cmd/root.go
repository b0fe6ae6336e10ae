package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/config"
)

var (
	dbPath  string
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "hoopsmetrics",
	Short: "Basketball box-score analytics tool",
	Long:  "Import per-game box scores and compute efficiency metrics, similar players, archetype clusters, and consistency/trend reports.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".hoopsmetrics", "hoops.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (defaults honor $HOOPS_CONFIG)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(dropCmd)
}

// loadConfig resolves thresholds from flag/file/env.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
