package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pable/go-hoops-metrics/internal/eligibility"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/normalize"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

// openDB creates the parent directory and opens the store.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

// loadAggregates rebuilds every stored player's season aggregate.
func loadAggregates(db *storage.DB) ([]*model.PlayerSeasonAggregate, error) {
	logs, err := db.GetAllLogs()
	if err != nil {
		return nil, fmt.Errorf("query game logs: %w", err)
	}
	aggs := make([]*model.PlayerSeasonAggregate, 0, len(logs))
	for playerID, log := range logs {
		a, err := model.NewSeasonAggregate(playerID, log)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", playerID, err)
		}
		aggs = append(aggs, a)
	}
	return aggs, nil
}

// eligiblePopulation runs the standard pipeline front: eligibility filter,
// metric vectors, normalization.
func eligiblePopulation(db *storage.DB, minMinutes float64, metricNames []string, method normalize.Method) ([]normalize.Vector, normalize.PopulationStats, error) {
	aggs, err := loadAggregates(db)
	if err != nil {
		return nil, normalize.PopulationStats{}, err
	}
	eligible, _, err := eligibility.Filter(aggs, minMinutes, metricNames)
	if err != nil {
		return nil, normalize.PopulationStats{}, err
	}
	vectors, err := eligibility.Vectors(eligible, metricNames)
	if err != nil {
		return nil, normalize.PopulationStats{}, err
	}
	normalized, stats, err := normalize.Run(vectors, method, normalize.Options{})
	if err != nil {
		return nil, normalize.PopulationStats{}, err
	}
	return normalized, stats, nil
}
