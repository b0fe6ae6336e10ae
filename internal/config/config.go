// Package config holds the analysis thresholds and loads overrides from an
// optional YAML file and HOOPS_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrInvalidConfig marks a configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config carries every tunable analysis threshold.
type Config struct {
	// MinMinutes gates players out of cross-player comparison.
	MinMinutes float64 `koanf:"min_minutes"`

	// Neighbors is the default nearest-neighbor count.
	Neighbors int `koanf:"neighbors"`

	// MinSharedDims is the minimum defined-in-both dimensions for a pair to
	// be comparable.
	MinSharedDims int `koanf:"min_shared_dims"`

	// MaxIterations bounds the clustering assign/update loop.
	MaxIterations int `koanf:"max_iterations"`

	// CVThreshold is the high-variance cutoff, in percent.
	CVThreshold float64 `koanf:"cv_threshold"`

	// ConsistencyMinGames is the minimum defined games for a consistency
	// report.
	ConsistencyMinGames int `koanf:"consistency_min_games"`

	// TrendWindow is the rolling-form window, in games.
	TrendWindow int `koanf:"trend_window"`

	// TrendMinGames is the minimum defined games for a trend verdict.
	TrendMinGames int `koanf:"trend_min_games"`

	// SplitMinGames is the minimum games per venue side for home/away splits.
	SplitMinGames int `koanf:"split_min_games"`
}

// Default returns the standard thresholds.
func Default() Config {
	return Config{
		MinMinutes:          100,
		Neighbors:           5,
		MinSharedDims:       3,
		MaxIterations:       100,
		CVThreshold:         50,
		ConsistencyMinGames: 5,
		TrendWindow:         5,
		TrendMinGames:       10,
		SplitMinGames:       3,
	}
}

// Load layers defaults, an optional YAML file, and env vars.
// Precedence (low -> high):
//  1. Default()
//  2. file (YAML): the path argument, or $HOOPS_CONFIG when path is empty
//  3. env vars with prefix HOOPS_ (HOOPS_MIN_MINUTES, HOOPS_TREND_WINDOW, ...)
func Load(path string) (Config, error) {
	cfg := Default()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("HOOPS_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("HOOPS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "hoops_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects thresholds no analysis could run under.
func (c Config) Validate() error {
	switch {
	case c.MinMinutes < 0:
		return fmt.Errorf("%w: min_minutes must be >= 0", ErrInvalidConfig)
	case c.Neighbors < 1:
		return fmt.Errorf("%w: neighbors must be >= 1", ErrInvalidConfig)
	case c.MinSharedDims < 1:
		return fmt.Errorf("%w: min_shared_dims must be >= 1", ErrInvalidConfig)
	case c.MaxIterations < 1:
		return fmt.Errorf("%w: max_iterations must be >= 1", ErrInvalidConfig)
	case c.CVThreshold <= 0:
		return fmt.Errorf("%w: cv_threshold must be > 0", ErrInvalidConfig)
	case c.ConsistencyMinGames < 2:
		return fmt.Errorf("%w: consistency_min_games must be >= 2", ErrInvalidConfig)
	case c.TrendWindow < 1:
		return fmt.Errorf("%w: trend_window must be >= 1", ErrInvalidConfig)
	case c.TrendMinGames < 3:
		return fmt.Errorf("%w: trend_min_games must be >= 3", ErrInvalidConfig)
	case c.SplitMinGames < 1:
		return fmt.Errorf("%w: split_min_games must be >= 1", ErrInvalidConfig)
	}
	return nil
}
