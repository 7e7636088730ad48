package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"evotune"
	"evotune/simulate"
)

// FileConfig is the YAML shape of a run configuration file.
type FileConfig struct {
	Run struct {
		Name           string   `yaml:"name" validate:"required"`
		MaxGenerations int      `yaml:"max_generations" validate:"required,min=1"`
		TargetFitness  *float64 `yaml:"target_fitness,omitempty"`
		StallWindow    int      `yaml:"stall_window" validate:"min=0"`
	} `yaml:"run"`

	Engine struct {
		PopulationSize   int     `yaml:"population_size" validate:"required,min=2"`
		EliteFraction    float64 `yaml:"elite_fraction" validate:"required,gt=0,lte=1"`
		CrossoverRate    float64 `yaml:"crossover_rate" validate:"gte=0,lte=1"`
		MutationRate     float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
		MutationSigma    float64 `yaml:"mutation_sigma" validate:"gte=0"`
		ReevaluateElites bool    `yaml:"reevaluate_elites"`
		Workers          int     `yaml:"workers" validate:"min=0"`
		Seed             int64   `yaml:"seed"`
	} `yaml:"engine"`

	Market struct {
		Periods    int     `yaml:"periods" validate:"min=0"`
		Trials     int     `yaml:"trials" validate:"min=0"`
		Volatility float64 `yaml:"volatility" validate:"gte=0"`
		Seed       int64   `yaml:"seed"`
	} `yaml:"market"`

	Output struct {
		CheckpointPath  string `yaml:"checkpoint_path"`
		CheckpointEvery int    `yaml:"checkpoint_every" validate:"min=0"`
		StorePath       string `yaml:"store_path"`
		DashboardPort   int    `yaml:"dashboard_port" validate:"min=0,max=65535"`
		TUI             bool   `yaml:"tui"`
	} `yaml:"output"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// EngineConfig converts the file config into an engine configuration
// over the strategy parameter space.
func (c *FileConfig) EngineConfig() evotune.Config {
	return evotune.Config{
		PopulationSize:   c.Engine.PopulationSize,
		EliteFraction:    c.Engine.EliteFraction,
		CrossoverRate:    c.Engine.CrossoverRate,
		MutationRate:     c.Engine.MutationRate,
		MutationSigma:    c.Engine.MutationSigma,
		ReevaluateElites: c.Engine.ReevaluateElites,
		EvalWorkers:      c.Engine.Workers,
		Seed:             c.Engine.Seed,
		Bounds:           simulate.StrategyBounds(),
		Invariants:       evotune.DefaultInvariants(),
	}
}

// MarketConfig converts the market section into an evaluator config,
// falling back to defaults for zero fields.
func (c *FileConfig) MarketConfig() simulate.Config {
	mc := simulate.DefaultConfig()
	if c.Market.Periods > 0 {
		mc.Periods = c.Market.Periods
	}
	if c.Market.Trials > 0 {
		mc.Trials = c.Market.Trials
	}
	if c.Market.Volatility > 0 {
		mc.Volatility = c.Market.Volatility
	}
	if c.Market.Seed != 0 {
		mc.Seed = c.Market.Seed
	}
	return mc
}

// RunOptions converts the run section into engine run options.
func (c *FileConfig) RunOptions() evotune.RunOptions {
	return evotune.RunOptions{
		MaxGenerations:   c.Run.MaxGenerations,
		TargetFitness:    c.Run.TargetFitness,
		StallGenerations: c.Run.StallWindow,
	}
}
