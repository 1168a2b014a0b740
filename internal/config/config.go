//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for sales-metrics.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for sales-metrics.
type Config struct {
	// Source is where the dataset comes from: "csv" or "postgres".
	Source string `mapstructure:"source"`

	// CSVPath is the weekly sales CSV file (source=csv).
	CSVPath string `mapstructure:"csv_path"`

	// Connection is the PostgreSQL connection string (source=postgres).
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// ReportConfig parameterizes the question catalog. Every knob a question
// accepts lives here; nothing is hidden inside the engine.
type ReportConfig struct {
	// Question runs a single catalog entry by name; empty runs them all.
	Question string `mapstructure:"question"`

	// SalesThreshold is the weekly sales floor for the high-sales filter.
	SalesThreshold float64 `mapstructure:"sales_threshold"`

	// AvgThreshold is the HAVING cutoff for average-sales questions.
	AvgThreshold float64 `mapstructure:"avg_threshold"`

	// Year selects the calendar year for year-scoped questions.
	Year int `mapstructure:"year"`

	// TopN is the per-partition ranking cutoff.
	TopN int `mapstructure:"top_n"`

	// LowerPercentile and UpperPercentile are the banding points (0..1).
	LowerPercentile float64 `mapstructure:"lower_percentile"`
	UpperPercentile float64 `mapstructure:"upper_percentile"`

	// PctPrecision is the rounding precision for percentage changes.
	PctPrecision int `mapstructure:"pct_precision"`

	// CorrPrecision is the rounding precision for correlations.
	CorrPrecision int `mapstructure:"corr_precision"`

	// RowLimit caps the rows printed per filter question (0 = all).
	RowLimit int `mapstructure:"row_limit"`

	// UnemploymentPrefix is the text prefix matched against the
	// stringified unemployment rate.
	UnemploymentPrefix string `mapstructure:"unemployment_prefix"`
}

// SeedConfig holds configuration for synthetic dataset generation.
type SeedConfig struct {
	// Stores, Depts and Weeks size the generated panel.
	Stores int `mapstructure:"stores"`
	Depts  int `mapstructure:"depts"`
	Weeks  int `mapstructure:"weeks"`

	// StartDate is the first weekly observation date (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// Seed fixes the random seed for reproducible datasets (0 = random).
	Seed uint64 `mapstructure:"seed"`

	// Out writes the dataset to a CSV file instead of Postgres.
	Out string `mapstructure:"out"`

	// DropExisting drops an existing weekly_sales schema before loading.
	DropExisting bool `mapstructure:"drop_existing"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Source:   "csv",
		LogLevel: "info",
		Report: ReportConfig{
			SalesThreshold:     150000,
			AvgThreshold:       20000,
			Year:               2012,
			TopN:               3,
			LowerPercentile:    0.1,
			UpperPercentile:    0.9,
			PctPrecision:       2,
			CorrPrecision:      4,
			RowLimit:           10,
			UnemploymentPrefix: "8",
		},
		Seed: SeedConfig{
			Stores:    5,
			Depts:     10,
			Weeks:     52,
			StartDate: "2011-01-07",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./sales-metrics.yaml
// 3. ~/.config/sales-metrics/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("sales-metrics")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "sales-metrics"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration shared by all dataset-reading commands.
func (c *Config) Validate() error {
	switch c.Source {
	case "csv":
		if c.CSVPath == "" {
			return fmt.Errorf("csv_path is required when source is csv")
		}
	case "postgres":
		if c.Connection == "" {
			return fmt.Errorf("connection string is required when source is postgres")
		}
	default:
		return fmt.Errorf("source must be 'csv' or 'postgres', got %q", c.Source)
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	r := c.Report
	if r.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1")
	}
	if r.LowerPercentile < 0 || r.UpperPercentile > 1 || r.LowerPercentile >= r.UpperPercentile {
		return fmt.Errorf("percentile points must satisfy 0 <= lower < upper <= 1")
	}
	if r.PctPrecision < 0 || r.CorrPrecision < 0 {
		return fmt.Errorf("rounding precision must be non-negative")
	}
	if r.RowLimit < 0 {
		return fmt.Errorf("row_limit must be non-negative")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	s := c.Seed
	if s.Stores < 1 || s.Depts < 1 || s.Weeks < 1 {
		return fmt.Errorf("stores, depts and weeks must all be at least 1")
	}
	if s.Out == "" && c.Connection == "" {
		return fmt.Errorf("either an output CSV path or a connection string is required for seed")
	}
	return nil
}
