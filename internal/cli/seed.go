//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/sales-metrics/internal/datagen"
	"github.com/pgEdge/sales-metrics/internal/db"
	"github.com/pgEdge/sales-metrics/internal/ingest"
	"github.com/pgEdge/sales-metrics/internal/logging"
	"github.com/pgEdge/sales-metrics/internal/store"
)

var (
	seedStores       int
	seedDepts        int
	seedWeeks        int
	seedStartDate    string
	seedSeed         uint64
	seedOut          string
	seedDropExisting bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic weekly sales dataset",
	Long: `Generate a synthetic weekly sales panel and load it into PostgreSQL,
or write it to a CSV file with --out. The same --seed always produces
the same panel.

Example:
  sales-metrics seed --stores 10 --weeks 104 --connection "postgres://..."
  sales-metrics seed --seed 42 --out sales.csv`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedStores, "stores", 0,
		"number of stores")
	seedCmd.Flags().IntVar(&seedDepts, "depts", 0,
		"number of departments per store")
	seedCmd.Flags().IntVar(&seedWeeks, "weeks", 0,
		"number of weekly observations")
	seedCmd.Flags().StringVar(&seedStartDate, "start-date", "",
		"first observation date (YYYY-MM-DD)")
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 0,
		"random seed (0 = random)")
	seedCmd.Flags().StringVar(&seedOut, "out", "",
		"write the panel to this CSV file instead of PostgreSQL")
	seedCmd.Flags().BoolVar(&seedDropExisting, "drop-existing", false,
		"drop an existing weekly_sales schema before loading")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedStores > 0 {
		cfg.Seed.Stores = seedStores
	}
	if seedDepts > 0 {
		cfg.Seed.Depts = seedDepts
	}
	if seedWeeks > 0 {
		cfg.Seed.Weeks = seedWeeks
	}
	if seedStartDate != "" {
		cfg.Seed.StartDate = seedStartDate
	}
	if seedSeed != 0 {
		cfg.Seed.Seed = seedSeed
	}
	if seedOut != "" {
		cfg.Seed.Out = seedOut
	}
	if seedDropExisting {
		cfg.Seed.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", cfg.Seed.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	logging.Info().
		Int("stores", cfg.Seed.Stores).
		Int("depts", cfg.Seed.Depts).
		Int("weeks", cfg.Seed.Weeks).
		Msg("Generating weekly sales panel")

	records := datagen.WeeklySalesPanel(datagen.PanelConfig{
		Stores: cfg.Seed.Stores,
		Depts:  cfg.Seed.Depts,
		Weeks:  cfg.Seed.Weeks,
		Start:  start,
		Seed:   cfg.Seed.Seed,
	})

	if cfg.Seed.Out != "" {
		if err := ingest.WriteFile(cfg.Seed.Out, records); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.Seed.Out, err)
		}
		logging.Info().
			Str("path", cfg.Seed.Out).
			Int("rows", len(records)).
			Msg("Panel written")
		return nil
	}

	ctx := cmd.Context()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Seed.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := store.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := store.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := store.Insert(ctx, pool, records); err != nil {
		return fmt.Errorf("failed to load panel: %w", err)
	}

	datasetID, err := db.SaveDatasetInfo(ctx, pool, len(records), cfg.Seed.Stores)
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("dataset_id", datasetID).
		Int("rows", len(records)).
		Msg("Database seed complete")

	return nil
}
