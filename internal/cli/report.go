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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/sales-metrics/internal/db"
	"github.com/pgEdge/sales-metrics/internal/ingest"
	"github.com/pgEdge/sales-metrics/internal/logging"
	"github.com/pgEdge/sales-metrics/internal/report"
	"github.com/pgEdge/sales-metrics/internal/store"
	"github.com/pgEdge/sales-metrics/pkg/sales"
)

var (
	reportQuestion           string
	reportSalesThreshold     float64
	reportAvgThreshold       float64
	reportYear               int
	reportTopN               int
	reportLowerPercentile    float64
	reportUpperPercentile    float64
	reportPctPrecision       int
	reportCorrPrecision      int
	reportRowLimit           int
	reportUnemploymentPrefix string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run questions from the catalog and print their results",
	Long: `Run one question (--question) or the whole catalog against the
configured dataset and print each result as a table.

Example:
  sales-metrics report --csv sales.csv --question q02_sales_by_store
  sales-metrics report --source postgres --connection "postgres://..."`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportQuestion, "question", "",
		"run a single question by name (see 'questions')")
	reportCmd.Flags().Float64Var(&reportSalesThreshold, "sales-threshold", 0,
		"weekly sales floor for threshold questions")
	reportCmd.Flags().Float64Var(&reportAvgThreshold, "avg-threshold", 0,
		"average sales cutoff for HAVING questions")
	reportCmd.Flags().IntVar(&reportYear, "year", 0,
		"target year for year-bound questions")
	reportCmd.Flags().IntVar(&reportTopN, "top-n", 0,
		"per-partition ranking cutoff")
	reportCmd.Flags().Float64Var(&reportLowerPercentile, "lower-percentile", 0,
		"lower banding point in [0, 1]")
	reportCmd.Flags().Float64Var(&reportUpperPercentile, "upper-percentile", 0,
		"upper banding point in [0, 1]")
	reportCmd.Flags().IntVar(&reportPctPrecision, "pct-precision", -1,
		"decimal places for percentage changes")
	reportCmd.Flags().IntVar(&reportCorrPrecision, "corr-precision", -1,
		"decimal places for correlation coefficients")
	reportCmd.Flags().IntVar(&reportRowLimit, "row-limit", -1,
		"max printed rows for record-level questions (0 = all)")
	reportCmd.Flags().StringVar(&reportUnemploymentPrefix, "unemployment-prefix", "",
		"prefix matched against the unemployment rate")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if reportQuestion != "" {
		cfg.Report.Question = reportQuestion
	}
	if reportSalesThreshold != 0 {
		cfg.Report.SalesThreshold = reportSalesThreshold
	}
	if reportAvgThreshold != 0 {
		cfg.Report.AvgThreshold = reportAvgThreshold
	}
	if reportYear != 0 {
		cfg.Report.Year = reportYear
	}
	if reportTopN != 0 {
		cfg.Report.TopN = reportTopN
	}
	if reportLowerPercentile != 0 {
		cfg.Report.LowerPercentile = reportLowerPercentile
	}
	if reportUpperPercentile != 0 {
		cfg.Report.UpperPercentile = reportUpperPercentile
	}
	if reportPctPrecision >= 0 {
		cfg.Report.PctPrecision = reportPctPrecision
	}
	if reportCorrPrecision >= 0 {
		cfg.Report.CorrPrecision = reportCorrPrecision
	}
	if reportRowLimit >= 0 {
		cfg.Report.RowLimit = reportRowLimit
	}
	if reportUnemploymentPrefix != "" {
		cfg.Report.UnemploymentPrefix = reportUnemploymentPrefix
	}

	// Validate configuration
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	records, err := loadRecords(cmd.Context())
	if err != nil {
		return err
	}
	logging.Info().
		Str("source", cfg.Source).
		Int("rows", len(records)).
		Msg("Dataset loaded")

	questions := report.All()
	if cfg.Report.Question != "" {
		q, err := report.Get(cfg.Report.Question)
		if err != nil {
			return err
		}
		questions = []report.Question{q}
	}

	params := reportParams()
	out := cmd.OutOrStdout()
	for i, q := range questions {
		tbl, err := q.Run(records, params)
		if err != nil {
			return fmt.Errorf("%s: %w", q.Name, err)
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := report.Render(out, q, tbl); err != nil {
			return err
		}
	}
	return nil
}

func reportParams() report.Params {
	return report.Params{
		SalesThreshold:     cfg.Report.SalesThreshold,
		AvgThreshold:       cfg.Report.AvgThreshold,
		Year:               cfg.Report.Year,
		TopN:               cfg.Report.TopN,
		LowerPercentile:    cfg.Report.LowerPercentile,
		UpperPercentile:    cfg.Report.UpperPercentile,
		PctPrecision:       cfg.Report.PctPrecision,
		CorrPrecision:      cfg.Report.CorrPrecision,
		RowLimit:           cfg.Report.RowLimit,
		UnemploymentPrefix: cfg.Report.UnemploymentPrefix,
	}
}

// loadRecords reads the full dataset from the configured source.
func loadRecords(ctx context.Context) ([]sales.Record, error) {
	switch cfg.Source {
	case "csv":
		records, err := ingest.ReadFile(cfg.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", cfg.CSVPath, err)
		}
		return records, nil

	case "postgres":
		pool, err := db.Connect(ctx, cfg.Connection)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		info, err := db.GetDatasetInfo(ctx, pool)
		if err != nil {
			return nil, fmt.Errorf("database has no seeded dataset (run 'sales-metrics seed' first): %w", err)
		}
		logging.Info().
			Str("dataset_id", info.DatasetID).
			Int("rows", info.Rows).
			Msg("Reading seeded dataset")

		return store.Load(ctx, pool)

	default:
		return nil, fmt.Errorf("unknown source: %s", cfg.Source)
	}
}
