//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for sales-metrics.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/sales-metrics/internal/config"
	"github.com/pgEdge/sales-metrics/internal/logging"
	"github.com/pgEdge/sales-metrics/internal/report"
	"github.com/pgEdge/sales-metrics/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	source     string
	csvPath    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "sales-metrics",
		Short: "Business-question reports over weekly store sales data",
		Long: `sales-metrics answers a fixed catalog of business questions over a
weekly store/department sales dataset: threshold filters, per-group
aggregates, rankings and percentile bands, running totals and
week-over-week trends, and sales-driver correlations.

The dataset can come from a CSV file or from a PostgreSQL database
previously populated with 'sales-metrics seed'.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./sales-metrics.yaml)")
	rootCmd.PersistentFlags().StringVar(&source, "source", "",
		"dataset source (csv, postgres)")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "",
		"path to the weekly sales CSV file")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seedCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if source != "" {
		cfg.Source = source
	}
	if csvPath != "" {
		cfg.CSVPath = csvPath
	}
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the question catalog",
	Long: `List every question in the report catalog with its operation family.
Run a single question with 'sales-metrics report --question <name>'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available questions:")
		cmd.Println()
		for _, q := range report.All() {
			cmd.Println(fmt.Sprintf("  %-28s %-12s %s", q.Name, q.Family, q.Description))
		}
		cmd.Println()
		cmd.Println("Use 'sales-metrics report' to run all of them.")
	},
}
