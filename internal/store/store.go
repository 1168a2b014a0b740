//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/sales-metrics/internal/logging"
	"github.com/pgEdge/sales-metrics/pkg/sales"
)

var insertColumns = []string{
	"store", "dept", "date", "weekly_sales", "is_holiday",
	"temperature", "fuel_price", "cpi", "unemployment",
	"markdown1", "markdown2", "markdown3", "markdown4", "markdown5",
}

// Insert bulk-loads records into weekly_sales with COPY.
func Insert(ctx context.Context, pool *pgxpool.Pool, records []sales.Record) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			r.Store, r.Dept, r.Date, r.WeeklySales, r.IsHoliday,
			r.Temperature, r.FuelPrice, r.CPI, r.Unemployment,
			r.Markdown1, r.Markdown2, r.Markdown3, r.Markdown4, r.Markdown5,
		}
	}

	start := time.Now()
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"weekly_sales"},
		insertColumns,
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy weekly_sales: %w", err)
	}

	logging.Info().
		Int64("rows", n).
		Dur("elapsed", time.Since(start)).
		Msg("Loaded weekly_sales")
	return nil
}

// Load reads the full weekly sales relation, ordered by (store, dept,
// date) so repeated loads of the same data produce identical slices.
func Load(ctx context.Context, pool *pgxpool.Pool) ([]sales.Record, error) {
	rows, err := pool.Query(ctx, `
        SELECT store, dept, date, weekly_sales, is_holiday,
               temperature, fuel_price, cpi, unemployment,
               markdown1, markdown2, markdown3, markdown4, markdown5
        FROM weekly_sales
        ORDER BY store, dept, date
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly_sales: %w", err)
	}
	defer rows.Close()

	var records []sales.Record
	for rows.Next() {
		var r sales.Record
		err := rows.Scan(
			&r.Store, &r.Dept, &r.Date, &r.WeeklySales, &r.IsHoliday,
			&r.Temperature, &r.FuelPrice, &r.CPI, &r.Unemployment,
			&r.Markdown1, &r.Markdown2, &r.Markdown3, &r.Markdown4, &r.Markdown5,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly_sales row: %w", err)
		}
		// Dates come back at midnight in the session time zone; pin to
		// UTC so they compare equal to CSV-loaded dates.
		r.Date = time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logging.Info().
		Int("rows", len(records)).
		Msg("Loaded dataset from Postgres")
	return records, nil
}

// CountStores returns the number of distinct stores in the relation.
func CountStores(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `SELECT COUNT(DISTINCT store) FROM weekly_sales`).Scan(&n)
	return n, err
}
