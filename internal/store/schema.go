//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store persists and loads the weekly sales relation in
// PostgreSQL.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the weekly sales relation. One row per store, department
// and weekly observation date; the markdown columns are nullable by
// design (NULL = no markdown event that week).
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS weekly_sales (
    store        INTEGER       NOT NULL,
    dept         INTEGER       NOT NULL,
    date         DATE          NOT NULL,
    weekly_sales NUMERIC(12,2) NOT NULL,
    is_holiday   BOOLEAN       NOT NULL,
    temperature  NUMERIC(6,2)  NOT NULL,
    fuel_price   NUMERIC(6,3)  NOT NULL,
    cpi          NUMERIC(10,4) NOT NULL,
    unemployment NUMERIC(6,3)  NOT NULL,
    markdown1    NUMERIC(12,2),
    markdown2    NUMERIC(12,2),
    markdown3    NUMERIC(12,2),
    markdown4    NUMERIC(12,2),
    markdown5    NUMERIC(12,2),
    PRIMARY KEY (store, dept, date)
);

CREATE INDEX IF NOT EXISTS idx_weekly_sales_date ON weekly_sales(date);
CREATE INDEX IF NOT EXISTS idx_weekly_sales_dept ON weekly_sales(dept);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS weekly_sales CASCADE;
`

// CreateSchema creates the weekly sales table and its indexes.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the weekly sales table.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
