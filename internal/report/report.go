//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report defines the fixed catalog of business questions answered
// over a weekly sales dataset. Each question is independent: it takes the
// record collection and explicit parameters and produces one ordered
// table. Questions never share state and may run in any order.
package report

import "github.com/pgEdge/sales-metrics/pkg/sales"

// Question families, for listing.
const (
	FamilyFilter      = "filter"
	FamilyAggregate   = "aggregate"
	FamilyRanking     = "ranking"
	FamilyTrend       = "trend"
	FamilyCorrelation = "correlation"
)

// Params carries every knob the catalog accepts. Callers set all of them
// explicitly; there is no hidden configuration.
type Params struct {
	// SalesThreshold is the floor for the high-sales filter (Q1).
	SalesThreshold float64

	// AvgThreshold is the HAVING cutoff for average-sales questions (Q11).
	AvgThreshold float64

	// Year scopes year-bound questions (Q4).
	Year int

	// TopN is the per-partition ranking cutoff (Q12).
	TopN int

	// LowerPercentile and UpperPercentile are the banding points (Q16).
	LowerPercentile float64
	UpperPercentile float64

	// PctPrecision rounds percentage changes (Q14).
	PctPrecision int

	// CorrPrecision rounds correlation coefficients (Q13).
	CorrPrecision int

	// RowLimit caps printed rows for record-level questions (0 = all).
	RowLimit int

	// UnemploymentPrefix is matched against the stringified
	// unemployment rate (Q6).
	UnemploymentPrefix string
}

// Table is an ordered tabular result. Consumers address columns by name
// and rely on row order being exactly what the question specifies.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Question is one catalog entry.
type Question struct {
	// Name is the question identifier, e.g. "q01_high_sales_weeks".
	Name string

	// Description describes what the question answers.
	Description string

	// Family is the operation family the question belongs to.
	Family string

	// Run evaluates the question over records.
	Run func(records []sales.Record, p Params) (*Table, error)
}
