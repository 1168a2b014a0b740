//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import "errors"

// Sentinel errors returned by engine operations. Callers match them with
// errors.Is; every returned error wraps one of these with detail.
var (
	// ErrInvalidParameter reports an out-of-range or unknown caller
	// parameter (percentile point, top-N cutoff, field, partition key).
	// Bad parameters are rejected before evaluation, never coerced.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMissingBaseline reports a ratio or correlation whose denominator
	// is zero or absent for the whole computation. Per-row missing
	// baselines (the first week of a partition) are not errors: they
	// surface as nil result values instead.
	ErrMissingBaseline = errors.New("missing baseline")

	// ErrSchemaMismatch reports an input dataset lacking a required
	// column. No partial results are produced.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
