//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"fmt"
	"math"
)

// Correlation computes the Pearson correlation coefficient between fields
// x and y across the full collection, rounded to precision decimal places
// for display stability. Rows where either field is null are skipped
// (pairwise deletion, matching SQL corr()). Fewer than two usable rows or
// a zero-variance operand fail with ErrMissingBaseline.
func Correlation(records []Record, x, y Field, precision int) (float64, error) {
	if !x.valid() {
		return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, x)
	}
	if !y.valid() {
		return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, y)
	}
	if precision < 0 {
		return 0, fmt.Errorf("%w: negative rounding precision %d", ErrInvalidParameter, precision)
	}

	var n float64
	var sumX, sumY, sumXX, sumYY, sumXY float64
	for _, r := range records {
		vx, okX := r.value(x)
		vy, okY := r.value(y)
		if !okX || !okY {
			continue
		}
		n++
		sumX += vx
		sumY += vy
		sumXX += vx * vx
		sumYY += vy * vy
		sumXY += vx * vy
	}
	if n < 2 {
		return 0, fmt.Errorf("%w: correlation needs at least two rows with both %s and %s",
			ErrMissingBaseline, x, y)
	}

	varX := n*sumXX - sumX*sumX
	varY := n*sumYY - sumY*sumY
	if varX <= 0 || varY <= 0 {
		return 0, fmt.Errorf("%w: zero variance in %s or %s", ErrMissingBaseline, x, y)
	}

	r := (n*sumXY - sumX*sumY) / math.Sqrt(varX*varY)
	return roundTo(r, precision), nil
}
