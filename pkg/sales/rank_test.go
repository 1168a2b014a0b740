//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pgEdge/sales-metrics/pkg/sales"
)

func TestAboveAverage(t *testing.T) {
	recs := fixture()

	groups, err := sales.AboveAverage(recs, sales.ByStore, sales.FieldWeeklySales)
	require.NoError(t, err)

	// Store 2 sells roughly double store 1, so only it clears the overall mean.
	require.Len(t, groups, 1)
	require.Equal(t, 2, groups[0].Key.Store)

	baseline, err := sales.OverallAverage(recs, sales.FieldWeeklySales)
	require.NoError(t, err)
	for _, g := range groups {
		require.Greater(t, g.Value, baseline)
	}
}

func TestTopNPerPartitionBounds(t *testing.T) {
	recs := fixture()
	const n = 2

	ranked, err := sales.TopNPerPartition(recs, sales.ByDept, sales.FieldWeeklySales, n)
	require.NoError(t, err)

	perDept := make(map[int][]sales.RankedRecord)
	for _, rr := range ranked {
		perDept[rr.Dept] = append(perDept[rr.Dept], rr)
	}
	require.Len(t, perDept, 2)

	for dept, rows := range perDept {
		require.LessOrEqual(t, len(rows), n)
		for i, rr := range rows {
			require.Equal(t, i+1, rr.Rank)
		}
		// Every returned row's metric >= every excluded row's metric.
		minIncluded := rows[len(rows)-1].WeeklySales
		included := make(map[sales.Key]bool, len(rows))
		for _, rr := range rows {
			included[rr.Record.Key()] = true
		}
		for _, r := range recs {
			if r.Dept == dept && !included[r.Key()] {
				require.GreaterOrEqual(t, minIncluded, r.WeeklySales)
			}
		}
	}
}

func TestTopNTieBreakIsDeterministic(t *testing.T) {
	d1 := date(2012, time.June, 1)
	d2 := date(2012, time.June, 8)
	recs := []sales.Record{
		{Store: 1, Dept: 1, Date: d2, WeeklySales: 500},
		{Store: 1, Dept: 1, Date: d1, WeeklySales: 500},
		{Store: 1, Dept: 1, Date: date(2012, time.June, 15), WeeklySales: 300},
	}

	ranked, err := sales.TopNPerPartition(recs, sales.ByStore, sales.FieldWeeklySales, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// Tied values order by date ascending; ranks stay strictly increasing.
	require.Equal(t, d1, ranked[0].Date)
	require.Equal(t, 1, ranked[0].Rank)
	require.Equal(t, d2, ranked[1].Date)
	require.Equal(t, 2, ranked[1].Rank)
}

func TestTopNRejectsNonPositiveN(t *testing.T) {
	recs := fixture()

	_, err := sales.TopNPerPartition(recs, sales.ByStore, sales.FieldWeeklySales, 0)
	require.ErrorIs(t, err, sales.ErrInvalidParameter)

	_, err = sales.TopNPerPartition(recs, sales.ByStore, sales.FieldWeeklySales, -3)
	require.ErrorIs(t, err, sales.ErrInvalidParameter)
}

func TestPercentileInterpolates(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	p10, err := sales.Percentile(values, 0.1)
	require.NoError(t, err)
	require.InDelta(t, 19, p10, 1e-9) // pos 0.9 between 10 and 20

	p90, err := sales.Percentile(values, 0.9)
	require.NoError(t, err)
	require.InDelta(t, 91, p90, 1e-9)

	p0, err := sales.Percentile(values, 0)
	require.NoError(t, err)
	require.InDelta(t, 10, p0, 1e-9)

	p100, err := sales.Percentile(values, 1)
	require.NoError(t, err)
	require.InDelta(t, 100, p100, 1e-9)

	_, err = sales.Percentile(values, 1.5)
	require.ErrorIs(t, err, sales.ErrInvalidParameter)
	_, err = sales.Percentile(nil, 0.5)
	require.ErrorIs(t, err, sales.ErrInvalidParameter)
}

func TestPercentileBand(t *testing.T) {
	d := date(2012, time.July, 6)
	var recs []sales.Record
	for i := 1; i <= 10; i++ {
		recs = append(recs, sales.Record{
			Store: 1, Dept: i, Date: d, WeeklySales: float64(i * 10),
		})
	}

	banded, err := sales.PercentileBand(recs, 0.1, 0.9)
	require.NoError(t, err)
	require.Len(t, banded, len(recs))

	// Minimum lands in the bottom decile, maximum in the top decile.
	require.Equal(t, sales.BandBottom, banded[0].Band)
	require.Equal(t, sales.BandTop, banded[len(banded)-1].Band)

	for _, b := range banded[1 : len(banded)-1] {
		require.Equal(t, sales.BandMiddle, b.Band, "sales %v", b.WeeklySales)
	}
}

func TestPercentileBandBoundaryIsDeterministic(t *testing.T) {
	d := date(2012, time.July, 6)
	// Identical values: p10 == p90 == 100. The top test runs first, so
	// every row classifies as top, none as both or bottom.
	recs := []sales.Record{
		{Store: 1, Dept: 1, Date: d, WeeklySales: 100},
		{Store: 1, Dept: 2, Date: d, WeeklySales: 100},
	}

	banded, err := sales.PercentileBand(recs, 0.1, 0.9)
	require.NoError(t, err)
	for _, b := range banded {
		require.Equal(t, sales.BandTop, b.Band)
	}

	_, err = sales.PercentileBand(recs, 0.9, 0.1)
	require.ErrorIs(t, err, sales.ErrInvalidParameter)
}
