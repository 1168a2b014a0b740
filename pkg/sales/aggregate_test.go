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

func TestSumByMatchesRowLevelTotals(t *testing.T) {
	recs := fixture()

	groups, err := sales.SumBy(recs, sales.ByStore, sales.FieldWeeklySales)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	for _, g := range groups {
		var want float64
		for _, r := range recs {
			if r.Store == g.Key.Store {
				want += r.WeeklySales
			}
		}
		require.InDelta(t, want, g.Value, 1e-9)
	}

	// Output ordered by group key ascending.
	require.Equal(t, 1, groups[0].Key.Store)
	require.Equal(t, 2, groups[1].Key.Store)
}

func TestSumSkipsNulls(t *testing.T) {
	d := date(2012, time.March, 2)
	recs := []sales.Record{
		{Store: 1, Dept: 1, Date: d, Markdown1: f64(10)},
		{Store: 1, Dept: 2, Date: d, Markdown1: f64(20)},
		{Store: 1, Dept: 3, Date: d}, // markdown1 null
	}

	groups, err := sales.SumBy(recs, sales.ByStore, sales.FieldMarkdown1)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.InDelta(t, 30, groups[0].Value, 1e-9)
	require.Equal(t, 2, groups[0].Rows)
}

func TestAvgByAllNullGroupOmitted(t *testing.T) {
	d := date(2012, time.March, 2)
	recs := []sales.Record{
		{Store: 1, Dept: 1, Date: d, Markdown2: f64(50)},
		{Store: 2, Dept: 1, Date: d}, // store 2 has no markdown2 at all
	}

	groups, err := sales.AvgBy(recs, sales.ByStore, sales.FieldMarkdown2, nil)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, 1, groups[0].Key.Store)
	require.InDelta(t, 50, groups[0].Value, 1e-9)
}

func TestAvgByHavingRunsAfterGrouping(t *testing.T) {
	recs := fixture()

	all, err := sales.AvgBy(recs, sales.ByStore, sales.FieldWeeklySales, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Threshold sits between the two store averages, so HAVING keeps one.
	cut := (all[0].Value + all[1].Value) / 2
	kept, err := sales.AvgBy(recs, sales.ByStore, sales.FieldWeeklySales,
		func(avg float64) bool { return avg > cut })
	require.NoError(t, err)
	require.Len(t, kept, 1)
	require.Equal(t, 2, kept[0].Key.Store)
}

func TestCountNulls(t *testing.T) {
	recs := fixture()

	// fixture sets markdown1 on weeks 0 and 2 only: half the rows.
	n, err := sales.CountNulls(recs, sales.FieldMarkdown1)
	require.NoError(t, err)
	require.Equal(t, len(recs)/2, n)

	// Non-nullable fields never count.
	n, err = sales.CountNulls(recs, sales.FieldWeeklySales)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = sales.CountNulls(recs, "markdown9")
	require.ErrorIs(t, err, sales.ErrInvalidParameter)
}

func TestOverallAverage(t *testing.T) {
	recs := fixture()

	avg, err := sales.OverallAverage(recs, sales.FieldWeeklySales)
	require.NoError(t, err)
	var sum float64
	for _, r := range recs {
		sum += r.WeeklySales
	}
	require.InDelta(t, sum/float64(len(recs)), avg, 1e-9)

	// All-null field has no baseline.
	_, err = sales.OverallAverage(recs, sales.FieldMarkdown5)
	require.ErrorIs(t, err, sales.ErrMissingBaseline)
}

func TestAggregateRejectsUnknownPartition(t *testing.T) {
	recs := fixture()

	_, err := sales.SumBy(recs, "region", sales.FieldWeeklySales)
	require.ErrorIs(t, err, sales.ErrInvalidParameter)

	_, err = sales.AvgBy(recs, sales.ByStore, "profit", nil)
	require.ErrorIs(t, err, sales.ErrInvalidParameter)
}
