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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func f64(v float64) *float64 { return &v }

// fixture returns a small deterministic dataset: two stores, two depts,
// four weekly observations each.
func fixture() []sales.Record {
	weeks := []time.Time{
		date(2012, time.February, 3),
		date(2012, time.February, 10),
		date(2012, time.February, 17),
		date(2012, time.February, 24),
	}
	var recs []sales.Record
	base := map[int]float64{1: 20000, 2: 40000}
	for store := 1; store <= 2; store++ {
		for dept := 1; dept <= 2; dept++ {
			for i, w := range weeks {
				r := sales.Record{
					Store:        store,
					Dept:         dept,
					Date:         w,
					WeeklySales:  base[store] + float64(dept*1000) + float64(i*500),
					IsHoliday:    i == 1,
					Temperature:  40 + float64(i*5),
					FuelPrice:    3.5,
					CPI:          211.2,
					Unemployment: 8.1,
				}
				if i%2 == 0 {
					r.Markdown1 = f64(float64(100 * (i + 1)))
				}
				recs = append(recs, r)
			}
		}
	}
	return recs
}

func TestSelectIsIdempotent(t *testing.T) {
	recs := fixture()
	pred := sales.SalesAbove(41000)
	opt := sales.SelectOptions{OrderBy: sales.SortBySales, Desc: true}

	first, err := sales.Select(recs, pred, opt)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := sales.Select(first, pred, opt)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSelectOrderingAndLimit(t *testing.T) {
	recs := fixture()

	out, err := sales.Select(recs, sales.SalesAbove(0), sales.SelectOptions{
		OrderBy: sales.SortBySales,
		Desc:    true,
		Limit:   3,
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		require.GreaterOrEqual(t, out[i-1].WeeklySales, out[i].WeeklySales)
	}

	// Store descending with deterministic tie-break.
	out, err = sales.Select(recs, nil, sales.SelectOptions{
		OrderBy: sales.SortByStore,
		Desc:    true,
	})
	require.NoError(t, err)
	require.Equal(t, 2, out[0].Store)
	require.Equal(t, 1, out[len(out)-1].Store)
}

func TestSelectRejectsBadOptions(t *testing.T) {
	recs := fixture()

	_, err := sales.Select(recs, nil, sales.SelectOptions{Limit: -1})
	require.ErrorIs(t, err, sales.ErrInvalidParameter)

	_, err = sales.Select(recs, nil, sales.SelectOptions{OrderBy: "bogus"})
	require.ErrorIs(t, err, sales.ErrInvalidParameter)
}

func TestHolidayAndYearPredicates(t *testing.T) {
	recs := fixture()

	holidays, err := sales.Select(recs, sales.HolidayWeeks(), sales.SelectOptions{})
	require.NoError(t, err)
	require.Len(t, holidays, 4)
	for _, r := range holidays {
		require.True(t, r.IsHoliday)
	}

	in2012, err := sales.Select(recs, sales.InYear(2012), sales.SelectOptions{})
	require.NoError(t, err)
	require.Len(t, in2012, len(recs))

	in2011, err := sales.Select(recs, sales.InYear(2011), sales.SelectOptions{})
	require.NoError(t, err)
	require.Empty(t, in2011)
}

func TestUnemploymentStartsWith(t *testing.T) {
	recs := []sales.Record{
		{Store: 1, Unemployment: 8.1},
		{Store: 2, Unemployment: 8.106},
		{Store: 3, Unemployment: 7.981},
		{Store: 4, Unemployment: 8},
	}

	tests := []struct {
		prefix string
		stores []int
	}{
		{"8", []int{1, 2, 4}},
		{"8.1", []int{1, 2}},
		// 8.1 prints as "8.1" in shortest form, so "8.10" only matches 8.106.
		{"8.10", []int{2}},
		{"7.9", []int{3}},
	}
	for _, tt := range tests {
		out, err := sales.Select(recs, sales.UnemploymentStartsWith(tt.prefix), sales.SelectOptions{})
		require.NoError(t, err)
		var stores []int
		for _, r := range out {
			stores = append(stores, r.Store)
		}
		require.Equal(t, tt.stores, stores, "prefix %q", tt.prefix)
	}
}

func TestMatchKeys(t *testing.T) {
	recs := fixture()

	subset, err := sales.Select(recs, sales.And(sales.HolidayWeeks(), sales.SalesAbove(41000)), sales.SelectOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, subset)

	matched := sales.MatchKeys(recs, sales.Keys(subset))
	require.Len(t, matched, len(subset))
	for _, r := range matched {
		require.True(t, r.IsHoliday)
	}

	require.Nil(t, sales.MatchKeys(recs, nil))
}
