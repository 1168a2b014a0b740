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
	"sort"
	"time"
)

// period is one date's total within a partition. Window operations fold
// left over these: group by partition key, bucket rows per date, order
// chronologically, then carry an accumulator or a one-step lookback.
type period struct {
	date  time.Time
	value float64
}

func partitionSeries(records []Record, p Partition, f Field) ([]GroupKey, map[GroupKey][]period) {
	sums := make(map[GroupKey]map[time.Time]float64)
	var order []GroupKey
	for _, r := range records {
		v, present := r.value(f)
		if !present {
			continue
		}
		k := p.keyOf(r)
		if _, ok := sums[k]; !ok {
			sums[k] = make(map[time.Time]float64)
			order = append(order, k)
		}
		sums[k][r.Date] += v
	}
	sort.Slice(order, func(i, j int) bool { return order[i].less(order[j]) })

	series := make(map[GroupKey][]period, len(order))
	for k, byDate := range sums {
		s := make([]period, 0, len(byDate))
		for d, v := range byDate {
			s = append(s, period{date: d, value: v})
		}
		sort.Slice(s, func(i, j int) bool { return s[i].date.Before(s[j].date) })
		series[k] = s
	}
	return order, series
}

// TrendRow is one period of a partition with its cumulative total.
type TrendRow struct {
	Key     GroupKey
	Date    time.Time
	Value   float64 // this period's total
	Running float64 // cumulative from the first period, inclusive
}

// RunningTotal computes, per partition of p, the cumulative sum of f in
// chronological order. Rows sharing a date within a partition are summed
// into one period before accumulation. The last row of each partition
// carries the partition's full total. Partitions appear in ascending key
// order.
func RunningTotal(records []Record, p Partition, f Field) ([]TrendRow, error) {
	if err := checkPartitionField(p, f); err != nil {
		return nil, err
	}
	order, series := partitionSeries(records, p, f)
	var out []TrendRow
	for _, k := range order {
		running := 0.0
		for _, per := range series[k] {
			running += per.value
			out = append(out, TrendRow{Key: k, Date: per.date, Value: per.value, Running: running})
		}
	}
	return out, nil
}

// ChangeRow is one period of a partition with its change relative to the
// immediately preceding period. Previous, Change and PctChange are nil on
// the first period of a partition; PctChange is additionally nil whenever
// the previous value is zero. A nil here means "undefined", a first-class
// result, never a divide-by-zero fault.
type ChangeRow struct {
	Key       GroupKey
	Date      time.Time
	Value     float64
	Previous  *float64
	Change    *float64
	PctChange *float64
}

// PeriodChange computes, per partition of p, each period's absolute and
// percentage change against the prior period (lag 1). The percentage is
// (current - previous) * 100 / previous, rounded to precision decimal
// places. Partitions appear in ascending key order, periods chronological.
func PeriodChange(records []Record, p Partition, f Field, precision int) ([]ChangeRow, error) {
	if err := checkPartitionField(p, f); err != nil {
		return nil, err
	}
	if precision < 0 {
		return nil, fmt.Errorf("%w: negative rounding precision %d", ErrInvalidParameter, precision)
	}
	order, series := partitionSeries(records, p, f)
	var out []ChangeRow
	for _, k := range order {
		var prev *float64
		for _, per := range series[k] {
			row := ChangeRow{Key: k, Date: per.date, Value: per.value}
			if prev != nil {
				pv := *prev
				row.Previous = &pv
				change := roundTo(per.value-pv, precision)
				row.Change = &change
				if pv != 0 {
					pct := roundTo((per.value-pv)*100/pv, precision)
					row.PctChange = &pct
				}
			}
			v := per.value
			prev = &v
			out = append(out, row)
		}
	}
	return out, nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
