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
	"sort"
)

// AboveAverage returns the groups of p whose average f exceeds the overall
// mean of f across the full collection. The baseline is a single scalar
// computed before grouping. Output is ordered by group value descending,
// ties by group key.
func AboveAverage(records []Record, p Partition, f Field) ([]GroupValue, error) {
	baseline, err := OverallAverage(records, f)
	if err != nil {
		return nil, err
	}
	groups, err := AvgBy(records, p, f, func(avg float64) bool { return avg > baseline })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Value != groups[j].Value {
			return groups[i].Value > groups[j].Value
		}
		return groups[i].Key.less(groups[j].Key)
	})
	return groups, nil
}

// RankedRecord is a record with its rank inside a partition, starting at 1.
type RankedRecord struct {
	Record
	Rank int
}

// TopNPerPartition partitions records by p, orders each partition by f
// descending, and returns the first n rows of every partition with ranks
// 1..n. Ranks are strictly increasing within a partition even for tied
// values (row_number semantics); ties order by date ascending, then the
// (store, dept, date) key, so output is deterministic and no partition
// ever yields more than n rows. Rows where f is null are excluded before
// ranking. Partitions appear in ascending key order.
func TopNPerPartition(records []Record, p Partition, f Field, n int) ([]RankedRecord, error) {
	if err := checkPartitionField(p, f); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: top-N cutoff must be positive, got %d", ErrInvalidParameter, n)
	}

	byKey := make(map[GroupKey][]Record)
	var order []GroupKey
	for _, r := range records {
		if _, present := r.value(f); !present {
			continue
		}
		k := p.keyOf(r)
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], r)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].less(order[j]) })

	var out []RankedRecord
	for _, k := range order {
		part := byKey[k]
		sort.SliceStable(part, func(i, j int) bool {
			vi, _ := part[i].value(f)
			vj, _ := part[j].value(f)
			if vi != vj {
				return vi > vj
			}
			if !part[i].Date.Equal(part[j].Date) {
				return part[i].Date.Before(part[j].Date)
			}
			return lessKey(part[i], part[j])
		})
		for i, r := range part {
			if i >= n {
				break
			}
			out = append(out, RankedRecord{Record: r, Rank: i + 1})
		}
	}
	return out, nil
}

// Percentile estimates the p-th percentile (0 <= p <= 1) of values using
// linear interpolation between closest ranks (the continuous method SQL's
// percentile_cont uses, not nearest-rank).
func Percentile(values []float64, p float64) (float64, error) {
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: percentile point %v outside [0, 1]", ErrInvalidParameter, p)
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: percentile of an empty collection", ErrInvalidParameter)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}

// Band classifies a record relative to distribution-wide percentile
// thresholds.
type Band string

const (
	BandTop    Band = "top"
	BandBottom Band = "bottom"
	BandMiddle Band = "middle"
)

// BandedRecord is a record with its percentile band.
type BandedRecord struct {
	Record
	Band Band
}

// PercentileBand computes the lower and upper percentiles of weekly sales
// across the full collection and classifies every record: sales >= the
// upper threshold is "top", sales <= the lower threshold is "bottom",
// anything else "middle". The top test runs first, so a record exactly on
// a threshold lands in exactly one band. Input order is preserved.
func PercentileBand(records []Record, lower, upper float64) ([]BandedRecord, error) {
	if lower >= upper {
		return nil, fmt.Errorf("%w: lower percentile %v must be below upper %v",
			ErrInvalidParameter, lower, upper)
	}
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.WeeklySales
	}
	pLow, err := Percentile(values, lower)
	if err != nil {
		return nil, err
	}
	pHigh, err := Percentile(values, upper)
	if err != nil {
		return nil, err
	}

	out := make([]BandedRecord, len(records))
	for i, r := range records {
		band := BandMiddle
		switch {
		case r.WeeklySales >= pHigh:
			band = BandTop
		case r.WeeklySales <= pLow:
			band = BandBottom
		}
		out[i] = BandedRecord{Record: r, Band: band}
	}
	return out, nil
}
