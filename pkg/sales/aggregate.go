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

// GroupValue is one aggregated group: its key, the aggregate value, and
// the number of rows that contributed (nulls excluded).
type GroupValue struct {
	Key   GroupKey
	Value float64
	Rows  int
}

type groupAcc struct {
	sum  float64
	rows int
}

// groupSums folds records into per-group (sum, non-null row count) pairs
// and returns the group keys in ascending order.
func groupSums(records []Record, p Partition, f Field) (map[GroupKey]*groupAcc, []GroupKey) {
	accs := make(map[GroupKey]*groupAcc)
	var order []GroupKey
	for _, r := range records {
		k := p.keyOf(r)
		acc, ok := accs[k]
		if !ok {
			acc = &groupAcc{}
			accs[k] = acc
			order = append(order, k)
		}
		if v, present := r.value(f); present {
			acc.sum += v
			acc.rows++
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].less(order[j]) })
	return accs, order
}

// SumBy groups records by p and sums f per group, skipping null values.
// Groups where f is null on every row are omitted, matching SQL's NULL
// aggregate result. Output is ordered by group key ascending.
func SumBy(records []Record, p Partition, f Field) ([]GroupValue, error) {
	if err := checkPartitionField(p, f); err != nil {
		return nil, err
	}
	accs, order := groupSums(records, p, f)
	out := make([]GroupValue, 0, len(order))
	for _, k := range order {
		acc := accs[k]
		if acc.rows == 0 {
			continue
		}
		out = append(out, GroupValue{Key: k, Value: acc.sum, Rows: acc.rows})
	}
	return out, nil
}

// AvgBy groups records by p and averages f per group, skipping null
// values. The optional having predicate is evaluated against each group's
// average after grouping (HAVING semantics); nil keeps every group.
func AvgBy(records []Record, p Partition, f Field, having func(avg float64) bool) ([]GroupValue, error) {
	if err := checkPartitionField(p, f); err != nil {
		return nil, err
	}
	accs, order := groupSums(records, p, f)
	out := make([]GroupValue, 0, len(order))
	for _, k := range order {
		acc := accs[k]
		if acc.rows == 0 {
			continue
		}
		avg := acc.sum / float64(acc.rows)
		if having != nil && !having(avg) {
			continue
		}
		out = append(out, GroupValue{Key: k, Value: avg, Rows: acc.rows})
	}
	return out, nil
}

// CountNulls counts the records where f is null. Fields that always carry
// a value count zero.
func CountNulls(records []Record, f Field) (int, error) {
	if !f.valid() {
		return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, f)
	}
	n := 0
	for _, r := range records {
		if _, present := r.value(f); !present {
			n++
		}
	}
	return n, nil
}

// OverallAverage is the mean of f across the whole collection, skipping
// nulls. It fails with ErrMissingBaseline when no row carries a value.
func OverallAverage(records []Record, f Field) (float64, error) {
	if !f.valid() {
		return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, f)
	}
	var sum float64
	rows := 0
	for _, r := range records {
		if v, present := r.value(f); present {
			sum += v
			rows++
		}
	}
	if rows == 0 {
		return 0, fmt.Errorf("%w: no non-null %s values", ErrMissingBaseline, f)
	}
	return sum / float64(rows), nil
}
