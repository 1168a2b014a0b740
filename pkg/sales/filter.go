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
	"strconv"
	"strings"
)

// Predicate reports whether a record belongs in a selection.
type Predicate func(Record) bool

// SalesAbove matches records whose weekly sales exceed min.
func SalesAbove(min float64) Predicate {
	return func(r Record) bool { return r.WeeklySales > min }
}

// HolidayWeeks matches holiday-week records.
func HolidayWeeks() Predicate {
	return func(r Record) bool { return r.IsHoliday }
}

// InYear matches records observed in the given calendar year.
func InYear(year int) Predicate {
	return func(r Record) bool { return r.Year() == year }
}

// UnemploymentStartsWith matches records whose unemployment rate, printed
// in its shortest exact decimal form (strconv.FormatFloat with precision
// -1), starts with prefix. 8.1 prints as "8.1", never "8.10", so a prefix
// of "8.1" matches it and a prefix of "8.10" does not. This pins down the
// platform-dependent behavior of LIKE over a stringified numeric column.
func UnemploymentStartsWith(prefix string) Predicate {
	return func(r Record) bool {
		s := strconv.FormatFloat(r.Unemployment, 'f', -1, 64)
		return strings.HasPrefix(s, prefix)
	}
}

// And combines predicates; a record must satisfy all of them.
func And(preds ...Predicate) Predicate {
	return func(r Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// SortField names the ordering column of a selection.
type SortField string

const (
	SortByStore SortField = "store"
	SortBySales SortField = "sales"
	SortByDate  SortField = "date"
)

// SelectOptions controls ordering and row cap of a selection. A zero value
// keeps input order and returns all matching rows.
type SelectOptions struct {
	OrderBy SortField
	Desc    bool
	Limit   int // 0 = no cap
}

// Select returns the records matching pred, ordered and capped per opt.
// Ordering is deterministic: after the requested column, ties break by
// (store, dept, date) ascending, so repeated runs over the same dataset
// produce identical output. Applying Select twice with the same predicate
// yields the same rows.
func Select(records []Record, pred Predicate, opt SelectOptions) ([]Record, error) {
	if opt.Limit < 0 {
		return nil, fmt.Errorf("%w: negative row limit %d", ErrInvalidParameter, opt.Limit)
	}
	if opt.OrderBy != "" {
		switch opt.OrderBy {
		case SortByStore, SortBySales, SortByDate:
		default:
			return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidParameter, opt.OrderBy)
		}
	}
	if pred == nil {
		pred = func(Record) bool { return true }
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}

	if opt.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if opt.Desc {
				a, b = b, a
			}
			switch opt.OrderBy {
			case SortByStore:
				if a.Store != b.Store {
					return a.Store < b.Store
				}
			case SortBySales:
				if a.WeeklySales != b.WeeklySales {
					return a.WeeklySales < b.WeeklySales
				}
			case SortByDate:
				if !a.Date.Equal(b.Date) {
					return a.Date.Before(b.Date)
				}
			}
			return lessKey(out[i], out[j])
		})
	}

	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}

// lessKey is the deterministic tie-break: (store, dept, date) ascending.
func lessKey(a, b Record) bool {
	if a.Store != b.Store {
		return a.Store < b.Store
	}
	if a.Dept != b.Dept {
		return a.Dept < b.Dept
	}
	return a.Date.Before(b.Date)
}

// MatchKeys returns the records whose (store, dept, date) triple appears
// in keys, preserving input order. This is the in-memory equivalent of a
// semi-join on the record identity.
func MatchKeys(records []Record, keys []Key) []Record {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	var out []Record
	for _, r := range records {
		if _, ok := set[r.Key()]; ok {
			out = append(out, r)
		}
	}
	return out
}
