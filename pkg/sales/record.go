//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sales implements analytical operations over a flat collection of
// weekly per-store, per-department sales observations. Every operation is a
// pure function of its inputs: nothing is mutated, nothing is cached, and
// all functions are safe to call concurrently.
package sales

import "time"

// Record is one store-department-date observation. Date is the weekly
// observation date; WeeklySales may be negative (returns). The markdown
// amounts are nullable: nil means no markdown event that week, not zero.
type Record struct {
	Store        int
	Dept         int
	Date         time.Time
	WeeklySales  float64
	IsHoliday    bool
	Temperature  float64
	FuelPrice    float64
	CPI          float64
	Unemployment float64
	Markdown1    *float64
	Markdown2    *float64
	Markdown3    *float64
	Markdown4    *float64
	Markdown5    *float64
}

// Year returns the calendar year of the observation date.
func (r Record) Year() int { return r.Date.Year() }

// Week returns the ISO week number of the observation date.
func (r Record) Week() int {
	_, week := r.Date.ISOWeek()
	return week
}

// Key is the unique identity of a record: no two records in a well-formed
// dataset share the same (store, dept, date) triple.
type Key struct {
	Store int
	Dept  int
	Date  time.Time
}

// Key returns the record's identifying triple.
func (r Record) Key() Key {
	return Key{Store: r.Store, Dept: r.Dept, Date: r.Date}
}

// Keys returns the identifying triples of all records, in input order.
func Keys(records []Record) []Key {
	keys := make([]Key, len(records))
	for i, r := range records {
		keys[i] = r.Key()
	}
	return keys
}

// Field names a numeric column of the record.
type Field string

// Numeric fields accepted by aggregate, ranking, window and correlation
// operations. The markdown fields are nullable; all others always carry a
// value.
const (
	FieldWeeklySales  Field = "weekly_sales"
	FieldTemperature  Field = "temperature"
	FieldFuelPrice    Field = "fuel_price"
	FieldCPI          Field = "cpi"
	FieldUnemployment Field = "unemployment"
	FieldMarkdown1    Field = "markdown1"
	FieldMarkdown2    Field = "markdown2"
	FieldMarkdown3    Field = "markdown3"
	FieldMarkdown4    Field = "markdown4"
	FieldMarkdown5    Field = "markdown5"
)

// value returns the numeric value of f on r and whether it is present.
// A false second return means the field is null for this record.
func (r Record) value(f Field) (float64, bool) {
	switch f {
	case FieldWeeklySales:
		return r.WeeklySales, true
	case FieldTemperature:
		return r.Temperature, true
	case FieldFuelPrice:
		return r.FuelPrice, true
	case FieldCPI:
		return r.CPI, true
	case FieldUnemployment:
		return r.Unemployment, true
	case FieldMarkdown1:
		return deref(r.Markdown1)
	case FieldMarkdown2:
		return deref(r.Markdown2)
	case FieldMarkdown3:
		return deref(r.Markdown3)
	case FieldMarkdown4:
		return deref(r.Markdown4)
	case FieldMarkdown5:
		return deref(r.Markdown5)
	}
	return 0, false
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func (f Field) valid() bool {
	switch f {
	case FieldWeeklySales, FieldTemperature, FieldFuelPrice, FieldCPI,
		FieldUnemployment, FieldMarkdown1, FieldMarkdown2, FieldMarkdown3,
		FieldMarkdown4, FieldMarkdown5:
		return true
	}
	return false
}
