//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package ingest reads weekly sales datasets from delimited files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pgEdge/sales-metrics/internal/logging"
	"github.com/pgEdge/sales-metrics/pkg/sales"
)

// Column keys after header normalization (lowercased, separators removed).
const (
	colStore        = "store"
	colDept         = "dept"
	colDate         = "date"
	colWeeklySales  = "weeklysales"
	colIsHoliday    = "isholiday"
	colTemperature  = "temperature"
	colFuelPrice    = "fuelprice"
	colCPI          = "cpi"
	colUnemployment = "unemployment"
)

// requiredColumns must all be present; the markdown columns are optional
// and absent columns read as null for every row.
var requiredColumns = []string{
	colStore, colDept, colDate, colWeeklySales, colIsHoliday,
	colTemperature, colFuelPrice, colCPI, colUnemployment,
}

// header aliases seen in the wild for the same columns.
var columnAliases = map[string]string{
	"holidayflag": colIsHoliday,
	"department":  colDept,
}

var dateFormats = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// ReadFile reads a weekly sales CSV from path.
func ReadFile(path string) ([]sales.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("rows", len(records)).
		Msg("Loaded dataset from CSV")
	return records, nil
}

// Read parses a weekly sales CSV. The header row drives column mapping;
// a missing required column fails fast naming the column, and no partial
// result is returned. Empty or "NA" markdown cells read as null.
func Read(r io.Reader) ([]sales.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeColumn(h)
		if alias, ok := columnAliases[key]; ok {
			key = alias
		}
		cols[key] = i
	}
	for _, req := range requiredColumns {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("%w: dataset is missing required column %q",
				sales.ErrSchemaMismatch, req)
		}
	}

	var records []sales.Record
	seen := make(map[sales.Key]int)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line++

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if prev, dup := seen[rec.Key()]; dup {
			return nil, fmt.Errorf("line %d: duplicate record for store %d dept %d %s (first at line %d)",
				line, rec.Store, rec.Dept, rec.Date.Format("2006-01-02"), prev)
		}
		seen[rec.Key()] = line
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, cols map[string]int) (sales.Record, error) {
	var rec sales.Record
	var err error

	if rec.Store, err = intCell(row, cols, colStore); err != nil {
		return rec, err
	}
	if rec.Dept, err = intCell(row, cols, colDept); err != nil {
		return rec, err
	}
	if rec.Date, err = dateCell(row, cols, colDate); err != nil {
		return rec, err
	}
	if rec.WeeklySales, err = floatCell(row, cols, colWeeklySales); err != nil {
		return rec, err
	}
	if rec.IsHoliday, err = boolCell(row, cols, colIsHoliday); err != nil {
		return rec, err
	}
	if rec.Temperature, err = floatCell(row, cols, colTemperature); err != nil {
		return rec, err
	}
	if rec.FuelPrice, err = floatCell(row, cols, colFuelPrice); err != nil {
		return rec, err
	}
	if rec.CPI, err = floatCell(row, cols, colCPI); err != nil {
		return rec, err
	}
	if rec.Unemployment, err = floatCell(row, cols, colUnemployment); err != nil {
		return rec, err
	}

	markdowns := []**float64{&rec.Markdown1, &rec.Markdown2, &rec.Markdown3, &rec.Markdown4, &rec.Markdown5}
	for i, dst := range markdowns {
		v, err := nullableCell(row, cols, fmt.Sprintf("markdown%d", i+1))
		if err != nil {
			return rec, err
		}
		*dst = v
	}
	return rec, nil
}

func cell(row []string, cols map[string]int, name string) (string, bool) {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

func intCell(row []string, cols map[string]int, name string) (int, error) {
	s, _ := cell(row, cols, name)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", name, s)
	}
	return v, nil
}

func floatCell(row []string, cols map[string]int, name string) (float64, error) {
	s, _ := cell(row, cols, name)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", name, s)
	}
	return v, nil
}

func dateCell(row []string, cols map[string]int, name string) (time.Time, error) {
	s, _ := cell(row, cols, name)
	for _, layout := range dateFormats {
		if v, err := time.Parse(layout, s); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s value %q", name, s)
}

func boolCell(row []string, cols map[string]int, name string) (bool, error) {
	s, _ := cell(row, cols, name)
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", name, s)
	}
	return v, nil
}

func nullableCell(row []string, cols map[string]int, name string) (*float64, error) {
	s, ok := cell(row, cols, name)
	if !ok || s == "" || strings.EqualFold(s, "na") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q", name, s)
	}
	return &v, nil
}

func normalizeColumn(h string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(strings.TrimSpace(h)) {
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
