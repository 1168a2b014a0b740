//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pgEdge/sales-metrics/pkg/sales"
)

// writeHeader is the canonical column order for exported datasets. Read
// accepts these headers back unchanged.
var writeHeader = []string{
	"Store", "Dept", "Date", "Weekly_Sales", "IsHoliday",
	"Temperature", "Fuel_Price", "CPI", "Unemployment",
	"MarkDown1", "MarkDown2", "MarkDown3", "MarkDown4", "MarkDown5",
}

// WriteFile writes records to a CSV file at path.
func WriteFile(path string, records []sales.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Write writes records as CSV. Null markdowns write as "NA", matching what
// Read parses back as null. Numeric values use the shortest exact decimal
// form so a write/read round trip preserves every value.
func Write(w io.Writer, records []sales.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(writeHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Store),
			strconv.Itoa(r.Dept),
			r.Date.Format("2006-01-02"),
			formatFloat(r.WeeklySales),
			strconv.FormatBool(r.IsHoliday),
			formatFloat(r.Temperature),
			formatFloat(r.FuelPrice),
			formatFloat(r.CPI),
			formatFloat(r.Unemployment),
			formatNullable(r.Markdown1),
			formatNullable(r.Markdown2),
			formatNullable(r.Markdown3),
			formatNullable(r.Markdown4),
			formatNullable(r.Markdown5),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNullable(v *float64) string {
	if v == nil {
		return "NA"
	}
	return formatFloat(*v)
}
