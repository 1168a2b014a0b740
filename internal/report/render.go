//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/sales-metrics/pkg/sales"
)

// Render writes a question result as an aligned text table.
func Render(w io.Writer, q Question, t *Table) error {
	if _, err := fmt.Fprintf(w, "%s: %s (%d rows)\n", q.Name, q.Description, len(t.Rows)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for i, col := range t.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)

	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// money formats a sales amount with two fixed decimal places.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// num formats a float with the given number of decimal places.
func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// exact formats a float with the shortest digits that round-trip.
func exact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}

func monthStr(k sales.GroupKey) string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}
