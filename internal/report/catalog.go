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
	"strconv"

	"github.com/pgEdge/sales-metrics/pkg/sales"
)

func init() {
	Register(Question{
		Name:        "q01_high_sales_weeks",
		Description: "weeks with sales above the threshold, highest first",
		Family:      FamilyFilter,
		Run:         highSalesWeeks,
	})
	Register(Question{
		Name:        "q02_sales_by_store",
		Description: "total sales per store",
		Family:      FamilyAggregate,
		Run:         salesByStore,
	})
	Register(Question{
		Name:        "q03_holiday_weeks",
		Description: "holiday-week observations in date order",
		Family:      FamilyFilter,
		Run:         holidayWeeks,
	})
	Register(Question{
		Name:        "q04_sales_in_year",
		Description: "observations within the target year",
		Family:      FamilyFilter,
		Run:         salesInYear,
	})
	Register(Question{
		Name:        "q05_markdown_gaps",
		Description: "missing-value counts per markdown field",
		Family:      FamilyAggregate,
		Run:         markdownGaps,
	})
	Register(Question{
		Name:        "q06_unemployment_prefix",
		Description: "weeks whose unemployment rate starts with the prefix, by store descending",
		Family:      FamilyFilter,
		Run:         unemploymentPrefix,
	})
	Register(Question{
		Name:        "q07_above_average_stores",
		Description: "stores whose average sales beat the overall mean",
		Family:      FamilyRanking,
		Run:         aboveAverageStores,
	})
	Register(Question{
		Name:        "q08_avg_sales_by_dept",
		Description: "average sales per department",
		Family:      FamilyAggregate,
		Run:         avgSalesByDept,
	})
	Register(Question{
		Name:        "q09_holiday_high_sales",
		Description: "full detail of holiday weeks that also beat the sales threshold",
		Family:      FamilyFilter,
		Run:         holidayHighSales,
	})
	Register(Question{
		Name:        "q10_running_total_by_store",
		Description: "cumulative weekly sales per store",
		Family:      FamilyTrend,
		Run:         runningTotalByStore,
	})
	Register(Question{
		Name:        "q11_strong_avg_stores",
		Description: "stores whose average sales clear the average threshold",
		Family:      FamilyAggregate,
		Run:         strongAvgStores,
	})
	Register(Question{
		Name:        "q12_top_weeks_per_dept",
		Description: "top-N sales weeks inside every department",
		Family:      FamilyRanking,
		Run:         topWeeksPerDept,
	})
	Register(Question{
		Name:        "q13_sales_drivers",
		Description: "correlation of weekly sales with each external driver",
		Family:      FamilyCorrelation,
		Run:         salesDrivers,
	})
	Register(Question{
		Name:        "q14_weekly_change_by_store",
		Description: "week-over-week sales change per store",
		Family:      FamilyTrend,
		Run:         weeklyChangeByStore,
	})
	Register(Question{
		Name:        "q15_monthly_running_total",
		Description: "cumulative weekly sales within every store-month",
		Family:      FamilyTrend,
		Run:         monthlyRunningTotal,
	})
	Register(Question{
		Name:        "q16_sales_bands",
		Description: "percentile banding of all weeks by sales",
		Family:      FamilyRanking,
		Run:         salesBands,
	})
}

var recordColumns = []string{"store", "dept", "date", "weekly_sales", "is_holiday"}

func recordRow(r sales.Record) []string {
	return []string{
		strconv.Itoa(r.Store),
		strconv.Itoa(r.Dept),
		dateStr(r.Date),
		money(r.WeeklySales),
		strconv.FormatBool(r.IsHoliday),
	}
}

func recordTable(records []sales.Record) *Table {
	t := &Table{Columns: recordColumns}
	for _, r := range records {
		t.Rows = append(t.Rows, recordRow(r))
	}
	return t
}

// limitRows truncates period-level output so trend questions stay
// printable on wide datasets. Zero means no cap.
func limitRows(t *Table, limit int) *Table {
	if limit > 0 && len(t.Rows) > limit {
		t.Rows = t.Rows[:limit]
	}
	return t
}

func highSalesWeeks(records []sales.Record, p Params) (*Table, error) {
	rows, err := sales.Select(records, sales.SalesAbove(p.SalesThreshold), sales.SelectOptions{
		OrderBy: sales.SortBySales,
		Desc:    true,
		Limit:   p.RowLimit,
	})
	if err != nil {
		return nil, err
	}
	return recordTable(rows), nil
}

func salesByStore(records []sales.Record, _ Params) (*Table, error) {
	groups, err := sales.SumBy(records, sales.ByStore, sales.FieldWeeklySales)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "total_sales", "weeks"}}
	for _, g := range groups {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(g.Key.Store),
			money(g.Value),
			strconv.Itoa(g.Rows),
		})
	}
	return t, nil
}

func holidayWeeks(records []sales.Record, p Params) (*Table, error) {
	rows, err := sales.Select(records, sales.HolidayWeeks(), sales.SelectOptions{
		OrderBy: sales.SortByDate,
		Limit:   p.RowLimit,
	})
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "dept", "date", "week", "weekly_sales"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Store),
			strconv.Itoa(r.Dept),
			dateStr(r.Date),
			strconv.Itoa(r.Week()),
			money(r.WeeklySales),
		})
	}
	return t, nil
}

func salesInYear(records []sales.Record, p Params) (*Table, error) {
	rows, err := sales.Select(records, sales.InYear(p.Year), sales.SelectOptions{
		OrderBy: sales.SortByStore,
		Limit:   p.RowLimit,
	})
	if err != nil {
		return nil, err
	}
	return recordTable(rows), nil
}

func markdownGaps(records []sales.Record, _ Params) (*Table, error) {
	fields := []sales.Field{
		sales.FieldMarkdown1,
		sales.FieldMarkdown2,
		sales.FieldMarkdown3,
		sales.FieldMarkdown4,
		sales.FieldMarkdown5,
	}
	t := &Table{Columns: []string{"field", "missing", "rows"}}
	for _, f := range fields {
		missing, err := sales.CountNulls(records, f)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, []string{
			string(f),
			strconv.Itoa(missing),
			strconv.Itoa(len(records)),
		})
	}
	return t, nil
}

func unemploymentPrefix(records []sales.Record, p Params) (*Table, error) {
	rows, err := sales.Select(records, sales.UnemploymentStartsWith(p.UnemploymentPrefix), sales.SelectOptions{
		OrderBy: sales.SortByStore,
		Desc:    true,
		Limit:   p.RowLimit,
	})
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "dept", "date", "unemployment", "weekly_sales"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Store),
			strconv.Itoa(r.Dept),
			dateStr(r.Date),
			exact(r.Unemployment),
			money(r.WeeklySales),
		})
	}
	return t, nil
}

func aboveAverageStores(records []sales.Record, _ Params) (*Table, error) {
	baseline, err := sales.OverallAverage(records, sales.FieldWeeklySales)
	if err != nil {
		return nil, err
	}
	groups, err := sales.AboveAverage(records, sales.ByStore, sales.FieldWeeklySales)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "avg_sales", "overall_avg", "weeks"}}
	for _, g := range groups {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(g.Key.Store),
			money(g.Value),
			money(baseline),
			strconv.Itoa(g.Rows),
		})
	}
	return t, nil
}

func avgSalesByDept(records []sales.Record, _ Params) (*Table, error) {
	groups, err := sales.AvgBy(records, sales.ByDept, sales.FieldWeeklySales, nil)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"dept", "avg_sales", "weeks"}}
	for _, g := range groups {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(g.Key.Dept),
			money(g.Value),
			strconv.Itoa(g.Rows),
		})
	}
	return t, nil
}

func holidayHighSales(records []sales.Record, p Params) (*Table, error) {
	subset, err := sales.Select(records,
		sales.And(sales.HolidayWeeks(), sales.SalesAbove(p.SalesThreshold)),
		sales.SelectOptions{})
	if err != nil {
		return nil, err
	}
	matched := sales.MatchKeys(records, sales.Keys(subset))
	rows, err := sales.Select(matched, nil, sales.SelectOptions{
		OrderBy: sales.SortBySales,
		Desc:    true,
		Limit:   p.RowLimit,
	})
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "dept", "date", "weekly_sales", "temperature", "fuel_price", "cpi", "unemployment"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Store),
			strconv.Itoa(r.Dept),
			dateStr(r.Date),
			money(r.WeeklySales),
			num(r.Temperature, 2),
			num(r.FuelPrice, 3),
			num(r.CPI, 4),
			num(r.Unemployment, 3),
		})
	}
	return t, nil
}

func runningTotalByStore(records []sales.Record, p Params) (*Table, error) {
	rows, err := sales.RunningTotal(records, sales.ByStore, sales.FieldWeeklySales)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "date", "weekly_total", "running_total"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Key.Store),
			dateStr(r.Date),
			money(r.Value),
			money(r.Running),
		})
	}
	return limitRows(t, p.RowLimit), nil
}

func strongAvgStores(records []sales.Record, p Params) (*Table, error) {
	groups, err := sales.AvgBy(records, sales.ByStore, sales.FieldWeeklySales,
		func(avg float64) bool { return avg > p.AvgThreshold })
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "avg_sales", "weeks"}}
	for _, g := range groups {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(g.Key.Store),
			money(g.Value),
			strconv.Itoa(g.Rows),
		})
	}
	return t, nil
}

func topWeeksPerDept(records []sales.Record, p Params) (*Table, error) {
	ranked, err := sales.TopNPerPartition(records, sales.ByDept, sales.FieldWeeklySales, p.TopN)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"dept", "rank", "store", "date", "weekly_sales"}}
	for _, r := range ranked {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Dept),
			strconv.Itoa(r.Rank),
			strconv.Itoa(r.Store),
			dateStr(r.Date),
			money(r.WeeklySales),
		})
	}
	return t, nil
}

func salesDrivers(records []sales.Record, p Params) (*Table, error) {
	drivers := []sales.Field{
		sales.FieldTemperature,
		sales.FieldFuelPrice,
		sales.FieldCPI,
		sales.FieldUnemployment,
	}
	t := &Table{Columns: []string{"driver", "correlation"}}
	for _, f := range drivers {
		r, err := sales.Correlation(records, sales.FieldWeeklySales, f, p.CorrPrecision)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, []string{string(f), exact(r)})
	}
	return t, nil
}

func weeklyChangeByStore(records []sales.Record, p Params) (*Table, error) {
	rows, err := sales.PeriodChange(records, sales.ByStore, sales.FieldWeeklySales, p.PctPrecision)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "date", "weekly_total", "previous", "change", "pct_change"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Key.Store),
			dateStr(r.Date),
			money(r.Value),
			optMoney(r.Previous),
			optMoney(r.Change),
			optNum(r.PctChange, p.PctPrecision),
		})
	}
	return limitRows(t, p.RowLimit), nil
}

func monthlyRunningTotal(records []sales.Record, p Params) (*Table, error) {
	rows, err := sales.RunningTotal(records, sales.ByStoreMonth, sales.FieldWeeklySales)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "month", "date", "weekly_total", "running_total"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Key.Store),
			monthStr(r.Key),
			dateStr(r.Date),
			money(r.Value),
			money(r.Running),
		})
	}
	return limitRows(t, p.RowLimit), nil
}

func salesBands(records []sales.Record, p Params) (*Table, error) {
	banded, err := sales.PercentileBand(records, p.LowerPercentile, p.UpperPercentile)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{"store", "dept", "date", "weekly_sales", "band"}}
	for _, b := range banded {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(b.Store),
			strconv.Itoa(b.Dept),
			dateStr(b.Date),
			money(b.WeeklySales),
			string(b.Band),
		})
	}
	return limitRows(t, p.RowLimit), nil
}

// "NA" mirrors the dataset's own marker for an absent value.
func optMoney(v *float64) string {
	if v == nil {
		return "NA"
	}
	return money(*v)
}

func optNum(v *float64, prec int) string {
	if v == nil {
		return "NA"
	}
	return num(*v, prec)
}
