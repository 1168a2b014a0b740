package datagen

import (
	"testing"
	"time"

	"github.com/pgEdge/sales-metrics/pkg/sales"
)

func TestWeeklySalesPanelShape(t *testing.T) {
	cfg := PanelConfig{
		Stores: 3,
		Depts:  4,
		Weeks:  10,
		Start:  time.Date(2011, time.January, 7, 0, 0, 0, 0, time.UTC),
		Seed:   42,
	}

	records := WeeklySalesPanel(cfg)
	if len(records) != 3*4*10 {
		t.Fatalf("Expected %d records, got %d", 3*4*10, len(records))
	}

	// Every (store, dept, date) triple is unique.
	seen := make(map[sales.Key]bool, len(records))
	for _, r := range records {
		if seen[r.Key()] {
			t.Fatalf("Duplicate key: store %d dept %d %s", r.Store, r.Dept, r.Date)
		}
		seen[r.Key()] = true

		if r.Store < 1 || r.Store > cfg.Stores {
			t.Errorf("Store out of range: %d", r.Store)
		}
		if r.Dept < 1 || r.Dept > cfg.Depts {
			t.Errorf("Dept out of range: %d", r.Dept)
		}
		if r.Date.Before(cfg.Start) {
			t.Errorf("Date before panel start: %v", r.Date)
		}
	}
}

func TestWeeklySalesPanelIsReproducible(t *testing.T) {
	cfg := PanelConfig{
		Stores: 2,
		Depts:  2,
		Weeks:  5,
		Start:  time.Date(2011, time.January, 7, 0, 0, 0, 0, time.UTC),
		Seed:   7,
	}

	a := WeeklySalesPanel(cfg)
	b := WeeklySalesPanel(cfg)
	if len(a) != len(b) {
		t.Fatalf("Runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].WeeklySales != b[i].WeeklySales || a[i].Unemployment != b[i].Unemployment {
			t.Fatalf("Record %d differs between seeded runs", i)
		}
	}
}

func TestWeeklySalesPanelHasNullMarkdowns(t *testing.T) {
	cfg := PanelConfig{
		Stores: 2,
		Depts:  3,
		Weeks:  20,
		Start:  time.Date(2011, time.January, 7, 0, 0, 0, 0, time.UTC),
		Seed:   11,
	}

	records := WeeklySalesPanel(cfg)
	nulls, present := 0, 0
	for _, r := range records {
		if r.Markdown1 == nil {
			nulls++
		} else {
			present++
		}
	}
	// Both outcomes must occur so null-handling paths get real data.
	if nulls == 0 || present == 0 {
		t.Errorf("Expected a mix of null and present markdowns, got %d null / %d present",
			nulls, present)
	}
}

func TestIsHolidayWeek(t *testing.T) {
	tests := []struct {
		date    time.Time
		holiday bool
	}{
		{time.Date(2012, time.February, 10, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2012, time.November, 23, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2012, time.December, 28, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2012, time.June, 15, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2012, time.February, 24, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		if got := isHolidayWeek(tt.date); got != tt.holiday {
			t.Errorf("isHolidayWeek(%s) = %v, want %v",
				tt.date.Format("2006-01-02"), got, tt.holiday)
		}
	}
}
