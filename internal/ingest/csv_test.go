package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/sales-metrics/pkg/sales"
)

const sampleCSV = `Store,Dept,Date,Weekly_Sales,IsHoliday,Temperature,Fuel_Price,MarkDown1,MarkDown2,MarkDown3,MarkDown4,MarkDown5,CPI,Unemployment
1,1,2012-02-03,24924.5,false,42.31,2.572,NA,NA,NA,NA,NA,211.096,8.106
1,1,2012-02-10,46039.49,true,38.51,2.548,1200.5,,NA,NA,300,211.242,8.106
2,3,2012-02-03,-58.25,false,40.19,2.572,NA,NA,NA,NA,NA,210.82,7.5
`

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	r := records[0]
	if r.Store != 1 || r.Dept != 1 {
		t.Errorf("Unexpected store/dept: %d/%d", r.Store, r.Dept)
	}
	if !r.Date.Equal(time.Date(2012, time.February, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date: %v", r.Date)
	}
	if r.WeeklySales != 24924.5 {
		t.Errorf("Unexpected weekly sales: %v", r.WeeklySales)
	}
	if r.IsHoliday {
		t.Error("Expected non-holiday week")
	}
	if r.Markdown1 != nil {
		t.Error("Expected NA markdown1 to read as null")
	}

	r = records[1]
	if !r.IsHoliday {
		t.Error("Expected holiday week")
	}
	if r.Markdown1 == nil || *r.Markdown1 != 1200.5 {
		t.Errorf("Unexpected markdown1: %v", r.Markdown1)
	}
	if r.Markdown2 != nil {
		t.Error("Expected empty markdown2 to read as null")
	}
	if r.Markdown5 == nil || *r.Markdown5 != 300 {
		t.Errorf("Unexpected markdown5: %v", r.Markdown5)
	}

	// Negative sales (returns) pass through untouched.
	if records[2].WeeklySales != -58.25 {
		t.Errorf("Unexpected weekly sales: %v", records[2].WeeklySales)
	}
}

func TestReadMissingColumn(t *testing.T) {
	csv := "Store,Dept,Date,IsHoliday,Temperature,Fuel_Price,CPI,Unemployment\n" +
		"1,1,2012-02-03,false,42.31,2.572,211.096,8.106\n"

	_, err := Read(strings.NewReader(csv))
	if err == nil {
		t.Fatal("Expected error for missing weekly_sales column")
	}
	if !errors.Is(err, sales.ErrSchemaMismatch) {
		t.Errorf("Expected ErrSchemaMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "weeklysales") {
		t.Errorf("Error should name the missing column: %v", err)
	}
}

func TestReadMissingMarkdownColumnsIsFine(t *testing.T) {
	csv := "Store,Dept,Date,Weekly_Sales,Holiday_Flag,Temperature,Fuel_Price,CPI,Unemployment\n" +
		"1,1,2012-02-03,100,1,42.31,2.572,211.096,8.106\n"

	records, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if !records[0].IsHoliday {
		t.Error("Holiday_Flag=1 should read as holiday")
	}
	if records[0].Markdown1 != nil || records[0].Markdown5 != nil {
		t.Error("Absent markdown columns should read as null")
	}
}

func TestReadRejectsDuplicateKey(t *testing.T) {
	csv := "Store,Dept,Date,Weekly_Sales,IsHoliday,Temperature,Fuel_Price,CPI,Unemployment\n" +
		"1,1,2012-02-03,100,false,42,2.5,211,8.1\n" +
		"1,1,2012-02-03,200,false,42,2.5,211,8.1\n"

	_, err := Read(strings.NewReader(csv))
	if err == nil {
		t.Fatal("Expected error for duplicate (store, dept, date)")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestReadDateLayouts(t *testing.T) {
	want := time.Date(2012, time.February, 3, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"iso", "2012-02-03", true},
		{"day-month-year dashed", "03-02-2012", true},
		{"day-month-year slashed", "03/02/2012", true},
		{"year first slashed", "2012/02/03", false},
		{"not a date", "last friday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "Store,Dept,Date,Weekly_Sales,IsHoliday,Temperature,Fuel_Price,CPI,Unemployment\n" +
				"1,1," + tt.date + ",100,false,42,2.5,211,8.1\n"

			records, err := Read(strings.NewReader(csv))
			if !tt.ok {
				if err == nil {
					t.Fatalf("Expected error for date %q", tt.date)
				}
				if !strings.Contains(err.Error(), "date") {
					t.Errorf("Error should name the date column: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !records[0].Date.Equal(want) {
				t.Errorf("Date %q read as %v, want %v", tt.date, records[0].Date, want)
			}
		})
	}
}

func TestReadRejectsBadCell(t *testing.T) {
	csv := "Store,Dept,Date,Weekly_Sales,IsHoliday,Temperature,Fuel_Price,CPI,Unemployment\n" +
		"1,1,2012-02-03,not-a-number,false,42,2.5,211,8.1\n"

	_, err := Read(strings.NewReader(csv))
	if err == nil {
		t.Fatal("Expected error for unparseable weekly_sales")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Error should carry the line number: %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	md := 1500.75
	in := []sales.Record{
		{
			Store: 4, Dept: 7,
			Date:        time.Date(2011, time.November, 25, 0, 0, 0, 0, time.UTC),
			WeeklySales: 19341.9,
			IsHoliday:   true,
			Temperature: 55.2, FuelPrice: 3.386, CPI: 218.467, Unemployment: 8.1,
			Markdown1: &md,
		},
		{
			Store: 4, Dept: 7,
			Date:        time.Date(2011, time.December, 2, 0, 0, 0, 0, time.UTC),
			WeeklySales: -12.5,
			Temperature: 48.0, FuelPrice: 3.29, CPI: 218.71, Unemployment: 8.1,
		},
	}

	var buf strings.Builder
	if err := Write(&buf, in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("Expected %d records, got %d", len(in), len(out))
	}
	for i := range in {
		a, b := in[i], out[i]
		if a.Store != b.Store || a.Dept != b.Dept || !a.Date.Equal(b.Date) {
			t.Errorf("Record %d key mismatch: %+v vs %+v", i, a, b)
		}
		if a.WeeklySales != b.WeeklySales || a.Unemployment != b.Unemployment {
			t.Errorf("Record %d value mismatch: %+v vs %+v", i, a, b)
		}
	}
	if out[0].Markdown1 == nil || *out[0].Markdown1 != md {
		t.Errorf("Markdown1 did not round trip: %v", out[0].Markdown1)
	}
	if out[1].Markdown1 != nil {
		t.Error("Null markdown1 did not round trip")
	}
}
