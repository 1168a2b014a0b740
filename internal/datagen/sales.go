//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"math"
	"time"

	"github.com/pgEdge/sales-metrics/internal/logging"
	"github.com/pgEdge/sales-metrics/pkg/sales"
)

// PanelConfig sizes a synthetic weekly sales panel.
type PanelConfig struct {
	Stores int
	Depts  int
	Weeks  int
	Start  time.Time // first weekly observation date
	Seed   uint64    // 0 = random
}

// markdownNullProbability is the chance a markdown slot has no event in a
// given week.
const markdownNullProbability = 0.6

// WeeklySalesPanel generates Stores x Depts x Weeks records with a mild
// seasonal sales curve, holiday-week flags, correlated covariates and
// sparse markdowns. The same seed always yields the same panel.
func WeeklySalesPanel(cfg PanelConfig) []sales.Record {
	var faker *Faker
	if cfg.Seed != 0 {
		faker = NewFakerWithSeed(cfg.Seed)
	} else {
		faker = NewFaker()
	}

	// Per-store and per-dept base volumes, fixed for the whole panel so
	// stores keep a stable ordering an analyst can see in reports.
	storeBase := make([]float64, cfg.Stores+1)
	for s := 1; s <= cfg.Stores; s++ {
		storeBase[s] = faker.Float64(8000, 60000)
	}
	deptScale := make([]float64, cfg.Depts+1)
	for d := 1; d <= cfg.Depts; d++ {
		deptScale[d] = faker.Float64(0.2, 1.8)
	}

	records := make([]sales.Record, 0, cfg.Stores*cfg.Depts*cfg.Weeks)
	for w := 0; w < cfg.Weeks; w++ {
		date := cfg.Start.AddDate(0, 0, 7*w)
		holiday := isHolidayWeek(date)
		season := seasonFactor(date, holiday)

		// Covariates vary per store and week, not per department.
		for s := 1; s <= cfg.Stores; s++ {
			temp := seasonalTemperature(date) + faker.Float64(-6, 6)
			fuel := faker.Float64(2.5, 4.5)
			cpi := 205 + float64(w)*0.08 + faker.Float64(-0.5, 0.5)
			unemployment := faker.Float64(4.0, 10.5)

			for d := 1; d <= cfg.Depts; d++ {
				noise := faker.Float64(0.85, 1.15)
				weekly := storeBase[s] * deptScale[d] * season * noise
				// Occasional returns-heavy week dips below zero.
				if faker.Int(1, 200) == 1 {
					weekly = -faker.Price(10, 500)
				}

				rec := sales.Record{
					Store:        s,
					Dept:         d,
					Date:         date,
					WeeklySales:  math.Round(weekly*100) / 100,
					IsHoliday:    holiday,
					Temperature:  math.Round(temp*100) / 100,
					FuelPrice:    math.Round(fuel*1000) / 1000,
					CPI:          math.Round(cpi*10000) / 10000,
					Unemployment: math.Round(unemployment*1000) / 1000,
				}

				markdowns := []**float64{
					&rec.Markdown1, &rec.Markdown2, &rec.Markdown3,
					&rec.Markdown4, &rec.Markdown5,
				}
				for _, slot := range markdowns {
					if faker.Float64(0, 1) < markdownNullProbability {
						continue
					}
					v := faker.Price(50, 20000)
					*slot = &v
				}
				records = append(records, rec)
			}
		}
	}

	logging.Debug().
		Int("stores", cfg.Stores).
		Int("depts", cfg.Depts).
		Int("weeks", cfg.Weeks).
		Int("rows", len(records)).
		Msg("Generated weekly sales panel")
	return records
}

// isHolidayWeek flags the retail holiday weeks: Super Bowl, Labor Day,
// Thanksgiving and Christmas, approximated by calendar window.
func isHolidayWeek(date time.Time) bool {
	m, d := date.Month(), date.Day()
	switch m {
	case time.February:
		return d >= 7 && d <= 13
	case time.September:
		return d >= 4 && d <= 10
	case time.November:
		return d >= 23 && d <= 29
	case time.December:
		return d >= 25 && d <= 31
	}
	return false
}

// seasonFactor lifts sales around the holiday season and dampens the
// post-holiday trough.
func seasonFactor(date time.Time, holiday bool) float64 {
	factor := 1.0
	switch date.Month() {
	case time.November, time.December:
		factor = 1.25
	case time.January:
		factor = 0.85
	}
	if holiday {
		factor *= 1.2
	}
	return factor
}

// seasonalTemperature is a northern-hemisphere yearly curve in Fahrenheit.
func seasonalTemperature(date time.Time) float64 {
	day := float64(date.YearDay())
	return 55 - 25*math.Cos(2*math.Pi*(day-15)/365)
}
