package engine

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"practice-kpi/internal/kpi"
	"practice-kpi/internal/sheets"
)

// GeneratorConfig controls snapshot generation.
type GeneratorConfig struct {
	Scenario string // clean, legacy, messy
	Days     int
	Seed     int64
	End      time.Time
}

var locations = []string{"baytown", "humble"}

// Generate writes one snapshot per (location, dataset) alias plus a matching
// routes.yaml, so `practice-kpi --offline` runs against the mock data as-is.
//
// Scenarios:
//   - clean:  current-schema headers, plain numerics
//   - legacy: old header spellings (exercises variant fallback)
//   - messy:  currency strings, duplicate same-day rows, junk rows
func Generate(cfg GeneratorConfig, outDir, routesPath string) error {
	if cfg.Days <= 0 {
		cfg.Days = 60
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	store := sheets.NewSnapshotStore(outDir)

	routes := kpi.Routes{
		Sources:   map[string]kpi.SourceRef{},
		Locations: map[string]map[string]string{},
	}

	for _, location := range locations {
		eodAlias := location + "_eod"
		frontAlias := location + "_front"
		routes.Locations[location] = map[string]string{
			kpi.DatasetEOD:   eodAlias,
			kpi.DatasetFront: frontAlias,
		}
		routes.Sources[eodAlias] = kpi.SourceRef{SpreadsheetID: "mock-" + eodAlias, Range: "EOD!A:F"}
		routes.Sources[frontAlias] = kpi.SourceRef{SpreadsheetID: "mock-" + frontAlias, Range: "KPI!A:F"}

		eod := generateEOD(cfg, rng)
		front := generateFront(cfg, rng)

		if err := store.Save("mock-"+eodAlias, "EOD!A:F", eod); err != nil {
			return err
		}
		if err := store.Save("mock-"+frontAlias, "KPI!A:F", front); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(routes)
	if err != nil {
		return fmt.Errorf("failed to marshal routes: %w", err)
	}
	if err := os.WriteFile(routesPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write routes file: %w", err)
	}
	return nil
}

func generateEOD(cfg GeneratorConfig, rng *rand.Rand) *sheets.Table {
	headers := []any{"Submission Date", "Total Production Today", "Adjustments Today", "Write-offs Today", "Total Collections Today", "New Patients - Total Month to Date"}
	if cfg.Scenario == "legacy" {
		headers = []any{"Date", "Production", "Adjustments", "Writeoffs", "Collections", "New Patients MTD"}
	}

	values := [][]any{headers}
	mtd := 0
	for _, day := range businessDays(cfg) {
		if day.Day() == 1 {
			mtd = 0 // month-to-date counter resets
		}
		mtd += rng.Intn(4)

		production := 4000 + rng.Float64()*3000
		adjustments := rng.Float64() * 300
		writeoffs := -rng.Float64() * 200
		collections := production * (0.82 + rng.Float64()*0.15)

		row := []any{
			day.Format("2006-01-02"),
			cell(cfg, rng, production),
			cell(cfg, rng, adjustments),
			cell(cfg, rng, writeoffs),
			cell(cfg, rng, collections),
			float64(mtd),
		}
		values = append(values, row)

		if cfg.Scenario == "messy" && rng.Intn(10) == 0 {
			// A second submission for the same day: amounts must sum, the
			// cumulative counter must keep only this last row.
			mtd += rng.Intn(2)
			values = append(values, []any{
				day.Format("2006-01-02"),
				cell(cfg, rng, rng.Float64()*500),
				"0", "0",
				cell(cfg, rng, rng.Float64()*400),
				float64(mtd),
			})
		}
	}

	if cfg.Scenario == "messy" {
		values = append(values, []any{"totals", "n/a", "", "", "see above", ""})
	}

	return sheets.NewTable(values)
}

func generateFront(cfg GeneratorConfig, rng *rand.Rand) *sheets.Table {
	headers := []any{"Submission Date", "Treatments Presented", "Treatments Scheduled", "Same Day Treatment", "Total hygiene Appointments", "Number of patients NOT reappointed?"}
	if cfg.Scenario == "legacy" {
		headers = []any{"Date", "treatments_presented", "treatments_scheduled", "same_day_treatment", "total_hygiene_appointments", "patients_not_reappointed"}
	}

	values := [][]any{headers}
	for _, day := range businessDays(cfg) {
		presented := 5 + rng.Intn(15)
		scheduled := rng.Intn(presented + 1)
		sameDay := rng.Intn(presented - scheduled + 1)
		hygiene := 4 + rng.Intn(12)
		notReappointed := rng.Intn(3)

		values = append(values, []any{
			day.Format("2006-01-02"),
			float64(presented),
			float64(scheduled),
			float64(sameDay),
			float64(hygiene),
			float64(notReappointed),
		})
	}

	return sheets.NewTable(values)
}

// businessDays returns the Monday-Saturday days in the generation window.
func businessDays(cfg GeneratorConfig) []time.Time {
	var days []time.Time
	end := kpi.Day(cfg.End)
	for i := cfg.Days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		if day.Weekday() == time.Sunday {
			continue
		}
		days = append(days, day)
	}
	return days
}

// cell renders an amount the way the scenario's sheet would: messy sheets
// use currency strings with thousands separators and accounting negatives.
func cell(cfg GeneratorConfig, rng *rand.Rand, v float64) any {
	if cfg.Scenario != "messy" {
		return v
	}
	if v < 0 {
		return fmt.Sprintf("($%.2f)", -v)
	}
	if rng.Intn(2) == 0 {
		return fmt.Sprintf("$%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
