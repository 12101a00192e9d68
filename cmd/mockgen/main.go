package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"practice-kpi/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "clean", "Scenario to generate: clean, legacy, messy")
	outDir := flag.String("out", "./snapshots", "Output directory for snapshot files")
	routesOut := flag.String("routes", "./routes.yaml", "Output path for the generated routes file")
	days := flag.Int("days", 60, "Number of calendar days to generate")
	seed := flag.Int64("seed", 42, "Deterministic random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Days:     *days,
		Seed:     *seed,
		End:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (%d days) to %s...\n", cfg.Scenario, cfg.Days, *outDir)

	if err := engine.Generate(cfg, *outDir, *routesOut); err != nil {
		fmt.Printf("Failed to generate mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
