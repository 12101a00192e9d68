package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	computeLookback  int
	computeLocations []string
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Run one orchestration and print the KPI bundle as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		locations := computeLocations
		if len(locations) == 0 {
			locations = orchestrator.Locations()
		}

		lookback := computeLookback
		if lookback <= 0 {
			lookback = cfg.LookbackDays
		}

		results, err := orchestrator.ComputeAll(context.Background(), locations, lookback)
		if err != nil {
			log.Fatal().Err(err).Msg("Compute failed")
		}

		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal results")
		}
		fmt.Fprintln(os.Stdout, string(out))
	},
}

func init() {
	computeCmd.Flags().IntVar(&computeLookback, "lookback", 0, "days of daily history to retain (default from config)")
	computeCmd.Flags().StringSliceVar(&computeLocations, "location", nil, "location(s) to compute (default: all routed locations)")
	rootCmd.AddCommand(computeCmd)
}
