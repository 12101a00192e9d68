package commands

import (
	"practice-kpi/internal/config"
	"practice-kpi/internal/kpi"
	"practice-kpi/internal/logging"
	"practice-kpi/internal/mcp"
	"practice-kpi/internal/sheets"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	fetcher      sheets.Fetcher
	orchestrator *kpi.Orchestrator
)

var rootCmd = &cobra.Command{
	Use:   "practice-kpi",
	Short: "practice-kpi is a historical KPI engine and MCP server for dental practice sheets",
	Long: `Aggregates daily operational records (production, collections, new patients,
case acceptance, hygiene reappointment) from spreadsheet sources into daily,
weekly, and monthly KPI views per location. The root command serves the
engine as MCP tools over Stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		// Initialize the fetch collaborator
		if cfg.Offline {
			store := sheets.NewSnapshotStore(cfg.SnapshotDir)
			fetcher = sheets.NewSnapshotFetcher(store)
			log.Info().Str("dir", cfg.SnapshotDir).Msg("Running against local snapshots")
		} else {
			fetcher = sheets.NewClient(cfg.Sheets)
		}

		orchestrator = kpi.NewOrchestrator(kpi.NewRouter(cfg.Routes), fetcher)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("practice-kpi starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(orchestrator, cfg.LookbackDays)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("MCP server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
