package commands

import (
	"practice-kpi/internal/web"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var webAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the KPI bundle as a JSON HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		server := web.NewServer(orchestrator, cfg.LookbackDays)
		log.Info().Str("addr", webAddr).Msg("HTTP API starting")
		if err := server.Start(webAddr); err != nil {
			log.Fatal().Err(err).Msg("HTTP server terminated")
		}
	},
}

func init() {
	webCmd.Flags().StringVar(&webAddr, "addr", ":8080", "http listen address (host:port)")
	rootCmd.AddCommand(webCmd)
}
