package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/steamguess/internal/httpserver"
)

func newServeCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only catalog API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.LogLevel, "info", false)

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := httpserver.New(st, newSteamClient(cfg), httpserver.Options{
				ClientOrigin:      cfg.ClientOrigin,
				JWTSecret:         cfg.JWTSecret,
				TokenTTL:          cfg.TokenTTL,
				AdminPasswordHash: cfg.AdminPasswordHash,
				DailySalt:         cfg.DailySalt,
			})
			if cfg.JWTSecret == "" {
				log.Warn().Msg("JWT_SECRET not set, using development secret")
			}
			log.Info().Str("port", cfg.Port).Bool("sqlite", cfg.CatalogDB != "").Msg("starting catalog server")
			return srv.Start(":" + cfg.Port)
		},
	}
	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	return cmd
}
