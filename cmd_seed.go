package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/steamguess/internal/reviews"
	"github.com/robalobadob/steamguess/internal/store"
)

func newSeedCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the catalog file (or the embedded one) into --db",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.LogLevel, "info", true)
			if cfg.CatalogDB == "" {
				return errors.New("seed needs --db or CATALOG_DB")
			}
			c, err := reviews.Load(cfg.CatalogFile)
			if err != nil {
				return err
			}
			db, err := store.OpenSQLite(cfg.CatalogDB)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Seed(cmd.Context(), c); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			games, revs := reviews.Stats(c)
			log.Info().Str("db", cfg.CatalogDB).Int("games", games).Int("reviews", revs).Msg("seeded")
			return nil
		},
	}
}
