package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/steamguess/internal/reviews"
	"github.com/robalobadob/steamguess/internal/steam"
	"github.com/robalobadob/steamguess/internal/store"
)

func newFetchCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <appid>...",
		Short: "Fetch games and reviews from Steam into --db",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.LogLevel, "info", true)
			if cfg.CatalogDB == "" {
				return errors.New("fetch needs --db or CATALOG_DB")
			}
			ids := make([]int, 0, len(args))
			for _, a := range args {
				id, err := strconv.Atoi(a)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid app id %q", a)
				}
				ids = append(ids, id)
			}

			db, err := store.OpenSQLite(cfg.CatalogDB)
			if err != nil {
				return err
			}
			defer db.Close()
			client := newSteamClient(cfg)

			var failed int
			for _, id := range ids {
				e, err := client.Entry(cmd.Context(), id)
				var nerr *steam.NetworkError
				if errors.As(err, &nerr) {
					log.Warn().Err(err).Int("appId", id).Msg("steam fetch failed")
					failed++
					continue
				}
				if err != nil {
					return err
				}
				if err := reviews.ValidateEntry(e); err != nil {
					log.Warn().Err(err).Int("appId", id).Msg("skipping entry")
					failed++
					continue
				}
				if err := db.SaveEntry(cmd.Context(), e); err != nil {
					return err
				}
				log.Info().Int("appId", id).Str("name", e.Name).Int("reviews", len(e.Reviews)).Msg("fetched")
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d apps could not be fetched", failed, len(ids))
			}
			return nil
		},
	}
}
