package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/steamguess/internal/game"
	"github.com/robalobadob/steamguess/internal/reviews"
	"github.com/robalobadob/steamguess/internal/steam"
	"github.com/robalobadob/steamguess/internal/store"
)

func main() {
	cfg := loadConfig()
	if err := newRootCmd(&cfg).Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func newRootCmd(cfg *Config) *cobra.Command {
	play := newPlayCmd(cfg)
	root := &cobra.Command{
		Use:           "steamguess",
		Short:         "Guess the Steam game from one of its reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          play.RunE,
	}
	root.PersistentFlags().StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "JSON catalog file (default: embedded)")
	root.PersistentFlags().StringVar(&cfg.CatalogDB, "db", cfg.CatalogDB, "SQLite catalog database (default: in memory)")
	root.Flags().AddFlagSet(play.Flags())

	root.AddCommand(play, newServeCmd(cfg), newSeedCmd(cfg), newFetchCmd(cfg))
	return root
}

// setupLogging sets the global level; console output keeps play's stdout clean.
func setupLogging(level, def string, console bool) {
	if level == "" {
		level = def
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// openStore returns the SQLite store when a DB is configured,
// otherwise a memory store seeded from the catalog file.
func openStore(cfg *Config) (store.Store, error) {
	if cfg.CatalogDB != "" {
		db, err := store.OpenSQLite(cfg.CatalogDB)
		if err != nil {
			return nil, fmt.Errorf("open catalog db: %w", err)
		}
		return db, nil
	}
	c, err := reviews.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	return store.NewMemoryStore(c), nil
}

// loadCatalog reads the configured catalog through the store.
func loadCatalog(ctx context.Context, cfg *Config) (game.Catalog, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.Catalog(ctx)
}

func newSteamClient(cfg *Config) *steam.Client {
	return steam.NewClient(steam.Config{BaseURL: cfg.SteamBaseURL, Timeout: cfg.SteamTimeout})
}
