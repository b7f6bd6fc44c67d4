package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/steamguess/internal/cli"
	"github.com/robalobadob/steamguess/internal/game"
)

func newPlayCmd(cfg *Config) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.LogLevel, "warn", true)
			session := uuid.NewString()
			logger := log.With().Str("session", session).Logger()

			catalog, err := loadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var src game.RandSource
			if cmd.Flags().Changed("seed") {
				src = game.NewRand(seed)
			}
			eng := game.New(src)
			eng.LoadCatalog(catalog)
			logger.Info().Int("games", len(catalog)).Uint64("seed", seed).Msg("session started")

			score, err := cli.Play(cmd.InOrStdin(), cmd.OutOrStdout(), eng)
			if errors.Is(err, game.ErrEmptyCatalog) {
				fmt.Fprintln(cmd.ErrOrStderr(), "No games to play: the catalog is empty. Run `steamguess seed` or check --catalog/--db.")
				return err
			}
			if err != nil {
				return err
			}
			logger.Info().Int("correct", score.Correct).Int("total", score.Total).Float64("accuracy", score.Accuracy()).Msg("session ended")
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the random source for a reproducible session")
	return cmd
}
