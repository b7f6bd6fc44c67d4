// internal/cli/play.go
//
// Terminal play loop around the game engine.
// Reads one guess per line, prints feedback and the running score,
// and ends on "quit" (any case) or end of input.

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/steamguess/internal/game"
)

// QuitWord ends the session when typed as a guess (case-insensitive).
const QuitWord = "quit"

var rule = strings.Repeat("=", 60)

// Play runs rounds until the player quits or input ends.
// The returned score only counts answered rounds.
func Play(in io.Reader, out io.Writer, eng *game.Engine) (game.Score, error) {
	sc := bufio.NewScanner(in)

	fmt.Fprintf(out, "\n%s\nSTEAM GAME GUESSER\n%s\n", rule, rule)
	fmt.Fprintln(out, "Read the review and guess the game name!")
	fmt.Fprintf(out, "Type '%s' to exit\n\n", QuitWord)

	for {
		review, id, err := eng.NextRound()
		if err != nil {
			return eng.Score(), err
		}
		log.Debug().Int("appId", id).Int("round", eng.TotalRounds()).Msg("round started")

		fmt.Fprintf(out, "\nReview: %q\n\n", review)
		fmt.Fprint(out, "Your guess: ")

		if !sc.Scan() {
			eng.Abandon()
			if err := sc.Err(); err != nil {
				return eng.Score(), fmt.Errorf("read guess: %w", err)
			}
			fmt.Fprintln(out)
			break
		}
		guess := strings.TrimSpace(sc.Text())
		if strings.EqualFold(guess, QuitWord) {
			eng.Abandon()
			break
		}

		ok, err := eng.CheckGuess(guess)
		if err != nil {
			return eng.Score(), err
		}
		cur, _ := eng.Current()
		if ok {
			fmt.Fprintf(out, "✓ Correct! It's %s!\n", cur.Game)
		} else {
			fmt.Fprintf(out, "✗ Wrong! The game was: %s\n", cur.Game)
		}
		fmt.Fprintf(out, "Score: %d/%d\n", eng.Correct(), eng.TotalRounds())
	}

	Summary(out, eng.Score())
	return eng.Score(), nil
}

// Summary prints the final score and accuracy.
func Summary(out io.Writer, s game.Score) {
	fmt.Fprintf(out, "\n%s\n", rule)
	fmt.Fprintf(out, "Final Score: %d/%d\n", s.Correct, s.Total)
	fmt.Fprintf(out, "Accuracy: %.1f%%\n", s.Accuracy()*100)
	fmt.Fprintln(out, rule)
}
