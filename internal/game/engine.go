// internal/game/engine.go
//
// Core engine for a single guessing session.
// Responsibilities:
//   - Hold the catalog the session plays from.
//   - Pick a random game and a random review of it for every round.
//   - Check a guess against the current game (trimmed, case-insensitive).
//   - Track the running score: correct guesses vs. rounds played.
//
// Notes:
//   - Randomness comes from an injected RandSource so sessions can be replayed.
//   - A round accepts one guess. After it is scored, CheckGuess reports
//     ErrNoActiveRound until NextRound is called again.
//   - The engine is not safe for concurrent use; one engine per player.
package game

import (
	"math/rand/v2"
	"strings"
)

// RandSource yields uniform integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// NewRand returns a seeded PCG source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Engine plays rounds against a catalog and keeps score.
type Engine struct {
	rng     RandSource
	catalog Catalog
	ids     []int
	round   *Round
	score   Score
}

// New constructs an engine with an empty catalog.
// If src is nil, a time-seeded source is used.
func New(src RandSource) *Engine {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{rng: src, catalog: Catalog{}}
}

// LoadCatalog replaces the catalog. The engine keeps its own copy.
// Score and the current round are left untouched.
func (e *Engine) LoadCatalog(c Catalog) {
	e.catalog = c.Clone()
	e.ids = e.catalog.IDs()
}

// Catalog returns a copy of the loaded catalog.
func (e *Engine) Catalog() Catalog { return e.catalog.Clone() }

// NextRound starts a new round and returns its review and game id.
// The game is chosen uniformly among catalog ids, then the review uniformly
// among that game's reviews. The round counts toward the total immediately.
func (e *Engine) NextRound() (string, int, error) {
	if len(e.ids) == 0 {
		return "", 0, ErrEmptyCatalog
	}
	id := e.ids[e.rng.IntN(len(e.ids))]
	entry := e.catalog[id]
	if len(entry.Reviews) == 0 {
		return "", 0, ErrEmptyCatalog
	}
	review := entry.Reviews[e.rng.IntN(len(entry.Reviews))]

	e.round = &Round{GameID: id, Game: entry.Name, Review: review}
	e.score.Total++
	return review, id, nil
}

// CheckGuess compares input with the current game name.
// Both sides are trimmed and lowercased. A match bumps the correct count.
func (e *Engine) CheckGuess(input string) (bool, error) {
	if e.round == nil || e.round.Scored {
		return false, ErrNoActiveRound
	}
	e.round.Scored = true
	if normalize(input) != normalize(e.round.Game) {
		return false, nil
	}
	e.score.Correct++
	return true, nil
}

// Abandon drops the in-progress round if it was never scored, so it no
// longer counts toward the total. It is a no-op otherwise.
func (e *Engine) Abandon() {
	if e.round == nil || e.round.Scored {
		return
	}
	e.round = nil
	e.score.Total--
}

// CurrentAccuracy reports correct / max(1, total), a ratio in [0, 1].
func (e *Engine) CurrentAccuracy() float64 { return e.score.Accuracy() }

// Correct is the number of correct guesses so far.
func (e *Engine) Correct() int { return e.score.Correct }

// TotalRounds is the number of rounds started so far.
func (e *Engine) TotalRounds() int { return e.score.Total }

// Score returns a snapshot of the score.
func (e *Engine) Score() Score { return e.score }

// Current returns the current round, if any.
func (e *Engine) Current() (Round, bool) {
	if e.round == nil {
		return Round{}, false
	}
	return *e.round, true
}

// normalize trims surrounding whitespace and lowercases s.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
