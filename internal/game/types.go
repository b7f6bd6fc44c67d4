// internal/game/types.go
//
// Core type definitions for the review-guessing engine.
// Defines:
//   - GameEntry: one game with its display name and review texts.
//   - Catalog:   the static ID → GameEntry mapping a session plays from.
//   - Round:     the review currently shown and the game it belongs to.
//   - Score:     correct guesses vs. rounds played.

package game

import (
	"errors"
	"sort"
)

var (
	// ErrEmptyCatalog is returned by NextRound when no games are loaded.
	ErrEmptyCatalog = errors.New("game: catalog is empty")

	// ErrNoActiveRound is returned by CheckGuess when there is no round
	// waiting for a guess.
	ErrNoActiveRound = errors.New("game: no active round")
)

// GameEntry is a single guessable game.
type GameEntry struct {
	ID      int      `json:"id"`      // Steam app id.
	Name    string   `json:"name"`    // Display name, compared case-insensitively.
	Reviews []string `json:"reviews"` // Review texts, each longer than 20 chars.
}

// Catalog maps game ids to entries.
type Catalog map[int]GameEntry

// IDs returns the catalog keys in ascending order.
// A fixed order keeps seeded selections reproducible.
func (c Catalog) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for id, e := range c {
		e.Reviews = append([]string(nil), e.Reviews...)
		out[id] = e
	}
	return out
}

// Round holds the state of the round in progress.
type Round struct {
	GameID int    // Id of the game the review belongs to.
	Game   string // Display name of that game.
	Review string // Review text shown to the player.
	Scored bool   // True once a guess has been checked for this round.
}

// Score is the cumulative result of a session.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy reports Correct / max(1, Total).
func (s Score) Accuracy() float64 {
	return float64(s.Correct) / float64(max(1, s.Total))
}
