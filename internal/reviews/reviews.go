// internal/reviews/reviews.go
//
// Provides catalog loading for the game engine.
//
// Responsibilities:
//   - Load the catalog from a JSON file or fall back to the embedded default.
//   - Validate entries (name present, at least one review, reviews long enough).
//   - Normalize review lists coming from outside sources (trim, drop short ones).
//   - Supply small helpers like Stats.
//
// Catalog file format (CATALOG_FILE):
//   [
//     {"id": 570, "name": "Dota 2", "reviews": ["...", "..."]},
//     ...
//   ]
//
// Constraints:
//   • Ids are unique and positive.
//   • Every review is longer than MinReviewLen characters after trimming.

package reviews

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/steamguess/assets"
	"github.com/robalobadob/steamguess/internal/game"
)

// MinReviewLen is the exclusive lower bound on review length.
const MinReviewLen = 20

// ValidationError describes the first problem found in a catalog.
type ValidationError struct {
	GameID int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("reviews: game %d: %s", e.GameID, e.Reason)
}

// Load reads a catalog. An empty path selects the embedded default.
func Load(path string) (game.Catalog, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = assets.CatalogJSON()
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reviews: read catalog: %w", err)
	}
	return Parse(raw)
}

// Default returns the embedded catalog.
func Default() (game.Catalog, error) { return Load("") }

// Parse decodes and validates a JSON catalog document.
func Parse(raw []byte) (game.Catalog, error) {
	var entries []game.GameEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("reviews: decode catalog: %w", err)
	}
	c := make(game.Catalog, len(entries))
	for _, e := range entries {
		if _, dup := c[e.ID]; dup {
			return nil, &ValidationError{GameID: e.ID, Reason: "duplicate id"}
		}
		c[e.ID] = e
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every entry of c.
func Validate(c game.Catalog) error {
	for _, id := range c.IDs() {
		if err := ValidateEntry(c[id]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEntry checks a single entry.
func ValidateEntry(e game.GameEntry) error {
	switch {
	case e.ID <= 0:
		return &ValidationError{GameID: e.ID, Reason: "id must be positive"}
	case strings.TrimSpace(e.Name) == "":
		return &ValidationError{GameID: e.ID, Reason: "missing name"}
	case len(e.Reviews) == 0:
		return &ValidationError{GameID: e.ID, Reason: "no reviews"}
	}
	for i, r := range e.Reviews {
		if !longEnough(r) {
			return &ValidationError{GameID: e.ID, Reason: fmt.Sprintf("review %d is %d chars or shorter", i, MinReviewLen)}
		}
	}
	return nil
}

// Normalize trims each review and keeps those longer than MinReviewLen,
// capped at limit entries (limit <= 0 means no cap).
func Normalize(in []string, limit int) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		r = strings.TrimSpace(r)
		if !longEnough(r) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Entries returns the catalog as a slice ordered by id.
func Entries(c game.Catalog) []game.GameEntry {
	out := make([]game.GameEntry, 0, len(c))
	for _, id := range c.IDs() {
		out = append(out, c[id])
	}
	return out
}

// Stats returns counts of loaded data: (games, reviews).
func Stats(c game.Catalog) (games int, reviews int) {
	for _, e := range c {
		reviews += len(e.Reviews)
	}
	return len(c), reviews
}

func longEnough(r string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(r)) > MinReviewLen
}
