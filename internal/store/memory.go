// internal/store/memory.go
//
// In-memory implementation of the catalog Store.
// Used when no CATALOG_DB is configured: the catalog lives for the process
// lifetime and is seeded from the embedded/JSON catalog.
//
// Characteristics:
//   - Stores game.GameEntry values keyed by id in a map.
//   - Concurrency-safe via RWMutex (the HTTP server reads concurrently).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/steamguess/internal/game"
)

// ErrNotFound is returned when a game id is not in the store.
var ErrNotFound = errors.New("store: game not found")

// Store defines the persistence interface for catalog data.
// Implementations may be backed by memory (this package) or SQLite.
type Store interface {
	// Catalog returns a snapshot of every stored game.
	Catalog(ctx context.Context) (game.Catalog, error)

	// Get retrieves a single game by id.
	Get(ctx context.Context, id int) (game.GameEntry, error)

	// SaveEntry adds a game or replaces its name and reviews.
	SaveEntry(ctx context.Context, e game.GameEntry) error

	// Close releases underlying resources.
	Close() error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex // guards games map
	games game.Catalog
}

// NewMemoryStore constructs an in-memory Store holding a copy of c.
func NewMemoryStore(c game.Catalog) Store {
	if c == nil {
		c = game.Catalog{}
	}
	return &memory{games: c.Clone()}
}

func (m *memory) Catalog(ctx context.Context) (game.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.games.Clone(), nil
}

func (m *memory) Get(ctx context.Context, id int) (game.GameEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return game.GameEntry{}, ErrNotFound
	}
	e.Reviews = append([]string(nil), e.Reviews...)
	return e, nil
}

func (m *memory) SaveEntry(ctx context.Context, e game.GameEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Reviews = append([]string(nil), e.Reviews...)
	m.games[e.ID] = e
	return nil
}

func (m *memory) Close() error { return nil }
