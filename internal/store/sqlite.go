// internal/store/sqlite.go
//
// SQLite-backed catalog Store.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Reading and writing games with their ordered reviews.
//
// Only catalog data is stored here; scores never leave the process.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/steamguess/assets"
	"github.com/robalobadob/steamguess/internal/game"
)

// SQLite is a Store persisted in a SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite catalog and migrates it.
// ":memory:" is accepted for tests.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// openDB ensures the parent directory exists and applies pragmas.
func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies embedded sql/*.sql files in lexical order,
// skipping those already recorded in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	names, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, name := range names {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlText, err := assets.Migration(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(sqlText); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

// Catalog loads every game with its reviews in stored order.
func (s *SQLite) Catalog(ctx context.Context) (game.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT g.id, g.name, r.body
        FROM games g
        JOIN reviews r ON r.game_id = g.id
        ORDER BY g.id, r.position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := game.Catalog{}
	for rows.Next() {
		var (
			id         int
			name, body string
		)
		if err := rows.Scan(&id, &name, &body); err != nil {
			return nil, err
		}
		e := c[id]
		e.ID, e.Name = id, name
		e.Reviews = append(e.Reviews, body)
		c[id] = e
	}
	return c, rows.Err()
}

// Get loads a single game.
func (s *SQLite) Get(ctx context.Context, id int) (game.GameEntry, error) {
	e := game.GameEntry{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT name FROM games WHERE id=?`, id).Scan(&e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return game.GameEntry{}, ErrNotFound
	}
	if err != nil {
		return game.GameEntry{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT body FROM reviews WHERE game_id=? ORDER BY position`, id)
	if err != nil {
		return game.GameEntry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return game.GameEntry{}, err
		}
		e.Reviews = append(e.Reviews, body)
	}
	return e, rows.Err()
}

// SaveEntry upserts the game row and replaces its reviews in one transaction.
func (s *SQLite) SaveEntry(ctx context.Context, e game.GameEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveEntry(ctx, tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

// Seed writes every entry of c in a single transaction.
func (s *SQLite) Seed(ctx context.Context, c game.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range c.IDs() {
		if err := saveEntry(ctx, tx, c[id]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info().Int("games", len(c)).Msg("catalog seeded")
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

func saveEntry(ctx context.Context, tx *sql.Tx, e game.GameEntry) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO games (id, name, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET name=excluded.name, updated_at=excluded.updated_at`,
		e.ID, strings.TrimSpace(e.Name), now,
	); err != nil {
		return fmt.Errorf("upsert game %d: %w", e.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE game_id=?`, e.ID); err != nil {
		return fmt.Errorf("clear reviews %d: %w", e.ID, err)
	}
	for i, body := range e.Reviews {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reviews (game_id, position, body) VALUES (?, ?, ?)`, e.ID, i, body,
		); err != nil {
			return fmt.Errorf("insert review %d/%d: %w", e.ID, i, err)
		}
	}
	return nil
}
