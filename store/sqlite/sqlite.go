/*
Package sqlite provides a SQLite-backed presets.Store.

PURPOSE:
  Persists the preset catalog so presets added through PRESETS_FILE or a
  future admin surface survive restarts. Calculation inputs are never
  written here.

KEY TABLES:
  presets:  id, name, category, config_json, version, timestamps

SCHEMA MIGRATIONS:
  Versioned SQL files under migrations/ are embedded in the binary and
  applied by golang-migrate on New(). Add a new numbered pair of
  .up.sql/.down.sql files to change the schema.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and a single open connection so an
  in-memory database is shared by every query.

USAGE:
  store, err := sqlite.New("./data/presets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - presets/presets.go: Store interface
  - store/memory: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/accruemind/accrual-engine/presets"
)

// Store implements presets.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the connection; used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// =============================================================================
// PRESETS
// =============================================================================

// SavePreset inserts a preset or updates it in place, bumping its version.
func (s *Store) SavePreset(ctx context.Context, rec presets.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO presets (id, name, category, config_json, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			config_json = excluded.config_json,
			version = presets.version + 1,
			updated_at = excluded.updated_at
	`

	version := rec.Version
	if version == 0 {
		version = 1
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Name, string(rec.Category), rec.ConfigJSON, version, now, now,
	)
	if err != nil {
		return fmt.Errorf("save preset %s: %w", rec.ID, err)
	}
	return nil
}

// GetPreset retrieves a preset by ID. Returns (nil, nil) if not found.
func (s *Store) GetPreset(ctx context.Context, id string) (*presets.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, category, config_json, version, created_at, updated_at FROM presets WHERE id = ?",
		id,
	)
	rec, err := scanPreset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preset %s: %w", id, err)
	}
	return rec, nil
}

// ListPresets returns all presets ordered by name.
func (s *Store) ListPresets(ctx context.Context) ([]presets.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, config_json, version, created_at, updated_at FROM presets ORDER BY name, id",
	)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []presets.Record
	for rows.Next() {
		rec, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// DeletePreset removes a preset. Deleting a missing id is not an error.
func (s *Store) DeletePreset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM presets WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*presets.Record, error) {
	var rec presets.Record
	var category, createdAt, updatedAt string

	err := row.Scan(&rec.ID, &rec.Name, &category, &rec.ConfigJSON, &rec.Version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rec.Category = presets.Category(category)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

var _ presets.Store = (*Store)(nil)
