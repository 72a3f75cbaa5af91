package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

// Postgres keeps the snapshot as one row of the app_state table.
type Postgres struct {
	db  *sql.DB
	key string
}

func NewPostgres(db *sql.DB, key string) *Postgres {
	return &Postgres{db: db, key: key}
}

// EnsureSchema creates the app_state table when it does not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS app_state (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating app_state table: %w", err)
	}

	return nil
}

func (s *Postgres) LoadState(ctx context.Context) ([]byte, error) {
	query := `SELECT value FROM app_state WHERE key = $1`

	var blob []byte

	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNoState
		}

		return nil, fmt.Errorf("loading state: %w", err)
	}

	return blob, nil
}

func (s *Postgres) SaveState(ctx context.Context, blob []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, s.key, string(blob)); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	return nil
}
