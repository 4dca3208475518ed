package session

import (
	"context"
	"database/sql"
	"fmt"

	"predmarket-cli/internal/dbx"
)

// SQLiteRepository stores session slots in the "session" table. It accepts
// a dbx.DBTX so the same code can run against *sql.DB or inside a
// transaction opened by the caller.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns the slot value, or (nil, nil) when the slot is absent.
func (r *SQLiteRepository) Get(ctx context.Context, slot string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE slot = ?`, slot).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", slot, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, slot string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (slot, value) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value
	`, slot, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", slot, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, slot string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", slot, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
