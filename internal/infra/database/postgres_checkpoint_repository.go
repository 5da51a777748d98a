// internal/infra/database/postgres_checkpoint_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"homework_review_bot/internal/domain/checkpoint"
)

// checkpointName keys the single row this bot maintains, leaving room for
// several bots to share one table.
const checkpointName = "homework_review"

// PostgresCheckpointRepository stores the last-successful-cycle timestamp in
// a single-row `poll_checkpoints` table:
//
//	CREATE TABLE poll_checkpoints (
//	    name       TEXT PRIMARY KEY,
//	    checked_at BIGINT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresCheckpointRepository struct {
	db *sql.DB
}

func NewPostgresCheckpointRepository(db *sql.DB) *PostgresCheckpointRepository {
	return &PostgresCheckpointRepository{db: db}
}

func (r *PostgresCheckpointRepository) Load(ctx context.Context) (int64, error) {
	query := `SELECT checked_at FROM poll_checkpoints WHERE name = $1`
	var ts int64
	err := r.db.QueryRowContext(ctx, query, checkpointName).Scan(&ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, checkpoint.ErrCheckpointNotFound
		}
		return 0, fmt.Errorf("error loading poll checkpoint: %w", err)
	}
	return ts, nil
}

func (r *PostgresCheckpointRepository) Save(ctx context.Context, ts int64) error {
	query := `INSERT INTO poll_checkpoints (name, checked_at, updated_at)
               VALUES ($1, $2, NOW())
               ON CONFLICT (name) DO UPDATE SET checked_at = EXCLUDED.checked_at, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, checkpointName, ts); err != nil {
		return fmt.Errorf("error saving poll checkpoint: %w", err)
	}
	return nil
}
