package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/jmoiron/sqlx"
)

// PostgresRepository implements the Repository interface using PostgreSQL.
// All documents share the kv_entries table.
type PostgresRepository struct {
	db *sqlx.DB
}

type kvEntry struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

func (r *PostgresRepository) Load(ctx context.Context, document string) (map[string]string, error) {
	query := `SELECT key, value FROM kv_entries WHERE document = $1`

	var rows []kvEntry
	if err := r.db.SelectContext(ctx, &rows, query, document); err != nil {
		return nil, fmt.Errorf("error loading %s: %w", document, err)
	}

	entries := make(map[string]string, len(rows))
	for _, row := range rows {
		entries[row.Key] = row.Value
	}
	return entries, nil
}

// Save replaces every row of the document inside one transaction
func (r *PostgresRepository) Save(ctx context.Context, document string, entries map[string]string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE document = $1`, document); err != nil {
		return fmt.Errorf("error clearing %s: %w", document, err)
	}

	query := `
		INSERT INTO kv_entries (document, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
	`
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		if _, err = tx.ExecContext(ctx, query, document, key, entries[key]); err != nil {
			return fmt.Errorf("error saving %s: %w", document, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing %s: %w", document, err)
	}
	return nil
}
