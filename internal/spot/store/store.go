// Package store holds the spot queries the reaper and admin summary need.
// Spot CRUD lives with the rest of the catalogue.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/wayfare/internal/reaper"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListExpired(ctx context.Context, cutoff time.Time) ([]reaper.Entry, error) {
	query := `
		SELECT id, COALESCE(image_path, ''), pending_deleted_at
		FROM spots
		WHERE pending_deleted_at IS NOT NULL AND pending_deleted_at < $1
		ORDER BY pending_deleted_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing expired spots: %w", err)
	}
	defer rows.Close()

	var entries []reaper.Entry

	for rows.Next() {
		var e reaper.Entry
		if err := rows.Scan(&e.ID, &e.ObjectKey, &e.MarkedAt); err != nil {
			return nil, fmt.Errorf("scanning spot: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spot rows: %w", err)
	}

	return entries, nil
}

// Delete only removes spots that are still marked, so a spot restored
// between listing and deleting survives.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM spots WHERE id = $1 AND pending_deleted_at IS NOT NULL`, id)
	if err != nil {
		return false, fmt.Errorf("deleting spot: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	return n > 0, nil
}

func (s *Store) CountPendingDelete(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spots WHERE pending_deleted_at IS NOT NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pending spots: %w", err)
	}

	return n, nil
}
