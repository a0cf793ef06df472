package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/wayfare/internal/billing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CountTransactionsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM transactions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting transactions: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}

	for rows.Next() {
		var (
			status string
			n      int
		)

		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}

		out[status] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating count rows: %w", err)
	}

	return out, nil
}

func (s *Store) CountActiveSubscriptions(ctx context.Context) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions WHERE status = $1`, billing.SubscriptionActive).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting subscriptions: %w", err)
	}

	return n, nil
}

func (s *Store) CountPaymentsSince(ctx context.Context, since time.Time) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting payments: %w", err)
	}

	return n, nil
}
