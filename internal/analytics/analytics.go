// Package analytics aggregates read-only counters for the admin summary.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/wayfare/internal/clock"
)

const paymentWindow = 24 * time.Hour

type Summary struct {
	TransactionsByStatus map[string]int `json:"transactions_by_status"`
	ActiveSubscriptions  int            `json:"active_subscriptions"`
	RecentPayments       int            `json:"payments_last_24h"`
	SpotsPendingDelete   int            `json:"spots_pending_delete"`
	GeneratedAt          time.Time      `json:"generated_at"`
}

//go:generate mockgen -source=analytics.go -destination=repository_mock.go -package=analytics
type Repository interface {
	CountTransactionsByStatus(ctx context.Context) (map[string]int, error)
	CountActiveSubscriptions(ctx context.Context) (int, error)
	CountPaymentsSince(ctx context.Context, since time.Time) (int, error)
}

type SpotCounter interface {
	CountPendingDelete(ctx context.Context) (int, error)
}

type Service struct {
	repo  Repository
	spots SpotCounter
	clock clock.Clock
}

func NewService(repo Repository, spots SpotCounter, clk clock.Clock) *Service {
	return &Service{repo: repo, spots: spots, clock: clk}
}

// Summary runs the counters concurrently. Any failure fails the whole
// summary.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	now := s.clock.Now()
	out := &Summary{GeneratedAt: now}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		byStatus, err := s.repo.CountTransactionsByStatus(ctx)
		if err != nil {
			return fmt.Errorf("counting transactions: %w", err)
		}

		out.TransactionsByStatus = byStatus

		return nil
	})

	g.Go(func() error {
		n, err := s.repo.CountActiveSubscriptions(ctx)
		if err != nil {
			return fmt.Errorf("counting subscriptions: %w", err)
		}

		out.ActiveSubscriptions = n

		return nil
	})

	g.Go(func() error {
		n, err := s.repo.CountPaymentsSince(ctx, now.Add(-paymentWindow))
		if err != nil {
			return fmt.Errorf("counting payments: %w", err)
		}

		out.RecentPayments = n

		return nil
	})

	g.Go(func() error {
		n, err := s.spots.CountPendingDelete(ctx)
		if err != nil {
			return fmt.Errorf("counting spots: %w", err)
		}

		out.SpotsPendingDelete = n

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.TransactionsByStatus == nil {
		out.TransactionsByStatus = map[string]int{}
	}

	return out, nil
}
