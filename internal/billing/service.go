package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wayfare/internal/apperr"
	"github.com/MrJamesThe3rd/wayfare/internal/clock"
	"github.com/MrJamesThe3rd/wayfare/internal/metadata"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	BeginNotification(ctx context.Context) (NotificationTx, error)
	CreateCheckout(ctx context.Context, sub *Subscription, tx *Transaction) error

	GetTransaction(ctx context.Context, tranID string) (*Transaction, error)
	// TransitionTransaction moves tranID from one status to another and stores
	// md, but only if the row is still in from. It reports whether a row changed.
	TransitionTransaction(ctx context.Context, tranID string, from, to Status, md metadata.Metadata) (bool, error)

	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error)
}

// NotificationTx applies one provider notification atomically.
type NotificationTx interface {
	InsertPayment(ctx context.Context, p *Payment) error
	ActivateSubscription(ctx context.Context, subscriptionID string) (bool, error)
	AdvanceTransaction(ctx context.Context, tranID string, from, to Status) (bool, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo  Repository
	clock clock.Clock
	log   *slog.Logger
}

func NewService(repo Repository, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{repo: repo, clock: clk, log: logger}
}

type ListFilter struct {
	Status *Status
	Limit  int
}

type PaymentFilter struct {
	SubscriptionID *string
	ProviderRef    *string
	Limit          int
}

// Ingest records a provider notification and applies what it implies.
//
// The Payment row is always written. A confirming status activates the named
// subscription and completes the named transaction; a failure status fails a
// still-pending transaction. Activation is unconditional and therefore
// idempotent; transaction moves are conditional on the current status, so
// replays and late deliveries never regress a transaction.
func (s *Service) Ingest(ctx context.Context, n Notification) (*Payment, error) {
	p := n.payment()
	p.ID = uuid.New()
	p.CreatedAt = s.clock.Now()

	ntx, err := s.repo.BeginNotification(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning notification: %w", err)
	}
	defer ntx.Rollback()

	if err := ntx.InsertPayment(ctx, p); err != nil {
		return nil, fmt.Errorf("inserting payment: %w", err)
	}

	confirmed := IsConfirmation(p.Status)

	if confirmed && p.SubscriptionID != nil {
		found, err := ntx.ActivateSubscription(ctx, *p.SubscriptionID)
		if err != nil {
			return nil, fmt.Errorf("activating subscription: %w", err)
		}

		if !found {
			s.log.Warn("confirmed payment for unknown subscription",
				"payment_id", p.ID, "subscription_id", *p.SubscriptionID)
		}
	}

	if p.ProviderRef != nil {
		if err := s.advance(ctx, ntx, *p.ProviderRef, p.Status); err != nil {
			return nil, err
		}
	}

	if err := ntx.Commit(); err != nil {
		return nil, fmt.Errorf("committing notification: %w", err)
	}

	s.log.Info("payment notification recorded",
		"payment_id", p.ID, "provider", p.Provider, "status", p.Status, "confirmed", confirmed)

	return p, nil
}

func (s *Service) advance(ctx context.Context, ntx NotificationTx, tranID, providerStatus string) error {
	var to Status

	switch {
	case IsConfirmation(providerStatus):
		to = StatusCompleted
	case IsFailure(providerStatus):
		to = StatusFailed
	default:
		return nil
	}

	moved, err := ntx.AdvanceTransaction(ctx, tranID, StatusPending, to)
	if err != nil {
		return fmt.Errorf("advancing transaction: %w", err)
	}

	if moved {
		s.log.Info("transaction advanced", "tran_id", tranID, "status", to)
	}

	return nil
}

type CheckoutParams struct {
	TranID    string
	ProfileID string
	Tier      string
	Price     decimal.Decimal
	Currency  string
}

type CheckoutResult struct {
	Subscription *Subscription
	Transaction  *Transaction
}

// Checkout opens a pending subscription and the pending transaction that
// will pay for it.
func (s *Service) Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error) {
	if !params.Price.IsPositive() {
		return nil, apperr.Invalid("price must be positive")
	}

	now := s.clock.Now()

	sub := &Subscription{
		ID:        uuid.NewString(),
		ProfileID: params.ProfileID,
		Tier:      params.Tier,
		Status:    SubscriptionPending,
		Price:     params.Price,
		Metadata:  metadata.Metadata{"tran_id": metadata.String(params.TranID)},
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx := &Transaction{
		TranID:   params.TranID,
		Amount:   params.Price,
		Currency: strings.ToUpper(params.Currency),
		Status:   StatusPending,
		Metadata: metadata.Metadata{
			"subscription_id": metadata.String(sub.ID),
			"profile_id":      metadata.String(params.ProfileID),
			"tier":            metadata.String(params.Tier),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateCheckout(ctx, sub, tx); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, apperr.InvalidState("transaction %q already exists", params.TranID)
		}

		return nil, fmt.Errorf("creating checkout: %w", err)
	}

	return &CheckoutResult{Subscription: sub, Transaction: tx}, nil
}

// RequestRefund marks a completed transaction as awaiting refund. Money
// movement happens elsewhere.
func (s *Service) RequestRefund(ctx context.Context, tranID, reason string) (*Transaction, error) {
	reasonValue := metadata.Null()
	if reason = strings.TrimSpace(reason); reason != "" {
		reasonValue = metadata.String(reason)
	}

	return s.transition(ctx, tranID, StatusRefundRequested, metadata.Metadata{
		"refund_reason":       reasonValue,
		"refund_requested_at": metadata.String(s.clock.Now().Format(time.RFC3339)),
	})
}

// CompleteRefund records that a requested refund has been paid out.
func (s *Service) CompleteRefund(ctx context.Context, tranID string) (*Transaction, error) {
	return s.transition(ctx, tranID, StatusRefunded, metadata.Metadata{
		"refunded_at": metadata.String(s.clock.Now().Format(time.RFC3339)),
	})
}

func (s *Service) transition(ctx context.Context, tranID string, to Status, patch metadata.Metadata) (*Transaction, error) {
	if strings.TrimSpace(tranID) == "" {
		return nil, apperr.Invalid("tran_id is required")
	}

	tx, err := s.repo.GetTransaction(ctx, tranID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("transaction %q not found", tranID)
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	if !tx.Status.CanTransitionTo(to) {
		return nil, apperr.InvalidState("transaction %q is %s and cannot become %s", tranID, tx.Status, to)
	}

	merged := tx.Metadata.Merge(patch)

	moved, err := s.repo.TransitionTransaction(ctx, tranID, tx.Status, to, merged)
	if err != nil {
		return nil, fmt.Errorf("transitioning transaction: %w", err)
	}

	if !moved {
		return nil, apperr.InvalidState("transaction %q changed while being updated", tranID)
	}

	s.log.Info("transaction transitioned", "tran_id", tranID, "from", tx.Status, "to", to)

	tx.Status = to
	tx.Metadata = merged
	tx.UpdatedAt = s.clock.Now()

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Payments(ctx context.Context, filter PaymentFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}
