package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wayfare/internal/billing"
	"github.com/MrJamesThe3rd/wayfare/internal/metadata"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `tran_id, amount, currency, status, metadata, created_at, updated_at`

// scanTransaction expects selectTransactionColumns order.
func scanTransaction(s scanner) (*billing.Transaction, error) {
	var tx billing.Transaction

	var statusStr string

	if err := s.Scan(
		&tx.TranID, &tx.Amount, &tx.Currency, &statusStr, &tx.Metadata, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Status = billing.Status(statusStr)

	return &tx, nil
}

const selectPaymentColumns = `
	id, profile_id, subscription_id, provider, provider_ref, amount, currency, status, raw_payload, created_at
`

func scanPayment(s scanner) (*billing.Payment, error) {
	var p billing.Payment

	var profileID, subscriptionID, providerRef, currency sql.NullString

	var amount decimal.NullDecimal

	var raw []byte

	if err := s.Scan(
		&p.ID, &profileID, &subscriptionID, &p.Provider, &providerRef, &amount, &currency, &p.Status, &raw, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.ProfileID = nullString(profileID)
	p.SubscriptionID = nullString(subscriptionID)
	p.ProviderRef = nullString(providerRef)
	p.Currency = nullString(currency)
	p.RawPayload = raw

	if amount.Valid {
		p.Amount = &amount.Decimal
	}

	return &p, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}

	return &ns.String
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *Store) CreateCheckout(ctx context.Context, sub *billing.Subscription, tx *billing.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning checkout: %w", err)
	}
	defer dbTx.Rollback()

	subQuery := `
		INSERT INTO subscriptions (id, profile_id, tier, status, price, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if _, err := dbTx.ExecContext(ctx, subQuery,
		sub.ID, sub.ProfileID, sub.Tier, sub.Status, sub.Price, sub.Metadata, sub.CreatedAt, sub.UpdatedAt,
	); err != nil {
		return fmt.Errorf("creating subscription: %w", err)
	}

	txQuery := `
		INSERT INTO transactions (tran_id, amount, currency, status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := dbTx.ExecContext(ctx, txQuery,
		tx.TranID, tx.Amount, tx.Currency, tx.Status, tx.Metadata, tx.CreatedAt, tx.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return billing.ErrDuplicate
		}

		return fmt.Errorf("creating transaction: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing checkout: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, tranID string) (*billing.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE tran_id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, tranID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// TransitionTransaction is a compare-and-set on status, so two concurrent
// callers cannot both move the same row.
func (s *Store) TransitionTransaction(
	ctx context.Context, tranID string, from, to billing.Status, md metadata.Metadata,
) (bool, error) {
	query := `
		UPDATE transactions
		SET status = $1, metadata = $2, updated_at = NOW()
		WHERE tran_id = $3 AND status = $4
	`

	res, err := s.db.ExecContext(ctx, query, to, md, tranID, from)
	if err != nil {
		return false, fmt.Errorf("transitioning transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	return n == 1, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter billing.ListFilter) ([]*billing.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*billing.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) ListPayments(ctx context.Context, filter billing.PaymentFilter) ([]*billing.Payment, error) {
	var (
		conds []string
		args  []any
	)

	if filter.SubscriptionID != nil {
		args = append(args, *filter.SubscriptionID)
		conds = append(conds, fmt.Sprintf("subscription_id = $%d", len(args)))
	}

	if filter.ProviderRef != nil {
		args = append(args, *filter.ProviderRef)
		conds = append(conds, fmt.Sprintf("provider_ref = $%d", len(args)))
	}

	query := `SELECT ` + selectPaymentColumns + ` FROM payments`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*billing.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

type notificationTx struct {
	tx *sql.Tx
}

func (s *Store) BeginNotification(ctx context.Context) (billing.NotificationTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning notification tx: %w", err)
	}

	return &notificationTx{tx: dbTx}, nil
}

func (ntx *notificationTx) Commit() error   { return ntx.tx.Commit() }
func (ntx *notificationTx) Rollback() error { return ntx.tx.Rollback() }

func (ntx *notificationTx) InsertPayment(ctx context.Context, p *billing.Payment) error {
	query := `
		INSERT INTO payments (id, profile_id, subscription_id, provider, provider_ref, amount, currency, status, raw_payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var amount decimal.NullDecimal
	if p.Amount != nil {
		amount = decimal.NewNullDecimal(*p.Amount)
	}

	_, err := ntx.tx.ExecContext(ctx, query,
		p.ID,
		p.ProfileID,
		p.SubscriptionID,
		p.Provider,
		p.ProviderRef,
		amount,
		p.Currency,
		p.Status,
		[]byte(p.RawPayload),
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	return nil
}

func (ntx *notificationTx) ActivateSubscription(ctx context.Context, subscriptionID string) (bool, error) {
	query := `UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`

	res, err := ntx.tx.ExecContext(ctx, query, billing.SubscriptionActive, subscriptionID)
	if err != nil {
		return false, fmt.Errorf("activating subscription: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	return n > 0, nil
}

func (ntx *notificationTx) AdvanceTransaction(ctx context.Context, tranID string, from, to billing.Status) (bool, error) {
	query := `UPDATE transactions SET status = $1, updated_at = NOW() WHERE tran_id = $2 AND status = $3`

	res, err := ntx.tx.ExecContext(ctx, query, to, tranID, from)
	if err != nil {
		return false, fmt.Errorf("advancing transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	return n == 1, nil
}
