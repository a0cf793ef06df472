package billing_test

import (
	"context"
	"maps"
	"sync"

	"github.com/MrJamesThe3rd/wayfare/internal/billing"
	"github.com/MrJamesThe3rd/wayfare/internal/metadata"
)

// memStore is an in-memory Repository with per-row atomicity, used to check
// end-state properties that are awkward to express as call expectations.
type memStore struct {
	mu            sync.Mutex
	payments      []*billing.Payment
	subscriptions map[string]*billing.Subscription
	transactions  map[string]*billing.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		subscriptions: map[string]*billing.Subscription{},
		transactions:  map[string]*billing.Transaction{},
	}
}

func (m *memStore) BeginNotification(context.Context) (billing.NotificationTx, error) {
	return &memTx{store: m}, nil
}

func (m *memStore) CreateCheckout(_ context.Context, sub *billing.Subscription, tx *billing.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[tx.TranID]; ok {
		return billing.ErrDuplicate
	}

	s, t := *sub, *tx
	m.subscriptions[sub.ID] = &s
	m.transactions[tx.TranID] = &t

	return nil
}

func (m *memStore) GetTransaction(_ context.Context, tranID string) (*billing.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.transactions[tranID]
	if !ok {
		return nil, billing.ErrNotFound
	}

	cp := *tx
	cp.Metadata = maps.Clone(tx.Metadata)

	return &cp, nil
}

func (m *memStore) TransitionTransaction(_ context.Context, tranID string, from, to billing.Status, md metadata.Metadata) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.transactions[tranID]
	if !ok || tx.Status != from {
		return false, nil
	}

	tx.Status = to
	tx.Metadata = md

	return true, nil
}

func (m *memStore) ListTransactions(context.Context, billing.ListFilter) ([]*billing.Transaction, error) {
	return nil, nil
}

func (m *memStore) ListPayments(context.Context, billing.PaymentFilter) ([]*billing.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*billing.Payment(nil), m.payments...), nil
}

type memTx struct {
	store *memStore
	ops   []func()
}

func (t *memTx) InsertPayment(_ context.Context, p *billing.Payment) error {
	t.ops = append(t.ops, func() { t.store.payments = append(t.store.payments, p) })
	return nil
}

func (t *memTx) ActivateSubscription(_ context.Context, id string) (bool, error) {
	t.store.mu.Lock()
	_, ok := t.store.subscriptions[id]
	t.store.mu.Unlock()

	t.ops = append(t.ops, func() {
		if sub, ok := t.store.subscriptions[id]; ok {
			sub.Status = billing.SubscriptionActive
		}
	})

	return ok, nil
}

func (t *memTx) AdvanceTransaction(_ context.Context, tranID string, from, to billing.Status) (bool, error) {
	t.store.mu.Lock()
	tx, ok := t.store.transactions[tranID]
	moved := ok && tx.Status == from
	t.store.mu.Unlock()

	if moved {
		t.ops = append(t.ops, func() {
			if tx.Status == from {
				tx.Status = to
			}
		})
	}

	return moved, nil
}

func (t *memTx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, op := range t.ops {
		op()
	}

	t.ops = nil

	return nil
}

func (t *memTx) Rollback() error {
	t.ops = nil
	return nil
}
