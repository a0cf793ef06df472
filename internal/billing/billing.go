package billing

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wayfare/internal/metadata"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Transaction is one attempt to move money through the provider. TranID is
// assigned by the provider flow and never changes.
type Transaction struct {
	TranID    string
	Amount    decimal.Decimal
	Currency  string
	Status    Status
	Metadata  metadata.Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment is one accepted provider notification. Payments are append-only.
type Payment struct {
	ID             uuid.UUID
	ProfileID      *string
	SubscriptionID *string
	Provider       string
	ProviderRef    *string
	Amount         *decimal.Decimal
	Currency       *string
	Status         string // as reported by the provider
	RawPayload     json.RawMessage
	CreatedAt      time.Time
}

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	ID        string
	ProfileID string
	Tier      string
	Status    SubscriptionStatus
	Price     decimal.Decimal
	Metadata  metadata.Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Notification is a provider webhook after lenient parsing. Any field may be
// absent; Raw holds the body exactly as received.
type Notification struct {
	ProfileID      *string
	SubscriptionID *string
	Provider       *string
	ProviderRef    *string
	Amount         *decimal.Decimal
	Currency       *string
	Status         *string
	Raw            json.RawMessage
}

const unknown = "unknown"

func (n Notification) payment() *Payment {
	p := &Payment{
		ProfileID:      nonEmpty(n.ProfileID),
		SubscriptionID: nonEmpty(n.SubscriptionID),
		Provider:       unknown,
		ProviderRef:    nonEmpty(n.ProviderRef),
		Amount:         n.Amount,
		Currency:       nonEmpty(n.Currency),
		Status:         unknown,
		RawPayload:     n.Raw,
	}

	if v := nonEmpty(n.Provider); v != nil {
		p.Provider = *v
	}

	if v := nonEmpty(n.Status); v != nil {
		p.Status = *v
	}

	if len(p.RawPayload) == 0 {
		p.RawPayload = json.RawMessage("{}")
	}

	return p
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}

	return s
}
