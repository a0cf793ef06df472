package billing

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wayfare/internal/billing"
	"github.com/MrJamesThe3rd/wayfare/internal/metadata"
	"github.com/MrJamesThe3rd/wayfare/internal/provider"
)

type paymentResponse struct {
	ID             uuid.UUID        `json:"id"`
	ProfileID      *string          `json:"profile_id"`
	SubscriptionID *string          `json:"subscription_id"`
	Provider       string           `json:"provider"`
	ProviderRef    *string          `json:"provider_ref"`
	Amount         *decimal.Decimal `json:"amount"`
	Currency       *string          `json:"currency"`
	Status         string           `json:"status"`
	RawPayload     json.RawMessage  `json:"raw_payload"`
	CreatedAt      time.Time        `json:"created_at"`
}

func toPaymentResponse(p *billing.Payment) paymentResponse {
	return paymentResponse{
		ID:             p.ID,
		ProfileID:      p.ProfileID,
		SubscriptionID: p.SubscriptionID,
		Provider:       p.Provider,
		ProviderRef:    p.ProviderRef,
		Amount:         p.Amount,
		Currency:       p.Currency,
		Status:         p.Status,
		RawPayload:     p.RawPayload,
		CreatedAt:      p.CreatedAt,
	}
}

func toPaymentResponseList(ps []*billing.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(ps))
	for i, p := range ps {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}

type transactionResponse struct {
	TranID    string            `json:"tran_id"`
	Amount    decimal.Decimal   `json:"amount"`
	Currency  string            `json:"currency"`
	Status    billing.Status    `json:"status"`
	Metadata  metadata.Metadata `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func toTransactionResponse(tx *billing.Transaction) transactionResponse {
	md := tx.Metadata
	if md == nil {
		md = metadata.Metadata{}
	}

	return transactionResponse{
		TranID:    tx.TranID,
		Amount:    tx.Amount,
		Currency:  tx.Currency,
		Status:    tx.Status,
		Metadata:  md,
		CreatedAt: tx.CreatedAt,
		UpdatedAt: tx.UpdatedAt,
	}
}

func toTransactionResponseList(txs []*billing.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toTransactionResponse(tx)
	}

	return resp
}

type checkResponse struct {
	Status billing.CheckStatus   `json:"status"`
	Detail *provider.Transaction `json:"detail,omitempty"`
}

type checkoutResponse struct {
	SubscriptionID string              `json:"subscription_id"`
	Tier           string              `json:"tier"`
	Transaction    transactionResponse `json:"transaction"`
}
