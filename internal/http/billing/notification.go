package billing

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wayfare/internal/apperr"
	"github.com/MrJamesThe3rd/wayfare/internal/billing"
)

// parseNotification reads a provider webhook body. Providers disagree on
// field types, so ids may arrive as strings or numbers and amounts as either.
// Fields of any other shape are treated as absent, and a JSON value that is
// not an object has no known fields but is still recorded.
func parseNotification(body []byte) (billing.Notification, error) {
	if !json.Valid(body) {
		return billing.Notification{}, apperr.Invalid("webhook body must be JSON")
	}

	n := billing.Notification{Raw: json.RawMessage(body)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return n, nil
	}

	n.ProfileID = text(fields, "profile_id")
	n.SubscriptionID = text(fields, "subscription_id")
	n.Provider = text(fields, "provider")
	n.ProviderRef = text(fields, "provider_ref")
	n.Amount = amount(fields, "amount")
	n.Currency = text(fields, "currency")
	n.Status = text(fields, "status")

	return n, nil
}

func text(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return &s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		s = n.String()
		return &s
	}

	return nil
}

func amount(fields map[string]json.RawMessage, key string) *decimal.Decimal {
	s := text(fields, key)
	if s == nil || *s == "" {
		return nil
	}

	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}

	return &d
}
