package billing

import "strings"

// Status is the canonical lifecycle state of a Transaction.
type Status string

const (
	StatusPending         Status = "pending"
	StatusCompleted       Status = "completed"
	StatusRefundRequested Status = "refund_requested"
	StatusRefunded        Status = "refunded"
	StatusFailed          Status = "failed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusCompleted,
	StatusRefundRequested,
	StatusRefunded,
	StatusFailed,
}

// Status only moves forward: pending→completed→refund_requested→refunded,
// or pending→failed.
var transitions = map[Status]Status{
	StatusCompleted:       StatusPending,
	StatusFailed:          StatusPending,
	StatusRefundRequested: StatusCompleted,
	StatusRefunded:        StatusRefundRequested,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}

	return false
}

// CanTransitionTo reports whether next directly follows s.
func (s Status) CanTransitionTo(next Status) bool {
	from, ok := transitions[next]
	return ok && from == s
}

// Provider status strings are free-form; these sets decide what a
// notification means for local state.
var (
	confirmationStatuses = map[string]struct{}{
		"confirmed": {}, "completed": {}, "approved": {}, "paid": {},
		"success": {}, "succeeded": {}, "successful": {},
	}
	failureStatuses = map[string]struct{}{
		"failed": {}, "declined": {}, "rejected": {}, "cancelled": {},
		"canceled": {}, "expired": {},
	}
)

// IsConfirmation reports whether a provider status means the money was captured.
func IsConfirmation(providerStatus string) bool {
	_, ok := confirmationStatuses[strings.ToLower(strings.TrimSpace(providerStatus))]
	return ok
}

// IsFailure reports whether a provider status means the payment will never settle.
func IsFailure(providerStatus string) bool {
	_, ok := failureStatuses[strings.ToLower(strings.TrimSpace(providerStatus))]
	return ok
}
