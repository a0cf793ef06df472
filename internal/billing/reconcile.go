package billing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/wayfare/internal/apperr"
	"github.com/MrJamesThe3rd/wayfare/internal/provider"
)

//go:generate mockgen -source=reconcile.go -destination=gateway_mock.go -package=billing
type Gateway interface {
	CheckTransaction(ctx context.Context, tranID string) (*provider.CheckResult, error)
}

type CheckStatus string

const (
	CheckApproved CheckStatus = "APPROVED"
	CheckPending  CheckStatus = "PENDING"
)

type CheckResult struct {
	Status CheckStatus
	Detail *provider.Transaction
}

// Reconciler asks the provider what it knows about a transaction. It only
// detects; applying the outcome stays with the notification path so there is
// a single writer for each transition.
type Reconciler struct {
	gateway Gateway
	log     *slog.Logger
}

func NewReconciler(gateway Gateway, logger *slog.Logger) *Reconciler {
	return &Reconciler{gateway: gateway, log: logger}
}

// Check never touches the store. A query the provider cannot answer yet is
// reported as pending, since providers index new transactions lazily.
func (r *Reconciler) Check(ctx context.Context, tranID string) (*CheckResult, error) {
	if strings.TrimSpace(tranID) == "" {
		return nil, apperr.Invalid("tran_id is required")
	}

	result, err := r.gateway.CheckTransaction(ctx, tranID)
	if err != nil {
		r.log.Error("provider check failed", "tran_id", tranID, "error", err)
		return nil, apperr.Wrap(err, apperr.KindUpstreamUnavailable, "payment provider unavailable")
	}

	if !result.OK() {
		r.log.Debug("provider has no record yet", "tran_id", tranID, "code", result.Status.Code)
		return &CheckResult{Status: CheckPending}, nil
	}

	if entry, ok := result.Approved(); ok {
		return &CheckResult{Status: CheckApproved, Detail: entry}, nil
	}

	return &CheckResult{Status: CheckPending}, nil
}
