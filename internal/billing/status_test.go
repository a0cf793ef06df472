package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/wayfare/internal/billing"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[[2]billing.Status]bool{
		{billing.StatusPending, billing.StatusCompleted}:               true,
		{billing.StatusPending, billing.StatusFailed}:                  true,
		{billing.StatusCompleted, billing.StatusRefundRequested}:       true,
		{billing.StatusRefundRequested, billing.StatusRefunded}:        true,
	}

	for _, from := range billing.Statuses {
		for _, to := range billing.Statuses {
			want := allowed[[2]billing.Status{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, billing.StatusRefundRequested.Valid())
	assert.False(t, billing.Status("settled").Valid())
}

func TestProviderStatusClassification(t *testing.T) {
	for _, s := range []string{"confirmed", "CONFIRMED", " Approved ", "paid", "succeeded"} {
		assert.True(t, billing.IsConfirmation(s), s)
		assert.False(t, billing.IsFailure(s), s)
	}

	for _, s := range []string{"failed", "DECLINED", "expired"} {
		assert.True(t, billing.IsFailure(s), s)
		assert.False(t, billing.IsConfirmation(s), s)
	}

	for _, s := range []string{"", "unknown", "pending", "PENDING"} {
		assert.False(t, billing.IsConfirmation(s), s)
		assert.False(t, billing.IsFailure(s), s)
	}
}
