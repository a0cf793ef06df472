package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/wayfare/internal/apperr"
)

func TestKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindUnauthorized, http.StatusUnauthorized},
		{apperr.KindForbidden, http.StatusForbidden},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindGone, http.StatusGone},
		{apperr.KindInvalidState, http.StatusBadRequest},
		{apperr.KindInvalid, http.StatusBadRequest},
		{apperr.KindUpstreamUnavailable, http.StatusBadGateway},
		{apperr.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestKindOf_WrappedChain(t *testing.T) {
	err := fmt.Errorf("refunding: %w", apperr.NotFound("transaction %q not found", "TX-9"))

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, `transaction "TX-9" not found`, apperr.Message(err))
}

func TestMessage_InternalDoesNotLeak(t *testing.T) {
	err := fmt.Errorf("inserting payment: %w", errors.New("pq: connection refused"))

	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, "internal error", apperr.Message(err))

	wrapped := apperr.Wrap(errors.New("dial tcp: timeout"), apperr.KindInternal, "saving")
	assert.Equal(t, "internal error", apperr.Message(wrapped))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, apperr.Wrap(nil, apperr.KindUpstreamUnavailable, "gateway"))
}
