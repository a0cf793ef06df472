package billing_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wayfare/internal/auth"
	"github.com/MrJamesThe3rd/wayfare/internal/billing"
	"github.com/MrJamesThe3rd/wayfare/internal/clock"
	"github.com/MrJamesThe3rd/wayfare/internal/http/authz"
	billinghttp "github.com/MrJamesThe3rd/wayfare/internal/http/billing"
	"github.com/MrJamesThe3rd/wayfare/internal/metadata"
	"github.com/MrJamesThe3rd/wayfare/internal/provider"
)

type mocks struct {
	repo    *billing.MockRepository
	ntx     *billing.MockNotificationTx
	gateway *billing.MockGateway
	auth    *auth.MockRepository
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func setup(t *testing.T) (http.Handler, *mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:    billing.NewMockRepository(ctrl),
		ntx:     billing.NewMockNotificationTx(ctrl),
		gateway: billing.NewMockGateway(ctrl),
		auth:    auth.NewMockRepository(ctrl),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewManual(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))

	h := billinghttp.NewHandler(
		billing.NewService(m.repo, clk, logger),
		billing.NewReconciler(m.gateway, logger),
		authz.NewGuard(auth.NewResolver(m.auth, "", logger)),
	)

	r := chi.NewRouter()
	r.Route("/webhooks", h.WebhookRoutes)
	r.Route("/payments", h.Routes)

	return r, m
}

func do(t *testing.T, h http.Handler, method, path, profileID string, body []byte) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if profileID != "" {
		req.Header.Set(authz.HeaderProfileID, profileID)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec.Code, env
}

func expectNotification(m *mocks, check func(p *billing.Payment)) {
	m.repo.EXPECT().BeginNotification(gomock.Any()).Return(m.ntx, nil)
	m.ntx.EXPECT().InsertPayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, p *billing.Payment) error {
		if check != nil {
			check(p)
		}

		return nil
	})
	m.ntx.EXPECT().Commit().Return(nil)
	m.ntx.EXPECT().Rollback().Return(nil)
}

func TestHandler_Webhook(t *testing.T) {
	t.Run("ConfirmedActivates", func(t *testing.T) {
		h, m := setup(t)

		body := []byte(`{"subscription_id":"sub-1","status":"confirmed","amount":29.99,"currency":"USD"}`)

		expectNotification(m, func(p *billing.Payment) {
			assert.Equal(t, "sub-1", *p.SubscriptionID)
			assert.Equal(t, "29.99", p.Amount.String())
			assert.JSONEq(t, string(body), string(p.RawPayload))
		})
		m.ntx.EXPECT().ActivateSubscription(gomock.Any(), "sub-1").Return(true, nil)

		code, env := do(t, h, http.MethodPost, "/webhooks/payments", "", body)
		require.Equal(t, http.StatusCreated, code)
		assert.True(t, env.Success)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "confirmed", data["status"])
		assert.Equal(t, "unknown", data["provider"])
	})

	t.Run("LenientFieldTypes", func(t *testing.T) {
		h, m := setup(t)

		expectNotification(m, func(p *billing.Payment) {
			assert.Equal(t, "42", *p.SubscriptionID)
			assert.Equal(t, "10.5", p.Amount.String())
			assert.Nil(t, p.Currency, "non-scalar field is ignored")
			assert.Equal(t, "unknown", p.Status)
		})

		code, _ := do(t, h, http.MethodPost, "/webhooks/payments", "",
			[]byte(`{"subscription_id":42,"amount":"10.50","currency":{"code":"USD"}}`))
		assert.Equal(t, http.StatusCreated, code)
	})

	t.Run("Latin1Body", func(t *testing.T) {
		h, m := setup(t)

		expectNotification(m, func(p *billing.Payment) {
			assert.Equal(t, "café", p.Provider)
		})

		code, _ := do(t, h, http.MethodPost, "/webhooks/payments", "", []byte("{\"provider\":\"caf\xe9\",\"status\":\"pending\"}"))
		assert.Equal(t, http.StatusCreated, code)
	})

	t.Run("NotJSON", func(t *testing.T) {
		h, _ := setup(t)

		code, env := do(t, h, http.MethodPost, "/webhooks/payments", "", []byte(`status=confirmed`))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "invalid_request", env.Error.Kind)
	})

	t.Run("NonObjectJSONIsRecorded", func(t *testing.T) {
		h, m := setup(t)

		body := []byte(`[{"status":"paid"}]`)

		expectNotification(m, func(p *billing.Payment) {
			assert.Equal(t, "unknown", p.Provider)
			assert.Equal(t, "unknown", p.Status)
			assert.Nil(t, p.SubscriptionID)
			assert.JSONEq(t, string(body), string(p.RawPayload))
		})

		code, env := do(t, h, http.MethodPost, "/webhooks/payments", "", body)
		require.Equal(t, http.StatusCreated, code)
		assert.True(t, env.Success)
	})

	t.Run("TrailingData", func(t *testing.T) {
		h, _ := setup(t)

		code, _ := do(t, h, http.MethodPost, "/webhooks/payments", "", []byte(`{"status":"confirmed"} {"status":"declined"}`))
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		h, m := setup(t)

		m.repo.EXPECT().BeginNotification(gomock.Any()).Return(nil, errors.New("pool exhausted"))

		code, env := do(t, h, http.MethodPost, "/webhooks/payments", "", []byte(`{}`))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "internal error", env.Error.Message)
	})
}

func TestHandler_Check(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *mocks)
		wantStatus int
		wantKind   string
		wantResult string
	}

	tests := []testCase{
		{
			name: "ProviderNotReady",
			body: `{"tran_id":"TX-404"}`,
			setupMock: func(m *mocks) {
				m.gateway.EXPECT().CheckTransaction(gomock.Any(), "TX-404").
					Return(&provider.CheckResult{Status: provider.Status{Code: "01"}}, nil)
			},
			wantStatus: http.StatusOK,
			wantResult: "PENDING",
		},
		{
			name: "Approved",
			body: `{"tran_id":"TX-1"}`,
			setupMock: func(m *mocks) {
				m.gateway.EXPECT().CheckTransaction(gomock.Any(), "TX-1").Return(&provider.CheckResult{
					Status: provider.Status{Code: provider.CodeSuccess},
					Data:   []provider.Transaction{{TranID: "TX-1", PaymentStatus: "APPROVED"}},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantResult: "APPROVED",
		},
		{
			name: "GatewayDown",
			body: `{"tran_id":"TX-1"}`,
			setupMock: func(m *mocks) {
				m.gateway.EXPECT().CheckTransaction(gomock.Any(), "TX-1").
					Return(nil, fmt.Errorf("%w: 503", provider.ErrUnavailable))
			},
			wantStatus: http.StatusBadGateway,
			wantKind:   "upstream_unavailable",
		},
		{
			name:       "MissingTranID",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := setup(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			code, env := do(t, h, http.MethodPost, "/payments/check", "", []byte(tt.body))
			assert.Equal(t, tt.wantStatus, code)

			if tt.wantKind != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantKind, env.Error.Kind)

				return
			}

			var data struct {
				Status string `json:"status"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, tt.wantResult, data.Status)
		})
	}
}

func TestHandler_Refund(t *testing.T) {
	admin := func(m *mocks) {
		m.auth.EXPECT().GetPrincipal(gomock.Any(), "admin-1").
			Return(&auth.Principal{ProfileID: "admin-1", IsAdmin: true}, nil)
	}

	type testCase struct {
		name       string
		profileID  string
		body       string
		setupMock  func(m *mocks)
		wantStatus int
		wantKind   string
	}

	tests := []testCase{
		{
			name:       "NoIdentity",
			body:       `{"tran_id":"TX-1"}`,
			wantStatus: http.StatusUnauthorized,
			wantKind:   "unauthorized",
		},
		{
			name:      "PartnerForbidden",
			profileID: "partner-1",
			body:      `{"tran_id":"TX-1"}`,
			setupMock: func(m *mocks) {
				m.auth.EXPECT().GetPrincipal(gomock.Any(), "partner-1").
					Return(&auth.Principal{ProfileID: "partner-1", IsPartner: true}, nil)
			},
			wantStatus: http.StatusForbidden,
			wantKind:   "forbidden",
		},
		{
			name:      "Completed",
			profileID: "admin-1",
			body:      `{"tran_id":"TX-1","reason":"duplicate charge"}`,
			setupMock: func(m *mocks) {
				admin(m)
				m.repo.EXPECT().GetTransaction(gomock.Any(), "TX-1").Return(&billing.Transaction{
					TranID:   "TX-1",
					Status:   billing.StatusCompleted,
					Metadata: metadata.Metadata{"gateway": metadata.String("payway")},
				}, nil)
				m.repo.EXPECT().TransitionTransaction(gomock.Any(), "TX-1", billing.StatusCompleted, billing.StatusRefundRequested, gomock.Any()).
					DoAndReturn(func(_ any, _ string, _, _ billing.Status, md metadata.Metadata) (bool, error) {
						assert.Equal(t, metadata.String("duplicate charge"), md["refund_reason"])
						assert.Equal(t, metadata.String("payway"), md["gateway"])
						return true, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "StillPending",
			profileID: "admin-1",
			body:      `{"tran_id":"TX-2"}`,
			setupMock: func(m *mocks) {
				admin(m)
				m.repo.EXPECT().GetTransaction(gomock.Any(), "TX-2").
					Return(&billing.Transaction{TranID: "TX-2", Status: billing.StatusPending}, nil)
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_state",
		},
		{
			name:      "Unknown",
			profileID: "admin-1",
			body:      `{"tran_id":"TX-9"}`,
			setupMock: func(m *mocks) {
				admin(m)
				m.repo.EXPECT().GetTransaction(gomock.Any(), "TX-9").Return(nil, billing.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantKind:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := setup(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			code, env := do(t, h, http.MethodPost, "/payments/refund", tt.profileID, []byte(tt.body))
			assert.Equal(t, tt.wantStatus, code)

			if tt.wantKind != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantKind, env.Error.Kind)

				return
			}

			var data struct {
				Message     string `json:"message"`
				Transaction struct {
					Status string `json:"status"`
				} `json:"transaction"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, "refund requested", data.Message)
			assert.Equal(t, "refund_requested", data.Transaction.Status)
		})
	}
}

func TestHandler_ListTransactions_RejectsUnknownStatus(t *testing.T) {
	h, m := setup(t)
	m.auth.EXPECT().GetPrincipal(gomock.Any(), "admin-1").
		Return(&auth.Principal{ProfileID: "admin-1", IsAdmin: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/payments/transactions?status=settled", nil)
	req.Header.Set(authz.HeaderProfileID, "admin-1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Checkout(t *testing.T) {
	h, m := setup(t)

	m.auth.EXPECT().GetPrincipal(gomock.Any(), "profile-1").Return(&auth.Principal{ProfileID: "profile-1"}, nil)
	m.repo.EXPECT().CreateCheckout(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, sub *billing.Subscription, tx *billing.Transaction) error {
			assert.Equal(t, "profile-1", sub.ProfileID)
			assert.Equal(t, "TX-100", tx.TranID)
			assert.Equal(t, "9.5", tx.Amount.String())
			return nil
		})

	code, env := do(t, h, http.MethodPost, "/payments/checkout", "profile-1",
		[]byte(`{"tran_id":"TX-100","tier":"explorer","price":"9.50","currency":"usd"}`))
	require.Equal(t, http.StatusCreated, code)

	var data struct {
		Tier        string `json:"tier"`
		Transaction struct {
			Status   string `json:"status"`
			Currency string `json:"currency"`
		} `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "explorer", data.Tier)
	assert.Equal(t, "pending", data.Transaction.Status)
	assert.Equal(t, "USD", data.Transaction.Currency)
}
