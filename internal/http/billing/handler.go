package billing

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wayfare/internal/apperr"
	"github.com/MrJamesThe3rd/wayfare/internal/auth"
	"github.com/MrJamesThe3rd/wayfare/internal/billing"
	"github.com/MrJamesThe3rd/wayfare/internal/encoding"
	"github.com/MrJamesThe3rd/wayfare/internal/http/authz"
	"github.com/MrJamesThe3rd/wayfare/internal/http/request"
	"github.com/MrJamesThe3rd/wayfare/internal/http/respond"
)

const (
	maxWebhookBytes = 64 << 10
	defaultLimit    = 50
	maxLimit        = 500
)

type Handler struct {
	svc        *billing.Service
	reconciler *billing.Reconciler
	guard      *authz.Guard
}

func NewHandler(svc *billing.Service, reconciler *billing.Reconciler, guard *authz.Guard) *Handler {
	return &Handler{svc: svc, reconciler: reconciler, guard: guard}
}

// WebhookRoutes is mounted without authentication: providers cannot present
// an identity.
func (h *Handler) WebhookRoutes(r chi.Router) {
	r.Post("/payments", h.webhook)
}

// Routes checks the content type only after the caller is authorized, so an
// anonymous request is always answered with 401.
func (h *Handler) Routes(r chi.Router) {
	jsonOnly := middleware.AllowContentType("application/json")

	r.With(jsonOnly).Post("/check", h.check)
	r.With(h.guard.Authenticated, jsonOnly).Post("/checkout", h.checkout)

	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(auth.CapabilityAdmin))
		r.With(jsonOnly).Post("/refund", h.refund)
		r.With(jsonOnly).Post("/refund/complete", h.completeRefund)
		r.Get("/transactions", h.listTransactions)
		r.Get("/", h.listPayments)
	})
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		respond.Error(w, r, apperr.Invalid("webhook body too large or unreadable"))
		return
	}

	body, err = encoding.ToUTF8(body)
	if err != nil {
		respond.Error(w, r, apperr.Invalid("webhook body has an unsupported encoding"))
		return
	}

	n, err := parseNotification(body)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Ingest(r.Context(), n)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toPaymentResponse(p))
}

type checkRequest struct {
	TranID string `json:"tran_id" validate:"required"`
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.reconciler.Check(r.Context(), req.TranID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, checkResponse{Status: res.Status, Detail: res.Detail})
}

type checkoutRequest struct {
	TranID   string          `json:"tran_id" validate:"required,max=64"`
	Tier     string          `json:"tier" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency" validate:"required,len=3"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, _ := authz.PrincipalFrom(r.Context())

	res, err := h.svc.Checkout(r.Context(), billing.CheckoutParams{
		TranID:    req.TranID,
		ProfileID: p.ProfileID,
		Tier:      req.Tier,
		Price:     req.Price,
		Currency:  req.Currency,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, checkoutResponse{
		SubscriptionID: res.Subscription.ID,
		Tier:           res.Subscription.Tier,
		Transaction:    toTransactionResponse(res.Transaction),
	})
}

type refundRequest struct {
	TranID string `json:"tran_id" validate:"required"`
	Reason string `json:"reason" validate:"max=500"`
}

type refundResponse struct {
	Message     string              `json:"message"`
	Transaction transactionResponse `json:"transaction"`
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.RequestRefund(r.Context(), req.TranID, req.Reason)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, refundResponse{
		Message:     "refund requested",
		Transaction: toTransactionResponse(tx),
	})
}

type completeRefundRequest struct {
	TranID string `json:"tran_id" validate:"required"`
}

func (h *Handler) completeRefund(w http.ResponseWriter, r *http.Request) {
	var req completeRefundRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.CompleteRefund(r.Context(), req.TranID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, refundResponse{
		Message:     "refund completed",
		Transaction: toTransactionResponse(tx),
	})
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter := billing.ListFilter{Limit: limit}

	if s := r.URL.Query().Get("status"); s != "" {
		status := billing.Status(s)
		if !status.Valid() {
			respond.Error(w, r, apperr.Invalid("unknown status %q", s))
			return
		}

		filter.Status = new(status)
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toTransactionResponseList(txs))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter := billing.PaymentFilter{Limit: limit}

	if s := r.URL.Query().Get("subscription_id"); s != "" {
		filter.SubscriptionID = new(s)
	}

	if s := r.URL.Query().Get("provider_ref"); s != "" {
		filter.ProviderRef = new(s)
	}

	ps, err := h.svc.Payments(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPaymentResponseList(ps))
}

func parseLimit(r *http.Request) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return defaultLimit, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, apperr.Invalid("limit must be a positive integer")
	}

	return min(n, maxLimit), nil
}
