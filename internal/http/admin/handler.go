package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/wayfare/internal/analytics"
	"github.com/MrJamesThe3rd/wayfare/internal/auth"
	"github.com/MrJamesThe3rd/wayfare/internal/http/authz"
	"github.com/MrJamesThe3rd/wayfare/internal/http/respond"
)

type Reaper interface {
	Run(ctx context.Context) (int, error)
}

type Handler struct {
	reaper    Reaper
	analytics *analytics.Service
	guard     *authz.Guard
}

func NewHandler(reaper Reaper, analytics *analytics.Service, guard *authz.Guard) *Handler {
	return &Handler{reaper: reaper, analytics: analytics, guard: guard}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(h.guard.Require(auth.CapabilityAdmin))
	r.Post("/reaper/run", h.runReaper)
	r.Get("/summary", h.summary)
}

type reaperResponse struct {
	Deleted int `json:"deleted"`
}

func (h *Handler) runReaper(w http.ResponseWriter, r *http.Request) {
	n, err := h.reaper.Run(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, reaperResponse{Deleted: n})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.analytics.Summary(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, s)
}
