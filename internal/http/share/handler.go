package share

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/wayfare/internal/http/authz"
	"github.com/MrJamesThe3rd/wayfare/internal/http/respond"
	"github.com/MrJamesThe3rd/wayfare/internal/share"
)

type Handler struct {
	svc   *share.Service
	guard *authz.Guard
}

func NewHandler(svc *share.Service, guard *authz.Guard) *Handler {
	return &Handler{svc: svc, guard: guard}
}

// ItineraryRoutes is mounted under /itineraries.
func (h *Handler) ItineraryRoutes(r chi.Router) {
	r.With(h.guard.Optional).Post("/{id}/share", h.issue)
}

// Routes is mounted under /share and needs no identity: the token is the
// credential.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{token}", h.resolve)
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	var createdBy *string
	if p, ok := authz.PrincipalFrom(r.Context()); ok {
		createdBy = new(p.ProfileID)
	}

	issued, err := h.svc.Issue(r.Context(), chi.URLParam(r, "id"), createdBy)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, issued)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, http.StatusOK, it)
}
