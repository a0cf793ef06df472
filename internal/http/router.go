package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/wayfare/internal/http/admin"
	"github.com/MrJamesThe3rd/wayfare/internal/http/billing"
	"github.com/MrJamesThe3rd/wayfare/internal/http/share"
)

type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
}

func New(
	opts Options,
	billingV1 *billing.Handler,
	shareV1 *share.Handler,
	adminV1 *admin.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Profile-Id"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		// Providers post whatever content type they like.
		r.Route("/webhooks", billingV1.WebhookRoutes)

		r.Route("/payments", billingV1.Routes)

		r.Route("/itineraries", shareV1.ItineraryRoutes)
		r.Route("/share", shareV1.Routes)

		r.Route("/admin", adminV1.Routes)
	})

	return router
}
