package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, middleware.Recoverer, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Post("/api/gateway/identify", h.identify)
		if h.metrics != nil {
			r.Method("GET", "/metrics", h.metrics.Handler())
		}
	})

	// admin routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/config", h.getConfig)
		r.Patch("/api/config", h.patchConfig)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
