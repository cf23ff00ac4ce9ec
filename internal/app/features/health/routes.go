// internal/app/features/health/routes.go
package health

import "github.com/go-chi/chi/v5"

// Routes registers the readiness and liveness endpoints on r.
func Routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/health", h.Serve)
		r.Get("/healthz", h.ServeLiveness)
	}
}
