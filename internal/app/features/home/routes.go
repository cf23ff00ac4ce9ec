// internal/app/features/home/routes.go
package home

import "github.com/go-chi/chi/v5"

// Routes registers the root banner on r.
func Routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.ServeRoot)
	}
}
