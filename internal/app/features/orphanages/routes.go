// internal/app/features/orphanages/routes.go
package orphanages

import "github.com/go-chi/chi/v5"

// Routes registers the orphanage endpoints on r. The paths are flat, so the
// function is passed to r.Group rather than mounted under a prefix.
func Routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/register-orphanage", h.HandleRegister)
		r.Post("/login-orphanage", h.HandleLogin)
	}
}
