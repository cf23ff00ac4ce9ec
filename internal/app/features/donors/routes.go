// internal/app/features/donors/routes.go
package donors

import "github.com/go-chi/chi/v5"

// Routes registers the donor endpoints on r. The paths are flat, so the
// function is passed to r.Group rather than mounted under a prefix.
func Routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/register-donor", h.HandleRegister)
		r.Post("/login-donor", h.HandleLogin)
	}
}
