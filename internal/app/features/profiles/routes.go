// internal/app/features/profiles/routes.go
package profiles

import "github.com/go-chi/chi/v5"

// Routes registers the orphanage profile endpoints on r.
func Routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/add-orphanage", h.HandleAdd)
		r.Get("/check-port-number/{portNumber}", h.HandleCheckPortNumber)
		r.Get("/get-orphanages", h.HandleList)
		r.Get("/orphanage-details/{id}", h.HandleDetails)
		r.Get("/get-orphanage-by-port/{portNumber}", h.HandleByPortNumber)
		r.Post("/update-orphanage/{portNumber}", h.HandleUpdate)
	}
}
