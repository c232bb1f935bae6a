package admin

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts user management on an admin router. The caller applies
// authentication and the admin role gate.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/routes", h.ListRoutes)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Patch("/{id}", h.UpdateUser)
		r.Post("/{id}/status", h.ChangeStatus)
		r.Get("/{id}/credits", h.UserCredits)
		r.Post("/{id}/credits", h.GrantCredits)
	})
}
