package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns auth router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.SignUp)
	r.Post("/signin", h.SignIn)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/signout", h.SignOut)
		r.Get("/me", h.Me)
		r.Patch("/me", h.UpdateMe)
	})

	return r
}
