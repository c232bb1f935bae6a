package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbavisu/urbavisu-api/internal/pkg/errorhandler"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
)

type Handler struct {
	service *Service
	tr      i18n.Translator
}

func NewHandler(service *Service, tr i18n.Translator) *Handler {
	return &Handler{service: service, tr: tr}
}

// Stats handles GET /admin/dashboard
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "dashboard.stats", err)
		return
	}
	response.OK(w, stats)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/dashboard", h.Stats)
}
