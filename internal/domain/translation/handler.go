package translation

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/pkg/errorhandler"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
	"github.com/urbavisu/urbavisu-api/internal/pkg/validator"
)

type Handler struct {
	service   *Service
	localizer *Localizer
}

func NewHandler(service *Service, localizer *Localizer) *Handler {
	return &Handler{service: service, localizer: localizer}
}

// List handles GET /translations. With ?locale=xx it returns a key to text
// map for that locale, otherwise every row.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("locale"); raw != "" {
		locale := i18n.Locale(raw)
		if !locale.Valid() {
			response.ValidationError(w, map[string]string{"locale": "Invalid locale. Must be: fr, de, it, en"})
			return
		}
		response.OK(w, h.localizer.Messages(locale))
		return
	}

	items, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.localizer, "translation.list", err)
		return
	}
	response.OK(w, items)
}

// Create handles POST /admin/translations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := response.DecodeJSON(r.Body, &in); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&in); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	t, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "translation.create", err)
		return
	}
	response.Created(w, t)
}

// Update handles PUT /admin/translations/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid translation ID")
		return
	}

	var in Input
	if err := response.DecodeJSON(r.Body, &in); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&in); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	t, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, "translation.update", err)
		return
	}
	response.OK(w, t)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrKeyRequired):
		response.ValidationError(w, map[string]string{"key": "This field is required"})
	case errors.Is(err, ErrFrenchRequired):
		response.ValidationError(w, map[string]string{"fr": "This field is required"})
	case errors.Is(err, ErrDuplicateKey):
		response.Conflict(w, "Translation key already exists")
	case errors.Is(err, ErrTranslationNotFound):
		response.NotFound(w, "Translation not found")
	default:
		errorhandler.StoreFailure(r.Context(), w, h.localizer, op, err)
	}
}

// AdminRoutes mounts translation management under the admin router
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/translations", h.List)
	r.Post("/translations", h.Create)
	r.Put("/translations/{id}", h.Update)
}
