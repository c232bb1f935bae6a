package tool

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

// Handler handles tool catalog requests
type Handler struct {
	service *Service
	tr      i18n.Translator
}

func NewHandler(service *Service, tr i18n.Translator) *Handler {
	return &Handler{service: service, tr: tr}
}

// List handles GET /tools
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tools, err := h.service.ListActive(r.Context())
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "tool.list_active", err)
		return
	}
	response.OK(w, tools)
}

// ListAll handles GET /admin/tools
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	tools, err := h.service.ListAll(r.Context())
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "tool.list", err)
		return
	}
	response.OK(w, tools)
}

// Create handles POST /admin/tools
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
		errorhandler.StoreFailure(r.Context(), w, h.tr, "tool.create", err)
		return
	}
	response.Created(w, t)
}

// Update handles PUT /admin/tools/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid tool ID")
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
		if errors.Is(err, ErrToolNotFound) {
			response.NotFound(w, "Tool not found")
			return
		}
		errorhandler.StoreFailure(r.Context(), w, h.tr, "tool.update", err)
		return
	}
	response.OK(w, t)
}

// AdminRoutes mounts catalog management under the admin router
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/tools", h.ListAll)
	r.Post("/tools", h.Create)
	r.Put("/tools/{id}", h.Update)
}
