package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/middleware"
	"github.com/urbavisu/urbavisu-api/internal/pkg/errorhandler"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
	"github.com/urbavisu/urbavisu-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
	tr      i18n.Translator
}

func NewHandler(service *Service, tr i18n.Translator) *Handler {
	return &Handler{service: service, tr: tr}
}

// Place handles POST /orders
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var in PlaceInput
	if err := response.DecodeJSON(r.Body, &in); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&in); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	placement, err := h.service.Place(r.Context(), session.UserID, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientCredits):
			response.PaymentRequired(w, h.tr.T(session.Locale, i18n.KeyInsufficientCredits, nil))
		case errors.Is(err, ErrEmptyAddress):
			response.ValidationError(w, map[string]string{"address": "This field is required"})
		case errors.Is(err, ErrNoOptions):
			response.ValidationError(w, map[string]string{"options": "This field is required"})
		case errors.Is(err, ErrAddressNotSearched):
			response.Error(w, http.StatusConflict, "ADDRESS_NOT_SEARCHED", "Search the address before ordering")
		case errors.Is(err, ErrUnknownTool):
			response.ValidationError(w, map[string]string{"options": "Unknown or inactive tool"})
		case errors.Is(err, credit.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			errorhandler.StoreFailure(r.Context(), w, h.tr, "order.place", err)
		}
		return
	}

	response.CreatedWithMessage(w, placement, h.tr.T(session.Locale, i18n.KeyOrderSuccess, nil))
}

// ListMine handles GET /orders
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	limit, offset := response.ParsePage(r, 20)
	orders, total, err := h.service.ListByUser(r.Context(), session.UserID, limit, offset)
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "order.list_by_user", err)
		return
	}
	response.WithMeta(w, orders, response.NewMeta(total, limit, offset))
}

// ListAll handles GET /admin/orders
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := response.ParsePage(r, 20)
	orders, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "order.list", err)
		return
	}
	response.WithMeta(w, orders, response.NewMeta(total, limit, offset))
}

// Routes returns the authenticated order router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListMine)
	r.Post("/", h.Place)
	return r
}

// AdminRoutes mounts the order listing under the admin router
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/orders", h.ListAll)
}
