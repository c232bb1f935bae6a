package creditpack

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/middleware"
	"github.com/urbavisu/urbavisu-api/internal/pkg/errorhandler"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
	"github.com/urbavisu/urbavisu-api/internal/pkg/storage"
	"github.com/urbavisu/urbavisu-api/internal/pkg/validator"
)

// Handler handles credit pack requests
type Handler struct {
	service *Service
	tr      i18n.Translator
}

func NewHandler(service *Service, tr i18n.Translator) *Handler {
	return &Handler{service: service, tr: tr}
}

// List handles GET /credit-packs
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	packs, err := h.service.ListActive(r.Context())
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "creditpack.list_active", err)
		return
	}
	response.OK(w, packs)
}

// Purchase handles POST /credit-packs/{id}/purchase
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	packID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid pack ID")
		return
	}

	result, err := h.service.Purchase(r.Context(), session.UserID, packID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPackNotFound):
			response.NotFound(w, "Credit pack not found")
		case errors.Is(err, ErrPaymentFailed):
			response.Error(w, http.StatusPaymentRequired, "PAYMENT_FAILED", "Payment was not confirmed")
		case errors.Is(err, credit.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			errorhandler.StoreFailure(r.Context(), w, h.tr, "creditpack.purchase", err)
		}
		return
	}

	message := h.tr.T(session.Locale, i18n.KeyPurchaseSuccess, map[string]string{
		"credits": strconv.Itoa(result.Granted),
	})
	response.OKWithMessage(w, result, message)
}

// Receipt handles GET /credit-packs/receipts/{entryID}
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		response.BadRequest(w, "Invalid receipt ID")
		return
	}

	rc, err := h.service.OpenReceipt(r.Context(), session.UserID, entryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(w, "Receipt not found")
			return
		}
		errorhandler.StoreFailure(r.Context(), w, h.tr, "creditpack.receipt", err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, rc)
}

// ListAll handles GET /admin/credit-packs
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	packs, err := h.service.ListAll(r.Context())
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "creditpack.list", err)
		return
	}
	response.OK(w, packs)
}

// Create handles POST /admin/credit-packs
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

	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "creditpack.create", err)
		return
	}
	response.Created(w, p)
}

// Update handles PUT /admin/credit-packs/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid pack ID")
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

	p, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, ErrPackNotFound) {
			response.NotFound(w, "Credit pack not found")
			return
		}
		errorhandler.StoreFailure(r.Context(), w, h.tr, "creditpack.update", err)
		return
	}
	response.OK(w, p)
}

// Routes mounts the public catalog and the authenticated purchase endpoints
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/{id}/purchase", h.Purchase)
		r.Get("/receipts/{entryID}", h.Receipt)
	})

	return r
}

// AdminRoutes mounts pack management under the admin router
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/credit-packs", h.ListAll)
	r.Post("/credit-packs", h.Create)
	r.Put("/credit-packs/{id}", h.Update)
}
