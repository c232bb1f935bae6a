package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/middleware"
	"github.com/urbavisu/urbavisu-api/internal/pkg/errorhandler"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/password"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
	"github.com/urbavisu/urbavisu-api/internal/pkg/validator"
)

// Handler handles back-office user management
type Handler struct {
	service *Service
	tr      i18n.Translator
}

func NewHandler(service *Service, tr i18n.Translator) *Handler {
	return &Handler{service: service, tr: tr}
}

func actorFrom(r *http.Request) (Actor, bool) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		return Actor{}, false
	}
	return Actor{ID: session.UserID, Role: session.Role}, true
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}

// ListUsers handles GET /admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := response.ParsePage(r, 20)
	filter := user.ListFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Limit:  limit,
		Offset: offset,
	}

	if raw := r.URL.Query().Get("status"); raw != "" && raw != "all" {
		status, err := user.ParseStatus(raw)
		if err != nil {
			response.BadRequest(w, "Invalid status filter")
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("role"); raw != "" && raw != "all" {
		role, err := user.ParseRole(raw)
		if err != nil {
			response.BadRequest(w, "Invalid role filter")
			return
		}
		filter.Role = &role
	}

	users, total, err := h.service.ListUsers(r.Context(), filter)
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "admin.list_users", err)
		return
	}

	response.WithMeta(w, users, response.NewMeta(total, limit, offset))
}

// GetUser handles GET /admin/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "admin.get_user", err)
		return
	}
	response.OK(w, u)
}

// CreateUser handles POST /admin/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateUserInput
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.CreateUser(r.Context(), actor, req)
	if err != nil {
		h.writeError(w, r, "admin.create_user", err)
		return
	}
	response.Created(w, u)
}

// UpdateUser handles PATCH /admin/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateUserInput
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.UpdateUser(r.Context(), actor, id, req)
	if err != nil {
		h.writeError(w, r, "admin.update_user", err)
		return
	}
	response.OK(w, u)
}

// ChangeStatus handles POST /admin/users/{id}/status
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req StatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.ChangeStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		h.writeError(w, r, "admin.change_status", err)
		return
	}
	response.OK(w, u)
}

// GrantCredits handles POST /admin/users/{id}/credits
func (h *Handler) GrantCredits(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req GrantCreditsRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	res, err := h.service.GrantCredits(r.Context(), actor, id, req.Quantity)
	if err != nil {
		h.writeError(w, r, "admin.grant_credits", err)
		return
	}
	response.OK(w, res)
}

// UserCredits handles GET /admin/users/{id}/credits
func (h *Handler) UserCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	limit, offset := response.ParsePage(r, 20)

	result, err := h.service.UserCredits(r.Context(), id, credit.Pagination{Limit: limit, Offset: offset})
	if err != nil {
		h.writeError(w, r, "admin.user_credits", err)
		return
	}
	response.OK(w, result)
}

// ListRoutes handles GET /admin/routes
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.ListRoutes(r.Context())
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "admin.list_routes", err)
		return
	}
	response.OK(w, routes)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, credit.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Conflict(w, "Status change not allowed")
	case errors.Is(err, ErrCannotAssignRole), errors.Is(err, ErrCannotManageUser):
		response.Forbidden(w, h.tr.T(middleware.GetLocale(r.Context()), i18n.KeyForbidden, nil))
	case errors.Is(err, ErrInvalidAmount):
		response.ValidationError(w, map[string]string{"quantity": "Value must be greater than 0"})
	case errors.Is(err, ErrNameRequired):
		response.ValidationError(w, map[string]string{"first_name": "Required", "last_name": "Required"})
	case errors.Is(err, ErrNegativeCredits):
		response.ValidationError(w, map[string]string{"credits": "Value must be at least 0"})
	case errors.Is(err, user.ErrInvalidRole):
		response.ValidationError(w, map[string]string{"role": "Invalid role"})
	case errors.Is(err, user.ErrInvalidStatus):
		response.ValidationError(w, map[string]string{"status": "Invalid status"})
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(w, "Email already registered")
	case errors.Is(err, password.ErrTooShort):
		response.ValidationError(w, map[string]string{"password": "Must be at least 6 characters"})
	default:
		errorhandler.StoreFailure(r.Context(), w, h.tr, op, err)
	}
}
