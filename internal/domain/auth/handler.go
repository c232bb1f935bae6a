package auth

import (
	"errors"
	"net/http"

	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/middleware"
	"github.com/urbavisu/urbavisu-api/internal/pkg/errorhandler"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
	"github.com/urbavisu/urbavisu-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
	tr      i18n.Translator
}

// NewHandler creates auth handler
func NewHandler(service *Service, tr i18n.Translator) *Handler {
	return &Handler{service: service, tr: tr}
}

// SignUp handles POST /auth/signup
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordTooShort):
			response.ValidationError(w, map[string]string{"password": "Must be at least 6 characters"})
		case errors.Is(err, ErrPasswordMismatch):
			response.ValidationError(w, map[string]string{"confirm_password": "Passwords do not match"})
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Conflict(w, "Email already registered")
		default:
			errorhandler.StoreFailure(r.Context(), w, h.tr, "auth.signup", err)
		}
		return
	}

	response.Created(w, result)
}

// SignIn handles POST /auth/signin
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.SignIn(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		errorhandler.StoreFailure(r.Context(), w, h.tr, "auth.signin", err)
		return
	}

	response.OK(w, result)
}

// SignOut handles POST /auth/signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.SignOut(r.Context(), session.TokenID, session.ExpiresAt); err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "auth.signout", err)
		return
	}

	response.NoContent(w)
}

// Me handles GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	u, err := h.service.Current(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.StoreFailure(r.Context(), w, h.tr, "auth.me", err)
		return
	}

	response.OK(w, u)
}

// UpdateMe handles PATCH /me
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req user.Profile
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), session.UserID, req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.StoreFailure(r.Context(), w, h.tr, "auth.update_profile", err)
		return
	}

	response.OKWithMessage(w, u, h.tr.T(session.Locale, i18n.KeyProfileUpdated, nil))
}
