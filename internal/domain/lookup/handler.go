package lookup

import (
	"errors"
	"net/http"

	"github.com/urbavisu/urbavisu-api/internal/middleware"
	"github.com/urbavisu/urbavisu-api/internal/pkg/errorhandler"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
	"github.com/urbavisu/urbavisu-api/internal/pkg/validator"
)

// SearchRequest is the body of POST /search
type SearchRequest struct {
	Address string `json:"address" validate:"required,max=500"`
}

type Handler struct {
	service *Service
	tr      i18n.Translator
}

func NewHandler(service *Service, tr i18n.Translator) *Handler {
	return &Handler{service: service, tr: tr}
}

// Search handles POST /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SearchRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	res, err := h.service.Search(r.Context(), session.UserID, req.Address)
	if err != nil {
		if errors.Is(err, ErrEmptyAddress) {
			response.ValidationError(w, map[string]string{"address": "This field is required"})
			return
		}
		errorhandler.StoreFailure(r.Context(), w, h.tr, "lookup.search", err)
		return
	}
	response.OK(w, res)
}
