package credit

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbavisu/urbavisu-api/internal/middleware"
	"github.com/urbavisu/urbavisu-api/internal/pkg/errorhandler"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
)

// BalanceResponse is the body of GET /credits/balance
type BalanceResponse struct {
	Balance int `json:"balance"`
}

type Handler struct {
	service Service
	tr      i18n.Translator
}

func NewHandler(service Service, tr i18n.Translator) *Handler {
	return &Handler{service: service, tr: tr}
}

// Balance handles GET /credits/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	balance, err := h.service.GetBalance(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.StoreFailure(r.Context(), w, h.tr, "credit.balance", err)
		return
	}
	response.OK(w, BalanceResponse{Balance: balance})
}

// History handles GET /credits/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	limit, offset := response.ParsePage(r, 20)
	entries, total, err := h.service.History(r.Context(), session.UserID, Pagination{Limit: limit, Offset: offset})
	if err != nil {
		errorhandler.StoreFailure(r.Context(), w, h.tr, "credit.history", err)
		return
	}
	response.WithMeta(w, entries, response.NewMeta(total, limit, offset))
}

// Routes returns the authenticated ledger router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/balance", h.Balance)
	r.Get("/history", h.History)
	return r
}
