package admin

import (
	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
)

// Ledger reasons written by back-office actions.
const (
	ReasonAdminModification = "admin modification"
	ReasonManualAddition    = "manual admin addition"
	ReasonWelcomeCredits    = "welcome credits"
)

// Actor is the administrator performing an action.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// Route is one entry of the back-office navigation.
type Route struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Path         string    `db:"path" json:"path"`
	Icon         string    `db:"icon" json:"icon"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsActive     bool      `db:"is_active" json:"is_active"`
}

// DefaultRoutes is served when no navigation is configured.
func DefaultRoutes() []Route {
	return []Route{
		{Name: "Dashboard", Path: "/admin", Icon: "layout-dashboard", DisplayOrder: 1, IsActive: true},
		{Name: "Utilisateurs", Path: "/admin/users", Icon: "users", DisplayOrder: 2, IsActive: true},
		{Name: "Commandes", Path: "/admin/orders", Icon: "shopping-cart", DisplayOrder: 3, IsActive: true},
		{Name: "Traductions", Path: "/admin/translations", Icon: "languages", DisplayOrder: 4, IsActive: true},
	}
}

// UpdateUserInput carries the fields an administrator may change. Nil fields
// are left alone; Credits is the absolute target balance.
type UpdateUserInput struct {
	FirstName *string      `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string      `json:"last_name" validate:"omitempty,max=100"`
	Company   *string      `json:"company" validate:"omitempty,max=255"`
	Address   *string      `json:"address" validate:"omitempty,max=500"`
	Phone     *string      `json:"phone" validate:"omitempty,max=50"`
	Role      *user.Role   `json:"role" validate:"omitempty,role"`
	Status    *user.Status `json:"status" validate:"omitempty,user_status"`
	Credits   *int         `json:"credits" validate:"omitempty,min=0"`
}

func (in UpdateUserInput) applyProfile(u *user.User) {
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Company != nil {
		u.Company = *in.Company
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
}

// CreateUserInput for POST /admin/users. First and last name are mandatory here
// even though self sign-up leaves them optional.
type CreateUserInput struct {
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,min=6,max=128"`
	Role     user.Role   `json:"role" validate:"required,role"`
	Status   user.Status `json:"status" validate:"required,user_status"`
	user.Profile
}

// StatusRequest for POST /admin/users/{id}/status
type StatusRequest struct {
	Status user.Status `json:"status" validate:"required,user_status"`
}

// GrantCreditsRequest for POST /admin/users/{id}/credits
type GrantCreditsRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0,max=1000000"`
}

// UserCredits is a user's balance with one page of ledger history.
type UserCredits struct {
	UserID  uuid.UUID      `json:"user_id"`
	Balance int            `json:"balance"`
	Entries []credit.Entry `json:"entries"`
	Total   int            `json:"total"`
}
