package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleClient     Role = "client"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

var roles = []Role{RoleClient, RoleManager, RoleAdmin, RoleSuperAdmin}

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role may use the back office.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Status represents user status (matches user_status enum)
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move a user from s to next.
// Keeping the same status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// User represents a portal account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Company      string    `db:"company" json:"company"`
	Address      string    `db:"address" json:"address"`
	Phone        string    `db:"phone" json:"phone"`
	Role         Role      `db:"role" json:"role"`
	Status       Status    `db:"status" json:"status"`
	Credits      int       `db:"credits" json:"credits"`
	Validated    bool      `db:"validated" json:"validated"`

	// Set once the approval bonus has been paid.
	WelcomeBonusGranted bool `db:"welcome_bonus_granted" json:"welcome_bonus_granted"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Profile holds the fields a user may edit on their own account.
type Profile struct {
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Company   string `json:"company" validate:"max=255"`
	Address   string `json:"address" validate:"max=500"`
	Phone     string `json:"phone" validate:"max=50"`
}

// Apply copies the profile onto the user.
func (u *User) Apply(p Profile) {
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.Company = p.Company
	u.Address = p.Address
	u.Phone = p.Phone
}

// SetStatus updates the status and keeps Validated in sync with it.
func (u *User) SetStatus(s Status) {
	u.Status = s
	u.Validated = s == StatusApproved
}

// IsAdmin returns true if user may use the back office
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ListFilter narrows the admin user listing.
type ListFilter struct {
	Status *Status
	Role   *Role
	Search string
	Limit  int
	Offset int
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
