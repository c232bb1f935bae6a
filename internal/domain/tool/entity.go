package tool

import (
	"time"

	"github.com/google/uuid"
)

// Tool is a lookup add-on a user can order for a searched address.
type Tool struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreditCost  int       `db:"credit_cost" json:"credit_cost"`
	IsFree      bool      `db:"is_free" json:"is_free"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Cost is what the tool adds to an order. Free tools cost nothing whatever
// their configured price.
func (t Tool) Cost() int {
	if t.IsFree {
		return 0
	}
	return t.CreditCost
}

// TotalCost sums the cost of the given tools.
func TotalCost(tools []Tool) int {
	total := 0
	for _, t := range tools {
		total += t.Cost()
	}
	return total
}

// Input is the admin-editable part of a tool.
type Input struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	CreditCost  int    `json:"credit_cost" validate:"gte=0,lte=100000"`
	IsFree      bool   `json:"is_free"`
	IsActive    *bool  `json:"is_active"`
}

func (in Input) apply(t *Tool) {
	t.Name = in.Name
	t.Description = in.Description
	t.CreditCost = in.CreditCost
	t.IsFree = in.IsFree
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
}
