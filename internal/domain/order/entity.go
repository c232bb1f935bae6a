package order

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status matches the order_status enum. Orders are written as completed and
// never transition afterwards.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ToolIDs is stored as a uuid[] column.
type ToolIDs []uuid.UUID

func (ids ToolIDs) Value() (driver.Value, error) {
	return pq.Array([]uuid.UUID(ids)).Value()
}

func (ids *ToolIDs) Scan(src interface{}) error {
	var out []uuid.UUID
	if err := pq.Array(&out).Scan(src); err != nil {
		return err
	}
	*ids = out
	return nil
}

// Order is one search-and-order action.
type Order struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	SearchedAddress string    `db:"searched_address" json:"searched_address"`
	Options         ToolIDs   `db:"options" json:"options"`
	TotalCost       int       `db:"total_cost" json:"total_cost"`
	Status          Status    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// AdminOrder is an order with its owner's email for the back office.
type AdminOrder struct {
	Order
	UserEmail string `db:"user_email" json:"user_email"`
}

// PlaceInput is a user's order request.
type PlaceInput struct {
	Address string      `json:"address" validate:"required,max=500"`
	ToolIDs []uuid.UUID `json:"options" validate:"required,min=1,max=50"`
}

// Placement is the settled order and the balance left after it.
type Placement struct {
	Order   Order `json:"order"`
	Balance int   `json:"balance"`
}

// OrderReason is the ledger reason written for an order charge.
func OrderReason(address string) string {
	return "Order: " + address
}
