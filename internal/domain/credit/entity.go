package credit

import (
	"time"

	"github.com/google/uuid"
)

// Type is the kind of ledger entry (matches credit_type enum).
type Type string

const (
	TypePurchase Type = "purchase"
	TypeUsage    Type = "usage"
	TypeGift     Type = "gift"
	TypeRefund   Type = "refund"
)

func (t Type) Valid() bool {
	switch t {
	case TypePurchase, TypeUsage, TypeGift, TypeRefund:
		return true
	}
	return false
}

// Entry is an append-only ledger row. Quantity is signed.
type Entry struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	UserID    uuid.UUID     `db:"user_id" json:"user_id"`
	Type      Type          `db:"type" json:"type"`
	Quantity  int           `db:"quantity" json:"quantity"`
	Reason    string        `db:"reason" json:"reason"`
	CreatedBy uuid.NullUUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// Mutation is one balance change and the entry that records it.
type Mutation struct {
	UserID  uuid.UUID
	Delta   int
	Type    Type
	Reason  string
	ActorID *uuid.UUID
}

func (m Mutation) validate() error {
	if m.Delta == 0 {
		return ErrInvalidAmount
	}
	if !m.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// Result is the written entry and the balance after it.
type Result struct {
	Entry   Entry `json:"entry"`
	Balance int   `json:"balance"`
}

// Pagination controls simple list pagination.
type Pagination struct {
	Limit  int
	Offset int
}

// Normalize applies the default and maximum page size.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Totals are portal-wide sums for the dashboard.
type Totals struct {
	Sold int `db:"sold" json:"credits_sold"`
	Used int `db:"used" json:"credits_used"`
}

// Reconciliation compares a stored balance to the ledger sum.
type Reconciliation struct {
	UserID     uuid.UUID `json:"user_id"`
	Balance    int       `json:"balance"`
	LedgerSum  int       `json:"ledger_sum"`
	Consistent bool      `json:"consistent"`
}
