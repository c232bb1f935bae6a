package creditpack

import (
	"time"

	"github.com/google/uuid"
)

// Pack is a purchasable bundle of credits. Prices are held in rappen
// (hundredths of a franc).
type Pack struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Credits      int       `db:"credits" json:"credits"`
	BonusCredits int       `db:"bonus_credits" json:"bonus_credits"`
	PriceRappen  int64     `db:"price_rappen" json:"price_rappen"`
	IsPopular    bool      `db:"is_popular" json:"is_popular"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Grant is the number of credits a purchase adds.
func (p Pack) Grant() int {
	return p.Credits + p.BonusCredits
}

// Input is the admin-editable part of a pack.
type Input struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Credits      int     `json:"credits" validate:"gt=0,lte=1000000"`
	BonusCredits int     `json:"bonus_credits" validate:"gte=0,lte=1000000"`
	PriceRappen  int64   `json:"price_rappen" validate:"gte=0"`
	IsPopular    bool    `json:"is_popular"`
	IsActive     *bool   `json:"is_active"`
}

func (in Input) apply(p *Pack) {
	p.Name = in.Name
	p.Credits = in.Credits
	p.BonusCredits = in.BonusCredits
	p.PriceRappen = in.PriceRappen
	p.IsPopular = in.IsPopular
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

// PurchaseResult is returned to the buyer.
type PurchaseResult struct {
	Pack       Pack      `json:"pack"`
	Granted    int       `json:"granted"`
	Balance    int       `json:"balance"`
	EntryID    uuid.UUID `json:"entry_id"`
	Payment    string    `json:"payment_reference"`
	ReceiptURL string    `json:"receipt_url,omitempty"`
}

// Receipt is the document stored for each purchase.
type Receipt struct {
	EntryID          uuid.UUID `json:"entry_id"`
	UserID           uuid.UUID `json:"user_id"`
	PackID           uuid.UUID `json:"pack_id"`
	PackName         string    `json:"pack_name"`
	Credits          int       `json:"credits"`
	BonusCredits     int       `json:"bonus_credits"`
	PriceRappen      int64     `json:"price_rappen"`
	Currency         string    `json:"currency"`
	PaymentProvider  string    `json:"payment_provider"`
	PaymentReference string    `json:"payment_reference"`
	BalanceAfter     int       `json:"balance_after"`
	IssuedAt         time.Time `json:"issued_at"`
}
