package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Simulated accepts every charge after a fixed delay.
type Simulated struct {
	delay time.Duration
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{delay: delay}
}

func (s *Simulated) Name() string { return ProviderSimulated }

func (s *Simulated) Confirm(ctx context.Context, req ChargeRequest) (*Confirmation, error) {
	if req.Amount < 0 {
		return nil, ErrDeclined
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	conf := &Confirmation{
		Provider:    ProviderSimulated,
		Reference:   "sim_" + uuid.NewString(),
		Amount:      req.Amount,
		ConfirmedAt: time.Now().UTC(),
	}
	log.Debug().
		Str("user_id", req.UserID.String()).
		Str("pack_id", req.PackID.String()).
		Int64("amount_rappen", req.Amount).
		Str("reference", conf.Reference).
		Msg("simulated payment confirmed")
	return conf, nil
}
