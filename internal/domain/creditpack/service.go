package creditpack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
	"github.com/urbavisu/urbavisu-api/internal/pkg/payment"
	"github.com/urbavisu/urbavisu-api/internal/pkg/storage"
)

const currency = "CHF"

type Service struct {
	repo     Repository
	credits  credit.Service
	payments payment.Provider
	receipts storage.Storage
}

// NewService wires the purchase flow. receipts may be nil.
func NewService(repo Repository, credits credit.Service, payments payment.Provider, receipts storage.Storage) *Service {
	return &Service{repo: repo, credits: credits, payments: payments, receipts: receipts}
}

func (s *Service) ListActive(ctx context.Context) ([]Pack, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]Pack, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Create(ctx context.Context, in Input) (*Pack, error) {
	p := &Pack{IsActive: true}
	in.apply(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Pack, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PurchaseReason is the ledger reason written for a pack purchase.
func PurchaseReason(p Pack) string {
	return fmt.Sprintf("%d credits + %d bonus credits (%s)", p.Credits, p.BonusCredits, p.Name)
}

// Purchase charges the user for an active pack and grants credits + bonus.
// Nothing is written unless the payment provider confirms first.
func (s *Service) Purchase(ctx context.Context, userID, packID uuid.UUID) (*PurchaseResult, error) {
	pack, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return nil, err
	}
	if !pack.IsActive {
		return nil, ErrPackNotFound
	}

	conf, err := s.payments.Confirm(ctx, payment.ChargeRequest{
		UserID:      userID,
		PackID:      pack.ID,
		Amount:      pack.PriceRappen,
		Description: pack.Name,
	})
	if err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("user_id", userID.String()).
			Str("pack_id", pack.ID.String()).
			Msg("payment not confirmed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	res, err := s.credits.Apply(ctx, credit.Mutation{
		UserID: userID,
		Delta:  pack.Grant(),
		Type:   credit.TypePurchase,
		Reason: PurchaseReason(*pack),
	})
	if err != nil {
		logger.FromContext(ctx).Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("payment_reference", conf.Reference).
			Msg("payment confirmed but credits not granted")
		return nil, err
	}

	result := &PurchaseResult{
		Pack:    *pack,
		Granted: pack.Grant(),
		Balance: res.Balance,
		EntryID: res.Entry.ID,
		Payment: conf.Reference,
	}

	if s.receipts != nil {
		receipt := Receipt{
			EntryID:          res.Entry.ID,
			UserID:           userID,
			PackID:           pack.ID,
			PackName:         pack.Name,
			Credits:          pack.Credits,
			BonusCredits:     pack.BonusCredits,
			PriceRappen:      pack.PriceRappen,
			Currency:         currency,
			PaymentProvider:  conf.Provider,
			PaymentReference: conf.Reference,
			BalanceAfter:     res.Balance,
			IssuedAt:         time.Now().UTC(),
		}
		url, err := s.storeReceipt(ctx, receipt)
		if err != nil {
			logger.FromContext(ctx).Warn().
				Err(err).
				Str("user_id", userID.String()).
				Str("entry_id", res.Entry.ID.String()).
				Msg("receipt not stored")
		} else {
			result.ReceiptURL = url
		}
	}

	return result, nil
}

// ReceiptKey is the storage key of a purchase receipt.
func ReceiptKey(userID, entryID uuid.UUID) string {
	return fmt.Sprintf("receipts/%s/%s.json", userID, entryID)
}

func (s *Service) storeReceipt(ctx context.Context, receipt Receipt) (string, error) {
	body, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return "", err
	}
	key := ReceiptKey(receipt.UserID, receipt.EntryID)
	if err := s.receipts.Put(ctx, key, bytes.NewReader(body), "application/json"); err != nil {
		return "", err
	}
	return s.receipts.GetURL(key), nil
}

// OpenReceipt returns the stored receipt of one of the user's purchases.
func (s *Service) OpenReceipt(ctx context.Context, userID, entryID uuid.UUID) (io.ReadCloser, error) {
	if s.receipts == nil {
		return nil, storage.ErrNotFound
	}
	return s.receipts.Get(ctx, ReceiptKey(userID, entryID))
}
