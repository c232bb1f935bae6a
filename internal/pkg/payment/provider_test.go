package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSimulatedConfirm(t *testing.T) {
	p := NewSimulated(0)
	conf, err := p.Confirm(context.Background(), ChargeRequest{UserID: uuid.New(), Amount: 1900})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if conf.Provider != ProviderSimulated || conf.Amount != 1900 || conf.Reference == "" {
		t.Fatalf("unexpected confirmation: %+v", conf)
	}
}

func TestSimulatedHonoursContext(t *testing.T) {
	p := NewSimulated(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Confirm(ctx, ChargeRequest{Amount: 10}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(NewSimulated(0))

	if _, err := r.Get(ProviderSimulated); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := r.Get("twint"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
	if names := r.List(); len(names) != 1 || names[0] != ProviderSimulated {
		t.Fatalf("unexpected names %v", names)
	}
}
