package payment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const ProviderSimulated = "simulated"

var (
	ErrDeclined        = errors.New("payment declined")
	ErrUnknownProvider = errors.New("payment provider not found")
)

// Provider confirms a charge before credits are granted.
type Provider interface {
	// Confirm blocks until the provider accepts or declines the charge.
	Confirm(ctx context.Context, req ChargeRequest) (*Confirmation, error)

	// Name returns the provider identifier
	Name() string
}

// ChargeRequest describes a credit pack purchase.
type ChargeRequest struct {
	UserID      uuid.UUID
	PackID      uuid.UUID
	Amount      int64 // rappen
	Description string
}

// Confirmation is the provider's receipt of an accepted charge.
type Confirmation struct {
	Provider    string
	Reference   string
	Amount      int64
	ConfirmedAt time.Time
}

// Registry holds the configured payment providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a payment provider under its name
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get retrieves a payment provider by name
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// List returns all registered provider names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
