package lookup

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// Resolver turns an address into parcel data.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*Result, error)
}

// SimulatedResolver derives a stable parcel from the address after a delay.
// It stands in for the cadastral registry, which is not integrated.
type SimulatedResolver struct {
	delay time.Duration
}

func NewSimulatedResolver(delay time.Duration) *SimulatedResolver {
	return &SimulatedResolver{delay: delay}
}

func (r *SimulatedResolver) Resolve(ctx context.Context, address string) (*Result, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	sum := sha256.Sum256([]byte(Normalize(address)))
	n := binary.BigEndian.Uint32(sum[:4])

	return &Result{
		Address:      address,
		ParcelNumber: fmt.Sprintf("%05d", 10000+n%90000),
		SurfaceM2:    200 + int(binary.BigEndian.Uint16(sum[4:6])%4800),
		Found:        true,
	}, nil
}
