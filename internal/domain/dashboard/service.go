package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/order"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
)

const recentLimit = 5

// Stats is the back-office overview.
type Stats struct {
	TotalUsers   int                `json:"total_users"`
	PendingUsers int                `json:"pending_users"`
	TotalOrders  int                `json:"total_orders"`
	TodayOrders  int                `json:"today_orders"`
	CreditsSold  int                `json:"credits_sold"`
	CreditsUsed  int                `json:"credits_used"`
	RecentUsers  []*user.User       `json:"recent_users"`
	RecentOrders []order.AdminOrder `json:"recent_orders"`
}

type UserReader interface {
	Count(ctx context.Context, status *user.Status) (int, error)
	List(ctx context.Context, filter user.ListFilter) ([]*user.User, int, error)
}

type OrderReader interface {
	List(ctx context.Context, limit, offset int) ([]order.AdminOrder, int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type CreditReader interface {
	Totals(ctx context.Context) (*credit.Totals, error)
}

type Service struct {
	users   UserReader
	orders  OrderReader
	credits CreditReader
	now     func() time.Time
}

func NewService(users UserReader, orders OrderReader, credits CreditReader) *Service {
	return &Service{users: users, orders: orders, credits: credits, now: time.Now}
}

// Stats gathers the overview figures concurrently.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalUsers, err = s.users.Count(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		pending := user.StatusPending
		stats.PendingUsers, err = s.users.Count(ctx, &pending)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentUsers, _, err = s.users.List(ctx, user.ListFilter{Limit: recentLimit})
		return err
	})
	g.Go(func() (err error) {
		stats.RecentOrders, stats.TotalOrders, err = s.orders.List(ctx, recentLimit, 0)
		return err
	})
	g.Go(func() (err error) {
		now := s.now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		stats.TodayOrders, err = s.orders.CountSince(ctx, midnight)
		return err
	})
	g.Go(func() error {
		totals, err := s.credits.Totals(ctx)
		if err != nil {
			return err
		}
		stats.CreditsSold, stats.CreditsUsed = totals.Sold, totals.Used
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
