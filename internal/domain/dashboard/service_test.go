package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/order"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/testutil"
)

func TestStats(t *testing.T) {
	store := testutil.NewStore()
	credits := credit.NewService(store.Credits(), store)
	ctx := context.Background()

	var last user.User
	for i := 0; i < 7; i++ {
		status := user.StatusApproved
		if i%3 == 0 {
			status = user.StatusPending
		}
		last = store.AddUser(user.User{Status: status})
	}

	_, err := credits.Apply(ctx, credit.Mutation{UserID: last.ID, Delta: 12, Type: credit.TypePurchase})
	require.NoError(t, err)
	_, err = credits.Apply(ctx, credit.Mutation{UserID: last.ID, Delta: 5, Type: credit.TypeGift})
	require.NoError(t, err)
	_, err = credits.Apply(ctx, credit.Mutation{UserID: last.ID, Delta: -8, Type: credit.TypeUsage})
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		o := &order.Order{UserID: last.ID, SearchedAddress: "Bahnhofstrasse 1, 8001 Zürich", TotalCost: i, Status: order.StatusCompleted}
		require.NoError(t, store.Orders().Insert(ctx, nil, o))
	}

	svc := NewService(store.Users(), store.Orders(), credits)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC) }

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalUsers)
	assert.Equal(t, 3, stats.PendingUsers)
	assert.Equal(t, 6, stats.TotalOrders)
	assert.Equal(t, 6, stats.TodayOrders)
	assert.Equal(t, 12, stats.CreditsSold)
	assert.Equal(t, 8, stats.CreditsUsed)

	require.Len(t, stats.RecentUsers, recentLimit)
	assert.Equal(t, last.ID, stats.RecentUsers[0].ID)
	require.Len(t, stats.RecentOrders, recentLimit)
	assert.Equal(t, 5, stats.RecentOrders[0].TotalCost)
	assert.Equal(t, last.Email, stats.RecentOrders[0].UserEmail)
}

func TestStatsTodayExcludesEarlierDays(t *testing.T) {
	store := testutil.NewStore()
	credits := credit.NewService(store.Credits(), store)
	u := store.AddUser(user.User{})
	require.NoError(t, store.Orders().Insert(context.Background(), nil, &order.Order{UserID: u.ID, Status: order.StatusCompleted}))

	svc := NewService(store.Users(), store.Orders(), credits)
	svc.now = func() time.Time { return time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC) }

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Zero(t, stats.TodayOrders)
}
