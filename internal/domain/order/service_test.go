package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/lookup"
	"github.com/urbavisu/urbavisu-api/internal/domain/order"
	"github.com/urbavisu/urbavisu-api/internal/domain/tool"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/testutil"
)

const address = "Rue du Marché 12, 1204 Genève"

type fixture struct {
	store  *testutil.Store
	search *lookup.Service
	orders *order.Service
	tools  []tool.Tool // cost 3, free, cost 5
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	search := lookup.NewService(lookup.NewSimulatedResolver(0), lookup.NewMemoryStore(), time.Hour)
	credits := credit.NewService(store.Credits(), store)
	tools := tool.NewService(store.Tools())

	f := &fixture{
		store:  store,
		search: search,
		orders: order.NewService(store.Orders(), tools, search, credits, store),
	}
	f.tools = []tool.Tool{
		store.AddTool(tool.Tool{Name: "Plan cadastral", CreditCost: 3, IsActive: true}),
		store.AddTool(tool.Tool{Name: "Zone d'affectation", CreditCost: 7, IsFree: true, IsActive: true}),
		store.AddTool(tool.Tool{Name: "Extrait du registre foncier", CreditCost: 5, IsActive: true}),
	}
	return f
}

func (f *fixture) ids() []uuid.UUID {
	out := make([]uuid.UUID, len(f.tools))
	for i, t := range f.tools {
		out[i] = t.ID
	}
	return out
}

func (f *fixture) searched(t *testing.T, userID uuid.UUID) {
	t.Helper()
	_, err := f.search.Search(context.Background(), userID, address)
	require.NoError(t, err)
}

func TestPlaceInsufficientCreditsWritesNothing(t *testing.T) {
	f := setup(t)
	u := f.store.AddUser(user.User{Credits: 5})
	f.searched(t, u.ID)
	writes := f.store.Writes()

	_, err := f.orders.Place(context.Background(), u.ID, order.PlaceInput{Address: address, ToolIDs: f.ids()})
	require.ErrorIs(t, err, order.ErrInsufficientCredits)

	assert.Equal(t, writes, f.store.Writes())
	assert.Empty(t, f.store.AllOrders())
	assert.Empty(t, f.store.Entries(u.ID))
	stored, _ := f.store.User(u.ID)
	assert.Equal(t, 5, stored.Credits)
}

func TestPlaceChargesTotalCost(t *testing.T) {
	f := setup(t)
	u := f.store.AddUser(user.User{Credits: 10})
	f.searched(t, u.ID)

	// duplicate ids are charged once
	ids := append(f.ids(), f.tools[0].ID)
	placement, err := f.orders.Place(context.Background(), u.ID, order.PlaceInput{Address: "  " + address, ToolIDs: ids})
	require.NoError(t, err)

	assert.Equal(t, 8, placement.Order.TotalCost)
	assert.Equal(t, order.StatusCompleted, placement.Order.Status)
	assert.Equal(t, address, placement.Order.SearchedAddress)
	assert.Len(t, placement.Order.Options, 3)
	assert.Equal(t, 2, placement.Balance)

	entries := f.store.Entries(u.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, credit.TypeUsage, entries[0].Type)
	assert.Equal(t, -8, entries[0].Quantity)
	assert.Equal(t, "Order: "+address, entries[0].Reason)

	stored, _ := f.store.User(u.ID)
	assert.Equal(t, 2, stored.Credits)
}

func TestPlaceFreeToolsOnly(t *testing.T) {
	f := setup(t)
	u := f.store.AddUser(user.User{})
	f.searched(t, u.ID)

	placement, err := f.orders.Place(context.Background(), u.ID, order.PlaceInput{
		Address: address,
		ToolIDs: []uuid.UUID{f.tools[1].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, placement.Order.TotalCost)
	assert.Len(t, f.store.AllOrders(), 1)
	assert.Empty(t, f.store.Entries(u.ID))
}

func TestPlaceRequiresSearch(t *testing.T) {
	f := setup(t)
	u := f.store.AddUser(user.User{Credits: 50})

	_, err := f.orders.Place(context.Background(), u.ID, order.PlaceInput{Address: address, ToolIDs: f.ids()})
	require.ErrorIs(t, err, order.ErrAddressNotSearched)
	assert.Empty(t, f.store.AllOrders())
}

func TestPlaceRejectsBadInput(t *testing.T) {
	f := setup(t)
	u := f.store.AddUser(user.User{Credits: 50})
	f.searched(t, u.ID)

	inactive := f.store.AddTool(tool.Tool{Name: "Retired", CreditCost: 1, IsActive: false})

	tests := []struct {
		name string
		in   order.PlaceInput
		want error
	}{
		{"blank address", order.PlaceInput{Address: "  ", ToolIDs: f.ids()}, order.ErrEmptyAddress},
		{"no options", order.PlaceInput{Address: address}, order.ErrNoOptions},
		{"unknown tool", order.PlaceInput{Address: address, ToolIDs: []uuid.UUID{uuid.New()}}, order.ErrUnknownTool},
		{"inactive tool", order.PlaceInput{Address: address, ToolIDs: []uuid.UUID{inactive.ID}}, order.ErrUnknownTool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.Place(context.Background(), u.ID, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.store.AllOrders())
}

func TestListByUserNewestFirst(t *testing.T) {
	f := setup(t)
	u := f.store.AddUser(user.User{Credits: 20})
	f.searched(t, u.ID)
	ctx := context.Background()

	for _, id := range []uuid.UUID{f.tools[0].ID, f.tools[2].ID} {
		_, err := f.orders.Place(ctx, u.ID, order.PlaceInput{Address: address, ToolIDs: []uuid.UUID{id}})
		require.NoError(t, err)
	}

	orders, total, err := f.orders.ListByUser(ctx, u.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 5, orders[0].TotalCost)
	assert.Equal(t, 3, orders[1].TotalCost)
}
