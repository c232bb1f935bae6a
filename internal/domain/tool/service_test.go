package tool_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbavisu/urbavisu-api/internal/domain/tool"
	"github.com/urbavisu/urbavisu-api/internal/testutil"
)

func TestResolveDedupesAndPricesFreeToolsAtZero(t *testing.T) {
	store := testutil.NewStore()
	svc := tool.NewService(store.Tools())

	plan := store.AddTool(tool.Tool{Name: "Plan", CreditCost: 3, IsActive: true})
	zone := store.AddTool(tool.Tool{Name: "Zone", CreditCost: 4, IsFree: true, IsActive: true})
	extract := store.AddTool(tool.Tool{Name: "Extrait", CreditCost: 5, IsActive: true})

	tools, err := svc.Resolve(context.Background(), []uuid.UUID{extract.ID, plan.ID, zone.ID, plan.ID})
	require.NoError(t, err)
	require.Len(t, tools, 3)
	assert.Equal(t, extract.ID, tools[0].ID)
	assert.Equal(t, 8, tool.TotalCost(tools))
}

func TestResolveUnknownOrInactive(t *testing.T) {
	store := testutil.NewStore()
	svc := tool.NewService(store.Tools())
	active := store.AddTool(tool.Tool{Name: "Plan", CreditCost: 3, IsActive: true})
	retired := store.AddTool(tool.Tool{Name: "Old", CreditCost: 3, IsActive: false})

	_, err := svc.Resolve(context.Background(), []uuid.UUID{active.ID, uuid.New()})
	assert.ErrorIs(t, err, tool.ErrUnknownTool)

	_, err = svc.Resolve(context.Background(), []uuid.UUID{retired.ID})
	assert.ErrorIs(t, err, tool.ErrUnknownTool)
}

func TestCreateAndUpdate(t *testing.T) {
	store := testutil.NewStore()
	svc := tool.NewService(store.Tools())
	ctx := context.Background()

	created, err := svc.Create(ctx, tool.Input{Name: "Plan", CreditCost: 3})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	inactive := false
	updated, err := svc.Update(ctx, created.ID, tool.Input{Name: "Plan cadastral", CreditCost: 4, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = svc.Update(ctx, uuid.New(), tool.Input{Name: "x"})
	assert.ErrorIs(t, err, tool.ErrToolNotFound)
}
