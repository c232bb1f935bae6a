package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbavisu/urbavisu-api/internal/domain/admin"
	"github.com/urbavisu/urbavisu-api/internal/domain/auth"
	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/jwt"
	"github.com/urbavisu/urbavisu-api/internal/testutil"
)

const welcomeBonus = 5

func setup(t *testing.T) (*testutil.Store, *admin.Service, admin.Actor) {
	t.Helper()
	store := testutil.NewStore()
	credits := credit.NewService(store.Credits(), store)
	identity := auth.NewService(store.Users(), jwt.NewService("test-secret", time.Hour), auth.NewMemoryRevocations())
	svc := admin.NewService(store.Users(), credits, identity, store.Routes(), store, welcomeBonus)

	a := store.AddUser(user.User{Role: user.RoleAdmin})
	return store, svc, admin.Actor{ID: a.ID, Role: a.Role}
}

func intPtr(v int) *int { return &v }

func TestUpdateUserCreditsWritesDelta(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Credits: 20})

	updated, err := svc.UpdateUser(context.Background(), actor, u.ID, admin.UpdateUserInput{Credits: intPtr(15)})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Credits)

	entries := store.Entries(u.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, credit.TypeUsage, entries[0].Type)
	assert.Equal(t, -5, entries[0].Quantity)
	assert.Equal(t, admin.ReasonAdminModification, entries[0].Reason)
	assert.Equal(t, actor.ID, entries[0].CreatedBy.UUID)

	updated, err = svc.UpdateUser(context.Background(), actor, u.ID, admin.UpdateUserInput{Credits: intPtr(18)})
	require.NoError(t, err)
	assert.Equal(t, 18, updated.Credits)
	entries = store.Entries(u.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, credit.TypeGift, entries[1].Type)
	assert.Equal(t, 3, entries[1].Quantity)
}

func TestUpdateUserSameCreditsWritesNoEntry(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Credits: 20})
	company := "Bureau Durand SA"

	updated, err := svc.UpdateUser(context.Background(), actor, u.ID, admin.UpdateUserInput{
		Credits: intPtr(20),
		Company: &company,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Credits)
	assert.Empty(t, store.Entries(u.ID))

	stored, _ := store.User(u.ID)
	assert.Equal(t, company, stored.Company)
}

func TestUpdateUserRejectsNegativeCredits(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Credits: 2})

	_, err := svc.UpdateUser(context.Background(), actor, u.ID, admin.UpdateUserInput{Credits: intPtr(-1)})
	assert.ErrorIs(t, err, admin.ErrNegativeCredits)
	assert.Empty(t, store.Entries(u.ID))
}

func TestApprovalPaysWelcomeBonusOnce(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Status: user.StatusPending})
	ctx := context.Background()

	approved, err := svc.ChangeStatus(ctx, actor, u.ID, user.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, user.StatusApproved, approved.Status)
	assert.True(t, approved.Validated)
	assert.True(t, approved.WelcomeBonusGranted)
	assert.Equal(t, welcomeBonus, approved.Credits)

	// same status is a no-op
	_, err = svc.ChangeStatus(ctx, actor, u.ID, user.StatusApproved)
	require.NoError(t, err)

	entries := store.Entries(u.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, credit.TypeGift, entries[0].Type)
	assert.Equal(t, welcomeBonus, entries[0].Quantity)
	assert.Equal(t, admin.ReasonWelcomeCredits, entries[0].Reason)

	stored, _ := store.User(u.ID)
	assert.Equal(t, welcomeBonus, stored.Credits)
}

func TestApprovalSkipsBonusWhenBalanceNotZero(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Status: user.StatusPending, Credits: 3})

	approved, err := svc.ChangeStatus(context.Background(), actor, u.ID, user.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 3, approved.Credits)
	assert.False(t, approved.WelcomeBonusGranted)
	assert.Empty(t, store.Entries(u.ID))
}

func TestStatusTransitions(t *testing.T) {
	store, svc, actor := setup(t)
	ctx := context.Background()

	rejected := store.AddUser(user.User{Status: user.StatusPending})
	u, err := svc.ChangeStatus(ctx, actor, rejected.ID, user.StatusRejected)
	require.NoError(t, err)
	assert.False(t, u.Validated)
	assert.Empty(t, store.Entries(rejected.ID))

	_, err = svc.ChangeStatus(ctx, actor, rejected.ID, user.StatusApproved)
	assert.ErrorIs(t, err, admin.ErrInvalidStatusTransition)

	approved := store.AddUser(user.User{})
	_, err = svc.ChangeStatus(ctx, actor, approved.ID, user.StatusPending)
	assert.ErrorIs(t, err, admin.ErrInvalidStatusTransition)
}

func TestGrantCreditsRejectsNonPositiveBeforeStoreAccess(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Credits: 4})

	for _, qty := range []int{0, -3} {
		before := store.Calls()
		_, err := svc.GrantCredits(context.Background(), actor, u.ID, qty)
		assert.ErrorIs(t, err, admin.ErrInvalidAmount)
		assert.Equal(t, before, store.Calls())
	}
	assert.Empty(t, store.Entries(u.ID))
}

func TestGrantCredits(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Credits: 4})

	res, err := svc.GrantCredits(context.Background(), actor, u.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Balance)
	assert.Equal(t, admin.ReasonManualAddition, res.Entry.Reason)
	assert.Equal(t, credit.TypeGift, res.Entry.Type)

	_, err = svc.GrantCredits(context.Background(), actor, uuid.New(), 6)
	assert.ErrorIs(t, err, admin.ErrUserNotFound)
}

func TestApprovalWithUnchangedCreditsKeepsWelcomeBonus(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Status: user.StatusPending})
	approved := user.StatusApproved

	updated, err := svc.UpdateUser(context.Background(), actor, u.ID, admin.UpdateUserInput{
		Status:  &approved,
		Credits: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, welcomeBonus, updated.Credits)
	assert.True(t, updated.WelcomeBonusGranted)

	entries := store.Entries(u.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, credit.TypeGift, entries[0].Type)
	assert.Equal(t, welcomeBonus, entries[0].Quantity)
	assert.Equal(t, admin.ReasonWelcomeCredits, entries[0].Reason)

	stored, _ := store.User(u.ID)
	assert.Equal(t, welcomeBonus, stored.Credits)
	assert.True(t, stored.WelcomeBonusGranted)
}

func TestApprovalWithNewCreditsSetsTargetBalance(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{Status: user.StatusPending})
	approved := user.StatusApproved

	updated, err := svc.UpdateUser(context.Background(), actor, u.ID, admin.UpdateUserInput{
		Status:  &approved,
		Credits: intPtr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Credits)

	entries := store.Entries(u.ID)
	require.Len(t, entries, 2)
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	assert.Equal(t, 12, total)
}

func TestAdminCannotManageSuperAdmin(t *testing.T) {
	store, svc, actor := setup(t)
	super := store.AddUser(user.User{Role: user.RoleSuperAdmin, Credits: 30})
	ctx := context.Background()
	client := user.RoleClient

	_, err := svc.UpdateUser(ctx, actor, super.ID, admin.UpdateUserInput{Role: &client})
	assert.ErrorIs(t, err, admin.ErrCannotManageUser)

	_, err = svc.UpdateUser(ctx, actor, super.ID, admin.UpdateUserInput{Credits: intPtr(0)})
	assert.ErrorIs(t, err, admin.ErrCannotManageUser)

	_, err = svc.ChangeStatus(ctx, actor, super.ID, user.StatusRejected)
	assert.ErrorIs(t, err, admin.ErrCannotManageUser)

	_, err = svc.GrantCredits(ctx, actor, super.ID, 10)
	assert.ErrorIs(t, err, admin.ErrCannotManageUser)

	stored, _ := store.User(super.ID)
	assert.Equal(t, user.RoleSuperAdmin, stored.Role)
	assert.Equal(t, user.StatusApproved, stored.Status)
	assert.Equal(t, 30, stored.Credits)
	assert.Empty(t, store.Entries(super.ID))
}

func TestAdminCannotManagePeerAdmin(t *testing.T) {
	store, svc, actor := setup(t)
	peer := store.AddUser(user.User{Role: user.RoleAdmin, Status: user.StatusPending})

	_, err := svc.ChangeStatus(context.Background(), actor, peer.ID, user.StatusRejected)
	assert.ErrorIs(t, err, admin.ErrCannotManageUser)

	super := store.AddUser(user.User{Role: user.RoleSuperAdmin})
	updated, err := svc.ChangeStatus(context.Background(), admin.Actor{ID: super.ID, Role: super.Role}, peer.ID, user.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, user.StatusRejected, updated.Status)
}

func TestCanManage(t *testing.T) {
	assert.True(t, admin.CanManage(user.RoleSuperAdmin, user.RoleSuperAdmin))
	assert.True(t, admin.CanManage(user.RoleAdmin, user.RoleManager))
	assert.True(t, admin.CanManage(user.RoleManager, user.RoleClient))
	assert.False(t, admin.CanManage(user.RoleAdmin, user.RoleAdmin))
	assert.False(t, admin.CanManage(user.RoleAdmin, user.RoleSuperAdmin))
	assert.False(t, admin.CanManage(user.RoleClient, user.RoleClient))
}

func TestOnlySuperAdminAssignsSuperAdmin(t *testing.T) {
	store, svc, actor := setup(t)
	u := store.AddUser(user.User{})
	role := user.RoleSuperAdmin

	_, err := svc.UpdateUser(context.Background(), actor, u.ID, admin.UpdateUserInput{Role: &role})
	assert.ErrorIs(t, err, admin.ErrCannotAssignRole)

	super := store.AddUser(user.User{Role: user.RoleSuperAdmin})
	updated, err := svc.UpdateUser(context.Background(), admin.Actor{ID: super.ID, Role: super.Role}, u.ID,
		admin.UpdateUserInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, user.RoleSuperAdmin, updated.Role)
}

func TestCreateUser(t *testing.T) {
	store, svc, actor := setup(t)

	u, err := svc.CreateUser(context.Background(), actor, admin.CreateUserInput{
		Email:    " Architecte@Example.CH ",
		Password: "secret1",
		Role:     user.RoleManager,
		Status:   user.StatusApproved,
		Profile:  user.Profile{FirstName: "Anna", LastName: "Keller"},
	})
	require.NoError(t, err)
	assert.Equal(t, "architecte@example.ch", u.Email)
	assert.True(t, u.Validated)
	assert.Equal(t, 0, u.Credits)

	stored, ok := store.User(u.ID)
	require.True(t, ok)
	assert.Equal(t, user.RoleManager, stored.Role)
	assert.Equal(t, "Anna Keller", stored.FullName())

	_, err = svc.CreateUser(context.Background(), actor, admin.CreateUserInput{
		Email: "architecte@example.ch", Password: "secret1", Role: user.RoleClient, Status: user.StatusPending,
		Profile: user.Profile{FirstName: "Marc", LastName: "Keller"},
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestCreateUserRequiresName(t *testing.T) {
	store, svc, actor := setup(t)
	before := store.Writes()

	for _, p := range []user.Profile{{}, {FirstName: "Anna"}, {LastName: "Keller"}, {FirstName: " ", LastName: "Keller"}} {
		_, err := svc.CreateUser(context.Background(), actor, admin.CreateUserInput{
			Email: "anna@example.ch", Password: "secret1", Role: user.RoleClient, Status: user.StatusPending,
			Profile: p,
		})
		assert.ErrorIs(t, err, admin.ErrNameRequired)
	}
	assert.Equal(t, before, store.Writes())
}

func TestListRoutesFallsBackToDefaults(t *testing.T) {
	store, svc, _ := setup(t)

	routes, err := svc.ListRoutes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, admin.DefaultRoutes(), routes)

	store.AddRoute(admin.Route{Name: "Commandes", Path: "/admin/orders", DisplayOrder: 2, IsActive: true})
	store.AddRoute(admin.Route{Name: "Dashboard", Path: "/admin", DisplayOrder: 1, IsActive: true})
	store.AddRoute(admin.Route{Name: "Hidden", Path: "/admin/hidden", DisplayOrder: 0, IsActive: false})

	routes, err = svc.ListRoutes(context.Background())
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "/admin", routes[0].Path)
}
