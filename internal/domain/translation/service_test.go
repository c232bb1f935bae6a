package translation_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbavisu/urbavisu-api/internal/domain/translation"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/testutil"
)

func setup(t *testing.T) (*testutil.Store, *translation.Service, *translation.Localizer) {
	t.Helper()
	store := testutil.NewStore()
	localizer := translation.NewLocalizer(store.Translations())
	return store, translation.NewService(store.Translations(), localizer), localizer
}

func TestCreateThenResolveEveryLocale(t *testing.T) {
	_, svc, localizer := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, translation.Input{
		Key: "search.placeholder",
		FR:  "Saisissez une adresse",
		DE:  "Adresse eingeben",
		IT:  "Inserisci un indirizzo",
		EN:  "Enter an address",
	})
	require.NoError(t, err)

	assert.Equal(t, "Saisissez une adresse", localizer.T(i18n.FR, "search.placeholder", nil))
	assert.Equal(t, "Adresse eingeben", localizer.T(i18n.DE, "search.placeholder", nil))
	assert.Equal(t, "Inserisci un indirizzo", localizer.T(i18n.IT, "search.placeholder", nil))
	assert.Equal(t, "Enter an address", localizer.T(i18n.EN, "search.placeholder", nil))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "general", items[0].Category)
}

func TestLocalizerFallbacks(t *testing.T) {
	_, svc, localizer := setup(t)

	_, err := svc.Create(context.Background(), translation.Input{
		Key: "credits.purchaseSuccess",
		FR:  "{credits} crédits ajoutés",
	})
	require.NoError(t, err)

	// missing locale falls back to French
	assert.Equal(t, "12 crédits ajoutés", localizer.T(i18n.DE, "credits.purchaseSuccess", map[string]string{"credits": "12"}))
	// unknown to the table, known to the built-in messages
	assert.Equal(t, "Order placed", localizer.T(i18n.EN, i18n.KeyOrderSuccess, nil))
	// unknown everywhere
	assert.Equal(t, "nav.unknown", localizer.T(i18n.IT, "nav.unknown", nil))
}

func TestCreateRejectsDuplicateKeyBeforeInsert(t *testing.T) {
	store, svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, translation.Input{Key: "nav.home", FR: "Accueil"})
	require.NoError(t, err)
	writes := store.Writes()

	_, err = svc.Create(ctx, translation.Input{Key: " nav.home ", FR: "Accueil bis"})
	assert.ErrorIs(t, err, translation.ErrDuplicateKey)
	assert.Equal(t, writes, store.Writes())
}

func TestCreateRequiresKeyAndFrench(t *testing.T) {
	store, svc, _ := setup(t)

	_, err := svc.Create(context.Background(), translation.Input{Key: "  ", FR: "x"})
	assert.ErrorIs(t, err, translation.ErrKeyRequired)

	_, err = svc.Create(context.Background(), translation.Input{Key: "nav.home", DE: "Start"})
	assert.ErrorIs(t, err, translation.ErrFrenchRequired)

	assert.Zero(t, store.Writes())
}

func TestUpdateReloadsLocalizer(t *testing.T) {
	_, svc, localizer := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, translation.Input{Key: "nav.orders", FR: "Commandes", EN: "Orders"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, translation.Input{Key: "nav.tools", FR: "Outils"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, translation.Input{Key: "nav.orders", FR: "Commandes", EN: "My orders"})
	require.NoError(t, err)
	assert.Equal(t, "My orders", localizer.T(i18n.EN, "nav.orders", nil))

	_, err = svc.Update(ctx, other.ID, translation.Input{Key: "nav.orders", FR: "Outils"})
	assert.ErrorIs(t, err, translation.ErrDuplicateKey)

	_, err = svc.Update(ctx, uuid.New(), translation.Input{Key: "nav.x", FR: "x"})
	assert.ErrorIs(t, err, translation.ErrTranslationNotFound)
}
