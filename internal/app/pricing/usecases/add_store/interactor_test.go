package add_store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func TestAddStore(t *testing.T) {
	ctx := context.Background()
	env := pricingtest.NewEnv(t)
	interactor := NewInteractor(env.Store.Templates(), env.Clock, env.Logger)

	store, err := interactor.Execute(ctx, &Request{Province: "quirino", Name: "  Diffun Public Market "})
	require.NoError(t, err)
	assert.Equal(t, "diffun-public-market", store.ID)
	assert.Equal(t, "Diffun Public Market", store.Name)

	// same name upserts the same store
	_, err = interactor.Execute(ctx, &Request{Province: "quirino", Name: "Diffun Public Market"})
	require.NoError(t, err)

	stores, err := env.Store.Templates().ListStores(ctx, "quirino")
	require.NoError(t, err)
	assert.Len(t, stores, 1)

	_, err = interactor.Execute(ctx, &Request{Province: "quirino", Name: " !! "})
	assert.ErrorIs(t, err, domain.ErrEmptyName)
}
