package list_stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func TestListStores(t *testing.T) {
	ctx := context.Background()
	env := pricingtest.NewEnv(t)
	templates := env.Store.Templates()

	require.NoError(t, templates.UpsertStore(ctx, "quirino", contracts.Store{ID: "public-market", Name: "Public Market", CreatedAt: pricingtest.Start.Add(time.Minute)}))
	require.NoError(t, templates.UpsertStore(ctx, "quirino", contracts.Store{ID: "grocery", Name: "Grocery", CreatedAt: pricingtest.Start}))
	require.NoError(t, templates.UpsertStore(ctx, "isabela", contracts.Store{ID: "other", Name: "Other", CreatedAt: pricingtest.Start}))

	stores, err := NewQuery(templates).Execute(ctx, &Request{Province: "quirino"})
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Grocery", stores[0].Name)
	assert.Equal(t, "Public Market", stores[1].Name)
}
