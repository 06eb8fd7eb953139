package add_category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func TestAddCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the category with its first product", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		interactor := NewInteractor(env.Store.Templates(), env.Clock, env.Logger)

		category, err := interactor.Execute(ctx, &Request{
			Province:    "quirino",
			Commodity:   "Rice",
			Name:        "Regular Milled",
			ProductName: "RMR",
			ProductUnit: "kg",
		})
		require.NoError(t, err)
		assert.Equal(t, "regular-milled", category.ID())

		products, err := env.Store.Templates().ListProducts(ctx, "quirino", "rice", "regular-milled")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "RMR", products[0].Name())
		assert.Equal(t, "kg", products[0].Unit())
	})

	t.Run("first product is required", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		interactor := NewInteractor(env.Store.Templates(), env.Clock, env.Logger)

		_, err := interactor.Execute(ctx, &Request{Province: "quirino", Commodity: "Rice", Name: "Regular Milled"})
		assert.ErrorIs(t, err, domain.ErrEmptyName)

		categories, err := env.Store.Templates().ListCategories(ctx, "quirino", "rice")
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("commodity is required", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		interactor := NewInteractor(env.Store.Templates(), env.Clock, env.Logger)

		_, err := interactor.Execute(ctx, &Request{Province: "quirino", Name: "Regular Milled", ProductName: "RMR"})
		assert.ErrorIs(t, err, domain.ErrEmptyCommodity)
	})
}
