package save_baseline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func rmrBaseline(t *testing.T, december string) []domain.BaselineProduct {
	return []domain.BaselineProduct{{
		ProductID:   "rmr",
		ProductName: "RMR",
		Unit:        "kg",
		Prices: map[time.Month]domain.BaselineCell{
			time.December: domain.MonthlyCell(pricingtest.Money(t, december)),
		},
	}}
}

func TestSaveBaseline(t *testing.T) {
	ctx := context.Background()

	t.Run("stores under the configured year", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		interactor := NewInteractor(env.Store.Baselines(), env.Recorder, env.Clock, env.Logger, 0)

		b, err := interactor.Execute(ctx, &Request{Province: "quirino", CommodityDisplay: "Rice Grains", Products: rmrBaseline(t, "42"), SavedBy: "uid-1"})
		require.NoError(t, err)
		assert.Equal(t, "2025_Rice_Grains", b.ID())

		stored, err := env.Store.Baselines().Get(ctx, "quirino", "2025_Rice_Grains")
		require.NoError(t, err)
		p, ok := stored.FindProduct("RMR", "kg")
		require.True(t, ok)
		cell, ok := p.Cell(time.December)
		require.True(t, ok)
		assert.Equal(t, "42.00", cell.Value().String())

		env.AssertOutboxEvent(t, "baseline.saved")
	})

	t.Run("update keeps the creation time", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		interactor := NewInteractor(env.Store.Baselines(), env.Recorder, env.Clock, env.Logger, 2025)

		_, err := interactor.Execute(ctx, &Request{Province: "quirino", CommodityDisplay: "Rice", Products: rmrBaseline(t, "42"), SavedBy: "uid-1"})
		require.NoError(t, err)

		env.Clock.Advance(24 * time.Hour)
		b, err := interactor.Execute(ctx, &Request{Province: "quirino", CommodityDisplay: "Rice", Products: rmrBaseline(t, "43"), SavedBy: "uid-1"})
		require.NoError(t, err)

		assert.Equal(t, pricingtest.Start, b.CreatedAt())
		assert.Equal(t, pricingtest.Start.Add(24*time.Hour), b.LastModified())
	})

	t.Run("empty table is rejected", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		interactor := NewInteractor(env.Store.Baselines(), env.Recorder, env.Clock, env.Logger, 0)

		_, err := interactor.Execute(ctx, &Request{
			Province:         "quirino",
			CommodityDisplay: "Rice",
			Products:         []domain.BaselineProduct{{ProductName: "RMR", Unit: "kg"}},
		})
		assert.ErrorIs(t, err, domain.ErrEmptyBaseline)

		ok, err := env.Store.Baselines().Exists(ctx, "quirino", "2025_Rice")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
