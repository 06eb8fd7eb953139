package delete_baseline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func TestDeleteBaseline(t *testing.T) {
	ctx := context.Background()
	env := pricingtest.NewEnv(t)

	b, err := domain.NewBaselineDocument(domain.BaselineParams{
		CommodityDisplay: "Rice",
		Province:         "isabela",
		Year:             2025,
		Products: []domain.BaselineProduct{{
			ProductName: "RMR",
			Unit:        "kg",
			Prices: map[time.Month]domain.BaselineCell{
				time.October: domain.WeeklyCell(map[domain.Week]*domain.Money{1: pricingtest.Money(t, "41")}),
			},
		}},
	}, pricingtest.Start)
	require.NoError(t, err)
	require.NoError(t, env.Store.Baselines().Upsert(ctx, b))

	interactor := NewInteractor(env.Store.Baselines(), env.Recorder, env.Clock, env.Logger, 0)
	require.NoError(t, interactor.Execute(ctx, &Request{Province: "isabela", CommodityDisplay: "Rice", DeletedBy: "uid-1"}))

	ok, err := env.Store.Baselines().Exists(ctx, "isabela", "2025_Rice")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"baseline.deleted"}, env.Outbox.EventTypes())

	err = interactor.Execute(ctx, &Request{Province: "isabela", CommodityDisplay: "Rice", DeletedBy: "uid-1"})
	assert.ErrorIs(t, err, domain.ErrBaselineNotFound)
}
