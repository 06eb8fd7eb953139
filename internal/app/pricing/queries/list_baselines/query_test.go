package list_baselines

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func TestListBaselines(t *testing.T) {
	ctx := context.Background()
	env := pricingtest.NewEnv(t)

	for i, display := range []string{"Rice", "Fish"} {
		b, err := domain.NewBaselineDocument(domain.BaselineParams{
			CommodityDisplay: display,
			Province:         "quirino",
			Year:             2025,
			Products: []domain.BaselineProduct{{
				ProductName: "X",
				Unit:        "kg",
				Prices:      map[time.Month]domain.BaselineCell{time.October: domain.MonthlyCell(pricingtest.Money(t, "10"))},
			}},
		}, pricingtest.Start.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, env.Store.Baselines().Upsert(ctx, b))
	}

	entries, err := NewQuery(env.Store.Baselines()).Execute(ctx, &Request{Province: "quirino"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Fish", entries[0].CommodityDisplay)
	assert.Equal(t, "2025_Rice", entries[1].ID)
	assert.Equal(t, 1, entries[1].ProductCount)
}
