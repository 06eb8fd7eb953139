package baseline_template

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func TestBaselineTemplate(t *testing.T) {
	ctx := context.Background()
	env := pricingtest.NewEnv(t)

	env.Seed(t, pricingtest.NewSheetBuilder().WithFileName("old").WithLines(
		pricingtest.Line{Category: "Regular Milled", Name: "RMR", Unit: "kg", Prices: []string{"40"}},
	))
	env.Seed(t, pricingtest.NewSheetBuilder().WithFileName("new").WithUploadedAt(pricingtest.Start.Add(time.Hour)).WithLines(
		pricingtest.Line{Category: "Regular Milled", Name: "RMR", Unit: "kg", Prices: []string{"45"}},
		pricingtest.Line{Category: "Well Milled", Name: "WMR", Unit: "kg", Prices: []string{"50", "52"}},
	))

	q := NewQuery(env.Store.Files())
	result, err := q.Execute(ctx, &Request{Province: "quirino", CommodityDisplay: "Rice"})
	require.NoError(t, err)
	assert.Equal(t, "new", result.SourceFileID)
	require.Len(t, result.Categories, 2)

	for _, c := range result.Categories {
		for _, p := range c.Products() {
			assert.Empty(t, p.Prices(), "%s keeps no prices", p.Name())
			assert.Nil(t, p.PrevailingPrice())
		}
	}

	_, err = q.Execute(ctx, &Request{Province: "quirino", CommodityDisplay: "Sugar"})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}
