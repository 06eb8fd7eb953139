package compare_file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
)

func newQuery(env *pricingtest.Env) *Query {
	index := comparison.NewPeriodIndex(env.Store.Files(), env.Store.Baselines(), 0, env.Logger, env.Metrics)
	engine := comparison.NewEngine(index, env.Logger, env.Metrics)
	return NewQuery(env.Store.Files(), engine, comparison.NewSummaryAggregator(0))
}

func TestCompareFile(t *testing.T) {
	ctx := context.Background()
	env := pricingtest.NewEnv(t)

	env.Seed(t, pricingtest.NewSheetBuilder().WithFileName("Rice October").WithPeriod("October", "").WithLines(
		pricingtest.Line{Category: "Regular Milled", Name: "RMR", Unit: "kg", Prices: []string{"40", "40"}},
		pricingtest.Line{Category: "Regular Milled", Name: "WMR", Unit: "kg", Prices: []string{"50"}},
	))
	nov := env.Seed(t, pricingtest.NewSheetBuilder().WithFileName("Rice November").WithPeriod("November", "").WithLines(
		pricingtest.Line{Category: "Regular Milled", Name: "RMR", Unit: "kg", Prices: []string{"45", "45"}},
		pricingtest.Line{Category: "Regular Milled", Name: "WMR", Unit: "kg", Prices: []string{"48"}},
	))

	result, err := newQuery(env).Execute(ctx, &Request{Province: "quirino", FileID: nov.ID()})
	require.NoError(t, err)

	assert.Equal(t, nov.ID(), result.Document.ID())
	assert.True(t, result.YearOverYearReady)
	assert.Nil(t, result.Comparison.WeekAgo)
	require.NotNil(t, result.Comparison.MonthAgo)
	assert.Nil(t, result.Comparison.ThreeMonthsAgo)

	require.Len(t, result.Rows, 2)
	rmr := result.Rows[0].Cell(comparison.MonthAgo)
	require.True(t, rmr.Available)
	assert.Equal(t, "40.00", rmr.Price.String())

	month1 := result.Summary.Month1
	assert.Equal(t, 1, month1.IncreaseCount)
	assert.Equal(t, 1, month1.DecreaseCount)
	assert.Equal(t, 2, month1.TotalProducts)
	// a single mover is only reported as lowest
	assert.Empty(t, month1.HighestIncrease)
	require.Len(t, month1.LowestIncrease, 1)
	assert.Equal(t, "RMR (kg) - ₱5.00 (12.50%)", month1.LowestIncrease[0].String())
	assert.Equal(t, 0, result.Summary.Month3.IncreaseCount)

	_, err = newQuery(env).Execute(ctx, &Request{Province: "quirino", FileID: "missing"})
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}
