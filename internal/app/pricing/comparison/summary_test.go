package comparison

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

func ranked(pesos ...int64) []RankedItem {
	items := make([]RankedItem, 0, len(pesos))
	for i, p := range pesos {
		items = append(items, RankedItem{
			Name:    string(rune('A' + i)),
			Unit:    "kg",
			Peso:    decimal.NewFromInt(p),
			Percent: decimal.NewFromInt(p),
		})
	}
	return items
}

func pesos(items []RankedItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.Peso.IntPart())
	}
	return out
}

func TestItemsWithTies(t *testing.T) {
	tests := []struct {
		name    string
		items   []RankedItem
		highest bool
		limit   int
		want    []int64
	}{
		{name: "exactly limit keeps all", items: ranked(5, 5, 4, 3, 2), highest: true, limit: 5, want: []int64{5, 5, 4, 3, 2}},
		{name: "ties at the cutoff are included", items: ranked(9, 9, 9, 2, 1), highest: true, limit: 3, want: []int64{9, 9, 9}},
		{name: "ties beyond the limit", items: ranked(9, 9, 9, 9, 1), highest: true, limit: 3, want: []int64{9, 9, 9, 9}},
		{name: "lowest ascending with ties", items: ranked(3, 1, 2, 2, 5), highest: false, limit: 2, want: []int64{1, 2, 2}},
		{name: "no tie at cutoff", items: ranked(1, 2, 3, 4, 5, 6), highest: true, limit: 5, want: []int64{6, 5, 4, 3, 2}},
		{name: "fewer than limit", items: ranked(1, 3), highest: true, limit: 5, want: []int64{3, 1}},
		{name: "empty", items: nil, highest: true, limit: 5, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := itemsWithTies(tt.items, tt.highest, tt.limit)
			assert.Equal(t, tt.want, pesos(got))
		})
	}

	t.Run("single item is only lowest", func(t *testing.T) {
		one := ranked(7)
		assert.Empty(t, itemsWithTies(one, true, 5))
		assert.Equal(t, []int64{7}, pesos(itemsWithTies(one, false, 5)))
	})

	t.Run("stable for equal magnitudes", func(t *testing.T) {
		got := itemsWithTies(ranked(4, 4, 4), true, 2)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"A", "B", "C"}, []string{got[0].Name, got[1].Name, got[2].Name})
	})

	t.Run("input is not reordered", func(t *testing.T) {
		items := ranked(1, 3, 2)
		itemsWithTies(items, true, 5)
		assert.Equal(t, []int64{1, 3, 2}, pesos(items))
	})
}

func TestRankedItem_String(t *testing.T) {
	item := RankedItem{Name: "RMR", Unit: "kg", Peso: decimal.RequireFromString("2.5"), Percent: decimal.RequireFromString("6.25")}
	assert.Equal(t, "RMR (kg) - ₱2.50 (6.25%)", item.String())
}

func TestSummaryAggregator_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies increases and decreases per horizon", func(t *testing.T) {
		f := newFixture(t)
		f.sheet(t, "quirino", "Aug", domain.Period{Month: time.August}, base,
			line{name: "A", unit: "kg", prices: []string{"50"}},
			line{name: "B", unit: "kg", prices: []string{"50"}},
		)
		f.sheet(t, "quirino", "Oct", domain.Period{Month: time.October}, base,
			line{name: "A", unit: "kg", prices: []string{"40"}},
			line{name: "B", unit: "kg", prices: []string{"60"}},
			line{name: "C", unit: "kg", prices: []string{"30"}},
		)
		nov := f.sheet(t, "quirino", "Nov", domain.Period{Month: time.November}, base.Add(time.Hour),
			line{name: "A", unit: "kg", prices: []string{"45"}},
			line{name: "B", unit: "kg", prices: []string{"55"}},
			line{name: "C", unit: "kg", prices: []string{"30"}},
			line{name: "D", unit: "kg", prices: []string{""}},
		)

		cmp, err := f.engine.Build(ctx, nov)
		require.NoError(t, err)
		s := NewSummaryAggregator(0).Summarize(nov, cmp)

		assert.Equal(t, 3, s.Month1.TotalProducts, "products without a price are not counted")
		assert.Equal(t, 3, s.Month3.TotalProducts)

		assert.Equal(t, 1, s.Month1.IncreaseCount)
		assert.Equal(t, 1, s.Month1.DecreaseCount)
		assert.Empty(t, s.Month1.HighestIncrease)
		require.Len(t, s.Month1.LowestIncrease, 1)
		assert.Equal(t, "A (kg) - ₱5.00 (12.50%)", s.Month1.LowestIncrease[0].String())
		require.Len(t, s.Month1.LowestDecrease, 1)
		assert.Equal(t, "B (kg) - ₱5.00 (8.33%)", s.Month1.LowestDecrease[0].String(), "decreases are magnitudes")

		// Aug: A 50 -> 45, B 50 -> 55, C absent.
		assert.Equal(t, 1, s.Month3.IncreaseCount)
		assert.Equal(t, 1, s.Month3.DecreaseCount)
	})

	t.Run("zero comparable price skips only that horizon", func(t *testing.T) {
		f := newFixture(t)
		f.baseline(t, "quirino", 2025, domain.BaselineProduct{
			ProductID: "rmr", ProductName: "RMR", Unit: "kg",
			Prices: map[time.Month]domain.BaselineCell{
				time.October:  domain.MonthlyCell(domain.NewMoney(4000)),
				time.December: domain.MonthlyCell(domain.NewMoney(0)),
			},
		})
		jan := f.sheet(t, "quirino", "Jan", domain.Period{Month: time.January}, base, rmr("45"))

		cmp, err := f.engine.Build(ctx, jan)
		require.NoError(t, err)
		s := NewSummaryAggregator(5).Summarize(jan, cmp)

		assert.Equal(t, 1, s.Month1.TotalProducts)
		assert.Equal(t, 0, s.Month1.IncreaseCount)
		assert.Equal(t, 1, s.Month3.IncreaseCount)
		assert.Equal(t, "RMR (kg) - ₱5.00 (12.50%)", s.Month3.LowestIncrease[0].String())
	})

	t.Run("no targets still counts products", func(t *testing.T) {
		f := newFixture(t)
		jun := f.sheet(t, "quirino", "Jun", domain.Period{Month: time.June}, base, rmr("45"))
		cmp, err := f.engine.Build(ctx, jun)
		require.NoError(t, err)

		s := NewSummaryAggregator(5).Summarize(jun, cmp)
		assert.Equal(t, 1, s.Month1.TotalProducts)
		assert.Zero(t, s.Month1.IncreaseCount)
		assert.Empty(t, s.Month1.HighestIncrease)
		assert.NotNil(t, s.Month1.HighestIncrease)
	})
}
