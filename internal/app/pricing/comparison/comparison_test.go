package comparison

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/repo"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
)

var base = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

// line is one product of a test sheet; an empty price means not surveyed.
type line struct {
	name, unit string
	prices     []string
}

type fixture struct {
	store   *repo.MemoryStore
	metrics *metrics.Metrics
	engine  *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repo.NewMemoryStore()
	m := metrics.NewNop()
	index := NewPeriodIndex(store.Files(), store.Baselines(), 0, zap.NewNop(), m)
	return &fixture{store: store, metrics: m, engine: NewEngine(index, zap.NewNop(), m)}
}

func (f *fixture) sheet(t *testing.T, province, fileName string, period domain.Period, uploadedAt time.Time, lines ...line) *domain.PriceDocument {
	t.Helper()
	category, err := domain.NewCategory("", "Rice", uploadedAt)
	require.NoError(t, err)
	for _, l := range lines {
		p, err := domain.NewProduct("", l.name, l.unit, uploadedAt)
		require.NoError(t, err)
		for i, raw := range l.prices {
			if raw == "" {
				continue
			}
			v, err := domain.ParseMoney(raw)
			require.NoError(t, err)
			p.SetPrice(i, v)
		}
		category.AddProduct(p)
	}

	doc, err := domain.NewPriceDocument(domain.DocumentParams{
		FileName:         fileName,
		Commodity:        "rice",
		CommodityDisplay: "Rice",
		Period:           period,
		Stores:           []string{"Store A", "Store B", "Store C"},
		Categories:       []*domain.Category{category},
		Province:         province,
		UploadedBy:       "uid-1",
	}, uploadedAt)
	require.NoError(t, err)
	require.NoError(t, f.store.Files().Upsert(context.Background(), doc))
	return doc
}

func (f *fixture) baseline(t *testing.T, province string, year int, products ...domain.BaselineProduct) {
	t.Helper()
	b, err := domain.NewBaselineDocument(domain.BaselineParams{
		CommodityDisplay: "Rice",
		Province:         province,
		Year:             year,
		Products:         products,
		SavedBy:          "uid-1",
	}, base)
	require.NoError(t, err)
	require.NoError(t, f.store.Baselines().Upsert(context.Background(), b))
}

func rmr(prices ...string) line {
	return line{name: "RMR", unit: "kg", prices: prices}
}

func TestPeriodIndex_FindOffset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	index := f.engine.Index()

	dec4 := f.sheet(t, "isabela", "Dec W4", domain.Period{Month: time.December, Week: 4}, base, rmr("44"))
	f.sheet(t, "isabela", "Jan W1", domain.Period{Month: time.January, Week: 1}, base.Add(time.Hour), rmr("45"))
	quirinoDec := f.sheet(t, "quirino", "Quirino Dec", domain.Period{Month: time.December}, base, rmr("40"))

	t.Run("week 1 wraps to week 4 of previous month", func(t *testing.T) {
		ref := Reference{Scope: Scope{Province: "isabela", CommodityDisplay: "Rice"}, Period: domain.Period{Month: time.January, Week: 1}}
		got, err := index.FindOffset(ctx, ref, domain.UnitWeek, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, dec4.ID(), got.ID())
	})

	t.Run("month offset wraps modulo twelve", func(t *testing.T) {
		ref := Reference{Scope: Scope{Province: "quirino", CommodityDisplay: "Rice"}, Period: domain.Period{Month: time.March}}
		got, err := index.FindOffset(ctx, ref, domain.UnitMonth, 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, quirinoDec.ID(), got.ID())
	})

	t.Run("week offset without a week", func(t *testing.T) {
		ref := Reference{Scope: Scope{Province: "quirino", CommodityDisplay: "Rice"}, Period: domain.Period{Month: time.January}}
		got, err := index.FindOffset(ctx, ref, domain.UnitWeek, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("monthly lookups do not match weekly sheets", func(t *testing.T) {
		got, err := index.FindExact(ctx, Scope{Province: "isabela", CommodityDisplay: "Rice"}, domain.Period{Month: time.December})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown commodity and empty province are empty results", func(t *testing.T) {
		got, err := index.FindExact(ctx, Scope{Province: "quirino", CommodityDisplay: "Corn"}, domain.Period{Month: time.December})
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = index.FindExact(ctx, Scope{CommodityDisplay: "Rice"}, domain.Period{Month: time.December})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("known years must agree", func(t *testing.T) {
		got, err := index.FindExact(ctx, Scope{Province: "quirino", CommodityDisplay: "Rice"}, domain.Period{Month: time.December, Year: 2024})
		require.NoError(t, err)
		require.NotNil(t, got, "stored sheet has no year and matches any year")
	})
}

func TestPeriodIndex_DuplicatePeriodUsesMostRecent(t *testing.T) {
	f := newFixture(t)
	f.sheet(t, "quirino", "Oct first", domain.Period{Month: time.October}, base, rmr("40"))
	newest := f.sheet(t, "quirino", "Oct second", domain.Period{Month: time.October}, base.Add(time.Hour), rmr("41"))

	got, err := f.engine.Index().FindExact(context.Background(), Scope{Province: "quirino", CommodityDisplay: "Rice"}, domain.Period{Month: time.October})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.ID(), got.ID())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.DuplicatePeriodDocuments.WithLabelValues("quirino")))
}

func TestPeriodIndex_FindYearOverYear(t *testing.T) {
	ctx := context.Background()
	ref := Reference{Scope: Scope{Province: "quirino", CommodityDisplay: "Rice"}, Period: domain.Period{Month: time.January}}

	t.Run("falls back to the baseline", func(t *testing.T) {
		f := newFixture(t)
		f.baseline(t, "quirino", 2025, domain.BaselineProduct{
			ProductID: "rmr", ProductName: "RMR", Unit: "kg",
			Prices: map[time.Month]domain.BaselineCell{time.December: domain.MonthlyCell(domain.NewMoney(4200))},
		})

		target, err := f.engine.Index().FindYearOverYear(ctx, ref, 1)
		require.NoError(t, err)
		require.NotNil(t, target)
		assert.Equal(t, "baseline", target.Source())

		bt, ok := target.(domain.BaselineTarget)
		require.True(t, ok)
		assert.Equal(t, time.December, bt.Month)
		assert.Equal(t, domain.NoWeek, bt.Week)

		current := domain.ReconstructProduct("rmr", "RMR", "kg", map[int]*domain.Money{0: domain.NewMoney(4500)}, base)
		cmp := &Comparison{Province: "quirino"}
		assert.Equal(t, "42.00", cmp.ComparablePrice(current, "Rice", target).String())
	})

	t.Run("prefers an uploaded sheet", func(t *testing.T) {
		f := newFixture(t)
		f.baseline(t, "quirino", 2025, domain.BaselineProduct{
			ProductID: "rmr", ProductName: "RMR", Unit: "kg",
			Prices: map[time.Month]domain.BaselineCell{time.October: domain.MonthlyCell(domain.NewMoney(4200))},
		})
		oct := f.sheet(t, "quirino", "Oct", domain.Period{Month: time.October}, base, rmr("43"))

		target, err := f.engine.Index().FindYearOverYear(ctx, ref, 3)
		require.NoError(t, err)
		dt, ok := target.(domain.DocumentTarget)
		require.True(t, ok)
		assert.Equal(t, oct.ID(), dt.Document.ID())
	})

	t.Run("known year selects the previous year's baseline", func(t *testing.T) {
		f := newFixture(t)
		f.baseline(t, "quirino", 2026, domain.BaselineProduct{
			ProductID: "rmr", ProductName: "RMR", Unit: "kg",
			Prices: map[time.Month]domain.BaselineCell{time.December: domain.MonthlyCell(domain.NewMoney(4200))},
		})
		withYear := ref
		withYear.Period.Year = 2027

		target, err := f.engine.Index().FindYearOverYear(ctx, withYear, 1)
		require.NoError(t, err)
		require.NotNil(t, target)
		assert.Equal(t, "December 2026", target.Label())
	})

	t.Run("only one or three months back", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.Index().FindYearOverYear(ctx, ref, 2)
		assert.ErrorIs(t, err, domain.ErrInvalidComparisonSpan)
	})

	t.Run("nothing available", func(t *testing.T) {
		f := newFixture(t)
		target, err := f.engine.Index().FindYearOverYear(ctx, ref, 1)
		require.NoError(t, err)
		assert.Nil(t, target)
	})
}

func TestPeriodIndex_HasYearOverYearData(t *testing.T) {
	ctx := context.Background()
	monthly := Reference{Scope: Scope{Province: "quirino", CommodityDisplay: "Rice"}, Period: domain.Period{Month: time.February}}
	weekly := Reference{Scope: Scope{Province: "isabela", CommodityDisplay: "Rice"}, Period: domain.Period{Month: time.February, Week: 1}}

	t.Run("months outside the first quarter", func(t *testing.T) {
		f := newFixture(t)
		ok, err := f.engine.Index().HasYearOverYearData(ctx, Reference{Scope: monthly.Scope, Period: domain.Period{Month: time.June}})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("monthly province with every prior quarter sheet", func(t *testing.T) {
		f := newFixture(t)
		for _, m := range domain.BaselineCoverageMonths {
			f.sheet(t, "quirino", m.String(), domain.Period{Month: m}, base, rmr("40"))
		}
		ok, err := f.engine.Index().HasYearOverYearData(ctx, monthly)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("weekly province missing a week falls back to the baseline", func(t *testing.T) {
		f := newFixture(t)
		for _, m := range domain.BaselineCoverageMonths {
			for _, w := range []domain.Week{1, 2, 3} {
				f.sheet(t, "isabela", m.String()+" "+w.String(), domain.Period{Month: m, Week: w}, base, rmr("40"))
			}
		}
		ok, err := f.engine.Index().HasYearOverYearData(ctx, weekly)
		require.NoError(t, err)
		assert.False(t, ok)

		f.baseline(t, "isabela", 2025, domain.BaselineProduct{
			ProductID: "rmr", ProductName: "RMR", Unit: "kg",
			Prices: map[time.Month]domain.BaselineCell{
				time.December: domain.WeeklyCell(map[domain.Week]*domain.Money{4: domain.NewMoney(4000)}),
			},
		})
		ok, err = f.engine.Index().HasYearOverYearData(ctx, weekly)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestEngine_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("monthly province end to end", func(t *testing.T) {
		f := newFixture(t)
		oct := f.sheet(t, "quirino", "Rice October", domain.Period{Month: time.October}, base, rmr("40", "40", "45"))
		nov := f.sheet(t, "quirino", "Rice November", domain.Period{Month: time.November}, base.Add(time.Hour), rmr("50", "50", "48"))

		cmp, err := f.engine.Build(ctx, nov)
		require.NoError(t, err)
		assert.Nil(t, cmp.WeekAgo, "monthly provinces have no week horizon")
		assert.Nil(t, cmp.ThreeMonthsAgo)

		dt, ok := cmp.MonthAgo.(domain.DocumentTarget)
		require.True(t, ok)
		assert.Equal(t, oct.ID(), dt.Document.ID())

		product := nov.CategoryByName("Rice").FindProduct("RMR", "kg")
		prev := cmp.ComparablePrice(product, "Rice", cmp.MonthAgo)
		delta := domain.ComputeDelta(product.PrevailingPrice(), prev)
		require.NotNil(t, delta)
		assert.Equal(t, "10.00", delta.Absolute.String())
		assert.Equal(t, "25", delta.Percent.String())
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ComparisonsBuilt))
	})

	t.Run("weekly january reaches into the baseline", func(t *testing.T) {
		f := newFixture(t)
		f.baseline(t, "isabela", 2025, domain.BaselineProduct{
			ProductID: "rmr", ProductName: "RMR", Unit: "kg",
			Prices: map[time.Month]domain.BaselineCell{
				time.October:  domain.WeeklyCell(map[domain.Week]*domain.Money{2: domain.NewMoney(3800)}),
				time.December: domain.WeeklyCell(map[domain.Week]*domain.Money{2: domain.NewMoney(4000)}),
			},
		})
		f.sheet(t, "isabela", "Jan W1", domain.Period{Month: time.January, Week: 1}, base, rmr("44"))
		jan2 := f.sheet(t, "isabela", "Jan W2", domain.Period{Month: time.January, Week: 2}, base.Add(time.Hour), rmr("45"))

		cmp, err := f.engine.Build(ctx, jan2)
		require.NoError(t, err)
		require.NotNil(t, cmp.WeekAgo)
		assert.Equal(t, "document", cmp.WeekAgo.Source())

		product := jan2.CategoryByName("Rice").FindProduct("RMR", "kg")
		assert.Equal(t, "40.00", cmp.ComparablePrice(product, "Rice", cmp.MonthAgo).String())
		assert.Equal(t, "38.00", cmp.ComparablePrice(product, "Rice", cmp.ThreeMonthsAgo).String())
		assert.Equal(t, "44.00", cmp.ComparablePrice(product, "Rice", cmp.WeekAgo).String())
	})

	t.Run("monthly read of a weekly baseline cell is absent", func(t *testing.T) {
		b, err := domain.NewBaselineDocument(domain.BaselineParams{
			CommodityDisplay: "Rice",
			Year:             2025,
			Products: []domain.BaselineProduct{{
				ProductName: "RMR", Unit: "kg",
				Prices: map[time.Month]domain.BaselineCell{
					time.December: domain.WeeklyCell(map[domain.Week]*domain.Money{1: domain.NewMoney(4000)}),
				},
			}},
		}, base)
		require.NoError(t, err)
		product := domain.ReconstructProduct("rmr", "RMR", "kg", nil, base)
		cmp := &Comparison{Province: "quirino"}
		assert.Nil(t, cmp.ComparablePrice(product, "Rice", domain.BaselineTarget{Baseline: b, Month: time.December}))
		assert.Nil(t, cmp.ComparablePrice(product, "Rice", domain.BaselineTarget{Baseline: b, Month: time.November}))
	})
}

func TestRows(t *testing.T) {
	f := newFixture(t)
	f.sheet(t, "quirino", "Oct", domain.Period{Month: time.October}, base, rmr("40"))
	nov := f.sheet(t, "quirino", "Nov", domain.Period{Month: time.November}, base.Add(time.Hour),
		rmr("42", "", "42"),
		line{name: "Brown", unit: "kg", prices: []string{"60"}},
	)

	cmp, err := f.engine.Build(context.Background(), nov)
	require.NoError(t, err)

	rows := Rows(nov, cmp)
	require.Len(t, rows, 2)

	assert.Equal(t, "RMR", rows[0].ProductName)
	require.Len(t, rows[0].StorePrices, 3)
	assert.Nil(t, rows[0].StorePrices[1])
	assert.Equal(t, "42.00", rows[0].PrevailingPrice.String())

	month := rows[0].Cell(MonthAgo)
	assert.True(t, month.Available)
	assert.Equal(t, "2.00", month.Delta.Absolute.String())
	assert.False(t, rows[0].Cell(ThreeMonthsAgo).Available)

	brown := rows[1].Cell(MonthAgo)
	assert.True(t, brown.Available)
	assert.Nil(t, brown.Price, "product missing from the target sheet")
	assert.Nil(t, brown.Delta)
}
