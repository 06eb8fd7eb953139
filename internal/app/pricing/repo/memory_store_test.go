package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/models/m_baseline"
)

func newDoc(t *testing.T, province, fileName string, period domain.Period, uploadedAt time.Time, price int64) *domain.PriceDocument {
	t.Helper()
	p, err := domain.NewProduct("", "RMR", "kg", uploadedAt)
	require.NoError(t, err)
	p.SetPrice(0, domain.NewMoney(price))
	c, err := domain.NewCategory("", "Rice", uploadedAt)
	require.NoError(t, err)
	c.AddProduct(p)

	doc, err := domain.NewPriceDocument(domain.DocumentParams{
		FileName:         fileName,
		Commodity:        "rice",
		CommodityDisplay: "Rice",
		Period:           period,
		Stores:           []string{"Store A"},
		Categories:       []*domain.Category{c},
		Province:         province,
		UploadedBy:       "uid-1",
	}, uploadedAt)
	require.NoError(t, err)
	return doc
}

func TestMemoryStore_Files(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	files := s.Files()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, files.Upsert(ctx, newDoc(t, "quirino", "Oct", domain.Period{Month: time.October}, base, 4500)))
	require.NoError(t, files.Upsert(ctx, newDoc(t, "quirino", "Nov", domain.Period{Month: time.November}, base.Add(time.Hour), 4700)))
	require.NoError(t, files.Upsert(ctx, newDoc(t, "isabela", "Nov", domain.Period{Month: time.November, Week: 2}, base, 4700)))

	t.Run("get round-trips prices", func(t *testing.T) {
		doc, err := files.Get(ctx, "quirino", "oct")
		require.NoError(t, err)
		assert.Equal(t, "Oct", doc.FileName())
		p := doc.CategoryByName("Rice").FindProduct("RMR", "kg")
		require.NotNil(t, p)
		assert.Equal(t, "45.00", p.PrevailingPrice().String())
	})

	t.Run("miss is not found", func(t *testing.T) {
		_, err := files.Get(ctx, "quirino", "missing")
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
		_, err = files.Get(ctx, "cagayan", "oct")
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})

	t.Run("list is newest first and scoped by province", func(t *testing.T) {
		docs, err := files.List(ctx, "quirino", contracts.FileFilter{})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "nov", docs[0].ID())
		assert.Equal(t, "oct", docs[1].ID())
	})

	t.Run("filters", func(t *testing.T) {
		docs, err := files.List(ctx, "quirino", contracts.FileFilter{Month: time.October})
		require.NoError(t, err)
		require.Len(t, docs, 1)

		week := domain.Week(2)
		docs, err = files.List(ctx, "isabela", contracts.FileFilter{Week: &week})
		require.NoError(t, err)
		require.Len(t, docs, 1)

		week = 3
		docs, err = files.List(ctx, "isabela", contracts.FileFilter{Week: &week})
		require.NoError(t, err)
		assert.Empty(t, docs)

		docs, err = files.List(ctx, "quirino", contracts.FileFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("upsert overwrites and delete removes", func(t *testing.T) {
		require.NoError(t, files.Upsert(ctx, newDoc(t, "quirino", "Oct", domain.Period{Month: time.October}, base, 4600)))
		doc, err := files.Get(ctx, "quirino", "oct")
		require.NoError(t, err)
		assert.Equal(t, "46.00", doc.CategoryByName("Rice").FindProduct("RMR", "kg").PrevailingPrice().String())

		require.NoError(t, files.Delete(ctx, "quirino", "oct"))
		_, err = files.Get(ctx, "quirino", "oct")
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})
}

func TestMemoryStore_Baselines(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	b, err := domain.NewBaselineDocument(domain.BaselineParams{
		CommodityDisplay: "Rice",
		Province:         "isabela",
		Year:             2025,
		Products: []domain.BaselineProduct{{
			ProductID:   "rmr",
			ProductName: "RMR",
			Unit:        "kg",
			Prices: map[time.Month]domain.BaselineCell{
				time.December: domain.WeeklyCell(map[domain.Week]*domain.Money{4: domain.NewMoney(4400)}),
			},
		}},
	}, now)
	require.NoError(t, err)
	require.NoError(t, s.Baselines().Upsert(ctx, b))

	ok, err := s.Baselines().Exists(ctx, "isabela", "2025_Rice")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Baselines().Get(ctx, "isabela", "2025_Rice")
	require.NoError(t, err)
	row, found := got.FindProduct("RMR", "kg")
	require.True(t, found)
	cell, _ := row.Cell(time.December)
	assert.True(t, cell.IsWeekly())
	assert.Equal(t, "44.00", cell.Week(4).String())

	list, err := s.Baselines().List(ctx, "isabela")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Baselines().Delete(ctx, "isabela", "2025_Rice"))
	_, err = s.Baselines().Get(ctx, "isabela", "2025_Rice")
	assert.ErrorIs(t, err, domain.ErrBaselineNotFound)
}

func TestMemoryStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Users().Enroll(ctx, "quirino", contracts.Identity{UID: "u1", Email: "a@x"}, now))
	require.NoError(t, s.Users().Enroll(ctx, "quirino", contracts.Identity{UID: "u1", Email: "a@x"}, now.Add(time.Hour)))
	require.NoError(t, s.Users().Enroll(ctx, "quirino", contracts.Identity{UID: "u2"}, now))

	assert.Equal(t, 2, s.UserCount("quirino"))
	member, err := s.Users().IsMember(ctx, "quirino", "u1")
	require.NoError(t, err)
	assert.True(t, member)

	member, err = s.Users().IsMember(ctx, "isabela", "u1")
	require.NoError(t, err)
	assert.False(t, member)

	s.AddAdmin("root")
	admin, err := s.Users().IsAdmin(ctx, "root")
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestDataToCell(t *testing.T) {
	t.Run("numbers are monthly", func(t *testing.T) {
		cell, err := dataToCell(float64(45.5))
		require.NoError(t, err)
		assert.False(t, cell.IsWeekly())
		assert.Equal(t, "45.50", cell.Value().String())

		cell, err = dataToCell(int64(45))
		require.NoError(t, err)
		assert.Equal(t, "45.00", cell.Value().String())
	})

	t.Run("null is an empty monthly cell", func(t *testing.T) {
		cell, err := dataToCell(nil)
		require.NoError(t, err)
		assert.False(t, cell.HasData())
	})

	t.Run("maps are weekly", func(t *testing.T) {
		cell, err := dataToCell(map[string]interface{}{"Week 1": float64(40), "Week 2": nil})
		require.NoError(t, err)
		assert.True(t, cell.IsWeekly())
		assert.Equal(t, "40.00", cell.Week(1).String())
		assert.Nil(t, cell.Week(2))
	})

	t.Run("bad week label", func(t *testing.T) {
		_, err := dataToCell(map[string]interface{}{"W1": float64(40)})
		assert.ErrorIs(t, err, domain.ErrInvalidWeek)
	})

	t.Run("bad value type", func(t *testing.T) {
		_, err := dataToCell("forty")
		assert.Error(t, err)
	})
}

func TestDataToBaseline_BadMonth(t *testing.T) {
	_, err := dataToBaseline("x", &m_baseline.Data{
		Products: []m_baseline.Product{{ProductID: "p", Prices: map[string]interface{}{"Octember": float64(1)}}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}
