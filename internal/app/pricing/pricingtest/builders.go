package pricingtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Line is one product row; an empty price means the store was not surveyed.
type Line struct {
	Category string
	Name     string
	Unit     string
	Prices   []string
}

// SheetBuilder helps create price sheets for tests with a fluent interface
type SheetBuilder struct {
	fileName        string
	commodity       string
	display         string
	custom          bool
	province        string
	month           string
	week            string
	year            int
	stores          []string
	lines           []Line
	uploadedBy      string
	uploadedByEmail string
	uploadedAt      time.Time
}

// NewSheetBuilder creates a new builder with default values: a monthly
// Quirino rice sheet for November with one priced product.
func NewSheetBuilder() *SheetBuilder {
	return &SheetBuilder{
		fileName:        "Rice November",
		commodity:       "Rice",
		display:         "Rice",
		province:        "quirino",
		month:           "November",
		stores:          []string{"Store A", "Store B", "Store C"},
		lines:           []Line{{Category: "Regular Milled", Name: "RMR", Unit: "kg", Prices: []string{"45", "45", "48"}}},
		uploadedBy:      "uid-1",
		uploadedByEmail: "encoder@example.com",
		uploadedAt:      Start,
	}
}

// WithFileName sets the file name
func (b *SheetBuilder) WithFileName(name string) *SheetBuilder {
	b.fileName = name
	return b
}

// WithCommodity sets a predefined commodity
func (b *SheetBuilder) WithCommodity(display string) *SheetBuilder {
	b.commodity = display
	b.display = display
	b.custom = false
	return b
}

// WithCustomCommodity sets a user-named commodity
func (b *SheetBuilder) WithCustomCommodity(display string) *SheetBuilder {
	b.commodity = ""
	b.display = display
	b.custom = true
	return b
}

// WithProvince sets the province
func (b *SheetBuilder) WithProvince(province string) *SheetBuilder {
	b.province = province
	return b
}

// WithPeriod sets the month and week labels
func (b *SheetBuilder) WithPeriod(month, week string) *SheetBuilder {
	b.month = month
	b.week = week
	return b
}

// WithYear sets the sheet year
func (b *SheetBuilder) WithYear(year int) *SheetBuilder {
	b.year = year
	return b
}

// WithStores replaces the store list
func (b *SheetBuilder) WithStores(stores ...string) *SheetBuilder {
	b.stores = stores
	return b
}

// WithLines replaces the product rows
func (b *SheetBuilder) WithLines(lines ...Line) *SheetBuilder {
	b.lines = lines
	return b
}

// WithLine appends a product row
func (b *SheetBuilder) WithLine(category, name, unit string, prices ...string) *SheetBuilder {
	b.lines = append(b.lines, Line{Category: category, Name: name, Unit: unit, Prices: prices})
	return b
}

// WithUploader sets the uploader
func (b *SheetBuilder) WithUploader(uid, email string) *SheetBuilder {
	b.uploadedBy = uid
	b.uploadedByEmail = email
	return b
}

// WithUploadedAt sets the upload time
func (b *SheetBuilder) WithUploadedAt(at time.Time) *SheetBuilder {
	b.uploadedAt = at
	return b
}

// FileName returns the configured file name.
func (b *SheetBuilder) FileName() string { return b.fileName }

// Province returns the configured province.
func (b *SheetBuilder) Province() string { return b.province }

// Month returns the configured month label.
func (b *SheetBuilder) Month() string { return b.month }

// Week returns the configured week label.
func (b *SheetBuilder) Week() string { return b.week }

// Stores returns the configured store list.
func (b *SheetBuilder) Stores() []string { return append([]string(nil), b.stores...) }

// UploadedBy returns the configured uploader uid.
func (b *SheetBuilder) UploadedBy() string { return b.uploadedBy }

// Categories builds fresh categories from the configured rows, grouping rows
// by category name in first-seen order.
func (b *SheetBuilder) Categories(t *testing.T) []*domain.Category {
	t.Helper()

	var categories []*domain.Category
	byName := make(map[string]*domain.Category)
	for i, l := range b.lines {
		created := b.uploadedAt.Add(time.Duration(i) * time.Millisecond)
		c, ok := byName[l.Category]
		if !ok {
			var err error
			c, err = domain.NewCategory("", l.Category, created)
			require.NoError(t, err)
			byName[l.Category] = c
			categories = append(categories, c)
		}

		p, err := domain.NewProduct("", l.Name, l.Unit, created)
		require.NoError(t, err)
		for idx, raw := range l.Prices {
			if raw == "" {
				continue
			}
			p.SetPrice(idx, Money(t, raw))
		}
		c.AddProduct(p)
	}
	return categories
}

// Params returns the document parameters for the configured sheet.
func (b *SheetBuilder) Params(t *testing.T) domain.DocumentParams {
	t.Helper()
	period, err := domain.NewPeriod(b.month, b.week, b.year)
	require.NoError(t, err)

	return domain.DocumentParams{
		FileName:          b.fileName,
		Commodity:         b.commodity,
		CommodityDisplay:  b.display,
		IsCustomCommodity: b.custom,
		Period:            period,
		Stores:            b.Stores(),
		Categories:        b.Categories(t),
		Province:          b.province,
		UploadedBy:        b.uploadedBy,
		UploadedByEmail:   b.uploadedByEmail,
	}
}

// Build creates the document.
func (b *SheetBuilder) Build(t *testing.T) *domain.PriceDocument {
	t.Helper()
	doc, err := domain.NewPriceDocument(b.Params(t), b.uploadedAt)
	require.NoError(t, err)
	return doc
}
