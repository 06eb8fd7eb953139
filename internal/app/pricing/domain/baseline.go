package domain

import (
	"strings"
	"time"
)

// BaselineCell holds one month of a baseline product. It is either a single
// monthly value or a week label to value table, never both.
type BaselineCell struct {
	weekly bool
	value  *Money
	weeks  map[Week]*Money
}

// MonthlyCell creates a cell for a monthly province. A nil value means no entry.
func MonthlyCell(value *Money) BaselineCell {
	return BaselineCell{value: value.Copy()}
}

// WeeklyCell creates a cell for a weekly province.
func WeeklyCell(weeks map[Week]*Money) BaselineCell {
	out := make(map[Week]*Money, len(weeks))
	for w, v := range weeks {
		out[w] = v.Copy()
	}
	return BaselineCell{weekly: true, weeks: out}
}

// IsWeekly reports whether the cell is a week table.
func (c BaselineCell) IsWeekly() bool {
	return c.weekly
}

// Value returns the monthly value. Weekly cells have none.
func (c BaselineCell) Value() *Money {
	if c.weekly {
		return nil
	}
	return c.value.Copy()
}

// Week returns the value for a week label. Monthly cells have none.
func (c BaselineCell) Week(w Week) *Money {
	if !c.weekly {
		return nil
	}
	return c.weeks[w].Copy()
}

// Weeks returns a copy of the week table.
func (c BaselineCell) Weeks() map[Week]*Money {
	out := make(map[Week]*Money, len(c.weeks))
	for w, v := range c.weeks {
		out[w] = v.Copy()
	}
	return out
}

// HasData reports whether any value was entered.
func (c BaselineCell) HasData() bool {
	if !c.weekly {
		return c.value != nil
	}
	for _, v := range c.weeks {
		if v != nil {
			return true
		}
	}
	return false
}

// BaselineProduct is one product row of a baseline table.
type BaselineProduct struct {
	ProductID   string
	ProductName string
	Unit        string
	Prices      map[time.Month]BaselineCell
}

// Cell returns the cell for month; ok is false when the month was never entered.
func (p BaselineProduct) Cell(month time.Month) (BaselineCell, bool) {
	c, ok := p.Prices[month]
	return c, ok
}

func (p BaselineProduct) hasData() bool {
	for _, c := range p.Prices {
		if c.HasData() {
			return true
		}
	}
	return false
}

// BaselineDocument is the manually entered prior-year table that stands in
// for uploaded sheets in year-over-year comparisons.
type BaselineDocument struct {
	id               string
	commodity        string
	commodityDisplay string
	province         string
	year             int
	products         []BaselineProduct
	createdAt        time.Time
	lastModified     time.Time

	events []DomainEvent
}

// BaselineParams carries a baseline save request.
type BaselineParams struct {
	CommodityDisplay string
	Province         string
	Year             int
	Products         []BaselineProduct
	SavedBy          string
	// CreatedAt is kept from a previous save; zero means a new baseline.
	CreatedAt time.Time
}

// BaselineState is the persisted state used to reconstruct a baseline.
type BaselineState struct {
	ID               string
	Commodity        string
	CommodityDisplay string
	Province         string
	Year             int
	Products         []BaselineProduct
	CreatedAt        time.Time
	LastModified     time.Time
}

// NewBaselineDocument validates a save request. At least one value must be entered.
func NewBaselineDocument(params BaselineParams, now time.Time) (*BaselineDocument, error) {
	display := strings.TrimSpace(params.CommodityDisplay)
	if display == "" {
		return nil, ErrEmptyCommodity
	}

	hasData := false
	for _, p := range params.Products {
		if p.hasData() {
			hasData = true
			break
		}
	}
	if !hasData {
		return nil, ErrEmptyBaseline
	}

	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	b := &BaselineDocument{
		id:               BaselineDocID(params.Year, display),
		commodity:        CommodityKey(display),
		commodityDisplay: display,
		province:         params.Province,
		year:             params.Year,
		products:         params.Products,
		createdAt:        createdAt,
		lastModified:     now,
		events:           make([]DomainEvent, 0),
	}

	b.events = append(b.events, &BaselineSavedEvent{
		BaselineID:       b.id,
		Province:         b.province,
		CommodityDisplay: b.commodityDisplay,
		Year:             b.year,
		ProductCount:     len(b.products),
		SavedBy:          params.SavedBy,
		SavedAt:          now,
	})

	return b, nil
}

// ReconstructBaselineDocument reconstitutes a baseline from storage.
func ReconstructBaselineDocument(s BaselineState) *BaselineDocument {
	return &BaselineDocument{
		id:               s.ID,
		commodity:        s.Commodity,
		commodityDisplay: s.CommodityDisplay,
		province:         s.Province,
		year:             s.Year,
		products:         s.Products,
		createdAt:        s.CreatedAt,
		lastModified:     s.LastModified,
		events:           make([]DomainEvent, 0),
	}
}

// Getters
func (b *BaselineDocument) ID() string                  { return b.id }
func (b *BaselineDocument) Commodity() string           { return b.commodity }
func (b *BaselineDocument) CommodityDisplay() string    { return b.commodityDisplay }
func (b *BaselineDocument) Province() string            { return b.province }
func (b *BaselineDocument) Year() int                   { return b.year }
func (b *BaselineDocument) CreatedAt() time.Time        { return b.createdAt }
func (b *BaselineDocument) LastModified() time.Time     { return b.lastModified }
func (b *BaselineDocument) DomainEvents() []DomainEvent { return b.events }

// Products returns the baseline rows in stored order.
func (b *BaselineDocument) Products() []BaselineProduct {
	out := make([]BaselineProduct, len(b.products))
	copy(out, b.products)
	return out
}

// FindProduct returns the first row with this exact name and unit.
func (b *BaselineDocument) FindProduct(name, unit string) (BaselineProduct, bool) {
	for _, p := range b.products {
		if p.ProductName == name && p.Unit == unit {
			return p, true
		}
	}
	return BaselineProduct{}, false
}

// MarkDeleted records the deletion event.
func (b *BaselineDocument) MarkDeleted(by string, now time.Time) {
	b.events = append(b.events, &BaselineDeletedEvent{
		BaselineID: b.id,
		Province:   b.province,
		DeletedBy:  by,
		DeletedAt:  now,
	})
}

// ClearEvents clears all recorded domain events (called after publishing).
func (b *BaselineDocument) ClearEvents() {
	b.events = make([]DomainEvent, 0)
}
