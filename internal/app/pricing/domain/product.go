package domain

import (
	"sort"
	"strings"
	"time"
)

// Product is one priced line of a price sheet. Prices are keyed by store index,
// a position in the owning document's store list.
//
// The prevailing price is derived from prices and is recomputed on every
// mutation; callers cannot set it directly.
type Product struct {
	id              string
	name            string
	unit            string
	prices          map[int]*Money
	prevailingPrice *Money
	createdAt       time.Time
}

// NewProduct creates an empty product. An empty id is derived from the name.
func NewProduct(id, name, unit string, createdAt time.Time) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if id == "" {
		id = SanitizeID(name)
	}
	return &Product{
		id:        id,
		name:      name,
		unit:      strings.TrimSpace(unit),
		prices:    make(map[int]*Money),
		createdAt: createdAt,
	}, nil
}

// ReconstructProduct rebuilds a product from storage. The prevailing price is
// recomputed from prices rather than trusted from the stored copy.
func ReconstructProduct(id, name, unit string, prices map[int]*Money, createdAt time.Time) *Product {
	p := &Product{
		id:        id,
		name:      name,
		unit:      unit,
		prices:    make(map[int]*Money, len(prices)),
		createdAt: createdAt,
	}
	for idx, price := range prices {
		if price != nil {
			p.prices[idx] = price.Copy()
		}
	}
	p.recompute()
	return p
}

// Getters
func (p *Product) ID() string              { return p.id }
func (p *Product) Name() string            { return p.name }
func (p *Product) Unit() string            { return p.unit }
func (p *Product) CreatedAt() time.Time    { return p.createdAt }
func (p *Product) PrevailingPrice() *Money { return p.prevailingPrice.Copy() }

// Price returns the quotation of one store, or nil when not surveyed.
func (p *Product) Price(storeIndex int) *Money {
	return p.prices[storeIndex].Copy()
}

// Prices returns a copy of the store-index to price map.
func (p *Product) Prices() map[int]*Money {
	out := make(map[int]*Money, len(p.prices))
	for idx, price := range p.prices {
		out[idx] = price.Copy()
	}
	return out
}

// StoreIndexes returns the surveyed store indexes in ascending order.
func (p *Product) StoreIndexes() []int {
	idx := make([]int, 0, len(p.prices))
	for i := range p.prices {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// SetPrice records a quotation. A nil price clears the store's entry.
func (p *Product) SetPrice(storeIndex int, price *Money) {
	if price == nil {
		delete(p.prices, storeIndex)
	} else {
		p.prices[storeIndex] = price.Copy()
	}
	p.recompute()
}

// ClearPrices drops every quotation.
func (p *Product) ClearPrices() {
	p.prices = make(map[int]*Money)
	p.recompute()
}

// HasPositivePrice reports whether any store quoted more than zero.
func (p *Product) HasPositivePrice() bool {
	for _, price := range p.prices {
		if price != nil && price.IsPositive() {
			return true
		}
	}
	return false
}

// Matches reports whether the product has exactly this name and unit.
func (p *Product) Matches(name, unit string) bool {
	return p.name == name && p.unit == unit
}

// removeStore drops the price at index and shifts higher indexes down by one.
func (p *Product) removeStore(index int) {
	shifted := make(map[int]*Money, len(p.prices))
	for idx, price := range p.prices {
		switch {
		case idx < index:
			shifted[idx] = price
		case idx > index:
			shifted[idx-1] = price
		}
	}
	p.prices = shifted
	p.recompute()
}

// truncateStores drops prices for stores at or beyond count.
func (p *Product) truncateStores(count int) {
	for idx := range p.prices {
		if idx >= count || idx < 0 {
			delete(p.prices, idx)
		}
	}
	p.recompute()
}

func (p *Product) recompute() {
	p.prevailingPrice = defaultPrevailingCalculator.Compute(p.prices)
}

// Category groups products of a commodity template.
type Category struct {
	id        string
	name      string
	products  []*Product
	createdAt time.Time
}

// NewCategory creates an empty category. An empty id is derived from the name.
func NewCategory(id, name string, createdAt time.Time) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if id == "" {
		id = SanitizeID(name)
	}
	return &Category{id: id, name: name, createdAt: createdAt}, nil
}

// ReconstructCategory rebuilds a category from storage.
func ReconstructCategory(id, name string, products []*Product, createdAt time.Time) *Category {
	return &Category{id: id, name: name, products: products, createdAt: createdAt}
}

// Getters
func (c *Category) ID() string           { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) CreatedAt() time.Time { return c.createdAt }

// Products returns the category's products in stored order.
func (c *Category) Products() []*Product {
	out := make([]*Product, len(c.products))
	copy(out, c.products)
	return out
}

// AddProduct appends a product.
func (c *Category) AddProduct(p *Product) {
	c.products = append(c.products, p)
}

// FindProduct returns the first product with this exact name and unit.
func (c *Category) FindProduct(name, unit string) *Product {
	for _, p := range c.products {
		if p.Matches(name, unit) {
			return p
		}
	}
	return nil
}

// ProductByID returns the product with id, or nil.
func (c *Category) ProductByID(id string) *Product {
	for _, p := range c.products {
		if p.id == id {
			return p
		}
	}
	return nil
}

// SortByCreation orders categories and their products by creation time,
// keeping input order for equal timestamps.
func SortByCreation(categories []*Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].createdAt.Before(categories[j].createdAt)
	})
	for _, c := range categories {
		sort.SliceStable(c.products, func(i, j int) bool {
			return c.products[i].createdAt.Before(c.products[j].createdAt)
		})
	}
}

// ProductKey identifies a product line within a document.
func ProductKey(categoryID, productID string) string {
	return categoryID + "/" + productID
}
