package comparison

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// DefaultSummaryLimit is the size of each ranked list before ties are added.
const DefaultSummaryLimit = 5

// RankedItem is a product's change magnitude over one horizon.
// Decreases are stored as positive magnitudes.
type RankedItem struct {
	Name    string
	Unit    string
	Peso    decimal.Decimal
	Percent decimal.Decimal
}

// String renders the item as it appears in the summary document.
func (r RankedItem) String() string {
	return fmt.Sprintf("%s (%s) - ₱%s (%s%%)", r.Name, r.Unit, r.Peso.StringFixed(2), r.Percent.StringFixed(2))
}

// HorizonSummary aggregates price movements over one horizon.
type HorizonSummary struct {
	IncreaseCount   int
	DecreaseCount   int
	HighestIncrease []RankedItem
	LowestIncrease  []RankedItem
	HighestDecrease []RankedItem
	LowestDecrease  []RankedItem
	TotalProducts   int
}

// Summary is the month and three-month movement report of a sheet.
type Summary struct {
	Month1 HorizonSummary
	Month3 HorizonSummary
}

// SummaryAggregator classifies and ranks product price movements.
type SummaryAggregator struct {
	limit int
}

// NewSummaryAggregator creates an aggregator. A non-positive limit selects DefaultSummaryLimit.
func NewSummaryAggregator(limit int) *SummaryAggregator {
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}
	return &SummaryAggregator{limit: limit}
}

// Summarize builds the summary of doc against cmp.
//
// Products without a positive prevailing price are not counted. For each
// horizon a product is skipped when the horizon has no target, when its
// comparable price is exactly zero, or when no delta can be computed.
func (a *SummaryAggregator) Summarize(doc *domain.PriceDocument, cmp *Comparison) *Summary {
	month1 := newHorizonBucket()
	month3 := newHorizonBucket()

	for _, category := range doc.Categories() {
		for _, product := range category.Products() {
			current := product.PrevailingPrice()
			if current == nil || current.IsZero() {
				continue
			}
			month1.total++
			month3.total++

			month1.add(cmp, product, category.Name(), current, cmp.Target(MonthAgo))
			month3.add(cmp, product, category.Name(), current, cmp.Target(ThreeMonthsAgo))
		}
	}

	return &Summary{
		Month1: month1.summarize(a.limit),
		Month3: month3.summarize(a.limit),
	}
}

type horizonBucket struct {
	increases []RankedItem
	decreases []RankedItem
	total     int
}

func newHorizonBucket() *horizonBucket {
	return &horizonBucket{}
}

func (b *horizonBucket) add(cmp *Comparison, product *domain.Product, categoryName string, current *domain.Money, target domain.ComparisonTarget) {
	if target == nil {
		return
	}
	previous := cmp.ComparablePrice(product, categoryName, target)
	if previous != nil && previous.IsZero() {
		return
	}
	delta := domain.ComputeDelta(current, previous)
	if delta == nil {
		return
	}

	item := RankedItem{
		Name:    product.Name(),
		Unit:    product.Unit(),
		Peso:    delta.Absolute.Decimal().Abs(),
		Percent: delta.Percent.Abs(),
	}
	switch {
	case delta.IsIncrease():
		b.increases = append(b.increases, item)
	case delta.IsDecrease():
		b.decreases = append(b.decreases, item)
	}
}

func (b *horizonBucket) summarize(limit int) HorizonSummary {
	return HorizonSummary{
		IncreaseCount:   len(b.increases),
		DecreaseCount:   len(b.decreases),
		HighestIncrease: itemsWithTies(b.increases, true, limit),
		LowestIncrease:  itemsWithTies(b.increases, false, limit),
		HighestDecrease: itemsWithTies(b.decreases, true, limit),
		LowestDecrease:  itemsWithTies(b.decreases, false, limit),
		TotalProducts:   b.total,
	}
}

// itemsWithTies ranks items by peso magnitude and keeps the first limit
// entries plus every entry tied with the last one kept. A single item is only
// reported as lowest.
func itemsWithTies(items []RankedItem, highest bool, limit int) []RankedItem {
	if len(items) == 0 {
		return []RankedItem{}
	}
	if len(items) == 1 {
		if highest {
			return []RankedItem{}
		}
		return []RankedItem{items[0]}
	}

	sorted := make([]RankedItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if highest {
			return sorted[i].Peso.GreaterThan(sorted[j].Peso)
		}
		return sorted[i].Peso.LessThan(sorted[j].Peso)
	})

	if len(sorted) <= limit {
		return sorted
	}

	cutoff := sorted[limit-1].Peso
	end := limit
	for end < len(sorted) && sorted[end].Peso.Equal(cutoff) {
		end++
	}
	return sorted[:end]
}
