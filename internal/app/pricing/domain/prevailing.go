package domain

// PrevailingPriceCalculator is a domain service that reduces the per-store
// quotations of one product to its representative (prevailing) price.
//
// Rule:
//  1. Only present prices strictly greater than zero count.
//  2. If no value repeats, the highest price prevails.
//  3. Otherwise the most frequent value prevails; ties between modes go to the highest.
type PrevailingPriceCalculator struct{}

// NewPrevailingPriceCalculator creates a new PrevailingPriceCalculator instance.
func NewPrevailingPriceCalculator() *PrevailingPriceCalculator {
	return &PrevailingPriceCalculator{}
}

// Package-level calculator instance for domain object use
var defaultPrevailingCalculator = NewPrevailingPriceCalculator()

// Compute returns the prevailing price, or nil when no store has a positive price.
func (pc *PrevailingPriceCalculator) Compute(prices map[int]*Money) *Money {
	counts := make(map[string]int, len(prices))
	values := make(map[string]*Money, len(prices))

	var highest *Money
	for _, p := range prices {
		if p == nil || !p.IsPositive() {
			continue
		}
		k := p.key()
		counts[k]++
		if _, ok := values[k]; !ok {
			values[k] = p
		}
		if highest == nil || p.GreaterThan(highest) {
			highest = p
		}
	}

	if highest == nil {
		return nil
	}

	maxFreq := 0
	for _, c := range counts {
		if c > maxFreq {
			maxFreq = c
		}
	}

	if maxFreq == 1 {
		return highest.Copy()
	}

	var mode *Money
	for k, c := range counts {
		if c != maxFreq {
			continue
		}
		if mode == nil || values[k].GreaterThan(mode) {
			mode = values[k]
		}
	}

	return mode.Copy()
}
