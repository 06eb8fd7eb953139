package list_facets

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
)

// Request selects a province.
type Request struct {
	Province string
}

// Result holds the filter values present in a province's sheets.
type Result struct {
	Commodities []string
	Months      []time.Month
}

// Query handles the list facets query use case.
type Query struct {
	files contracts.FileRepository
}

// NewQuery creates a new list facets query.
func NewQuery(files contracts.FileRepository) *Query {
	return &Query{
		files: files,
	}
}

// Execute returns the distinct commodities, sorted by name, and the distinct
// months in calendar order.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	docs, err := q.files.List(ctx, req.Province, contracts.FileFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	commodities := make(map[string]bool)
	months := make(map[time.Month]bool)
	for _, doc := range docs {
		if doc.CommodityDisplay() != "" {
			commodities[doc.CommodityDisplay()] = true
		}
		if m := doc.Period().Month; m != 0 {
			months[m] = true
		}
	}

	result := &Result{
		Commodities: make([]string, 0, len(commodities)),
		Months:      make([]time.Month, 0, len(months)),
	}
	for c := range commodities {
		result.Commodities = append(result.Commodities, c)
	}
	sort.Strings(result.Commodities)
	for m := time.January; m <= time.December; m++ {
		if months[m] {
			result.Months = append(result.Months, m)
		}
	}
	return result, nil
}
