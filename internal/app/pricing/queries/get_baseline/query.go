package get_baseline

import (
	"context"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Request identifies a commodity's baseline.
type Request struct {
	Province         string
	CommodityDisplay string
	Year             int // zero selects the configured baseline year
}

// Query handles the get baseline query use case.
type Query struct {
	baselines    contracts.BaselineRepository
	baselineYear int
}

// NewQuery creates a new get baseline query.
func NewQuery(baselines contracts.BaselineRepository, baselineYear int) *Query {
	if baselineYear == 0 {
		baselineYear = comparison.DefaultBaselineYear
	}
	return &Query{
		baselines:    baselines,
		baselineYear: baselineYear,
	}
}

// Execute loads the baseline. A miss returns domain.ErrBaselineNotFound.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.BaselineDocument, error) {
	year := req.Year
	if year == 0 {
		year = q.baselineYear
	}
	return q.baselines.Get(ctx, req.Province, domain.BaselineDocID(year, req.CommodityDisplay))
}
