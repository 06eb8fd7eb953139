package baseline_status

import (
	"context"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Request identifies the sheet whose comparisons are checked.
type Request struct {
	Province string
	FileID   string
}

// Result reports whether year-over-year comparisons have data.
type Result struct {
	NeedsBaseline     bool
	YearOverYearReady bool
	BaselineID        string
}

// Query handles the baseline status query use case.
type Query struct {
	files contracts.FileRepository
	index *comparison.PeriodIndex
}

// NewQuery creates a new baseline status query.
func NewQuery(files contracts.FileRepository, index *comparison.PeriodIndex) *Query {
	return &Query{
		files: files,
		index: index,
	}
}

// Execute checks prior-year coverage for a sheet.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	doc, err := q.files.Get(ctx, req.Province, req.FileID)
	if err != nil {
		return nil, err
	}

	ref := comparison.ReferenceOf(doc)
	ready, err := q.index.HasYearOverYearData(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &Result{
		NeedsBaseline:     domain.NeedsBaseline(ref.Period.Month),
		YearOverYearReady: ready,
		BaselineID:        q.index.BaselineID(ref),
	}, nil
}
