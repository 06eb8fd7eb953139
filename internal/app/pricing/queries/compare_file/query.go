package compare_file

import (
	"context"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Request identifies the sheet to compare.
type Request struct {
	Province string
	FileID   string
}

// Result is everything the comparison view and the exports render.
type Result struct {
	Document          *domain.PriceDocument
	Comparison        *comparison.Comparison
	Rows              []comparison.Row
	Summary           *comparison.Summary
	YearOverYearReady bool
}

// Query handles the compare file query use case.
type Query struct {
	files      contracts.FileRepository
	engine     *comparison.Engine
	aggregator *comparison.SummaryAggregator
}

// NewQuery creates a new compare file query.
func NewQuery(files contracts.FileRepository, engine *comparison.Engine, aggregator *comparison.SummaryAggregator) *Query {
	return &Query{
		files:      files,
		engine:     engine,
		aggregator: aggregator,
	}
}

// Execute loads a sheet and compares it with its earlier periods. Missing
// prior-year data does not block the comparison; the affected horizons are
// simply empty and YearOverYearReady is false.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	doc, err := q.files.Get(ctx, req.Province, req.FileID)
	if err != nil {
		return nil, err
	}

	cmp, err := q.engine.Build(ctx, doc)
	if err != nil {
		return nil, err
	}
	ready, err := q.engine.Index().HasYearOverYearData(ctx, comparison.ReferenceOf(doc))
	if err != nil {
		return nil, err
	}

	return &Result{
		Document:          doc,
		Comparison:        cmp,
		Rows:              comparison.Rows(doc, cmp),
		Summary:           q.aggregator.Summarize(doc, cmp),
		YearOverYearReady: ready,
	}, nil
}
