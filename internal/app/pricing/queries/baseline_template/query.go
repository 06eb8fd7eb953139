package baseline_template

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Request selects the commodity to build a baseline form for.
type Request struct {
	Province         string
	CommodityDisplay string
}

// Result is the product skeleton of a baseline form.
type Result struct {
	SourceFileID string
	Categories   []*domain.Category
}

// Query handles the baseline template query use case.
type Query struct {
	files contracts.FileRepository
}

// NewQuery creates a new baseline template query.
func NewQuery(files contracts.FileRepository) *Query {
	return &Query{
		files: files,
	}
}

// Execute copies the categories of the commodity's latest sheet with every
// price cleared. Returns domain.ErrTemplateNotFound when no sheet exists.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	docs, err := q.files.List(ctx, req.Province, contracts.FileFilter{
		CommodityDisplay: req.CommodityDisplay,
		Limit:            1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrTemplateNotFound
	}

	latest := docs[0]
	categories := latest.Categories()
	for _, c := range categories {
		for _, p := range c.Products() {
			p.ClearPrices()
		}
	}
	return &Result{SourceFileID: latest.ID(), Categories: categories}, nil
}
