package load_template

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Request selects a province's template for one commodity.
type Request struct {
	Province  string
	Commodity string
}

// Result is the reusable sheet skeleton.
type Result struct {
	Stores     []contracts.Store
	Categories []*domain.Category
}

// Query handles the load template query use case.
type Query struct {
	templates contracts.TemplateRepository
}

// NewQuery creates a new load template query.
func NewQuery(templates contracts.TemplateRepository) *Query {
	return &Query{
		templates: templates,
	}
}

// Execute loads stores and categories, then each category's products in
// parallel. Categories and products come back in creation order.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	commodity := domain.CommodityKey(req.Commodity)

	stores, err := q.templates.ListStores(ctx, req.Province)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	categories, err := q.templates.ListCategories(ctx, req.Province, commodity)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	products := make([][]*domain.Product, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for idx, c := range categories {
		g.Go(func() error {
			list, err := q.templates.ListProducts(gctx, req.Province, commodity, c.ID())
			if err != nil {
				return fmt.Errorf("failed to list products of %s: %w", c.ID(), err)
			}
			products[idx] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*domain.Category, len(categories))
	for idx, c := range categories {
		out[idx] = domain.ReconstructCategory(c.ID(), c.Name(), products[idx], c.CreatedAt())
	}
	domain.SortByCreation(out)

	return &Result{Stores: stores, Categories: out}, nil
}
