package list_stores

import (
	"context"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
)

// Request identifies the province.
type Request struct {
	Province string
}

// Query handles the list stores query use case.
type Query struct {
	templates contracts.TemplateRepository
}

// NewQuery creates a new list stores query.
func NewQuery(templates contracts.TemplateRepository) *Query {
	return &Query{
		templates: templates,
	}
}

// Execute returns the province's stores in creation order.
func (q *Query) Execute(ctx context.Context, req *Request) ([]contracts.Store, error) {
	return q.templates.ListStores(ctx, req.Province)
}
