package price_history

import (
	"context"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
)

// Request identifies one product line of a sheet.
type Request struct {
	Province   string
	FileID     string
	ProductKey string // "<categoryId>/<productId>"
	Limit      int    // default 50, max 500
}

// Query handles the price history query use case.
type Query struct {
	history contracts.PriceHistoryRepository
}

// NewQuery creates a new price history query.
func NewQuery(history contracts.PriceHistoryRepository) *Query {
	return &Query{
		history: history,
	}
}

// Execute returns the product's prevailing price changes, most recent first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]contracts.PriceHistoryRecord, error) {
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Limit > 500 {
		req.Limit = 500
	}

	return q.history.ListByProduct(ctx, req.Province, req.FileID, req.ProductKey, req.Limit)
}
