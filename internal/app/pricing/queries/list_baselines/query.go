package list_baselines

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
)

// Request selects a province.
type Request struct {
	Province string
}

// Entry describes one stored baseline.
type Entry struct {
	ID               string
	CommodityDisplay string
	Year             int
	ProductCount     int
	LastModified     time.Time
}

// Query handles the list baselines query use case.
type Query struct {
	baselines contracts.BaselineRepository
}

// NewQuery creates a new list baselines query.
func NewQuery(baselines contracts.BaselineRepository) *Query {
	return &Query{
		baselines: baselines,
	}
}

// Execute lists the commodities that have a baseline, most recently saved first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]Entry, error) {
	baselines, err := q.baselines.List(ctx, req.Province)
	if err != nil {
		return nil, fmt.Errorf("failed to list baselines: %w", err)
	}

	entries := make([]Entry, 0, len(baselines))
	for _, b := range baselines {
		entries = append(entries, Entry{
			ID:               b.ID(),
			CommodityDisplay: b.CommodityDisplay(),
			Year:             b.Year(),
			ProductCount:     len(b.Products()),
			LastModified:     b.LastModified(),
		})
	}
	return entries, nil
}
