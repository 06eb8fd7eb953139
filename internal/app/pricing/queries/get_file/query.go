package get_file

import (
	"context"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Request identifies a sheet.
type Request struct {
	Province string
	FileID   string
}

// Query handles the get file query use case.
type Query struct {
	files contracts.FileRepository
}

// NewQuery creates a new get file query.
func NewQuery(files contracts.FileRepository) *Query {
	return &Query{
		files: files,
	}
}

// Execute loads one sheet. A miss returns domain.ErrFileNotFound.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.PriceDocument, error) {
	return q.files.Get(ctx, req.Province, req.FileID)
}
