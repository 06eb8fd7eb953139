package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// FileFilter narrows a file listing. Zero values do not filter.
type FileFilter struct {
	CommodityDisplay string
	Month            time.Month
	Week             *domain.Week
	UploadedBy       string
	Limit            int
}

// FileRepository defines persistence for uploaded price sheets.
// Documents are scoped by province; ids are unique within a province.
type FileRepository interface {
	// Get loads one document. A miss returns domain.ErrFileNotFound.
	Get(ctx context.Context, province, fileID string) (*domain.PriceDocument, error)

	// Upsert writes the whole document under its id, replacing any previous version.
	Upsert(ctx context.Context, doc *domain.PriceDocument) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, province, fileID string) error

	// List returns documents ordered by upload time, most recent first.
	List(ctx context.Context, province string, filter FileFilter) ([]*domain.PriceDocument, error)
}
