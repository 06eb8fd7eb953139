package contracts

import (
	"context"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// BaselineRepository defines persistence for baseline tables.
type BaselineRepository interface {
	// Get loads a baseline by document id. A miss returns domain.ErrBaselineNotFound.
	Get(ctx context.Context, province, baselineID string) (*domain.BaselineDocument, error)

	Exists(ctx context.Context, province, baselineID string) (bool, error)
	Upsert(ctx context.Context, baseline *domain.BaselineDocument) error
	Delete(ctx context.Context, province, baselineID string) error
	List(ctx context.Context, province string) ([]*domain.BaselineDocument, error)
}
