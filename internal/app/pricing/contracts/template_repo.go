package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// Store is a named market in a province's store list.
type Store struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// TemplateRepository defines persistence for the reusable per-commodity
// template: the province's stores and each commodity's categories and products.
type TemplateRepository interface {
	ListStores(ctx context.Context, province string) ([]Store, error)
	UpsertStore(ctx context.Context, province string, store Store) error

	// ListCategories returns the commodity's categories without products.
	ListCategories(ctx context.Context, province, commodity string) ([]*domain.Category, error)
	ListProducts(ctx context.Context, province, commodity, categoryID string) ([]*domain.Product, error)

	UpsertCategory(ctx context.Context, province, commodity string, category *domain.Category) error
	UpsertProduct(ctx context.Context, province, commodity, categoryID string, product *domain.Product) error
}
