package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/models/m_template"
)

// TemplateRepositoryFS implements TemplateRepository on Firestore.
type TemplateRepositoryFS struct {
	client *firestore.Client
	model  *m_template.Model
}

// NewTemplateRepositoryFS creates a new TemplateRepositoryFS.
func NewTemplateRepositoryFS(client *firestore.Client) contracts.TemplateRepository {
	return &TemplateRepositoryFS{
		client: client,
		model:  m_template.NewModel(client),
	}
}

// ListStores returns the province's stores in creation order.
func (r *TemplateRepositoryFS) ListStores(ctx context.Context, province string) ([]contracts.Store, error) {
	iter := r.model.Stores(province).OrderBy(m_template.CreatedAt, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []contracts.Store
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate stores: %w", err)
		}
		var data m_template.Store
		if err := snap.DataTo(&data); err != nil {
			return nil, fmt.Errorf("failed to decode store %s: %w", snap.Ref.ID, err)
		}
		out = append(out, contracts.Store{ID: snap.Ref.ID, Name: data.Name, CreatedAt: data.CreatedAt})
	}
	return out, nil
}

// UpsertStore writes a store under its id.
func (r *TemplateRepositoryFS) UpsertStore(ctx context.Context, province string, store contracts.Store) error {
	data := m_template.Store{Name: store.Name, CreatedAt: store.CreatedAt}
	if _, err := r.model.Stores(province).Doc(store.ID).Set(ctx, data); err != nil {
		return fmt.Errorf("failed to save store %s: %w", store.ID, err)
	}
	return nil
}

// ListCategories returns the commodity's categories without products.
// Ordering is left to the caller.
func (r *TemplateRepositoryFS) ListCategories(ctx context.Context, province, commodity string) ([]*domain.Category, error) {
	iter := r.model.Categories(province, commodity).Documents(ctx)
	defer iter.Stop()

	var out []*domain.Category
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}
		var data m_template.Category
		if err := snap.DataTo(&data); err != nil {
			return nil, fmt.Errorf("failed to decode category %s: %w", snap.Ref.ID, err)
		}
		out = append(out, domain.ReconstructCategory(snap.Ref.ID, data.Name, nil, data.CreatedAt))
	}
	return out, nil
}

// ListProducts returns the products of one category.
func (r *TemplateRepositoryFS) ListProducts(ctx context.Context, province, commodity, categoryID string) ([]*domain.Product, error) {
	iter := r.model.Products(province, commodity, categoryID).Documents(ctx)
	defer iter.Stop()

	var out []*domain.Product
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}
		var data m_template.Product
		if err := snap.DataTo(&data); err != nil {
			return nil, fmt.Errorf("failed to decode product %s: %w", snap.Ref.ID, err)
		}
		out = append(out, domain.ReconstructProduct(snap.Ref.ID, data.Name, data.Unit, nil, data.CreatedAt))
	}
	return out, nil
}

// UpsertCategory writes a category document. Its products are written separately.
func (r *TemplateRepositoryFS) UpsertCategory(ctx context.Context, province, commodity string, category *domain.Category) error {
	data := m_template.Category{Name: category.Name(), CreatedAt: category.CreatedAt()}
	if _, err := r.model.Categories(province, commodity).Doc(category.ID()).Set(ctx, data); err != nil {
		return fmt.Errorf("failed to save category %s: %w", category.ID(), err)
	}
	return nil
}

// UpsertProduct writes a product document under a category.
func (r *TemplateRepositoryFS) UpsertProduct(ctx context.Context, province, commodity, categoryID string, product *domain.Product) error {
	data := m_template.Product{Name: product.Name(), Unit: product.Unit(), CreatedAt: product.CreatedAt()}
	if _, err := r.model.Products(province, commodity, categoryID).Doc(product.ID()).Set(ctx, data); err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.ID(), err)
	}
	return nil
}
