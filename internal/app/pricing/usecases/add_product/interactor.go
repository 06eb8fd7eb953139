package add_product

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request contains the data needed to add a product to a template category.
type Request struct {
	Province   string
	Commodity  string
	CategoryID string
	Name       string
	Unit       string
}

// Interactor handles the add product use case.
type Interactor struct {
	templates contracts.TemplateRepository
	clock     clock.Clock
	logger    *zap.Logger
}

// NewInteractor creates a new add product interactor.
func NewInteractor(templates contracts.TemplateRepository, clock clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		templates: templates,
		clock:     clock,
		logger:    logger,
	}
}

// Execute upserts the product under the id derived from its name.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if req.CategoryID == "" {
		return nil, domain.ErrCategoryNotFound
	}
	if domain.CommodityKey(req.Commodity) == "" {
		return nil, domain.ErrEmptyCommodity
	}

	product, err := domain.NewProduct("", req.Name, req.Unit, i.clock.Now())
	if err != nil {
		return nil, err
	}

	commodity := domain.CommodityKey(req.Commodity)
	if err := i.templates.UpsertProduct(ctx, req.Province, commodity, req.CategoryID, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	i.logger.Info("template product added",
		zap.String("province", req.Province),
		zap.String("commodity", commodity),
		zap.String("category_id", req.CategoryID),
		zap.String("product_id", product.ID()),
	)
	return product, nil
}
