package add_category

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request contains a new template category and its first product.
type Request struct {
	Province    string
	Commodity   string
	Name        string
	ProductName string
	ProductUnit string
}

// Interactor handles the add category use case.
type Interactor struct {
	templates contracts.TemplateRepository
	clock     clock.Clock
	logger    *zap.Logger
}

// NewInteractor creates a new add category interactor.
func NewInteractor(templates contracts.TemplateRepository, clock clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		templates: templates,
		clock:     clock,
		logger:    logger,
	}
}

// Execute upserts the category and its first product under ids derived from their names.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Category, error) {
	commodity := domain.CommodityKey(req.Commodity)
	if commodity == "" {
		return nil, domain.ErrEmptyCommodity
	}

	// 1. Build category and product
	now := i.clock.Now()
	category, err := domain.NewCategory("", req.Name, now)
	if err != nil {
		return nil, err
	}
	product, err := domain.NewProduct("", req.ProductName, req.ProductUnit, now)
	if err != nil {
		return nil, err
	}
	category.AddProduct(product)

	// 2. Persist parent first
	if err := i.templates.UpsertCategory(ctx, req.Province, commodity, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	if err := i.templates.UpsertProduct(ctx, req.Province, commodity, category.ID(), product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	i.logger.Info("template category added",
		zap.String("province", req.Province),
		zap.String("commodity", commodity),
		zap.String("category_id", category.ID()),
	)
	return category, nil
}
