package add_store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request contains the data needed to add a store to a province.
type Request struct {
	Province string
	Name     string
}

// Interactor handles the add store use case.
type Interactor struct {
	templates contracts.TemplateRepository
	clock     clock.Clock
	logger    *zap.Logger
}

// NewInteractor creates a new add store interactor.
func NewInteractor(templates contracts.TemplateRepository, clock clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		templates: templates,
		clock:     clock,
		logger:    logger,
	}
}

// Execute upserts the store under the id derived from its name.
func (i *Interactor) Execute(ctx context.Context, req *Request) (contracts.Store, error) {
	name := strings.TrimSpace(req.Name)
	id := domain.SanitizeID(name)
	if id == "" {
		return contracts.Store{}, domain.ErrEmptyName
	}

	store := contracts.Store{ID: id, Name: name, CreatedAt: i.clock.Now()}
	if err := i.templates.UpsertStore(ctx, req.Province, store); err != nil {
		return contracts.Store{}, fmt.Errorf("failed to save store: %w", err)
	}

	i.logger.Info("store added", zap.String("province", req.Province), zap.String("store_id", id))
	return store, nil
}
