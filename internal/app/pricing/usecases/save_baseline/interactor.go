package save_baseline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request contains a commodity's prior-year table.
type Request struct {
	Province         string
	CommodityDisplay string
	Year             int // zero selects the configured baseline year
	Products         []domain.BaselineProduct
	SavedBy          string
}

// Interactor handles the save baseline use case.
type Interactor struct {
	baselines    contracts.BaselineRepository
	recorder     *ledger.Recorder
	clock        clock.Clock
	logger       *zap.Logger
	baselineYear int
}

// NewInteractor creates a new save baseline interactor.
func NewInteractor(
	baselines contracts.BaselineRepository,
	recorder *ledger.Recorder,
	clock clock.Clock,
	logger *zap.Logger,
	baselineYear int,
) *Interactor {
	if baselineYear == 0 {
		baselineYear = comparison.DefaultBaselineYear
	}
	return &Interactor{
		baselines:    baselines,
		recorder:     recorder,
		clock:        clock,
		logger:       logger,
		baselineYear: baselineYear,
	}
}

// Execute writes the baseline. Saving over an existing table keeps its creation time.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.BaselineDocument, error) {
	year := req.Year
	if year == 0 {
		year = i.baselineYear
	}

	// 1. Look up the existing table for its creation time
	createdAt := i.clock.Now()
	existing, err := i.baselines.Get(ctx, req.Province, domain.BaselineDocID(year, req.CommodityDisplay))
	switch {
	case err == nil:
		createdAt = existing.CreatedAt()
	case !errors.Is(err, domain.ErrBaselineNotFound):
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}

	// 2. Build aggregate
	baseline, err := domain.NewBaselineDocument(domain.BaselineParams{
		CommodityDisplay: req.CommodityDisplay,
		Province:         req.Province,
		Year:             year,
		Products:         req.Products,
		SavedBy:          req.SavedBy,
		CreatedAt:        createdAt,
	}, i.clock.Now())
	if err != nil {
		return nil, err
	}
	defer baseline.ClearEvents()

	// 3. Persist
	if err := i.baselines.Upsert(ctx, baseline); err != nil {
		return nil, fmt.Errorf("failed to save baseline: %w", err)
	}

	// 4. Append ledger rows
	i.recorder.Record(ctx, baseline.DomainEvents(), "save_baseline")

	i.logger.Info("baseline saved",
		zap.String("province", baseline.Province()),
		zap.String("baseline_id", baseline.ID()),
		zap.Int("products", len(req.Products)),
	)
	return baseline, nil
}
