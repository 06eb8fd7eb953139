package delete_baseline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request identifies the baseline to delete.
type Request struct {
	Province         string
	CommodityDisplay string
	Year             int // zero selects the configured baseline year
	DeletedBy        string
}

// Interactor handles the delete baseline use case.
type Interactor struct {
	baselines    contracts.BaselineRepository
	recorder     *ledger.Recorder
	clock        clock.Clock
	logger       *zap.Logger
	baselineYear int
}

// NewInteractor creates a new delete baseline interactor.
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

// Execute deletes a baseline table. A missing table returns domain.ErrBaselineNotFound.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	year := req.Year
	if year == 0 {
		year = i.baselineYear
	}

	// 1. Load aggregate
	baseline, err := i.baselines.Get(ctx, req.Province, domain.BaselineDocID(year, req.CommodityDisplay))
	if err != nil {
		return err
	}
	defer baseline.ClearEvents()

	// 2. Call domain method
	baseline.MarkDeleted(req.DeletedBy, i.clock.Now())

	// 3. Persist
	if err := i.baselines.Delete(ctx, req.Province, baseline.ID()); err != nil {
		return fmt.Errorf("failed to delete baseline: %w", err)
	}

	// 4. Append ledger rows
	i.recorder.Record(ctx, baseline.DomainEvents(), "delete_baseline")

	i.logger.Info("baseline deleted",
		zap.String("province", req.Province),
		zap.String("baseline_id", baseline.ID()),
	)
	return nil
}
