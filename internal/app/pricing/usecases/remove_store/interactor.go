package remove_store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request identifies the store column to remove.
type Request struct {
	Province   string
	FileID     string
	StoreIndex int
	RemovedBy  string
}

// Interactor handles the remove store use case.
type Interactor struct {
	files    contracts.FileRepository
	recorder *ledger.Recorder
	clock    clock.Clock
	logger   *zap.Logger
}

// NewInteractor creates a new remove store interactor.
func NewInteractor(
	files contracts.FileRepository,
	recorder *ledger.Recorder,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		files:    files,
		recorder: recorder,
		clock:    clock,
		logger:   logger,
	}
}

// Execute removes a store column from a sheet and shifts later price columns down.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PriceDocument, error) {
	// 1. Load aggregate
	doc, err := i.files.Get(ctx, req.Province, req.FileID)
	if err != nil {
		return nil, err
	}
	defer doc.ClearEvents()

	// 2. Call domain method
	if err := doc.RemoveStore(req.StoreIndex, req.RemovedBy, i.clock.Now()); err != nil {
		return nil, err
	}

	// 3. Persist
	if err := i.files.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	// 4. Append ledger rows
	i.recorder.Record(ctx, doc.DomainEvents(), "remove_store")

	i.logger.Info("store removed",
		zap.String("province", doc.Province()),
		zap.String("file_id", doc.ID()),
		zap.Int("index", req.StoreIndex),
	)
	return doc, nil
}
