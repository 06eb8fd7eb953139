package delete_file

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request identifies the sheet to delete.
type Request struct {
	Province  string
	FileID    string
	DeletedBy string
}

// Interactor handles the delete file use case.
type Interactor struct {
	files    contracts.FileRepository
	recorder *ledger.Recorder
	clock    clock.Clock
	logger   *zap.Logger
}

// NewInteractor creates a new delete file interactor.
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

// Execute deletes a sheet owned by the caller.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate
	doc, err := i.files.Get(ctx, req.Province, req.FileID)
	if err != nil {
		return err
	}
	defer doc.ClearEvents()

	// 2. Call domain method
	if err := doc.MarkDeleted(req.DeletedBy, i.clock.Now()); err != nil {
		return err
	}

	// 3. Persist
	if err := i.files.Delete(ctx, req.Province, req.FileID); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	// 4. Append ledger rows
	i.recorder.Record(ctx, doc.DomainEvents(), "delete")

	i.logger.Info("price file deleted",
		zap.String("province", req.Province),
		zap.String("file_id", req.FileID),
	)
	return nil
}
