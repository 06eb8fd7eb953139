package edit_file

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request contains the replacement content of a sheet.
type Request struct {
	Province   string
	FileID     string
	FileName   string
	Month      string
	Week       string
	Year       int
	Stores     []string
	Categories []*domain.Category
	EditedBy   string
}

// Interactor handles the edit file use case.
type Interactor struct {
	files    contracts.FileRepository
	recorder *ledger.Recorder
	clock    clock.Clock
	logger   *zap.Logger
}

// NewInteractor creates a new edit file interactor.
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

// Execute replaces the editable content of a sheet owned by the caller.
// The document keeps its id even when the file name changes.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PriceDocument, error) {
	// 1. Parse period labels
	period, err := domain.NewPeriod(req.Month, req.Week, req.Year)
	if err != nil {
		return nil, err
	}

	// 2. Load aggregate
	doc, err := i.files.Get(ctx, req.Province, req.FileID)
	if err != nil {
		return nil, err
	}
	defer doc.ClearEvents()

	// 3. Call domain method
	if err := doc.Revise(domain.Revision{
		FileName:   req.FileName,
		Period:     period,
		Stores:     req.Stores,
		Categories: req.Categories,
	}, req.EditedBy, i.clock.Now()); err != nil {
		return nil, err
	}

	// 4. Persist
	if err := i.files.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	// 5. Append ledger rows
	i.recorder.Record(ctx, doc.DomainEvents(), "edit")

	i.logger.Info("price file edited",
		zap.String("province", doc.Province()),
		zap.String("file_id", doc.ID()),
		zap.Strings("changed_fields", doc.Changes().DirtyFields()),
	)
	return doc, nil
}
