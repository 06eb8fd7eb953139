package submit_file

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/ledger"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
)

// Request contains the data needed to submit a price sheet.
type Request struct {
	Province          string
	FileName          string
	Commodity         string
	CommodityDisplay  string
	IsCustomCommodity bool
	Month             string
	Week              string
	Year              int
	Stores            []string
	Categories        []*domain.Category
	UploadedBy        string
	UploadedByEmail   string
}

// Interactor handles the submit file use case.
type Interactor struct {
	files    contracts.FileRepository
	recorder *ledger.Recorder
	clock    clock.Clock
	logger   *zap.Logger
}

// NewInteractor creates a new submit file interactor.
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

// Execute validates the sheet and stores it under the id derived from its
// file name. Resubmitting a name replaces the earlier sheet; only its
// uploader may do so.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PriceDocument, error) {
	if req.UploadedBy == "" {
		return nil, domain.ErrUnauthenticated
	}

	// 1. Parse period labels
	period, err := domain.NewPeriod(req.Month, req.Week, req.Year)
	if err != nil {
		return nil, err
	}

	// 2. Build aggregate
	doc, err := domain.NewPriceDocument(domain.DocumentParams{
		FileName:          req.FileName,
		Commodity:         req.Commodity,
		CommodityDisplay:  req.CommodityDisplay,
		IsCustomCommodity: req.IsCustomCommodity,
		Period:            period,
		Stores:            req.Stores,
		Categories:        req.Categories,
		Province:          req.Province,
		UploadedBy:        req.UploadedBy,
		UploadedByEmail:   req.UploadedByEmail,
	}, i.clock.Now())
	if err != nil {
		return nil, err
	}
	defer doc.ClearEvents()

	// 3. A resubmission must come from the sheet's uploader
	existing, err := i.files.Get(ctx, doc.Province(), doc.ID())
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to load file: %w", err)
	default:
		if err := existing.EnsureOwner(req.UploadedBy); err != nil {
			return nil, err
		}
	}

	// 4. Persist
	if err := i.files.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	// 5. Append ledger rows
	i.recorder.Record(ctx, doc.DomainEvents(), "submit")

	i.logger.Info("price file submitted",
		zap.String("province", doc.Province()),
		zap.String("file_id", doc.ID()),
		zap.String("commodity", doc.CommodityDisplay()),
		zap.String("period", doc.Period().String()),
	)
	return doc, nil
}
