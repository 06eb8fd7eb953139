package export_report

import (
	"context"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/export"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/compare_file"
	"github.com/light-bringer/pricetracker/internal/pkg/clock"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
)

// Format selects the rendered artifact.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatDOCX Format = "docx"
)

// Request identifies the sheet to export.
type Request struct {
	Province string
	FileID   string
	Format   Format
}

// Artifact is a rendered report file.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
	// Location is the archived object, empty when archiving is off or failed.
	Location string
}

// Interactor handles the export report use case.
type Interactor struct {
	compare *compare_file.Query
	archive contracts.ReportArchive
	clock   clock.Clock
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewInteractor creates a new export report interactor. A nil archive disables archiving.
func NewInteractor(
	compare *compare_file.Query,
	archive contracts.ReportArchive,
	clock clock.Clock,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Interactor {
	return &Interactor{
		compare: compare,
		archive: archive,
		clock:   clock,
		logger:  logger,
		metrics: m,
	}
}

// Execute compares the sheet, renders it in the requested format and, when an
// archive is configured, stores a copy under reports/<province>/<fileId>/.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Artifact, error) {
	// 1. Build the comparison
	result, err := i.compare.Execute(ctx, &compare_file.Request{Province: req.Province, FileID: req.FileID})
	if err != nil {
		return nil, err
	}
	report := &export.Report{
		Document:   result.Document,
		Comparison: result.Comparison,
		Rows:       result.Rows,
		Summary:    result.Summary,
	}

	// 2. Render
	artifact := &Artifact{}
	switch req.Format {
	case FormatXLSX:
		artifact.Name = export.WorkbookName(result.Document, i.clock.Now())
		artifact.ContentType = export.XLSXContentType
		artifact.Data, err = export.RenderWorkbook(report)
	case FormatDOCX:
		artifact.Name = export.SummaryName(result.Document)
		artifact.ContentType = export.DOCXContentType
		artifact.Data, err = export.RenderSummary(report)
	default:
		return nil, fmt.Errorf("unsupported export format %q", req.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", req.Format, err)
	}
	i.metrics.ExportsRendered.WithLabelValues(string(req.Format)).Inc()

	// 3. Archive a copy
	if i.archive != nil {
		object := path.Join("reports", result.Document.Province(), result.Document.ID(), artifact.Name)
		location, err := i.archive.Put(ctx, object, artifact.ContentType, artifact.Data)
		if err != nil {
			i.logger.Warn("failed to archive report",
				zap.String("object", object),
				zap.Error(err),
			)
		} else {
			artifact.Location = location
		}
	}

	i.logger.Info("report exported",
		zap.String("province", req.Province),
		zap.String("file_id", req.FileID),
		zap.String("format", string(req.Format)),
		zap.Int("bytes", len(artifact.Data)),
	)
	return artifact, nil
}
