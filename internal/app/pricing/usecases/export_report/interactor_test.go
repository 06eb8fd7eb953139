package export_report

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/export"
	"github.com/light-bringer/pricetracker/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricetracker/internal/app/pricing/queries/compare_file"
)

type failingArchive struct{}

func (failingArchive) Put(context.Context, string, string, []byte) (string, error) {
	return "", assert.AnError
}

func newInteractor(env *pricingtest.Env, archive contracts.ReportArchive) *Interactor {
	index := comparison.NewPeriodIndex(env.Store.Files(), env.Store.Baselines(), 0, env.Logger, env.Metrics)
	engine := comparison.NewEngine(index, env.Logger, env.Metrics)
	compare := compare_file.NewQuery(env.Store.Files(), engine, comparison.NewSummaryAggregator(0))
	return NewInteractor(compare, archive, env.Clock, env.Logger, env.Metrics)
}

func TestExportReport(t *testing.T) {
	ctx := context.Background()

	t.Run("workbook is archived", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		doc := env.Seed(t, pricingtest.NewSheetBuilder())

		artifact, err := newInteractor(env, env.Store.Archive()).Execute(ctx, &Request{Province: "quirino", FileID: doc.ID(), Format: FormatXLSX})
		require.NoError(t, err)
		assert.Equal(t, export.XLSXContentType, artifact.ContentType)
		assert.Equal(t, "Rice_November_1770710400000.xlsx", artifact.Name)
		assert.NotEmpty(t, artifact.Data)

		object := "reports/quirino/" + doc.ID() + "/" + artifact.Name
		assert.Equal(t, "mem://"+object, artifact.Location)
		stored, ok := env.Store.Object(object)
		require.True(t, ok)
		assert.Equal(t, artifact.Data, stored)

		assert.Equal(t, 1.0, testutil.ToFloat64(env.Metrics.ExportsRendered.WithLabelValues("xlsx")))
	})

	t.Run("summary without archive", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		doc := env.Seed(t, pricingtest.NewSheetBuilder())

		artifact, err := newInteractor(env, nil).Execute(ctx, &Request{Province: "quirino", FileID: doc.ID(), Format: FormatDOCX})
		require.NoError(t, err)
		assert.Equal(t, "Rice November_Rice_November_Summary.docx", artifact.Name)
		assert.Empty(t, artifact.Location)
	})

	t.Run("archive failure still returns the file", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		doc := env.Seed(t, pricingtest.NewSheetBuilder())

		artifact, err := newInteractor(env, failingArchive{}).Execute(ctx, &Request{Province: "quirino", FileID: doc.ID(), Format: FormatDOCX})
		require.NoError(t, err)
		assert.NotEmpty(t, artifact.Data)
		assert.Empty(t, artifact.Location)
	})

	t.Run("unknown format", func(t *testing.T) {
		env := pricingtest.NewEnv(t)
		doc := env.Seed(t, pricingtest.NewSheetBuilder())

		_, err := newInteractor(env, nil).Execute(ctx, &Request{Province: "quirino", FileID: doc.ID(), Format: "pdf"})
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		env := pricingtest.NewEnv(t)

		_, err := newInteractor(env, nil).Execute(ctx, &Request{Province: "quirino", FileID: "nope", Format: FormatXLSX})
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})
}
