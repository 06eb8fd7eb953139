package comparison

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
)

// DefaultBaselineYear is used when a sheet does not record its year.
const DefaultBaselineYear = 2025

// Scope selects the sheets of one commodity in one province.
type Scope struct {
	Province         string
	CommodityDisplay string
}

func (s Scope) empty() bool {
	return strings.TrimSpace(s.Province) == "" || strings.TrimSpace(s.CommodityDisplay) == ""
}

// Reference is the sheet a comparison is anchored on.
type Reference struct {
	Scope
	Period domain.Period
}

// ReferenceOf anchors a comparison on doc.
func ReferenceOf(doc *domain.PriceDocument) Reference {
	return Reference{
		Scope:  Scope{Province: doc.Province(), CommodityDisplay: doc.CommodityDisplay()},
		Period: doc.Period(),
	}
}

// PeriodIndex locates sheets and baselines by commodity and period.
type PeriodIndex struct {
	files        contracts.FileRepository
	baselines    contracts.BaselineRepository
	baselineYear int
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

// NewPeriodIndex creates a period index. A baselineYear of zero selects DefaultBaselineYear.
func NewPeriodIndex(
	files contracts.FileRepository,
	baselines contracts.BaselineRepository,
	baselineYear int,
	logger *zap.Logger,
	m *metrics.Metrics,
) *PeriodIndex {
	if baselineYear == 0 {
		baselineYear = DefaultBaselineYear
	}
	return &PeriodIndex{
		files:        files,
		baselines:    baselines,
		baselineYear: baselineYear,
		logger:       logger,
		metrics:      m,
	}
}

// FindExact returns the sheet for scope at period, or nil when there is none.
// When several sheets share the period the most recently uploaded one wins.
func (pi *PeriodIndex) FindExact(ctx context.Context, scope Scope, period domain.Period) (*domain.PriceDocument, error) {
	if scope.empty() {
		return nil, nil
	}

	week := period.Week
	docs, err := pi.files.List(ctx, scope.Province, contracts.FileFilter{
		CommodityDisplay: scope.CommodityDisplay,
		Month:            period.Month,
		Week:             &week,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s sheets for %s: %w", scope.CommodityDisplay, period, err)
	}

	var matches []*domain.PriceDocument
	for _, doc := range docs {
		if period.Matches(doc.Period()) {
			matches = append(matches, doc)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		ids := make([]string, 0, len(matches))
		for _, doc := range matches {
			ids = append(ids, doc.ID())
		}
		pi.logger.Warn("multiple sheets share a period, using the most recent upload",
			zap.String("province", scope.Province),
			zap.String("commodity", scope.CommodityDisplay),
			zap.String("period", period.String()),
			zap.Strings("file_ids", ids),
		)
		pi.metrics.DuplicatePeriodDocuments.WithLabelValues(scope.Province).Inc()
	}
	return matches[0], nil
}

// FindOffset returns the sheet amount units before ref.
// A week offset from a sheet without a week yields nil.
func (pi *PeriodIndex) FindOffset(ctx context.Context, ref Reference, unit domain.OffsetUnit, amount int) (*domain.PriceDocument, error) {
	target, ok := ref.Period.Minus(unit, amount)
	if !ok {
		return nil, nil
	}
	return pi.FindExact(ctx, ref.Scope, target)
}

// FindYearOverYear resolves the comparison monthsBack months before ref when
// that crosses into the previous year. An uploaded sheet is preferred; the
// baseline table is the fallback. Returns nil when neither exists.
func (pi *PeriodIndex) FindYearOverYear(ctx context.Context, ref Reference, monthsBack int) (domain.ComparisonTarget, error) {
	if monthsBack != 1 && monthsBack != 3 {
		return nil, domain.ErrInvalidComparisonSpan
	}
	if ref.Scope.empty() {
		return nil, nil
	}

	target, _ := ref.Period.Minus(domain.UnitMonth, monthsBack)
	doc, err := pi.FindExact(ctx, ref.Scope, target)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return domain.DocumentTarget{Document: doc}, nil
	}

	baseline, err := pi.loadBaseline(ctx, ref)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		pi.logger.Debug("no year-over-year data",
			zap.String("province", ref.Province),
			zap.String("commodity", ref.CommodityDisplay),
			zap.String("target", target.String()),
		)
		return nil, nil
	}
	return domain.BaselineTarget{Baseline: baseline, Month: target.Month, Week: target.Week}, nil
}

// HasYearOverYearData reports whether comparisons for ref have prior-year data.
// Months that do not reach into the previous year always do. Otherwise either
// every October to December sheet must be uploaded (each of Weeks 1-4 for
// weekly provinces) or a baseline table must exist.
func (pi *PeriodIndex) HasYearOverYearData(ctx context.Context, ref Reference) (bool, error) {
	if !domain.NeedsBaseline(ref.Period.Month) {
		return true, nil
	}
	if ref.Scope.empty() {
		return false, nil
	}

	complete, err := pi.priorQuarterUploaded(ctx, ref)
	if err != nil {
		return false, err
	}
	if complete {
		return true, nil
	}

	ok, err := pi.baselines.Exists(ctx, ref.Province, pi.BaselineID(ref))
	if err != nil {
		return false, fmt.Errorf("failed to check baseline: %w", err)
	}
	return ok, nil
}

// BaselineID is the baseline document a comparison for ref falls back to.
func (pi *PeriodIndex) BaselineID(ref Reference) string {
	return domain.BaselineDocID(pi.baselineYearFor(ref.Period), ref.CommodityDisplay)
}

func (pi *PeriodIndex) baselineYearFor(p domain.Period) int {
	if p.Year != 0 {
		return p.Year - 1
	}
	return pi.baselineYear
}

func (pi *PeriodIndex) loadBaseline(ctx context.Context, ref Reference) (*domain.BaselineDocument, error) {
	baseline, err := pi.baselines.Get(ctx, ref.Province, pi.BaselineID(ref))
	if errors.Is(err, domain.ErrBaselineNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}
	return baseline, nil
}

func (pi *PeriodIndex) priorQuarterUploaded(ctx context.Context, ref Reference) (bool, error) {
	weekly := domain.LookupProvince(ref.Province).IsWeekly()
	priorYear := 0
	if ref.Period.Year != 0 {
		priorYear = ref.Period.Year - 1
	}

	for _, month := range domain.BaselineCoverageMonths {
		docs, err := pi.files.List(ctx, ref.Province, contracts.FileFilter{
			CommodityDisplay: ref.CommodityDisplay,
			Month:            month,
		})
		if err != nil {
			return false, fmt.Errorf("failed to list %s sheets: %w", month, err)
		}
		if !coversMonth(docs, month, priorYear, weekly) {
			return false, nil
		}
	}
	return true, nil
}

func coversMonth(docs []*domain.PriceDocument, month time.Month, year int, weekly bool) bool {
	if !weekly {
		target := domain.Period{Month: month, Year: year}
		for _, doc := range docs {
			if target.Matches(doc.Period()) {
				return true
			}
		}
		return false
	}

	for _, week := range domain.BaselineWeeks {
		target := domain.Period{Month: month, Week: week, Year: year}
		found := false
		for _, doc := range docs {
			if target.Matches(doc.Period()) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
