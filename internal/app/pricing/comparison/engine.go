package comparison

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
)

// Horizon is one of the look-back windows a sheet is compared over.
type Horizon int

const (
	WeekAgo Horizon = iota
	MonthAgo
	ThreeMonthsAgo
)

// Horizons lists every horizon in report order.
var Horizons = []Horizon{WeekAgo, MonthAgo, ThreeMonthsAgo}

// Label is the report caption for the horizon ("1 Week").
func (h Horizon) Label() string {
	switch h {
	case WeekAgo:
		return "1 Week"
	case MonthAgo:
		return "1 Month"
	case ThreeMonthsAgo:
		return "3 Months"
	default:
		return ""
	}
}

// Key is the horizon's JSON field name.
func (h Horizon) Key() string {
	switch h {
	case WeekAgo:
		return "weekAgo"
	case MonthAgo:
		return "monthAgo"
	case ThreeMonthsAgo:
		return "threeMonthsAgo"
	default:
		return ""
	}
}

// Comparison holds the resolved target of each horizon for one sheet.
// A nil target means no comparison data exists for that horizon.
type Comparison struct {
	Province       string
	WeekAgo        domain.ComparisonTarget
	MonthAgo       domain.ComparisonTarget
	ThreeMonthsAgo domain.ComparisonTarget
}

// Target returns the target for h.
func (c *Comparison) Target(h Horizon) domain.ComparisonTarget {
	if c == nil {
		return nil
	}
	switch h {
	case WeekAgo:
		return c.WeekAgo
	case MonthAgo:
		return c.MonthAgo
	case ThreeMonthsAgo:
		return c.ThreeMonthsAgo
	default:
		return nil
	}
}

// ComparablePrice returns the price of product in target, or nil when the
// target has no value for it.
func (c *Comparison) ComparablePrice(product *domain.Product, categoryName string, target domain.ComparisonTarget) *domain.Money {
	switch t := target.(type) {
	case domain.DocumentTarget:
		if t.Document == nil {
			return nil
		}
		category := t.Document.CategoryByName(categoryName)
		if category == nil {
			return nil
		}
		match := category.FindProduct(product.Name(), product.Unit())
		if match == nil {
			return nil
		}
		return match.PrevailingPrice()

	case domain.BaselineTarget:
		if t.Baseline == nil {
			return nil
		}
		row, ok := t.Baseline.FindProduct(product.Name(), product.Unit())
		if !ok {
			return nil
		}
		cell, ok := row.Cell(t.Month)
		if !ok {
			return nil
		}
		if domain.LookupProvince(c.Province).IsWeekly() && t.Week != domain.NoWeek {
			return cell.Week(t.Week)
		}
		return cell.Value()

	default:
		return nil
	}
}

// Engine resolves the comparison targets of a sheet.
type Engine struct {
	index   *PeriodIndex
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewEngine creates a comparison engine over index.
func NewEngine(index *PeriodIndex, logger *zap.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		index:   index,
		logger:  logger,
		metrics: m,
	}
}

// Index exposes the underlying period index.
func (e *Engine) Index() *PeriodIndex {
	return e.index
}

// Build resolves all horizons for doc. The lookups run concurrently.
//
// Week ago is only resolved for weekly provinces. January compares its month
// ago against the previous December and January to March compare their three
// months ago against the previous year; both go through the year-over-year
// lookup so the baseline table can stand in for missing sheets.
func (e *Engine) Build(ctx context.Context, doc *domain.PriceDocument) (*Comparison, error) {
	start := time.Now()
	ref := ReferenceOf(doc)
	month := ref.Period.Month
	cmp := &Comparison{Province: doc.Province()}

	g, gctx := errgroup.WithContext(ctx)

	if domain.LookupProvince(doc.Province()).IsWeekly() {
		g.Go(func() error {
			prev, err := e.index.FindOffset(gctx, ref, domain.UnitWeek, 1)
			if err != nil {
				return err
			}
			cmp.WeekAgo = documentTarget(prev)
			return nil
		})
	}

	g.Go(func() error {
		if month == time.January {
			target, err := e.index.FindYearOverYear(gctx, ref, 1)
			if err != nil {
				return err
			}
			cmp.MonthAgo = target
			return nil
		}
		prev, err := e.index.FindOffset(gctx, ref, domain.UnitMonth, 1)
		if err != nil {
			return err
		}
		cmp.MonthAgo = documentTarget(prev)
		return nil
	})

	g.Go(func() error {
		if domain.NeedsBaseline(month) {
			target, err := e.index.FindYearOverYear(gctx, ref, 3)
			if err != nil {
				return err
			}
			cmp.ThreeMonthsAgo = target
			return nil
		}
		prev, err := e.index.FindOffset(gctx, ref, domain.UnitMonth, 3)
		if err != nil {
			return err
		}
		cmp.ThreeMonthsAgo = documentTarget(prev)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.metrics.ComparisonsBuilt.Inc()
	e.logger.Debug("comparison built",
		zap.String("province", doc.Province()),
		zap.String("file_id", doc.ID()),
		zap.String("week_ago", targetLabel(cmp.WeekAgo)),
		zap.String("month_ago", targetLabel(cmp.MonthAgo)),
		zap.String("three_months_ago", targetLabel(cmp.ThreeMonthsAgo)),
		zap.Duration("took", time.Since(start)),
	)
	return cmp, nil
}

func documentTarget(doc *domain.PriceDocument) domain.ComparisonTarget {
	if doc == nil {
		return nil
	}
	return domain.DocumentTarget{Document: doc}
}

func targetLabel(t domain.ComparisonTarget) string {
	if t == nil {
		return "none"
	}
	return t.Source() + ":" + t.Label()
}
