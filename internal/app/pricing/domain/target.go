package domain

import "time"

// ComparisonTarget is where a comparison price comes from: an uploaded sheet
// or a baseline table. The set of implementations is closed.
type ComparisonTarget interface {
	// Source names the kind of target for reports ("document" or "baseline").
	Source() string
	// Label describes the compared period, e.g. "December - Week 4".
	Label() string

	comparisonTarget()
}

// DocumentTarget compares against a real uploaded sheet.
type DocumentTarget struct {
	Document *PriceDocument
}

func (DocumentTarget) comparisonTarget() {}

// Source returns "document".
func (DocumentTarget) Source() string { return "document" }

// Label returns the sheet's period.
func (t DocumentTarget) Label() string { return t.Document.Period().String() }

// BaselineTarget compares against a baseline table at a resolved month and
// week. Week is NoWeek for monthly provinces.
type BaselineTarget struct {
	Baseline *BaselineDocument
	Month    time.Month
	Week     Week
}

func (BaselineTarget) comparisonTarget() {}

// Source returns "baseline".
func (BaselineTarget) Source() string { return "baseline" }

// Label returns the resolved baseline period.
func (t BaselineTarget) Label() string {
	return Period{Month: t.Month, Week: t.Week, Year: t.Baseline.Year()}.String()
}
