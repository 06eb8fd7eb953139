package domain

import (
	"strings"
	"time"
)

// Granularity is the reporting cadence of a province.
type Granularity int

const (
	// Monthly provinces submit one sheet per month.
	Monthly Granularity = iota
	// Weekly provinces submit one sheet per week label.
	Weekly
)

// Province describes a monitored province.
type Province struct {
	ID          string
	DisplayName string
	Granularity Granularity
}

var provinces = map[string]Province{
	"nueva_vizcaya": {ID: "nueva_vizcaya", DisplayName: "Nueva Vizcaya", Granularity: Monthly},
	"nueva":         {ID: "nueva_vizcaya", DisplayName: "Nueva Vizcaya", Granularity: Monthly},
	"quirino":       {ID: "quirino", DisplayName: "Quirino", Granularity: Monthly},
	"isabela":       {ID: "isabela", DisplayName: "Isabela", Granularity: Weekly},
	"cagayan":       {ID: "cagayan", DisplayName: "Cagayan", Granularity: Weekly},
}

// LookupProvince returns the registry entry for id. Unknown provinces are
// monthly and display their id.
func LookupProvince(id string) Province {
	if p, ok := provinces[strings.ToLower(strings.TrimSpace(id))]; ok {
		return p
	}
	return Province{ID: id, DisplayName: id, Granularity: Monthly}
}

// IsWeekly reports whether the province reports per week.
func (p Province) IsWeekly() bool {
	return p.Granularity == Weekly
}

// baselineMonths are the months whose comparisons reach into the previous year.
var baselineMonths = map[time.Month]bool{
	time.January:  true,
	time.February: true,
	time.March:    true,
}

// NeedsBaseline reports whether comparisons for month cross the year boundary.
func NeedsBaseline(month time.Month) bool {
	return baselineMonths[month]
}

// BaselineCoverageMonths are the prior-year months a baseline document holds.
var BaselineCoverageMonths = []time.Month{time.October, time.November, time.December}

// BaselineWeeks are the week labels a weekly baseline holds per month.
var BaselineWeeks = []Week{1, 2, 3, 4}
