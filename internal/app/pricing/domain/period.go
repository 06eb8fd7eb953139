package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Week is a week-of-month label. Zero means the period has no week.
type Week int

// NoWeek marks a monthly period.
const NoWeek Week = 0

// MaxWeek is the highest week label a month can carry.
const MaxWeek Week = 5

// String renders the label as stored ("Week 3"), or "" for NoWeek.
func (w Week) String() string {
	if w == NoWeek {
		return ""
	}
	return "Week " + strconv.Itoa(int(w))
}

// ParseWeek accepts "", "Week 1".."Week 5" (case-insensitive).
func ParseWeek(s string) (Week, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoWeek, nil
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "week") {
		return NoWeek, fmt.Errorf("%w: %q", ErrInvalidWeek, s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(lower[len("week"):]))
	if err != nil || n < 1 || Week(n) > MaxWeek {
		return NoWeek, fmt.Errorf("%w: %q", ErrInvalidWeek, s)
	}
	return Week(n), nil
}

// ParseMonth accepts an English month name ("January").
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
}

// OffsetUnit selects week or month arithmetic for Period offsets.
type OffsetUnit int

const (
	// UnitWeek steps back one week label at a time.
	UnitWeek OffsetUnit = iota
	// UnitMonth steps back whole months, keeping the week label.
	UnitMonth
)

// Period is the time slot a price document covers.
// Year zero means "not recorded" and matches any year.
type Period struct {
	Month time.Month
	Week  Week
	Year  int
}

// NewPeriod builds a period from labels. An empty month leaves Month unset,
// which document validation rejects with ErrMissingMonth.
func NewPeriod(month, week string, year int) (Period, error) {
	var m time.Month
	if strings.TrimSpace(month) != "" {
		parsed, err := ParseMonth(month)
		if err != nil {
			return Period{}, err
		}
		m = parsed
	}
	w, err := ParseWeek(week)
	if err != nil {
		return Period{}, err
	}
	return Period{Month: m, Week: w, Year: year}, nil
}

// HasWeek reports whether the period is week-granular.
func (p Period) HasWeek() bool {
	return p.Week != NoWeek
}

// Minus steps the period back by amount units.
// Week arithmetic: Week 1 wraps to Week 4 of the preceding month.
// Month arithmetic wraps modulo 12 and keeps the week label.
// The year decrements on wrap only when it is known.
// ok is false for week arithmetic on a period without a week.
func (p Period) Minus(unit OffsetUnit, amount int) (Period, bool) {
	switch unit {
	case UnitWeek:
		if !p.HasWeek() {
			return Period{}, false
		}
		out := p
		for i := 0; i < amount; i++ {
			if out.Week == 1 {
				out = out.previousMonth()
				out.Week = 4
				continue
			}
			out.Week--
		}
		return out, true
	case UnitMonth:
		out := p
		for i := 0; i < amount; i++ {
			out = out.previousMonth()
		}
		return out, true
	default:
		return Period{}, false
	}
}

func (p Period) previousMonth() Period {
	out := p
	if p.Month == time.January {
		out.Month = time.December
		if p.Year != 0 {
			out.Year = p.Year - 1
		}
		return out
	}
	out.Month = p.Month - 1
	return out
}

// Matches reports whether a stored period satisfies this lookup target.
// Months and weeks must be equal; years are compared only when both are known.
func (p Period) Matches(stored Period) bool {
	if p.Month != stored.Month || p.Week != stored.Week {
		return false
	}
	if p.Year != 0 && stored.Year != 0 && p.Year != stored.Year {
		return false
	}
	return true
}

// String renders "January - Week 1 2026" style labels for logs.
func (p Period) String() string {
	var b strings.Builder
	b.WriteString(p.Month.String())
	if p.HasWeek() {
		b.WriteString(" - ")
		b.WriteString(p.Week.String())
	}
	if p.Year != 0 {
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(p.Year))
	}
	return b.String()
}
