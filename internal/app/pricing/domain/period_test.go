package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeek(t *testing.T) {
	tests := []struct {
		in      string
		want    Week
		wantErr bool
	}{
		{in: "", want: NoWeek},
		{in: "Week 1", want: 1},
		{in: "week 5", want: 5},
		{in: " Week 3 ", want: 3},
		{in: "Week 0", wantErr: true},
		{in: "Week 6", wantErr: true},
		{in: "Wk 2", wantErr: true},
		{in: "Week two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeek(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeek)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("january")
	require.NoError(t, err)
	assert.Equal(t, time.January, m)

	_, err = ParseMonth("Janvier")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestPeriod_MinusWeek(t *testing.T) {
	t.Run("week 1 wraps to week 4 of previous month", func(t *testing.T) {
		p := Period{Month: time.January, Week: 1}
		got, ok := p.Minus(UnitWeek, 1)
		require.True(t, ok)
		assert.Equal(t, Period{Month: time.December, Week: 4}, got)
	})

	t.Run("known year decrements across january", func(t *testing.T) {
		p := Period{Month: time.January, Week: 1, Year: 2026}
		got, ok := p.Minus(UnitWeek, 1)
		require.True(t, ok)
		assert.Equal(t, Period{Month: time.December, Week: 4, Year: 2025}, got)
	})

	t.Run("week n becomes week n-1", func(t *testing.T) {
		p := Period{Month: time.May, Week: 3}
		got, ok := p.Minus(UnitWeek, 1)
		require.True(t, ok)
		assert.Equal(t, Period{Month: time.May, Week: 2}, got)
	})

	t.Run("week 5 steps to week 4", func(t *testing.T) {
		got, ok := Period{Month: time.May, Week: 5}.Minus(UnitWeek, 1)
		require.True(t, ok)
		assert.Equal(t, Week(4), got.Week)
	})

	t.Run("no week is not offsettable", func(t *testing.T) {
		_, ok := Period{Month: time.May}.Minus(UnitWeek, 1)
		assert.False(t, ok)
	})
}

func TestPeriod_MinusMonth(t *testing.T) {
	tests := []struct {
		name   string
		in     Period
		amount int
		want   Period
	}{
		{name: "simple", in: Period{Month: time.November}, amount: 1, want: Period{Month: time.October}},
		{name: "wraps without year", in: Period{Month: time.March}, amount: 3, want: Period{Month: time.December}},
		{name: "wraps with year", in: Period{Month: time.February, Year: 2026}, amount: 3, want: Period{Month: time.November, Year: 2025}},
		{name: "keeps week label", in: Period{Month: time.June, Week: 2}, amount: 1, want: Period{Month: time.May, Week: 2}},
		{name: "no wrap keeps year", in: Period{Month: time.June, Year: 2026}, amount: 3, want: Period{Month: time.March, Year: 2026}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Minus(UnitMonth, tt.amount)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_Matches(t *testing.T) {
	target := Period{Month: time.October, Year: 2025}

	assert.True(t, target.Matches(Period{Month: time.October, Year: 2025}))
	assert.True(t, target.Matches(Period{Month: time.October}), "unknown stored year matches")
	assert.True(t, Period{Month: time.October}.Matches(Period{Month: time.October, Year: 2024}), "unknown target year matches")
	assert.False(t, target.Matches(Period{Month: time.October, Year: 2024}))
	assert.False(t, target.Matches(Period{Month: time.October, Week: 1, Year: 2025}))
	assert.False(t, target.Matches(Period{Month: time.November, Year: 2025}))
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "January", Period{Month: time.January}.String())
	assert.Equal(t, "January - Week 2", Period{Month: time.January, Week: 2}.String())
	assert.Equal(t, "January - Week 2 2026", Period{Month: time.January, Week: 2, Year: 2026}.String())
}

func TestLookupProvince(t *testing.T) {
	assert.True(t, LookupProvince("isabela").IsWeekly())
	assert.True(t, LookupProvince("Cagayan").IsWeekly())
	assert.False(t, LookupProvince("quirino").IsWeekly())

	alias := LookupProvince("nueva")
	assert.Equal(t, "nueva_vizcaya", alias.ID)
	assert.Equal(t, "Nueva Vizcaya", alias.DisplayName)

	unknown := LookupProvince("batanes")
	assert.Equal(t, "batanes", unknown.DisplayName)
	assert.False(t, unknown.IsWeekly())
}

func TestNeedsBaseline(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		want := m <= time.March
		assert.Equal(t, want, NeedsBaseline(m), m.String())
	}
}

func TestIDs(t *testing.T) {
	assert.Equal(t, "rice-prices-jan-2026", SanitizeID("  Rice Prices (Jan) 2026!! "))
	assert.Equal(t, "", SanitizeID("***"))
	assert.Equal(t, "fresh_fish", CommodityKey(" Fresh   Fish "))
	assert.Equal(t, "2025_Fresh_Fish", BaselineDocID(2025, "Fresh  Fish"))
}

func TestNewPeriod(t *testing.T) {
	p, err := NewPeriod("November", "Week 2", 2025)
	require.NoError(t, err)
	assert.Equal(t, Period{Month: time.November, Week: 2, Year: 2025}, p)

	p, err = NewPeriod("", "", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Month(0), p.Month, "missing month is left for validation")

	_, err = NewPeriod("Octember", "", 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = NewPeriod("May", "Week 9", 0)
	assert.ErrorIs(t, err, ErrInvalidWeek)
}
