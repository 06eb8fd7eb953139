package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prices(values ...string) map[int]*Money {
	out := make(map[int]*Money, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		m, err := ParseMoney(v)
		if err != nil {
			panic(err)
		}
		out[i] = m
	}
	return out
}

func TestPrevailingPriceCalculator_Compute(t *testing.T) {
	pc := NewPrevailingPriceCalculator()

	tests := []struct {
		name   string
		prices map[int]*Money
		want   string
	}{
		{name: "empty map is absent", prices: map[int]*Money{}, want: ""},
		{name: "zeros are excluded", prices: prices("0", "0"), want: ""},
		{name: "absent entries are excluded", prices: map[int]*Money{0: nil, 1: nil}, want: ""},
		{name: "mode wins over higher non-mode", prices: prices("10", "10", "20"), want: "10.00"},
		{name: "tie between modes goes to highest", prices: prices("10", "20", "20", "30", "30"), want: "30.00"},
		{name: "no repeats returns max", prices: prices("5", "10", "15"), want: "15.00"},
		{name: "single price", prices: prices("42.5"), want: "42.50"},
		{name: "zero does not count toward frequency", prices: prices("0", "0", "0", "12", "15"), want: "15.00"},
		{name: "negative values are ignored", prices: prices("-5", "-5", "8"), want: "8.00"},
		{name: "sparse indexes", prices: map[int]*Money{3: NewMoney(4550), 7: NewMoney(4550), 9: NewMoney(5000)}, want: "45.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pc.Compute(tt.prices)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestPrevailingPriceCalculator_ExactDecimalGrouping(t *testing.T) {
	pc := NewPrevailingPriceCalculator()

	// 0.1+0.2 and 0.3 differ as floats but are the same peso amount.
	a := NewMoneyFromDecimal(NewMoney(10).Decimal().Add(NewMoney(20).Decimal()))
	b := NewMoney(30)
	c := NewMoney(90)

	got := pc.Compute(map[int]*Money{0: a, 1: b, 2: c})
	require.NotNil(t, got)
	assert.Equal(t, "0.30", got.String())

	// 10 and 10.00 group together.
	ten, err := ParseMoney("10")
	require.NoError(t, err)
	tenCents, err := ParseMoney("10.00")
	require.NoError(t, err)
	got = pc.Compute(map[int]*Money{0: ten, 1: tenCents, 2: NewMoney(1500)})
	require.NotNil(t, got)
	assert.Equal(t, "10.00", got.String())
}

func TestPrevailingPriceCalculator_Idempotent(t *testing.T) {
	pc := NewPrevailingPriceCalculator()
	in := prices("10", "20", "20", "30")

	first := pc.Compute(in)
	second := pc.Compute(in)

	assert.True(t, SameAs(first, second))
	assert.Len(t, in, 4)
}
