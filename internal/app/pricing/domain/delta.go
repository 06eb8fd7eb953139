package domain

import "github.com/shopspring/decimal"

// Delta is the signed change between a current and a previous price.
type Delta struct {
	Absolute *Money
	Percent  decimal.Decimal
}

// ComputeDelta returns cur - prev and the change relative to prev in percent.
// It returns nil when either side is absent. A zero prev yields a zero percent.
func ComputeDelta(cur, prev *Money) *Delta {
	if cur == nil || prev == nil {
		return nil
	}
	abs := cur.Subtract(prev)
	return &Delta{
		Absolute: abs,
		Percent:  abs.PercentOf(prev),
	}
}

// IsIncrease reports a strictly positive change.
func (d *Delta) IsIncrease() bool {
	return d.Absolute.IsPositive()
}

// IsDecrease reports a strictly negative change.
func (d *Delta) IsDecrease() bool {
	return d.Absolute.IsNegative()
}

// PercentFloat returns the percent as a float for display.
func (d *Delta) PercentFloat() float64 {
	f, _ := d.Percent.Float64()
	return f
}
