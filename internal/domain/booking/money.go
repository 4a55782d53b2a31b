package booking

import (
	"fmt"
	"math"
)

// Money is an amount in cents. All arithmetic stays in integer cents;
// String is the only dollar rendering.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func MoneyFromDollars(d int64) Money {
	return Money{cents: d * 100}
}

func (m Money) Cents() int64 {
	return m.cents
}

// String renders two decimal places, e.g. "1492.00".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) IsPositive() bool {
	return m.cents > 0
}

// ApplyRate multiplies by a rate expressed in basis points, rounding half up.
func (m Money) ApplyRate(basisPoints int64) Money {
	if basisPoints == 0 || m.cents == 0 {
		return Money{}
	}
	product := m.cents * basisPoints
	rounded := (product + 5000) / 10000
	if product < 0 {
		rounded = -((-product + 5000) / 10000)
	}
	return Money{cents: rounded}
}

// Split divides m into n parts that sum exactly to m; leftover cents go to
// the first parts.
func (m Money) Split(n int) []Money {
	if n <= 0 {
		return nil
	}
	base := m.cents / int64(n)
	rem := m.cents % int64(n)
	parts := make([]Money, n)
	for i := range parts {
		parts[i] = Money{cents: base}
		if int64(i) < rem {
			parts[i].cents++
		}
	}
	return parts
}

func RateToBasisPoints(rate float64) int64 {
	return int64(math.Round(rate * 10000))
}
