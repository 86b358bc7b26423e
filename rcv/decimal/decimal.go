// Package decimal implements the fixed-scale, non-negative decimal
// arithmetic that every vote quantity in the tabulation engine flows
// through: tallies, thresholds, and fractional transfer values.
//
// Every value carries an implicit, caller-chosen scale. Divide and
// Multiply are the only arithmetic operations that can introduce
// rounding, and both round toward zero (truncate), never away from it,
// so a tabulation run is reproducible bit-for-bit given the same
// configured scale. CeilToInt rounds up, and is used only to present a
// threshold, never in vote arithmetic.
package decimal

import (
	"fmt"
	"math/big"

	ext "github.com/shopspring/decimal"
)

// MinScale and MaxScale bound the configurable scale accepted by the
// contest rules (decimalPlacesForVoteArithmetic).
const (
	MinScale = 1
	MaxScale = 20
)

// Decimal is a non-negative fixed-point number backed by
// shopspring/decimal's arbitrary-precision coefficient. The zero value
// is zero.
type Decimal struct {
	v ext.Decimal
}

// Zero returns the additive identity.
func Zero() Decimal {
	return Decimal{v: ext.Zero}
}

// NewFromInt builds a Decimal from a non-negative integer.
func NewFromInt(i int64) Decimal {
	return Decimal{v: ext.NewFromInt(i)}
}

// NewFromString parses a non-negative decimal literal, e.g. "6.0000".
func NewFromString(s string) (Decimal, error) {
	v, err := ext.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	if v.IsNegative() {
		return Decimal{}, fmt.Errorf("decimal %q is negative, vote quantities must be non-negative", s)
	}
	return Decimal{v: v}, nil
}

// MustFromString is NewFromString for literals known to be valid, chiefly
// in tests and seed data.
func MustFromString(s string) Decimal {
	d, err := NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Add returns d+o exactly; summing values already rounded to a common
// scale never needs further rounding.
func (d Decimal) Add(o Decimal) Decimal {
	return Decimal{v: d.v.Add(o.v)}
}

// Sub returns d-o exactly. Callers computing a surplus are responsible
// for checking the result is non-negative; Sub itself does not clamp.
func (d Decimal) Sub(o Decimal) Decimal {
	return Decimal{v: d.v.Sub(o.v)}
}

// Cmp returns -1, 0, or 1 as d is less than, equal to, or greater than o.
func (d Decimal) Cmp(o Decimal) int { return d.v.Cmp(o.v) }

// GreaterThan reports whether d > o.
func (d Decimal) GreaterThan(o Decimal) bool { return d.v.GreaterThan(o.v) }

// GreaterThanOrEqual reports whether d >= o.
func (d Decimal) GreaterThanOrEqual(o Decimal) bool { return d.v.GreaterThanOrEqual(o.v) }

// LessThan reports whether d < o.
func (d Decimal) LessThan(o Decimal) bool { return d.v.LessThan(o.v) }

// Equal reports whether d and o represent the same numeric value,
// regardless of trailing zero formatting.
func (d Decimal) Equal(o Decimal) bool { return d.v.Equal(o.v) }

// IsZero reports whether d is exactly zero.
func (d Decimal) IsZero() bool { return d.v.IsZero() }

// IsNegative reports whether d is less than zero. Present so callers can
// assert the non-negativity invariant of spec §3 after a Sub.
func (d Decimal) IsNegative() bool { return d.v.IsNegative() }

// String renders d with its natural number of digits.
func (d Decimal) String() string { return d.v.String() }

// StringFixed renders d to exactly scale decimal places.
func (d Decimal) StringFixed(scale int32) string { return d.v.StringFixed(scale) }

// MarshalJSON encodes d as a JSON string, matching the audit-friendly
// string-weight convention the engine uses for vote quantities.
func (d Decimal) MarshalJSON() ([]byte, error) { return d.v.MarshalJSON() }

// UnmarshalJSON decodes a Decimal from either a JSON string or number.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	var v ext.Decimal
	if err := v.UnmarshalJSON(b); err != nil {
		return err
	}
	if v.IsNegative() {
		return fmt.Errorf("decimal %s is negative, vote quantities must be non-negative", v.String())
	}
	d.v = v
	return nil
}

// Divide computes a/b rounded toward zero to scale. Division by zero
// returns Zero: the engine never needs a/0 to mean anything else, since
// the threshold computation returns early for a non-positive divisor and
// the surplus transfer only divides by a winner's tally after checking
// that the surplus is positive.
func Divide(a, b Decimal, scale int32) Decimal {
	if b.v.IsZero() {
		return Zero()
	}
	return Decimal{v: floorDivToScale(a.v, b.v, scale)}
}

// Multiply computes a*b rounded toward zero to scale. Multiplication of
// two exact decimals is itself exact, so this only ever discards digits
// beyond scale, never rounds them.
func Multiply(a, b Decimal, scale int32) Decimal {
	return Decimal{v: a.v.Mul(b.v).Truncate(scale)}
}

// CeilToInt rounds d up to the nearest whole number. Used for the
// default (non-fractional) winning threshold presentation; see
// rcv.DisplayThreshold.
func CeilToInt(d Decimal) Decimal {
	return Decimal{v: d.v.Ceil()}
}

// floorDivToScale computes floor(a/b * 10^scale) / 10^scale using exact
// big.Int arithmetic on the two decimals' coefficients, so the result
// never suffers the representation error an intermediate
// arbitrary-but-finite-precision division could introduce. Both a and b
// are non-negative by construction (Decimal never holds a negative
// value constructed outside this package), so big.Int's truncating Quo
// is equivalent to floor.
func floorDivToScale(a, b ext.Decimal, scale int32) ext.Decimal {
	coeffA, expA := a.Coefficient(), a.Exponent()
	coeffB, expB := b.Coefficient(), b.Exponent()

	e := int64(expA) + int64(scale) - int64(expB)

	num := new(big.Int).Set(coeffA)
	den := new(big.Int).Set(coeffB)
	if e >= 0 {
		num.Mul(num, pow10(e))
	} else {
		den.Mul(den, pow10(-e))
	}

	q := new(big.Int).Quo(num, den)
	return ext.NewFromBigInt(q, -scale)
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}
