package math

import "github.com/db47h/progcalc/decimal"

// Sqrt sets z to the rounded square root of x, and returns it. It forwards to
// z.Sqrt(x) so that the package covers every operator of the calculator:
// see (*decimal.Decimal).Sqrt for precision and special cases.
//
// Sqrt(x) = NaN for x < 0, including -Inf.
func Sqrt(z, x *decimal.Decimal) *decimal.Decimal {
	return z.Sqrt(x)
}
