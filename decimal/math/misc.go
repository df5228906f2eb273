package math

import (
	"github.com/db47h/progcalc/decimal"
)

// constants
var (
	one     = new(decimal.Decimal).SetUint64(1)
	two     = new(decimal.Decimal).SetUint64(2)
	four    = new(decimal.Decimal).SetUint64(4)
	half    = decimal.NewDecimal(5, -1)
	quarter = decimal.NewDecimal(25, -2)
)

// dec returns a new decimal with its precision set to prec and rounding mode
// ToNearestEven.
func dec(prec uint) *decimal.Decimal {
	return new(decimal.Decimal).SetPrec(prec)
}

// resultPrec returns the precision of the result of z = f(x): z's precision
// if non zero, x's otherwise. If both are 0, it returns
// decimal.DefaultDecimalPrec.
func resultPrec(z, x *decimal.Decimal) uint {
	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
	}
	if prec == 0 {
		prec = decimal.DefaultDecimalPrec
	}
	return prec
}

// epsilon returns the convergence threshold for iterations at precision prec.
func epsilon(prec uint) *decimal.Decimal {
	return decimal.NewDecimal(1, 2-int(prec))
}

// converged reports whether adding term to sum no longer changes sum at
// precision prec.
func converged(sum, term *decimal.Decimal, prec uint) bool {
	if term.IsZero() {
		return true
	}
	if sum.IsZero() {
		return false
	}
	return term.MantExp(nil) < sum.MantExp(nil)-int(prec)-1
}

// sticky moves the series sum z by one unit in its last place towards the
// part of the series it is missing, and returns z. The missing part is the
// rounding error of the last addition if it was inexact, the first term left
// out otherwise. A sum that would round to an exact tie at fewer digits then
// rounds in the right direction.
func sticky(z, next *decimal.Decimal) *decimal.Decimal {
	if z.IsZero() {
		return z
	}
	var neg bool
	switch z.Acc() {
	case decimal.Below:
	case decimal.Above:
		neg = true
	default:
		if next.IsZero() {
			return z
		}
		neg = next.Signbit()
	}
	ulp := decimal.NewDecimal(1, z.MantExp(nil)-int(z.Prec()))
	if neg {
		ulp.Neg(ulp)
	}
	return z.Add(z, ulp)
}

// pow sets z to the rounded value of x^n and returns z. The precision of z must
// be non zero and the caller is responsible for allocating guard digits and
// rounding down z.
func pow(z, x *decimal.Decimal, n uint64) *decimal.Decimal {
	if n == 0 {
		return z.SetUint64(1)
	}
	t := dec(z.Prec())
	y := dec(z.Prec()).SetUint64(1)
	z.Set(x)

	for n > 1 {
		if n%2 != 0 {
			y.Mul(t.Set(y), z)
		}
		z.Mul(t.Set(z), t)
		if z.IsInf() || z.IsZero() {
			if y.Signbit() {
				z.Neg(z)
			}
			return z
		}
		n /= 2
	}
	if y.Cmp(one) == 0 {
		return z
	}
	return z.Mul(t.Set(z), y)
}

// digits returns the number of decimal digits of n.
func digits(n uint64) uint {
	d := uint(1)
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
