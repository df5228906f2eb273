package math

import (
	"github.com/db47h/progcalc/decimal"
)

// maxPowInt is the largest integer exponent computed by repeated squaring.
const maxPowInt = 1 << 62

// Pow sets z to the rounded value of x**y, and returns z.
//
// If z's precision is 0, it is changed to the larger of x's or y's precision
// before the operation. Rounding is performed according to z's precision and
// rounding mode.
//
// Integral exponents are computed by repeated squaring, so that small integer
// powers are exact when the result fits in z's precision. Other exponents are
// computed as e**(y×log(x)).
//
// Special cases are:
//
//	Pow(x, ±0) = 1 for any x
//	Pow(NaN, y) = NaN
//	Pow(x, NaN) = NaN
//	Pow(±0, y) = ±Inf for y an odd integer < 0
//	Pow(±0, y) = +Inf for y < 0 and not an odd integer
//	Pow(±0, y) = ±0 for y an odd integer > 0
//	Pow(±0, y) = +0 for y > 0 and not an odd integer
//	Pow(-1, ±Inf) = 1
//	Pow(x, +Inf) = +Inf for |x| > 1
//	Pow(x, -Inf) = +0 for |x| > 1
//	Pow(x, +Inf) = +0 for |x| < 1
//	Pow(x, -Inf) = +Inf for |x| < 1
//	Pow(x, y) = NaN for finite x < 0 and finite non-integer y
func Pow(z, x, y *decimal.Decimal) *decimal.Decimal {
	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
		if y.Prec() > prec {
			prec = y.Prec()
		}
	}
	if prec == 0 {
		prec = decimal.DefaultDecimalPrec
	}
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	if z == y {
		y = new(decimal.Decimal).Set(y)
	}
	z.SetPrec(prec)

	switch {
	case x.IsNaN() || y.IsNaN():
		return z.SetNaN()
	case y.IsZero():
		return z.SetUint64(1)
	case y.IsInf():
		switch x.CmpAbs(one) {
		case 0:
			return z.SetUint64(1)
		case 1:
			if y.Signbit() {
				return z.SetUint64(0)
			}
			return z.SetInf(false)
		}
		if y.Signbit() {
			return z.SetInf(false)
		}
		return z.SetUint64(0)
	case x.IsZero():
		if y.Signbit() {
			return z.SetInf(x.Signbit() && isOddInt(y))
		}
		z.SetUint64(0)
		if x.Signbit() && isOddInt(y) {
			z.Neg(z)
		}
		return z
	case x.IsInf():
		if y.Signbit() {
			z.SetUint64(0)
		} else {
			z.SetInf(false)
		}
		if x.Signbit() && isOddInt(y) {
			z.Neg(z)
		}
		return z
	case x.Signbit() && !y.IsInt():
		return z.SetNaN()
	}

	mode := z.Mode()
	z.SetMode(decimal.ToNearestEven)

	if y.IsInt() {
		n, acc := y.Int64()
		if acc == decimal.Exact && -maxPowInt <= n && n <= maxPowInt {
			return powInt(z, x, n, prec).SetMode(mode).SetPrec(prec)
		}
	}

	// huge integral y or non-integral y with x > 0
	neg := x.Signbit() && isOddInt(y)

	// e**(y×log|x|). The exponent magnitude adds to the required precision.
	p := prec + decimal.DigitsPerWord
	ax := dec(p).Abs(x)
	l := logT(dec(p), ax, p)
	if e := y.MantExp(nil) + l.MantExp(nil); e > 0 {
		p += uint(e)
		logT(l, ax, p)
	}
	l.Mul(l, y)
	if e := l.MantExp(nil); e > maxExpMag {
		if l.Signbit() {
			z.SetUint64(0)
		} else {
			z.SetInf(false)
		}
	} else {
		expRed(z, l, prec+decimal.DigitsPerWord)
	}
	if neg {
		z.Neg(z)
	}
	return z.SetMode(mode).SetPrec(prec)
}

// powInt sets z to x**n computed with enough guard digits to round to prec
// digits, and returns z.
func powInt(z, x *decimal.Decimal, n int64, prec uint) *decimal.Decimal {
	u := uint64(n)
	if n < 0 {
		u = -u
	}
	p := prec + digits(u) + decimal.DigitsPerWord
	pow(z.SetPrec(p), x, u)
	if n < 0 {
		z.Quo(one, z)
	}
	return z
}

func isOddInt(x *decimal.Decimal) bool {
	if !x.IsInt() {
		return false
	}
	i, _ := x.Int(nil)
	return i.Bit(0) != 0
}
