package math

import (
	"github.com/db47h/progcalc/decimal"
)

// Sinh sets z to the rounded value of sinh(x), and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Sinh(±0) = ±0
//	Sinh(±Inf) = ±Inf
//	Sinh(NaN) = NaN
func Sinh(z, x *decimal.Decimal) *decimal.Decimal {
	prec := resultPrec(z, x)
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	z.SetPrec(prec)

	switch {
	case x.IsNaN() || x.IsZero() || x.IsInf():
		return z.Set(x)
	}

	mode := z.Mode()
	p := prec + decimal.DigitsPerWord
	z.SetMode(decimal.ToNearestEven).SetPrec(p)
	ax := dec(p).Abs(x)
	if ax.Cmp(one) < 0 {
		// sinh(x) = (e + e/(e+1))/2 with e = e**x - 1
		e := Expm1(dec(p), ax)
		t := dec(p).Add(e, one)
		z.Add(e, t.Quo(e, t))
	} else {
		e := Exp(dec(p), ax)
		if e.IsInf() {
			return z.SetMode(mode).SetInf(x.Signbit())
		}
		z.Sub(e, dec(p).Quo(one, e))
	}
	z.Mul(z, half)
	if x.Signbit() {
		z.Neg(z)
	}
	return z.SetMode(mode).SetPrec(prec)
}

// Cosh sets z to the rounded value of cosh(x), and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Cosh(±0) = 1
//	Cosh(±Inf) = +Inf
//	Cosh(NaN) = NaN
func Cosh(z, x *decimal.Decimal) *decimal.Decimal {
	prec := resultPrec(z, x)
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	z.SetPrec(prec)

	switch {
	case x.IsNaN():
		return z.SetNaN()
	case x.IsZero():
		return z.SetUint64(1)
	case x.IsInf():
		return z.SetInf(false)
	}

	mode := z.Mode()
	p := prec + decimal.DigitsPerWord
	z.SetMode(decimal.ToNearestEven).SetPrec(p)
	e := Exp(dec(p), dec(p).Abs(x))
	if e.IsInf() {
		return z.SetMode(mode).SetInf(false)
	}
	z.Add(e, dec(p).Quo(one, e))
	z.Mul(z, half)
	return z.SetMode(mode).SetPrec(prec)
}

// Tanh sets z to the rounded value of tanh(x), and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Tanh(±0) = ±0
//	Tanh(±Inf) = ±1
//	Tanh(NaN) = NaN
func Tanh(z, x *decimal.Decimal) *decimal.Decimal {
	prec := resultPrec(z, x)
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	z.SetPrec(prec)

	switch {
	case x.IsNaN() || x.IsZero():
		return z.Set(x)
	case x.IsInf():
		return z.SetInt64(int64(x.Sign()))
	}

	mode := z.Mode()
	p := prec + decimal.DigitsPerWord
	z.SetMode(decimal.ToNearestEven).SetPrec(p)
	ax := dec(p).Abs(x)
	if ax.Cmp(one) < 0 {
		// tanh(x) = e/(e+2) with e = e**2x - 1
		e := Expm1(dec(p), ax.Mul(ax, two))
		z.Quo(e, dec(p).Add(e, two))
	} else {
		// tanh(x) = (1-e)/(1+e) with e = e**-2x
		e := Exp(dec(p), ax.Mul(ax, two).Neg(ax))
		t := dec(p).Add(one, e)
		z.Quo(z.Sub(one, e), t)
	}
	if x.Signbit() {
		z.Neg(z)
	}
	return z.SetMode(mode).SetPrec(prec)
}
