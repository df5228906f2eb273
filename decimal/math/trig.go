package math

import (
	"github.com/db47h/progcalc/decimal"
)

// maxTrigExp is the largest decimal exponent of a radian argument accepted by
// Sin, Cos and Tan. Larger arguments yield NaN.
const maxTrigExp = 100000

// Sin sets z to the rounded value of sin(x), with x in radians, and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Sin(±0) = ±0
//	Sin(±Inf) = NaN
//	Sin(NaN) = NaN
func Sin(z, x *decimal.Decimal) *decimal.Decimal {
	return sincos(z, x, true)
}

// Cos sets z to the rounded value of cos(x), with x in radians, and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Cos(±Inf) = NaN
//	Cos(NaN) = NaN
func Cos(z, x *decimal.Decimal) *decimal.Decimal {
	return sincos(z, x, false)
}

func sincos(z, x *decimal.Decimal, sin bool) *decimal.Decimal {
	prec := resultPrec(z, x)
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	z.SetPrec(prec)

	switch {
	case x.IsNaN() || x.IsInf() || x.MantExp(nil) > maxTrigExp:
		return z.SetNaN()
	case x.IsZero():
		if sin {
			return z.Set(x)
		}
		return z.SetUint64(1)
	}

	mode := z.Mode()
	p := prec + decimal.DigitsPerWord
	z.SetMode(decimal.ToNearestEven).SetPrec(p)
	r, neg, swap := reduce(x, p, sin)
	if sin != swap {
		sinT(z, r)
	} else {
		cosT(z, r)
	}
	if neg {
		z.Neg(z)
	}
	return z.SetMode(mode).SetPrec(prec)
}

// Tan sets z to the rounded value of tan(x), with x in radians, and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Tan(±0) = ±0
//	Tan(±Inf) = NaN
//	Tan(NaN) = NaN
//
// Tan returns NaN if the cosine of x evaluates to exactly 0.
func Tan(z, x *decimal.Decimal) *decimal.Decimal {
	prec := resultPrec(z, x)
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	z.SetPrec(prec)

	switch {
	case x.IsNaN() || x.IsInf() || x.MantExp(nil) > maxTrigExp:
		return z.SetNaN()
	case x.IsZero():
		return z.Set(x)
	}

	mode := z.Mode()
	p := prec + decimal.DigitsPerWord
	s := Sin(dec(p), x)
	c := Cos(dec(p), x)
	if c.IsZero() {
		return z.SetNaN()
	}
	z.SetMode(decimal.ToNearestEven).SetPrec(p).Quo(s, c)
	return z.SetMode(mode).SetPrec(prec)
}

// reduce reduces the finite, non-zero angle x into r in [0, π/4] for the
// evaluation of sin(x) if sin is true, or cos(x) otherwise. The result is
// -f(r) if neg is set and f(r) otherwise, where f is the requested function,
// or its complement if swap is set.
func reduce(x *decimal.Decimal, prec uint, sin bool) (r *decimal.Decimal, neg, swap bool) {
	p := prec
	if e := x.MantExp(nil); e > 0 {
		p += uint(e)
	}
	var (
		pi     = piPrec(p)
		halfPi = dec(p).Mul(pi, half)
		twoPi  = dec(p).Mul(pi, two)
		t      = dec(p)
	)
	r = dec(p).Abs(x)
	if sin {
		neg = x.Signbit()
	}
	// r mod 2π
	if r.Cmp(twoPi) >= 0 {
		t.Quo(r, twoPi)
		t.RoundToInt(t, decimal.ToZero)
		r.Sub(r, t.Mul(t, twoPi))
		if r.Sign() < 0 {
			r.Add(r, twoPi)
		}
	}
	// r in [0, 2π)
	if r.Cmp(pi) >= 0 {
		r.Sub(r, pi)
		neg = !neg
	}
	// r in [0, π)
	if r.Cmp(halfPi) > 0 {
		r.Sub(pi, r)
		if !sin {
			neg = !neg
		}
	}
	// r in [0, π/2]
	t.Mul(halfPi, half)
	if r.Cmp(t) > 0 {
		r.Sub(halfPi, r)
		swap = true
	}
	return r.SetPrec(prec), neg, swap
}

// sinT sets z to sin(x) by its Taylor series and returns z. The precision of z
// must be non zero.
func sinT(z, x *decimal.Decimal) *decimal.Decimal {
	if x.IsZero() {
		return z.Set(x)
	}
	var (
		p    = z.Prec()
		x2   = dec(p).Mul(x, x)
		term = dec(p).Set(x)
		i    = dec(p).SetUint64(1)
		t    = dec(p)
	)
	z.Set(x)
	for {
		// term = -term × x² / ((i+1)(i+2))
		t.Add(i, one)
		i.Add(t, one)
		term.Quo(term.Mul(term, x2), t.Mul(t, i))
		term.Neg(term)
		if converged(z, term, p) {
			break
		}
		z.Add(z, term)
	}
	return z
}

// cosT sets z to cos(x) by its Taylor series and returns z. The precision of z
// must be non zero.
func cosT(z, x *decimal.Decimal) *decimal.Decimal {
	if x.IsZero() {
		return z.SetUint64(1)
	}
	var (
		p    = z.Prec()
		x2   = dec(p).Mul(x, x)
		term = dec(p).SetUint64(1)
		i    = dec(p)
		t    = dec(p)
	)
	z.SetUint64(1)
	for {
		t.Add(i, one)
		i.Add(t, one)
		term.Quo(term.Mul(term, x2), t.Mul(t, i))
		term.Neg(term)
		if converged(z, term, p) {
			break
		}
		z.Add(z, term)
	}
	return z
}

// Atan sets z to the rounded value of atan(x), in radians, and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Atan(±0) = ±0
//	Atan(±Inf) = ±π/2
//	Atan(NaN) = NaN
func Atan(z, x *decimal.Decimal) *decimal.Decimal {
	prec := resultPrec(z, x)
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	z.SetPrec(prec)

	switch {
	case x.IsNaN():
		return z.SetNaN()
	case x.IsZero():
		return z.Set(x)
	}

	mode := z.Mode()
	p := prec + decimal.DigitsPerWord
	z.SetMode(decimal.ToNearestEven).SetPrec(p)
	if x.IsInf() {
		z.Mul(piPrec(p), half)
	} else {
		r := dec(p).Abs(x)
		inv := r.Cmp(one) > 0
		if inv {
			// atan(x) = π/2 - atan(1/x)
			r.Quo(one, r)
		}
		atanT(z, r)
		if inv {
			z.Sub(dec(p).Mul(piPrec(p), half), z)
		}
	}
	if x.Signbit() {
		z.Neg(z)
	}
	return z.SetMode(mode).SetPrec(prec)
}

// atanT sets z to atan(x) for 0 < x <= 1 and returns z. The precision of z must
// be non zero.
//
// The argument is halved twice with atan(x) = 2×atan(x/(1+sqrt(1+x²))), then
// the power series x - x³/3 + x⁵/5 - ... is summed.
func atanT(z, x *decimal.Decimal) *decimal.Decimal {
	var (
		p    = z.Prec()
		r    = dec(p).Set(x)
		t    = dec(p)
		x2   = dec(p)
		term = dec(p)
		k    = dec(p).SetUint64(1)
	)
	for i := 0; i < 2; i++ {
		t.Sqrt(t.Add(t.Mul(r, r), one))
		r.Quo(r, t.Add(t, one))
	}
	x2.Mul(r, r)
	term.Set(r)
	z.Set(r)
	for {
		term.Mul(term, x2)
		term.Neg(term)
		k.Add(k, two)
		t.Quo(term, k)
		if converged(z, t, p) {
			break
		}
		z.Add(z, t)
	}
	return z.Mul(z, four)
}
