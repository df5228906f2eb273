package math

import (
	"github.com/db47h/progcalc/decimal"
)

// maxExpMag is the decimal exponent of |x| beyond which e**x is guaranteed to
// overflow or underflow.
const maxExpMag = 10

// Exp sets z to the rounded value of e**x, and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Exp(+Inf) = +Inf
//	Exp(-Inf) = 0
//	Exp(NaN) = NaN
func Exp(z, x *decimal.Decimal) *decimal.Decimal {
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
		if x.Signbit() {
			return z.SetUint64(0)
		}
		return z.SetInf(false)
	}
	if e := x.MantExp(nil); e > maxExpMag {
		if x.Signbit() {
			return z.SetUint64(0)
		}
		return z.SetInf(false)
	}

	mode := z.Mode()
	z.SetMode(decimal.ToNearestEven)
	expRed(z, x, prec+decimal.DigitsPerWord)
	return z.SetMode(mode).SetPrec(prec)
}

// expRed sets z to e**x computed with prec digits of precision and returns z.
// x must be finite with |x| < 10**maxExpMag.
//
// The argument is reduced as x = k×ln(10) + r, with k an integer and |r| <=
// ln(10)/2, so that e**x = e**r × 10**k.
func expRed(z, x *decimal.Decimal, prec uint) *decimal.Decimal {
	var k int64
	p := prec
	if e := x.MantExp(nil); e > 0 {
		// the integer part of x/ln(10) eats up to e digits
		p += uint(e)
		ln10 := log10(p + 1)
		q := dec(p).Quo(x, ln10)
		q.RoundToInt(q, decimal.ToNearestEven)
		k, _ = q.Int64()
		r := dec(p).Sub(x, q.Mul(q.SetPrec(p), ln10))
		expT(z.SetPrec(prec), r)
	} else {
		expT(z.SetPrec(prec), x)
	}
	if k != 0 {
		z.SetMantExp(z, int(k))
	}
	return z
}

// expT sets z to e**x for |x| <= 2 and returns z. The precision of z must be
// non zero and the caller is responsible for allocating guard digits and
// rounding down z.
func expT(z, x *decimal.Decimal) *decimal.Decimal {
	if x.IsZero() {
		return z.SetUint64(1)
	}
	// e**x = (e**(x/2**n))**(2**n). Each squaring doubles the relative error,
	// hence the extra digits.
	prec := z.Prec()
	n := int(prec/16) + 4
	p := prec + uint(n)/3 + 1
	r := dec(p).Set(x)
	for i := 0; i < n; i++ {
		r.Mul(r, half)
	}
	expm1T(z.SetPrec(p), r)
	z.Add(z, one)
	for i := 0; i < n; i++ {
		z.Mul(z, z)
	}
	return z.SetPrec(prec)
}

// Expm1 sets z to the rounded value of e**x-1, and returns z. It is more
// accurate than Exp(x)-1 when x is near zero.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Expm1(+Inf) = +Inf
//	Expm1(-Inf) = -1
//	Expm1(NaN) = NaN
func Expm1(z, x *decimal.Decimal) *decimal.Decimal {
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
	case x.IsInf():
		if x.Signbit() {
			return z.SetInt64(-1)
		}
		return z.SetInf(false)
	}
	e := x.MantExp(nil)
	if e > maxExpMag {
		if x.Signbit() {
			return z.SetInt64(-1)
		}
		return z.SetInf(false)
	}

	mode := z.Mode()
	p := prec + decimal.DigitsPerWord
	z.SetMode(decimal.ToNearestEven)
	if e <= 0 {
		// |x| < 1
		expm1T(z.SetPrec(p), x)
	} else {
		expRed(z, x, p).Sub(z, one)
	}
	return z.SetMode(mode).SetPrec(prec)
}

// expm1T sets z to the rounded value of e**x-1 for |x| < 1, and returns z.
// The precision of z must be non zero and the caller is responsible for
// allocating guard digits and rounding down z.
//
// For example, get e**x-1 with the same precision as x:
//
//	z.SetPrec(x.Prec()+decimal.DigitsPerWord)
//	expm1T(z, x).SetPrec(x.Prec())
func expm1T(z, x *decimal.Decimal) *decimal.Decimal {
	if x.IsZero() {
		return z.Set(x)
	}

	var (
		p    = z.Prec()
		i    = dec(p).Set(one)
		term = dec(p).Set(x) // x**i/i!
	)
	z.Set(x)
	for {
		i.Add(i, one)
		term.Quo(term.Mul(term, x), i)
		if converged(z, term, p) {
			break
		}
		z.Add(z, term)
	}
	return sticky(z, term)
}
