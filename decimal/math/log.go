package math

import (
	"sync"

	"github.com/db47h/progcalc/decimal"
)

// Log sets z to the natural logarithm of x, and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are:
//
//	Log(+Inf) = +Inf
//	Log(±0) = -Inf
//	Log(x < 0) = NaN
//	Log(NaN) = NaN
func Log(z *decimal.Decimal, x *decimal.Decimal) *decimal.Decimal {
	// Log uses the Salamin algorithm described in Michael Beeler, R. William
	// Gosper, Richard Schroeppel, HAKMEM, Artificial Intelligence Memo No. 239,
	// Item 143.
	prec := resultPrec(z, x)
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	z.SetPrec(prec)

	// special cases
	switch {
	case x.IsNaN() || x.Sign() < 0:
		return z.SetNaN()
	case x.IsZero():
		return z.SetInf(true)
	case x.IsInf():
		return z.SetInf(false)
	case x.Cmp(one) == 0:
		return z.SetUint64(0)
	}

	mode := z.Mode()
	z.SetMode(decimal.ToNearestEven)
	logT(z, x, prec+decimal.DigitsPerWord)
	return z.SetMode(mode).SetPrec(prec)
}

// logT sets z to log(x) computed with prec digits of precision and returns z.
// x must be finite and > 0.
func logT(z, x *decimal.Decimal, prec uint) *decimal.Decimal {
	// close to 1, the AGM result would be lost in the cancellation of the
	// scaling term.
	if d := dec(prec).Sub(x, one); d.IsZero() || d.MantExp(nil) < 0 {
		return logSeries(z.SetPrec(prec), x)
	}

	// guard digits for the scale back
	p := prec + digits(uint64(prec)) + 2
	z.SetPrec(p)

	neg := false
	if x.Cmp(one) < 0 {
		// log(x) = -log(1/x)
		neg = true
		z.Quo(one, x)
	} else {
		z.Set(x)
	}

	// scale z by 10^m so that z×10^m > 2/sqrt(epsilon)
	// with epsilon = 1×10^-p, 2/sqrt(epsilon) = 2×10^(p/2).
	// In order to account for odd precisions, we will scale to 2×10^((p+1)/2)
	// z is mant×10^exp where mant < 1 or mant1×10^(exp-1) and 1 <= mant1 < 10
	// Supposing a worst case where mant1 <= 2, scaling the exponent so that
	// m+exp-1 > (p+1)/2 gives m > (p+1)/2-exp+1 => m = (p+1)/2-exp+2
	m := (int(p)+1)/2 - z.MantExp(nil) + 2
	if m > 0 {
		z.SetMantExp(z, m)
	}

	t := dec(p).SetUint64(1)
	u := dec(p).Quo(four, z)
	agm(z, t, u).Quo(piPrec(p), t.Mul(z, two))
	if m > 0 {
		// scale back: z-m×log(10)
		t.Mul(u.SetInt64(int64(m)), log10(p))
		z.Sub(z, t)
	}
	if neg {
		z.Neg(z)
	}
	return z.SetPrec(prec)
}

// logSeries sets z to log(x) = 2×atanh((x-1)/(x+1)) and returns z. The
// series converges quickly for x close to 1. The precision of z must be non
// zero.
func logSeries(z, x *decimal.Decimal) *decimal.Decimal {
	var (
		p    = z.Prec()
		y    = dec(p).Sub(x, one)
		y2   = dec(p)
		term = dec(p)
		k    = dec(p).SetUint64(1)
		q    = dec(p)
	)
	if y.IsZero() {
		return z.SetUint64(0)
	}
	y.Quo(y, term.Add(x, one))
	y2.Mul(y, y)
	term.Set(y)
	z.Set(y)
	for {
		term.Mul(term, y2)
		k.Add(k, two)
		q.Quo(term, k)
		if converged(z, q, p) {
			break
		}
		z.Add(z, q)
	}
	return z.Mul(z, two)
}

// Log10 sets z to the decimal logarithm of x, and returns z. The result is
// exact for integral powers of ten.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Special cases are the same as for Log.
func Log10(z *decimal.Decimal, x *decimal.Decimal) *decimal.Decimal {
	prec := resultPrec(z, x)
	if z == x {
		x = new(decimal.Decimal).Set(x)
	}
	z.SetPrec(prec)

	switch {
	case x.IsNaN() || x.Sign() < 0:
		return z.SetNaN()
	case x.IsZero():
		return z.SetInf(true)
	case x.IsInf():
		return z.SetInf(false)
	}

	// x = 0.1 × 10**exp => log10(x) = exp-1
	if x.MinPrec() == 1 {
		m := new(decimal.Decimal)
		exp := x.MantExp(m)
		if m.Cmp(decimal.NewDecimal(1, -1)) == 0 {
			return z.SetInt64(int64(exp) - 1)
		}
	}

	mode := z.Mode()
	p := prec + decimal.DigitsPerWord
	z.SetMode(decimal.ToNearestEven)
	logT(z, x, p).Quo(z, log10(p))
	return z.SetMode(mode).SetPrec(prec)
}

var (
	log10Mu    sync.Mutex
	log10Cache = dec(0)
)

// log10 returns log(10) with a precision that is guaranteed to be at least
// prec digits. The result must not be modified.
func log10(prec uint) *decimal.Decimal {
	log10Mu.Lock()
	defer log10Mu.Unlock()
	if log10Cache.Prec() < prec {
		log10Cache = ln10(dec(prec))
	}
	return log10Cache
}

// ln10 computes log(10) to z.Prec() decimal digits of precision and
// returns z. If z.Prec() is zero, it is set to decimal.DefaultDecimalPrec.
//
// log(10) is a special case of log() where no actual value for log(10) is needed.
// For log(10) we can easily pre-scale x by doing x=x^10 until x < 1/sqrt(epsilon);
// scaling the result back is done by simply adjusting its exponent.
func ln10(z *decimal.Decimal) *decimal.Decimal {
	prec := z.Prec()
	if prec == 0 {
		prec = decimal.DefaultDecimalPrec
	}
	p := prec + decimal.DigitsPerWord

	mode := z.Mode()
	z.SetMode(decimal.ToNearestEven).SetPrec(p)

	// see logT for details about pre-scaling x. In this specific case, with
	// x = 10^n, we need to scale so that 1×10^n > 2×10^((prec+1)/2)
	//  => n > (prec+1)/2...
	exp := 1
	k := 0
	for eps := int(p+1) / 2; exp <= eps; exp *= 10 {
		k++
	}
	x := decimal.NewDecimal(1, exp).SetPrec(p)
	agm(z,
		dec(p).SetUint64(1),
		dec(p).Quo(four, x))
	z.Quo(piPrec(p), x.Mul(z, two))

	// reverse scaling
	return z.SetMantExp(z, -k).SetMode(mode).SetPrec(prec)
}

// agm sets z to the arithmetic-geometric mean of a, b and returns z.
// a, b and z must be distinct decimals. a and b are not preserved.
func agm(z, a, b *decimal.Decimal) *decimal.Decimal {
	var (
		prec = z.Prec()
		t    = dec(prec)
		eps  = epsilon(prec)
	)

	for {
		t.Copy(a)
		a.Mul(z.Add(a, b), half) // a_n+1 = (a_n+b_n)/2
		b.Sqrt(z.Mul(t, b))      // b_n+1 = sqrt(a_n × b_n)
		if z.Sub(a, b).CmpAbs(eps) <= 0 {
			break
		}
	}
	return z.Copy(a)
}
