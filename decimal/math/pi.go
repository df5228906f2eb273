package math

import (
	"sync"

	"github.com/db47h/progcalc/decimal"
)

var (
	piMu    sync.Mutex
	piCache = pi(dec(decimal.DefaultDecimalPrec * 2))
)

// Pi sets z to π rounded to z's precision and mode, and returns z. If z's
// precision is 0, it is changed to decimal.DefaultDecimalPrec.
//
// Pi is safe for concurrent use.
func Pi(z *decimal.Decimal) *decimal.Decimal {
	if z.Prec() == 0 {
		z.SetPrec(decimal.DefaultDecimalPrec)
	}
	return z.Set(piPrec(z.Prec()))
}

// piPrec returns π with at least prec+1 digits of precision. The result must
// not be modified.
func piPrec(prec uint) *decimal.Decimal {
	piMu.Lock()
	defer piMu.Unlock()
	if piCache.Prec() <= prec {
		piCache = pi(dec(prec + prec/2 + 1))
	}
	return piCache
}

// pi computes π with the Gauss-Legendre algorithm to z.Prec() decimal digits of
// precision and returns z. If z.Prec() is zero, it is set to decimal.DefaultDecimalPrec.
func pi(z *decimal.Decimal) *decimal.Decimal {
	prec := z.Prec()
	if prec == 0 {
		prec = decimal.DefaultDecimalPrec
	}

	var (
		// With only 2 or 4 additional digits there are specific digit counts
		// for which the last digit is off by one (eg. at 57 and 761
		// respectively).
		pp  = prec + decimal.DigitsPerWord
		a   = dec(pp).SetUint64(1)
		u   = dec(pp).Sqrt(two)
		b   = dec(pp).Quo(one, u)
		t   = dec(pp).Set(quarter)
		p   = dec(pp).SetUint64(1)
		eps = epsilon(pp)
	)

	z.SetPrec(pp)
	for {
		u.Set(a)                 // a_n
		a.Mul(z.Add(a, b), half) // a_n+1
		b.Sqrt(z.Mul(u, b))      // b_n+1

		// t = t - p×(a_n - a_n+1)^2
		t.Set(u.Sub(t, z.Mul(u.Mul(z.Sub(u, a), z), p)))

		if z.Sub(a, b).CmpAbs(eps) <= 0 {
			break
		}

		p.Set(z.Mul(p, two))
	}
	z.Add(a, b)
	a.Mul(z, z)
	t.Mul(t, four)
	return z.Quo(a, t).SetPrec(prec)
}
