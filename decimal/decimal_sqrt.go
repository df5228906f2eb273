// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import "math/big"

// Sqrt sets z to the rounded square root of x, and returns it.
//
// If z's precision is 0, it is changed to x's precision before the
// operation. Rounding is performed according to z's precision and
// rounding mode.
//
// The result is NaN if x < 0 or x is NaN.
func (z *Decimal) Sqrt(x *Decimal) *Decimal {
	if debugDecimal {
		x.validate()
	}

	if z.prec == 0 {
		z.prec = x.prec
	}

	if x.form == nan || x.Sign() == -1 {
		// following IEEE754-2008 (section 7.2)
		return z.SetNaN()
	}

	// handle ±0 and +∞
	if x.form != finite {
		z.acc = Exact
		z.form = x.form
		z.neg = x.neg // IEEE754-2008 requires √±0 = ±0
		return z
	}

	p := int64(z.prec)
	if p == 0 {
		p = DefaultDecimalPrec
	}

	// Compute √(c·10**q) as √(c·10**s)·10**((q-s)/2) where s makes q-s even
	// and c·10**s has at least 2p+4 digits. The integer square root then
	// has at least p+2 digits and its remainder is the sticky bit.
	c, q := x.coeff()
	s := 2*p + 4 - int64(x.dig)
	if s < 0 {
		s = 0
	}
	if (q-s)%2 != 0 {
		s++
	}
	var a, r, t big.Int
	shl10(&a, c, uint(s))
	r.Sqrt(&a)
	sticky := t.Mul(&r, &r).Cmp(&a) != 0
	return z.setCoeff(false, &r, (q-s)/2, sticky)
}
