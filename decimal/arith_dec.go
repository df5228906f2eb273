// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the basic arithmetic operations of Decimal.

package decimal

import "math/big"

// coeff returns the coefficient and scale of a finite x, such that
// |x| = c × 10**q.
func (x *Decimal) coeff() (c *big.Int, q int64) {
	return &x.mant, int64(x.exp) - int64(x.dig)
}

// binPrec sets z's precision for the binary operation z = x op y and reports
// whether the result must be NaN.
func (z *Decimal) binPrec(x, y *Decimal) bool {
	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}
	if x.form == nan || y.form == nan {
		z.SetNaN()
		return true
	}
	return false
}

// Add sets z to the rounded sum x+y and returns z. If z's precision is 0,
// it is changed to the larger of x's or y's precision before the operation.
// Rounding is performed according to z's precision and rounding mode; and
// z's accuracy reports the result error relative to the exact (not rounded)
// result. Adding infinities with opposite signs yields NaN.
func (z *Decimal) Add(x, y *Decimal) *Decimal {
	if debugDecimal {
		x.validate()
		y.validate()
	}
	if z.binPrec(x, y) {
		return z
	}
	return z.add(x, x.neg, y, y.neg)
}

// Sub sets z to the rounded difference x-y and returns z.
// Precision, rounding, and accuracy reporting are as for Add.
// Subtracting infinities with equal signs yields NaN.
func (z *Decimal) Sub(x, y *Decimal) *Decimal {
	if debugDecimal {
		x.validate()
		y.validate()
	}
	if z.binPrec(x, y) {
		return z
	}
	return z.add(x, x.neg, y, !y.neg)
}

// add sets z to (±x) + (±y) using the signs xneg and yneg.
func (z *Decimal) add(x *Decimal, xneg bool, y *Decimal, yneg bool) *Decimal {
	if x.form == finite && y.form == finite {
		z.uadd(x, xneg, y, yneg)
		return z
	}

	if x.form == inf && y.form == inf && xneg != yneg {
		// +Inf + -Inf
		// -Inf + +Inf
		return z.SetNaN()
	}

	if x.form == zero && y.form == zero {
		// ±0 + ±0
		z.acc = Exact
		z.form = zero
		z.neg = xneg && yneg // -0 + -0 == -0
		return z
	}

	if x.form == inf || y.form == zero {
		// ±Inf + y
		// x + ±0
		z.Set(x)
		z.neg = xneg
		return z
	}

	// ±0 + y
	// x + ±Inf
	z.Set(y)
	z.neg = yneg
	return z
}

// uadd sets z to (±x) + (±y) for finite, non-zero x and y.
func (z *Decimal) uadd(x *Decimal, xneg bool, y *Decimal, yneg bool) {
	// order the operands so that a holds the operand with the larger exponent.
	a, aneg, b, bneg := x, xneg, y, yneg
	if b.exp > a.exp {
		a, aneg, b, bneg = b, bneg, a, aneg
	}
	ca, qa := a.coeff()
	cb, qb := b.coeff()

	// If b lies entirely below both the lowest digit of a and the rounding
	// position of the result, replace it with a single digit below either
	// position: this does not change the rounded result and bounds the size
	// of the aligned coefficients.
	var t big.Int
	if lim := min64(qa, int64(a.exp)-int64(z.prec)-3); int64(b.exp) <= lim {
		cb, qb = t.SetInt64(1), lim-1
	}

	// align
	var sa, sb big.Int
	q := min64(qa, qb)
	shl10(&sa, ca, uint(qa-q))
	shl10(&sb, cb, uint(qb-q))
	if aneg {
		sa.Neg(&sa)
	}
	if bneg {
		sb.Neg(&sb)
	}
	sa.Add(&sa, &sb)

	neg := sa.Sign() < 0
	if sa.Sign() == 0 {
		// x - x is +0 unless rounding towards -Inf
		neg = z.mode == ToNegativeInf
	}
	z.setCoeff(neg, sa.Abs(&sa), q, false)
}

// Mul sets z to the rounded product x×y and returns z.
// Precision, rounding, and accuracy reporting are as for Add.
// Multiplying a zero with an infinity yields NaN.
func (z *Decimal) Mul(x, y *Decimal) *Decimal {
	if debugDecimal {
		x.validate()
		y.validate()
	}
	if z.binPrec(x, y) {
		return z
	}

	neg := x.neg != y.neg

	if x.form == finite && y.form == finite {
		cx, qx := x.coeff()
		cy, qy := y.coeff()
		var c big.Int
		return z.setCoeff(neg, c.Mul(cx, cy), qx+qy, false)
	}

	z.acc = Exact
	if x.form == zero && y.form == inf || x.form == inf && y.form == zero {
		// ±0 × ±Inf
		// ±Inf × ±0
		return z.SetNaN()
	}

	// ±Inf × y
	// x × ±Inf
	// ±0 × y
	// x × ±0
	if x.form == inf || y.form == inf {
		z.form = inf
	} else {
		z.form = zero
	}
	z.neg = neg
	return z
}

// Quo sets z to the rounded quotient x/y and returns z.
// Precision, rounding, and accuracy reporting are as for Add.
// Dividing a non-zero value by zero yields a signed infinity, 0/0 and
// ∞/∞ yield NaN.
func (z *Decimal) Quo(x, y *Decimal) *Decimal {
	if debugDecimal {
		x.validate()
		y.validate()
	}
	if z.binPrec(x, y) {
		return z
	}

	neg := x.neg != y.neg

	if x.form == finite && y.form == finite {
		cx, qx := x.coeff()
		cy, qy := y.coeff()
		// scale the dividend so that the quotient has at least prec+1 digits
		p := int64(z.prec)
		if p == 0 {
			p = DefaultDecimalPrec
		}
		k := p + 1 + int64(y.dig) - int64(x.dig)
		if k < 0 {
			k = 0
		}
		var c, r big.Int
		c.QuoRem(shl10(&c, cx, uint(k)), cy, &r)
		return z.setCoeff(neg, &c, qx-qy-k, r.Sign() != 0)
	}

	z.acc = Exact
	if x.form == zero && y.form == zero || x.form == inf && y.form == inf {
		// ±0 / ±0
		// ±Inf / ±Inf
		return z.SetNaN()
	}

	// x / ±0
	// ±Inf / y
	// ±0 / y
	// x / ±Inf
	if x.form == inf || y.form == zero {
		z.form = inf
	} else {
		z.form = zero
	}
	z.neg = neg
	return z
}

// Rem sets z to the remainder of the truncated division x/y and returns z.
// The result has the sign of x and |z| < |y|. Precision, rounding, and
// accuracy reporting are as for Add.
//
// The result is NaN if x is infinite, if y is zero, or if the integer
// quotient cannot be represented with z's precision. If y is infinite and x is
// finite, the result is x.
func (z *Decimal) Rem(x, y *Decimal) *Decimal {
	if debugDecimal {
		x.validate()
		y.validate()
	}
	if z.binPrec(x, y) {
		return z
	}
	if x.form == inf || y.form == zero {
		return z.SetNaN()
	}
	if x.form == zero || y.form == inf || x.CmpAbs(y) < 0 {
		return z.Set(x)
	}
	// x, y finite and |x| >= |y|
	p := int64(z.prec)
	if p == 0 {
		p = DefaultDecimalPrec
	}
	if int64(x.exp)-int64(y.exp) > p+1 {
		return z.SetNaN()
	}
	cx, qx := x.coeff()
	cy, qy := y.coeff()
	q := min64(qx, qy)
	var a, b, iq, r big.Int
	shl10(&a, cx, uint(qx-q))
	shl10(&b, cy, uint(qy-q))
	iq.QuoRem(&a, &b, &r)
	if int64(digits(&iq)) > p {
		return z.SetNaN()
	}
	return z.setCoeff(x.neg, &r, q, false)
}

func min64(x, y int64) int64 {
	if x < y {
		return x
	}
	return y
}
