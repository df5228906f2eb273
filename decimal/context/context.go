// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package context provides IEEE-754 style contexts for Decimals.
//
// All factory functions of the form
//
//	func (c *Context) NewT(x T) *decimal.Decimal
//
// create a new decimal.Decimal set to the value of x, and rounded using c's
// precision and rounding mode.
//
// Operators that set a receiver z to function of other decimal arguments like:
//
//	func (c *Context) UnaryOp(z, x *decimal.Decimal) *decimal.Decimal
//	func (c *Context) BinaryOp(z, x, y *decimal.Decimal) *decimal.Decimal
//
// set z to the result of z.Op(args), rounded using the c's precision and
// rounding mode, then check the result against c's exponent range and return
// z. A result whose adjusted exponent exceeds Emax overflows to ±Inf, one
// below Emin underflows to ±0.
//
// Exceptional results never panic nor stop a computation: NaNs and infinities
// flow through further operations. Instead, each exceptional condition is
// recorded in the context's status. The status is sticky: it accumulates until
// cleared by ClearStatus or Err.
package context

import (
	"strings"

	"github.com/db47h/progcalc/decimal"
	dmath "github.com/db47h/progcalc/decimal/math"
)

// A Condition is a set of exceptional conditions raised by operations.
//
// A non-zero Condition is also an error. errors.Is(err, cond) reports whether
// err is a Condition with any of the flags in cond set.
type Condition uint32

// Exceptional conditions.
const (
	DivisionByZero   Condition = 1 << iota // non-zero finite value divided by zero
	InvalidOperation                       // operation on finite values produced a NaN
	Overflow                               // result exponent above Emax
	Underflow                              // result exponent below Emin
	Inexact                                // result was rounded

	// DefaultTraps is the set of conditions reported by Err for contexts
	// returned by New and Decimal128.
	DefaultTraps = DivisionByZero | InvalidOperation | Overflow
)

var conditionNames = [...]string{
	"division by zero",
	"invalid operation",
	"overflow",
	"underflow",
	"inexact",
}

func (c Condition) String() string {
	if c == 0 {
		return "none"
	}
	var b strings.Builder
	for i, name := range conditionNames {
		if c&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
	}
	return b.String()
}

func (c Condition) Error() string {
	return c.String()
}

// Is reports whether target is a Condition sharing at least one flag with c.
func (c Condition) Is(target error) bool {
	t, ok := target.(Condition)
	return ok && c&t != 0
}

// A Context is a wrapper around Decimals that facilitates management of
// rounding modes, precision, exponent range and error handling.
type Context struct {
	prec   uint32
	mode   decimal.RoundingMode
	emax   int
	emin   int
	status Condition
	traps  Condition
}

// New creates a new context with the given precision and rounding mode. If prec
// is 0, it will be set to decimal.DefaultDecimalPrec. The exponent range is
// unbounded and the trap set is DefaultTraps.
func New(prec uint, mode decimal.RoundingMode) *Context {
	c := &Context{
		emax:  decimal.MaxExp - 1,
		emin:  decimal.MinExp,
		traps: DefaultTraps,
	}
	return c.SetMode(mode).SetPrec(prec)
}

// Decimal128 returns a new context matching the IEEE 754-2008 decimal128
// interchange format: 34 digits, ToNearestEven, Emax 6144 and Emin -6143.
func Decimal128() *Context {
	return New(34, decimal.ToNearestEven).SetExpRange(-6143, 6144)
}

// Mode returns the rounding mode of c.
func (c *Context) Mode() decimal.RoundingMode {
	return c.mode
}

// Prec returns c's precision in decimal digits.
func (c *Context) Prec() uint {
	return uint(c.prec)
}

// Emax returns the largest adjusted exponent of a finite result.
func (c *Context) Emax() int {
	return c.emax
}

// Emin returns the smallest adjusted exponent of a non-zero finite result.
func (c *Context) Emin() int {
	return c.emin
}

// SetMode sets c's rounding mode to mode and returns c.
func (c *Context) SetMode(mode decimal.RoundingMode) *Context {
	c.mode = mode
	return c
}

// SetPrec sets c's precision to prec and returns c.
//
// If prec > MaxPrec, it is set to MaxPrec. If prec == 0, it is set to
// decimal.DefaultDecimalPrec.
func (c *Context) SetPrec(prec uint) *Context {
	if prec == 0 {
		prec = decimal.DefaultDecimalPrec
	}
	if prec > decimal.MaxPrec {
		prec = decimal.MaxPrec
	}
	c.prec = uint32(prec)
	return c
}

// SetExpRange sets the range of adjusted exponents, that is the exponent e of
// a result written as d.ddd×10**e, and returns c.
func (c *Context) SetExpRange(emin, emax int) *Context {
	c.emin, c.emax = emin, emax
	return c
}

// Traps returns the set of conditions reported by Err.
func (c *Context) Traps() Condition {
	return c.traps
}

// SetTraps sets the set of conditions reported by Err and returns c.
func (c *Context) SetTraps(traps Condition) *Context {
	c.traps = traps
	return c
}

// Status returns the conditions raised since the last call to ClearStatus or
// Err.
func (c *Context) Status() Condition {
	return c.status
}

// ClearStatus clears c's status and returns c.
func (c *Context) ClearStatus() *Context {
	c.status = 0
	return c
}

// Err returns the trapped conditions raised since the last call to Err or
// ClearStatus as an error, or nil if there were none. It clears the status.
func (c *Context) Err() error {
	cond := c.status & c.traps
	c.status = 0
	if cond == 0 {
		return nil
	}
	return cond
}

// New returns a new decimal.Decimal with value 0, precision and rounding mode set
// to c's precision and rounding mode.
func (c *Context) New() *decimal.Decimal {
	return new(decimal.Decimal).SetMode(c.mode).SetPrec(uint(c.prec))
}

// NewInt64 returns a new *decimal.Decimal set to the (possibly rounded) value
// of x.
func (c *Context) NewInt64(x int64) *decimal.Decimal {
	return c.finish(c.New().SetInt64(x), false, false)
}

// NewUint64 returns a new *decimal.Decimal set to the (possibly rounded) value
// of x.
func (c *Context) NewUint64(x uint64) *decimal.Decimal {
	return c.finish(c.New().SetUint64(x), false, false)
}

// NewString returns a new Decimal with the value of s and a boolean
// indicating success. s must be a floating-point number of the same format as
// accepted by (*decimal.Decimal).Parse, with base argument 0. The entire string
// (not just a prefix) must be valid for success. If the operation failed, the
// returned value is nil. d's precision and rounding mode are set to c's
// precision and rounding mode.
func (c *Context) NewString(s string) (d *decimal.Decimal, success bool) {
	d, success = c.New().SetString(s)
	if !success {
		return nil, false
	}
	return c.finish(d, true, false), true
}

// ParseDecimal is like d.Parse(s, base) with d set to c's precision and
// rounding mode.
func (c *Context) ParseDecimal(s string, base int) (f *decimal.Decimal, b int, err error) {
	f, b, err = decimal.ParseDecimal(s, base, uint(c.prec), c.mode)
	if err == nil {
		c.finish(f, true, false)
	}
	return f, b, err
}

// apply applies c's precision and rounding mode to z and returns z.
func (c *Context) apply(z *decimal.Decimal) *decimal.Decimal {
	z.SetMode(c.mode)
	if z.Prec() != uint(c.prec) {
		z.SetPrec(uint(c.prec))
	}
	return z
}

// special reports whether any of xs is NaN or infinite.
func special(x, y *decimal.Decimal) bool {
	return x.IsNaN() || x.IsInf() || y != nil && (y.IsNaN() || y.IsInf())
}

// finish checks the result z against c's exponent range, updates c's status
// and returns z. sp must be set if any operand was special (see special) and
// divZero if the operation divided a finite value by zero.
func (c *Context) finish(z *decimal.Decimal, sp, divZero bool) *decimal.Decimal {
	switch {
	case z.IsNaN():
		if !sp {
			c.status |= InvalidOperation
		}
		return z
	case z.IsInf():
		switch {
		case divZero:
			c.status |= DivisionByZero
		case !sp:
			c.status |= Overflow | Inexact
		}
		return z
	case z.IsZero():
		if z.Acc() != decimal.Exact {
			c.status |= Underflow | Inexact
		}
		return z
	}
	e := z.MantExp(nil) - 1
	switch {
	case e > c.emax:
		c.status |= Overflow | Inexact
		return z.SetInf(z.Signbit())
	case e < c.emin:
		c.status |= Underflow | Inexact
		neg := z.Signbit()
		z.SetUint64(0)
		if neg {
			z.Neg(z)
		}
		return z
	}
	if z.Acc() != decimal.Exact {
		c.status |= Inexact
	}
	return z
}

// Round sets z's to the value of x and returns z rounded using c's precision
// and rounding mode.
func (c *Context) Round(z, x *decimal.Decimal) *decimal.Decimal {
	sp := special(x, nil)
	return c.finish(c.apply(z).Set(x), sp, false)
}

// Add sets z to the rounded sum x+y and returns z.
func (c *Context) Add(z, x, y *decimal.Decimal) *decimal.Decimal {
	sp := special(x, y)
	return c.finish(c.apply(z).Add(x, y), sp, false)
}

// Sub sets z to the rounded difference x-y and returns z.
func (c *Context) Sub(z, x, y *decimal.Decimal) *decimal.Decimal {
	sp := special(x, y)
	return c.finish(c.apply(z).Sub(x, y), sp, false)
}

// Mul sets z to the rounded product x×y and returns z.
func (c *Context) Mul(z, x, y *decimal.Decimal) *decimal.Decimal {
	sp := special(x, y)
	return c.finish(c.apply(z).Mul(x, y), sp, false)
}

// Quo sets z to the rounded quotient x/y and returns z.
func (c *Context) Quo(z, x, y *decimal.Decimal) *decimal.Decimal {
	sp := special(x, y)
	dz := y.IsZero() && !x.IsZero() && !x.IsNaN() && !x.IsInf()
	return c.finish(c.apply(z).Quo(x, y), sp, dz)
}

// Rem sets z to the remainder of the truncated division x/y and returns z.
func (c *Context) Rem(z, x, y *decimal.Decimal) *decimal.Decimal {
	sp := special(x, y)
	return c.finish(c.apply(z).Rem(x, y), sp, false)
}

// Neg sets z to the (possibly rounded) value of x with its sign negated,
// and returns z.
func (c *Context) Neg(z, x *decimal.Decimal) *decimal.Decimal {
	sp := special(x, nil)
	return c.finish(c.apply(z).Neg(x), sp, false)
}

// Abs sets z to the (possibly rounded) value |x| (the absolute value of x)
// and returns z.
func (c *Context) Abs(z, x *decimal.Decimal) *decimal.Decimal {
	sp := special(x, nil)
	return c.finish(c.apply(z).Abs(x), sp, false)
}

// Sqrt sets z to the rounded square root of x, and returns z.
func (c *Context) Sqrt(z, x *decimal.Decimal) *decimal.Decimal {
	sp := special(x, nil)
	return c.finish(dmath.Sqrt(c.apply(z), x), sp, false)
}

// Exp sets z to the rounded value of e**x and returns z.
func (c *Context) Exp(z, x *decimal.Decimal) *decimal.Decimal {
	sp := special(x, nil)
	return c.finish(dmath.Exp(c.apply(z), x), sp, false)
}

// Ln sets z to the rounded natural logarithm of x and returns z. Ln(±0)
// raises DivisionByZero.
func (c *Context) Ln(z, x *decimal.Decimal) *decimal.Decimal {
	sp := special(x, nil)
	dz := x.IsZero()
	return c.finish(dmath.Log(c.apply(z), x), sp, dz)
}

// Log10 sets z to the rounded decimal logarithm of x and returns z. Log10(±0)
// raises DivisionByZero.
func (c *Context) Log10(z, x *decimal.Decimal) *decimal.Decimal {
	sp := special(x, nil)
	dz := x.IsZero()
	return c.finish(dmath.Log10(c.apply(z), x), sp, dz)
}

// Pow sets z to the rounded value of x**y and returns z. Raising ±0 to a
// negative power raises DivisionByZero.
func (c *Context) Pow(z, x, y *decimal.Decimal) *decimal.Decimal {
	sp := special(x, y)
	dz := x.IsZero() && y.Sign() < 0
	return c.finish(dmath.Pow(c.apply(z), x, y), sp, dz)
}
