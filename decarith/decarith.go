// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decarith implements the decimal mode operators of the calculator on
// top of a decimal128 context: 34 significant digits with the exponent
// clamped to [-6143, 6144].
//
// Operators never fail: invalid operations yield NaN, overflows yield ±Inf
// and these values simply flow through subsequent operations. The only errors
// returned are warnings from Factorial, in which case the input is returned
// unchanged.
package decarith

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/db47h/progcalc/decimal"
	"github.com/db47h/progcalc/decimal/context"
	dmath "github.com/db47h/progcalc/decimal/math"
)

// PiText is the value of π entered by the calculator.
const PiText = "3.1415926535897932384626433832795029"

// MaxFactorial is the largest argument accepted by Factorial: 2124! does not
// fit in a decimal128.
const MaxFactorial = 2123

// Factorial warnings.
var (
	ErrFactorialDomain = errors.New("Factorial requires a positive value")
	ErrFactorialRange  = errors.New("Input out of range")
)

// An Angle is the unit of trigonometric arguments and results.
type Angle uint8

// Angle units.
const (
	Degree Angle = iota
	Radian
	Gradian
)

var angleNames = [...]string{"deg", "rad", "grad"}

func (a Angle) String() string {
	if int(a) < len(angleNames) {
		return angleNames[a]
	}
	return "Angle(" + strconv.Itoa(int(a)) + ")"
}

// ParseAngle returns the Angle named s: deg, rad or grad.
func ParseAngle(s string) (Angle, error) {
	for i, n := range angleNames {
		if strings.EqualFold(s, n) {
			return Angle(i), nil
		}
	}
	return Degree, fmt.Errorf("invalid angle unit %q", s)
}

// thresholds
var (
	small = decimal.NewDecimal(1, -10)
	tiny  = decimal.NewDecimal(1, -30)
)

// constants, rounded to the engine's precision when used
var (
	one    = decimal.NewDecimal(1, 0)
	mone   = decimal.NewDecimal(-1, 0)
	two    = decimal.NewDecimal(2, 0)
	half   = decimal.NewDecimal(5, -1)
	ten    = decimal.NewDecimal(10, 0)
	n180   = decimal.NewDecimal(180, 0)
	n200   = decimal.NewDecimal(200, 0)
	n360   = decimal.NewDecimal(360, 0)
	n400   = decimal.NewDecimal(400, 0)
	maxFac = decimal.NewDecimal(MaxFactorial, 0)
)

// An Engine evaluates decimal operators. The exported fields may be changed
// between calls. An Engine is not safe for concurrent use.
type Engine struct {
	Angle Angle
	// RoundingAid snaps sin, cos and tan results below 1E-30 in absolute
	// value to 0, so that sin(180°) displays as 0.
	RoundingAid bool

	ctx *context.Context
	pi  *decimal.Decimal
}

// UnaryFunc and BinaryFunc are the signatures of the operators as method
// expressions, e.g. (*Engine).Sqrt and (*Engine).Add.
type (
	UnaryFunc  func(e *Engine, x *decimal.Decimal) (*decimal.Decimal, error)
	BinaryFunc func(e *Engine, x, y *decimal.Decimal) (*decimal.Decimal, error)
)

// New returns a new Engine working with a decimal128 context and angles in
// degrees.
func New() *Engine {
	ctx := context.Decimal128()
	pi, _ := ctx.NewString(PiText)
	return &Engine{ctx: ctx, pi: pi}
}

// Context returns the engine's context. Its status reflects the conditions
// raised by the last operator.
func (e *Engine) Context() *context.Context {
	return e.ctx
}

// Zero returns a new +0 with the engine's precision.
func (e *Engine) Zero() *decimal.Decimal {
	return e.ctx.New()
}

// Pi returns a new decimal set to π.
func (e *Engine) Pi() *decimal.Decimal {
	return e.ctx.New().Set(e.pi)
}

// FromString parses s with the engine's precision. See decimal.ParseDecimal.
func (e *Engine) FromString(s string) (*decimal.Decimal, error) {
	d, _, err := e.ctx.ParseDecimal(s, 0)
	return d, err
}

// Random returns a pseudo-random value drawn from rng: a value in [0, 1) if n
// is 0, or an integer in [1, n] otherwise.
func (e *Engine) Random(rng *rand.Rand, n int) *decimal.Decimal {
	r := rng.Float64()
	if n > 0 {
		return e.ctx.NewInt64(int64(r*float64(n)) + 1)
	}
	d, _ := e.ctx.NewString(strconv.FormatFloat(r, 'f', 20, 64))
	return d
}

// Binary operators.

// Add returns x+y.
func (e *Engine) Add(x, y *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Add(e.ctx.New(), x, y), nil
}

// Sub returns x-y.
func (e *Engine) Sub(x, y *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Sub(e.ctx.New(), x, y), nil
}

// Mul returns x×y.
func (e *Engine) Mul(x, y *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Mul(e.ctx.New(), x, y), nil
}

// Div returns x/y.
func (e *Engine) Div(x, y *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Quo(e.ctx.New(), x, y), nil
}

// Mod returns the remainder of the truncated division x/y. It is NaN when
// the integer quotient has more than 34 digits.
func (e *Engine) Mod(x, y *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Rem(e.ctx.New(), x, y), nil
}

// Pow returns x**y.
func (e *Engine) Pow(x, y *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Pow(e.ctx.New(), x, y), nil
}

// Root returns the y-th root of x, x**(1/y). Negative values of x have a
// real root for odd integer values of y: Root(-8, 3) = -2.
func (e *Engine) Root(x, y *decimal.Decimal) (*decimal.Decimal, error) {
	c := e.ctx.ClearStatus()
	inv := c.Quo(c.New(), one, y)
	if x.Sign() < 0 && y.IsInt() && c.Rem(c.New(), y, two).Sign() != 0 {
		z := c.Pow(c.New(), c.Neg(c.New(), x), inv)
		return z.Neg(z), nil
	}
	return c.Pow(c.New(), x, inv), nil
}

// Unary operators.

// Negate returns -x.
func (e *Engine) Negate(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Neg(e.ctx.New(), x), nil
}

// Square returns x×x.
func (e *Engine) Square(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.Mul(x, x)
}

// Sqrt returns the square root of x.
func (e *Engine) Sqrt(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Sqrt(e.ctx.New(), x), nil
}

// Reciprocal returns 1/x.
func (e *Engine) Reciprocal(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.Div(one, x)
}

// Log10 returns the decimal logarithm of x.
func (e *Engine) Log10(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Log10(e.ctx.New(), x), nil
}

// Exp10 returns 10**x.
func (e *Engine) Exp10(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.Pow(ten, x)
}

// Ln returns the natural logarithm of x.
func (e *Engine) Ln(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Ln(e.ctx.New(), x), nil
}

// Exp returns e**x.
func (e *Engine) Exp(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Exp(e.ctx.New(), x), nil
}

// Sinh returns the hyperbolic sine of x.
func (e *Engine) Sinh(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Round(e.ctx.New(), dmath.Sinh(e.ctx.New(), x)), nil
}

// Cosh returns the hyperbolic cosine of x.
func (e *Engine) Cosh(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Round(e.ctx.New(), dmath.Cosh(e.ctx.New(), x)), nil
}

// Tanh returns the hyperbolic tangent of x.
func (e *Engine) Tanh(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.ctx.ClearStatus().Round(e.ctx.New(), dmath.Tanh(e.ctx.New(), x)), nil
}

// Asinh returns the inverse hyperbolic sine of x, ln(x+√(x²+1)).
func (e *Engine) Asinh(x *decimal.Decimal) (*decimal.Decimal, error) {
	c := e.ctx.ClearStatus()
	z := c.Mul(c.New(), x, x)
	c.Add(z, z, one)
	c.Sqrt(z, z)
	c.Add(z, z, x)
	return c.Ln(z, z), nil
}

// Acosh returns the inverse hyperbolic cosine of x, ln(x+√(x²-1)).
func (e *Engine) Acosh(x *decimal.Decimal) (*decimal.Decimal, error) {
	c := e.ctx.ClearStatus()
	z := c.Mul(c.New(), x, x)
	c.Sub(z, z, one)
	c.Sqrt(z, z)
	c.Add(z, z, x)
	return c.Ln(z, z), nil
}

// Atanh returns the inverse hyperbolic tangent of x, ½ln((1+x)/(1-x)).
func (e *Engine) Atanh(x *decimal.Decimal) (*decimal.Decimal, error) {
	c := e.ctx.ClearStatus()
	z := c.Add(c.New(), one, x)
	c.Quo(z, z, c.Sub(c.New(), one, x))
	c.Ln(z, z)
	return c.Mul(z, half, z), nil
}

// Factorial returns x!. Non integral values of x are rounded half up first.
// If x is NaN or negative, Factorial returns x with ErrFactorialDomain. If x
// is larger than MaxFactorial, it returns x with ErrFactorialRange.
func (e *Engine) Factorial(x *decimal.Decimal) (*decimal.Decimal, error) {
	c := e.ctx.ClearStatus()
	if x.IsNaN() || x.Signbit() && !x.IsZero() {
		return x, ErrFactorialDomain
	}
	if x.Cmp(maxFac) > 0 {
		return x, ErrFactorialRange
	}
	n, _ := new(decimal.Decimal).RoundToInt(x, decimal.ToNearestAway).Int64()
	z := c.NewInt64(1)
	f := c.New()
	for ; n > 1; n-- {
		c.Mul(z, z, f.SetInt64(n))
	}
	return z, nil
}

// Trigonometric functions.

// toRadians reduces the angle x, in e.Angle units, modulo a full turn and
// converts the result to radians.
func (e *Engine) toRadians(x *decimal.Decimal) *decimal.Decimal {
	c := e.ctx
	switch e.Angle {
	case Degree:
		z := c.Rem(c.New(), x, n360)
		c.Mul(z, z, e.pi)
		return c.Quo(z, z, n180)
	case Gradian:
		z := c.Rem(c.New(), x, n400)
		c.Mul(z, z, e.pi)
		return c.Quo(z, z, n200)
	}
	return x
}

// fromRadians converts the angle x in radians to e.Angle units.
func (e *Engine) fromRadians(x *decimal.Decimal) *decimal.Decimal {
	c := e.ctx
	switch e.Angle {
	case Degree:
		z := c.Mul(c.New(), x, n180)
		return c.Quo(z, z, e.pi)
	case Gradian:
		z := c.Mul(c.New(), x, n200)
		return c.Quo(z, z, e.pi)
	}
	return x
}

// clampOne clamps z to [-1, 1].
func clampOne(z *decimal.Decimal) *decimal.Decimal {
	switch {
	case z.IsNaN():
	case z.Cmp(one) > 0:
		z.SetInt64(1)
	case z.Cmp(mone) < 0:
		z.SetInt64(-1)
	}
	return z
}

// snapZero sets z to 0 if |z| < 1E-30.
func snapZero(z *decimal.Decimal) *decimal.Decimal {
	if z.CmpAbs(tiny) < 0 {
		z.SetUint64(0)
	}
	return z
}

func isSmall(x *decimal.Decimal) bool {
	return x.CmpAbs(small) < 0
}

func (e *Engine) nan() *decimal.Decimal {
	return e.ctx.New().SetNaN()
}

// Sin returns the sine of x.
func (e *Engine) Sin(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.sin(x), nil
}

func (e *Engine) sin(x *decimal.Decimal) *decimal.Decimal {
	c := e.ctx.ClearStatus()
	if x.IsInf() || x.IsNaN() {
		return e.nan()
	}
	r := e.toRadians(x)
	if r.IsNaN() {
		return r
	}
	z := clampOne(c.Round(c.New(), dmath.Sin(c.New(), r)))
	if e.RoundingAid && !isSmall(r) {
		snapZero(z)
	}
	return z
}

// Cos returns the cosine of x.
func (e *Engine) Cos(x *decimal.Decimal) (*decimal.Decimal, error) {
	return e.cos(x), nil
}

func (e *Engine) cos(x *decimal.Decimal) *decimal.Decimal {
	c := e.ctx.ClearStatus()
	if x.IsInf() || x.IsNaN() {
		return e.nan()
	}
	r := e.toRadians(x)
	if r.IsNaN() {
		return r
	}
	z := clampOne(c.Round(c.New(), dmath.Cos(c.New(), r)))
	if e.RoundingAid {
		snapZero(z)
	}
	return z
}

// Tan returns the tangent of x, computed as sin(x)/cos(x). It is NaN where
// the cosine is 0.
func (e *Engine) Tan(x *decimal.Decimal) (*decimal.Decimal, error) {
	if x.IsInf() || x.IsNaN() {
		return e.nan(), nil
	}
	s := e.sin(x)
	cs := e.cos(x)
	if cs.IsZero() {
		return e.nan(), nil
	}
	return e.Div(s, cs)
}

// atan returns atan(x) in e.Angle units, adding π to the result in radians if
// addPi is set.
func (e *Engine) atan(x *decimal.Decimal, addPi bool) *decimal.Decimal {
	c := e.ctx
	var z *decimal.Decimal
	switch {
	case x.IsInf():
		z = c.Quo(c.New(), e.pi, two)
		if x.Signbit() {
			z.Neg(z)
		}
	case isSmall(x):
		z = c.Round(c.New(), x)
	default:
		z = c.Round(c.New(), dmath.Atan(c.New(), x))
	}
	if addPi {
		c.Add(z, z, e.pi)
	}
	return e.fromRadians(z)
}

// Atan returns the arc tangent of x.
func (e *Engine) Atan(x *decimal.Decimal) (*decimal.Decimal, error) {
	e.ctx.ClearStatus()
	return e.atan(x, false), nil
}

// Asin returns the arc sine of x, atan(x/√(1-x²)).
func (e *Engine) Asin(x *decimal.Decimal) (*decimal.Decimal, error) {
	c := e.ctx.ClearStatus()
	z := c.Mul(c.New(), x, x)
	c.Sub(z, one, z)
	c.Sqrt(z, z)
	c.Quo(z, x, z)
	return e.atan(z, false), nil
}

// Acos returns the arc cosine of x, atan(√(1-x²)/x), plus π when x has its
// sign bit set, so that acos(-0) is π/2.
func (e *Engine) Acos(x *decimal.Decimal) (*decimal.Decimal, error) {
	c := e.ctx.ClearStatus()
	neg := x.Signbit()
	z := c.Mul(c.New(), x, x)
	c.Sub(z, one, z)
	c.Sqrt(z, z)
	c.Quo(z, z, x)
	return e.atan(z, neg), nil
}
