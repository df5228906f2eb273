package decimal

import (
	"fmt"
	"math"
	"math/big"
)

const debugDecimal = false

// A nonzero finite Decimal represents a multi-precision decimal floating point
// number
//
//	sign × 0.mantissa × 10**exponent
//
// with 0.1 <= mantissa < 1.0, and MinExp <= exponent <= MaxExp. A Decimal may
// also be zero (+0, -0), infinite (+Inf, -Inf) or not-a-number (NaN).
//
// Each Decimal value also has a precision, rounding mode, and accuracy. The
// precision is the maximum number of decimal digits available to represent
// the value. The rounding mode specifies how a result should be rounded to
// fit into the mantissa digits, and accuracy describes the rounding error with
// respect to the exact result.
//
// Unless specified otherwise, all operations (including setters) that specify
// a *Decimal variable for the result (usually via the receiver) round the
// numeric result according to the precision and rounding mode of the result
// variable.
//
// If the provided result precision is 0 (see below), it is set to the
// precision of the argument with the largest precision value before any
// rounding takes place, and the rounding mode remains unchanged. Thus,
// uninitialized Decimals provided as result arguments will have their
// precision set to a reasonable value determined by the operands, and their
// mode is the zero value for RoundingMode (ToNearestEven).
//
// Operations that have no defined result under IEEE 754 rules, such as 0/0 or
// ∞-∞, set the result to NaN. A NaN operand always produces a NaN result.
//
// The zero (uninitialized) value for a Decimal is ready to use and represents
// the number +0.0 exactly, with precision 0 and rounding mode ToNearestEven.
//
// Operations always take pointer arguments (*Decimal) rather than Decimal
// values, and each unique Decimal value requires its own unique *Decimal
// pointer. To "copy" a Decimal value, an existing (or newly allocated) Decimal
// must be set to a new value using the Decimal.Set method; shallow copies of
// Decimals are not supported and may lead to errors.
type Decimal struct {
	mant big.Int
	exp  int32
	prec uint32
	dig  uint32
	mode RoundingMode
	acc  Accuracy
	form form
	neg  bool
}

// NewDecimal allocates and returns a new Decimal set to mant × 10**exp, with
// precision DefaultDecimalPrec and rounding mode ToNearestEven.
func NewDecimal(mant int64, exp int) *Decimal {
	z := new(Decimal).SetInt64(mant)
	return z.SetMantExp(z, exp)
}

// Abs sets z to the (possibly rounded) value |x| (the absolute value of x)
// and returns z.
func (z *Decimal) Abs(x *Decimal) *Decimal {
	z.Set(x)
	z.neg = false
	return z
}

// Acc returns the accuracy of x produced by the most recent operation.
func (x *Decimal) Acc() Accuracy {
	return x.acc
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y (incl. -0 == 0, -Inf == -Inf, and +Inf == +Inf)
//	+1 if x >  y
//
// NaN compares equal to NaN and greater than any other value.
func (x *Decimal) Cmp(y *Decimal) int {
	if debugDecimal {
		x.validate()
		y.validate()
	}
	if x.form == nan || y.form == nan {
		return cmpNaN(x, y)
	}

	mx := x.ord()
	my := y.ord()
	switch {
	case mx < my:
		return -1
	case mx > my:
		return +1
	}
	// mx == my

	// only if |mx| == 1 we have to compare the mantissae
	switch mx {
	case -1:
		return y.ucmp(x)
	case +1:
		return x.ucmp(y)
	}

	return 0
}

// CmpAbs compares the absolute values of x and y and returns:
//
//	-1 if |x| <  |y|
//	 0 if |x| == |y|
//	+1 if |x| >  |y|
//
// NaN is ordered as in Cmp.
func (x *Decimal) CmpAbs(y *Decimal) int {
	if x.form == nan || y.form == nan {
		return cmpNaN(x, y)
	}
	switch {
	case x.form < y.form:
		return -1
	case x.form > y.form:
		return +1
	case x.form == finite:
		return x.ucmp(y)
	}
	return 0
}

func cmpNaN(x, y *Decimal) int {
	switch {
	case x.form == y.form:
		return 0
	case x.form == nan:
		return +1
	}
	return -1
}

// ord classifies x and returns:
//
//	-2 if -Inf == x
//	-1 if -Inf < x < 0
//	 0 if x == 0 (signed or unsigned)
//	+1 if 0 < x < +Inf
//	+2 if x == +Inf
func (x *Decimal) ord() int {
	var m int
	switch x.form {
	case finite:
		m = 1
	case zero:
		return 0
	case inf:
		m = 2
	}
	if x.neg {
		return -m
	}
	return m
}

// ucmp returns -1, 0, or +1, depending on whether
// |x| < |y|, |x| == |y|, or |x| > |y|.
// x and y must have a non-empty mantissa and valid exponent.
func (x *Decimal) ucmp(y *Decimal) int {
	switch {
	case x.exp < y.exp:
		return -1
	case x.exp > y.exp:
		return +1
	}
	// x.exp == y.exp: align the coefficients on their most significant digit.
	var t big.Int
	switch {
	case x.dig < y.dig:
		return shl10(&t, &x.mant, uint(y.dig-x.dig)).Cmp(&y.mant)
	case x.dig > y.dig:
		return x.mant.Cmp(shl10(&t, &y.mant, uint(x.dig-y.dig)))
	}
	return x.mant.Cmp(&y.mant)
}

// Copy sets z to x, with the same precision, rounding mode, and accuracy as x.
// Copy returns z. If x and z are identical, Copy is a no-op.
func (z *Decimal) Copy(x *Decimal) *Decimal {
	if debugDecimal {
		x.validate()
	}
	if z != x {
		z.prec = x.prec
		z.mode = x.mode
		z.acc = x.acc
		z.form = x.form
		z.neg = x.neg
		if z.form == finite {
			z.mant.Set(&x.mant)
			z.exp = x.exp
			z.dig = x.dig
		}
	}
	return z
}

// Int returns the result of truncating x towards zero; or nil if x is an
// infinity or NaN. The result is Exact if x.IsInt(); otherwise it is Below for
// x > 0, and Above for x < 0. If a non-nil *big.Int argument z is provided,
// Int stores the result in z instead of allocating a new big.Int.
func (x *Decimal) Int(z *big.Int) (*big.Int, Accuracy) {
	if debugDecimal {
		x.validate()
	}
	if z == nil && x.form <= finite {
		z = new(big.Int)
	}
	switch x.form {
	case finite:
		acc := makeAcc(x.neg)
		q := int64(x.exp) - int64(x.dig)
		switch {
		case q >= 0:
			shl10(z, &x.mant, uint(q))
			acc = Exact
		case x.exp <= 0:
			z.SetInt64(0)
		default:
			z.Quo(&x.mant, pow10(uint(-q)))
		}
		if x.neg {
			z.Neg(z)
		}
		return z, acc
	case zero:
		return z.SetInt64(0), Exact
	case inf:
		return nil, makeAcc(x.neg)
	}
	return nil, Exact
}

// Int64 returns the integer resulting from truncating x towards zero. If
// math.MinInt64 <= x <= math.MaxInt64, the result is Exact if x is an integer,
// and Above (x < 0) or Below (x > 0) otherwise. The result is (math.MinInt64,
// Above) for x < math.MinInt64, and (math.MaxInt64, Below) for x >
// math.MaxInt64. A NaN yields (0, Exact).
func (x *Decimal) Int64() (int64, Accuracy) {
	switch x.form {
	case finite:
		if x.exp <= 19 {
			i, acc := x.Int(nil)
			if i.IsInt64() {
				return i.Int64(), acc
			}
		}
		fallthrough
	case inf:
		if x.neg {
			return math.MinInt64, Above
		}
		return math.MaxInt64, Below
	}
	return 0, Exact
}

// Uint64 returns the unsigned integer resulting from truncating x towards
// zero. If 0 <= x <= math.MaxUint64, the result is Exact if x is an integer and
// Below otherwise. The result is (0, Above) for x < 0, and (math.MaxUint64,
// Below) for x > math.MaxUint64. A NaN yields (0, Exact).
func (x *Decimal) Uint64() (uint64, Accuracy) {
	switch x.form {
	case finite:
		if x.neg {
			return 0, Above
		}
		if x.exp <= 20 {
			i, acc := x.Int(nil)
			if i.IsUint64() {
				return i.Uint64(), acc
			}
		}
		return math.MaxUint64, Below
	case inf:
		if x.neg {
			return 0, Above
		}
		return math.MaxUint64, Below
	}
	return 0, Exact
}

// IsInf reports whether x is +Inf or -Inf.
func (x *Decimal) IsInf() bool {
	return x.form == inf
}

// IsNaN reports whether x is a NaN.
func (x *Decimal) IsNaN() bool {
	return x.form == nan
}

// IsZero reports whether x is +0 or -0.
func (x *Decimal) IsZero() bool {
	return x.form == zero
}

// IsInt reports whether x is an integer.
// ±Inf and NaN values are not integers.
func (x *Decimal) IsInt() bool {
	if debugDecimal {
		x.validate()
	}
	switch x.form {
	case zero:
		return true
	case finite:
		return int64(x.exp) >= int64(x.dig)
	}
	return false
}

// MantExp breaks x into its mantissa and exponent components and returns the
// exponent. If a non-nil mant argument is provided its value is set to the
// mantissa of x, with the same precision and rounding mode as x. The
// components satisfy x == mant × 10**exp, with 0.1 <= |mant| < 1.0. Calling
// MantExp with a nil argument is an efficient way to get the exponent of the
// receiver.
//
// Special cases are:
//
//	(  ±0).MantExp(mant) = 0, with mant set to   ±0
//	(±Inf).MantExp(mant) = 0, with mant set to ±Inf
//	( NaN).MantExp(mant) = 0, with mant set to  NaN
//
// x and mant may be the same in which case x is set to its mantissa value.
func (x *Decimal) MantExp(mant *Decimal) (exp int) {
	if debugDecimal {
		x.validate()
	}
	if x.form == finite {
		exp = int(x.exp)
	}
	if mant != nil {
		mant.Set(x)
		if mant.form == finite {
			mant.exp = 0
		}
	}
	return
}

// MinPrec returns the minimum precision required to represent x exactly
// (i.e., the smallest prec before x.SetPrec(prec) would start rounding x).
// The result is 0 for |x| == 0, |x| == Inf and NaN.
func (x *Decimal) MinPrec() uint {
	if x.form != finite {
		return 0
	}
	return uint(x.dig)
}

// Mode returns the rounding mode of x.
func (x *Decimal) Mode() RoundingMode {
	return x.mode
}

// Neg sets z to the (possibly rounded) value of x with its sign negated,
// and returns z.
func (z *Decimal) Neg(x *Decimal) *Decimal {
	z.Set(x)
	if z.form != nan {
		z.neg = !z.neg
	}
	return z
}

// Prec returns the mantissa precision of x in decimal digits.
// The result may be 0 for |x| == 0 and |x| == Inf.
func (x *Decimal) Prec() uint {
	return uint(x.prec)
}

// RoundToInt sets z to x rounded to an integral value according to mode, and
// returns z. The result is then rounded to z's precision using z's rounding
// mode. If z's precision is 0, it is changed to x's precision.
func (z *Decimal) RoundToInt(x *Decimal, mode RoundingMode) *Decimal {
	if z.prec == 0 {
		z.prec = x.prec
	}
	if x.form != finite || x.IsInt() {
		return z.Set(x)
	}
	var (
		c            big.Int
		inc, inexact bool
		neg          = x.neg
	)
	if x.exp < 0 {
		// |x| < 0.1: the rounding digit is 0
		inc, inexact = roundCoeff(&c, &c, 0, mode, neg, true)
	} else {
		inc, inexact = roundCoeff(&c, &x.mant, uint(int64(x.dig)-int64(x.exp)), mode, neg, false)
	}
	z.setCoeff(neg, &c, 0, false)
	if inexact && z.acc == Exact {
		z.acc = makeAcc(inc != neg)
	}
	return z
}

// Set sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to the precision of x
// before setting z (and rounding will have no effect).
// Rounding is performed according to z's precision and rounding
// mode; and z's accuracy reports the result error relative to the
// exact (not rounded) result.
func (z *Decimal) Set(x *Decimal) *Decimal {
	if debugDecimal {
		x.validate()
	}
	z.acc = Exact
	if z != x {
		z.form = x.form
		z.neg = x.neg
		if x.form == finite {
			z.exp = x.exp
			z.dig = x.dig
			z.mant.Set(&x.mant)
		}
		if z.prec == 0 {
			z.prec = x.prec
		} else if z.form == finite && z.dig > z.prec {
			z.round()
		}
	}
	return z
}

// SetInf sets z to the infinite Decimal -Inf if signbit is
// set, or +Inf if signbit is not set, and returns z. The
// precision of z is unchanged and the result is always
// Exact.
func (z *Decimal) SetInf(signbit bool) *Decimal {
	z.acc = Exact
	z.form = inf
	z.neg = signbit
	return z
}

// SetNaN sets z to NaN and returns z. The precision of z is unchanged and the
// result is always Exact.
func (z *Decimal) SetNaN() *Decimal {
	z.acc = Exact
	z.form = nan
	z.neg = false
	return z
}

// SetInt64 sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to DefaultDecimalPrec (and rounding
// will have no effect).
func (z *Decimal) SetInt64(x int64) *Decimal {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	return z.setUint64(x < 0, u)
}

// SetUint64 sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to DefaultDecimalPrec (and rounding
// will have no effect).
func (z *Decimal) SetUint64(x uint64) *Decimal {
	return z.setUint64(false, x)
}

func (z *Decimal) setUint64(neg bool, x uint64) *Decimal {
	if z.prec == 0 {
		z.prec = DefaultDecimalPrec
	}
	z.mant.SetUint64(x)
	return z.setCoeff(neg, &z.mant, 0, false)
}

// setCoeff sets z to the value ±c×10**q rounded to z's precision and returns
// z. c must be non-negative and may alias z.mant. sticky reports non-zero
// digits already discarded below the least significant digit of c; in that
// case c should hold at least z.prec+1 digits so that the rounding digit is
// known.
func (z *Decimal) setCoeff(neg bool, c *big.Int, q int64, sticky bool) *Decimal {
	z.acc = Exact
	z.neg = neg
	if c.Sign() == 0 && !sticky {
		z.form = zero
		return z
	}
	prec := uint(z.prec)
	if prec == 0 {
		prec = DefaultDecimalPrec
		z.prec = DefaultDecimalPrec
	}
	var n uint
	if d := digits(c); d > prec {
		n = d - prec
	}
	inc, inexact := roundCoeff(&z.mant, c, n, z.mode, neg, sticky)
	if inexact {
		z.acc = makeAcc(inc != neg)
	}
	if z.mant.Sign() == 0 {
		z.form = zero
		return z
	}
	q += int64(n) + int64(trimZeros(&z.mant))
	z.dig = uint32(digits(&z.mant))
	z.setExp(q + int64(z.dig))
	return z
}

// setExp sets the exponent of a rounded, non-zero z, handling overflow and
// underflow.
func (z *Decimal) setExp(exp int64) {
	if exp < MinExp {
		// underflow
		z.acc = makeAcc(z.neg)
		z.form = zero
		return
	}

	if exp > MaxExp {
		// overflow
		z.acc = makeAcc(!z.neg)
		z.form = inf
		return
	}

	z.form = finite
	z.exp = int32(exp)
}

// SetMantExp sets z to mant × 10**exp and returns z.
// The components satisfy 0.1 <= |mant| < 1.0 when mant is the result of
// MantExp, but any value is accepted:
//
//	z.SetMantExp(  ±0, exp) =   ±0
//	z.SetMantExp(±Inf, exp) = ±Inf
//	z.SetMantExp( NaN, exp) =  NaN
//
// z and mant may be the same in which case z's exponent is set to exp.
func (z *Decimal) SetMantExp(mant *Decimal, exp int) *Decimal {
	if debugDecimal {
		z.validate()
		mant.validate()
	}
	z.Set(mant)
	if z.form != finite {
		return z
	}
	z.setExp(int64(z.exp) + int64(exp))
	return z
}

// SetMode sets z's rounding mode to mode and returns an exact z.
// z remains unchanged otherwise.
// z.SetMode(z.Mode()) is a cheap way to set z's accuracy to Exact.
func (z *Decimal) SetMode(mode RoundingMode) *Decimal {
	z.mode = mode
	z.acc = Exact
	return z
}

// SetPrec sets z's precision to prec and returns the (possibly) rounded
// value of z. Rounding occurs according to z's rounding mode if the mantissa
// cannot be represented in prec digits without loss of precision.
// SetPrec(0) maps all finite values to ±0; infinite and NaN values remain
// unchanged. If prec > MaxPrec, it is set to MaxPrec.
func (z *Decimal) SetPrec(prec uint) *Decimal {
	z.acc = Exact // optimistically assume no rounding is needed

	// special case
	if prec == 0 {
		z.prec = 0
		if z.form == finite {
			// truncate z to 0
			z.acc = makeAcc(z.neg)
			z.form = zero
		}
		return z
	}

	// general case
	if prec > MaxPrec {
		prec = MaxPrec
	}
	z.prec = uint32(prec)
	if z.form == finite && z.dig > z.prec {
		z.round()
	}
	return z
}

// Sign returns:
//
//	-1 if x <   0
//	 0 if x is ±0 or NaN
//	+1 if x >   0
func (x *Decimal) Sign() int {
	if debugDecimal {
		x.validate()
	}
	if x.form == zero || x.form == nan {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// Signbit reports whether x is negative or negative zero.
func (x *Decimal) Signbit() bool {
	return x.neg
}

func (x *Decimal) validate() {
	if !debugDecimal {
		// avoid performance bugs
		panic("validate called but debugDecimal is not set")
	}
	if x.form != finite {
		return
	}
	if x.mant.Sign() <= 0 {
		panic("nonzero finite number with empty or negative mantissa")
	}
	if x.mant.Bit(0) == 0 && trimZeros(new(big.Int).Set(&x.mant)) != 0 {
		panic(fmt.Sprintf("mantissa of %s has trailing zeros", x.Text('e', -1)))
	}
	if d := uint32(digits(&x.mant)); x.dig != d {
		panic(fmt.Sprintf("digit count %d != real digit count %d for %s", x.dig, d, x.Text('e', -1)))
	}
	if x.prec == 0 {
		panic("zero precision finite number")
	}
}

// round rounds z according to z.mode to z.prec digits and sets z.acc accordingly.
//
// CAUTION: The rounding modes ToNegativeInf, ToPositiveInf are affected by the
// sign of z. For correct rounding, the sign of z must be set correctly before
// calling round.
func (z *Decimal) round() {
	if debugDecimal {
		z.validate()
	}
	z.acc = Exact
	if z.form != finite || z.dig <= z.prec {
		return
	}
	z.setCoeff(z.neg, &z.mant, int64(z.exp)-int64(z.dig), false)
}
