// Package intarith implements the integer mode operators of the calculator.
//
// All values are passed around as uint64 containers masked to the configured
// width: at 8 bits, a signed -1 is held as 0xff. Every operator masks its
// result. Overflowing operations return the wrapped result together with a
// warning error; overflow is reported, never corrected.
package intarith

import (
	"errors"
	"math"

	"github.com/db47h/progcalc/width"
)

// Warnings returned by the operators. The returned value is always usable.
var (
	ErrSignedOverflow   = errors.New("Signed Integer Overflow")
	ErrUnsignedOverflow = errors.New("Unsigned Integer Overflow")
	ErrShiftRange       = errors.New("Shift Out of Range")
	ErrDivideByZero     = errors.New("Divide by 0")
)

// A Config holds the width and signedness the operators work with. The zero
// value is a signed 8 bit configuration without overflow warnings.
type Config struct {
	Width    width.Width
	Unsigned bool
	// WarnSigned and WarnUnsigned enable overflow warnings for signed and
	// unsigned operations respectively.
	WarnSigned   bool
	WarnUnsigned bool
}

// UnaryFunc and BinaryFunc are the signatures of the operators as method
// expressions, e.g. Config.Negate and Config.Add.
type (
	UnaryFunc  func(c Config, x uint64) (uint64, error)
	BinaryFunc func(c Config, x, y uint64) (uint64, error)
)

func (c Config) mask(x uint64) uint64 { return width.Mask(x, c.Width) }

func (c Config) signed(x uint64) int64 { return width.Signed(x, c.Width) }

func (c Config) signedOverflow() error {
	if c.WarnSigned {
		return ErrSignedOverflow
	}
	return nil
}

func (c Config) unsignedOverflow() error {
	if c.WarnUnsigned {
		return ErrUnsignedOverflow
	}
	return nil
}

// overflow returns the overflow warning for c's signedness if ok is false.
func (c Config) overflow(ok bool) error {
	switch {
	case ok:
		return nil
	case c.Unsigned:
		return c.unsignedOverflow()
	}
	return c.signedOverflow()
}

// Negate returns -x. Negating the smallest signed value overflows and
// returns x unchanged.
func (c Config) Negate(x uint64) (uint64, error) {
	if c.Unsigned {
		return c.mask(-x), nil
	}
	s := c.signed(x)
	if width.IsMin(s, c.Width) {
		return x, c.signedOverflow()
	}
	return c.mask(uint64(-s)), nil
}

// Complement returns ^x.
func (c Config) Complement(x uint64) (uint64, error) {
	return c.mask(^x), nil
}

// Square returns x×x.
func (c Config) Square(x uint64) (uint64, error) {
	return c.Mul(x, x)
}

// ShiftLeft1 returns x<<1.
func (c Config) ShiftLeft1(x uint64) (uint64, error) {
	return c.mask(x << 1), nil
}

// ShiftRight1 returns x>>1. The shift is arithmetic for signed values.
func (c Config) ShiftRight1(x uint64) (uint64, error) {
	if c.Unsigned {
		return c.mask(x >> 1), nil
	}
	return c.mask(uint64(c.signed(x) >> 1)), nil
}

// RotateLeft1 rotates x left by one bit within the configured width.
func (c Config) RotateLeft1(x uint64) (uint64, error) {
	rs := c.Width.Bits() - 1
	return c.mask(x<<1 | x>>rs), nil
}

// RotateRight1 rotates x right by one bit within the configured width.
func (c Config) RotateRight1(x uint64) (uint64, error) {
	ls := c.Width.Bits() - 1
	return c.mask(x>>1 | x<<ls), nil
}

// Add returns x+y.
func (c Config) Add(x, y uint64) (uint64, error) {
	if c.Unsigned {
		r := x + y
		var ok bool
		if c.Width < width.W64 {
			ok = width.InUnsignedRange(r, c.Width)
		} else {
			ok = r >= x
		}
		return c.mask(r), c.overflow(ok)
	}
	a, b := c.signed(x), c.signed(y)
	r := a + b
	var ok bool
	if c.Width < width.W64 {
		ok = width.InSignedRange(r, c.Width)
	} else {
		ok = addOK64(a, b)
	}
	return c.mask(uint64(r)), c.overflow(ok)
}

// Sub returns x-y.
func (c Config) Sub(x, y uint64) (uint64, error) {
	if c.Unsigned {
		r := x - y
		var ok bool
		if c.Width < width.W64 {
			ok = width.InUnsignedRange(r, c.Width)
		} else {
			ok = r <= x
		}
		return c.mask(r), c.overflow(ok)
	}
	a, b := c.signed(x), c.signed(y)
	r := a - b
	var ok bool
	if c.Width < width.W64 {
		ok = width.InSignedRange(r, c.Width)
	} else {
		ok = subOK64(a, b)
	}
	return c.mask(uint64(r)), c.overflow(ok)
}

// Mul returns x×y.
func (c Config) Mul(x, y uint64) (uint64, error) {
	if c.Unsigned {
		r := x * y
		var ok bool
		if c.Width < width.W64 {
			// x, y < 2**32 so that r never wraps
			ok = width.InUnsignedRange(r, c.Width)
		} else {
			ok = y == 0 || x == r/y
		}
		return c.mask(r), c.overflow(ok)
	}
	a, b := c.signed(x), c.signed(y)
	r := a * b
	var ok bool
	if c.Width < width.W64 {
		ok = width.InSignedRange(r, c.Width)
	} else {
		ok = mulOK64(a, b)
	}
	return c.mask(uint64(r)), c.overflow(ok)
}

// Div returns the truncated quotient x/y. Division by zero returns 0. The
// signed division of the smallest value by -1 overflows and returns x.
func (c Config) Div(x, y uint64) (uint64, error) {
	if y == 0 {
		return 0, ErrDivideByZero
	}
	if c.Unsigned {
		return c.mask(x / y), nil
	}
	a, b := c.signed(x), c.signed(y)
	if width.IsMin(a, c.Width) && b == -1 {
		return x, c.signedOverflow()
	}
	return c.mask(uint64(a / b)), nil
}

// Mod returns the truncated remainder of x/y, with the sign of x. Division
// by zero returns 0.
func (c Config) Mod(x, y uint64) (uint64, error) {
	if y == 0 {
		return 0, ErrDivideByZero
	}
	if c.Unsigned {
		return c.mask(x % y), nil
	}
	a, b := c.signed(x), c.signed(y)
	if width.IsMin(a, c.Width) && b == -1 {
		return 0, nil
	}
	return c.mask(uint64(a % b)), nil
}

// Gcd returns the greatest common divisor of x and y, computed with Euclid's
// algorithm. For signed values, the sign of the result follows that of the
// truncated remainders.
func (c Config) Gcd(x, y uint64) (uint64, error) {
	if c.Unsigned {
		for y != 0 {
			x, y = y, x%y
		}
		return c.mask(x), nil
	}
	a, b := c.signed(x), c.signed(y)
	if a == math.MinInt64 && b == -1 || a == -1 && b == math.MinInt64 {
		return c.mask(math.MaxUint64), nil
	}
	for b != 0 {
		a, b = b, a%b
	}
	return c.mask(uint64(a)), nil
}

// And returns x&y.
func (c Config) And(x, y uint64) (uint64, error) { return c.mask(x & y), nil }

// Or returns x|y.
func (c Config) Or(x, y uint64) (uint64, error) { return c.mask(x | y), nil }

// Xor returns x^y.
func (c Config) Xor(x, y uint64) (uint64, error) { return c.mask(x ^ y), nil }

// ShiftLeft returns x<<y. If y is not in [0, width), x is returned unchanged
// with ErrShiftRange.
func (c Config) ShiftLeft(x, y uint64) (uint64, error) {
	if y >= uint64(c.Width.Bits()) {
		return x, ErrShiftRange
	}
	return c.mask(x << y), nil
}

// ShiftRight returns x>>y. The shift is arithmetic for signed values. If y is
// not in [0, width), x is returned unchanged with ErrShiftRange.
func (c Config) ShiftRight(x, y uint64) (uint64, error) {
	if y >= uint64(c.Width.Bits()) {
		return x, ErrShiftRange
	}
	if c.Unsigned {
		return c.mask(x >> y), nil
	}
	return c.mask(uint64(c.signed(x) >> y)), nil
}

func addOK64(a, b int64) bool {
	if b > 0 {
		return a <= math.MaxInt64-b
	}
	return a >= math.MinInt64-b
}

func subOK64(a, b int64) bool {
	if b > 0 {
		return a >= math.MinInt64+b
	}
	return a <= math.MaxInt64+b
}

func mulOK64(a, b int64) bool {
	switch {
	case a == 0 || b == 0 || a == 1 || b == 1:
		return true
	case a > 0 && b > 0:
		return a <= math.MaxInt64/b
	case a < 0 && b < 0:
		return a >= math.MaxInt64/b
	case a > 0:
		return b >= math.MinInt64/a
	}
	return a >= math.MinInt64/b
}
