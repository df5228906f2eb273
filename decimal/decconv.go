package decimal

import (
	"fmt"
	"io"
	"math/big"
	"strings"
)

var decimalZero Decimal

// SetString sets z to the value of s and returns z and a boolean indicating
// success. s must be a floating-point number of the same format as accepted
// by Parse, with base argument 0. The entire string (not just a prefix) must
// be valid for success. If the operation failed, the value of z is undefined
// but the returned value is nil.
func (z *Decimal) SetString(s string) (*Decimal, bool) {
	if f, _, err := z.Parse(s, 0); err == nil {
		return f, true
	}
	return nil, false
}

// scan is like Parse but reads the longest possible prefix representing a valid
// floating point number from an io.ByteScanner rather than a string. It serves
// as the implementation of Parse. It does not recognize ±Inf or NaN and does
// not expect EOF at the end.
func (z *Decimal) scan(r io.ByteScanner, base int) (f *Decimal, b int, err error) {
	if base != 0 && base != 10 {
		panic(fmt.Sprintf("invalid number base %d", base))
	}
	b = 10

	// sign
	neg, err := scanSign(r)
	if err != nil {
		return nil, b, err
	}

	// mantissa
	var (
		mant     []byte
		count    int  // digit count
		dp       = -1 // position of decimal point
		prev     = '.'
		invalSep bool
		ch       byte
	)
	for ch, err = r.ReadByte(); err == nil; ch, err = r.ReadByte() {
		if ch == '.' && dp < 0 {
			if prev == '_' {
				invalSep = true
			}
			prev = '.'
			dp = count
		} else if ch == '_' && base == 0 {
			if prev != '0' {
				invalSep = true
			}
			prev = '_'
		} else if '0' <= ch && ch <= '9' {
			mant = append(mant, ch)
			prev = '0'
			count++
		} else {
			err = r.UnreadByte() // ch does not belong to number anymore
			break
		}
	}
	if err == io.EOF {
		err = nil
	}
	if err == nil && (invalSep || prev == '_') {
		err = errInvalSep
	}
	if err == nil && count == 0 {
		err = errNoDigits
	}
	if err != nil {
		return nil, b, err
	}

	// exponent
	exp, err := scanExponent(r, base == 0)
	if err != nil {
		return nil, b, err
	}

	// adjust exponent for fraction, if any
	if dp >= 0 {
		exp -= int64(count - dp)
	}

	var c big.Int
	c.SetString(string(mant), 10)
	if z.prec == 0 {
		z.prec = umax32(uint32(digits(&c)), DefaultDecimalPrec)
	}
	return z.setCoeff(neg, &c, exp, false), b, nil
}

// Parse parses s which must contain a text representation of a floating-point
// number with a decimal mantissa and exponent, or a string representing an
// infinite value or a NaN.
//
// For base 0, an underscore character “_” may appear between successive
// digits; such underscores do not change the value of the number. Incorrect
// placement of underscores is reported as an error if there are no other
// errors. If base != 0, underscores are not recognized and thus terminate
// scanning like any other character that is not a valid radix point or digit.
//
// It sets z to the (possibly rounded) value of the corresponding floating-
// point value, and returns z, the actual base b, and an error err, if any. The
// entire string (not just a prefix) must be consumed for success. If z's
// precision is 0, it is changed to fit all digits of the mantissa, and at least
// DefaultDecimalPrec, before rounding takes effect. The number must be of the
// form:
//
//	number    = [ sign ] ( float | "inf" | "infinity" | "nan" ) .
//	sign      = "+" | "-" .
//	float     = mantissa [ exponent ] .
//	mantissa  = digits "." [ digits ] | digits | "." digits .
//	exponent  = ( "e" | "E" ) [ sign ] digits .
//	digits    = digit { [ "_" ] digit } .
//	digit     = "0" ... "9" .
//
// Keywords are matched regardless of case. The base argument must be 0 or 10.
// Providing an invalid base argument will lead to a run-time panic.
//
// The returned *Decimal f is nil and the value of z is valid but not defined if
// an error is reported.
func (z *Decimal) Parse(s string, base int) (f *Decimal, b int, err error) {
	// scan doesn't handle ±Inf and NaN
	if t := strings.TrimLeft(s, "+-"); len(s)-len(t) <= 1 {
		switch {
		case strings.EqualFold(t, "inf") || strings.EqualFold(t, "infinity"):
			return z.SetInf(len(t) < len(s) && s[0] == '-'), 10, nil
		case strings.EqualFold(t, "nan"):
			return z.SetNaN(), 10, nil
		}
	}

	r := strings.NewReader(s)
	if f, b, err = z.scan(r, base); err != nil {
		return
	}

	// entire string must have been consumed
	if ch, err2 := r.ReadByte(); err2 == nil {
		err = fmt.Errorf("expected end of string, found %q", ch)
	} else if err2 != io.EOF {
		err = err2
	}
	if err != nil {
		f = nil
	}
	return
}

// ParseDecimal is like f.Parse(s, base) with f set to the given precision
// and rounding mode.
func ParseDecimal(s string, base int, prec uint, mode RoundingMode) (f *Decimal, b int, err error) {
	return new(Decimal).SetPrec(prec).SetMode(mode).Parse(s, base)
}
