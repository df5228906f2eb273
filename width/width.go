// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package width implements conversions between the raw bit containers used in
// integer mode and their signed or unsigned interpretations.
//
// Integer values are always held in a uint64 masked to the current width: at
// 8 bits, -1 is held as 0xff.
package width

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// A Width is the size of an integer container.
type Width uint8

// Supported widths.
const (
	W8 Width = iota
	W16
	W32
	W64
)

var bits = [...]uint{8, 16, 32, 64}

// ErrWidth is returned by ParseWidth for unsupported widths.
var ErrWidth = errors.New("invalid integer width")

// Bits returns the number of bits in w.
func (w Width) Bits() uint {
	if !w.Valid() {
		return 64
	}
	return bits[w]
}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	return w <= W64
}

func (w Width) String() string {
	return strconv.Itoa(int(w.Bits()))
}

// ParseWidth parses a width given in bits.
func ParseWidth(s string) (Width, error) {
	switch strings.TrimSpace(s) {
	case "8":
		return W8, nil
	case "16":
		return W16, nil
	case "32":
		return W32, nil
	case "64":
		return W64, nil
	}
	return W64, ErrWidth
}

// Mask returns x truncated to w bits.
func Mask(x uint64, w Width) uint64 {
	if n := w.Bits(); n < 64 {
		return x & (1<<n - 1)
	}
	return x
}

// Signed returns the masked container x sign extended from w bits.
func Signed(x uint64, w Width) int64 {
	switch w {
	case W8:
		return int64(int8(x))
	case W16:
		return int64(int16(x))
	case W32:
		return int64(int32(x))
	}
	return int64(x)
}

// InSignedRange reports whether x fits in a signed integer of width w.
func InSignedRange(x int64, w Width) bool {
	switch w {
	case W8:
		return x >= math.MinInt8 && x <= math.MaxInt8
	case W16:
		return x >= math.MinInt16 && x <= math.MaxInt16
	case W32:
		return x >= math.MinInt32 && x <= math.MaxInt32
	}
	return true
}

// InUnsignedRange reports whether x fits in an unsigned integer of width w.
func InUnsignedRange(x uint64, w Width) bool {
	return Mask(x, w) == x
}

// Min returns the smallest signed value of width w as a masked container.
func Min(w Width) uint64 {
	return Mask(1<<(w.Bits()-1), w)
}

// MaxSigned returns the largest signed value of width w.
func MaxSigned(w Width) uint64 {
	return 1<<(w.Bits()-1) - 1
}

// MaxUnsigned returns the largest unsigned value of width w.
func MaxUnsigned(w Width) uint64 {
	return Mask(math.MaxUint64, w)
}

// IsMin reports whether the signed value x is the smallest value of width w.
func IsMin(x int64, w Width) bool {
	return Mask(uint64(x), w) == Min(w) && InSignedRange(x, w)
}

// Extreme returns the value that an out of range conversion clamps to: for
// unsigned widths, 0 if negative is set and the maximum value otherwise; for
// signed widths, the minimum or maximum value.
func Extreme(w Width, unsigned, negative bool) uint64 {
	switch {
	case unsigned && negative:
		return 0
	case unsigned:
		return MaxUnsigned(w)
	case negative:
		return Min(w)
	}
	return MaxSigned(w)
}

// ParseEntry converts the decimal digits s typed by the user into a container
// of width w. It returns false if s is not a valid number or does not fit in
// w, in which case the returned value is 0 and callers usually retry with the
// last digit removed.
func ParseEntry(s string, w Width, unsigned bool) (uint64, bool) {
	if unsigned {
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil || !InUnsignedRange(u, w) {
			return 0, false
		}
		return u, true
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil || !InSignedRange(i, w) {
		return 0, false
	}
	return Mask(uint64(i), w), true
}

// Parse converts the pasted text s in the given base (10 or 16) into a
// container of width w. Hexadecimal text may carry a 0x prefix, and digits
// may be separated by underscores. A leading '-' denotes a negative value.
//
// If s is out of range, Parse returns false together with the clamped
// extreme value of the width (see Extreme). If s is not a number at all, it
// returns 0, false.
func Parse(s string, base int, w Width, unsigned bool) (uint64, bool) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if base == 16 {
		if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
			s = s[2:]
		}
	} else {
		base = 10
	}
	s = strings.ReplaceAll(s, "_", "")

	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Extreme(w, unsigned, neg), false
		}
		return 0, false
	}
	switch {
	case neg && unsigned:
		if u == 0 {
			return 0, true
		}
		return 0, false
	case neg:
		if u > 1<<63 {
			return Extreme(w, false, true), false
		}
		i := -int64(u)
		if !InSignedRange(i, w) {
			return Extreme(w, false, true), false
		}
		return Mask(uint64(i), w), true
	case unsigned:
		if !InUnsignedRange(u, w) {
			return Extreme(w, true, false), false
		}
	default:
		if u > math.MaxInt64 || !InSignedRange(int64(u), w) {
			return Extreme(w, false, false), false
		}
	}
	return u, true
}

// Changed returns the smallest width at or above current that can represent
// the value u. If negative is set, u holds a negative int64, otherwise an
// unsigned value: a value between math.MinInt8 and math.MaxUint8 requires 8
// bits and so on.
func Changed(u uint64, negative bool, current Width) Width {
	need := W64
	for w := W8; w < W64; w++ {
		if negative && InSignedRange(int64(u), w) || !negative && InUnsignedRange(u, w) {
			need = w
			break
		}
	}
	if need > current {
		return need
	}
	return current
}

// BestInteger converts the text of a displayed decimal value into an integer
// container of width w, truncating any fractional part. It is used when
// switching from decimal to integer mode so that a value displayed as 80 but
// held as 79.99999... converts to 80.
//
// Text starting with 0, NaN and negative exponents convert to 0. Out of range
// values convert to the width's extreme value and BestInteger returns false.
// A negative value converted to an unsigned integer yields 0, false.
func BestInteger(text string, w Width, unsigned bool) (uint64, bool) {
	s := strings.TrimSpace(text)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if neg && unsigned {
		return 0, false
	}
	if strings.HasPrefix(s, "0") {
		return 0, true
	}
	ls := strings.ToLower(s)
	switch {
	case strings.Contains(ls, "nan"):
		return 0, true
	case strings.Contains(ls, "inf"):
		return Extreme(w, unsigned, neg), false
	}

	mant, exp := ls, 0
	if i := strings.IndexByte(ls, 'e'); i >= 0 {
		e, err := strconv.Atoi(ls[i+1:])
		if err != nil {
			return 0, false
		}
		if e < 0 {
			return 0, true
		}
		if unsigned && e > 19 || !unsigned && e > 18 {
			return Extreme(w, unsigned, neg), false
		}
		mant, exp = ls[:i], e
	}

	// integer digits of mant×10**exp
	point := strings.IndexByte(mant, '.')
	if point < 0 {
		point = len(mant)
	}
	digits := strings.Replace(mant, ".", "", 1)
	n := point + exp
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if n <= len(digits) {
		b.WriteString(digits[:n])
	} else {
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", n-len(digits)))
	}
	return parseClamped(b.String(), w, unsigned)
}

// parseClamped parses the decimal integer s into a container of width w,
// clamping out of range values.
func parseClamped(s string, w Width, unsigned bool) (uint64, bool) {
	neg := strings.HasPrefix(s, "-")
	if unsigned {
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil || !InUnsignedRange(u, w) {
			return Extreme(w, true, neg), false
		}
		return u, true
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil || !InSignedRange(i, w) {
		return Extreme(w, false, neg), false
	}
	return Mask(uint64(i), w), true
}
