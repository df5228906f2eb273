// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the coefficient helpers used by Decimal. A coefficient
// is a non-negative big.Int holding the decimal digits of a finite value.

package decimal

import (
	"math/big"
	"math/bits"
)

// DigitsPerWord is the number of decimal digits that always fit in a 64 bits
// word. The math routines use it as a default count of guard digits.
const DigitsPerWord = 19

// log10(2)
const log10_2 = 0.30102999566398119521373889472449302676818988146211

var pow10s = [...]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
	10000000000, 100000000000, 1000000000000, 10000000000000, 100000000000000, 1000000000000000,
	10000000000000000, 100000000000000000, 1000000000000000000, 10000000000000000000,
}

var maxDigits = [...]uint{
	1, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4, 4, 5, 5,
	5, 6, 6, 6, 7, 7, 7, 7, 8, 8, 8, 9, 9, 9, 10, 10,
	10, 10, 11, 11, 11, 12, 12, 12, 13, 13, 13, 13, 14, 14, 14, 15,
	15, 15, 16, 16, 16, 16, 17, 17, 17, 18, 18, 18, 19, 19, 19, 20, 20,
}

// mag returns the magnitude of x such that 10**(mag-1) <= x < 10**mag.
// Returns 0 for x == 0.
func mag(x uint64) uint {
	if x == 0 {
		return 0
	}
	d := maxDigits[bits.Len64(x)]
	if x < pow10s[d-1] {
		d--
	}
	return d
}

// bigPow10 caches the first powers of ten. The entries are never modified.
var bigPow10 [128]*big.Int

func init() {
	bigPow10[0] = big.NewInt(1)
	for i := 1; i < len(bigPow10); i++ {
		bigPow10[i] = new(big.Int).Mul(bigPow10[i-1], bigTen)
	}
}

var (
	bigOne    = big.NewInt(1)
	bigTen    = big.NewInt(10)
	bigWordDB = new(big.Int).SetUint64(pow10s[DigitsPerWord])
)

// pow10 returns 10**n. The result must not be modified.
func pow10(n uint) *big.Int {
	if n < uint(len(bigPow10)) {
		return bigPow10[n]
	}
	return new(big.Int).Exp(bigTen, new(big.Int).SetUint64(uint64(n)), nil)
}

// shl10 sets z to x×10**n and returns z.
func shl10(z, x *big.Int, n uint) *big.Int {
	if n == 0 {
		return z.Set(x)
	}
	return z.Mul(x, pow10(n))
}

// digits returns the number of decimal digits of |x|. The result is 0 for x == 0.
func digits(x *big.Int) uint {
	if x.IsUint64() {
		return mag(x.Uint64())
	}
	b := x.BitLen()
	if b == 0 {
		return 0
	}
	// m <= digits <= m+1
	m := uint(float64(b) * log10_2)
	if x.CmpAbs(pow10(m)) >= 0 {
		return m + 1
	}
	return m
}

func decTrailingZeros(n uint64) uint {
	var d uint
	if n%10000000000000000 == 0 {
		n /= 10000000000000000
		d += 16
	}
	if n%100000000 == 0 {
		n /= 100000000
		d += 8
	}
	if n%10000 == 0 {
		n /= 10000
		d += 4
	}
	if n%100 == 0 {
		n /= 100
		d += 2
	}
	if n%10 == 0 {
		d++
	}
	return d
}

// trimZeros removes the trailing decimal zeros of x > 0 and returns their
// count.
func trimZeros(x *big.Int) uint {
	if x.Sign() == 0 || x.Bit(0) != 0 {
		return 0
	}
	var (
		n    uint
		q, r big.Int
	)
	// strip whole words first
	for {
		q.QuoRem(x, bigWordDB, &r)
		if r.Sign() != 0 {
			break
		}
		x.Set(&q)
		n += DigitsPerWord
	}
	// r holds the low order digits of x
	t := decTrailingZeros(r.Uint64())
	if t > 0 {
		x.Quo(x, pow10(t))
		n += t
	}
	return n
}

// roundCoeff sets z to x with its n least significant digits discarded and
// rounded according to mode. neg is the sign of the value x is the coefficient
// of and sticky reports non-zero digits already discarded beyond x. It returns
// whether the magnitude was incremented and whether the result is inexact.
//
// z may alias x.
func roundCoeff(z, x *big.Int, n uint, mode RoundingMode, neg, sticky bool) (inc, inexact bool) {
	var rd uint64 // rounding digit
	if n == 0 {
		z.Set(x)
	} else {
		var r big.Int
		z.QuoRem(x, pow10(n), &r)
		if n > 1 && r.Sign() != 0 {
			var d big.Int
			d.QuoRem(&r, pow10(n-1), &r)
			rd = d.Uint64()
			sticky = sticky || r.Sign() != 0
		} else {
			rd = r.Uint64()
		}
	}
	inexact = rd != 0 || sticky
	if !inexact {
		return false, false
	}
	switch mode {
	case ToNearestEven:
		inc = rd > 5 || (rd == 5 && (sticky || z.Bit(0) != 0))
	case ToNearestAway:
		inc = rd >= 5
	case ToZero:
		// truncate
	case AwayFromZero:
		inc = true
	case ToNegativeInf:
		inc = neg
	case ToPositiveInf:
		inc = !neg
	default:
		panic("unreachable")
	}
	if inc {
		z.Add(z, bigOne)
	}
	return inc, true
}
