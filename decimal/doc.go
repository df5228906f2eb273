// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package decimal implements decimal floating-point numbers with a configurable
number of significant digits.

A Decimal x is the value ±0.c × 10**e where the coefficient c is held as a
big.Int of base 10 digits. Decimal fractions such as 0.1 are represented
exactly and every operation rounds on a decimal digit boundary, to the
precision and rounding mode of its receiver. Precisions are given in decimal
digits: a Decimal with a precision of 34 matches the significand of an IEEE
754-2008 decimal128.

The API mirrors that of *big.Float:

	x := new(Decimal)              // 0, precision set by the first operation
	y := NewDecimal(15, -1)        // 1.5
	z := new(Decimal).SetPrec(34)  // 0 with 34 digits of precision
	z.Quo(NewDecimal(1, 0), y)     // z = 0.6666666666666666666666666666666667

Operations take their operands as arguments and store the result in the
receiver, which is also returned to allow call chaining. Operands may alias
the receiver:

	sum.Add(sum, x)

Unlike big.Float, operations with no defined result, such as 0/0, Inf-Inf or
the square root of a negative number, set the receiver to NaN instead of
panicking. NaNs propagate through subsequent operations. Overflows yield ±Inf
and underflows ±0. The Accuracy of the result reports the direction of the
last rounding.

Decimal values convert from and to strings with SetString, Parse, Text and
the fmt verbs 'e', 'E', 'f', 'F', 'g', 'G' and 'v'. Package context provides
IEEE style contexts that apply a fixed precision, rounding mode and exponent
range to a sequence of operations and record exceptional conditions. Package
math implements elementary functions on top of Decimal.
*/
package decimal
