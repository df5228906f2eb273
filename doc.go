// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package progcalc implements the evaluation core of a programmer's and
scientific calculator.

Operands and operators are submitted one at a time, as typed on a pocket
calculator. The Calculator keeps a partially evaluated expression on two
bounded stacks, one for operands and one for pending binary operators, and
folds operators as soon as precedence allows:

	10 + 2 * 3 * [6] 4 = [34]

Values in brackets are displayed as the operators are entered.

# Modes

In Integer mode, values are 8, 16, 32 or 64 bit integers, signed or unsigned.
Overflows wrap around and are reported as warnings (see package intarith). In
Decimal mode, values are decimal floating point numbers with 34 significant
digits, and transcendental functions are available (see package decarith).
Operators that make no sense in the current mode, like bitwise operators in
Decimal mode, are silently ignored.

Switching modes evaluates the pending expression and carries the result over
to the other mode after the next Clear.

# Notifications

Every operation returns a Result with the top of stack, warnings, history
entries and parenthesis depth changes. Warnings never leave the calculator in
an undefined state: overflows keep the wrapped result, a division by zero
yields 0, and so on. Operations return an error only on internal faults like
a stack overflow.

# Edge cases

An operator entered right after another binary operator replaces it:

	10 + + - 3 = [7]

A binary operator with no second operand at equals is dropped, or applied to
its first operand if repeated equals are enabled:

	10 + 2 * = [12]    // repeated equals off
	10 + 2 * = [14]    // repeated equals on

With repeated equals, pressing equals again repeats the last operator:

	2 + 3 = [5] = [8] = [11]

A unary operator applied right after a binary operator uses a copy of the
first operand as the second one:

	10 + 2 * sqr [4] sqr [16] = [42]
*/
package progcalc
