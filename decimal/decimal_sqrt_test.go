// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import (
	"fmt"
	"testing"
)

func TestDecimalSqrt(t *testing.T) {
	for _, test := range []struct {
		prec uint
		x    string
		want string
		acc  Accuracy
	}{
		{9, "2", "1.41421356", Below},
		{9, "0.03125", "0.176776695", Below},
		{9, "123456789", "11111.1111", Above},
		{16, "3", "1.732050807568877", Below},
		{16, "0.5", "0.7071067811865475", Below},
		{16, "10", "3.162277660168379", Below},
		{34, "2", "1.414213562373095048801688724209698", Below},
		{34, "3", "1.732050807568877293527446341505872", Below},
		{34, "0.5", "0.7071067811865475244008443621048490", Below},
		{34, "0.03125", "0.1767766952966368811002110905262123", Above},
		{34, "10", "3.162277660168379331998893544432719", Above},
		{34, "123456789", "11111.11106055555544054166614335347", Above},
		{50, "2", "1.4142135623730950488016887242096980785696718753769", Below},
		{50, "0.03125", "0.17677669529663688110021109052621225982120898442212", Above},

		// exact
		{34, "1.44", "1.2", Exact},
		{34, "4", "2", Exact},
		{9, "1e512", "1e256", Exact},
		{34, "9e-4096", "3e-2048", Exact},
		{50, "4e2048", "2e1024", Exact},
	} {
		x := new(Decimal).SetPrec(test.prec)
		x.Parse(test.x, 10)
		got := new(Decimal).SetPrec(test.prec).Sqrt(x)
		want := new(Decimal).SetPrec(test.prec)
		want.Parse(test.want, 10)
		if got.Cmp(want) != 0 || got.Acc() != test.acc {
			t.Errorf("prec = %d, Sqrt(%s)\nGot : %s (%s)\nWant: %s (%s)",
				test.prec, test.x, got.Text('g', -1), got.Acc(), test.want, test.acc)
		}
	}
}

func TestDecimalSqrtSpecial(t *testing.T) {
	for _, test := range []struct {
		x    string
		want string
	}{
		{"0", "0"},
		{"-0", "-0"},
		{"+Inf", "+Inf"},
		{"-Inf", "NaN"},
		{"-1e-10", "NaN"},
		{"NaN", "NaN"},
	} {
		x := makeDecimal(test.x)
		if got := new(Decimal).Sqrt(x).Text('g', -1); got != test.want {
			t.Errorf("Sqrt(%s)\nGot : %s\nWant: %s", test.x, got, test.want)
		}
	}
}

func BenchmarkDecimalSqrt(b *testing.B) {
	for _, prec := range []uint{16, 34, 100, 1000} {
		x := NewDecimal(2, 0)
		z := new(Decimal).SetPrec(prec)
		b.Run(fmt.Sprint(prec), func(b *testing.B) {
			b.ReportAllocs()
			for n := 0; n < b.N; n++ {
				z.Sqrt(x)
			}
		})
	}
}
