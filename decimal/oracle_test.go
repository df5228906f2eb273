package decimal

import (
	"math/rand"
	"testing"

	sd "github.com/shopspring/decimal"
)

// fromShop converts a shopspring decimal with the given precision and
// rounding to nearest even.
func fromShop(t *testing.T, d sd.Decimal, prec uint) *Decimal {
	t.Helper()
	z, _, err := ParseDecimal(d.String(), 10, prec, ToNearestEven)
	if err != nil {
		t.Fatalf("parse %s: %v", d.String(), err)
	}
	return z
}

func randPair(r *rand.Rand, maxCoeff int64, maxExp int) (*Decimal, sd.Decimal) {
	c := r.Int63n(maxCoeff) + 1
	if r.Intn(2) == 0 {
		c = -c
	}
	e := r.Intn(2*maxExp+1) - maxExp
	return NewDecimal(c, e), sd.New(c, int32(e))
}

func TestDecimalShopspringExact(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x, sx := randPair(r, 1e15, 20)
		y, sy := randPair(r, 1e15, 20)
		for _, op := range []struct {
			name string
			got  *Decimal
			want sd.Decimal
		}{
			{"+", new(Decimal).SetPrec(100).Add(x, y), sx.Add(sy)},
			{"-", new(Decimal).SetPrec(100).Sub(x, y), sx.Sub(sy)},
			{"*", new(Decimal).SetPrec(100).Mul(x, y), sx.Mul(sy)},
		} {
			want := fromShop(t, op.want, 100)
			if op.got.Cmp(want) != 0 || op.got.Acc() != Exact {
				t.Fatalf("%s %s %s = %s (%s); want %s", x, op.name, y, op.got.Text('g', -1), op.got.Acc(), op.want)
			}
		}
	}
}

func TestDecimalShopspringQuo(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x, sx := randPair(r, 1e12, 5)
		y, sy := randPair(r, 1e12, 5)
		got := new(Decimal).SetPrec(DefaultDecimalPrec).Quo(x, y)
		want := fromShop(t, sx.DivRound(sy, 80), DefaultDecimalPrec)
		if got.Cmp(want) != 0 {
			t.Fatalf("%s / %s = %s; want %s", x, y, got.Text('g', -1), want.Text('g', -1))
		}
	}
}

func TestDecimalShopspringRem(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		x, sx := randPair(r, 1e12, 5)
		y, sy := randPair(r, 1e12, 5)
		got := new(Decimal).SetPrec(DefaultDecimalPrec).Rem(x, y)
		want := fromShop(t, sx.Mod(sy), DefaultDecimalPrec)
		if got.Cmp(want) != 0 {
			t.Fatalf("%s rem %s = %s; want %s", x, y, got.Text('g', -1), want.Text('g', -1))
		}
	}
}
