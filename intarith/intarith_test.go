package intarith_test

import (
	"errors"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/db47h/progcalc/intarith"
	"github.com/db47h/progcalc/width"
)

var widths = [...]width.Width{width.W8, width.W16, width.W32, width.W64}

// bigOf returns the mathematical value held in the container x.
func bigOf(x uint64, c intarith.Config) *big.Int {
	if c.Unsigned {
		return new(big.Int).SetUint64(x)
	}
	return big.NewInt(width.Signed(x, c.Width))
}

// wrap returns z mod 2**bits.
func wrap(z *big.Int, bits uint) uint64 {
	m := new(big.Int).Lsh(big.NewInt(1), bits)
	z.Mod(z, m)
	return z.Uint64()
}

// fits reports whether z is representable with c's width and signedness.
func fits(z *big.Int, c intarith.Config) bool {
	if c.Unsigned {
		return z.Sign() >= 0 && z.BitLen() <= int(c.Width.Bits())
	}
	lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), c.Width.Bits()-1))
	hi := new(big.Int).Sub(new(big.Int).Neg(lo), big.NewInt(1))
	return z.Cmp(lo) >= 0 && z.Cmp(hi) <= 0
}

func TestWrap(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	ops := []struct {
		name string
		f    intarith.BinaryFunc
		g    func(z, x, y *big.Int) *big.Int
	}{
		{"add", intarith.Config.Add, (*big.Int).Add},
		{"sub", intarith.Config.Sub, (*big.Int).Sub},
		{"mul", intarith.Config.Mul, (*big.Int).Mul},
	}
	for _, w := range widths {
		for _, unsigned := range []bool{false, true} {
			c := intarith.Config{Width: w, Unsigned: unsigned, WarnSigned: true, WarnUnsigned: true}
			for _, op := range ops {
				for i := 0; i < 2000; i++ {
					x := width.Mask(rnd.Uint64(), w)
					y := width.Mask(rnd.Uint64(), w)
					if i%4 == 0 {
						// small values, mostly without overflow
						y = width.Mask(uint64(rnd.Intn(7)-3), w)
					}
					got, err := op.f(c, x, y)
					want := op.g(new(big.Int), bigOf(x, c), bigOf(y, c))
					ok := fits(want, c)
					if got != wrap(want, w.Bits()) {
						t.Fatalf("%s %s unsigned=%v: %#x, %#x\nGot : %#x\nWant: %#x", op.name, w, unsigned, x, y, got, wrap(want, w.Bits()))
					}
					if (err == nil) != ok {
						t.Fatalf("%s %s unsigned=%v: %#x, %#x: overflow %v, error %v", op.name, w, unsigned, x, y, !ok, err)
					}
				}
			}
		}
	}
}

func TestWarnGating(t *testing.T) {
	c := intarith.Config{Width: width.W8}
	if r, err := c.Add(0x7f, 1); r != 0x80 || err != nil {
		t.Fatalf("signed add without warning: %#x, %v", r, err)
	}
	c.WarnSigned = true
	if r, err := c.Add(0x7f, 1); r != 0x80 || !errors.Is(err, intarith.ErrSignedOverflow) {
		t.Fatalf("signed add with warning: %#x, %v", r, err)
	}
	c.Unsigned = true
	if r, err := c.Add(0xff, 1); r != 0 || err != nil {
		t.Fatalf("unsigned add without warning: %#x, %v", r, err)
	}
	c.WarnUnsigned = true
	if r, err := c.Add(0xff, 1); r != 0 || !errors.Is(err, intarith.ErrUnsignedOverflow) {
		t.Fatalf("unsigned add with warning: %#x, %v", r, err)
	}
}

func TestDivideByZero(t *testing.T) {
	for _, w := range widths {
		for _, unsigned := range []bool{false, true} {
			// never gated by the warning flags
			c := intarith.Config{Width: w, Unsigned: unsigned}
			for _, f := range []intarith.BinaryFunc{intarith.Config.Div, intarith.Config.Mod} {
				r, err := f(c, width.MaxUnsigned(w), 0)
				if r != 0 || err != intarith.ErrDivideByZero {
					t.Fatalf("%s unsigned=%v: got %#x, %v", w, unsigned, r, err)
				}
			}
		}
	}
}

func TestUnary(t *testing.T) {
	s8 := intarith.Config{Width: width.W8, WarnSigned: true, WarnUnsigned: true}
	u8 := intarith.Config{Width: width.W8, Unsigned: true, WarnSigned: true, WarnUnsigned: true}
	s64 := intarith.Config{Width: width.W64, WarnSigned: true}
	u16 := intarith.Config{Width: width.W16, Unsigned: true}
	for _, test := range []struct {
		name string
		c    intarith.Config
		f    intarith.UnaryFunc
		x    uint64
		want uint64
		err  error
	}{
		{"neg", s8, intarith.Config.Negate, 1, 0xff, nil},
		{"neg", s8, intarith.Config.Negate, 0xff, 1, nil},
		{"neg", s8, intarith.Config.Negate, 0x80, 0x80, intarith.ErrSignedOverflow},
		{"neg", u8, intarith.Config.Negate, 1, 0xff, nil},
		{"neg", s64, intarith.Config.Negate, 1 << 63, 1 << 63, intarith.ErrSignedOverflow},
		{"cpl", s8, intarith.Config.Complement, 0x0f, 0xf0, nil},
		{"cpl", s64, intarith.Config.Complement, 0, math.MaxUint64, nil},
		{"sqr", s8, intarith.Config.Square, 11, 121, nil},
		{"sqr", s8, intarith.Config.Square, 12, 144, intarith.ErrSignedOverflow},
		{"sqr", u8, intarith.Config.Square, 0xff, 1, intarith.ErrUnsignedOverflow},
		{"shl1", s8, intarith.Config.ShiftLeft1, 0xc1, 0x82, nil},
		{"shr1", s8, intarith.Config.ShiftRight1, 0x82, 0xc1, nil},
		{"shr1", u8, intarith.Config.ShiftRight1, 0x82, 0x41, nil},
		{"shr1", s64, intarith.Config.ShiftRight1, 1 << 63, 3 << 62, nil},
		{"rol1", u8, intarith.Config.RotateLeft1, 0x81, 0x03, nil},
		{"ror1", u8, intarith.Config.RotateRight1, 0x81, 0xc0, nil},
		{"rol1", u16, intarith.Config.RotateLeft1, 0x8000, 1, nil},
		{"ror1", s64, intarith.Config.RotateRight1, 1, 1 << 63, nil},
	} {
		got, err := test.f(test.c, test.x)
		if got != test.want || err != test.err {
			t.Errorf("%s(%#x) at %s unsigned=%v\nGot : %#x, %v\nWant: %#x, %v", test.name, test.x, test.c.Width, test.c.Unsigned, got, err, test.want, test.err)
		}
	}
}

func TestBinary(t *testing.T) {
	s8 := intarith.Config{Width: width.W8, WarnSigned: true, WarnUnsigned: true}
	u8 := intarith.Config{Width: width.W8, Unsigned: true, WarnSigned: true, WarnUnsigned: true}
	s32 := intarith.Config{Width: width.W32, WarnSigned: true}
	s64 := intarith.Config{Width: width.W64, WarnSigned: true}
	u64 := intarith.Config{Width: width.W64, Unsigned: true, WarnUnsigned: true}
	m1 := uint64(math.MaxUint64)
	for _, test := range []struct {
		name string
		c    intarith.Config
		f    intarith.BinaryFunc
		x, y uint64
		want uint64
		err  error
	}{
		{"div", s8, intarith.Config.Div, 0xf9, 2, 0xfd, nil}, // -7 / 2 = -3
		{"div", s8, intarith.Config.Div, 0x80, 0xff, 0x80, intarith.ErrSignedOverflow},
		{"div", s8, intarith.Config.Div, 0x80, 0xfe, 0x40, nil},
		{"div", u8, intarith.Config.Div, 0xf9, 2, 0x7c, nil},
		{"div", s64, intarith.Config.Div, 1 << 63, m1, 1 << 63, intarith.ErrSignedOverflow},
		{"mod", s8, intarith.Config.Mod, 0xf9, 2, 0xff, nil}, // -7 % 2 = -1
		{"mod", s8, intarith.Config.Mod, 7, 0xfe, 1, nil},
		{"mod", s8, intarith.Config.Mod, 0x80, 0xff, 0, nil},
		{"mod", s64, intarith.Config.Mod, 1 << 63, m1, 0, nil},
		{"mod", u8, intarith.Config.Mod, 0xf9, 10, 9, nil},
		{"gcd", u8, intarith.Config.Gcd, 12, 18, 6, nil},
		{"gcd", u8, intarith.Config.Gcd, 0, 18, 18, nil},
		{"gcd", s8, intarith.Config.Gcd, 0xf4, 18, 6, nil}, // gcd(-12, 18)
		{"gcd", s8, intarith.Config.Gcd, 0x80, 0xff, 0xff, nil},
		{"gcd", s64, intarith.Config.Gcd, 1 << 63, m1, m1, nil},
		{"gcd", s64, intarith.Config.Gcd, m1, 1 << 63, m1, nil},
		{"gcd", u64, intarith.Config.Gcd, 1 << 63, 6, 2, nil},
		{"and", s8, intarith.Config.And, 0xf0, 0x3c, 0x30, nil},
		{"or", s8, intarith.Config.Or, 0xf0, 0x0c, 0xfc, nil},
		{"xor", s8, intarith.Config.Xor, 0xff, 0x0f, 0xf0, nil},
		{"shl", s8, intarith.Config.ShiftLeft, 0x81, 1, 0x02, nil},
		{"shl", s8, intarith.Config.ShiftLeft, 0x81, 7, 0x80, nil},
		{"shl", s8, intarith.Config.ShiftLeft, 0x81, 8, 0x81, intarith.ErrShiftRange},
		{"shl", s64, intarith.Config.ShiftLeft, 3, 64, 3, intarith.ErrShiftRange},
		{"shl", s64, intarith.Config.ShiftLeft, 3, m1, 3, intarith.ErrShiftRange},
		{"shr", s8, intarith.Config.ShiftRight, 0x80, 7, 0xff, nil},
		{"shr", u8, intarith.Config.ShiftRight, 0x80, 7, 0x01, nil},
		{"shr", s32, intarith.Config.ShiftRight, 0x8000_0000, 32, 0x8000_0000, intarith.ErrShiftRange},
		{"shr", s32, intarith.Config.ShiftRight, 0x8000_0000, 31, 0xffff_ffff, nil},
		{"add", s64, intarith.Config.Add, math.MaxInt64, 1, 1 << 63, intarith.ErrSignedOverflow},
		{"sub", s64, intarith.Config.Sub, 1 << 63, 1, math.MaxInt64, intarith.ErrSignedOverflow},
		{"sub", u64, intarith.Config.Sub, 0, 1, m1, intarith.ErrUnsignedOverflow},
		{"mul", u64, intarith.Config.Mul, 1 << 32, 1 << 32, 0, intarith.ErrUnsignedOverflow},
		{"mul", s64, intarith.Config.Mul, 1 << 63, m1, 1 << 63, intarith.ErrSignedOverflow},
	} {
		got, err := test.f(test.c, test.x, test.y)
		if got != test.want || err != test.err {
			t.Errorf("%s(%#x, %#x) at %s unsigned=%v\nGot : %#x, %v\nWant: %#x, %v", test.name, test.x, test.y, test.c.Width, test.c.Unsigned, got, err, test.want, test.err)
		}
	}
}

func TestShiftRange(t *testing.T) {
	for _, w := range widths {
		c := intarith.Config{Width: w}
		x := width.Mask(0xdead_beef_cafe_f00d, w)
		for _, n := range []uint64{uint64(w.Bits()), uint64(w.Bits()) + 1, 1000} {
			for _, f := range []intarith.BinaryFunc{intarith.Config.ShiftLeft, intarith.Config.ShiftRight} {
				if r, err := f(c, x, n); r != x || err != intarith.ErrShiftRange {
					t.Fatalf("shift %#x by %d at %s: got %#x, %v", x, n, w, r, err)
				}
			}
		}
	}
}

func BenchmarkMul64(b *testing.B) {
	c := intarith.Config{Width: width.W64, WarnSigned: true}
	for i := 0; i < b.N; i++ {
		_, _ = c.Mul(uint64(i), 0x1234_5678_9abc)
	}
}
