package width_test

import (
	"math"
	"testing"

	"github.com/db47h/progcalc/width"
)

func TestMaskSigned(t *testing.T) {
	for _, test := range []struct {
		x      uint64
		w      width.Width
		mask   uint64
		signed int64
	}{
		{math.MaxUint64, width.W8, 0xff, -1},
		{math.MaxUint64, width.W16, 0xffff, -1},
		{math.MaxUint64, width.W32, 0xffffffff, -1},
		{math.MaxUint64, width.W64, math.MaxUint64, -1},
		{0x1234_5680, width.W8, 0x80, -128},
		{0x1234_5680, width.W16, 0x5680, 0x5680},
		{0x8000_0000, width.W32, 0x8000_0000, math.MinInt32},
		{0x7f, width.W8, 0x7f, 127},
	} {
		if m := width.Mask(test.x, test.w); m != test.mask {
			t.Errorf("Mask(%#x, %s) = %#x; want %#x", test.x, test.w, m, test.mask)
		}
		if s := width.Signed(test.mask, test.w); s != test.signed {
			t.Errorf("Signed(%#x, %s) = %d; want %d", test.mask, test.w, s, test.signed)
		}
	}
}

func TestLimits(t *testing.T) {
	for _, test := range []struct {
		w               width.Width
		bits            uint
		min, maxS, maxU uint64
		inS, outS       int64
		inU, outU       uint64
	}{
		{width.W8, 8, 0x80, 0x7f, 0xff, -128, 128, 255, 256},
		{width.W16, 16, 0x8000, 0x7fff, 0xffff, -32768, -32769, 65535, 65536},
		{width.W32, 32, 0x8000_0000, 0x7fff_ffff, 0xffff_ffff, math.MaxInt32, math.MinInt32 - 1, math.MaxUint32, math.MaxUint32 + 1},
	} {
		if test.w.Bits() != test.bits || !test.w.Valid() {
			t.Errorf("%s: bad width", test.w)
		}
		if width.Min(test.w) != test.min || width.MaxSigned(test.w) != test.maxS || width.MaxUnsigned(test.w) != test.maxU {
			t.Errorf("%s: got limits %#x %#x %#x", test.w, width.Min(test.w), width.MaxSigned(test.w), width.MaxUnsigned(test.w))
		}
		if !width.InSignedRange(test.inS, test.w) || width.InSignedRange(test.outS, test.w) {
			t.Errorf("%s: InSignedRange(%d, %d) failed", test.w, test.inS, test.outS)
		}
		if !width.InUnsignedRange(test.inU, test.w) || width.InUnsignedRange(test.outU, test.w) {
			t.Errorf("%s: InUnsignedRange(%d, %d) failed", test.w, test.inU, test.outU)
		}
		if !width.IsMin(width.Signed(test.min, test.w), test.w) || width.IsMin(-1, test.w) {
			t.Errorf("%s: IsMin failed", test.w)
		}
	}
	if width.Min(width.W64) != 1<<63 || width.MaxSigned(width.W64) != math.MaxInt64 || width.MaxUnsigned(width.W64) != math.MaxUint64 {
		t.Error("bad 64 bit limits")
	}
	if !width.InSignedRange(math.MinInt64, width.W64) || !width.IsMin(math.MinInt64, width.W64) {
		t.Error("bad 64 bit range")
	}
}

func TestParseWidth(t *testing.T) {
	for _, w := range []width.Width{width.W8, width.W16, width.W32, width.W64} {
		p, err := width.ParseWidth(w.String())
		if err != nil || p != w {
			t.Errorf("ParseWidth(%q) = %s, %v", w.String(), p, err)
		}
	}
	if _, err := width.ParseWidth("12"); err != width.ErrWidth {
		t.Errorf("ParseWidth(12): got error %v", err)
	}
	if width.Width(4).Valid() {
		t.Error("width 4 is valid")
	}
}

func TestExtreme(t *testing.T) {
	for _, test := range []struct {
		w                  width.Width
		unsigned, negative bool
		want               uint64
	}{
		{width.W8, false, false, 0x7f},
		{width.W8, false, true, 0x80},
		{width.W8, true, false, 0xff},
		{width.W8, true, true, 0},
		{width.W64, false, true, 1 << 63},
		{width.W64, true, false, math.MaxUint64},
	} {
		if got := width.Extreme(test.w, test.unsigned, test.negative); got != test.want {
			t.Errorf("Extreme(%s, %v, %v) = %#x; want %#x", test.w, test.unsigned, test.negative, got, test.want)
		}
	}
}

func TestParseEntry(t *testing.T) {
	for _, test := range []struct {
		s        string
		w        width.Width
		unsigned bool
		want     uint64
		ok       bool
	}{
		{"127", width.W8, false, 127, true},
		{"-128", width.W8, false, 0x80, true},
		{"128", width.W8, false, 0, false},
		{"255", width.W8, true, 255, true},
		{"256", width.W8, true, 0, false},
		{"-1", width.W16, false, 0xffff, true},
		{"18446744073709551615", width.W64, true, math.MaxUint64, true},
		{"18446744073709551616", width.W64, true, 0, false},
		{"9223372036854775808", width.W64, false, 0, false},
		{"-9223372036854775808", width.W64, false, 1 << 63, true},
		{"12a", width.W64, false, 0, false},
	} {
		got, ok := width.ParseEntry(test.s, test.w, test.unsigned)
		if got != test.want || ok != test.ok {
			t.Errorf("ParseEntry(%q, %s, %v) = %#x, %v; want %#x, %v", test.s, test.w, test.unsigned, got, ok, test.want, test.ok)
		}
	}
}

func TestParse(t *testing.T) {
	for _, test := range []struct {
		s        string
		base     int
		w        width.Width
		unsigned bool
		want     uint64
		ok       bool
	}{
		{"1234", 10, width.W64, false, 1234, true},
		{" -1 ", 10, width.W64, false, math.MaxUint64, true},
		{"-1", 10, width.W8, false, 0xff, true},
		{"1_000_000", 10, width.W32, true, 1000000, true},
		{"0xff", 16, width.W8, true, 0xff, true},
		{"FF", 16, width.W64, false, 0xff, true},
		{"-0x80", 16, width.W8, false, 0x80, true},
		{"0x1_0000", 16, width.W16, true, 0xffff, false},
		{"300", 10, width.W8, false, 0x7f, false},
		{"-300", 10, width.W8, false, 0x80, false},
		{"-5", 10, width.W8, true, 0, false},
		{"-0", 10, width.W8, true, 0, true},
		{"18446744073709551615", 10, width.W64, true, math.MaxUint64, true},
		{"18446744073709551616", 10, width.W64, true, math.MaxUint64, false},
		{"18446744073709551616", 10, width.W64, false, math.MaxInt64, false},
		{"-9223372036854775808", 10, width.W64, false, 1 << 63, true},
		{"-9223372036854775809", 10, width.W64, false, 1 << 63, false},
		{"-99999999999999999999", 10, width.W64, false, 1 << 63, false},
		{"9223372036854775808", 10, width.W64, false, math.MaxInt64, false},
		{"hello", 10, width.W64, false, 0, false},
	} {
		got, ok := width.Parse(test.s, test.base, test.w, test.unsigned)
		if got != test.want || ok != test.ok {
			t.Errorf("Parse(%q, %d, %s, %v) = %#x, %v; want %#x, %v", test.s, test.base, test.w, test.unsigned, got, ok, test.want, test.ok)
		}
	}
}

func TestChanged(t *testing.T) {
	neg := func(i int64) uint64 { return uint64(i) }
	for _, test := range []struct {
		u        uint64
		negative bool
		current  width.Width
		want     width.Width
	}{
		{255, false, width.W8, width.W8},
		{256, false, width.W8, width.W16},
		{256, false, width.W32, width.W32},
		{neg(-128), true, width.W8, width.W8},
		{neg(-129), true, width.W8, width.W16},
		{neg(-40000), true, width.W8, width.W32},
		{math.MaxUint32 + 1, false, width.W16, width.W64},
		{neg(math.MinInt64), true, width.W8, width.W64},
	} {
		if got := width.Changed(test.u, test.negative, test.current); got != test.want {
			t.Errorf("Changed(%#x, %v, %s) = %s; want %s", test.u, test.negative, test.current, got, test.want)
		}
	}
}

func TestBestInteger(t *testing.T) {
	for _, test := range []struct {
		text     string
		w        width.Width
		unsigned bool
		want     uint64
		ok       bool
	}{
		{"80", width.W64, false, 80, true},
		{"123.456", width.W64, false, 123, true},
		{"-123.9", width.W8, false, 0x85, true},
		{"0.999", width.W64, false, 0, true},
		{"-0.5", width.W64, false, 0, true},
		{"-0.5", width.W64, true, 0, false},
		{"NaN", width.W16, false, 0, true},
		{"+Inf", width.W16, false, 0x7fff, false},
		{"-Inf", width.W16, false, 0x8000, false},
		{"+Inf", width.W16, true, 0xffff, false},
		{"1.5e+3", width.W16, false, 1500, true},
		{"1.23456e+2", width.W64, true, 123, true},
		{"1.2e-5", width.W64, false, 0, true},
		{"1e+19", width.W64, false, math.MaxInt64, false},
		{"1e+19", width.W64, true, 10000000000000000000, true},
		{"-1e+19", width.W64, false, 1 << 63, false},
		{"1e+20", width.W64, true, math.MaxUint64, false},
		{"300", width.W8, false, 0x7f, false},
		{"-300", width.W8, false, 0x80, false},
		{"300", width.W8, true, 0xff, false},
		{"1.234567890123456789e+18", width.W64, false, 1234567890123456789, true},
	} {
		got, ok := width.BestInteger(test.text, test.w, test.unsigned)
		if got != test.want || ok != test.ok {
			t.Errorf("BestInteger(%q, %s, %v) = %#x, %v; want %#x, %v", test.text, test.w, test.unsigned, got, ok, test.want, test.ok)
		}
	}
}
