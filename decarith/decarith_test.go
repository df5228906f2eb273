package decarith_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/db47h/progcalc/decarith"
	"github.com/db47h/progcalc/decimal"
	"github.com/db47h/progcalc/decimal/context"
)

func dec(t *testing.T, e *decarith.Engine, s string) *decimal.Decimal {
	t.Helper()
	d, err := e.FromString(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return d
}

type unaryTest struct {
	x      string
	digits int // significant digits compared, -1 for the exact value
	want   string
}

func testUnary(t *testing.T, e *decarith.Engine, name string, f decarith.UnaryFunc, td []unaryTest) {
	t.Helper()
	for _, test := range td {
		z, err := f(e, dec(t, e, test.x))
		if err != nil {
			t.Errorf("%s(%s): unexpected error %v", name, test.x, err)
			continue
		}
		if got := z.Text('g', test.digits); got != test.want {
			t.Errorf("%s(%s) in %s\nGot : %s\nWant: %s", name, test.x, e.Angle, got, test.want)
		}
		if z.Prec() != 34 {
			t.Errorf("%s(%s): got precision %d", name, test.x, z.Prec())
		}
	}
}

func TestArith(t *testing.T) {
	e := decarith.New()
	for _, test := range []struct {
		name   string
		f      decarith.BinaryFunc
		x, y   string
		digits int
		want   string
	}{
		{"add", (*decarith.Engine).Add, "0.1", "0.2", -1, "0.3"},
		{"add", (*decarith.Engine).Add, "1e34", "1", -1, "1e+34"},
		{"sub", (*decarith.Engine).Sub, "1", "3", -1, "-2"},
		{"mul", (*decarith.Engine).Mul, "1.5", "-4", -1, "-6"},
		{"div", (*decarith.Engine).Div, "1", "3", -1, "0.3333333333333333333333333333333333"},
		{"div", (*decarith.Engine).Div, "2", "3", -1, "0.6666666666666666666666666666666667"},
		{"div", (*decarith.Engine).Div, "-2", "0", -1, "-Inf"},
		{"div", (*decarith.Engine).Div, "0", "0", -1, "NaN"},
		{"mod", (*decarith.Engine).Mod, "10", "3", -1, "1"},
		{"mod", (*decarith.Engine).Mod, "-10", "3", -1, "-1"},
		{"mod", (*decarith.Engine).Mod, "7.5", "2", -1, "1.5"},
		{"mod", (*decarith.Engine).Mod, "10", "0", -1, "NaN"},
		{"mod", (*decarith.Engine).Mod, "1e40", "360", -1, "NaN"},
		{"pow", (*decarith.Engine).Pow, "2", "10", -1, "1024"},
		{"pow", (*decarith.Engine).Pow, "2", "-2", -1, "0.25"},
		{"pow", (*decarith.Engine).Pow, "2", "0.5", 30, "1.41421356237309504880168872421"},
		{"pow", (*decarith.Engine).Pow, "-8", "0.5", -1, "NaN"},
		{"root", (*decarith.Engine).Root, "27", "3", 20, "3"},
		{"root", (*decarith.Engine).Root, "-8", "3", 20, "-2"},
		{"root", (*decarith.Engine).Root, "-32", "5", 20, "-2"},
		{"root", (*decarith.Engine).Root, "-8", "2", -1, "NaN"},
		{"root", (*decarith.Engine).Root, "-8", "2.5", -1, "NaN"},
		{"root", (*decarith.Engine).Root, "16", "4", 20, "2"},
	} {
		z, err := test.f(e, dec(t, e, test.x), dec(t, e, test.y))
		if err != nil {
			t.Errorf("%s(%s, %s): unexpected error %v", test.name, test.x, test.y, err)
			continue
		}
		if got := z.Text('g', test.digits); got != test.want {
			t.Errorf("%s(%s, %s)\nGot : %s\nWant: %s", test.name, test.x, test.y, got, test.want)
		}
	}
}

func TestStatus(t *testing.T) {
	e := decarith.New()
	ctx := e.Context()

	if z, _ := e.Reciprocal(dec(t, e, "0")); !z.IsInf() || ctx.Status() != context.DivisionByZero {
		t.Fatalf("1/0 = %s, status %v", z, ctx.Status())
	}
	// the status only reflects the last operation
	if z, _ := e.Add(dec(t, e, "1"), dec(t, e, "2")); z.Text('g', -1) != "3" || ctx.Status() != 0 {
		t.Fatalf("1+2 = %s, status %v", z, ctx.Status())
	}
	big := dec(t, e, "9e6144")
	if z, _ := e.Add(big, big); z.Text('g', -1) != "+Inf" || ctx.Status() != context.Overflow|context.Inexact {
		t.Fatalf("9e6144+9e6144 = %s, status %v", z, ctx.Status())
	}
	if z, _ := e.Sqrt(dec(t, e, "-1")); !z.IsNaN() || ctx.Status() != context.InvalidOperation {
		t.Fatalf("sqrt(-1) = %s, status %v", z, ctx.Status())
	}
}

func TestUnary(t *testing.T) {
	e := decarith.New()
	testUnary(t, e, "neg", (*decarith.Engine).Negate, []unaryTest{
		{"5", -1, "-5"},
		{"-0.5", -1, "0.5"},
	})
	testUnary(t, e, "sqr", (*decarith.Engine).Square, []unaryTest{
		{"-3", -1, "9"},
		{"1e-3", -1, "1e-06"},
	})
	testUnary(t, e, "sqrt", (*decarith.Engine).Sqrt, []unaryTest{
		{"2", 30, "1.41421356237309504880168872421"},
		{"144", -1, "12"},
		{"-4", -1, "NaN"},
	})
	testUnary(t, e, "1/x", (*decarith.Engine).Reciprocal, []unaryTest{
		{"4", -1, "0.25"},
		{"-0.5", -1, "-2"},
	})
	testUnary(t, e, "log10", (*decarith.Engine).Log10, []unaryTest{
		{"1000", -1, "3"},
		{"0.01", -1, "-2"},
		{"0", -1, "-Inf"},
		{"-1", -1, "NaN"},
	})
	testUnary(t, e, "10^x", (*decarith.Engine).Exp10, []unaryTest{
		{"3", -1, "1000"},
		{"-2", -1, "0.01"},
	})
	testUnary(t, e, "ln", (*decarith.Engine).Ln, []unaryTest{
		{"1", -1, "0"},
		{"2", 30, "0.693147180559945309417232121458"},
	})
	testUnary(t, e, "exp", (*decarith.Engine).Exp, []unaryTest{
		{"0", -1, "1"},
		{"1", 30, "2.71828182845904523536028747135"},
		{"1e6", -1, "+Inf"},
	})
}

func TestHyperbolic(t *testing.T) {
	e := decarith.New()
	testUnary(t, e, "sinh", (*decarith.Engine).Sinh, []unaryTest{
		{"0", -1, "0"},
		{"1", 30, "1.1752011936438014568823818506"},
	})
	testUnary(t, e, "cosh", (*decarith.Engine).Cosh, []unaryTest{
		{"0", -1, "1"},
		{"1", 30, "1.54308063481524377847790562076"},
	})
	testUnary(t, e, "tanh", (*decarith.Engine).Tanh, []unaryTest{
		{"0", -1, "0"},
		{"1", 30, "0.761594155955764888119458282605"},
	})
	testUnary(t, e, "asinh", (*decarith.Engine).Asinh, []unaryTest{
		{"0", -1, "0"},
		{"1", 30, "0.88137358701954302523260932498"},
	})
	testUnary(t, e, "acosh", (*decarith.Engine).Acosh, []unaryTest{
		{"1", -1, "0"},
		{"2", 30, "1.31695789692481670862504634731"},
	})
	testUnary(t, e, "atanh", (*decarith.Engine).Atanh, []unaryTest{
		{"0", -1, "0"},
		{"0.5", 30, "0.549306144334054845697622618461"},
		{"1", -1, "+Inf"},
	})
}

func TestTrig(t *testing.T) {
	e := decarith.New()
	e.RoundingAid = true

	e.Angle = decarith.Degree
	testUnary(t, e, "sin", (*decarith.Engine).Sin, []unaryTest{
		{"30", 30, "0.5"},
		{"-30", 30, "-0.5"},
		{"90", 30, "1"},
		{"180", -1, "0"},
		{"370", 30, "0.173648177666930348851716626769"},
		{"+Inf", -1, "NaN"},
		{"NaN", -1, "NaN"},
		{"1e40", -1, "NaN"},
	})
	testUnary(t, e, "cos", (*decarith.Engine).Cos, []unaryTest{
		{"0", -1, "1"},
		{"60", 30, "0.5"},
		{"90", -1, "0"},
		{"-Inf", -1, "NaN"},
	})
	testUnary(t, e, "tan", (*decarith.Engine).Tan, []unaryTest{
		{"0", -1, "0"},
		{"45", 30, "1"},
		{"30", 30, "0.577350269189625764509148780502"},
		{"90", -1, "NaN"},
		{"-Inf", -1, "NaN"},
	})
	testUnary(t, e, "asin", (*decarith.Engine).Asin, []unaryTest{
		{"0.5", 30, "30"},
		{"1", 30, "90"},
		{"-1", 30, "-90"},
		{"2", -1, "NaN"},
	})
	testUnary(t, e, "acos", (*decarith.Engine).Acos, []unaryTest{
		{"0.5", 30, "60"},
		{"1", -1, "0"},
		{"-1", 30, "180"},
		{"0", 30, "90"},
		{"-0", 30, "90"},
	})
	testUnary(t, e, "atan", (*decarith.Engine).Atan, []unaryTest{
		{"1", 30, "45"},
		{"+Inf", 30, "90"},
		{"-Inf", 30, "-90"},
	})

	e.Angle = decarith.Radian
	testUnary(t, e, "sin", (*decarith.Engine).Sin, []unaryTest{
		{"1", 30, "0.84147098480789650665250232163"},
		{"1e-31", -1, "1e-31"}, // small arguments are not snapped to 0
	})
	testUnary(t, e, "atan", (*decarith.Engine).Atan, []unaryTest{
		{"2", 30, "1.10714871779409050301706546018"},
		{"1e-11", -1, "1e-11"},
	})

	e.Angle = decarith.Gradian
	testUnary(t, e, "sin", (*decarith.Engine).Sin, []unaryTest{
		{"50", 30, "0.707106781186547524400844362105"},
		{"100", 30, "1"},
		{"200", -1, "0"},
	})
	testUnary(t, e, "atan", (*decarith.Engine).Atan, []unaryTest{
		{"1", 30, "50"},
	})
}

func TestRoundingAid(t *testing.T) {
	e := decarith.New()
	x := dec(t, e, "180")
	tiny := decimal.NewDecimal(1, -30)
	z, _ := e.Sin(x)
	if z.IsZero() || z.CmpAbs(tiny) >= 0 {
		t.Fatalf("sin(180°) without rounding aid: got %s", z.Text('g', -1))
	}
	e.RoundingAid = true
	if z, _ = e.Sin(x); !z.IsZero() {
		t.Fatalf("sin(180°) with rounding aid: got %s", z.Text('g', -1))
	}
}

func TestFactorial(t *testing.T) {
	e := decarith.New()
	testUnary(t, e, "fact", (*decarith.Engine).Factorial, []unaryTest{
		{"0", -1, "1"},
		{"1", -1, "1"},
		{"5", -1, "120"},
		{"2.5", -1, "6"},
		{"2.4", -1, "2"},
		{"25", -1, "1.5511210043330985984e+25"},
		{"2123", 20, "1.4799072994032493332e+6143"},
	})
	for _, test := range []struct {
		x   string
		err error
	}{
		{"2124", decarith.ErrFactorialRange},
		{"+Inf", decarith.ErrFactorialRange},
		{"-1", decarith.ErrFactorialDomain},
		{"-Inf", decarith.ErrFactorialDomain},
		{"NaN", decarith.ErrFactorialDomain},
	} {
		x := dec(t, e, test.x)
		z, err := e.Factorial(x)
		if err != test.err {
			t.Errorf("fact(%s): got error %v, want %v", test.x, err, test.err)
		}
		if z != x {
			t.Errorf("fact(%s): got %s, want input unchanged", test.x, z)
		}
	}
}

func TestPi(t *testing.T) {
	e := decarith.New()
	if got := e.Pi().Text('g', -1); got != "3.141592653589793238462643383279503" {
		t.Fatalf("Got : %s\nWant: 3.141592653589793238462643383279503", got)
	}
	// Pi returns a copy
	p := e.Pi()
	p.Neg(p)
	if e.Pi().Sign() < 0 {
		t.Fatal("Pi is not a copy")
	}
}

func TestRandom(t *testing.T) {
	e := decarith.New()
	rng := rand.New(rand.NewSource(1))
	lo, hi := dec(t, e, "1"), dec(t, e, "6")
	for i := 0; i < 1000; i++ {
		z := e.Random(rng, 6)
		if !z.IsInt() || z.Cmp(lo) < 0 || z.Cmp(hi) > 0 {
			t.Fatalf("Random(6) = %s", z)
		}
	}
	zero, one := dec(t, e, "0"), dec(t, e, "1")
	for i := 0; i < 1000; i++ {
		z := e.Random(rng, 0)
		if z.Cmp(zero) < 0 || z.Cmp(one) >= 0 {
			t.Fatalf("Random(0) = %s", z)
		}
	}
}

func TestParseAngle(t *testing.T) {
	for _, a := range []decarith.Angle{decarith.Degree, decarith.Radian, decarith.Gradian} {
		p, err := decarith.ParseAngle(a.String())
		if err != nil || p != a {
			t.Errorf("ParseAngle(%q) = %v, %v", a.String(), p, err)
		}
	}
	if p, err := decarith.ParseAngle("RAD"); err != nil || p != decarith.Radian {
		t.Errorf("ParseAngle(RAD) = %v, %v", p, err)
	}
	if _, err := decarith.ParseAngle("turn"); err == nil {
		t.Error("ParseAngle(turn) succeeded")
	}
}

func ExampleEngine_Root() {
	e := decarith.New()
	x, _ := e.FromString("-125")
	y, _ := e.FromString("3")
	z, _ := e.Root(x, y)
	fmt.Println(z.Text('g', 10))
	// Output: -5
}
