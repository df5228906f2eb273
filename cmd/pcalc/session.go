package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/progcalc"
	"github.com/db47h/progcalc/decarith"
	"github.com/db47h/progcalc/decimal"
	"github.com/db47h/progcalc/decimal/context"
	"github.com/db47h/progcalc/width"
	"github.com/goforj/godump"
)

// Paste warnings.
var (
	errWidthChanged = errors.New("Integer width changed to make value fit")
	errNegRange     = errors.New("Negative value was out of range (< INT64_MIN)")
	errPosRange     = errors.New("Positive value was out of range (> UINT64_MAX)")
)

var (
	errUnknownOp  = errors.New("unknown operator")
	errOutOfRange = errors.New("value out of range")
	errHexDecimal = errors.New("hexadecimal values require integer mode")
)

const helpText = `Enter numbers and operators separated by spaces, e.g. 10 + 2 * 3 =

Operators:
  + - * / mod gcd and or xor << >> pow root = ( )
  neg not sqr sqrt recip log exp10 ln exp fact
  sin asin cos acos tan atan sinh asinh cosh acosh tanh atanh
  shl shr rol ror
  ms mr m+ ms2 mr2 m2+ pi rand intmin

Commands:
  :mode int|dec          switch mode, keeping the current value
  :width 8|16|32|64      set the integer width
  :unsigned on|off       unsigned integers
  :angle deg|rad|grad    angle unit
  :repeat on|off         repeated equals
  :digits n              digits displayed in decimal mode
  :bit n                 toggle bit n of the current value
  :paste text            enter text as pasted from the clipboard
  :clear                 clear the calculator
  :dump                  dump the calculator state
  :quit                  exit
`

// A session feeds lines of input to a Calculator and prints the results.
type session struct {
	calc   *progcalc.Calculator
	ctx    *context.Context
	digits int
	out    io.Writer
	quit   bool
}

func newSession(cfg progcalc.Config, digits int, out io.Writer) *session {
	s := &session{
		calc:   progcalc.New(cfg),
		ctx:    context.Decimal128(),
		digits: digits,
		out:    out,
	}
	s.calc.SetBestInteger(s.bestInteger)
	return s
}

// bestInteger converts the value as displayed.
func (s *session) bestInteger(top *decimal.Decimal, w width.Width, unsigned bool) (uint64, bool) {
	return width.BestInteger(top.Text('g', s.digits), w, unsigned)
}

func (s *session) prompt() string {
	if s.calc.Mode() == progcalc.Decimal {
		return "dec> "
	}
	if s.calc.Unsigned() {
		return "u" + s.calc.Width().String() + "> "
	}
	return "i" + s.calc.Width().String() + "> "
}

// exec executes a line of input. Keys are submitted one at a time. On error,
// keys before the faulty one remain applied.
func (s *session) exec(line string) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, ":"):
		return s.command(line[1:])
	}
	keys, err := parseLine(line)
	if err != nil || len(keys) == 0 {
		return err
	}
	for _, k := range keys {
		if err := s.key(k); err != nil {
			return fmt.Errorf("column %d: %s: %w", k.Pos.Column, k.Text(), err)
		}
	}
	s.show()
	return nil
}

func (s *session) key(k *Key) error {
	switch {
	case k.Op != nil || k.Word != nil:
		op, ok := progcalc.ParseOp(k.Text())
		if !ok {
			return errUnknownOp
		}
		return s.report(s.calc.Op(op))
	case s.calc.Mode() == progcalc.Decimal:
		if k.Hex != nil {
			return errHexDecimal
		}
		d, _, err := s.ctx.ParseDecimal(*k.Number, 10)
		if err != nil {
			return err
		}
		return s.report(s.calc.Operand(progcalc.Value{Dec: d}))
	}
	u, ok := s.integer(k)
	if !ok {
		return errOutOfRange
	}
	return s.report(s.calc.Operand(progcalc.Value{Bits: u}))
}

// integer converts a number key to an integer of the current width.
// Hexadecimal values are bit patterns, so 0xff is -1 at 8 bits signed.
func (s *session) integer(k *Key) (uint64, bool) {
	w, unsigned := s.calc.Width(), s.calc.Unsigned()
	switch t := k.Text(); {
	case k.Hex != nil:
		return width.Parse(t, 16, w, true)
	case strings.ContainsAny(t, ".eE"):
		return width.BestInteger(t, w, unsigned)
	default:
		return width.ParseEntry(t, w, unsigned)
	}
}

// report prints the warnings in r.
func (s *session) report(r progcalc.Result, err error) error {
	if err != nil {
		return err
	}
	for _, w := range r.Warnings {
		s.warn(w)
	}
	return nil
}

func (s *session) warn(err error) {
	fmt.Fprintf(s.out, "warning: %v\n", err)
}

func (s *session) format(v progcalc.Value) string {
	if s.calc.Mode() == progcalc.Decimal {
		if v.Dec == nil {
			return "0"
		}
		return v.Dec.Text('g', s.digits)
	}
	// memories hold sign extended values
	w := s.calc.Width()
	u := width.Mask(v.Bits, w)
	if s.calc.Unsigned() {
		return fmt.Sprintf("%d  0x%x", u, u)
	}
	return fmt.Sprintf("%d  0x%x", width.Signed(u, w), u)
}

// show prints the top of stack followed by the parenthesis depth and memory
// indicators.
func (s *session) show() {
	var b strings.Builder
	b.WriteString(s.format(s.calc.Top()))
	if p := s.calc.Parens(); p > 0 {
		b.WriteString("  ")
		b.WriteString(strings.Repeat("(", p))
	}
	for m := 0; m < progcalc.NumMemories; m++ {
		if s.calc.MemoryNonZero(m) {
			fmt.Fprintf(&b, "  M%d", m+1)
		}
	}
	fmt.Fprintln(s.out, b.String())
}

func (s *session) command(line string) error {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "q", "quit", "exit":
		s.quit = true
		return nil
	case "h", "help", "?":
		fmt.Fprint(s.out, helpText)
		return nil
	case "dump":
		godump.Dump(s.state())
		return nil
	case "c", "clear":
		if err := s.report(s.calc.Clear()); err != nil {
			return err
		}
	case "mode":
		m, ok := progcalc.ParseMode(arg)
		if !ok {
			return fmt.Errorf("invalid mode %q", arg)
		}
		if m != s.calc.Mode() {
			if err := s.report(s.calc.SetMode(m)); err != nil {
				return err
			}
			if err := s.report(s.calc.Clear()); err != nil {
				return err
			}
		}
	case "width":
		w, err := width.ParseWidth(arg)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		if err := s.report(s.calc.SetWidth(w)); err != nil {
			return err
		}
	case "unsigned":
		on, err := parseSwitch(arg)
		if err != nil {
			return err
		}
		if err := s.report(s.calc.SetUnsigned(on)); err != nil {
			return err
		}
	case "angle":
		a, err := decarith.ParseAngle(arg)
		if err != nil {
			return err
		}
		s.calc.SetAngle(a)
	case "repeat":
		on, err := parseSwitch(arg)
		if err != nil {
			return err
		}
		s.calc.SetRepeatedEquals(on)
	case "digits":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > maxDigits {
			return fmt.Errorf("digits must be in [1, %d]", maxDigits)
		}
		s.digits = n
	case "bit":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 || n >= int(s.calc.Width().Bits()) {
			return fmt.Errorf("invalid bit number %q", arg)
		}
		if err := s.report(s.calc.ToggleBits(1 << n)); err != nil {
			return err
		}
	case "paste":
		if err := s.paste(arg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown command :%s", name)
	}
	s.show()
	return nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// paste enters text as a new operand. In integer mode, a positive value is
// read as a 64 bit unsigned integer and a negative one as a 64 bit signed
// integer; the width is increased if the value does not fit. Values that do
// not fit in 64 bits are replaced by 0.
func (s *session) paste(text string) error {
	if s.calc.Mode() == progcalc.Decimal {
		return s.pasteDecimal(text)
	}
	t := strings.TrimSpace(text)
	neg := strings.HasPrefix(t, "-")
	base := 10
	if digits := strings.TrimLeft(t, "+-"); strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
	}
	u, ok := width.Parse(t, base, width.W64, !neg)
	if ok {
		if w := width.Changed(u, neg, s.calc.Width()); w != s.calc.Width() {
			if err := s.report(s.calc.SetWidth(w)); err != nil {
				return err
			}
			s.warn(errWidthChanged)
		}
		u = width.Mask(u, s.calc.Width())
	} else {
		u = 0
		if neg {
			s.warn(errNegRange)
		} else {
			s.warn(errPosRange)
		}
	}
	if err := s.report(s.calc.Operand(progcalc.Value{Bits: u})); err != nil {
		return err
	}
	return s.report(s.calc.Op(progcalc.OpPeek))
}

// pasteDecimal enters the longest prefix of text made of digits, signs,
// decimal points and exponent markers. Invalid numbers are entered as NaN.
func (s *session) pasteDecimal(text string) error {
	t := strings.TrimLeftFunc(text, unicode.IsSpace)
	if i := strings.IndexFunc(t, func(r rune) bool { return !strings.ContainsRune("0123456789.+-eE", r) }); i >= 0 {
		t = t[:i]
	}
	d, _, err := s.ctx.ParseDecimal(t, 10)
	if err != nil {
		d = s.ctx.New().SetNaN()
	}
	if err := s.report(s.calc.Operand(progcalc.Value{Dec: d})); err != nil {
		return err
	}
	return s.report(s.calc.Op(progcalc.OpPeek))
}

// state is the calculator state printed by :dump.
type state struct {
	Mode           string
	Width          string
	Unsigned       bool
	Angle          string
	RepeatedEquals bool
	RoundingAid    bool
	RandomRange    int
	Digits         int
	Parens         int
	PendingOp      string
	Top            string
	Memories       []string
}

func (s *session) state() state {
	st := state{
		Mode:           s.calc.Mode().String(),
		Width:          s.calc.Width().String(),
		Unsigned:       s.calc.Unsigned(),
		Angle:          s.calc.Angle().String(),
		RepeatedEquals: s.calc.RepeatedEquals(),
		RoundingAid:    s.calc.RoundingAid(),
		RandomRange:    s.calc.RandomRange(),
		Digits:         s.digits,
		Parens:         s.calc.Parens(),
		PendingOp:      s.calc.PendingOp().String(),
		Top:            s.format(s.calc.Top()),
	}
	for m := 0; m < progcalc.NumMemories; m++ {
		st.Memories = append(st.Memories, s.format(s.calc.Memory(m)))
	}
	return st
}
