package progcalc

import (
	"strconv"
	"strings"

	"github.com/db47h/progcalc/decarith"
	"github.com/db47h/progcalc/intarith"
)

// An Op is an operator submitted to a Calculator.
type Op uint8

// Operators.
const (
	OpNop  Op = iota
	OpPeek    // refresh the display
	OpEquals

	// binary operators
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpRoot
	OpAnd
	OpOr
	OpXor
	OpShiftLeft
	OpShiftRight
	OpGcd

	// unary operators
	OpNegate
	OpComplement
	OpSquare
	OpSqrt
	OpReciprocal
	OpLog10
	OpExp10
	OpLn
	OpExp
	OpSin
	OpAsin
	OpCos
	OpAcos
	OpTan
	OpAtan
	OpSinh
	OpAsinh
	OpCosh
	OpAcosh
	OpTanh
	OpAtanh
	OpShiftLeft1
	OpShiftRight1
	OpRotateLeft1
	OpRotateRight1
	OpFactorial

	OpParenOpen
	OpParenClose

	// memories
	OpMemStore
	OpMemRecall
	OpMemPlus
	OpMemStore2
	OpMemRecall2
	OpMemPlus2

	// constants
	OpPi
	OpRandom
	OpIntMin

	opCount
)

// Binary operator priorities. Unary operators are applied immediately.
const (
	prioAddSub = iota
	prioMulDiv
	prioPowRoot
	numPriorities
)

type opKind uint8

const (
	kindOther opKind = iota
	kindUnary
	kindBinary
)

type opInfo struct {
	name string
	kind opKind
	prio int
	iun  intarith.UnaryFunc
	ibin intarith.BinaryFunc
	dun  decarith.UnaryFunc
	dbin decarith.BinaryFunc
}

func binary(name string, prio int, i intarith.BinaryFunc, d decarith.BinaryFunc) opInfo {
	return opInfo{name: name, kind: kindBinary, prio: prio, ibin: i, dbin: d}
}

func unary(name string, i intarith.UnaryFunc, d decarith.UnaryFunc) opInfo {
	return opInfo{name: name, kind: kindUnary, iun: i, dun: d}
}

// opTable is the dispatch table. A nil implementation for the active mode makes
// the operator a no-op.
var opTable = [opCount]opInfo{
	OpNop:    {name: "nop"},
	OpPeek:   {name: "peek"},
	OpEquals: {name: "="},

	OpAdd:        binary("+", prioAddSub, intarith.Config.Add, (*decarith.Engine).Add),
	OpSub:        binary("-", prioAddSub, intarith.Config.Sub, (*decarith.Engine).Sub),
	OpAnd:        binary("and", prioAddSub, intarith.Config.And, nil),
	OpOr:         binary("or", prioAddSub, intarith.Config.Or, nil),
	OpXor:        binary("xor", prioAddSub, intarith.Config.Xor, nil),
	OpMul:        binary("*", prioMulDiv, intarith.Config.Mul, (*decarith.Engine).Mul),
	OpDiv:        binary("/", prioMulDiv, intarith.Config.Div, (*decarith.Engine).Div),
	OpMod:        binary("mod", prioMulDiv, intarith.Config.Mod, (*decarith.Engine).Mod),
	OpGcd:        binary("gcd", prioMulDiv, intarith.Config.Gcd, nil),
	OpShiftLeft:  binary("<<", prioMulDiv, intarith.Config.ShiftLeft, nil),
	OpShiftRight: binary(">>", prioMulDiv, intarith.Config.ShiftRight, nil),
	OpPow:        binary("pow", prioPowRoot, nil, (*decarith.Engine).Pow),
	OpRoot:       binary("root", prioPowRoot, nil, (*decarith.Engine).Root),

	OpNegate:       unary("neg", intarith.Config.Negate, (*decarith.Engine).Negate),
	OpComplement:   unary("not", intarith.Config.Complement, nil),
	OpSquare:       unary("sqr", intarith.Config.Square, (*decarith.Engine).Square),
	OpSqrt:         unary("sqrt", nil, (*decarith.Engine).Sqrt),
	OpReciprocal:   unary("recip", nil, (*decarith.Engine).Reciprocal),
	OpLog10:        unary("log", nil, (*decarith.Engine).Log10),
	OpExp10:        unary("exp10", nil, (*decarith.Engine).Exp10),
	OpLn:           unary("ln", nil, (*decarith.Engine).Ln),
	OpExp:          unary("exp", nil, (*decarith.Engine).Exp),
	OpSin:          unary("sin", nil, (*decarith.Engine).Sin),
	OpAsin:         unary("asin", nil, (*decarith.Engine).Asin),
	OpCos:          unary("cos", nil, (*decarith.Engine).Cos),
	OpAcos:         unary("acos", nil, (*decarith.Engine).Acos),
	OpTan:          unary("tan", nil, (*decarith.Engine).Tan),
	OpAtan:         unary("atan", nil, (*decarith.Engine).Atan),
	OpSinh:         unary("sinh", nil, (*decarith.Engine).Sinh),
	OpAsinh:        unary("asinh", nil, (*decarith.Engine).Asinh),
	OpCosh:         unary("cosh", nil, (*decarith.Engine).Cosh),
	OpAcosh:        unary("acosh", nil, (*decarith.Engine).Acosh),
	OpTanh:         unary("tanh", nil, (*decarith.Engine).Tanh),
	OpAtanh:        unary("atanh", nil, (*decarith.Engine).Atanh),
	OpShiftLeft1:   unary("shl", intarith.Config.ShiftLeft1, nil),
	OpShiftRight1:  unary("shr", intarith.Config.ShiftRight1, nil),
	OpRotateLeft1:  unary("rol", intarith.Config.RotateLeft1, nil),
	OpRotateRight1: unary("ror", intarith.Config.RotateRight1, nil),
	OpFactorial:    unary("fact", nil, (*decarith.Engine).Factorial),

	OpParenOpen:  {name: "("},
	OpParenClose: {name: ")"},

	OpMemStore:   {name: "ms"},
	OpMemRecall:  {name: "mr"},
	OpMemPlus:    {name: "m+"},
	OpMemStore2:  {name: "ms2"},
	OpMemRecall2: {name: "mr2"},
	OpMemPlus2:   {name: "m2+"},

	OpPi:     {name: "pi"},
	OpRandom: {name: "rand"},
	OpIntMin: {name: "intmin"},
}

// alternate spellings accepted by ParseOp
var opAliases = map[string]Op{
	"%":   OpMod,
	"^":   OpPow,
	"**":  OpPow,
	"&":   OpAnd,
	"|":   OpOr,
	"~":   OpComplement,
	"!":   OpFactorial,
	"+/-": OpNegate,
	"1/x": OpReciprocal,
	"m1+": OpMemPlus,
	"ms1": OpMemStore,
	"mr1": OpMemRecall,
}

func (op Op) String() string {
	if op < opCount {
		return opTable[op].name
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// IsBinary reports whether op is a binary operator.
func (op Op) IsBinary() bool { return op < opCount && opTable[op].kind == kindBinary }

// IsUnary reports whether op is a unary operator.
func (op Op) IsUnary() bool { return op < opCount && opTable[op].kind == kindUnary }

// Supports reports whether op has an implementation in mode m. Submitting an
// unsupported operator is a no-op.
func (op Op) Supports(m Mode) bool {
	if op >= opCount {
		return false
	}
	info := &opTable[op]
	switch info.kind {
	case kindUnary:
		if m == Integer {
			return info.iun != nil
		}
		return info.dun != nil
	case kindBinary:
		if m == Integer {
			return info.ibin != nil
		}
		return info.dbin != nil
	}
	switch op {
	case OpPi, OpRandom:
		return m == Decimal
	}
	return true
}

// ParseOp returns the operator named s, as returned by Op.String, or one of
// its usual symbols. Names are case insensitive.
func ParseOp(s string) (Op, bool) {
	s = strings.ToLower(s)
	for i := range opTable {
		if opTable[i].name == s {
			return Op(i), true
		}
	}
	op, ok := opAliases[s]
	return op, ok
}
