package main

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Line is a line of input: a flat sequence of keys.
type Line struct {
	Keys []*Key `@@*`
}

// Key is a single operand or operator, as it would be typed on a calculator.
type Key struct {
	Pos lexer.Position

	Hex    *string `  @Hex`
	Number *string `| @Number`
	Word   *string `| @Ident`
	Op     *string `| @Operator`
}

// Text returns the key as typed.
func (k *Key) Text() string {
	switch {
	case k.Hex != nil:
		return *k.Hex
	case k.Number != nil:
		return *k.Number
	case k.Word != nil:
		return *k.Word
	case k.Op != nil:
		return *k.Op
	}
	return ""
}

var keyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comment", Pattern: `#[^\n]*`},

	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F_]+`},
	{Name: "Number", Pattern: `(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`},

	// m+, m2+ are words
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*\+?`},
	{Name: "Operator", Pattern: `\+/-|<<|>>|\*\*|[-+*/%^&|~!()=]`},
})

var lineParser = participle.MustBuild[Line](
	participle.Lexer(keyLexer),
	participle.Elide("Whitespace", "Comment"),
)

// parseLine splits s into keys.
func parseLine(s string) ([]*Key, error) {
	l, err := lineParser.ParseString("", s)
	if err != nil {
		return nil, err
	}
	return l.Keys, nil
}
