package lexer

import (
	"fmt"

	"github.com/TheMartin/trash-lang/parse"
)

// Kind enumerates token discriminators (spec.md §3 Token).
type Kind int

const (
	Invalid Kind = iota
	EOF

	Identifier
	Number
	String

	// Keywords
	KwIf
	KwElse
	KwFor
	KwWhile
	KwReturn
	KwBreak
	KwContinue
	KwVar
	KwFunction
	KwNil
	KwFalse
	KwTrue

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Colon
	Dot

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Caret
	Bang
	Assign
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "end of input",
	Identifier: "identifier",
	Number:     "number",
	String:     "string",
	KwIf:       "if",
	KwElse:     "else",
	KwFor:      "for",
	KwWhile:    "while",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwVar:      "var",
	KwFunction: "function",
	KwNil:      "nil",
	KwFalse:    "false",
	KwTrue:     "true",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Semicolon:  ";",
	Comma:      ",",
	Colon:      ":",
	Dot:        ".",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Caret:      "^",
	Bang:       "!",
	Assign:     "=",
	PlusEq:     "+=",
	MinusEq:    "-=",
	StarEq:     "*=",
	SlashEq:    "/=",
	PercentEq:  "%=",
	Eq:         "==",
	NotEq:      "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	AndAnd:     "&&",
	OrOr:       "||",
}

// String returns the human-readable name used in parse error expectation
// sets ("identifier", "end of input", "+", ...).
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"var":      KwVar,
	"function": KwFunction,
	"nil":      KwNil,
	"false":    KwFalse,
	"true":     KwTrue,
}

// Position is a 0-based (line, column) pair (spec.md §3 Source position),
// ordered by LaterThan for combinator error merging (spec.md §4.1).
type Position struct {
	Line, Column int
}

// LaterThan implements parse.Position: total order by (line, column).
func (p Position) LaterThan(other parse.Position) bool {
	o := other.(Position)
	if p.Line != o.Line {
		return p.Line > o.Line
	}
	return p.Column > o.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Literal is the decoded payload of a String or Number token (spec.md §3).
type Literal struct {
	IsString bool
	IsNumber bool
	String   string
	Number   float64
}

// Token is a lexeme with its discriminator, source position, and (for
// String/Number) decoded literal payload (spec.md §3).
type Token struct {
	Kind     Kind
	Pos      Position
	Text     string
	Literal  Literal
}
