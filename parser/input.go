// Package parser implements §4.3 of the trash-lang specification: a
// combinator-based parser over a token view, producing a typed AST.
package parser

import (
	"github.com/TheMartin/trash-lang/lexer"
	"github.com/TheMartin/trash-lang/parse"
)

// tokenInput is the token-view Input spec.md §4.3 calls for: empty, peek,
// advance (one token per call), pos, ordered by token index. It is an immutable value —
// Advance returns a new view rather than mutating in place — so combinators
// can freely backtrack by simply discarding a view and retrying from an
// earlier one.
type tokenInput struct {
	toks []lexer.Token
	idx  int
}

// Pos implements parse.Input.
func (t tokenInput) Pos() parse.Position { return t.toks[t.idx].Pos }

// Peek returns the token at the current position without advancing.
func (t tokenInput) Peek() lexer.Token { return t.toks[t.idx] }

// Advance returns a view positioned one token later.
func (t tokenInput) Advance() tokenInput {
	if t.idx+1 < len(t.toks) {
		return tokenInput{toks: t.toks, idx: t.idx + 1}
	}
	return tokenInput{toks: t.toks, idx: len(t.toks) - 1}
}

// Empty reports whether the view is positioned at EOF.
func (t tokenInput) Empty() bool { return t.toks[t.idx].Kind == lexer.EOF }

// tok is the only primitive over tokens (spec.md §4.3): it succeeds when the
// next token has kind k, consuming it, and fails with expectation {k} when
// it doesn't.
func tok(k lexer.Kind) parse.Parser[tokenInput, lexer.Token] {
	name := k.String()
	return func(in tokenInput) parse.Result[tokenInput, lexer.Token] {
		t := in.Peek()
		if t.Kind == k {
			return parse.Ok[tokenInput, lexer.Token](t, in.Advance(), true)
		}
		return parse.Fail[tokenInput, lexer.Token](parse.NewError(in.Pos(), false, "expected "+name, name))
	}
}
