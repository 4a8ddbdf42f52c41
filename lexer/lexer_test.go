package lexer

import "testing"

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{"empty", "", []Kind{EOF}},
		{"ident", "foo", []Kind{Identifier, EOF}},
		{"ident_underscore", "_bar9", []Kind{Identifier, EOF}},
		{"keywords", "if else for while return break continue var function nil false true",
			[]Kind{KwIf, KwElse, KwFor, KwWhile, KwReturn, KwBreak, KwContinue, KwVar, KwFunction, KwNil, KwFalse, KwTrue, EOF}},
		{"int", "0", []Kind{Number, EOF}},
		{"int_nonzero", "123", []Kind{Number, EOF}},
		{"float", "3.14", []Kind{Number, EOF}},
		{"float_exp", "1e10", []Kind{Number, EOF}},
		{"float_exp_signed", "2.5e-3", []Kind{Number, EOF}},
		{"string", `"hi"`, []Kind{String, EOF}},
		{"string_escapes", `"a\\b\"c"`, []Kind{String, EOF}},
		{"punctuation", "(){}[];,:.", []Kind{LParen, RParen, LBrace, RBrace, LBracket, RBracket, Semicolon, Comma, Colon, Dot, EOF}},
		{"two_char_ops", "== != <= >= += -= *= /= %= && ||",
			[]Kind{Eq, NotEq, LtEq, GtEq, PlusEq, MinusEq, StarEq, SlashEq, PercentEq, AndAnd, OrOr, EOF}},
		{"single_char_ops_not_split", "=<>", []Kind{Assign, Lt, Gt, EOF}},
		{"line_comment", "1 // trailing comment\n2", []Kind{Number, Number, EOF}},
		{"block_comment", "1 /* comment\nspanning lines */ 2", []Kind{Number, Number, EOF}},
		{"empty_object", "{}", []Kind{LBrace, RBrace, EOF}},
		{"empty_call", "f()", []Kind{Identifier, LParen, RParen, EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex(tt.src)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.src, err)
			}
			if got := kinds(toks); !sameKinds(got, tt.want) {
				t.Errorf("Lex(%q) kinds = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestLexNumberLiteralValues(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.5", 3.5},
		{"1e2", 100},
		{"2.5e-1", 0.25},
	}
	for _, tt := range tests {
		toks, err := Lex(tt.src)
		if err != nil {
			t.Fatalf("Lex(%q) error: %v", tt.src, err)
		}
		if toks[0].Literal.Number != tt.want {
			t.Errorf("Lex(%q) literal = %v, want %v", tt.src, toks[0].Literal.Number, tt.want)
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := Lex(`"a\\b\"c"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `a\b"c`
	if got := toks[0].Literal.String; got != want {
		t.Errorf("decoded string = %q, want %q", got, want)
	}
}

func TestLexNegativeZeroIsUnaryMinusOverLiteralZero(t *testing.T) {
	// spec.md §8 boundary case: "-0.0" is not a single number lexeme; the
	// lexer emits Minus then Number(0), leaving negation to the parser/evaluator.
	toks, err := Lex("-0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := kinds(toks); !sameKinds(got, []Kind{Minus, Number, EOF}) {
		t.Errorf("kinds = %v, want [Minus Number EOF]", got)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated_string", `"abc`},
		{"unterminated_block_comment", "/* never closed"},
		{"bad_escape", `"\q"`},
		{"digit_leading_identifier", "123abc"},
		{"unexpected_char", "`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Lex(tt.src); err == nil {
				t.Errorf("Lex(%q) = nil error, want error", tt.src)
			}
		})
	}
}

func TestLexPositionsAreZeroBasedAndAdvanceAcrossLines(t *testing.T) {
	toks, err := Lex("a\nbb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Pos != (Position{Line: 0, Column: 0}) {
		t.Errorf("first token pos = %v, want {0 0}", toks[0].Pos)
	}
	if toks[1].Pos != (Position{Line: 1, Column: 0}) {
		t.Errorf("second token pos = %v, want {1 0}", toks[1].Pos)
	}
}
