package parser

import (
	"testing"

	"github.com/TheMartin/trash-lang/ast"
	"github.com/TheMartin/trash-lang/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	prog, perr := Parse(toks)
	if perr != nil {
		t.Fatalf("Parse(%q): %v", src, perr)
	}
	return prog
}

func TestParseExpressionStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"number_literal", "1;"},
		{"string_literal", `"hi";`},
		{"bool_literals", "true; false;"},
		{"nil_literal", "nil;"},
		{"identifier", "x;"},
		{"empty_object", "{};"},
		{"object_literal", `{a: 1, b: "two", [1+1]: 3};`},
		{"function_literal", "function(a, b) { return a + b; };"},
		{"grouping", "(1 + 2) * 3;"},
		{"unary_minus", "-x;"},
		{"unary_plus", "+x;"},
		{"unary_not", "!x;"},
		{"call_no_args", "f();"},
		{"call_with_args", "f(1, 2, 3);"},
		{"bracket_access", "a[0];"},
		{"dot_access", "a.b;"},
		{"chained_postfix", "a.b[0].c(1)[2];"},
		{"arith_precedence", "1 + 2 * 3 - 4 / 2 % 2;"},
		{"relational", "a < b; a <= b; a > b; a >= b;"},
		{"equality", "a == b; a != b;"},
		{"xor_and_or", "a ^ b && c || d;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			if len(prog.Statements) == 0 {
				t.Fatalf("Parse(%q) produced no statements", tt.src)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ";"},
		{"var_decl", "var x = 1;"},
		{"assignment", "x = 1;"},
		{"compound_assignment", "x += 1; x -= 1; x *= 2; x /= 2; x %= 2;"},
		{"block", "{ var x = 1; x = 2; }"},
		{"if_no_else", "if (true) { x = 1; }"},
		{"if_else", "if (true) { x = 1; } else { x = 2; }"},
		{"while", "while (x < 10) { x = x + 1; }"},
		{"for_full", "for (var i = 0; i < 10; i += 1) { print(i); }"},
		{"for_empty_clauses", "for (;;) { break; }"},
		{"break_continue", "while (true) { break; continue; }"},
		{"return_value", "function() { return 1; };"},
		{"nested_blocks", "{ { { var x = 1; } } }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustParse(t, tt.src)
		})
	}
}

func TestParseAssignmentVsExpressionDisambiguation(t *testing.T) {
	prog := mustParse(t, "x;")
	if _, ok := prog.Statements[0].(*ast.ExprStmt); !ok {
		t.Fatalf("want *ast.ExprStmt, got %T", prog.Statements[0])
	}
	prog = mustParse(t, "x = 1;")
	if _, ok := prog.Statements[0].(*ast.Assignment); !ok {
		t.Fatalf("want *ast.Assignment, got %T", prog.Statements[0])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing_initializer", "var x = ;"},
		{"bare_return", "function() { return; };"},
		{"unclosed_brace", "{ var x = 1;"},
		{"unclosed_paren", "f(1, 2;"},
		{"missing_semicolon", "var x = 1"},
		{"stray_else", "else { x = 1; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexer.Lex(tt.src)
			if err != nil {
				return // a lex failure also demonstrates "rejected", acceptable here
			}
			if _, perr := Parse(toks); perr == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.src)
			}
		})
	}
}

func TestParseForLoopInitVariants(t *testing.T) {
	mustParse(t, "for (var i = 0; i < 10; i = i + 1) {}")
	mustParse(t, "for (i = 0; i < 10; i = i + 1) {}")
}

func TestParseLeftAssociativity(t *testing.T) {
	prog := mustParse(t, "1 - 2 - 3;")
	es, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want *ast.ExprStmt, got %T", prog.Statements[0])
	}
	top, ok := es.Expr.(*ast.Binary)
	if !ok {
		t.Fatalf("want top-level *ast.Binary, got %T", es.Expr)
	}
	// (1 - 2) - 3: the left child must itself be a Binary, not the literal 1.
	if _, ok := top.Lhs.(*ast.Binary); !ok {
		t.Errorf("expected left-associative nesting, lhs = %T", top.Lhs)
	}
	if lit, ok := top.Rhs.(*ast.Literal); !ok || lit.Token.Literal.Number != 3 {
		t.Errorf("expected rhs literal 3, got %#v", top.Rhs)
	}
}
