package eval

import (
	"fmt"
	"testing"

	"github.com/TheMartin/trash-lang/lexer"
	"github.com/TheMartin/trash-lang/parser"
)

// captureFn implements Callable, recording each call's arguments rendered
// with Value.String so a test can assert on the observable "print" trace.
type captureFn struct {
	lines *[]string
}

func (f captureFn) Call(_ *Evaluator, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += " "
		}
		line += p
	}
	*f.lines = append(*f.lines, line)
	return Nil, nil
}

func run(t *testing.T, src string, globals map[string]Value) ([]string, error) {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	prog, perr := parser.Parse(toks)
	if perr != nil {
		t.Fatalf("Parse(%q): %v", src, perr)
	}
	var lines []string
	if globals == nil {
		globals = map[string]Value{}
	}
	globals["print"] = FunctionValue(captureFn{lines: &lines})
	env := NewEnvironment(globals)
	ev := NewEvaluator()
	err = ev.Execute(prog, env)
	return lines, err
}

func TestEvalArithmeticAndPrint(t *testing.T) {
	lines, err := run(t, `var a = 1; a = a + 2; print(a);`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "3" {
		t.Fatalf("print trace = %v, want [3]", lines)
	}
}

func TestEvalStringConcat(t *testing.T) {
	lines, err := run(t, `print("a" + "b");`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0] != "ab" {
		t.Fatalf("print trace = %v, want [ab]", lines)
	}
}

func TestEvalClosureSharesFrame(t *testing.T) {
	src := `
		var makeCounter = function() {
			var n = 0;
			return function() {
				n = n + 1;
				return n;
			};
		};
		var counter = makeCounter();
		print(counter());
		print(counter());
		print(counter());
	`
	lines, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"1", "2", "3"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestEvalObjectMutationViaCompoundAssignment(t *testing.T) {
	src := `
		var o = {count: 1};
		o.count += 4;
		print(o.count);
		o["count"] += 1;
		print(o.count);
	`
	lines, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0] != "5" || lines[1] != "6" {
		t.Fatalf("print trace = %v, want [5 6]", lines)
	}
}

func TestEvalForLoopBreakAndContinue(t *testing.T) {
	src := `
		for (var i = 0; i < 10; i += 1) {
			if (i == 2) { continue; }
			if (i == 5) { break; }
			print(i);
		}
	`
	lines, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"0", "1", "3", "4"}
	if len(lines) != len(want) {
		t.Fatalf("print trace = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEvalComparisonAndBooleanOperators(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 < 2", "true"},
		{"2 < 1", "false"},
		{"1 == 1", "true"},
		{`"a" == "a"`, "true"},
		{"1 != 2", "true"},
		{"true ^ false", "true"},
		{"true ^ true", "false"},
		{"true && false", "false"},
		{"true || false", "true"},
	}
	for _, tt := range tests {
		lines, err := run(t, fmt.Sprintf("print(%s);", tt.expr), nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.expr, err)
		}
		if lines[0] != tt.want {
			t.Errorf("%s = %q, want %q", tt.expr, lines[0], tt.want)
		}
	}
}

func TestEvalNoShortCircuitEvaluatesBothOperands(t *testing.T) {
	// Both sides of && and || are always evaluated (no short-circuit per the
	// language's recorded design decision), so a side-effecting call on the
	// right-hand side always runs even when the left side alone determines
	// the boolean result.
	src := `
		var calls = {n: 0};
		var sideEffect = function() { calls.n += 1; return true; };
		var r = false && sideEffect();
		print(calls.n);
	`
	lines, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0] != "1" {
		t.Fatalf("calls.n = %s, want 1 (rhs must still be evaluated)", lines[0])
	}
}

func TestEvalUnaryPlusIsIdentityOnAnyValue(t *testing.T) {
	lines, err := run(t, `print(+"hello"); print(+true);`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0] != "hello" || lines[1] != "true" {
		t.Fatalf("print trace = %v, want [hello true]", lines)
	}
}

func TestEvalNegativeZero(t *testing.T) {
	lines, err := run(t, `print(-0.0);`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0] != "0" && lines[0] != "-0" {
		t.Fatalf("print(-0.0) = %q, want a zero rendering", lines[0])
	}
}

func TestEvalUndeclaredAccessError(t *testing.T) {
	_, err := run(t, `print(x);`, nil)
	if err == nil {
		t.Fatal("expected an error for undeclared variable access")
	}
	var re *RuntimeError
	if !asRuntimeError(err, &re) {
		t.Fatalf("error = %v (%T), want *RuntimeError", err, err)
	}
	if re.Kind != UndeclaredAccess {
		t.Errorf("Kind = %v, want UndeclaredAccess", re.Kind)
	}
}

func TestEvalDoubleDeclarationError(t *testing.T) {
	_, err := run(t, `var x = 1; var x = 2;`, nil)
	var re *RuntimeError
	if !asRuntimeError(err, &re) {
		t.Fatalf("error = %v, want *RuntimeError", err)
	}
	if re.Kind != DoubleDeclaration {
		t.Errorf("Kind = %v, want DoubleDeclaration", re.Kind)
	}
}

func TestEvalTypeMismatchError(t *testing.T) {
	_, err := run(t, `print(1 + "a");`, nil)
	var re *RuntimeError
	if !asRuntimeError(err, &re) {
		t.Fatalf("error = %v, want *RuntimeError", err)
	}
	if re.Kind != TypeMismatch {
		t.Errorf("Kind = %v, want TypeMismatch", re.Kind)
	}
}

func TestEvalArityError(t *testing.T) {
	_, err := run(t, `var f = function(a, b) { return a + b; }; f(1);`, nil)
	var re *RuntimeError
	if !asRuntimeError(err, &re) {
		t.Fatalf("error = %v, want *RuntimeError", err)
	}
	if re.Kind != Arity {
		t.Errorf("Kind = %v, want Arity", re.Kind)
	}
}

func TestEvalNotAssignableError(t *testing.T) {
	_, err := run(t, `1 = 2;`, nil)
	var re *RuntimeError
	if !asRuntimeError(err, &re) {
		t.Fatalf("error = %v, want *RuntimeError", err)
	}
	if re.Kind != NotAssignable {
		t.Errorf("Kind = %v, want NotAssignable", re.Kind)
	}
}

func TestEvalObjectKeyEqualityByValueAndIdentity(t *testing.T) {
	src := `
		var o = {};
		o[1] = "one";
		print(o[1]);

		var a = function() {};
		var b = function() {};
		var m = {};
		m[a] = "first";
		print(m[a]);
		print(m[b]);
	`
	lines, err := run(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0] != "one" {
		t.Errorf("number key lookup = %q, want one", lines[0])
	}
	if lines[1] != "first" {
		t.Errorf("function identity key lookup = %q, want first", lines[1])
	}
	if lines[2] != "nil" {
		t.Errorf("distinct function identity lookup = %q, want nil", lines[2])
	}
}

func asRuntimeError(err error, target **RuntimeError) bool {
	if re, ok := err.(*RuntimeError); ok {
		*target = re
		return true
	}
	return false
}
