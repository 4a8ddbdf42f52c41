// Package trash is the public façade of the toolchain (spec.md §6): Parse
// turns source text into a typed AST, and Evaluator.Execute runs that AST
// against a caller-supplied Environment, producing observable side effects
// only through host-registered Callable/Indexable values. The lexer,
// parser, and evaluator subpackages are implementation detail; callers are
// expected to import only this package plus ast for AST types they want to
// inspect directly.
package trash

import (
	"github.com/TheMartin/trash-lang/ast"
	"github.com/TheMartin/trash-lang/eval"
	"github.com/TheMartin/trash-lang/lexer"
	"github.com/TheMartin/trash-lang/parser"
)

// Re-exported runtime types (spec.md §3, §6) so a host never has to import
// the eval package directly to register native Callables/Indexables.
type (
	Value        = eval.Value
	Callable     = eval.Callable
	Indexable    = eval.Indexable
	Object       = eval.Object
	Function     = eval.Function
	Environment  = eval.Environment
	Evaluator    = eval.Evaluator
	RuntimeError = eval.RuntimeError
)

// Runtime error kinds (spec.md §7).
const (
	TypeMismatch       = eval.TypeMismatch
	UndeclaredAccess   = eval.UndeclaredAccess
	DoubleDeclaration  = eval.DoubleDeclaration
	Arity              = eval.Arity
	NotAssignable      = eval.NotAssignable
	StrayBreakContinue = eval.StrayBreakContinue
	InternalError      = eval.InternalError
)

// Kind discriminates the Value tagged union (spec.md §3); host code
// comparing against a Value's Kind field (e.g. a native function checking
// its argument types) uses these re-exports rather than importing eval.
type Kind = eval.Kind

const (
	KindNil      = eval.KindNil
	KindBool     = eval.KindBool
	KindNumber   = eval.KindNumber
	KindString   = eval.KindString
	KindFunction = eval.KindFunction
	KindObject   = eval.KindObject
)

// Value constructors (spec.md §3, §6).
var (
	Nil           = eval.Nil
	Bool          = eval.Bool
	Number        = eval.Number
	String        = eval.String
	FunctionValue = eval.FunctionValue
	ObjectValue   = eval.ObjectValue
	NewObject     = eval.NewObject
	Truthy        = eval.Truthy
	Equal         = eval.Equal
)

// NewEnvironment constructs a top-level frame preloaded with host-supplied
// globals (spec.md §6, Environment.new). Pass nil for an empty top-level
// scope.
func NewEnvironment(bindings map[string]Value) *Environment {
	return eval.NewEnvironment(bindings)
}

// NewEvaluator returns an Evaluator ready to Execute one or more disjoint
// ASTs in sequence. Do not share one Evaluator between concurrent calls
// (spec.md §5).
func NewEvaluator() *Evaluator {
	return eval.NewEvaluator()
}

// Parse runs the lexer then the parser over source and returns the
// resulting AST, or a *ParseError describing the first failure (spec.md §6:
// "parse(source) -> AST | ParseError"). No partial AST is ever returned on
// failure (spec.md §7).
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.Lex(source)
	if err != nil {
		return nil, lexErrorToParseError(err)
	}
	prog, perr := parser.Parse(toks)
	if perr != nil {
		return nil, parseErrorFrom(*perr)
	}
	return prog, nil
}
