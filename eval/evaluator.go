package eval

import (
	"fmt"
	"math"

	"github.com/TheMartin/trash-lang/ast"
	"github.com/TheMartin/trash-lang/lexer"
)

// FunctionDefNode is the AST node a user-defined Function closes over. It is
// an alias rather than a wrapper type so eval never has to convert between
// ast.FunctionDef and a local copy.
type FunctionDefNode = ast.FunctionDef

// Evaluator walks an AST against a chained Environment (spec.md §4.4). Its
// current-environment register is mutable and must not be shared between
// concurrent Execute calls (spec.md §5) — a host wanting concurrent
// execution creates one Evaluator per goroutine.
type Evaluator struct {
	env *Environment
}

// NewEvaluator returns an Evaluator with no current environment; Execute
// installs one for the duration of the call and restores whatever was there
// before on every exit path, including error paths (spec.md §5).
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Execute runs prog's top-level statements against env (spec.md §6,
// Evaluator.execute). A stray top-level break/continue is reported as
// StrayBreakContinue, the same check spec.md §4.4 performs at function-body
// exit; a top-level return simply ends execution early, the natural reading
// of "yield the corresponding signal" when there is no enclosing call frame
// to hand the value back to.
func (ev *Evaluator) Execute(prog *ast.Program, env *Environment) error {
	prev := ev.env
	ev.env = env
	defer func() { ev.env = prev }()
	for _, s := range prog.Statements {
		sig, err := ev.execStmt(s)
		if err != nil {
			return err
		}
		switch sig.Kind {
		case SignalBreak, SignalContinue:
			return &RuntimeError{
				Kind:    StrayBreakContinue,
				Message: "break/continue outside of an enclosing loop",
				Pos:     s.Pos(),
			}
		case SignalReturn:
			return nil
		}
	}
	return nil
}

// ---- L-value handles (spec.md §3, Design Notes) ----

type lvalueKind int

const (
	lvVariable lvalueKind = iota
	lvAccessor
)

// lvalue is the internal handle produced only when an identifier, dot, or
// bracket access expression is visited on the left-hand side of an
// assignment; every other context immediately dereferences it through read.
type lvalue struct {
	kind lvalueKind
	env  *Environment
	name string
	obj  Indexable
	key  Value
	pos  lexer.Position
}

func (lv *lvalue) read() (Value, error) {
	switch lv.kind {
	case lvVariable:
		v, err := lv.env.Get(lv.name)
		if err != nil {
			return Nil, &RuntimeError{Kind: UndeclaredAccess, Message: err.Error(), Pos: lv.pos, Cause: err}
		}
		return v, nil
	case lvAccessor:
		return lv.obj.Get(lv.key), nil
	default:
		return Nil, &RuntimeError{Kind: InternalError, Message: "unreachable lvalue kind", Pos: lv.pos}
	}
}

func (lv *lvalue) write(v Value) error {
	switch lv.kind {
	case lvVariable:
		if err := lv.env.Set(lv.name, v); err != nil {
			return &RuntimeError{Kind: UndeclaredAccess, Message: err.Error(), Pos: lv.pos, Cause: err}
		}
		return nil
	case lvAccessor:
		lv.obj.Set(lv.key, v)
		return nil
	default:
		return &RuntimeError{Kind: InternalError, Message: "unreachable lvalue kind", Pos: lv.pos}
	}
}

// ---- expression evaluation ----

// evalValue evaluates e and always dereferences to a Value: identifier, dot,
// and bracket access expressions build an lvalue internally and read through
// it immediately (spec.md §4.4 "otherwise dereferences them to R-values").
func (ev *Evaluator) evalValue(e ast.Expression) (Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n.Token)
	case *ast.Identifier:
		v, err := ev.env.Get(n.Token.Text)
		if err != nil {
			return Nil, &RuntimeError{Kind: UndeclaredAccess, Message: err.Error(), Pos: n.Token.Pos, Cause: err}
		}
		return v, nil
	case *ast.ObjectDef:
		return ev.evalObjectDef(n)
	case *ast.FunctionDef:
		return FunctionValue(&Function{Def: n, Closure: ev.env}), nil
	case *ast.Unary:
		return ev.evalUnary(n)
	case *ast.Binary:
		return ev.evalBinary(n)
	case *ast.Call:
		return ev.evalCall(n)
	case *ast.BracketAccess:
		lv, err := ev.evalBracketAccess(n)
		if err != nil {
			return Nil, err
		}
		return lv.read()
	case *ast.DotAccess:
		lv, err := ev.evalDotAccess(n)
		if err != nil {
			return Nil, err
		}
		return lv.read()
	default:
		return Nil, &RuntimeError{Kind: InternalError, Message: fmt.Sprintf("unreachable expression node %T", e), Pos: e.Pos()}
	}
}

// evalLValue evaluates e as an assignment target, failing with
// NotAssignable if e is not an identifier/dot/bracket access (spec.md §4.4
// "Assignment statement semantics").
func (ev *Evaluator) evalLValue(e ast.Expression) (*lvalue, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return &lvalue{kind: lvVariable, env: ev.env, name: n.Token.Text, pos: n.Token.Pos}, nil
	case *ast.DotAccess:
		return ev.evalDotAccess(n)
	case *ast.BracketAccess:
		return ev.evalBracketAccess(n)
	default:
		return nil, &RuntimeError{
			Kind:    NotAssignable,
			Message: "left-hand side of assignment is not assignable",
			Pos:     e.Pos(),
		}
	}
}

func literalValue(t lexer.Token) (Value, error) {
	switch t.Kind {
	case lexer.String:
		return String(t.Literal.String), nil
	case lexer.Number:
		return Number(t.Literal.Number), nil
	case lexer.KwTrue:
		return Bool(true), nil
	case lexer.KwFalse:
		return Bool(false), nil
	case lexer.KwNil:
		return Nil, nil
	default:
		return Nil, internalError(t, "unreachable literal token kind")
	}
}

// evalObjectDef implements spec.md §4.4 "Object construction": a bare
// identifier key is used verbatim as a string key; any other key expression
// is evaluated.
func (ev *Evaluator) evalObjectDef(n *ast.ObjectDef) (Value, error) {
	obj := NewObject()
	for _, pair := range n.Pairs {
		var keyVal Value
		if id, ok := pair.Key.(*ast.Identifier); ok {
			keyVal = String(id.Token.Text)
		} else {
			v, err := ev.evalValue(pair.Key)
			if err != nil {
				return Nil, err
			}
			keyVal = v
		}
		val, err := ev.evalValue(pair.Value)
		if err != nil {
			return Nil, err
		}
		obj.Set(keyVal, val)
	}
	return ObjectValue(obj), nil
}

// evalUnary implements spec.md §4.4's unary operators, including the
// documented quirk that '+' is identity on any value (Design Note 2), not
// just numbers.
func (ev *Evaluator) evalUnary(n *ast.Unary) (Value, error) {
	rhs, err := ev.evalValue(n.Rhs)
	if err != nil {
		return Nil, err
	}
	switch n.Op.Kind {
	case lexer.Bang:
		return Bool(!Truthy(rhs)), nil
	case lexer.Plus:
		return rhs, nil
	case lexer.Minus:
		if rhs.Kind != KindNumber {
			return Nil, typeMismatch(n.Op, fmt.Sprintf("unary - requires a number, got %s", rhs.TypeName()))
		}
		return Number(-rhs.Num), nil
	default:
		return Nil, internalError(n.Op, "unreachable unary operator")
	}
}

// evalBinary implements spec.md §4.4's binary operators. && and || evaluate
// both operands unconditionally — no short-circuit, per spec.md §9 Open
// Question 1 and SPEC_FULL.md's recorded decision not to change it.
func (ev *Evaluator) evalBinary(n *ast.Binary) (Value, error) {
	lhs, err := ev.evalValue(n.Lhs)
	if err != nil {
		return Nil, err
	}
	rhs, err := ev.evalValue(n.Rhs)
	if err != nil {
		return Nil, err
	}
	switch n.Op.Kind {
	case lexer.Plus:
		if lhs.Kind == KindNumber && rhs.Kind == KindNumber {
			return Number(lhs.Num + rhs.Num), nil
		}
		if lhs.Kind == KindString && rhs.Kind == KindString {
			return String(lhs.Str + rhs.Str), nil
		}
		return Nil, typeMismatch(n.Op, "+ requires two numbers or two strings")
	case lexer.Minus:
		return numBinary(n.Op, lhs, rhs, func(a, b float64) float64 { return a - b })
	case lexer.Star:
		return numBinary(n.Op, lhs, rhs, func(a, b float64) float64 { return a * b })
	case lexer.Slash:
		return numBinary(n.Op, lhs, rhs, func(a, b float64) float64 { return a / b })
	case lexer.Percent:
		return numBinary(n.Op, lhs, rhs, math.Mod)
	case lexer.Lt:
		return numCompare(n.Op, lhs, rhs, func(a, b float64) bool { return a < b })
	case lexer.LtEq:
		return numCompare(n.Op, lhs, rhs, func(a, b float64) bool { return a <= b })
	case lexer.Gt:
		return numCompare(n.Op, lhs, rhs, func(a, b float64) bool { return a > b })
	case lexer.GtEq:
		return numCompare(n.Op, lhs, rhs, func(a, b float64) bool { return a >= b })
	case lexer.Eq:
		return Bool(Equal(lhs, rhs)), nil
	case lexer.NotEq:
		return Bool(!Equal(lhs, rhs)), nil
	case lexer.Caret:
		return Bool(Truthy(lhs) != Truthy(rhs)), nil
	case lexer.AndAnd:
		return Bool(Truthy(lhs) && Truthy(rhs)), nil
	case lexer.OrOr:
		return Bool(Truthy(lhs) || Truthy(rhs)), nil
	default:
		return Nil, internalError(n.Op, "unreachable binary operator")
	}
}

func numBinary(op lexer.Token, a, b Value, f func(float64, float64) float64) (Value, error) {
	if a.Kind != KindNumber || b.Kind != KindNumber {
		return Nil, typeMismatch(op, fmt.Sprintf("%s requires two numbers", op.Text))
	}
	return Number(f(a.Num, b.Num)), nil
}

func numCompare(op lexer.Token, a, b Value, f func(float64, float64) bool) (Value, error) {
	if a.Kind != KindNumber || b.Kind != KindNumber {
		return Nil, typeMismatch(op, fmt.Sprintf("%s requires two numbers", op.Text))
	}
	return Bool(f(a.Num, b.Num)), nil
}

func (ev *Evaluator) evalCall(n *ast.Call) (Value, error) {
	callee, err := ev.evalValue(n.Callee)
	if err != nil {
		return Nil, err
	}
	if callee.Kind != KindFunction {
		return Nil, &RuntimeError{
			Kind:    TypeMismatch,
			Message: fmt.Sprintf("cannot call a value of type %s", callee.TypeName()),
			Pos:     n.Pos(),
		}
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.evalValue(a)
		if err != nil {
			return Nil, err
		}
		args[i] = v
	}
	return callee.Fn.Call(ev, args)
}

func (ev *Evaluator) evalDotAccess(n *ast.DotAccess) (*lvalue, error) {
	lhs, err := ev.evalValue(n.Lhs)
	if err != nil {
		return nil, err
	}
	if lhs.Kind != KindObject {
		return nil, &RuntimeError{
			Kind:    TypeMismatch,
			Message: fmt.Sprintf("cannot access a property of a %s", lhs.TypeName()),
			Pos:     n.Ident.Pos,
		}
	}
	return &lvalue{kind: lvAccessor, obj: lhs.Obj, key: String(n.Ident.Text), pos: n.Ident.Pos}, nil
}

func (ev *Evaluator) evalBracketAccess(n *ast.BracketAccess) (*lvalue, error) {
	lhs, err := ev.evalValue(n.Lhs)
	if err != nil {
		return nil, err
	}
	if lhs.Kind != KindObject {
		return nil, &RuntimeError{
			Kind:    TypeMismatch,
			Message: fmt.Sprintf("cannot index a %s", lhs.TypeName()),
			Pos:     n.StartPos,
		}
	}
	idx, err := ev.evalValue(n.Index)
	if err != nil {
		return nil, err
	}
	return &lvalue{kind: lvAccessor, obj: lhs.Obj, key: idx, pos: n.StartPos}, nil
}

// callUserFunction implements spec.md §4.4 "Function call" for a
// user-defined closure.
func (ev *Evaluator) callUserFunction(f *Function, args []Value) (Value, error) {
	if len(args) != len(f.Def.Params) {
		return Nil, &RuntimeError{
			Kind:    Arity,
			Message: fmt.Sprintf("expected %d argument(s), got %d", len(f.Def.Params), len(args)),
			Pos:     f.Def.StartPos,
		}
	}
	frame := f.Closure.Extend()
	for i, p := range f.Def.Params {
		frame.vars[p.Text] = args[i]
	}
	prev := ev.env
	ev.env = frame
	defer func() { ev.env = prev }()

	sig, err := ev.execStmt(f.Def.Body)
	if err != nil {
		return Nil, err
	}
	switch sig.Kind {
	case SignalReturn:
		return sig.Value, nil
	case SignalNone:
		return Nil, nil
	default:
		return Nil, &RuntimeError{
			Kind:    StrayBreakContinue,
			Message: "break/continue outside of an enclosing loop",
			Pos:     f.Def.StartPos,
		}
	}
}

// ---- statement execution ----

func (ev *Evaluator) execStmt(s ast.Statement) (Signal, error) {
	switch n := s.(type) {
	case *ast.Empty:
		return noneSignal, nil
	case *ast.ExprStmt:
		if _, err := ev.evalValue(n.Expr); err != nil {
			return noneSignal, err
		}
		return noneSignal, nil
	case *ast.Assignment:
		return ev.execAssignment(n)
	case *ast.VarDecl:
		return ev.execVarDecl(n)
	case *ast.Return:
		v, err := ev.evalValue(n.Expr)
		if err != nil {
			return noneSignal, err
		}
		return returnSignal(v), nil
	case *ast.Break:
		return breakSignal, nil
	case *ast.Continue:
		return continueSignal, nil
	case *ast.Block:
		return ev.execBlock(n)
	case *ast.If:
		return ev.execIf(n)
	case *ast.While:
		return ev.execWhile(n)
	case *ast.For:
		return ev.execFor(n)
	default:
		return noneSignal, &RuntimeError{
			Kind:    InternalError,
			Message: fmt.Sprintf("unreachable statement node %T", s),
			Pos:     s.Pos(),
		}
	}
}

// execAssignment implements spec.md §4.4's "Assignment statement semantics":
// '=' writes the evaluated right side directly; the compound operators read
// the current value through the handle first.
func (ev *Evaluator) execAssignment(n *ast.Assignment) (Signal, error) {
	lv, err := ev.evalLValue(n.Lhs)
	if err != nil {
		return noneSignal, err
	}
	rhs, err := ev.evalValue(n.Rhs)
	if err != nil {
		return noneSignal, err
	}
	if n.Op.Kind == lexer.Assign {
		if err := lv.write(rhs); err != nil {
			return noneSignal, err
		}
		return noneSignal, nil
	}
	cur, err := lv.read()
	if err != nil {
		return noneSignal, err
	}
	result, err := compoundOp(n.Op, cur, rhs)
	if err != nil {
		return noneSignal, err
	}
	if err := lv.write(result); err != nil {
		return noneSignal, err
	}
	return noneSignal, nil
}

func compoundOp(op lexer.Token, cur, rhs Value) (Value, error) {
	switch op.Kind {
	case lexer.PlusEq:
		if cur.Kind == KindNumber && rhs.Kind == KindNumber {
			return Number(cur.Num + rhs.Num), nil
		}
		if cur.Kind == KindString && rhs.Kind == KindString {
			return String(cur.Str + rhs.Str), nil
		}
		return Nil, typeMismatch(op, "+= requires both operands to be numbers or both strings")
	case lexer.MinusEq:
		return numBinary(op, cur, rhs, func(a, b float64) float64 { return a - b })
	case lexer.StarEq:
		return numBinary(op, cur, rhs, func(a, b float64) float64 { return a * b })
	case lexer.SlashEq:
		return numBinary(op, cur, rhs, func(a, b float64) float64 { return a / b })
	case lexer.PercentEq:
		return numBinary(op, cur, rhs, math.Mod)
	default:
		return Nil, internalError(op, "unreachable assignment operator")
	}
}

// execVarDecl implements spec.md §4.4 "VarDecl".
func (ev *Evaluator) execVarDecl(n *ast.VarDecl) (Signal, error) {
	v, err := ev.evalValue(n.Initializer)
	if err != nil {
		return noneSignal, err
	}
	if err := ev.env.Declare(n.Name.Text, v); err != nil {
		return noneSignal, &RuntimeError{Kind: DoubleDeclaration, Message: err.Error(), Pos: n.Name.Pos, Cause: err}
	}
	return noneSignal, nil
}

// execBlock implements spec.md §4.4 "Block": extends env, runs statements
// until a non-None signal, and restores the previous env on every exit path
// via defer — including error returns (spec.md §5 environment discipline).
func (ev *Evaluator) execBlock(b *ast.Block) (Signal, error) {
	prev := ev.env
	ev.env = prev.Extend()
	defer func() { ev.env = prev }()
	for _, s := range b.Statements {
		sig, err := ev.execStmt(s)
		if err != nil {
			return noneSignal, err
		}
		if sig.Kind != SignalNone {
			return sig, nil
		}
	}
	return noneSignal, nil
}

func (ev *Evaluator) execIf(n *ast.If) (Signal, error) {
	cond, err := ev.evalValue(n.Cond)
	if err != nil {
		return noneSignal, err
	}
	if Truthy(cond) {
		return ev.execStmt(n.Then)
	}
	if n.Else != nil {
		return ev.execStmt(n.Else)
	}
	return noneSignal, nil
}

// execWhile implements spec.md §4.4 "While": Break stops the loop and
// yields None; Return propagates; Continue (and None) just re-evaluate cond.
func (ev *Evaluator) execWhile(n *ast.While) (Signal, error) {
	for {
		cond, err := ev.evalValue(n.Cond)
		if err != nil {
			return noneSignal, err
		}
		if !Truthy(cond) {
			return noneSignal, nil
		}
		sig, err := ev.execStmt(n.Body)
		if err != nil {
			return noneSignal, err
		}
		switch sig.Kind {
		case SignalBreak:
			return noneSignal, nil
		case SignalReturn:
			return sig, nil
		}
	}
}

// execFor implements spec.md §4.4 "For": a fresh frame for init, an absent
// condition treated as always-true, and the same break/return handling as
// While, with Step run after a non-terminal body iteration.
func (ev *Evaluator) execFor(n *ast.For) (Signal, error) {
	prev := ev.env
	ev.env = prev.Extend()
	defer func() { ev.env = prev }()

	if n.Init != nil {
		if _, err := ev.execStmt(n.Init); err != nil {
			return noneSignal, err
		}
	}
	for {
		if n.Cond != nil {
			cond, err := ev.evalValue(n.Cond)
			if err != nil {
				return noneSignal, err
			}
			if !Truthy(cond) {
				return noneSignal, nil
			}
		}
		sig, err := ev.execStmt(n.Body)
		if err != nil {
			return noneSignal, err
		}
		switch sig.Kind {
		case SignalBreak:
			return noneSignal, nil
		case SignalReturn:
			return sig, nil
		}
		if n.Step != nil {
			if _, err := ev.execStmt(n.Step); err != nil {
				return noneSignal, err
			}
		}
	}
}
