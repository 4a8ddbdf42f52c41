// Package ast defines the trash-lang abstract syntax tree (spec.md §3):
// two disjoint sums, Expression and Statement, expressed as Go interfaces
// with unexported marker methods — the idiomatic typed-node-per-kind shape
// used across the retrieval pack's scripting-language front ends (grounded
// most directly on agenthands-npython/pkg/compiler/ast/ast.go, which uses
// distinct structs per node rather than one generic tagged node the way the
// teacher's parse.Node does; spec.md §3 calls for the same disjoint-sum
// shape).
package ast

import "github.com/TheMartin/trash-lang/lexer"

// Expression is any of the expression node kinds in spec.md §3.
type Expression interface {
	exprNode()
	Pos() lexer.Position
}

// Statement is any of the statement node kinds in spec.md §3.
type Statement interface {
	stmtNode()
	Pos() lexer.Position
}

// Program is the root of a parsed source file: a sequence of top-level
// statements (spec.md §4.3's `program := statement* eof`). It executes in
// the caller-supplied environment directly, unlike Block, which always
// extends the environment with a fresh child frame.
type Program struct {
	Statements []Statement
}

// ---- Expressions ----

// Literal is a string/number/boolean/nil literal token.
type Literal struct {
	Token lexer.Token
}

func (*Literal) exprNode()            {}
func (n *Literal) Pos() lexer.Position { return n.Token.Pos }

// Identifier is a bare name reference.
type Identifier struct {
	Token lexer.Token
}

func (*Identifier) exprNode()            {}
func (n *Identifier) Pos() lexer.Position { return n.Token.Pos }

// ObjectPair is one (key, value) entry of an ObjectDef. Key is either an
// Identifier (used verbatim as a string key) or any other expression
// (evaluated at construction time) — spec.md §3.
type ObjectPair struct {
	Key   Expression
	Value Expression
}

// ObjectDef constructs an object from an ordered sequence of key/value
// pairs.
type ObjectDef struct {
	StartPos lexer.Position
	Pairs    []ObjectPair
}

func (*ObjectDef) exprNode()            {}
func (n *ObjectDef) Pos() lexer.Position { return n.StartPos }

// FunctionDef is a function literal: an ordered parameter list (no
// defaults, no rest — spec.md §3) and a Block body.
type FunctionDef struct {
	StartPos lexer.Position
	Params   []lexer.Token
	Body     *Block
}

func (*FunctionDef) exprNode()            {}
func (n *FunctionDef) Pos() lexer.Position { return n.StartPos }

// Unary is a prefix operator applied to one operand.
type Unary struct {
	Op  lexer.Token
	Rhs Expression
}

func (*Unary) exprNode()            {}
func (n *Unary) Pos() lexer.Position { return n.Op.Pos }

// Binary is an infix operator applied to two operands.
type Binary struct {
	Op       lexer.Token
	Lhs, Rhs Expression
}

func (*Binary) exprNode()            {}
func (n *Binary) Pos() lexer.Position { return n.Op.Pos }

// Call invokes callee with an ordered argument list.
type Call struct {
	StartPos lexer.Position
	Callee   Expression
	Args     []Expression
}

func (*Call) exprNode()            {}
func (n *Call) Pos() lexer.Position { return n.StartPos }

// BracketAccess is lhs[index].
type BracketAccess struct {
	StartPos lexer.Position
	Lhs      Expression
	Index    Expression
}

func (*BracketAccess) exprNode()            {}
func (n *BracketAccess) Pos() lexer.Position { return n.StartPos }

// DotAccess is lhs.ident.
type DotAccess struct {
	Lhs   Expression
	Ident lexer.Token
}

func (*DotAccess) exprNode()            {}
func (n *DotAccess) Pos() lexer.Position { return n.Ident.Pos }

// ---- Statements ----

// Empty is a bare ';'.
type Empty struct {
	StartPos lexer.Position
}

func (*Empty) stmtNode()            {}
func (n *Empty) Pos() lexer.Position { return n.StartPos }

// ExprStmt evaluates an expression for its side effects and discards the
// result.
type ExprStmt struct {
	Expr Expression
}

func (*ExprStmt) stmtNode()            {}
func (n *ExprStmt) Pos() lexer.Position { return n.Expr.Pos() }

// Assignment is `lhs op rhs;` where op is one of =, +=, -=, *=, /=, %=.
type Assignment struct {
	Op       lexer.Token
	Lhs, Rhs Expression
}

func (*Assignment) stmtNode()            {}
func (n *Assignment) Pos() lexer.Position { return n.Op.Pos }

// VarDecl is `var name = initializer;`.
type VarDecl struct {
	StartPos    lexer.Position
	Name        lexer.Token
	Initializer Expression
}

func (*VarDecl) stmtNode()            {}
func (n *VarDecl) Pos() lexer.Position { return n.StartPos }

// Return yields a value from the enclosing function.
type Return struct {
	StartPos lexer.Position
	Expr     Expression
}

func (*Return) stmtNode()            {}
func (n *Return) Pos() lexer.Position { return n.StartPos }

// Break exits the nearest enclosing loop.
type Break struct {
	StartPos lexer.Position
}

func (*Break) stmtNode()            {}
func (n *Break) Pos() lexer.Position { return n.StartPos }

// Continue skips to the next iteration of the nearest enclosing loop.
type Continue struct {
	StartPos lexer.Position
}

func (*Continue) stmtNode()            {}
func (n *Continue) Pos() lexer.Position { return n.StartPos }

// Block is a brace-delimited statement sequence, its own lexical scope.
type Block struct {
	StartPos   lexer.Position
	Statements []Statement
}

func (*Block) stmtNode()            {}
func (n *Block) Pos() lexer.Position { return n.StartPos }

// If is `if (cond) then [else else]`.
type If struct {
	StartPos  lexer.Position
	Cond      Expression
	Then      Statement
	Else      Statement // nil if absent
}

func (*If) stmtNode()            {}
func (n *If) Pos() lexer.Position { return n.StartPos }

// While is `while (cond) body`.
type While struct {
	StartPos lexer.Position
	Cond     Expression
	Body     Statement
}

func (*While) stmtNode()            {}
func (n *While) Pos() lexer.Position { return n.StartPos }

// For is `for (init?; cond?; step?) body`. Init may be an Assignment or a
// VarDecl without its trailing semicolon (spec.md §4.3's forInit); Cond and
// Step are nil when absent.
type For struct {
	StartPos lexer.Position
	Init     Statement
	Cond     Expression
	Step     Statement
	Body     Statement
}

func (*For) stmtNode()            {}
func (n *For) Pos() lexer.Position { return n.StartPos }
