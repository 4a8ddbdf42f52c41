package parser

import (
	"github.com/TheMartin/trash-lang/ast"
	"github.com/TheMartin/trash-lang/lexer"
	"github.com/TheMartin/trash-lang/parse"
)

// Forward-reference slots for the mutually recursive expression/statement/
// block productions (spec.md Design Notes: "resolve by late-bound
// trampolines — a shared parser slot filled after construction"), mirroring
// the teacher's own forward-reference pattern in parser.go
// (`var expr, stmt = new(Parser), new(Parser)` wired up in init()).
var (
	exprSlot  parse.Parser[tokenInput, ast.Expression]
	stmtSlot  parse.Parser[tokenInput, ast.Statement]
	blockSlot parse.Parser[tokenInput, *ast.Block]
)

func exprRef(in tokenInput) parse.Result[tokenInput, ast.Expression] { return exprSlot(in) }
func stmtRef(in tokenInput) parse.Result[tokenInput, ast.Statement]  { return stmtSlot(in) }
func blockRef(in tokenInput) parse.Result[tokenInput, *ast.Block]    { return blockSlot(in) }

func init() {
	exprSlot = parse.Tagged[tokenInput, ast.Expression](orExpr, "expression")
	stmtSlot = parse.Tagged[tokenInput, ast.Statement](statement, "statement")
	blockSlot = parse.Tagged[tokenInput, *ast.Block](block, "block")
}

// ---- literals & primary ----

func literalToken(k lexer.Kind) parse.Parser[tokenInput, ast.Expression] {
	return parse.Map[tokenInput, lexer.Token, ast.Expression](tok(k), func(t lexer.Token) ast.Expression {
		return &ast.Literal{Token: t}
	})
}

var literal = parse.Tagged[tokenInput, ast.Expression](
	parse.Either[tokenInput, ast.Expression](
		literalToken(lexer.String),
		literalToken(lexer.Number),
		literalToken(lexer.KwTrue),
		literalToken(lexer.KwFalse),
		literalToken(lexer.KwNil),
	),
	"literal",
)

var identifierExpr = parse.Map[tokenInput, lexer.Token, ast.Expression](
	tok(lexer.Identifier),
	func(t lexer.Token) ast.Expression { return &ast.Identifier{Token: t} },
)

// keyValuePair := (ident | '[' expr ']') ':' expr
func keyValuePair(in tokenInput) parse.Result[tokenInput, ast.ObjectPair] {
	keyParser := parse.Either[tokenInput, ast.Expression](
		parse.Map[tokenInput, lexer.Token, ast.Expression](tok(lexer.Identifier), func(t lexer.Token) ast.Expression {
			return &ast.Identifier{Token: t}
		}),
		parse.Enclosed[tokenInput, lexer.Token, ast.Expression, lexer.Token](
			tok(lexer.LBracket), parse.Parser[tokenInput, ast.Expression](exprRef), tok(lexer.RBracket),
		),
	)
	p := parse.Bind[tokenInput, ast.Expression, ast.ObjectPair](keyParser, func(key ast.Expression) parse.Parser[tokenInput, ast.ObjectPair] {
		return parse.Bind[tokenInput, lexer.Token, ast.ObjectPair](tok(lexer.Colon), func(lexer.Token) parse.Parser[tokenInput, ast.ObjectPair] {
			return parse.Map[tokenInput, ast.Expression, ast.ObjectPair](
				parse.Parser[tokenInput, ast.Expression](exprRef),
				func(v ast.Expression) ast.ObjectPair { return ast.ObjectPair{Key: key, Value: v} },
			)
		})
	})
	return p(in)
}

// objectLit := '{' keyValuePair (',' keyValuePair)* '}'
func objectLit(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	start := in.Pos().(lexer.Position)
	pairs := parse.Separated[tokenInput, ast.ObjectPair, lexer.Token](
		parse.Parser[tokenInput, ast.ObjectPair](keyValuePair), tok(lexer.Comma),
	)
	p := parse.Enclosed[tokenInput, lexer.Token, []ast.ObjectPair, lexer.Token](
		tok(lexer.LBrace), pairs, tok(lexer.RBrace),
	)
	r := p(in)
	if !r.IsOk() {
		return parse.Fail[tokenInput, ast.Expression](r.Err())
	}
	s := r.Unwrap()
	return parse.OkWith[tokenInput, ast.Expression](parse.Success[tokenInput, ast.Expression]{
		Output:          &ast.ObjectDef{StartPos: start, Pairs: s.Output},
		Rest:            s.Rest,
		Consumed:        s.Consumed,
		BestAlternative: s.BestAlternative,
	})
}

// identList := (ident (',' ident)*)?
var identList = parse.Separated[tokenInput, lexer.Token, lexer.Token](tok(lexer.Identifier), tok(lexer.Comma))

// functionLit := 'function' '(' identList ')' block
func functionLit(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	p := parse.Bind[tokenInput, lexer.Token, ast.Expression](tok(lexer.KwFunction), func(kw lexer.Token) parse.Parser[tokenInput, ast.Expression] {
		params := parse.Enclosed[tokenInput, lexer.Token, []lexer.Token, lexer.Token](tok(lexer.LParen), identList, tok(lexer.RParen))
		return parse.Bind[tokenInput, []lexer.Token, ast.Expression](params, func(ps []lexer.Token) parse.Parser[tokenInput, ast.Expression] {
			return parse.Map[tokenInput, *ast.Block, ast.Expression](
				parse.Parser[tokenInput, *ast.Block](blockRef),
				func(b *ast.Block) ast.Expression {
					return &ast.FunctionDef{StartPos: kw.Pos, Params: ps, Body: b}
				},
			)
		})
	})
	return p(in)
}

// groupExpr := '(' expr ')'
var groupExpr = parse.Enclosed[tokenInput, lexer.Token, ast.Expression, lexer.Token](
	tok(lexer.LParen), parse.Parser[tokenInput, ast.Expression](exprRef), tok(lexer.RParen),
)

// primary := literal | objectLit | functionLit | ident | '(' expr ')'
var primary = parse.Tagged[tokenInput, ast.Expression](
	parse.Either[tokenInput, ast.Expression](
		literal,
		parse.Parser[tokenInput, ast.Expression](objectLit),
		parse.Parser[tokenInput, ast.Expression](functionLit),
		identifierExpr,
		groupExpr,
	),
	"expression",
)

// ---- postfix ----

type postfixTail struct {
	kind  postfixKind
	pos   lexer.Position
	index ast.Expression   // bracket
	ident lexer.Token      // dot
	args  []ast.Expression // call
}

type postfixKind int

const (
	tailBracket postfixKind = iota
	tailDot
	tailCall
)

func bracketTail(in tokenInput) parse.Result[tokenInput, postfixTail] {
	p := parse.Bind[tokenInput, lexer.Token, postfixTail](tok(lexer.LBracket), func(lb lexer.Token) parse.Parser[tokenInput, postfixTail] {
		return parse.Bind[tokenInput, ast.Expression, postfixTail](parse.Parser[tokenInput, ast.Expression](exprRef), func(idx ast.Expression) parse.Parser[tokenInput, postfixTail] {
			return parse.Map[tokenInput, lexer.Token, postfixTail](tok(lexer.RBracket), func(lexer.Token) postfixTail {
				return postfixTail{kind: tailBracket, pos: lb.Pos, index: idx}
			})
		})
	})
	return p(in)
}

func dotTail(in tokenInput) parse.Result[tokenInput, postfixTail] {
	p := parse.Bind[tokenInput, lexer.Token, postfixTail](tok(lexer.Dot), func(lexer.Token) parse.Parser[tokenInput, postfixTail] {
		return parse.Map[tokenInput, lexer.Token, postfixTail](tok(lexer.Identifier), func(id lexer.Token) postfixTail {
			return postfixTail{kind: tailDot, pos: id.Pos, ident: id}
		})
	})
	return p(in)
}

var argList = parse.Separated[tokenInput, ast.Expression, lexer.Token](
	parse.Parser[tokenInput, ast.Expression](exprRef), tok(lexer.Comma),
)

func callTail(in tokenInput) parse.Result[tokenInput, postfixTail] {
	p := parse.Bind[tokenInput, lexer.Token, postfixTail](tok(lexer.LParen), func(lp lexer.Token) parse.Parser[tokenInput, postfixTail] {
		return parse.Bind[tokenInput, []ast.Expression, postfixTail](argList, func(args []ast.Expression) parse.Parser[tokenInput, postfixTail] {
			return parse.Map[tokenInput, lexer.Token, postfixTail](tok(lexer.RParen), func(lexer.Token) postfixTail {
				return postfixTail{kind: tailCall, pos: lp.Pos, args: args}
			})
		})
	})
	return p(in)
}

var postfixTailP = parse.Either[tokenInput, postfixTail](bracketTail, dotTail, callTail)

// postfix := primary (('[' expr ']') | ('.' ident) | ('(' argList ')'))*
func postfix(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	p := parse.Bind[tokenInput, ast.Expression, ast.Expression](primary, func(base ast.Expression) parse.Parser[tokenInput, ast.Expression] {
		return parse.Many[tokenInput, postfixTail, ast.Expression](postfixTailP, base, func(acc ast.Expression, t postfixTail) ast.Expression {
			switch t.kind {
			case tailBracket:
				return &ast.BracketAccess{StartPos: t.pos, Lhs: acc, Index: t.index}
			case tailDot:
				return &ast.DotAccess{Lhs: acc, Ident: t.ident}
			default:
				return &ast.Call{StartPos: t.pos, Callee: acc, Args: t.args}
			}
		})
	})
	return p(in)
}

// ---- unary ----

var unaryOps = []lexer.Kind{lexer.Plus, lexer.Minus, lexer.Bang}

func unary(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	for _, k := range unaryOps {
		r := tok(k)(in)
		if r.IsOk() {
			s := r.Unwrap()
			opTok := s.Output
			rhsR := unary(s.Rest)
			if !rhsR.IsOk() {
				e := rhsR.Err()
				e.Consumed = true
				return parse.Fail[tokenInput, ast.Expression](e)
			}
			rs := rhsR.Unwrap()
			return parse.OkWith[tokenInput, ast.Expression](parse.Success[tokenInput, ast.Expression]{
				Output:          &ast.Unary{Op: opTok, Rhs: rs.Output},
				Rest:            rs.Rest,
				Consumed:        true,
				BestAlternative: rs.BestAlternative,
			})
		}
		if r.Err().Consumed {
			return parse.Fail[tokenInput, ast.Expression](r.Err())
		}
	}
	return postfix(in)
}

// ---- left-associative binary precedence levels ----

func binaryLevel(next parse.Parser[tokenInput, ast.Expression], ops ...lexer.Kind) parse.Parser[tokenInput, ast.Expression] {
	opTok := parse.Either[tokenInput, lexer.Token](tokParsers(ops)...)
	type tail struct {
		op  lexer.Token
		rhs ast.Expression
	}
	tailP := parse.Bind[tokenInput, lexer.Token, tail](opTok, func(op lexer.Token) parse.Parser[tokenInput, tail] {
		return parse.Map[tokenInput, ast.Expression, tail](next, func(rhs ast.Expression) tail {
			return tail{op: op, rhs: rhs}
		})
	})
	return parse.Bind[tokenInput, ast.Expression, ast.Expression](next, func(first ast.Expression) parse.Parser[tokenInput, ast.Expression] {
		return parse.Many[tokenInput, tail, ast.Expression](tailP, first, func(acc ast.Expression, t tail) ast.Expression {
			return &ast.Binary{Op: t.op, Lhs: acc, Rhs: t.rhs}
		})
	})
}

func tokParsers(ks []lexer.Kind) []parse.Parser[tokenInput, lexer.Token] {
	out := make([]parse.Parser[tokenInput, lexer.Token], len(ks))
	for i, k := range ks {
		out[i] = tok(k)
	}
	return out
}

var multiplicative = func(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	return binaryLevel(unary, lexer.Star, lexer.Slash, lexer.Percent)(in)
}
var additive = func(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	return binaryLevel(multiplicative, lexer.Plus, lexer.Minus)(in)
}
var relational = func(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	return binaryLevel(additive, lexer.Lt, lexer.LtEq, lexer.Gt, lexer.GtEq)(in)
}
var equality = func(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	return binaryLevel(relational, lexer.Eq, lexer.NotEq)(in)
}
var xorExpr = func(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	return binaryLevel(equality, lexer.Caret)(in)
}
var andExpr = func(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	return binaryLevel(xorExpr, lexer.AndAnd)(in)
}
var orExpr = func(in tokenInput) parse.Result[tokenInput, ast.Expression] {
	return binaryLevel(andExpr, lexer.OrOr)(in)
}

// ---- assignment operators ----

var assignOps = []lexer.Kind{
	lexer.Assign, lexer.PlusEq, lexer.MinusEq, lexer.StarEq, lexer.SlashEq, lexer.PercentEq,
}

var assignOpTok = parse.Either[tokenInput, lexer.Token](tokParsers(assignOps)...)

// ---- statements ----

func semi(p parse.Parser[tokenInput, ast.Statement]) parse.Parser[tokenInput, ast.Statement] {
	return parse.SkipRight[tokenInput, ast.Statement, lexer.Token](p, tok(lexer.Semicolon))
}

// emptyStmt := ';'
func emptyStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	return parse.Map[tokenInput, lexer.Token, ast.Statement](tok(lexer.Semicolon), func(t lexer.Token) ast.Statement {
		return &ast.Empty{StartPos: t.Pos}
	})(in)
}

// varDeclStmt := 'var' ident '=' expr ';'
func varDeclStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	return semi(parse.Tagged[tokenInput, ast.Statement](varDeclNoSemi, "variable declaration"))(in)
}

func varDeclNoSemi(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	p := parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.KwVar), func(kw lexer.Token) parse.Parser[tokenInput, ast.Statement] {
		return parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.Identifier), func(name lexer.Token) parse.Parser[tokenInput, ast.Statement] {
			return parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.Assign), func(lexer.Token) parse.Parser[tokenInput, ast.Statement] {
				return parse.Map[tokenInput, ast.Expression, ast.Statement](
					parse.Parser[tokenInput, ast.Expression](exprRef),
					func(init ast.Expression) ast.Statement {
						return &ast.VarDecl{StartPos: kw.Pos, Name: name, Initializer: init}
					},
				)
			})
		})
	})
	return p(in)
}

// returnStmt := 'return' expr ';'  (bare 'return;' is a parse error per
// spec.md §8: "return requires an expression")
func returnStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	p := parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.KwReturn), func(kw lexer.Token) parse.Parser[tokenInput, ast.Statement] {
		return parse.Map[tokenInput, ast.Expression, ast.Statement](
			parse.Parser[tokenInput, ast.Expression](exprRef),
			func(e ast.Expression) ast.Statement { return &ast.Return{StartPos: kw.Pos, Expr: e} },
		)
	})
	return semi(parse.Tagged[tokenInput, ast.Statement](p, "return statement"))(in)
}

func breakStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	return semi(parse.Map[tokenInput, lexer.Token, ast.Statement](tok(lexer.KwBreak), func(t lexer.Token) ast.Statement {
		return &ast.Break{StartPos: t.Pos}
	}))(in)
}

func continueStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	return semi(parse.Map[tokenInput, lexer.Token, ast.Statement](tok(lexer.KwContinue), func(t lexer.Token) ast.Statement {
		return &ast.Continue{StartPos: t.Pos}
	}))(in)
}

func blockStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	return parse.Map[tokenInput, *ast.Block, ast.Statement](
		parse.Parser[tokenInput, *ast.Block](blockRef),
		func(b *ast.Block) ast.Statement { return b },
	)(in)
}

// block := '{' statement* '}'
func block(in tokenInput) parse.Result[tokenInput, *ast.Block] {
	start := in.Pos().(lexer.Position)
	stmts := parse.Many[tokenInput, ast.Statement, []ast.Statement](
		parse.Parser[tokenInput, ast.Statement](stmtRef), nil,
		func(acc []ast.Statement, s ast.Statement) []ast.Statement { return append(acc, s) },
	)
	p := parse.Enclosed[tokenInput, lexer.Token, []ast.Statement, lexer.Token](tok(lexer.LBrace), stmts, tok(lexer.RBrace))
	r := p(in)
	if !r.IsOk() {
		return parse.Fail[tokenInput, *ast.Block](r.Err())
	}
	s := r.Unwrap()
	return parse.OkWith[tokenInput, *ast.Block](parse.Success[tokenInput, *ast.Block]{
		Output:          &ast.Block{StartPos: start, Statements: s.Output},
		Rest:            s.Rest,
		Consumed:        s.Consumed,
		BestAlternative: s.BestAlternative,
	})
}

// if := 'if' '(' expr ')' statement ('else' statement)?
func ifStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	p := parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.KwIf), func(kw lexer.Token) parse.Parser[tokenInput, ast.Statement] {
		cond := parse.Enclosed[tokenInput, lexer.Token, ast.Expression, lexer.Token](
			tok(lexer.LParen), parse.Parser[tokenInput, ast.Expression](exprRef), tok(lexer.RParen),
		)
		return parse.Bind[tokenInput, ast.Expression, ast.Statement](cond, func(c ast.Expression) parse.Parser[tokenInput, ast.Statement] {
			return parse.Bind[tokenInput, ast.Statement, ast.Statement](parse.Parser[tokenInput, ast.Statement](stmtRef), func(then ast.Statement) parse.Parser[tokenInput, ast.Statement] {
				elseP := parse.Optional[tokenInput, ast.Statement](nil, parse.SkipLeft[tokenInput, lexer.Token, ast.Statement](
					tok(lexer.KwElse), parse.Parser[tokenInput, ast.Statement](stmtRef),
				))
				return parse.Map[tokenInput, ast.Statement, ast.Statement](elseP, func(els ast.Statement) ast.Statement {
					return &ast.If{StartPos: kw.Pos, Cond: c, Then: then, Else: els}
				})
			})
		})
	})
	return parse.Tagged[tokenInput, ast.Statement](p, "if statement")(in)
}

// while := 'while' '(' expr ')' statement
func whileStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	p := parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.KwWhile), func(kw lexer.Token) parse.Parser[tokenInput, ast.Statement] {
		cond := parse.Enclosed[tokenInput, lexer.Token, ast.Expression, lexer.Token](
			tok(lexer.LParen), parse.Parser[tokenInput, ast.Expression](exprRef), tok(lexer.RParen),
		)
		return parse.Bind[tokenInput, ast.Expression, ast.Statement](cond, func(c ast.Expression) parse.Parser[tokenInput, ast.Statement] {
			return parse.Map[tokenInput, ast.Statement, ast.Statement](
				parse.Parser[tokenInput, ast.Statement](stmtRef),
				func(body ast.Statement) ast.Statement { return &ast.While{StartPos: kw.Pos, Cond: c, Body: body} },
			)
		})
	})
	return parse.Tagged[tokenInput, ast.Statement](p, "while statement")(in)
}

// assignmentStmt := lhsExpr assignOp expr (the lhs's validity as an L-value
// is checked by the evaluator, not the parser).
func assignmentTail(lhs ast.Expression) parse.Parser[tokenInput, ast.Statement] {
	return parse.Bind[tokenInput, lexer.Token, ast.Statement](assignOpTok, func(op lexer.Token) parse.Parser[tokenInput, ast.Statement] {
		return parse.Map[tokenInput, ast.Expression, ast.Statement](
			parse.Parser[tokenInput, ast.Expression](exprRef),
			func(rhs ast.Expression) ast.Statement { return &ast.Assignment{Op: op, Lhs: lhs, Rhs: rhs} },
		)
	})
}

// assignment ';' | expr ';' — parse the full expression, then check for a
// trailing assignment operator; otherwise it is an expression statement
// (grounded on the teacher's parser.go parseStmt, which resolves the same
// ambiguity by parsing the left side once and inspecting the lookahead
// rather than re-parsing with a restricted grammar).
func assignmentOrExprStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	p := parse.Bind[tokenInput, ast.Expression, ast.Statement](
		parse.Parser[tokenInput, ast.Expression](exprRef),
		func(e ast.Expression) parse.Parser[tokenInput, ast.Statement] {
			return parse.Optional[tokenInput, ast.Statement](
				&ast.ExprStmt{Expr: e},
				assignmentTail(e),
			)
		},
	)
	return semi(parse.Tagged[tokenInput, ast.Statement](p, "assignment or expression statement"))(in)
}

// forInit := assignment | varDecl-without-trailing-semi
func forInit(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	return parse.Either[tokenInput, ast.Statement](varDeclNoSemi, assignmentNoSemi)(in)
}

func assignmentNoSemi(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	p := parse.Bind[tokenInput, ast.Expression, ast.Statement](
		parse.Parser[tokenInput, ast.Expression](exprRef),
		func(e ast.Expression) parse.Parser[tokenInput, ast.Statement] { return assignmentTail(e) },
	)
	return p(in)
}

// for := 'for' '(' forInit? ';' expr? ';' assignment? ')' statement
func forStmt(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	p := parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.KwFor), func(kw lexer.Token) parse.Parser[tokenInput, ast.Statement] {
		return parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.LParen), func(lexer.Token) parse.Parser[tokenInput, ast.Statement] {
			initP := parse.Optional[tokenInput, ast.Statement](nil, forInit)
			return parse.Bind[tokenInput, ast.Statement, ast.Statement](initP, func(init ast.Statement) parse.Parser[tokenInput, ast.Statement] {
				return parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.Semicolon), func(lexer.Token) parse.Parser[tokenInput, ast.Statement] {
					condP := parse.Optional[tokenInput, ast.Expression](nil, parse.Parser[tokenInput, ast.Expression](exprRef))
					return parse.Bind[tokenInput, ast.Expression, ast.Statement](condP, func(cond ast.Expression) parse.Parser[tokenInput, ast.Statement] {
						return parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.Semicolon), func(lexer.Token) parse.Parser[tokenInput, ast.Statement] {
							stepP := parse.Optional[tokenInput, ast.Statement](nil, assignmentNoSemi)
							return parse.Bind[tokenInput, ast.Statement, ast.Statement](stepP, func(step ast.Statement) parse.Parser[tokenInput, ast.Statement] {
								return parse.Bind[tokenInput, lexer.Token, ast.Statement](tok(lexer.RParen), func(lexer.Token) parse.Parser[tokenInput, ast.Statement] {
									return parse.Map[tokenInput, ast.Statement, ast.Statement](
										parse.Parser[tokenInput, ast.Statement](stmtRef),
										func(body ast.Statement) ast.Statement {
											return &ast.For{StartPos: kw.Pos, Init: init, Cond: cond, Step: step, Body: body}
										},
									)
								})
							})
						})
					})
				})
			})
		})
	})
	return parse.Tagged[tokenInput, ast.Statement](p, "for statement")(in)
}

// statement := ';' | 'var' ... | assignment ';' | expr ';' | block
//            | 'break' ';' | 'continue' ';' | 'return' expr ';'
//            | if | while | for
func statement(in tokenInput) parse.Result[tokenInput, ast.Statement] {
	t := in.Peek()
	switch t.Kind {
	case lexer.Semicolon:
		return emptyStmt(in)
	case lexer.KwVar:
		return varDeclStmt(in)
	case lexer.LBrace:
		// '{' opens either a block or an object-literal expression
		// statement; the block reading is tried first, and its error is
		// reported when neither reading parses.
		r := blockStmt(in)
		if !r.IsOk() {
			if alt := assignmentOrExprStmt(in); alt.IsOk() {
				return alt
			}
		}
		return r
	case lexer.KwBreak:
		return breakStmt(in)
	case lexer.KwContinue:
		return continueStmt(in)
	case lexer.KwReturn:
		return returnStmt(in)
	case lexer.KwIf:
		return ifStmt(in)
	case lexer.KwWhile:
		return whileStmt(in)
	case lexer.KwFor:
		return forStmt(in)
	default:
		return assignmentOrExprStmt(in)
	}
}

// program := statement* eof
func Parse(toks []lexer.Token) (*ast.Program, *parse.Error) {
	in := tokenInput{toks: toks}
	stmts := parse.Many[tokenInput, ast.Statement, []ast.Statement](
		parse.Parser[tokenInput, ast.Statement](stmtRef), nil,
		func(acc []ast.Statement, s ast.Statement) []ast.Statement { return append(acc, s) },
	)
	p := parse.SkipRight[tokenInput, []ast.Statement, lexer.Token](stmts, tok(lexer.EOF))
	r := p(in)
	if !r.IsOk() {
		e := r.Err()
		return nil, &e
	}
	return &ast.Program{Statements: r.Unwrap().Output}, nil
}
