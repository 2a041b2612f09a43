package parser

import (
	"strconv"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/minilang/ast"
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
	"github.com/pontaoski/minilang/values"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minilang", "parser")

type Parser struct {
	l stream
}

func NewParser(tokens []types.Token) *Parser {
	return &Parser{l: stream{tokens: tokens}}
}

// Parse turns a token sequence ending in EOF into a program.
func Parse(tokens []types.Token) ([]ast.Stmt, error) {
	return NewParser(tokens).Parse()
}

func (p *Parser) Parse() (program []ast.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				program = nil
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	for !p.l.PeekIs(types.EOF) {
		program = append(program, p.parseStatement())
	}

	plog.Debugf("parsed %d top-level statements", len(program))
	return program, nil
}

func (p *Parser) parseStatement() ast.Stmt {
	tok := p.l.Peek()

	switch tok.Kind {
	case types.LBRACE:
		p.l.Lex()
		return p.parseBlock()
	case types.VAR:
		p.l.Lex()
		return p.parseVarDecl(tok)
	case types.IF:
		p.l.Lex()
		return p.parseIf(tok)
	case types.WHILE:
		p.l.Lex()
		return p.parseWhile(tok)
	case types.PRINT:
		p.l.Lex()
		return p.parsePrint(tok)
	}

	name := p.l.LexExpecting(types.IDENT)
	p.l.LexExpecting(types.EQ)
	value := p.parseExpression()
	p.l.LexExpecting(types.SEMI)

	return ast.Assign{
		Name:  name.Lexeme,
		Value: value,
		Pos:   name.Pos,
	}
}

// parseBlock should be called with the parser past the opening brace
func (p *Parser) parseBlock() ast.Stmt {
	var statements []ast.Stmt

	for !p.l.PeekIs(types.RBRACE, types.EOF) {
		statements = append(statements, p.parseStatement())
	}
	p.l.LexExpecting(types.RBRACE)

	return ast.Block{Stmts: statements}
}

func (p *Parser) parseVarDecl(kw types.Token) ast.Stmt {
	name := p.l.LexExpecting(types.IDENT)

	var init ast.Expr = ast.Literal{Value: values.Integer(0)}
	if _, ok := p.l.Match(types.EQ); ok {
		init = p.parseExpression()
	}
	p.l.LexExpecting(types.SEMI)

	return ast.VarDecl{
		Name: name.Lexeme,
		Init: init,
		Pos:  kw.Pos,
	}
}

func (p *Parser) parseCondition() ast.Expr {
	p.l.LexExpecting(types.LPAREN)
	cond := p.parseExpression()
	p.l.LexExpecting(types.RPAREN)
	return cond
}

func (p *Parser) parseIf(kw types.Token) ast.Stmt {
	cond := p.parseCondition()
	then := p.parseStatement()

	// binds to the innermost if still being parsed
	var elseStmt ast.Stmt
	if _, ok := p.l.Match(types.ELSE); ok {
		elseStmt = p.parseStatement()
	}

	return ast.If{
		Cond: cond,
		Then: then,
		Else: elseStmt,
		Pos:  kw.Pos,
	}
}

func (p *Parser) parseWhile(kw types.Token) ast.Stmt {
	cond := p.parseCondition()

	return ast.While{
		Cond: cond,
		Body: p.parseStatement(),
		Pos:  kw.Pos,
	}
}

func (p *Parser) parsePrint(kw types.Token) ast.Stmt {
	p.l.LexExpecting(types.LPAREN)

	var args []ast.Expr
	if !p.l.PeekIs(types.RPAREN) {
		args = append(args, p.parseExpression())
		for {
			if _, ok := p.l.Match(types.COMMA); !ok {
				break
			}
			args = append(args, p.parseExpression())
		}
	}
	p.l.LexExpecting(types.RPAREN)
	p.l.LexExpecting(types.SEMI)

	return ast.Print{
		Values: args,
		Pos:    kw.Pos,
	}
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

// binaryLevel folds operands of one precedence level left to right.
func (p *Parser) binaryLevel(next func() ast.Expr, ops ...types.TokenKind) ast.Expr {
	expr := next()

	for {
		op, ok := p.l.Match(ops...)
		if !ok {
			return expr
		}
		expr = ast.Binary{
			Left:  expr,
			Op:    op.Lexeme,
			Right: next(),
			Pos:   op.Pos,
		}
	}
}

func (p *Parser) parseOr() ast.Expr {
	return p.binaryLevel(p.parseAnd, types.OROR)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.binaryLevel(p.parseEquality, types.ANDAND)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.binaryLevel(p.parseComparison, types.EQEQ, types.BANGEQ)
}

func (p *Parser) parseComparison() ast.Expr {
	return p.binaryLevel(p.parseTerm, types.LT, types.LE, types.GT, types.GE)
}

func (p *Parser) parseTerm() ast.Expr {
	return p.binaryLevel(p.parseFactor, types.PLUS, types.MINUS)
}

func (p *Parser) parseFactor() ast.Expr {
	return p.binaryLevel(p.parseUnary, types.STAR, types.SLASH, types.PERCENT)
}

func (p *Parser) parseUnary() ast.Expr {
	if op, ok := p.l.Match(types.BANG, types.MINUS); ok {
		return ast.Unary{
			Op:      op.Lexeme,
			Operand: p.parseUnary(),
			Pos:     op.Pos,
		}
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.l.Peek()

	switch tok.Kind {
	case types.NUMBER:
		p.l.Lex()
		parsed, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			panic(errors.HostFault{Err: err, Location: tok.Pos})
		}
		return ast.Literal{Value: values.Integer(parsed)}
	case types.TRUE:
		p.l.Lex()
		return ast.Literal{Value: values.Boolean(true)}
	case types.FALSE:
		p.l.Lex()
		return ast.Literal{Value: values.Boolean(false)}
	case types.STRING:
		p.l.Lex()
		return ast.Literal{Value: values.String(tok.Lexeme)}
	case types.IDENT:
		p.l.Lex()
		return ast.Variable{Name: tok.Lexeme, Pos: tok.Pos}
	case types.LPAREN:
		p.l.Lex()
		expr := p.parseExpression()
		p.l.LexExpecting(types.RPAREN)
		return expr
	}

	panic(errors.ParseError{
		Message:  "expected expression",
		Found:    tok.Kind,
		Location: tok.Pos,
	})
}
