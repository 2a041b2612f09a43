package ast

import (
	"fmt"
	"strings"

	"github.com/pontaoski/minilang/values"
)

type printer struct {
	out    strings.Builder
	indent int
}

func (p *printer) line(format string, args ...interface{}) {
	p.out.WriteString(strings.Repeat("\t", p.indent))
	fmt.Fprintf(&p.out, format, args...)
	p.out.WriteString("\n")
}

// branch prints the body of an if/else/while. Blocks are printed as-is,
// anything else goes one level deeper.
func (p *printer) branch(s Stmt) {
	if _, ok := s.(Block); ok {
		p.stmt(s)
		return
	}
	p.indent++
	p.stmt(s)
	p.indent--
}

func (p *printer) stmt(s Stmt) {
	switch stmt := s.(type) {
	case Block:
		p.line("{")
		p.indent++
		for _, inner := range stmt.Stmts {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")
	case VarDecl:
		p.line("var %s = %s;", stmt.Name, FormatExpr(stmt.Init))
	case Assign:
		p.line("%s = %s;", stmt.Name, FormatExpr(stmt.Value))
	case If:
		p.line("if %s", condition(stmt.Cond))
		p.branch(stmt.Then)
		if stmt.Else != nil {
			p.line("else")
			p.branch(stmt.Else)
		}
	case While:
		p.line("while %s", condition(stmt.Cond))
		p.branch(stmt.Body)
	case Print:
		var args []string
		for _, v := range stmt.Values {
			args = append(args, FormatExpr(v))
		}
		p.line("print(%s);", strings.Join(args, ", "))
	default:
		panic("unhandled")
	}
}

// Format renders a program as source text. Every unary and binary
// expression is parenthesised, so the output shows how it was grouped.
func Format(program []Stmt) string {
	p := &printer{}
	for _, s := range program {
		p.stmt(s)
	}
	return p.out.String()
}

func FormatExpr(e Expr) string {
	switch expr := e.(type) {
	case Literal:
		if s, ok := expr.Value.(values.String); ok {
			return quote(string(s))
		}
		return expr.Value.String()
	case Variable:
		return expr.Name
	case Unary:
		return fmt.Sprintf("(%s%s)", expr.Op, FormatExpr(expr.Operand))
	case Binary:
		return fmt.Sprintf("(%s %s %s)", FormatExpr(expr.Left), expr.Op, FormatExpr(expr.Right))
	}

	panic("unhandled")
}

// condition parenthesises e unless FormatExpr already did.
func condition(e Expr) string {
	switch e.(type) {
	case Unary, Binary:
		return FormatExpr(e)
	}
	return "(" + FormatExpr(e) + ")"
}

// quote picks a delimiter the content does not contain. Strings have no
// escapes, so a lexed string never holds both kinds of quote.
func quote(s string) string {
	if strings.ContainsRune(s, '"') {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
