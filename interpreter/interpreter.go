// Package interpreter executes parsed programs by walking their trees.
package interpreter

import (
	"fmt"
	"io"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/minilang/ast"
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/lexer"
	"github.com/pontaoski/minilang/parser"
	"github.com/pontaoski/minilang/runtime"
	"github.com/pontaoski/minilang/types"
	"github.com/pontaoski/minilang/values"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minilang", "interpreter")

type Interpreter struct {
	env *runtime.Environment
	out io.Writer
}

// New returns an interpreter with a fresh root scope that prints to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{
		env: runtime.NewEnvironment(nil),
		out: out,
	}
}

// Run lexes, parses and executes source. The first error from any stage
// is returned and nothing after it runs.
func Run(source string, out io.Writer) error {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return err
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return err
	}

	return New(out).Execute(program)
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		rerr, ok := r.(error)
		if !ok {
			panic(r)
		}
		*err = tracerr.Wrap(rerr)
	}
}

// Execute runs the statements of program in order.
func (i *Interpreter) Execute(program []ast.Stmt) (err error) {
	defer recoverInto(&err)

	plog.Debugf("executing %d top-level statements", len(program))
	for _, stmt := range program {
		i.exec(stmt)
	}

	return nil
}

// Evaluate computes e against the interpreter's current scope.
func (i *Interpreter) Evaluate(e ast.Expr) (v values.Value, err error) {
	defer recoverInto(&err)

	return i.eval(e), nil
}

func (i *Interpreter) exec(s ast.Stmt) {
	switch stmt := s.(type) {
	case ast.Block:
		i.execBlock(stmt)
	case ast.VarDecl:
		i.env.Define(stmt.Name, i.eval(stmt.Init))
	case ast.Assign:
		v := i.eval(stmt.Value)
		if err := i.env.Assign(stmt.Name, v); err != nil {
			fail(err, stmt.Pos)
		}
	case ast.If:
		if i.asBool(i.eval(stmt.Cond), "if condition", stmt.Pos) {
			i.exec(stmt.Then)
		} else if stmt.Else != nil {
			i.exec(stmt.Else)
		}
	case ast.While:
		for i.asBool(i.eval(stmt.Cond), "while condition", stmt.Pos) {
			i.exec(stmt.Body)
		}
	case ast.Print:
		i.execPrint(stmt)
	default:
		panic("unhandled")
	}
}

func (i *Interpreter) execBlock(b ast.Block) {
	prev := i.env
	i.env = runtime.NewEnvironment(prev)
	defer func() {
		i.env = prev
	}()

	plog.Tracef("entering block with %d statements", len(b.Stmts))
	for _, stmt := range b.Stmts {
		i.exec(stmt)
	}
}

func (i *Interpreter) execPrint(p ast.Print) {
	parts := make([]string, 0, len(p.Values))
	for _, e := range p.Values {
		parts = append(parts, i.eval(e).String())
	}

	if _, err := fmt.Fprintln(i.out, strings.Join(parts, " ")); err != nil {
		panic(err)
	}
}

// fail attaches a location to an environment error and raises it.
func fail(err error, at types.Position) {
	if rerr, ok := err.(errors.RuntimeError); ok {
		rerr.Location = at
		err = rerr
	}
	panic(err)
}

func (i *Interpreter) asInt(v values.Value, context string, at types.Position) values.Integer {
	if n, ok := v.(values.Integer); ok {
		return n
	}
	panic(errors.TypeError{Expected: "int", Context: context, Actual: v, Location: at})
}

func (i *Interpreter) asBool(v values.Value, context string, at types.Position) values.Boolean {
	if b, ok := v.(values.Boolean); ok {
		return b
	}
	panic(errors.TypeError{Expected: "bool", Context: context, Actual: v, Location: at})
}

func (i *Interpreter) eval(e ast.Expr) values.Value {
	switch expr := e.(type) {
	case ast.Literal:
		return expr.Value
	case ast.Variable:
		v, err := i.env.Get(expr.Name)
		if err != nil {
			fail(err, expr.Pos)
		}
		return v
	case ast.Unary:
		return i.evalUnary(expr)
	case ast.Binary:
		return i.evalBinary(expr)
	}

	panic("unhandled")
}

func (i *Interpreter) evalUnary(u ast.Unary) values.Value {
	operand := i.eval(u.Operand)

	switch u.Op {
	case "!":
		return !i.asBool(operand, "logical not", u.Pos)
	case "-":
		return -i.asInt(operand, "unary minus", u.Pos)
	}

	panic("unhandled")
}

func (i *Interpreter) evalBinary(b ast.Binary) values.Value {
	switch b.Op {
	case "&&":
		if !i.asBool(i.eval(b.Left), "&& left", b.Pos) {
			return values.Boolean(false)
		}
		return i.asBool(i.eval(b.Right), "&& right", b.Pos)
	case "||":
		if i.asBool(i.eval(b.Left), "|| left", b.Pos) {
			return values.Boolean(true)
		}
		return i.asBool(i.eval(b.Right), "|| right", b.Pos)
	}

	left := i.eval(b.Left)
	right := i.eval(b.Right)

	switch b.Op {
	case "==":
		return values.Boolean(values.Equal(left, right))
	case "!=":
		return values.Boolean(!values.Equal(left, right))
	}

	l := i.asInt(left, b.Op+" left", b.Pos)
	r := i.asInt(right, b.Op+" right", b.Pos)

	switch b.Op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/", "%":
		if r == 0 {
			panic(errors.HostFault{Err: errors.ErrDivideByZero, Location: b.Pos})
		}
		if b.Op == "/" {
			return l / r
		}
		return l % r
	case "<":
		return values.Boolean(l < r)
	case "<=":
		return values.Boolean(l <= r)
	case ">":
		return values.Boolean(l > r)
	case ">=":
		return values.Boolean(l >= r)
	}

	panic("unhandled")
}
