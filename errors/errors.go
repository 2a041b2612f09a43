package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pontaoski/minilang/types"
	"github.com/pontaoski/minilang/values"
)

// LexError reports a malformed character stream.
type LexError struct {
	Message  string
	Location types.Position
}

func (e LexError) Error() string {
	return fmt.Sprintf("lex error: %s at %s", e.Message, e.Location)
}

// ParseError reports a token that does not fit the grammar.
type ParseError struct {
	Message  string
	Found    types.TokenKind
	Location types.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error: %s at %s, found %s", e.Message, e.Location, e.Found)
}

// ExpectedOneOfKindGotKind is raised by the token cursor when none of the
// requested kinds is next.
func ExpectedOneOfKindGotKind(expected []types.TokenKind, got types.Token) ParseError {
	msg := fmt.Sprintf("expected %s", expected[0])
	if len(expected) > 1 {
		msg = fmt.Sprintf("expected one of %s", expected)
	}
	return ParseError{
		Message:  msg,
		Found:    got.Kind,
		Location: got.Pos,
	}
}

// RuntimeError reports a reference to or assignment of an unbound name.
type RuntimeError struct {
	Message  string
	Name     string
	Location types.Position
}

func (e RuntimeError) Error() string {
	if e.Location == (types.Position{}) {
		return fmt.Sprintf("runtime error: %s %s", e.Message, e.Name)
	}
	return fmt.Sprintf("runtime error: %s %s at %s", e.Message, e.Name, e.Location)
}

func UndefinedVariable(name string) RuntimeError {
	return RuntimeError{Message: "undefined variable", Name: name}
}

// TypeError reports an operand of the wrong runtime type.
type TypeError struct {
	Expected string
	Context  string
	Actual   values.Value
	Location types.Position
}

func (e TypeError) Error() string {
	return fmt.Sprintf("type error: expected %s in %s, got %s %s at %s",
		e.Expected, e.Context, values.TypeName(e.Actual), values.Quote(e.Actual), e.Location)
}

var ErrDivideByZero = stderrors.New("integer divide by zero")

// HostFault wraps a fault raised by the host rather than by the language,
// such as integer division by zero.
type HostFault struct {
	Err      error
	Location types.Position
}

func (e HostFault) Error() string {
	return fmt.Sprintf("fault: %s at %s", e.Err, e.Location)
}

func (e HostFault) Unwrap() error {
	return e.Err
}
