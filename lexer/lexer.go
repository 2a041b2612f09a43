package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minilang", "lexer")

var punctuation = map[rune]types.TokenKind{
	'{': types.LBRACE,
	'}': types.RBRACE,
	'(': types.LPAREN,
	')': types.RPAREN,
	';': types.SEMI,
	',': types.COMMA,
	'+': types.PLUS,
	'-': types.MINUS,
	'*': types.STAR,
	'%': types.PERCENT,
}

type Lexer struct {
	pos    types.Position
	last   types.Position
	width  int
	reader *bufio.Reader
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 1},
		reader: bufio.NewReader(reader),
	}
}

// Lex scans source into tokens. The result always ends with a single EOF
// token positioned where scanning stopped.
func Lex(source string) ([]types.Token, error) {
	return NewLexer(strings.NewReader(source)).All()
}

func (l *Lexer) read() (rune, bool) {
	r, width, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false
		}
		panic(err)
	}

	l.width = width
	l.last = l.pos
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}

	return r, true
}

// backup undoes the last read. Only one rune can be backed up.
func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos = l.last
}

// accept consumes the next character if it is b.
func (l *Lexer) accept(b byte) bool {
	byt, err := l.reader.Peek(1)
	if err != nil {
		if err == io.EOF {
			return false
		}
		panic(err)
	}
	if byt[0] != b {
		return false
	}

	l.read()
	return true
}

func (l *Lexer) fail(at types.Position, msg string, args ...interface{}) {
	panic(errors.LexError{
		Message:  fmt.Sprintf(msg, args...),
		Location: at,
	})
}

func token(kind types.TokenKind, lexeme string, at types.Position) types.Token {
	return types.Token{
		Kind:   kind,
		Lexeme: lexeme,
		Pos:    at,
	}
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) lexWhile(pred func(rune) bool) string {
	var lit strings.Builder

	for {
		r, ok := l.read()
		if !ok {
			return lit.String()
		}
		if !pred(r) {
			l.backup()
			return lit.String()
		}
		lit.WriteRune(r)
	}
}

// lexString should be called with the lexer past the opening quote.
func (l *Lexer) lexString(quote rune, from types.Position) types.Token {
	var lit strings.Builder

	for {
		at := l.pos
		r, ok := l.read()
		if !ok {
			l.fail(at, "unterminated string")
		}

		switch r {
		case quote:
			return token(types.STRING, lit.String(), from)
		case '\n':
			l.fail(at, "unterminated string")
		case utf8.RuneError:
			l.rawRune(&lit)
		default:
			lit.WriteRune(r)
		}
	}
}

// rawRune writes the bytes of the rune just read as they appear in the
// source, so an invalid UTF-8 byte is kept instead of becoming U+FFFD.
func (l *Lexer) rawRune(lit *strings.Builder) {
	if l.width != 1 {
		lit.WriteRune(utf8.RuneError)
		return
	}
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	b, err := l.reader.ReadByte()
	if err != nil {
		panic(err)
	}
	lit.WriteByte(b)
}

func (l *Lexer) skipComment() {
	for {
		r, ok := l.read()
		if !ok {
			return
		}
		if r == '\n' {
			return
		}
	}
}

// pair returns long if the next character is second, short otherwise.
func (l *Lexer) pair(second byte, long, short types.TokenKind, from types.Position) types.Token {
	if l.accept(second) {
		return token(long, kindLexeme(long), from)
	}
	return token(short, kindLexeme(short), from)
}

func kindLexeme(kind types.TokenKind) string {
	switch kind {
	case types.BANG:
		return "!"
	case types.BANGEQ:
		return "!="
	case types.EQ:
		return "="
	case types.EQEQ:
		return "=="
	case types.LT:
		return "<"
	case types.LE:
		return "<="
	case types.GT:
		return ">"
	case types.GE:
		return ">="
	}
	panic("unhandled")
}

// Next scans one token. Malformed input panics with an errors.LexError;
// use All or Lex to get it back as an error.
func (l *Lexer) Next() types.Token {
	for {
		from := l.pos
		r, ok := l.read()
		if !ok {
			return token(types.EOF, "", from)
		}

		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		case '/':
			if l.accept('/') {
				l.skipComment()
				continue
			}
			return token(types.SLASH, "/", from)
		}

		if kind, ok := punctuation[r]; ok {
			return token(kind, string(r), from)
		}

		switch r {
		case '!':
			return l.pair('=', types.BANGEQ, types.BANG, from)
		case '=':
			return l.pair('=', types.EQEQ, types.EQ, from)
		case '<':
			return l.pair('=', types.LE, types.LT, from)
		case '>':
			return l.pair('=', types.GE, types.GT, from)
		case '&':
			if l.accept('&') {
				return token(types.ANDAND, "&&", from)
			}
			l.fail(from, "unexpected '&'")
		case '|':
			if l.accept('|') {
				return token(types.OROR, "||", from)
			}
			l.fail(from, "unexpected '|'")
		case '\'', '"':
			return l.lexString(r, from)
		}

		switch {
		case isDigit(r):
			l.backup()
			return token(types.NUMBER, l.lexWhile(isDigit), from)
		case firstChar(r):
			l.backup()
			lit := l.lexWhile(otherChar)

			if kind, ok := types.Keywords[lit]; ok {
				return token(kind, lit, from)
			}

			return token(types.IDENT, lit, from)
		}

		l.fail(from, "unexpected character %q", r)
	}
}

// All scans the remaining input, up to and including EOF.
func (l *Lexer) All() (tokens []types.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			tokens = nil
			err = tracerr.Wrap(rerr)
		}
	}()

	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == types.EOF {
			break
		}
	}

	plog.Debugf("lexed %d tokens", len(tokens))
	return tokens, nil
}
