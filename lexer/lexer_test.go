package lexer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alecthomas/repr"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
)

func mustLex(t *testing.T, source string) []types.Token {
	t.Helper()
	tokens, err := Lex(source)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != types.EOF {
		t.Fatalf("token stream does not end with EOF: %s", repr.String(tokens))
	}
	return tokens
}

func kinds(tokens []types.Token) []types.TokenKind {
	var ret []types.TokenKind
	for _, tok := range tokens {
		ret = append(ret, tok.Kind)
	}
	return ret
}

func sameKinds(a, b []types.TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustFail(t *testing.T, source string) errors.LexError {
	t.Helper()
	_, err := Lex(source)
	if err == nil {
		t.Fatalf("expected a lex error for %q", source)
	}
	lerr, ok := tracerr.Unwrap(err).(errors.LexError)
	if !ok {
		t.Fatalf("expected errors.LexError, got %T: %v", tracerr.Unwrap(err), err)
	}
	return lerr
}

func TestOnlyTrivia(t *testing.T) {
	for _, src := range []string{"", "   ", "\t\r\n", "// just a comment", "// a\n  // b\n"} {
		tokens := mustLex(t, src)
		if len(tokens) != 1 {
			t.Errorf("%q: expected only EOF, got %s", src, repr.String(tokens))
		}
	}
}

func TestEOFPosition(t *testing.T) {
	tokens := mustLex(t, "ab\ncd ")
	eof := tokens[len(tokens)-1]
	if eof.Pos != (types.Position{Line: 2, Column: 4}) {
		t.Errorf("EOF at %s, expected 2:4", eof.Pos)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		src  string
		kind types.TokenKind
	}{
		{"var", types.VAR},
		{"if", types.IF},
		{"else", types.ELSE},
		{"while", types.WHILE},
		{"print", types.PRINT},
		{"true", types.TRUE},
		{"false", types.FALSE},
		{"iffy", types.IDENT},
		{"variable", types.IDENT},
		{"_print2", types.IDENT},
		{"Print", types.IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens := mustLex(t, tt.src)
			if len(tokens) != 2 {
				t.Fatalf("expected one token, got %s", repr.String(tokens))
			}
			if tokens[0].Kind != tt.kind || tokens[0].Lexeme != tt.src {
				t.Errorf("got %s, expected %s(%s)", tokens[0], tt.kind, tt.src)
			}
		})
	}
}

func TestOperators(t *testing.T) {
	tokens := mustLex(t, "{ } ( ) ; , + - * / % ! != = == < <= > >= && ||")
	expected := []types.TokenKind{
		types.LBRACE, types.RBRACE, types.LPAREN, types.RPAREN, types.SEMI, types.COMMA,
		types.PLUS, types.MINUS, types.STAR, types.SLASH, types.PERCENT,
		types.BANG, types.BANGEQ, types.EQ, types.EQEQ,
		types.LT, types.LE, types.GT, types.GE,
		types.ANDAND, types.OROR, types.EOF,
	}
	if !sameKinds(kinds(tokens), expected) {
		t.Fatalf("got %v, expected %v", kinds(tokens), expected)
	}
	if tokens[12].Lexeme != "!=" || tokens[14].Lexeme != "==" {
		t.Errorf("two-character lexemes not kept: %s", repr.String(tokens))
	}
}

func TestLongestMatchWithoutSpaces(t *testing.T) {
	tokens := mustLex(t, "a<=b==c=!d")
	expected := []types.TokenKind{
		types.IDENT, types.LE, types.IDENT, types.EQEQ, types.IDENT,
		types.EQ, types.BANG, types.IDENT, types.EOF,
	}
	if !sameKinds(kinds(tokens), expected) {
		t.Fatalf("got %v, expected %v", kinds(tokens), expected)
	}
}

func TestStrings(t *testing.T) {
	tokens := mustLex(t, `"double" 'single' "it's" '\n'`)
	expected := []string{"double", "single", "it's", `\n`}
	for i, lit := range expected {
		if tokens[i].Kind != types.STRING {
			t.Errorf("token %d: expected STRING, got %s", i, tokens[i].Kind)
		}
		if tokens[i].Lexeme != lit {
			t.Errorf("token %d: expected %q, got %q", i, lit, tokens[i].Lexeme)
		}
	}
}

func TestStringKeepsRawBytes(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"lone invalid byte", "\"\xff\"", "\xff"},
		{"truncated sequence", "'a\xc3b'", "a\xc3b"},
		{"literal replacement char", "\"\uFFFD\"", "\uFFFD"},
		{"multibyte letter", "\"h\u00e9\"", "h\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := mustLex(t, tt.source+" x")
			if tokens[0].Kind != types.STRING || tokens[0].Lexeme != tt.expected {
				t.Fatalf("got %s", repr.String(tokens[0]))
			}
			if tokens[1].Pos != (types.Position{Line: 1, Column: utf8.RuneCountInString(tt.source) + 2}) {
				t.Errorf("identifier after the string at %s", tokens[1].Pos)
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	tokens := mustLex(t, "0 42 007 12ab")
	expected := []types.TokenKind{
		types.NUMBER, types.NUMBER, types.NUMBER, types.NUMBER, types.IDENT, types.EOF,
	}
	if !sameKinds(kinds(tokens), expected) {
		t.Fatalf("got %v, expected %v", kinds(tokens), expected)
	}
	if tokens[2].Lexeme != "007" || tokens[3].Lexeme != "12" {
		t.Errorf("unexpected lexemes: %s", repr.String(tokens))
	}
}

func TestPositions(t *testing.T) {
	tokens := mustLex(t, "var x = 1;\n  print(x); // done\nx")
	expected := []types.Position{
		{Line: 1, Column: 1}, {Line: 1, Column: 5}, {Line: 1, Column: 7}, {Line: 1, Column: 9}, {Line: 1, Column: 10},
		{Line: 2, Column: 3}, {Line: 2, Column: 8}, {Line: 2, Column: 9}, {Line: 2, Column: 10}, {Line: 2, Column: 11},
		{Line: 3, Column: 1}, {Line: 3, Column: 2},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %s", len(expected), repr.String(tokens))
	}
	for i, pos := range expected {
		if tokens[i].Pos != pos {
			t.Errorf("token %d (%s): expected %s", i, tokens[i], pos)
		}
	}
}

func TestCommentRunsToEndOfLine(t *testing.T) {
	tokens := mustLex(t, "a // b c\nd")
	if !sameKinds(kinds(tokens), []types.TokenKind{types.IDENT, types.IDENT, types.EOF}) {
		t.Fatalf("got %s", repr.String(tokens))
	}
	if tokens[1].Lexeme != "d" {
		t.Errorf("expected d after comment, got %s", tokens[1])
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  types.Position
		msg  string
	}{
		{"unterminated at eof", `print("abc`, types.Position{Line: 1, Column: 11}, "unterminated string"},
		{"unterminated at newline", "'ab\n'", types.Position{Line: 1, Column: 4}, "unterminated string"},
		{"lone ampersand", "a & b", types.Position{Line: 1, Column: 3}, "unexpected '&'"},
		{"lone pipe", "\n|", types.Position{Line: 2, Column: 1}, "unexpected '|'"},
		{"unexpected character", "x = 1 # 2", types.Position{Line: 1, Column: 7}, "unexpected character"},
		{"mismatched quotes", `"abc'`, types.Position{Line: 1, Column: 6}, "unterminated string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lerr := mustFail(t, tt.src)
			if lerr.Location != tt.pos {
				t.Errorf("error at %s, expected %s", lerr.Location, tt.pos)
			}
			if !strings.Contains(lerr.Message, tt.msg) {
				t.Errorf("message %q does not mention %q", lerr.Message, tt.msg)
			}
		})
	}
}

func TestNextStreams(t *testing.T) {
	l := NewLexer(strings.NewReader("while (x)"))
	var got []types.TokenKind
	for {
		tok := l.Next()
		got = append(got, tok.Kind)
		if tok.Kind == types.EOF {
			break
		}
	}
	expected := []types.TokenKind{types.WHILE, types.LPAREN, types.IDENT, types.RPAREN, types.EOF}
	if !sameKinds(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
}
