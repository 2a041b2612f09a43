package types

import (
	"fmt"
)

type Position struct {
	Line   int
	Column int
}

type TokenKind int

const (
	EOF TokenKind = iota

	LBRACE
	RBRACE
	LPAREN
	RPAREN
	SEMI
	COMMA

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	BANG
	BANGEQ
	EQ
	EQEQ
	LT
	LE
	GT
	GE

	ANDAND
	OROR

	NUMBER
	STRING
	IDENT

	TRUE
	FALSE
	VAR
	IF
	ELSE
	WHILE
	PRINT
)

var kindNames = map[TokenKind]string{
	EOF:     "EOF",
	LBRACE:  "LBRACE",
	RBRACE:  "RBRACE",
	LPAREN:  "LPAREN",
	RPAREN:  "RPAREN",
	SEMI:    "SEMI",
	COMMA:   "COMMA",
	PLUS:    "PLUS",
	MINUS:   "MINUS",
	STAR:    "STAR",
	SLASH:   "SLASH",
	PERCENT: "PERCENT",
	BANG:    "BANG",
	BANGEQ:  "BANGEQ",
	EQ:      "EQ",
	EQEQ:    "EQEQ",
	LT:      "LT",
	LE:      "LE",
	GT:      "GT",
	GE:      "GE",
	ANDAND:  "ANDAND",
	OROR:    "OROR",
	NUMBER:  "NUMBER",
	STRING:  "STRING",
	IDENT:   "IDENT",
	TRUE:    "TRUE",
	FALSE:   "FALSE",
	VAR:     "VAR",
	IF:      "IF",
	ELSE:    "ELSE",
	WHILE:   "WHILE",
	PRINT:   "PRINT",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps reserved spellings to their kind. Lookups take precedence
// over IDENT classification.
var Keywords = map[string]TokenKind{
	"var":   VAR,
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"print": PRINT,
	"true":  TRUE,
	"false": FALSE,
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)@%s", t.Kind, t.Lexeme, t.Pos)
}
