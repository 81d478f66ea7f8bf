package parser

import "fmt"

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL
	NUMBER
	IDENT
	SEP // ';' or newline

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COMMA
	QUESTION
	COLON
	ASSIGN

	PLUS
	MINUS
	MUL
	DIV
	MOD
	POW
	LT
	GT
	LTE
	GTE
	EQ
	NEQ
	AND
	OR
	NOT
)

var tokenNames = map[TokenKind]string{
	EOF:      "end of input",
	ILLEGAL:  "illegal character",
	NUMBER:   "number",
	IDENT:    "identifier",
	SEP:      "';'",
	LPAREN:   "'('",
	RPAREN:   "')'",
	LBRACKET: "'['",
	RBRACKET: "']'",
	COMMA:    "','",
	QUESTION: "'?'",
	COLON:    "':'",
	ASSIGN:   "'='",
	PLUS:     "'+'",
	MINUS:    "'-'",
	MUL:      "'*'",
	DIV:      "'/'",
	MOD:      "'%'",
	POW:      "'^'",
	LT:       "'<'",
	GT:       "'>'",
	LTE:      "'<='",
	GTE:      "'>='",
	EQ:       "'=='",
	NEQ:      "'!='",
	AND:      "'&&'",
	OR:       "'||'",
	NOT:      "'!'",
}

// TokenString names a token kind for error messages.
func TokenString(kind TokenKind) string {
	if name, ok := tokenNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(kind))
}

func (k TokenKind) String() string { return TokenString(k) }

// Token is one lexical unit. Value is set for NUMBER tokens.
type Token struct {
	Kind  TokenKind
	Text  string
	Value float32
	Pos   int // byte offset of the first character
	End   int // byte offset just past the token
	Line  int
	Col   int
}
