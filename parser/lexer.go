package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode"
)

const eof = -1

// Lexer turns expression text into tokens. Semicolons and newlines both
// come out as SEP.
type Lexer struct {
	lookaheadRunes  []rune
	lookaheadWidths []int
	reader          *bufio.Reader
	buf             bytes.Buffer
	pos             int // byte offset from the beginning of the input
	lastError       error

	// Position of the current token
	tokenStartPos  int
	tokenStartLine int
	tokenStartCol  int
	tokenText      string

	// Current line and column (rune based, 1 based)
	line int
	col  int
}

func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		line:   1,
		col:    1,
	}
}

// Error records an error at the current token.
func (l *Lexer) Error(s string) {
	l.lastError = fmt.Errorf("Error at Line %d, Col %d near '%s': %s", l.tokenStartLine, l.tokenStartCol, l.tokenText, s)
}

// LastError is the most recent error raised while scanning.
func (l *Lexer) LastError() error { return l.lastError }

// Pos returns the start byte offset of the most recently lexed token.
func (l *Lexer) Pos() int { return l.tokenStartPos }

// End returns the offset just past the most recently lexed token.
func (l *Lexer) End() int { return l.pos }

// Text returns the raw text of the most recently lexed token.
func (l *Lexer) Text() string { return l.tokenText }

// Position returns the line and column of the most recently lexed token.
func (l *Lexer) Position() (line, col int) { return l.tokenStartLine, l.tokenStartCol }

// --- Rune Reading Helpers (with line/col tracking) ---
func (l *Lexer) read() (r rune, width int) {
	if l.peek() == eof {
		return eof, 0
	}
	r, width = l.lookaheadRunes[0], l.lookaheadWidths[0]
	l.lookaheadRunes, l.lookaheadWidths = l.lookaheadRunes[1:], l.lookaheadWidths[1:]
	l.updatePosition(r, width)
	return r, width
}

func (l *Lexer) updatePosition(r rune, width int) {
	l.pos += width
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) peek() rune {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) rune {
	l.ensureLookAhead(n + 1)
	if n >= len(l.lookaheadRunes) {
		return eof
	}
	return l.lookaheadRunes[n]
}

func (l *Lexer) ensureLookAhead(numchars int) int {
	for len(l.lookaheadRunes) < numchars {
		r, width, err := l.reader.ReadRune()
		if err != nil {
			break
		}
		l.lookaheadRunes = append(l.lookaheadRunes, r)
		l.lookaheadWidths = append(l.lookaheadWidths, width)
	}
	return len(l.lookaheadRunes)
}

// hasPrefix reports whether the upcoming runes spell prefix, consuming them if so.
func (l *Lexer) hasPrefix(prefix string) bool {
	runes := []rune(prefix)
	if l.ensureLookAhead(len(runes)) < len(runes) {
		return false
	}
	for i, r := range runes {
		if l.lookaheadRunes[i] != r {
			return false
		}
	}
	for range runes {
		l.read()
	}
	return true
}

func (l *Lexer) skipWhitespace() {
	for {
		r := l.peek()
		switch {
		case r == '\n':
			return
		case unicode.IsSpace(r):
			l.read()
		case r == '/' && l.peekN(1) == '/':
			for r := l.peek(); r != eof && r != '\n'; r = l.peek() {
				l.read()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool { return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isIdentPart(r rune) bool  { return isIdentStart(r) || isDigit(r) }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }

// Next scans and returns the next token.
func (l *Lexer) Next() Token {
	l.skipWhitespace()
	l.tokenStartPos = l.pos
	l.tokenStartLine = l.line
	l.tokenStartCol = l.col
	l.buf.Reset()

	tok := Token{Pos: l.pos, Line: l.line, Col: l.col}
	tok.Kind = l.scan(&tok)
	l.tokenText = l.buf.String()
	tok.Text = l.tokenText
	tok.End = l.pos
	if tok.Kind == ILLEGAL && l.lastError == nil {
		l.Error("unexpected character")
	}
	return tok
}

func (l *Lexer) take() rune {
	r, _ := l.read()
	l.buf.WriteRune(r)
	return r
}

func (l *Lexer) takeString(s string) bool {
	if l.hasPrefix(s) {
		l.buf.WriteString(s)
		return true
	}
	return false
}

func (l *Lexer) scan(tok *Token) TokenKind {
	r := l.peek()
	switch {
	case r == eof:
		return EOF
	case isIdentStart(r):
		for isIdentPart(l.peek()) {
			l.take()
		}
		return IDENT
	case isDigit(r) || (r == '.' && isDigit(l.peekN(1))):
		return l.scanNumber(tok)
	}

	// two character operators first
	for _, op := range []struct {
		text string
		kind TokenKind
	}{{"<=", LTE}, {">=", GTE}, {"==", EQ}, {"!=", NEQ}, {"&&", AND}, {"||", OR}} {
		if l.takeString(op.text) {
			return op.kind
		}
	}

	switch l.take() {
	case '\n', ';':
		return SEP
	case '(':
		return LPAREN
	case ')':
		return RPAREN
	case '[':
		return LBRACKET
	case ']':
		return RBRACKET
	case ',':
		return COMMA
	case '?':
		return QUESTION
	case ':':
		return COLON
	case '=':
		return ASSIGN
	case '+':
		return PLUS
	case '-':
		return MINUS
	case '*':
		return MUL
	case '/':
		return DIV
	case '%':
		return MOD
	case '^':
		return POW
	case '<':
		return LT
	case '>':
		return GT
	case '!':
		return NOT
	}
	return ILLEGAL
}

// scanNumber reads digits [. digits] [(e|E) [+|-] digits].
func (l *Lexer) scanNumber(tok *Token) TokenKind {
	for isDigit(l.peek()) {
		l.take()
	}
	if l.peek() == '.' {
		l.take()
		for isDigit(l.peek()) {
			l.take()
		}
	}
	if r := l.peek(); r == 'e' || r == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			l.take()
			if next == '+' || next == '-' {
				l.take()
			}
			for isDigit(l.peek()) {
				l.take()
			}
		}
	}
	text := l.buf.String()
	f, err := strconv.ParseFloat(text, 32)
	if err != nil || math.IsInf(f, 0) {
		l.tokenText = text
		l.Error("number out of range")
		return ILLEGAL
	}
	tok.Value = float32(f)
	return NUMBER
}
