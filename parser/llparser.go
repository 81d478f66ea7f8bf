package parser

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/vecalc/decl"
)

// LLParser is a recursive descent parser over a Lexer. Overloads are
// resolved as nodes are built, so every node it returns is concretely typed.
type LLParser struct {
	lexer  *Lexer
	peeked *Token

	// Added to token lines when reporting errors for later source elements.
	LineOffset int
}

func NewLLParser(lexer *Lexer) *LLParser {
	return &LLParser{lexer: lexer}
}

func (p *LLParser) Errorf(tok Token, format string, args ...any) error {
	near := tok.Text
	if tok.Kind == EOF {
		near = "EOF"
	}
	return &SyntaxError{
		Line: tok.Line + p.LineOffset,
		Col:  tok.Col,
		Pos:  tok.Pos,
		Near: near,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (p *LLParser) PeekToken() Token {
	if p.peeked == nil {
		tok := p.lexer.Next()
		p.peeked = &tok
	}
	return *p.peeked
}

func (p *LLParser) Advance() Token {
	tok := p.PeekToken()
	p.peeked = nil
	return tok
}

// Expect checks that the peeked token is one of kinds. It does NOT advance.
func (p *LLParser) Expect(kinds ...TokenKind) (Token, error) {
	tok := p.PeekToken()
	for _, k := range kinds {
		if tok.Kind == k {
			return tok, nil
		}
	}
	if tok.Kind == ILLEGAL {
		if len(tok.Text) > 1 && (isDigit(rune(tok.Text[0])) || tok.Text[0] == '.') {
			return tok, p.Errorf(tok, "number out of range")
		}
		return tok, p.Errorf(tok, "unexpected character")
	}
	if len(kinds) == 1 {
		return tok, p.Errorf(tok, "expected %s, found: %s", TokenString(kinds[0]), TokenString(tok.Kind))
	}
	expected := gfn.Map(kinds, func(k TokenKind) string { return TokenString(k) })
	return tok, p.Errorf(tok, "expected one of: [%s], found: %s", strings.Join(expected, ", "), TokenString(tok.Kind))
}

// Consume expects one of kinds and advances past it.
func (p *LLParser) Consume(kinds ...TokenKind) (Token, error) {
	tok, err := p.Expect(kinds...)
	if err != nil {
		return tok, err
	}
	return p.Advance(), nil
}

// AdvanceIf advances only when the peeked token is one of kinds.
func (p *LLParser) AdvanceIf(kinds ...TokenKind) (Token, bool) {
	tok := p.PeekToken()
	for _, k := range kinds {
		if tok.Kind == k {
			return p.Advance(), true
		}
	}
	return tok, false
}

func span(from, to decl.Node) NodeInfo {
	return NodeInfo{StartPos: from.Pos(), StopPos: to.End()}
}

func tokenSpan(from, to Token) NodeInfo {
	return NodeInfo{StartPos: from.Pos, StopPos: to.End}
}

// ParseStatements parses one source element:
//
//	statements := statement? (SEP statement?)*
func (p *LLParser) ParseStatements() ([]Stmt, error) {
	var out []Stmt
	for {
		switch p.PeekToken().Kind {
		case EOF:
			return out, nil
		case SEP:
			p.Advance()
			continue
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
		if _, err := p.Expect(SEP, EOF); err != nil {
			return nil, err
		}
	}
}

// ParseStatement parses an assignment:
//
//	statement := lhs '=' expr
//	lhs       := REGISTER | VECTOR_REGISTER '[' expr ']'
func (p *LLParser) ParseStatement() (Stmt, error) {
	tok, err := p.Consume(IDENT)
	if err != nil {
		return nil, err
	}
	reg, ok := decl.ParseRegister(tok.Text)
	if !ok {
		return nil, p.Errorf(tok, "unknown register '%s'", tok.Text)
	}
	if !reg.Writable() {
		return nil, p.Errorf(tok, "cannot assign to input register '%s'", tok.Text)
	}

	var target Expr = &RegisterExpr{ExprBase: ExprBase{NodeInfo: tokenSpan(tok, tok)}, Register: reg}
	if p.PeekToken().Kind == LBRACKET {
		if target, err = p.parseIndex(reg, tok); err != nil {
			return nil, err
		}
	}

	eq, err := p.Consume(ASSIGN)
	if err != nil {
		return nil, err
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if value.Type() != target.Type() {
		return nil, p.Errorf(eq, "cannot assign %s value to %s target '%s'", value.Type(), target.Type(), target)
	}
	return &AssignStmt{
		StmtBase: StmtBase{NodeInfo: span(target, value)},
		Target:   target,
		Value:    value,
	}, nil
}

// ParseExpression parses a full expression:
//
//	expr := chain ('?' expr ':' expr)?
//
// The condition of a ternary is coerced to a truth value.
func (p *LLParser) ParseExpression() (Expr, error) {
	cond, err := p.ParseChainedExpr()
	if err != nil {
		return nil, err
	}
	q, ok := p.AdvanceIf(QUESTION)
	if !ok {
		return cond, nil
	}
	then, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.Consume(COLON); err != nil {
		return nil, err
	}
	els, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if then.Type() != els.Type() || then.Type() == decl.BoolType {
		return nil, p.Errorf(q, "conditional branches must both be scalar or both be vector, found %s and %s", then.Type(), els.Type())
	}
	return &CondExpr{
		ExprBase: ExprBase{NodeInfo: span(cond, els)},
		Cond:     truth(cond),
		Then:     then,
		Else:     els,
	}, nil
}

// truth wraps scalar and vector expressions in their implicit truth test.
func truth(e Expr) Expr {
	var op decl.Op
	switch e.Type() {
	case decl.ScalarType:
		op = decl.OpTestScalar
	case decl.VectorType:
		op = decl.OpTestVec
	default:
		return e
	}
	return &UnaryExpr{ExprBase: ExprBase{NodeInfo: span(e, e)}, Op: op, X: e}
}

var binaryPrecedence = map[TokenKind]int{
	OR:    1,
	AND:   2,
	EQ:    3,
	NEQ:   3,
	LT:    4,
	GT:    4,
	LTE:   4,
	GTE:   4,
	PLUS:  5,
	MINUS: 5,
	MUL:   6,
	DIV:   6,
	MOD:   6,
	POW:   7,
}

func (p *LLParser) PrecedenceFor(op TokenKind) int { return binaryPrecedence[op] }

func (p *LLParser) AssociativityFor(op TokenKind) Associativity {
	if op == POW {
		return AssocRight
	}
	return AssocLeft
}

// ParseChainedExpr parses a run of binary operators and folds it by precedence:
//
//	chain := unary (BINOP unary)*
func (p *LLParser) ParseChainedExpr() (Expr, error) {
	first, err := p.ParseUnaryExpr()
	if err != nil {
		return nil, err
	}
	chain := &ChainedExpr{Children: []Expr{first}}
	for {
		tok := p.PeekToken()
		if _, ok := binaryPrecedence[tok.Kind]; !ok {
			break
		}
		p.Advance()
		operand, err := p.ParseUnaryExpr()
		if err != nil {
			return nil, err
		}
		chain.Operators = append(chain.Operators, tok)
		chain.Children = append(chain.Children, operand)
	}
	return chain.Unchain(p, p.combine)
}

// combine picks the overload of a binary operator for its operand sorts.
func (p *LLParser) combine(op Token, x, y Expr) (Expr, error) {
	info := span(x, y)
	switch op.Kind {
	case AND, OR:
		x, y = truth(x), truth(y)
	case MUL:
		// scale is written either way round
		if x.Type() == decl.ScalarType && y.Type() == decl.VectorType {
			x, y = y, x
		}
	}
	dop, ok := decl.LookupOperator(op.Text, x.Type(), y.Type())
	if !ok {
		return nil, p.Errorf(op, "operator '%s' cannot be applied to %s and %s", op.Text, x.Type(), y.Type())
	}
	return &BinaryExpr{ExprBase: ExprBase{NodeInfo: info}, Op: dop, X: x, Y: y}, nil
}

// ParseUnaryExpr parses prefix operators:
//
//	unary := ('-' | '+' | '!') unary | primary
func (p *LLParser) ParseUnaryExpr() (Expr, error) {
	tok, ok := p.AdvanceIf(MINUS, PLUS, NOT)
	if !ok {
		return p.ParsePrimaryExpr()
	}
	x, err := p.ParseUnaryExpr()
	if err != nil {
		return nil, err
	}
	info := NodeInfo{StartPos: tok.Pos, StopPos: x.End()}
	switch tok.Kind {
	case PLUS:
		if x.Type() == decl.BoolType {
			return nil, p.Errorf(tok, "unary '+' cannot be applied to %s", x.Type())
		}
		return x, nil
	case NOT:
		return &UnaryExpr{ExprBase: ExprBase{NodeInfo: info}, Op: decl.OpNot, X: truth(x)}, nil
	}
	switch x.Type() {
	case decl.ScalarType:
		return &UnaryExpr{ExprBase: ExprBase{NodeInfo: info}, Op: decl.OpNeg, X: x}, nil
	case decl.VectorType:
		return &UnaryExpr{ExprBase: ExprBase{NodeInfo: info}, Op: decl.OpNegVec, X: x}, nil
	}
	return nil, p.Errorf(tok, "unary '-' cannot be applied to %s", x.Type())
}

// ParsePrimaryExpr parses operands:
//
//	primary := NUMBER | CONSTANT | register ('[' expr ']')? | FUNC '(' args ')' | '(' expr ')'
func (p *LLParser) ParsePrimaryExpr() (out Expr, err error) {
	tok, err := p.Expect(NUMBER, IDENT, LPAREN)
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case NUMBER:
		p.Advance()
		out = &LiteralExpr{ExprBase: ExprBase{NodeInfo: tokenSpan(tok, tok)}, Value: tok.Value}
	case LPAREN:
		p.Advance()
		if out, err = p.ParseExpression(); err != nil {
			return nil, err
		}
		if _, err = p.Consume(RPAREN); err != nil {
			return nil, err
		}
	case IDENT:
		if out, err = p.parseIdentifier(); err != nil {
			return nil, err
		}
	}
	if lb := p.PeekToken(); lb.Kind == LBRACKET {
		return nil, p.Errorf(lb, "indexing is only allowed on vector registers")
	}
	return out, nil
}

func (p *LLParser) parseIdentifier() (Expr, error) {
	tok := p.Advance()
	name := tok.Text
	if value, ok := NamedConstants[name]; ok {
		return &LiteralExpr{ExprBase: ExprBase{NodeInfo: tokenSpan(tok, tok)}, Value: value, Name: name}, nil
	}
	if reg, ok := decl.ParseRegister(name); ok {
		if p.PeekToken().Kind == LBRACKET {
			return p.parseIndex(reg, tok)
		}
		return &RegisterExpr{ExprBase: ExprBase{NodeInfo: tokenSpan(tok, tok)}, Register: reg}, nil
	}
	if _, ok := decl.FuncSignature(canonicalFunc(name)); ok {
		return p.parseCall(tok)
	}
	return nil, p.Errorf(tok, "unknown identifier '%s'", name)
}

// parseCall parses the argument list of a function whose name has been consumed:
//
//	call := FUNC '(' expr (',' expr)* ')'
func (p *LLParser) parseCall(nameTok Token) (Expr, error) {
	fname := canonicalFunc(nameTok.Text)
	sig, _ := decl.FuncSignature(fname)
	if _, err := p.Consume(LPAREN); err != nil {
		return nil, err
	}
	var args []Expr
	if p.PeekToken().Kind != RPAREN {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if _, ok := p.AdvanceIf(COMMA); !ok {
				break
			}
		}
	}
	rp, err := p.Consume(RPAREN)
	if err != nil {
		return nil, err
	}
	if len(args) != len(sig) {
		return nil, p.Errorf(nameTok, "function '%s' expects %d argument(s), found %d", nameTok.Text, len(sig), len(args))
	}
	types := gfn.Map(args, func(a Expr) decl.ValueType { return a.Type() })
	op, ok := decl.LookupFunc(fname, types...)
	if !ok {
		return nil, p.Errorf(nameTok, "function '%s' expects (%s), found (%s)", nameTok.Text, joinTypes(sig), joinTypes(types))
	}
	return &CallExpr{ExprBase: ExprBase{NodeInfo: tokenSpan(nameTok, rp)}, Op: op, Name: nameTok.Text, Args: args}, nil
}

func joinTypes(types []decl.ValueType) string {
	return strings.Join(gfn.Map(types, func(t decl.ValueType) string { return t.String() }), ", ")
}

// parseIndex parses a component selector after a register name. Literal
// indices become fixed components; anything else is clamped at runtime.
func (p *LLParser) parseIndex(reg decl.Register, regTok Token) (Expr, error) {
	lb := p.Advance()
	if !reg.IsVector() {
		return nil, p.Errorf(lb, "cannot index scalar register '%s'", reg.Name())
	}
	index, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if index.Type() != decl.ScalarType {
		return nil, p.Errorf(lb, "index of '%s' must be a scalar, found %s", reg.Name(), index.Type())
	}
	rb, err := p.Consume(RBRACKET)
	if err != nil {
		return nil, err
	}
	info := tokenSpan(regTok, rb)
	if lit, ok := index.(*LiteralExpr); ok {
		comp := decl.NewComponentExpr(reg, decl.ClampComponent(lit.Value))
		comp.NodeInfo = info
		return comp, nil
	}
	return &IndexExpr{ExprBase: ExprBase{NodeInfo: info}, Register: reg, Index: index}, nil
}
