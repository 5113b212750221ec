package expr

import (
	"fmt"
	"slices"
	"strings"
)

// Functions lists the elementary functions an expression may call.
var Functions = []string{"log", "exp", "sin", "cos", "tan", "tanh", "sqrt"}

// Expr is a parsed expression together with its variable ordering.
type Expr struct {
	src  string
	root Node
	vars []string
}

// Parse parses src. Variables are ordered by first appearance.
//
// Grammar (lowest to highest precedence):
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := '-' unary | power
//	power   := primary (('^' | '**') unary)?
//	primary := NUMBER | IDENT | IDENT '(' expr ')' | '(' expr ')'
//
// '^' is right associative and binds tighter than unary minus, so -x^2 is
// -(x^2) and 2^-1 is 0.5.
func Parse(src string) (*Expr, error) {
	return parse(src, nil)
}

// ParseWithVars parses src with an explicit variable ordering. Identifiers
// not in vars are rejected with ErrUnknownVariable and a name declared twice
// with ErrDuplicateVar; declared variables that do not occur are allowed and
// have a zero partial.
func ParseWithVars(src string, vars []string) (*Expr, error) {
	if vars == nil {
		vars = []string{}
	}
	return parse(src, vars)
}

// MustParse is like Parse but panics on error. Intended for literals in
// tests and examples.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("expr: %v", err))
	}
	return e
}

func parse(src string, declared []string) (*Expr, error) {
	for i, name := range declared {
		if slices.Contains(declared[:i], name) {
			return nil, fmt.Errorf("%w %q", ErrDuplicateVar, name)
		}
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, fixed: declared != nil, vars: slices.Clone(declared)}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != EOF {
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s", describe(tok))}
	}
	return &Expr{src: src, root: root, vars: p.vars}, nil
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string { return e.src }

// Vars returns the variable names in gradient order.
func (e *Expr) Vars() []string { return slices.Clone(e.vars) }

// NumVars returns the number of variables.
func (e *Expr) NumVars() int { return len(e.vars) }

// Root returns the expression tree.
func (e *Expr) Root() Node { return e.root }

// String returns the canonical, fully parenthesized form.
func (e *Expr) String() string {
	var b strings.Builder
	e.root.write(&b)
	return b.String()
}

type parser struct {
	toks  []Token
	pos   int
	vars  []string
	fixed bool // vars were declared up front
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ TokenType) (Token, error) {
	tok := p.next()
	if tok.Type != typ {
		return tok, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expected %s, found %s", typ, describe(tok))}
	}
	return tok, nil
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Type != PLUS && tok.Type != MINUS {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.Lexeme[0], L: left, R: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Type != MULT && tok.Type != DIV {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.Lexeme[0], L: left, R: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if p.peek().Type == MINUS {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Neg{X: x}, nil
	}
	if p.peek().Type == PLUS {
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != POW {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: '^', L: base, R: foldNeg(exp)}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.Type {
	case NUMBER:
		return &Num{Value: tok.Number}, nil

	case IDENT:
		if p.peek().Type == LROUND {
			return p.parseCall(tok)
		}
		return p.variable(tok)

	case LROUND:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RROUND); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s", describe(tok))}
	}
}

func (p *parser) parseCall(name Token) (Node, error) {
	if !slices.Contains(Functions, name.Lexeme) {
		return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownFunction, name.Lexeme, name.Pos)
	}
	p.next() // '('
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RROUND); err != nil {
		return nil, err
	}
	return &Call{Fn: name.Lexeme, Arg: arg}, nil
}

func (p *parser) variable(tok Token) (Node, error) {
	if i := slices.Index(p.vars, tok.Lexeme); i >= 0 {
		return &Var{Name: tok.Lexeme, Index: i}, nil
	}
	if p.fixed {
		return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownVariable, tok.Lexeme, tok.Pos)
	}
	p.vars = append(p.vars, tok.Lexeme)
	return &Var{Name: tok.Lexeme, Index: len(p.vars) - 1}, nil
}

// foldNeg turns -<literal> into a negative literal so x^-2 uses Powi.
func foldNeg(n Node) Node {
	if neg, ok := n.(*Neg); ok {
		if num, ok := neg.X.(*Num); ok {
			return &Num{Value: -num.Value}
		}
	}
	return n
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return tok.Type.String()
	case NUMBER, IDENT:
		return fmt.Sprintf("%s %q", tok.Type, tok.Lexeme)
	default:
		return tok.Type.String()
	}
}
