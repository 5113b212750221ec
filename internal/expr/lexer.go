package expr

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Literals & identifiers
	NUMBER
	IDENT

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	POW

	// Punctuation
	LROUND
	RROUND
)

var tokenNames = map[TokenType]string{
	EOF:     "end of input",
	ILLEGAL: "illegal",
	NUMBER:  "number",
	IDENT:   "identifier",
	PLUS:    "'+'",
	MINUS:   "'-'",
	MULT:    "'*'",
	DIV:     "'/'",
	POW:     "'^'",
	LROUND:  "'('",
	RROUND:  "')'",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token with its byte offset in the source.
type Token struct {
	Type   TokenType
	Lexeme string
	Number float64 // valid when Type == NUMBER
	Pos    int
}

// lex splits src into tokens, ending with EOF.
func lex(src string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(src) {
		r, w := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += w
		case isDigit(r) || (r == '.' && i+1 < len(src) && isDigit(rune(src[i+1]))):
			tok, err := lexNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += len(tok.Lexeme)
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(src) {
				r, w = utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += w
			}
			toks = append(toks, Token{Type: IDENT, Lexeme: src[start:i], Pos: start})
		default:
			typ, ok := punct[r]
			if !ok {
				return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
			if r == '*' && i+1 < len(src) && src[i+1] == '*' {
				toks = append(toks, Token{Type: POW, Lexeme: "**", Pos: i})
				i += 2
				continue
			}
			toks = append(toks, Token{Type: typ, Lexeme: string(r), Pos: i})
			i += w
		}
	}
	toks = append(toks, Token{Type: EOF, Pos: len(src)})
	return toks, nil
}

var punct = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': MULT,
	'/': DIV,
	'^': POW,
	'(': LROUND,
	')': RROUND,
}

// lexNumber scans a decimal literal with optional fraction and exponent.
func lexNumber(src string, start int) (Token, error) {
	i := start
	for i < len(src) && isDigit(rune(src[i])) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(rune(src[i])) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(rune(src[j])) {
			i = j
			for i < len(src) && isDigit(rune(src[i])) {
				i++
			}
		}
	}
	lexeme := src[start:i]
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return Token{}, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid number %q", lexeme)}
	}
	return Token{Type: NUMBER, Lexeme: lexeme, Number: v, Pos: start}, nil
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }
