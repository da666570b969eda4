package compiler

import (
	"fmt"
	"strings"
	"unicode"
)

// keywords maps lower-cased source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"do":    DO,
	"times": TIMES,
	"jump":  JUMP,
	"walk":  WALK,
	"punch": PUNCH,
	"left":  LEFT,
	"right": RIGHT,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src   []rune
	lines []string
	pos   int // index of the next rune to consume
	line  int // current 1-based source line
	col   int // current 1-based column
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), lines: strings.Split(src, "\n"), line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) errorf(line, col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Line:    line,
		Col:     col,
		Msg:     fmt.Sprintf(format, args...),
		Snippet: snippet(l.lines, line),
	}
}

// scanWord collects a run of letters and classifies it as keyword or WORD.
// The first letter must still be at l.peek().
func (l *Lexer) scanWord() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && unicode.IsLetter(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := WORD
	if kw, ok := keywords[strings.ToLower(lexeme)]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// scanInt collects a decimal integer literal.
// The first digit must still be at l.peek().
func (l *Lexer) scanInt() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	return Token{Type: INTEGER, Lexeme: string(l.src[start:l.pos]), Line: line, Col: col}
}

// nextToken skips whitespace/comments and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return Token{Type: EOF, Lexeme: "", Line: l.line, Col: l.col}, nil
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		break
	}

	ch := l.peek()
	switch {
	case unicode.IsLetter(ch):
		return l.scanWord(), nil
	case isDigit(ch):
		return l.scanInt(), nil
	case ch == '.':
		tok := Token{Type: DOT, Lexeme: ".", Line: l.line, Col: l.col}
		l.advance()
		return tok, nil
	}
	return Token{}, l.errorf(l.line, l.col, "unexpected character %q", ch)
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a *SyntaxError on the first character outside the language.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
