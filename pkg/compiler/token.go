package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	WORD    // any run of letters that is not a keyword
	INTEGER // decimal repetition count

	// Keywords (matched case-insensitively)
	DO    // "do"
	TIMES // "times"
	JUMP  // "jump"
	WALK  // "walk"
	PUNCH // "punch"
	LEFT  // "left"
	RIGHT // "right"

	// Punctuation
	DOT // . ends a sentence
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:     "EOF",
	WORD:    "WORD",
	INTEGER: "INTEGER",
	DO:      "DO",
	TIMES:   "TIMES",
	JUMP:    "JUMP",
	WALK:    "WALK",
	PUNCH:   "PUNCH",
	LEFT:    "LEFT",
	RIGHT:   "RIGHT",
	DOT:     "DOT",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// isVerb reports whether tt starts an action.
func (tt TokenType) isVerb() bool { return tt == JUMP || tt == WALK || tt == PUNCH }

// isDirection reports whether tt names a direction.
func (tt TokenType) isDirection() bool { return tt == LEFT || tt == RIGHT }

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Col    int    // 1-based column of the first rune
}

func (t Token) String() string {
	return fmt.Sprintf("%-8s %-10q  line %d col %d", t.Type, t.Lexeme, t.Line, t.Col)
}
