package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"tweetlang/pkg/action"
	"tweetlang/pkg/instruction"
)

// Parser consumes the flat token slice produced by the Lexer and builds an
// instruction tree.
//
// Grammar (keywords are case-insensitive):
//
//	program     = [ instruction { "." instruction } [ "." ] ] EOF
//	instruction = verb direction
//	            | "do" instruction INTEGER "times"
//	verb        = "jump" | "walk" | "punch"
//	direction   = "left" | "right"
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n")}
}

// fmtError builds a SyntaxError positioned at tok.
func (p *Parser) fmtError(tok Token, hint string, format string, args ...any) error {
	return &SyntaxError{
		Line:    tok.Line,
		Col:     tok.Col,
		Msg:     fmt.Sprintf(format, args...),
		Hint:    hint,
		Snippet: snippet(p.sourceLines, tok.Line),
	}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// describe renders tok for error messages.
func describe(tok Token) string {
	if tok.Type == EOF {
		return "end of input"
	}
	return strconv.Quote(tok.Lexeme)
}

// parseProgram parses sentences until EOF. The result is always a List with
// one item per sentence.
func (p *Parser) parseProgram() (*instruction.List, error) {
	items := []instruction.Instruction{}
	for p.peek().Type != EOF {
		instr, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		items = append(items, instr)

		switch tok := p.peek(); tok.Type {
		case DOT:
			p.advance()
		case EOF:
		default:
			return nil, p.fmtError(tok, "", `expected "." after instruction, got %s`, describe(tok))
		}
	}
	return instruction.Seq(items...), nil
}

// parseInstruction handles a single action or a "do ... N times" clause.
func (p *Parser) parseInstruction() (instruction.Instruction, error) {
	tok := p.peek()
	switch {
	case tok.Type == DO:
		return p.parseRepetition()
	case tok.Type.isVerb():
		return p.parseAction()
	}
	return nil, p.fmtError(tok, suggest(tok.Lexeme, startWords),
		`expected "jump", "walk", "punch" or "do", got %s`, describe(tok))
}

// parseAction parses verb direction.
func (p *Parser) parseAction() (instruction.Instruction, error) {
	verbTok := p.advance()
	verb, err := action.ParseVerb(verbTok.Lexeme)
	if err != nil {
		return nil, p.fmtError(verbTok, "", "%v", err)
	}

	dirTok := p.advance()
	if !dirTok.Type.isDirection() {
		return nil, p.fmtError(dirTok, suggest(dirTok.Lexeme, directionWords),
			`expected "left" or "right" after %q, got %s`, verbTok.Lexeme, describe(dirTok))
	}
	dir, err := action.ParseDirection(dirTok.Lexeme)
	if err != nil {
		return nil, p.fmtError(dirTok, "", "%v", err)
	}
	return instruction.Do(action.New(verb, dir)), nil
}

// parseRepetition parses "do" instruction INTEGER "times".
func (p *Parser) parseRepetition() (instruction.Instruction, error) {
	p.advance() // do

	inner, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}

	countTok := p.advance()
	if countTok.Type != INTEGER {
		return nil, p.fmtError(countTok, "", "expected a repetition count, got %s", describe(countTok))
	}
	count, err := strconv.ParseUint(countTok.Lexeme, 10, strconv.IntSize)
	if err != nil {
		return nil, p.fmtError(countTok, "", "repetition count %s is out of range", countTok.Lexeme)
	}

	timesTok := p.advance()
	if timesTok.Type != TIMES {
		hint := ""
		if timesTok.Type == WORD {
			hint = suggest(timesTok.Lexeme, []string{"times"})
		}
		return nil, p.fmtError(timesTok, hint, `expected "times" after %s, got %s`, countTok.Lexeme, describe(timesTok))
	}
	return instruction.Repeat(inner, uint(count)), nil
}

// Parse lexes and parses src into a program. Malformed text yields a
// *SyntaxError and a nil program.
func Parse(src string) (*instruction.List, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens, src).parseProgram()
}
