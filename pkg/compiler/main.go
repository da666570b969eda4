// Package compiler provides the lexer and parser for the action instruction
// language and a Compile helper that runs the whole pipeline.
//
// Pipeline: source text → Lex → Parse → instruction.Lower → []action.Action
//
//	punch left. walk right. Do jump left 3 times.
package compiler
