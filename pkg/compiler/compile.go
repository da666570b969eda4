package compiler

import (
	"tweetlang/pkg/action"
	"tweetlang/pkg/instruction"
)

// Compile parses src and lowers the resulting program into the ordered
// action sequence it describes.
func Compile(src string) ([]action.Action, error) {
	program, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return instruction.Lower(program), nil
}
