// Package script builds instruction trees from Lua scripts.
//
// Scripts see a global table Tweet with constructors for every node kind and
// must return the root instruction:
//
//	local jab = Tweet.punch("left")
//	return Tweet.list(jab, Tweet.walk("right"), Tweet.jump("left"):times(3))
package script

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	"tweetlang/pkg/action"
	"tweetlang/pkg/compiler"
	"tweetlang/pkg/instruction"
)

const instructionTypeName = "instruction"

// LoadFile runs the Lua script at path and returns the instruction it returns.
func LoadFile(path string) (instruction.Instruction, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return run(state, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// LoadString runs src as a Lua chunk called name.
func LoadString(name, src string) (instruction.Instruction, error) {
	state := newState()
	if err := lua.LoadBuffer(state, src, name, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return run(state, name)
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerInstructionType(state)
	registerConstructors(state)
	return state
}

func run(state *lua.State, name string) (instruction.Instruction, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("script %s must return an instruction", name)
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	instr, ok := ud.(instruction.Instruction)
	if !ok || instr == nil {
		return nil, fmt.Errorf("script %s returned invalid instruction", name)
	}
	slog.Debug("script loaded", "script", name, "instruction", instr.String())
	return instr, nil
}

func registerInstructionType(state *lua.State) {
	lua.NewMetaTable(state, instructionTypeName)
	lua.SetFunctions(state, []lua.RegistryFunction{
		{Name: "__tostring", Function: instructionToString},
	}, 0)
	state.NewTable()
	lua.SetFunctions(state, instructionMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerConstructors(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, constructors, 0)
	state.SetGlobal("Tweet")
}

var constructors = []lua.RegistryFunction{
	{Name: "jump", Function: verbConstructor(action.Jump)},
	{Name: "walk", Function: verbConstructor(action.Walk)},
	{Name: "punch", Function: verbConstructor(action.Punch)},
	{Name: "action", Function: tweetAction},
	{Name: "rep", Function: tweetRep},
	{Name: "list", Function: tweetList},
	{Name: "parse", Function: tweetParse},
}

var instructionMethods = []lua.RegistryFunction{
	{Name: "times", Function: tweetRep},
}

func pushInstruction(state *lua.State, instr instruction.Instruction) int {
	state.PushUserData(instr)
	lua.SetMetaTableNamed(state, instructionTypeName)
	return 1
}

func checkInstruction(state *lua.State, index int) instruction.Instruction {
	ud := lua.CheckUserData(state, index, instructionTypeName)
	if instr, ok := ud.(instruction.Instruction); ok && instr != nil {
		return instr
	}
	lua.ArgumentError(state, index, "instruction expected")
	return nil
}

func checkDirection(state *lua.State, index int) action.Direction {
	dir, err := action.ParseDirection(lua.CheckString(state, index))
	if err != nil {
		lua.ArgumentError(state, index, err.Error())
	}
	return dir
}

func verbConstructor(verb action.Verb) lua.Function {
	return func(state *lua.State) int {
		dir := checkDirection(state, 1)
		return pushInstruction(state, instruction.Do(action.New(verb, dir)))
	}
}

// tweetAction is Tweet.action(verb, direction).
func tweetAction(state *lua.State) int {
	verb, err := action.ParseVerb(lua.CheckString(state, 1))
	if err != nil {
		lua.ArgumentError(state, 1, err.Error())
	}
	dir := checkDirection(state, 2)
	return pushInstruction(state, instruction.Do(action.New(verb, dir)))
}

// tweetRep is both Tweet.rep(instr, n) and instr:times(n).
func tweetRep(state *lua.State) int {
	inner := checkInstruction(state, 1)
	count := lua.CheckInteger(state, 2)
	if count < 0 {
		lua.ArgumentError(state, 2, "repetition count must not be negative")
	}
	return pushInstruction(state, instruction.Repeat(inner, uint(count)))
}

// tweetList is Tweet.list(...), taking any number of instructions.
func tweetList(state *lua.State) int {
	n := state.Top()
	items := make([]instruction.Instruction, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, checkInstruction(state, i))
	}
	return pushInstruction(state, instruction.Seq(items...))
}

// tweetParse is Tweet.parse(src): the text grammar embedded in a script.
func tweetParse(state *lua.State) int {
	src := lua.CheckString(state, 1)
	program, err := compiler.Parse(src)
	if err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
	return pushInstruction(state, program)
}

func instructionToString(state *lua.State) int {
	state.PushString(checkInstruction(state, 1).String())
	return 1
}
