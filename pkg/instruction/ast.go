// Package instruction holds the instruction tree produced by a parser and the
// lowering pass that flattens it into an ordered sequence of actions.
//
// Pipeline: Instruction tree → (Simplify) → Lower / Stream → []action.Action
package instruction

import (
	"fmt"
	"strings"

	"tweetlang/pkg/action"
)

// Instruction is implemented by the three node kinds: *Action, *Repetition and
// *List. The set is closed; the marker method keeps other packages from adding
// variants. A nil Instruction lowers to nothing.
type Instruction interface {
	instructionNode()
	String() string
}

// Action is a leaf that performs a single action.
//
//	punch left.
//	^^^^^^^^^^  Action{Action: Punch(Left)}
type Action struct {
	Action action.Action
}

func (*Action) instructionNode() {}
func (a *Action) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.Action.String()
}

// Repetition lowers Inner once and emits the result Count times in a row.
// A zero Count is legal and yields nothing.
//
//	Do jump left 3 times.
//	   ^^^^^^^^^ ^
//	   Inner     Count
type Repetition struct {
	Inner Instruction
	Count uint
}

func (*Repetition) instructionNode() {}
func (r *Repetition) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Repeat(%s, %d)", nodeString(r.Inner), r.Count)
}

// List is the in-order concatenation of its items.
type List struct {
	Items []Instruction
}

func (*List) instructionNode() {}
func (l *List) String() string {
	if l == nil {
		return "<nil>"
	}
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = nodeString(item)
	}
	return "List[" + strings.Join(parts, ", ") + "]"
}

func nodeString(i Instruction) string {
	if i == nil {
		return "<nil>"
	}
	return i.String()
}

// Do wraps a single action.
func Do(a action.Action) *Action { return &Action{Action: a} }

// Repeat repeats inner n times.
func Repeat(inner Instruction, n uint) *Repetition {
	return &Repetition{Inner: inner, Count: n}
}

// Seq concatenates items in order.
func Seq(items ...Instruction) *List {
	if items == nil {
		items = []Instruction{}
	}
	return &List{Items: items}
}
