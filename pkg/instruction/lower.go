package instruction

import (
	"iter"

	"tweetlang/pkg/action"
)

// Lower flattens i into the ordered sequence of actions it describes.
//
// Every tree lowers and the input is never modified. The result is never nil;
// a tree that describes nothing lowers to an empty slice.
//
// Nested repetitions multiply, so the output can be exponential in tree depth.
// Callers that accept untrusted trees should bound them first (see Measure).
func Lower(i Instruction) []action.Action {
	return lowerInto(make([]action.Action, 0), i)
}

func lowerInto(dst []action.Action, i Instruction) []action.Action {
	switch n := i.(type) {
	case *Action:
		if n != nil {
			dst = append(dst, n.Action)
		}
	case *Repetition:
		if n == nil || n.Count == 0 {
			return dst
		}
		once := Lower(n.Inner)
		if len(once) == 0 {
			return dst
		}
		for range n.Count {
			dst = append(dst, once...)
		}
	case *List:
		if n == nil {
			return dst
		}
		for _, item := range n.Items {
			dst = lowerInto(dst, item)
		}
	}
	return dst
}

// Stream yields the same sequence as Lower without materializing it.
// Repetitions are replayed by walking the inner tree again, so memory stays
// proportional to tree depth. Breaking out of the range loop stops the walk.
func Stream(i Instruction) iter.Seq[action.Action] {
	return func(yield func(action.Action) bool) {
		walk(i, yield)
	}
}

// walk reports false once yield has asked to stop.
func walk(i Instruction, yield func(action.Action) bool) bool {
	switch n := i.(type) {
	case *Action:
		if n == nil {
			return true
		}
		return yield(n.Action)
	case *Repetition:
		if n == nil || n.Count == 0 || !producesAny(n.Inner) {
			return true
		}
		for range n.Count {
			if !walk(n.Inner, yield) {
				return false
			}
		}
	case *List:
		if n == nil {
			return true
		}
		for _, item := range n.Items {
			if !walk(item, yield) {
				return false
			}
		}
	}
	return true
}

// producesAny reports whether i lowers to at least one action.
func producesAny(i Instruction) bool {
	switch n := i.(type) {
	case *Action:
		return n != nil
	case *Repetition:
		return n != nil && n.Count > 0 && producesAny(n.Inner)
	case *List:
		if n == nil {
			return false
		}
		for _, item := range n.Items {
			if producesAny(item) {
				return true
			}
		}
	}
	return false
}
