package instruction

import "math/bits"

const maxCount = ^uint(0)

// Simplify returns a smaller tree that lowers to exactly the same sequence.
//
// Rewrites applied bottom-up:
//   - nested Lists are spliced into their parent
//   - zero repetitions, empty Lists and nil nodes are dropped
//   - Repeat(x, 1) becomes x
//   - Repeat(Repeat(x, m), n) becomes Repeat(x, m*n) unless m*n overflows
//   - a List with a single item becomes that item
//
// A tree that lowers to nothing simplifies to an empty List. The input tree
// is left untouched; unchanged leaves are shared with the result.
func Simplify(i Instruction) Instruction {
	if s := simplify(i); s != nil {
		return s
	}
	return Seq()
}

// simplify returns nil when i lowers to nothing.
func simplify(i Instruction) Instruction {
	switch n := i.(type) {
	case *Action:
		if n == nil {
			return nil
		}
		return n
	case *Repetition:
		if n == nil || n.Count == 0 {
			return nil
		}
		inner := simplify(n.Inner)
		if inner == nil {
			return nil
		}
		if n.Count == 1 {
			return inner
		}
		if r, ok := inner.(*Repetition); ok {
			if hi, lo := bits.Mul64(uint64(r.Count), uint64(n.Count)); hi == 0 && lo <= uint64(maxCount) {
				return &Repetition{Inner: r.Inner, Count: uint(lo)}
			}
		}
		return &Repetition{Inner: inner, Count: n.Count}
	case *List:
		if n == nil {
			return nil
		}
		var items []Instruction
		for _, item := range n.Items {
			switch s := simplify(item).(type) {
			case nil:
			case *List:
				items = append(items, s.Items...)
			default:
				items = append(items, s)
			}
		}
		switch len(items) {
		case 0:
			return nil
		case 1:
			return items[0]
		}
		return &List{Items: items}
	}
	return nil
}
