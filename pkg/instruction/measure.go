package instruction

import "math"

// Stats describes a tree without lowering it.
type Stats struct {
	Actions  int  // length of the lowered sequence, saturated at math.MaxInt
	Overflow bool // the lowered length does not fit in an int
	Depth    int  // nodes on the longest root-to-leaf path
	Nodes    int  // non-nil nodes in the tree
}

// Measure computes Stats for i in a single walk. It is cheap even when the
// expansion is huge, which makes it the place to bound trees before Lower.
func Measure(i Instruction) Stats {
	var s Stats
	s.Actions, s.Overflow = count(i)
	s.Depth, s.Nodes = shape(i)
	return s
}

// count returns the lowered length of i and whether it overflowed.
func count(i Instruction) (int, bool) {
	switch n := i.(type) {
	case *Action:
		if n == nil {
			return 0, false
		}
		return 1, false
	case *Repetition:
		if n == nil || n.Count == 0 {
			return 0, false
		}
		inner, overflow := count(n.Inner)
		if inner == 0 {
			return 0, false
		}
		if overflow || uint64(n.Count) > uint64(math.MaxInt/inner) {
			return math.MaxInt, true
		}
		return inner * int(n.Count), false
	case *List:
		if n == nil {
			return 0, false
		}
		total := 0
		for _, item := range n.Items {
			c, overflow := count(item)
			if overflow || c > math.MaxInt-total {
				return math.MaxInt, true
			}
			total += c
		}
		return total, false
	}
	return 0, false
}

func shape(i Instruction) (depth, nodes int) {
	switch n := i.(type) {
	case *Action:
		if n == nil {
			return 0, 0
		}
		return 1, 1
	case *Repetition:
		if n == nil {
			return 0, 0
		}
		d, c := shape(n.Inner)
		return d + 1, c + 1
	case *List:
		if n == nil {
			return 0, 0
		}
		maxDepth, total := 0, 1
		for _, item := range n.Items {
			d, c := shape(item)
			maxDepth = max(maxDepth, d)
			total += c
		}
		return maxDepth + 1, total
	}
	return 0, 0
}
