package instruction

import (
	"math"
	"testing"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		name  string
		input Instruction
		want  Stats
	}{
		{"Nil", nil, Stats{}},
		{"Leaf", Do(punchLeft), Stats{Actions: 1, Depth: 1, Nodes: 1}},
		{"Empty List", Seq(), Stats{Actions: 0, Depth: 1, Nodes: 1}},
		{"Zero Repetition", Repeat(Do(jumpLeft), 0), Stats{Actions: 0, Depth: 2, Nodes: 2}},
		{
			"Program",
			Seq(Do(punchLeft), Do(walkRight), Repeat(Do(jumpLeft), 3)),
			Stats{Actions: 5, Depth: 3, Nodes: 5},
		},
		{
			"Nested",
			Repeat(Repeat(Do(jumpLeft), 1000), 1000),
			Stats{Actions: 1_000_000, Depth: 3, Nodes: 3},
		},
		{
			"Huge Count Over Nothing",
			Repeat(Seq(), ^uint(0)),
			Stats{Actions: 0, Depth: 2, Nodes: 2},
		},
		{
			"Overflow",
			Repeat(Repeat(Do(jumpLeft), math.MaxInt/2+1), 2),
			Stats{Actions: math.MaxInt, Overflow: true, Depth: 3, Nodes: 3},
		},
		{
			"Overflow In List",
			Seq(Repeat(Do(jumpLeft), math.MaxInt), Do(walkRight)),
			Stats{Actions: math.MaxInt, Overflow: true, Depth: 3, Nodes: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Measure(tt.input); got != tt.want {
				t.Errorf("Measure(%v) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMeasureAgreesWithLower(t *testing.T) {
	for _, tree := range randomTrees(100) {
		s := Measure(tree)
		if s.Overflow {
			t.Fatalf("unexpected overflow for %v", tree)
		}
		if n := len(Lower(tree)); s.Actions != n {
			t.Errorf("Measure(%v).Actions = %d, len(Lower) = %d", tree, s.Actions, n)
		}
	}
}
