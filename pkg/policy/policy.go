// Package policy decides whether an instruction tree is small enough to lower.
//
// Lowering itself has no bound: nested repetitions can describe more actions
// than fit in memory. A Policy is a boolean expr-lang expression evaluated
// against the tree's static measurements before anything is expanded.
package policy

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"tweetlang/pkg/instruction"
)

// Default admits any tree that expands to at most one million actions.
const Default = `!Overflow && Actions <= 1000000`

// ErrRejected is wrapped by Admit when the expression evaluates to false.
var ErrRejected = errors.New("instruction rejected by policy")

// Env is what a policy expression can see.
type Env struct {
	Actions  int  // expanded length, saturated on overflow
	Overflow bool // the expanded length does not fit in an int
	Depth    int  // longest root-to-leaf path
	Nodes    int  // node count
}

// EnvFor measures i.
func EnvFor(i instruction.Instruction) Env {
	s := instruction.Measure(i)
	return Env{Actions: s.Actions, Overflow: s.Overflow, Depth: s.Depth, Nodes: s.Nodes}
}

// Policy is a compiled admission expression. The zero value and a Policy
// built from an empty source admit everything.
type Policy struct {
	src     string
	program *vm.Program
}

// New compiles src. The expression must evaluate to a bool over Env fields:
//
//	Actions <= 5000 && Depth < 16
func New(src string) (*Policy, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return &Policy{}, nil
	}
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile policy %q: %w", src, err)
	}
	return &Policy{src: src, program: prog}, nil
}

// MustNew is New for expressions known at compile time.
func MustNew(src string) *Policy {
	p, err := New(src)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the expression source, empty when everything is admitted.
func (p *Policy) String() string {
	if p == nil {
		return ""
	}
	return p.src
}

// Check evaluates the policy against precomputed measurements.
func (p *Policy) Check(env Env) error {
	if p == nil || p.program == nil {
		return nil
	}
	result, err := vm.Run(p.program, env)
	if err != nil {
		return fmt.Errorf("evaluate policy %q: %w", p.src, err)
	}
	if ok, _ := result.(bool); !ok {
		slog.Debug("policy rejected instruction", "policy", p.src,
			"actions", env.Actions, "overflow", env.Overflow, "depth", env.Depth, "nodes", env.Nodes)
		return fmt.Errorf("%w: %s (actions=%d overflow=%t depth=%d nodes=%d)",
			ErrRejected, p.src, env.Actions, env.Overflow, env.Depth, env.Nodes)
	}
	return nil
}

// Admit measures i and checks it against the policy.
func (p *Policy) Admit(i instruction.Instruction) error {
	if p == nil || p.program == nil {
		return nil
	}
	return p.Check(EnvFor(i))
}
