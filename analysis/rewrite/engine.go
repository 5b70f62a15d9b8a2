// Package rewrite drives the per-kind rules of package ast over whole trees:
// bottom-up simplification to a fixpoint, and the whole-model passes
// (quantifier unrolling, variable deletion, common subexpression
// elimination) that run between simplifications.
package rewrite

import (
	"errors"
	"fmt"

	"github.com/crow-cp/crow/analysis/ast"
)

var (
	// ErrNoFixpoint is returned when rewriting keeps changing the tree
	// after the pass limit.
	ErrNoFixpoint = errors.New("rewriting did not reach a fixpoint")
	// ErrTypeCheck is returned when the model is ill-typed.
	ErrTypeCheck = errors.New("type error")
)

// DefaultMaxPasses bounds the number of bottom-up passes of Simplify.
const DefaultMaxPasses = 10000

// maxLocalSteps bounds consecutive rewrites of a single position.
const maxLocalSteps = 10000

type engine struct {
	m       *ast.Model
	stats   *Stats
	changed bool
}

// visit simplifies the subtree at n bottom-up and returns the node now at
// n's position.
func (e *engine) visit(n ast.Node) (ast.Node, error) {
	for i := 0; i < n.NumChildren(); i++ {
		if _, err := e.visit(n.Child(i)); err != nil {
			return nil, err
		}
	}

	for steps := 0; ; steps++ {
		r := n.Simplify(e.m)
		if r == nil {
			return n, nil
		}
		if steps >= maxLocalSteps {
			return nil, fmt.Errorf("%w: %s keeps rewriting", ErrNoFixpoint, n)
		}
		e.stats.rewrote(n.Kind())
		e.changed = true

		p, i := n.Parent(), n.ChildNo()
		ast.ReplaceWith(n, r)
		n = p.Child(i)

		// The replacement may carry subtrees that were never simplified.
		for j := 0; j < n.NumChildren(); j++ {
			if _, err := e.visit(n.Child(j)); err != nil {
				return nil, err
			}
		}
	}
}

// Simplify rewrites the model to a fixpoint, making at most maxPasses
// bottom-up passes. It reports whether anything changed.
func Simplify(m *ast.Model, maxPasses int, stats *Stats) (bool, error) {
	return simplifyUnder(m, m.Root, maxPasses, stats)
}

func simplifyUnder(m *ast.Model, root ast.Node, maxPasses int, stats *Stats) (bool, error) {
	if stats == nil {
		stats = NewStats()
	}
	e := &engine{m: m, stats: stats}
	changed := false
	for pass := 0; ; pass++ {
		if pass >= maxPasses {
			return changed, fmt.Errorf("%w after %d passes", ErrNoFixpoint, maxPasses)
		}
		e.changed = false
		if _, err := e.visit(root); err != nil {
			return changed, err
		}
		stats.Passes++
		if !e.changed {
			return changed, nil
		}
		changed = true
	}
}

// SimplifyNode simplifies a detached expression to a fixpoint, treating it
// as a top-level constraint. The result is attached to a fresh Top.
func SimplifyNode(m *ast.Model, n ast.Node) (ast.Node, error) {
	if n.Parent() != nil {
		n = n.DeepCopy()
	}
	top := ast.NewTop(n)
	if _, err := simplifyUnder(m, top, DefaultMaxPasses, nil); err != nil {
		return nil, err
	}
	return top.Child(0), nil
}
