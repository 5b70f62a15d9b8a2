// Package satcheck decides satisfiability of purely propositional models
// with a SAT solver. It is used to validate the rewriter: a propositional
// model and its simplification must agree on satisfiability.
package satcheck

import (
	"errors"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/crow-cp/crow/analysis/ast"
)

// ErrNotPropositional is returned for expressions outside propositional
// logic over boolean variables.
var ErrNotPropositional = errors.New("not a propositional expression")

type encoder struct {
	c    *logic.C
	vars map[string]z.Lit
}

func (e *encoder) encode(n ast.Node) (z.Lit, error) {
	lits := func() ([]z.Lit, error) {
		res := make([]z.Lit, n.NumChildren())
		for i, c := range n.Children() {
			l, err := e.encode(c)
			if err != nil {
				return nil, err
			}
			res[i] = l
		}
		return res, nil
	}

	switch n := n.(type) {
	case *ast.Top:
		return e.encode(n.Child(0))
	case *ast.BoolConst:
		if n.Value {
			return e.c.T, nil
		}
		return e.c.F, nil
	case *ast.Identifier:
		if !n.Boolean {
			break
		}
		l, ok := e.vars[n.Name]
		if !ok {
			l = e.c.Lit()
			e.vars[n.Name] = l
		}
		return l, nil
	case *ast.Negate:
		l, err := e.encode(n.Child(0))
		return l.Not(), err
	case *ast.And, *ast.Or, *ast.Xor, *ast.Implies, *ast.Iff:
		ls, err := lits()
		if err != nil {
			return z.LitNull, err
		}
		switch n.(type) {
		case *ast.And:
			return e.c.Ands(ls...), nil
		case *ast.Or:
			return e.c.Ors(ls...), nil
		case *ast.Implies:
			return e.c.Implies(ls[0], ls[1]), nil
		case *ast.Iff:
			return e.c.Xor(ls[0], ls[1]).Not(), nil
		}
		res := e.c.F
		for _, l := range ls {
			res = e.c.Xor(res, l)
		}
		return res, nil
	}
	return z.LitNull, fmt.Errorf("%w: %s", ErrNotPropositional, n)
}

// Satisfiable decides whether some assignment of the boolean variables
// satisfies n.
func Satisfiable(n ast.Node) (bool, error) {
	e := &encoder{c: logic.NewC(), vars: map[string]z.Lit{}}
	root, err := e.encode(n)
	if err != nil {
		return false, err
	}
	switch root {
	case e.c.T:
		return true, nil
	case e.c.F:
		return false, nil
	}
	g := gini.New()
	e.c.ToCnf(g)
	g.Assume(root)
	return g.Solve() == 1, nil
}

// Equisatisfiable checks that a and b are both satisfiable or both not.
func Equisatisfiable(a, b ast.Node) (bool, error) {
	sa, err := Satisfiable(a)
	if err != nil {
		return false, err
	}
	sb, err := Satisfiable(b)
	if err != nil {
		return false, err
	}
	return sa == sb, nil
}

// Equivalent checks that a and b agree under every assignment of their
// boolean variables.
func Equivalent(a, b ast.Node) (bool, error) {
	e := &encoder{c: logic.NewC(), vars: map[string]z.Lit{}}
	la, err := e.encode(a)
	if err != nil {
		return false, err
	}
	lb, err := e.encode(b)
	if err != nil {
		return false, err
	}
	diff := e.c.Xor(la, lb)
	switch diff {
	case e.c.F:
		return true, nil
	case e.c.T:
		return false, nil
	}
	g := gini.New()
	e.c.ToCnf(g)
	g.Assume(diff)
	return g.Solve() != 1, nil
}
