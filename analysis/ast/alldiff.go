package ast

import (
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"

	"golang.org/x/tools/container/intsets"
)

// AllDifferent holds when the elements of its matrix operand are pairwise
// distinct.
type AllDifferent struct{ nodeBase }

func NewAllDifferent(mat Node) *AllDifferent {
	n := &AllDifferent{}
	n.init(n, mat)
	return n
}

func (n *AllDifferent) Kind() Kind       { return KindAllDifferent }
func (n *AllDifferent) IsRelation() bool { return true }
func (n *AllDifferent) copyLocal() Node  { return &AllDifferent{} }

func (n *AllDifferent) IsNegatable() bool {
	elems, ok := elements(n.children[0])
	return ok && len(elems) == 2
}

// Negation of a binary alldiff is an equality.
func (n *AllDifferent) Negation() Node {
	elems, ok := elements(n.children[0])
	if !ok || len(elems) != 2 {
		return n.nodeBase.Negation()
	}
	return NewEquals(elems[0], elems[1])
}

func (n *AllDifferent) TypeCheck(m *Model) bool {
	if !isVector(n.children[0]) {
		m.errorf("alldiff expects a one-dimensional matrix of scalars, got %s", n.children[0])
		return false
	}
	return true
}

func (n *AllDifferent) render(b *strings.Builder) { renderOp(b, "alldiff", n.children) }

// domainOf over-approximates the values e can take.
func domainOf(m *Model, e Node) bounds.IntervalSet {
	if IsConstant(e) {
		return bounds.FromValues(ConstantValue(e))
	}
	if id, ok := e.(*Identifier); ok {
		if dom, ok := id.Domain(m); ok {
			return dom
		}
	}
	return bounds.NewSet(e.Bounds(m))
}

func (n *AllDifferent) Simplify(m *Model) Node {
	elems, ok := elements(n.children[0])
	if !ok {
		return nil
	}
	if len(elems) < 2 {
		return Bool(true)
	}

	var consts intsets.Sparse
	for i, e := range elems {
		if IsConstant(e) && !consts.Insert(int(ConstantValue(e))) {
			return Bool(false)
		}
		for _, o := range elems[i+1:] {
			if e.Equal(o) {
				return Bool(false)
			}
		}
	}

	// Constants that no other element can take impose nothing.
	if !consts.IsEmpty() {
		var keep []Node
		for _, e := range elems {
			if IsConstant(e) && !reachable(m, elems, ConstantValue(e)) {
				continue
			}
			keep = append(keep, e)
		}
		if len(keep) < len(elems) {
			return NewAllDifferent(NewMatrix(keep...))
		}
	}

	union := bounds.NewSet()
	for _, e := range elems {
		union = union.Union(domainOf(m, e))
	}
	if union.IsFinite() && union.NumValues() < int64(len(elems)) {
		return Bool(false)
	}

	for i, e := range elems {
		de := domainOf(m, e)
		for _, o := range elems[i+1:] {
			if !de.Intersect(domainOf(m, o)).IsEmpty() {
				return nil
			}
		}
	}
	return Bool(true)
}

// reachable checks whether some non-constant element may take value v.
func reachable(m *Model, elems []Node, v int64) bool {
	for _, e := range elems {
		if !IsConstant(e) && domainOf(m, e).Contains(v) {
			return true
		}
	}
	return false
}
