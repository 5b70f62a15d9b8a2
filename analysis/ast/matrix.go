package ast

import (
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"
)

// Matrix is a one-dimensional list of expressions. Nested matrices give
// higher dimensions.
type Matrix struct {
	nodeBase
}

func NewMatrix(elems ...Node) *Matrix {
	n := &Matrix{}
	n.init(n, elems...)
	return n
}

func (n *Matrix) Kind() Kind      { return KindMatrix }
func (n *Matrix) copyLocal() Node { return &Matrix{} }

// IsRelation holds when every element is a relation.
func (n *Matrix) IsRelation() bool {
	for _, c := range n.children {
		if !c.IsRelation() {
			return false
		}
	}
	return true
}

// IsNumerical holds when at least one element is numerical.
func (n *Matrix) IsNumerical() bool {
	for _, c := range n.children {
		if c.IsNumerical() {
			return true
		}
	}
	return false
}

// IsSet holds when every element is a set.
func (n *Matrix) IsSet() bool {
	for _, c := range n.children {
		if !c.IsSet() {
			return false
		}
	}
	return true
}

// Bounds is the hull of the element bounds.
func (n *Matrix) Bounds(m *Model) bounds.Intpair {
	res := bounds.Empty()
	for _, c := range n.children {
		res = res.Union(c.Bounds(m))
	}
	return res
}

func (n *Matrix) TypeCheck(m *Model) bool {
	if len(n.children) == 0 {
		return true
	}
	d := Dimension(n.children[0])
	for _, c := range n.children[1:] {
		if Dimension(c) != d {
			m.errorf("Ragged matrix %s", n)
			return false
		}
	}
	return true
}

func (n *Matrix) render(b *strings.Builder) {
	b.WriteByte('[')
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.render(b)
	}
	b.WriteByte(']')
}

// elements returns the children of n if it is a matrix.
func elements(n Node) ([]Node, bool) {
	if mat, ok := n.(*Matrix); ok {
		return mat.children, true
	}
	return nil, false
}

// isScalar checks that n is a numerical or relational expression of dimension 0.
func isScalar(n Node) bool {
	return Dimension(n) == 0 && !n.IsSet() && (n.IsNumerical() || n.IsRelation())
}

// isVector checks that n is a one-dimensional matrix of scalars.
func isVector(n Node) bool {
	elems, ok := elements(n)
	if !ok {
		return false
	}
	for _, e := range elems {
		if !isScalar(e) {
			return false
		}
	}
	return true
}
