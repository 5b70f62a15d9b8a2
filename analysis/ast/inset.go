package ast

import (
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"
)

// InSet holds when its first operand is a member of the constant set given
// as the second operand.
type InSet struct{ nodeBase }

func NewInSet(x Node, s *SetConst) *InSet {
	n := &InSet{}
	n.init(n, x, s)
	return n
}

func (n *InSet) Kind() Kind                { return KindInSet }
func (n *InSet) IsRelation() bool          { return true }
func (n *InSet) IsNegatable() bool         { return true }
func (n *InSet) copyLocal() Node           { return &InSet{} }
func (n *InSet) render(b *strings.Builder) { renderOp(b, "in", n.children) }

// Negation is membership in the complement.
func (n *InSet) Negation() Node {
	return NewInSet(n.children[0], Set(n.set().Complement()))
}

func (n *InSet) set() bounds.IntervalSet { return n.children[1].(*SetConst).Set }

func (n *InSet) TypeCheck(m *Model) bool {
	if !isScalar(n.children[0]) {
		m.errorf("Left operand %s of in is not a scalar", n.children[0])
		return false
	}
	if _, ok := n.children[1].(*SetConst); !ok {
		m.errorf("Right operand %s of in is not a constant set", n.children[1])
		return false
	}
	return true
}

func (n *InSet) Simplify(m *Model) Node {
	x := n.children[0]
	s := n.set()
	if IsConstant(x) {
		return Bool(s.Contains(ConstantValue(x)))
	}
	dom := domainOf(m, x)
	switch {
	case dom.SubsetOf(s):
		return Bool(true)
	case dom.Intersect(s).IsEmpty():
		return Bool(false)
	}
	return nil
}
