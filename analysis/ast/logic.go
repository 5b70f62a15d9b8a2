package ast

import (
	"strings"
)

func checkRelations(m *Model, n Node) bool {
	for _, c := range n.Children() {
		if Dimension(c) != 0 || !c.IsRelation() {
			m.errorf("Operand %s of %s is not a relation", c, n.Kind())
			return false
		}
	}
	return true
}

// junction simplifies an n-ary And (isAnd) or Or. unit is the neutral
// constant of the connective and its negation is absorbing.
func junction(m *Model, n Node, isAnd bool) Node {
	unit := isAnd
	var flat []Node
	changed := false
	for _, c := range n.Children() {
		switch {
		case c.Kind() == n.Kind():
			flat = append(flat, c.Children()...)
			changed = true
		case IsConstant(c):
			if c.(*BoolConst).Value != unit {
				return Bool(!unit)
			}
			changed = true
		default:
			flat = append(flat, c)
		}
	}

	kept := flat[:0:0]
	for _, c := range flat {
		dup := false
		for _, k := range kept {
			if k.Equal(c) {
				dup = true
				break
			}
		}
		if dup {
			changed = true
			continue
		}
		kept = append(kept, c)
	}

	// x and not x
	for _, c := range kept {
		neg, ok := c.(*Negate)
		if !ok {
			continue
		}
		for _, k := range kept {
			if k.Equal(neg.children[0]) {
				return Bool(!unit)
			}
		}
	}

	switch len(kept) {
	case 0:
		return Bool(unit)
	case 1:
		return kept[0]
	}
	if !changed {
		return nil
	}
	if isAnd {
		return NewAnd(kept...)
	}
	return NewOr(kept...)
}

type And struct{ nodeBase }

func NewAnd(cs ...Node) *And {
	n := &And{}
	n.init(n, cs...)
	return n
}

func (n *And) Kind() Kind                { return KindAnd }
func (n *And) IsRelation() bool          { return true }
func (n *And) IsNegatable() bool         { return true }
func (n *And) copyLocal() Node           { return &And{} }
func (n *And) TypeCheck(m *Model) bool   { return checkRelations(m, n) }
func (n *And) render(b *strings.Builder) { renderOp(b, "and", n.children) }
func (n *And) Simplify(m *Model) Node    { return junction(m, n, true) }

// Append adds a conjunct.
func (n *And) Append(c Node) {
	n.children = append(n.children, nil)
	n.SetChild(len(n.children)-1, c)
}

func (n *And) Negation() Node {
	cs := make([]Node, len(n.children))
	for i, c := range n.children {
		cs[i] = Not(c)
	}
	return NewOr(cs...)
}

type Or struct{ nodeBase }

func NewOr(cs ...Node) *Or {
	n := &Or{}
	n.init(n, cs...)
	return n
}

func (n *Or) Kind() Kind                { return KindOr }
func (n *Or) IsRelation() bool          { return true }
func (n *Or) IsNegatable() bool         { return true }
func (n *Or) copyLocal() Node           { return &Or{} }
func (n *Or) TypeCheck(m *Model) bool   { return checkRelations(m, n) }
func (n *Or) render(b *strings.Builder) { renderOp(b, "or", n.children) }
func (n *Or) Simplify(m *Model) Node    { return junction(m, n, false) }

func (n *Or) Negation() Node {
	cs := make([]Node, len(n.children))
	for i, c := range n.children {
		cs[i] = Not(c)
	}
	return NewAnd(cs...)
}

// Implies is a -> b.
type Implies struct{ nodeBase }

func NewImplies(a, b Node) *Implies {
	n := &Implies{}
	n.init(n, a, b)
	return n
}

func (n *Implies) Kind() Kind                { return KindImplies }
func (n *Implies) IsRelation() bool          { return true }
func (n *Implies) IsNegatable() bool         { return true }
func (n *Implies) copyLocal() Node           { return &Implies{} }
func (n *Implies) TypeCheck(m *Model) bool   { return checkRelations(m, n) }
func (n *Implies) render(b *strings.Builder) { renderOp(b, "->", n.children) }

func (n *Implies) Negation() Node {
	return NewAnd(n.children[0], Not(n.children[1]))
}

// Simplify collapses constant operands. At the top level an implication
// with a conjunction on the right is split into one implication per
// conjunct.
func (n *Implies) Simplify(*Model) Node {
	a, b := n.children[0], n.children[1]
	switch {
	case IsTrue(a):
		return b
	case IsFalse(a), IsTrue(b), a.Equal(b):
		return Bool(true)
	case IsFalse(b):
		return Not(a)
	}
	if and, ok := b.(*And); ok && InTopConjunction(n) {
		cs := make([]Node, and.NumChildren())
		for i, c := range and.children {
			cs[i] = NewImplies(a, c)
		}
		return NewAnd(cs...)
	}
	return nil
}

// Iff is a <-> b.
type Iff struct{ nodeBase }

func NewIff(a, b Node) *Iff {
	n := &Iff{}
	n.init(n, a, b)
	return n
}

func (n *Iff) Kind() Kind                { return KindIff }
func (n *Iff) IsRelation() bool          { return true }
func (n *Iff) IsNegatable() bool         { return true }
func (n *Iff) copyLocal() Node           { return &Iff{} }
func (n *Iff) TypeCheck(m *Model) bool   { return checkRelations(m, n) }
func (n *Iff) render(b *strings.Builder) { renderOp(b, "<->", n.children) }

func (n *Iff) Negation() Node {
	return NewIff(n.children[0], Not(n.children[1]))
}

func (n *Iff) Simplify(*Model) Node {
	a, b := n.children[0], n.children[1]
	switch {
	case IsTrue(a):
		return b
	case IsTrue(b):
		return a
	case IsFalse(a):
		return Not(b)
	case IsFalse(b):
		return Not(a)
	case a.Equal(b):
		return Bool(true)
	case isComplement(a, b):
		return Bool(false)
	}
	return nil
}

// isComplement checks whether one of a and b is the Negate of the other.
func isComplement(a, b Node) bool {
	if na, ok := a.(*Negate); ok && na.children[0].Equal(b) {
		return true
	}
	if nb, ok := b.(*Negate); ok && nb.children[0].Equal(a) {
		return true
	}
	return false
}

// Xor holds when an odd number of its operands hold.
type Xor struct{ nodeBase }

func NewXor(cs ...Node) *Xor {
	n := &Xor{}
	n.init(n, cs...)
	return n
}

func (n *Xor) Kind() Kind                { return KindXor }
func (n *Xor) IsRelation() bool          { return true }
func (n *Xor) IsNegatable() bool         { return len(n.children) > 0 }
func (n *Xor) copyLocal() Node           { return &Xor{} }
func (n *Xor) TypeCheck(m *Model) bool   { return checkRelations(m, n) }
func (n *Xor) render(b *strings.Builder) { renderOp(b, "xor", n.children) }

// Negation flips the first operand.
func (n *Xor) Negation() Node {
	cs := n.Children()
	cs[0] = Not(cs[0])
	return NewXor(cs...)
}

// Simplify folds constants into a parity bit and cancels pairs of equal
// operands.
func (n *Xor) Simplify(*Model) Node {
	parity := false
	changed := false
	var rest []Node
	for _, c := range n.children {
		switch {
		case c.Kind() == KindXor:
			rest = append(rest, c.Children()...)
			changed = true
		case IsConstant(c):
			parity = parity != c.(*BoolConst).Value
			changed = true
		default:
			rest = append(rest, c)
		}
	}

	var kept []Node
	for _, c := range rest {
		j := -1
		for i, k := range kept {
			if k.Equal(c) {
				j = i
				break
			}
		}
		if j < 0 {
			kept = append(kept, c)
			continue
		}
		kept = append(kept[:j], kept[j+1:]...)
		changed = true
	}

	switch {
	case len(kept) == 0:
		return Bool(parity)
	case len(kept) == 1 && parity:
		return Not(kept[0])
	case len(kept) == 1:
		return kept[0]
	case !changed:
		return nil
	case parity:
		kept[0] = Not(kept[0])
	}
	return NewXor(kept...)
}

// Negate is the logical negation of a relation that has no negatable dual.
type Negate struct{ nodeBase }

func NewNegate(a Node) *Negate {
	n := &Negate{}
	n.init(n, a)
	return n
}

func (n *Negate) Kind() Kind                { return KindNegate }
func (n *Negate) IsRelation() bool          { return true }
func (n *Negate) IsNegatable() bool         { return true }
func (n *Negate) Negation() Node            { return n.children[0] }
func (n *Negate) copyLocal() Node           { return &Negate{} }
func (n *Negate) TypeCheck(m *Model) bool   { return checkRelations(m, n) }
func (n *Negate) render(b *strings.Builder) { renderOp(b, "not", n.children) }

// Simplify pushes the negation into a negatable operand.
func (n *Negate) Simplify(*Model) Node {
	if a := n.children[0]; a.IsNegatable() {
		return a.Negation()
	}
	return nil
}
