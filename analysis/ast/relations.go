package ast

import (
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"
)

// Equals is a = b.
type Equals struct{ nodeBase }

func NewEquals(a, b Node) *Equals {
	n := &Equals{}
	n.init(n, a, b)
	return n
}

func (n *Equals) Kind() Kind                { return KindEquals }
func (n *Equals) IsRelation() bool          { return true }
func (n *Equals) IsNegatable() bool         { return true }
func (n *Equals) copyLocal() Node           { return &Equals{} }
func (n *Equals) TypeCheck(m *Model) bool   { return checkScalars(m, n) }
func (n *Equals) render(b *strings.Builder) { renderOp(b, "=", n.children) }

// Negation of a = b is alldiff([a b]).
func (n *Equals) Negation() Node {
	return NewAllDifferent(NewMatrix(n.children[0], n.children[1]))
}

func (n *Equals) Simplify(m *Model) Node {
	a, b := n.children[0], n.children[1]
	switch {
	case a.Equal(b):
		return Bool(true)
	case IsConstant(a) && IsConstant(b):
		return Bool(ConstantValue(a) == ConstantValue(b))
	case a.Bounds(m).Disjoint(b.Bounds(m)):
		return Bool(false)
	case excludesConstant(m, a, b) || excludesConstant(m, b, a):
		return Bool(false)
	}
	if needsDifference(a, b) {
		return NewEquals(Minus(a, b), Int(0))
	}

	s, k, sumLeft, ok := sumAndConstant(a, b)
	if !ok {
		return nil
	}
	mk := func(lhs Node, k int64) Node {
		if sumLeft {
			return NewEquals(lhs, Int(k))
		}
		return NewEquals(Int(k), lhs)
	}
	o := m.order()
	terms, ws, c := linearForm(s)
	if c != 0 {
		return mk(buildLinear(o, terms, ws, 0), bounds.Sub(k, c))
	}
	if g := sumGcd(ws); g > 1 {
		if k%g != 0 {
			return Bool(false)
		}
		return mk(buildLinear(o, terms, divideAll(ws, g), 0), k/g)
	}
	if ws[0] < 0 {
		return mk(buildLinear(o, terms, negateAll(ws), 0), bounds.Neg(k))
	}
	if pos, neg, ok := difference(s, k); ok {
		return NewEquals(pos, neg)
	}
	return nil
}

// excludesConstant checks whether c is a constant outside the domain of the
// identifier id.
func excludesConstant(m *Model, c, id Node) bool {
	ident, ok := id.(*Identifier)
	if !ok || !IsConstant(c) {
		return false
	}
	dom, ok := ident.Domain(m)
	return ok && !dom.Contains(ConstantValue(c))
}

// needsDifference checks whether a relation between a and b should be
// rewritten as a relation between a - b and 0: some side is a sum and the
// other side is not a constant.
func needsDifference(a, b Node) bool {
	_, aSum := a.(*WeightedSum)
	_, bSum := b.(*WeightedSum)
	return (aSum && !IsConstant(b)) || (bSum && !IsConstant(a))
}

// sumAndConstant matches a sum on one side and a constant on the other.
func sumAndConstant(a, b Node) (s *WeightedSum, k int64, sumLeft, ok bool) {
	if s, ok := a.(*WeightedSum); ok && IsConstant(b) {
		return s, ConstantValue(b), true, true
	}
	if s, ok := b.(*WeightedSum); ok && IsConstant(a) {
		return s, ConstantValue(a), false, true
	}
	return nil, 0, false, false
}

// difference matches x - y compared against 0 and returns x and y.
func difference(s *WeightedSum, k int64) (pos, neg Node, ok bool) {
	if k != 0 || len(s.Weights) != 2 {
		return nil, nil, false
	}
	switch {
	case s.Weights[0] == 1 && s.Weights[1] == -1:
		return s.children[0], s.children[1], true
	case s.Weights[0] == -1 && s.Weights[1] == 1:
		return s.children[1], s.children[0], true
	}
	return nil, nil, false
}

func divideAll(ws []int64, g int64) []int64 {
	res := make([]int64, len(ws))
	for i, w := range ws {
		res[i] = w / g
	}
	return res
}

func negateAll(ws []int64) []int64 {
	res := make([]int64, len(ws))
	for i, w := range ws {
		res[i] = bounds.Neg(w)
	}
	return res
}

// LessEqual is a <= b.
type LessEqual struct{ nodeBase }

func NewLessEqual(a, b Node) *LessEqual {
	n := &LessEqual{}
	n.init(n, a, b)
	return n
}

func (n *LessEqual) Kind() Kind                { return KindLessEqual }
func (n *LessEqual) IsRelation() bool          { return true }
func (n *LessEqual) IsNegatable() bool         { return true }
func (n *LessEqual) copyLocal() Node           { return &LessEqual{} }
func (n *LessEqual) TypeCheck(m *Model) bool   { return checkScalars(m, n) }
func (n *LessEqual) render(b *strings.Builder) { renderOp(b, "<=", n.children) }

// Negation of a <= b is b < a.
func (n *LessEqual) Negation() Node {
	return NewLess(n.children[1], n.children[0])
}

func (n *LessEqual) Simplify(m *Model) Node {
	return simplifyInequality(m, n.children[0], n.children[1], false)
}

// Less is a < b.
type Less struct{ nodeBase }

func NewLess(a, b Node) *Less {
	n := &Less{}
	n.init(n, a, b)
	return n
}

func (n *Less) Kind() Kind                { return KindLess }
func (n *Less) IsRelation() bool          { return true }
func (n *Less) IsNegatable() bool         { return true }
func (n *Less) copyLocal() Node           { return &Less{} }
func (n *Less) TypeCheck(m *Model) bool   { return checkScalars(m, n) }
func (n *Less) render(b *strings.Builder) { renderOp(b, "<", n.children) }

// Negation of a < b is b <= a.
func (n *Less) Negation() Node {
	return NewLessEqual(n.children[1], n.children[0])
}

func (n *Less) Simplify(m *Model) Node {
	return simplifyInequality(m, n.children[0], n.children[1], true)
}

func inequality(a, b Node, strict bool) Node {
	if strict {
		return NewLess(a, b)
	}
	return NewLessEqual(a, b)
}

// simplifyInequality rewrites a < b (strict) or a <= b.
//
// Dividing a sum by the gcd of its weights rounds the constant side towards
// the sum: down when the sum is on the left, up when it is on the right.
// When the division is inexact a strict inequality becomes non-strict.
func simplifyInequality(m *Model, a, b Node, strict bool) Node {
	if a.Equal(b) {
		return Bool(!strict)
	}
	if IsConstant(a) && IsConstant(b) {
		va, vb := ConstantValue(a), ConstantValue(b)
		return Bool(va < vb || (!strict && va == vb))
	}
	if ab, bb := a.Bounds(m), b.Bounds(m); !ab.IsEmpty() && !bb.IsEmpty() {
		switch {
		case strict && ab.Upper < bb.Lower, !strict && ab.Upper <= bb.Lower:
			return Bool(true)
		case strict && ab.Lower >= bb.Upper, !strict && ab.Lower > bb.Upper:
			return Bool(false)
		}
	}
	if needsDifference(a, b) {
		return inequality(Minus(a, b), Int(0), strict)
	}

	if s, k, sumLeft, ok := sumAndConstant(a, b); ok {
		mk := func(lhs Node, k int64, strict bool) Node {
			if sumLeft {
				return inequality(lhs, Int(k), strict)
			}
			return inequality(Int(k), lhs, strict)
		}
		o := m.order()
		terms, ws, c := linearForm(s)
		if c != 0 {
			return mk(buildLinear(o, terms, ws, 0), bounds.Sub(k, c), strict)
		}
		if g := sumGcd(ws); g > 1 {
			q := bounds.CeilDiv(k, g)
			if sumLeft {
				q = bounds.FloorDiv(k, g)
			}
			if strict && k%g != 0 {
				m.warnf("Strict inequality %s weakened to non-strict when dividing by %d", inequality(a, b, strict), g)
				strict = false
			}
			return mk(buildLinear(o, terms, divideAll(ws, g), 0), q, strict)
		}
		if pos, neg, ok := difference(s, k); ok {
			if sumLeft {
				return inequality(pos, neg, strict)
			}
			return inequality(neg, pos, strict)
		}
	}

	if strict {
		switch {
		case IsConstant(b):
			return NewLessEqual(a, Int(bounds.Add(ConstantValue(b), -1)))
		case IsConstant(a):
			return NewLessEqual(Int(bounds.Add(ConstantValue(a), 1)), b)
		}
	}
	return nil
}
