package ast

import (
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"
)

// renderOp writes (op c1 c2 ...).
func renderOp(b *strings.Builder, op string, children []Node) {
	b.WriteByte('(')
	b.WriteString(op)
	for _, c := range children {
		b.WriteByte(' ')
		c.render(b)
	}
	b.WriteByte(')')
}

func checkScalars(m *Model, n Node) bool {
	for _, c := range n.Children() {
		if !isScalar(c) {
			m.errorf("Operand %s of %s is not a scalar", c, n.Kind())
			return false
		}
	}
	return true
}

type Times struct{ nodeBase }

func NewTimes(a, b Node) *Times {
	n := &Times{}
	n.init(n, a, b)
	return n
}

func (n *Times) Kind() Kind                      { return KindTimes }
func (n *Times) IsNumerical() bool               { return true }
func (n *Times) copyLocal() Node                 { return &Times{} }
func (n *Times) TypeCheck(m *Model) bool         { return checkScalars(m, n) }
func (n *Times) render(b *strings.Builder)       { renderOp(b, "*", n.children) }
func (n *Times) Bounds(m *Model) bounds.Intpair {
	return n.children[0].Bounds(m).Times(n.children[1].Bounds(m))
}

// Simplify folds constants and turns a product with a constant factor into
// a weighted sum.
func (n *Times) Simplify(*Model) Node {
	a, b := n.children[0], n.children[1]
	switch ca, cb := IsConstant(a), IsConstant(b); {
	case ca && cb:
		return Int(bounds.Mul(ConstantValue(a), ConstantValue(b)))
	case ca:
		return NewSum([]Node{b}, []int64{ConstantValue(a)})
	case cb:
		return NewSum([]Node{a}, []int64{ConstantValue(b)})
	}
	return nil
}

// Div is floor division. Division by zero yields 0.
type Div struct{ nodeBase }

func NewDiv(a, b Node) *Div {
	n := &Div{}
	n.init(n, a, b)
	return n
}

func (n *Div) Kind() Kind                { return KindDiv }
func (n *Div) IsNumerical() bool         { return true }
func (n *Div) copyLocal() Node           { return &Div{} }
func (n *Div) TypeCheck(m *Model) bool   { return checkScalars(m, n) }
func (n *Div) render(b *strings.Builder) { renderOp(b, "div", n.children) }
func (n *Div) Bounds(m *Model) bounds.Intpair {
	return n.children[0].Bounds(m).Div(n.children[1].Bounds(m))
}

func (n *Div) Simplify(*Model) Node {
	a, b := n.children[0], n.children[1]
	switch {
	case IsConstant(a) && IsConstant(b):
		return Int(bounds.FloorDiv(ConstantValue(a), ConstantValue(b)))
	case IsConstant(b) && ConstantValue(b) == 0:
		return Int(0)
	case IsConstant(b) && ConstantValue(b) == 1:
		return a
	case IsConstant(b) && ConstantValue(b) == -1:
		return NewSum([]Node{a}, []int64{-1})
	case IsConstant(a) && ConstantValue(a) == 0:
		return Int(0)
	}
	return nil
}

// Mod is the remainder of floor division. Its sign follows the divisor, and
// x mod 0 is 0.
type Mod struct{ nodeBase }

func NewMod(a, b Node) *Mod {
	n := &Mod{}
	n.init(n, a, b)
	return n
}

func (n *Mod) Kind() Kind                { return KindMod }
func (n *Mod) IsNumerical() bool         { return true }
func (n *Mod) copyLocal() Node           { return &Mod{} }
func (n *Mod) TypeCheck(m *Model) bool   { return checkScalars(m, n) }
func (n *Mod) render(b *strings.Builder) { renderOp(b, "mod", n.children) }
func (n *Mod) Bounds(m *Model) bounds.Intpair {
	return n.children[0].Bounds(m).Mod(n.children[1].Bounds(m))
}

func (n *Mod) Simplify(*Model) Node {
	a, b := n.children[0], n.children[1]
	switch {
	case IsConstant(a) && IsConstant(b):
		return Int(bounds.FloorMod(ConstantValue(a), ConstantValue(b)))
	case IsConstant(b) && (ConstantValue(b) == 0 || ConstantValue(b) == 1 || ConstantValue(b) == -1):
		return Int(0)
	case IsConstant(a) && ConstantValue(a) == 0:
		return Int(0)
	}
	return nil
}

type UnaryMinus struct{ nodeBase }

func NewUnaryMinus(a Node) *UnaryMinus {
	n := &UnaryMinus{}
	n.init(n, a)
	return n
}

func (n *UnaryMinus) Kind() Kind                { return KindUnaryMinus }
func (n *UnaryMinus) IsNumerical() bool         { return true }
func (n *UnaryMinus) copyLocal() Node           { return &UnaryMinus{} }
func (n *UnaryMinus) TypeCheck(m *Model) bool   { return checkScalars(m, n) }
func (n *UnaryMinus) render(b *strings.Builder) { renderOp(b, "-", n.children) }
func (n *UnaryMinus) Bounds(m *Model) bounds.Intpair {
	return n.children[0].Bounds(m).Negate()
}

func (n *UnaryMinus) Simplify(*Model) Node {
	switch a := n.children[0].(type) {
	case *UnaryMinus:
		return a.children[0]
	case *IntConst:
		return Int(bounds.Neg(a.Value))
	default:
		return NewSum([]Node{a}, []int64{-1})
	}
}

type Abs struct{ nodeBase }

func NewAbs(a Node) *Abs {
	n := &Abs{}
	n.init(n, a)
	return n
}

func (n *Abs) Kind() Kind                { return KindAbs }
func (n *Abs) IsNumerical() bool         { return true }
func (n *Abs) copyLocal() Node           { return &Abs{} }
func (n *Abs) TypeCheck(m *Model) bool   { return checkScalars(m, n) }
func (n *Abs) render(b *strings.Builder) { renderOp(b, "abs", n.children) }
func (n *Abs) Bounds(m *Model) bounds.Intpair {
	return n.children[0].Bounds(m).Abs()
}

func (n *Abs) Simplify(m *Model) Node {
	a := n.children[0]
	if IsConstant(a) {
		v := ConstantValue(a)
		if v < 0 {
			v = bounds.Neg(v)
		}
		return Int(v)
	}
	switch a := a.(type) {
	case *Abs:
		return a
	case *UnaryMinus:
		return NewAbs(a.children[0])
	case *WeightedSum:
		if len(a.Weights) == 1 && a.Weights[0] == -1 {
			return NewAbs(a.children[0])
		}
	}
	switch ab := a.Bounds(m); {
	case ab.Lower >= 0:
		return a
	case ab.Upper <= 0:
		return NewSum([]Node{a}, []int64{-1})
	}
	return nil
}
