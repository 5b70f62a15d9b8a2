package ast

import (
	"strconv"
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"
	"github.com/crow-cp/crow/utils"
)

type IntConst struct {
	nodeBase
	Value int64
}

// Int makes an integer literal.
func Int(v int64) *IntConst {
	n := &IntConst{Value: v}
	n.init(n)
	return n
}

func (n *IntConst) Kind() Kind        { return KindIntConst }
func (n *IntConst) IsNumerical() bool { return true }
func (n *IntConst) copyLocal() Node   { return &IntConst{Value: n.Value} }
func (n *IntConst) localHash() uint32 { return utils.HashInt64(n.Value) }
func (n *IntConst) localEqual(o Node) bool {
	return n.Value == o.(*IntConst).Value
}

func (n *IntConst) Bounds(*Model) bounds.Intpair { return bounds.Single(n.Value) }

func (n *IntConst) render(b *strings.Builder) {
	b.WriteString(strconv.FormatInt(n.Value, 10))
}

type BoolConst struct {
	nodeBase
	Value bool
}

// Bool makes a boolean literal.
func Bool(v bool) *BoolConst {
	n := &BoolConst{Value: v}
	n.init(n)
	return n
}

func (n *BoolConst) Kind() Kind        { return KindBoolConst }
func (n *BoolConst) IsRelation() bool  { return true }
func (n *BoolConst) IsNegatable() bool { return true }
func (n *BoolConst) Negation() Node    { return Bool(!n.Value) }
func (n *BoolConst) copyLocal() Node   { return &BoolConst{Value: n.Value} }
func (n *BoolConst) localHash() uint32 { return utils.HashInt64(ConstantValue(n)) }
func (n *BoolConst) localEqual(o Node) bool {
	return n.Value == o.(*BoolConst).Value
}

func (n *BoolConst) Bounds(*Model) bounds.Intpair { return bounds.Single(ConstantValue(n)) }

func (n *BoolConst) render(b *strings.Builder) {
	b.WriteString(strconv.FormatBool(n.Value))
}

// IsTrue and IsFalse check for the boolean literals.
func IsTrue(n Node) bool {
	c, ok := n.(*BoolConst)
	return ok && c.Value
}

func IsFalse(n Node) bool {
	c, ok := n.(*BoolConst)
	return ok && !c.Value
}

// Identifier references a declared variable or a quantifier variable.
type Identifier struct {
	nodeBase
	Name    string
	Boolean bool
}

// Ident makes an integer identifier.
func Ident(name string) *Identifier {
	n := &Identifier{Name: name}
	n.init(n)
	return n
}

// BoolIdent makes a boolean identifier.
func BoolIdent(name string) *Identifier {
	n := &Identifier{Name: name, Boolean: true}
	n.init(n)
	return n
}

func (n *Identifier) Kind() Kind        { return KindIdentifier }
func (n *Identifier) IsRelation() bool  { return n.Boolean }
func (n *Identifier) IsNumerical() bool { return !n.Boolean }
func (n *Identifier) copyLocal() Node   { return &Identifier{Name: n.Name, Boolean: n.Boolean} }
func (n *Identifier) localHash() uint32 {
	h := utils.HashString(n.Name)
	if n.Boolean {
		h = utils.HashCombine(h, 1)
	}
	return h
}

func (n *Identifier) localEqual(o Node) bool {
	oi := o.(*Identifier)
	return n.Name == oi.Name && n.Boolean == oi.Boolean
}

// Domain returns the values the identifier may take: the quantifier domain
// when bound by an enclosing quantifier, otherwise its declared domain.
func (n *Identifier) Domain(m *Model) (bounds.IntervalSet, bool) {
	if q, ok := BoundQuantifier(n, n.Name); ok {
		return q.Domain(), true
	}
	return m.lookupDomain(n.Name)
}

func (n *Identifier) Bounds(m *Model) bounds.Intpair {
	if dom, ok := n.Domain(m); ok {
		return dom.Bounds()
	}
	if n.Boolean {
		return bounds.Bool()
	}
	return bounds.Full()
}

// Simplify replaces a declared variable whose domain has a single value by
// that value.
func (n *Identifier) Simplify(m *Model) Node {
	if _, ok := BoundQuantifier(n, n.Name); ok {
		return nil
	}
	dom, ok := m.lookupDomain(n.Name)
	if !ok {
		return nil
	}
	b := dom.Bounds()
	if !b.IsSingleton() {
		return nil
	}
	if n.Boolean {
		return Bool(b.Lower == 1)
	}
	return Int(b.Lower)
}

func (n *Identifier) TypeCheck(m *Model) bool {
	if _, ok := BoundQuantifier(n, n.Name); ok {
		return true
	}
	if m == nil || m.Symbols == nil {
		return true
	}
	decl, ok := m.Symbols.Lookup(n.Name)
	if !ok {
		m.errorf("Undeclared identifier %s", n.Name)
		return false
	}
	if decl.Boolean != n.Boolean {
		m.errorf("Identifier %s used as %s but declared as %s", n.Name, typeName(n.Boolean), typeName(decl.Boolean))
		return false
	}
	return true
}

func typeName(boolean bool) string {
	if boolean {
		return "bool"
	}
	return "int"
}

func (n *Identifier) render(b *strings.Builder) {
	b.WriteString(n.Name)
}

// SetConst is a constant set of integers.
type SetConst struct {
	nodeBase
	Set bounds.IntervalSet
}

// Set makes a constant set.
func Set(s bounds.IntervalSet) *SetConst {
	n := &SetConst{Set: s}
	n.init(n)
	return n
}

func (n *SetConst) Kind() Kind      { return KindSetConst }
func (n *SetConst) IsSet() bool     { return true }
func (n *SetConst) copyLocal() Node { return &SetConst{Set: n.Set} }
func (n *SetConst) localHash() uint32 {
	hs := []uint32{}
	for _, iv := range n.Set.Intervals() {
		hs = append(hs, utils.HashInt64(iv.Lower), utils.HashInt64(iv.Upper))
	}
	return utils.HashCombine(hs...)
}

func (n *SetConst) localEqual(o Node) bool {
	return n.Set.Equal(o.(*SetConst).Set)
}

func (n *SetConst) Bounds(*Model) bounds.Intpair { return n.Set.Bounds() }

func (n *SetConst) render(b *strings.Builder) {
	b.WriteString(n.Set.String())
}
