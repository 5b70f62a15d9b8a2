package ast

import (
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"
	"github.com/crow-cp/crow/utils"
)

// MaxUnroll bounds the number of copies a quantifier may unroll into.
const MaxUnroll = 1 << 20

// Quantifier binds a variable over a constant finite domain in its body.
type Quantifier interface {
	Node
	Variable() string
	Domain() bounds.IntervalSet
	Body() Node
	// Unroll expands the quantifier into one copy of the body per domain
	// value. It fails when the domain is infinite or too large.
	Unroll() (Node, bool)
}

type quantBase struct {
	nodeBase
	Var string
	Dom bounds.IntervalSet
}

func (q *quantBase) Variable() string           { return q.Var }
func (q *quantBase) Domain() bounds.IntervalSet { return q.Dom }
func (q *quantBase) Body() Node                 { return q.children[0] }

func (q *quantBase) localHash() uint32 {
	return utils.HashCombine(utils.HashString(q.Var), Set(q.Dom).localHash())
}

func (q *quantBase) localEqual(o Node) bool {
	oq := o.(Quantifier)
	return q.Var == oq.Variable() && q.Dom.Equal(oq.Domain())
}

func (q *quantBase) renderQuant(b *strings.Builder, op string) {
	b.WriteString("(" + op + " " + q.Var + " " + q.Dom.String() + " ")
	q.children[0].render(b)
	b.WriteByte(')')
}

// instances substitutes every domain value into a copy of the body.
func (q *quantBase) instances() ([]Node, bool) {
	vals, ok := q.Dom.Values(MaxUnroll)
	if !ok {
		return nil, false
	}
	res := make([]Node, len(vals))
	for i, v := range vals {
		res[i] = Substitute(q.children[0], q.Var, Int(v))
	}
	return res, true
}

func (q *quantBase) checkDomain(m *Model) bool {
	if !q.Dom.IsFinite() {
		m.errorf("Quantifier over %s has infinite domain %s", q.Var, q.Dom)
		return false
	}
	return true
}

// Forall is the conjunction of its body over the domain.
type Forall struct{ quantBase }

func NewForall(v string, dom bounds.IntervalSet, body Node) *Forall {
	n := &Forall{quantBase{Var: v, Dom: dom}}
	n.init(n, body)
	return n
}

func (n *Forall) Kind() Kind                { return KindForall }
func (n *Forall) IsRelation() bool          { return true }
func (n *Forall) copyLocal() Node           { return &Forall{quantBase{Var: n.Var, Dom: n.Dom}} }
func (n *Forall) render(b *strings.Builder) { n.renderQuant(b, "forall") }

func (n *Forall) TypeCheck(m *Model) bool {
	return n.checkDomain(m) && checkRelations(m, n)
}

func (n *Forall) Simplify(*Model) Node {
	switch {
	case n.Dom.IsEmpty():
		return Bool(true)
	case !Occurs(n.Body(), n.Var):
		return n.Body()
	}
	return nil
}

func (n *Forall) Unroll() (Node, bool) {
	cs, ok := n.instances()
	if !ok {
		return nil, false
	}
	return NewAnd(cs...), true
}

// Exists is the disjunction of its body over the domain.
type Exists struct{ quantBase }

func NewExists(v string, dom bounds.IntervalSet, body Node) *Exists {
	n := &Exists{quantBase{Var: v, Dom: dom}}
	n.init(n, body)
	return n
}

func (n *Exists) Kind() Kind                { return KindExists }
func (n *Exists) IsRelation() bool          { return true }
func (n *Exists) copyLocal() Node           { return &Exists{quantBase{Var: n.Var, Dom: n.Dom}} }
func (n *Exists) render(b *strings.Builder) { n.renderQuant(b, "exists") }

func (n *Exists) TypeCheck(m *Model) bool {
	return n.checkDomain(m) && checkRelations(m, n)
}

func (n *Exists) Simplify(*Model) Node {
	switch {
	case n.Dom.IsEmpty():
		return Bool(false)
	case !Occurs(n.Body(), n.Var):
		return n.Body()
	}
	return nil
}

func (n *Exists) Unroll() (Node, bool) {
	cs, ok := n.instances()
	if !ok {
		return nil, false
	}
	return NewOr(cs...), true
}

// QuantSum is the sum of its body over the domain.
type QuantSum struct{ quantBase }

func NewQuantSum(v string, dom bounds.IntervalSet, body Node) *QuantSum {
	n := &QuantSum{quantBase{Var: v, Dom: dom}}
	n.init(n, body)
	return n
}

func (n *QuantSum) Kind() Kind                { return KindQuantSum }
func (n *QuantSum) IsNumerical() bool         { return true }
func (n *QuantSum) copyLocal() Node           { return &QuantSum{quantBase{Var: n.Var, Dom: n.Dom}} }
func (n *QuantSum) render(b *strings.Builder) { n.renderQuant(b, "qsum") }

func (n *QuantSum) TypeCheck(m *Model) bool {
	return n.checkDomain(m) && checkScalars(m, n)
}

func (n *QuantSum) Bounds(m *Model) bounds.Intpair {
	return n.Body().Bounds(m).Scale(n.Dom.NumValues())
}

func (n *QuantSum) Simplify(*Model) Node {
	switch {
	case n.Dom.IsEmpty():
		return Int(0)
	case n.Dom.IsFinite() && !Occurs(n.Body(), n.Var):
		return NewSum([]Node{n.Body()}, []int64{n.Dom.NumValues()})
	}
	return nil
}

func (n *QuantSum) Unroll() (Node, bool) {
	cs, ok := n.instances()
	if !ok {
		return nil, false
	}
	return Plus(cs...), true
}

// Occurs checks whether name occurs free in n.
func Occurs(n Node, name string) (found bool) {
	Walk(n, func(c Node) bool {
		switch c := c.(type) {
		case *Identifier:
			found = found || c.Name == name
		case Quantifier:
			return c.Variable() != name
		}
		return !found
	})
	return
}

// Substitute returns a copy of n in which every free occurrence of name is
// replaced by a copy of repl.
func Substitute(n Node, name string, repl Node) Node {
	switch n := n.(type) {
	case *Identifier:
		if n.Name == name {
			return repl.DeepCopy()
		}
	case Quantifier:
		if n.Variable() == name {
			return n.DeepCopy()
		}
	}
	cp := n.copyLocal()
	children := make([]Node, n.NumChildren())
	for i, c := range n.Children() {
		children[i] = Substitute(c, name, repl)
	}
	cp.base().init(cp, children...)
	return cp
}
