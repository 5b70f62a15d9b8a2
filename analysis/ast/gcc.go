package ast

import (
	"strconv"
	"strings"

	"github.com/crow-cp/crow/utils"
)

// GlobalCard holds when, for every j, Values[j] occurs exactly cards[j]
// times among vars.
type GlobalCard struct {
	nodeBase
	Values []int64
}

func NewGlobalCard(vars *Matrix, values []int64, cards *Matrix) *GlobalCard {
	n := &GlobalCard{Values: append([]int64(nil), values...)}
	n.init(n, vars, cards)
	return n
}

func (n *GlobalCard) Kind() Kind       { return KindGlobalCard }
func (n *GlobalCard) IsRelation() bool { return true }
func (n *GlobalCard) copyLocal() Node {
	return &GlobalCard{Values: append([]int64(nil), n.Values...)}
}

func (n *GlobalCard) localHash() uint32 {
	hs := make([]uint32, len(n.Values))
	for i, v := range n.Values {
		hs[i] = utils.HashInt64(v)
	}
	return utils.HashCombine(hs...)
}

func (n *GlobalCard) localEqual(o Node) bool {
	ov := o.(*GlobalCard).Values
	if len(ov) != len(n.Values) {
		return false
	}
	for i, v := range n.Values {
		if ov[i] != v {
			return false
		}
	}
	return true
}

func (n *GlobalCard) render(b *strings.Builder) {
	b.WriteString("(gcc ")
	n.children[0].render(b)
	b.WriteString(" [")
	for i, v := range n.Values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	b.WriteString("] ")
	n.children[1].render(b)
	b.WriteByte(')')
}

func (n *GlobalCard) TypeCheck(m *Model) bool {
	if !isVector(n.children[0]) || !isVector(n.children[1]) {
		m.errorf("gcc expects one-dimensional matrices of scalars: %s", n)
		return false
	}
	cards, _ := elements(n.children[1])
	if len(cards) != len(n.Values) {
		m.errorf("gcc has %d values but %d cardinalities", len(n.Values), len(cards))
		return false
	}
	seen := map[int64]bool{}
	for _, v := range n.Values {
		if seen[v] {
			m.errorf("gcc value %d occurs twice", v)
			return false
		}
		seen[v] = true
	}
	return true
}

// Simplify removes constant variables, decrementing the cardinality of the
// value they take.
func (n *GlobalCard) Simplify(m *Model) Node {
	vars, _ := elements(n.children[0])
	cards, _ := elements(n.children[1])

	if len(vars) == 0 {
		cs := make([]Node, len(cards))
		for j, c := range cards {
			cs[j] = NewEquals(c, Int(0))
		}
		return NewAnd(cs...)
	}

	var keep []Node
	adjust := make([]int64, len(n.Values))
	for _, v := range vars {
		if !IsConstant(v) {
			keep = append(keep, v)
			continue
		}
		for j, value := range n.Values {
			if value == ConstantValue(v) {
				adjust[j]++
			}
		}
	}
	if len(keep) < len(vars) {
		cs := make([]Node, len(cards))
		for j, c := range cards {
			cs[j] = c
			if adjust[j] > 0 {
				cs[j] = NewSum([]Node{c, Int(adjust[j])}, []int64{1, -1})
			}
		}
		return NewGlobalCard(NewMatrix(keep...), n.Values, NewMatrix(cs...))
	}

	for _, c := range cards {
		if cb := c.Bounds(m); cb.Upper < 0 || cb.Lower > int64(len(vars)) {
			return Bool(false)
		}
	}
	return nil
}
