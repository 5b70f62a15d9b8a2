package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"
	"github.com/crow-cp/crow/utils"
)

// WeightedSum is Σ Weights[i]·child(i).
type WeightedSum struct {
	nodeBase
	Weights []int64
}

// NewSum makes a weighted sum. A nil weights slice means all weights are 1.
func NewSum(terms []Node, weights []int64) *WeightedSum {
	if weights == nil {
		weights = make([]int64, len(terms))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(terms) {
		panic(fmt.Errorf("%w: %d weights for %d terms", errInternal, len(weights), len(terms)))
	}
	n := &WeightedSum{Weights: append([]int64(nil), weights...)}
	n.init(n, terms...)
	return n
}

// Plus is the unweighted sum of terms.
func Plus(terms ...Node) *WeightedSum {
	return NewSum(terms, nil)
}

// Minus is a - b.
func Minus(a, b Node) *WeightedSum {
	return NewSum([]Node{a, b}, []int64{1, -1})
}

func (n *WeightedSum) Kind() Kind        { return KindWeightedSum }
func (n *WeightedSum) IsNumerical() bool { return true }
func (n *WeightedSum) copyLocal() Node {
	return &WeightedSum{Weights: append([]int64(nil), n.Weights...)}
}

func (n *WeightedSum) localHash() uint32 {
	hs := make([]uint32, len(n.Weights))
	for i, w := range n.Weights {
		hs[i] = utils.HashInt64(w)
	}
	return utils.HashCombine(hs...)
}

func (n *WeightedSum) localEqual(o Node) bool {
	ow := o.(*WeightedSum).Weights
	if len(ow) != len(n.Weights) {
		return false
	}
	for i, w := range n.Weights {
		if ow[i] != w {
			return false
		}
	}
	return true
}

// Permute keeps each weight with its term.
func (n *WeightedSum) Permute(perm []int) {
	ws := make([]int64, len(perm))
	for i, j := range perm {
		ws[i] = n.Weights[j]
	}
	n.nodeBase.Permute(perm)
	n.Weights = ws
}

func (n *WeightedSum) Bounds(m *Model) bounds.Intpair {
	res := bounds.Single(0)
	for i, c := range n.children {
		res = res.Plus(c.Bounds(m).Scale(n.Weights[i]))
	}
	return res
}

func (n *WeightedSum) TypeCheck(m *Model) bool {
	if len(n.Weights) != len(n.children) {
		m.errorf("Sum %s has %d weights for %d terms", n, len(n.Weights), len(n.children))
		return false
	}
	for _, c := range n.children {
		if !isScalar(c) {
			m.errorf("Non-scalar term %s in sum %s", c, n)
			return false
		}
	}
	return true
}

// linearForm collects Σ w·t + k from n, flattening nested sums and unary
// minus and folding every constant into k.
func linearForm(n Node) (terms []Node, weights []int64, k int64) {
	var add func(c Node, w int64)
	add = func(c Node, w int64) {
		if w == 0 {
			return
		}
		switch c := c.(type) {
		case *WeightedSum:
			for i, cc := range c.children {
				add(cc, bounds.Mul(w, c.Weights[i]))
			}
		case *UnaryMinus:
			add(c.children[0], bounds.Neg(w))
		default:
			if IsConstant(c) {
				k = bounds.Add(k, bounds.Mul(w, ConstantValue(c)))
				return
			}
			terms = append(terms, c)
			weights = append(weights, w)
		}
	}
	add(n, 1)
	return
}

// buildLinear makes the canonical expression for Σ w·t + k: terms in order,
// equal terms merged, zero weights dropped, the constant last.
func buildLinear(o Order, terms []Node, weights []int64, k int64) Node {
	var ts []Node
	var ws []int64
	for _, j := range o.sortedPerm(terms) {
		t, w := terms[j], weights[j]
		if l := len(ts); l > 0 && ts[l-1].Equal(t) {
			ws[l-1] = bounds.Add(ws[l-1], w)
			continue
		}
		ts = append(ts, t)
		ws = append(ws, w)
	}
	outT, outW := ts[:0], ws[:0]
	for i, t := range ts {
		if ws[i] != 0 {
			outT = append(outT, t)
			outW = append(outW, ws[i])
		}
	}
	switch {
	case len(outT) == 0:
		return Int(k)
	case len(outT) == 1 && outW[0] == 1 && k == 0:
		return outT[0]
	}
	if k != 0 {
		outT = append(outT, Int(k))
		outW = append(outW, 1)
	}
	return NewSum(outT, outW)
}

func (n *WeightedSum) Simplify(m *Model) Node {
	terms, weights, k := linearForm(n)
	res := buildLinear(m.order(), terms, weights, k)
	if res.Equal(n) {
		return nil
	}
	return res
}

// sumGcd is the gcd of the absolute weights.
func sumGcd(weights []int64) int64 {
	var g int64
	for _, w := range weights {
		g = bounds.Gcd(g, w)
	}
	return g
}

func (n *WeightedSum) render(b *strings.Builder) {
	b.WriteString("(sum [")
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.render(b)
	}
	b.WriteString("] [")
	for i, w := range n.Weights {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(w, 10))
	}
	b.WriteString("])")
}
