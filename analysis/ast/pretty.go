package ast

import (
	"strconv"
	"strings"

	"github.com/crow-cp/crow/utils/dot"
	"github.com/crow-cp/crow/utils/indenter"
)

// Pretty renders n over several lines, keeping every subexpression that
// fits in width characters on one line.
func Pretty(n Node, width int) string {
	in := indenter.New()
	pretty(in, n, width)
	return in.String()
}

func thunks(ns []Node, width int) []func(*indenter.Indenter) {
	res := make([]func(*indenter.Indenter), len(ns))
	for i, c := range ns {
		c := c
		res[i] = func(in *indenter.Indenter) { pretty(in, c, width) }
	}
	return res
}

func ints(vs []int64) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(strs, " ") + "]"
}

func pretty(in *indenter.Indenter, n Node, width int) {
	if s := n.String(); len(s) <= width || n.NumChildren() == 0 {
		in.Write(s)
		return
	}
	nested := func(in *indenter.Indenter, head string, ns []Node, tail string) {
		in.Start(head).NestThunked(thunks(ns, width)...).End(tail)
	}
	switch n := n.(type) {
	case *Top:
		pretty(in, n.children[0], width)
	case *Matrix:
		nested(in, "[", n.children, "]")
	case *WeightedSum:
		in.Start("(sum").NestThunked(
			func(in *indenter.Indenter) { nested(in, "[", n.children, "]") },
			func(in *indenter.Indenter) { in.Write(ints(n.Weights)) },
		).End(")")
	case *GlobalCard:
		in.Start("(gcc").NestThunked(
			func(in *indenter.Indenter) { pretty(in, n.children[0], width) },
			func(in *indenter.Indenter) { in.Write(ints(n.Values)) },
			func(in *indenter.Indenter) { pretty(in, n.children[1], width) },
		).End(")")
	case Quantifier:
		nested(in, "("+n.Kind().String()+" "+n.Variable()+" "+n.Domain().String(), n.Children(), ")")
	default:
		nested(in, "("+n.Kind().String(), n.Children(), ")")
	}
}

// ToDot draws the tree rooted at n, one graph node per expression node.
func ToDot(n Node, title string) *dot.DotGraph {
	g := &dot.DotGraph{Title: title}
	var draw func(n Node) *dot.DotNode
	draw = func(n Node) *dot.DotNode {
		attrs := dot.DotAttrs{"label": dotLabel(n)}
		switch {
		case n.NumChildren() == 0:
			attrs["fillcolor"] = "white"
		case n.IsRelation():
			attrs["fillcolor"] = "lightblue"
		}
		dn := g.AddNode(attrs)
		for i, c := range n.Children() {
			edge := dot.DotAttrs{}
			if s, ok := n.(*WeightedSum); ok && s.Weights[i] != 1 {
				edge["label"] = strconv.FormatInt(s.Weights[i], 10)
			}
			g.AddEdge(dn, draw(c), edge)
		}
		return dn
	}
	draw(n)
	return g
}

func dotLabel(n Node) string {
	switch n := n.(type) {
	case *GlobalCard:
		return "gcc " + ints(n.Values)
	case Quantifier:
		return n.Kind().String() + " " + n.Variable() + " ∈ " + n.Domain().String()
	}
	if n.NumChildren() == 0 {
		return n.String()
	}
	return n.Kind().String()
}
