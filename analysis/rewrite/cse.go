package rewrite

import (
	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/bounds"
	"github.com/crow-cp/crow/utils"
	"github.com/crow-cp/crow/utils/hmap"
	"github.com/crow-cp/crow/utils/worklist"
)

// cseCandidate checks whether n is a compound numerical expression worth
// naming.
func cseCandidate(n ast.Node) bool {
	switch n.(type) {
	case *ast.IntConst, *ast.Identifier, *ast.Matrix:
		return false
	}
	return n.IsNumerical() && ast.Dimension(n) == 0 && n.NumChildren() > 0
}

// attached checks whether n is still part of the tree under root.
func attached(n, root ast.Node) bool {
	for ; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}

// CSE replaces every compound numerical expression that occurs more than
// once by a fresh auxiliary variable, defined by one new top-level equality.
// Larger expressions are extracted first. Quantifier bodies are skipped.
func CSE(m *ast.Model, stats *Stats) bool {
	occurrences := hmap.NewMap[[]ast.Node](utils.HashableHasher[ast.Node]())
	worklist.Start(m.Constraint(), func(n ast.Node, add func(ast.Node)) {
		if _, ok := n.(ast.Quantifier); ok {
			return
		}
		if cseCandidate(n) {
			occurrences.Set(n, append(occurrences.Get(n), n))
		}
		for _, c := range n.Children() {
			add(c)
		}
	})

	changed := false
	occurrences.ForEach(func(_ ast.Node, nodes []ast.Node) {
		live := nodes[:0]
		for _, n := range nodes {
			if attached(n, m.Root) {
				live = append(live, n)
			}
		}
		if len(live) < 2 {
			return
		}
		def := live[0].DeepCopy()
		name := m.Symbols.NewAux(bounds.NewSet(def.Bounds(m)), false)
		for _, n := range live {
			ast.ReplaceWith(n, ast.Ident(name))
		}
		m.AddConstraint(ast.NewEquals(ast.Ident(name), def))
		stats.Extracted++
		changed = true
	})
	return changed
}
