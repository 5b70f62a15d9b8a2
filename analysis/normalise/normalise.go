// Package normalise puts the operands of commutative expressions into a
// canonical order, so that equivalent expressions become structurally equal.
package normalise

import (
	"github.com/crow-cp/crow/analysis/ast"
)

// Normalise reorders every commutative node below root using the model's
// order. It works bottom-up, so each node is sorted by the final form of
// its operands. It reports whether anything moved.
func Normalise(m *ast.Model, root ast.Node) (changed bool) {
	for _, c := range root.Children() {
		if Normalise(m, c) {
			changed = true
		}
	}

	o := m.Order
	switch n := root.(type) {
	case *ast.And, *ast.Or, *ast.Xor, *ast.Iff, *ast.Equals, *ast.Times:
		changed = permute(n, o.SortedPerm(n.Children())) || changed
	case *ast.WeightedSum:
		changed = permute(n, sumPerm(o, n)) || changed
	case *ast.AllDifferent:
		mat := n.Child(0)
		if _, ok := mat.(*ast.Matrix); ok {
			changed = permute(mat, o.SortedPerm(mat.Children())) || changed
		}
	case *ast.GlobalCard:
		vars := n.Child(0)
		changed = permute(vars, o.SortedPerm(vars.Children())) || changed
	case *ast.Table:
		changed = normaliseTable(m, n) || changed
	}
	return
}

func permute(n ast.Node, perm []int) bool {
	if ast.IsIdentity(perm) {
		return false
	}
	n.Permute(perm)
	return true
}

// sumPerm sorts the non-constant terms and keeps constants last.
func sumPerm(o ast.Order, s *ast.WeightedSum) []int {
	var terms, consts []int
	var nodes []ast.Node
	for i, c := range s.Children() {
		if ast.IsConstant(c) {
			consts = append(consts, i)
		} else {
			terms = append(terms, i)
			nodes = append(nodes, c)
		}
	}
	perm := make([]int, 0, s.NumChildren())
	for _, j := range o.SortedPerm(nodes) {
		perm = append(perm, terms[j])
	}
	return append(perm, consts...)
}

// normaliseTable sorts the variables of a table constraint, permuting the
// columns of every row to match, and re-sorts the rows.
func normaliseTable(m *ast.Model, t *ast.Table) bool {
	vars := t.Child(0)
	rows, ok := m.TableRows(t.Child(1))
	if !ok {
		return false
	}
	perm := m.Order.SortedPerm(vars.Children())

	permuted := make([][]int64, len(rows))
	for i, row := range rows {
		if len(row) != len(perm) {
			return false
		}
		permuted[i] = make([]int64, len(perm))
		for k, j := range perm {
			permuted[i][k] = row[j]
		}
	}
	tab := m.InternRows(permuted)
	moved := permute(vars, perm)
	if moved || !tab.Equal(t.Child(1)) {
		t.SetChild(1, tab)
		return true
	}
	return false
}
