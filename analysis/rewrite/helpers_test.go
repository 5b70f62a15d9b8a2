package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/bounds"
	"github.com/crow-cp/crow/analysis/symtab"
)

type decl struct {
	name   string
	lo, hi int64
}

// newModel declares x, y, z over 0..10, booleans a, b, c and the given
// extra declarations, which may override the defaults. Commutative
// operands are ordered alphabetically.
func newModel(t *testing.T, src string, extra ...decl) (*ast.Model, *symtab.Table, *symtab.Log) {
	t.Helper()
	syms := symtab.New()
	for _, v := range []string{"x", "y", "z"} {
		syms.Declare(v, bounds.Range(0, 10))
	}
	for _, v := range []string{"a", "b", "c"} {
		syms.DeclareBool(v)
	}
	for _, d := range extra {
		syms.Declare(d.name, bounds.Range(d.lo, d.hi))
	}
	diag := symtab.NewLog(nil)
	c, err := ast.Parse(src, syms)
	require.NoError(t, err)
	m := ast.NewModel(c, syms, symtab.NewTableStore(), diag)
	m.Order = ast.Alphabetic
	return m, syms, diag
}
