package satcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/symtab"
)

func parse(t *testing.T, src string) ast.Node {
	syms := symtab.New()
	for _, v := range []string{"a", "b", "c"} {
		syms.DeclareBool(v)
	}
	n, err := ast.Parse(src, syms)
	require.NoError(t, err)
	return n
}

func TestSatisfiable(t *testing.T) {
	for _, tc := range []struct {
		src string
		exp bool
	}{
		{"true", true},
		{"false", false},
		{"(and a (not a))", false},
		{"(or a (not a))", true},
		{"(and (-> a b) a (not b))", false},
		{"(xor a b c)", true},
		{"(and (xor a b) (<-> a b))", false},
		{"(and (or a b) (not a) (not b))", false},
	} {
		sat, err := Satisfiable(parse(t, tc.src))
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.exp, sat, tc.src)
	}
}

func TestEquivalent(t *testing.T) {
	eq, err := Equivalent(parse(t, "(not (and a b))"), parse(t, "(or (not a) (not b))"))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = Equivalent(parse(t, "(-> a b)"), parse(t, "(-> b a)"))
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestNotPropositional(t *testing.T) {
	_, err := Satisfiable(parse(t, "(= x 3)"))
	assert.ErrorIs(t, err, ErrNotPropositional)
}
