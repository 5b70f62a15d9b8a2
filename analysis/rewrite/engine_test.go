package rewrite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crow-cp/crow/analysis/ast"
)

func TestSimplifyModel(t *testing.T) {
	m, _, diag := newModel(t, "(and (<= (sum [x y] [2 2]) 7) (= x x) (-> a (and b c)))")
	stats := NewStats()
	changed, err := Simplify(m, DefaultMaxPasses, stats)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "(and (<= (sum [x y] [1 1]) 3) (-> a b) (-> a c))", m.Constraint().String())
	assert.Equal(t, 1, stats.Rewrites[ast.KindEquals])
	assert.Positive(t, stats.Passes)
	assert.Empty(t, diag.Warnings)

	changed, err = Simplify(m, DefaultMaxPasses, stats)
	require.NoError(t, err)
	assert.False(t, changed, "a fixpoint is stable")
}

func TestSimplifyToConstant(t *testing.T) {
	m, _, _ := newModel(t, "(and (or a (not a)) (<= x 10))")
	_, err := Simplify(m, DefaultMaxPasses, nil)
	require.NoError(t, err)
	assert.Equal(t, "true", m.Constraint().String())

	m, _, _ = newModel(t, "(and a (alldiff [x 3 x]))")
	_, err = Simplify(m, DefaultMaxPasses, nil)
	require.NoError(t, err)
	assert.Equal(t, "false", m.Constraint().String())
}

func TestSimplifyPassLimit(t *testing.T) {
	m, _, _ := newModel(t, "(= x x)")
	_, err := Simplify(m, 1, nil)
	assert.True(t, errors.Is(err, ErrNoFixpoint))

	m, _, _ = newModel(t, "(= x x)")
	_, err = Simplify(m, 2, nil)
	assert.NoError(t, err)
}

func TestSimplifyNode(t *testing.T) {
	m, _, _ := newModel(t, "true")
	n, err := ast.Parse("(not (= x y))", m.Symbols)
	require.NoError(t, err)
	res, err := SimplifyNode(m, n)
	require.NoError(t, err)
	assert.Equal(t, "(alldiff [x y])", res.String())
	assert.Equal(t, ast.KindTop, res.Parent().Kind())
	assert.Equal(t, "true", m.Constraint().String(), "the model is untouched")
}

func TestStatsString(t *testing.T) {
	stats := NewStats()
	stats.rewrote(ast.KindEquals)
	stats.rewrote(ast.KindEquals)
	stats.rewrote(ast.KindLess)
	assert.Equal(t, 3, stats.TotalRewrites())
	s := stats.String()
	assert.Contains(t, s, "Rewrites: 3")
	assert.Contains(t, s, "=")
}
