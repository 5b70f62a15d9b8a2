package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	m, _ := standardModel()
	for _, src := range []string{
		"42",
		"-7",
		"true",
		"x",
		"a",
		"{1..3,5}",
		"[x [y z]]",
		"[]",
		"(sum [x y 3] [2 -1 1])",
		"(* x y)",
		"(div x y)",
		"(mod x 3)",
		"(- x)",
		"(abs x)",
		"(= x y)",
		"(<= x 3)",
		"(< x y)",
		"(alldiff [x y z])",
		"(and a b)",
		"(and)",
		"(or a (not b))",
		"(-> a b)",
		"(<-> a b)",
		"(xor a b c)",
		"(in x {-∞..0,5})",
		"(table [x y] (tuples [1 2] [3 4]))",
		"(table [x] (tuples))",
		"(negtable [x y] @t0)",
		"(gcc [x y] [1 2] [z 1])",
		"(forall i {1..3} (<= i x))",
		"(exists i {1..3} (= x i))",
		"(qsum i {0..2} (* i x))",
	} {
		n, err := Parse(src, m.Symbols)
		require.NoError(t, err, src)
		assert.Equal(t, src, n.String())
	}
}

func TestParseSugar(t *testing.T) {
	m, _ := standardModel()
	for _, tc := range []struct{ src, exp string }{
		{"(+ x y)", "(sum [x y] [1 1])"},
		{"(- x y)", "(sum [x y] [1 -1])"},
		{"(!= x y)", "(alldiff [x y])"},
		{"(>= x y)", "(<= y x)"},
		{"(> x y)", "(< y x)"},
		{"; a comment\n(= x 1) ; trailing", "(= x 1)"},
		{"(in x {-inf..3})", "(in x {-∞..3})"},
	} {
		n, err := Parse(tc.src, m.Symbols)
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.exp, n.String())
	}
}

func TestParseResolvesBooleans(t *testing.T) {
	m, _ := standardModel()
	n := mustParse(t, m, "(and a (= x 1))")
	assert.True(t, n.Child(0).(*Identifier).Boolean)
	assert.False(t, n.Child(1).Child(0).(*Identifier).Boolean)

	// Without a symbol table every identifier is an integer.
	n, err := Parse("(and a b)", nil)
	require.NoError(t, err)
	assert.False(t, n.Child(0).(*Identifier).Boolean)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		")",
		"(= x)",
		"(= x 1",
		"(= x 1) y",
		"(foo x y)",
		"(sum [x y] [1])",
		"(sum [x] [y])",
		"(in x y)",
		"(in x {1..",
		"(forall i {3..1} (= x i))",
		"(gcc x [1] [y])",
		"(tuples [1 x])",
	} {
		_, err := Parse(src, nil)
		assert.True(t, errors.Is(err, ErrParse), "%q: %v", src, err)
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("(", nil) })
	assert.NotPanics(t, func() { MustParse("(= x 1)", nil) })
}
