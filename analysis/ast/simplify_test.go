package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rewriteCase struct {
	src, exp string
}

func runRewriteCases(t *testing.T, cases []rewriteCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			m, _ := standardModel()
			res := fixpoint(t, m, mustParse(t, m, tc.src))
			assert.Equal(t, tc.exp, res.String())
		})
	}
}

func TestSimplifyArithmetic(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(sum [x 3 (sum [y 2] [1 1])] [1 1 1])", "(sum [x y 5] [1 1 1])"},
		{"(sum [x x] [1 -1])", "0"},
		{"(sum [x y x] [2 1 3])", "(sum [x y] [5 1])"},
		{"(sum [x] [1])", "x"},
		{"(sum [y x 0] [1 1 4])", "(sum [x y] [1 1])"},
		{"(* 3 x)", "(sum [x] [3])"},
		{"(* 2 5)", "10"},
		{"(* x 0)", "0"},
		{"(div 7 -2)", "-4"},
		{"(mod 7 -2)", "-1"},
		{"(div x 0)", "0"},
		{"(mod x 0)", "0"},
		{"(div x 1)", "x"},
		{"(- (- x))", "x"},
		{"(- 4)", "-4"},
		{"(abs (- x))", "x"},
		{"(abs -3)", "3"},
		{"(abs (sum [x 10] [-1 1]))", "(sum [x 10] [-1 1])"},
		{"(abs (sum [x 11] [1 -1]))", "(sum [x 11] [-1 1])"},
		{"(sum [s x] [1 1])", "(sum [x 7] [1 1])"},
	})
}

func TestSimplifyEquals(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(= x x)", "true"},
		{"(= 3 3)", "true"},
		{"(= x 11)", "false"},
		{"(= w 2)", "false"},
		{"(= w 3)", "(= w 3)"},
		{"(= (sum [x y] [2 4]) 7)", "false"},
		{"(= (sum [x y] [2 4]) 8)", "(= (sum [x y] [1 2]) 4)"},
		{"(= 8 (sum [x y] [2 4]))", "(= 4 (sum [x y] [1 2]))"},
		{"(= (sum [x 3] [1 1]) y)", "(= (sum [x y] [1 -1]) -3)"},
		{"(= (sum [x 3] [1 1]) 5)", "(= x 2)"},
		{"(= (sum [x y] [1 -1]) 0)", "(= x y)"},
		{"(= (sum [x] [-1]) -4)", "(= x 4)"},
		{"(= s x)", "(= 7 x)"},
	})
}

func TestSimplifyInequalities(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(<= x x)", "true"},
		{"(< x x)", "false"},
		{"(<= x 10)", "true"},
		{"(< 10 x)", "false"},
		{"(< x 5)", "(<= x 4)"},
		{"(< 5 x)", "(<= 6 x)"},
		{"(<= (sum [x y] [2 2]) 7)", "(<= (sum [x y] [1 1]) 3)"},
		{"(<= 7 (sum [x y] [2 2]))", "(<= 4 (sum [x y] [1 1]))"},
		{"(< (sum [x y] [2 2]) 8)", "(<= (sum [x y] [1 1]) 3)"},
		{"(< (sum [x y] [1 -1]) 0)", "(< x y)"},
		{"(<= 0 (sum [x y] [1 -1]))", "(<= y x)"},
		{"(<= (sum [x 2] [1 1]) y)", "(<= (sum [x y] [1 -1]) -2)"},
		{"(>= x y)", "(<= y x)"},
	})
}

func TestStrictInequalityRoundingWarns(t *testing.T) {
	for _, tc := range []rewriteCase{
		{"(< (sum [x y] [2 2]) 7)", "(<= (sum [x y] [1 1]) 3)"},
		{"(< 7 (sum [x y] [2 2]))", "(<= 4 (sum [x y] [1 1]))"},
	} {
		m, diag := standardModel()
		res := fixpoint(t, m, mustParse(t, m, tc.src))
		assert.Equal(t, tc.exp, res.String())
		assert.Len(t, diag.warnings, 1, tc.src)
	}

	m, diag := standardModel()
	fixpoint(t, m, mustParse(t, m, "(<= (sum [x y] [2 2]) 7)"))
	assert.Empty(t, diag.warnings, "rounding a non-strict inequality is exact")
}

func TestSimplifyLogic(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(and a (and b c) true)", "(and a b c)"},
		{"(and a false)", "false"},
		{"(and a (not a))", "false"},
		{"(and)", "true"},
		{"(and a)", "a"},
		{"(or a b a)", "(or a b)"},
		{"(or a (not a))", "true"},
		{"(or)", "false"},
		{"(or a (or b true))", "true"},
		{"(-> true a)", "a"},
		{"(-> a false)", "(not a)"},
		{"(-> a a)", "true"},
		{"(-> false a)", "true"},
		{"(-> a (and b c))", "(and (-> a b) (-> a c))"},
		{"(or c (-> a (and b (= x 1))))", "(or c (-> a (and b (= x 1))))"},
		{"(<-> a true)", "a"},
		{"(<-> a false)", "(not a)"},
		{"(<-> a (not a))", "false"},
		{"(<-> a a)", "true"},
		{"(xor a b a)", "b"},
		{"(xor a true)", "(not a)"},
		{"(xor a b true)", "(xor (not a) b)"},
		{"(xor true true)", "false"},
		{"(xor a (xor b c))", "(xor a b c)"},
	})
}

func TestNegationPushdown(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(not (= x y))", "(alldiff [x y])"},
		{"(not (alldiff [x y]))", "(= x y)"},
		{"(not (<= x y))", "(< y x)"},
		{"(not (< x y))", "(<= y x)"},
		{"(not (not a))", "a"},
		{"(not true)", "false"},
		{"(not (and a (= x 1)))", "(or (not a) (alldiff [x 1]))"},
		{"(not (or a b))", "(and (not a) (not b))"},
		{"(not (-> a b))", "(and a (not b))"},
		{"(not (in x {2..4}))", "(in x {-∞..1,5..∞})"},
	})
}

func TestSimplifyAllDifferent(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(alldiff [x])", "true"},
		{"(alldiff [])", "true"},
		{"(alldiff [x y x])", "false"},
		{"(alldiff [1 x 1])", "false"},
		{"(alldiff [x 20 y])", "(alldiff [x y])"},
		{"(alldiff [w 2])", "true"},
		{"(alldiff [p q r])", "false"},
		{"(alldiff [p (sum [q 3] [1 1])])", "true"},
		{"(alldiff [p w])", "(alldiff [p w])"},
	})
}

func TestSimplifyInSet(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(in 3 {1..5})", "true"},
		{"(in 6 {1..5})", "false"},
		{"(in x {0..20})", "true"},
		{"(in x {20..30})", "false"},
		{"(in w {1,3..5})", "true"},
		{"(in x {2..4})", "(in x {2..4})"},
	})
}

func TestSimplifyTables(t *testing.T) {
	m, _ := standardModel()
	res := fixpoint(t, m, mustParse(t, m, "(table [x y] (tuples [1 2] [3 4] [1 2]))"))
	require.Equal(t, "(table [x y] @t0)", res.String())
	rows, ok := m.Tables.Rows("t0")
	require.True(t, ok)
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, rows)

	res = fixpoint(t, m, mustParse(t, m, "(table [1 y] (tuples [1 2] [3 4] [1 5]))"))
	require.Equal(t, "(table [y] @t2)", res.String())
	rows, _ = m.Tables.Rows("t2")
	assert.Equal(t, [][]int64{{2}, {5}}, rows)

	runRewriteCases(t, []rewriteCase{
		{"(table [x y] (tuples [11 2] [20 4]))", "false"},
		{"(table [x y] (tuples))", "false"},
		{"(table [1 2] (tuples [1 2]))", "true"},
		{"(negtable [1 2] (tuples [1 2]))", "false"},
		{"(negtable [x y] (tuples [11 11]))", "true"},
		{"(not (table [x y] (tuples [1 2])))", "(negtable [x y] @t0)"},
	})
}

func TestSimplifyGlobalCard(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(gcc [x 1 1 y] [1 2] [z 1])", "(gcc [x y] [1 2] [(sum [z -2] [1 1]) 1])"},
		{"(gcc [] [1] [z])", "(= z 0)"},
		{"(gcc [x y] [1] [3])", "false"},
	})
}

func TestSimplifyQuantifiers(t *testing.T) {
	runRewriteCases(t, []rewriteCase{
		{"(forall i {} (= x i))", "true"},
		{"(exists i {} (= x i))", "false"},
		{"(qsum i {} i)", "0"},
		{"(exists i {1..3} (= x 1))", "(= x 1)"},
		{"(qsum i {1..3} x)", "(sum [x] [3])"},
		{"(forall i {1..3} (<= i x))", "(forall i {1..3} (<= i x))"},
	})
}
