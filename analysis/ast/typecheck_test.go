package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeCheckAccepts(t *testing.T) {
	m, diag := standardModel()
	m.Tables.Intern([][]int64{{1, 2}})
	for _, src := range []string{
		"(and (= x 1) (alldiff [x y]) (forall i {1..3} (<= i x)))",
		"(-> a (<= (sum [x y] [2 -1]) (qsum i {1..3} (* i z))))",
		"(table [x y] @t0)",
		"(gcc [x y] [1 2] [z 1])",
		"(in x {1..3})",
		"(xor a b (not c))",
	} {
		n := attach(m, mustParse(t, m, src))
		assert.True(t, TypeCheck(m, n), src)
	}
	assert.Empty(t, diag.errors)
}

func TestTypeCheckRejects(t *testing.T) {
	for _, src := range []string{
		"(and x a)",
		"(= u 1)",
		"(sum [x [y]] [1 1])",
		"(forall i {0..∞} (<= i x))",
		"(table [x y] @nope)",
		"(table [x y] (tuples [1 2 3]))",
		"(gcc [x y] [1 1] [z z])",
		"(gcc [x y] [1 2] [z])",
		"(alldiff x)",
		"(in [x] {1})",
		"(and (= x 1) [[x] y])",
	} {
		m, diag := standardModel()
		n := attach(m, mustParse(t, m, src))
		assert.False(t, TypeCheck(m, n), src)
		assert.NotEmpty(t, diag.errors, src)
	}
}

func TestTypeCheckReportsEveryFailure(t *testing.T) {
	m, diag := standardModel()
	n := attach(m, mustParse(t, m, "(and (= u 1) (= v 2))"))
	assert.False(t, TypeCheck(m, n))
	assert.Len(t, diag.errors, 2)
}

func TestTypeCheckBooleanMismatch(t *testing.T) {
	m, diag := standardModel()
	n := attach(m, NewEquals(BoolIdent("x"), Int(1)))
	assert.False(t, TypeCheck(m, n))
	assert.Contains(t, diag.errors[0], "declared as int")
}
