package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnroll(t *testing.T) {
	m, _ := standardModel()
	for _, tc := range []struct{ src, exp string }{
		{"(forall i {1..3} (<= i x))", "(and (<= 1 x) (<= 2 x) (<= 3 x))"},
		{"(exists i {1,5} (= x i))", "(or (= x 1) (= x 5))"},
		{"(qsum i {0..2} (* i x))", "(sum [(* 0 x) (* 1 x) (* 2 x)] [1 1 1])"},
		{"(forall i {} (= x i))", "(and)"},
		// Inner quantifiers shadow the outer variable.
		{"(forall i {1..2} (exists i {5..6} (= x i)))",
			"(and (exists i {5..6} (= x i)) (exists i {5..6} (= x i)))"},
		{"(forall i {1..2} (exists j {5..6} (= i j)))",
			"(and (exists j {5..6} (= 1 j)) (exists j {5..6} (= 2 j)))"},
	} {
		q, ok := mustParse(t, m, tc.src).(Quantifier)
		require.True(t, ok, tc.src)
		res, ok := q.Unroll()
		require.True(t, ok, tc.src)
		assert.Equal(t, tc.exp, res.String())
	}
}

func TestUnrollRejectsInfiniteDomain(t *testing.T) {
	m, _ := standardModel()
	q := mustParse(t, m, "(exists i {0..∞} (= x i))").(Quantifier)
	_, ok := q.Unroll()
	assert.False(t, ok)
}

func TestOccurs(t *testing.T) {
	m, _ := standardModel()
	n := mustParse(t, m, "(and (= x i) (forall j {1..2} (<= j y)))")
	assert.True(t, Occurs(n, "i"))
	assert.True(t, Occurs(n, "y"))
	assert.False(t, Occurs(n, "j"), "bound occurrences are not free")
	assert.False(t, Occurs(n, "z"))
}

func TestSubstituteCopies(t *testing.T) {
	m, _ := standardModel()
	n := attach(m, mustParse(t, m, "(= (sum [x i] [1 2]) i)"))
	repl := Int(4)
	res := Substitute(n, "i", repl)
	assert.Equal(t, "(= (sum [x 4] [1 2]) 4)", res.String())
	assert.Nil(t, repl.Parent())
	assert.Nil(t, res.Parent())
	assert.Equal(t, "(= (sum [x i] [1 2]) i)", n.String())
}

func TestBoundIdentifierDomain(t *testing.T) {
	m, _ := standardModel()
	q := attach(m, mustParse(t, m, "(forall i {3..4} (<= i x))"))
	i := q.Child(0).Child(0).(*Identifier)
	dom, ok := i.Domain(m)
	require.True(t, ok)
	assert.Equal(t, "{3..4}", dom.String())
	assert.Nil(t, i.Simplify(m))
}
