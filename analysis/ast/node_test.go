package ast

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetChildCopiesAttachedNodes(t *testing.T) {
	x := Ident("x")
	sum := Plus(x, Int(1))
	require.Same(t, x, sum.Child(0), "a detached child is adopted as is")
	assert.Same(t, sum, x.Parent())
	assert.Equal(t, 0, x.ChildNo())

	eq := NewEquals(x, Int(3))
	assert.NotSame(t, x, eq.Child(0), "an attached child is copied")
	assert.True(t, x.Equal(eq.Child(0)))
	assert.Same(t, sum, x.Parent(), "the original keeps its parent")
	assert.Same(t, eq, eq.Child(0).Parent())
}

func TestReplaceWith(t *testing.T) {
	m, _ := standardModel()
	and := attach(m, mustParse(t, m, "(and a (or b c))"))
	or := and.Child(1)
	ReplaceWith(or, BoolIdent("c"))

	assert.Equal(t, "(and a c)", m.Root.String())
	assert.Nil(t, or.Parent(), "the replaced node is detached")
	assert.Equal(t, 1, and.Child(1).ChildNo())
	assert.Panics(t, func() { ReplaceWith(m.Root, Bool(true)) })
}

func TestStructuralEquality(t *testing.T) {
	m, _ := standardModel()
	a := mustParse(t, m, "(sum [x (* y z)] [2 3])")
	b := mustParse(t, m, "(sum [x (* y z)] [2 3])")
	c := mustParse(t, m, "(sum [x (* y z)] [2 4])")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c), "weights are node-local data")
	assert.False(t, Ident("a").Equal(BoolIdent("a")))
	assert.True(t, a.DeepCopy().Equal(a))
	assert.Nil(t, a.DeepCopy().Parent())
}

// randomTree builds a random expression over a few identifiers.
func randomTree(r *rand.Rand, depth int) Node {
	if depth == 0 || r.Intn(4) == 0 {
		switch r.Intn(3) {
		case 0:
			return Int(int64(r.Intn(5)))
		case 1:
			return Ident(string(rune('x' + r.Intn(3))))
		default:
			return BoolIdent(string(rune('a' + r.Intn(3))))
		}
	}
	a, b := randomTree(r, depth-1), randomTree(r, depth-1)
	switch r.Intn(6) {
	case 0:
		return Plus(a, b)
	case 1:
		return NewTimes(a, b)
	case 2:
		return NewEquals(a, b)
	case 3:
		return NewAnd(a, b, randomTree(r, depth-1))
	case 4:
		return NewNegate(a)
	default:
		return NewMatrix(a, b)
	}
}

func collect(n Node) (res []Node) {
	Walk(n, func(c Node) bool {
		res = append(res, c)
		return true
	})
	return
}

// Cached hashes must agree with a from-scratch computation after any
// sequence of mutations through SetChild and Permute.
func TestHashCacheSoundness(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		root := NewTop(randomTree(r, 5))
		for j := 0; j < 20; j++ {
			nodes := collect(root)
			// Warm some caches.
			for _, n := range nodes {
				if r.Intn(2) == 0 {
					n.Hash()
				}
			}
			n := nodes[r.Intn(len(nodes))]
			if n.NumChildren() == 0 {
				continue
			}
			if r.Intn(3) == 0 && n.NumChildren() > 1 {
				perm := r.Perm(n.NumChildren())
				n.Permute(perm)
			} else {
				n.SetChild(r.Intn(n.NumChildren()), randomTree(r, 2))
			}
			for _, n := range collect(root) {
				require.Equal(t, RecomputeHash(n), n.Hash(), "stale hash at %s", n)
			}
		}
	}
}

func TestPermuteKeepsWeights(t *testing.T) {
	s := NewSum([]Node{Ident("x"), Ident("y"), Int(4)}, []int64{2, 3, 1})
	s.Permute([]int{2, 0, 1})
	assert.Equal(t, "(sum [4 x y] [1 2 3])", s.String())
	for i, c := range s.Children() {
		assert.Equal(t, i, c.ChildNo())
	}
}

func TestDimension(t *testing.T) {
	m, _ := standardModel()
	assert.Equal(t, 0, Dimension(Ident("x")))
	assert.Equal(t, 1, Dimension(mustParse(t, m, "[x y]")))
	assert.Equal(t, 2, Dimension(mustParse(t, m, "[[x] [y z]]")))
}

func TestMatrixCapabilities(t *testing.T) {
	m, _ := standardModel()
	empty := NewMatrix()
	assert.True(t, empty.IsSet())
	assert.True(t, empty.IsRelation())
	assert.False(t, empty.IsNumerical())

	assert.True(t, mustParse(t, m, "[{1..3} {5}]").IsSet())
	assert.False(t, mustParse(t, m, "[{1..3} x]").IsSet())
	assert.True(t, mustParse(t, m, "[a (= x y)]").IsRelation())
	assert.True(t, mustParse(t, m, "[a x]").IsNumerical())
}

func TestConstantValue(t *testing.T) {
	assert.Equal(t, int64(-3), ConstantValue(Int(-3)))
	assert.Equal(t, int64(1), ConstantValue(Bool(true)))
	assert.True(t, IsConstant(Bool(false)))
	assert.False(t, IsConstant(Plus(Int(1), Int(2))))
	assert.Panics(t, func() { ConstantValue(Ident("x")) })
}

func TestInTopConjunction(t *testing.T) {
	m, _ := standardModel()
	root := attach(m, mustParse(t, m, "(and (-> a b) (or (-> a c) b))"))
	assert.True(t, InTopConjunction(root))
	assert.True(t, InTopConjunction(root.Child(0)))
	assert.False(t, InTopConjunction(root.Child(1).Child(0)))
	assert.False(t, InTopConjunction(Ident("x")), "detached")
}

func TestSize(t *testing.T) {
	m, _ := standardModel()
	assert.Equal(t, 5, Size(mustParse(t, m, "(= (* x y) 3)")))
}
