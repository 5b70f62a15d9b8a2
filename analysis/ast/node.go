// Package ast implements the expression tree of a constraint model: the node
// kinds, their structural hashing and equality, and the per-kind rewrite,
// typecheck, bounds and negation rules.
package ast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crow-cp/crow/analysis/bounds"
	"github.com/crow-cp/crow/utils"
)

var (
	errInternal     = errors.New("internal error")
	errNotConstant  = errors.New("ConstantValue on a non-literal node")
	errNotNegatable = errors.New("Negation on a node that is not negatable")
	errPatternMatch = func(v interface{}) error {
		return fmt.Errorf("invalid pattern match: %v %T", v, v)
	}
)

// Node is an expression tree node. The set of implementations is closed:
// every kind is a struct of this package embedding nodeBase.
type Node interface {
	fmt.Stringer
	// Hash and Equal are structural. Hash is cached and always consistent
	// with the current subtree.
	Hash() uint32
	Equal(Node) bool

	Kind() Kind

	// Structure
	Children() []Node
	Child(i int) Node
	NumChildren() int
	Parent() Node
	ChildNo() int
	SetChild(i int, c Node)
	// Permute reorders the children so that child i becomes the old child
	// perm[i].
	Permute(perm []int)
	DeepCopy() Node

	// Capabilities
	IsRelation() bool
	IsNumerical() bool
	IsSet() bool
	IsNegatable() bool
	Negation() Node
	Bounds(m *Model) bounds.Intpair

	// Simplify performs one local rewrite step, assuming the children are
	// already simplified. It returns nil when there is nothing to do.
	Simplify(m *Model) Node
	// TypeCheck checks the node itself. Children are checked by the caller.
	TypeCheck(m *Model) bool

	base() *nodeBase
	// copyLocal returns a childless copy of the node-local data.
	copyLocal() Node
	// localHash and localEqual cover the node-local data only.
	localHash() uint32
	localEqual(Node) bool
	render(b *strings.Builder)
}

// nodeBase holds the state shared by all kinds. Children are owned; parent is
// a non-owning back reference used for hash invalidation and context queries.
type nodeBase struct {
	self     Node
	children []Node
	parent   Node
	childNo  int
	hash     uint32
	hashOK   bool
}

// init binds the base to its enclosing node and attaches the children.
func (b *nodeBase) init(self Node, children ...Node) {
	b.self = self
	b.children = make([]Node, len(children))
	for i, c := range children {
		b.SetChild(i, c)
	}
}

func (b *nodeBase) base() *nodeBase { return b }

func (b *nodeBase) Children() []Node {
	return append([]Node(nil), b.children...)
}

func (b *nodeBase) Child(i int) Node { return b.children[i] }

func (b *nodeBase) NumChildren() int { return len(b.children) }

func (b *nodeBase) Parent() Node { return b.parent }

func (b *nodeBase) ChildNo() int { return b.childNo }

// SetChild is the single mutation primitive of the tree. A child that is
// already attached elsewhere is deep-copied first, so ownership stays
// tree-shaped. Cached hashes are invalidated from this node to the root
// before it returns.
func (b *nodeBase) SetChild(i int, c Node) {
	if c == nil {
		panic(fmt.Errorf("%w: nil child of %s", errInternal, b.self.Kind()))
	}
	if c.Parent() != nil {
		c = c.DeepCopy()
	}
	if old := b.children[i]; old != nil && old.Parent() == b.self {
		old.base().parent = nil
	}
	cb := c.base()
	cb.parent = b.self
	cb.childNo = i
	b.children[i] = c
	b.invalidate()
}

// setChildren replaces all children at once.
func (b *nodeBase) setChildren(children []Node) {
	for _, old := range b.children {
		if old != nil && old.Parent() == b.self {
			old.base().parent = nil
		}
	}
	b.children = make([]Node, len(children))
	for i, c := range children {
		b.SetChild(i, c)
	}
	b.invalidate()
}

// Permute reorders the children so that child i becomes the old child perm[i].
func (b *nodeBase) Permute(perm []int) {
	if len(perm) != len(b.children) {
		panic(fmt.Errorf("%w: permutation of length %d for %d children", errInternal, len(perm), len(b.children)))
	}
	old := b.children
	b.children = make([]Node, len(old))
	for i, j := range perm {
		b.children[i] = old[j]
		b.children[i].base().childNo = i
	}
	b.invalidate()
}

// invalidate clears the cached hashes on the path to the root. A node with a
// valid hash only has children with valid hashes, so the walk stops at the
// first node that is already invalid.
func (b *nodeBase) invalidate() {
	for n := b.self; n != nil; n = n.Parent() {
		nb := n.base()
		if !nb.hashOK {
			return
		}
		nb.hashOK = false
	}
}

// ReplaceWith puts r in place of n in n's parent. It panics if n is a root.
func ReplaceWith(n, r Node) {
	p := n.Parent()
	if p == nil {
		panic(fmt.Errorf("%w: ReplaceWith on a root %s", errInternal, n.Kind()))
	}
	p.SetChild(n.ChildNo(), r)
}

// Hash returns the cached structural hash, recomputing it when stale.
func (b *nodeBase) Hash() uint32 {
	if !b.hashOK {
		b.hash = computeHash(b.self, (Node).Hash)
		b.hashOK = true
	}
	return b.hash
}

func computeHash(n Node, child func(Node) uint32) uint32 {
	hs := make([]uint32, 0, len(n.base().children)+2)
	hs = append(hs, uint32(n.Kind())+1, n.localHash())
	for _, c := range n.base().children {
		hs = append(hs, child(c))
	}
	return utils.HashCombine(hs...)
}

// RecomputeHash computes the structural hash of n from scratch, ignoring
// every cache.
func RecomputeHash(n Node) uint32 {
	return computeHash(n, RecomputeHash)
}

// Equal checks structural equality.
func (b *nodeBase) Equal(o Node) bool {
	if o == nil {
		return false
	}
	n := b.self
	if n == o {
		return true
	}
	if n.Kind() != o.Kind() || n.Hash() != o.Hash() || !n.localEqual(o) {
		return false
	}
	ob := o.base()
	if len(b.children) != len(ob.children) {
		return false
	}
	for i, c := range b.children {
		if !c.Equal(ob.children[i]) {
			return false
		}
	}
	return true
}

// DeepCopy copies the whole subtree. The copy has no parent.
func (b *nodeBase) DeepCopy() Node {
	cp := b.self.copyLocal()
	children := make([]Node, len(b.children))
	for i, c := range b.children {
		children[i] = c.DeepCopy()
	}
	cp.base().init(cp, children...)
	return cp
}

func (b *nodeBase) String() string {
	var sb strings.Builder
	b.self.render(&sb)
	return sb.String()
}

// Defaults, overridden by the kinds they do not fit.

func (b *nodeBase) IsRelation() bool  { return false }
func (b *nodeBase) IsNumerical() bool { return false }
func (b *nodeBase) IsSet() bool       { return false }
func (b *nodeBase) IsNegatable() bool { return false }

func (b *nodeBase) Negation() Node {
	panic(fmt.Errorf("%w: %s", errNotNegatable, b.self))
}

func (b *nodeBase) Bounds(*Model) bounds.Intpair {
	if b.self.IsRelation() {
		return bounds.Bool()
	}
	return bounds.Full()
}

func (b *nodeBase) Simplify(*Model) Node { return nil }

func (b *nodeBase) TypeCheck(*Model) bool { return true }

func (b *nodeBase) localHash() uint32 { return 0 }

func (b *nodeBase) localEqual(Node) bool { return true }

// IsConstant checks whether n is itself a literal constant. A subtree that
// only evaluates to one value is not constant until it has been rewritten
// into a literal.
func IsConstant(n Node) bool {
	switch n.(type) {
	case *IntConst, *BoolConst:
		return true
	}
	return false
}

// ConstantValue returns the value of a literal constant, with booleans as 0/1.
// Calling it on anything else is a contract violation.
func ConstantValue(n Node) int64 {
	switch n := n.(type) {
	case *IntConst:
		return n.Value
	case *BoolConst:
		if n.Value {
			return 1
		}
		return 0
	}
	panic(fmt.Errorf("%w: %s", errNotConstant, n))
}

// Dimension is the matrix nesting depth of n; scalars have dimension 0.
func Dimension(n Node) int {
	if m, ok := n.(*Matrix); ok {
		d := 0
		for _, c := range m.children {
			if cd := Dimension(c); cd > d {
				d = cd
			}
		}
		return d + 1
	}
	return 0
}

// Not returns the negation of a relation: its dual when the node is
// negatable, a Negate wrapper otherwise.
func Not(n Node) Node {
	if n.IsNegatable() {
		return n.Negation()
	}
	return NewNegate(n)
}

// Walk visits n and its descendants in pre-order. Returning false from f
// skips the children of the visited node.
func Walk(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range n.base().children {
		Walk(c, f)
	}
}

// Size counts the nodes of the subtree rooted at n.
func Size(n Node) (size int) {
	Walk(n, func(Node) bool {
		size++
		return true
	})
	return
}
