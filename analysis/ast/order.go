package ast

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Order is a total order over sibling expressions used to canonicalise
// commutative kinds.
type Order int

const (
	// ByHash orders by structural hash. Fast, but depends on the hash function.
	ByHash Order = iota
	// Alphabetic orders by textual rendering.
	Alphabetic
)

func (o Order) String() string {
	if o == Alphabetic {
		return "alphabetic"
	}
	return "hash"
}

// Compare orders a and b. Hash ties are broken by rendering, so the result is
// 0 only for structurally equal nodes.
func (o Order) Compare(a, b Node) int {
	if o == ByHash {
		ha, hb := a.Hash(), b.Hash()
		switch {
		case ha < hb:
			return -1
		case ha > hb:
			return 1
		}
	}
	return strings.Compare(a.String(), b.String())
}

// sortedPerm returns the permutation sorting nodes under o. The sort is
// stable, so equal nodes keep their relative order.
func (o Order) sortedPerm(nodes []Node) []int {
	perm := make([]int, len(nodes))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(i, j int) bool {
		return o.Compare(nodes[i], nodes[j]) < 0
	})
	return perm
}

// SortedPerm is the exported form of sortedPerm.
func (o Order) SortedPerm(nodes []Node) []int {
	return o.sortedPerm(nodes)
}

// IsIdentity checks whether perm leaves every position in place.
func IsIdentity(perm []int) bool {
	for i, j := range perm {
		if i != j {
			return false
		}
	}
	return true
}
