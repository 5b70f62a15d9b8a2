package rewrite

import (
	"errors"
	"fmt"

	"github.com/crow-cp/crow/analysis/ast"
)

// ErrUnroll is returned for quantifiers whose domain cannot be enumerated.
var ErrUnroll = errors.New("cannot unroll quantifier")

// Unroll expands every quantifier of the model into a conjunction,
// disjunction or sum of copies of its body. Inner quantifiers are expanded
// first.
func Unroll(m *ast.Model, stats *Stats) (bool, error) {
	before := stats.Unrolled
	err := unroll(m.Root, stats)
	return stats.Unrolled > before, err
}

func unroll(n ast.Node, stats *Stats) error {
	for i := 0; i < n.NumChildren(); i++ {
		if err := unroll(n.Child(i), stats); err != nil {
			return err
		}
	}
	q, ok := n.(ast.Quantifier)
	if !ok {
		return nil
	}
	r, ok := q.Unroll()
	if !ok {
		return fmt.Errorf("%w: %s ranges over %s", ErrUnroll, q.Variable(), q.Domain())
	}
	ast.ReplaceWith(n, r)
	stats.Unrolled++
	return nil
}
