package ast

import (
	"strings"
)

// Top is the root of a model. It is never rewritten itself.
type Top struct{ nodeBase }

func NewTop(c Node) *Top {
	n := &Top{}
	n.init(n, c)
	return n
}

func (n *Top) Kind() Kind                { return KindTop }
func (n *Top) IsRelation() bool          { return true }
func (n *Top) copyLocal() Node           { return &Top{} }
func (n *Top) render(b *strings.Builder) { n.children[0].render(b) }
func (n *Top) TypeCheck(m *Model) bool   { return checkRelations(m, n) }
