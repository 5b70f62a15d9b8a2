package rewrite

import (
	"cmp"

	"github.com/hashicorp/go-set/v3"
	uf "github.com/spakin/disjoint"

	"github.com/crow-cp/crow/analysis/ast"
)

// topConjuncts lists the constraints at the top level of the model.
func topConjuncts(m *ast.Model) []ast.Node {
	c := m.Constraint()
	if and, ok := c.(*ast.And); ok {
		return and.Children()
	}
	return []ast.Node{c}
}

// DeleteVars unifies variables that a top-level equality forces to be equal.
// Every class of equal variables is represented by its alphabetically least
// member, whose domain becomes the intersection of the class's domains. The
// other members are replaced everywhere and recorded as aliases.
func DeleteVars(m *ast.Model, stats *Stats) bool {
	elements := map[string]*uf.Element{}
	element := func(name string) *uf.Element {
		el, ok := elements[name]
		if !ok {
			el = uf.NewElement()
			elements[name] = el
		}
		return el
	}

	for _, c := range topConjuncts(m) {
		eq, ok := c.(*ast.Equals)
		if !ok {
			continue
		}
		x, ok1 := eq.Child(0).(*ast.Identifier)
		y, ok2 := eq.Child(1).(*ast.Identifier)
		if !ok1 || !ok2 || x.Name == y.Name || x.Boolean != y.Boolean {
			continue
		}
		if _, ok := m.Symbols.Lookup(x.Name); !ok {
			continue
		}
		if _, ok := m.Symbols.Lookup(y.Name); !ok {
			continue
		}
		uf.Union(element(x.Name), element(y.Name))
	}
	if len(elements) == 0 {
		return false
	}

	classes := map[*uf.Element]*set.TreeSet[string]{}
	for name, el := range elements {
		rep := el.Find()
		if classes[rep] == nil {
			classes[rep] = set.NewTreeSet[string](cmp.Compare[string])
		}
		classes[rep].Insert(name)
	}

	rename := map[string]string{}
	others := set.NewTreeSet[string](cmp.Compare[string])
	empty := false
	for _, names := range classes {
		rep := names.Min()
		decl, _ := m.Symbols.Lookup(rep)
		dom := decl.Domain
		for other := range names.Items() {
			if other != rep {
				od, _ := m.Symbols.Lookup(other)
				dom = dom.Intersect(od.Domain)
				rename[other] = rep
				others.Insert(other)
			}
		}
		m.Symbols.Restrict(rep, dom)
		empty = empty || dom.IsEmpty()
	}
	for _, other := range others.Slice() {
		m.Symbols.Alias(other, rename[other])
	}
	stats.Deleted += len(rename)

	// Equal variables without a common value.
	if empty {
		m.Root.SetChild(0, ast.Bool(false))
		return true
	}

	var ids []*ast.Identifier
	ast.Walk(m.Root, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok && rename[id.Name] != "" {
			if _, bound := ast.BoundQuantifier(id, id.Name); !bound {
				ids = append(ids, id)
			}
		}
		return true
	})
	for _, id := range ids {
		rep := ast.Ident(rename[id.Name])
		rep.Boolean = id.Boolean
		ast.ReplaceWith(id, rep)
	}
	return true
}
