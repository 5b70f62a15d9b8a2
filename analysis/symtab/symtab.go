// Package symtab holds the collaborators the rewriter consults: declarations,
// the constant table store, filtered domains and the diagnostics channel.
package symtab

import (
	"fmt"
	"sort"

	"github.com/benbjohnson/immutable"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/bounds"
)

// Table maps variable names to declarations. The declarations live in a
// persistent map, so Snapshot is O(1).
type Table struct {
	decls   *immutable.Map[string, ast.Decl]
	aliases *immutable.Map[string, string]
	nextAux int
}

func New() *Table {
	return &Table{
		decls:   immutable.NewMap[string, ast.Decl](immutable.NewHasher("")),
		aliases: immutable.NewMap[string, string](immutable.NewHasher("")),
	}
}

// Declare adds an integer variable.
func (t *Table) Declare(name string, dom bounds.IntervalSet) {
	t.decls = t.decls.Set(name, ast.Decl{Name: name, Domain: dom})
}

// DeclareBool adds a boolean variable.
func (t *Table) DeclareBool(name string) {
	t.decls = t.decls.Set(name, ast.Decl{Name: name, Domain: bounds.BoolSet(), Boolean: true})
}

func (t *Table) Lookup(name string) (ast.Decl, bool) {
	return t.decls.Get(name)
}

// NewAux declares a fresh auxiliary variable named aux<N>.
func (t *Table) NewAux(dom bounds.IntervalSet, boolean bool) string {
	for {
		name := fmt.Sprintf("aux%d", t.nextAux)
		t.nextAux++
		if _, taken := t.decls.Get(name); taken {
			continue
		}
		if boolean {
			dom = dom.Intersect(bounds.BoolSet())
		}
		t.decls = t.decls.Set(name, ast.Decl{Name: name, Domain: dom, Boolean: boolean, Aux: true})
		return name
	}
}

func (t *Table) Restrict(name string, dom bounds.IntervalSet) {
	decl, ok := t.decls.Get(name)
	if !ok {
		panic(fmt.Errorf("restricting undeclared variable %s", name))
	}
	decl.Domain = dom
	t.decls = t.decls.Set(name, decl)
}

// Alias records that name was replaced by rep. The declaration of name is
// removed.
func (t *Table) Alias(name, rep string) {
	t.aliases = t.aliases.Set(name, rep)
	t.decls = t.decls.Delete(name)
}

// Resolve follows aliases to the variable that represents name.
func (t *Table) Resolve(name string) string {
	for {
		rep, ok := t.aliases.Get(name)
		if !ok {
			return name
		}
		name = rep
	}
}

// Names returns the declared variable names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, t.decls.Len())
	for iter := t.decls.Iterator(); !iter.Done(); {
		name, _, _ := iter.Next()
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the recorded aliases, sorted by name.
func (t *Table) Aliases() [][2]string {
	var res [][2]string
	for iter := t.aliases.Iterator(); !iter.Done(); {
		name, rep, _ := iter.Next()
		res = append(res, [2]string{name, rep})
	}
	sort.Slice(res, func(i, j int) bool { return res[i][0] < res[j][0] })
	return res
}

// Snapshot returns an independent copy of the table.
func (t *Table) Snapshot() *Table {
	cp := *t
	return &cp
}

// Domains is a filtered domain store.
type Domains map[string]bounds.IntervalSet

func (d Domains) Domain(name string) (bounds.IntervalSet, bool) {
	dom, ok := d[name]
	return dom, ok
}

var (
	_ ast.SymbolTable     = (*Table)(nil)
	_ ast.TableStore      = (*TableStore)(nil)
	_ ast.FilteredDomains = Domains(nil)
	_ ast.Reporter        = (*Log)(nil)
)
