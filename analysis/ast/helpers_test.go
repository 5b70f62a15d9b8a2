package ast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crow-cp/crow/analysis/bounds"
)

// testSymbols is a minimal symbol table.
type testSymbols struct {
	decls map[string]Decl
	aux   int
}

func newTestSymbols() *testSymbols {
	return &testSymbols{decls: map[string]Decl{}}
}

func (s *testSymbols) intVar(name string, lo, hi int64) *testSymbols {
	s.decls[name] = Decl{Name: name, Domain: bounds.Range(lo, hi)}
	return s
}

func (s *testSymbols) setVar(name string, dom bounds.IntervalSet) *testSymbols {
	s.decls[name] = Decl{Name: name, Domain: dom}
	return s
}

func (s *testSymbols) boolVar(name string) *testSymbols {
	s.decls[name] = Decl{Name: name, Domain: bounds.BoolSet(), Boolean: true}
	return s
}

func (s *testSymbols) Lookup(name string) (Decl, bool) {
	d, ok := s.decls[name]
	return d, ok
}

func (s *testSymbols) NewAux(dom bounds.IntervalSet, boolean bool) string {
	s.aux++
	name := fmt.Sprintf("aux%d", s.aux)
	s.decls[name] = Decl{Name: name, Domain: dom, Boolean: boolean, Aux: true}
	return name
}

func (s *testSymbols) Restrict(name string, dom bounds.IntervalSet) {
	d := s.decls[name]
	d.Domain = dom
	s.decls[name] = d
}

func (s *testSymbols) Alias(name, rep string) {
	delete(s.decls, name)
}

type testTables struct {
	rows map[string][][]int64
}

func (t *testTables) Intern(rows [][]int64) string {
	canon := CanonicalRows(rows)
	for name, r := range t.rows {
		if len(r) == len(canon) && (len(r) == 0 || tableEqual(r, canon)) {
			return name
		}
	}
	name := fmt.Sprintf("t%d", len(t.rows))
	t.rows[name] = canon
	return name
}

func tableEqual(a, b [][]int64) bool {
	for i := range a {
		if CompareRows(a[i], b[i]) != 0 {
			return false
		}
	}
	return true
}

func (t *testTables) Rows(name string) ([][]int64, bool) {
	r, ok := t.rows[name]
	return r, ok
}

type testDiag struct {
	warnings, errors []string
}

func (d *testDiag) Warn(msg string)  { d.warnings = append(d.warnings, msg) }
func (d *testDiag) Error(msg string) { d.errors = append(d.errors, msg) }

// standardModel declares integer variables x, y, z over 0..10, p, q, r
// over 1..2, w over {1,3,5}, s fixed to 7 and boolean variables a, b, c.
// Commutative operands are ordered alphabetically.
func standardModel() (*Model, *testDiag) {
	syms := newTestSymbols().
		intVar("x", 0, 10).intVar("y", 0, 10).intVar("z", 0, 10).
		intVar("p", 1, 2).intVar("q", 1, 2).intVar("r", 1, 2).
		setVar("w", bounds.FromValues(1, 3, 5)).
		intVar("s", 7, 7).
		boolVar("a").boolVar("b").boolVar("c")
	diag := &testDiag{}
	m := NewModel(Bool(true), syms, &testTables{rows: map[string][][]int64{}}, diag)
	m.Order = Alphabetic
	return m, diag
}

func mustParse(t *testing.T, m *Model, src string) Node {
	t.Helper()
	n, err := Parse(src, m.Symbols)
	require.NoError(t, err, src)
	return n
}

// attach puts n under the model root, so that context queries see it as a
// top-level constraint.
func attach(m *Model, n Node) Node {
	m.Root.SetChild(0, n)
	return m.Root.Child(0)
}

// fixpoint applies Simplify bottom-up until nothing changes.
func fixpoint(t *testing.T, m *Model, n Node) Node {
	t.Helper()
	n = attach(m, n)
	for i := 0; i < 1000; i++ {
		if !step(m, m.Root) {
			return m.Root.Child(0)
		}
	}
	t.Fatalf("no fixpoint for %s", n)
	return nil
}

func step(m *Model, n Node) (changed bool) {
	for i := 0; i < n.NumChildren(); i++ {
		if step(m, n.Child(i)) {
			changed = true
		}
	}
	if r := n.Simplify(m); r != nil {
		ReplaceWith(n, r)
		return true
	}
	return changed
}
