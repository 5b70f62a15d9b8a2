package ast

import (
	"fmt"

	"github.com/crow-cp/crow/analysis/bounds"
)

// Decl is the declaration of a decision variable or auxiliary variable.
type Decl struct {
	Name    string
	Domain  bounds.IntervalSet
	Boolean bool
	Aux     bool
}

type (
	// SymbolTable provides declarations and fresh auxiliary variables.
	SymbolTable interface {
		Lookup(name string) (Decl, bool)
		// NewAux declares a fresh auxiliary variable with the given domain.
		NewAux(dom bounds.IntervalSet, boolean bool) string
		// Restrict replaces the domain of a declared variable.
		Restrict(name string, dom bounds.IntervalSet)
		// Alias records that name was unified with rep and no longer occurs.
		Alias(name, rep string)
	}

	// FilteredDomains holds domains narrowed by a propagation pre-pass.
	FilteredDomains interface {
		Domain(name string) (bounds.IntervalSet, bool)
	}

	// TableStore deduplicates constant tables by content.
	TableStore interface {
		// Intern stores rows and returns their name. Row order and duplicate
		// rows do not affect the name.
		Intern(rows [][]int64) string
		Rows(name string) ([][]int64, bool)
	}

	// Reporter is the diagnostic channel.
	Reporter interface {
		Warn(msg string)
		Error(msg string)
	}
)

// Model is the environment every rule runs in: the tree and the collaborators
// it may consult. Collaborators other than Symbols may be nil.
type Model struct {
	Root     *Top
	Symbols  SymbolTable
	Tables   TableStore
	Filtered FilteredDomains
	Diag     Reporter
	Order    Order
}

// NewModel wraps constraint in a Top node and binds the collaborators.
func NewModel(constraint Node, symbols SymbolTable, tables TableStore, diag Reporter) *Model {
	return &Model{
		Root:    NewTop(constraint),
		Symbols: symbols,
		Tables:  tables,
		Diag:    diag,
	}
}

// Constraint returns the model's top-level constraint.
func (m *Model) Constraint() Node {
	return m.Root.Child(0)
}

// AddConstraint conjoins c to the top level of the model.
func (m *Model) AddConstraint(c Node) {
	if and, ok := m.Constraint().(*And); ok {
		and.Append(c)
		return
	}
	m.Root.SetChild(0, NewAnd(m.Constraint(), c))
}

func (m *Model) warnf(format string, args ...interface{}) {
	if m != nil && m.Diag != nil {
		m.Diag.Warn(fmt.Sprintf(format, args...))
	}
}

func (m *Model) errorf(format string, args ...interface{}) {
	if m != nil && m.Diag != nil {
		m.Diag.Error(fmt.Sprintf(format, args...))
	}
}

// lookupDomain returns the domain of a declared variable, preferring the
// filtered domain store when present.
func (m *Model) lookupDomain(name string) (bounds.IntervalSet, bool) {
	if m == nil {
		return bounds.IntervalSet{}, false
	}
	if m.Filtered != nil {
		if dom, ok := m.Filtered.Domain(name); ok {
			return dom, true
		}
	}
	if m.Symbols != nil {
		if decl, ok := m.Symbols.Lookup(name); ok {
			if decl.Boolean {
				return decl.Domain.Intersect(bounds.BoolSet()), true
			}
			return decl.Domain, true
		}
	}
	return bounds.IntervalSet{}, false
}

// TableRows resolves a table literal or reference to its rows.
func (m *Model) TableRows(tab Node) ([][]int64, bool) {
	switch tab := tab.(type) {
	case *TableLiteral:
		return tab.Rows, true
	case *TableRef:
		if m == nil || m.Tables == nil {
			return nil, false
		}
		return m.Tables.Rows(tab.Name)
	}
	return nil, false
}

// InTopConjunction checks whether n is the top-level constraint or a member
// of a conjunction that is itself at the top level.
func InTopConjunction(n Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.(type) {
		case *Top:
			return true
		case *And:
			continue
		default:
			return false
		}
	}
	return false
}

// BoundQuantifier returns the nearest enclosing quantifier binding name.
func BoundQuantifier(n Node, name string) (Quantifier, bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if q, ok := p.(Quantifier); ok && q.Variable() == name {
			return q, true
		}
	}
	return nil, false
}

func (m *Model) order() Order {
	if m == nil {
		return ByHash
	}
	return m.Order
}
