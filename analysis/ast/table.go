package ast

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/crow-cp/crow/utils"
)

// TableLiteral is a constant list of tuples written inline.
type TableLiteral struct {
	nodeBase
	Rows [][]int64
}

func NewTableLiteral(rows [][]int64) *TableLiteral {
	n := &TableLiteral{Rows: rows}
	n.init(n)
	return n
}

func (n *TableLiteral) Kind() Kind      { return KindTableLiteral }
func (n *TableLiteral) copyLocal() Node { return &TableLiteral{Rows: n.Rows} }
func (n *TableLiteral) localHash() uint32 {
	hs := make([]uint32, 0, len(n.Rows))
	for _, row := range n.Rows {
		rh := make([]uint32, len(row))
		for i, v := range row {
			rh[i] = utils.HashInt64(v)
		}
		hs = append(hs, utils.HashCombine(rh...))
	}
	return utils.HashCombine(hs...)
}

func (n *TableLiteral) localEqual(o Node) bool {
	or := o.(*TableLiteral).Rows
	if len(or) != len(n.Rows) {
		return false
	}
	for i, row := range n.Rows {
		if !slices.Equal(row, or[i]) {
			return false
		}
	}
	return true
}

func (n *TableLiteral) render(b *strings.Builder) {
	b.WriteString("(tuples")
	for _, row := range n.Rows {
		b.WriteString(" [")
		for i, v := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatInt(v, 10))
		}
		b.WriteByte(']')
	}
	b.WriteByte(')')
}

// TableRef names a table held by the model's table store.
type TableRef struct {
	nodeBase
	Name string
}

func NewTableRef(name string) *TableRef {
	n := &TableRef{Name: name}
	n.init(n)
	return n
}

func (n *TableRef) Kind() Kind                { return KindTableRef }
func (n *TableRef) copyLocal() Node           { return &TableRef{Name: n.Name} }
func (n *TableRef) localHash() uint32         { return utils.HashString(n.Name) }
func (n *TableRef) localEqual(o Node) bool    { return n.Name == o.(*TableRef).Name }
func (n *TableRef) render(b *strings.Builder) { b.WriteString("@" + n.Name) }

func (n *TableRef) TypeCheck(m *Model) bool {
	if _, ok := m.TableRows(n); !ok {
		m.errorf("Unknown table @%s", n.Name)
		return false
	}
	return true
}

// CompareRows orders tuples lexicographically.
func CompareRows(a, b []int64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return len(a) - len(b)
}

// CanonicalRows returns the rows sorted lexicographically without
// duplicates. The input is not modified.
func CanonicalRows(rows [][]int64) [][]int64 {
	res := make([][]int64, len(rows))
	copy(res, rows)
	slices.SortFunc(res, func(a, b []int64) bool {
		return CompareRows(a, b) < 0
	})
	return slices.CompactFunc(res, func(a, b []int64) bool {
		return CompareRows(a, b) == 0
	})
}

// Table holds when the tuple of its variables is a row of the table
// (positive) or is not a row (negative).
type Table struct {
	nodeBase
	negative bool
}

// NewTable makes a positive table constraint over vars.
func NewTable(vars *Matrix, tab Node) *Table {
	return newTable(false, vars, tab)
}

// NewNegativeTable makes a negative table constraint over vars.
func NewNegativeTable(vars *Matrix, tab Node) *Table {
	return newTable(true, vars, tab)
}

func newTable(negative bool, vars, tab Node) *Table {
	n := &Table{negative: negative}
	n.init(n, vars, tab)
	return n
}

func (n *Table) Kind() Kind {
	if n.negative {
		return KindNegativeTable
	}
	return KindTable
}

// IsNegative distinguishes forbidden-tuple tables.
func (n *Table) IsNegative() bool { return n.negative }

func (n *Table) IsRelation() bool  { return true }
func (n *Table) IsNegatable() bool { return true }
func (n *Table) copyLocal() Node   { return &Table{negative: n.negative} }
func (n *Table) render(b *strings.Builder) {
	renderOp(b, n.Kind().String(), n.children)
}

func (n *Table) Negation() Node {
	return newTable(!n.negative, n.children[0], n.children[1])
}

// Vars returns the constrained expressions.
func (n *Table) Vars() []Node {
	vars, _ := elements(n.children[0])
	return vars
}

func (n *Table) TypeCheck(m *Model) bool {
	if !isVector(n.children[0]) {
		m.errorf("%s expects a one-dimensional matrix of scalars, got %s", n.Kind(), n.children[0])
		return false
	}
	rows, ok := m.TableRows(n.children[1])
	if !ok {
		m.errorf("%s has no resolvable table: %s", n.Kind(), n.children[1])
		return false
	}
	width := len(n.Vars())
	for _, row := range rows {
		if len(row) != width {
			m.errorf("Row of width %d in %s over %d variables", len(row), n.Kind(), width)
			return false
		}
	}
	return true
}

// Simplify interns inline tables, then drops rows that cannot match the
// variable domains and projects out the columns of constant variables.
func (n *Table) Simplify(m *Model) Node {
	tab := n.children[1]
	if lit, ok := tab.(*TableLiteral); ok && m != nil && m.Tables != nil {
		return newTable(n.negative, n.children[0], NewTableRef(m.Tables.Intern(lit.Rows)))
	}
	rows, ok := m.TableRows(tab)
	if !ok {
		return nil
	}
	vars := n.Vars()
	if len(rows) == 0 {
		return Bool(n.negative)
	}

	doms := make([]func(int64) bool, len(vars))
	var keepCols []int
	for j, v := range vars {
		doms[j] = domainOf(m, v).Contains
		if !IsConstant(v) {
			keepCols = append(keepCols, j)
		}
	}
	var keepRows [][]int64
	for _, row := range rows {
		ok := true
		for j, v := range row {
			if !doms[j](v) {
				ok = false
				break
			}
		}
		if ok {
			keepRows = append(keepRows, row)
		}
	}

	switch {
	case len(keepRows) == 0:
		return Bool(n.negative)
	case len(keepCols) == 0:
		return Bool(!n.negative)
	case len(keepRows) == len(rows) && len(keepCols) == len(vars):
		return nil
	}

	newVars := make([]Node, len(keepCols))
	for i, j := range keepCols {
		newVars[i] = vars[j]
	}
	projected := make([][]int64, len(keepRows))
	for i, row := range keepRows {
		projected[i] = make([]int64, len(keepCols))
		for k, j := range keepCols {
			projected[i][k] = row[j]
		}
	}
	return newTable(n.negative, NewMatrix(newVars...), m.InternRows(projected))
}

// InternRows stores rows in the table store when there is one.
func (m *Model) InternRows(rows [][]int64) Node {
	if m == nil || m.Tables == nil {
		return NewTableLiteral(CanonicalRows(rows))
	}
	return NewTableRef(m.Tables.Intern(rows))
}
