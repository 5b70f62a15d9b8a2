package symtab

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/bounds"
)

// ErrModelFile is returned for model files that cannot be read.
var ErrModelFile = errors.New("invalid model file")

// File is the on-disk form of a model:
//
//	variables:
//	  x: "{1..9}"
//	  b: bool
//	tables:
//	  pairs: [[1, 2], [2, 3]]
//	filtered:
//	  x: "{1..5}"
//	constraint: |
//	  (and (table [x x] @pairs) (-> b (<= x 4)))
type File struct {
	Variables  map[string]string    `yaml:"variables"`
	Tables     map[string][][]int64 `yaml:"tables"`
	Filtered   map[string]string    `yaml:"filtered"`
	Constraint string               `yaml:"constraint"`
}

// Loaded is a model built from a file together with its concrete
// collaborators.
type Loaded struct {
	Model   *ast.Model
	Symbols *Table
	Tables  *TableStore
}

// ReadFile decodes a model file. The path "-" reads standard input.
func ReadFile(path string) (*File, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return Decode(r)
}

func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFile, err)
	}
	return &f, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build declares the variables and tables and parses the constraint.
func (f *File) Build(diag ast.Reporter) (*Loaded, error) {
	syms := New()
	for _, name := range sortedKeys(f.Variables) {
		dom := f.Variables[name]
		if dom == "bool" {
			syms.DeclareBool(name)
			continue
		}
		s, err := bounds.ParseSet(dom)
		if err != nil {
			return nil, fmt.Errorf("%w: variable %s: %v", ErrModelFile, name, err)
		}
		syms.Declare(name, s)
	}

	tables := NewTableStore()
	for _, name := range sortedKeys(f.Tables) {
		if err := tables.Define(name, f.Tables[name]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelFile, err)
		}
	}

	var filtered Domains
	for _, name := range sortedKeys(f.Filtered) {
		s, err := bounds.ParseSet(f.Filtered[name])
		if err != nil {
			return nil, fmt.Errorf("%w: filtered domain of %s: %v", ErrModelFile, name, err)
		}
		if filtered == nil {
			filtered = Domains{}
		}
		filtered[name] = s
	}

	if f.Constraint == "" {
		return nil, fmt.Errorf("%w: no constraint", ErrModelFile)
	}
	c, err := ast.Parse(f.Constraint, syms)
	if err != nil {
		return nil, err
	}

	m := ast.NewModel(c, syms, tables, diag)
	if filtered != nil {
		m.Filtered = filtered
	}
	return &Loaded{Model: m, Symbols: syms, Tables: tables}, nil
}
