package testutil

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/symtab"
)

// LoadResult is a model file loaded for testing, with its annotations.
type LoadResult struct {
	Path string
	*symtab.Loaded
	Diag  *symtab.Log
	Notes *NotesManager
}

// ModelFiles lists the model files in dir, sorted by name.
func ModelFiles(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(files)
	return files
}

// LoadModel reads a model file and its annotations.
func LoadModel(t *testing.T, path string) *LoadResult {
	t.Helper()
	f, err := symtab.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return load(t, path, f)
}

// LoadSource is LoadModel for a model given inline.
func LoadSource(t *testing.T, src string) *LoadResult {
	t.Helper()
	f, err := symtab.Decode(bytes.NewBufferString(src))
	if err != nil {
		t.Fatal(err)
	}
	return load(t, t.Name(), f)
}

func load(t *testing.T, path string, f *symtab.File) *LoadResult {
	t.Helper()
	diag := symtab.NewLog(nil)
	loaded, err := f.Build(diag)
	if err != nil {
		t.Fatal(err)
	}
	res := &LoadResult{
		Path:   path,
		Loaded: loaded,
		Diag:   diag,
		Notes:  MakeNotesManager(t, f.Constraint),
	}
	res.Model.Order = res.Notes.Order()
	return res
}

// Summary renders the outcome of rewriting: the constraint, the tables it
// references, the auxiliary variables, the aliases left by variable
// deletion and the diagnostics.
func (res *LoadResult) Summary() string {
	var b bytes.Buffer
	fmt.Fprintln(&b, ast.Pretty(res.Model.Constraint(), 60))

	refs := map[string]bool{}
	ast.Walk(res.Model.Constraint(), func(n ast.Node) bool {
		if ref, ok := n.(*ast.TableRef); ok {
			refs[ref.Name] = true
		}
		return true
	})
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows, _ := res.Tables.Rows(name)
		fmt.Fprintf(&b, "table @%s %v\n", name, rows)
	}
	for _, name := range res.Symbols.Names() {
		if d, _ := res.Symbols.Lookup(name); d.Aux {
			fmt.Fprintf(&b, "aux %s %s\n", name, d.Domain)
		}
	}
	for _, alias := range res.Symbols.Aliases() {
		fmt.Fprintf(&b, "alias %s -> %s\n", alias[0], alias[1])
	}
	for _, w := range res.Diag.Warnings {
		fmt.Fprintf(&b, "warning %s\n", w)
	}
	for _, e := range res.Diag.Errors {
		fmt.Fprintf(&b, "error %s\n", e)
	}
	return b.String()
}
